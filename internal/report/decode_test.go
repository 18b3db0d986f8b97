package report

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/reportgate/backend/internal/models"
)

func fixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "confidence", "testdata", name))
	if err != nil {
		t.Fatalf("read %s: %v", name, err)
	}
	return data
}

func TestDecode_Fixture(t *testing.T) {
	r, err := Decode(string(fixture(t, "report.json")))
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if r.Meta.Persona != models.PersonaB {
		t.Errorf("expected persona B, got %q", r.Meta.Persona)
	}
	if len(r.Sections.JourneyMap.Phases) != 3 {
		t.Errorf("expected 3 phases, got %d", len(r.Sections.JourneyMap.Phases))
	}
	if c := r.Sections.Diagnosis.CostOfInaction; c == nil || c.AnnualCost != 21600 {
		t.Errorf("unexpected cost of inaction: %+v", c)
	}
}

func TestDecode_CodeFences(t *testing.T) {
	body := string(fixture(t, "report.json"))
	for _, raw := range []string{
		"```json\n" + body + "\n```",
		"```\n" + body + "\n```",
		"\n\n  " + body + "  \n",
	} {
		if _, err := Decode(raw); err != nil {
			t.Errorf("expected fenced report to decode, got: %v", err)
		}
	}
}

func TestDecode_MissingSectionsStillDecode(t *testing.T) {
	r, err := Decode(`{"meta": {"persona": "A"}}`)
	if err != nil {
		t.Fatalf("presence is not a wire concern, got: %v", err)
	}
	if r.Sections.Opening.Headline != "" {
		t.Errorf("expected empty headline")
	}
}

func TestDecode_NullOptionals(t *testing.T) {
	raw := `{"sections": {"diagnosis": {"cost_of_inaction": null}, "journey_map": {"phases": [{"number": 1, "completion_criteria": null, "tasks": []}]}}}`
	r, err := Decode(raw)
	if err != nil {
		t.Fatalf("expected nulls to be accepted, got: %v", err)
	}
	if r.Sections.Diagnosis.CostOfInaction != nil {
		t.Errorf("expected nil cost of inaction")
	}
	if r.Sections.JourneyMap.Phases[0].CompletionCriteria != nil {
		t.Errorf("expected nil completion criteria")
	}
}

func TestDecode_WrongTypes(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"price as string", `{"recommendations": {"services": [{"service_id": "svc-a", "name": "A", "price": "450"}]}}`},
		{"phases as object", `{"sections": {"journey_map": {"phases": {"number": 1}}}}`},
		{"fractional phase number", `{"sections": {"journey_map": {"phases": [{"number": 1.5}]}}}`},
		{"quoted phrases as string", `{"input_echo": {"quoted_phrases": "drowning in admin"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.raw)
			var de *DecodeError
			if !errors.As(err, &de) {
				t.Fatalf("expected *DecodeError, got %v", err)
			}
			if len(de.Errors) == 0 {
				t.Errorf("expected at least one error")
			}
		})
	}
}

func TestDecode_NotAnObject(t *testing.T) {
	for _, raw := range []string{"", "[]", `"report"`} {
		_, err := Decode(raw)
		var de *DecodeError
		if !errors.As(err, &de) {
			t.Errorf("Decode(%q): expected *DecodeError, got %v", raw, err)
		}
	}
}

func TestDecode_InvalidJSON(t *testing.T) {
	_, err := Decode(`{"meta": `)
	var de *DecodeError
	if !errors.As(err, &de) || !strings.Contains(err.Error(), "failed to parse report JSON") {
		t.Errorf("expected parse error, got %v", err)
	}
}

func TestDecodeSubmission_AnswerShapes(t *testing.T) {
	sub, err := DecodeSubmission(fixture(t, "submission.json"))
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if a := sub.Answers["contact"]; a.Kind != models.AnswerRecord {
		t.Errorf("expected contact to decode as a record, got kind %d", a.Kind)
	}
	if a := sub.Answers["channels"]; a.Kind != models.AnswerList || len(a.List) != 3 {
		t.Errorf("expected a 3-item list, got %+v", a)
	}
	if got := sub.Text("hourly_rate"); got != "45" {
		t.Errorf("expected numeric answer as text 45, got %q", got)
	}
	if c := sub.Contact(); c.Name != "Maya Patel" || c.Email != "maya@example.com" {
		t.Errorf("unexpected contact: %+v", c)
	}
}

func TestDecodeSubmission_NoAnswers(t *testing.T) {
	sub, err := DecodeSubmission([]byte(`{"id": "s1", "persona": "A"}`))
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if sub.Answers == nil {
		t.Errorf("expected non-nil answers")
	}
}

func TestDecodeCatalogue(t *testing.T) {
	cat, err := DecodeCatalogue(fixture(t, "catalogue.json"))
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(cat) != 3 {
		t.Fatalf("expected 3 services, got %d", len(cat))
	}
	if svc, ok := cat.Lookup("svc-legacy"); !ok || svc.Status != models.ServiceDiscontinued {
		t.Errorf("expected discontinued svc-legacy, got %+v", svc)
	}

	wrapped, err := DecodeCatalogue([]byte(`{"services": [{"id": "svc-a", "name": "A", "status": "active"}]}`))
	if err != nil || len(wrapped) != 1 {
		t.Errorf("expected wrapped catalogue, got %v, %v", wrapped, err)
	}
}
