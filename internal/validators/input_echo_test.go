package validators

import (
	"regexp"
	"testing"

	"github.com/reportgate/backend/internal/models"
)

func TestInputEcho_NameMismatch(t *testing.T) {
	r := cleanReport()
	r.Recipient.Name = "Sarah Jones"

	res := NewInputEcho(testRules()).Validate(Input{Report: r, Submission: cleanSubmission()})
	if len(res.Errors) != 1 {
		t.Fatalf("expected 1 error, got %v", res.Errors)
	}
	if !hasFinding(res.Errors, `recipient.name "Sarah Jones"`) {
		t.Errorf("unexpected error: %v", res.Errors)
	}
}

func TestInputEcho_NameComparisonIgnoresCase(t *testing.T) {
	r := cleanReport()
	r.Recipient.Name = "maya patel"
	r.InputEcho.Name = " MAYA PATEL "

	res := NewInputEcho(testRules()).Validate(Input{Report: r, Submission: cleanSubmission()})
	if !res.Valid {
		t.Errorf("expected no errors, got %v", res.Errors)
	}
}

func TestInputEcho_DirectNameAnswerWins(t *testing.T) {
	sub := cleanSubmission()
	sub.Answers[models.QuestionName] = models.TextAnswer("Priya Shah")

	res := NewInputEcho(testRules()).Validate(Input{Report: cleanReport(), Submission: sub})
	if len(res.Errors) != 2 {
		t.Errorf("expected recipient and echo name errors, got %v", res.Errors)
	}
}

func TestInputEcho_NoNameSkipsIdentityCheck(t *testing.T) {
	sub := cleanSubmission()
	delete(sub.Answers, "contact")

	res := NewInputEcho(testRules()).Validate(Input{Report: cleanReport(), Submission: sub})
	if !res.Valid {
		t.Errorf("expected no errors without a submitted name, got %v", res.Errors)
	}
}

func TestInputEcho_PersonaMismatch(t *testing.T) {
	sub := cleanSubmission()
	sub.Persona = models.PersonaC

	res := NewInputEcho(testRules()).Validate(Input{Report: cleanReport(), Submission: sub})
	if !hasFinding(res.Errors, `meta.persona "B" does not match submission persona "C"`) {
		t.Errorf("expected meta persona error, got %v", res.Errors)
	}
	if !hasFinding(res.Errors, `input_echo.persona "B"`) {
		t.Errorf("expected input echo persona error, got %v", res.Errors)
	}
}

func TestInputEcho_FabricatedQuote(t *testing.T) {
	r := cleanReport()
	r.InputEcho.QuotedPhrases = append(r.InputEcho.QuotedPhrases, "my customers adore the brownies", "short one")

	res := NewInputEcho(testRules()).Validate(Input{Report: r, Submission: cleanSubmission()})
	if !res.Valid {
		t.Fatalf("fabricated quotes are warnings, got errors %v", res.Errors)
	}
	if len(res.Warnings) != 1 || !hasFinding(res.Warnings, "possible fabrication") {
		t.Errorf("expected one fabrication warning, got %v", res.Warnings)
	}
}

func TestInputEcho_InventedHeadcount(t *testing.T) {
	r := cleanReport()
	r.Sections.Snapshot.Summary = "With 12 staff you are ready to grow."

	res := NewInputEcho(testRules()).Validate(Input{Report: r, Submission: cleanSubmission()})
	if !hasFinding(res.Warnings, `"12 staff"`) {
		t.Errorf("expected invented fact warning, got %v", res.Warnings)
	}

	sub := cleanSubmission()
	sub.Answers["team_size"] = models.TextAnswer("12")
	res = NewInputEcho(testRules()).Validate(Input{Report: r, Submission: sub})
	if len(res.Warnings) != 0 {
		t.Errorf("headcount given by the user should pass, got %v", res.Warnings)
	}
}

func TestInputEcho_EncodedNameAnswerIsChecked(t *testing.T) {
	sub := cleanSubmission()
	delete(sub.Answers, "contact")
	sub.Answers[models.QuestionName] = models.RecordAnswer(`{"name":"Sam Lee","email":"sam@example.com"}`)

	res := NewInputEcho(testRules()).Validate(Input{Report: cleanReport(), Submission: sub})
	if !hasFinding(res.Errors, "Sam Lee") {
		t.Errorf("expected a name mismatch against the encoded record, got %v", res.Errors)
	}
}

func TestInputEcho_NumericClaimPatternWithoutGroup(t *testing.T) {
	set := testRules()
	set.NumericClaims = []*regexp.Regexp{regexp.MustCompile(`(?i)\d+ employees`)}
	r := cleanReport()
	r.Sections.Snapshot.Summary = "With 12 employees you are ready to grow."

	res := NewInputEcho(set).Validate(Input{Report: r, Submission: cleanSubmission()})
	if !res.Valid || len(res.Warnings) != 0 {
		t.Errorf("expected pattern without a number group to be skipped, got %+v", res)
	}
}
