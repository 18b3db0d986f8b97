// Package report turns raw generator output and request payloads into the
// typed documents the validators consume.
package report

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/kaptinlin/jsonschema"
	"github.com/reportgate/backend/internal/models"
)

//go:embed schema.json
var schemaJSON []byte

// wireSchema checks JSON types only. Presence and cardinality are the schema
// validator's job, so a report with missing sections still decodes.
var wireSchema = mustCompile(schemaJSON)

func mustCompile(data []byte) *jsonschema.Schema {
	schema, err := jsonschema.NewCompiler().Compile(data)
	if err != nil {
		panic(fmt.Sprintf("report: invalid embedded schema: %v", err))
	}
	return schema
}

// DecodeError lists every wire-level problem found in a report.
type DecodeError struct {
	Errors []string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("report decode failed: %s", strings.Join(e.Errors, "; "))
}

// Decode parses a generated report, tolerating a surrounding markdown code
// fence.
func Decode(raw string) (*models.Report, error) {
	cleaned := stripCodeFences(raw)
	if cleaned == "" {
		return nil, &DecodeError{Errors: []string{"empty report"}}
	}

	var doc interface{}
	if err := json.Unmarshal([]byte(cleaned), &doc); err != nil {
		return nil, &DecodeError{Errors: []string{fmt.Sprintf("failed to parse report JSON: %v", err)}}
	}
	if _, ok := doc.(map[string]interface{}); !ok {
		return nil, &DecodeError{Errors: []string{"report must be a JSON object"}}
	}

	if result := wireSchema.Validate(doc); !result.IsValid() {
		var errs []string
		for field, e := range result.Errors {
			errs = append(errs, fmt.Sprintf("%s: %s", field, e.Message))
		}
		sort.Strings(errs)
		return nil, &DecodeError{Errors: errs}
	}

	var r models.Report
	if err := json.Unmarshal([]byte(cleaned), &r); err != nil {
		return nil, fmt.Errorf("failed to decode report: %w", err)
	}
	return &r, nil
}

// DecodeSubmission parses a questionnaire submission. Answers may be plain
// strings, lists, or JSON-encoded records.
func DecodeSubmission(data []byte) (*models.Submission, error) {
	var sub models.Submission
	if err := json.Unmarshal(data, &sub); err != nil {
		return nil, fmt.Errorf("failed to decode submission: %w", err)
	}
	if sub.Answers == nil {
		sub.Answers = map[string]models.Answer{}
	}
	return &sub, nil
}

// DecodeCatalogue accepts either a bare array of services or an object with
// a "services" array.
func DecodeCatalogue(data []byte) (models.Catalogue, error) {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "{") {
		var wrapped struct {
			Services models.Catalogue `json:"services"`
		}
		if err := json.Unmarshal(data, &wrapped); err != nil {
			return nil, fmt.Errorf("failed to decode catalogue: %w", err)
		}
		return wrapped.Services, nil
	}

	var cat models.Catalogue
	if err := json.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("failed to decode catalogue: %w", err)
	}
	return cat, nil
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimSpace(s)
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSpace(s)
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSuffix(s, "```")
		s = strings.TrimSpace(s)
	}
	return s
}
