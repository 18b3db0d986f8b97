// Package validators holds the independent report checks. Each validator is a
// pure function of its Input: no I/O, no shared mutable state, safe to run
// concurrently with the others.
package validators

import (
	"fmt"

	"github.com/reportgate/backend/internal/models"
	"github.com/reportgate/backend/internal/rules"
)

// Input is the triple every validator inspects. Validators never mutate it.
type Input struct {
	Report     *models.Report
	Submission *models.Submission
	Catalogue  models.Catalogue
}

type Validator interface {
	Name() string
	Validate(in Input) models.ValidationResult
}

// All returns the full validator set in reporting order.
func All(set *rules.Set) []Validator {
	return []Validator{
		NewSchema(),
		NewInputEcho(set),
		NewBrandVoice(set),
		NewCalculation(set),
		NewCatalogueReference(),
		NewSpecificity(set),
		NewQuotedPhrase(set),
		NewBusinessType(set),
		NewNumbersUsed(set),
		NewBuyingIntent(set),
		NewConsistency(set),
	}
}

// submission never returns nil so validators can read answers unconditionally.
func (in Input) submission() *models.Submission {
	if in.Submission == nil {
		return &models.Submission{}
	}
	return in.Submission
}

// findings accumulates one validator's output.
type findings struct {
	errors   []string
	warnings []string
}

func (f *findings) errorf(format string, args ...interface{}) {
	f.errors = append(f.errors, fmt.Sprintf(format, args...))
}

func (f *findings) warnf(format string, args ...interface{}) {
	f.warnings = append(f.warnings, fmt.Sprintf(format, args...))
}

func (f *findings) result() models.ValidationResult {
	return models.NewValidationResult(f.errors, f.warnings)
}
