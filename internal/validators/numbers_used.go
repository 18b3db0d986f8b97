package validators

import (
	"sort"
	"strings"

	"github.com/reportgate/backend/internal/models"
	"github.com/reportgate/backend/internal/rules"
)

// NumbersUsedValidator warns when the user volunteered concrete numbers and
// the report never repeats any of them.
type NumbersUsedValidator struct {
	rules *rules.Set
}

func NewNumbersUsed(set *rules.Set) *NumbersUsedValidator {
	return &NumbersUsedValidator{rules: set}
}

func (v *NumbersUsedValidator) Name() string { return "numbers_used" }

func (v *NumbersUsedValidator) Validate(in Input) models.ValidationResult {
	var f findings
	r := in.Report
	if r == nil {
		return f.result()
	}

	facts := v.Facts(in.submission())
	if len(facts) == 0 {
		return f.result()
	}

	mentioned := numbersIn(r.FullText())
	for _, n := range facts {
		if mentioned[n] {
			return f.result()
		}
	}
	f.warnf("Report does not reference the user's own numbers (%s)", strings.Join(facts, ", "))
	return f.result()
}

// Facts extracts deduplicated numbers from free text, dropping any value the
// user already supplied through a multiple-choice field.
func (v *NumbersUsedValidator) Facts(sub *models.Submission) []string {
	choice := make(map[string]bool)
	for _, field := range v.rules.ChoiceFields {
		for n := range numbersIn(sub.Text(field)) {
			choice[n] = true
		}
	}

	seen := make(map[string]bool)
	for _, raw := range captures(v.rules.NumberFacts, sub.FreeText(v.rules.ChoiceFields...)) {
		n, ok := parseNumber(raw)
		if !ok {
			continue
		}
		key := formatNumber(n)
		if !choice[key] {
			seen[key] = true
		}
	}

	facts := make([]string, 0, len(seen))
	for n := range seen {
		facts = append(facts, n)
	}
	sort.Strings(facts)
	return facts
}
