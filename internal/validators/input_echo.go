package validators

import (
	"strings"
	"unicode/utf8"

	"github.com/reportgate/backend/internal/models"
	"github.com/reportgate/backend/internal/rules"
)

// InputEchoValidator is the primary hallucination detector: it checks that the
// report's claimed identity and quotes trace back to the submission.
type InputEchoValidator struct {
	rules *rules.Set
}

func NewInputEcho(set *rules.Set) *InputEchoValidator {
	return &InputEchoValidator{rules: set}
}

func (v *InputEchoValidator) Name() string { return "input_echo" }

func (v *InputEchoValidator) Validate(in Input) models.ValidationResult {
	var f findings
	r := in.Report
	if r == nil {
		return f.result()
	}
	sub := in.submission()

	if want := sub.Contact().Name; want != "" {
		if !sameName(r.Recipient.Name, want) {
			f.errorf("recipient.name %q does not match submission name %q", r.Recipient.Name, want)
		}
		if !sameName(r.InputEcho.Name, want) {
			f.errorf("input_echo.name %q does not match submission name %q", r.InputEcho.Name, want)
		}
	}

	if r.Meta.Persona != sub.Persona {
		f.errorf("meta.persona %q does not match submission persona %q", r.Meta.Persona, sub.Persona)
	}
	if r.InputEcho.Persona != sub.Persona {
		f.errorf("input_echo.persona %q does not match submission persona %q", r.InputEcho.Persona, sub.Persona)
	}

	source := normalize(sub.FreeText(v.rules.ChoiceFields...))
	for _, phrase := range r.InputEcho.QuotedPhrases {
		if utf8.RuneCountInString(strings.TrimSpace(phrase)) <= v.rules.EchoPhraseMinLen {
			continue
		}
		if !strings.Contains(source, normalize(phrase)) {
			f.warnf("Quoted phrase not found in submission (possible fabrication): %q", phrase)
		}
	}

	v.checkNumericClaims(&f, r, sub)
	return f.result()
}

// checkNumericClaims flags headcounts, revenue figures and similar facts the
// user never gave. Figures the report derives itself (cost of inaction,
// prices) are not claims about the user.
func (v *InputEchoValidator) checkNumericClaims(f *findings, r *models.Report, sub *models.Submission) {
	known := numbersIn(sub.AllText())
	if c := r.Sections.Diagnosis.CostOfInaction; c != nil {
		for _, n := range []float64{c.HoursPerWeek, c.HourlyValue, c.WeeksPerYear, c.AnnualCost} {
			known[formatNumber(n)] = true
		}
	}
	for _, svc := range r.Recommendations.Services {
		known[formatNumber(svc.Price)] = true
	}

	seen := make(map[string]bool)
	text := r.NarrativeText()
	for _, re := range v.rules.NumericClaims {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			if len(m) < 2 {
				continue
			}
			n, ok := parseNumber(m[1])
			if !ok {
				continue
			}
			key := formatNumber(n)
			if known[key] || seen[m[0]] {
				continue
			}
			seen[m[0]] = true
			f.warnf("Numeric claim not supported by submission (possible invented fact): %q", strings.TrimSpace(m[0]))
		}
	}
}

func sameName(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
