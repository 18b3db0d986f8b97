package validators

import (
	"math"
	"regexp"
	"strings"

	"github.com/reportgate/backend/internal/models"
	"github.com/reportgate/backend/internal/rules"
)

// ConsistencyValidator compares the figures the report works with against
// the figures the user actually stated.
type ConsistencyValidator struct {
	rules *rules.Set
}

func NewConsistency(set *rules.Set) *ConsistencyValidator {
	return &ConsistencyValidator{rules: set}
}

func (v *ConsistencyValidator) Name() string { return "consistency" }

// StatedFigures are the numbers re-extracted from a submission.
type StatedFigures struct {
	Hours  *float64
	Rate   *float64
	Budget *float64
}

func (v *ConsistencyValidator) Validate(in Input) models.ValidationResult {
	var f findings
	r := in.Report
	if r == nil {
		return f.result()
	}
	stated := v.Stated(in.submission())
	text := r.FullText()

	if c := r.Sections.Diagnosis.CostOfInaction; c != nil {
		if stated.Hours != nil && c.HoursPerWeek != *stated.Hours {
			switch {
			case c.HoursPerWeek > *stated.Hours:
				f.errorf("Report assumes %s hours/week but submission states %s: inflated hours",
					formatNumber(c.HoursPerWeek), formatNumber(*stated.Hours))
			case !v.explainsScope(text):
				f.warnf("Hours inconsistency: report uses %s hours/week vs %s stated without explaining the narrower scope",
					formatNumber(c.HoursPerWeek), formatNumber(*stated.Hours))
			}
		}
		if stated.Rate != nil && *stated.Rate > 0 {
			diff := math.Abs(c.HourlyValue-*stated.Rate) / *stated.Rate
			if diff > v.rules.RateTolerance {
				f.warnf("Hourly rate inconsistency: report uses %s vs %s stated",
					formatNumber(c.HourlyValue), formatNumber(*stated.Rate))
			}
		}
	}

	if stated.Budget != nil && !numbersIn(text)[formatNumber(*stated.Budget)] {
		f.warnf("Budget not referenced: submission states %s", formatNumber(*stated.Budget))
	}

	return f.result()
}

// Stated extracts hours/week, hourly rate and budget: named fields first,
// then pattern fallbacks over free text. Hour ranges resolve to their upper
// end, budget ranges to their lower end.
func (v *ConsistencyValidator) Stated(sub *models.Submission) StatedFigures {
	free := sub.FreeText()
	var out StatedFigures

	if _, hi, ok := v.fromFields(sub, v.rules.HoursFields); ok {
		out.Hours = &hi
	} else if n, ok := firstPatternNumber(v.rules.Hours, free); ok {
		out.Hours = &n
	}

	if lo, _, ok := v.fromFields(sub, v.rules.RateFields); ok {
		out.Rate = &lo
	} else if n, ok := firstPatternNumber(v.rules.Rate, free); ok {
		out.Rate = &n
	}

	if lo, _, ok := v.fromFields(sub, v.rules.BudgetFields); ok {
		out.Budget = &lo
	} else if n, ok := firstPatternNumber(v.rules.Budget, free); ok {
		out.Budget = &n
	}
	return out
}

func (v *ConsistencyValidator) fromFields(sub *models.Submission, fields []string) (lo, hi float64, ok bool) {
	for _, field := range fields {
		if lo, hi, ok = parseRange(sub.Text(field)); ok {
			return lo, hi, true
		}
	}
	return 0, 0, false
}

func (v *ConsistencyValidator) explainsScope(text string) bool {
	lower := fold(text)
	for _, w := range v.rules.ScopeWords {
		if strings.Contains(lower, strings.ToLower(w)) {
			return true
		}
	}
	return false
}

func firstPatternNumber(res []*regexp.Regexp, text string) (float64, bool) {
	for _, raw := range captures(res, text) {
		if n, ok := parseNumber(raw); ok {
			return n, true
		}
	}
	return 0, false
}
