package validators

import (
	"math"
	"strings"

	"github.com/reportgate/backend/internal/models"
	"github.com/reportgate/backend/internal/rules"
)

// CalculationValidator rechecks the cost-of-inaction arithmetic, price sanity
// and the plausibility of numeric promises in the narrative.
type CalculationValidator struct {
	rules *rules.Set
}

func NewCalculation(set *rules.Set) *CalculationValidator {
	return &CalculationValidator{rules: set}
}

func (v *CalculationValidator) Name() string { return "calculation" }

func (v *CalculationValidator) Validate(in Input) models.ValidationResult {
	var f findings
	r := in.Report
	if r == nil {
		return f.result()
	}
	limits := v.rules.Calculation

	if c := r.Sections.Diagnosis.CostOfInaction; c != nil {
		expected := c.HoursPerWeek * c.HourlyValue * c.WeeksPerYear
		if math.Abs(expected-c.AnnualCost) > limits.Tolerance {
			f.errorf("Cost of inaction mismatch: %s × %s × %s = %s, report states %s",
				formatNumber(c.HoursPerWeek), formatNumber(c.HourlyValue), formatNumber(c.WeeksPerYear),
				formatNumber(expected), formatNumber(c.AnnualCost))
		}
		bound := func(field string, val, max float64) {
			if val < 0 || val > max {
				f.errorf("%s %s outside [0, %s]", field, formatNumber(val), formatNumber(max))
			}
		}
		bound("hours_per_week", c.HoursPerWeek, limits.MaxHoursPerWeek)
		bound("hourly_value", c.HourlyValue, limits.MaxHourlyValue)
		bound("weeks_per_year", c.WeeksPerYear, limits.MaxWeeksPerYear)
	}

	checkPrice := func(label string, price float64) {
		switch {
		case price < 0:
			f.errorf("%s has negative price %s", label, formatNumber(price))
		case price > limits.PriceWarningAbove:
			f.warnf("%s price %s exceeds %s; verify pricing manually", label, formatNumber(price), formatNumber(limits.PriceWarningAbove))
		}
	}
	for _, svc := range r.Recommendations.Services {
		checkPrice("Service "+quote(svc.ServiceID), svc.Price)
	}
	if pkg := r.Recommendations.Package; pkg != nil {
		checkPrice("Package "+quote(pkg.Name), pkg.Price)
	}

	text := r.NarrativeText()
	for _, claim := range v.rules.Claims {
		for _, m := range claim.Re.FindAllStringSubmatch(text, -1) {
			if len(m) < 2 {
				continue
			}
			n, ok := parseNumber(m[1])
			if ok && n > claim.Max {
				f.warnf("Implausible claim %q exceeds %s limit of %s", strings.TrimSpace(m[0]), claim.Label, formatNumber(claim.Max))
			}
		}
	}

	return f.result()
}

func quote(s string) string {
	return `"` + s + `"`
}
