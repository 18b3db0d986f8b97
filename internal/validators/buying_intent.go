package validators

import (
	"github.com/reportgate/backend/internal/models"
	"github.com/reportgate/backend/internal/rules"
)

// BuyingIntentValidator applies to the just-starting persona only: its plan
// should validate demand with real commitment, not polite opinions.
type BuyingIntentValidator struct {
	rules *rules.Set
}

func NewBuyingIntent(set *rules.Set) *BuyingIntentValidator {
	return &BuyingIntentValidator{rules: set}
}

func (v *BuyingIntentValidator) Name() string { return "buying_intent" }

func (v *BuyingIntentValidator) Validate(in Input) models.ValidationResult {
	var f findings
	r := in.Report
	if r == nil || in.submission().Persona != v.rules.JustStartingPersona {
		return f.result()
	}

	plan := r.Sections.JourneyMap.Text() + "\n" + r.Sections.NextStep.Text()
	for _, s := range v.rules.StrongIntentSignals {
		if containsFold(plan, s) {
			return f.result()
		}
	}

	f.warnf("No buying-intent commitment signal in plan (deposit, pre-order, paid waitlist)")
	for _, s := range v.rules.WeakIntentSignals {
		if containsFold(plan, s) {
			f.warnf("Plan relies on weak buying-intent validation (%q) instead of commitment", s)
			break
		}
	}
	return f.result()
}
