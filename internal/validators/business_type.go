package validators

import (
	"strings"

	"github.com/reportgate/backend/internal/models"
	"github.com/reportgate/backend/internal/rules"
)

// BusinessTypeValidator checks that recommended services make sense for the
// kind of business the user runs.
type BusinessTypeValidator struct {
	rules *rules.Set
}

func NewBusinessType(set *rules.Set) *BusinessTypeValidator {
	return &BusinessTypeValidator{rules: set}
}

func (v *BusinessTypeValidator) Name() string { return "business_type" }

func (v *BusinessTypeValidator) Validate(in Input) models.ValidationResult {
	var f findings
	r := in.Report
	if r == nil {
		return f.result()
	}
	bt := v.Detect(in.submission())

	var services []string
	for _, svc := range r.Recommendations.Services {
		text := serviceText(svc.ServiceID, svc.Name)
		services = append(services, text)
		for _, kw := range bt.Irrelevant {
			if strings.Contains(text, strings.ToLower(kw)) {
				f.errorf("Service %q (%s) is not relevant for a %s business: matches %q", svc.ServiceID, svc.Name, bt.Key, kw)
				break
			}
		}
	}

	if len(bt.Relevant) > 0 && len(services) > 0 && !anyContains(services, bt.Relevant) {
		f.warnf("No core services for this business type (%s) found", bt.Key)
	}

	return f.result()
}

// Detect classifies the submission: a direct business_type answer naming a
// known key wins, then the category with the most keyword hits in free text,
// then the permissive default.
func (v *BusinessTypeValidator) Detect(sub *models.Submission) rules.BusinessType {
	direct := strings.ToLower(sub.Text(models.QuestionBusinessType))
	if direct != "" {
		if bt, ok := v.rules.BusinessType(direct); ok {
			return bt
		}
	}

	text := fold(sub.FreeText() + "\n" + direct)
	best, bestHits := rules.BusinessType{}, 0
	for _, bt := range v.rules.BusinessTypes {
		hits := 0
		for _, kw := range bt.Keywords {
			if strings.Contains(text, fold(kw)) {
				hits++
			}
		}
		if hits > bestHits {
			best, bestHits = bt, hits
		}
	}
	if bestHits > 0 {
		return best
	}

	if bt, ok := v.rules.BusinessType(v.rules.DefaultBusinessType); ok {
		return bt
	}
	return rules.BusinessType{Key: v.rules.DefaultBusinessType}
}

func serviceText(id, name string) string {
	s := strings.ToLower(id + " " + name)
	return strings.NewReplacer("_", " ", "-", " ").Replace(s)
}

func anyContains(texts, keywords []string) bool {
	for _, t := range texts {
		for _, kw := range keywords {
			if strings.Contains(t, strings.ToLower(kw)) {
				return true
			}
		}
	}
	return false
}
