package validators

import (
	"strings"

	"github.com/reportgate/backend/internal/models"
	"github.com/reportgate/backend/internal/rules"
)

// SpecificityValidator detects templated writing that would read the same
// for any user.
type SpecificityValidator struct {
	rules *rules.Set
}

func NewSpecificity(set *rules.Set) *SpecificityValidator {
	return &SpecificityValidator{rules: set}
}

func (v *SpecificityValidator) Name() string { return "specificity" }

func (v *SpecificityValidator) Validate(in Input) models.ValidationResult {
	var f findings
	r := in.Report
	if r == nil {
		return f.result()
	}
	s := r.Sections
	narrative := r.NarrativeText()
	strengths := strings.Join(s.Snapshot.Strengths, "\n")
	plan := s.JourneyMap.Text() + "\n" + s.NextStep.Text()

	generic := 0
	for _, phrase := range v.rules.GenericPhrases {
		if n := countFold(narrative, phrase); n > 0 {
			generic += n
			f.warnf("Generic phrase: %q", phrase)
		}
	}
	for _, phrase := range v.rules.FillerStrengths {
		if containsFold(strengths, phrase) {
			f.warnf("Filler strength restates an answer: %q", phrase)
		}
	}
	for _, phrase := range v.rules.VagueAdvice {
		if containsFold(plan, phrase) {
			f.warnf("Vague advice: %q", phrase)
		}
	}
	for _, phrase := range v.rules.CheerleaderPhrases {
		if containsFold(narrative, phrase) {
			f.warnf("Cheerleader phrase: %q", phrase)
		}
	}

	if generic > v.rules.MaxGenericPhrases {
		f.errorf("Report reads as templated: %d generic phrases (max %d)", generic, v.rules.MaxGenericPhrases)
	}

	// A stock headline is acceptable only when the body quotes the user.
	for _, tmpl := range v.rules.TemplateHeadlines {
		if containsFold(s.Opening.Headline, tmpl) && len(QuotedSpans(s.Opening.Body)) == 0 {
			f.errorf("Generic opening headline %q with no quoted user content in the body", s.Opening.Headline)
			break
		}
	}

	return f.result()
}
