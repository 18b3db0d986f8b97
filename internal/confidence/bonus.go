package confidence

import (
	"github.com/reportgate/backend/internal/models"
	"github.com/reportgate/backend/internal/validators"
)

func (e *Engine) bonuses(r *models.Report) []Bonus {
	if r == nil {
		return nil
	}
	b := e.rules.Bonuses
	var out []Bonus

	if len(r.InputEcho.QuotedPhrases) >= b.EchoPhrasesMin {
		out = append(out, Bonus{Reason: "rich input echo", Points: b.EchoPhrasesPoints})
	}

	text := r.NarrativeText()
	blocked := len(e.rules.Blocked.FindAllStringIndex(text, -1))
	unlocked := len(e.rules.Unlocked.FindAllStringIndex(text, -1))
	if blocked >= b.FramingMin && unlocked >= b.FramingMin {
		out = append(out, Bonus{Reason: "blocked/unlocked framing", Points: b.FramingPoints})
	}

	if len(validators.QuotedSpans(text)) >= b.QuotedSpansMin {
		out = append(out, Bonus{Reason: "heavy use of the user's own words", Points: b.QuotedSpansPoints})
	}
	return out
}
