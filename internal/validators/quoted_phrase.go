package validators

import (
	"strings"

	"github.com/reportgate/backend/internal/models"
	"github.com/reportgate/backend/internal/rules"
)

const quoteWindow = 3

// QuotedPhraseValidator enforces the "uses their own words" requirement.
type QuotedPhraseValidator struct {
	rules *rules.Set
}

func NewQuotedPhrase(set *rules.Set) *QuotedPhraseValidator {
	return &QuotedPhraseValidator{rules: set}
}

func (v *QuotedPhraseValidator) Name() string { return "quoted_phrase" }

func (v *QuotedPhraseValidator) Validate(in Input) models.ValidationResult {
	var f findings
	r := in.Report
	if r == nil {
		return f.result()
	}

	spans := QuotedSpans(r.NarrativeText())
	if len(spans) < v.rules.MinQuotedSpans {
		f.errorf("Only %d quoted phrases in narrative (minimum %d): report does not use the user's own words",
			len(spans), v.rules.MinQuotedSpans)
	} else {
		source := normalize(in.submission().FreeText(v.rules.ChoiceFields...))
		verified := 0
		for _, span := range spans {
			if quoteVerified(source, span) {
				verified++
			}
		}
		if verified < v.rules.MinVerifiedQuotes {
			f.warnf("Only %d of %d quotes found in submission; quotes may be paraphrased or fabricated", verified, len(spans))
		}
	}

	if n := len(r.InputEcho.QuotedPhrases); n < v.rules.MinEchoPhrases {
		f.warnf("Input echo has fewer than %d quoted phrases (%d)", v.rules.MinEchoPhrases, n)
	}

	return f.result()
}

// quoteVerified reports whether any run of three consecutive words from the
// quote (or the whole quote, if shorter) appears in the normalized source.
func quoteVerified(source, quote string) bool {
	words := strings.Fields(normalize(quote))
	if len(words) == 0 || source == "" {
		return false
	}
	if len(words) <= quoteWindow {
		return containsWords(source, strings.Join(words, " "))
	}
	for i := 0; i+quoteWindow <= len(words); i++ {
		if containsWords(source, strings.Join(words[i:i+quoteWindow], " ")) {
			return true
		}
	}
	return false
}

// containsWords matches on word boundaries of a normalized string.
func containsWords(source, fragment string) bool {
	return strings.Contains(" "+source+" ", " "+fragment+" ")
}
