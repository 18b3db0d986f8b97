package validators

import (
	"strings"

	"github.com/reportgate/backend/internal/models"
	"github.com/reportgate/backend/internal/rules"
)

// BrandVoiceValidator checks tone. Every finding is a warning: tone alone
// never blocks publication.
type BrandVoiceValidator struct {
	rules *rules.Set
}

func NewBrandVoice(set *rules.Set) *BrandVoiceValidator {
	return &BrandVoiceValidator{rules: set}
}

func (v *BrandVoiceValidator) Name() string { return "brand_voice" }

func (v *BrandVoiceValidator) Validate(in Input) models.ValidationResult {
	var f findings
	r := in.Report
	if r == nil {
		return f.result()
	}
	text := r.NarrativeText()

	for _, phrase := range v.rules.BannedPhrases {
		if containsFold(text, phrase) {
			f.warnf("Banned phrase: %q", phrase)
		}
	}

	if n := countMatches(v.rules.Permission, text); n < v.rules.MinPermissionPhrases {
		f.warnf("Fewer than %d permission-giving phrases (found %d)", v.rules.MinPermissionPhrases, n)
	}

	name := r.Recipient.Name
	if strings.TrimSpace(name) == "" {
		name = r.InputEcho.Name
	}
	if first := models.FirstName(name); first != "" && !containsFold(r.Sections.Opening.Headline, first) {
		f.warnf("Opening headline does not use first name %q", first)
	}

	if !v.encouraging(r.Sections.Closing.Message) {
		f.warnf("Closing message has no encouraging language")
	}

	if !v.rules.Blocked.MatchString(text) || !v.rules.Unlocked.MatchString(text) {
		f.warnf("Missing blocked/unlocked framing")
	}

	return f.result()
}

func (v *BrandVoiceValidator) encouraging(message string) bool {
	words := make(map[string]bool)
	for _, w := range strings.FieldsFunc(fold(message), func(r rune) bool {
		return !(r >= 'a' && r <= 'z') && r != '\''
	}) {
		words[w] = true
	}
	for _, w := range v.rules.EncouragingWords {
		if words[strings.ToLower(w)] {
			return true
		}
	}
	return false
}
