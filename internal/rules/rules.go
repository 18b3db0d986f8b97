// Package rules holds every phrase list, pattern and weight the validators and
// the confidence engine consult. Nothing here is global: callers build a Rules
// value (Default or Load), compile it once, and pass the Set down.
package rules

import (
	"fmt"
	"os"
	"regexp"

	"github.com/reportgate/backend/internal/models"
	"gopkg.in/yaml.v3"
)

type Rules struct {
	// Questions whose answers come from fixed choices rather than free text.
	ChoiceFields []string `yaml:"choice_fields"`

	// Brand voice
	BannedPhrases        []string `yaml:"banned_phrases"`
	PermissionPatterns   []string `yaml:"permission_patterns"`
	MinPermissionPhrases int      `yaml:"min_permission_phrases"`
	EncouragingWords     []string `yaml:"encouraging_words"`
	BlockedPattern       string   `yaml:"blocked_pattern"`
	UnlockedPattern      string   `yaml:"unlocked_pattern"`

	// Specificity
	GenericPhrases     []string `yaml:"generic_phrases"`
	FillerStrengths    []string `yaml:"filler_strengths"`
	VagueAdvice        []string `yaml:"vague_advice"`
	CheerleaderPhrases []string `yaml:"cheerleader_phrases"`
	TemplateHeadlines  []string `yaml:"template_headlines"`
	MaxGenericPhrases  int      `yaml:"max_generic_phrases"`

	// Quoted phrases
	MinQuotedSpans    int `yaml:"min_quoted_spans"`
	MinVerifiedQuotes int `yaml:"min_verified_quotes"`
	MinEchoPhrases    int `yaml:"min_echo_phrases"`
	EchoPhraseMinLen  int `yaml:"echo_phrase_min_len"`

	// Input echo
	NumericClaimPatterns []string `yaml:"numeric_claim_patterns"`

	// Calculation
	Calculation CalculationLimits `yaml:"calculation"`
	ClaimLimits []ClaimLimit      `yaml:"claim_limits"`

	// Business type
	BusinessTypes       []BusinessType `yaml:"business_types"`
	DefaultBusinessType string         `yaml:"default_business_type"`

	// Numbers used
	NumberFactPatterns []string `yaml:"number_fact_patterns"`

	// Buying intent
	JustStartingPersona models.Persona `yaml:"just_starting_persona"`
	StrongIntentSignals []string       `yaml:"strong_intent_signals"`
	WeakIntentSignals   []string       `yaml:"weak_intent_signals"`

	// Consistency
	HoursFields    []string `yaml:"hours_fields"`
	RateFields     []string `yaml:"rate_fields"`
	BudgetFields   []string `yaml:"budget_fields"`
	HoursPatterns  []string `yaml:"hours_patterns"`
	RatePatterns   []string `yaml:"rate_patterns"`
	BudgetPatterns []string `yaml:"budget_patterns"`
	ScopeWords     []string `yaml:"scope_words"`
	RateTolerance  float64  `yaml:"rate_tolerance"`

	// Scoring
	Severities       []Severity      `yaml:"severities"`
	DefaultDeduction int             `yaml:"default_deduction"`
	Bonuses          BonusRules      `yaml:"bonuses"`
	AutoApprove      AutoApproveGate `yaml:"auto_approve"`
}

type CalculationLimits struct {
	Tolerance         float64 `yaml:"tolerance"`
	MaxHoursPerWeek   float64 `yaml:"max_hours_per_week"`
	MaxHourlyValue    float64 `yaml:"max_hourly_value"`
	MaxWeeksPerYear   float64 `yaml:"max_weeks_per_year"`
	PriceWarningAbove float64 `yaml:"price_warning_above"`
}

// ClaimLimit flags narrative claims whose captured number exceeds Max.
type ClaimLimit struct {
	Label   string  `yaml:"label"`
	Pattern string  `yaml:"pattern"`
	Max     float64 `yaml:"max"`
}

type BusinessType struct {
	Key        string   `yaml:"key"`
	Keywords   []string `yaml:"keywords"`
	Relevant   []string `yaml:"relevant"`
	Irrelevant []string `yaml:"irrelevant"`
}

// Severity maps a warning (by case-insensitive substring) to a point deduction.
// The first matching entry wins.
type Severity struct {
	Match  string `yaml:"match"`
	Points int    `yaml:"points"`
}

type BonusRules struct {
	EchoPhrasesMin    int `yaml:"echo_phrases_min"`
	EchoPhrasesPoints int `yaml:"echo_phrases_points"`
	FramingMin        int `yaml:"framing_min"`
	FramingPoints     int `yaml:"framing_points"`
	QuotedSpansMin    int `yaml:"quoted_spans_min"`
	QuotedSpansPoints int `yaml:"quoted_spans_points"`
}

type AutoApproveGate struct {
	MinScore    int `yaml:"min_score"`
	MaxWarnings int `yaml:"max_warnings"`
}

// Set is a compiled Rules value, safe for concurrent read-only use.
type Set struct {
	*Rules

	Permission    []*regexp.Regexp
	Blocked       *regexp.Regexp
	Unlocked      *regexp.Regexp
	NumericClaims []*regexp.Regexp
	Claims        []CompiledClaim
	NumberFacts   []*regexp.Regexp
	Hours         []*regexp.Regexp
	Rate          []*regexp.Regexp
	Budget        []*regexp.Regexp
}

type CompiledClaim struct {
	ClaimLimit
	Re *regexp.Regexp
}

// Load overlays a YAML file on the defaults. Lists present in the file
// replace the default list; absent keys keep their default.
func Load(path string) (*Rules, error) {
	r := Default()
	if path == "" {
		return r, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules: %w", err)
	}
	if err := yaml.Unmarshal(data, r); err != nil {
		return nil, fmt.Errorf("parse rules %s: %w", path, err)
	}
	return r, nil
}

// Marshal renders the rule set as YAML.
func (r *Rules) Marshal() ([]byte, error) {
	return yaml.Marshal(r)
}

func (r *Rules) Compile() (*Set, error) {
	s := &Set{Rules: r}
	var err error

	if s.Permission, err = compileAll("permission_patterns", r.PermissionPatterns); err != nil {
		return nil, err
	}
	if s.Blocked, err = compileOne("blocked_pattern", r.BlockedPattern); err != nil {
		return nil, err
	}
	if s.Unlocked, err = compileOne("unlocked_pattern", r.UnlockedPattern); err != nil {
		return nil, err
	}
	if s.NumericClaims, err = compileCapturing("numeric_claim_patterns", r.NumericClaimPatterns); err != nil {
		return nil, err
	}
	if s.NumberFacts, err = compileCapturing("number_fact_patterns", r.NumberFactPatterns); err != nil {
		return nil, err
	}
	if s.Hours, err = compileCapturing("hours_patterns", r.HoursPatterns); err != nil {
		return nil, err
	}
	if s.Rate, err = compileCapturing("rate_patterns", r.RatePatterns); err != nil {
		return nil, err
	}
	if s.Budget, err = compileCapturing("budget_patterns", r.BudgetPatterns); err != nil {
		return nil, err
	}

	for _, c := range r.ClaimLimits {
		re, err := compileOne("claim_limits."+c.Label, c.Pattern)
		if err != nil {
			return nil, err
		}
		if err := requireGroup("claim_limits."+c.Label, re); err != nil {
			return nil, err
		}
		s.Claims = append(s.Claims, CompiledClaim{ClaimLimit: c, Re: re})
	}
	return s, nil
}

// MustDefault compiles the built-in rules. It panics only if a built-in
// pattern is malformed.
func MustDefault() *Set {
	s, err := Default().Compile()
	if err != nil {
		panic(err)
	}
	return s
}

// BusinessType returns the table entry for key.
func (r *Rules) BusinessType(key string) (BusinessType, bool) {
	for _, bt := range r.BusinessTypes {
		if bt.Key == key {
			return bt, true
		}
	}
	return BusinessType{}, false
}

func compileAll(name string, patterns []string) ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for i, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("compile %s[%d]: %w", name, i, err)
		}
		out = append(out, re)
	}
	return out, nil
}

// compileCapturing is compileAll for patterns whose first group holds the
// number the validators read.
func compileCapturing(name string, patterns []string) ([]*regexp.Regexp, error) {
	out, err := compileAll(name, patterns)
	if err != nil {
		return nil, err
	}
	for i, re := range out {
		if err := requireGroup(fmt.Sprintf("%s[%d]", name, i), re); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func requireGroup(name string, re *regexp.Regexp) error {
	if re.NumSubexp() < 1 {
		return fmt.Errorf("compile %s: pattern %q needs a capture group around the number", name, re.String())
	}
	return nil
}

func compileOne(name, pattern string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", name, err)
	}
	return re, nil
}
