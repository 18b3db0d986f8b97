// Package confidence turns per-validator findings into a single publish or
// review decision.
//
// Scoring:
//   - any error anywhere: score 0, no auto-approve, flags = the errors
//   - otherwise start at 100 and deduct per warning using the severity table
//     (unclassified warnings cost the default deduction), floored at 0
//   - bonuses for rich quoting and blocked/unlocked framing, capped at 100
//   - auto-approve needs BOTH score >= 90 AND at most 2 warnings, so bonuses
//     cannot buy approval for a noisy document
package confidence

import (
	"fmt"
	"strings"
	"sync"

	"github.com/reportgate/backend/internal/models"
	"github.com/reportgate/backend/internal/rules"
	"github.com/reportgate/backend/internal/validators"
)

const maxScore = 100

type Engine struct {
	rules      *rules.Set
	validators []validators.Validator
}

// NewEngine builds an engine running the full validator set.
func NewEngine(set *rules.Set) *Engine {
	return &Engine{rules: set, validators: validators.All(set)}
}

// NewEngineWith builds an engine over a custom validator list.
func NewEngineWith(set *rules.Set, vs ...validators.Validator) *Engine {
	return &Engine{rules: set, validators: vs}
}

// Check is one validator's named result.
type Check struct {
	Name   string                  `json:"name"`
	Result models.ValidationResult `json:"result"`
}

type Deduction struct {
	Flag   string `json:"flag"`
	Points int    `json:"points"`
}

type Bonus struct {
	Reason string `json:"reason"`
	Points int    `json:"points"`
}

// Assessment is the full breakdown behind a ConfidenceResult.
type Assessment struct {
	Result     models.ConfidenceResult `json:"result"`
	Checks     []Check                 `json:"checks"`
	Deductions []Deduction             `json:"deductions,omitempty"`
	Bonuses    []Bonus                 `json:"bonuses,omitempty"`
}

// Evaluate is the single entry point: report + submission + catalogue in,
// confidence result out.
func (e *Engine) Evaluate(report *models.Report, sub *models.Submission, cat models.Catalogue) models.ConfidenceResult {
	return e.Assess(report, sub, cat).Result
}

func (e *Engine) Assess(report *models.Report, sub *models.Submission, cat models.Catalogue) Assessment {
	checks := e.run(validators.Input{Report: report, Submission: sub, Catalogue: cat})
	a := Assessment{Checks: checks}

	var errs []string
	for _, c := range checks {
		errs = append(errs, c.Result.Errors...)
	}
	if len(errs) > 0 {
		a.Result = models.ConfidenceResult{Score: 0, AutoApprove: false, Flags: errs}
		return a
	}

	warnings := []string{}
	score := maxScore
	for _, c := range checks {
		for _, w := range c.Result.Warnings {
			warnings = append(warnings, w)
			pts := e.deduction(w)
			a.Deductions = append(a.Deductions, Deduction{Flag: w, Points: pts})
			score -= pts
			if score < 0 {
				score = 0
			}
		}
	}

	a.Bonuses = e.bonuses(report)
	for _, b := range a.Bonuses {
		score += b.Points
	}
	if score > maxScore {
		score = maxScore
	}

	gate := e.rules.AutoApprove
	a.Result = models.ConfidenceResult{
		Score:       score,
		AutoApprove: score >= gate.MinScore && len(warnings) <= gate.MaxWarnings,
		Flags:       warnings,
	}
	return a
}

// run fans the validators out and joins their results in declaration order,
// so the outcome never depends on scheduling.
func (e *Engine) run(in validators.Input) []Check {
	checks := make([]Check, len(e.validators))
	var wg sync.WaitGroup
	for i, v := range e.validators {
		wg.Add(1)
		go func(i int, v validators.Validator) {
			defer wg.Done()
			checks[i] = check(v, in)
		}(i, v)
	}
	wg.Wait()
	return checks
}

// check runs one validator. A panic becomes an error finding on that check,
// which sends the report to review instead of taking the process down.
func check(v validators.Validator, in validators.Input) (c Check) {
	c.Name = v.Name()
	defer func() {
		if r := recover(); r != nil {
			c.Result = models.NewValidationResult([]string{fmt.Sprintf("Validator %s failed: %v", c.Name, r)}, nil)
		}
	}()
	c.Result = v.Validate(in)
	return c
}

func (e *Engine) deduction(warning string) int {
	lower := strings.ToLower(warning)
	for _, s := range e.rules.Severities {
		if strings.Contains(lower, strings.ToLower(s.Match)) {
			return s.Points
		}
	}
	return e.rules.DefaultDeduction
}
