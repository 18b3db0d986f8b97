package validators

import (
	"fmt"
	"strings"

	"github.com/reportgate/backend/internal/models"
)

const (
	journeyPhases    = 3
	minServices      = 1
	maxServices      = 5
	minQuotedPhrases = 2
	maxQuotedPhrases = 5
	maxBlockers      = 3
)

// SchemaValidator confirms every required branch of the report is present
// with the right cardinalities. Its errors gate everything downstream.
type SchemaValidator struct{}

func NewSchema() *SchemaValidator { return &SchemaValidator{} }

func (v *SchemaValidator) Name() string { return "schema" }

func (v *SchemaValidator) Validate(in Input) models.ValidationResult {
	var f findings
	r := in.Report
	if r == nil {
		f.errorf("Report is missing")
		return f.result()
	}

	require := func(path, value string) {
		if strings.TrimSpace(value) == "" {
			f.errorf("Missing required field: %s", path)
		}
	}
	requirePersona := func(path string, p models.Persona) {
		if p == "" {
			f.errorf("Missing required field: %s", path)
		} else if !models.ValidPersonas[p] {
			f.errorf("Invalid %s %q (expected A, B or C)", path, p)
		}
	}

	// ── meta / recipient ───────────────────────────────────
	requirePersona("meta.persona", r.Meta.Persona)
	require("meta.submission_id", r.Meta.SubmissionID)
	require("meta.model", r.Meta.Model)
	require("meta.prompt_version", r.Meta.PromptVersion)

	require("recipient.name", r.Recipient.Name)
	require("recipient.business_type", r.Recipient.BusinessType)

	// ── sections ───────────────────────────────────────────
	s := r.Sections
	require("sections.opening.headline", s.Opening.Headline)
	require("sections.opening.body", s.Opening.Body)
	require("sections.snapshot.summary", s.Snapshot.Summary)
	for i, strength := range s.Snapshot.Strengths {
		require(fmt.Sprintf("sections.snapshot.strengths[%d]", i), strength)
	}

	require("sections.diagnosis.summary", s.Diagnosis.Summary)
	require("sections.diagnosis.primary_blocker.title", s.Diagnosis.PrimaryBlocker.Title)
	require("sections.diagnosis.primary_blocker.description", s.Diagnosis.PrimaryBlocker.Description)
	if n := len(s.Diagnosis.Blockers()); n > maxBlockers {
		f.errorf("sections.diagnosis must list 1-%d blockers, got %d", maxBlockers, n)
	}
	for i, b := range s.Diagnosis.SecondaryBlockers {
		require(fmt.Sprintf("sections.diagnosis.secondary_blockers[%d].title", i), b.Title)
	}

	v.validateJourney(&f, s.JourneyMap)

	require("sections.next_step.headline", s.NextStep.Headline)
	require("sections.next_step.body", s.NextStep.Body)
	if sp := s.NextStep.SupportedPath; sp != nil {
		require("sections.next_step.supported_path.service_id", sp.ServiceID)
	}
	require("sections.closing.message", s.Closing.Message)

	// ── recommendations ────────────────────────────────────
	services := r.Recommendations.Services
	if n := len(services); n < minServices || n > maxServices {
		f.errorf("recommendations.services must have %d-%d entries, got %d", minServices, maxServices, n)
	}
	for i, svc := range services {
		require(fmt.Sprintf("recommendations.services[%d].service_id", i), svc.ServiceID)
		require(fmt.Sprintf("recommendations.services[%d].name", i), svc.Name)
	}
	if pkg := r.Recommendations.Package; pkg != nil {
		require("recommendations.package.name", pkg.Name)
		if len(pkg.ServiceIDs) == 0 {
			f.errorf("recommendations.package.service_ids is empty")
		}
	}

	// ── input echo ─────────────────────────────────────────
	require("input_echo.name", r.InputEcho.Name)
	requirePersona("input_echo.persona", r.InputEcho.Persona)
	require("input_echo.primary_goal", r.InputEcho.PrimaryGoal)
	require("input_echo.biggest_blocker", r.InputEcho.BiggestBlocker)
	phrases := r.InputEcho.QuotedPhrases
	if n := len(phrases); n < minQuotedPhrases || n > maxQuotedPhrases {
		f.errorf("input_echo.quoted_phrases must have %d-%d entries, got %d", minQuotedPhrases, maxQuotedPhrases, n)
	}
	for i, p := range phrases {
		require(fmt.Sprintf("input_echo.quoted_phrases[%d]", i), p)
	}

	return f.result()
}

func (v *SchemaValidator) validateJourney(f *findings, jm models.JourneyMap) {
	if n := len(jm.Phases); n != journeyPhases {
		f.errorf("sections.journey_map.phases must have exactly %d entries, got %d", journeyPhases, n)
	}
	for i, p := range jm.Phases {
		if p.Number != i+1 {
			f.errorf("sections.journey_map.phases[%d] is numbered %d, expected %d", i, p.Number, i+1)
		}
		if strings.TrimSpace(p.Title) == "" {
			f.errorf("Missing required field: sections.journey_map.phases[%d].title", i)
		}
		if len(p.Tasks) == 0 {
			f.errorf("sections.journey_map.phases[%d].tasks is empty", i)
		}
		if p.CompletionCriteria == nil || strings.TrimSpace(*p.CompletionCriteria) == "" {
			f.warnf("Phase %d missing completion criteria", i+1)
		}
	}
}
