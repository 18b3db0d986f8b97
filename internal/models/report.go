package models

import "strings"

// Report is the structured document produced by the generation step.
type Report struct {
	Meta            Meta            `json:"meta"`
	Recipient       Recipient       `json:"recipient"`
	Sections        Sections        `json:"sections"`
	Recommendations Recommendations `json:"recommendations"`
	InputEcho       InputEcho       `json:"input_echo"`
}

type Meta struct {
	Persona       Persona `json:"persona"`
	SubmissionID  string  `json:"submission_id"`
	Model         string  `json:"model"`
	PromptVersion string  `json:"prompt_version"`
}

type Recipient struct {
	Name         string `json:"name"`
	BusinessType string `json:"business_type"`
	BusinessName string `json:"business_name,omitempty"`
	Industry     string `json:"industry,omitempty"`
}

type Sections struct {
	Opening    Opening    `json:"opening"`
	Snapshot   Snapshot   `json:"snapshot"`
	Diagnosis  Diagnosis  `json:"diagnosis"`
	JourneyMap JourneyMap `json:"journey_map"`
	NextStep   NextStep   `json:"next_step"`
	Closing    Closing    `json:"closing"`
}

type Opening struct {
	Headline string `json:"headline"`
	Body     string `json:"body"`
}

type Snapshot struct {
	Summary   string   `json:"summary"`
	Strengths []string `json:"strengths"`
}

type Diagnosis struct {
	Summary           string          `json:"summary"`
	PrimaryBlocker    Blocker         `json:"primary_blocker"`
	SecondaryBlockers []Blocker       `json:"secondary_blockers,omitempty"`
	CostOfInaction    *CostOfInaction `json:"cost_of_inaction,omitempty"`
}

type Blocker struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// CostOfInaction is the report's claimed yearly cost of leaving the blocker alone.
type CostOfInaction struct {
	HoursPerWeek float64 `json:"hours_per_week"`
	HourlyValue  float64 `json:"hourly_value"`
	WeeksPerYear float64 `json:"weeks_per_year"`
	AnnualCost   float64 `json:"annual_cost"`
	Explanation  string  `json:"explanation,omitempty"`
}

type JourneyMap struct {
	Phases []Phase `json:"phases"`
}

type Phase struct {
	Number             int     `json:"number"`
	Title              string  `json:"title"`
	Description        string  `json:"description"`
	Tasks              []Task  `json:"tasks"`
	CompletionCriteria *string `json:"completion_criteria,omitempty"`
}

type Task struct {
	Description string `json:"description"`
	ServiceID   string `json:"service_id,omitempty"`
}

type NextStep struct {
	Headline      string         `json:"headline"`
	Body          string         `json:"body"`
	DIYPath       string         `json:"diy_path,omitempty"`
	SupportedPath *SupportedPath `json:"supported_path,omitempty"`
}

type SupportedPath struct {
	ServiceID   string `json:"service_id"`
	Description string `json:"description"`
}

type Closing struct {
	Message string `json:"message"`
}

type Recommendations struct {
	Services []RecommendedService `json:"services"`
	Package  *Package             `json:"package,omitempty"`
}

type RecommendedService struct {
	ServiceID string  `json:"service_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Reason    string  `json:"reason,omitempty"`
}

type Package struct {
	Name       string   `json:"name"`
	Price      float64  `json:"price"`
	ServiceIDs []string `json:"service_ids"`
}

// InputEcho restates what the generator believed the user said, for audit.
type InputEcho struct {
	Name           string   `json:"name"`
	Persona        Persona  `json:"persona"`
	PrimaryGoal    string   `json:"primary_goal"`
	BiggestBlocker string   `json:"biggest_blocker"`
	QuotedPhrases  []string `json:"quoted_phrases"`
}

// Blockers returns the primary blocker followed by any secondary ones.
func (d Diagnosis) Blockers() []Blocker {
	out := make([]Blocker, 0, 1+len(d.SecondaryBlockers))
	out = append(out, d.PrimaryBlocker)
	return append(out, d.SecondaryBlockers...)
}

// ── Text views ─────────────────────────────────────────

func (o Opening) Text() string { return joinText(o.Headline, o.Body) }

func (s Snapshot) Text() string {
	return joinText(append([]string{s.Summary}, s.Strengths...)...)
}

func (d Diagnosis) Text() string {
	parts := []string{d.Summary}
	for _, b := range d.Blockers() {
		parts = append(parts, b.Title, b.Description)
	}
	if d.CostOfInaction != nil {
		parts = append(parts, d.CostOfInaction.Explanation)
	}
	return joinText(parts...)
}

func (j JourneyMap) Text() string {
	var parts []string
	for _, p := range j.Phases {
		parts = append(parts, p.Title, p.Description)
		for _, t := range p.Tasks {
			parts = append(parts, t.Description)
		}
		if p.CompletionCriteria != nil {
			parts = append(parts, *p.CompletionCriteria)
		}
	}
	return joinText(parts...)
}

func (n NextStep) Text() string {
	parts := []string{n.Headline, n.Body, n.DIYPath}
	if n.SupportedPath != nil {
		parts = append(parts, n.SupportedPath.Description)
	}
	return joinText(parts...)
}

// NarrativeText is every user-facing section, excluding metadata and the input echo.
func (r *Report) NarrativeText() string {
	if r == nil {
		return ""
	}
	s := r.Sections
	return joinText(
		s.Opening.Text(),
		s.Snapshot.Text(),
		s.Diagnosis.Text(),
		s.JourneyMap.Text(),
		s.NextStep.Text(),
		s.Closing.Message,
	)
}

// FullText is the narrative plus recommendation copy.
func (r *Report) FullText() string {
	if r == nil {
		return ""
	}
	parts := []string{r.NarrativeText()}
	for _, svc := range r.Recommendations.Services {
		parts = append(parts, svc.Name, svc.Reason)
	}
	if r.Recommendations.Package != nil {
		parts = append(parts, r.Recommendations.Package.Name)
	}
	return joinText(parts...)
}

func joinText(parts ...string) string {
	var out []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, "\n")
}
