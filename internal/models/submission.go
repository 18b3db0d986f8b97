package models

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cast"
	"github.com/tidwall/gjson"
)

type Persona string

const (
	PersonaA Persona = "A" // just starting: idea or pre-revenue
	PersonaB Persona = "B" // running, stuck on a bottleneck
	PersonaC Persona = "C" // established, ready to scale
)

var ValidPersonas = map[Persona]bool{
	PersonaA: true,
	PersonaB: true,
	PersonaC: true,
}

// Well-known question identifiers.
const (
	QuestionName         = "name"
	QuestionContact      = "contact"
	QuestionBusinessType = "business_type"
)

// ContactFields are answers that may hold a JSON-encoded {name, email} record.
var ContactFields = []string{QuestionContact, "name_email", "contact_details"}

type AnswerKind int

const (
	AnswerText AnswerKind = iota
	AnswerList
	AnswerRecord
)

// Answer is one questionnaire answer. Exactly one of Text, List or Raw is
// meaningful, selected by Kind.
type Answer struct {
	Kind AnswerKind
	Text string
	List []string
	Raw  string // JSON object text for AnswerRecord
}

func TextAnswer(s string) Answer { return Answer{Kind: AnswerText, Text: s} }

func ListAnswer(items ...string) Answer { return Answer{Kind: AnswerList, List: items} }

func RecordAnswer(raw string) Answer { return Answer{Kind: AnswerRecord, Raw: raw} }

func (a *Answer) UnmarshalJSON(data []byte) error {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("decode answer: %w", err)
	}

	switch val := v.(type) {
	case nil:
		*a = TextAnswer("")
	case string:
		trimmed := strings.TrimSpace(val)
		if strings.HasPrefix(trimmed, "{") && gjson.Valid(trimmed) {
			*a = RecordAnswer(trimmed)
			return nil
		}
		*a = TextAnswer(val)
	case []interface{}:
		list, err := cast.ToStringSliceE(val)
		if err != nil {
			return fmt.Errorf("decode answer list: %w", err)
		}
		*a = ListAnswer(list...)
	case map[string]interface{}:
		raw, err := json.Marshal(val)
		if err != nil {
			return fmt.Errorf("encode answer record: %w", err)
		}
		*a = RecordAnswer(string(raw))
	default:
		s, err := cast.ToStringE(val)
		if err != nil {
			return fmt.Errorf("decode answer scalar: %w", err)
		}
		*a = TextAnswer(s)
	}
	return nil
}

func (a Answer) MarshalJSON() ([]byte, error) {
	switch a.Kind {
	case AnswerList:
		if a.List == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(a.List)
	case AnswerRecord:
		return []byte(a.Raw), nil
	default:
		return json.Marshal(a.Text)
	}
}

// String flattens the answer for text scanning.
func (a Answer) String() string {
	switch a.Kind {
	case AnswerList:
		return strings.Join(a.List, ", ")
	case AnswerRecord:
		return a.Raw
	default:
		return a.Text
	}
}

type Submission struct {
	ID        string            `json:"id"`
	Persona   Persona           `json:"persona"`
	Answers   map[string]Answer `json:"answers"`
	Email     string            `json:"email"`
	CreatedAt time.Time         `json:"created_at"`
}

// Contact is the normalized identity of the person who filled in the questionnaire.
type Contact struct {
	Name  string
	Email string
}

// Text returns the flattened answer for a question, or "" when unanswered.
func (s *Submission) Text(question string) string {
	if s == nil {
		return ""
	}
	a, ok := s.Answers[question]
	if !ok {
		return ""
	}
	return strings.TrimSpace(a.String())
}

// Contact resolves the display name: the direct name answer first, then any
// encoded contact record, then empty.
func (s *Submission) Contact() Contact {
	var c Contact
	if s == nil {
		return c
	}
	c.Email = strings.TrimSpace(s.Email)

	if a, ok := s.Answers[QuestionName]; ok && a.Kind == AnswerText {
		c.Name = strings.TrimSpace(a.Text)
	}

	// the name question itself may carry the encoded record
	for _, field := range append([]string{QuestionName}, ContactFields...) {
		a, ok := s.Answers[field]
		if !ok || a.Kind != AnswerRecord {
			continue
		}
		if c.Name == "" {
			c.Name = recordName(a.Raw)
		}
		if c.Email == "" {
			c.Email = strings.TrimSpace(gjson.Get(a.Raw, "email").String())
		}
	}
	return c
}

func recordName(raw string) string {
	for _, path := range []string{"name", "full_name"} {
		if v := strings.TrimSpace(gjson.Get(raw, path).String()); v != "" {
			return v
		}
	}
	first := strings.TrimSpace(gjson.Get(raw, "first_name").String())
	last := strings.TrimSpace(gjson.Get(raw, "last_name").String())
	return strings.TrimSpace(first + " " + last)
}

// FreeText concatenates every free-text answer in question order, skipping
// list answers, encoded records and the excluded (multiple-choice) questions.
func (s *Submission) FreeText(exclude ...string) string {
	if s == nil {
		return ""
	}
	skip := make(map[string]bool, len(exclude))
	for _, q := range exclude {
		skip[q] = true
	}

	var parts []string
	for _, key := range s.questionKeys() {
		a := s.Answers[key]
		if skip[key] || a.Kind != AnswerText {
			continue
		}
		if t := strings.TrimSpace(a.Text); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, "\n")
}

// AllText flattens every answer, including lists and records.
func (s *Submission) AllText() string {
	if s == nil {
		return ""
	}
	var parts []string
	for _, key := range s.questionKeys() {
		if t := strings.TrimSpace(s.Answers[key].String()); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, "\n")
}

func (s *Submission) questionKeys() []string {
	keys := make([]string, 0, len(s.Answers))
	for k := range s.Answers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
