package validators

import (
	"github.com/reportgate/backend/internal/models"
	"github.com/reportgate/backend/internal/rules"
)

func strPtr(s string) *string { return &s }

func testRules() *rules.Set {
	return rules.MustDefault()
}

// cleanSubmission and cleanReport pass every validator with no findings.
func cleanSubmission() *models.Submission {
	return &models.Submission{
		ID:      "sub-001",
		Persona: models.PersonaB,
		Email:   "maya@example.com",
		Answers: map[string]models.Answer{
			"contact":              models.RecordAnswer(`{"name":"Maya Patel","email":"maya@example.com"}`),
			"business_type":        models.TextAnswer("food"),
			"business_description": models.TextAnswer("I run a small catering company doing office lunches and weekend weddings."),
			"biggest_blocker":      models.TextAnswer("I spend my evenings chasing orders over email and WhatsApp and I feel like I'm drowning in admin."),
			"primary_goal":         models.TextAnswer("I want to take orders online so I can get my evenings back with my kids."),
			"hours_per_week":       models.TextAnswer("10"),
			"hourly_rate":          models.TextAnswer("45"),
			"budget":               models.TextAnswer("£300"),
			"channels":             models.ListAnswer("Email", "WhatsApp", "Phone"),
		},
	}
}

func cleanReport() *models.Report {
	return &models.Report{
		Meta: models.Meta{
			Persona:       models.PersonaB,
			SubmissionID:  "sub-001",
			Model:         "claude-sonnet",
			PromptVersion: "v3",
		},
		Recipient: models.Recipient{
			Name:         "Maya Patel",
			BusinessType: "food",
			BusinessName: "Maya's Kitchen",
		},
		Sections: models.Sections{
			Opening: models.Opening{
				Headline: "Maya, your evenings are blocked by order admin",
				Body:     `You told us you are "drowning in admin" and that you want "to take orders online". That is a clear, fixable problem.`,
			},
			Snapshot: models.Snapshot{
				Summary:   "Your catering work is in demand; the bottleneck is how orders reach you.",
				Strengths: []string{"Office lunch clients come back to you every week", "Wedding bookings fill your weekends"},
			},
			Diagnosis: models.Diagnosis{
				Summary: `Orders arrive by "email and WhatsApp", so every evening goes on copying them into a spreadsheet.`,
				PrimaryBlocker: models.Blocker{
					Title:       "Orders arrive through scattered channels",
					Description: "Right now your growth is blocked by manual order handling.",
				},
				CostOfInaction: &models.CostOfInaction{
					HoursPerWeek: 10,
					HourlyValue:  45,
					WeeksPerYear: 48,
					AnnualCost:   21600,
					Explanation:  "10 hours a week of order admin at £45 an hour over 48 weeks.",
				},
			},
			JourneyMap: models.JourneyMap{Phases: []models.Phase{
				{
					Number:             1,
					Title:              "Capture orders in one place",
					Description:        "Set up a simple online ordering form.",
					Tasks:              []models.Task{{Description: "Launch the online ordering system", ServiceID: "svc-ordering"}},
					CompletionCriteria: strPtr("Every new order arrives through the form"),
				},
				{
					Number:             2,
					Title:              "Confirm orders automatically",
					Description:        "Send confirmations without typing them.",
					Tasks:              []models.Task{{Description: "Turn on automatic order confirmations"}},
					CompletionCriteria: strPtr("No order needs a manual reply"),
				},
				{
					Number:             3,
					Title:              "Get your evenings back",
					Description:        "Look at what the new flow unlocked for you.",
					Tasks:              []models.Task{{Description: "Count the evenings that are free each week"}},
					CompletionCriteria: strPtr("Four evenings a week are free of order admin"),
				},
			}},
			NextStep: models.NextStep{
				Headline: "When you're ready, start with ordering",
				Body:     "You could set up the ordering system this month; it fits inside the £300 budget you mentioned. Both paths work: do it yourself or let us set it up.",
				DIYPath:  "Use a free form builder and link it from your website.",
				SupportedPath: &models.SupportedPath{
					ServiceID:   "svc-ordering",
					Description: "We build and connect your ordering system for you.",
				},
			},
			Closing: models.Closing{
				Message: "Calm evenings are closer than they feel, and this is very possible.",
			},
		},
		Recommendations: models.Recommendations{
			Services: []models.RecommendedService{
				{ServiceID: "svc-ordering", Name: "Online Ordering System", Price: 450, Reason: "Takes orders off email"},
			},
		},
		InputEcho: models.InputEcho{
			Name:           "Maya Patel",
			Persona:        models.PersonaB,
			PrimaryGoal:    "Take orders online",
			BiggestBlocker: "Order admin",
			QuotedPhrases:  []string{"drowning in admin", "chasing orders over email and WhatsApp"},
		},
	}
}

func testCatalogue() models.Catalogue {
	return models.Catalogue{
		{ID: "svc-ordering", Name: "Online Ordering System", Price: 450, Category: "systems", Status: models.ServiceActive,
			ApplicablePersonas: []models.Persona{models.PersonaA, models.PersonaB, models.PersonaC}},
		{ID: "svc-booking", Name: "Booking Calendar Setup", Price: 300, Category: "systems", Status: models.ServiceActive,
			ApplicablePersonas: []models.Persona{models.PersonaB, models.PersonaC}},
		{ID: "svc-legacy", Name: "Legacy Website Audit", Price: 200, Category: "audit", Status: models.ServiceDiscontinued},
	}
}

func cleanInput() Input {
	return Input{Report: cleanReport(), Submission: cleanSubmission(), Catalogue: testCatalogue()}
}
