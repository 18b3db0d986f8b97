package rules

import "github.com/reportgate/backend/internal/models"

// Default returns a fresh copy of the built-in rule set.
func Default() *Rules {
	return &Rules{
		ChoiceFields: []string{
			"business_type", "stage", "hours_per_week", "weekly_hours",
			"hourly_rate", "budget", "monthly_budget", "revenue_band", "persona",
		},

		BannedPhrases: []string{
			// prescriptive
			"you must", "you need to", "you should", "you have to",
			// fear and urgency
			"before it's too late", "don't miss out", "you're losing money", "falling behind", "time is running out",
			// jargon
			"leverage", "synergy", "circle back", "move the needle", "low-hanging fruit", "paradigm shift",
			// sales pressure
			"act now", "limited time", "buy now", "don't wait",
			// demographic slang
			"hey guys", "mompreneur", "girlboss", "boomer",
		},
		PermissionPatterns: []string{
			`(?i)\byou could\b`,
			`(?i)\bwhen you(?:'|’)?re ready\b`,
			`(?i)\bboth paths work\b`,
			`(?i)\bif it helps\b`,
			`(?i)\byou might\b`,
			`(?i)\bit(?:'|’)?s (?:completely )?up to you\b`,
			`(?i)\bno rush\b`,
			`(?i)\bwhichever (?:feels|suits)\b`,
		},
		MinPermissionPhrases: 2,
		EncouragingWords: []string{
			"ready", "possible", "proud", "progress", "capable",
			"momentum", "confident", "excited", "believe",
		},
		BlockedPattern:  `(?i)\bblocked\b`,
		UnlockedPattern: `(?i)\bunlock(?:ed|s)?\b`,

		GenericPhrases: []string{
			"take it to the next level", "reach your full potential", "the sky's the limit",
			"game changer", "game-changer", "every business is unique", "success is a journey",
			"dream big", "the possibilities are endless", "on your journey",
		},
		FillerStrengths: []string{
			"you are passionate", "you're passionate", "you care about your customers",
			"you have a great idea", "you work hard", "you are motivated", "you're motivated",
			"you have a vision",
		},
		VagueAdvice: []string{
			"think about your goals", "consider your options", "focus on what matters",
			"stay consistent", "keep going", "believe in yourself", "work smarter",
			"find your niche", "build your brand",
		},
		CheerleaderPhrases: []string{
			"you've got this", "you got this", "so proud of you", "you're amazing",
			"you are amazing", "rockstar", "superstar", "crushing it", "killing it",
		},
		TemplateHeadlines: []string{
			"you're closer than you think", "you are closer than you think",
			"you're not alone", "the good news is", "it's time to shine",
		},
		MaxGenericPhrases: 3,

		MinQuotedSpans:    3,
		MinVerifiedQuotes: 2,
		MinEchoPhrases:    2,
		EchoPhraseMinLen:  10,

		NumericClaimPatterns: []string{
			`(?i)\b(\d[\d,]*)\s+(?:employees|staff|clients|customers|team members|subscribers|followers)\b`,
			`(?i)\b(?:revenue|turnover|sales|income)\s+of\s+[£$€]?\s?(\d[\d,]*(?:\.\d+)?)`,
			`(?i)\b(\d+)\s+years?\s+(?:in business|of experience|of trading)\b`,
		},

		Calculation: CalculationLimits{
			Tolerance:         1,
			MaxHoursPerWeek:   60,
			MaxHourlyValue:    500,
			MaxWeeksPerYear:   52,
			PriceWarningAbove: 10000,
		},
		ClaimLimits: []ClaimLimit{
			{Label: "return multiple", Pattern: `(?i)\b(\d+(?:\.\d+)?)\s?x\s+(?:return|roi|growth|revenue)`, Max: 10},
			{Label: "percentage increase", Pattern: `(?i)\b(\d+(?:\.\d+)?)\s?%\s+(?:increase|growth|more|boost|rise)`, Max: 500},
			{Label: "hours saved", Pattern: `(?i)\bsave\s+(?:you\s+)?(?:up to\s+)?(\d+(?:\.\d+)?)\s+hours`, Max: 40},
			{Label: "monetary value", Pattern: `(?i)\bworth\s+(?:up to\s+)?[£$€]\s?(\d[\d,]*(?:\.\d+)?)`, Max: 50000},
		},

		BusinessTypes: []BusinessType{
			{
				Key:        "food",
				Keywords:   []string{"restaurant", "cafe", "café", "catering", "caterer", "bakery", "takeaway", "food truck", "chef", "meal prep"},
				Relevant:   []string{"ordering", "menu", "delivery", "online shop", "website"},
				Irrelevant: []string{"booking calendar", "appointment", "client portal", "course platform"},
			},
			{
				Key:        "appointments",
				Keywords:   []string{"salon", "coach", "coaching", "therapist", "therapy", "consultant", "consulting", "clinic", "tutor", "personal trainer"},
				Relevant:   []string{"booking", "calendar", "scheduling", "crm", "client"},
				Irrelevant: []string{"ordering system", "inventory", "menu"},
			},
			{
				Key:        "retail",
				Keywords:   []string{"shop", "retail", "boutique", "e-commerce", "ecommerce", "etsy", "products", "stock"},
				Relevant:   []string{"online shop", "ecommerce", "inventory", "product", "checkout"},
				Irrelevant: []string{"booking calendar", "menu", "course platform"},
			},
			{
				Key:        "trades",
				Keywords:   []string{"plumber", "plumbing", "electrician", "builder", "contractor", "landscaping", "handyman", "roofing"},
				Relevant:   []string{"quote", "invoice", "job", "scheduling", "booking"},
				Irrelevant: []string{"online shop", "course platform", "menu"},
			},
			{
				Key:        "creative",
				Keywords:   []string{"photographer", "photography", "designer", "illustrator", "artist", "copywriter", "studio"},
				Relevant:   []string{"portfolio", "website", "booking", "client", "proposal"},
				Irrelevant: []string{"ordering system", "inventory", "menu"},
			},
			{Key: "general"},
		},
		DefaultBusinessType: "general",

		NumberFactPatterns: []string{
			`(?i)\b(\d+(?:\.\d+)?)\s*(?:hours|hrs|hour)\b`,
		},

		JustStartingPersona: models.PersonaA,
		StrongIntentSignals: []string{
			"deposit", "pre-order", "preorder", "pre-sale", "presale", "paid waitlist",
			"paid pilot", "a/b test", "priced landing page", "take payment", "first paying customer",
		},
		WeakIntentSignals: []string{
			"would you buy", "does this sound good", "would you use", "do you like the idea",
			"what do you think of", "ask your friends",
		},

		HoursFields:  []string{"hours_per_week", "weekly_hours", "admin_hours", "hours_lost"},
		RateFields:   []string{"hourly_rate", "hourly_value", "rate"},
		BudgetFields: []string{"budget", "monthly_budget", "investment_budget"},
		HoursPatterns: []string{
			`(?i)\b(\d+(?:\.\d+)?)\s*(?:hours|hrs)\s*(?:a|per|each|every)\s*week`,
		},
		RatePatterns: []string{
			`(?i)[£$€]\s?(\d+(?:\.\d+)?)\s*(?:/|per|an|a)\s*(?:hour|hr)\b`,
		},
		BudgetPatterns: []string{
			`(?i)\bbudget[^£$€\d]{0,30}[£$€]?\s?(\d[\d,]*)`,
		},
		ScopeWords:    []string{"admin", "portion", "part of"},
		RateTolerance: 0.20,

		Severities: []Severity{
			{Match: "generic phrase", Points: 3},
			{Match: "filler strength", Points: 5},
			{Match: "vague advice", Points: 5},
			{Match: "cheerleader phrase", Points: 5},
			{Match: "business type", Points: 8},
			{Match: "fewer than 2 quoted phrases", Points: 8},
			{Match: "user's own numbers", Points: 5},
			{Match: "buying-intent", Points: 5},
			{Match: "inconsistency", Points: 8},
			{Match: "budget not referenced", Points: 3},
			{Match: "completion criteria", Points: 2},
		},
		DefaultDeduction: 3,
		Bonuses: BonusRules{
			EchoPhrasesMin:    4,
			EchoPhrasesPoints: 5,
			FramingMin:        2,
			FramingPoints:     3,
			QuotedSpansMin:    5,
			QuotedSpansPoints: 5,
		},
		AutoApprove: AutoApproveGate{MinScore: 90, MaxWarnings: 2},
	}
}
