package validators

import "testing"

func TestBrandVoice(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(in *Input)
		want   string
	}{
		{"banned phrase", func(in *Input) {
			in.Report.Sections.NextStep.Body += " You should leverage social media."
		}, `Banned phrase: "you should"`},
		{"no permission phrases", func(in *Input) {
			in.Report.Sections.NextStep.Headline = "Start with ordering"
			in.Report.Sections.NextStep.Body = "Set up the ordering system this month within the £300 budget."
		}, "Fewer than 2 permission-giving phrases (found 0)"},
		{"headline without first name", func(in *Input) {
			in.Report.Sections.Opening.Headline = "Your evenings are blocked by order admin"
		}, `Opening headline does not use first name "Maya"`},
		{"flat closing", func(in *Input) {
			in.Report.Sections.Closing.Message = "Thanks for filling in the form."
		}, "Closing message has no encouraging language"},
		{"no unlocked framing", func(in *Input) {
			in.Report.Sections.JourneyMap.Phases[2].Description = "Look at what changed for you."
		}, "Missing blocked/unlocked framing"},
	}

	v := NewBrandVoice(testRules())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := cleanInput()
			tt.mutate(&in)
			res := v.Validate(in)
			if !res.Valid {
				t.Fatalf("brand voice never errors, got %v", res.Errors)
			}
			if !hasFinding(res.Warnings, tt.want) {
				t.Errorf("expected warning %q, got %v", tt.want, res.Warnings)
			}
		})
	}
}
