package models

import "testing"

func TestModelFromName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"short name fast", "fast", "gemini-2.5-flash"},
		{"short name pro", "pro", "gemini-2.5-pro"},
		{"full id", "gemini-2.5-pro", "gemini-2.5-pro"},
		{"unknown falls back to default", "nonsense", DefaultModel.ID},
		{"empty falls back to default", "", DefaultModel.ID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ModelFromName(tt.input); got.ID != tt.want {
				t.Errorf("ModelFromName(%q).ID = %q, want %q", tt.input, got.ID, tt.want)
			}
		})
	}
}

func TestModelOutputText(t *testing.T) {
	tests := []struct {
		name   string
		output ModelOutput
		want   string
	}{
		{
			name:   "empty candidates",
			output: ModelOutput{},
			want:   "",
		},
		{
			name: "chosen candidate",
			output: ModelOutput{
				Candidates: []Candidate{{Text: "first"}, {Text: "second"}},
				Chosen:     1,
			},
			want: "second",
		},
		{
			name: "chosen out of range falls back to first",
			output: ModelOutput{
				Candidates: []Candidate{{Text: "first"}},
				Chosen:     5,
			},
			want: "first",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.output.Text(); got != tt.want {
				t.Errorf("Text() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestChosenCandidateNilOnEmpty(t *testing.T) {
	var m ModelOutput
	if m.ChosenCandidate() != nil {
		t.Error("ChosenCandidate() on empty output should be nil")
	}
}
