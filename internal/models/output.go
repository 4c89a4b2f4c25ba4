package models

// Candidate represents a single response candidate from the API
type Candidate struct {
	Text         string
	FinishReason string
}

// ModelOutput represents the complete generateContent response
type ModelOutput struct {
	Candidates []Candidate
	Chosen     int // Index of selected candidate
}

// Text returns the chosen candidate's text
func (m *ModelOutput) Text() string {
	if len(m.Candidates) == 0 {
		return ""
	}
	if m.Chosen >= len(m.Candidates) {
		return m.Candidates[0].Text
	}
	return m.Candidates[m.Chosen].Text
}

// ChosenCandidate returns a pointer to the chosen candidate
func (m *ModelOutput) ChosenCandidate() *Candidate {
	if len(m.Candidates) == 0 {
		return nil
	}
	if m.Chosen >= len(m.Candidates) {
		return &m.Candidates[0]
	}
	return &m.Candidates[m.Chosen]
}

// Turn is one entry of the accumulated conversation history resent on
// each generateContent call
type Turn struct {
	Role string // "user" or "model"
	Text string
}
