package assistant

import "context"

// Interpretation is what a language-understanding collaborator extracts
// from one free-text command: an intent tag, the fields it pulled out of
// the text, and a conversational response. The tag is trusted to select a
// handler; every other field is untrusted input that goes through the
// same validation and defaulting as a form submission.
type Interpretation struct {
	Tag          Tag            `json:"intent"`
	Fields       map[string]any `json:"fields,omitempty"`
	ResponseText string         `json:"response_text,omitempty"`
}

// Understander turns a free-text command into an Interpretation. The
// privileged flag tells the service whether mutating intents are even
// worth extracting for this caller; it never substitutes for the
// dispatcher's own permission check.
type Understander interface {
	Understand(ctx context.Context, command string, privileged bool) (*Interpretation, error)
}
