package message

import "fmt"

// Type is a conventional-commit type drawn from a fixed set.
type Type string

const (
	TypeFeat     Type = "feat"
	TypeFix      Type = "fix"
	TypeTest     Type = "test"
	TypeDocs     Type = "docs"
	TypeRefactor Type = "refactor"
	TypeChore    Type = "chore"
)

// KnownTypes returns the conventional types accepted by default. The allowed
// set in force for validation is carried by policy.Policy so hosts can narrow
// it without touching the engine.
func KnownTypes() []Type {
	return []Type{TypeFeat, TypeFix, TypeTest, TypeDocs, TypeRefactor, TypeChore}
}

// Message is a candidate commit message: `type: subject` header plus an
// optional body separated by a blank line.
type Message struct {
	Type    Type   `json:"type"`
	Subject string `json:"subject"`
	Body    string `json:"body,omitempty"`
}

// Header renders the `type: subject` header line.
func (m *Message) Header() string {
	return fmt.Sprintf("%s: %s", m.Type, m.Subject)
}

// Format renders the full commit message text.
func (m *Message) Format() string {
	if m.Body == "" {
		return m.Header()
	}
	return m.Header() + "\n\n" + m.Body
}
