package message

// Parser for raw commit message text using the github.com/viant/parsly
// tokenizer. The accepted grammar is deliberately narrow: a `type: subject`
// header (single colon-space separator, no scope suffix) optionally followed
// by one blank line and a free-form body.

import (
	"fmt"
	"strings"

	"github.com/viant/parsly"
)

const typeCode = 1

var typeToken = parsly.NewToken(typeCode, "Type", &typeMatcher{})

// typeMatcher matches a run of lowercase letters – the only shape a
// conventional commit type can take.
type typeMatcher struct{}

func (m *typeMatcher) Match(cursor *parsly.Cursor) int {
	input := cursor.Input
	pos := cursor.Pos
	size := cursor.InputSize

	matched := 0
	for i := pos; i < size; i++ {
		if input[i] < 'a' || input[i] > 'z' {
			break
		}
		matched++
	}
	return matched
}

// Parse parses raw commit message text into a Message. It reports header
// shape violations (missing separator, scope suffix, empty subject,
// malformed body separator); whether the parsed type is in the allowed set
// is the validator's concern, not the parser's.
func Parse(raw string) (*Message, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("empty message")
	}
	cursor := parsly.NewCursor("message", []byte(raw), 0)

	match := cursor.MatchOne(typeToken)
	if match.Code != typeCode {
		return nil, fmt.Errorf("header must start with a lowercase type")
	}
	msgType := match.Text(cursor)

	if cursor.Pos >= cursor.InputSize || cursor.Input[cursor.Pos] != ':' {
		if cursor.Pos < cursor.InputSize && cursor.Input[cursor.Pos] == '(' {
			return nil, fmt.Errorf("scope suffix is not allowed after type %q", msgType)
		}
		return nil, fmt.Errorf("missing ': ' separator after type %q", msgType)
	}
	cursor.Pos++

	if cursor.Pos >= cursor.InputSize || cursor.Input[cursor.Pos] != ' ' {
		return nil, fmt.Errorf("type %q must be followed by a single colon-space separator", msgType)
	}
	cursor.Pos++

	subject := consumeLine(cursor)
	if subject == "" {
		return nil, fmt.Errorf("subject is empty")
	}
	if subject != strings.TrimSpace(subject) {
		return nil, fmt.Errorf("subject has leading or trailing whitespace")
	}

	var body string
	if cursor.Pos < cursor.InputSize {
		separator := consumeLine(cursor)
		if separator != "" {
			return nil, fmt.Errorf("body must be separated from the header by one blank line")
		}
		body = strings.TrimRight(string(cursor.Input[cursor.Pos:]), "\n")
	}

	return &Message{Type: Type(msgType), Subject: subject, Body: body}, nil
}

// consumeLine consumes bytes until '\n' (inclusive) or EOF and returns the
// text before the newline.
func consumeLine(cursor *parsly.Cursor) string {
	start := cursor.Pos
	for cursor.Pos < cursor.InputSize {
		if cursor.Input[cursor.Pos] == '\n' {
			txt := string(cursor.Input[start:cursor.Pos])
			cursor.Pos++
			return txt
		}
		cursor.Pos++
	}
	return string(cursor.Input[start:])
}
