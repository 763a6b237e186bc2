package message

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessage_Format(t *testing.T) {
	msg := &Message{Type: TypeFeat, Subject: "add retry loop to verifier"}
	assert.Equal(t, "feat: add retry loop to verifier", msg.Format())

	msg.Body = "The loop re-runs the checker until it passes."
	assert.Equal(t, "feat: add retry loop to verifier\n\nThe loop re-runs the checker until it passes.", msg.Format())
}

func TestParse(t *testing.T) {
	testCases := []struct {
		name     string
		raw      string
		expected *Message
		hasError bool
	}{
		{
			name:     "header only",
			raw:      "feat: add retry loop",
			expected: &Message{Type: TypeFeat, Subject: "add retry loop"},
		},
		{
			name:     "header and body",
			raw:      "fix: handle empty diff\n\nEmpty diffs used to panic the summariser.",
			expected: &Message{Type: TypeFix, Subject: "handle empty diff", Body: "Empty diffs used to panic the summariser."},
		},
		{
			name:     "unknown type parses, validation decides",
			raw:      "oops: fix bug",
			expected: &Message{Type: Type("oops"), Subject: "fix bug"},
		},
		{
			name:     "missing separator",
			raw:      "feat add retry loop",
			hasError: true,
		},
		{
			name:     "no space after colon",
			raw:      "feat:add retry loop",
			hasError: true,
		},
		{
			name:     "scope suffix",
			raw:      "feat(parser): add retry loop",
			hasError: true,
		},
		{
			name:     "empty subject",
			raw:      "feat: ",
			hasError: true,
		},
		{
			name:     "uppercase type",
			raw:      "Feat: add retry loop",
			hasError: true,
		},
		{
			name:     "missing blank line before body",
			raw:      "feat: add retry loop\nbody right away",
			hasError: true,
		},
		{
			name:     "empty input",
			raw:      "  \n",
			hasError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			actual, err := Parse(tc.raw)
			if tc.hasError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, actual)
		})
	}
}
