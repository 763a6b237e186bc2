package policy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolicy_IsAllowedType(t *testing.T) {
	var nilPolicy *Policy
	assert.True(t, nilPolicy.IsAllowedType("feat"))
	assert.False(t, nilPolicy.IsAllowedType("oops"))
	assert.False(t, nilPolicy.IsAllowedType("Feat"))

	narrowed := &Policy{AllowedTypes: []string{"fix"}}
	assert.True(t, narrowed.IsAllowedType("fix"))
	assert.False(t, narrowed.IsAllowedType("feat"))
}

func TestPolicy_MatchBanned(t *testing.T) {
	testCases := []struct {
		name    string
		policy  *Policy
		text    string
		matched bool
		phrase  string
	}{
		{
			name:    "attribution phrase",
			text:    "Refactored the loop.\n\nGenerated with SomeTool",
			matched: true,
			phrase:  "Generated with",
		},
		{
			name:    "assistant co-author line",
			text:    "Co-Authored-By: Claude <noreply@example.com>",
			matched: true,
		},
		{
			name:    "marketing language",
			text:    "this makes the parser blazingly fast",
			matched: true,
		},
		{
			name: "clean text",
			text: "handle empty diff in the summariser",
		},
		{
			name:    "custom pattern",
			policy:  &Policy{BannedPhrases: []string{`ticket-\d+ internal`}},
			text:    "see TICKET-42 internal notes",
			matched: true,
		},
		{
			name:   "custom set replaces defaults",
			policy: &Policy{BannedPhrases: []string{`never-used`}},
			text:   "Generated with SomeTool",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			phrase, pattern, ok := tc.policy.MatchBanned(tc.text)
			assert.Equal(t, tc.matched, ok)
			if tc.matched {
				assert.NotEmpty(t, pattern)
			}
			if tc.phrase != "" {
				assert.Equal(t, tc.phrase, phrase)
			}
		})
	}
}

func TestDecodeYAML(t *testing.T) {
	data := []byte(`
types: [feat, fix]
subjectLimit: 60
banned:
  - "do not ship"
`)
	p, err := DecodeYAML(data)
	require.NoError(t, err)
	assert.Equal(t, []string{"feat", "fix"}, p.Types())
	assert.Equal(t, 60, p.Limit())
	_, _, ok := p.MatchBanned("really DO NOT SHIP this")
	assert.True(t, ok)
}

func TestConfigRoundTrip(t *testing.T) {
	p := Default()
	cfg := ToConfig(p)
	restored := FromConfig(cfg)
	assert.Equal(t, p.AllowedTypes, restored.AllowedTypes)
	assert.Equal(t, p.SubjectLimit, restored.SubjectLimit)
	assert.Equal(t, p.BannedPhrases, restored.BannedPhrases)
	assert.Nil(t, ToConfig(nil))
	assert.Nil(t, FromConfig(nil))
}

func TestContextHelpers(t *testing.T) {
	p := Default()
	ctx := WithPolicy(context.Background(), p)
	assert.Same(t, p, FromContext(ctx))
	assert.Nil(t, FromContext(context.Background()))
}
