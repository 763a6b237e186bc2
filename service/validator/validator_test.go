package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/changegate/model/message"
	"github.com/viant/changegate/policy"
)

func kinds(result Result) []ViolationKind {
	out := make([]ViolationKind, 0, len(result.Violations))
	for _, v := range result.Violations {
		out = append(out, v.Kind)
	}
	return out
}

func TestService_Validate(t *testing.T) {
	svc := New(nil)

	testCases := []struct {
		name     string
		msg      *message.Message
		ok       bool
		expected []ViolationKind
	}{
		{
			name: "valid feat message",
			msg:  &message.Message{Type: message.TypeFeat, Subject: "add retry loop to verifier"},
			ok:   true,
		},
		{
			name:     "unknown type",
			msg:      &message.Message{Type: "oops", Subject: "fix bug"},
			expected: []ViolationKind{ViolationInvalidType},
		},
		{
			name:     "attribution in body",
			msg:      &message.Message{Type: message.TypeFix, Subject: "handle empty diff", Body: "Generated with SomeTool"},
			expected: []ViolationKind{ViolationProhibitedContent},
		},
		{
			name:     "promotional subject",
			msg:      &message.Message{Type: message.TypeFeat, Subject: "make parser blazingly fast"},
			expected: []ViolationKind{ViolationProhibitedContent},
		},
		{
			name:     "newline in subject",
			msg:      &message.Message{Type: message.TypeFeat, Subject: "first\nsecond"},
			expected: []ViolationKind{ViolationMalformedHeader},
		},
		{
			name:     "empty subject",
			msg:      &message.Message{Type: message.TypeChore, Subject: ""},
			expected: []ViolationKind{ViolationMalformedHeader},
		},
		{
			name: "all rules reported at once",
			msg: &message.Message{
				Type:    "Release!",
				Subject: strings.Repeat("x", 90) + " brought to you by SomeVendor",
			},
			expected: []ViolationKind{
				ViolationInvalidType,
				ViolationSubjectTooLong,
				ViolationProhibitedContent,
				ViolationMalformedHeader,
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			actual := svc.Validate(tc.msg)
			assert.Equal(t, tc.ok, actual.Ok)
			if !tc.ok {
				assert.Equal(t, tc.expected, kinds(actual))
				for _, v := range actual.Violations {
					assert.NotEmpty(t, v.Detail, "violations carry the precise rule detail")
				}
			}
		})
	}
}

func TestService_Validate_subjectBoundary(t *testing.T) {
	svc := New(nil)

	at := &message.Message{Type: message.TypeFeat, Subject: strings.Repeat("a", 80)}
	assert.True(t, svc.Validate(at).Ok)

	over := &message.Message{Type: message.TypeFeat, Subject: strings.Repeat("a", 81)}
	result := svc.Validate(over)
	assert.False(t, result.Ok)
	assert.Equal(t, []ViolationKind{ViolationSubjectTooLong}, kinds(result))
}

func TestService_Validate_deterministic(t *testing.T) {
	svc := New(policy.Default())
	msg := &message.Message{Type: "oops", Subject: "Generated with SomeTool", Body: "powered by magic"}
	first := svc.Validate(msg)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, svc.Validate(msg))
	}
}

func TestService_ValidateRaw(t *testing.T) {
	svc := New(nil)

	msg, result := svc.ValidateRaw("feat: add retry loop to verifier")
	require.NotNil(t, msg)
	assert.True(t, result.Ok)
	assert.Equal(t, message.TypeFeat, msg.Type)

	msg, result = svc.ValidateRaw("feat(scope): add retry loop")
	assert.Nil(t, msg)
	assert.Equal(t, []ViolationKind{ViolationMalformedHeader}, kinds(result))

	_, result = svc.ValidateRaw("oops: fix bug")
	assert.Equal(t, []ViolationKind{ViolationInvalidType}, kinds(result))
}

func TestService_Validate_customPolicy(t *testing.T) {
	svc := New(&policy.Policy{AllowedTypes: []string{"fix"}, SubjectLimit: 10})

	result := svc.Validate(&message.Message{Type: message.TypeFeat, Subject: "way beyond the ten"})
	assert.Equal(t, []ViolationKind{ViolationInvalidType, ViolationSubjectTooLong}, kinds(result))

	assert.True(t, svc.Validate(&message.Message{Type: message.TypeFix, Subject: "short"}).Ok)
}
