// Package validator implements the commit message validator: a pure,
// deterministic check of a candidate message against the commit-content
// policy. All rules are evaluated – never short-circuited – so a single call
// reports every violation at once and the actor can correct the message
// without guessing.
package validator

import (
	"fmt"
	"unicode/utf8"

	"github.com/viant/changegate/model/message"
	"github.com/viant/changegate/policy"
)

// ViolationKind identifies the validation rule a message broke.
type ViolationKind string

const (
	ViolationInvalidType       ViolationKind = "INVALID_TYPE"
	ViolationSubjectTooLong    ViolationKind = "SUBJECT_TOO_LONG"
	ViolationProhibitedContent ViolationKind = "PROHIBITED_CONTENT"
	ViolationMalformedHeader   ViolationKind = "MALFORMED_HEADER"
)

// Violation names the precise rule violated together with an actionable
// detail (the offending type, the matched phrase, the parse failure).
type Violation struct {
	Kind   ViolationKind `json:"kind"`
	Detail string        `json:"detail,omitempty"`
}

func (v Violation) String() string {
	if v.Detail == "" {
		return string(v.Kind)
	}
	return fmt.Sprintf("%s: %s", v.Kind, v.Detail)
}

// Result is the outcome of validating one message. Violations preserve rule
// order so identical input always yields an identical result.
type Result struct {
	Ok         bool        `json:"ok"`
	Violations []Violation `json:"violations,omitempty"`
}

func (r *Result) add(kind ViolationKind, detail string) {
	r.Ok = false
	r.Violations = append(r.Violations, Violation{Kind: kind, Detail: detail})
}

// Service validates candidate commit messages against a policy. The zero
// policy (nil) enforces the package defaults; validation is never optional.
type Service struct {
	policy *policy.Policy
}

// New creates a validator bound to the supplied policy.
func New(p *policy.Policy) *Service {
	return &Service{policy: p}
}

// Policy returns the policy in force.
func (s *Service) Policy() *policy.Policy {
	return s.policy
}

// Validate checks msg against every rule and returns the full ordered
// violation list. It is pure: no hidden state, no network or file access;
// identical input always yields an identical result.
func (s *Service) Validate(msg *message.Message) Result {
	ret := Result{Ok: true}
	if msg == nil {
		ret.add(ViolationMalformedHeader, "message is nil")
		return ret
	}

	if !s.policy.IsAllowedType(string(msg.Type)) {
		ret.add(ViolationInvalidType, fmt.Sprintf("type %q is not one of %v", msg.Type, s.policy.Types()))
	}

	if count := utf8.RuneCountInString(msg.Subject); count > s.policy.Limit() {
		ret.add(ViolationSubjectTooLong, fmt.Sprintf("subject is %d characters, limit is %d", count, s.policy.Limit()))
	}

	if phrase, _, ok := s.policy.MatchBanned(msg.Subject); ok {
		ret.add(ViolationProhibitedContent, fmt.Sprintf("subject contains %q", phrase))
	}
	if phrase, _, ok := s.policy.MatchBanned(msg.Body); ok {
		ret.add(ViolationProhibitedContent, fmt.Sprintf("body contains %q", phrase))
	}

	if detail, ok := headerViolation(msg); ok {
		ret.add(ViolationMalformedHeader, detail)
	}

	return ret
}

// ValidateRaw parses raw commit message text and validates the result. Parse
// failures map onto MALFORMED_HEADER.
func (s *Service) ValidateRaw(raw string) (*message.Message, Result) {
	msg, err := message.Parse(raw)
	if err != nil {
		ret := Result{Ok: true}
		ret.add(ViolationMalformedHeader, err.Error())
		return nil, ret
	}
	return msg, s.Validate(msg)
}

// headerViolation re-renders the structured message as its `type: subject`
// header and parses it back; any asymmetry (newline in the subject, colon in
// the type, empty fields) means the header cannot take the mandated shape.
func headerViolation(msg *message.Message) (string, bool) {
	parsed, err := message.Parse(msg.Header())
	if err != nil {
		return err.Error(), true
	}
	if parsed.Type != msg.Type || parsed.Subject != msg.Subject {
		return "header does not round-trip as `type: subject`", true
	}
	return "", false
}
