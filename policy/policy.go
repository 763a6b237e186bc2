// Package policy defines the commit-content policy enforced by the message
// validator: the set of allowed commit types, the subject length limit and
// the banned-phrase patterns. The banned set is inherently open and evolving,
// so it is injectable configuration rather than a constant baked into the
// state machine. It is deliberately decoupled from the engine – attaching a
// policy via context is entirely opt-in and a nil *Policy falls back to the
// package defaults.

package policy

import (
	"context"
	"regexp"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// DefaultSubjectLimit is the maximum subject length accepted by default.
const DefaultSubjectLimit = 80

// DefaultAllowedTypes lists the conventional commit types accepted by
// default.
var DefaultAllowedTypes = []string{"feat", "fix", "test", "docs", "refactor", "chore"}

// DefaultBannedPhrases covers promotional/marketing language and
// AI-attribution phrasing (generation-tool attribution and
// co-authorship-by-assistant lines). Patterns are Go regular expressions
// matched case-insensitively against subject and body.
var DefaultBannedPhrases = []string{
	`generated (with|by|using)`,
	`co-authored-by:.*\b(claude|gpt|copilot|gemini|cursor|assistant|bot)\b`,
	`written (with|by) (an )?(ai|assistant|llm)`,
	`powered by`,
	`brought to you by`,
	`courtesy of`,
	`world[- ]class`,
	`best[- ]in[- ]class`,
	`blazingly fast`,
	`revolutionary`,
	`game[- ]chang(er|ing)`,
}

// Policy represents the commit-content settings for a gate instance.
//
//   - AllowedTypes narrows or widens the accepted commit types.
//   - SubjectLimit caps the header subject length.
//   - BannedPhrases are case-insensitive regular expressions; a match in the
//     subject or body rejects the message.
//
// A nil *Policy means "package defaults" – validation is always in force.
type Policy struct {
	AllowedTypes  []string
	SubjectLimit  int
	BannedPhrases []string

	compileOnce sync.Once
	compiled    []*regexp.Regexp
	compileErr  error
}

// Default returns a policy populated with the package defaults.
func Default() *Policy {
	return &Policy{
		AllowedTypes:  append([]string(nil), DefaultAllowedTypes...),
		SubjectLimit:  DefaultSubjectLimit,
		BannedPhrases: append([]string(nil), DefaultBannedPhrases...),
	}
}

// Types returns the allowed commit types in force.
func (p *Policy) Types() []string {
	if p == nil || len(p.AllowedTypes) == 0 {
		return DefaultAllowedTypes
	}
	return p.AllowedTypes
}

// Limit returns the subject length limit in force.
func (p *Policy) Limit() int {
	if p == nil || p.SubjectLimit <= 0 {
		return DefaultSubjectLimit
	}
	return p.SubjectLimit
}

// IsAllowedType reports whether the supplied commit type is in the allowed
// set. Types match exactly – conventional types are lowercase by definition.
func (p *Policy) IsAllowedType(commitType string) bool {
	for _, t := range p.Types() {
		if commitType == t {
			return true
		}
	}
	return false
}

// MatchBanned returns the first banned phrase found in text along with the
// pattern that matched it; ok is false when the text is clean.
func (p *Policy) MatchBanned(text string) (phrase, pattern string, ok bool) {
	if text == "" {
		return "", "", false
	}
	patterns := DefaultBannedPhrases
	if p != nil && p.BannedPhrases != nil {
		patterns = p.BannedPhrases
	}
	for i, re := range compile(p, patterns) {
		if re == nil {
			continue
		}
		if matched := re.FindString(text); matched != "" {
			return matched, patterns[i], true
		}
	}
	return "", "", false
}

func compile(p *Policy, patterns []string) []*regexp.Regexp {
	build := func() []*regexp.Regexp {
		out := make([]*regexp.Regexp, len(patterns))
		for i, pattern := range patterns {
			re, err := regexp.Compile("(?i)" + pattern)
			if err != nil {
				// an invalid pattern never matches; surfacing it would make
				// validation partial, which is worse than ignoring the entry
				continue
			}
			out[i] = re
		}
		return out
	}
	if p == nil {
		return build()
	}
	p.compileOnce.Do(func() {
		p.compiled = build()
	})
	return p.compiled
}

// ---------------------------------------------------------------------------
// Config <-> Policy converters (Config is the serialisable form used when a
// policy is loaded from YAML or persisted).
// ---------------------------------------------------------------------------

// Config represents the declarative, serialisable part of a Policy.
type Config struct {
	AllowedTypes  []string `json:"types,omitempty" yaml:"types,omitempty"`
	SubjectLimit  int      `json:"subjectLimit,omitempty" yaml:"subjectLimit,omitempty"`
	BannedPhrases []string `json:"banned,omitempty" yaml:"banned,omitempty"`
}

// ToConfig converts a runtime Policy into a persistable Config.
func ToConfig(p *Policy) *Config {
	if p == nil {
		return nil
	}
	return &Config{
		AllowedTypes:  append([]string(nil), p.AllowedTypes...),
		SubjectLimit:  p.SubjectLimit,
		BannedPhrases: append([]string(nil), p.BannedPhrases...),
	}
}

// FromConfig converts a stored Config back to a runtime Policy. Absent
// fields inherit the package defaults.
func FromConfig(c *Config) *Policy {
	if c == nil {
		return nil
	}
	return &Policy{
		AllowedTypes:  append([]string(nil), c.AllowedTypes...),
		SubjectLimit:  c.SubjectLimit,
		BannedPhrases: append([]string(nil), c.BannedPhrases...),
	}
}

// DecodeYAML parses a YAML policy document into a runtime Policy.
func DecodeYAML(data []byte) (*Policy, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if cfg.BannedPhrases != nil {
		for i, pattern := range cfg.BannedPhrases {
			cfg.BannedPhrases[i] = strings.TrimSpace(pattern)
		}
	}
	return FromConfig(cfg), nil
}

// ---------------------------------------------------------------------------
// Context helpers
// ---------------------------------------------------------------------------

type ctxKeyT struct{}

var ctxKey ctxKeyT

// WithPolicy embeds policy in ctx.
func WithPolicy(ctx context.Context, p *Policy) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxKey, p)
}

// FromContext extracts the policy from ctx or nil.
func FromContext(ctx context.Context) *Policy {
	if ctx == nil {
		return nil
	}
	if v, ok := ctx.Value(ctxKey).(*Policy); ok {
		return v
	}
	return nil
}
