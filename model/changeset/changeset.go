package changeset

import (
	"fmt"
	"strings"
	"time"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/viant/changegate/internal/clock"
	"github.com/viant/changegate/internal/idgen"
)

// ChangeSet represents a unit of proposed modification plus its unified diff.
// It is created by the change-making actor and owned by the gate engine for
// the duration of the gate; once committed or rejected ownership returns to
// the actor.
type ChangeSet struct {
	ID          string    `json:"id"`
	Description string    `json:"description,omitempty"`
	Diff        string    `json:"diff"`
	Revision    int       `json:"revision"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// File carries before/after snapshots of a single file, used to derive a
// unified diff when the actor does not supply one.
type File struct {
	Path     string
	Original []byte
	Modified []byte
}

// New creates a change set with an already rendered unified diff.
func New(description, diff string) *ChangeSet {
	now := clock.Now()
	return &ChangeSet{
		ID:          idgen.New(),
		Description: description,
		Diff:        diff,
		Revision:    1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// NewFromFiles builds a change set from before/after file snapshots,
// generating a GNU unified diff per file.
func NewFromFiles(description string, files ...*File) (*ChangeSet, error) {
	var b strings.Builder
	for _, f := range files {
		if f == nil || f.Path == "" {
			return nil, fmt.Errorf("changeset: file path is required")
		}
		if string(f.Original) == string(f.Modified) {
			continue
		}
		ud := difflib.UnifiedDiff{
			A:        difflib.SplitLines(string(f.Original)),
			B:        difflib.SplitLines(string(f.Modified)),
			FromFile: "a/" + f.Path,
			ToFile:   "b/" + f.Path,
			Context:  3,
		}
		patch, err := difflib.GetUnifiedDiffString(ud)
		if err != nil {
			return nil, fmt.Errorf("changeset: diff %s: %w", f.Path, err)
		}
		b.WriteString(patch)
	}
	return New(description, b.String()), nil
}

// Amend replaces the diff with an updated revision. The identity of the
// change set is retained so that verification attempts across the edit loop
// stay correlated.
func (c *ChangeSet) Amend(diff string) {
	c.Diff = diff
	c.Revision++
	c.UpdatedAt = clock.Now()
}

// IsEmpty reports whether the change set carries no diff content.
func (c *ChangeSet) IsEmpty() bool {
	return c == nil || strings.TrimSpace(c.Diff) == ""
}
