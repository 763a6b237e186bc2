package changeset

import (
	"fmt"
	"strings"

	sgdiff "github.com/sourcegraph/go-diff/diff"
)

// FileStat captures per-file line counts extracted from the unified diff.
type FileStat struct {
	Path    string `json:"path"`
	Added   int    `json:"added"`
	Removed int    `json:"removed"`
}

// Summary is the human-facing digest of a change set surfaced to reviewers
// alongside the raw diff.
type Summary struct {
	ChangeSetID string      `json:"changeSetID"`
	Revision    int         `json:"revision"`
	Files       []*FileStat `json:"files,omitempty"`
	Added       int         `json:"added"`
	Removed     int         `json:"removed"`
}

// Summary parses the unified diff and aggregates per-file statistics.
// An empty diff yields an empty summary rather than an error.
func (c *ChangeSet) Summary() (*Summary, error) {
	ret := &Summary{ChangeSetID: c.ID, Revision: c.Revision}
	if c.IsEmpty() {
		return ret, nil
	}
	fileDiffs, err := sgdiff.ParseMultiFileDiff([]byte(c.Diff))
	if err != nil {
		return nil, fmt.Errorf("changeset: parse diff: %w", err)
	}
	for _, fd := range fileDiffs {
		stat := fd.Stat()
		name := strings.TrimPrefix(fd.NewName, "b/")
		if name == "/dev/null" {
			name = strings.TrimPrefix(fd.OrigName, "a/")
		}
		fileStat := &FileStat{
			Path:    name,
			Added:   int(stat.Added + stat.Changed),
			Removed: int(stat.Deleted + stat.Changed),
		}
		ret.Files = append(ret.Files, fileStat)
		ret.Added += fileStat.Added
		ret.Removed += fileStat.Removed
	}
	return ret, nil
}
