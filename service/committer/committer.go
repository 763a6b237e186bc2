// Package committer defines the commit-creation collaborator contract. The
// gate delegates here once every gate is satisfied; the actual version
// control plumbing (staging, commit objects) is the host's concern.
package committer

import (
	"context"

	"github.com/viant/changegate/model/changeset"
	"github.com/viant/changegate/model/message"
)

// Service creates a commit for an approved, validated change set.
type Service interface {
	Commit(ctx context.Context, changeSet *changeset.ChangeSet, msg *message.Message) error
}

// Func adapts a plain function to Service.
type Func func(ctx context.Context, changeSet *changeset.ChangeSet, msg *message.Message) error

func (f Func) Commit(ctx context.Context, changeSet *changeset.ChangeSet, msg *message.Message) error {
	return f(ctx, changeSet, msg)
}

// Nop returns a committer that records nothing – useful when the host only
// wants gate semantics and handles commit creation out of band via events.
func Nop() Service {
	return Func(func(context.Context, *changeset.ChangeSet, *message.Message) error { return nil })
}
