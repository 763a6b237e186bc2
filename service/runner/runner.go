// Package runner defines the verification runner contract. The runner is an
// external collaborator: the engine invokes it repeatedly and interprets its
// exit status, but never looks inside the check itself.
package runner

import (
	"context"

	"github.com/viant/changegate/model/verification"
)

// Service runs one verification attempt. A fail status is ordinary output
// that drives the edit loop; the error return is reserved for the runner
// being unable to execute at all (including context cancellation).
type Service interface {
	Run(ctx context.Context) (*verification.Result, error)
}

// Func adapts a plain function to Service.
type Func func(ctx context.Context) (*verification.Result, error)

func (f Func) Run(ctx context.Context) (*verification.Result, error) {
	return f(ctx)
}
