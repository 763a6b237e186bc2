package review

import (
	"context"

	"github.com/viant/changegate/service/messaging"
)

// Service defines the review gate interface.
type Service interface {
	// RequestReview surfaces a change set for human review.
	RequestReview(ctx context.Context, r *Request) error

	// ListPending returns requests without a recorded decision.
	ListPending(ctx context.Context) ([]*Request, error)

	// Decide records the verdict for a pending request. Deciding twice is an
	// error – a decision is final for its request.
	Decide(ctx context.Context, id string, approved bool, comment string) (*Decision, error)

	// Decision returns the recorded decision for a request, or nil.
	Decision(ctx context.Context, id string) (*Decision, error)

	// Queue exposes the review event stream.
	Queue() messaging.Queue[Event]
}
