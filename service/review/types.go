package review

import (
	"time"

	"github.com/viant/changegate/model/changeset"
)

// State of a review attached to a change set. Transitions happen only via an
// explicit Decide call – elapsed time, absence of objection or verification
// success never advance it.
type State string

const (
	StatePending  State = "pending"
	StateApproved State = "approved"
	StateRejected State = "rejected"
)

// Event envelope published on the review queue.
type Event struct {
	Topic   string            // see topic constants below
	Data    interface{}       // *Request | *Decision
	Headers map[string]string `json:"headers,omitempty"` // optional – tenant, correlation-id etc.
}

// Standard event topics.
const (
	TopicRequestCreated  = "request.created"
	TopicDecisionCreated = "decision.created"
)

// Request surfaces a change set to a human reviewer: the identifier, the
// diff and its per-file summary.
type Request struct {
	ID          string                 `json:"id"`          // Globally unique, primary key
	ChangeSetID string                 `json:"changeSetID"` // Refers to changeset.ID
	Revision    int                    `json:"revision"`
	Diff        string                 `json:"diff"`
	Summary     *changeset.Summary     `json:"summary,omitempty"`
	CreatedAt   time.Time              `json:"createdAt"`
	Meta        map[string]interface{} `json:"meta,omitempty"` // Free-form: tenant, author, environment, etc.
}

// Decision records the reviewer's verdict for a request. DecidedAt doubles
// as the explicit-verdict marker: a decision with a zero timestamp was never
// actually decided and still counts as pending.
type Decision struct {
	ID        string    `json:"id"` // same as request.ID
	Approved  bool      `json:"approved"`
	Comment   string    `json:"comment,omitempty"`
	DecidedAt time.Time `json:"decidedAt"`
}

// State maps the decision onto the review state attached to the change set.
func (d *Decision) State() State {
	if d == nil || d.DecidedAt.IsZero() {
		return StatePending
	}
	if d.Approved {
		return StateApproved
	}
	return StateRejected
}
