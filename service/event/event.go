package event

import "time"

// Gate event types published over the typed event service.
const (
	TypeChangeSetSubmitted    = "changeset.submitted"
	TypeVerificationCompleted = "verification.completed"
	TypeReviewRequested       = "review.requested"
	TypeReviewDecided         = "review.decided"
	TypeCommitValidationFail  = "commit.validationFailed"
	TypeChangeSetCommitted    = "changeset.committed"
	TypeChangeSetRejected     = "changeset.rejected"
)

// Context identifies the change set and gate transition an event refers to.
type Context struct {
	ChangeSetID string `json:"changeSetID"`
	Revision    int    `json:"revision,omitempty"`
	EventType   string `json:"eventType"`
	State       string `json:"state,omitempty"`
}

type Event[T any] struct {
	Context   *Context               `json:"context"`
	CreatedAt time.Time              `json:"createdAt"`
	Metadata  map[string]interface{} `json:"metadata"`
	Data      T                      `json:"data"`
}

func NewEvent[T any](context *Context, data T) *Event[T] {
	return &Event[T]{
		Context:   context,
		CreatedAt: time.Now(),
		Metadata:  make(map[string]interface{}),
		Data:      data,
	}
}
