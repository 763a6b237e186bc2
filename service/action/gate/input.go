package gate

import (
	"github.com/viant/changegate/model/message"
	"github.com/viant/changegate/model/verification"
	"github.com/viant/changegate/service/validator"
)

// SubmitInput opens the gate for a new change set.
type SubmitInput struct {
	Description string `json:"description,omitempty"`
	Diff        string `json:"diff"`
}

// SubmitOutput reports the identifier assigned to the change set.
type SubmitOutput struct {
	ChangeSetID string `json:"changeSetID"`
	State       string `json:"state"`
}

// AmendInput replaces the diff of an editing change set.
type AmendInput struct {
	ChangeSetID string `json:"changeSetID"`
	Diff        string `json:"diff"`
}

// VerifyInput runs the verification suite for a change set.
type VerifyInput struct {
	ChangeSetID string `json:"changeSetID"`
}

// VerifyOutput carries the attempt result and the state it moved the gate to.
type VerifyOutput struct {
	Result *verification.Result `json:"result,omitempty"`
	State  string               `json:"state"`
}

// DecideInput records a reviewer verdict.
type DecideInput struct {
	ChangeSetID string `json:"changeSetID"`
	Comment     string `json:"comment,omitempty"`
}

// CommitInput requests the commit of an approved change set.
type CommitInput struct {
	ChangeSetID string `json:"changeSetID"`
	// Message is raw commit message text, `type: subject` header first.
	Message string `json:"message"`
}

// CommitOutput reports the validation verdict and resulting state. On
// violations the gate stays open for a revised message.
type CommitOutput struct {
	Valid      bool                  `json:"valid"`
	Violations []validator.Violation `json:"violations,omitempty"`
	Message    *message.Message      `json:"message,omitempty"`
	State      string                `json:"state"`
}

// StatusInput identifies the change set to inspect.
type StatusInput struct {
	ChangeSetID string `json:"changeSetID"`
}
