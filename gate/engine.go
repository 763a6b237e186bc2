package gate

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/viant/changegate/internal/clock"
	"github.com/viant/changegate/model/changeset"
	"github.com/viant/changegate/model/message"
	"github.com/viant/changegate/model/verification"
	"github.com/viant/changegate/policy"
	"github.com/viant/changegate/service/committer"
	"github.com/viant/changegate/service/event"
	"github.com/viant/changegate/service/review"
	"github.com/viant/changegate/service/runner"
	"github.com/viant/changegate/service/validator"
	"github.com/viant/changegate/tracing"
)

// Engine drives a single change set through the gate: verification, human
// review, and commit message validation, in that order, none skippable.
//
// The machine is cooperative and single-threaded by design; the mutex only
// keeps concurrent misuse from corrupting state. Independent change sets get
// independent engines and share nothing.
type Engine struct {
	mux sync.Mutex

	state     State
	changeSet *changeset.ChangeSet

	// attempts holds one result per completed verification run, in
	// submission order. An aborted run leaves no attempt behind.
	attempts []*verification.Result
	decision *review.Decision

	runner    runner.Service
	reviews   review.Service
	validator *validator.Service
	committer committer.Service
	events    *event.Service
}

// New creates an engine in the editing state with no change set attached.
func New(options ...Option) *Engine {
	e := &Engine{state: StateEditing}
	for _, option := range options {
		option(e)
	}
	if e.validator == nil {
		e.validator = validator.New(nil)
	}
	if e.committer == nil {
		e.committer = committer.Nop()
	}
	return e
}

// State returns the current gate state.
func (e *Engine) State() State {
	e.mux.Lock()
	defer e.mux.Unlock()
	return e.state
}

// ChangeSet returns the change set currently owned by the engine, or nil.
func (e *Engine) ChangeSet() *changeset.ChangeSet {
	e.mux.Lock()
	defer e.mux.Unlock()
	return e.changeSet
}

// Attempts returns the recorded verification results in submission order.
func (e *Engine) Attempts() []*verification.Result {
	e.mux.Lock()
	defer e.mux.Unlock()
	ret := make([]*verification.Result, len(e.attempts))
	copy(ret, e.attempts)
	return ret
}

// LastResult returns the most recent verification attempt, or nil.
func (e *Engine) LastResult() *verification.Result {
	e.mux.Lock()
	defer e.mux.Unlock()
	return e.lastResult()
}

func (e *Engine) lastResult() *verification.Result {
	if len(e.attempts) == 0 {
		return nil
	}
	return e.attempts[len(e.attempts)-1]
}

// Decision returns the recorded review verdict, or nil while undecided.
func (e *Engine) Decision() *review.Decision {
	e.mux.Lock()
	defer e.mux.Unlock()
	return e.decision
}

// Submit attaches or replaces the change set. Accepted only while editing –
// once verification starts the engine owns the change set until the gate
// resolves.
func (e *Engine) Submit(ctx context.Context, changeSet *changeset.ChangeSet) error {
	if changeSet == nil || changeSet.IsEmpty() {
		return errors.New("change set was empty")
	}
	e.mux.Lock()
	defer e.mux.Unlock()
	if e.state != StateEditing {
		return NewProtocolError(e.state, "submit")
	}
	e.changeSet = changeSet
	publish(ctx, e.events, e.eventContext(event.TypeChangeSetSubmitted), changeSet)
	return nil
}

// Verify runs the verification suite against the attached change set. The
// call blocks until the runner finishes or ctx is cancelled.
//
// Cancellation aborts the attempt: the engine returns to editing and no
// attempt is recorded. A FAIL result is recorded and returns the engine to
// editing – failing is ordinary output of the edit loop, not an error, and
// the loop has no retry cap. A PASS result is recorded and moves the gate
// to awaitingReview, surfacing a review request with the diff and its
// per-file summary.
func (e *Engine) Verify(ctx context.Context) (result *verification.Result, err error) {
	e.mux.Lock()
	defer e.mux.Unlock()
	if e.state != StateEditing {
		return nil, NewProtocolError(e.state, "verify")
	}
	if e.changeSet == nil {
		return nil, &ProtocolError{State: e.state, Signal: "verify", Reason: "no change set submitted"}
	}
	if e.runner == nil {
		return nil, errors.New("verification runner was not configured")
	}

	ctx, span := tracing.StartSpan(ctx, "gate.verify", "internal")
	defer func() { tracing.EndSpan(span, err) }()

	e.state = StateVerifying
	result, err = e.runner.Run(ctx)
	if err != nil {
		// Aborted or failed-to-start runs leave no attempt behind; the
		// actor remains in the edit loop.
		e.state = StateEditing
		if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
			return nil, err
		}
		return nil, fmt.Errorf("verification run failed to complete: %w", err)
	}
	if result == nil {
		e.state = StateEditing
		return nil, errors.New("verification runner returned no result")
	}

	result.Revision = e.changeSet.Revision
	e.attempts = append(e.attempts, result)
	publish(ctx, e.events, e.eventContext(event.TypeVerificationCompleted), result)

	if !result.Passed() {
		e.state = StateEditing
		return result, nil
	}

	e.state = StateAwaitingReview
	if err := e.requestReview(ctx); err != nil {
		// Without a surfaced request no verdict can ever arrive; fall back
		// to editing so the next Verify can re-surface the change set.
		e.state = StateEditing
		return result, err
	}
	return result, nil
}

func (e *Engine) requestReview(ctx context.Context) error {
	if e.reviews == nil {
		return nil
	}
	summary, _ := e.changeSet.Summary()
	request := &review.Request{
		ChangeSetID: e.changeSet.ID,
		Revision:    e.changeSet.Revision,
		Diff:        e.changeSet.Diff,
		Summary:     summary,
		CreatedAt:   clock.Now(),
	}
	if err := e.reviews.RequestReview(ctx, request); err != nil {
		return fmt.Errorf("failed to surface review request: %w", err)
	}
	publish(ctx, e.events, e.eventContext(event.TypeReviewRequested), request)
	return nil
}

// Amend updates the diff of the owned change set while editing, bumping its
// revision. The next Verify runs against the amended content.
func (e *Engine) Amend(ctx context.Context, diff string) error {
	e.mux.Lock()
	defer e.mux.Unlock()
	if e.state != StateEditing {
		return NewProtocolError(e.state, "amend")
	}
	if e.changeSet == nil {
		return &ProtocolError{State: e.state, Signal: "amend", Reason: "no change set submitted"}
	}
	e.changeSet.Amend(diff)
	return nil
}

// ApplyDecision records an explicit reviewer verdict. Only an explicit
// verdict moves the gate – elapsed time, absence of objection or the
// verification pass itself never count as approval. Approval opens the
// commit request window; rejection is terminal and returns ownership of the
// change set to the actor, who resubmits reworked content as a fresh change
// set.
func (e *Engine) ApplyDecision(ctx context.Context, decision *review.Decision) error {
	e.mux.Lock()
	defer e.mux.Unlock()
	if e.state != StateAwaitingReview {
		return NewProtocolError(e.state, "decision")
	}
	if decision == nil || decision.State() == review.StatePending {
		return &ProtocolError{State: e.state, Signal: "decision", Reason: "verdict must be an explicit approve or reject"}
	}

	e.decision = decision
	publish(ctx, e.events, e.eventContext(event.TypeReviewDecided), decision)

	if decision.Approved {
		e.state = StateAwaitingCommitRequest
		return nil
	}
	e.state = StateRejected
	publish(ctx, e.events, e.eventContext(event.TypeChangeSetRejected), e.changeSet)
	return nil
}

// RequestCommit validates the commit message and, when it is clean, hands
// the change set to the committer. A message with violations returns the
// full ordered violation list and leaves the gate back at
// awaitingCommitRequest – the actor revises the message and tries again,
// without re-running verification or review.
//
// The pass and approval gates are re-checked from the recorded facts even
// though the state tag already implies them.
func (e *Engine) RequestCommit(ctx context.Context, msg *message.Message) (*validator.Result, error) {
	e.mux.Lock()
	defer e.mux.Unlock()
	if err := e.checkCommitPrerequisites(); err != nil {
		return nil, err
	}
	return e.requestCommit(ctx, msg)
}

// RequestCommitRaw parses raw commit message text and requests the commit.
// Text that does not parse as a `type: subject` header never reaches the
// committer: it is reported as a MALFORMED_HEADER violation and the commit
// window stays open.
func (e *Engine) RequestCommitRaw(ctx context.Context, raw string) (*message.Message, *validator.Result, error) {
	e.mux.Lock()
	defer e.mux.Unlock()
	if err := e.checkCommitPrerequisites(); err != nil {
		return nil, nil, err
	}
	msg, validation := e.validator.ValidateRaw(raw)
	if msg == nil {
		publish(ctx, e.events, e.eventContext(event.TypeCommitValidationFail), &validation)
		return nil, &validation, nil
	}
	result, err := e.requestCommit(ctx, msg)
	return msg, result, err
}

func (e *Engine) checkCommitPrerequisites() error {
	if e.state != StateAwaitingCommitRequest {
		return NewProtocolError(e.state, "requestCommit")
	}
	if !e.lastResult().Passed() {
		return &ProtocolError{State: e.state, Signal: "requestCommit", Reason: "no passing verification attempt on record"}
	}
	if e.decision.State() != review.StateApproved {
		return &ProtocolError{State: e.state, Signal: "requestCommit", Reason: "no approval on record"}
	}
	return nil
}

func (e *Engine) requestCommit(ctx context.Context, msg *message.Message) (result *validator.Result, err error) {
	ctx, span := tracing.StartSpan(ctx, "gate.requestCommit", "internal")
	defer func() { tracing.EndSpan(span, err) }()

	e.state = StateCommitting
	validation := e.validator.Validate(msg)
	if !validation.Ok {
		e.state = StateAwaitingCommitRequest
		publish(ctx, e.events, e.eventContext(event.TypeCommitValidationFail), &validation)
		return &validation, nil
	}

	if err := e.committer.Commit(ctx, e.changeSet, msg); err != nil {
		e.state = StateAwaitingCommitRequest
		return &validation, fmt.Errorf("failed to commit change set %v: %w", e.changeSet.ID, err)
	}
	e.state = StateDone
	publish(ctx, e.events, e.eventContext(event.TypeChangeSetCommitted), msg)
	return &validation, nil
}

// Validator exposes the commit message validator used by the engine.
func (e *Engine) Validator() *validator.Service { return e.validator }

// Snapshot is a point-in-time view of the gate for a change set.
type Snapshot struct {
	ChangeSetID string                 `json:"changeSetID,omitempty"`
	Revision    int                    `json:"revision,omitempty"`
	State       State                  `json:"state"`
	Attempts    []*verification.Result `json:"attempts,omitempty"`
	Decision    *review.Decision       `json:"decision,omitempty"`
}

// Snapshot captures the current state, attempt history and verdict.
func (e *Engine) Snapshot() *Snapshot {
	e.mux.Lock()
	defer e.mux.Unlock()
	ret := &Snapshot{State: e.state, Decision: e.decision}
	if e.changeSet != nil {
		ret.ChangeSetID = e.changeSet.ID
		ret.Revision = e.changeSet.Revision
	}
	ret.Attempts = make([]*verification.Result, len(e.attempts))
	copy(ret.Attempts, e.attempts)
	return ret
}

func (e *Engine) eventContext(eventType string) *event.Context {
	ret := &event.Context{EventType: eventType, State: string(e.state)}
	if e.changeSet != nil {
		ret.ChangeSetID = e.changeSet.ID
		ret.Revision = e.changeSet.Revision
	}
	return ret
}

// publish fans an event out over the typed event service when one is wired;
// event delivery is best effort and never blocks a transition.
func publish[T any](ctx context.Context, events *event.Service, evCtx *event.Context, data T) {
	if events == nil {
		return
	}
	publisher, err := event.PublisherOf[T](events)
	if err != nil {
		return
	}
	_ = publisher.Publish(ctx, event.NewEvent(evCtx, data))
}

// Option customises an engine.
type Option func(e *Engine)

// WithRunner sets the verification runner.
func WithRunner(r runner.Service) Option {
	return func(e *Engine) { e.runner = r }
}

// WithReviewService sets the review gate used to surface pass results.
func WithReviewService(r review.Service) Option {
	return func(e *Engine) { e.reviews = r }
}

// WithValidator sets the commit message validator.
func WithValidator(v *validator.Service) Option {
	return func(e *Engine) { e.validator = v }
}

// WithPolicy builds the validator from a commit message policy.
func WithPolicy(p *policy.Policy) Option {
	return func(e *Engine) { e.validator = validator.New(p) }
}

// WithCommitter sets the committer applying approved change sets.
func WithCommitter(c committer.Service) Option {
	return func(e *Engine) { e.committer = c }
}

// WithEvents wires the typed event service the engine publishes on.
func WithEvents(events *event.Service) Option {
	return func(e *Engine) { e.events = events }
}
