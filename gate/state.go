package gate

// State tags where a change set sits in the gate. The tag is authoritative
// for routing but never for safety: the commit path re-checks the underlying
// facts (a passing verification attempt, an explicit approval) before
// touching the target.
type State string

const (
	// StateEditing – the actor owns the change set and may amend it freely.
	StateEditing State = "editing"

	// StateVerifying – a verification attempt is in flight.
	StateVerifying State = "verifying"

	// StateAwaitingReview – verification passed; a human verdict is pending.
	StateAwaitingReview State = "awaitingReview"

	// StateAwaitingCommitRequest – approved; waiting for a commit message.
	StateAwaitingCommitRequest State = "awaitingCommitRequest"

	// StateCommitting – a commit request is being validated and applied.
	StateCommitting State = "committing"

	// StateDone – the change set was committed. Terminal.
	StateDone State = "done"

	// StateRejected – the reviewer rejected the change set. Terminal; a
	// reworked change is resubmitted as a fresh change set.
	StateRejected State = "rejected"
)

// IsTerminal reports whether no further transition is possible.
func (s State) IsTerminal() bool {
	return s == StateDone || s == StateRejected
}
