// Package gate implements the change-gate state machine: every change set
// must pass automated verification, receive an explicit human approval and
// carry a valid conventional commit message before it reaches the target.
// The three checks are independent and none is skippable.
package gate
