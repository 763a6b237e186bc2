// Package changegate implements a change gate: a state machine that stands
// between produced changes and their target, admitting a change set only
// after automated verification passes, a human reviewer explicitly approves
// it and its commit message satisfies the conventional-commit policy.
//
// The three checks are independent and none is skippable; in particular a
// verification pass never substitutes for approval, and approval never
// waives message validation.
//
// Hosts interact with the gate through the Service façade:
//
//	srv := changegate.New(
//		changegate.WithVerification(&exec.Input{Commands: []string{"go test ./..."}}),
//	)
//	cs := changeset.New("add retry loop", diff)
//	_ = srv.Submit(ctx, cs)
//	result, _ := srv.Verify(ctx, cs.ID)        // pass surfaces a review request
//	_ = srv.Approve(ctx, cs.ID, "lgtm")
//	_, _ = srv.RequestCommit(ctx, cs.ID, &message.Message{Type: "feat", Subject: "add retry loop"})
//
// Every operation is also exposed as a named action ("gate") so transports
// can bind to the engine through the dispatcher.
package changegate
