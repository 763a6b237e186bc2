package changegate

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/viant/changegate/gate"
	"github.com/viant/changegate/model/changeset"
	"github.com/viant/changegate/model/message"
	"github.com/viant/changegate/model/verification"
	agate "github.com/viant/changegate/service/action/gate"
	"github.com/viant/changegate/service/committer"
	"github.com/viant/changegate/service/runner"
	"github.com/viant/changegate/service/validator"
)

func passingRunner() runner.Service {
	return runner.Func(func(ctx context.Context) (*verification.Result, error) {
		return &verification.Result{Status: verification.StatusPass, StartedAt: time.Now()}, nil
	})
}

func scriptedRunner(statuses ...verification.Status) runner.Service {
	index := 0
	return runner.Func(func(ctx context.Context) (*verification.Result, error) {
		status := statuses[index]
		index++
		result := &verification.Result{Status: status, StartedAt: time.Now()}
		if status == verification.StatusFail {
			result.ExitCode = 1
		}
		return result, nil
	})
}

const testDiff = "--- a/verifier.go\n+++ b/verifier.go\n@@ -1 +1 @@\n-old\n+new\n"

func TestService_EndToEnd(t *testing.T) {
	ctx := context.Background()
	var committed []*message.Message
	srv := New(
		WithRunner(passingRunner()),
		WithCommitter(committer.Func(func(ctx context.Context, changeSet *changeset.ChangeSet, msg *message.Message) error {
			committed = append(committed, msg)
			return nil
		})),
	)

	changeSet := changeset.New("add retry loop", testDiff)
	assert.Nil(t, srv.Submit(ctx, changeSet))

	result, err := srv.Verify(ctx, changeSet.ID)
	assert.Nil(t, err)
	assert.True(t, result.Passed())

	// a pass surfaces the change set for review but never approves it
	pending, err := srv.PendingReviews(ctx)
	assert.Nil(t, err)
	if assert.Equal(t, 1, len(pending)) {
		assert.Equal(t, changeSet.ID, pending[0].ChangeSetID)
	}
	snapshot, err := srv.Status(changeSet.ID)
	assert.Nil(t, err)
	assert.Equal(t, gate.StateAwaitingReview, snapshot.State)

	assert.Nil(t, srv.Approve(ctx, changeSet.ID, "lgtm"))

	msg, validation, err := srv.RequestCommitRaw(ctx, changeSet.ID, "feat: add retry loop to verifier\n\nRetries transient failures up to three times.")
	assert.Nil(t, err)
	assert.True(t, validation.Ok)
	assert.Equal(t, message.TypeFeat, msg.Type)

	snapshot, err = srv.Status(changeSet.ID)
	assert.Nil(t, err)
	assert.Equal(t, gate.StateDone, snapshot.State)
	if assert.Equal(t, 1, len(committed)) {
		assert.Equal(t, "feat: add retry loop to verifier", committed[0].Header())
	}

	// the change set survived in the store
	stored, err := srv.ChangeSet(ctx, changeSet.ID)
	assert.Nil(t, err)
	assert.Equal(t, changeSet.ID, stored.ID)
}

func TestService_CommitMessageViolations(t *testing.T) {
	ctx := context.Background()
	srv := New(WithRunner(passingRunner()))

	changeSet := changeset.New("add telemetry", testDiff)
	assert.Nil(t, srv.Submit(ctx, changeSet))
	_, err := srv.Verify(ctx, changeSet.ID)
	assert.Nil(t, err)
	assert.Nil(t, srv.Approve(ctx, changeSet.ID, ""))

	useCases := []struct {
		description string
		raw         string
		expect      validator.ViolationKind
	}{
		{
			description: "unknown type",
			raw:         "oops: quick hack",
			expect:      validator.ViolationInvalidType,
		},
		{
			description: "prohibited content in body",
			raw:         "feat: add telemetry\n\nGenerated with SuperTool",
			expect:      validator.ViolationProhibitedContent,
		},
		{
			description: "malformed header",
			raw:         "no conventional header here",
			expect:      validator.ViolationMalformedHeader,
		},
	}
	for _, useCase := range useCases {
		_, validation, err := srv.RequestCommitRaw(ctx, changeSet.ID, useCase.raw)
		assert.Nil(t, err, useCase.description)
		assert.False(t, validation.Ok, useCase.description)
		found := false
		for _, violation := range validation.Violations {
			if violation.Kind == useCase.expect {
				found = true
			}
		}
		assert.True(t, found, useCase.description)

		// each refusal keeps the commit window open
		snapshot, err := srv.Status(changeSet.ID)
		assert.Nil(t, err)
		assert.Equal(t, gate.StateAwaitingCommitRequest, snapshot.State, useCase.description)
	}

	// a revised message still goes through
	_, validation, err := srv.RequestCommitRaw(ctx, changeSet.ID, "feat: add telemetry")
	assert.Nil(t, err)
	assert.True(t, validation.Ok)
}

func TestService_RejectionClosesGate(t *testing.T) {
	ctx := context.Background()
	srv := New(WithRunner(passingRunner()))

	changeSet := changeset.New("risky refactor", testDiff)
	assert.Nil(t, srv.Submit(ctx, changeSet))
	_, err := srv.Verify(ctx, changeSet.ID)
	assert.Nil(t, err)

	assert.Nil(t, srv.Reject(ctx, changeSet.ID, "approach is wrong"))
	snapshot, err := srv.Status(changeSet.ID)
	assert.Nil(t, err)
	assert.Equal(t, gate.StateRejected, snapshot.State)

	_, _, err = srv.RequestCommitRaw(ctx, changeSet.ID, "feat: risky refactor")
	assert.True(t, gate.IsProtocolError(err))

	// rework comes back as a fresh change set with its own gate
	rework := changeset.New("risky refactor, take two", testDiff)
	assert.Nil(t, srv.Submit(ctx, rework))
	_, err = srv.Verify(ctx, rework.ID)
	assert.Nil(t, err)
	assert.Nil(t, srv.Approve(ctx, rework.ID, "better"))
}

func TestService_EditLoop(t *testing.T) {
	ctx := context.Background()
	srv := New(WithRunner(scriptedRunner(
		verification.StatusFail,
		verification.StatusFail,
		verification.StatusPass,
	)))

	changeSet := changeset.New("fix flaky test", testDiff)
	assert.Nil(t, srv.Submit(ctx, changeSet))

	for i := 0; i < 2; i++ {
		result, err := srv.Verify(ctx, changeSet.ID)
		assert.Nil(t, err)
		assert.False(t, result.Passed())
		assert.Nil(t, srv.Amend(ctx, changeSet.ID, testDiff))
	}
	result, err := srv.Verify(ctx, changeSet.ID)
	assert.Nil(t, err)
	assert.True(t, result.Passed())

	snapshot, err := srv.Status(changeSet.ID)
	assert.Nil(t, err)
	assert.Equal(t, 3, len(snapshot.Attempts))
	assert.Equal(t, verification.StatusFail, snapshot.Attempts[0].Status)
	assert.Equal(t, verification.StatusFail, snapshot.Attempts[1].Status)
	assert.Equal(t, verification.StatusPass, snapshot.Attempts[2].Status)
	assert.Equal(t, 3, snapshot.Revision)
}

func TestService_UnknownChangeSet(t *testing.T) {
	srv := New()
	_, err := srv.Verify(context.Background(), "missing")
	assert.NotNil(t, err)
	_, err = srv.Status("missing")
	assert.NotNil(t, err)
}

func TestService_DispatcherBinding(t *testing.T) {
	ctx := context.Background()
	srv := New(WithRunner(passingRunner()))
	dispatcher := srv.Dispatcher()

	out, err := dispatcher.Dispatch(ctx, "gate", "submit", map[string]interface{}{
		"description": "add retry loop",
		"diff":        testDiff,
	})
	assert.Nil(t, err)
	submitted, ok := out.(*agate.SubmitOutput)
	if !assert.True(t, ok) {
		return
	}
	assert.NotEmpty(t, submitted.ChangeSetID)
	assert.Equal(t, string(gate.StateEditing), submitted.State)

	out, err = dispatcher.Dispatch(ctx, "gate", "verify", map[string]interface{}{
		"changeSetID": submitted.ChangeSetID,
	})
	assert.Nil(t, err)
	verified := out.(*agate.VerifyOutput)
	assert.True(t, verified.Result.Passed())
	assert.Equal(t, string(gate.StateAwaitingReview), verified.State)

	out, err = dispatcher.Dispatch(ctx, "gate", "approve", map[string]interface{}{
		"changeSetID": submitted.ChangeSetID,
		"comment":     "lgtm",
	})
	assert.Nil(t, err)
	assert.Equal(t, gate.StateAwaitingCommitRequest, out.(*gate.Snapshot).State)

	out, err = dispatcher.Dispatch(ctx, "gate", "commit", map[string]interface{}{
		"changeSetID": submitted.ChangeSetID,
		"message":     "feat: add retry loop to verifier",
	})
	assert.Nil(t, err)
	result := out.(*agate.CommitOutput)
	assert.True(t, result.Valid)
	assert.Equal(t, string(gate.StateDone), result.State)
}
