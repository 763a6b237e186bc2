package changegate

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/viant/changegate/model/changeset"
	"github.com/viant/changegate/model/verification"
	"github.com/viant/changegate/policy"
	"github.com/viant/changegate/service/runner"
)

func TestConfig_Validate(t *testing.T) {
	assert.Nil(t, DefaultConfig().Validate())

	var config *Config
	assert.Nil(t, config.Validate())

	config = &Config{Verification: VerificationConfig{TimeoutMs: -1}}
	assert.NotNil(t, config.Validate())
}

func TestNewFromConfig(t *testing.T) {
	ctx := context.Background()
	config := &Config{
		Policy: &policy.Config{AllowedTypes: []string{"feat"}, SubjectLimit: 40},
		Store:  StoreConfig{BaseURL: "mem://localhost/changegate/cfg"},
	}
	srv, err := NewFromConfig(config, WithRunner(runner.Func(func(ctx context.Context) (*verification.Result, error) {
		return &verification.Result{Status: verification.StatusPass, StartedAt: time.Now()}, nil
	})))
	if !assert.Nil(t, err) {
		return
	}

	changeSet := changeset.New("narrow policy", testDiff)
	assert.Nil(t, srv.Submit(ctx, changeSet))
	_, err = srv.Verify(ctx, changeSet.ID)
	assert.Nil(t, err)
	assert.Nil(t, srv.Approve(ctx, changeSet.ID, ""))

	// the configured policy replaces the default type set
	_, validation, err := srv.RequestCommitRaw(ctx, changeSet.ID, "fix: narrow policy")
	assert.Nil(t, err)
	assert.False(t, validation.Ok)

	_, validation, err = srv.RequestCommitRaw(ctx, changeSet.ID, "feat: narrow policy")
	assert.Nil(t, err)
	assert.True(t, validation.Ok)

	// the change set went through the fs-backed store
	stored, err := srv.ChangeSet(ctx, changeSet.ID)
	assert.Nil(t, err)
	assert.Equal(t, changeSet.ID, stored.ID)
}
