package changegate

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/viant/changegate/extension"
	"github.com/viant/changegate/gate"
	"github.com/viant/changegate/model/changeset"
	"github.com/viant/changegate/model/message"
	"github.com/viant/changegate/model/types"
	"github.com/viant/changegate/model/verification"
	"github.com/viant/changegate/policy"
	agate "github.com/viant/changegate/service/action/gate"
	"github.com/viant/changegate/service/committer"
	"github.com/viant/changegate/service/dao"
	csmemory "github.com/viant/changegate/service/dao/changeset/memory"
	"github.com/viant/changegate/service/dispatcher"
	"github.com/viant/changegate/service/event"
	"github.com/viant/changegate/service/review"
	reviewmem "github.com/viant/changegate/service/review/memory"
	"github.com/viant/changegate/service/runner"
	"github.com/viant/changegate/service/runner/exec"
	"github.com/viant/changegate/service/validator"
	"github.com/viant/x"
)

// ErrUnknownChangeSet reports an identifier no gate was opened for.
var ErrUnknownChangeSet = errors.New("unknown change set")

// Service is the change gate façade: it opens a gate per submitted change
// set and bridges the review service verdicts into the per-change-set
// engines. It also exposes every gate operation as a named action so hosts
// can bind transports through the dispatcher.
type Service struct {
	policy            *policy.Policy
	validator         *validator.Service
	reviews           review.Service
	runner            runner.Service
	committer         committer.Service
	events            *event.Service
	changeSets        dao.Service[string, changeset.ChangeSet]
	actions           *extension.Actions
	dispatcher        dispatcher.Service
	dispatcherOptions []dispatcher.Option
	extensionTypes    []*x.Type
	extensionServices []types.Service

	mux     sync.RWMutex
	engines map[string]*gate.Engine
}

func (s *Service) init(options []Option) {
	for _, option := range options {
		option(s)
	}
	s.ensureBaseSetup()
	s.actions = extension.NewActions(s.extensionTypes...)
	gateAction, _ := agate.New(s)
	s.actions.Register(gateAction)
	if execService, ok := s.runner.(*exec.Service); ok {
		s.actions.Register(execService)
	}
	for _, service := range s.extensionServices {
		s.actions.Register(service)
	}
	s.dispatcher = dispatcher.New(s.actions, s.dispatcherOptions...)
}

func (s *Service) ensureBaseSetup() {
	if s.validator == nil {
		s.validator = validator.New(s.policy)
	}
	if s.reviews == nil {
		s.reviews = reviewmem.New()
	}
	if s.committer == nil {
		s.committer = committer.Nop()
	}
	if s.changeSets == nil {
		s.changeSets = csmemory.New()
	}
	if s.events == nil {
		s.events = event.New()
	}
}

// Submit opens a gate for the change set and records it. The gate starts in
// the editing state with the change set attached.
func (s *Service) Submit(ctx context.Context, changeSet *changeset.ChangeSet) error {
	if changeSet == nil {
		return errors.New("change set was nil")
	}
	engine := gate.New(
		gate.WithRunner(s.runner),
		gate.WithReviewService(s.reviews),
		gate.WithValidator(s.validator),
		gate.WithCommitter(s.committer),
		gate.WithEvents(s.events),
	)
	if err := engine.Submit(ctx, changeSet); err != nil {
		return err
	}
	if err := s.changeSets.Save(ctx, changeSet); err != nil {
		return err
	}
	s.mux.Lock()
	s.engines[changeSet.ID] = engine
	s.mux.Unlock()
	return nil
}

// Engine returns the gate engine owning the change set.
func (s *Service) Engine(changeSetID string) (*gate.Engine, error) {
	s.mux.RLock()
	defer s.mux.RUnlock()
	engine, ok := s.engines[changeSetID]
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrUnknownChangeSet, changeSetID)
	}
	return engine, nil
}

// Amend replaces the diff of an editing change set and persists it.
func (s *Service) Amend(ctx context.Context, changeSetID, diff string) error {
	engine, err := s.Engine(changeSetID)
	if err != nil {
		return err
	}
	if err := engine.Amend(ctx, diff); err != nil {
		return err
	}
	return s.changeSets.Save(ctx, engine.ChangeSet())
}

// Verify runs the verification suite for the change set.
func (s *Service) Verify(ctx context.Context, changeSetID string) (*verification.Result, error) {
	engine, err := s.Engine(changeSetID)
	if err != nil {
		return nil, err
	}
	return engine.Verify(ctx)
}

// Decide records an explicit reviewer verdict on the review gate and applies
// it to the engine.
func (s *Service) Decide(ctx context.Context, changeSetID string, approved bool, comment string) (*review.Decision, error) {
	engine, err := s.Engine(changeSetID)
	if err != nil {
		return nil, err
	}
	if state := engine.State(); state != gate.StateAwaitingReview {
		return nil, gate.NewProtocolError(state, "decision")
	}
	decision, err := s.reviews.Decide(ctx, changeSetID, approved, comment)
	if err != nil {
		return nil, err
	}
	if err := engine.ApplyDecision(ctx, decision); err != nil {
		return nil, err
	}
	return decision, nil
}

// Approve records an explicit approval for the change set.
func (s *Service) Approve(ctx context.Context, changeSetID, comment string) error {
	_, err := s.Decide(ctx, changeSetID, true, comment)
	return err
}

// Reject records an explicit rejection for the change set.
func (s *Service) Reject(ctx context.Context, changeSetID, comment string) error {
	_, err := s.Decide(ctx, changeSetID, false, comment)
	return err
}

// RequestCommit validates the commit message and commits the change set
// when it is clean.
func (s *Service) RequestCommit(ctx context.Context, changeSetID string, msg *message.Message) (*validator.Result, error) {
	engine, err := s.Engine(changeSetID)
	if err != nil {
		return nil, err
	}
	return engine.RequestCommit(ctx, msg)
}

// RequestCommitRaw parses raw commit message text and requests the commit.
func (s *Service) RequestCommitRaw(ctx context.Context, changeSetID, raw string) (*message.Message, *validator.Result, error) {
	engine, err := s.Engine(changeSetID)
	if err != nil {
		return nil, nil, err
	}
	return engine.RequestCommitRaw(ctx, raw)
}

// Status reports the gate state, attempt history and verdict for the
// change set.
func (s *Service) Status(changeSetID string) (*gate.Snapshot, error) {
	engine, err := s.Engine(changeSetID)
	if err != nil {
		return nil, err
	}
	return engine.Snapshot(), nil
}

// ChangeSet loads the recorded change set.
func (s *Service) ChangeSet(ctx context.Context, changeSetID string) (*changeset.ChangeSet, error) {
	return s.changeSets.Load(ctx, changeSetID)
}

// PendingReviews lists review requests awaiting a verdict.
func (s *Service) PendingReviews(ctx context.Context) ([]*review.Request, error) {
	return s.reviews.ListPending(ctx)
}

// Reviews exposes the review gate.
func (s *Service) Reviews() review.Service {
	return s.reviews
}

// Events exposes the typed event service gate transitions publish on.
func (s *Service) Events() *event.Service {
	return s.events
}

// Actions exposes the action registry.
func (s *Service) Actions() *extension.Actions {
	return s.actions
}

// Dispatcher exposes the dispatcher bound to the action registry.
func (s *Service) Dispatcher() dispatcher.Service {
	return s.dispatcher
}

// RegisterExtensionTypes registers additional data types.
func (s *Service) RegisterExtensionTypes(types ...*x.Type) {
	for i := range types {
		s.actions.Types().Register(types[i])
	}
}

// RegisterExtensionServices registers additional action services.
func (s *Service) RegisterExtensionServices(services ...types.Service) {
	for i := range services {
		s.actions.Register(services[i])
	}
}

// New creates a change gate service.
func New(options ...Option) *Service {
	ret := &Service{engines: make(map[string]*gate.Engine)}
	ret.init(options)
	return ret
}
