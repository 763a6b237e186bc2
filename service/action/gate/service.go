package gate

import (
	"context"
	"errors"

	"github.com/viant/changegate/gate"
	"github.com/viant/changegate/model/changeset"
	"github.com/viant/changegate/model/message"
	"github.com/viant/changegate/model/types"
	"github.com/viant/changegate/model/verification"
	"github.com/viant/changegate/service/review"
	"github.com/viant/changegate/service/validator"
)

// Coordinator drives gates for individual change sets; the root changegate
// service implements it.
type Coordinator interface {
	Submit(ctx context.Context, changeSet *changeset.ChangeSet) error
	Amend(ctx context.Context, changeSetID, diff string) error
	Verify(ctx context.Context, changeSetID string) (*verification.Result, error)
	Decide(ctx context.Context, changeSetID string, approved bool, comment string) (*review.Decision, error)
	RequestCommitRaw(ctx context.Context, changeSetID, raw string) (*message.Message, *validator.Result, error)
	Status(changeSetID string) (*gate.Snapshot, error)
}

// Service exposes gate operations as a named action service so transports
// can bind to them through the dispatcher.
type Service struct {
	coordinator Coordinator
}

func (s *Service) submit(ctx context.Context, in, out interface{}) error {
	input, ok := in.(*SubmitInput)
	if !ok {
		return types.NewInvalidInputError(in)
	}
	output, ok := out.(*SubmitOutput)
	if !ok {
		return types.NewInvalidOutputError(out)
	}
	changeSet := changeset.New(input.Description, input.Diff)
	if err := s.coordinator.Submit(ctx, changeSet); err != nil {
		return err
	}
	output.ChangeSetID = changeSet.ID
	return s.fillState(changeSet.ID, &output.State)
}

func (s *Service) amend(ctx context.Context, in, out interface{}) error {
	input, ok := in.(*AmendInput)
	if !ok {
		return types.NewInvalidInputError(in)
	}
	output, ok := out.(*gate.Snapshot)
	if !ok {
		return types.NewInvalidOutputError(out)
	}
	if err := s.coordinator.Amend(ctx, input.ChangeSetID, input.Diff); err != nil {
		return err
	}
	return s.fillSnapshot(input.ChangeSetID, output)
}

func (s *Service) verify(ctx context.Context, in, out interface{}) error {
	input, ok := in.(*VerifyInput)
	if !ok {
		return types.NewInvalidInputError(in)
	}
	output, ok := out.(*VerifyOutput)
	if !ok {
		return types.NewInvalidOutputError(out)
	}
	result, err := s.coordinator.Verify(ctx, input.ChangeSetID)
	if err != nil {
		return err
	}
	output.Result = result
	return s.fillState(input.ChangeSetID, &output.State)
}

func (s *Service) decide(approved bool) types.Executable {
	return func(ctx context.Context, in, out interface{}) error {
		input, ok := in.(*DecideInput)
		if !ok {
			return types.NewInvalidInputError(in)
		}
		output, ok := out.(*gate.Snapshot)
		if !ok {
			return types.NewInvalidOutputError(out)
		}
		if _, err := s.coordinator.Decide(ctx, input.ChangeSetID, approved, input.Comment); err != nil {
			return err
		}
		return s.fillSnapshot(input.ChangeSetID, output)
	}
}

func (s *Service) commit(ctx context.Context, in, out interface{}) error {
	input, ok := in.(*CommitInput)
	if !ok {
		return types.NewInvalidInputError(in)
	}
	output, ok := out.(*CommitOutput)
	if !ok {
		return types.NewInvalidOutputError(out)
	}
	msg, validation, err := s.coordinator.RequestCommitRaw(ctx, input.ChangeSetID, input.Message)
	if err != nil {
		return err
	}
	output.Valid = validation.Ok
	output.Violations = validation.Violations
	output.Message = msg
	return s.fillState(input.ChangeSetID, &output.State)
}

func (s *Service) status(ctx context.Context, in, out interface{}) error {
	input, ok := in.(*StatusInput)
	if !ok {
		return types.NewInvalidInputError(in)
	}
	output, ok := out.(*gate.Snapshot)
	if !ok {
		return types.NewInvalidOutputError(out)
	}
	return s.fillSnapshot(input.ChangeSetID, output)
}

func (s *Service) fillSnapshot(changeSetID string, output *gate.Snapshot) error {
	snapshot, err := s.coordinator.Status(changeSetID)
	if err != nil {
		return err
	}
	*output = *snapshot
	return nil
}

func (s *Service) fillState(changeSetID string, state *string) error {
	snapshot, err := s.coordinator.Status(changeSetID)
	if err != nil {
		return err
	}
	*state = string(snapshot.State)
	return nil
}

// New creates a gate action service backed by the supplied coordinator.
func New(coordinator Coordinator) (*Service, error) {
	if coordinator == nil {
		return nil, errors.New("coordinator was nil")
	}
	return &Service{coordinator: coordinator}, nil
}
