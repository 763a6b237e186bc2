package gate

import (
	"reflect"

	"github.com/viant/changegate/gate"
	"github.com/viant/changegate/model/types"
)

const Name = "gate"

func (s *Service) Name() string {
	return Name
}

func (s *Service) Methods() types.Signatures {
	return []types.Signature{
		{
			Name:        "submit",
			Description: "Opens the gate for a new change set built from a description and unified diff.",
			Input:       reflect.TypeOf(&SubmitInput{}),
			Output:      reflect.TypeOf(&SubmitOutput{}),
		},
		{
			Name:        "amend",
			Description: "Replaces the diff of an editing change set, bumping its revision.",
			Input:       reflect.TypeOf(&AmendInput{}),
			Output:      reflect.TypeOf(&gate.Snapshot{}),
		},
		{
			Name:        "verify",
			Description: "Runs the verification suite; a pass surfaces the change set for review.",
			Input:       reflect.TypeOf(&VerifyInput{}),
			Output:      reflect.TypeOf(&VerifyOutput{}),
		},
		{
			Name:        "approve",
			Description: "Records an explicit reviewer approval, opening the commit request window.",
			Input:       reflect.TypeOf(&DecideInput{}),
			Output:      reflect.TypeOf(&gate.Snapshot{}),
		},
		{
			Name:        "reject",
			Description: "Records an explicit reviewer rejection; the change set is closed for rework.",
			Input:       reflect.TypeOf(&DecideInput{}),
			Output:      reflect.TypeOf(&gate.Snapshot{}),
		},
		{
			Name: "commit",
			Description: `Validates the commit message and commits the change set when clean. Example
  "message": "feat: add retry loop to verifier"`,
			Input:  reflect.TypeOf(&CommitInput{}),
			Output: reflect.TypeOf(&CommitOutput{}),
		},
		{
			Name:        "status",
			Description: "Reports the gate state, attempt history and verdict for a change set.",
			Input:       reflect.TypeOf(&StatusInput{}),
			Output:      reflect.TypeOf(&gate.Snapshot{}),
		},
	}
}

// Method returns method by Name
func (s *Service) Method(name string) (types.Executable, error) {
	switch name {
	case "submit":
		return s.submit, nil
	case "amend":
		return s.amend, nil
	case "verify":
		return s.verify, nil
	case "approve":
		return s.decide(true), nil
	case "reject":
		return s.decide(false), nil
	case "commit":
		return s.commit, nil
	case "status":
		return s.status, nil
	default:
		return nil, types.NewMethodNotFoundError(name)
	}
}
