package exec

import (
	"context"
	"reflect"
	"strings"

	"github.com/viant/changegate/model/types"
)

const Name = "runner/exec"

func (s *Service) Name() string {
	return Name
}

func (s *Service) Methods() types.Signatures {
	return []types.Signature{
		{
			Name: "run",
			Description: `Runs the verification commands through a shell session and reports pass/fail.
Each entry in the commands array is started as an independent shell invocation; the first
non-zero exit fails the attempt. Example
  "commands": ["go build ./...", "go test ./..."]`,
			Input:  reflect.TypeOf(&Input{}),
			Output: reflect.TypeOf(&Output{}),
		}}
}

func (s *Service) run(ctx context.Context, in, out interface{}) error {
	input, ok := in.(*Input)
	if !ok {
		return types.NewInvalidInputError(in)
	}
	output, ok := out.(*Output)
	if !ok {
		return types.NewInvalidOutputError(out)
	}
	return s.Execute(ctx, input, output)
}

// Method returns method by Name
func (s *Service) Method(name string) (types.Executable, error) {
	switch strings.ToLower(name) {
	case "run":
		return s.run, nil
	default:
		return nil, types.NewMethodNotFoundError(name)
	}
}
