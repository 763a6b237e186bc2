package dispatcher

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/changegate/extension"
	"github.com/viant/changegate/model/types"
)

type echoInput struct {
	Text  string `json:"text"`
	Times int    `json:"times"`
}

type echoOutput struct {
	Echoed string `json:"echoed"`
}

type echoService struct{}

func (s *echoService) Name() string { return "test/echo" }

func (s *echoService) Methods() types.Signatures {
	return []types.Signature{
		{
			Name:   "echo",
			Input:  reflect.TypeOf(&echoInput{}),
			Output: reflect.TypeOf(&echoOutput{}),
		},
	}
}

func (s *echoService) Method(name string) (types.Executable, error) {
	switch name {
	case "echo":
		return func(ctx context.Context, in, out interface{}) error {
			input := in.(*echoInput)
			output := out.(*echoOutput)
			if input.Times <= 0 {
				return errors.New("times must be positive")
			}
			output.Echoed = strings.Repeat(input.Text, input.Times)
			return nil
		}, nil
	}
	return nil, types.NewMethodNotFoundError(name)
}

func TestService_Dispatch(t *testing.T) {
	actions := extension.NewActions()
	actions.Register(&echoService{})

	var observed string
	dispatcher := New(actions, WithListener(func(service, method string, input, output interface{}, err error) {
		observed = service + "." + method
	}))

	output, err := dispatcher.Dispatch(context.Background(), "test/echo", "echo",
		map[string]interface{}{"text": "ab", "times": 2})
	assert.Nil(t, err)
	echoed, ok := output.(*echoOutput)
	if assert.True(t, ok) {
		assert.Equal(t, "abab", echoed.Echoed)
	}
	assert.Equal(t, "test/echo.echo", observed)
}

func TestService_DispatchErrors(t *testing.T) {
	actions := extension.NewActions()
	actions.Register(&echoService{})
	dispatcher := New(actions)

	_, err := dispatcher.Dispatch(context.Background(), "test/missing", "echo", nil)
	assert.True(t, errors.Is(err, ErrServiceNotFound))

	_, err = dispatcher.Dispatch(context.Background(), "test/echo", "missing", nil)
	assert.True(t, errors.Is(err, ErrMethodNotFound))

	// method errors propagate, the listener still fires
	_, err = dispatcher.Dispatch(context.Background(), "test/echo", "echo",
		map[string]interface{}{"text": "ab"})
	assert.NotNil(t, err)
}
