package dispatcher

// Package dispatcher invokes registered action services by name. It converts
// a loosely typed input (a decoded JSON/YAML map, typically) into the
// method's declared input struct, allocates the output and, after the method
// runs, calls an optional listener that can observe the data that flew
// through the call.

import (
	"context"
	"fmt"
	"reflect"

	"github.com/viant/changegate/extension"
	"github.com/viant/structology/conv"
)

// Listener is invoked once an action method completes, whether or not it
// returned an error. Implementations can log, collect metrics or perform
// any other side-effects they require.
type Listener func(service, method string, input, output interface{}, err error)

// Option customises the dispatcher instance.
type Option func(*service)

// WithListener overrides the listener invoked after every dispatched call.
// Passing nil disables the callback entirely.
func WithListener(l Listener) Option {
	return func(s *service) {
		s.listener = l
	}
}

// Service dispatches named action calls.
type Service interface {
	Dispatch(ctx context.Context, serviceName, method string, rawInput interface{}) (interface{}, error)
}

type service struct {
	actions   *extension.Actions
	converter *conv.Converter
	listener  Listener
}

// Dispatch resolves serviceName/method against the action registry, shapes
// rawInput into the method's input type and invokes it, returning the
// populated output.
func (s *service) Dispatch(ctx context.Context, serviceName, method string, rawInput interface{}) (interface{}, error) {
	actionService := s.actions.Lookup(serviceName)
	if actionService == nil {
		return nil, fmt.Errorf("%w: %v", ErrServiceNotFound, serviceName)
	}
	signature := actionService.Methods().Lookup(method)
	if signature == nil {
		return nil, fmt.Errorf("%w: %v.%v", ErrMethodNotFound, serviceName, method)
	}
	executable, err := actionService.Method(method)
	if err != nil {
		return nil, err
	}

	input := newInstancePtr(signature.Input)
	if rawInput != nil {
		if err := s.converter.Convert(rawInput, input); err != nil {
			return nil, fmt.Errorf("failed to convert input for %v.%v: %w", serviceName, method, err)
		}
	}
	output := newInstancePtr(signature.Output)

	err = executable(ctx, input, output)
	if s.listener != nil {
		s.listener(serviceName, method, input, output, err)
	}
	if err != nil {
		return output, err
	}
	return output, nil
}

func newInstancePtr(t reflect.Type) interface{} {
	if t == nil {
		return nil
	}
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return reflect.New(t).Interface()
}

// New creates a dispatcher over the supplied action registry.
func New(actions *extension.Actions, opts ...Option) Service {
	options := conv.DefaultOptions()
	options.ClonePointerData = true
	options.IgnoreUnmapped = true
	options.AccessUnexported = true

	s := &service{
		actions:   actions,
		converter: conv.NewConverter(options),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}
