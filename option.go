package changegate

import (
	"github.com/viant/changegate/model/changeset"
	"github.com/viant/changegate/model/types"
	"github.com/viant/changegate/policy"
	"github.com/viant/changegate/service/committer"
	"github.com/viant/changegate/service/dao"
	"github.com/viant/changegate/service/dispatcher"
	"github.com/viant/changegate/service/event"
	"github.com/viant/changegate/service/review"
	"github.com/viant/changegate/service/runner"
	"github.com/viant/changegate/service/runner/exec"
	"github.com/viant/changegate/tracing"
	"github.com/viant/x"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Option customises the change gate service.
type Option func(s *Service)

// WithPolicy sets the commit message policy.
func WithPolicy(p *policy.Policy) Option {
	return func(s *Service) { s.policy = p }
}

// WithReviewService sets the review gate implementation.
func WithReviewService(svc review.Service) Option {
	return func(s *Service) { s.reviews = svc }
}

// WithRunner sets the verification runner.
func WithRunner(r runner.Service) Option {
	return func(s *Service) { s.runner = r }
}

// WithVerification builds an exec runner from a command specification.
func WithVerification(spec *exec.Input) Option {
	return func(s *Service) { s.runner = exec.New(spec) }
}

// WithCommitter sets the committer applying approved change sets.
func WithCommitter(c committer.Service) Option {
	return func(s *Service) { s.committer = c }
}

// WithEventService sets the typed event service.
func WithEventService(service *event.Service) Option {
	return func(s *Service) { s.events = service }
}

// WithChangeSetDAO sets the change set store.
func WithChangeSetDAO(dao dao.Service[string, changeset.ChangeSet]) Option {
	return func(s *Service) { s.changeSets = dao }
}

// WithExtensionTypes sets the extension types
func WithExtensionTypes(types ...*x.Type) Option {
	return func(s *Service) { s.extensionTypes = types }
}

// WithExtensionServices sets the extension services
func WithExtensionServices(services ...types.Service) Option {
	return func(s *Service) { s.extensionServices = services }
}

// WithDispatcherOptions lets the caller supply additional options passed to
// dispatcher.New (e.g. attaching a listener).
func WithDispatcherOptions(opts ...dispatcher.Option) Option {
	return func(s *Service) {
		s.dispatcherOptions = append(s.dispatcherOptions, opts...)
	}
}

// WithTracing configures OpenTelemetry tracing for the service. If outputFile is empty the
// stdout exporter is used; otherwise traces are written to the supplied file path. The function is
// safe to call multiple times – the first successful initialisation wins.
func WithTracing(serviceName, serviceVersion, outputFile string) Option {
	return func(s *Service) {
		_ = tracing.Init(serviceName, serviceVersion, outputFile)
	}
}

// WithTracingExporter configures OpenTelemetry tracing using a custom SpanExporter. This enables
// integrations with exporters other than the built-in stdout exporter, for example OTLP, Jaeger or
// Zipkin. The function is safe to call multiple times – the first successful initialisation wins.
func WithTracingExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) Option {
	return func(s *Service) {
		_ = tracing.InitWithExporter(serviceName, serviceVersion, exporter)
	}
}
