package types

// Service is a named action service exposing invocable methods. The gate
// façade, the verification runner and any host-supplied extension expose
// their operations through this contract so that transports can bind to
// them by name.
type Service interface {
	Name() string
	Methods() Signatures
	Method(name string) (Executable, error)
}
