// Package extension provides run-time registries for action services and
// the Go types appearing in their method signatures, allowing hosts to bind
// gate operations by name from a transport or embed their own actions.
package extension
