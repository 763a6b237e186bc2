package dispatcher

import "errors"

var (
	ErrServiceNotFound = errors.New("action service not found")
	ErrMethodNotFound  = errors.New("method not found in service")
)
