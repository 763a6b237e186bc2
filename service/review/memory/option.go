package memory

import (
	"github.com/viant/changegate/service/dao"
	"github.com/viant/changegate/service/messaging"
	"github.com/viant/changegate/service/review"
)

type Option func(*service)

// WithRequestDAO replaces the default in-memory request store, e.g. with an
// afs-backed one so that pending reviews survive a restart.
func WithRequestDAO(svc dao.Service[string, review.Request]) Option {
	return func(s *service) { s.reqDAO = svc }
}

// WithDecisionDAO replaces the default in-memory decision store.
func WithDecisionDAO(svc dao.Service[string, review.Decision]) Option {
	return func(s *service) { s.decDAO = svc }
}

// WithQueue replaces the default event queue.
func WithQueue(q messaging.Queue[review.Event]) Option {
	return func(s *service) { s.events = q }
}
