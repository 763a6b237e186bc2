package memory

import (
	"context"
	"errors"
	"fmt"

	"github.com/viant/changegate/internal/clock"
	"github.com/viant/changegate/internal/idgen"
	"github.com/viant/changegate/service/dao"
	"github.com/viant/changegate/service/dao/store"
	"github.com/viant/changegate/service/messaging"
	qmem "github.com/viant/changegate/service/messaging/memory"
	"github.com/viant/changegate/service/review"
)

type service struct {
	// DAO-backed stores
	reqDAO dao.Service[string, review.Request]
	decDAO dao.Service[string, review.Decision]

	// fan-out queue
	events messaging.Queue[review.Event]
}

// key selectors – grab ID field
func reqKey(r *review.Request) string  { return r.ID }
func decKey(d *review.Decision) string { return d.ID }

func New(options ...Option) review.Service {
	ret := &service{
		reqDAO: store.NewMemoryStore[string, review.Request](reqKey),
		decDAO: store.NewMemoryStore[string, review.Decision](decKey),
		events: qmem.NewQueue[review.Event](qmem.DefaultConfig()),
	}
	for _, option := range options {
		option(ret)
	}
	return ret
}

func (s *service) RequestReview(ctx context.Context, r *review.Request) error {
	if r == nil {
		return errors.New("invalid request")
	}
	if r.ChangeSetID == "" {
		return errors.New("changeSetID is required")
	}

	// Reviews are keyed by change set so that an amended revision replaces
	// the prior pending request instead of accumulating duplicates.
	if r.ID == "" {
		r.ID = r.ChangeSetID
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = clock.Now()
	}

	// A decided request is final; re-surfacing it would re-open a closed gate.
	if d, _ := s.decDAO.Load(ctx, r.ID); d != nil {
		return fmt.Errorf("request %s already decided", r.ID)
	}

	// Idempotent save – overwrite any previous pending copy to handle
	// re-submissions gracefully.
	if err := s.reqDAO.Save(ctx, r); err != nil {
		return err
	}
	_ = s.events.Publish(ctx, &review.Event{Topic: review.TopicRequestCreated, Data: r})
	return nil
}

func (s *service) ListPending(ctx context.Context) ([]*review.Request, error) {
	all, err := s.reqDAO.List(ctx)
	if err != nil {
		return nil, err
	}
	pending := make([]*review.Request, 0, len(all))
	for _, r := range all {
		if d, _ := s.decDAO.Load(ctx, r.ID); d == nil {
			pending = append(pending, r)
		}
	}
	return pending, nil
}

func (s *service) Decide(ctx context.Context, id string, approved bool, comment string) (*review.Decision, error) {
	if id == "" {
		return nil, errors.New("empty id")
	}
	request, _ := s.reqDAO.Load(ctx, id)
	if request == nil {
		return nil, fmt.Errorf("request %s not found", id)
	}
	if d, _ := s.decDAO.Load(ctx, id); d != nil {
		return nil, fmt.Errorf("request %s already decided", id)
	}

	d := &review.Decision{
		ID:        id,
		Approved:  approved,
		Comment:   comment,
		DecidedAt: clock.Now(),
	}
	if err := s.decDAO.Save(ctx, d); err != nil {
		return nil, err
	}
	_ = s.events.Publish(ctx, &review.Event{Topic: review.TopicDecisionCreated, Data: d})
	return d, nil
}

func (s *service) Decision(ctx context.Context, id string) (*review.Decision, error) {
	if id == "" {
		return nil, errors.New("empty id")
	}
	return s.decDAO.Load(ctx, id)
}

func (s *service) Queue() messaging.Queue[review.Event] { return s.events }

var _ review.Service = (*service)(nil)

// NewRequestID returns a fresh identifier for requests not correlated with a
// change set.
func NewRequestID() string { return idgen.New() }
