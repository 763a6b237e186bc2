package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/viant/changegate/internal/idgen"
	"github.com/viant/changegate/service/messaging"
)

// Config tunes an in-memory gate event stream.
type Config struct {
	// MaxRetries bounds how often a nacked event is redelivered before it
	// is parked on the dead letter list.
	MaxRetries  int
	RetryDelay  time.Duration
	DeadLetter  bool
	QueueBuffer int
}

// DefaultConfig suits the gate's observational event streams: a couple of
// redeliveries, short backoff, enough buffer for a burst of transitions.
func DefaultConfig() Config {
	return Config{
		MaxRetries:  2,
		RetryDelay:  50 * time.Millisecond,
		DeadLetter:  true,
		QueueBuffer: 128,
	}
}

// Message implements messaging.Message for the in-memory queue
type Message[T any] struct {
	id          string
	payload     T
	queue       *Queue[T]
	deliveries  int
	mu          sync.Mutex
	settled     bool
	publishedAt time.Time
}

// T returns the message payload
func (m *Message[T]) T() *T {
	return &m.payload
}

// Ack acknowledges the message as processed successfully
func (m *Message[T]) Ack() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.settled {
		return fmt.Errorf("message %v already settled", m.id)
	}
	m.settled = true
	return nil
}

// Nack indicates a failure in processing the message. The message is
// redelivered until MaxRetries is exhausted, then parked on the dead letter
// list when one is configured.
func (m *Message[T]) Nack(err error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.settled {
		return fmt.Errorf("message %v already settled", m.id)
	}
	m.settled = true

	if m.deliveries < m.queue.config.MaxRetries {
		m.queue.requeue(m)
		return nil
	}
	if m.queue.config.DeadLetter {
		m.queue.park(m)
	}
	return nil
}

// Queue implements an in-memory messaging.Queue
type Queue[T any] struct {
	messages chan *Message[T]
	config   Config

	mu     sync.Mutex
	parked []*Message[T]
}

// NewQueue creates a new in-memory queue
func NewQueue[T any](config Config) *Queue[T] {
	if config.QueueBuffer <= 0 {
		config.QueueBuffer = DefaultConfig().QueueBuffer
	}
	return &Queue[T]{
		messages: make(chan *Message[T], config.QueueBuffer),
		config:   config,
	}
}

// Publish adds a new item to the queue
func (q *Queue[T]) Publish(ctx context.Context, t *T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := &Message[T]{
		id:          idgen.New(),
		payload:     *t,
		queue:       q,
		publishedAt: time.Now(),
	}
	select {
	case q.messages <- msg:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Consume retrieves a single item from the queue
func (q *Queue[T]) Consume(ctx context.Context) (messaging.Message[T], error) {
	select {
	case msg := <-q.messages:
		return msg, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// requeue schedules a fresh, unsettled copy after the retry delay.
func (q *Queue[T]) requeue(m *Message[T]) {
	copy := &Message[T]{
		id:          m.id,
		payload:     m.payload,
		queue:       q,
		deliveries:  m.deliveries + 1,
		publishedAt: time.Now(),
	}
	time.AfterFunc(q.config.RetryDelay, func() {
		select {
		case q.messages <- copy:
		default:
			// buffer full – the copy is parked rather than dropped
			q.park(copy)
		}
	})
}

func (q *Queue[T]) park(m *Message[T]) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.parked = append(q.parked, m)
}

// Size returns the current number of messages in the queue
func (q *Queue[T]) Size() int {
	return len(q.messages)
}

// DLQSize returns the number of parked messages
func (q *Queue[T]) DLQSize() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.parked)
}

// DeadLetters drains the parked messages and returns their payloads, oldest
// first, so a host can inspect or replay events that exhausted redelivery.
func (q *Queue[T]) DeadLetters() []*T {
	q.mu.Lock()
	defer q.mu.Unlock()
	ret := make([]*T, 0, len(q.parked))
	for _, m := range q.parked {
		ret = append(ret, &m.payload)
	}
	q.parked = nil
	return ret
}

// ensure Queue implements messaging.Queue interface
var _ messaging.Queue[any] = (*Queue[any])(nil)
