package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type testPayload struct {
	ID     string
	Detail string
}

func TestQueue(t *testing.T) {
	config := DefaultConfig()
	config.RetryDelay = 10 * time.Millisecond
	queue := NewQueue[testPayload](config)

	ctx := context.Background()
	payload := testPayload{ID: "cs-1", Detail: "review requested"}

	err := queue.Publish(ctx, &payload)
	assert.NoError(t, err)
	assert.Equal(t, 1, queue.Size())

	message, err := queue.Consume(ctx)
	assert.NoError(t, err)
	assert.NotNil(t, message)
	assert.Equal(t, 0, queue.Size())

	msgData := message.T()
	assert.Equal(t, payload.ID, msgData.ID)
	assert.Equal(t, payload.Detail, msgData.Detail)

	err = message.Ack()
	assert.NoError(t, err)

	// double ack should error
	err = message.Ack()
	assert.Error(t, err)
}

func TestQueueRetries(t *testing.T) {
	config := DefaultConfig()
	config.MaxRetries = 1
	config.RetryDelay = 10 * time.Millisecond
	queue := NewQueue[testPayload](config)

	ctx := context.Background()
	payload := testPayload{ID: "retry"}

	err := queue.Publish(ctx, &payload)
	assert.NoError(t, err)

	message, err := queue.Consume(ctx)
	assert.NoError(t, err)
	err = message.Nack(nil)
	assert.NoError(t, err)

	time.Sleep(30 * time.Millisecond)

	// retried copy
	message, err = queue.Consume(ctx)
	assert.NoError(t, err)
	err = message.Nack(nil)
	assert.NoError(t, err)

	time.Sleep(30 * time.Millisecond)

	// retries exhausted – message parked on DLQ
	assert.Equal(t, 0, queue.Size())
	assert.Equal(t, 1, queue.DLQSize())

	parked := queue.DeadLetters()
	if assert.Len(t, parked, 1) {
		assert.Equal(t, "retry", parked[0].ID)
	}
	assert.Equal(t, 0, queue.DLQSize())
}

func TestQueueContextCancellation(t *testing.T) {
	queue := NewQueue[testPayload](DefaultConfig())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	payload := testPayload{ID: "cancelled"}
	err := queue.Publish(ctx, &payload)
	assert.Error(t, err)

	ctxWithTimeout, cancelTimeout := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancelTimeout()

	_, err = queue.Consume(ctxWithTimeout)
	assert.Error(t, err)

	// queue remains usable after cancellation
	err = queue.Publish(context.Background(), &payload)
	assert.NoError(t, err)
}
