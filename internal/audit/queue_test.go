package audit

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func msg(id string) Message {
	return NewMessage(EntityClaim, id, "POST", time.Now())
}

func TestQueue_FIFO(t *testing.T) {
	q := NewQueue()
	for i := range 5000 {
		require.NoError(t, q.Enqueue(msg(fmt.Sprint(i))))
	}
	assert.Equal(t, 5000, q.Len())

	ctx := context.Background()
	for i := range 5000 {
		m, err := q.Dequeue(ctx)
		require.NoError(t, err)
		require.Equal(t, fmt.Sprint(i), m.EntityID)
	}
	assert.Equal(t, 0, q.Len())
}

func TestQueue_ConcurrentProducersKeepPerProducerOrder(t *testing.T) {
	q := NewQueue()
	const producers = 16
	const perProducer = 500

	var wg sync.WaitGroup
	for p := range producers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range perProducer {
				_ = q.Enqueue(msg(fmt.Sprintf("%d-%d", p, i)))
			}
		}()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	next := make(map[int]int, producers)
	for range producers * perProducer {
		m, err := q.Dequeue(ctx)
		require.NoError(t, err)

		var p, i int
		_, err = fmt.Sscanf(m.EntityID, "%d-%d", &p, &i)
		require.NoError(t, err)
		require.Equal(t, next[p], i, "producer %d out of order", p)
		next[p]++
	}
	wg.Wait()
	assert.Equal(t, 0, q.Len())
}

func TestQueue_DequeueSuspendsUntilEnqueue(t *testing.T) {
	q := NewQueue()
	got := make(chan Message, 1)

	go func() {
		m, err := q.Dequeue(context.Background())
		if err == nil {
			got <- m
		}
	}()

	select {
	case <-got:
		t.Fatal("dequeue returned from an empty queue")
	case <-time.After(50 * time.Millisecond):
	}

	require.NoError(t, q.Enqueue(msg("late")))
	select {
	case m := <-got:
		assert.Equal(t, "late", m.EntityID)
	case <-time.After(time.Second):
		t.Fatal("consumer was not woken by enqueue")
	}
}

func TestQueue_DequeueHonoursCancellation(t *testing.T) {
	q := NewQueue()
	ctx, cancel := context.WithCancel(context.Background())

	errCh := make(chan error, 1)
	go func() {
		_, err := q.Dequeue(ctx)
		errCh <- err
	}()

	cancel()
	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("dequeue did not observe cancellation")
	}
}

func TestQueue_CloseDrainsThenReportsClosed(t *testing.T) {
	q := NewQueue()
	require.NoError(t, q.Enqueue(msg("a")))
	require.NoError(t, q.Enqueue(msg("b")))

	q.Close()
	q.Close()

	assert.ErrorIs(t, q.Enqueue(msg("c")), ErrQueueClosed)

	ctx := context.Background()
	m, err := q.Dequeue(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a", m.EntityID)
	m, err = q.Dequeue(ctx)
	require.NoError(t, err)
	assert.Equal(t, "b", m.EntityID)

	_, err = q.Dequeue(ctx)
	assert.ErrorIs(t, err, ErrQueueClosed)
}

func TestQueue_CloseWakesSuspendedConsumer(t *testing.T) {
	q := NewQueue()
	errCh := make(chan error, 1)
	go func() {
		_, err := q.Dequeue(context.Background())
		errCh <- err
	}()

	time.Sleep(20 * time.Millisecond)
	q.Close()

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, ErrQueueClosed)
	case <-time.After(time.Second):
		t.Fatal("close did not wake the consumer")
	}
}

func TestQueue_EnqueueDoesNotWaitForConsumer(t *testing.T) {
	q := NewQueue()

	done := make(chan struct{})
	go func() {
		for i := range 100_000 {
			_ = q.Enqueue(msg(fmt.Sprint(i)))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("enqueue blocked without a consumer")
	}
	assert.Equal(t, 100_000, q.Len())
}

func TestQueue_InterleavedUseCompactsWithoutLosingOrder(t *testing.T) {
	q := NewQueue()
	ctx := context.Background()

	next := 0
	produced := 0
	for round := range 10 {
		for range 1500 {
			require.NoError(t, q.Enqueue(msg(fmt.Sprint(produced))))
			produced++
		}
		for range 1000 + round {
			m, err := q.Dequeue(ctx)
			require.NoError(t, err)
			require.Equal(t, fmt.Sprint(next), m.EntityID)
			next++
		}
	}
	assert.Equal(t, produced-next, q.Len())
}
