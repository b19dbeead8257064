package audit

import (
	"context"
	"sync"
)

// compactThreshold bounds how many consumed slots the queue keeps before
// shifting live items to the front of its backing slice.
const compactThreshold = 1024

// Queue is an unbounded multi-producer, single-consumer FIFO of messages.
// Enqueue never waits for the consumer. Dequeue suspends on an empty queue
// until a producer enqueues, the context ends, or the queue is closed.
type Queue struct {
	mu     sync.Mutex
	items  []Message
	head   int
	closed bool

	wake      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

func NewQueue() *Queue {
	return &Queue{
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
}

// Enqueue appends msg to the tail. It returns ErrQueueClosed after Close.
func (q *Queue) Enqueue(msg Message) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return ErrQueueClosed
	}
	q.items = append(q.items, msg)
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
	return nil
}

// Dequeue returns the oldest message. Only one goroutine may call it at a
// time. Once the queue is closed, remaining messages are still returned and
// ErrQueueClosed follows the last one.
func (q *Queue) Dequeue(ctx context.Context) (Message, error) {
	for {
		msg, ok, closed := q.pop()
		if ok {
			return msg, nil
		}
		if closed {
			return Message{}, ErrQueueClosed
		}

		select {
		case <-ctx.Done():
			return Message{}, ctx.Err()
		case <-q.wake:
		case <-q.done:
		}
	}
}

// Close rejects further enqueues and wakes the consumer. It is idempotent.
func (q *Queue) Close() {
	q.closeOnce.Do(func() {
		q.mu.Lock()
		q.closed = true
		q.mu.Unlock()
		close(q.done)
	})
}

// Len returns the number of messages waiting to be dequeued.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items) - q.head
}

func (q *Queue) pop() (msg Message, ok bool, closed bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.head == len(q.items) {
		return Message{}, false, q.closed
	}

	msg = q.items[q.head]
	q.items[q.head] = Message{}
	q.head++

	switch {
	case q.head == len(q.items):
		q.items = q.items[:0]
		q.head = 0
	case q.head >= compactThreshold && q.head*2 >= len(q.items):
		n := copy(q.items, q.items[q.head:])
		clear(q.items[n:])
		q.items = q.items[:n]
		q.head = 0
	}
	return msg, true, false
}
