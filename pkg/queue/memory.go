// queue package

package queue

import (
	"errors"
	"sync"
)

const (
	// QueueBufferSize is the default capacity of a queue
	QueueBufferSize = 1024
)

var (
	// ErrQueueFull is returned when enqueuing onto a queue at capacity.
	ErrQueueFull = errors.New("queue is full")
	// ErrQueueEmpty is returned when dequeuing from an empty queue.
	ErrQueueEmpty = errors.New("queue is empty")
)

// InMemoryQueue implements an in-memory queue.
type InMemoryQueue struct {
	ch   chan interface{}
	lock sync.RWMutex
}

// NewInMemoryQueue creates a new queue holding at most size items.
// A size below one uses QueueBufferSize.
func NewInMemoryQueue(size int) *InMemoryQueue {
	if size < 1 {
		size = QueueBufferSize
	}
	return &InMemoryQueue{
		ch: make(chan interface{}, size),
	}
}

// Enqueue adds an item to the end of the queue without blocking.
func (q *InMemoryQueue) Enqueue(item interface{}) error {
	q.lock.Lock()
	defer q.lock.Unlock()
	select {
	case q.ch <- item:
		return nil
	default:
		return ErrQueueFull
	}
}

// Dequeue removes and returns the item from the front of the queue.
func (q *InMemoryQueue) Dequeue() (interface{}, error) {
	q.lock.Lock()
	defer q.lock.Unlock()
	select {
	case item := <-q.ch:
		return item, nil
	default:
		return nil, ErrQueueEmpty
	}
}

// Size returns the current size of the queue.
func (q *InMemoryQueue) Size() int {
	q.lock.RLock()
	defer q.lock.RUnlock()
	return len(q.ch)
}

// ReadAllMessages reads all pending messages in the queue
func (q *InMemoryQueue) ReadAllMessages() ([]interface{}, error) {
	q.lock.Lock()
	defer q.lock.Unlock()

	var messages []interface{}
	for len(q.ch) > 0 {
		messages = append(messages, <-q.ch)
	}

	return messages, nil
}

// ClearQueue clears all messages from the queue.
func (q *InMemoryQueue) ClearQueue() error {
	q.lock.Lock()
	defer q.lock.Unlock()

	for len(q.ch) > 0 {
		<-q.ch
	}
	return nil
}
