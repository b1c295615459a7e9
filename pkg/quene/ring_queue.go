package quene

import (
	"errors"
	"sync"
)

var (
	ErrQueueFull  = errors.New("queue is full")
	ErrQueueEmpty = errors.New("queue is empty")
)

// RingQueue is a fixed-capacity generic FIFO queue, safe for concurrent use.
type RingQueue[T any] struct {
	items    []T
	head     int
	tail     int
	size     int
	capacity int
	mu       sync.RWMutex
}

func NewRingQueue[T any](capacity int) *RingQueue[T] {
	return &RingQueue[T]{
		items:    make([]T, capacity),
		capacity: capacity,
	}
}

func (q *RingQueue[T]) Size() int {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.size
}

func (q *RingQueue[T]) IsEmpty() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.size == 0
}

func (q *RingQueue[T]) IsFull() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.size == q.capacity
}

func (q *RingQueue[T]) Enqueue(item T) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.size == q.capacity {
		return ErrQueueFull
	}

	q.items[q.tail] = item
	q.tail = (q.tail + 1) % q.capacity
	q.size++

	return nil
}

func (q *RingQueue[T]) Dequeue() (T, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	var zero T

	if q.size == 0 {
		return zero, ErrQueueEmpty
	}

	item := q.items[q.head]
	q.items[q.head] = zero
	q.head = (q.head + 1) % q.capacity
	q.size--

	return item, nil
}

func (q *RingQueue[T]) Peek() (T, error) {
	q.mu.RLock()
	defer q.mu.RUnlock()

	var zero T

	if q.size == 0 {
		return zero, ErrQueueEmpty
	}

	return q.items[q.head], nil
}

func (q *RingQueue[T]) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()

	clear(q.items)
	q.head = 0
	q.tail = 0
	q.size = 0
}

// ForEach visits every queued element in FIFO order while holding the
// read lock; fn must not call back into the queue.
func (q *RingQueue[T]) ForEach(fn func(T)) {
	q.mu.RLock()
	defer q.mu.RUnlock()

	idx := q.head
	for i := 0; i < q.size; i++ {
		fn(q.items[idx])
		idx = (idx + 1) % q.capacity
	}
}
