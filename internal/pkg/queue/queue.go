package queue

import (
	"errors"
	"sync"

	"commentguard/internal/pkg/models"
)

var (
	ErrQueueFull   = errors.New("queue is full")
	ErrQueueEmpty  = errors.New("queue is empty")
	ErrQueueClosed = errors.New("queue is closed")
)

// Capacity-bound FIFO queue of comment batches. Closing the queue rejects
// further inserts; already-queued batches can still be drained.
type Queue struct {
	mu       sync.Mutex
	capacity int
	closed   bool
	q        []models.CommentBatch
}

// Creates an empty queue with the specified capacity.
func CreateQueue(capacity int) (*Queue, error) {
	if capacity <= 0 {
		return nil, errors.New("capacity should be greater than 0")
	}
	return &Queue{
		capacity: capacity,
		q:        make([]models.CommentBatch, 0, capacity),
	}, nil
}

// Inserts a batch into the queue.
func (q *Queue) Insert(batch models.CommentBatch) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return ErrQueueClosed
	}
	if len(q.q) >= q.capacity {
		return ErrQueueFull
	}
	q.q = append(q.q, batch)
	return nil
}

// Removes the oldest batch from the queue.
func (q *Queue) Remove() (models.CommentBatch, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.q) == 0 {
		return models.CommentBatch{}, ErrQueueEmpty
	}
	batch := q.q[0]
	q.q = q.q[1:]
	return batch, nil
}

// Stops the queue from accepting new batches.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
}

// Returns the number of batches in the queue.
func (q *Queue) Length() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.q)
}

// Returns true if the queue is empty.
func (q *Queue) IsEmpty() bool {
	return q.Length() == 0
}
