package queue

import "errors"

// ErrQueueFull is returned by Enqueue when the queue has no room left.
var ErrQueueFull = errors.New("queue is full")

// Queue is a bounded FIFO handing items from producer goroutines to a single consumer.
type Queue interface {
	Enqueue(item interface{}) error
	Size() int
	ReadAllMessages() ([]interface{}, error)
	ClearQueue() error
}
