package relayws

import (
	"sync"
)

// Queue is an unbounded FIFO of outbound messages with one consumer. Push
// never blocks, so a fan-out never waits on a slow connection; memory grows
// instead.
type Queue struct {
	mx     sync.Mutex
	cond   *sync.Cond
	items  [][]byte
	closed bool
}

func NewQueue() (q *Queue) {
	q = &Queue{}
	q.cond = sync.NewCond(&q.mx)
	return
}

// Push appends b. It returns false, dropping b, once the queue is closed.
func (q *Queue) Push(b []byte) bool {
	q.mx.Lock()
	defer q.mx.Unlock()
	if q.closed {
		return false
	}
	q.items = append(q.items, b)
	q.cond.Signal()
	return true
}

// Pop waits for the next message. After Close it keeps returning what was
// already queued, then returns ok false when the queue is empty.
func (q *Queue) Pop() (b []byte, ok bool) {
	q.mx.Lock()
	defer q.mx.Unlock()
	for len(q.items) == 0 && !q.closed {
		q.cond.Wait()
	}
	if len(q.items) == 0 {
		return nil, false
	}
	b = q.items[0]
	q.items[0] = nil
	q.items = q.items[1:]
	return b, true
}

// Close stops the queue accepting messages and wakes the consumer so it can
// drain what is left.
func (q *Queue) Close() {
	q.mx.Lock()
	defer q.mx.Unlock()
	q.closed = true
	q.cond.Broadcast()
}

// Len is the number of messages waiting.
func (q *Queue) Len() int {
	q.mx.Lock()
	defer q.mx.Unlock()
	return len(q.items)
}
