package tooni

import "sync"

// continuationQueue hands work finished on loader goroutines back to the
// event loop. post may be called from any goroutine; drain runs queued
// continuations in post order and must be called from the loop.
type continuationQueue struct {
	mu    sync.Mutex
	queue []func()
	spare []func()
}

func (q *continuationQueue) post(fn func()) {
	q.mu.Lock()
	q.queue = append(q.queue, fn)
	q.mu.Unlock()
}

// drain runs every continuation queued before the call. Continuations posted
// while draining run on the next drain. Returns how many ran.
func (q *continuationQueue) drain() int {
	q.mu.Lock()
	batch := q.queue
	q.queue = q.spare[:0]
	q.mu.Unlock()

	for i, fn := range batch {
		fn()
		batch[i] = nil
	}

	q.mu.Lock()
	q.spare = batch[:0]
	q.mu.Unlock()
	return len(batch)
}
