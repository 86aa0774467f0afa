package session

import (
	"sync"
)

const dispatchQueueSize = 64

// Dispatcher serializes all shared-state mutation onto a single goroutine.
// Engine callbacks, fetch completions and UI requests all submit closures
// here instead of touching state directly; nothing runs concurrently with
// anything else.
type Dispatcher struct {
	tasks    chan func()
	done     chan struct{}
	finished chan struct{}
	stopOnce sync.Once
}

// NewDispatcher creates a dispatcher and starts its drain loop.
func NewDispatcher() *Dispatcher {
	d := &Dispatcher{
		tasks:    make(chan func(), dispatchQueueSize),
		done:     make(chan struct{}),
		finished: make(chan struct{}),
	}

	go d.run()
	return d
}

func (d *Dispatcher) run() {
	defer close(d.finished)

	for {
		select {
		case <-d.done:
			return
		case task := <-d.tasks:
			task()
		}
	}
}

// Post submits a task for asynchronous execution. Tasks run in submission
// order. Posting after Stop is a no-op.
func (d *Dispatcher) Post(task func()) {
	select {
	case <-d.done:
	case d.tasks <- task:
	}
}

// Do submits a task and blocks until it has run, for callers that need a
// consistent read of dispatcher-owned state.
func (d *Dispatcher) Do(task func()) {
	ran := make(chan struct{})

	d.Post(func() {
		defer close(ran)
		task()
	})

	select {
	case <-ran:
	case <-d.finished:
	}
}

// Stop shuts the dispatcher down. Queued tasks that have not started yet
// are dropped.
func (d *Dispatcher) Stop() {
	d.stopOnce.Do(func() {
		close(d.done)
		<-d.finished
	})
}
