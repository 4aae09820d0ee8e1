package splash

import (
	"context"
	"sync"
	"time"
)

// Scheduler runs callbacks on a single goroutine. Post queues fn to run as soon
// as possible; After queues it once d has elapsed.
type Scheduler interface {
	Post(fn func())
	After(d time.Duration, fn func())
}

// Loop is a Scheduler backed by one goroutine, the one calling Run. Callbacks
// run in the order they were queued and never overlap.
type Loop struct {
	mu     sync.Mutex
	queue  []func()
	notify chan struct{}
}

// NewLoop returns an idle loop. Callbacks queue up until Run is called.
func NewLoop() *Loop {
	return &Loop{notify: make(chan struct{}, 1)}
}

// Post queues fn. It never blocks.
func (l *Loop) Post(fn func()) {
	l.mu.Lock()
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.notify <- struct{}{}:
	default:
	}
}

// After queues fn once d has elapsed.
func (l *Loop) After(d time.Duration, fn func()) {
	if d <= 0 {
		l.Post(fn)
		return
	}
	time.AfterFunc(d, func() { l.Post(fn) })
}

// Run executes queued callbacks until ctx is done.
func (l *Loop) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.notify:
			l.drain()
		}
	}
}

// Drain runs every callback queued so far, including ones they queue, on the
// calling goroutine. It is for single-goroutine use when Run is not active.
func (l *Loop) Drain() {
	l.drain()
}

func (l *Loop) drain() {
	for {
		l.mu.Lock()
		batch := l.queue
		l.queue = nil
		l.mu.Unlock()

		if len(batch) == 0 {
			return
		}
		for _, fn := range batch {
			fn()
		}
	}
}

// Call runs fn on the loop and waits for it to return.
func (l *Loop) Call(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	l.Post(func() {
		defer close(done)
		fn()
	})
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
