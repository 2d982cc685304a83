package flow

import (
	"sync"
	"time"
)

// LoadingMessages shown while a submission is in flight, in display order.
var LoadingMessages = []string{
	"This will take roughly 20 seconds",
	"Advocates are expert negotiators in the healthcare industry",
	"80% of medical bills contain errors (according to NBC)",
	"Did you know you could negotiate your medical bill?",
}

// DefaultRotateInterval matches the production form (message changes
// every 3 seconds).
const DefaultRotateInterval = 3 * time.Second

// Rotator cycles through a fixed message sequence on a ticker, wrapping
// to the first message after the last. Purely presentational: it has no
// effect on the submission itself.
type Rotator struct {
	messages []string
	interval time.Duration

	mu    sync.Mutex
	index int
	stop  chan struct{}
	done  chan struct{}
}

// NewRotator uses the production messages when messages is nil and the
// default interval when interval <= 0.
func NewRotator(messages []string, interval time.Duration) *Rotator {
	if len(messages) == 0 {
		messages = LoadingMessages
	}
	if interval <= 0 {
		interval = DefaultRotateInterval
	}
	return &Rotator{
		messages: messages,
		interval: interval,
	}
}

// Current returns the message to display now.
func (r *Rotator) Current() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.messages[r.index]
}

// Advance moves to the next message, wrapping after the last, and
// returns it. Exposed so tests and non-ticker callers can drive the
// rotation directly.
func (r *Rotator) Advance() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.index++
	if r.index >= len(r.messages) {
		r.index = 0
	}
	return r.messages[r.index]
}

// Start begins ticker-driven rotation. Calling Start on a running
// rotator is a no-op.
func (r *Rotator) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stop != nil {
		return
	}
	r.index = 0
	r.stop = make(chan struct{})
	r.done = make(chan struct{})

	go r.run(r.stop, r.done)
}

func (r *Rotator) run(stop <-chan struct{}, done chan<- struct{}) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	defer close(done)

	for {
		select {
		case <-ticker.C:
			r.Advance()
		case <-stop:
			return
		}
	}
}

// Stop halts rotation and releases the ticker. Idempotent; safe to call
// on a rotator that was never started.
func (r *Rotator) Stop() {
	r.mu.Lock()
	stop, done := r.stop, r.done
	r.stop, r.done = nil, nil
	r.mu.Unlock()

	if stop == nil {
		return
	}
	close(stop)
	<-done
}
