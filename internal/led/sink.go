// Package led holds the rendering boundary: every snapshot the controller
// publishes is handed to a Sink.
package led

import (
	"sync"

	"github.com/coreman2200/funtimes-ledstrip/internal/strip"
)

// Sink consumes strip snapshots. Apply must return promptly and must not
// report failures back to the caller; sinks log and drop frames instead.
type Sink interface {
	Apply(snap strip.Snapshot)
}

// Noop discards every snapshot.
type Noop struct{}

func (Noop) Apply(strip.Snapshot) {}

// Recorder keeps the most recent snapshot, for tests and simulation.
type Recorder struct {
	mu    sync.Mutex
	last  strip.Snapshot
	count int
}

func (r *Recorder) Apply(snap strip.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.last = snap
	r.count++
}

// Last returns the latest snapshot and whether one was received.
func (r *Recorder) Last() (strip.Snapshot, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last, r.count > 0
}

func (r *Recorder) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Composite forwards each snapshot to its sinks in insertion order.
type Composite struct {
	mu    sync.RWMutex
	sinks []Sink
}

func NewComposite(sinks ...Sink) *Composite {
	c := &Composite{}
	for _, s := range sinks {
		c.Add(s)
	}
	return c
}

// Add ignores nil and sinks already present.
func (c *Composite) Add(s Sink) {
	if s == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, have := range c.sinks {
		if have == s {
			return
		}
	}
	c.sinks = append(c.sinks, s)
}

func (c *Composite) Remove(s Sink) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, have := range c.sinks {
		if have == s {
			c.sinks = append(c.sinks[:i:i], c.sinks[i+1:]...)
			return
		}
	}
}

func (c *Composite) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.sinks)
}

func (c *Composite) Apply(snap strip.Snapshot) {
	c.mu.RLock()
	sinks := c.sinks
	c.mu.RUnlock()
	for _, s := range sinks {
		s.Apply(snap)
	}
}
