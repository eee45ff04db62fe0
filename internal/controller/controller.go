// Package controller owns a strip and publishes a snapshot to the rendering
// boundary after every mutation.
package controller

import (
	"sync"
	"time"

	"github.com/coreman2200/funtimes-ledstrip/internal/color"
	"github.com/coreman2200/funtimes-ledstrip/internal/effect"
	"github.com/coreman2200/funtimes-ledstrip/internal/led"
	"github.com/coreman2200/funtimes-ledstrip/internal/strip"
)

// Controller serializes all access to its strip, including effect steps
// driven by the animation engine. Snapshots reach the sink in mutation order.
type Controller struct {
	mu   sync.Mutex
	s    *strip.Strip
	sink led.Sink
}

// New wraps s. A nil sink discards snapshots.
func New(s *strip.Strip, sink led.Sink) *Controller {
	if sink == nil {
		sink = led.Noop{}
	}
	return &Controller{s: s, sink: sink}
}

func (c *Controller) Len() int { return c.s.Len() }

// update applies fn and publishes unless fn failed.
func (c *Controller) update(fn func(s *strip.Strip) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := fn(c.s); err != nil {
		return err
	}
	c.sink.Apply(c.s.Snapshot())
	return nil
}

func (c *Controller) SetPixel(i int, col color.Color) error {
	return c.update(func(s *strip.Strip) error { return s.SetPixel(i, col) })
}

func (c *Controller) TogglePixel(i int) error {
	return c.update(func(s *strip.Strip) error { return s.Toggle(i) })
}

func (c *Controller) TurnOnPixel(i int) error {
	return c.update(func(s *strip.Strip) error { return s.TurnOn(i) })
}

func (c *Controller) TurnOffPixel(i int) error {
	return c.update(func(s *strip.Strip) error { return s.TurnOff(i) })
}

func (c *Controller) Fill(col color.Color) {
	_ = c.update(func(s *strip.Strip) error { s.Fill(col); return nil })
}

func (c *Controller) Clear() {
	_ = c.update(func(s *strip.Strip) error { s.Clear(); return nil })
}

func (c *Controller) TurnOnAll() {
	_ = c.update(func(s *strip.Strip) error { s.TurnOnAll(); return nil })
}

func (c *Controller) TurnOffAll() {
	_ = c.update(func(s *strip.Strip) error { s.TurnOffAll(); return nil })
}

// ApplyEffect runs one step of e and publishes only when e reports a change.
func (c *Controller) ApplyEffect(e effect.Effect, elapsed time.Duration) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !e.Apply(c.s, elapsed) {
		return false
	}
	c.sink.Apply(c.s.Snapshot())
	return true
}

func (c *Controller) Snapshot() strip.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.s.Snapshot()
}
