// Package animation drives the selected effect at a fixed frame rate.
package animation

import (
	"errors"
	"fmt"
	"sync"
	"time"

	metrics "github.com/rcrowley/go-metrics"
	"github.com/rs/zerolog/log"

	"github.com/coreman2200/funtimes-ledstrip/internal/effect"
)

// DefaultPeriod is 25 frames per second.
const DefaultPeriod = 40 * time.Millisecond

var (
	ErrInvalidPeriod = errors.New("frame period must be positive")
	ErrNoEffect      = errors.New("no effect selected")
	ErrRunning       = errors.New("animation is running")
	ErrClosed        = errors.New("animation engine closed")
)

// Applier runs one effect step; *controller.Controller implements it.
type Applier interface {
	ApplyEffect(e effect.Effect, elapsed time.Duration) bool
}

// run is one start..stop span. Its loop exits once stop is closed.
type run struct {
	fx    effect.Effect
	start time.Time
	stop  chan struct{}
	done  chan struct{}
}

func (r *run) wanted() bool {
	select {
	case <-r.stop:
		return false
	default:
		return true
	}
}

// Engine ticks strictly serially on its own goroutine. The first tick of a
// run fires immediately; a tick that overruns the period delays the next one.
type Engine struct {
	mu     sync.Mutex
	target Applier
	period time.Duration
	fx     effect.Effect
	cur    *run
	last   *run // most recent stopped run, possibly still finishing a tick
	closed bool

	reg    metrics.Registry
	ticks  metrics.Timer
	frames metrics.Counter
}

func New(target Applier, period time.Duration) (*Engine, error) {
	if period <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPeriod, period)
	}
	reg := metrics.NewRegistry()
	return &Engine{
		target: target,
		period: period,
		reg:    reg,
		ticks:  metrics.NewRegisteredTimer("animation.tick", reg),
		frames: metrics.NewRegisteredCounter("animation.frames", reg),
	}, nil
}

func (e *Engine) Period() time.Duration { return e.period }

// SetEffect selects fx for the next run. It fails while running.
func (e *Engine) SetEffect(fx effect.Effect) error {
	if fx == nil {
		return fmt.Errorf("%w: nil effect", ErrNoEffect)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	switch {
	case e.closed:
		return ErrClosed
	case e.cur != nil:
		return fmt.Errorf("%w: cannot change effect to %q", ErrRunning, fx.Name())
	}
	e.fx = fx
	return nil
}

func (e *Engine) Effect() effect.Effect {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.fx
}

func (e *Engine) Running() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cur != nil
}

// Start resets the selected effect and begins ticking.
func (e *Engine) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	switch {
	case e.closed:
		return ErrClosed
	case e.cur != nil:
		return ErrRunning
	case e.fx == nil:
		return ErrNoEffect
	}
	// loops never take e.mu
	if e.last != nil {
		<-e.last.done
		e.last = nil
	}

	e.fx.Reset()
	r := &run{
		fx:    e.fx,
		start: time.Now(),
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}
	e.cur = r
	go e.loop(r)
	log.Info().Str("effect", r.fx.Name()).Dur("period", e.period).Msg("animation started")
	return nil
}

// Stop cancels future ticks. A tick already in flight may finish. Stop is
// idempotent.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopLocked()
}

func (e *Engine) stopLocked() {
	if e.cur == nil {
		return
	}
	close(e.cur.stop)
	e.last, e.cur = e.cur, nil
	log.Info().Str("effect", e.last.fx.Name()).Int64("ticks", e.ticks.Count()).Msg("animation stopped")
}

// Close stops the engine and waits for its loop to exit. The engine cannot
// be restarted afterwards.
func (e *Engine) Close() error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.closed = true
	e.stopLocked()
	last := e.last
	e.last = nil
	e.mu.Unlock()

	if last != nil {
		<-last.done
	}
	log.Info().Int64("frames", e.frames.Count()).Msg("animation closed")
	return nil
}

func (e *Engine) loop(r *run) {
	defer close(r.done)
	ticker := time.NewTicker(e.period)
	defer ticker.Stop()
	for {
		if !r.wanted() {
			return
		}
		e.tick(r)
		select {
		case <-r.stop:
			return
		case <-ticker.C:
		}
	}
}

func (e *Engine) tick(r *run) {
	begin := time.Now()
	if e.target.ApplyEffect(r.fx, begin.Sub(r.start)) {
		e.frames.Inc(1)
	}
	e.ticks.UpdateSince(begin)
}

// Stats summarizes the engine's tick metrics.
type Stats struct {
	Ticks    int64
	Frames   int64
	MeanTick time.Duration
}

func (e *Engine) Stats() Stats {
	return Stats{
		Ticks:    e.ticks.Count(),
		Frames:   e.frames.Count(),
		MeanTick: time.Duration(e.ticks.Mean()),
	}
}

// Metrics exposes the underlying registry.
func (e *Engine) Metrics() metrics.Registry { return e.reg }
