package effect

import (
	"time"

	"github.com/coreman2200/funtimes-ledstrip/internal/color"
	"github.com/coreman2200/funtimes-ledstrip/internal/strip"
)

const pingPongStep = 60 * time.Millisecond

// PingPongDot bounces one red pixel between the strip ends.
type PingPongDot struct {
	gate gate
	pos  int
	dir  int
}

func NewPingPongDot() *PingPongDot {
	return &PingPongDot{dir: 1}
}

func (p *PingPongDot) Name() string { return "Ping-Pong Dot" }

func (p *PingPongDot) Reset() {
	p.gate.reset()
	p.pos = 0
	p.dir = 1
}

func (p *PingPongDot) Apply(s *strip.Strip, elapsed time.Duration) bool {
	if !p.gate.pass(elapsed, pingPongStep) {
		return false
	}
	n := s.Len()
	s.Clear()
	set(s, p.pos, color.Red)

	if n == 1 {
		return true
	}
	p.pos += p.dir
	if p.pos == n-1 {
		p.dir = -1
	} else if p.pos == 0 {
		p.dir = 1
	}
	return true
}
