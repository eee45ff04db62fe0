package effect

import (
	"fmt"
	"time"

	"github.com/coreman2200/funtimes-ledstrip/internal/color"
	"github.com/coreman2200/funtimes-ledstrip/internal/strip"
)

// RunningLights moves a sine wave along the strip, blending c1 into c2.
type RunningLights struct {
	gate     gate
	c1, c2   color.Color
	every    time.Duration
	reverse  bool
	waveSize int

	phase  int
	cycles int
}

func NewRunningLights(c1, c2 color.Color, every time.Duration, reverse bool, waveSize int) (*RunningLights, error) {
	if every <= 0 {
		return nil, fmt.Errorf("%w: running lights step %v", ErrInvalidParam, every)
	}
	if waveSize < 1 {
		return nil, fmt.Errorf("%w: running lights wave size %d", ErrInvalidParam, waveSize)
	}
	return &RunningLights{c1: c1, c2: c2, every: every, reverse: reverse, waveSize: waveSize}, nil
}

func (r *RunningLights) Name() string { return "Running Lights" }

func (r *RunningLights) Reset() {
	r.gate.reset()
	r.phase = 0
	r.cycles = 0
}

func (r *RunningLights) Phase() int      { return r.phase }
func (r *RunningLights) CycleCount() int { return r.cycles }
func (r *RunningLights) WaveSize() int   { return r.waveSize }

func (r *RunningLights) Apply(s *strip.Strip, elapsed time.Duration) bool {
	if !r.gate.pass(elapsed, r.every) {
		return false
	}
	n := s.Len()
	inc := max(1, (256/n)*r.waveSize)
	for i := 0; i < n; i++ {
		lum := sine8(((i + r.phase) * inc) & 0xFF)
		pos := n - 1 - i
		if r.reverse {
			pos = i
		}
		set(s, pos, mix(r.c1, r.c2, lum))
	}

	r.phase = (r.phase + 1) % 256
	if r.phase == 0 {
		r.cycles++
	}
	return true
}

// quarter wave, 0..127
var sineTable = [48]int{
	0, 2, 5, 8, 11, 14, 17, 20, 23, 26, 29, 32, 35, 38, 41, 44,
	47, 49, 52, 55, 58, 61, 64, 66, 69, 72, 75, 77, 80, 83, 85, 88,
	91, 93, 96, 98, 101, 103, 106, 108, 111, 113, 115, 118, 120, 122, 125, 127,
}

// sine8 maps 0..255 (one full turn) to 1..255 with 128 as the zero crossing.
func sine8(x int) int {
	x &= 0xFF
	switch {
	case x < 64:
		return 128 + sineTable[x*48/64]
	case x < 128:
		return 128 + sineTable[(127-x)*48/64]
	case x < 192:
		return 128 - sineTable[(x-128)*48/64]
	default:
		return 128 - sineTable[(255-x)*48/64]
	}
}
