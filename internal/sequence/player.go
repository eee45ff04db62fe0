package sequence

import (
	"errors"
	"fmt"
	"math"
	"sync"
)

var ErrEmptyProgram = errors.New("program has no clips")

// NewPlayer constructs a Player with provided hooks.
func NewPlayer(h Hooks) *Player {
	return &Player{State: Idle, hooks: h}
}

// Load replaces the current program. Resets time and state to Idle.
func (p *Player) Load(prog Program) error {
	if len(prog.Clips) == 0 {
		return ErrEmptyProgram
	}
	for i, c := range prog.Clips {
		if !(c.DurationS > 0) {
			return fmt.Errorf("clip %d (%s): duration must be positive, got %v", i, c.Effect.Name, c.DurationS)
		}
	}
	p.prog = prog
	p.nowS = 0
	p.idx = 0
	p.State = Idle
	return nil
}

func (p *Player) Program() Program { return p.prog }

// Index returns the active clip index.
func (p *Player) Index() int { return p.idx }

// Start moves to Running and selects the current clip.
func (p *Player) Start() {
	if p.State == Running || len(p.prog.Clips) == 0 {
		return
	}
	p.State = Running
	p.selectClip()
}

// Pause pauses playback.
func (p *Player) Pause() {
	if p.State == Running {
		p.State = Paused
	}
}

// Resume resumes playback.
func (p *Player) Resume() {
	if p.State == Paused {
		p.State = Running
	}
}

// Stop stops and rewinds to the first clip.
func (p *Player) Stop() {
	p.State = Idle
	p.nowS = 0
	p.idx = 0
}

// Seek jumps to absolute program time t, clamped into [0, total).
func (p *Player) Seek(t float64) {
	if len(p.prog.Clips) == 0 {
		return
	}
	if t < 0 {
		t = 0
	}
	total := p.totalDuration()
	if t >= total {
		t = math.Nextafter(total, -1)
	}
	acc := 0.0
	idx := len(p.prog.Clips) - 1
	for i, c := range p.prog.Clips {
		if t < acc+c.DurationS {
			idx = i
			break
		}
		acc += c.DurationS
	}
	changed := idx != p.idx
	p.idx = idx
	p.nowS = t
	if changed && p.State != Idle {
		p.selectClip()
	}
}

// Tick advances the sequencer by dt seconds. Several clips may elapse in one
// call; each of them is selected in turn.
func (p *Player) Tick(dt float64) {
	if p.State != Running || len(p.prog.Clips) == 0 || dt <= 0 {
		return
	}
	p.nowS += dt
	for p.State == Running {
		clip, localT := p.currentClipAndLocalT()
		if localT < clip.DurationS {
			return
		}
		p.advanceClip()
	}
}

func (p *Player) currentClipAndLocalT() (Clip, float64) {
	acc := 0.0
	for i := 0; i < p.idx; i++ {
		acc += p.prog.Clips[i].DurationS
	}
	return p.prog.Clips[p.idx], p.nowS - acc
}

func (p *Player) totalDuration() float64 {
	total := 0.0
	for _, c := range p.prog.Clips {
		total += c.DurationS
	}
	return total
}

func (p *Player) nextIndex() int {
	ni := p.idx + 1
	if ni >= len(p.prog.Clips) {
		if p.prog.Loop {
			return 0
		}
		return -1
	}
	return ni
}

func (p *Player) advanceClip() {
	next := p.nextIndex()
	if next == -1 {
		p.State = Idle
		if p.hooks.Done != nil {
			p.hooks.Done()
		}
		return
	}
	if next == 0 {
		// wrapped: restart the timeline
		p.nowS -= p.totalDuration()
	}
	p.idx = next
	p.selectClip()
}

func (p *Player) selectClip() {
	if p.hooks.Select != nil {
		p.hooks.Select(p.idx, p.prog.Clips[p.idx])
	}
}

// SafePlayer serializes access to a Player shared between goroutines.
type SafePlayer struct {
	mu sync.Mutex
	P  *Player
}

func NewSafePlayer(h Hooks) *SafePlayer {
	return &SafePlayer{P: NewPlayer(h)}
}

func (s *SafePlayer) With(f func(p *Player)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f(s.P)
}
