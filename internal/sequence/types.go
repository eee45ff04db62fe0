// Package sequence plays a timed list of effect selections on one strip.
package sequence

import "github.com/coreman2200/funtimes-ledstrip/internal/effect"

// Clip shows one effect for DurationS seconds.
type Clip struct {
	Name      string      `yaml:"name,omitempty" json:"name,omitempty"`
	Effect    effect.Spec `yaml:"effect" json:"effect"`
	DurationS float64     `yaml:"duration_s" json:"durationS"`
}

// Program is an ordered list of clips.
type Program struct {
	Loop  bool   `yaml:"loop,omitempty" json:"loop,omitempty"`
	Clips []Clip `yaml:"clips" json:"clips"`
}

// PlayerState enumerates sequencer states.
type PlayerState string

const (
	Idle    PlayerState = "idle"
	Running PlayerState = "running"
	Paused  PlayerState = "paused"
)

// Hooks are callbacks into the animation engine.
type Hooks struct {
	// Select is called whenever a clip becomes active.
	Select func(idx int, c Clip)
	// Done is called when a non-looping program runs out of clips.
	Done func()
}

// Player owns the current Program timeline and uses Hooks to drive the engine.
type Player struct {
	State PlayerState

	prog Program
	nowS float64 // position within program
	idx  int     // current clip index

	hooks Hooks
}
