package effect

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/coreman2200/funtimes-ledstrip/internal/color"
)

var ErrUnknownEffect = errors.New("unknown effect")

// Spec selects an effect by registry key and carries its parameters.
// Zero values fall back to each effect's defaults.
type Spec struct {
	Name           string `yaml:"name" json:"name"`
	Color1         string `yaml:"color1,omitempty" json:"color1,omitempty"`
	Color2         string `yaml:"color2,omitempty" json:"color2,omitempty"`
	PeriodMS       int    `yaml:"period_ms,omitempty" json:"period_ms,omitempty"`
	StepMS         int    `yaml:"step_ms,omitempty" json:"step_ms,omitempty"`
	Reverse        bool   `yaml:"reverse,omitempty" json:"reverse,omitempty"`
	ReverseWipeOut bool   `yaml:"reverse_wipe_out,omitempty" json:"reverse_wipe_out,omitempty"`
	WaveSize       int    `yaml:"wave_size,omitempty" json:"wave_size,omitempty"`
}

func (s Spec) color1(def color.Color) (color.Color, error) { return pick(s.Color1, def) }
func (s Spec) color2(def color.Color) (color.Color, error) { return pick(s.Color2, def) }

func pick(hex string, def color.Color) (color.Color, error) {
	if hex == "" {
		return def, nil
	}
	c, err := color.ParseHex(hex)
	if err != nil {
		return color.Off, fmt.Errorf("%w: %v", ErrInvalidParam, err)
	}
	return c, nil
}

func millis(v, def int) time.Duration {
	if v == 0 {
		v = def
	}
	return time.Duration(v) * time.Millisecond
}

// Factory builds a fresh effect from a spec.
type Factory func(Spec) (Effect, error)

type Registry struct{ m map[string]Factory }

func NewRegistry() *Registry { return &Registry{m: map[string]Factory{}} }

func (r *Registry) Register(name string, f Factory) {
	if f == nil {
		return
	}
	r.m[name] = f
}

func (r *Registry) Get(name string) (Factory, bool) { f, ok := r.m[name]; return f, ok }

// List returns the registered keys in sorted order.
func (r *Registry) List() []string {
	out := make([]string, 0, len(r.m))
	for k := range r.m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (r *Registry) Build(spec Spec) (Effect, error) {
	f, ok := r.Get(spec.Name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEffect, spec.Name)
	}
	return f(spec)
}

// Default returns a registry holding every built-in effect.
func Default() *Registry {
	r := NewRegistry()
	r.Register("moving-dot", func(s Spec) (Effect, error) {
		c, err := s.color1(color.Blue)
		if err != nil {
			return nil, err
		}
		d, err := NewMovingDot(c, millis(s.PeriodMS, 2000))
		if err != nil {
			return nil, err
		}
		return d, nil
	})
	r.Register("ping-pong", func(Spec) (Effect, error) { return NewPingPongDot(), nil })
	r.Register("dual-bouncing-dots", func(Spec) (Effect, error) { return NewDualBouncingDots(), nil })
	r.Register("rainbow", func(Spec) (Effect, error) { return NewRainbow(), nil })
	r.Register("breath", func(s Spec) (Effect, error) {
		base, err := s.color1(color.White)
		if err != nil {
			return nil, err
		}
		bg, err := s.color2(color.Off)
		if err != nil {
			return nil, err
		}
		return NewBreath(bg, base), nil
	})
	r.Register("color-wipe", func(s Spec) (Effect, error) {
		c1, err := s.color1(color.White)
		if err != nil {
			return nil, err
		}
		c2, err := s.color2(color.Off)
		if err != nil {
			return nil, err
		}
		w, err := NewColorWipe(c1, c2, millis(s.StepMS, 50), s.Reverse, s.ReverseWipeOut)
		if err != nil {
			return nil, err
		}
		return w, nil
	})
	r.Register("running-lights", func(s Spec) (Effect, error) {
		c1, err := s.color1(color.Red)
		if err != nil {
			return nil, err
		}
		c2, err := s.color2(color.Blue)
		if err != nil {
			return nil, err
		}
		wave := s.WaveSize
		if wave == 0 {
			wave = 1
		}
		rl, err := NewRunningLights(c1, c2, millis(s.StepMS, 50), s.Reverse, wave)
		if err != nil {
			return nil, err
		}
		return rl, nil
	})
	return r
}
