package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/coreman2200/funtimes-ledstrip/internal/animation"
	"github.com/coreman2200/funtimes-ledstrip/internal/config"
	"github.com/coreman2200/funtimes-ledstrip/internal/controller"
	"github.com/coreman2200/funtimes-ledstrip/internal/effect"
	"github.com/coreman2200/funtimes-ledstrip/internal/led"
	"github.com/coreman2200/funtimes-ledstrip/internal/sequence"
	"github.com/coreman2200/funtimes-ledstrip/internal/strip"
)

// playlistTick is how often the playlist clock advances.
const playlistTick = 50 * time.Millisecond

type Core struct {
	Ctrl *controller.Controller
	Eng  *animation.Engine
	Reg  *effect.Registry
	Seq  *sequence.SafePlayer // nil without a playlist

	cancel context.CancelFunc
	done   chan struct{}
}

// InitCore wires strip, controller and engine around sink and starts
// animating either the configured effect or the playlist.
func InitCore(ctx context.Context, cfg *config.Config, sink led.Sink) (*Core, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s, err := strip.New(cfg.Length)
	if err != nil {
		return nil, err
	}
	ctrl := controller.New(s, sink)
	eng, err := animation.New(ctrl, cfg.FramePeriod())
	if err != nil {
		return nil, err
	}
	c := &Core{Ctrl: ctrl, Eng: eng, Reg: effect.Default(), done: make(chan struct{})}

	if cfg.Playlist == nil {
		close(c.done)
		if err := c.Switch(cfg.Effect); err != nil {
			eng.Close()
			return nil, err
		}
		return c, nil
	}

	// fail early on clips that can never build
	for i, clip := range cfg.Playlist.Clips {
		if _, err := c.Reg.Build(clip.Effect); err != nil {
			eng.Close()
			return nil, fmt.Errorf("playlist clip %d: %w", i, err)
		}
	}
	c.Seq = sequence.NewSafePlayer(sequence.Hooks{
		Select: func(idx int, clip sequence.Clip) {
			log.Info().Int("clip", idx).Str("name", clip.Name).Str("effect", clip.Effect.Name).Msg("playlist clip")
			if err := c.Switch(clip.Effect); err != nil {
				log.Error().Err(err).Int("clip", idx).Msg("select clip")
			}
		},
		Done: func() {
			log.Info().Msg("playlist finished")
			eng.Stop()
		},
	})
	var loadErr error
	c.Seq.With(func(p *sequence.Player) {
		if loadErr = p.Load(*cfg.Playlist); loadErr == nil {
			p.Start()
		}
	})
	if loadErr != nil {
		eng.Close()
		return nil, loadErr
	}

	ctx, c.cancel = context.WithCancel(ctx)
	go func() {
		defer close(c.done)
		tick := time.NewTicker(playlistTick)
		defer tick.Stop()
		last := time.Now()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-tick.C:
				dt := now.Sub(last).Seconds()
				last = now
				c.Seq.With(func(p *sequence.Player) { p.Tick(dt) })
			}
		}
	}()
	return c, nil
}

// Switch stops the engine, selects the effect built from spec and restarts.
func (c *Core) Switch(spec effect.Spec) error {
	fx, err := c.Reg.Build(spec)
	if err != nil {
		return err
	}
	c.Eng.Stop()
	if err := c.Eng.SetEffect(fx); err != nil {
		return err
	}
	return c.Eng.Start()
}

// Close stops the playlist clock and the engine.
func (c *Core) Close() error {
	if c.cancel != nil {
		c.cancel()
	}
	<-c.done
	return c.Eng.Close()
}
