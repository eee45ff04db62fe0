package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/funtimes-ledstrip/internal/config"
	"github.com/coreman2200/funtimes-ledstrip/internal/effect"
	"github.com/coreman2200/funtimes-ledstrip/internal/led"
	"github.com/coreman2200/funtimes-ledstrip/internal/sequence"
)

func TestInitCoreRunsEffect(t *testing.T) {
	cfg := config.Default()
	cfg.Length = 8
	cfg.FPS = 100
	rec := &led.Recorder{}

	core, err := InitCore(context.Background(), cfg, rec)
	require.NoError(t, err)
	assert.Nil(t, core.Seq)
	assert.Equal(t, "Rainbow", core.Eng.Effect().Name())

	require.Eventually(t, func() bool { return rec.Count() >= 3 }, 2*time.Second, time.Millisecond)
	require.NoError(t, core.Close())

	last, _ := rec.Last()
	assert.Equal(t, 8, last.Len())
	assert.Equal(t, 8, last.Lit())
}

func TestInitCoreRejectsBadConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Length = 0
	_, err := InitCore(context.Background(), cfg, nil)
	assert.True(t, errors.Is(err, config.ErrInvalid))

	cfg = config.Default()
	cfg.Effect = effect.Spec{Name: "strobe"}
	_, err = InitCore(context.Background(), cfg, nil)
	assert.True(t, errors.Is(err, effect.ErrUnknownEffect))

	cfg = config.Default()
	cfg.Playlist = &sequence.Program{Clips: []sequence.Clip{{Effect: effect.Spec{Name: "strobe"}, DurationS: 1}}}
	_, err = InitCore(context.Background(), cfg, nil)
	assert.True(t, errors.Is(err, effect.ErrUnknownEffect))
}

func TestSwitchWhileRunning(t *testing.T) {
	cfg := config.Default()
	core, err := InitCore(context.Background(), cfg, nil)
	require.NoError(t, err)
	defer core.Close()

	require.NoError(t, core.Switch(effect.Spec{Name: "color-wipe", Color1: "#123456"}))
	assert.Equal(t, "Color Wipe", core.Eng.Effect().Name())
	assert.True(t, core.Eng.Running())

	assert.Error(t, core.Switch(effect.Spec{Name: "nope"}))
	assert.Equal(t, "Color Wipe", core.Eng.Effect().Name())
}

func TestPlaylistAdvancesAndFinishes(t *testing.T) {
	cfg := config.Default()
	cfg.Length = 5
	cfg.Playlist = &sequence.Program{Clips: []sequence.Clip{
		{Name: "first", Effect: effect.Spec{Name: "ping-pong"}, DurationS: 0.15},
		{Name: "second", Effect: effect.Spec{Name: "rainbow"}, DurationS: 0.15},
	}}

	core, err := InitCore(context.Background(), cfg, &led.Recorder{})
	require.NoError(t, err)
	defer core.Close()
	require.NotNil(t, core.Seq)
	assert.Equal(t, "Ping-Pong Dot", core.Eng.Effect().Name())

	require.Eventually(t, func() bool {
		return core.Eng.Effect().Name() == "Rainbow"
	}, 2*time.Second, 5*time.Millisecond)
	require.Eventually(t, func() bool { return !core.Eng.Running() }, 2*time.Second, 5*time.Millisecond)

	core.Seq.With(func(p *sequence.Player) {
		assert.Equal(t, sequence.Idle, p.State)
	})
}
