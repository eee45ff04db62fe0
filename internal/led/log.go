package led

import (
	"sync/atomic"

	"github.com/rs/zerolog/log"

	"github.com/coreman2200/funtimes-ledstrip/internal/strip"
)

// Log writes a compact summary of every frame (first pixel and average) at
// debug level, useful when running headless.
type Log struct {
	count atomic.Uint64
}

func (l *Log) Count() uint64 { return l.count.Load() }

func (l *Log) Apply(snap strip.Snapshot) {
	n := l.count.Add(1)
	ev := log.Debug()
	if !ev.Enabled() {
		return
	}
	var r, g, b float64
	colors := snap.Colors()
	for _, c := range colors {
		r += float64(c.R())
		g += float64(c.G())
		b += float64(c.B())
	}
	k := float64(len(colors))
	if k == 0 {
		k = 1
	}
	first, _ := snap.At(0)
	ev.Uint64("frame", n).
		Int("lit", snap.Lit()).
		Floats64("avg", []float64{r / k, g / k, b / k}).
		Str("first", first.Hex()).
		Msg("frame")
}
