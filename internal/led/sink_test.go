package led

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi/spitest"

	"github.com/coreman2200/funtimes-ledstrip/internal/color"
	"github.com/coreman2200/funtimes-ledstrip/internal/strip"
)

func snap(colors ...color.Color) strip.Snapshot {
	return strip.NewSnapshot(colors)
}

func TestRecorder(t *testing.T) {
	r := &Recorder{}
	_, ok := r.Last()
	assert.False(t, ok)

	r.Apply(snap(color.Red))
	r.Apply(snap(color.Blue, color.Green))

	last, ok := r.Last()
	require.True(t, ok)
	assert.Equal(t, 2, last.Len())
	assert.Equal(t, 2, r.Count())
}

func TestComposite(t *testing.T) {
	a, b := &Recorder{}, &Recorder{}
	c := NewComposite(a, nil, b, a)
	assert.Equal(t, 2, c.Len())

	c.Apply(snap(color.Red))
	assert.Equal(t, 1, a.Count())
	assert.Equal(t, 1, b.Count())

	c.Remove(a)
	c.Remove(&Recorder{})
	c.Add(Noop{})
	c.Apply(snap(color.Red))
	assert.Equal(t, 1, a.Count())
	assert.Equal(t, 2, b.Count())
	assert.Equal(t, 2, c.Len())
}

func TestLogSink(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf).Level(zerolog.DebugLevel)
	defer func() { log.Logger = prev }()

	l := &Log{}
	l.Apply(snap(color.White, color.Off))
	assert.Equal(t, uint64(1), l.Count())

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "frame", line["message"])
	assert.EqualValues(t, 1, line["frame"])
	assert.EqualValues(t, 1, line["lit"])
	assert.Equal(t, "#ffffff", line["first"])
	assert.Equal(t, []any{127.5, 127.5, 127.5}, line["avg"])

	buf.Reset()
	log.Logger = zerolog.New(&buf).Level(zerolog.InfoLevel)
	l.Apply(snap(color.White))
	assert.Equal(t, uint64(2), l.Count())
	assert.Zero(t, buf.Len())
}

func TestNRZWritesFrames(t *testing.T) {
	var buf bytes.Buffer
	n, err := NewNRZ(spitest.NewRecordRaw(&buf), 3, 2500*physic.KiloHertz)
	require.NoError(t, err)
	assert.Equal(t, "nrzled{recordraw}", n.String())

	n.Apply(snap(color.Red, color.Green, color.Blue))
	assert.NotZero(t, buf.Len())
	assert.Zero(t, n.Errors())

	written := buf.Len()
	n.Apply(snap(color.Off, color.Off, color.Off))
	assert.Greater(t, buf.Len(), written)

	require.NoError(t, n.Close())
}
