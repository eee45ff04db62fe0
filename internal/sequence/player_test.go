package sequence

import (
	"errors"
	"reflect"
	"testing"

	"github.com/coreman2200/funtimes-ledstrip/internal/effect"
)

func program(loop bool) Program {
	return Program{
		Loop: loop,
		Clips: []Clip{
			{Name: "A", Effect: effect.Spec{Name: "rainbow"}, DurationS: 4},
			{Name: "B", Effect: effect.Spec{Name: "breath"}, DurationS: 2},
		},
	}
}

func recorder() (*[]string, Hooks) {
	log := []string{}
	return &log, Hooks{
		Select: func(idx int, c Clip) { log = append(log, "Select:"+c.Name) },
		Done:   func() { log = append(log, "Done") },
	}
}

func TestLoadRejectsBadPrograms(t *testing.T) {
	p := NewPlayer(Hooks{})
	if err := p.Load(Program{}); !errors.Is(err, ErrEmptyProgram) {
		t.Fatalf("expected empty program error, got %v", err)
	}
	bad := Program{Clips: []Clip{{Effect: effect.Spec{Name: "rainbow"}, DurationS: 0}}}
	if err := p.Load(bad); err == nil {
		t.Fatalf("expected zero duration to be rejected")
	}
}

func TestSequencerAdvancesClips(t *testing.T) {
	log, h := recorder()
	p := NewPlayer(h)
	if err := p.Load(program(false)); err != nil {
		t.Fatalf("load: %v", err)
	}
	p.Start()
	p.Tick(1.9)
	p.Tick(2.1) // t=4.0 -> B
	p.Tick(1.0)
	p.Tick(1.0) // t=6.0 -> end

	want := []string{"Select:A", "Select:B", "Done"}
	if !reflect.DeepEqual(*log, want) {
		t.Fatalf("unexpected log: %#v", *log)
	}
	if p.State != Idle {
		t.Fatalf("expected idle at end, got %s", p.State)
	}
	p.Tick(10)
	if len(*log) != len(want) {
		t.Fatalf("ticks after the end should be ignored: %#v", *log)
	}
}

func TestSequencerLoops(t *testing.T) {
	log, h := recorder()
	p := NewPlayer(h)
	if err := p.Load(program(true)); err != nil {
		t.Fatalf("load: %v", err)
	}
	p.Start()
	p.Tick(13) // A(4) B(2) A(4) B(2) A at t=13

	want := []string{"Select:A", "Select:B", "Select:A", "Select:B", "Select:A"}
	if !reflect.DeepEqual(*log, want) {
		t.Fatalf("unexpected log: %#v", *log)
	}
	if p.Index() != 0 || p.State != Running {
		t.Fatalf("expected clip 0 running, got %d %s", p.Index(), p.State)
	}
}

func TestPauseSeekStop(t *testing.T) {
	log, h := recorder()
	p := NewPlayer(h)
	if err := p.Load(program(false)); err != nil {
		t.Fatalf("load: %v", err)
	}
	p.Start()
	p.Pause()
	p.Tick(100)
	if p.Index() != 0 {
		t.Fatalf("paused player advanced to %d", p.Index())
	}
	p.Resume()

	p.Seek(5)
	if p.Index() != 1 {
		t.Fatalf("seek(5) should land on B, got %d", p.Index())
	}
	p.Seek(99)
	if p.Index() != 1 {
		t.Fatalf("seek past end should clamp to last clip, got %d", p.Index())
	}
	p.Stop()
	if p.Index() != 0 || p.State != Idle {
		t.Fatalf("stop should rewind")
	}

	want := []string{"Select:A", "Select:B"}
	if !reflect.DeepEqual(*log, want) {
		t.Fatalf("unexpected log: %#v", *log)
	}
}

func TestSafePlayer(t *testing.T) {
	_, h := recorder()
	s := NewSafePlayer(h)
	s.With(func(p *Player) {
		if err := p.Load(program(true)); err != nil {
			t.Fatalf("load: %v", err)
		}
		p.Start()
	})
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			s.With(func(p *Player) { p.Tick(0.1) })
		}
	}()
	<-done
	s.With(func(p *Player) {
		if p.State != Running {
			t.Fatalf("looping program should keep running")
		}
	})
}
