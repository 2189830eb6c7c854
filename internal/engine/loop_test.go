package engine

import (
	"testing"
	"time"

	"github.com/MValdesGames/NocheEnLaMansion/internal/platform/logger"
)

func newTestLoop(step stepFunc) *Loop {
	cfg := DefaultConfig()
	return NewLoop(cfg, logger.NewLogger(), nil, step)
}

func TestFrameClampsStallDeltas(t *testing.T) {
	var got float64
	l := newTestLoop(func(dtMs float64, commands []string) { got = dtMs })

	l.frame(5 * time.Second)
	if got != DefaultConfig().MaxDtMs {
		t.Errorf("Expected a stalled frame clamped to %v ms, got %v", DefaultConfig().MaxDtMs, got)
	}

	l.frame(16 * time.Millisecond)
	if got != 16 {
		t.Errorf("Expected a normal frame to pass through, got %v", got)
	}
}

func TestDrainCapsCommandsPerTick(t *testing.T) {
	var got []string
	l := newTestLoop(func(dtMs float64, commands []string) { got = commands })

	for i := 0; i < 10; i++ {
		if !l.Enqueue("go north") {
			t.Fatalf("Expected Enqueue %d to fit in the buffer", i)
		}
	}

	l.frame(16 * time.Millisecond)
	if len(got) != DefaultConfig().CommandsPerTick {
		t.Errorf("Expected %d commands in one tick, got %d", DefaultConfig().CommandsPerTick, len(got))
	}

	// The rest arrive on the following frames, in order.
	l.frame(16 * time.Millisecond)
	if len(got) != DefaultConfig().CommandsPerTick {
		t.Errorf("Expected the remainder next tick, got %d", len(got))
	}
	l.frame(16 * time.Millisecond)
	if len(got) != 10-2*DefaultConfig().CommandsPerTick {
		t.Errorf("Expected the tail on the third tick, got %d", len(got))
	}
}

func TestPauseSkipsStep(t *testing.T) {
	steps := 0
	l := newTestLoop(func(dtMs float64, commands []string) { steps++ })

	l.Pause()
	for i := 0; i < 5; i++ {
		l.frame(16 * time.Millisecond)
	}
	if steps != 0 {
		t.Errorf("Expected no steps while paused, got %d", steps)
	}
	if !l.Paused() {
		t.Error("Expected the pause flag set")
	}

	l.Resume()
	l.frame(16 * time.Millisecond)
	if steps != 1 {
		t.Errorf("Expected the step to resume, got %d", steps)
	}
}

func TestSustainedLowFPSFiresDegradationOnce(t *testing.T) {
	degraded := 0
	recovered := 0
	l := newTestLoop(func(dtMs float64, commands []string) {})
	l.OnDegraded(func(fps float64) { degraded++ })
	l.OnRecovered(func(fps float64) { recovered++ })

	// 200ms frames are 5 fps, far under the floor. Two seconds of streak
	// means TickHz*2 consecutive low frames.
	for i := 0; i < l.lowStreakMax+10; i++ {
		l.frame(200 * time.Millisecond)
	}
	if degraded != 1 {
		t.Errorf("Expected exactly one degradation callback, got %d", degraded)
	}

	// A healthy stretch recovers once.
	for i := 0; i < 50; i++ {
		l.frame(10 * time.Millisecond)
	}
	if recovered != 1 {
		t.Errorf("Expected exactly one recovery callback, got %d", recovered)
	}
}

func TestEnqueueRefusesWhenFull(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CommandBuffer = 2
	l := NewLoop(cfg, logger.NewLogger(), nil, func(float64, []string) {})

	if !l.Enqueue("a") || !l.Enqueue("b") {
		t.Fatal("Expected the first two commands to fit")
	}
	if l.Enqueue("c") {
		t.Error("Expected a full queue to refuse the third command")
	}
}
