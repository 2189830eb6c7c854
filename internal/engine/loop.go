// The simulation loop. A fixed-rate ticker drives frames; each frame
// measures its own real delta, clamps it after stalls, and hands it to the
// orchestrator's step along with any queued commands.
package engine

import (
	"context"
	"math"
	"sync/atomic"
	"time"

	"github.com/MValdesGames/NocheEnLaMansion/internal/platform/logger"
	"github.com/MValdesGames/NocheEnLaMansion/internal/platform/metrics"
)

// stepFunc advances the simulation by one frame.
type stepFunc func(dtMs float64, commands []string)

// Loop owns the frame timing, the pause flag, and the command queue.
type Loop struct {
	cfg     Config
	log     *logger.Logger
	metrics *metrics.Collector
	step    stepFunc

	commands chan string
	stopChan chan struct{}
	stopped  atomic.Bool
	paused   atomic.Bool

	// Frame health, owned by the run goroutine.
	emaFrameMs   float64
	lowStreak    int
	degraded     bool
	onDegraded   func(fps float64)
	onRecovered  func(fps float64)
	fpsBits      atomic.Uint64
	lowStreakMax int
}

// NewLoop creates a loop that calls step every frame.
func NewLoop(cfg Config, log *logger.Logger, m *metrics.Collector, step stepFunc) *Loop {
	return &Loop{
		cfg:          cfg,
		log:          log,
		metrics:      m,
		step:         step,
		commands:     make(chan string, cfg.CommandBuffer),
		stopChan:     make(chan struct{}),
		lowStreakMax: cfg.TickHz * 2, // two seconds under the floor counts as sustained
	}
}

// OnDegraded registers the handler fired once when the frame rate stays
// under the configured floor, and OnRecovered its counterpart.
func (l *Loop) OnDegraded(fn func(fps float64))  { l.onDegraded = fn }
func (l *Loop) OnRecovered(fn func(fps float64)) { l.onRecovered = fn }

// Enqueue offers a command to the queue without blocking. Returns false
// when the queue is full; the caller decides what to tell the player.
func (l *Loop) Enqueue(cmd string) bool {
	select {
	case l.commands <- cmd:
		return true
	default:
		return false
	}
}

// Pause freezes simulation time. Frames keep running so the queue and the
// pause flag stay responsive, but no delta reaches the step.
func (l *Loop) Pause()  { l.paused.Store(true) }
func (l *Loop) Resume() { l.paused.Store(false) }

// Paused reports the pause flag.
func (l *Loop) Paused() bool { return l.paused.Load() }

// FPS returns the smoothed frame rate.
func (l *Loop) FPS() float64 {
	return math.Float64frombits(l.fpsBits.Load())
}

// Stop ends the loop. Safe to call once.
func (l *Loop) Stop() {
	if l.stopped.CompareAndSwap(false, true) {
		close(l.stopChan)
	}
}

// Run drives the loop until Stop or context cancellation. Call in a
// goroutine.
func (l *Loop) Run(ctx context.Context) {
	interval := time.Second / time.Duration(l.cfg.TickHz)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	l.log.Info("simulation loop started at %d Hz", l.cfg.TickHz)
	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			l.log.Info("simulation loop stopped by context")
			return
		case <-l.stopChan:
			l.log.Info("simulation loop stopped")
			return
		case now := <-ticker.C:
			dt := now.Sub(last)
			last = now
			l.frame(dt)
		}
	}
}

// frame processes one frame with a measured real delta. Split from Run so
// tests can drive the loop deterministically.
func (l *Loop) frame(dt time.Duration) {
	start := time.Now()

	dtMs := float64(dt) / float64(time.Millisecond)
	if dtMs > l.cfg.MaxDtMs {
		// A stall happened (GC, debugger, suspend). Losing time is better
		// than a single frame teleporting the night forward.
		l.log.Warn("frame delta clamped: %.0fms -> %.0fms", dtMs, l.cfg.MaxDtMs)
		dtMs = l.cfg.MaxDtMs
	}

	l.observeFrame(dtMs)

	if l.paused.Load() {
		return
	}

	l.step(dtMs, l.drain())

	if l.metrics != nil {
		l.metrics.RecordFrame(time.Since(start), l.FPS())
	}
}

// drain pulls up to CommandsPerTick queued commands.
func (l *Loop) drain() []string {
	var cmds []string
	for len(cmds) < l.cfg.CommandsPerTick {
		select {
		case c := <-l.commands:
			cmds = append(cmds, c)
		default:
			return cmds
		}
	}
	return cmds
}

// observeFrame maintains the smoothed frame time and flips the degradation
// flag on sustained low FPS.
func (l *Loop) observeFrame(dtMs float64) {
	const alpha = 0.1
	if l.emaFrameMs == 0 {
		l.emaFrameMs = dtMs
	} else {
		l.emaFrameMs = l.emaFrameMs*(1-alpha) + dtMs*alpha
	}
	fps := 0.0
	if l.emaFrameMs > 0 {
		fps = 1000.0 / l.emaFrameMs
	}
	l.fpsBits.Store(math.Float64bits(fps))

	if fps < l.cfg.DegradedFPS {
		l.lowStreak++
	} else {
		l.lowStreak = 0
		if l.degraded {
			l.degraded = false
			if l.onRecovered != nil {
				l.onRecovered(fps)
			}
		}
	}

	if !l.degraded && l.lowStreak >= l.lowStreakMax {
		l.degraded = true
		l.log.Warn("sustained low frame rate: %.1f fps", fps)
		if l.onDegraded != nil {
			l.onDegraded(fps)
		}
	}
}
