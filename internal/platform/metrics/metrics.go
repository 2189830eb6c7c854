// Package metrics provides observability for the simulation server.
package metrics

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// Collector gathers performance metrics.
type Collector struct {
	// Frame metrics
	FrameCount      int64
	FrameLatencySum int64 // nanoseconds
	FrameLatencyMax int64
	fpsBits         uint64 // float64 bits, smoothed FPS
	LastFrameTime   time.Time

	// Audit log metrics
	RecordsWritten    int64
	RecordWriteLatSum int64
	RecordWriteLatMax int64
	RecordWriteErrors int64

	// Gameplay counters
	CommandsAccepted   int64
	CommandsRejected   int64
	EncountersFired    int64
	EncountersTimedOut int64
	SavesWritten       int64
	RunsFinished       int64

	// WebSocket metrics
	WSConnectionsActive int64
	WSMessagesIn        int64
	WSMessagesOut       int64
	WSErrors            int64

	// System
	StartTime time.Time
	mu        sync.RWMutex
}

// Global collector instance
var collector = &Collector{
	StartTime: time.Now(),
}

// Get returns the global collector.
func Get() *Collector {
	return collector
}

// RecordFrame records a simulation frame completion.
func (c *Collector) RecordFrame(latency time.Duration, fps float64) {
	atomic.AddInt64(&c.FrameCount, 1)
	atomic.AddInt64(&c.FrameLatencySum, int64(latency))

	// Update max (non-atomic but acceptable for metrics)
	if int64(latency) > atomic.LoadInt64(&c.FrameLatencyMax) {
		atomic.StoreInt64(&c.FrameLatencyMax, int64(latency))
	}
	atomic.StoreUint64(&c.fpsBits, math.Float64bits(fps))

	c.mu.Lock()
	c.LastFrameTime = time.Now()
	c.mu.Unlock()
}

// FPS returns the last smoothed frame rate reported by the loop.
func (c *Collector) FPS() float64 {
	return math.Float64frombits(atomic.LoadUint64(&c.fpsBits))
}

// RecordAuditWrite records a record write to the database.
func (c *Collector) RecordAuditWrite(latency time.Duration, err error) {
	atomic.AddInt64(&c.RecordsWritten, 1)
	atomic.AddInt64(&c.RecordWriteLatSum, int64(latency))

	if int64(latency) > atomic.LoadInt64(&c.RecordWriteLatMax) {
		atomic.StoreInt64(&c.RecordWriteLatMax, int64(latency))
	}

	if err != nil {
		atomic.AddInt64(&c.RecordWriteErrors, 1)
	}
}

// RecordCommand records a player command, accepted or rejected.
func (c *Collector) RecordCommand(accepted bool) {
	if accepted {
		atomic.AddInt64(&c.CommandsAccepted, 1)
	} else {
		atomic.AddInt64(&c.CommandsRejected, 1)
	}
}

// RecordEncounter records an encounter firing.
func (c *Collector) RecordEncounter(timedOut bool) {
	atomic.AddInt64(&c.EncountersFired, 1)
	if timedOut {
		atomic.AddInt64(&c.EncountersTimedOut, 1)
	}
}

// RecordSave records a save written to storage.
func (c *Collector) RecordSave() {
	atomic.AddInt64(&c.SavesWritten, 1)
}

// RecordRunFinished records a night reaching its ending.
func (c *Collector) RecordRunFinished() {
	atomic.AddInt64(&c.RunsFinished, 1)
}

// RecordWSConnection records WebSocket connection changes.
func (c *Collector) RecordWSConnection(delta int64) {
	atomic.AddInt64(&c.WSConnectionsActive, delta)
}

// RecordWSMessage records WebSocket messages.
func (c *Collector) RecordWSMessage(incoming bool) {
	if incoming {
		atomic.AddInt64(&c.WSMessagesIn, 1)
	} else {
		atomic.AddInt64(&c.WSMessagesOut, 1)
	}
}

// RecordWSError records a WebSocket error.
func (c *Collector) RecordWSError() {
	atomic.AddInt64(&c.WSErrors, 1)
}

// Snapshot returns current metrics as a map.
func (c *Collector) Snapshot() map[string]interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	frameCount := atomic.LoadInt64(&c.FrameCount)
	recordsWritten := atomic.LoadInt64(&c.RecordsWritten)

	var frameAvg, recordAvg float64
	if frameCount > 0 {
		frameAvg = float64(atomic.LoadInt64(&c.FrameLatencySum)) / float64(frameCount) / 1e6 // ms
	}
	if recordsWritten > 0 {
		recordAvg = float64(atomic.LoadInt64(&c.RecordWriteLatSum)) / float64(recordsWritten) / 1e6
	}

	return map[string]interface{}{
		"uptime_seconds": time.Since(c.StartTime).Seconds(),

		"frame": map[string]interface{}{
			"count":          frameCount,
			"fps":            c.FPS(),
			"avg_latency_ms": frameAvg,
			"max_latency_ms": float64(atomic.LoadInt64(&c.FrameLatencyMax)) / 1e6,
			"last_frame":     c.LastFrameTime.Format(time.RFC3339),
		},

		"audit": map[string]interface{}{
			"written":          recordsWritten,
			"avg_write_lat_ms": recordAvg,
			"max_write_lat_ms": float64(atomic.LoadInt64(&c.RecordWriteLatMax)) / 1e6,
			"errors":           atomic.LoadInt64(&c.RecordWriteErrors),
		},

		"gameplay": map[string]interface{}{
			"commands_accepted":    atomic.LoadInt64(&c.CommandsAccepted),
			"commands_rejected":    atomic.LoadInt64(&c.CommandsRejected),
			"encounters_fired":     atomic.LoadInt64(&c.EncountersFired),
			"encounters_timed_out": atomic.LoadInt64(&c.EncountersTimedOut),
			"saves_written":        atomic.LoadInt64(&c.SavesWritten),
			"runs_finished":        atomic.LoadInt64(&c.RunsFinished),
		},

		"websocket": map[string]interface{}{
			"active_connections": atomic.LoadInt64(&c.WSConnectionsActive),
			"messages_in":        atomic.LoadInt64(&c.WSMessagesIn),
			"messages_out":       atomic.LoadInt64(&c.WSMessagesOut),
			"errors":             atomic.LoadInt64(&c.WSErrors),
		},
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-cache")

		snapshot := collector.Snapshot()
		json.NewEncoder(w).Encode(snapshot)
	}
}

// PrometheusHandler returns metrics in Prometheus format.
func PrometheusHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")

		c := collector

		fmt.Fprintf(w, "# HELP manor_frame_count Total simulation frames\n")
		fmt.Fprintf(w, "# TYPE manor_frame_count counter\n")
		fmt.Fprintf(w, "manor_frame_count %d\n\n", atomic.LoadInt64(&c.FrameCount))

		fmt.Fprintf(w, "# HELP manor_fps Smoothed frame rate\n")
		fmt.Fprintf(w, "# TYPE manor_fps gauge\n")
		fmt.Fprintf(w, "manor_fps %.2f\n\n", c.FPS())

		fmt.Fprintf(w, "# HELP manor_audit_written Total audit records written\n")
		fmt.Fprintf(w, "# TYPE manor_audit_written counter\n")
		fmt.Fprintf(w, "manor_audit_written %d\n\n", atomic.LoadInt64(&c.RecordsWritten))

		fmt.Fprintf(w, "# HELP manor_audit_write_errors Total audit write errors\n")
		fmt.Fprintf(w, "# TYPE manor_audit_write_errors counter\n")
		fmt.Fprintf(w, "manor_audit_write_errors %d\n\n", atomic.LoadInt64(&c.RecordWriteErrors))

		fmt.Fprintf(w, "# HELP manor_commands_total Player commands by result\n")
		fmt.Fprintf(w, "# TYPE manor_commands_total counter\n")
		fmt.Fprintf(w, "manor_commands_total{result=\"accepted\"} %d\n", atomic.LoadInt64(&c.CommandsAccepted))
		fmt.Fprintf(w, "manor_commands_total{result=\"rejected\"} %d\n\n", atomic.LoadInt64(&c.CommandsRejected))

		fmt.Fprintf(w, "# HELP manor_encounters_fired Total encounters fired\n")
		fmt.Fprintf(w, "# TYPE manor_encounters_fired counter\n")
		fmt.Fprintf(w, "manor_encounters_fired %d\n\n", atomic.LoadInt64(&c.EncountersFired))

		fmt.Fprintf(w, "# HELP manor_ws_connections Active WebSocket connections\n")
		fmt.Fprintf(w, "# TYPE manor_ws_connections gauge\n")
		fmt.Fprintf(w, "manor_ws_connections %d\n\n", atomic.LoadInt64(&c.WSConnectionsActive))

		fmt.Fprintf(w, "# HELP manor_ws_messages_total Total WebSocket messages\n")
		fmt.Fprintf(w, "# TYPE manor_ws_messages_total counter\n")
		fmt.Fprintf(w, "manor_ws_messages_total{direction=\"in\"} %d\n", atomic.LoadInt64(&c.WSMessagesIn))
		fmt.Fprintf(w, "manor_ws_messages_total{direction=\"out\"} %d\n", atomic.LoadInt64(&c.WSMessagesOut))
	}
}
