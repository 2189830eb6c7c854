// Package tuning provides concurrency profiles and load-driven advice for
// the simulation server.
package tuning

import (
	"runtime"
)

// Profile holds tuned parameters for a deployment size.
type Profile struct {
	// Channel buffer sizes
	CommandBuffer    int
	BroadcastBuffer  int
	ClientSendBuffer int

	// Connection pools
	DBMaxOpenConns int
	DBMaxIdleConns int

	// Rate limiting
	MaxMessagesPerSecond int
	MaxSpectators        int
}

// DefaultProfile returns sensible defaults for production.
func DefaultProfile() *Profile {
	numCPU := runtime.NumCPU()

	return &Profile{
		CommandBuffer:    64,
		BroadcastBuffer:  256,
		ClientSendBuffer: 64,

		DBMaxOpenConns: numCPU * 4,
		DBMaxIdleConns: numCPU * 2,

		MaxMessagesPerSecond: 20,
		MaxSpectators:        200,
	}
}

// LowResourceProfile returns minimal settings for small hosts and dev.
func LowResourceProfile() *Profile {
	return &Profile{
		CommandBuffer:    16,
		BroadcastBuffer:  32,
		ClientSendBuffer: 8,

		DBMaxOpenConns: 5,
		DBMaxIdleConns: 2,

		MaxMessagesPerSecond: 5,
		MaxSpectators:        20,
	}
}

// Recommendations provides suggestions based on observed metrics.
type Recommendations struct {
	IncreaseCommandBuffer   bool
	IncreaseBroadcastBuffer bool
	IncreaseDBConnections   bool
	ReduceEncounterRate     bool
	Notes                   []string
}

// Analyze examines a metrics snapshot and returns tuning recommendations.
func Analyze(metrics map[string]interface{}) *Recommendations {
	rec := &Recommendations{
		Notes: make([]string, 0),
	}

	if frame, ok := metrics["frame"].(map[string]interface{}); ok {
		if maxLat, ok := frame["max_latency_ms"].(float64); ok && maxLat > 100 {
			rec.ReduceEncounterRate = true
			rec.Notes = append(rec.Notes, "Frame latency exceeds 100ms - reduce encounter check rate")
		}
		if fps, ok := frame["fps"].(float64); ok && fps > 0 && fps < 30 {
			rec.ReduceEncounterRate = true
			rec.Notes = append(rec.Notes, "FPS under 30 - consider the low resource profile")
		}
	}

	if audit, ok := metrics["audit"].(map[string]interface{}); ok {
		if maxLat, ok := audit["max_write_lat_ms"].(float64); ok && maxLat > 50 {
			rec.IncreaseDBConnections = true
			rec.Notes = append(rec.Notes, "Audit write latency exceeds 50ms - increase DB connections")
		}
		if errors, ok := audit["errors"].(int64); ok && errors > 0 {
			rec.IncreaseDBConnections = true
			rec.Notes = append(rec.Notes, "Audit write errors detected - check DB connection pool")
		}
	}

	if gameplay, ok := metrics["gameplay"].(map[string]interface{}); ok {
		if rejected, ok := gameplay["commands_rejected"].(int64); ok && rejected > 0 {
			rec.IncreaseCommandBuffer = true
			rec.Notes = append(rec.Notes, "Commands dropped - increase command buffer")
		}
	}

	if ws, ok := metrics["websocket"].(map[string]interface{}); ok {
		if errors, ok := ws["errors"].(int64); ok && errors > 0 {
			rec.IncreaseBroadcastBuffer = true
			rec.Notes = append(rec.Notes, "WebSocket errors detected - increase client send buffer")
		}
	}

	return rec
}

// Apply modifies a profile based on recommendations.
func Apply(p *Profile, rec *Recommendations) *Profile {
	if rec.IncreaseCommandBuffer {
		p.CommandBuffer *= 2
	}
	if rec.IncreaseBroadcastBuffer {
		p.BroadcastBuffer *= 2
		p.ClientSendBuffer *= 2
	}
	if rec.IncreaseDBConnections {
		p.DBMaxOpenConns = int(float64(p.DBMaxOpenConns) * 1.5)
		p.DBMaxIdleConns = int(float64(p.DBMaxIdleConns) * 1.5)
	}
	return p
}
