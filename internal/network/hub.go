package network

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/MValdesGames/NocheEnLaMansion/internal/engine"
	"github.com/MValdesGames/NocheEnLaMansion/internal/platform/logger"
	"github.com/MValdesGames/NocheEnLaMansion/internal/platform/metrics"
)

// Simulation is the slice of the orchestrator the network layer needs.
type Simulation interface {
	HandleCommand(text string) bool
	TriggerEncounter(id string) bool
	Snapshot() engine.Snapshot
}

// Message is the envelope for every frame pushed to spectators.
type Message struct {
	Type      string      `json:"type"`
	Timestamp int64       `json:"ts"`
	Payload   interface{} `json:"payload"`
}

// Frame types pushed over the socket.
const (
	MsgTypeSnapshot     = "snapshot"
	MsgTypeNarration    = "narration"
	MsgTypeNotification = "notification"
	MsgTypeSound        = "sound"
	MsgTypeAmbient      = "ambient"
)

// Hub maintains the set of active spectator connections and broadcasts
// simulation frames to them. It also implements engine.Narrator and
// engine.AudioPlayer, so the night's prose and sound cues reach every
// connected client.
type Hub struct {
	sim        Simulation
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	mu         sync.Mutex
	logger     *logger.Logger
	metrics    *metrics.Collector
}

// NewHub initializes a new WebSocket Hub.
func NewHub(sim Simulation, log *logger.Logger, m *metrics.Collector) *Hub {
	return &Hub{
		sim:        sim,
		broadcast:  make(chan []byte, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		logger:     log,
		metrics:    m,
	}
}

// Run starts the Hub's main loop. Call in a goroutine.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.logger.Info("WebSocket hub shutting down")
			return
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.metrics.RecordWSConnection(1)
			h.logger.Info("spectator connected")
		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				h.metrics.RecordWSConnection(-1)
				h.logger.Info("spectator disconnected")
			}
			h.mu.Unlock()
		case message := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- message:
					h.metrics.RecordWSMessage(false)
				default:
					// A stalled spectator does not get to stall the rest.
					close(client.send)
					delete(h.clients, client)
					h.metrics.RecordWSError()
				}
			}
			h.mu.Unlock()
		}
	}
}

// Broadcast serializes a typed message and fans it out.
func (h *Hub) Broadcast(msgType string, payload interface{}) {
	msg := Message{
		Type:      msgType,
		Timestamp: time.Now().Unix(),
		Payload:   payload,
	}
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("serializing %s frame: %v", msgType, err)
		return
	}
	select {
	case h.broadcast <- data:
	default:
		h.logger.Warn("broadcast queue full, dropping %s frame", msgType)
	}
}

// Narrate implements engine.Narrator.
func (h *Hub) Narrate(line string) {
	h.Broadcast(MsgTypeNarration, line)
}

// PlaySound implements engine.AudioPlayer.
func (h *Hub) PlaySound(effect string) {
	h.Broadcast(MsgTypeSound, effect)
}

// SetAmbient implements engine.AudioPlayer.
func (h *Hub) SetAmbient(loop string) {
	h.Broadcast(MsgTypeAmbient, loop)
}

// Notify forwards an orchestrator notification to spectators. Wire it via
// Orchestrator.Subscribe.
func (h *Hub) Notify(n engine.Notification) {
	h.Broadcast(MsgTypeNotification, n)
}

// StartSnapshotPoller pushes the current snapshot to spectators on a fixed
// cadence, independent of the simulation loop.
func (h *Hub) StartSnapshotPoller(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(250 * time.Millisecond)
		defer ticker.Stop()

		var lastElapsed float64 = -1
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				snap := h.sim.Snapshot()
				if snap.ElapsedMs == lastElapsed && !snap.Paused {
					continue
				}
				lastElapsed = snap.ElapsedMs
				h.Broadcast(MsgTypeSnapshot, snap)
			}
		}
	}()
}
