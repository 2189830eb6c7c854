package ui

import (
	"encoding/json"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MValdesGames/NocheEnLaMansion/internal/engine"
)

// SendFunc pushes a typed command over the wire.
type SendFunc func(text string) error

// Model is the terminal client's state.
type Model struct {
	messages []string
	input    string
	width    int
	height   int

	snap     engine.Snapshot
	haveSnap bool
	ambient  string

	connected bool
	send      SendFunc
}

// NewModel builds the initial client state.
func NewModel(send SendFunc) Model {
	return Model{
		messages:  []string{"You push the heavy door shut behind you. The house is listening."},
		connected: true,
		send:      send,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// frame is the wire envelope pushed by the hub.
type frame struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// ServerFrameMsg carries one raw frame from the socket reader.
type ServerFrameMsg struct {
	Data []byte
}

// DisconnectedMsg signals the socket dropped.
type DisconnectedMsg struct {
	Err error
}
