package ui

import (
	"encoding/json"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MValdesGames/NocheEnLaMansion/internal/engine"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ServerFrameMsg:
		return m.handleServerFrame(msg)
	case DisconnectedMsg:
		m.connected = false
		if msg.Err != nil {
			m.messages = append(m.messages, "[connection lost: "+msg.Err.Error()+"]")
		} else {
			m.messages = append(m.messages, "[connection closed]")
		}
		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	}
	return m, nil
}

func (m Model) handleServerFrame(msg ServerFrameMsg) (tea.Model, tea.Cmd) {
	// The hub batches frames into one websocket message separated by
	// newlines, so split before decoding.
	for _, raw := range strings.Split(string(msg.Data), "\n") {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		var f frame
		if err := json.Unmarshal([]byte(raw), &f); err != nil {
			continue
		}
		m = m.applyFrame(f)
	}
	return m, nil
}

func (m Model) applyFrame(f frame) Model {
	switch f.Type {
	case "snapshot":
		var snap engine.Snapshot
		if err := json.Unmarshal(f.Payload, &snap); err == nil {
			m.snap = snap
			m.haveSnap = true
		}
	case "narration":
		var line string
		if err := json.Unmarshal(f.Payload, &line); err == nil && line != "" {
			m.messages = append(m.messages, line)
		}
	case "notification":
		var n engine.Notification
		if err := json.Unmarshal(f.Payload, &n); err == nil {
			if line := notificationLine(n); line != "" {
				m.messages = append(m.messages, line)
			}
		}
	case "sound":
		var effect string
		if err := json.Unmarshal(f.Payload, &effect); err == nil && effect != "" {
			m.messages = append(m.messages, "* "+effect+" *")
		}
	case "ambient":
		var loop string
		if err := json.Unmarshal(f.Payload, &loop); err == nil {
			m.ambient = loop
		}
	}
	return m
}

func notificationLine(n engine.Notification) string {
	switch n.Kind {
	case engine.NotifyFearBand:
		return "[fear: " + n.Text + "]"
	case engine.NotifyHealthBand:
		return "[health: " + n.Text + "]"
	case engine.NotifyEnding:
		return "=== " + n.Text + " ==="
	default:
		// Hour chimes and encounters already arrive as narration.
		return ""
	}
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit

	case "enter":
		text := strings.TrimSpace(m.input)
		if text == "" || !m.connected {
			return m, nil
		}
		m.input = ""
		m.messages = append(m.messages, "> "+text)
		if err := m.send(text); err != nil {
			m.connected = false
			m.messages = append(m.messages, "[connection lost: "+err.Error()+"]")
		}
		return m, nil

	case "backspace":
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
		return m, nil

	default:
		if len(msg.String()) == 1 {
			m.input += msg.String()
		}
		return m, nil
	}
}
