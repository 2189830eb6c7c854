// Package main is the terminal client for the manor. It connects to a
// running manor-server over WebSocket and renders the night.
package main

import (
	"flag"
	"fmt"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gorilla/websocket"

	"github.com/MValdesGames/NocheEnLaMansion/cmd/manor/ui"
)

func main() {
	serverURL := flag.String("url", "ws://localhost:8080/ws", "manor-server WebSocket URL")
	flag.Parse()

	conn, _, err := websocket.DefaultDialer.Dial(*serverURL, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "connecting to %s: %v\n", *serverURL, err)
		os.Exit(1)
	}
	defer conn.Close()

	var writeMu sync.Mutex
	send := func(text string) error {
		writeMu.Lock()
		defer writeMu.Unlock()
		return conn.WriteJSON(map[string]string{"text": text})
	}

	p := tea.NewProgram(ui.NewModel(send), tea.WithAltScreen())

	go func() {
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				p.Send(ui.DisconnectedMsg{Err: err})
				return
			}
			p.Send(ui.ServerFrameMsg{Data: data})
		}
	}()

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "terminal error: %v\n", err)
		os.Exit(1)
	}
}
