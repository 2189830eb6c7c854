package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	statusHeight := 3
	inputHeight := 3
	chatHeight := m.height - statusHeight - inputHeight
	if chatHeight < 3 {
		chatHeight = 3
	}

	messageStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("7"))

	userStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("12")).
		Bold(true)

	systemStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("11"))

	statusStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Padding(0, 1).
		Width(m.width - 4)

	inputStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Padding(0, 1).
		Width(m.width - 4)

	chatPanel := lipgloss.NewStyle().
		Width(m.width).
		Height(chatHeight).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Padding(1)

	var chatContent strings.Builder

	visibleMessages := m.messages
	maxMessages := chatHeight - 2
	if maxMessages < 1 {
		maxMessages = 1
	}
	if len(visibleMessages) > maxMessages {
		visibleMessages = visibleMessages[len(visibleMessages)-maxMessages:]
	}

	paddingLines := maxMessages - len(visibleMessages)
	for i := 0; i < paddingLines; i++ {
		chatContent.WriteString("\n")
	}

	contentWidth := m.width - 4

	for _, message := range visibleMessages {
		switch {
		case message == "":
			chatContent.WriteString("\n")
		case strings.HasPrefix(message, "> "):
			chatContent.WriteString(userStyle.Render(wrapAndIndent(message, contentWidth, " ")) + "\n")
		case strings.HasPrefix(message, "["):
			chatContent.WriteString(systemStyle.Render(wrapAndIndent(message, contentWidth, " ")) + "\n")
		default:
			chatContent.WriteString(messageStyle.Render(wrapAndIndent(message, contentWidth, " ")) + "\n")
		}
	}

	status := statusStyle.Render(m.statusLine())
	chat := chatPanel.Render(chatContent.String())
	input := inputStyle.Render(m.input + "│")

	return status + "\n" + chat + "\n" + input
}

func (m Model) statusLine() string {
	if !m.connected {
		return "✝ disconnected"
	}
	if !m.haveSnap {
		return "… waiting for the house"
	}

	s := m.snap
	fearStyle := lipgloss.NewStyle().Foreground(fearColor(s.Fear))
	healthStyle := lipgloss.NewStyle().Foreground(healthColor(s.Health))

	line := fmt.Sprintf("🕯 %s  %s  %s  📍 %s",
		s.TimeLabel,
		fearStyle.Render(fmt.Sprintf("fear %s %.0f", meterBar(s.Fear), s.Fear)),
		healthStyle.Render(fmt.Sprintf("health %s %.0f", meterBar(s.Health), s.Health)),
		s.LocationName,
	)
	if s.Awaiting {
		line += "  ⚠ answer it"
	}
	if s.Paused {
		line += "  ⏸ paused"
	}
	if s.Finished {
		line += "  - " + s.EndingTitle
	}
	return line
}

func meterBar(v float64) string {
	filled := int(v / 10)
	if filled > 10 {
		filled = 10
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", 10-filled)
}

func fearColor(v float64) lipgloss.Color {
	switch {
	case v >= 75:
		return lipgloss.Color("9")
	case v >= 50:
		return lipgloss.Color("11")
	default:
		return lipgloss.Color("10")
	}
}

func healthColor(v float64) lipgloss.Color {
	switch {
	case v <= 20:
		return lipgloss.Color("9")
	case v <= 50:
		return lipgloss.Color("11")
	default:
		return lipgloss.Color("10")
	}
}

func wrapAndIndent(text string, width int, indent string) string {
	if len(text) <= width {
		return indent + text
	}

	var result strings.Builder
	words := strings.Fields(text)
	if len(words) == 0 {
		return indent + text
	}

	currentLine := indent + words[0]

	for _, word := range words[1:] {
		if len(currentLine)+1+len(word) <= width {
			currentLine += " " + word
		} else {
			result.WriteString(currentLine + "\n")
			currentLine = indent + word
		}
	}

	result.WriteString(currentLine)
	return result.String()
}
