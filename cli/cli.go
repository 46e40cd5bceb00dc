// Package cli renders a live conversation in the terminal: a scrolling
// transcript, a status sidebar, and a text input for typed prompts.
package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	agent "github.com/liralabs/lira-core/core"
	"github.com/liralabs/lira-core/core/events"
	"github.com/muesli/reflow/wordwrap"
)

const (
	sidebarWidth      = 33
	sidebarPadding    = 1
	sidebarOuterWidth = sidebarWidth + sidebarPadding*2

	viewportPadding = 1

	// recordingIndicatorHold keeps the recording flag lit briefly after the
	// last push-to-talk keypress, so held space reads as one recording.
	recordingIndicatorHold = 100 * time.Millisecond
)

type eventMsg struct{ event events.Event }
type endRecordingMsg struct{}

type transcriptEntry struct {
	speaker string
	text    string
}

type model struct {
	agent *agent.Agent

	termWidth  int
	termHeight int
	ready      bool

	viewport        viewport.Model
	input           textinput.Model
	automaticScroll bool

	entries   []transcriptEntry
	interim   string
	speaking  bool
	recording bool
	muted     bool

	endRecordingTimer *time.Timer
}

func newModel(conversationAgent *agent.Agent) model {
	input := textinput.New()
	input.Placeholder = "Type to chat, or hold space to talk"
	input.Focus()

	return model{
		agent:           conversationAgent,
		input:           input,
		automaticScroll: true,
	}
}

// Run drives the TUI until the user quits. Agent events stream into the
// program as messages.
func Run(conversationAgent *agent.Agent) error {
	program := tea.NewProgram(
		newModel(conversationAgent),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	unsubscribe := conversationAgent.Subscribe(func(event events.Event) {
		program.Send(eventMsg{event: event})
	})
	defer unsubscribe()

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("terminal client stopped: %w", err)
	}
	return nil
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	viewportHeight := m.termHeight - viewportPadding*2 - 5

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height

		viewportHeight = m.termHeight - viewportPadding*2 - 5
		if !m.ready {
			m.viewport = viewport.New(m.viewportWidth(), viewportHeight)
			m.ready = true
		} else {
			m.viewport.Width = m.viewportWidth()
			m.viewport.Height = viewportHeight
		}
		m.input.Width = m.viewportWidth() - 4
		m.viewport.SetContent(m.getContent())
		return m, nil

	case tea.KeyMsg:
		if model, cmd, handled := m.handleKey(msg); handled {
			return model, cmd
		}

	case endRecordingMsg:
		m.recording = false
		m.endRecordingTimer = nil
		return m, nil

	case eventMsg:
		m.applyEvent(msg.event)
		m.viewport.SetContent(m.getContent())
		if m.automaticScroll {
			m.viewport.GotoBottom()
		}
		return m, nil
	}

	var inputCmd, viewportCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	m.viewport, viewportCmd = m.viewport.Update(msg)
	if m.viewport.AtBottom() {
		m.automaticScroll = true
	} else {
		m.automaticScroll = false
	}

	return m, tea.Batch(inputCmd, viewportCmd)
}

// handleKey processes command keys. Single-letter commands only apply while
// the input line is empty, so typing "mushrooms" doesn't toggle the mute.
func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit, true

	case "enter":
		text := strings.TrimSpace(m.input.Value())
		if text == "" {
			return m, nil, true
		}
		m.entries = append(m.entries, transcriptEntry{speaker: "You", text: text})
		m.input.Reset()
		m.agent.SendPrompt(text)
		m.viewport.SetContent(m.getContent())
		m.viewport.GotoBottom()
		return m, nil, true
	}

	if m.input.Value() != "" {
		return m, nil, false
	}

	switch msg.String() {
	case " ":
		m.recording = true
		if m.endRecordingTimer != nil {
			m.endRecordingTimer.Stop()
		}
		m.endRecordingTimer = time.NewTimer(recordingIndicatorHold)
		timer := m.endRecordingTimer
		return m, func() tea.Msg {
			<-timer.C
			return endRecordingMsg{}
		}, true

	case "m":
		m.muted = !m.muted
		return m, nil, true

	case "i":
		m.agent.Interrupt()
		return m, nil, true

	case "r":
		m.agent.Reset()
		m.entries = nil
		m.interim = ""
		m.viewport.SetContent(m.getContent())
		return m, nil, true

	case "q":
		return m, tea.Quit, true
	}

	return m, nil, false
}

func (m *model) applyEvent(event events.Event) {
	switch e := event.(type) {
	case events.UserSpeechStarted:
		m.recording = true
	case events.UserSpeechEnded:
		m.recording = false
	case events.UserTranscriptInterimUpdated:
		m.interim = e.Transcript
	case events.UserTranscriptFinal:
		m.interim = ""
		m.entries = append(m.entries, transcriptEntry{speaker: "You", text: e.Transcript})
	case events.AssistantResponseFinal:
		m.entries = append(m.entries, transcriptEntry{speaker: "LIRA", text: e.Response})
	case events.AssistantPlaybackStarted:
		m.speaking = true
	case events.AssistantPlaybackEnded:
		m.speaking = false
	case events.TurnCancelled:
		m.speaking = false
	}
}

func (m model) viewportWidth() int {
	return m.termWidth - sidebarOuterWidth - viewportPadding*2
}

func (m model) getContent() string {
	lines := make([]string, 0, len(m.entries)+1)
	speakerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	for _, entry := range m.entries {
		lines = append(lines, speakerStyle.Render(entry.speaker+":")+" "+entry.text)
	}
	if m.interim != "" {
		lines = append(lines, lipgloss.NewStyle().Faint(true).Render("You: "+m.interim))
	}
	return wordwrap.String(strings.Join(lines, "\n"), m.viewportWidth()-4)
}

func (m model) View() string {
	if m.termWidth == 0 {
		return "Loading..."
	}

	mainStyle := lipgloss.NewStyle().
		Padding(1).
		Width(m.termWidth - sidebarOuterWidth).
		Height(m.termHeight - 5)

	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(sidebarPadding).
		Width(sidebarWidth).
		Height(m.termHeight - 2)

	labelStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220"))
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	sidebarLine := func(label string, value any) string {
		return fmt.Sprintf("%s: %v", labelStyle.Render(label), valueStyle.Render(fmt.Sprintf("%v", value)))
	}

	sidebar := sidebarStyle.Render(strings.Join([]string{
		sidebarLine("Mode", m.agent.Mode()),
		sidebarLine("Level", m.agent.Level()),
		"",
		sidebarLine("Recording", m.recording),
		sidebarLine("Speaking", m.speaking),
		sidebarLine("Muted", m.muted),
	}, "\n"))

	footer := lipgloss.NewStyle().
		PaddingTop(1).
		Foreground(lipgloss.Color("241")).
		Render("space talk · m mute · i interrupt · r reset · q quit")

	return lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.JoinVertical(lipgloss.Left,
			mainStyle.Render(m.viewport.View()),
			m.input.View(),
			footer,
		),
		sidebar,
	)
}
