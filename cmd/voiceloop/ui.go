package main

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	assistant "github.com/mlisica/voiceloop/core"
	"github.com/mlisica/voiceloop/core/events"
	"github.com/mlisica/voiceloop/core/notify"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("57")).
			Padding(0, 1)

	userLabelStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	assistantLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("170"))
	turnStyle           = lipgloss.NewStyle().PaddingLeft(2)

	listeningStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	interimStyle   = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("245"))
	helpStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	toastStyles = map[notify.Kind]lipgloss.Style{
		notify.KindError:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		notify.KindWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		notify.KindSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		notify.KindInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
	}
)

type (
	eventMsg    struct{ event events.Event }
	toastsMsg   struct{ visible []notify.Notification }
	turnDoneMsg struct{}
)

type model struct {
	assistant *assistant.Assistant
	capture   *assistant.CaptureController

	spinner spinner.Model
	width   int

	toasts []notify.Notification
}

func newModel(a *assistant.Assistant, capture *assistant.CaptureController) model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("170"))

	return model{
		assistant: a,
		capture:   capture,
		spinner:   s,
		width:     80,
	}
}

func (m model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m model) processing() bool {
	return m.assistant.IsAsking() || m.assistant.IsSpeaking()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.capture.Close()
			return m, tea.Quit
		case " ":
			return m, m.toggleCapture()
		}
		return m, nil

	case eventMsg:
		// State lives in the core; events only trigger a re-render.
		return m, nil

	case toastsMsg:
		m.toasts = msg.visible
		return m, nil

	case turnDoneMsg:
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// toggleCapture flips the microphone. The toggle is refused while a turn
// is in flight, so a capture session can never overlap processing.
func (m model) toggleCapture() tea.Cmd {
	if m.processing() {
		return nil
	}

	if !m.capture.IsListening() {
		m.capture.Start(context.Background())
		return nil
	}

	m.capture.Stop()
	transcript := m.capture.Transcript().Combined()
	m.capture.Reset()

	return func() tea.Msg {
		_ = m.assistant.HandleTurn(context.Background(), transcript)
		return turnDoneMsg{}
	}
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("voiceloop"))
	b.WriteString("\n\n")

	wrapWidth := m.width - 4
	if wrapWidth < 20 {
		wrapWidth = 20
	}

	for _, turn := range m.assistant.Turns() {
		label := assistantLabelStyle.Render("assistant")
		if turn.Role == assistant.RoleUser {
			label = userLabelStyle.Render("you")
		}
		b.WriteString(label)
		b.WriteString("\n")
		b.WriteString(turnStyle.Render(wordwrap.String(turn.Content, wrapWidth)))
		b.WriteString("\n\n")
	}

	switch {
	case m.capture.IsListening():
		b.WriteString(listeningStyle.Render("● Listening (press space to send)"))
		if interim := m.capture.Transcript().Combined(); interim != "" {
			b.WriteString("\n")
			b.WriteString(interimStyle.Render(wordwrap.String(interim, wrapWidth)))
		}
	case m.processing():
		b.WriteString(m.spinner.View())
		b.WriteString(" Thinking…")
	default:
		b.WriteString(helpStyle.Render("Press space to talk, q to quit"))
	}
	b.WriteString("\n")

	for _, toast := range m.toasts {
		style, ok := toastStyles[toast.Kind]
		if !ok {
			style = helpStyle
		}
		b.WriteString("\n")
		b.WriteString(style.Render(toast.Title + ": " + toast.Message))
	}

	return b.String()
}
