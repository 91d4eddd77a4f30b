package tui

import (
	"fmt"

	"codeberg.org/pixelgate/server/internal/config"
	tea "github.com/charmbracelet/bubbletea"
)

func NewApp(flags config.Flags) *Model {
	client := NewGatewayClient(flags)

	return &Model{
		state:     StateWelcome,
		flags:     flags,
		client:    client,
		welcome:   NewWelcome(flags.Endpoint, flags.Plan),
		generator: NewGenerator(client, flags.OutDir),
	}
}

// sets the initial terminal size before the first WindowSizeMsg arrives
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.generator.width = width
}

func (m *Model) Init() tea.Cmd {
	return m.client.PlansCmd()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			// ctrl+c dismisses an error first, then leaves the generator, then quits
			switch {
			case m.err != nil:
				m.err = nil
				return m, nil
			case m.state == StateGenerator:
				m.state = StateWelcome
				return m, nil
			default:
				return m, tea.Quit
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.generator, _ = m.generator.Update(msg)
		return m, nil

	case ErrorMsg:
		m.err = msg.err
		return m, nil

	case EnterGeneratorMsg:
		m.state = StateGenerator
		return m, m.generator.Init()
	}

	switch m.state {
	case StateWelcome:
		var cmd tea.Cmd
		m.welcome, cmd = m.welcome.Update(msg, m.client)
		return m, cmd

	case StateGenerator:
		var cmd tea.Cmd
		m.generator, cmd = m.generator.Update(msg)
		return m, cmd

	default:
		return m, nil
	}
}

func (m *Model) View() string {
	if m.err != nil {
		return errorView(m.err)
	}

	switch m.state {
	case StateWelcome:
		return m.welcome.View()

	case StateGenerator:
		return m.generator.View()

	default:
		return "Unknown state"
	}
}

func errorView(err error) string {
	return fmt.Sprintf("\n  Error: %v\n\n  Press Ctrl+C to dismiss\n", err)
}
