package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// returns a new welcome screen
func NewWelcome(endpoint, plan string) *Welcome {
	// a nil renderer falls back to raw markdown
	renderer, _ := glamour.NewTermRenderer( //nolint:errcheck
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(100),
	)

	if plan == "" {
		plan = "default"
	}

	return &Welcome{
		endpoint: endpoint,
		plan:     plan,
		renderer: renderer,
		commands: []Command{
			{Name: "generate", Description: "generate images from prompts"},
			{Name: "plans", Description: "show the plan table"},
			{Name: "status", Description: "probe the image service"},
			{Name: "quit", Description: "exit pixelgate"},
		},
	}
}

func (m *Welcome) Update(msg tea.Msg, client *GatewayClient) (*Welcome, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			cmd := m.executeCommand(client)
			m.input = ""
			return m, cmd
		case "backspace":
			if len(m.input) > 0 {
				m.input = m.input[:len(m.input)-1]
			}
		default:
			if len(msg.String()) == 1 {
				m.input += msg.String()
			}
		}

	case PlansLoadedMsg:
		m.plans = m.render(planTable(msg.plans))

	case StatusLoadedMsg:
		m.status = msg.status
	}

	return m, nil
}

func (m *Welcome) render(markdown string) string {
	if m.renderer == nil {
		return markdown
	}

	out, err := m.renderer.Render(markdown)
	if err != nil {
		return markdown
	}

	return out
}

func (m *Welcome) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(logo))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render("text to image, one prompt at a time"))
	b.WriteString("\n")

	b.WriteString(infoStyle.Render(fmt.Sprintf("endpoint: %s | plan: %s", m.endpoint, m.plan)))
	b.WriteString("\n\n")

	if m.status != "" {
		b.WriteString(infoStyle.Render("upstream: " + m.status))
		b.WriteString("\n\n")
	}

	if m.plans != "" {
		b.WriteString(m.plans)
		b.WriteString("\n")
	}

	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(colorWhite).Render("commands:"))
	b.WriteString("\n\n")

	for _, cmd := range m.commands {
		line := fmt.Sprintf("  %s %s",
			commandStyle.Render(cmd.Name),
			commandDescStyle.Render("- "+cmd.Description),
		)
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(promptStyle.Render("> ") + inputStyle.Render(m.input+"_"))
	b.WriteString("\n")

	b.WriteString(helpStyle.Render("type a command and press enter. press ctrl+c to quit."))

	return b.String()
}

func (m *Welcome) executeCommand(client *GatewayClient) tea.Cmd {
	cmd := strings.TrimSpace(m.input)

	switch cmd {
	case "quit":
		return tea.Quit

	case "plans":
		return client.PlansCmd()

	case "status":
		return client.StatusCmd()

	case "generate":
		return func() tea.Msg {
			return EnterGeneratorMsg{}
		}

	case "":
		return nil

	default:
		return func() tea.Msg {
			return ErrorMsg{err: fmt.Errorf("unknown command: %s", cmd)}
		}
	}
}
