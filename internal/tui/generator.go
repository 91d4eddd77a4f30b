package tui

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// returns a new generator screen
func NewGenerator(client *GatewayClient, outDir string) *GeneratorModel {
	ti := textinput.New()
	ti.Placeholder = "describe the image you want..."
	ti.Focus()
	ti.CharLimit = 1500
	ti.Width = 80
	ti.Prompt = "> "
	ti.PromptStyle = lipgloss.NewStyle().Foreground(colorLightGray)
	ti.TextStyle = lipgloss.NewStyle().Foreground(colorWhite)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(colorTeal)

	return &GeneratorModel{
		input:   ti,
		spinner: s,
		client:  client,
		outDir:  outDir,
	}
}

func (m *GeneratorModel) Init() tea.Cmd {
	return textinput.Blink
}

// the currently selected square resolution
func (m *GeneratorModel) Size() int {
	return sizes[m.sizeIndex]
}

func (m *GeneratorModel) Update(msg tea.Msg) (*GeneratorModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			prompt := strings.TrimSpace(m.input.Value())
			if prompt == "" || m.isFetching {
				return m, nil
			}

			m.isFetching = true
			m.lastPrompt = prompt
			m.err = nil
			m.input.SetValue("")

			return m, tea.Batch(m.spinner.Tick, m.client.GenerateCmd(prompt, m.Size(), m.outDir))

		case "ctrl+r":
			m.sizeIndex = (m.sizeIndex + 1) % len(sizes)
			return m, nil

		case "ctrl+l":
			m.input.SetValue("")
			m.result = nil
			m.savedPath = ""
			m.err = nil
			return m, nil
		}

	case GenerateResultMsg:
		m.isFetching = false
		m.result = msg.result
		m.savedPath = msg.savedPath
		m.input.Focus()
		return m, nil

	case GenerateErrorMsg:
		m.isFetching = false
		m.result = nil
		m.savedPath = ""
		m.err = msg.err
		m.input.Focus()
		return m, nil

	case spinner.TickMsg:
		if !m.isFetching {
			return m, nil
		}

		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(20, msg.Width-10)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *GeneratorModel) View() string {
	var b strings.Builder

	header := lipgloss.NewStyle().Bold(true).Foreground(colorWhite).Render("GENERATE")
	size := infoStyle.Render(fmt.Sprintf("size: %dx%d", m.Size(), m.Size()))
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Left, header, "  ", size))
	b.WriteString("\n\n")

	width := max(40, m.width-4)
	b.WriteString(boxStyle.Width(width).Render(m.outputView()))
	b.WriteString("\n\n")

	b.WriteString(boxStyle.Width(width).Render(m.input.View()))
	b.WriteString("\n")

	if m.isFetching {
		b.WriteString(m.spinner.View() + infoStyle.Render(" generating..."))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("[Enter: Generate] [Ctrl+R: Size] [Ctrl+L: Clear] [Ctrl+C: Back]"))

	return b.String()
}

func (m *GeneratorModel) outputView() string {
	switch {
	case m.err != nil:
		var apiErr *APIError
		if stderrors.As(m.err, &apiErr) {
			return errorStyle.Render(string(apiErr.Response.Error)) + "\n" + apiErr.Response.Message
		}
		return errorStyle.Render("error") + "\n" + m.err.Error()

	case m.result != nil:
		return successStyle.Render("saved "+m.savedPath) + "\n" +
			infoStyle.Render(m.lastPrompt) + "\n" +
			formatResult(m.result)

	default:
		return infoStyle.Render("ready! type a prompt and press enter.")
	}
}
