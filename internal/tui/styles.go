package tui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	colorWhite     = lipgloss.Color("#FFFFFF")
	colorLightGray = lipgloss.Color("#CCCCCC")
	colorGray      = lipgloss.Color("#888888")
	colorDarkGray  = lipgloss.Color("#444444")
	colorTeal      = lipgloss.Color("#2ec4b6")
	colorRed       = lipgloss.Color("#e63946")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorTeal).
			MarginTop(1).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(colorLightGray).
			MarginBottom(1)

	commandStyle = lipgloss.NewStyle().
			Foreground(colorWhite).
			Bold(true)

	commandDescStyle = lipgloss.NewStyle().
				Foreground(colorGray).
				PaddingLeft(1)

	inputStyle = lipgloss.NewStyle().
			Foreground(colorWhite).
			Bold(true)

	promptStyle = lipgloss.NewStyle().
			Foreground(colorLightGray)

	boxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(colorGray).
			Padding(0, 1)

	infoStyle = lipgloss.NewStyle().
			Foreground(colorGray).
			Italic(true)

	successStyle = lipgloss.NewStyle().
			Foreground(colorTeal).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorRed).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(colorDarkGray).
			Italic(true).
			MarginTop(1)
)

const logo = `
  ██████╗ ██╗██╗  ██╗███████╗██╗      ██████╗  █████╗ ████████╗███████╗
  ██╔══██╗██║╚██╗██╔╝██╔════╝██║     ██╔════╝ ██╔══██╗╚══██╔══╝██╔════╝
  ██████╔╝██║ ╚███╔╝ █████╗  ██║     ██║  ███╗███████║   ██║   █████╗
  ██╔═══╝ ██║ ██╔██╗ ██╔══╝  ██║     ██║   ██║██╔══██║   ██║   ██╔══╝
  ██║     ██║██╔╝ ██╗███████╗███████╗╚██████╔╝██║  ██║   ██║   ███████╗
  ╚═╝     ╚═╝╚═╝  ╚═╝╚══════╝╚══════╝ ╚═════╝ ╚═╝  ╚═╝   ╚═╝   ╚══════╝
`
