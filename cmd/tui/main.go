package main

import (
	"fmt"
	"os"

	"codeberg.org/pixelgate/server/internal/config"
	"codeberg.org/pixelgate/server/internal/tui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"
)

func main() {
	flags := config.ParseTUIFlags(os.Args[1:])

	app := tui.NewApp(flags)
	if width, height, err := term.GetSize(os.Stdout.Fd()); err == nil {
		app.SetSize(width, height)
	}

	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Printf("error running pixelgate: %v\n", err)
		os.Exit(1)
	}
}
