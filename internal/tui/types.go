package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/glamour"

	"codeberg.org/pixelgate/server/internal/config"
	"codeberg.org/pixelgate/server/internal/gateway"
	"codeberg.org/pixelgate/server/internal/plans"
)

// represents the current state of the TUI
type AppState int

const (
	StateWelcome AppState = iota
	StateGenerator
)

// main TUI application model
type Model struct {
	state     AppState
	flags     config.Flags
	client    *GatewayClient
	width     int
	height    int
	err       error
	welcome   *Welcome
	generator *GeneratorModel
}

// sent when an error occurs
type ErrorMsg struct {
	err error
}

// sent to transition to the generator state
type EnterGeneratorMsg struct{}

// welcome screen model
type Welcome struct {
	endpoint string
	plan     string
	input    string
	commands []Command
	plans    string // rendered plan table, empty until fetched
	status   string
	renderer *glamour.TermRenderer
}

// represents an available TUI command
type Command struct {
	Name        string
	Description string
}

// sent when the plan table has been fetched
type PlansLoadedMsg struct {
	plans []plans.Plan
}

// sent when the upstream status probe completes
type StatusLoadedMsg struct {
	status string
}

// prompt-driven generation screen
type GeneratorModel struct {
	input      textinput.Model
	spinner    spinner.Model
	client     *GatewayClient
	outDir     string
	width      int
	sizeIndex  int
	isFetching bool
	lastPrompt string
	result     *gateway.Result
	savedPath  string
	err        error
}

// sent when a generation succeeds and the image is written to disk
type GenerateResultMsg struct {
	result    *gateway.Result
	savedPath string
}

// sent when a generation fails
type GenerateErrorMsg struct {
	err error
}
