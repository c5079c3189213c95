package tui

import (
	"vcdbw/internal/config"
	"vcdbw/internal/model"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// AppModel holds the TUI state.
type AppModel struct {
	// Data
	Path    string
	Config  config.Config
	Report  model.TileReport
	Loading bool
	Err     error

	// UI State
	SelectedIdx int
	WindowSize  tea.WindowSizeMsg
	ShowHelp    bool

	// Jump-to-tile input
	InputMode   bool
	InputBuffer textinput.Model
	InputErr    string

	// Components
	DetailsViewport viewport.Model
}

// InitialModel returns the initial state for browsing the tiles of path.
func InitialModel(path string, cfg config.Config) AppModel {
	ti := textinput.New()
	ti.Placeholder = "Tile number..."
	ti.CharLimit = 6
	ti.Width = 10

	return AppModel{
		Path:            path,
		Config:          cfg,
		Loading:         true,
		InputBuffer:     ti,
		DetailsViewport: viewport.New(40, 10),
	}
}
