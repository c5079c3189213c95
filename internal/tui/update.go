package tui

import (
	"fmt"
	"strconv"
	"strings"

	"vcdbw/internal/config"
	"vcdbw/internal/model"
	"vcdbw/internal/trace"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// MsgAnalysisReady indicates that the tile analysis has completed.
type MsgAnalysisReady model.TileReport

// MsgError indicates an error occurred.
type MsgError error

// Update handles events.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.WindowSize = msg
		m.DetailsViewport.Width = msg.Width / 2
		m.DetailsViewport.Height = msg.Height - 6 // minus title/footer/borders
		m.refreshDetails()
		return m, nil

	case MsgAnalysisReady:
		m.Loading = false
		m.Report = model.TileReport(msg)
		m.SelectedIdx = 0
		m.refreshDetails()
		return m, nil

	case MsgError:
		m.Err = msg
		m.Loading = false
		return m, nil

	case tea.KeyMsg:
		if m.InputMode {
			switch msg.Type {
			case tea.KeyEnter:
				m.InputMode = false
				m.InputBuffer.Blur()
				m.jumpToTile(m.InputBuffer.Value())
				return m, nil
			case tea.KeyEsc:
				m.InputMode = false
				m.InputBuffer.Blur()
				m.InputBuffer.SetValue("")
				return m, nil
			}
			m.InputBuffer, cmd = m.InputBuffer.Update(msg)
			return m, cmd
		}

		if m.ShowHelp {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "?", "esc":
				m.ShowHelp = false
			}
			return m, nil
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "up", "k":
			if m.SelectedIdx > 0 {
				m.SelectedIdx--
				m.refreshDetails()
			}
		case "down", "j":
			if m.SelectedIdx < len(m.Report.Tiles)-1 {
				m.SelectedIdx++
				m.refreshDetails()
			}
		case "home", "g":
			m.SelectedIdx = 0
			m.refreshDetails()
		case "end", "G":
			if n := len(m.Report.Tiles); n > 0 {
				m.SelectedIdx = n - 1
				m.refreshDetails()
			}
		case "pgup", "pgdown":
			m.DetailsViewport, cmd = m.DetailsViewport.Update(msg)
			return m, cmd
		case "/":
			m.InputMode = true
			m.InputErr = ""
			m.InputBuffer.Focus()
			m.InputBuffer.SetValue("")
			return m, textinput.Blink
		case "?":
			m.ShowHelp = true
		}
	}

	return m, cmd
}

// jumpToTile selects the 1-based tile number typed by the user.
func (m *AppModel) jumpToTile(input string) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || n < 1 || n > len(m.Report.Tiles) {
		m.InputErr = fmt.Sprintf("no tile %q (1-%d)", input, len(m.Report.Tiles))
		return
	}
	m.InputErr = ""
	m.SelectedIdx = n - 1
	m.refreshDetails()
}

// refreshDetails renders the selected tile into the details viewport.
func (m *AppModel) refreshDetails() {
	m.DetailsViewport.SetContent(m.detailsContent())
	m.DetailsViewport.GotoTop()
}

// InitAnalysisCmd runs the tile analysis in the background.
func InitAnalysisCmd(path string, cfg config.Config) tea.Cmd {
	return func() tea.Msg {
		rep, err := trace.NewAnalyzer(cfg).Tiles(path)
		if err != nil {
			return MsgError(err)
		}
		return MsgAnalysisReady(rep)
	}
}
