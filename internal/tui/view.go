package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"vcdbw/internal/model"
	"vcdbw/internal/report"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	selectedItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("57"))

	unselectedItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("255"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	adviceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("208")) // Orange

	busyBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("81")) // Sky Blue/Cyan
)

// barWidth is the width of the utilization bar in the tile list.
const barWidth = 20

// utilizationBar draws a fixed-width bar for a ratio in [0, 1].
func utilizationBar(ratio float64) string {
	filled := int(ratio*barWidth + 0.5)
	if filled < 0 {
		filled = 0
	}
	if filled > barWidth {
		filled = barWidth
	}
	return busyBarStyle.Render(strings.Repeat("█", filled)) + dimStyle.Render(strings.Repeat("░", barWidth-filled))
}

func (m AppModel) View() string {
	if m.Loading {
		return fmt.Sprintf("\n  Analyzing %s... please wait.\n", m.Path)
	}
	if m.Err != nil {
		return fmt.Sprintf("\n  Error: %v\n\n  Press q to quit.\n", m.Err)
	}
	if m.ShowHelp {
		return m.renderHelpDialog()
	}

	width := m.WindowSize.Width
	height := m.WindowSize.Height

	netWidth := width - 6
	if netWidth < 40 {
		netWidth = 40
	}
	leftWidth := netWidth / 2
	rightWidth := netWidth - leftWidth

	boxHeight := height - 6
	if boxHeight < 6 {
		boxHeight = 6
	}
	interiorHeight := boxHeight - 2

	borderColor := lipgloss.Color("63")
	activeColor := lipgloss.Color("205")

	// LEFT PANEL: tile list
	var leftView strings.Builder
	leftView.WriteString(titleStyle.Render("Tiles"))
	leftView.WriteString("\n\n")

	tiles := m.Report.Tiles
	visibleItems := interiorHeight - 2
	if visibleItems < 1 {
		visibleItems = 1
	}
	startIdx := 0
	if m.SelectedIdx >= visibleItems {
		startIdx = m.SelectedIdx - visibleItems + 1
	}
	endIdx := startIdx + visibleItems
	if endIdx > len(tiles) {
		endIdx = len(tiles)
	}

	if len(tiles) == 0 {
		leftView.WriteString(dimStyle.Render("No tiles detected."))
	}
	for i := startIdx; i < endIdx; i++ {
		t := tiles[i]
		label := fmt.Sprintf("%s tile%-3d %7s ", model.TileIcon(t.Utilization), i+1, report.Percent(t.Utilization))
		if i == m.SelectedIdx {
			leftView.WriteString(selectedItemStyle.Render(label))
		} else {
			leftView.WriteString(unselectedItemStyle.Render(label))
		}
		leftView.WriteString(utilizationBar(t.Utilization))
		if i < endIdx-1 {
			leftView.WriteString("\n")
		}
	}

	left := lipgloss.NewStyle().
		Width(leftWidth).
		Height(interiorHeight).
		Border(lipgloss.NormalBorder()).
		BorderForeground(activeColor).
		Render(leftView.String())

	right := lipgloss.NewStyle().
		Width(rightWidth).
		Height(interiorHeight).
		Border(lipgloss.NormalBorder()).
		BorderForeground(borderColor).
		Render(m.DetailsViewport.View())

	help := "↑/↓: Select Tile • PgUp/PgDn: Scroll Details • /: Jump to Tile • ?: Help • q: Quit"
	footer := "\n" + dimStyle.Render(help)
	if m.InputMode {
		footer = fmt.Sprintf("\nJump to tile: %s", m.InputBuffer.View())
	} else if m.InputErr != "" {
		footer = "\n" + adviceStyle.Render(m.InputErr)
	}

	header := titleStyle.Render("vcdbw "+model.Version) + " " + dimStyle.Render(m.Path)
	return header + "\n" + lipgloss.JoinHorizontal(lipgloss.Top, left, right) + footer
}

// detailsContent renders the statistics of the selected tile and of the
// whole trace.
func (m AppModel) detailsContent() string {
	var sb strings.Builder
	rep := m.Report

	for _, w := range rep.Warnings {
		sb.WriteString(adviceStyle.Render(model.IconWarning+" "+w) + "\n\n")
	}

	if m.SelectedIdx < len(rep.Tiles) {
		t := rep.Tiles[m.SelectedIdx]
		sb.WriteString(titleStyle.Render(fmt.Sprintf("Tile %d", m.SelectedIdx+1)) + "\n\n")
		fmt.Fprintf(&sb, "mem usage:   %s\n", report.Percent(t.Utilization))
		fmt.Fprintf(&sb, "up time:     %d\n", t.UpTime)
		fmt.Fprintf(&sb, "down time:   %d\n", t.DownTime())
		fmt.Fprintf(&sb, "start time:  %d\n", t.StartTime)
		fmt.Fprintf(&sb, "end time:    %d\n", t.EndTime)
		fmt.Fprintf(&sb, "total time:  %d\n", t.TotalTime)
		fmt.Fprintf(&sb, "num values:  %d\n", t.Values)

		gaps := rep.Gaps()
		if m.SelectedIdx > 0 {
			fmt.Fprintf(&sb, "gap before:  %d\n", gaps[m.SelectedIdx-1])
		}
		if m.SelectedIdx < len(gaps) {
			fmt.Fprintf(&sb, "gap after:   %d\n", gaps[m.SelectedIdx])
		}
	}

	sb.WriteString("\n" + titleStyle.Render("Overall") + "\n\n")
	fmt.Fprintf(&sb, "tiles:        %d (expected %d)\n", len(rep.Tiles), rep.Expected)
	fmt.Fprintf(&sb, "active tiles: %s\n", report.Percent(rep.ActiveUtilization))
	fmt.Fprintf(&sb, "with gaps:    %s\n", report.Percent(rep.SpanUtilization))
	fmt.Fprintf(&sb, "gap threshold: %d\n", m.Config.GapThreshold)
	return sb.String()
}

const helpText = `vcdbw tile browser

Tiles are bursts of activity of the tracked signal separated by idle
gaps longer than the gap threshold. Each tile's utilization is the
time the signal was asserted divided by the tile duration.

Keys
  ↑/k, ↓/j     select previous / next tile
  g, G         first / last tile
  PgUp, PgDn   scroll the details panel
  /            jump to a tile by number
  ?, Esc       close this help
  q            quit`

func (m AppModel) renderHelpDialog() string {
	w, h := m.WindowSize.Width, m.WindowSize.Height
	if w < 20 || h < 10 {
		return "Window too small"
	}

	helpWidth := w * 80 / 100
	if helpWidth < 40 {
		helpWidth = 40
	}
	if helpWidth > w-4 {
		helpWidth = w - 4
	}

	dialog := lipgloss.NewStyle().
		Width(helpWidth).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Padding(0, 1).
		Render(helpText)

	return lipgloss.Place(w, h,
		lipgloss.Center, lipgloss.Center,
		dialog,
	)
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, InitAnalysisCmd(m.Path, m.Config))
}
