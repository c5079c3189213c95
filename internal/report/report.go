package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"vcdbw/internal/model"
)

// Reporter renders analysis results as text. Styling follows the terminal
// capabilities of the writer, so output to files and pipes stays plain.
type Reporter struct {
	w       io.Writer
	Verbose bool

	titleStyle   lipgloss.Style
	labelStyle   lipgloss.Style
	valueStyle   lipgloss.Style
	warningStyle lipgloss.Style
	dimStyle     lipgloss.Style
}

// New creates a Reporter writing to w.
func New(w io.Writer) *Reporter {
	r := lipgloss.NewRenderer(w)
	return &Reporter{
		w: w,
		titleStyle: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")),
		labelStyle:   r.NewStyle().Foreground(lipgloss.Color("81")), // Sky Blue/Cyan
		valueStyle:   r.NewStyle().Bold(true),
		warningStyle: r.NewStyle().Foreground(lipgloss.Color("208")), // Orange
		dimStyle:     r.NewStyle().Foreground(lipgloss.Color("240")), // Grey
	}
}

// Percent formats a ratio as a percentage with two decimals.
func Percent(ratio float64) string {
	return fmt.Sprintf("%.2f%%", ratio*100)
}

func (rp *Reporter) line(sb *strings.Builder, label string, value any) {
	sb.WriteString(rp.labelStyle.Render(label+":") + " " + rp.valueStyle.Render(fmt.Sprint(value)) + "\n")
}

func (rp *Reporter) flush(sb *strings.Builder) error {
	_, err := io.WriteString(rp.w, sb.String())
	return err
}

// Summary prints the statistics of a whole-trace analysis.
func (rp *Reporter) Summary(path string, r model.DutyCycleResult) error {
	var sb strings.Builder
	if path != "" {
		sb.WriteString(rp.titleStyle.Render(" "+path+" ") + "\n\n")
	}
	rp.line(&sb, "up time", r.UpTime)
	rp.line(&sb, "down time", r.DownTime())
	rp.line(&sb, "start time", r.StartTime)
	rp.line(&sb, "end time", r.EndTime)
	rp.line(&sb, "total time", r.TotalTime)
	rp.line(&sb, "mem usage", fmt.Sprintf("%.4f (%s)", r.Utilization, Percent(r.Utilization)))
	rp.line(&sb, "num values", r.Values)
	return rp.flush(&sb)
}

// Tiles prints the per-tile and aggregate utilization of a segmented trace.
// Warnings come first so a count mismatch is not missed.
func (rp *Reporter) Tiles(path string, r model.TileReport) error {
	var sb strings.Builder
	for _, w := range r.Warnings {
		sb.WriteString(rp.warningStyle.Render(model.IconWarning+" Warning: "+w) + "\n")
	}
	if path != "" {
		sb.WriteString(rp.titleStyle.Render(" "+path+" ") + "\n")
	}

	sb.WriteString("--- Summary --- \n")
	gaps := r.Gaps()
	for i, t := range r.Tiles {
		fmt.Fprintf(&sb, "%s %s %s",
			model.TileIcon(t.Utilization),
			rp.labelStyle.Render(fmt.Sprintf("tile%d mem usage:", i+1)),
			rp.valueStyle.Render(Percent(t.Utilization)))
		sb.WriteString(rp.dimStyle.Render(fmt.Sprintf("  up %d / %d  [%d, %d]", t.UpTime, t.TotalTime, t.StartTime, t.EndTime)))
		sb.WriteString("\n")
		if rp.Verbose && i < len(gaps) {
			sb.WriteString(rp.dimStyle.Render(fmt.Sprintf("%s idle gap %d", model.IconGap, gaps[i])) + "\n")
		}
	}

	if r.ActiveTime > 0 {
		rp.line(&sb, "Overall mem usage (active tiles)", Percent(r.ActiveUtilization))
	}
	if r.SpanTime > 0 {
		rp.line(&sb, "Overall mem usage (with gaps)", " "+Percent(r.SpanUtilization))
	}
	if rp.Verbose {
		rp.line(&sb, "total up time", r.UpTime)
		rp.line(&sb, "active time", r.ActiveTime)
		rp.line(&sb, "span time", r.SpanTime)
	}
	return rp.flush(&sb)
}

// Declarations lists the signals declared in a dump header, marking the
// tracked one.
func (rp *Reporter) Declarations(path string, decls []model.Declaration, tracked string) error {
	var sb strings.Builder
	if path != "" {
		sb.WriteString(rp.titleStyle.Render(" "+path+" ") + "\n\n")
	}
	for _, d := range decls {
		marker := model.IconOK
		if d.ID == tracked {
			marker = "*"
		}
		name := d.Reference
		if d.Range != "" {
			name += " " + d.Range
		}
		fmt.Fprintf(&sb, "%s %-6s %s %s\n", marker,
			d.ID,
			rp.labelStyle.Render(fmt.Sprintf("%-32s", name)),
			rp.dimStyle.Render(fmt.Sprintf("%s/%d", d.Type, d.Size)))
	}
	fmt.Fprintf(&sb, "%d signals\n", len(decls))
	return rp.flush(&sb)
}

// JSON writes v as indented JSON.
func JSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
