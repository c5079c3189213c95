package trace

import (
	"fmt"
	"io"

	"vcdbw/internal/config"
	"vcdbw/internal/duty"
	"vcdbw/internal/model"
	"vcdbw/internal/tile"
	"vcdbw/internal/vcd"
)

// Analyzer runs the summary and tile pipelines over dump files.
type Analyzer struct {
	cfg config.Config

	// Progress receives verbose progress lines when non-nil.
	Progress io.Writer
}

// NewAnalyzer creates an analyzer for cfg.
func NewAnalyzer(cfg config.Config) *Analyzer {
	return &Analyzer{cfg: cfg}
}

// Config returns the configuration the analyzer runs with.
func (a *Analyzer) Config() config.Config {
	return a.cfg
}

func (a *Analyzer) logf(format string, args ...any) {
	if a.Progress != nil {
		fmt.Fprintf(a.Progress, format+"\n", args...)
	}
}

func (a *Analyzer) open(path string) (*vcd.Parser, io.ReadCloser, error) {
	if err := a.cfg.Validate(); err != nil {
		return nil, nil, err
	}
	sig, err := ResolveSignal(a.cfg, path)
	if err != nil {
		return nil, nil, err
	}
	a.logf("Parsing %s, tracking signal %s", path, sig.Name())

	rc, err := OpenDump(path)
	if err != nil {
		return nil, nil, err
	}
	return vcd.NewParser(sig), rc, nil
}

// Summary computes the utilization of the whole trace (or of the configured
// window).
func (a *Analyzer) Summary(path string) (model.DutyCycleResult, error) {
	parser, rc, err := a.open(path)
	if err != nil {
		return model.DutyCycleResult{}, err
	}
	defer rc.Close()

	opts := []duty.Option{duty.WithTailCorrection(a.cfg.TailCorrection)}
	if !a.cfg.Window.IsZero() {
		a.logf("Restricting to window %s", a.cfg.Window)
		opts = append(opts, duty.WithWindow(a.cfg.Window))
	}

	res, err := duty.Analyze(parser.Parse(rc), opts...)
	if err != nil {
		return model.DutyCycleResult{}, err
	}
	a.logf("Read %d value changes between %d and %d", res.Values, res.StartTime, res.EndTime)
	return res, nil
}

// Tiles segments the trace into tiles and computes per-tile utilization.
func (a *Analyzer) Tiles(path string) (model.TileReport, error) {
	parser, rc, err := a.open(path)
	if err != nil {
		return model.TileReport{}, err
	}
	defer rc.Close()

	segments, err := tile.SplitSeq(parser.Parse(rc), a.cfg.GapThreshold)
	if err != nil {
		return model.TileReport{}, err
	}
	for _, seg := range segments {
		a.logf("Tile %d opened at %d with %d lines", seg.Index+1, seg.OpenedAt, len(seg.Lines))
	}

	return tile.Analyze(segments, a.cfg.ExpectedTiles, duty.WithTailCorrection(a.cfg.TailCorrection)), nil
}

// ReadDeclarations returns the $var declarations of the dump at path.
func ReadDeclarations(path string) ([]model.Declaration, error) {
	h, err := vcd.NewHeaderParser()
	if err != nil {
		return nil, err
	}
	rc, err := OpenDump(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return h.ReadDeclarations(rc)
}
