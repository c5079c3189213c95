package trace

import (
	"bytes"
	"compress/gzip"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"vcdbw/internal/config"
	"vcdbw/internal/vcd"
)

const header = `$timescale 1ps $end
$scope module tb $end
$var wire 1 ! mem_req $end
$var wire 4 % other_req [3:0] $end
$upscope $end
$enddefinitions $end
`

// Two tiles on mem_req; other_req stays busy in between.
const body = `#0
b0 !
b0000 %
#1000
b1 !
b1111 %
#1300
b0 !
#1500
#2001500
b1 !
#2001600
b0 !
b0000 %
#2001900
`

func writeDump(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func writeGzipDump(t *testing.T, content string) string {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return writeDump(t, "dump.vcd.gz", buf.String())
}

func TestSummary(t *testing.T) {
	path := writeDump(t, "dump.vcd", header+body)
	res, err := NewAnalyzer(config.Default()).Summary(path)
	if err != nil {
		t.Fatal(err)
	}
	if res.StartTime != 0 || res.EndTime != 2001900 {
		t.Errorf("got start %d end %d", res.StartTime, res.EndTime)
	}
	if res.UpTime != 400 {
		t.Errorf("up time: got %d, want 400", res.UpTime)
	}
	if res.Values != 5 {
		t.Errorf("values: got %d, want 5", res.Values)
	}
}

func TestSummaryWindow(t *testing.T) {
	path := writeDump(t, "dump.vcd", header+body)
	cfg := config.Default()
	cfg.Window = config.Window{Start: 1000, End: 1500}

	res, err := NewAnalyzer(cfg).Summary(path)
	if err != nil {
		t.Fatal(err)
	}
	if res.StartTime != 1000 || res.EndTime != 1500 || res.UpTime != 300 {
		t.Fatalf("got %+v", res)
	}
}

func TestTiles(t *testing.T) {
	path := writeDump(t, "dump.vcd", header+body)
	cfg := config.Default()
	cfg.ExpectedTiles = 2

	rep, err := NewAnalyzer(cfg).Tiles(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(rep.Tiles) != 2 {
		t.Fatalf("got %d tiles, want 2", len(rep.Tiles))
	}
	if rep.UpTime != 400 || rep.ActiveTime != 900 {
		t.Errorf("got up %d active %d", rep.UpTime, rep.ActiveTime)
	}
	if len(rep.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", rep.Warnings)
	}
}

func TestSignalByName(t *testing.T) {
	path := writeDump(t, "dump.vcd", header+body)
	cfg := config.Default()
	cfg.SignalName = "other_req"

	sig, err := ResolveSignal(cfg, path)
	if err != nil {
		t.Fatal(err)
	}
	if sig.Name() != "%" {
		t.Errorf("resolved to %q, want %%", sig.Name())
	}

	res, err := NewAnalyzer(cfg).Summary(path)
	if err != nil {
		t.Fatal(err)
	}
	// other_req is high from 1000 to 2001600.
	if res.UpTime != 2000600 {
		t.Errorf("up time: got %d, want 2000600", res.UpTime)
	}

	cfg.SignalName = "missing"
	if _, err := NewAnalyzer(cfg).Summary(path); !errors.Is(err, vcd.ErrUnknownSignal) {
		t.Errorf("got %v, want ErrUnknownSignal", err)
	}
}

func TestGzipDump(t *testing.T) {
	path := writeGzipDump(t, header+body)
	res, err := NewAnalyzer(config.Default()).Summary(path)
	if err != nil {
		t.Fatal(err)
	}
	if res.UpTime != 400 {
		t.Errorf("up time: got %d, want 400", res.UpTime)
	}

	decls, err := ReadDeclarations(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(decls) != 2 {
		t.Errorf("got %d declarations, want 2", len(decls))
	}
}

func TestErrors(t *testing.T) {
	a := NewAnalyzer(config.Default())

	if _, err := a.Summary(filepath.Join(t.TempDir(), "missing.vcd")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file: got %v", err)
	}

	truncated := writeDump(t, "truncated.vcd", "$var wire 1 ! mem_req $end\n")
	if _, err := a.Tiles(truncated); !errors.Is(err, vcd.ErrMalformedHeader) {
		t.Errorf("truncated: got %v, want ErrMalformedHeader", err)
	}

	bad := writeDump(t, "bad.vcd", header+"#0\n#1o0\n")
	if _, err := a.Summary(bad); !errors.Is(err, vcd.ErrUnparsableTimestamp) {
		t.Errorf("bad timestamp: got %v, want ErrUnparsableTimestamp", err)
	}

	cfg := config.Default()
	cfg.ExpectedTiles = 0
	if _, err := NewAnalyzer(cfg).Tiles(bad); !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("invalid config: got %v, want ErrInvalidConfig", err)
	}
}

func TestProgress(t *testing.T) {
	path := writeDump(t, "dump.vcd", header+body)
	var buf bytes.Buffer
	a := NewAnalyzer(config.Default())
	a.Progress = &buf
	if _, err := a.Tiles(path); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "Tile 2 opened at 2001500") {
		t.Errorf("progress output:\n%s", buf.String())
	}
}
