package duty

import (
	"errors"
	"math"
	"math/rand"
	"strings"
	"testing"

	"vcdbw/internal/config"
	"vcdbw/internal/model"
	"vcdbw/internal/vcd"
)

func parse(t *testing.T, dump string) []model.WaveformLine {
	t.Helper()
	lines, err := vcd.Collect(vcd.NewParser(nil).Parse(strings.NewReader(dump)))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return lines
}

const balancedDump = "$enddefinitions $end\n#0\n#100\nb1x!\n#250\nb0x!\n#300\n"

const openEndedDump = "$enddefinitions $end\n#0\n#100\nb1x!\n#250\n#300\n"

func TestBalancedTrace(t *testing.T) {
	r := AnalyzeLines(parse(t, balancedDump))

	if r.StartTime != 0 || r.EndTime != 300 {
		t.Errorf("got start %d end %d, want 0 and 300", r.StartTime, r.EndTime)
	}
	if r.UpTime != 150 {
		t.Errorf("up time: got %d, want 150", r.UpTime)
	}
	if r.TotalTime != 300 || r.DownTime() != 150 {
		t.Errorf("got total %d down %d", r.TotalTime, r.DownTime())
	}
	if r.Utilization != 0.5 {
		t.Errorf("utilization: got %v, want 0.5", r.Utilization)
	}
	if r.Values != 2 {
		t.Errorf("values: got %d, want 2", r.Values)
	}
}

func TestOpenIntervalAtEnd(t *testing.T) {
	lines := parse(t, openEndedDump)

	corrected := AnalyzeLines(lines)
	if corrected.UpTime != 200 {
		t.Errorf("with tail correction: got up %d, want 200", corrected.UpTime)
	}
	if math.Abs(corrected.Utilization-2.0/3.0) > 1e-9 {
		t.Errorf("with tail correction: got utilization %v, want 0.667", corrected.Utilization)
	}

	raw := AnalyzeLines(lines, WithTailCorrection(false))
	if raw.UpTime != -100 {
		t.Errorf("without tail correction: got up %d, want -100", raw.UpTime)
	}
}

func TestNoValueChanges(t *testing.T) {
	r := AnalyzeLines(parse(t, "$enddefinitions $end\n#0\n#10\n#5000\n"))
	if r.UpTime != 0 || r.Utilization != 0 {
		t.Fatalf("got up %d utilization %v, want 0", r.UpTime, r.Utilization)
	}
	if r.TotalTime != 5000 {
		t.Errorf("total: got %d, want 5000", r.TotalTime)
	}
}

func TestZeroDuration(t *testing.T) {
	r := AnalyzeLines([]model.WaveformLine{model.Timestamp(40), model.ValueChange('1', "b1 !")})
	if r.TotalTime != 0 || r.Utilization != 0 {
		t.Fatalf("got total %d utilization %v, want 0", r.TotalTime, r.Utilization)
	}
}

func TestStartTakenFromFirstTimestamp(t *testing.T) {
	lines := []model.WaveformLine{
		model.Timestamp(1000),
		model.ValueChange('1', ""),
		model.Timestamp(1100),
		model.ValueChange('0', ""),
		model.Timestamp(1400),
	}
	r := AnalyzeLines(lines)
	if r.StartTime != 1000 || r.EndTime != 1400 || r.UpTime != 100 {
		t.Fatalf("got %+v", r)
	}
}

func TestRepeatedLevelsAreNotEdges(t *testing.T) {
	lines := []model.WaveformLine{
		model.Timestamp(0),
		model.ValueChange('0', ""),
		model.Timestamp(10),
		model.ValueChange('1', ""),
		model.Timestamp(20),
		model.ValueChange('1', ""),
		model.Timestamp(30),
		model.ValueChange('0', ""),
		model.Timestamp(40),
		model.ValueChange('0', ""),
		model.Timestamp(100),
	}
	r := AnalyzeLines(lines)
	if r.UpTime != 20 {
		t.Fatalf("up time: got %d, want 20", r.UpTime)
	}
	if r.Values != 5 {
		t.Errorf("values: got %d, want 5", r.Values)
	}
}

func TestWithStartSeed(t *testing.T) {
	// A tile opens on the rising edge, before its first timestamp.
	lines := []model.WaveformLine{
		model.ValueChange('1', ""),
		model.Timestamp(600),
		model.ValueChange('0', ""),
		model.Timestamp(1000),
	}
	r := AnalyzeLines(lines, WithStart(500))
	if r.StartTime != 500 || r.EndTime != 1000 {
		t.Fatalf("got start %d end %d", r.StartTime, r.EndTime)
	}
	if r.UpTime != 100 {
		t.Errorf("up time: got %d, want 100", r.UpTime)
	}

	empty := AnalyzeLines(nil, WithStart(77))
	if empty.StartTime != 77 || empty.EndTime != 77 || empty.TotalTime != 0 {
		t.Errorf("empty seeded result: %+v", empty)
	}
}

func TestWindow(t *testing.T) {
	lines := []model.WaveformLine{
		model.Timestamp(0),
		model.ValueChange('1', ""),
		model.Timestamp(50),
		model.ValueChange('0', ""),
		model.Timestamp(80),
		model.ValueChange('1', ""),
		model.Timestamp(100), // window start, signal already high
		model.Timestamp(150),
		model.ValueChange('0', ""),
		model.Timestamp(180),
		model.ValueChange('1', ""),
		model.Timestamp(250), // past the window end
		model.ValueChange('0', ""),
		model.Timestamp(400),
	}
	r := AnalyzeLines(lines, WithWindow(config.Window{Start: 100, End: 200}))
	if r.StartTime != 100 || r.EndTime != 200 {
		t.Fatalf("got start %d end %d, want 100 and 200", r.StartTime, r.EndTime)
	}
	// [100,150] plus the open interval [180,200].
	if r.UpTime != 70 {
		t.Errorf("up time: got %d, want 70", r.UpTime)
	}
	if r.Values != 2 {
		t.Errorf("values: got %d, want 2", r.Values)
	}
}

func TestAnalyzePropagatesErrors(t *testing.T) {
	_, err := Analyze(vcd.NewParser(nil).Parse(strings.NewReader("#0\nb1 !\n")))
	if !errors.Is(err, vcd.ErrMalformedHeader) {
		t.Fatalf("got %v, want ErrMalformedHeader", err)
	}

	r, err := Analyze(vcd.NewParser(nil).Parse(strings.NewReader(balancedDump)))
	if err != nil {
		t.Fatal(err)
	}
	if r.UpTime != 150 {
		t.Errorf("up time: got %d, want 150", r.UpTime)
	}
}

func TestBalancedTracesStayBounded(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 200; trial++ {
		var lines []model.WaveformLine
		now := int64(0)
		lines = append(lines, model.Timestamp(now))
		high := false
		for i := 0; i < 40; i++ {
			now += rng.Int63n(1000) + 1
			lines = append(lines, model.Timestamp(now))
			if rng.Intn(2) == 0 {
				continue
			}
			high = !high
			bit := byte('0')
			if high {
				bit = '1'
			}
			lines = append(lines, model.ValueChange(bit, ""))
		}
		if high {
			now += 5
			lines = append(lines, model.Timestamp(now), model.ValueChange('0', ""))
		}
		now += 5
		lines = append(lines, model.Timestamp(now))

		r := AnalyzeLines(lines)
		if r.UpTime < 0 || r.UpTime > r.TotalTime {
			t.Fatalf("trial %d: up %d outside [0, %d]", trial, r.UpTime, r.TotalTime)
		}
		if r.Utilization < 0 || r.Utilization > 1 {
			t.Fatalf("trial %d: utilization %v", trial, r.Utilization)
		}
	}
}
