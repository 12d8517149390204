package observ

import (
	"strings"
	"testing"
)

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	done := tm.Track("generate")
	done("seed 1")
	idx := tm.Begin("write")
	tm.End(idx, "")
	tm.End(42, "ignored")

	report := tm.Report()
	if len(report.Phases) != 2 {
		t.Fatalf("expected 2 phases, got %d", len(report.Phases))
	}
	if report.Phases[0].Name != "generate" || report.Phases[0].Note != "seed 1" {
		t.Fatalf("unexpected first phase %+v", report.Phases[0])
	}
	if report.TotalMS < report.Phases[0].DurationMS {
		t.Fatalf("total smaller than a phase")
	}
}

func TestTimerSummary(t *testing.T) {
	tm := NewTimer()
	tm.Track("render")("")
	s := tm.Summary()
	if !strings.HasPrefix(s, "timings:\n") || !strings.Contains(s, "render") || !strings.Contains(s, "total") {
		t.Fatalf("unexpected summary:\n%s", s)
	}
	if (&Timer{}).Report().Phases != nil {
		t.Fatalf("empty timer should report nothing")
	}
}
