package observ

import (
	"strings"
	"testing"
	"time"
)

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	idx := tm.Begin("load")
	tm.End(idx, "2 files")
	tm.Add("file:a.yaml", 3*time.Millisecond, "cached")
	tm.End(99, "ignored")

	r := tm.Report()
	if len(r.Phases) != 2 {
		t.Fatalf("expected 2 phases, got %d", len(r.Phases))
	}
	if r.Phases[1].DurationMS != 3 || r.Phases[1].Note != "cached" {
		t.Fatalf("unexpected phase: %+v", r.Phases[1])
	}
	if r.TotalMS < 3 {
		t.Fatalf("total %v is smaller than a phase", r.TotalMS)
	}
	s := tm.Summary()
	if !strings.Contains(s, "file:a.yaml") || !strings.Contains(s, "// 2 files") {
		t.Fatalf("summary missing phases:\n%s", s)
	}
}

func TestEmptyTimer(t *testing.T) {
	if r := NewTimer().Report(); r.TotalMS != 0 || r.Phases != nil {
		t.Fatalf("empty timer report = %+v", r)
	}
}
