package driver

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"numlit/internal/diag"
	"numlit/internal/trace"
)

const passingScenario = `
name: ints
cases:
  - name: signed meet
    op: meet
    args: [IntAtLeastSigned(I8), IntAtLeastEitherSign(I16)]
    expect: IntAtLeastSigned(I16)
  - name: defaults
    op: defaults
    args: [IntAtLeastSigned(I32)]
    expect: I32 I64 I128
`

const failingScenario = `
name: broken
cases:
  - name: wrong
    op: check
    args: ["-5", "U8"]
    expect: ContentInRange
  - name: bad op
    op: widen
    args: []
    expect: x
`

func writeScenario(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

type recordingSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *recordingSink) OnEvent(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

func TestRunBatch(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir, "a.yaml", passingScenario)
	writeScenario(t, dir, "b.yml", failingScenario)
	writeScenario(t, dir, "notes.txt", "ignored")

	sink := &recordingSink{}
	res, err := RunBatch(context.Background(), []string{dir}, Options{Jobs: 2, MaxDiagnostics: 50, Progress: sink, Timings: true})
	if err != nil {
		t.Fatalf("RunBatch: %v", err)
	}
	if len(res.Files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(res.Files))
	}
	cases, failed := res.Totals()
	if cases != 4 || failed != 2 {
		t.Fatalf("cases=%d failed=%d", cases, failed)
	}
	if res.Files[0].Name != "ints" || res.Files[0].Failed() != 0 {
		t.Fatalf("unexpected first file: %+v", res.Files[0])
	}

	var codes []diag.Code
	for _, d := range res.Bag.Items() {
		codes = append(codes, d.Code)
	}
	want := []diag.Code{diag.ScnMismatch, diag.ScnInvalid, diag.ObsTimings}
	if len(codes) != len(want) {
		t.Fatalf("codes = %v, want %v", codes, want)
	}
	for i := range want {
		if codes[i] != want[i] {
			t.Fatalf("codes = %v, want %v", codes, want)
		}
	}
	mismatch := res.Bag.Items()[0]
	if !strings.HasSuffix(mismatch.Subject, "b.yml#wrong") || len(mismatch.Notes) == 0 {
		t.Fatalf("mismatch lacks subject or session notes: %+v", mismatch)
	}

	sink.mu.Lock()
	defer sink.mu.Unlock()
	var failedEvents int
	for _, ev := range sink.events {
		if ev.Status == StatusFailed {
			failedEvents++
		}
	}
	if failedEvents != 1 {
		t.Fatalf("expected one failed file event, got %d in %+v", failedEvents, sink.events)
	}
}

func TestRunBatchInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeScenario(t, dir, "bad.yaml", "name: x\ncases:\n  - name: a\n    opp: meet\n")
	res, err := RunBatch(context.Background(), []string{path}, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if res.Bag.Len() != 1 || res.Bag.Items()[0].Code != diag.ScnInvalid {
		t.Fatalf("expected one ScnInvalid, got %+v", res.Bag.Items())
	}
}

func TestRunBatchEmptyScenario(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir, "empty.yaml", "name: nothing\n")
	res, err := RunBatch(context.Background(), []string{dir}, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if res.Bag.Len() != 1 || res.Bag.Items()[0].Code != diag.ScnEmptyCases {
		t.Fatalf("expected ScnEmptyCases, got %+v", res.Bag.Items())
	}
}

func TestRunBatchUsesCache(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir, "a.yaml", passingScenario)
	writeScenario(t, dir, "b.yaml", failingScenario)
	cache, err := OpenDiskCache(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatal(err)
	}
	opts := Options{Cache: cache}
	first, err := RunBatch(context.Background(), []string{dir}, opts)
	if err != nil {
		t.Fatal(err)
	}
	second, err := RunBatch(context.Background(), []string{dir}, opts)
	if err != nil {
		t.Fatal(err)
	}
	for i := range second.Files {
		if first.Files[i].Cached || !second.Files[i].Cached {
			t.Fatalf("file %d: cached first=%v second=%v", i, first.Files[i].Cached, second.Files[i].Cached)
		}
	}
	if first.Bag.Len() != second.Bag.Len() {
		t.Fatalf("cached run lost diagnostics: %d vs %d", first.Bag.Len(), second.Bag.Len())
	}
	_, failed := second.Totals()
	if failed != 2 {
		t.Fatalf("cached outcomes lost failures: %d", failed)
	}
}

func TestRunBatchCanceled(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir, "a.yaml", passingScenario)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := RunBatch(ctx, []string{dir}, Options{}); err == nil {
		t.Fatalf("expected cancellation error")
	}
}

func TestListScenarioFilesMissing(t *testing.T) {
	if _, err := ListScenarioFiles([]string{filepath.Join(t.TempDir(), "nope")}); err == nil {
		t.Fatalf("expected error for a missing path")
	}
}

func TestRunBatchSpansNestUnderContextSpan(t *testing.T) {
	dir := t.TempDir()
	path := writeScenario(t, dir, "a.yaml", passingScenario)

	ring := trace.NewRingTracer(256, trace.LevelDetail)
	cmd, ctx := trace.Start(trace.WithTracer(context.Background(), ring), trace.ScopeDriver, "cmd:batch")
	if _, err := RunBatch(ctx, []string{path}, Options{Jobs: 1, Heartbeat: time.Hour}); err != nil {
		t.Fatalf("RunBatch: %v", err)
	}

	ids := map[string]uint64{}
	parents := map[string]uint64{}
	for _, ev := range ring.Snapshot() {
		if ev.Kind == trace.KindSpanBegin {
			ids[ev.Name] = ev.SpanID
			parents[ev.Name] = ev.ParentID
		}
	}
	if parents["batch"] != cmd.ID() {
		t.Fatalf("batch parent = %d, want %d", parents["batch"], cmd.ID())
	}
	if parents["file:"+path] != ids["batch"] {
		t.Fatalf("file parent = %d, want %d", parents["file:"+path], ids["batch"])
	}
	if parents["case:signed meet"] != ids["file:"+path] {
		t.Fatalf("case parent = %d, want %d", parents["case:signed meet"], ids["file:"+path])
	}
	if stats := ring.Stats(); stats.Files != 1 || stats.Cases != 2 {
		t.Fatalf("ring stats = %+v", stats)
	}
}
