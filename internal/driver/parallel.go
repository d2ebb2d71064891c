package driver

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"numlit/internal/diag"
	"numlit/internal/observ"
	"numlit/internal/trace"
)

// Options configures RunBatch.
type Options struct {
	// Jobs <= 0 means GOMAXPROCS.
	Jobs           int
	MaxDiagnostics int
	// Cache may be nil.
	Cache    *DiskCache
	Progress ProgressSink
	// Timings adds an ObsTimings diagnostic to the merged bag.
	Timings bool
	// Memo is shared between batches when set; otherwise each batch gets
	// its own.
	Memo *MemoCache
	// Heartbeat > 0 emits a trace heartbeat with the batch counters at this
	// interval.
	Heartbeat time.Duration
}

// CaseOutcome is the result of one case.
type CaseOutcome struct {
	Name    string `msgpack:"name" json:"name"`
	Op      string `msgpack:"op" json:"op"`
	Expect  string `msgpack:"expect" json:"expect"`
	Got     string `msgpack:"got" json:"got"`
	Passed  bool   `msgpack:"passed" json:"passed"`
	Invalid bool   `msgpack:"invalid" json:"invalid"`
}

// FileResult содержит результат одного файла сценариев.
type FileResult struct {
	Path     string
	Name     string
	Outcomes []CaseOutcome
	Bag      *diag.Bag
	Cached   bool
	Elapsed  time.Duration
}

// Failed counts cases that did not pass, including invalid ones.
func (r *FileResult) Failed() int {
	n := 0
	for _, o := range r.Outcomes {
		if !o.Passed {
			n++
		}
	}
	return n
}

// BatchResult aggregates every file.
type BatchResult struct {
	Files []FileResult
	Bag   *diag.Bag
	Timer *observ.Timer
}

// Totals returns case counts across files.
func (r *BatchResult) Totals() (cases, failed int) {
	for i := range r.Files {
		cases += len(r.Files[i].Outcomes)
		failed += r.Files[i].Failed()
	}
	return cases, failed
}

// RunBatch evaluates every scenario file under paths in parallel. Its spans
// nest under the span carried by ctx.
func RunBatch(ctx context.Context, paths []string, opts Options) (*BatchResult, error) {
	root, ctx := trace.Start(ctx, trace.ScopeDriver, "batch")
	timer := observ.NewTimer()

	listIdx := timer.Begin("list")
	files, err := ListScenarioFiles(paths)
	timer.End(listIdx, strconv.Itoa(len(files))+" files")
	if err != nil {
		root.End("error")
		return nil, err
	}

	result := &BatchResult{
		Files: make([]FileResult, len(files)),
		Bag:   diag.NewBag(opts.MaxDiagnostics),
		Timer: timer,
	}
	if len(files) == 0 {
		root.End("empty")
		return result, nil
	}

	if opts.Memo == nil {
		opts.Memo = NewMemoCache(len(files))
	}
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	var filesDone, casesDone atomic.Int64
	heartbeat := trace.StartHeartbeat(trace.FromContext(ctx), opts.Heartbeat, trace.ParentSpan(ctx), func() string {
		return fmt.Sprintf("%d/%d files, %d cases", filesDone.Load(), len(files), casesDone.Load())
	})
	defer heartbeat.Stop()

	for _, path := range files {
		emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusQueued})
	}

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			// Проверка отмены
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			start := time.Now()
			fr := runFile(gctx, path, opts)
			fr.Elapsed = time.Since(start)
			result.Files[i] = fr
			filesDone.Add(1)
			casesDone.Add(int64(len(fr.Outcomes)))

			note := ""
			if fr.Cached {
				note = "cached"
			}
			timer.Add("file:"+path, fr.Elapsed, note)

			status := StatusDone
			switch {
			case fr.Bag.HasErrors() && len(fr.Outcomes) == 0:
				status = StatusError
			case fr.Failed() > 0:
				status = StatusFailed
			}
			emit(opts.Progress, Event{File: path, Stage: StageEvaluate, Status: status, Elapsed: fr.Elapsed})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		root.End("canceled")
		return result, err
	}

	for i := range result.Files {
		result.Bag.Merge(result.Files[i].Bag)
	}
	if opts.Timings {
		report := timer.Report()
		appendTimingDiagnostic(result.Bag, timingPayload{Kind: "batch", TotalMS: report.TotalMS, Phases: report.Phases})
	}

	cases, failed := result.Totals()
	root.WithExtra("files", strconv.Itoa(len(files))).
		WithExtra("cases", strconv.Itoa(cases)).
		WithExtra("failed", strconv.Itoa(failed)).
		End("")
	return result, nil
}

func runFile(ctx context.Context, path string, opts Options) FileResult {
	span, ctx := trace.Start(ctx, trace.ScopeFile, "file:"+path)
	fr := FileResult{Path: path, Bag: diag.NewBag(opts.MaxDiagnostics)}
	emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusWorking})

	sc, data, err := LoadScenario(path)
	if err != nil {
		code := diag.ScnInvalid
		if data == nil {
			code = diag.IOLoadFileError
		}
		diag.ReportError(diag.NewBagReporter(fr.Bag), code, path, err.Error()).Emit()
		span.End("error")
		return fr
	}
	fr.Name = sc.Name

	key := KeyFor(data)
	if name, outcomes, diags, ok := opts.Memo.Get(key, path); ok {
		fr.Name = name
		fr.Outcomes = outcomes
		for _, d := range diags {
			fr.Bag.Add(d)
		}
		fr.Cached = true
		span.End("memo")
		return fr
	}
	if opts.Cache != nil {
		var payload DiskPayload
		ok, err := opts.Cache.Get(key, &payload)
		if err != nil {
			diag.ReportWarning(diag.NewBagReporter(fr.Bag), diag.IOCacheError, path, err.Error()).Emit()
		}
		if ok {
			fr.Outcomes = payload.Outcomes
			for _, d := range rebaseSubjects(payload.Diags, payload.Path, path) {
				fr.Bag.Add(d)
			}
			fr.Cached = true
			opts.Memo.Put(key, &fr)
			span.End("cached")
			return fr
		}
	}

	emit(opts.Progress, Event{File: path, Stage: StageEvaluate, Status: StatusWorking})
	evaluateScenario(ctx, path, sc, &fr)
	if ctx.Err() == nil {
		opts.Memo.Put(key, &fr)
	}

	if opts.Cache != nil {
		emit(opts.Progress, Event{File: path, Stage: StageCache, Status: StatusWorking})
		payload := &DiskPayload{Path: path, Name: fr.Name, Outcomes: fr.Outcomes, Diags: cacheableDiags(fr.Bag)}
		if err := opts.Cache.Put(key, payload); err != nil {
			diag.ReportWarning(diag.NewBagReporter(fr.Bag), diag.IOCacheError, path, err.Error()).Emit()
		}
	}
	span.WithExtra("cases", strconv.Itoa(len(fr.Outcomes))).End("")
	return fr
}

// cacheableDiags drops cache warnings so a replay does not repeat them.
func cacheableDiags(bag *diag.Bag) []diag.Diagnostic {
	out := make([]diag.Diagnostic, 0, bag.Len())
	for _, d := range bag.Items() {
		if d.Code != diag.IOCacheError {
			out = append(out, d)
		}
	}
	return out
}

func evaluateScenario(ctx context.Context, path string, sc *Scenario, fr *FileResult) {
	reporter := diag.NewBagReporter(fr.Bag)
	if len(sc.Cases) == 0 {
		diag.ReportWarning(reporter, diag.ScnEmptyCases, path, "scenario has no cases").Emit()
		return
	}
	fr.Outcomes = make([]CaseOutcome, 0, len(sc.Cases))
	for i, c := range sc.Cases {
		if ctx.Err() != nil {
			return
		}
		name := c.Name
		if name == "" {
			name = "#" + strconv.Itoa(i+1)
		}
		subject := path + "#" + name
		span, caseCtx := trace.Start(ctx, trace.ScopeCase, "case:"+name)

		// session diagnostics only surface as notes of a mismatch
		sessionBag := diag.NewBag(16)
		got, err := Evaluate(c, diag.NewBagReporter(sessionBag), trace.FromContext(caseCtx), trace.ParentSpan(caseCtx))
		out := CaseOutcome{Name: name, Op: c.Op, Expect: c.Expect, Got: got}

		var invalid *errInvalidCase
		switch {
		case errors.As(err, &invalid):
			out.Invalid = true
			diag.ReportError(reporter, diag.ScnInvalid, subject, invalid.Error()).Emit()
		case err != nil:
			out.Invalid = true
			diag.ReportError(reporter, diag.ScnInvalid, subject, err.Error()).Emit()
		case sameOutcome(got, c.Expect):
			out.Passed = true
		default:
			b := diag.ReportError(reporter, diag.ScnMismatch, subject,
				fmt.Sprintf("%s: expected %q, got %q", c.Op, c.Expect, got))
			for _, d := range sessionBag.Items() {
				b.WithNote(d.Subject, d.Code.ID()+": "+d.Message)
			}
			b.Emit()
		}
		fr.Outcomes = append(fr.Outcomes, out)
		span.End(fmt.Sprintf("passed=%t", out.Passed))
	}
}
