package driver

import (
	"context"
	"strings"
	"testing"

	"numlit/internal/diag"
)

func TestRunBatchMemoizesIdenticalFiles(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir, "a.yaml", failingScenario)
	writeScenario(t, dir, "b.yaml", failingScenario)

	res, err := RunBatch(context.Background(), []string{dir}, Options{Jobs: 1})
	if err != nil {
		t.Fatal(err)
	}
	if res.Files[0].Cached || !res.Files[1].Cached {
		t.Fatalf("cached a=%v b=%v", res.Files[0].Cached, res.Files[1].Cached)
	}
	if res.Files[1].Failed() != 2 {
		t.Fatalf("memoized outcomes lost failures: %+v", res.Files[1].Outcomes)
	}
	for _, d := range res.Files[1].Bag.Items() {
		if !strings.Contains(d.Subject, "b.yaml#") {
			t.Fatalf("subject not rebased onto b.yaml: %q", d.Subject)
		}
	}
}

func TestRebaseSubjects(t *testing.T) {
	in := []diag.Diagnostic{
		diag.NewError(diag.ScnMismatch, "old.yaml#case", "x").WithNote("old.yaml", "file"),
		diag.NewError(diag.ScnInvalid, "old.yaml", "y"),
		diag.NewError(diag.NumNoIntersection, "old.yaml.bak#case", "z"),
	}
	out := rebaseSubjects(in, "old.yaml", "new.yaml")
	want := []string{"new.yaml#case", "new.yaml", "old.yaml.bak#case"}
	for i, w := range want {
		if out[i].Subject != w {
			t.Errorf("subject %d = %q, want %q", i, out[i].Subject, w)
		}
	}
	if out[0].Notes[0].Subject != "new.yaml" {
		t.Errorf("note subject = %q", out[0].Notes[0].Subject)
	}
	if in[0].Subject != "old.yaml#case" || in[0].Notes[0].Subject != "old.yaml" {
		t.Fatalf("input was mutated")
	}
}

func TestMemoCacheNilMisses(t *testing.T) {
	var c *MemoCache
	if _, _, _, ok := c.Get(KeyFor([]byte("x")), "p"); ok {
		t.Fatalf("nil cache must miss")
	}
	c.Put(KeyFor([]byte("x")), &FileResult{Bag: diag.NewBag(1)})
}
