package driver

import (
	"path/filepath"
	"testing"

	"numlit/internal/diag"
)

func TestDiskCacheRoundTrip(t *testing.T) {
	c, err := OpenDiskCache(filepath.Join(t.TempDir(), "c"))
	if err != nil {
		t.Fatal(err)
	}
	key := KeyFor([]byte("name: x"))
	var out DiskPayload
	if ok, err := c.Get(key, &out); ok || err != nil {
		t.Fatalf("empty cache: ok=%v err=%v", ok, err)
	}
	in := &DiskPayload{
		Name:     "x",
		Outcomes: []CaseOutcome{{Name: "a", Op: "meet", Expect: "none", Got: "none", Passed: true}},
		Diags:    []diag.Diagnostic{diag.NewError(diag.ScnMismatch, "x#a", "boom").WithNote("n", "m")},
	}
	if err := c.Put(key, in); err != nil {
		t.Fatal(err)
	}
	ok, err := c.Get(key, &out)
	if !ok || err != nil {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if out.Name != "x" || len(out.Outcomes) != 1 || !out.Outcomes[0].Passed {
		t.Fatalf("payload = %+v", out)
	}
	if len(out.Diags) != 1 || out.Diags[0].Code != diag.ScnMismatch || out.Diags[0].Notes[0].Msg != "m" {
		t.Fatalf("diagnostics = %+v", out.Diags)
	}

	if err := c.DropAll(); err != nil {
		t.Fatal(err)
	}
	if ok, _ := c.Get(key, &out); ok {
		t.Fatalf("DropAll kept the entry")
	}
}

func TestKeyForDependsOnContent(t *testing.T) {
	if KeyFor([]byte("a")) == KeyFor([]byte("b")) {
		t.Fatalf("keys must differ")
	}
}
