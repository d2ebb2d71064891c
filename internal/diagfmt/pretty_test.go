package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"numlit/internal/diag"
)

func sampleBag() *diag.Bag {
	bag := diag.NewBag(10)
	bag.Add(diag.NewError(diag.NumNoIntersection, "-5", "no width satisfies both").WithNote("U8", "candidate type"))
	bag.Add(diag.New(diag.SevWarning, diag.ScnEmptyCases, "empty.yaml", "scenario has no cases"))
	bag.Add(diag.New(diag.SevInfo, diag.ObsTimings, "", "timings (batch): total 1.00 ms").WithNote("", `{"kind":"batch"}`))
	return bag
}

func TestPrettyPlain(t *testing.T) {
	var buf bytes.Buffer
	if err := Pretty(&buf, sampleBag(), PrettyOpts{ShowNotes: true}); err != nil {
		t.Fatal(err)
	}
	want := strings.Join([]string{
		"-5: ERROR NUM3002: no width satisfies both",
		"  note: U8: candidate type",
		"empty.yaml: WARNING SCN5004: scenario has no cases",
		"numlit: INFO OBS6001: timings (batch): total 1.00 ms",
		`  note: {"kind":"batch"}`,
		"",
	}, "\n")
	if got := buf.String(); got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestPrettyMaxAndNotes(t *testing.T) {
	var buf bytes.Buffer
	if err := Pretty(&buf, sampleBag(), PrettyOpts{Max: 1}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if strings.Contains(out, "note:") {
		t.Fatalf("notes printed without ShowNotes:\n%s", out)
	}
	if !strings.HasSuffix(out, "... and 2 more\n") {
		t.Fatalf("missing overflow line:\n%s", out)
	}
}

func TestPrettyColor(t *testing.T) {
	var buf bytes.Buffer
	if err := Pretty(&buf, sampleBag(), PrettyOpts{Color: true}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "\x1b[") {
		t.Fatalf("expected ANSI escapes:\n%q", buf.String())
	}
}
