package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestJSONBasic(t *testing.T) {
	var buf bytes.Buffer
	if err := JSON(&buf, sampleBag(), JSONOpts{}); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if out.Count != 3 || len(out.Diagnostics) != 3 {
		t.Fatalf("count = %d", out.Count)
	}
	first := out.Diagnostics[0]
	if first.Code != "NUM3002" || first.Severity != "ERROR" || first.Subject != "-5" {
		t.Fatalf("first = %+v", first)
	}
	if first.Notes != nil {
		t.Fatalf("notes included without IncludeNotes")
	}
	if len(out.Diagnostics[2].Notes) != 1 {
		t.Fatalf("timing notes must always be included")
	}
}

func TestJSONMax(t *testing.T) {
	out := BuildDiagnosticsOutput(sampleBag(), JSONOpts{Max: 2, IncludeNotes: true})
	if out.Count != 2 || len(out.Diagnostics[0].Notes) != 1 {
		t.Fatalf("unexpected output: %+v", out)
	}
	if empty := BuildDiagnosticsOutput(nil, JSONOpts{}); empty.Diagnostics == nil || empty.Count != 0 {
		t.Fatalf("nil bag must produce an empty list")
	}
}
