package sema

import (
	"bytes"
	"slices"
	"strings"
	"testing"

	"numlit/internal/diag"
	"numlit/internal/trace"
	"numlit/internal/types"
)

func newTestSession(t *testing.T) (*Session, *diag.Bag) {
	t.Helper()
	bag := diag.NewBag(32)
	return NewSession(types.NewSubs(), diag.NewBagReporter(bag), nil), bag
}

func seed(t *testing.T, s *Session, text string) types.Variable {
	t.Helper()
	lit, err := ParseLiteral(text)
	if err != nil {
		t.Fatalf("ParseLiteral(%q): %v", text, err)
	}
	v, err := s.Seed(lit)
	if err != nil {
		t.Fatalf("Seed(%q): %v", text, err)
	}
	return v
}

func TestSessionSeed(t *testing.T) {
	s, _ := newTestSession(t)
	v := seed(t, s, "-5")
	if r, ok := s.RangeOf(v); !ok || r != types.NumAtLeastSigned(types.I8) {
		t.Fatalf("RangeOf = %v, %v", r, ok)
	}
	exact := seed(t, s, "5u16")
	if s.Subs().Root(exact) != types.VarU16 {
		t.Fatalf("exact literal must link to U16")
	}
	float := seed(t, s, "1.5")
	if _, ok := s.Subs().GetContentWithoutCompacting(float).(types.FlexVar); !ok {
		t.Fatalf("float literal without suffix should stay flexible")
	}
}

func TestSessionSeedReportsOutOfRange(t *testing.T) {
	s, bag := newTestSession(t)
	lit, err := ParseLiteral("300u8")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Seed(lit); err == nil {
		t.Fatalf("expected error")
	}
	if bag.Len() != 1 || bag.Items()[0].Code != diag.NumLiteralOutOfRange || bag.Items()[0].Subject != "300u8" {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
}

func TestSessionNarrow(t *testing.T) {
	s, bag := newTestSession(t)
	v := seed(t, s, "5")
	if !s.Narrow(v, types.IntAtLeastEitherSign(types.I16)) {
		t.Fatalf("narrow failed: %+v", bag.Items())
	}
	if r, _ := s.RangeOf(v); r != types.IntAtLeastEitherSign(types.I16) {
		t.Fatalf("range = %s", r)
	}
	if !s.Narrow(v, types.NumAtLeastSigned(types.I8)) {
		t.Fatalf("narrow to signed failed")
	}
	if r, _ := s.RangeOf(v); r != types.IntAtLeastSigned(types.I16) {
		t.Fatalf("range = %s", r)
	}
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
}

func TestSessionNarrowFailureKeepsRange(t *testing.T) {
	s, bag := newTestSession(t)
	v := seed(t, s, "-1")
	if s.Narrow(v, types.IntAtLeastEitherSign(types.U8)) {
		t.Fatalf("signed literal cannot narrow to an unsigned bound")
	}
	if r, _ := s.RangeOf(v); r != types.NumAtLeastSigned(types.I8) {
		t.Fatalf("range changed to %s", r)
	}
	if bag.Len() != 1 || bag.Items()[0].Code != diag.NumNoIntersection || bag.Items()[0].Subject != "-1" {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
}

func TestSessionNarrowExactAndFlex(t *testing.T) {
	s, _ := newTestSession(t)
	exact := seed(t, s, "5i64")
	if !s.Narrow(exact, types.IntAtLeastSigned(types.I8)) {
		t.Fatalf("I64 satisfies IntAtLeastSigned(I8)")
	}
	if s.Narrow(exact, types.IntAtLeastSigned(types.I128)) {
		t.Fatalf("I64 does not satisfy IntAtLeastSigned(I128)")
	}
	flex := seed(t, s, "2.5")
	if !s.Narrow(flex, types.NumAtLeastSigned(types.F32)) {
		t.Fatalf("flex variable takes the range")
	}
	if r, ok := s.RangeOf(flex); !ok || r != types.NumAtLeastSigned(types.F32) {
		t.Fatalf("range = %v", r)
	}
}

func TestSessionCheck(t *testing.T) {
	s, bag := newTestSession(t)
	v := seed(t, s, "5")
	if got := s.Check(v, types.VarI64); got != types.ContentInRange {
		t.Fatalf("5 vs I64 = %s", got)
	}
	str, err := ParseContent(s.Subs(), "Str")
	if err != nil {
		t.Fatal(err)
	}
	if got := s.Check(v, str); got != types.DifferentContent {
		t.Fatalf("5 vs Str = %s", got)
	}
	neg := seed(t, s, "-5")
	if got := s.Check(neg, types.VarU32); got != types.NoIntersection {
		t.Fatalf("-5 vs U32 = %s", got)
	}
	if r, _ := s.RangeOf(v); r != types.NumAtLeastEitherSign(types.I8) {
		t.Fatalf("Check must not bind, range is %s", r)
	}
	codes := make([]diag.Code, 0, bag.Len())
	for _, d := range bag.Items() {
		codes = append(codes, d.Code)
	}
	if !slices.Equal(codes, []diag.Code{diag.NumDifferentContent, diag.NumNoIntersection}) {
		t.Fatalf("codes = %v", codes)
	}
}

func TestSessionCheckUnranged(t *testing.T) {
	s, bag := newTestSession(t)
	v := seed(t, s, "1.5")
	if got := s.Check(v, types.VarF64); got != types.DifferentContent {
		t.Fatalf("got %s", got)
	}
	if bag.Len() != 1 || bag.Items()[0].Severity != diag.SevWarning {
		t.Fatalf("expected one warning, got %+v", bag.Items())
	}
}

func TestSessionCandidates(t *testing.T) {
	s, _ := newTestSession(t)
	v := seed(t, s, "-5")
	s.Narrow(v, types.IntAtLeastEitherSign(types.I32))
	want := []types.Variable{types.VarI32, types.VarI64, types.VarI128}
	if got := s.Candidates(v); !slices.Equal(got, want) {
		t.Fatalf("candidates = %v, want %v", got, want)
	}
	if got := s.Candidates(seed(t, s, "1.5")); got != nil {
		t.Fatalf("unranged variable has no candidates, got %v", got)
	}
}

func TestSessionTraces(t *testing.T) {
	var buf bytes.Buffer
	s := NewSession(nil, nil, trace.NewStreamTracer(&buf, trace.LevelDebug, trace.FormatText))
	v := seed(t, s, "7")
	s.Narrow(v, types.IntAtLeastSigned(types.I8))
	out := buf.String()
	for _, want := range []string{"seed (NumAtLeastEitherSign(I8))", "narrow (IntAtLeastSigned(I8))"} {
		if !strings.Contains(out, want) {
			t.Errorf("trace missing %q:\n%s", want, out)
		}
	}
}
