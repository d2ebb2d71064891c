package types

import (
	"testing"

	"numlit/internal/symbols"
)

func TestSubsReservesNumericBuiltins(t *testing.T) {
	subs := NewSubs()
	for _, w := range AllWidths() {
		v := IntLitWidthToVariable(w)
		alias, ok := subs.GetContentWithoutCompacting(v).(Alias)
		if !ok {
			t.Fatalf("%s: reserved variable %d is not an alias", w, v)
		}
		if alias.Symbol != w.Symbol() {
			t.Errorf("%s: alias names %s", w, alias.Symbol)
		}
		if alias.Real == NoVariable {
			t.Errorf("%s: alias has no real variable", w)
		}
	}
}

func TestSubsSlices(t *testing.T) {
	subs := NewSubs()
	a := subs.Fresh(FlexVar{Name: "a"})
	b := subs.Fresh(RigidVar{Name: "b"})
	first := subs.InsertVariables([]Variable{a, b})
	second := subs.InsertVariables([]Variable{VarI8})
	if got := subs.GetSubsSlice(first); len(got) != 2 || got[0] != a || got[1] != b {
		t.Fatalf("first slice = %v", got)
	}
	if got := subs.GetSubsSlice(second); len(got) != 1 || got[0] != VarI8 {
		t.Fatalf("second slice = %v", got)
	}
	if got := subs.GetSubsSlice(VariableSubsSlice{}); len(got) != 0 {
		t.Fatalf("empty slice = %v", got)
	}
}

func TestSubsLink(t *testing.T) {
	subs := NewSubs()
	a := subs.Fresh(FlexVar{})
	b := subs.Fresh(RangedNumber{Range: IntAtLeastSigned(I8)})
	subs.Link(a, b)
	if subs.Root(a) != b {
		t.Fatalf("Root(a) = %d, want %d", subs.Root(a), b)
	}
	subs.SetContent(a, RangedNumber{Range: IntAtLeastSigned(I16)})
	got, ok := subs.GetContentWithoutCompacting(b).(RangedNumber)
	if !ok || got.Range != IntAtLeastSigned(I16) {
		t.Fatalf("SetContent through a link did not reach the root: %v", got)
	}
	subs.Link(a, b) // already linked
}

func TestSubsDisplay(t *testing.T) {
	subs := NewSubs()
	v := subs.Wrap(symbols.NumNum, subs.Wrap(symbols.NumInteger, subs.Fresh(FlexVar{})))
	if got := subs.Display(v); got != "Num(Integer(*))" {
		t.Fatalf("Display = %q", got)
	}
	if got := subs.Display(VarI64); got != "I64" {
		t.Fatalf("Display = %q", got)
	}
	r := subs.Fresh(RangedNumber{Range: NumAtLeastEitherSign(U8)})
	if got := subs.Display(r); got != "NumAtLeastEitherSign(U8)" {
		t.Fatalf("Display = %q", got)
	}
}

func TestSatisfyingWidths(t *testing.T) {
	got := SortedWidths(IntAtLeastSigned(I32).SatisfyingWidths())
	want := []IntLitWidth{I32, I64, I128, F32, F64, Dec}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}
