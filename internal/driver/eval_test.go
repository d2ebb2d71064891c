package driver

import (
	"errors"
	"testing"

	"numlit/internal/diag"
	"numlit/internal/trace"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name string
		c    Case
		want string
	}{
		{"meet", Case{Op: "meet", Args: []string{"IntAtLeastSigned(I8)", "IntAtLeastEitherSign(I16)"}}, "IntAtLeastSigned(I16)"},
		{"meet none", Case{Op: "MEET", Args: []string{"IntAtLeastSigned(I8)", "IntAtLeastEitherSign(U8)"}}, "none"},
		{"match", Case{Op: "match", Args: []string{"IntAtLeastEitherSign(U8)", "Signed64"}}, "ContentInRange"},
		{"match wrapper", Case{Op: "match", Args: []string{"IntAtLeastEitherSign(U8)", "Num(*)"}}, "RangeInContent"},
		{"defaults", Case{Op: "defaults", Args: []string{"IntAtLeastSigned(I32)"}}, "I32 I64 I128"},
		{"seed", Case{Op: "seed", Args: []string{"-5"}}, "NumAtLeastSigned(I8)"},
		{"seed exact", Case{Op: "seed", Args: []string{"5u16"}}, "U16"},
		{"seed float", Case{Op: "seed", Args: []string{"1.5"}}, "none"},
		{"seed too large", Case{Op: "seed", Args: []string{"300u8"}}, "error"},
		{"check", Case{Op: "check", Args: []string{"5", "I64"}}, "ContentInRange"},
		{"check narrowed", Case{Op: "check", Args: []string{"-5", "IntAtLeastEitherSign(I32)", "I16"}}, "NoIntersection"},
		{"check narrowing fails", Case{Op: "check", Args: []string{"-5", "IntAtLeastEitherSign(U8)", "I64"}}, "NoIntersection"},
		{"check string", Case{Op: "check", Args: []string{"5", "Str"}}, "DifferentContent"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Evaluate(tt.c, diag.NopReporter{}, trace.Nop, 0)
			if err != nil {
				t.Fatalf("Evaluate: %v", err)
			}
			if got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEvaluateInvalid(t *testing.T) {
	for _, c := range []Case{
		{Op: "meet", Args: []string{"IntAtLeastSigned(I8)"}},
		{Op: "meet", Args: []string{"IntAtLeastSigned(U8)", "IntAtLeastSigned(I8)"}},
		{Op: "match", Args: []string{"IntAtLeastSigned(I8)", "Num("}},
		{Op: "seed", Args: []string{"abc"}},
		{Op: "check", Args: []string{"5"}},
		{Op: "widen", Args: nil},
	} {
		_, err := Evaluate(c, diag.NopReporter{}, trace.Nop, 0)
		var invalid *errInvalidCase
		if !errors.As(err, &invalid) {
			t.Errorf("%s %v: expected invalid case, got %v", c.Op, c.Args, err)
		}
	}
}

func TestSameOutcome(t *testing.T) {
	if !sameOutcome("I32 I64  I128", " i32 i64 i128 ") {
		t.Fatalf("whitespace and case must not matter")
	}
	if sameOutcome("I32", "I64") {
		t.Fatalf("different outcomes compared equal")
	}
}
