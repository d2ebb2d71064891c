package sema

import (
	"errors"
	"testing"

	"numlit/internal/types"
)

func TestBoundForLiterals(t *testing.T) {
	tests := []struct {
		text string
		kind LiteralKind
		want Bound
	}{
		{"5", LiteralNum, types.NumBoundAtLeast(types.NoDemand, types.I8)},
		{"255", LiteralNum, types.NumBoundAtLeast(types.NoDemand, types.U8)},
		{"127", LiteralNum, types.NumBoundAtLeast(types.NoDemand, types.I8)},
		{"128", LiteralNum, types.NumBoundAtLeast(types.NoDemand, types.U8)},
		{"256", LiteralNum, types.NumBoundAtLeast(types.NoDemand, types.I16)},
		{"40000", LiteralNum, types.NumBoundAtLeast(types.NoDemand, types.U16)},
		{"1_000_000", LiteralNum, types.NumBoundAtLeast(types.NoDemand, types.I32)},
		{"-5", LiteralNum, types.NumBoundAtLeast(types.DemandSigned, types.I8)},
		{"-128", LiteralNum, types.NumBoundAtLeast(types.DemandSigned, types.I8)},
		{"-129", LiteralNum, types.NumBoundAtLeast(types.DemandSigned, types.I16)},
		{"18446744073709551615", LiteralNum, types.NumBoundAtLeast(types.NoDemand, types.U64)},
		{"18446744073709551616", LiteralNum, types.NumBoundAtLeast(types.NoDemand, types.I128)},
		{"170141183460469231731687303715884105728", LiteralNum, types.NumBoundAtLeast(types.NoDemand, types.U128)},
		{"0xff", LiteralInt, types.IntBoundAtLeastOf(types.NoDemand, types.U8)},
		{"-0x80", LiteralInt, types.IntBoundAtLeastOf(types.DemandSigned, types.I8)},
		{"0b1010_1010", LiteralInt, types.IntBoundAtLeastOf(types.NoDemand, types.U8)},
		{"0o777", LiteralInt, types.IntBoundAtLeastOf(types.NoDemand, types.I16)},
		{"0x1f32", LiteralInt, types.IntBoundAtLeastOf(types.NoDemand, types.I16)},
		{"1.5", LiteralFloat, types.FloatBound{}},
		{"2e10", LiteralFloat, types.FloatBound{}},
		{"5u8", LiteralNum, types.IntBoundExactly(types.U8)},
		{"-1i64", LiteralNum, types.IntBoundExactly(types.I64)},
		{"0xffu8", LiteralInt, types.IntBoundExactly(types.U8)},
		{"7nat", LiteralNum, types.IntBoundExactly(types.Nat)},
		{"1.5f32", LiteralFloat, types.FloatBoundExactly(types.FloatF32)},
		{"3dec", LiteralNum, types.FloatBoundExactly(types.FloatDec)},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			lit, err := ParseLiteral(tt.text)
			if err != nil {
				t.Fatalf("ParseLiteral: %v", err)
			}
			if lit.Kind != tt.kind {
				t.Fatalf("kind = %s, want %s", lit.Kind, tt.kind)
			}
			got, err := BoundFor(lit)
			if err != nil {
				t.Fatalf("BoundFor: %v", err)
			}
			if got != tt.want {
				t.Fatalf("bound = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestBoundForOutOfRange(t *testing.T) {
	for _, text := range []string{
		"340282366920938463463374607431768211456",
		"-170141183460469231731687303715884105729",
		"256u8",
		"-1u32",
	} {
		lit, err := ParseLiteral(text)
		if err != nil {
			t.Fatalf("%s: ParseLiteral: %v", text, err)
		}
		if _, err := BoundFor(lit); !errors.Is(err, ErrLiteralTooLarge) {
			t.Errorf("%s: expected ErrLiteralTooLarge, got %v", text, err)
		}
	}
}

func TestParseLiteralRejects(t *testing.T) {
	for _, text := range []string{"", "-", "abc", "12a", "0xzz", "1..5", "1.5u8", "_1"} {
		if _, err := ParseLiteral(text); !errors.Is(err, ErrBadLiteral) {
			t.Errorf("%q: expected ErrBadLiteral, got %v", text, err)
		}
	}
}

func TestLiteralValueIsKept(t *testing.T) {
	lit, err := ParseLiteral(" -42 ")
	if err != nil {
		t.Fatal(err)
	}
	if lit.Text != "-42" || lit.Value.Int64() != -42 {
		t.Fatalf("unexpected literal %+v", lit)
	}
}
