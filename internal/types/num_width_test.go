package types

import (
	"errors"
	"math/big"
	"testing"
)

func TestSignednessAndWidthTable(t *testing.T) {
	tests := []struct {
		w    IntLitWidth
		sign IntSignedness
		bits uint32
	}{
		{U8, Unsigned, 8},
		{U16, Unsigned, 16},
		{U32, Unsigned, 32},
		{U64, Unsigned, 64},
		{U128, Unsigned, 128},
		{I8, Signed, 8},
		{I16, Signed, 16},
		{I32, Signed, 32},
		{I64, Signed, 64},
		{I128, Signed, 128},
		{Nat, Unsigned, 64},
		{F32, Signed, 24},
		{F64, Signed, 53},
		{Dec, Signed, 128},
	}
	if len(tests) != len(AllWidths()) {
		t.Fatalf("table covers %d widths, have %d", len(tests), len(AllWidths()))
	}
	for _, tt := range tests {
		sign, bits := tt.w.SignednessAndWidth()
		if sign != tt.sign || bits != tt.bits {
			t.Errorf("%s: got (%s, %d), want (%s, %d)", tt.w, sign, bits, tt.sign, tt.bits)
		}
		if tt.w.IsSigned() != (tt.sign == Signed) {
			t.Errorf("%s: IsSigned disagrees with the table", tt.w)
		}
	}
}

func TestMinMaxValues(t *testing.T) {
	tests := []struct {
		w        IntLitWidth
		min, max string
	}{
		{U8, "0", "255"},
		{I8, "-128", "127"},
		{U16, "0", "65535"},
		{I32, "-2147483648", "2147483647"},
		{U64, "0", "18446744073709551615"},
		{Nat, "0", "18446744073709551615"},
		{I64, "-9223372036854775808", "9223372036854775807"},
		{U128, "0", "340282366920938463463374607431768211455"},
		{I128, "-170141183460469231731687303715884105728", "170141183460469231731687303715884105727"},
		{F32, "-16777216", "16777216"},
		{F64, "-9007199254740992", "9007199254740992"},
		{Dec, "-170141183460469231731687303715884105728", "170141183460469231731687303715884105727"},
	}
	for _, tt := range tests {
		if got := tt.w.MinValue().String(); got != tt.min {
			t.Errorf("%s.MinValue() = %s, want %s", tt.w, got, tt.min)
		}
		if got := tt.w.MaxValue().String(); got != tt.max {
			t.Errorf("%s.MaxValue() = %s, want %s", tt.w, got, tt.max)
		}
	}
}

func TestMaxValueReturnsCopy(t *testing.T) {
	v := U8.MaxValue()
	v.Add(v, big.NewInt(1))
	if got := U8.MaxValue().String(); got != "255" {
		t.Fatalf("width table mutated through MaxValue: %s", got)
	}
}

func TestFits(t *testing.T) {
	if !I8.Fits(big.NewInt(-128)) || I8.Fits(big.NewInt(-129)) {
		t.Fatalf("I8 lower edge wrong")
	}
	if !U8.Fits(big.NewInt(255)) || U8.Fits(big.NewInt(256)) || U8.Fits(big.NewInt(-1)) {
		t.Fatalf("U8 edges wrong")
	}
}

func TestIsSuperset(t *testing.T) {
	tests := []struct {
		name       string
		us, bound  IntLitWidth
		isNegative bool
		want       bool
	}{
		{"pos i16 covers u8", I16, U8, false, true},
		{"pos i16 misses u16", I16, U16, false, false},
		{"pos u16 covers i8", U16, I8, false, true},
		{"pos u16 covers i16", U16, I16, false, true},
		{"pos u8 misses i16", U8, I16, false, false},
		{"pos same unsigned", U32, U32, false, true},
		{"pos nat vs u64", Nat, U64, false, true},
		{"pos f64 covers i32", F64, I32, false, true},
		{"pos f64 misses i64", F64, I64, false, false},
		{"neg signed vs signed", I16, I8, true, true},
		{"neg narrower signed", I8, I16, true, false},
		{"neg unsigned never covers signed", U128, I8, true, false},
		{"neg signed covers unsigned", I8, U64, true, true},
		{"neg both unsigned", U8, U128, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.us.IsSuperset(tt.bound, tt.isNegative); got != tt.want {
				t.Fatalf("%s.IsSuperset(%s, %v) = %v, want %v", tt.us, tt.bound, tt.isNegative, got, tt.want)
			}
		})
	}
}

func TestParseIntLitWidth(t *testing.T) {
	for _, w := range AllWidths() {
		got, err := ParseIntLitWidth(w.TypeStr())
		if err != nil || got != w {
			t.Fatalf("ParseIntLitWidth(%q) = %v, %v", w.TypeStr(), got, err)
		}
	}
	if got, err := ParseIntLitWidth("dec"); err != nil || got != Dec {
		t.Fatalf("case-insensitive parse failed: %v %v", got, err)
	}
	if _, err := ParseIntLitWidth("I7"); !errors.Is(err, ErrUnknownWidth) {
		t.Fatalf("expected ErrUnknownWidth, got %v", err)
	}
}

func TestFloatWidthProjection(t *testing.T) {
	for _, f := range []FloatWidth{FloatF32, FloatF64, FloatDec} {
		back, ok := f.IntLitWidth().FloatWidth()
		if !ok || back != f {
			t.Errorf("%s does not round-trip through IntLitWidth", f)
		}
	}
	if _, ok := I64.FloatWidth(); ok {
		t.Errorf("I64 is not a float width")
	}
}
