package types

import (
	"fmt"
	"math/big"
	"strings"

	"numlit/internal/symbols"
)

// IntSignedness is the sign half of a width's capacity.
type IntSignedness uint8

const (
	Unsigned IntSignedness = iota + 1
	Signed
)

func (s IntSignedness) String() string {
	switch s {
	case Unsigned:
		return "unsigned"
	case Signed:
		return "signed"
	default:
		return fmt.Sprintf("IntSignedness(%d)", s)
	}
}

// IntLitWidth is a concrete width a numeric literal may end up stored in.
// An integer literal can also be promoted to F32, F64 or Dec; for those the
// capacity is the largest integer they represent without losing precision:
//
//	F32: +/- 2^24
//	F64: +/- 2^53
//	Dec: I128 bounds
//
// The numeric value of an IntLitWidth carries no meaning; every comparison
// goes through the fact table below.
type IntLitWidth uint8

const (
	U8 IntLitWidth = iota
	U16
	U32
	U64
	U128
	I8
	I16
	I32
	I64
	I128
	Nat
	F32
	F64
	Dec

	widthCount
)

type widthFacts struct {
	sign     IntSignedness
	bits     uint32
	name     string
	symbol   symbols.Symbol
	variable Variable
	max      *big.Int
	min      *big.Int
}

// widthTable is initialised once and never written afterwards.
var widthTable = [widthCount]widthFacts{
	U8:   {sign: Unsigned, bits: 8, name: "U8", symbol: symbols.NumU8, variable: VarU8, max: unsignedMax(8), min: zero()},
	U16:  {sign: Unsigned, bits: 16, name: "U16", symbol: symbols.NumU16, variable: VarU16, max: unsignedMax(16), min: zero()},
	U32:  {sign: Unsigned, bits: 32, name: "U32", symbol: symbols.NumU32, variable: VarU32, max: unsignedMax(32), min: zero()},
	U64:  {sign: Unsigned, bits: 64, name: "U64", symbol: symbols.NumU64, variable: VarU64, max: unsignedMax(64), min: zero()},
	U128: {sign: Unsigned, bits: 128, name: "U128", symbol: symbols.NumU128, variable: VarU128, max: unsignedMax(128), min: zero()},
	I8:   {sign: Signed, bits: 8, name: "I8", symbol: symbols.NumI8, variable: VarI8, max: signedMax(8), min: signedMin(8)},
	I16:  {sign: Signed, bits: 16, name: "I16", symbol: symbols.NumI16, variable: VarI16, max: signedMax(16), min: signedMin(16)},
	I32:  {sign: Signed, bits: 32, name: "I32", symbol: symbols.NumI32, variable: VarI32, max: signedMax(32), min: signedMin(32)},
	I64:  {sign: Signed, bits: 64, name: "I64", symbol: symbols.NumI64, variable: VarI64, max: signedMax(64), min: signedMin(64)},
	I128: {sign: Signed, bits: 128, name: "I128", symbol: symbols.NumI128, variable: VarI128, max: signedMax(128), min: signedMin(128)},
	// TODO: Nat is platform specific; 64 bits is assumed everywhere, including
	// its slot in the defaulting tables.
	Nat: {sign: Unsigned, bits: 64, name: "Nat", symbol: symbols.NumNat, variable: VarNat, max: unsignedMax(64), min: zero()},
	F32: {sign: Signed, bits: 24, name: "F32", symbol: symbols.NumF32, variable: VarF32, max: pow2(24), min: neg(pow2(24))},
	F64: {sign: Signed, bits: 53, name: "F64", symbol: symbols.NumF64, variable: VarF64, max: pow2(53), min: neg(pow2(53))},
	Dec: {sign: Signed, bits: 128, name: "Dec", symbol: symbols.NumDec, variable: VarDec, max: signedMax(128), min: signedMin(128)},
}

func zero() *big.Int { return new(big.Int) }

func pow2(n uint) *big.Int { return new(big.Int).Lsh(big.NewInt(1), n) }

func neg(x *big.Int) *big.Int { return new(big.Int).Neg(x) }

func unsignedMax(bits uint) *big.Int { return new(big.Int).Sub(pow2(bits), big.NewInt(1)) }

func signedMax(bits uint) *big.Int { return unsignedMax(bits - 1) }

func signedMin(bits uint) *big.Int { return neg(pow2(bits - 1)) }

func (w IntLitWidth) facts() *widthFacts {
	if w >= widthCount {
		panic(fmt.Sprintf("types: invalid IntLitWidth %d", uint8(w)))
	}
	return &widthTable[w]
}

// AllWidths lists every width in declaration order.
func AllWidths() []IntLitWidth {
	out := make([]IntLitWidth, 0, int(widthCount))
	for w := IntLitWidth(0); w < widthCount; w++ {
		out = append(out, w)
	}
	return out
}

// IsValid reports whether w is one of the declared widths.
func (w IntLitWidth) IsValid() bool { return w < widthCount }

// SignednessAndWidth returns the signedness and capacity of w. For the
// float family the capacity is the number of bits of exactly representable
// integers, which puts every width on one comparable scale.
func (w IntLitWidth) SignednessAndWidth() (IntSignedness, uint32) {
	f := w.facts()
	return f.sign, f.bits
}

// IsSigned reports whether w can hold negative values.
func (w IntLitWidth) IsSigned() bool {
	sign, _ := w.SignednessAndWidth()
	return sign == Signed
}

// TypeStr is the display name of w.
func (w IntLitWidth) TypeStr() string { return w.facts().name }

func (w IntLitWidth) String() string {
	if !w.IsValid() {
		return fmt.Sprintf("IntLitWidth(%d)", uint8(w))
	}
	return w.TypeStr()
}

// Symbol returns the builtin type name of w.
func (w IntLitWidth) Symbol() symbols.Symbol { return w.facts().symbol }

// MaxValue is the largest value w holds; for the float family it is the
// largest exactly representable integer. The result is a fresh copy.
func (w IntLitWidth) MaxValue() *big.Int { return new(big.Int).Set(w.facts().max) }

// MinValue is the smallest value w holds; for the float family it is the
// smallest exactly representable integer. The result is a fresh copy.
func (w IntLitWidth) MinValue() *big.Int { return new(big.Int).Set(w.facts().min) }

// Fits reports whether v lies within [MinValue, MaxValue].
func (w IntLitWidth) Fits(v *big.Int) bool {
	f := w.facts()
	return v.Cmp(f.min) >= 0 && v.Cmp(f.max) <= 0
}

// FloatWidth projects w onto the float family.
func (w IntLitWidth) FloatWidth() (FloatWidth, bool) {
	switch w {
	case F32:
		return FloatF32, true
	case F64:
		return FloatF64, true
	case Dec:
		return FloatDec, true
	default:
		return 0, false
	}
}

// IsSuperset reports whether w represents a superset of the integers that
// lowerBound represents, on one side of zero: the negative side when
// isNegative is set, the positive side otherwise.
func (w IntLitWidth) IsSuperset(lowerBound IntLitWidth, isNegative bool) bool {
	us, usBits := w.SignednessAndWidth()
	them, themBits := lowerBound.SignednessAndWidth()

	if isNegative {
		switch {
		case us == Signed && them == Signed:
			return usBits >= themBits
		case us == Unsigned && them == Signed:
			// unsigned widths hold no negative numbers at all
			return false
		case us == Signed && them == Unsigned:
			return true
		default:
			// both hold only zero on this side
			return true
		}
	}

	switch {
	case us == them:
		return usBits >= themBits
	case us == Unsigned:
		// n unsigned bits cover twice the positives of n signed bits
		return usBits >= themBits
	default:
		// i16 covers u8 but not u16
		return usBits > themBits
	}
}

// ParseIntLitWidth resolves a width by its display name, ignoring case.
func ParseIntLitWidth(name string) (IntLitWidth, error) {
	name = strings.TrimSpace(name)
	for w := IntLitWidth(0); w < widthCount; w++ {
		if strings.EqualFold(widthTable[w].name, name) {
			return w, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownWidth, name)
}

// FloatWidth is the float-only subset of IntLitWidth.
type FloatWidth uint8

const (
	FloatDec FloatWidth = iota + 1
	FloatF32
	FloatF64
)

// IntLitWidth returns the width this float occupies on the capacity scale.
func (f FloatWidth) IntLitWidth() IntLitWidth {
	switch f {
	case FloatDec:
		return Dec
	case FloatF32:
		return F32
	case FloatF64:
		return F64
	default:
		panic(fmt.Sprintf("types: invalid FloatWidth %d", uint8(f)))
	}
}

func (f FloatWidth) String() string {
	switch f {
	case FloatDec, FloatF32, FloatF64:
		return f.IntLitWidth().TypeStr()
	default:
		return fmt.Sprintf("FloatWidth(%d)", uint8(f))
	}
}
