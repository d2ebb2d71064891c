package types

import "fmt"

// SignDemand records whether a literal's value forces a signed type.
type SignDemand uint8

const (
	// NoDemand accepts signed or unsigned.
	NoDemand SignDemand = iota
	// DemandSigned requires a signed type, e.g. for -5.
	DemandSigned
)

func (d SignDemand) String() string {
	switch d {
	case NoDemand:
		return "any-sign"
	case DemandSigned:
		return "signed"
	default:
		return fmt.Sprintf("SignDemand(%d)", d)
	}
}

// IntBoundKind tags the IntBound variants.
type IntBoundKind uint8

const (
	// IntBoundNone places no bound on the width.
	IntBoundNone IntBoundKind = iota
	// IntBoundExact pins the literal to one width.
	IntBoundExact
	// IntBoundAtLeast demands a sign and a minimum width.
	IntBoundAtLeast
)

// IntBound is the bound placed on an integer literal by its value or suffix.
type IntBound struct {
	Kind  IntBoundKind
	Sign  SignDemand
	Width IntLitWidth
}

// IntBoundExactly pins an integer literal to w.
func IntBoundExactly(w IntLitWidth) IntBound {
	return IntBound{Kind: IntBoundExact, Width: w}
}

// IntBoundAtLeastOf demands sign and at least w.
func IntBoundAtLeastOf(sign SignDemand, w IntLitWidth) IntBound {
	return IntBound{Kind: IntBoundAtLeast, Sign: sign, Width: w}
}

// FloatBoundKind tags the FloatBound variants.
type FloatBoundKind uint8

const (
	FloatBoundNone FloatBoundKind = iota
	FloatBoundExact
)

// FloatBound is the bound placed on a fractional literal.
type FloatBound struct {
	Kind  FloatBoundKind
	Width FloatWidth
}

// FloatBoundExactly pins a fractional literal to w.
func FloatBoundExactly(w FloatWidth) FloatBound {
	return FloatBound{Kind: FloatBoundExact, Width: w}
}

// NumBoundKind tags the NumBound variants.
type NumBoundKind uint8

const (
	NumBoundNone NumBoundKind = iota
	// NumBoundAtLeastIntOrFloat demands an integer of at least Width with
	// Sign, or any float.
	NumBoundAtLeastIntOrFloat
)

// NumBound is the bound placed on a literal that may become int or float.
type NumBound struct {
	Kind  NumBoundKind
	Sign  SignDemand
	Width IntLitWidth
}

// NumBoundAtLeast demands sign and at least w, or any float.
func NumBoundAtLeast(sign SignDemand, w IntLitWidth) NumBound {
	return NumBound{Kind: NumBoundAtLeastIntOrFloat, Sign: sign, Width: w}
}

// SeedKind tags the Seed variants.
type SeedKind uint8

const (
	// SeedNone leaves the literal's variable unconstrained.
	SeedNone SeedKind = iota
	// SeedExact binds the variable to one concrete builtin.
	SeedExact
	// SeedRange makes the variable a ranged number.
	SeedRange
)

// Seed is how a bound initialises a literal's type variable.
type Seed struct {
	Kind  SeedKind
	Exact Variable
	Range NumericRange
}

func (s Seed) String() string {
	switch s.Kind {
	case SeedExact:
		if w, ok := VariableWidth(s.Exact); ok {
			return w.TypeStr()
		}
		return fmt.Sprintf("var(%d)", s.Exact)
	case SeedRange:
		return s.Range.String()
	default:
		return "none"
	}
}

// Seed converts the bound into its initial constraint.
func (b IntBound) Seed() Seed {
	switch b.Kind {
	case IntBoundExact:
		return Seed{Kind: SeedExact, Exact: IntLitWidthToVariable(b.Width)}
	case IntBoundAtLeast:
		if b.Sign == DemandSigned {
			return Seed{Kind: SeedRange, Range: IntAtLeastSigned(b.Width)}
		}
		return Seed{Kind: SeedRange, Range: IntAtLeastEitherSign(b.Width)}
	default:
		return Seed{}
	}
}

// Seed converts the bound into its initial constraint.
func (b FloatBound) Seed() Seed {
	if b.Kind == FloatBoundExact {
		return Seed{Kind: SeedExact, Exact: FloatWidthToVariable(b.Width)}
	}
	return Seed{}
}

// Seed converts the bound into its initial constraint.
func (b NumBound) Seed() Seed {
	if b.Kind != NumBoundAtLeastIntOrFloat {
		return Seed{}
	}
	if b.Sign == DemandSigned {
		return Seed{Kind: SeedRange, Range: NumAtLeastSigned(b.Width)}
	}
	return Seed{Kind: SeedRange, Range: NumAtLeastEitherSign(b.Width)}
}
