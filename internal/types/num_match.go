package types

import (
	"fmt"

	"numlit/internal/symbols"
)

// MatchResult is the outcome of comparing a range against a content shape.
type MatchResult uint8

const (
	// RangeInContent: the range is narrower than the content, e.g. <U8, I8> < Int *.
	RangeInContent MatchResult = iota + 1
	// ContentInRange: the content is narrower than the range, e.g. I8 < <U8, I8>.
	ContentInRange
	// NoIntersection: the two never agree on a width.
	NoIntersection
	// DifferentContent: the content is not comparable with a range.
	DifferentContent
)

func (m MatchResult) String() string {
	switch m {
	case RangeInContent:
		return "RangeInContent"
	case ContentInRange:
		return "ContentInRange"
	case NoIntersection:
		return "NoIntersection"
	case DifferentContent:
		return "DifferentContent"
	default:
		return fmt.Sprintf("MatchResult(%d)", m)
	}
}

// ParseMatchResult is the inverse of String.
func ParseMatchResult(s string) (MatchResult, bool) {
	for m := RangeInContent; m <= DifferentContent; m++ {
		if m.String() == s {
			return m, true
		}
	}
	return 0, false
}

func fromContentInRange(ok bool) MatchResult {
	if ok {
		return ContentInRange
	}
	return NoIntersection
}

// aliasWidth maps a concrete numeric builtin, under either of its names,
// to its width.
func aliasWidth(s symbols.Symbol) (IntLitWidth, bool) {
	switch s {
	case symbols.NumI8, symbols.NumSigned8:
		return I8, true
	case symbols.NumU8, symbols.NumUnsigned8:
		return U8, true
	case symbols.NumI16, symbols.NumSigned16:
		return I16, true
	case symbols.NumU16, symbols.NumUnsigned16:
		return U16, true
	case symbols.NumI32, symbols.NumSigned32:
		return I32, true
	case symbols.NumU32, symbols.NumUnsigned32:
		return U32, true
	case symbols.NumI64, symbols.NumSigned64:
		return I64, true
	case symbols.NumNat, symbols.NumNatural:
		return Nat, true
	case symbols.NumU64, symbols.NumUnsigned64:
		return U64, true
	case symbols.NumI128, symbols.NumSigned128:
		return I128, true
	case symbols.NumU128, symbols.NumUnsigned128:
		return U128, true
	case symbols.NumDec:
		return Dec, true
	case symbols.NumF32:
		return F32, true
	case symbols.NumF64:
		return F64, true
	default:
		return 0, false
	}
}

// MatchContent compares r with content discovered by the unifier.
func (r NumericRange) MatchContent(subs *Subs, content Content) MatchResult {
	switch c := content.(type) {
	case RangedNumber:
		meet, ok := r.Intersection(c.Range)
		if !ok {
			return NoIntersection
		}
		if meet == c.Range {
			return ContentInRange
		}
		return RangeInContent

	case Alias:
		if w, ok := aliasWidth(c.Symbol); ok {
			if fw, isFloat := w.FloatWidth(); isFloat {
				return fromContentInRange(r.containsFloatWidth(fw))
			}
			return fromContentInRange(r.containsIntWidth(w))
		}
		switch c.Symbol {
		case symbols.NumFrac, symbols.NumFloatingPoint:
			if r.Kind.IntOnly() {
				return DifferentContent
			}
			return ContentInRange
		case symbols.NumNum, symbols.NumInt, symbols.NumInteger:
			args := subs.GetSubsSlice(c.Args)
			if len(args) != 1 {
				panic(fmt.Sprintf("types: %s expects exactly one argument, got %d", c.Symbol, len(args)))
			}
			switch subs.GetContentWithoutCompacting(args[0]).(type) {
			case FlexVar, RigidVar:
				return RangeInContent
			}
			return r.MatchContent(subs, subs.GetContentWithoutCompacting(c.Real))
		default:
			return DifferentContent
		}

	default:
		return DifferentContent
	}
}

// containsFloatWidth does not narrow by float width yet: every float width
// is accepted, including against int-only ranges.
func (r NumericRange) containsFloatWidth(FloatWidth) bool {
	return true
}

// containsIntWidth reports whether the concrete width w satisfies r.
func (r NumericRange) containsIntWidth(w IntLitWidth) bool {
	demand, atLeast := r.Demand()
	actualSign, actualBits := w.SignednessAndWidth()
	if actualSign == Unsigned && demand == DemandSigned {
		return false
	}
	_, boundBits := atLeast.SignednessAndWidth()
	return actualBits >= boundBits
}

// ContainsWidth reports whether a concrete builtin of width w lies inside r,
// i.e. whether MatchContent would answer ContentInRange for it.
func (r NumericRange) ContainsWidth(w IntLitWidth) bool {
	if fw, isFloat := w.FloatWidth(); isFloat {
		return r.containsFloatWidth(fw)
	}
	return r.containsIntWidth(w)
}
