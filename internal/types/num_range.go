package types

import (
	"fmt"
	"strings"
)

// RangeKind tags the four NumericRange variants.
type RangeKind uint8

const (
	RangeInvalid RangeKind = iota
	// RangeIntAtLeastSigned: an integer, signed, at least Width.
	RangeIntAtLeastSigned
	// RangeIntAtLeastEitherSign: an integer of either sign, at least Width.
	RangeIntAtLeastEitherSign
	// RangeNumAtLeastSigned: an integer or float, signed, at least Width.
	RangeNumAtLeastSigned
	// RangeNumAtLeastEitherSign: an integer or float of either sign, at least Width.
	RangeNumAtLeastEitherSign
)

func (k RangeKind) String() string {
	switch k {
	case RangeIntAtLeastSigned:
		return "IntAtLeastSigned"
	case RangeIntAtLeastEitherSign:
		return "IntAtLeastEitherSign"
	case RangeNumAtLeastSigned:
		return "NumAtLeastSigned"
	case RangeNumAtLeastEitherSign:
		return "NumAtLeastEitherSign"
	default:
		return fmt.Sprintf("RangeKind(%d)", k)
	}
}

// IntOnly reports whether the variant excludes floats.
func (k RangeKind) IntOnly() bool {
	return k == RangeIntAtLeastSigned || k == RangeIntAtLeastEitherSign
}

// Demand returns the sign demand of the variant.
func (k RangeKind) Demand() SignDemand {
	if k == RangeIntAtLeastSigned || k == RangeNumAtLeastSigned {
		return DemandSigned
	}
	return NoDemand
}

// NumericRange is a bound placed on a number because of its literal value,
// e.g. -5 cannot be unsigned and 300 does not fit in a U8. Width is a lower
// bound on capacity, never a final answer.
type NumericRange struct {
	Kind  RangeKind
	Width IntLitWidth
}

// IntAtLeastSigned describes a signed integer of at least w.
func IntAtLeastSigned(w IntLitWidth) NumericRange {
	return NumericRange{Kind: RangeIntAtLeastSigned, Width: w}
}

// IntAtLeastEitherSign describes an integer of either sign of at least w.
func IntAtLeastEitherSign(w IntLitWidth) NumericRange {
	return NumericRange{Kind: RangeIntAtLeastEitherSign, Width: w}
}

// NumAtLeastSigned describes a signed integer of at least w, or a float.
func NumAtLeastSigned(w IntLitWidth) NumericRange {
	return NumericRange{Kind: RangeNumAtLeastSigned, Width: w}
}

// NumAtLeastEitherSign describes an integer of at least w, or a float.
func NumAtLeastEitherSign(w IntLitWidth) NumericRange {
	return NumericRange{Kind: RangeNumAtLeastEitherSign, Width: w}
}

func makeRange(kind RangeKind, w IntLitWidth) NumericRange {
	return NumericRange{Kind: kind, Width: w}
}

// Demand returns the sign demand and lower bound of r.
func (r NumericRange) Demand() (SignDemand, IntLitWidth) {
	return r.Kind.Demand(), r.Width
}

// Valid reports whether r's width appears in the defaulting table of its
// variant. Only valid ranges may be passed to VariableSlice.
func (r NumericRange) Valid() bool {
	if !r.Width.IsValid() {
		return false
	}
	table, ok := defaultingTable(r.Kind)
	if !ok {
		return false
	}
	return indexOf(table, IntLitWidthToVariable(r.Width)) >= 0
}

func (r NumericRange) String() string {
	if !r.Width.IsValid() {
		return r.Kind.String() + "(?)"
	}
	return r.Kind.String() + "(" + r.Width.TypeStr() + ")"
}

// ParseNumericRange parses the String form, e.g. "IntAtLeastSigned(I16)".
// Kind and width names are matched case-insensitively.
func ParseNumericRange(text string) (NumericRange, error) {
	text = strings.TrimSpace(text)
	open := strings.IndexByte(text, '(')
	if open <= 0 || !strings.HasSuffix(text, ")") {
		return NumericRange{}, fmt.Errorf("%w: %q", ErrMalformedRange, text)
	}
	head := strings.TrimSpace(text[:open])
	kind := RangeInvalid
	for k := RangeIntAtLeastSigned; k <= RangeNumAtLeastEitherSign; k++ {
		if strings.EqualFold(k.String(), head) {
			kind = k
			break
		}
	}
	if kind == RangeInvalid {
		return NumericRange{}, fmt.Errorf("%w: unknown variant %q", ErrMalformedRange, head)
	}
	w, err := ParseIntLitWidth(text[open+1 : len(text)-1])
	if err != nil {
		return NumericRange{}, fmt.Errorf("%w: %w", ErrMalformedRange, err)
	}
	r := makeRange(kind, w)
	if !r.Valid() {
		return NumericRange{}, fmt.Errorf("%w: %s never defaults to %s", ErrMalformedRange, kind, w)
	}
	return r, nil
}

// AllRanges enumerates every valid range, variant by variant.
func AllRanges() []NumericRange {
	out := make([]NumericRange, 0, 40)
	for k := RangeIntAtLeastSigned; k <= RangeNumAtLeastEitherSign; k++ {
		table, _ := defaultingTable(k)
		for _, v := range table {
			w, _ := VariableWidth(v)
			out = append(out, makeRange(k, w))
		}
	}
	return out
}
