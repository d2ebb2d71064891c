package types

// intersectionRule picks the variant of the meet of a and b and the side of
// zero on which their widths are compared.
func intersectionRule(a, b RangeKind) (kind RangeKind, isNegative bool) {
	switch {
	// against a signed int the meet is a signed int
	case a == RangeIntAtLeastSigned || b == RangeIntAtLeastSigned:
		return RangeIntAtLeastSigned, true
	// a signed number that is also an int
	case a == RangeNumAtLeastSigned && b == RangeIntAtLeastEitherSign,
		a == RangeIntAtLeastEitherSign && b == RangeNumAtLeastSigned:
		return RangeIntAtLeastSigned, true
	case a == RangeNumAtLeastSigned && (b == RangeNumAtLeastSigned || b == RangeNumAtLeastEitherSign),
		a == RangeNumAtLeastEitherSign && b == RangeNumAtLeastSigned:
		return RangeNumAtLeastSigned, true
	case a == RangeIntAtLeastEitherSign && (b == RangeIntAtLeastEitherSign || b == RangeNumAtLeastEitherSign),
		a == RangeNumAtLeastEitherSign && b == RangeIntAtLeastEitherSign:
		return RangeIntAtLeastEitherSign, false
	case a == RangeNumAtLeastEitherSign && b == RangeNumAtLeastEitherSign:
		return RangeNumAtLeastEitherSign, false
	default:
		return RangeInvalid, false
	}
}

// Intersection returns the greatest lower bound of r and other, i.e. the
// weakest range that satisfies both, or false when they share no width.
//
// The result is not left-biased. When both widths cover each other the one
// later in the defaulting table wins, and a float-family width on an int-only
// variant is settled to an integer width, so IntAtLeastSigned(I8) meets
// NumAtLeastSigned(F32) at IntAtLeastSigned(I32) rather than at the
// ill-formed IntAtLeastSigned(F32). Both forms accept the same widths; see
// DESIGN.md, open-question decision 3.
func (r NumericRange) Intersection(other NumericRange) (NumericRange, bool) {
	left, right := r.Width, other.Width
	if !left.IsValid() || !right.IsValid() {
		return NumericRange{}, false
	}
	kind, isNegative := intersectionRule(r.Kind, other.Kind)
	if kind == RangeInvalid {
		return NumericRange{}, false
	}

	// A signed meet cannot keep a lower bound that is not signed itself.
	if isNegative && (!left.IsSigned() || !right.IsSigned()) {
		return NumericRange{}, false
	}

	leftCovers := left.IsSuperset(right, isNegative)
	rightCovers := right.IsSuperset(left, isNegative)
	var width IntLitWidth
	switch {
	case leftCovers && rightCovers:
		// Same capacity on this side (U64/Nat, I128/Dec): keep the one that
		// defaults later so the answer does not depend on argument order.
		width = left
		if tablePosition(right) > tablePosition(left) {
			width = right
		}
	case leftCovers:
		width = left
	case rightCovers:
		width = right
	default:
		return NumericRange{}, false
	}
	return settle(kind, width, isNegative)
}

// settle builds kind(width). An int variant never defaults to a float
// width, so a float-family bound is raised to the first integer width of
// the variant's table that covers it (F32 -> I32, F64 -> I64, Dec -> I128).
func settle(kind RangeKind, width IntLitWidth, isNegative bool) (NumericRange, bool) {
	table, _ := defaultingTable(kind)
	if indexOf(table, IntLitWidthToVariable(width)) >= 0 {
		return makeRange(kind, width), true
	}
	for _, v := range table {
		candidate, _ := VariableWidth(v)
		if candidate.IsSuperset(width, isNegative) && candidate.IsSuperset(width, false) {
			return makeRange(kind, candidate), true
		}
	}
	return NumericRange{}, false
}
