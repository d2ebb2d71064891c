package types

import (
	"fmt"
	"slices"
)

// IntLitWidthToVariable returns the reserved variable of w.
func IntLitWidthToVariable(w IntLitWidth) Variable { return w.facts().variable }

// FloatWidthToVariable returns the reserved variable of f.
func FloatWidthToVariable(f FloatWidth) Variable { return IntLitWidthToVariable(f.IntLitWidth()) }

// VariableWidth maps a reserved numeric variable back to its width.
func VariableWidth(v Variable) (IntLitWidth, bool) {
	for w := IntLitWidth(0); w < widthCount; w++ {
		if widthTable[w].variable == v {
			return w, true
		}
	}
	return 0, false
}

// Defaulting tables, ascending by capacity. Earlier entries are preferred
// when a literal has to be given a concrete type. Never mutated.
var (
	allIntOrFloatVariables = []Variable{
		VarI8,
		VarU8,
		VarI16,
		VarU16,
		VarF32,
		VarI32,
		VarU32,
		VarF64,
		VarI64,
		VarNat, // FIXME: Nat's order here depends on the platform
		VarU64,
		VarI128,
		VarDec,
		VarU128,
	}

	signedIntOrFloatVariables = []Variable{
		VarI8,
		VarI16,
		VarF32,
		VarI32,
		VarF64,
		VarI64,
		VarI128,
		VarDec,
	}

	allIntVariables = []Variable{
		VarI8,
		VarU8,
		VarI16,
		VarU16,
		VarI32,
		VarU32,
		VarI64,
		VarNat, // FIXME: Nat's order here depends on the platform
		VarU64,
		VarI128,
		VarU128,
	}

	signedIntVariables = []Variable{
		VarI8,
		VarI16,
		VarI32,
		VarI64,
		VarI128,
	}
)

func defaultingTable(kind RangeKind) ([]Variable, bool) {
	switch kind {
	case RangeIntAtLeastSigned:
		return signedIntVariables, true
	case RangeIntAtLeastEitherSign:
		return allIntVariables, true
	case RangeNumAtLeastSigned:
		return signedIntOrFloatVariables, true
	case RangeNumAtLeastEitherSign:
		return allIntOrFloatVariables, true
	default:
		return nil, false
	}
}

func indexOf(table []Variable, v Variable) int {
	for i, candidate := range table {
		if candidate == v {
			return i
		}
	}
	return -1
}

// VariableSlice lists the concrete builtins that still satisfy r, smallest
// first. The result is a copy; the tables themselves stay untouched.
// A width missing from its variant's table is a broken invariant and panics.
func (r NumericRange) VariableSlice() []Variable {
	table, ok := defaultingTable(r.Kind)
	if !ok {
		panic(fmt.Sprintf("types: no defaulting table for %s", r.Kind))
	}
	start := indexOf(table, IntLitWidthToVariable(r.Width))
	if start < 0 {
		panic(fmt.Sprintf("types: lower bound %s missing from the %s defaulting table", r.Width, r.Kind))
	}
	return slices.Clone(table[start:])
}

// DefaultWidths is VariableSlice projected onto widths.
func (r NumericRange) DefaultWidths() []IntLitWidth {
	vars := r.VariableSlice()
	out := make([]IntLitWidth, len(vars))
	for i, v := range vars {
		w, ok := VariableWidth(v)
		if !ok {
			panic(fmt.Sprintf("types: defaulting table holds non-numeric variable %d", v))
		}
		out[i] = w
	}
	return out
}

// tablePosition is w's position in the all-numbers table.
func tablePosition(w IntLitWidth) int {
	return indexOf(allIntOrFloatVariables, IntLitWidthToVariable(w))
}
