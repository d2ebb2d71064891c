package symbols

import (
	"strings"

	"golang.org/x/text/cases"
)

// Symbol identifies a built-in type name. Symbols are compared by identity only.
type Symbol uint16

const (
	// NoSymbol marks the absence of a symbol reference.
	NoSymbol Symbol = iota

	// Numeric wrappers and families.
	NumNum
	NumInt
	NumInteger
	NumFrac
	NumFloatingPoint
	NumBinary32
	NumBinary64
	NumDecimal

	// Concrete integers, each with its tag alias.
	NumI8
	NumSigned8
	NumU8
	NumUnsigned8
	NumI16
	NumSigned16
	NumU16
	NumUnsigned16
	NumI32
	NumSigned32
	NumU32
	NumUnsigned32
	NumI64
	NumSigned64
	NumU64
	NumUnsigned64
	NumI128
	NumSigned128
	NumU128
	NumUnsigned128
	NumNat
	NumNatural

	// Concrete fractions.
	NumDec
	NumF32
	NumF64

	// Non-numeric builtins that a content shape may still name.
	StrStr
	BoolBool
	ListList

	symbolCount
)

// IsValid reports whether the symbol refers to a known builtin.
func (s Symbol) IsValid() bool { return s != NoSymbol && s < symbolCount }

var symbolNames = [symbolCount]string{
	NoSymbol:         "<none>",
	NumNum:           "Num",
	NumInt:           "Int",
	NumInteger:       "Integer",
	NumFrac:          "Frac",
	NumFloatingPoint: "FloatingPoint",
	NumBinary32:      "Binary32",
	NumBinary64:      "Binary64",
	NumDecimal:       "Decimal",
	NumI8:            "I8",
	NumSigned8:       "Signed8",
	NumU8:            "U8",
	NumUnsigned8:     "Unsigned8",
	NumI16:           "I16",
	NumSigned16:      "Signed16",
	NumU16:           "U16",
	NumUnsigned16:    "Unsigned16",
	NumI32:           "I32",
	NumSigned32:      "Signed32",
	NumU32:           "U32",
	NumUnsigned32:    "Unsigned32",
	NumI64:           "I64",
	NumSigned64:      "Signed64",
	NumU64:           "U64",
	NumUnsigned64:    "Unsigned64",
	NumI128:          "I128",
	NumSigned128:     "Signed128",
	NumU128:          "U128",
	NumUnsigned128:   "Unsigned128",
	NumNat:           "Nat",
	NumNatural:       "Natural",
	NumDec:           "Dec",
	NumF32:           "F32",
	NumF64:           "F64",
	StrStr:           "Str",
	BoolBool:         "Bool",
	ListList:         "List",
}

// String returns the source-level name of the symbol.
func (s Symbol) String() string {
	if s >= symbolCount {
		return "<invalid>"
	}
	return symbolNames[s]
}

// IsNumericWrapper reports whether the symbol is a one-argument numeric
// wrapper (Num a, Int a, Integer a).
func (s Symbol) IsNumericWrapper() bool {
	switch s {
	case NumNum, NumInt, NumInteger:
		return true
	default:
		return false
	}
}

// foldedNames maps case-folded names to symbols; built once and never mutated.
var foldedNames = func() map[string]Symbol {
	m := make(map[string]Symbol, int(symbolCount))
	folder := cases.Fold()
	for s := NoSymbol + 1; s < symbolCount; s++ {
		m[folder.String(symbolNames[s])] = s
	}
	return m
}()

// Lookup resolves a builtin by name, ignoring case.
func Lookup(name string) (Symbol, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return NoSymbol, false
	}
	s, ok := foldedNames[cases.Fold().String(name)]
	return s, ok
}

// All returns every builtin symbol in declaration order.
func All() []Symbol {
	out := make([]Symbol, 0, int(symbolCount)-1)
	for s := NoSymbol + 1; s < symbolCount; s++ {
		out = append(out, s)
	}
	return out
}
