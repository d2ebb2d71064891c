package sema

import (
	"fmt"
	"math/big"
	"strings"

	"numlit/internal/types"
)

// LiteralKind tells which family a literal may be promoted into.
type LiteralKind uint8

const (
	// LiteralNum is a plain decimal integer; it may still become a float.
	LiteralNum LiteralKind = iota + 1
	// LiteralInt is integer-only, e.g. radix-prefixed.
	LiteralInt
	// LiteralFloat has a fraction or exponent.
	LiteralFloat
)

func (k LiteralKind) String() string {
	switch k {
	case LiteralNum:
		return "num"
	case LiteralInt:
		return "int"
	case LiteralFloat:
		return "float"
	default:
		return "invalid"
	}
}

// Literal is an already-tokenized numeric literal.
type Literal struct {
	Text string
	// Value is nil for float literals.
	Value *big.Int
	Kind  LiteralKind
	// Suffix pins the literal to one width, e.g. 5u8 or 1.5f64.
	Suffix    types.IntLitWidth
	HasSuffix bool
}

func (l Literal) String() string { return l.Text }

// suffixes lists width suffixes in lower case; hex literals only accept the
// ones that cannot be mistaken for hex digits.
var suffixes = func() []string {
	out := make([]string, 0, 14)
	for _, w := range types.AllWidths() {
		out = append(out, strings.ToLower(w.TypeStr()))
	}
	return out
}()

func isHexDigits(s string) bool {
	for _, r := range s {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return false
		}
	}
	return true
}

// ParseLiteral converts literal text (decimal, 0x/0o/0b, or with a fraction
// or exponent, optionally with a width suffix) into a Literal.
func ParseLiteral(text string) (Literal, error) {
	lit := Literal{Text: strings.TrimSpace(text)}
	body := lit.Text
	if body == "" {
		return Literal{}, fmt.Errorf("%w: empty", ErrBadLiteral)
	}

	sign := ""
	if body[0] == '-' || body[0] == '+' {
		sign, body = body[:1], body[1:]
	}
	lower := strings.ToLower(body)
	radix := len(lower) > 2 && lower[0] == '0' && strings.ContainsRune("xob", rune(lower[1]))

	for _, sfx := range suffixes {
		if radix && lower[1] == 'x' && isHexDigits(sfx) {
			continue
		}
		if len(lower) > len(sfx) && strings.HasSuffix(lower, sfx) {
			w, err := types.ParseIntLitWidth(sfx)
			if err != nil {
				return Literal{}, err
			}
			lit.Suffix, lit.HasSuffix = w, true
			body = strings.TrimSuffix(body[:len(body)-len(sfx)], "_")
			lower = strings.ToLower(body)
			break
		}
	}

	switch {
	case radix:
		lit.Kind = LiteralInt
		v, ok := new(big.Int).SetString(sign+body, 0)
		if !ok {
			return Literal{}, fmt.Errorf("%w: %q", ErrBadLiteral, lit.Text)
		}
		lit.Value = v
	case strings.ContainsAny(lower, ".e"):
		lit.Kind = LiteralFloat
		digits := strings.ReplaceAll(body, "_", "")
		if _, ok := new(big.Float).SetString(sign + digits); !ok {
			return Literal{}, fmt.Errorf("%w: %q", ErrBadLiteral, lit.Text)
		}
		if lit.HasSuffix {
			if _, isFloat := lit.Suffix.FloatWidth(); !isFloat {
				return Literal{}, fmt.Errorf("%w: %q has a fraction but an integer suffix", ErrBadLiteral, lit.Text)
			}
		}
	default:
		lit.Kind = LiteralNum
		digits := strings.ReplaceAll(body, "_", "")
		if digits == "" || strings.HasPrefix(body, "_") || strings.Trim(digits, "0123456789") != "" {
			return Literal{}, fmt.Errorf("%w: %q", ErrBadLiteral, lit.Text)
		}
		v, ok := new(big.Int).SetString(sign+digits, 10)
		if !ok {
			return Literal{}, fmt.Errorf("%w: %q", ErrBadLiteral, lit.Text)
		}
		lit.Value = v
	}
	return lit, nil
}

var (
	negativeLadder = []types.IntLitWidth{types.I8, types.I16, types.I32, types.I64, types.I128}
	positiveLadder = []types.IntLitWidth{
		types.I8, types.U8, types.I16, types.U16, types.I32,
		types.U32, types.I64, types.U64, types.I128, types.U128,
	}
)

// smallestWidth finds the narrowest width that can hold v, and whether v
// needs a signed one.
func smallestWidth(v *big.Int) (types.SignDemand, types.IntLitWidth, bool) {
	if v.Sign() < 0 {
		for _, w := range negativeLadder {
			if w.MinValue().Cmp(v) <= 0 {
				return types.DemandSigned, w, true
			}
		}
		return types.DemandSigned, 0, false
	}
	for _, w := range positiveLadder {
		if w.MaxValue().Cmp(v) >= 0 {
			return types.NoDemand, w, true
		}
	}
	return types.NoDemand, 0, false
}

// Bound is one of types.IntBound, types.FloatBound or types.NumBound.
type Bound interface {
	Seed() types.Seed
}

// BoundFor classifies a literal into the bound its value imposes.
func BoundFor(lit Literal) (Bound, error) {
	if lit.HasSuffix {
		if fw, isFloat := lit.Suffix.FloatWidth(); isFloat {
			return types.FloatBoundExactly(fw), nil
		}
		if lit.Kind == LiteralFloat {
			return nil, fmt.Errorf("%w: %q", ErrBadLiteral, lit.Text)
		}
		if !lit.Suffix.Fits(lit.Value) {
			return nil, fmt.Errorf("%w: %s does not fit in %s", ErrLiteralTooLarge, lit.Text, lit.Suffix)
		}
		return types.IntBoundExactly(lit.Suffix), nil
	}

	switch lit.Kind {
	case LiteralFloat:
		return types.FloatBound{}, nil
	case LiteralNum, LiteralInt:
		if lit.Value == nil {
			return nil, fmt.Errorf("%w: %q has no value", ErrBadLiteral, lit.Text)
		}
		demand, w, ok := smallestWidth(lit.Value)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrLiteralTooLarge, lit.Text)
		}
		if lit.Kind == LiteralNum {
			return types.NumBoundAtLeast(demand, w), nil
		}
		return types.IntBoundAtLeastOf(demand, w), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrBadLiteral, lit.Text)
}
