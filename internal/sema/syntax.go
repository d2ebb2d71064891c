package sema

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"numlit/internal/symbols"
	"numlit/internal/types"
)

// ParseContent reads a content shape and allocates it in subs:
//
//	I64 | Signed64 | Frac     builtin names
//	Num(*) | Int('a)          wrappers around a flex or rigid variable
//	Integer(Num(I8))          nested wrappers
//	IntAtLeastSigned(I16)     an unresolved range
//	List(U8) | Str            any other name is an opaque structure
func ParseContent(subs *types.Subs, text string) (types.Variable, error) {
	p := &contentParser{subs: subs, src: text}
	v, err := p.content(0)
	if err != nil {
		return types.NoVariable, err
	}
	p.skipSpace()
	if !p.eof() {
		return types.NoVariable, p.errorf("unexpected %q", p.src[p.pos:])
	}
	return v, nil
}

const maxContentDepth = 32

type contentParser struct {
	subs *types.Subs
	src  string
	pos  int
}

func (p *contentParser) eof() bool { return p.pos >= len(p.src) }

func (p *contentParser) errorf(format string, args ...any) error {
	return fmt.Errorf("%w at %d: %s", ErrSyntax, p.pos, fmt.Sprintf(format, args...))
}

// peek decodes the rune at pos; size is 0 at end of input.
func (p *contentParser) peek() (rune, int) {
	if p.eof() {
		return utf8.RuneError, 0
	}
	return utf8.DecodeRuneInString(p.src[p.pos:])
}

func (p *contentParser) skipSpace() {
	for r, size := p.peek(); size > 0 && unicode.IsSpace(r); r, size = p.peek() {
		p.pos += size
	}
}

func (p *contentParser) accept(b byte) bool {
	p.skipSpace()
	if !p.eof() && p.src[p.pos] == b {
		p.pos++
		return true
	}
	return false
}

func (p *contentParser) ident() string {
	p.skipSpace()
	start := p.pos
	for r, size := p.peek(); size > 0; r, size = p.peek() {
		if r != '_' && r != '@' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			break
		}
		p.pos += size
	}
	return p.src[start:p.pos]
}

func (p *contentParser) content(depth int) (types.Variable, error) {
	if depth > maxContentDepth {
		return types.NoVariable, p.errorf("nesting deeper than %d", maxContentDepth)
	}
	if p.accept('*') {
		return p.subs.Fresh(types.FlexVar{}), nil
	}
	if p.accept('\'') {
		name := p.ident()
		if name == "" {
			return types.NoVariable, p.errorf("rigid variable needs a name")
		}
		return p.subs.Fresh(types.RigidVar{Name: name}), nil
	}

	start := p.pos
	name := p.ident()
	if name == "" {
		if p.eof() {
			return types.NoVariable, p.errorf("unexpected end of input")
		}
		r, _ := p.peek()
		return types.NoVariable, p.errorf("unexpected %q", r)
	}

	if !p.accept('(') {
		return p.named(name), nil
	}

	if isRangeKind(name) {
		end := p.closing()
		r, err := types.ParseNumericRange(p.src[start:end])
		if err != nil {
			return types.NoVariable, fmt.Errorf("%w: %w", ErrSyntax, err)
		}
		p.pos = end
		return p.subs.Fresh(types.RangedNumber{Range: r}), nil
	}

	args, err := p.args(depth)
	if err != nil {
		return types.NoVariable, err
	}
	sym, ok := symbols.Lookup(name)
	if ok && sym.IsNumericWrapper() {
		if len(args) != 1 {
			return types.NoVariable, p.errorf("%s takes exactly one argument, got %d", sym, len(args))
		}
		return p.subs.Wrap(sym, args[0]), nil
	}
	return p.subs.Fresh(types.Structure{Name: name, Args: p.subs.InsertVariables(args)}), nil
}

func isRangeKind(name string) bool {
	for k := types.RangeIntAtLeastSigned; k <= types.RangeNumAtLeastEitherSign; k++ {
		if strings.EqualFold(k.String(), name) {
			return true
		}
	}
	return false
}

// closing returns the offset just past the ')' matching the '(' before pos,
// or len(src) when it is unbalanced.
func (p *contentParser) closing() int {
	depth := 1
	for i := p.pos; i < len(p.src); i++ {
		switch p.src[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return len(p.src)
}

func (p *contentParser) args(depth int) ([]types.Variable, error) {
	var out []types.Variable
	if p.accept(')') {
		return out, nil
	}
	for {
		v, err := p.content(depth + 1)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
		if p.accept(')') {
			return out, nil
		}
		if !p.accept(',') {
			return nil, p.errorf("expected ',' or ')'")
		}
	}
}

// named resolves a bare name: concrete widths map to their reserved
// variables, other builtins become aliases, anything else is a structure.
func (p *contentParser) named(name string) types.Variable {
	if w, err := types.ParseIntLitWidth(name); err == nil {
		return types.IntLitWidthToVariable(w)
	}
	sym, ok := symbols.Lookup(name)
	if !ok {
		return p.subs.Fresh(types.Structure{Name: name})
	}
	if sym.IsNumericWrapper() {
		// a bare wrapper reads as Wrapper(*)
		return p.subs.Wrap(sym, p.subs.Fresh(types.FlexVar{}))
	}
	repr := p.subs.Fresh(types.Structure{Name: "@" + sym.String()})
	return p.subs.Fresh(types.Alias{Symbol: sym, Real: repr})
}
