package types

import (
	"fmt"

	"fortio.org/safecast"

	"numlit/internal/symbols"
)

// Variable is a handle to a type variable stored in Subs.
type Variable uint32

// NoVariable marks the absence of a variable.
const NoVariable Variable = 0

// Reserved variables for the concrete numeric builtins. NewSubs allocates
// them first, in this order, so the handles are stable across stores.
const (
	VarU8 Variable = iota + 1
	VarU16
	VarU32
	VarU64
	VarU128
	VarI8
	VarI16
	VarI32
	VarI64
	VarI128
	VarNat
	VarF32
	VarF64
	VarDec

	firstUserVariable
)

// Content is the store's current knowledge about a variable.
type Content interface {
	Kind() ContentKind
}

// ContentKind tags the Content variants.
type ContentKind uint8

const (
	ContentFlexVar ContentKind = iota + 1
	ContentRigidVar
	ContentRangedNumber
	ContentAlias
	ContentStructure
	ContentError
)

func (k ContentKind) String() string {
	switch k {
	case ContentFlexVar:
		return "flex"
	case ContentRigidVar:
		return "rigid"
	case ContentRangedNumber:
		return "ranged"
	case ContentAlias:
		return "alias"
	case ContentStructure:
		return "structure"
	case ContentError:
		return "error"
	default:
		return fmt.Sprintf("ContentKind(%d)", k)
	}
}

// FlexVar is an unbound variable that unification may still fill in.
type FlexVar struct{ Name string }

// RigidVar is an unbound variable coming from an annotation.
type RigidVar struct{ Name string }

// RangedNumber is a numeric literal that is still polymorphic within Range.
type RangedNumber struct{ Range NumericRange }

// Alias names a builtin type. Args are the alias arguments, Real is the
// variable holding the type the alias stands for.
type Alias struct {
	Symbol symbols.Symbol
	Args   VariableSubsSlice
	Real   Variable
}

// Structure is any shape the numeric core does not look into.
type Structure struct {
	Name string
	Args VariableSubsSlice
}

// ErrorContent marks a variable that already failed to type check.
type ErrorContent struct{}

func (FlexVar) Kind() ContentKind      { return ContentFlexVar }
func (RigidVar) Kind() ContentKind     { return ContentRigidVar }
func (RangedNumber) Kind() ContentKind { return ContentRangedNumber }
func (Alias) Kind() ContentKind        { return ContentAlias }
func (Structure) Kind() ContentKind    { return ContentStructure }
func (ErrorContent) Kind() ContentKind { return ContentError }

// VariableSubsSlice addresses a run of variables stored in Subs.
type VariableSubsSlice struct {
	Start  uint32
	Length uint16
}

// Len returns the number of variables in the slice.
func (s VariableSubsSlice) Len() int { return int(s.Length) }

type slot struct {
	content Content
	link    Variable // NoVariable when the slot owns its content
}

// Subs stores the content of every type variable. It has a single owner:
// concurrent mutation is not supported, concurrent reads of a store nobody
// writes to are fine.
type Subs struct {
	slots     []slot
	variables []Variable
}

// NewSubs constructs a store seeded with the reserved numeric builtins.
func NewSubs() *Subs {
	s := &Subs{
		slots:     make([]slot, 0, 64),
		variables: make([]Variable, 0, 32),
	}
	s.slots = append(s.slots, slot{content: ErrorContent{}}) // reserve 0
	for v := VarU8; v < firstUserVariable; v++ {
		w, ok := VariableWidth(v)
		if !ok {
			panic(fmt.Sprintf("types: reserved variable %d has no width", v))
		}
		got := s.push(Alias{Symbol: w.Symbol()})
		if got != v {
			panic(fmt.Sprintf("types: reserved variable %s allocated as %d", w, got))
		}
	}
	// Real representation of each builtin is opaque to the numeric core.
	for v := VarU8; v < firstUserVariable; v++ {
		w, _ := VariableWidth(v)
		repr := s.push(Structure{Name: "@" + w.TypeStr()})
		alias := s.slots[v].content.(Alias)
		alias.Real = repr
		s.slots[v].content = alias
	}
	return s
}

func (s *Subs) push(c Content) Variable {
	n, err := safecast.Conv[uint32](len(s.slots))
	if err != nil {
		panic(fmt.Errorf("len(slots) overflow: %w", err))
	}
	s.slots = append(s.slots, slot{content: c})
	return Variable(n)
}

// Fresh allocates a new variable holding content.
func (s *Subs) Fresh(c Content) Variable {
	if c == nil {
		c = FlexVar{}
	}
	return s.push(c)
}

// Len reports how many variables have been allocated, the reserved zero included.
func (s *Subs) Len() int { return len(s.slots) }

// Root follows links until it reaches the variable that owns the content.
func (s *Subs) Root(v Variable) Variable {
	for {
		if v == NoVariable || int(v) >= len(s.slots) {
			return v
		}
		next := s.slots[v].link
		if next == NoVariable {
			return v
		}
		v = next
	}
}

// GetContentWithoutCompacting returns the content of v's representative
// without shortening the link chain.
func (s *Subs) GetContentWithoutCompacting(v Variable) Content {
	root := s.Root(v)
	if root == NoVariable || int(root) >= len(s.slots) {
		return ErrorContent{}
	}
	return s.slots[root].content
}

// SetContent replaces the content of v's representative.
func (s *Subs) SetContent(v Variable, c Content) {
	root := s.Root(v)
	if root == NoVariable || int(root) >= len(s.slots) {
		panic("types: invalid Variable")
	}
	s.slots[root].content = c
}

// Link makes from an alias of to; from's own content is dropped.
func (s *Subs) Link(from, to Variable) {
	from, to = s.Root(from), s.Root(to)
	if from == to {
		return
	}
	if from == NoVariable || to == NoVariable || int(from) >= len(s.slots) || int(to) >= len(s.slots) {
		panic("types: invalid Variable")
	}
	s.slots[from].link = to
	s.slots[from].content = nil
}

// InsertVariables stores vars contiguously and returns a handle to them.
func (s *Subs) InsertVariables(vars []Variable) VariableSubsSlice {
	start, err := safecast.Conv[uint32](len(s.variables))
	if err != nil {
		panic(fmt.Errorf("len(variables) overflow: %w", err))
	}
	length, err := safecast.Conv[uint16](len(vars))
	if err != nil {
		panic(fmt.Errorf("variable slice too long: %w", err))
	}
	s.variables = append(s.variables, vars...)
	return VariableSubsSlice{Start: start, Length: length}
}

// GetSubsSlice dereferences a stored variable slice. The result aliases the
// store and must not be modified.
func (s *Subs) GetSubsSlice(sl VariableSubsSlice) []Variable {
	end := int(sl.Start) + int(sl.Length)
	if end > len(s.variables) {
		panic("types: variable slice out of range")
	}
	return s.variables[sl.Start:end:end]
}

// Wrap allocates an alias of wrapper applied to arg. Real points at arg,
// which is what the wrapper stands for once arg is known.
func (s *Subs) Wrap(wrapper symbols.Symbol, arg Variable) Variable {
	args := s.InsertVariables([]Variable{arg})
	return s.Fresh(Alias{Symbol: wrapper, Args: args, Real: arg})
}
