package types

import (
	"fmt"
	"strings"
)

const maxDisplayDepth = 16

// Display renders the content of v for diagnostics.
func (s *Subs) Display(v Variable) string {
	var sb strings.Builder
	s.display(&sb, v, 0)
	return sb.String()
}

func (s *Subs) display(sb *strings.Builder, v Variable, depth int) {
	if depth > maxDisplayDepth {
		sb.WriteString("…")
		return
	}
	switch c := s.GetContentWithoutCompacting(v).(type) {
	case FlexVar:
		if c.Name == "" {
			sb.WriteString("*")
		} else {
			sb.WriteString(c.Name)
		}
	case RigidVar:
		sb.WriteString("'")
		sb.WriteString(c.Name)
	case RangedNumber:
		sb.WriteString(c.Range.String())
	case Alias:
		sb.WriteString(c.Symbol.String())
		s.displayArgs(sb, c.Args, depth)
	case Structure:
		sb.WriteString(c.Name)
		s.displayArgs(sb, c.Args, depth)
	case ErrorContent:
		sb.WriteString("<error>")
	default:
		fmt.Fprintf(sb, "<%T>", c)
	}
}

func (s *Subs) displayArgs(sb *strings.Builder, args VariableSubsSlice, depth int) {
	if args.Len() == 0 {
		return
	}
	sb.WriteString("(")
	for i, arg := range s.GetSubsSlice(args) {
		if i > 0 {
			sb.WriteString(", ")
		}
		s.display(sb, arg, depth+1)
	}
	sb.WriteString(")")
}
