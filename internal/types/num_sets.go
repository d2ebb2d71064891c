package types

import (
	"slices"

	"github.com/hashicorp/go-set/v3"
)

// SatisfyingWidths is the set of concrete widths r accepts.
func (r NumericRange) SatisfyingWidths() *set.Set[IntLitWidth] {
	out := set.New[IntLitWidth](int(widthCount))
	for w := IntLitWidth(0); w < widthCount; w++ {
		if r.ContainsWidth(w) {
			out.Insert(w)
		}
	}
	return out
}

// SortedWidths flattens a width set in declaration order.
func SortedWidths(s *set.Set[IntLitWidth]) []IntLitWidth {
	out := s.Slice()
	slices.Sort(out)
	return out
}
