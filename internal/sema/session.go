package sema

import (
	"errors"
	"fmt"

	"numlit/internal/diag"
	"numlit/internal/trace"
	"numlit/internal/types"
)

// Session seeds literal variables and narrows them one step at a time. It
// never commits a default; Candidates only lists them.
type Session struct {
	subs     *types.Subs
	reporter diag.Reporter
	tracer   trace.Tracer
	parent   uint64
	subjects map[types.Variable]string
}

// NewSession creates a session over subs. A nil reporter or tracer is
// replaced by a no-op one.
func NewSession(subs *types.Subs, reporter diag.Reporter, tracer trace.Tracer) *Session {
	if subs == nil {
		subs = types.NewSubs()
	}
	if reporter == nil {
		reporter = diag.NopReporter{}
	}
	if tracer == nil {
		tracer = trace.Nop
	}
	return &Session{
		subs:     subs,
		reporter: reporter,
		tracer:   tracer,
		subjects: make(map[types.Variable]string),
	}
}

func (s *Session) Subs() *types.Subs { return s.subs }

// SetParentSpan nests the session's trace events under span.
func (s *Session) SetParentSpan(span uint64) { s.parent = span }

func (s *Session) subject(v types.Variable) string {
	if name, ok := s.subjects[v]; ok {
		return name
	}
	return s.subs.Display(v)
}

// RangeOf returns the numeric range v currently carries.
func (s *Session) RangeOf(v types.Variable) (types.NumericRange, bool) {
	rn, ok := s.subs.GetContentWithoutCompacting(v).(types.RangedNumber)
	return rn.Range, ok
}

// Seed allocates a variable for lit whose content reflects the literal's bound.
func (s *Session) Seed(lit Literal) (types.Variable, error) {
	span := trace.Begin(s.tracer, trace.ScopeOp, "seed", s.parent)
	bound, err := BoundFor(lit)
	if err != nil {
		code := diag.NumBadLiteral
		if errors.Is(err, ErrLiteralTooLarge) {
			code = diag.NumLiteralOutOfRange
		}
		diag.ReportError(s.reporter, code, lit.Text, err.Error()).Emit()
		span.End("error")
		return types.NoVariable, err
	}

	seed := bound.Seed()
	var v types.Variable
	switch seed.Kind {
	case types.SeedExact:
		v = s.subs.Fresh(types.FlexVar{})
		s.subs.Link(v, seed.Exact)
	case types.SeedRange:
		v = s.subs.Fresh(types.RangedNumber{Range: seed.Range})
	default:
		v = s.subs.Fresh(types.FlexVar{})
	}
	s.subjects[v] = lit.Text
	span.WithExtra("literal", lit.Text).End(seed.String())
	return v, nil
}

// Narrow intersects v's range with r. On success the meet is stored; when
// nothing satisfies both, v is left unchanged and NumNoIntersection is
// reported.
func (s *Session) Narrow(v types.Variable, r types.NumericRange) bool {
	span := trace.Begin(s.tracer, trace.ScopeOp, "narrow", s.parent).WithExtra("with", r.String())
	content := s.subs.GetContentWithoutCompacting(v)
	switch c := content.(type) {
	case types.RangedNumber:
		meet, ok := c.Range.Intersection(r)
		if !ok {
			diag.ReportError(s.reporter, diag.NumNoIntersection, s.subject(v),
				fmt.Sprintf("no width satisfies both %s and %s", c.Range, r)).
				WithNote(r.String(), "narrowing constraint").
				Emit()
			span.End("none")
			return false
		}
		s.subs.SetContent(v, types.RangedNumber{Range: meet})
		span.End(meet.String())
		return true
	case types.FlexVar:
		s.subs.SetContent(v, types.RangedNumber{Range: r})
		span.End(r.String())
		return true
	}

	res := r.MatchContent(s.subs, content)
	s.reportMatch(v, s.subs.Display(v), r, res)
	span.End(res.String())
	return res == types.ContentInRange || res == types.RangeInContent
}

// Check compares v's range against candidate without binding anything.
func (s *Session) Check(v, candidate types.Variable) types.MatchResult {
	span := trace.Begin(s.tracer, trace.ScopeOp, "check", s.parent)
	r, ok := s.RangeOf(v)
	if !ok {
		diag.ReportWarning(s.reporter, diag.NumNoCandidates, s.subject(v),
			"literal carries no numeric range to check").Emit()
		span.End("unranged")
		return types.DifferentContent
	}
	res := r.MatchContent(s.subs, s.subs.GetContentWithoutCompacting(candidate))
	s.reportMatch(v, s.subs.Display(candidate), r, res)
	span.WithExtra("candidate", s.subs.Display(candidate)).End(res.String())
	return res
}

func (s *Session) reportMatch(v types.Variable, other string, r types.NumericRange, res types.MatchResult) {
	switch res {
	case types.NoIntersection:
		diag.ReportError(s.reporter, diag.NumNoIntersection, s.subject(v),
			fmt.Sprintf("%s cannot hold a literal constrained to %s", other, r)).
			WithNote(other, "candidate type").
			Emit()
	case types.DifferentContent:
		diag.ReportError(s.reporter, diag.NumDifferentContent, s.subject(v),
			fmt.Sprintf("%s is not a numeric type", other)).
			WithNote(other, "candidate type").
			Emit()
	}
}

// Candidates lists the defaults v could take, narrowest first. It is empty
// when v carries no range.
func (s *Session) Candidates(v types.Variable) []types.Variable {
	r, ok := s.RangeOf(v)
	if !ok {
		return nil
	}
	return r.VariableSlice()
}
