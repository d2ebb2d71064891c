package driver

import (
	"fmt"
	"strings"

	"numlit/internal/diag"
	"numlit/internal/sema"
	"numlit/internal/trace"
	"numlit/internal/types"
)

// Scenario operations.
const (
	OpMeet     = "meet"
	OpMatch    = "match"
	OpDefaults = "defaults"
	OpSeed     = "seed"
	OpCheck    = "check"
)

// Ops lists the operations a case may name.
func Ops() []string {
	return []string{OpMeet, OpMatch, OpDefaults, OpSeed, OpCheck}
}

// errInvalidCase marks problems with the case itself rather than a wrong
// expectation.
type errInvalidCase struct{ msg string }

func (e *errInvalidCase) Error() string { return e.msg }

func invalidf(format string, args ...any) error {
	return &errInvalidCase{msg: fmt.Sprintf(format, args...)}
}

func wantArgs(c Case, n int) error {
	if len(c.Args) != n {
		return invalidf("%s takes %d argument(s), got %d", c.Op, n, len(c.Args))
	}
	return nil
}

func parseRange(text string) (types.NumericRange, error) {
	r, err := types.ParseNumericRange(text)
	if err != nil {
		return types.NumericRange{}, invalidf("%v", err)
	}
	return r, nil
}

// Evaluate runs one case and renders its outcome the way Expect is written.
// Session diagnostics go to reporter.
func Evaluate(c Case, reporter diag.Reporter, tracer trace.Tracer, parent uint64) (string, error) {
	switch strings.ToLower(strings.TrimSpace(c.Op)) {
	case OpMeet:
		if err := wantArgs(c, 2); err != nil {
			return "", err
		}
		a, err := parseRange(c.Args[0])
		if err != nil {
			return "", err
		}
		b, err := parseRange(c.Args[1])
		if err != nil {
			return "", err
		}
		if meet, ok := a.Intersection(b); ok {
			return meet.String(), nil
		}
		return "none", nil

	case OpMatch:
		if err := wantArgs(c, 2); err != nil {
			return "", err
		}
		r, err := parseRange(c.Args[0])
		if err != nil {
			return "", err
		}
		subs := types.NewSubs()
		v, err := sema.ParseContent(subs, c.Args[1])
		if err != nil {
			return "", invalidf("%v", err)
		}
		return r.MatchContent(subs, subs.GetContentWithoutCompacting(v)).String(), nil

	case OpDefaults:
		if err := wantArgs(c, 1); err != nil {
			return "", err
		}
		r, err := parseRange(c.Args[0])
		if err != nil {
			return "", err
		}
		return joinWidths(r.DefaultWidths()), nil

	case OpSeed:
		if err := wantArgs(c, 1); err != nil {
			return "", err
		}
		lit, err := sema.ParseLiteral(c.Args[0])
		if err != nil {
			return "", invalidf("%v", err)
		}
		bound, err := sema.BoundFor(lit)
		if err != nil {
			return "error", nil
		}
		return bound.Seed().String(), nil

	case OpCheck:
		if len(c.Args) < 2 {
			return "", invalidf("check takes a literal, optional narrowing ranges and a candidate")
		}
		lit, err := sema.ParseLiteral(c.Args[0])
		if err != nil {
			return "", invalidf("%v", err)
		}
		s := sema.NewSession(types.NewSubs(), reporter, tracer)
		s.SetParentSpan(parent)
		v, err := s.Seed(lit)
		if err != nil {
			return "error", nil
		}
		for _, text := range c.Args[1 : len(c.Args)-1] {
			r, err := parseRange(text)
			if err != nil {
				return "", err
			}
			if !s.Narrow(v, r) {
				return types.NoIntersection.String(), nil
			}
		}
		cand, err := sema.ParseContent(s.Subs(), c.Args[len(c.Args)-1])
		if err != nil {
			return "", invalidf("%v", err)
		}
		return s.Check(v, cand).String(), nil
	}
	return "", invalidf("unknown op %q (expected one of %s)", c.Op, strings.Join(Ops(), ", "))
}

func joinWidths(ws []types.IntLitWidth) string {
	parts := make([]string, len(ws))
	for i, w := range ws {
		parts[i] = w.String()
	}
	return strings.Join(parts, " ")
}

// sameOutcome compares ignoring case and runs of whitespace.
func sameOutcome(got, want string) bool {
	return strings.EqualFold(strings.Join(strings.Fields(got), " "), strings.Join(strings.Fields(want), " "))
}
