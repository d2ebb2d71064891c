package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"numlit/internal/diag"
	"numlit/internal/sema"
	"numlit/internal/trace"
	"numlit/internal/types"
)

type explainStep struct {
	With   string `json:"with"`
	Result string `json:"result"`
	OK     bool   `json:"ok"`
}

type explainJSON struct {
	Literal     string        `json:"literal"`
	Kind        string        `json:"kind"`
	Seed        string        `json:"seed"`
	Steps       []explainStep `json:"steps,omitempty"`
	Range       string        `json:"range,omitempty"`
	SatisfiedBy []string      `json:"satisfied_by,omitempty"`
	Candidates  []string      `json:"candidates,omitempty"`
	Candidate   string        `json:"candidate,omitempty"`
	Check       string        `json:"check,omitempty"`
}

func newExplainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "explain <literal> [range]...",
		Short: "Walk a literal through seeding, narrowing and defaulting",
		Long: `Seeds a type variable from the literal, narrows it by each range in order,
then lists the widths it could still default to. With --candidate the final
range is also checked against a type, without binding it.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runner(runExplain),
	}
	cmd.Flags().String("candidate", "", "type to check the narrowed literal against")
	cmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	return cmd
}

func runExplain(cmd *cobra.Command, args []string, s *settings) error {
	candidateText, err := cmd.Flags().GetString("candidate")
	if err != nil {
		return fmt.Errorf("failed to get candidate flag: %w", err)
	}
	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}

	narrows := make([]types.NumericRange, 0, len(args)-1)
	for _, text := range args[1:] {
		r, err := parseRangeArg(text)
		if err != nil {
			return err
		}
		narrows = append(narrows, r)
	}
	lit, err := sema.ParseLiteral(args[0])
	if err != nil {
		return err
	}

	bag := diag.NewBag(s.maxDiags)
	session := sema.NewSession(types.NewSubs(), diag.NewBagReporter(bag), s.tracer)
	span, _ := trace.Start(cmd.Context(), trace.ScopeDriver, "explain:"+lit.Text)
	session.SetParentSpan(span.ID())

	out := explainJSON{Literal: lit.Text, Kind: lit.Kind.String(), Seed: "error"}
	v, seedErr := session.Seed(lit)
	if seedErr == nil {
		if bound, err := sema.BoundFor(lit); err == nil {
			out.Seed = bound.Seed().String()
		}
		out = explainNarrowing(session, v, narrows, out)
		if candidateText != "" {
			cand, err := sema.ParseContent(session.Subs(), candidateText)
			if err != nil {
				span.End("error")
				return err
			}
			out.Candidate = session.Subs().Display(cand)
			out.Check = session.Check(v, cand).String()
		}
	}
	span.End(out.Range)

	if s.format == formatJSON {
		if err := writeJSON(cmd.OutOrStdout(), out); err != nil {
			return err
		}
	} else {
		renderExplain(cmd.OutOrStdout(), newTableStyles(s.color), out, s.quiet)
	}
	if err := printDiagnostics(cmd.ErrOrStderr(), bag, s, withNotes); err != nil {
		return err
	}
	if bag.HasErrors() {
		return errFailed
	}
	return nil
}

func explainNarrowing(session *sema.Session, v types.Variable, narrows []types.NumericRange, out explainJSON) explainJSON {
	for _, r := range narrows {
		ok := session.Narrow(v, r)
		step := explainStep{With: r.String(), OK: ok, Result: "none"}
		if cur, ranged := session.RangeOf(v); ranged && ok {
			step.Result = cur.String()
		} else if ok {
			step.Result = session.Subs().Display(v)
		}
		out.Steps = append(out.Steps, step)
	}
	r, ranged := session.RangeOf(v)
	if !ranged {
		return out
	}
	out.Range = r.String()
	out.SatisfiedBy = widthNames(types.SortedWidths(r.SatisfyingWidths()))
	for _, c := range session.Candidates(v) {
		out.Candidates = append(out.Candidates, session.Subs().Display(c))
	}
	return out
}

func renderExplain(w io.Writer, st tableStyles, out explainJSON, quiet bool) {
	field := func(name, value string) {
		fmt.Fprintf(w, "%s %s\n", st.header.Render(fmt.Sprintf("%-12s", name)), value)
	}
	field("literal", fmt.Sprintf("%s (%s)", out.Literal, out.Kind))
	field("seed", out.Seed)
	for _, step := range out.Steps {
		field("narrow", fmt.Sprintf("%s -> %s", step.With, step.Result))
	}
	if out.Range != "" {
		field("range", out.Range)
	}
	if out.Check != "" {
		field("check", fmt.Sprintf("%s: %s", out.Candidate, out.Check))
	}
	if quiet || len(out.Candidates) == 0 {
		return
	}
	ws := make([]types.IntLitWidth, 0, len(out.Candidates))
	for _, name := range out.Candidates {
		if wd, err := types.ParseIntLitWidth(name); err == nil {
			ws = append(ws, wd)
		}
	}
	fmt.Fprintln(w)
	renderTable(w, st, "default candidates", append([]string{"#"}, widthHeaders...), widthRows(ws, true))
	if len(out.SatisfiedBy) > len(out.Candidates) {
		fmt.Fprintln(w, st.muted.Render("also accepted by annotation: "+extraWidths(out.SatisfiedBy, out.Candidates)))
	}
}

// extraWidths lists names in all but not in defaults, keeping all's order.
func extraWidths(all, defaults []string) string {
	seen := make(map[string]struct{}, len(defaults))
	for _, d := range defaults {
		seen[d] = struct{}{}
	}
	var extra []string
	for _, a := range all {
		if _, ok := seen[a]; !ok {
			extra = append(extra, a)
		}
	}
	return strings.Join(extra, " ")
}
