package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"numlit/internal/diag"
	"numlit/internal/sema"
	"numlit/internal/types"
)

type widthJSON struct {
	Name   string `json:"name"`
	Signed bool   `json:"signed"`
	Bits   uint32 `json:"bits"`
	Min    string `json:"min"`
	Max    string `json:"max"`
}

func widthInfo(w types.IntLitWidth) widthJSON {
	sign, bits := w.SignednessAndWidth()
	return widthJSON{
		Name:   w.TypeStr(),
		Signed: sign == types.Signed,
		Bits:   bits,
		Min:    w.MinValue().String(),
		Max:    w.MaxValue().String(),
	}
}

func widthRows(ws []types.IntLitWidth, numbered bool) [][]string {
	rows := make([][]string, 0, len(ws))
	for i, w := range ws {
		info := widthInfo(w)
		sign, _ := w.SignednessAndWidth()
		row := []string{info.Name, sign.String(), fmt.Sprint(info.Bits), info.Min, info.Max}
		if numbered {
			row = append([]string{fmt.Sprint(i + 1)}, row...)
		}
		rows = append(rows, row)
	}
	return rows
}

var widthHeaders = []string{"WIDTH", "SIGN", "BITS", "MIN", "MAX"}

func newWidthsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "widths",
		Short: "List every numeric width with its sign, capacity and bounds",
		Args:  cobra.NoArgs,
		RunE: runner(func(cmd *cobra.Command, args []string, s *settings) error {
			all := types.AllWidths()
			if s.format == formatJSON {
				out := make([]widthJSON, 0, len(all))
				for _, w := range all {
					out = append(out, widthInfo(w))
				}
				return writeJSON(cmd.OutOrStdout(), out)
			}
			title := "numeric widths"
			if s.quiet {
				title = ""
			}
			renderTable(cmd.OutOrStdout(), newTableStyles(s.color), title, widthHeaders, widthRows(all, false))
			return nil
		}),
	}
}

func parseRangeArg(text string) (types.NumericRange, error) {
	r, err := types.ParseNumericRange(text)
	if err != nil {
		return types.NumericRange{}, fmt.Errorf("%q: %w", text, err)
	}
	return r, nil
}

type meetJSON struct {
	Left  string `json:"left"`
	Right string `json:"right"`
	Meet  string `json:"meet,omitempty"`
	OK    bool   `json:"ok"`
}

func newMeetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "meet <range> <range>",
		Short: "Intersect two numeric ranges",
		Long:  `Prints the tightest range satisfying both arguments, or "none" when no width does`,
		Args:  cobra.ExactArgs(2),
		RunE: runner(func(cmd *cobra.Command, args []string, s *settings) error {
			a, err := parseRangeArg(args[0])
			if err != nil {
				return err
			}
			b, err := parseRangeArg(args[1])
			if err != nil {
				return err
			}
			meet, ok := a.Intersection(b)
			if s.format == formatJSON {
				out := meetJSON{Left: a.String(), Right: b.String(), OK: ok}
				if ok {
					out.Meet = meet.String()
				}
				return writeJSON(cmd.OutOrStdout(), out)
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "none")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), meet.String())
			return nil
		}),
	}
}

type matchJSON struct {
	Range   string `json:"range"`
	Content string `json:"content"`
	Result  string `json:"result"`
}

func newMatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "match <range> <content>",
		Short: "Compare a numeric range with a type",
		Long: `Reports how a range relates to a type: RangeInContent, ContentInRange,
NoIntersection or DifferentContent. Types are written as I64, Signed64,
Num(*), Int('a), Integer(Signed8), a range literal, or any other name.`,
		Args: cobra.ExactArgs(2),
		RunE: runner(func(cmd *cobra.Command, args []string, s *settings) error {
			r, err := parseRangeArg(args[0])
			if err != nil {
				return err
			}
			subs := types.NewSubs()
			v, err := sema.ParseContent(subs, args[1])
			if err != nil {
				return err
			}
			res := r.MatchContent(subs, subs.GetContentWithoutCompacting(v))
			if s.format == formatJSON {
				return writeJSON(cmd.OutOrStdout(), matchJSON{Range: r.String(), Content: subs.Display(v), Result: res.String()})
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.String())
			return nil
		}),
	}
}

type defaultsJSON struct {
	Range  string   `json:"range"`
	Widths []string `json:"widths"`
}

func widthNames(ws []types.IntLitWidth) []string {
	names := make([]string, len(ws))
	for i, w := range ws {
		names[i] = w.TypeStr()
	}
	return names
}

func newDefaultsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "defaults <range>",
		Short: "List the widths a range may default to, narrowest first",
		Args:  cobra.ExactArgs(1),
		RunE: runner(func(cmd *cobra.Command, args []string, s *settings) error {
			r, err := parseRangeArg(args[0])
			if err != nil {
				return err
			}
			ws := r.DefaultWidths()
			switch {
			case s.format == formatJSON:
				return writeJSON(cmd.OutOrStdout(), defaultsJSON{Range: r.String(), Widths: widthNames(ws)})
			case s.quiet:
				fmt.Fprintln(cmd.OutOrStdout(), strings.Join(widthNames(ws), " "))
			default:
				renderTable(cmd.OutOrStdout(), newTableStyles(s.color), "defaults for "+r.String(),
					append([]string{"#"}, widthHeaders...), widthRows(ws, true))
			}
			return nil
		}),
	}
}

type seedJSON struct {
	Literal string `json:"literal"`
	Kind    string `json:"kind,omitempty"`
	Seed    string `json:"seed,omitempty"`
	Error   string `json:"error,omitempty"`
}

// literalError maps a literal failure onto its diagnostic code.
func literalError(text string, err error) diag.Diagnostic {
	code := diag.NumBadLiteral
	if errors.Is(err, sema.ErrLiteralTooLarge) {
		code = diag.NumLiteralOutOfRange
	}
	return diag.NewError(code, text, err.Error())
}

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed <literal>...",
		Short: "Show the constraint each literal starts from",
		Long: `Classifies literals such as 300, -5, 0xff, 1.5, 7u8 or 2.0f32 and prints
the range, exact width or "none" that seeds their type variable. Put negative
literals after "--" so they are not read as flags.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runner(func(cmd *cobra.Command, args []string, s *settings) error {
			bag := diag.NewBag(s.maxDiags)
			results := make([]seedJSON, 0, len(args))
			for _, text := range args {
				res := seedJSON{Literal: text}
				lit, err := sema.ParseLiteral(text)
				if err == nil {
					res.Kind = lit.Kind.String()
					var bound sema.Bound
					if bound, err = sema.BoundFor(lit); err == nil {
						res.Seed = bound.Seed().String()
					}
				}
				if err != nil {
					res.Error = err.Error()
					bag.Add(literalError(text, err))
				}
				results = append(results, res)
			}

			if s.format == formatJSON {
				if err := writeJSON(cmd.OutOrStdout(), results); err != nil {
					return err
				}
			} else {
				rows := make([][]string, 0, len(results))
				for _, r := range results {
					seed := r.Seed
					if r.Error != "" {
						seed = "error"
					}
					rows = append(rows, []string{r.Literal, r.Kind, seed})
				}
				renderTable(cmd.OutOrStdout(), newTableStyles(s.color), "", []string{"LITERAL", "KIND", "SEED"}, rows)
				if err := printDiagnostics(cmd.ErrOrStderr(), bag, s, false); err != nil {
					return err
				}
			}
			if bag.HasErrors() {
				return errFailed
			}
			return nil
		}),
	}
}
