package diagfmt

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"numlit/internal/diag"
)

type palette struct {
	err, warn, info, code, subject, note *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:     color.New(color.FgRed, color.Bold),
		warn:    color.New(color.FgYellow, color.Bold),
		info:    color.New(color.FgCyan, color.Bold),
		code:    color.New(color.Faint),
		subject: color.New(color.Bold),
		note:    color.New(color.FgBlue),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.code, p.subject, p.note} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
//
//	<subject>: <SEV> <CODE>: <Message>
//	  note: <subject>: <Message>
//
// Цвет включается опцией.
func Pretty(w io.Writer, bag *diag.Bag, opts PrettyOpts) error {
	if bag == nil {
		return nil
	}
	p := newPalette(opts.Color)
	items := bag.Items()
	if opts.Max > 0 && opts.Max < len(items) {
		items = items[:opts.Max]
	}
	for _, d := range items {
		subject := d.Subject
		if subject == "" {
			subject = "numlit"
		}
		if _, err := fmt.Fprintf(w, "%s: %s %s: %s\n",
			p.subject.Sprint(subject),
			p.severity(d.Severity).Sprint(d.Severity.String()),
			p.code.Sprint(d.Code.ID()),
			d.Message,
		); err != nil {
			return err
		}
		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			line := n.Msg
			if n.Subject != "" {
				line = n.Subject + ": " + n.Msg
			}
			if _, err := fmt.Fprintf(w, "  %s %s\n", p.note.Sprint("note:"), line); err != nil {
				return err
			}
		}
	}
	if hidden := bag.Len() - len(items); hidden > 0 {
		if _, err := fmt.Fprintf(w, "... and %d more\n", hidden); err != nil {
			return err
		}
	}
	return nil
}
