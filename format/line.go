package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dhamidi/ilc/lang"
)

// LineEncoder writes one tab-separated record per line. Diagnostics use the
// usual path:line:column prefix so editors can jump to them.
type LineEncoder struct {
	w        io.Writer
	report   *lang.Report
	sections Section

	pathStyle  func(string) string
	errorStyle func(string) string
	okStyle    func(string) string
	dimStyle   func(string) string
}

func NewLineEncoder(w io.Writer, opts Options) *LineEncoder {
	e := &LineEncoder{w: w, sections: opts.Sections}
	plain := func(s string) string { return s }
	e.pathStyle, e.errorStyle, e.okStyle, e.dimStyle = plain, plain, plain, plain
	if opts.Color {
		r := lipgloss.NewRenderer(w)
		e.pathStyle = render(r.NewStyle().Bold(true))
		e.errorStyle = render(r.NewStyle().Bold(true).Foreground(lipgloss.Color("9")))
		e.okStyle = render(r.NewStyle().Foreground(lipgloss.Color("10")))
		e.dimStyle = render(r.NewStyle().Faint(true))
	}
	return e
}

func (e *LineEncoder) Encode(report *lang.Report) error {
	e.report = report
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	r := e.report

	if e.sections.Has(Tokens) {
		for _, tok := range r.Tokens {
			fmt.Fprintf(&sb, "token\t%d:%d\t%s\t%q\n", tok.Line, tok.Column, tok.Kind, tok.Literal)
		}
	}

	if e.sections.Has(Trace) {
		for _, ev := range r.Trace {
			fmt.Fprintf(&sb, "trace\t%s%s\t%s\n",
				strings.Repeat("  ", ev.Depth),
				ev.Production,
				e.dimStyle(ev.Lookahead.String()),
			)
		}
	}

	if e.sections.Has(Symbols) {
		for _, decl := range r.Declarations {
			s := decl.Symbol
			fmt.Fprintf(&sb, "symbol\t%d:%d\t%d\t%s\t%s\t%s\n",
				s.Line, s.Column, decl.Depth, s.Category, s.Kind, s.Name)
		}
	}

	if e.sections.Has(Diagnostics) {
		diags := r.Diagnostics()
		for _, d := range diags {
			fmt.Fprintf(&sb, "%s: %s: %s [%s]\n",
				e.pathStyle(fmt.Sprintf("%s:%d:%d", displayPath(d.Path), d.Line, d.Column)),
				e.errorStyle(string(d.Severity)),
				d.Message,
				d.Code,
			)
		}
		if len(diags) == 0 {
			fmt.Fprintf(&sb, "%s: %s\n", e.pathStyle(displayPath(r.Path)), e.okStyle("ok"))
		}
	}

	return []byte(sb.String()), nil
}

func render(style lipgloss.Style) func(string) string {
	return func(s string) string {
		return style.Render(s)
	}
}

func displayPath(path string) string {
	if path == "" {
		return "<stdin>"
	}
	return path
}
