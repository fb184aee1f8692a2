// Package lang runs the front end over one source file and collects
// everything it found into a Report.
package lang

import (
	"errors"
	"fmt"
	"sort"

	"github.com/dhamidi/ilc/lang/parser"
	"github.com/dhamidi/ilc/lang/symtab"
	"github.com/dhamidi/ilc/lang/token"
)

// Extension is the file extension of source files.
const Extension = ".il"

type Severity string

const SeverityError Severity = "error"

type Code string

const (
	CodeLexical   Code = "lexical"
	CodeSyntax    Code = "syntax"
	CodeDuplicate Code = "duplicate"
	CodeInternal  Code = "internal"
)

type Diagnostic struct {
	Path     string
	Severity Severity
	Code     Code
	Line     int
	Column   int
	Message  string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s:%d:%d: %s: %s", d.Path, d.Line, d.Column, d.Severity, d.Message)
}

type Options struct {
	// Path is copied into the report and its diagnostics.
	Path  string
	Trace bool
}

type Report struct {
	Path          string
	Tokens        []token.Token
	LexicalErrors []*parser.LexicalError
	Err           error
	Declarations  []parser.Declaration
	Trace         []parser.TraceEvent
}

// Check scans src in full, then parses it. The parse stops at the first
// syntax or declaration error, which ends up in Report.Err.
func Check(src []byte, opts Options) *Report {
	report := &Report{Path: opts.Path}
	report.Tokens, report.LexicalErrors = parser.ScanAll(src)

	var popts []parser.Option
	if opts.Trace {
		popts = append(popts, parser.WithTrace(func(ev parser.TraceEvent) {
			report.Trace = append(report.Trace, ev)
		}))
	}
	p := parser.New(parser.NewLexer(src), popts...)
	report.Err = p.ParseProgram()
	report.Declarations = p.Declarations()
	return report
}

// OK reports whether the source was free of lexical, syntax and
// declaration errors.
func (r *Report) OK() bool {
	return len(r.LexicalErrors) == 0 && r.Err == nil
}

// Diagnostics merges lexical errors and the parse error into one list
// ordered by position.
func (r *Report) Diagnostics() []Diagnostic {
	var diags []Diagnostic
	for _, lexErr := range r.LexicalErrors {
		diags = append(diags, Diagnostic{
			Path:     r.Path,
			Severity: SeverityError,
			Code:     CodeLexical,
			Line:     lexErr.Line,
			Column:   lexErr.Column,
			Message:  fmt.Sprintf("unexpected character %q", lexErr.Char),
		})
	}
	if r.Err != nil {
		diags = append(diags, r.errDiagnostic())
	}
	sort.SliceStable(diags, func(i, j int) bool {
		if diags[i].Line != diags[j].Line {
			return diags[i].Line < diags[j].Line
		}
		return diags[i].Column < diags[j].Column
	})
	return diags
}

func (r *Report) errDiagnostic() Diagnostic {
	d := Diagnostic{Path: r.Path, Severity: SeverityError}

	var syntaxErr *parser.SyntaxError
	var dupErr *symtab.DuplicateSymbolError
	switch {
	case errors.As(r.Err, &syntaxErr):
		d.Code = CodeSyntax
		d.Line = syntaxErr.Line
		d.Column = syntaxErr.Column
		d.Message = syntaxErr.Message
	case errors.As(r.Err, &dupErr):
		d.Code = CodeDuplicate
		d.Line = dupErr.Line
		d.Column = dupErr.Column
		d.Message = fmt.Sprintf("identifier %q already declared in this scope", dupErr.Name)
	default:
		d.Code = CodeInternal
		d.Line = 1
		d.Column = 1
		d.Message = r.Err.Error()
	}
	return d
}

// Symbols returns the declared symbols in source order.
func (r *Report) Symbols() []symtab.Symbol {
	symbols := make([]symtab.Symbol, len(r.Declarations))
	for i, decl := range r.Declarations {
		symbols[i] = decl.Symbol
	}
	return symbols
}
