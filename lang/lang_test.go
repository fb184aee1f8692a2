package lang

import (
	"errors"
	"testing"

	"github.com/dhamidi/ilc/lang/parser"
	"github.com/dhamidi/ilc/lang/symtab"
	"github.com/dhamidi/ilc/lang/token"
)

func TestCheckClean(t *testing.T) {
	src := "program t;\nint a;\n{ a = 1; }"
	report := Check([]byte(src), Options{Path: "t.il"})

	if !report.OK() {
		t.Fatalf("OK() = false, diagnostics = %v", report.Diagnostics())
	}
	if len(report.Diagnostics()) != 0 {
		t.Errorf("Diagnostics() = %v, want none", report.Diagnostics())
	}
	if report.Path != "t.il" {
		t.Errorf("Path = %q, want %q", report.Path, "t.il")
	}
	if last := report.Tokens[len(report.Tokens)-1]; last.Kind != token.EOF {
		t.Errorf("last token = %v, want EOF", last)
	}
	if len(report.Declarations) != 1 || report.Declarations[0].Symbol.Name != "a" {
		t.Errorf("Declarations = %+v, want [a]", report.Declarations)
	}
	if report.Trace != nil {
		t.Errorf("Trace = %v, want nil without tracing", report.Trace)
	}
}

func TestCheckTrace(t *testing.T) {
	report := Check([]byte("program t; { }"), Options{Trace: true})
	if len(report.Trace) != 2 {
		t.Fatalf("got %d trace events, want 2", len(report.Trace))
	}
	if report.Trace[0].Production != "program" || report.Trace[1].Production != "body" {
		t.Errorf("Trace = %+v, want program then body", report.Trace)
	}
}

func TestCheckDiagnostics(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Diagnostic
	}{
		{
			name:  "syntax",
			input: "program t {\n}",
			want: []Diagnostic{
				{Path: "f.il", Severity: SeverityError, Code: CodeSyntax, Line: 1, Column: 11, Message: `expected ";" but found "{"`},
			},
		},
		{
			name:  "duplicate",
			input: "program t;\nint a, a;\n{ }",
			want: []Diagnostic{
				{Path: "f.il", Severity: SeverityError, Code: CodeDuplicate, Line: 2, Column: 8, Message: `identifier "a" already declared in this scope`},
			},
		},
		{
			name:  "lexical and syntax",
			input: "program t;\n{ x = 1 # 2; $ }",
			want: []Diagnostic{
				{Path: "f.il", Severity: SeverityError, Code: CodeLexical, Line: 2, Column: 9, Message: `unexpected character "#"`},
				{Path: "f.il", Severity: SeverityError, Code: CodeSyntax, Line: 2, Column: 9, Message: `expected ";" but found Error "#"`},
				{Path: "f.il", Severity: SeverityError, Code: CodeLexical, Line: 2, Column: 14, Message: `unexpected character "$"`},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := Check([]byte(tt.input), Options{Path: "f.il"})
			if report.OK() {
				t.Fatal("OK() = true, want false")
			}
			got := report.Diagnostics()
			if len(got) != len(tt.want) {
				t.Fatalf("got %d diagnostics %v, want %d", len(got), got, len(tt.want))
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("diagnostic %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestCheckKeepsTypedError(t *testing.T) {
	report := Check([]byte("program t; int a; int a; { }"), Options{})
	var dupErr *symtab.DuplicateSymbolError
	if !errors.As(report.Err, &dupErr) {
		t.Fatalf("Err = %v, want *symtab.DuplicateSymbolError", report.Err)
	}

	report = Check([]byte("program"), Options{})
	var syntaxErr *parser.SyntaxError
	if !errors.As(report.Err, &syntaxErr) {
		t.Fatalf("Err = %v, want *parser.SyntaxError", report.Err)
	}
}

func TestDiagnosticString(t *testing.T) {
	d := Diagnostic{Path: "a.il", Severity: SeverityError, Code: CodeSyntax, Line: 3, Column: 4, Message: "boom"}
	want := "a.il:3:4: error: boom"
	if d.String() != want {
		t.Errorf("String() = %q, want %q", d.String(), want)
	}
}

func TestReportSymbols(t *testing.T) {
	report := Check([]byte("program t; int a; procedure p(bool b) { } { }"), Options{})
	symbols := report.Symbols()
	names := []string{"a", "p", "b"}
	if len(symbols) != len(names) {
		t.Fatalf("got %d symbols, want %d", len(symbols), len(names))
	}
	for i, name := range names {
		if symbols[i].Name != name {
			t.Errorf("symbol %d = %q, want %q", i, symbols[i].Name, name)
		}
	}
}
