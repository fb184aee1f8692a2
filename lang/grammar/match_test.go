package grammar

import (
	"testing"

	"github.com/dhamidi/ilc/lang/parser"
	"github.com/dhamidi/ilc/lang/token"
)

func TestMatcher(t *testing.T) {
	g, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	m := NewMatcher(g)

	tests := []struct {
		production string
		input      string
		want       int
	}{
		{"ident", "x", 1},
		{"ident", "camel_Case9", 11},
		{"ident", "abc+1", 3},
		{"ident", "9abc", 0},
		{"ident", "_x", 0},
		{"number", "007", 3},
		{"number", "12ab", 2},
		{"number", "", 0},
		{"number", "7", 1},
		{"Body", "{}", 2},
		{"Body", "{intx;x=1;}", 11},
		{"ExprPrimary", "x", 1},
		{"ExprPrimary", "f()", 3},
		{"DeclProc", "procedurep(){}", 14},
		{"Cmd", "if(a)then{}", 11},
		{"Cmd", "break", 0},
		{"RelOp", "<=", 2},
		{"RelOp", "<", 1},
		{"Type", "bool", 4},
		{"Type", "boolean", 4},
		{"Missing", "x", 0},
	}

	for _, tt := range tests {
		t.Run(tt.production+"/"+tt.input, func(t *testing.T) {
			if got := m.Match(tt.production, []byte(tt.input)); got != tt.want {
				t.Errorf("Match(%s, %q) = %d, want %d", tt.production, tt.input, got, tt.want)
			}
		})
	}
}

// The hand-written lexer and the lexical productions must agree on every
// identifier and number in generated programs.
func TestLexerAgreesWithGrammar(t *testing.T) {
	g, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	m := NewMatcher(g)

	for seed := uint64(1); seed <= 30; seed++ {
		src, err := NewGenerator(g, seed).Generate(Start)
		if err != nil {
			t.Fatalf("seed %d: Generate: %v", seed, err)
		}
		tokens, errs := parser.ScanAll([]byte(src))
		if len(errs) != 0 {
			t.Fatalf("seed %d: lexical errors %v", seed, errs)
		}
		for _, tok := range tokens {
			var production string
			switch tok.Kind {
			case token.Ident:
				production = "ident"
			case token.Number:
				production = "number"
			default:
				continue
			}
			if !m.MatchAll(production, []byte(tok.Literal)) {
				t.Errorf("seed %d: %q scanned as %v but does not match %s", seed, tok.Literal, tok.Kind, production)
			}
		}
	}
}
