package parser

import (
	"errors"
	"fmt"

	"github.com/dhamidi/ilc/lang/token"
)

// ErrConsumed is returned when ParseProgram is called on a parser that has
// already run.
var ErrConsumed = errors.New("parser already consumed")

// SyntaxError reports a lookahead token that the grammar does not allow at
// the current point. Expected lists every kind that would have been accepted.
type SyntaxError struct {
	Line     int
	Column   int
	Expected []token.Kind
	Found    token.Token
	Message  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

func newSyntaxError(found token.Token, expected ...token.Kind) *SyntaxError {
	err := &SyntaxError{
		Line:     found.Line,
		Column:   found.Column,
		Expected: expected,
		Found:    found,
	}
	err.Message = fmt.Sprintf("expected %s but found %s", describeKinds(expected), describeToken(found))
	return err
}

func describeKinds(kinds []token.Kind) string {
	switch len(kinds) {
	case 0:
		return "nothing"
	case 1:
		return kinds[0].Quoted()
	}
	s := ""
	for i, k := range kinds {
		switch {
		case i == 0:
		case i == len(kinds)-1:
			s += " or "
		default:
			s += ", "
		}
		s += k.Quoted()
	}
	return s
}

func describeToken(tok token.Token) string {
	switch tok.Kind {
	case token.Ident, token.Number, token.Error:
		return fmt.Sprintf("%s %q", tok.Kind, tok.Literal)
	}
	return tok.Kind.Quoted()
}
