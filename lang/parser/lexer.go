package parser

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/dhamidi/ilc/lang/token"
)

// LexicalError describes one character that cannot begin any token.
type LexicalError struct {
	Char   string
	Line   int
	Column int
}

func (e *LexicalError) Error() string {
	return fmt.Sprintf("line %d: unexpected character %q", e.Line, e.Char)
}

type Lexer struct {
	input  []byte
	pos    int
	line   int
	column int
}

func NewLexer(input []byte) *Lexer {
	return &Lexer{
		input:  input,
		pos:    0,
		line:   1,
		column: 1,
	}
}

// Line returns the line the cursor is currently on.
func (l *Lexer) Line() int {
	return l.line
}

func (l *Lexer) peek() rune {
	if l.pos >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRune(l.input[l.pos:])
	return r
}

func (l *Lexer) peekN(n int) rune {
	pos := l.pos
	for i := 0; i < n; i++ {
		if pos >= len(l.input) {
			return 0
		}
		_, size := utf8.DecodeRune(l.input[pos:])
		pos += size
	}
	if pos >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRune(l.input[pos:])
	return r
}

func (l *Lexer) atEnd() bool {
	return l.pos >= len(l.input)
}

func (l *Lexer) advance() rune {
	if l.pos >= len(l.input) {
		return 0
	}
	r, size := utf8.DecodeRune(l.input[l.pos:])
	l.pos += size
	if r == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return r
}

func (l *Lexer) advanceN(n int) {
	for i := 0; i < n; i++ {
		l.advance()
	}
}

// skipTrivia consumes whitespace and block comments. An unterminated
// comment swallows the rest of the input.
func (l *Lexer) skipTrivia() {
	for !l.atEnd() {
		ch := l.peek()
		switch {
		case unicode.IsSpace(ch):
			l.advance()
		case ch == '/' && l.peekN(1) == '*':
			l.advanceN(2)
			for !l.atEnd() && !(l.peek() == '*' && l.peekN(1) == '/') {
				l.advance()
			}
			l.advanceN(2)
		default:
			return
		}
	}
}

// NextToken returns the next token. Once the input is exhausted every call
// returns an EOF token.
func (l *Lexer) NextToken() token.Token {
	l.skipTrivia()

	startPos, startLine, startCol := l.pos, l.line, l.column
	if l.atEnd() {
		return token.Token{Kind: token.EOF, Line: startLine, Column: startCol}
	}

	ch := l.peek()
	switch {
	case unicode.IsLetter(ch):
		for isIdentPart(l.peek()) {
			l.advance()
		}
		literal := string(l.input[startPos:l.pos])
		return token.Token{Kind: token.LookupKeyword(literal), Literal: literal, Line: startLine, Column: startCol}
	case isDigit(ch):
		for isDigit(l.peek()) {
			l.advance()
		}
		return l.token(token.Number, startPos, startLine, startCol)
	}

	return l.scanOperator(startPos, startLine, startCol)
}

func (l *Lexer) scanOperator(start, line, col int) token.Token {
	ch := l.advance()

	switch ch {
	case ';':
		return l.token(token.Semicolon, start, line, col)
	case ',':
		return l.token(token.Comma, start, line, col)
	case '(':
		return l.token(token.LParen, start, line, col)
	case ')':
		return l.token(token.RParen, start, line, col)
	case '{':
		return l.token(token.LBrace, start, line, col)
	case '}':
		return l.token(token.RBrace, start, line, col)
	case ':':
		return l.token(token.Colon, start, line, col)
	case '+':
		return l.token(token.Plus, start, line, col)
	case '-':
		return l.token(token.Minus, start, line, col)
	case '*':
		return l.token(token.Star, start, line, col)
	case '/':
		return l.token(token.Slash, start, line, col)

	case '=':
		if l.peek() == '=' {
			l.advance()
			return l.token(token.EQ, start, line, col)
		}
		return l.token(token.Assign, start, line, col)

	case '!':
		if l.peek() == '=' {
			l.advance()
			return l.token(token.NE, start, line, col)
		}
		return l.token(token.Not, start, line, col)

	case '<':
		if l.peek() == '=' {
			l.advance()
			return l.token(token.LE, start, line, col)
		}
		return l.token(token.LT, start, line, col)

	case '>':
		if l.peek() == '=' {
			l.advance()
			return l.token(token.GE, start, line, col)
		}
		return l.token(token.GT, start, line, col)

	case '&':
		if l.peek() == '&' {
			l.advance()
			return l.token(token.And, start, line, col)
		}

	case '|':
		if l.peek() == '|' {
			l.advance()
			return l.token(token.Or, start, line, col)
		}
	}

	return l.token(token.Error, start, line, col)
}

func (l *Lexer) token(kind token.Kind, start, line, col int) token.Token {
	return token.Token{
		Kind:    kind,
		Literal: string(l.input[start:l.pos]),
		Line:    line,
		Column:  col,
	}
}

// ScanAll tokenizes the whole input. Error tokens are kept in the stream and
// additionally reported as LexicalErrors; the final token is always EOF.
func ScanAll(input []byte) ([]token.Token, []*LexicalError) {
	lexer := NewLexer(input)
	var tokens []token.Token
	var errs []*LexicalError
	for {
		tok := lexer.NextToken()
		tokens = append(tokens, tok)
		if tok.Kind == token.Error {
			errs = append(errs, &LexicalError{Char: tok.Literal, Line: tok.Line, Column: tok.Column})
		}
		if tok.Kind == token.EOF {
			return tokens, errs
		}
	}
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentPart(ch rune) bool {
	return unicode.IsLetter(ch) || unicode.IsDigit(ch) || ch == '_'
}
