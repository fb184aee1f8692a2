// Package token defines the lexical vocabulary of the language: token kinds,
// the token value produced by the lexer, and keyword classification.
package token

import "strconv"

type Kind int

const (
	EOF Kind = iota
	Error

	Ident
	Number

	// Keywords
	Program
	Int
	Bool
	Procedure
	Function
	If
	Then
	Else
	While
	Read
	Write
	True
	False
	Break
	Continue
	Return

	// Punctuation
	Semicolon
	Comma
	LParen
	RParen
	LBrace
	RBrace
	Colon

	// Operators
	EQ
	NE
	LT
	LE
	GT
	GE
	Plus
	Minus
	Star
	Slash
	And
	Or
	Not
	Assign
)

var kindNames = [...]string{
	EOF:       "EOF",
	Error:     "Error",
	Ident:     "Identifier",
	Number:    "Number",
	Program:   "program",
	Int:       "int",
	Bool:      "bool",
	Procedure: "procedure",
	Function:  "function",
	If:        "if",
	Then:      "then",
	Else:      "else",
	While:     "while",
	Read:      "read",
	Write:     "write",
	True:      "true",
	False:     "false",
	Break:     "break",
	Continue:  "continue",
	Return:    "return",
	Semicolon: ";",
	Comma:     ",",
	LParen:    "(",
	RParen:    ")",
	LBrace:    "{",
	RBrace:    "}",
	Colon:     ":",
	EQ:        "==",
	NE:        "!=",
	LT:        "<",
	LE:        "<=",
	GT:        ">",
	GE:        ">=",
	Plus:      "+",
	Minus:     "-",
	Star:      "*",
	Slash:     "/",
	And:       "&&",
	Or:        "||",
	Not:       "!",
	Assign:    "=",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

// Quoted returns the kind's name in a form suitable for diagnostics:
// fixed spellings are quoted, classes such as Identifier are not.
func (k Kind) Quoted() string {
	if k.IsKeyword() || k.IsPunctuation() || k.IsOperator() {
		return strconv.Quote(k.String())
	}
	return k.String()
}

func (k Kind) IsKeyword() bool {
	return k >= Program && k <= Return
}

func (k Kind) IsPunctuation() bool {
	return k >= Semicolon && k <= Colon
}

func (k Kind) IsOperator() bool {
	return k >= EQ && k <= Assign
}

// IsType reports whether k names a declarable type.
func (k Kind) IsType() bool {
	return k == Int || k == Bool
}

// IsRelational reports whether k is one of the comparison operators.
func (k Kind) IsRelational() bool {
	return k >= EQ && k <= GE
}

// Kinds returns every defined kind in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, len(kindNames))
	for i := range kindNames {
		kinds[i] = Kind(i)
	}
	return kinds
}

type Token struct {
	Kind    Kind
	Literal string
	Line    int
	Column  int
}

func (t Token) String() string {
	return strconv.Itoa(t.Line) + ":" + strconv.Itoa(t.Column) + " " + t.Kind.String() + " " + strconv.Quote(t.Literal)
}

// LookupKeyword classifies ident as a keyword kind, or Ident when it is not
// one of the reserved words. Only exact matches count.
func LookupKeyword(ident string) Kind {
	switch ident {
	case "program":
		return Program
	case "int":
		return Int
	case "bool":
		return Bool
	case "procedure":
		return Procedure
	case "function":
		return Function
	case "if":
		return If
	case "then":
		return Then
	case "else":
		return Else
	case "while":
		return While
	case "read":
		return Read
	case "write":
		return Write
	case "true":
		return True
	case "false":
		return False
	case "break":
		return Break
	case "continue":
		return Continue
	case "return":
		return Return
	}
	return Ident
}
