package parser

import (
	"slices"

	"github.com/dhamidi/ilc/lang/symtab"
	"github.com/dhamidi/ilc/lang/token"
)

type Option func(*Parser)

// TraceEvent is reported each time the parser enters a grammar production.
type TraceEvent struct {
	Production string
	Depth      int
	Lookahead  token.Token
}

// WithTrace registers fn to receive a TraceEvent for every production the
// parser enters, in order.
func WithTrace(fn func(TraceEvent)) Option {
	return func(p *Parser) {
		p.trace = fn
	}
}

// WithSymbolTable makes the parser declare into table instead of a fresh one.
func WithSymbolTable(table *symtab.Table) Option {
	return func(p *Parser) {
		p.symbols = table
	}
}

// Declaration is a symbol registered during the parse together with the
// scope depth it was declared at. The global scope has depth 1, the program
// body 2, and each procedure or function body one more than its parent.
type Declaration struct {
	Symbol symtab.Symbol
	Depth  int
}

type Parser struct {
	lexer     *Lexer
	lookahead token.Token
	symbols   *symtab.Table
	decls     []Declaration
	trace     func(TraceEvent)
	depth     int
	consumed  bool
}

// New creates a parser reading from lexer and fetches the first lookahead
// token.
func New(lexer *Lexer, opts ...Option) *Parser {
	p := &Parser{lexer: lexer}
	for _, opt := range opts {
		opt(p)
	}
	if p.symbols == nil {
		p.symbols = symtab.New()
	}
	p.lookahead = lexer.NextToken()
	return p
}

// Parse recognizes a complete program in input.
func Parse(input []byte, opts ...Option) error {
	return New(NewLexer(input), opts...).ParseProgram()
}

// ParseProgram recognizes a complete program. It returns nil on success, a
// *SyntaxError or a *symtab.DuplicateSymbolError on the first failure. The
// parser cannot be reused afterwards.
func (p *Parser) ParseProgram() error {
	if p.consumed {
		return ErrConsumed
	}
	p.consumed = true
	return p.parseProgram()
}

// Declarations returns the symbols registered so far, in source order.
func (p *Parser) Declarations() []Declaration {
	return slices.Clone(p.decls)
}

// Symbols returns the symbol table the parser declares into.
func (p *Parser) Symbols() *symtab.Table {
	return p.symbols
}

func (p *Parser) advance() token.Token {
	tok := p.lookahead
	p.lookahead = p.lexer.NextToken()
	return tok
}

func (p *Parser) check(kind token.Kind) bool {
	return p.lookahead.Kind == kind
}

func (p *Parser) match(kind token.Kind) error {
	if p.lookahead.Kind != kind {
		return newSyntaxError(p.lookahead, kind)
	}
	p.advance()
	return nil
}

func (p *Parser) expectIdent() (token.Token, error) {
	if !p.check(token.Ident) {
		return token.Token{}, newSyntaxError(p.lookahead, token.Ident)
	}
	return p.advance(), nil
}

func (p *Parser) expectType() (token.Kind, error) {
	if !p.lookahead.Kind.IsType() {
		return 0, newSyntaxError(p.lookahead, token.Int, token.Bool)
	}
	return p.advance().Kind, nil
}

func (p *Parser) enter(production string) func() {
	if p.trace != nil {
		p.trace(TraceEvent{Production: production, Depth: p.depth, Lookahead: p.lookahead})
	}
	p.depth++
	return func() {
		p.depth--
	}
}

func (p *Parser) declare(name token.Token, kind token.Kind, category symtab.Category) error {
	sym := symtab.Symbol{Name: name.Literal, Kind: kind, Category: category, Line: name.Line, Column: name.Column}
	if err := p.symbols.Declare(sym); err != nil {
		return err
	}
	p.decls = append(p.decls, Declaration{Symbol: sym, Depth: p.symbols.Depth()})
	return nil
}

func isDeclStart(kind token.Kind) bool {
	switch kind {
	case token.Int, token.Bool, token.Procedure, token.Function:
		return true
	}
	return false
}

func isCmdStart(kind token.Kind) bool {
	switch kind {
	case token.If, token.While, token.Read, token.Write,
		token.Break, token.Continue, token.Return, token.Ident:
		return true
	}
	return false
}

// program := 'program' IDENT ';' { decl } body EOF
func (p *Parser) parseProgram() error {
	defer p.enter("program")()

	if err := p.match(token.Program); err != nil {
		return err
	}
	if _, err := p.expectIdent(); err != nil {
		return err
	}
	if err := p.match(token.Semicolon); err != nil {
		return err
	}

	p.symbols.EnterScope()
	defer p.symbols.ExitScope()

	for isDeclStart(p.lookahead.Kind) {
		if err := p.parseDecl(); err != nil {
			return err
		}
	}
	if err := p.parseBody(); err != nil {
		return err
	}
	if !p.check(token.EOF) {
		return newSyntaxError(p.lookahead, token.EOF)
	}
	return nil
}

func (p *Parser) parseDecl() error {
	switch p.lookahead.Kind {
	case token.Int, token.Bool:
		return p.parseDeclVar()
	case token.Procedure:
		return p.parseDeclProc()
	case token.Function:
		return p.parseDeclFunc()
	}
	return newSyntaxError(p.lookahead, token.Int, token.Bool, token.Procedure, token.Function)
}

// declVar := ('int'|'bool') IDENT { ',' IDENT } ';'
func (p *Parser) parseDeclVar() error {
	defer p.enter("declVar")()

	kind, err := p.expectType()
	if err != nil {
		return err
	}
	for {
		name, err := p.expectIdent()
		if err != nil {
			return err
		}
		if err := p.declare(name, kind, symtab.Variable); err != nil {
			return err
		}
		if !p.check(token.Comma) {
			break
		}
		p.advance()
	}
	return p.match(token.Semicolon)
}

// declProc := 'procedure' IDENT '(' [params] ')' body
func (p *Parser) parseDeclProc() error {
	defer p.enter("declProc")()

	if err := p.match(token.Procedure); err != nil {
		return err
	}
	name, err := p.expectIdent()
	if err != nil {
		return err
	}
	if err := p.declare(name, token.Procedure, symtab.Procedure); err != nil {
		return err
	}
	return p.parseRoutine()
}

// declFunc := 'function' ('int'|'bool') IDENT '(' [params] ')' body
func (p *Parser) parseDeclFunc() error {
	defer p.enter("declFunc")()

	if err := p.match(token.Function); err != nil {
		return err
	}
	result, err := p.expectType()
	if err != nil {
		return err
	}
	name, err := p.expectIdent()
	if err != nil {
		return err
	}
	if err := p.declare(name, result, symtab.Function); err != nil {
		return err
	}
	return p.parseRoutine()
}

// parseRoutine parses the parameter list and body shared by procedures and
// functions inside a scope of their own.
func (p *Parser) parseRoutine() error {
	if err := p.match(token.LParen); err != nil {
		return err
	}

	p.symbols.EnterScope()
	defer p.symbols.ExitScope()

	if p.lookahead.Kind.IsType() {
		if err := p.parseParams(); err != nil {
			return err
		}
	}
	if err := p.match(token.RParen); err != nil {
		return err
	}
	return p.parseBody()
}

// params := ('int'|'bool') IDENT { ',' ('int'|'bool') IDENT }
func (p *Parser) parseParams() error {
	defer p.enter("params")()

	for {
		kind, err := p.expectType()
		if err != nil {
			return err
		}
		name, err := p.expectIdent()
		if err != nil {
			return err
		}
		if err := p.declare(name, kind, symtab.Parameter); err != nil {
			return err
		}
		if !p.check(token.Comma) {
			return nil
		}
		p.advance()
	}
}

// body := '{' { declVar } { cmd } '}'
func (p *Parser) parseBody() error {
	defer p.enter("body")()

	if err := p.match(token.LBrace); err != nil {
		return err
	}
	for p.lookahead.Kind.IsType() {
		if err := p.parseDeclVar(); err != nil {
			return err
		}
	}
	for isCmdStart(p.lookahead.Kind) {
		if err := p.parseCmd(); err != nil {
			return err
		}
	}
	return p.match(token.RBrace)
}

func (p *Parser) parseCmd() error {
	defer p.enter("cmd")()

	switch p.lookahead.Kind {
	case token.If:
		return p.parseIf()
	case token.While:
		return p.parseWhile()
	case token.Read:
		p.advance()
		if err := p.match(token.LParen); err != nil {
			return err
		}
		if _, err := p.expectIdent(); err != nil {
			return err
		}
		if err := p.match(token.RParen); err != nil {
			return err
		}
		return p.match(token.Semicolon)
	case token.Write:
		p.advance()
		if err := p.parseParenExpr(); err != nil {
			return err
		}
		return p.match(token.Semicolon)
	case token.Break, token.Continue:
		p.advance()
		return p.match(token.Semicolon)
	case token.Return:
		p.advance()
		if err := p.parseExpr(); err != nil {
			return err
		}
		return p.match(token.Semicolon)
	case token.Ident:
		return p.parseAssignOrCall()
	}
	return newSyntaxError(p.lookahead,
		token.If, token.While, token.Read, token.Write,
		token.Break, token.Continue, token.Return, token.Ident)
}

// 'if' '(' expr ')' 'then' body ['else' body]
func (p *Parser) parseIf() error {
	if err := p.match(token.If); err != nil {
		return err
	}
	if err := p.parseParenExpr(); err != nil {
		return err
	}
	if err := p.match(token.Then); err != nil {
		return err
	}
	if err := p.parseBody(); err != nil {
		return err
	}
	if !p.check(token.Else) {
		return nil
	}
	p.advance()
	return p.parseBody()
}

// 'while' '(' expr ')' body
func (p *Parser) parseWhile() error {
	if err := p.match(token.While); err != nil {
		return err
	}
	if err := p.parseParenExpr(); err != nil {
		return err
	}
	return p.parseBody()
}

// IDENT ( '=' expr | '(' [exprList] ')' ) ';'
func (p *Parser) parseAssignOrCall() error {
	if _, err := p.expectIdent(); err != nil {
		return err
	}
	switch p.lookahead.Kind {
	case token.Assign:
		p.advance()
		if err := p.parseExpr(); err != nil {
			return err
		}
	case token.LParen:
		if err := p.parseArguments(); err != nil {
			return err
		}
	default:
		return newSyntaxError(p.lookahead, token.Assign, token.LParen)
	}
	return p.match(token.Semicolon)
}

func (p *Parser) parseParenExpr() error {
	if err := p.match(token.LParen); err != nil {
		return err
	}
	if err := p.parseExpr(); err != nil {
		return err
	}
	return p.match(token.RParen)
}

// '(' [exprList] ')'
func (p *Parser) parseArguments() error {
	if err := p.match(token.LParen); err != nil {
		return err
	}
	if !p.check(token.RParen) {
		if err := p.parseExprList(); err != nil {
			return err
		}
	}
	return p.match(token.RParen)
}

// exprList := expr { ',' expr }
func (p *Parser) parseExprList() error {
	defer p.enter("exprList")()

	for {
		if err := p.parseExpr(); err != nil {
			return err
		}
		if !p.check(token.Comma) {
			return nil
		}
		p.advance()
	}
}

func (p *Parser) parseExpr() error {
	defer p.enter("expr")()
	return p.parseOrExpr()
}

func (p *Parser) parseOrExpr() error {
	if err := p.parseAndExpr(); err != nil {
		return err
	}
	for p.check(token.Or) {
		p.advance()
		if err := p.parseAndExpr(); err != nil {
			return err
		}
	}
	return nil
}

func (p *Parser) parseAndExpr() error {
	if err := p.parseRelationalExpr(); err != nil {
		return err
	}
	for p.check(token.And) {
		p.advance()
		if err := p.parseRelationalExpr(); err != nil {
			return err
		}
	}
	return nil
}

// Comparisons chain: a < b < c is accepted.
func (p *Parser) parseRelationalExpr() error {
	if err := p.parseAdditiveExpr(); err != nil {
		return err
	}
	for p.lookahead.Kind.IsRelational() {
		p.advance()
		if err := p.parseAdditiveExpr(); err != nil {
			return err
		}
	}
	return nil
}

func (p *Parser) parseAdditiveExpr() error {
	if err := p.parseMultiplicativeExpr(); err != nil {
		return err
	}
	for p.check(token.Plus) || p.check(token.Minus) {
		p.advance()
		if err := p.parseMultiplicativeExpr(); err != nil {
			return err
		}
	}
	return nil
}

func (p *Parser) parseMultiplicativeExpr() error {
	if err := p.parseUnaryExpr(); err != nil {
		return err
	}
	for p.check(token.Star) || p.check(token.Slash) {
		p.advance()
		if err := p.parseUnaryExpr(); err != nil {
			return err
		}
	}
	return nil
}

func (p *Parser) parseUnaryExpr() error {
	if p.check(token.Not) || p.check(token.Minus) {
		p.advance()
		return p.parseUnaryExpr()
	}
	return p.parsePrimaryExpr()
}

// exprPrimary := IDENT [ '(' [exprList] ')' ] | NUMBER | 'true' | 'false' | '(' expr ')'
func (p *Parser) parsePrimaryExpr() error {
	switch p.lookahead.Kind {
	case token.Ident:
		p.advance()
		if p.check(token.LParen) {
			return p.parseArguments()
		}
		return nil
	case token.Number, token.True, token.False:
		p.advance()
		return nil
	case token.LParen:
		return p.parseParenExpr()
	}
	return newSyntaxError(p.lookahead, token.Ident, token.Number, token.True, token.False, token.LParen)
}
