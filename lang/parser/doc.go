// Package parser recognizes programs of the language.
//
// # Overview
//
// The package pairs a pull-based Lexer with a single-token-lookahead,
// recursive-descent Parser:
//
//	┌─────────────┐     ┌─────────────┐     ┌─────────────┐
//	│   Input     │────▶│   Lexer     │────▶│   Parser    │
//	│  (bytes)    │     │ (1 token)   │     │ (recognize) │
//	└─────────────┘     └─────────────┘     └─────────────┘
//	                                               │
//	                                               ▼
//	                                        ┌─────────────┐
//	                                        │ symtab.Table│
//	                                        └─────────────┘
//
// The lexer never fails: characters that cannot start a token come back as
// token.Error tokens and scanning continues. ScanAll collects them as
// LexicalErrors over a whole input.
//
// The parser stops at the first problem. ParseProgram returns a *SyntaxError
// when the lookahead does not fit the grammar and a
// *symtab.DuplicateSymbolError when a name is declared twice in one scope.
// No tree is built; Declarations and the WithTrace option expose what was
// recognized.
//
// # Grammar
//
//	program    := 'program' IDENT ';' { decl } body EOF
//	decl       := declVar | declProc | declFunc
//	declVar    := ('int'|'bool') IDENT { ',' IDENT } ';'
//	declProc   := 'procedure' IDENT '(' [params] ')' body
//	declFunc   := 'function' ('int'|'bool') IDENT '(' [params] ')' body
//	params     := ('int'|'bool') IDENT { ',' ('int'|'bool') IDENT }
//	body       := '{' { declVar } { cmd } '}'
//	cmd        := 'if' '(' expr ')' 'then' body ['else' body]
//	            | 'while' '(' expr ')' body
//	            | 'read' '(' IDENT ')' ';'
//	            | 'write' '(' expr ')' ';'
//	            | 'break' ';' | 'continue' ';'
//	            | 'return' expr ';'
//	            | IDENT ( '=' expr | '(' [exprList] ')' ) ';'
//	exprList   := expr { ',' expr }
//	expr       := exprOr
//	exprOr     := exprAnd { '||' exprAnd }
//	exprAnd    := exprRel { '&&' exprRel }
//	exprRel    := exprAdd { ('=='|'!='|'<'|'<='|'>'|'>=') exprAdd }
//	exprAdd    := exprMul { ('+'|'-') exprMul }
//	exprMul    := exprUnary { ('*'|'/') exprUnary }
//	exprUnary  := ('!'|'-') exprUnary | exprPrimary
//	exprPrimary:= IDENT [ '(' [exprList] ')' ] | NUMBER | 'true' | 'false' | '(' expr ')'
//
// # Scopes
//
// The symbol table starts with a global scope. The program body gets a scope
// of its own, and every procedure or function opens one for its parameters
// and body. Routine names are declared in the enclosing scope. Bodies of if
// and while statements do not open scopes, so their declarations share the
// routine's scope.
package parser
