// Package symtab implements the scope stack used while parsing to reject
// duplicate declarations.
package symtab

import (
	"fmt"

	"github.com/dhamidi/ilc/lang/token"
)

type Category int

const (
	Variable Category = iota
	Parameter
	Procedure
	Function
)

func (c Category) String() string {
	switch c {
	case Variable:
		return "variable"
	case Parameter:
		return "parameter"
	case Procedure:
		return "procedure"
	case Function:
		return "function"
	default:
		return "unknown"
	}
}

// Symbol is a declared name. Kind is the declaring keyword: int or bool for
// variables and parameters, procedure for procedures, and the return type
// for functions.
type Symbol struct {
	Name     string
	Kind     token.Kind
	Category Category
	Line     int
	Column   int
}

type DuplicateSymbolError struct {
	Name   string
	Line   int
	Column int
}

func (e *DuplicateSymbolError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: identifier %q already declared in this scope", e.Line, e.Name)
	}
	return fmt.Sprintf("identifier %q already declared in this scope", e.Name)
}

type scope map[string]Symbol

// Table is a stack of scopes, innermost last. New tables start with a
// global scope.
type Table struct {
	scopes []scope
}

func New() *Table {
	t := &Table{}
	t.EnterScope()
	return t
}

func (t *Table) EnterScope() {
	t.scopes = append(t.scopes, make(scope))
}

// ExitScope pops the innermost scope. Popping an empty table does nothing.
func (t *Table) ExitScope() {
	if len(t.scopes) == 0 {
		return
	}
	t.scopes = t.scopes[:len(t.scopes)-1]
}

// Depth returns the number of open scopes.
func (t *Table) Depth() int {
	return len(t.scopes)
}

// Declare adds sym to the innermost scope. A name already present in that
// scope yields a *DuplicateSymbolError; outer scopes are not consulted.
func (t *Table) Declare(sym Symbol) error {
	if len(t.scopes) == 0 {
		t.EnterScope()
	}
	top := t.scopes[len(t.scopes)-1]
	if _, exists := top[sym.Name]; exists {
		return &DuplicateSymbolError{Name: sym.Name, Line: sym.Line, Column: sym.Column}
	}
	top[sym.Name] = sym
	return nil
}

// Lookup searches from the innermost scope outwards.
func (t *Table) Lookup(name string) (Symbol, bool) {
	for i := len(t.scopes) - 1; i >= 0; i-- {
		if sym, ok := t.scopes[i][name]; ok {
			return sym, true
		}
	}
	return Symbol{}, false
}
