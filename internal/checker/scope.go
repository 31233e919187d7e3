// Package checker implements the static type-checker: scope
// resolution, assignability, and expression/statement/block type
// inference over the parser's AST.
package checker

import "github.com/waxlang/waxc/internal/ast"

// Scope is a persistent lexical scope node holding two disjoint
// mappings (type aliases, variable-to-type) and a pointer to its
// parent. Lookups walk parent links; writes affect only the current
// node. Block statements share the enclosing scope; child scopes are
// created only for function bodies.
type Scope struct {
	parent *Scope
	types  map[string]ast.Type
	vars   map[string]ast.Type
}

// NewScope creates a scope with an optional parent.
func NewScope(parent *Scope) *Scope {
	return &Scope{
		parent: parent,
		types:  make(map[string]ast.Type),
		vars:   make(map[string]ast.Type),
	}
}

// DefineType binds a name to a type alias in the current scope.
func (s *Scope) DefineType(name string, t ast.Type) {
	s.types[name] = t
}

// DefineVar binds a name to a variable's type in the current scope.
func (s *Scope) DefineVar(name string, t ast.Type) {
	s.vars[name] = t
}

// LookupType walks parent links to resolve a named type alias.
func (s *Scope) LookupType(name string) (ast.Type, bool) {
	for sc := s; sc != nil; sc = sc.parent {
		if t, ok := sc.types[name]; ok {
			return t, true
		}
	}
	return nil, false
}

// LookupVar walks parent links to resolve a variable's type.
func (s *Scope) LookupVar(name string) (ast.Type, bool) {
	for sc := s; sc != nil; sc = sc.parent {
		if t, ok := sc.vars[name]; ok {
			return t, true
		}
	}
	return nil, false
}
