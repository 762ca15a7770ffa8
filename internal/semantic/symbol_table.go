package semantic

import "github.com/dedzsinator/go-matrix/internal/types"

// SymbolTable maps identifiers to their types with nested lexical scopes.
// Its shape mirrors the evaluator's environment chain so that everything the
// checker accepts resolves identically at runtime.
type SymbolTable struct {
	store map[string]types.Type
	outer *SymbolTable
}

// NewSymbolTable creates a root-level symbol table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{store: make(map[string]types.Type)}
}

// NewEnclosedSymbolTable creates a child scope.
func NewEnclosedSymbolTable(outer *SymbolTable) *SymbolTable {
	return &SymbolTable{store: make(map[string]types.Type), outer: outer}
}

// Get resolves a name, walking outward through enclosing scopes.
func (s *SymbolTable) Get(name string) (types.Type, bool) {
	if t, ok := s.store[name]; ok {
		return t, true
	}
	if s.outer != nil {
		return s.outer.Get(name)
	}
	return nil, false
}

// Define binds a name in the current scope, shadowing any outer binding.
func (s *SymbolTable) Define(name string, t types.Type) {
	s.store[name] = t
}
