// Package semantic implements the Matrix Language type checker.
//
// The checker is bidirectional: inferExpression synthesizes a type from an
// expression, checkExpression pushes an expected type into it. Top-level
// function definitions get let-polymorphic treatment in the degenerate form
// the language supports: unconstrained parameters generalize to Any and
// instantiate freshly at every use through Any-compatibility.
package semantic

import (
	"fmt"

	"github.com/dedzsinator/go-matrix/internal/ast"
	"github.com/dedzsinator/go-matrix/internal/lexer"
	"github.com/dedzsinator/go-matrix/internal/types"
)

// structSig records a declared struct's fields in declaration order.
type structSig struct {
	names  []string
	fields map[string]types.Type
}

// enumSig records a declared enum's variants and payload types.
type enumSig struct {
	name     string
	variants map[string][]types.Type
}

// Analyzer performs type checking on a Matrix Language program. It validates
// operator and call typing, struct literals, annotations and identifier
// resolution, accumulating errors as it walks the tree.
type Analyzer struct {
	symbols *SymbolTable
	structs map[string]*structSig
	enums   map[string]*enumSig
	errors  []*SemanticError
}

// NewAnalyzer creates an analyzer with the standard library signatures in
// scope.
func NewAnalyzer() *Analyzer {
	a := &Analyzer{
		symbols: NewSymbolTable(),
		structs: make(map[string]*structSig),
		enums:   make(map[string]*enumSig),
	}
	for name, t := range builtinTypes {
		a.symbols.Define(name, t)
	}
	return a
}

// Errors returns all accumulated type errors.
func (a *Analyzer) Errors() []*SemanticError {
	return a.errors
}

// Analyze type-checks the program, processing items in order and extending
// the global scope. It returns the first error encountered, or nil.
func (a *Analyzer) Analyze(program *ast.Program) error {
	for _, item := range program.Items {
		a.checkItem(item)
	}
	if len(a.errors) > 0 {
		return a.errors[0]
	}
	return nil
}

// addError records a type error at the given span.
func (a *Analyzer) addError(span lexer.Span, format string, args ...any) {
	a.errors = append(a.errors, &SemanticError{
		Message: fmt.Sprintf(format, args...),
		Span:    span,
	})
}

// checkItem checks one top-level item and extends the global scope.
func (a *Analyzer) checkItem(item ast.Item) {
	switch node := item.(type) {
	case *ast.LetBinding:
		a.checkLetBinding(node)
	case *ast.FunctionDef:
		a.checkFunctionDef(node)
	case *ast.StructDef:
		a.declareStruct(node)
	case *ast.EnumDef:
		a.declareEnum(node)
	case *ast.ExpressionItem:
		a.inferExpression(node.Expression, a.symbols)
	}
}

// checkLetBinding checks a top-level let. An annotated binding checks its
// initializer against the annotation; otherwise the type is inferred. When
// the initializer is a lambda the name is pre-bound to the lambda's
// signature so direct recursion resolves.
func (a *Analyzer) checkLetBinding(node *ast.LetBinding) {
	if node.Type != nil {
		declared := a.resolveType(node.Type)
		a.checkExpression(node.Value, declared, a.symbols)
		a.symbols.Define(node.Name.Value, declared)
		return
	}

	if lambda, ok := node.Value.(*ast.LambdaExpression); ok {
		a.symbols.Define(node.Name.Value, a.lambdaSignature(lambda))
	}
	t := a.inferExpression(node.Value, a.symbols)
	a.symbols.Define(node.Name.Value, t)
}

// checkFunctionDef binds the function's signature before checking its body
// so that direct recursion type-checks, then validates the body against the
// declared return type when one is present.
func (a *Analyzer) checkFunctionDef(node *ast.FunctionDef) {
	sig := a.functionSignature(node.Params, node.ReturnType)
	a.symbols.Define(node.Name.Value, sig)

	scope := NewEnclosedSymbolTable(a.symbols)
	for idx, p := range node.Params {
		scope.Define(p.Name.Value, sig.Params[idx])
	}

	if node.ReturnType != nil {
		a.checkExpression(node.Body, sig.Return, scope)
		return
	}
	bodyType := a.inferExpression(node.Body, scope)
	a.symbols.Define(node.Name.Value, types.NewFunction(sig.Params, bodyType))
}

// functionSignature resolves declared parameter and return annotations,
// defaulting unannotated positions to Any.
func (a *Analyzer) functionSignature(params []*ast.Param, returnType ast.TypeExpression) *types.FunctionType {
	paramTypes := make([]types.Type, len(params))
	for idx, p := range params {
		if p.Type != nil {
			paramTypes[idx] = a.resolveType(p.Type)
		} else {
			paramTypes[idx] = types.Any
		}
	}
	var ret types.Type = types.Any
	if returnType != nil {
		ret = a.resolveType(returnType)
	}
	return types.NewFunction(paramTypes, ret)
}

// lambdaSignature builds a signature from a lambda's own annotations.
func (a *Analyzer) lambdaSignature(lambda *ast.LambdaExpression) *types.FunctionType {
	return a.functionSignature(lambda.Params, lambda.ReturnType)
}

// declareStruct registers a struct declaration.
func (a *Analyzer) declareStruct(node *ast.StructDef) {
	if _, exists := a.structs[node.Name.Value]; exists {
		a.addError(node.Name.Pos(), "struct %s is already declared", node.Name.Value)
		return
	}
	sig := &structSig{fields: make(map[string]types.Type, len(node.Fields))}
	for _, f := range node.Fields {
		if _, dup := sig.fields[f.Name.Value]; dup {
			a.addError(f.Name.Pos(), "duplicate field %s in struct %s", f.Name.Value, node.Name.Value)
			continue
		}
		sig.names = append(sig.names, f.Name.Value)
		sig.fields[f.Name.Value] = a.resolveType(f.Type)
	}
	a.structs[node.Name.Value] = sig
}

// declareEnum registers an enum declaration and binds its variant
// constructors into the global scope.
func (a *Analyzer) declareEnum(node *ast.EnumDef) {
	if _, exists := a.enums[node.Name.Value]; exists {
		a.addError(node.Name.Pos(), "enum %s is already declared", node.Name.Value)
		return
	}
	sig := &enumSig{name: node.Name.Value, variants: make(map[string][]types.Type, len(node.Variants))}
	enumType := types.NewNamed(node.Name.Value)

	for _, variant := range node.Variants {
		if _, dup := sig.variants[variant.Name.Value]; dup {
			a.addError(variant.Name.Pos(), "duplicate variant %s in enum %s", variant.Name.Value, node.Name.Value)
			continue
		}
		payload := make([]types.Type, len(variant.Types))
		for idx, t := range variant.Types {
			payload[idx] = a.resolveType(t)
		}
		sig.variants[variant.Name.Value] = payload

		if len(payload) == 0 {
			a.symbols.Define(variant.Name.Value, enumType)
		} else {
			a.symbols.Define(variant.Name.Value, types.NewFunction(payload, enumType))
		}
	}
	a.enums[node.Name.Value] = sig
}

// variantPayload finds the payload types of a variant across all declared
// enums.
func (a *Analyzer) variantPayload(name string) ([]types.Type, bool) {
	for _, sig := range a.enums {
		if payload, ok := sig.variants[name]; ok {
			return payload, true
		}
	}
	return nil, false
}

// resolveType converts a source-level annotation to a checker type.
// Unknown names resolve to opaque named types: handle types such as
// PhysicsWorld have no declaration.
func (a *Analyzer) resolveType(expr ast.TypeExpression) types.Type {
	switch node := expr.(type) {
	case *ast.NamedType:
		switch node.Name {
		case "Int":
			return types.Int
		case "Float":
			return types.Float
		case "Bool":
			return types.Bool
		case "String":
			return types.String
		case "Unit":
			return types.Unit
		case "Any":
			return types.Any
		}
		return types.NewNamed(node.Name)
	case *ast.ArrayTypeNode:
		return types.NewArray(a.resolveType(node.Element))
	case *ast.MatrixTypeNode:
		return types.NewMatrix(a.resolveType(node.Element))
	case *ast.FunctionTypeNode:
		params := make([]types.Type, len(node.Params))
		for idx, p := range node.Params {
			params[idx] = a.resolveType(p)
		}
		return types.NewFunction(params, a.resolveType(node.Return))
	}
	return types.Any
}
