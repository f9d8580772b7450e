// Package analyzer turns a parsed AST into a resolved Document: every
// named type is registered and interned, every global/constant/function
// signature is checked against the type pool, and enum/struct/union
// shapes are validated (spec.md §3.3, §4.3).
package analyzer

import (
	"github.com/apigen/apigen/ast"
	"github.com/apigen/apigen/typepool"
)

// Global is a resolved `const`/`var` top-level declaration.
type Global struct {
	Doc     string
	Name    string
	Type    *typepool.Type
	IsConst bool
}

// Constant is a resolved `constexpr` top-level declaration.
type Constant struct {
	Doc   string
	Name  string
	Type  *typepool.Type
	Value ast.Value
}

// Function is a resolved `fn` top-level declaration.
type Function struct {
	Doc  string
	Name string
	Type *typepool.Type // Kind == typepool.KindFunction
}

// Document is the fully analyzed result of one compile (spec.md §3.3).
//
// Types is in source declaration order, followed by every anonymous
// unique type discovered while resolving the primary declarations, in the
// order their resolution completed (spec.md §4.3 phase 9).
type Document struct {
	Types     []*typepool.Type
	Globals   []Global
	Constants []Constant
	Functions []Function

	Pool *typepool.Pool
}
