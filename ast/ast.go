// Package ast defines apigen's intermediate representation for parsed IDL
// source: a slice of top-level declarations, each carrying a
// ParserType that mirrors surface syntax (spec.md §4.1).
//
// Nothing in this package resolves names or canonicalizes types; that is
// the analyzer's job, once it has an AST in hand. Every node carries a
// source Span so later phases can attribute diagnostics precisely.
package ast

import "fmt"

// Position is a single point in a source file (spec.md §4.1: "first_line,
// first_column").
type Position struct {
	Line   int // 1-based
	Column int // 1-based
}

func (p Position) String() string { return fmt.Sprintf("%d:%d", p.Line, p.Column) }

// Span is the half-open-in-spirit, inclusive-in-practice source range of an
// AST node: (first_line, first_column, last_line, last_column).
type Span struct {
	Start Position
	End   Position
}

// DeclKind distinguishes the five top-level declaration forms.
type DeclKind int

const (
	DeclConst DeclKind = iota + 1
	DeclVar
	DeclConstexpr
	DeclFn
	DeclType
)

func (k DeclKind) String() string {
	switch k {
	case DeclConst:
		return "const"
	case DeclVar:
		return "var"
	case DeclConstexpr:
		return "constexpr"
	case DeclFn:
		return "fn"
	case DeclType:
		return "type"
	default:
		return "unknown"
	}
}

// Decl is a single top-level declaration:
//
//	type Name = <Type>;
//	const name : <Type>;
//	var name : <Type>;
//	constexpr name : <Type> = <literal>;
//	fn name(p1: <Type>, p2: <Type>) <ReturnType>;
type Decl struct {
	Span Span
	Kind DeclKind

	Name string
	Doc  string // concatenated `///` lines, or "" if absent

	// Type is nil only for bare `fn` declarations in degenerate grammars;
	// in practice it is always populated — for `fn`, it is a
	// TypeFunction.
	Type *Type

	// Value is the initializer literal for a constexpr declaration, and
	// nil for every other kind.
	Value *Value
}

// Next is deliberately absent: declarations are returned as an ordinary
// []*Decl slice by the parser rather than a hand-rolled linked list, which
// is both simpler and just as arena-friendly — a slice backed by one arena
// allocation is exactly what the spec's "linked list of declarations"
// amounts to in Go.

// TypeKind enumerates the surface syntax forms a ParserType can take
// (spec.md §4.1 "ParserType kinds").
type TypeKind int

const (
	TypeNamed TypeKind = iota + 1
	TypeEnum
	TypeStruct
	TypeUnion
	TypeOpaque
	TypeArray
	TypePtrToOne
	TypePtrToMany
	TypePtrToManySentinelled
	TypeFunction
)

func (k TypeKind) String() string {
	switch k {
	case TypeNamed:
		return "named"
	case TypeEnum:
		return "enum"
	case TypeStruct:
		return "struct"
	case TypeUnion:
		return "union"
	case TypeOpaque:
		return "opaque"
	case TypeArray:
		return "array"
	case TypePtrToOne:
		return "ptr_to_one"
	case TypePtrToMany:
		return "ptr_to_many"
	case TypePtrToManySentinelled:
		return "ptr_to_many_sentinelled"
	case TypeFunction:
		return "function"
	default:
		return "unknown"
	}
}

// Field is a named member: a struct/union field, or a function parameter.
type Field struct {
	Span Span
	Doc  string
	Name string
	Type *Type
}

// EnumItem is a single `name = value` (or bare `name`) member of an `enum`
// surface type.
type EnumItem struct {
	Span  Span
	Doc   string
	Name  string
	Value *Value // nil if the item has no explicit initializer
}

// Type is a parsed (but not yet resolved) type expression.
type Type struct {
	Span Span
	Kind TypeKind

	// Named: the identifier spelling.
	Name string

	// Array: Size is the length literal, Elem the element type.
	Size *Value
	Elem *Type

	// Pointer kinds (PtrToOne, PtrToMany, PtrToManySentinelled):
	// Underlying is the pointee, Sentinel is the terminator value for a
	// sentinelled many-pointer (nil otherwise).
	Underlying *Type
	Sentinel   *Value
	IsConst    bool
	IsOptional bool

	// Enum: UnderlyingInt is the optional explicit backing type, Items the
	// member list.
	UnderlyingInt *Type
	Items         []EnumItem

	// Struct / Union: Fields is the member list.
	Fields []Field

	// Function: Return is the return type, Params the parameter list
	// (each Field's Name may be "").
	Return *Type
	Params []Field
}
