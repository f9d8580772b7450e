// Package typepool implements apigen's type pool: interning of structural
// types and name-based lookup and registration of declared types
// (spec.md §3.2, §4.2).
//
// Its shape is grounded directly in the original C implementation's
// type-pool.c: a linked list of named types plus a linked list of interned
// structural types, both allocated from an arena. The Go port keeps the
// "everything is a node with an arena-scoped lifetime" discipline (spec.md
// §9: "back all Type references with arena-scoped indices or arena-lifetime
// references — never reference-counted cells") but replaces the linked
// lists with a map for name lookup and a slice for the intern cache, since
// neither needs link-list append order once allocation is not done by hand.
package typepool

import (
	"fmt"
)

// Kind is the tag of a Type (spec.md §3.2).
type Kind int

const (
	KindInvalid Kind = iota

	// Primitives.
	KindVoid
	KindAnyopaque
	KindBool
	KindUchar
	KindIchar
	KindChar
	KindU8
	KindU16
	KindU32
	KindU64
	KindUsize
	KindCUshort
	KindCUint
	KindCUlong
	KindCUlonglong
	KindI8
	KindI16
	KindI32
	KindI64
	KindIsize
	KindCShort
	KindCInt
	KindCLong
	KindCLonglong
	KindF32
	KindF64

	// Pointer family: the cross product of {single, many, sentinelled-many}
	// x {mutable, const} x {non-null, nullable}.
	KindPtrToOne
	KindPtrToMany
	KindPtrToManySentinelled
	KindNullablePtrToOne
	KindNullablePtrToMany
	KindNullablePtrToManySentinelled
	KindConstPtrToOne
	KindConstPtrToMany
	KindConstPtrToManySentinelled
	KindNullableConstPtrToOne
	KindNullableConstPtrToMany
	KindNullableConstPtrToManySentinelled

	KindArray

	// Unique kinds: identity is by declaration site, never structural.
	KindOpaque
	KindEnum
	KindStruct
	KindUnion

	KindFunction
	KindAlias
)

var kindNames = map[Kind]string{
	KindVoid:                                 "void",
	KindAnyopaque:                            "anyopaque",
	KindBool:                                 "bool",
	KindUchar:                                "uchar",
	KindIchar:                                "ichar",
	KindChar:                                 "char",
	KindU8:                                   "u8",
	KindU16:                                  "u16",
	KindU32:                                  "u32",
	KindU64:                                  "u64",
	KindUsize:                                "usize",
	KindCUshort:                              "c_ushort",
	KindCUint:                                "c_uint",
	KindCUlong:                               "c_ulong",
	KindCUlonglong:                           "c_ulonglong",
	KindI8:                                   "i8",
	KindI16:                                  "i16",
	KindI32:                                  "i32",
	KindI64:                                  "i64",
	KindIsize:                                "isize",
	KindCShort:                               "c_short",
	KindCInt:                                 "c_int",
	KindCLong:                                "c_long",
	KindCLonglong:                            "c_longlong",
	KindF32:                                  "f32",
	KindF64:                                  "f64",
	KindPtrToOne:                             "ptr_to_one",
	KindPtrToMany:                            "ptr_to_many",
	KindPtrToManySentinelled:                 "ptr_to_sentinelled_many",
	KindNullablePtrToOne:                     "nullable_ptr_to_one",
	KindNullablePtrToMany:                    "nullable_ptr_to_many",
	KindNullablePtrToManySentinelled:         "nullable_ptr_to_sentinelled_many",
	KindConstPtrToOne:                        "const_ptr_to_one",
	KindConstPtrToMany:                       "const_ptr_to_many",
	KindConstPtrToManySentinelled:            "const_ptr_to_sentinelled_many",
	KindNullableConstPtrToOne:                "nullable_const_ptr_to_one",
	KindNullableConstPtrToMany:               "nullable_const_ptr_to_many",
	KindNullableConstPtrToManySentinelled:    "nullable_const_ptr_to_sentinelled_many",
	KindArray:                                "array",
	KindOpaque:                               "opaque",
	KindEnum:                                 "enum",
	KindStruct:                               "struct",
	KindUnion:                                "union",
	KindFunction:                             "function",
	KindAlias:                                "alias",
}

// String implements fmt.Stringer, restoring the original implementation's
// apigen_type_str debug names (spec.md §4, "Supplemented features"): used
// only in panic messages and test failure output, never in generated code.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind_%d", int(k))
}

// Unique reports whether k's identity is by declaration site rather than
// shape (spec.md §3.2 invariant 1).
func (k Kind) Unique() bool {
	switch k {
	case KindOpaque, KindEnum, KindStruct, KindUnion:
		return true
	default:
		return false
	}
}

// Primitive reports whether k is one of the statically-defined primitive
// kinds (spec.md §3.2 invariant 3).
func (k Kind) Primitive() bool {
	switch k {
	case KindVoid, KindAnyopaque, KindBool,
		KindUchar, KindIchar, KindChar,
		KindU8, KindU16, KindU32, KindU64, KindUsize,
		KindCUshort, KindCUint, KindCUlong, KindCUlonglong,
		KindI8, KindI16, KindI32, KindI64, KindIsize,
		KindCShort, KindCInt, KindCLong, KindCLonglong,
		KindF32, KindF64:
		return true
	default:
		return false
	}
}

// Integer reports whether k is one of the integer primitive kinds (used by
// the analyzer's enum-underlying-type check, spec.md §4.3.3).
func (k Kind) Integer() bool {
	switch k {
	case KindU8, KindU16, KindU32, KindU64, KindUsize,
		KindCUshort, KindCUint, KindCUlong, KindCUlonglong,
		KindI8, KindI16, KindI32, KindI64, KindIsize,
		KindCShort, KindCInt, KindCLong, KindCLonglong:
		return true
	default:
		return false
	}
}

// Multi distinguishes the three pointer "multiplicities".
type Multi int

const (
	One Multi = iota
	Many
	ManySentinelled
)

// PointerKind maps (multi, isConst, isOptional) to one of the 12 pointer
// kinds (spec.md §4.3.1).
func PointerKind(multi Multi, isConst, isOptional bool) Kind {
	base := [3][2][2]Kind{
		One: {
			{KindPtrToOne, KindNullablePtrToOne},
			{KindConstPtrToOne, KindNullableConstPtrToOne},
		},
		Many: {
			{KindPtrToMany, KindNullablePtrToMany},
			{KindConstPtrToMany, KindNullableConstPtrToMany},
		},
		ManySentinelled: {
			{KindPtrToManySentinelled, KindNullablePtrToManySentinelled},
			{KindConstPtrToManySentinelled, KindNullableConstPtrToManySentinelled},
		},
	}
	constIdx := 0
	if isConst {
		constIdx = 1
	}
	optIdx := 0
	if isOptional {
		optIdx = 1
	}
	return base[multi][constIdx][optIdx]
}

// Sentinelled reports whether k is one of the four sentinelled many-pointer
// kinds.
func (k Kind) Sentinelled() bool {
	switch k {
	case KindPtrToManySentinelled, KindNullablePtrToManySentinelled,
		KindConstPtrToManySentinelled, KindNullableConstPtrToManySentinelled:
		return true
	default:
		return false
	}
}

// Pointer reports whether k is one of the 12 pointer-family kinds.
func (k Kind) Pointer() bool {
	switch k {
	case KindPtrToOne, KindPtrToMany, KindPtrToManySentinelled,
		KindNullablePtrToOne, KindNullablePtrToMany, KindNullablePtrToManySentinelled,
		KindConstPtrToOne, KindConstPtrToMany, KindConstPtrToManySentinelled,
		KindNullableConstPtrToOne, KindNullableConstPtrToMany, KindNullableConstPtrToManySentinelled:
		return true
	default:
		return false
	}
}

// Const reports whether k is one of the six const-qualified pointer kinds.
func (k Kind) Const() bool {
	switch k {
	case KindConstPtrToOne, KindConstPtrToMany, KindConstPtrToManySentinelled,
		KindNullableConstPtrToOne, KindNullableConstPtrToMany, KindNullableConstPtrToManySentinelled:
		return true
	default:
		return false
	}
}

// PointerExtra is the extra data of a pointer-family Type.
type PointerExtra struct {
	Underlying *Type
	// Sentinel is only meaningful when the owning Type's Kind is
	// sentinelled (spec.md §3.2).
	Sentinel *EnumValue
}

// ArrayExtra is the extra data of an array Type.
type ArrayExtra struct {
	Size       uint64
	Underlying *Type
}

// EnumValue is an enum item's 64-bit payload, tagged by signedness the same
// way the analyzer tracks it while resolving an enum declaration
// (spec.md §4.3.3).
type EnumValue struct {
	Signed bool
	Bits   uint64 // two's-complement bit pattern
}

// Int64 returns v's value reinterpreted as a signed 64-bit integer.
func (v EnumValue) Int64() int64 { return int64(v.Bits) }

// EnumItem is one member of an enum's item list.
type EnumItem struct {
	Doc   string
	Name  string
	Value EnumValue
}

// EnumExtra is the extra data of an enum Type.
type EnumExtra struct {
	Underlying *Type
	Items      []EnumItem
}

// Field is a named struct/union member or function parameter.
type Field struct {
	Doc  string
	Name string
	Type *Type
}

// FieldsExtra is the extra data of a struct or union Type.
type FieldsExtra struct {
	Fields []Field
}

// FunctionExtra is the extra data of a function Type.
type FunctionExtra struct {
	Return     *Type
	Parameters []Field
}

// Type is apigen's canonical representation of a resolved type
// (spec.md §3.2).
//
// Exactly one of the kind-specific extra fields is populated, matching the
// Kind. This mirrors the original C type's tagged extra-data pointer, made
// explicit as separate optional fields in the idiomatic Go style already
// used by ast.Type for parsed type expressions.
type Type struct {
	Kind Kind

	// Name is the type's display name: the canonical spelling of a
	// primitive singleton ("i32", "c_int", ...), or the declared name of a
	// type introduced by a top-level `type Name = ...` declaration
	// (possibly synthetically, for an anonymous nested unique type).
	// Structural types (pointers, arrays, functions) have no name.
	Name string
	// Anonymous is set by the analyzer when this Type was synthesized for
	// a unique type declared inline, rather than written at the top
	// level (spec.md §3.2, §4.3.1).
	Anonymous bool

	Pointer  *PointerExtra
	Array    *ArrayExtra
	Enum     *EnumExtra
	Fields   *FieldsExtra
	Function *FunctionExtra
	Alias    *Type
}

func (t *Type) String() string {
	if t.Name != "" {
		return t.Name
	}
	return t.Kind.String()
}
