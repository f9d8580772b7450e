package analyzer

import (
	"fmt"

	"github.com/apigen/apigen/ast"
	"github.com/apigen/apigen/diag"
	"github.com/apigen/apigen/typepool"
)

// resolveFailure replaces the original resolver's setjmp/longjmp pair
// (spec.md §9, "Non-local control flow") with an explicit two-tagged error:
// missing a named symbol that might still appear (worth retrying during the
// §4.3 phase-3 fixpoint) versus a definitive failure that should stop the
// current declaration's resolution immediately.
type resolveFailure struct {
	missing bool
	name    string // set when missing
}

func (e *resolveFailure) Error() string {
	if e.missing {
		return fmt.Sprintf("undeclared identifier %q", e.name)
	}
	return "type resolution failed"
}

func missingSymbol(name string) error { return &resolveFailure{missing: true, name: name} }
func genericFailure() error           { return &resolveFailure{} }

// isMissingSymbol reports whether err is a missing-symbol resolveFailure.
func isMissingSymbol(err error) bool {
	rf, ok := err.(*resolveFailure)
	return ok && rf.missing
}

// anonWork is one pending anonymous unique type: its synthesized Type (kind
// and name already fixed) together with the ParserType node whose extra
// data still needs resolving, and the prefix subsequent nested anonymous
// types under it should use.
type anonWork struct {
	ty     *typepool.Type
	parsed *ast.Type
	prefix string
}

// resolver carries the state threaded through one resolveType walk:
// spec.md §4.3.1's "small state record".
type resolver struct {
	file        string
	sink        *diag.Sink
	pool        *typepool.Pool
	emitMissing bool // controls whether undeclared_identifier is reported now
	anonQueue   []anonWork
}

func (r *resolver) pos(p ast.Position) diag.Position {
	return diag.Position{File: r.file, Line: p.Line, Column: p.Column}
}

func (r *resolver) errf(span ast.Span, code diag.Code, format string, args ...any) {
	r.sink.Errorf(r.pos(span.Start), code, format, args...)
}

func (r *resolver) warnf(span ast.Span, code diag.Code, format string, args ...any) {
	r.sink.Warnf(r.pos(span.Start), code, format, args...)
}

// resolveType resolves a parsed type expression into an interned
// *typepool.Type, per spec.md §4.3.1.
func (r *resolver) resolveType(t *ast.Type, prefix string) (*typepool.Type, error) {
	switch t.Kind {
	case ast.TypeNamed:
		ty, ok := r.pool.Lookup(t.Name)
		if !ok {
			if r.emitMissing {
				r.errf(t.Span, diag.UndeclaredIdentifier, "undeclared identifier %q", t.Name)
			}
			return nil, missingSymbol(t.Name)
		}
		return ty, nil

	case ast.TypePtrToOne, ast.TypePtrToMany, ast.TypePtrToManySentinelled:
		return r.resolvePointer(t, prefix)

	case ast.TypeArray:
		return r.resolveArray(t, prefix)

	case ast.TypeFunction:
		return r.resolveFunction(t, prefix)

	case ast.TypeEnum, ast.TypeStruct, ast.TypeUnion, ast.TypeOpaque:
		return r.resolveInlineUnique(t, prefix)

	default:
		r.errf(t.Span, diag.Internal, "unhandled parser type kind %v", t.Kind)
		return nil, genericFailure()
	}
}

func (r *resolver) resolvePointer(t *ast.Type, prefix string) (*typepool.Type, error) {
	underlying, err := r.resolveType(t.Underlying, prefix)
	if err != nil {
		return nil, err
	}

	var multi typepool.Multi
	switch t.Kind {
	case ast.TypePtrToOne:
		multi = typepool.One
	case ast.TypePtrToMany:
		multi = typepool.Many
	case ast.TypePtrToManySentinelled:
		multi = typepool.ManySentinelled
	}

	extra := &typepool.PointerExtra{Underlying: underlying}
	if t.Kind == ast.TypePtrToManySentinelled {
		val, err := r.resolveSentinel(t.Sentinel)
		if err != nil {
			return nil, err
		}
		extra.Sentinel = &val
	}

	kind := typepool.PointerKind(multi, t.IsConst, t.IsOptional)
	return r.pool.Intern(typepool.Type{Kind: kind, Pointer: extra}), nil
}

// resolveSentinel converts a parsed sentinel literal to its bit pattern.
// The parser accepts any literal (integer, string or null) in a sentinel
// slot; a non-integer value is reported here under the internal-error code.
func (r *resolver) resolveSentinel(v *ast.Value) (typepool.EnumValue, error) {
	switch v.Kind {
	case ast.ValueSint:
		return typepool.EnumValue{Signed: true, Bits: uint64(v.Sint)}, nil
	case ast.ValueUint:
		return typepool.EnumValue{Signed: false, Bits: v.Uint}, nil
	default:
		r.errf(v.Span, diag.Internal, "sentinel value must be an integer")
		return typepool.EnumValue{}, genericFailure()
	}
}

func (r *resolver) resolveArray(t *ast.Type, prefix string) (*typepool.Type, error) {
	elem, err := r.resolveType(t.Elem, prefix)
	if err != nil {
		return nil, err
	}
	if t.Size.Kind != ast.ValueUint {
		r.errf(t.Size.Span, diag.ArraySizeNotUint, "array size must be an unsigned integer literal")
		return nil, genericFailure()
	}
	return r.pool.Intern(typepool.Type{
		Kind:  typepool.KindArray,
		Array: &typepool.ArrayExtra{Size: t.Size.Uint, Underlying: elem},
	}), nil
}

func (r *resolver) resolveFunction(t *ast.Type, prefix string) (*typepool.Type, error) {
	ret, err := r.resolveType(t.Return, prefix)
	if err != nil {
		return nil, err
	}
	params := make([]typepool.Field, 0, len(t.Params))
	seen := make(map[string]bool, len(t.Params))
	for _, p := range t.Params {
		pty, err := r.resolveType(p.Type, prefix)
		if err != nil {
			return nil, err
		}
		if p.Name != "" {
			if seen[p.Name] {
				r.errf(p.Span, diag.DuplicateParameter, "duplicate parameter %q", p.Name)
			}
			seen[p.Name] = true
		}
		params = append(params, typepool.Field{Doc: p.Doc, Name: p.Name, Type: pty})
	}
	return r.pool.Intern(typepool.Type{
		Kind:     typepool.KindFunction,
		Function: &typepool.FunctionExtra{Return: ret, Parameters: params},
	}), nil
}

// resolveInlineUnique synthesizes a named unique Type for a unique kind
// spelled out inline (not via a top-level `type Name = ...`), enqueuing its
// body for resolution in phase 9 (spec.md §4.3.1, §4.3 phase 9).
func (r *resolver) resolveInlineUnique(t *ast.Type, prefix string) (*typepool.Type, error) {
	kind, kindWord := uniqueKindOf(t.Kind)
	name := prefix + "_" + kindWord
	ty := r.pool.RegisterAnonymous(typepool.Type{Kind: kind}, name)
	r.anonQueue = append(r.anonQueue, anonWork{ty: ty, parsed: t, prefix: name})
	return ty, nil
}

func uniqueKindOf(k ast.TypeKind) (typepool.Kind, string) {
	switch k {
	case ast.TypeEnum:
		return typepool.KindEnum, "enum"
	case ast.TypeStruct:
		return typepool.KindStruct, "struct"
	case ast.TypeUnion:
		return typepool.KindUnion, "union"
	case ast.TypeOpaque:
		return typepool.KindOpaque, "opaque"
	default:
		panic("analyzer: uniqueKindOf called with non-unique kind " + k.String())
	}
}
