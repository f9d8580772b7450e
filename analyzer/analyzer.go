package analyzer

import (
	"github.com/apigen/apigen/ast"
	"github.com/apigen/apigen/diag"
	"github.com/apigen/apigen/typepool"
)

// Analyze runs the nine phases of spec.md §4.3 over decls, producing a
// Document. The returned bool matches the original's overall success flag:
// diagnostics emitted before a failing phase still stand even when false is
// returned.
func Analyze(file string, decls []*ast.Decl, sink *diag.Sink) (*Document, bool) {
	pool := typepool.NewPool()
	r := &resolver{file: file, sink: sink, pool: pool}
	ok := true

	// Phase 2: publish named unique types.
	type uniqueDecl struct {
		decl *ast.Decl
		ty   *typepool.Type
	}
	var uniques []uniqueDecl
	for _, d := range decls {
		if d.Kind != ast.DeclType || !uniqueASTKind(d.Type.Kind) {
			continue
		}
		kind := uniqueKindFromAST(d.Type.Kind)
		ty, registered := pool.Register(typepool.Type{Kind: kind}, d.Name)
		if !registered {
			sink.Errorf(r.pos(d.Span.Start), diag.DuplicateSymbol, "symbol %q already declared", d.Name)
			ok = false
			continue
		}
		uniques = append(uniques, uniqueDecl{decl: d, ty: ty})
	}

	// Phase 3: resolve non-unique top-level type declarations to a fixpoint.
	var pending []*ast.Decl
	for _, d := range decls {
		if d.Kind == ast.DeclType && !uniqueASTKind(d.Type.Kind) {
			pending = append(pending, d)
		}
	}

	aliasResult := make(map[*ast.Decl]*typepool.Type)
	for {
		var next []*ast.Decl
		progress := false
		for _, d := range pending {
			resolved, err := r.resolveType(d.Type, d.Name)
			if err == nil {
				owned, registered := pool.Register(typepool.Type{Kind: typepool.KindAlias, Alias: resolved}, d.Name)
				if !registered {
					sink.Errorf(r.pos(d.Span.Start), diag.DuplicateSymbol, "symbol %q already declared", d.Name)
					ok = false
					progress = true
					continue
				}
				aliasResult[d] = owned
				progress = true
				continue
			}
			if isMissingSymbol(err) {
				next = append(next, d)
				continue
			}
			// Generic failure: a diagnostic was already emitted by the
			// resolver at the point of failure.
			ok = false
			progress = true
		}
		pending = next
		if !progress || len(pending) == 0 {
			break
		}
	}
	if len(pending) > 0 {
		r.emitMissing = true
		for _, d := range pending {
			r.resolveType(d.Type, d.Name)
		}
		sink.Errorf(diag.Position{File: file}, diag.UnresolvedSymbols, "%d symbol(s) could not be resolved", len(pending))
		ok = false
	}
	// Every later phase resolves a declaration exactly once, so there is no
	// fixpoint left to retry against: resolve_type(..., true, ...) at every
	// remaining call site (analyzer.c:605, 654, 1101, 1131, 1162).
	r.emitMissing = true

	// Phase 4: resolve unique types' bodies.
	for _, u := range uniques {
		if err := r.resolveUniqueBody(u.ty, u.decl.Type, u.decl.Name); err != nil {
			ok = false
		}
	}

	// Phase 5: commit the type list in source order.
	doc := &Document{Pool: pool}
	for _, d := range decls {
		if d.Kind != ast.DeclType {
			continue
		}
		if uniqueASTKind(d.Type.Kind) {
			for _, u := range uniques {
				if u.decl == d {
					doc.Types = append(doc.Types, u.ty)
				}
			}
			continue
		}
		if ty, found := aliasResult[d]; found {
			doc.Types = append(doc.Types, ty)
		}
	}

	// Phase 6: resolve globals.
	for _, d := range decls {
		if d.Kind != ast.DeclConst && d.Kind != ast.DeclVar {
			continue
		}
		ty, err := r.resolveType(d.Type, d.Name)
		if err != nil {
			ok = false
			continue
		}
		doc.Globals = append(doc.Globals, Global{
			Doc: d.Doc, Name: d.Name, Type: ty, IsConst: d.Kind == ast.DeclConst,
		})
	}

	// Phase 7: resolve functions.
	for _, d := range decls {
		if d.Kind != ast.DeclFn {
			continue
		}
		ty, err := r.resolveType(d.Type, d.Name)
		if err != nil {
			ok = false
			continue
		}
		if ty.Kind != typepool.KindFunction {
			sink.Internalf(r.pos(d.Span.Start), "resolved function declaration %q did not produce a function type", d.Name)
			ok = false
			continue
		}
		doc.Functions = append(doc.Functions, Function{Doc: d.Doc, Name: d.Name, Type: ty})
	}

	// Phase 8: resolve constants.
	for _, d := range decls {
		if d.Kind != ast.DeclConstexpr {
			continue
		}
		c, valid := r.resolveConstant(d)
		if c != nil {
			doc.Constants = append(doc.Constants, *c)
		}
		if !valid {
			ok = false
		}
	}

	// Phase 9: drain the anonymous unique type queue, resolving each
	// one's body and appending it to the Document's type list in the
	// order its resolution completed. Resolving a queued type's body can
	// itself enqueue further anonymous types (a struct field that is
	// itself an inline struct), so the queue is drained to exhaustion
	// rather than walked once.
	for i := 0; i < len(r.anonQueue); i++ {
		w := r.anonQueue[i]
		if err := r.resolveUniqueBody(w.ty, w.parsed, w.prefix); err != nil {
			ok = false
		}
		doc.Types = append(doc.Types, w.ty)
	}

	return doc, ok
}

// resolveUniqueBody fills in ty's extra data from t, dispatching on t's
// unique kind (spec.md §4.3.2, §4.3.3).
func (r *resolver) resolveUniqueBody(ty *typepool.Type, t *ast.Type, prefix string) error {
	switch t.Kind {
	case ast.TypeStruct, ast.TypeUnion:
		return r.analyzeStructOrUnion(ty, t, prefix)
	case ast.TypeEnum:
		return r.analyzeEnum(ty, t, prefix)
	case ast.TypeOpaque:
		return nil
	default:
		panic("analyzer: resolveUniqueBody called with non-unique parser type " + t.Kind.String())
	}
}

// resolveConstant resolves a constexpr declaration's type and value, per
// spec.md §4.3 phase 8. It always returns a non-nil Constant once the type
// resolves (even when a diagnostic fired against it), matching the
// original's behavior of emitting diagnostics without discarding the
// declaration; valid reports whether the declaration was free of errors.
func (r *resolver) resolveConstant(d *ast.Decl) (c *Constant, valid bool) {
	ty, err := r.resolveType(d.Type, d.Name)
	if err != nil {
		return nil, false
	}

	v := d.Value
	if v == nil {
		v = ast.Null(d.Span)
	}
	valid = true
	if v.Kind == ast.ValueNull {
		r.errf(d.Span, diag.ConstexprTypeMismatch, "constant %q has no value", d.Name)
		valid = false
	}

	switch {
	case ty.Kind.Integer():
		switch v.Kind {
		case ast.ValueSint, ast.ValueUint:
			rng, known := integerRange(ty)
			if known {
				var inRange bool
				if v.Kind == ast.ValueSint {
					inRange = rng.validAndContainsSigned(v.Sint)
				} else {
					inRange = rng.validAndContainsUnsigned(v.Uint)
				}
				if !inRange {
					r.errf(d.Span, diag.ConstexprOutOfRange, "constant %q value out of range", d.Name)
					valid = false
				}
			} else {
				r.warnf(d.Span, diag.ConstexprUnchecked, "constant %q has a platform-dependent range and was not range-checked", d.Name)
			}
		case ast.ValueNull:
			// already reported above
		default:
			r.errf(d.Span, diag.ConstexprTypeMismatch, "constant %q requires an integer value", d.Name)
			valid = false
		}

	case isCharPointerToConst(ty):
		if v.Kind != ast.ValueStr && v.Kind != ast.ValueNull {
			r.errf(d.Span, diag.ConstexprTypeMismatch, "constant %q requires a string value", d.Name)
			valid = false
		}

	default:
		r.errf(d.Span, diag.ConstexprIllegalType, "constant %q has an illegal type for a constant expression", d.Name)
		valid = false
	}

	return &Constant{Doc: d.Doc, Name: d.Name, Type: ty, Value: *v}, valid
}

// isCharPointerToConst reports whether ty is a const many-pointer to a
// character type, the only pointer shape spec.md §4.3 phase 8 allows a
// string literal to initialize.
func isCharPointerToConst(ty *typepool.Type) bool {
	if ty.Kind != typepool.KindConstPtrToMany && ty.Kind != typepool.KindConstPtrToManySentinelled &&
		ty.Kind != typepool.KindNullableConstPtrToMany && ty.Kind != typepool.KindNullableConstPtrToManySentinelled {
		return false
	}
	switch ty.Pointer.Underlying.Kind {
	case typepool.KindChar, typepool.KindUchar, typepool.KindIchar:
		return true
	default:
		return false
	}
}

func uniqueASTKind(k ast.TypeKind) bool {
	switch k {
	case ast.TypeEnum, ast.TypeStruct, ast.TypeUnion, ast.TypeOpaque:
		return true
	default:
		return false
	}
}

func uniqueKindFromAST(k ast.TypeKind) typepool.Kind {
	switch k {
	case ast.TypeEnum:
		return typepool.KindEnum
	case ast.TypeStruct:
		return typepool.KindStruct
	case ast.TypeUnion:
		return typepool.KindUnion
	case ast.TypeOpaque:
		return typepool.KindOpaque
	default:
		panic("analyzer: uniqueKindFromAST called with non-unique kind " + k.String())
	}
}
