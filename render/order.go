// Package render holds the shared machinery every target-language backend
// builds on: the declaration-ordering/forward-declaration algorithm and
// identifier-quoting scaffolding described in spec.md §4.4-§4.5. Per-target
// rendering itself lives in the render/c, render/cpp, render/zig,
// render/rust and render/gogen subpackages.
package render

import "github.com/apigen/apigen/typepool"

// Ordered is one Type positioned in a backend-consumable declaration
// order, alongside whether it needs a forward declaration emitted ahead of
// its full definition.
type Ordered struct {
	Type                *typepool.Type
	RequiresForwardDecl bool
}

type dependency struct {
	weak bool
	ty   *typepool.Type
}

type declSpec struct {
	ty                  *typepool.Type
	requiresForwardDecl bool
	deps                []dependency
}

func addDependency(spec *declSpec, ty *typepool.Type, weak bool) {
	for i := range spec.deps {
		if spec.deps[i].ty == ty {
			if weak == false && spec.deps[i].weak {
				spec.deps[i].weak = false
			}
			return
		}
	}
	spec.deps = append(spec.deps, dependency{weak: weak, ty: ty})
}

// fetchDependencies walks ty's shape collecting the dependency set of
// container, matching fetch_dependencies in the original C backend
// (original_source/src/gen/c_cpp.c) almost line for line: a reference
// through a pointer is weak (forward-declarable); everything else that
// reaches another declared type is hard.
func fetchDependencies(container *declSpec, ty *typepool.Type, topLevel bool, weak bool) {
	if !topLevel {
		if ty == container.ty {
			return // self-reference via indirection; safely ignored
		}
		if ty.Name != "" {
			if ty.Kind.Primitive() {
				return // primitive singletons are named but never in the Document's type list
			}
			dep := weak
			if ty.Kind == typepool.KindAlias {
				// No C-family forward form exists for an alias; it must be
				// fully visible to use its target.
				dep = false
			}
			addDependency(container, ty, dep)
			return
		}
	}

	switch {
	case ty.Kind.Primitive():
		return

	case ty.Kind == typepool.KindOpaque:
		if !topLevel {
			panic("render: implicit dependency on an unnamed opaque type")
		}

	case ty.Kind.Pointer():
		fetchDependencies(container, ty.Pointer.Underlying, false, true)

	case ty.Kind == typepool.KindArray:
		fetchDependencies(container, ty.Array.Underlying, false, false)

	case ty.Kind == typepool.KindFunction:
		fetchDependencies(container, ty.Function.Return, false, false)
		for _, p := range ty.Function.Parameters {
			fetchDependencies(container, p.Type, false, false)
		}

	case ty.Kind == typepool.KindEnum:
		if !topLevel {
			panic("render: implicit dependency on an unnamed enum type")
		}

	case ty.Kind == typepool.KindStruct || ty.Kind == typepool.KindUnion:
		if !topLevel {
			panic("render: implicit dependency on an unnamed struct/union type")
		}
		for _, f := range ty.Fields.Fields {
			fetchDependencies(container, f.Type, false, false)
		}

	case ty.Kind == typepool.KindAlias:
		fetchDependencies(container, ty.Alias, false, weak)

	default:
		panic("render: unhandled type kind in dependency walk: " + ty.Kind.String())
	}
}

// rotateDown rotates the inclusive range [start, end] down by one slot,
// moving the element originally at start to end.
func rotateDown(specs []*declSpec, start, end int) {
	moved := specs[start]
	copy(specs[start:end], specs[start+1:end+1])
	specs[end] = moved
}

// Order computes a declaration order for types such that every hard
// dependency of the type at position i occurs at some j < i, and flags
// every type that is only ever reached through a weak (pointer)
// dependency occurring after its user as requiring a forward declaration
// (spec.md §4.4, "Type ordering algorithm").
//
// Order panics if a genuine cycle of hard dependencies is present: that
// can only happen if the analyzer produced an ill-formed Document, which
// spec.md §8.3 scenario 5 calls out as a renderer-level assertion, not a
// condition the renderer recovers from.
func Order(types []*typepool.Type) []Ordered {
	n := len(types)
	specs := make([]*declSpec, n)
	for i, t := range types {
		specs[i] = &declSpec{ty: t}
	}
	for _, s := range specs {
		fetchDependencies(s, s.ty, true, false)
	}

	index := func(ty *typepool.Type) int {
		for j, s := range specs {
			if s.ty == ty {
				return j
			}
		}
		panic("render: dependency type not present in the Document's type list (analyzer bug)")
	}

	i := 0
	rotations := 0
	maxRotations := n*n + 1 // generous bound; a real cycle would exceed it quickly
	for i < n {
		item := specs[i]
		depLast := 0
		hasHard := false
		for _, d := range item.deps {
			if !d.weak {
				j := index(d.ty)
				if j > depLast {
					depLast = j
				}
				hasHard = true
			}
		}
		if !hasHard || depLast < i {
			i++
			continue
		}
		rotations++
		if rotations > maxRotations {
			panic("render: hard dependency cycle detected (analyzer bug)")
		}
		rotateDown(specs, i, depLast)
	}

	for i, item := range specs {
		for _, d := range item.deps {
			if !d.weak {
				continue
			}
			j := index(d.ty)
			if j > i {
				specs[j].requiresForwardDecl = true
			}
		}
	}

	out := make([]Ordered, n)
	for i, s := range specs {
		out[i] = Ordered{Type: s.ty, RequiresForwardDecl: s.requiresForwardDecl}
	}
	return out
}
