package typepool

// Equal reports whether a and b are structurally identical, the way
// apigen_type_eql walks the two types field by field in the original
// type-pool.c. Unique types (enum/struct/union/opaque) are never
// structurally equal to one another unless they are the same *Type value:
// their identity is their declaration site (spec.md §3.2 invariant 1), so
// pointer identity is checked first and is the only check that applies to
// them.
func Equal(a, b *Type) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.Kind != b.Kind {
		return false
	}
	if a.Kind.Unique() {
		// Already failed the a == b check above: distinct declarations of
		// otherwise-identical shape are still distinct types.
		return false
	}

	switch a.Kind {
	case KindAlias:
		return a.Name == b.Name && Equal(a.Alias, b.Alias)

	case KindArray:
		return a.Array.Size == b.Array.Size && Equal(a.Array.Underlying, b.Array.Underlying)

	case KindFunction:
		return equalFunction(a.Function, b.Function)

	default:
		if a.Kind.Pointer() {
			return equalPointer(a.Pointer, b.Pointer)
		}
		// Any other kind reaching here is a primitive; Kind equality
		// above is already sufficient since primitives are singletons.
		return true
	}
}

func equalPointer(a, b *PointerExtra) bool {
	if !Equal(a.Underlying, b.Underlying) {
		return false
	}
	switch {
	case a.Sentinel == nil && b.Sentinel == nil:
		return true
	case a.Sentinel == nil || b.Sentinel == nil:
		return false
	default:
		// Bit-pattern equality, not signed/unsigned-aware equality: the
		// original implementation compares sentinel values as raw 64-bit
		// patterns, the same quirk documented for duplicate enum values
		// (spec.md §9).
		return a.Sentinel.Bits == b.Sentinel.Bits
	}
}

func equalFunction(a, b *FunctionExtra) bool {
	if !Equal(a.Return, b.Return) {
		return false
	}
	if len(a.Parameters) != len(b.Parameters) {
		return false
	}
	for i := range a.Parameters {
		pa, pb := a.Parameters[i], b.Parameters[i]
		if pa.Name != pb.Name || pa.Doc != pb.Doc {
			return false
		}
		if !Equal(pa.Type, pb.Type) {
			return false
		}
	}
	return true
}
