package render_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apigen/apigen/render"
	"github.com/apigen/apigen/typepool"
)

func indexOf(t *testing.T, ordered []render.Ordered, name string) int {
	t.Helper()
	for i, o := range ordered {
		if o.Type.Name == name {
			return i
		}
	}
	t.Fatalf("type %q not present in ordered list", name)
	return -1
}

func TestOrderForwardDeclarationNeeded(t *testing.T) {
	pool := typepool.NewPool()
	a, _ := pool.Register(typepool.Type{Kind: typepool.KindStruct}, "A")
	b, _ := pool.Register(typepool.Type{Kind: typepool.KindStruct}, "B")

	// A references B only through a pointer (weak); B references A only
	// through a pointer too (weak): both can be ordered either way, but
	// whichever comes second needs a forward declaration of itself.
	a.Fields = &typepool.FieldsExtra{Fields: []typepool.Field{
		{Name: "p", Type: pool.Intern(typepool.Type{Kind: typepool.KindPtrToOne, Pointer: &typepool.PointerExtra{Underlying: b}})},
	}}
	b.Fields = &typepool.FieldsExtra{Fields: []typepool.Field{
		{Name: "q", Type: pool.Intern(typepool.Type{Kind: typepool.KindPtrToOne, Pointer: &typepool.PointerExtra{Underlying: a}})},
	}}

	ordered := render.Order([]*typepool.Type{a, b})
	require.Len(t, ordered, 2)

	// Order only marks forward-decl on a weak dependency's *target* when the
	// target sits after its referrer in the chosen order (render/order.go's
	// final marking loop: `j > i`). A precedes B here, so A's pointer to B
	// trips that check and marks B; B's symmetric pointer to A never does,
	// since A's index is not greater than B's — A is already fully visible
	// by the time B is declared, exactly as in the emitted C: only the
	// later struct, B, gets a `struct B;` forward declaration ahead of A.
	// Only one side of a mutual-pointer cycle ever needs marking, so
	// asserting just ordered[1] here is intentional, not a weaker check.
	second := ordered[1]
	assert.True(t, second.RequiresForwardDecl)
}

func TestOrderHardDependencyReordersTypes(t *testing.T) {
	pool := typepool.NewPool()
	a, _ := pool.Register(typepool.Type{Kind: typepool.KindStruct}, "A")
	b, _ := pool.Register(typepool.Type{Kind: typepool.KindStruct}, "B")
	// A has a hard (by-value) dependency on B, but B is declared second in
	// source order; Order must move B ahead of A.
	a.Fields = &typepool.FieldsExtra{Fields: []typepool.Field{{Name: "b", Type: b}}}
	b.Fields = &typepool.FieldsExtra{Fields: nil}

	ordered := render.Order([]*typepool.Type{a, b})
	require.Len(t, ordered, 2)
	assert.Less(t, indexOf(t, ordered, "B"), indexOf(t, ordered, "A"))
}

func TestOrderHardDependencyCyclePanics(t *testing.T) {
	pool := typepool.NewPool()
	a, _ := pool.Register(typepool.Type{Kind: typepool.KindStruct}, "A")
	b, _ := pool.Register(typepool.Type{Kind: typepool.KindStruct}, "B")
	a.Fields = &typepool.FieldsExtra{Fields: []typepool.Field{{Name: "b", Type: b}}}
	b.Fields = &typepool.FieldsExtra{Fields: []typepool.Field{{Name: "a", Type: a}}}

	assert.Panics(t, func() {
		render.Order([]*typepool.Type{a, b})
	})
}
