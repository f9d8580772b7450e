package typepool_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apigen/apigen/typepool"
)

func TestBuiltinAliases(t *testing.T) {
	uchar, ok := typepool.Builtin("c_uchar")
	require.True(t, ok)
	assert.Same(t, typepool.Uchar, uchar)

	ichar, ok := typepool.Builtin("c_ichar")
	require.True(t, ok)
	assert.Same(t, typepool.Ichar, ichar)

	char, ok := typepool.Builtin("c_char")
	require.True(t, ok)
	assert.Same(t, typepool.Char, char)
}

func TestPoolLookupFallsBackToBuiltins(t *testing.T) {
	pool := typepool.NewPool()
	ty, ok := pool.Lookup("u32")
	require.True(t, ok)
	assert.Same(t, typepool.U32, ty)

	_, ok = pool.Lookup("Point")
	assert.False(t, ok)
}

func TestPoolRegisterAndLookup(t *testing.T) {
	pool := typepool.NewPool()
	owned, ok := pool.Register(typepool.Type{Kind: typepool.KindOpaque}, "Handle")
	require.True(t, ok)
	assert.Equal(t, "Handle", owned.Name)

	found, ok := pool.Lookup("Handle")
	require.True(t, ok)
	assert.Same(t, owned, found)
}

func TestPoolRegisterRejectsDuplicateAndBuiltinNames(t *testing.T) {
	pool := typepool.NewPool()
	_, ok := pool.Register(typepool.Type{Kind: typepool.KindOpaque}, "u32")
	assert.False(t, ok)

	_, ok = pool.Register(typepool.Type{Kind: typepool.KindOpaque}, "Handle")
	require.True(t, ok)
	_, ok = pool.Register(typepool.Type{Kind: typepool.KindStruct}, "Handle")
	assert.False(t, ok)
}

func TestPoolInternDeduplicatesStructurallyEqualTypes(t *testing.T) {
	pool := typepool.NewPool()

	a := pool.Intern(typepool.Type{
		Kind: typepool.KindPtrToOne,
		Pointer: &typepool.PointerExtra{
			Underlying: typepool.U8,
		},
	})
	b := pool.Intern(typepool.Type{
		Kind: typepool.KindPtrToOne,
		Pointer: &typepool.PointerExtra{
			Underlying: typepool.U8,
		},
	})
	assert.Same(t, a, b)

	c := pool.Intern(typepool.Type{
		Kind: typepool.KindPtrToOne,
		Pointer: &typepool.PointerExtra{
			Underlying: typepool.U16,
		},
	})
	assert.NotSame(t, a, c)
}

func TestPoolInternPanicsOnUniqueKind(t *testing.T) {
	pool := typepool.NewPool()
	assert.Panics(t, func() {
		pool.Intern(typepool.Type{Kind: typepool.KindStruct})
	})
}

func TestPointerKindMapping(t *testing.T) {
	assert.Equal(t, typepool.KindPtrToOne, typepool.PointerKind(typepool.One, false, false))
	assert.Equal(t, typepool.KindConstPtrToOne, typepool.PointerKind(typepool.One, true, false))
	assert.Equal(t, typepool.KindNullablePtrToOne, typepool.PointerKind(typepool.One, false, true))
	assert.Equal(t, typepool.KindNullableConstPtrToManySentinelled,
		typepool.PointerKind(typepool.ManySentinelled, true, true))
}

func TestEqualDistinguishesUniqueTypesByIdentity(t *testing.T) {
	a := &typepool.Type{Kind: typepool.KindStruct, Name: "A"}
	b := &typepool.Type{Kind: typepool.KindStruct, Name: "A"}
	assert.True(t, typepool.Equal(a, a))
	assert.False(t, typepool.Equal(a, b))
}

func TestEqualSentinelBitPattern(t *testing.T) {
	neg1 := &typepool.Type{
		Kind: typepool.KindPtrToManySentinelled,
		Pointer: &typepool.PointerExtra{
			Underlying: typepool.U64,
			Sentinel:   &typepool.EnumValue{Signed: true, Bits: 0xFFFFFFFFFFFFFFFF},
		},
	}
	maxU64 := &typepool.Type{
		Kind: typepool.KindPtrToManySentinelled,
		Pointer: &typepool.PointerExtra{
			Underlying: typepool.U64,
			Sentinel:   &typepool.EnumValue{Signed: false, Bits: 0xFFFFFFFFFFFFFFFF},
		},
	}
	assert.True(t, typepool.Equal(neg1, maxU64))
}

func TestPoolNamesPreservesRegistrationOrder(t *testing.T) {
	pool := typepool.NewPool()
	_, _ = pool.Register(typepool.Type{Kind: typepool.KindOpaque}, "First")
	_, _ = pool.Register(typepool.Type{Kind: typepool.KindOpaque}, "Second")
	_, _ = pool.Register(typepool.Type{Kind: typepool.KindOpaque}, "Third")
	assert.Equal(t, []string{"First", "Second", "Third"}, pool.Names())
}
