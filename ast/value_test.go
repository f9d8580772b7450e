package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/apigen/apigen/ast"
)

func TestValueEqual(t *testing.T) {
	s := ast.Span{}
	assert.True(t, ast.Null(s).Equal(ast.Null(s)))
	assert.True(t, ast.Uint(s, 5).Equal(ast.Uint(s, 5)))
	assert.False(t, ast.Uint(s, 5).Equal(ast.Uint(s, 6)))
	assert.False(t, ast.Uint(s, 5).Equal(ast.Sint(s, -5)))
	assert.True(t, ast.Str(s, "a").Equal(ast.Str(s, "a")))
	assert.False(t, ast.Str(s, "a").Equal(ast.Str(s, "b")))
}

func TestValueBitsPattern(t *testing.T) {
	s := ast.Span{}
	neg1 := ast.Sint(s, -1)
	allOnes := ast.Uint(s, 0xFFFFFFFFFFFFFFFF)
	assert.Equal(t, neg1.Bits(), allOnes.Bits())
}

func TestSintPanicsOnNonNegative(t *testing.T) {
	assert.Panics(t, func() { ast.Sint(ast.Span{}, 0) })
}
