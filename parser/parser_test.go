package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apigen/apigen/ast"
	"github.com/apigen/apigen/diag"
	"github.com/apigen/apigen/parser"
)

func parse(t *testing.T, src string) ([]*ast.Decl, *diag.Sink) {
	t.Helper()
	var sink diag.Sink
	decls, ok := parser.Parse("test.idl", []byte(src), "\n", &sink)
	if ok {
		require.False(t, sink.Failed())
	}
	return decls, &sink
}

func TestParseOpaqueType(t *testing.T) {
	decls, sink := parse(t, `type A = opaque {};`)
	require.False(t, sink.Failed())
	require.Len(t, decls, 1)
	assert.Equal(t, "A", decls[0].Name)
	assert.Equal(t, ast.DeclType, decls[0].Kind)
	assert.Equal(t, ast.TypeOpaque, decls[0].Type.Kind)
}

func TestParseStructWithDoc(t *testing.T) {
	src := `
/// first line
/// second line
type Point = struct {
    x: i32,
    y: i32,
};
`
	decls, sink := parse(t, src)
	require.False(t, sink.Failed())
	require.Len(t, decls, 1)
	assert.Equal(t, "first line\nsecond line", decls[0].Doc)
	require.Len(t, decls[0].Type.Fields, 2)
	assert.Equal(t, "x", decls[0].Type.Fields[0].Name)
	assert.Equal(t, "y", decls[0].Type.Fields[1].Name)
}

func TestParseEnumWithUnderlying(t *testing.T) {
	decls, sink := parse(t, `type E = enum(u8) { a = 1, b, c = 5 };`)
	require.False(t, sink.Failed())
	ty := decls[0].Type
	require.NotNil(t, ty.UnderlyingInt)
	assert.Equal(t, "u8", ty.UnderlyingInt.Name)
	require.Len(t, ty.Items, 3)
	assert.Equal(t, "a", ty.Items[0].Name)
	assert.True(t, ty.Items[0].Value.Equal(ast.Uint(ast.Span{}, 1)))
	assert.Nil(t, ty.Items[1].Value)
	assert.True(t, ty.Items[2].Value.Equal(ast.Uint(ast.Span{}, 5)))
}

func TestParseNegativeEnumValue(t *testing.T) {
	decls, sink := parse(t, `type E = enum { a = -1, b = 1 };`)
	require.False(t, sink.Failed())
	ty := decls[0].Type
	assert.True(t, ty.Items[0].Value.Equal(ast.Sint(ast.Span{}, -1)))
}

func TestParsePointerForms(t *testing.T) {
	decls, sink := parse(t, `
type A = *u8;
type B = *const u8;
type C = ?*u8;
type D = [*]u8;
type E = [*:0]u8;
type F = ?[*:0]const u8;
`)
	require.False(t, sink.Failed())
	require.Len(t, decls, 6)

	a := decls[0].Type
	assert.Equal(t, ast.TypePtrToOne, a.Kind)
	assert.False(t, a.IsConst)
	assert.False(t, a.IsOptional)

	b := decls[1].Type
	assert.True(t, b.IsConst)

	c := decls[2].Type
	assert.True(t, c.IsOptional)

	d := decls[3].Type
	assert.Equal(t, ast.TypePtrToMany, d.Kind)

	e := decls[4].Type
	assert.Equal(t, ast.TypePtrToManySentinelled, e.Kind)
	require.NotNil(t, e.Sentinel)
	assert.True(t, e.Sentinel.Equal(ast.Uint(ast.Span{}, 0)))

	f := decls[5].Type
	assert.True(t, f.IsOptional)
	assert.True(t, f.IsConst)
	assert.Equal(t, ast.TypePtrToManySentinelled, f.Kind)
}

func TestParseArrayType(t *testing.T) {
	decls, sink := parse(t, `type A = [4]u8;`)
	require.False(t, sink.Failed())
	ty := decls[0].Type
	assert.Equal(t, ast.TypeArray, ty.Kind)
	assert.True(t, ty.Size.Equal(ast.Uint(ast.Span{}, 4)))
	assert.Equal(t, "u8", ty.Elem.Name)
}

func TestParseFunctionDecl(t *testing.T) {
	decls, sink := parse(t, `fn add(a: i32, b: i32) i32;`)
	require.False(t, sink.Failed())
	require.Len(t, decls, 1)
	assert.Equal(t, ast.DeclFn, decls[0].Kind)
	require.Len(t, decls[0].Type.Params, 2)
	assert.Equal(t, "a", decls[0].Type.Params[0].Name)
	assert.Equal(t, "i32", decls[0].Type.Return.Name)
}

func TestParseConstexpr(t *testing.T) {
	decls, sink := parse(t, `constexpr max : u8 = 255;`)
	require.False(t, sink.Failed())
	require.NotNil(t, decls[0].Value)
	assert.True(t, decls[0].Value.Equal(ast.Uint(ast.Span{}, 255)))
}

func TestParseStringLiteralEscapes(t *testing.T) {
	decls, sink := parse(t, `constexpr s : *const u8 = "a\nb\x";`)
	require.False(t, sink.Failed())
	assert.Equal(t, "a\nbx", decls[0].Value.Str)
}

func TestParseMultilineStringConcatenation(t *testing.T) {
	src := "constexpr s : *const u8 =\n\\\\ line one\n\\\\ line two\n;\n"
	decls, sink := parse(t, src)
	require.False(t, sink.Failed())
	assert.Equal(t, " line one\n line two", decls[0].Value.Str)
}

func TestParseAtIdentifier(t *testing.T) {
	decls, sink := parse(t, `type @"type" = opaque {};`)
	require.False(t, sink.Failed())
	assert.Equal(t, "type", decls[0].Name)
}

func TestParseHexOctalBinaryLiterals(t *testing.T) {
	decls, sink := parse(t, `
constexpr a : u32 = 0x10;
constexpr b : u32 = 0o10;
constexpr c : u32 = 0b10;
`)
	require.False(t, sink.Failed())
	assert.Equal(t, uint64(16), decls[0].Value.Uint)
	assert.Equal(t, uint64(8), decls[1].Value.Uint)
	assert.Equal(t, uint64(2), decls[2].Value.Uint)
}

func TestSyntaxErrorRecoversAndKeepsParsing(t *testing.T) {
	decls, sink := parse(t, `
type A = ???;
type B = opaque {};
`)
	assert.True(t, sink.Failed())
	assert.Greater(t, sink.Count(diag.SyntaxError), 0)
	// Parsing recovers far enough to still see declaration B.
	var sawB bool
	for _, d := range decls {
		if d.Name == "B" {
			sawB = true
		}
	}
	assert.True(t, sawB)
}
