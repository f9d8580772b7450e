package c_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apigen/apigen/analyzer"
	"github.com/apigen/apigen/diag"
	"github.com/apigen/apigen/parser"
	"github.com/apigen/apigen/render/c"
)

func document(t *testing.T, src string) *analyzer.Document {
	t.Helper()
	var sink diag.Sink
	decls, ok := parser.Parse("test.idl", []byte(src), "\n", &sink)
	require.True(t, ok, "%v", sink.Diagnostics())
	doc, ok := analyzer.Analyze("test.idl", decls, &sink)
	require.True(t, ok, "%v", sink.Diagnostics())
	return doc
}

func TestRenderSimpleStructAndFunction(t *testing.T) {
	doc := document(t, `
		type Point = struct { x: i32, y: i32 };
		fn distance(a: Point, b: Point) f32;
	`)
	out := c.Render(doc)

	assert.Contains(t, out, "#pragma once")
	assert.Contains(t, out, "typedef struct Point{\n    int32_t x;\n    int32_t y;\n} Point;")
	// C's declarator syntax lets the identifier sit wrapped in redundant
	// parens ("float (name) (args)" is equivalent to "float name(args)");
	// the renderer always emits that wrapped form, matching the original.
	assert.Contains(t, out, "float ( distance) (")
	assert.Contains(t, out, "Point a,")
	assert.Contains(t, out, "Point b")
}

func TestRenderEnumUppercasesAndPrefixesItems(t *testing.T) {
	doc := document(t, `type Color = enum(u8) { red, green, blue };`)
	out := c.Render(doc)

	assert.Contains(t, out, "COLOR_RED = 0")
	assert.Contains(t, out, "COLOR_GREEN = 1")
	assert.Contains(t, out, "COLOR_BLUE = 2")
}

func TestRenderForwardDeclarationForMutuallyPointingStructs(t *testing.T) {
	doc := document(t, `
		type A = struct { p: *B };
		type B = struct { q: *A };
	`)
	out := c.Render(doc)
	assert.Contains(t, out, "struct B;")
}

func TestRenderGlobalAndConstant(t *testing.T) {
	doc := document(t, `
		var counter : i32;
		const limit : i32;
		constexpr max_items : i32 = 10;
	`)
	out := c.Render(doc)

	assert.Contains(t, out, "extern int32_t counter;")
	assert.Contains(t, out, "extern int32_t const limit;")
	assert.Contains(t, out, "#define MAX_ITEMS 10 // int32_t")
}

func TestRenderReservedFieldNameGetsEscaped(t *testing.T) {
	doc := document(t, `type S = struct { int: i32 };`)
	out := c.Render(doc)
	// Field names are rendered with exact=false, so the reserved word "int"
	// gets the trailing-underscore escape instead of a panic.
	assert.Contains(t, out, "int32_t int_;")
}

func TestRenderImplementationStub(t *testing.T) {
	doc := document(t, `fn add(a: i32, b: i32) i32;`)
	out := c.RenderImplementation(doc, "add.h")
	assert.Contains(t, out, `#include "add.h"`)
	assert.Contains(t, out, "// TODO: implement")
	assert.Contains(t, out, "return (int32_t){0};")
}
