package cpp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apigen/apigen/analyzer"
	"github.com/apigen/apigen/diag"
	"github.com/apigen/apigen/parser"
	"github.com/apigen/apigen/render/cpp"
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

func TestRenderEnumClass(t *testing.T) {
	doc := document(t, `type Color = enum(u8) { red, green, blue };`)
	out := cpp.Render(doc)

	assert.Contains(t, out, "enum class Color : uint8_t {")
	assert.Contains(t, out, "RED = 0")
	assert.Contains(t, out, "GREEN = 1")
}

func TestRenderUsingAliasAndConstexprConstant(t *testing.T) {
	doc := document(t, `
		type Meters = i32;
		constexpr max_distance : i32 = 100;
	`)
	out := cpp.Render(doc)

	assert.Contains(t, out, "using Meters = int32_t;")
	assert.Contains(t, out, "inline constexpr int32_t MAX_DISTANCE = 100;")
}

func TestRenderStructNoElaboratedSpecifierAtReference(t *testing.T) {
	doc := document(t, `
		type Point = struct { x: i32, y: i32 };
		type Line = struct { from: Point, to: Point };
	`)
	out := cpp.Render(doc)

	assert.Contains(t, out, "struct Point {")
	assert.Contains(t, out, "Point from;")
	assert.NotContains(t, out, "struct Point from;")
}
