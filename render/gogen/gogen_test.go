package gogen_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apigen/apigen/analyzer"
	"github.com/apigen/apigen/diag"
	"github.com/apigen/apigen/parser"
	"github.com/apigen/apigen/render/gogen"
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

func TestRenderPrimitiveAliasAndConstant(t *testing.T) {
	doc := document(t, `
		type Meters = i32;
		constexpr max_distance : i32 = 100;
	`)
	out, err := gogen.Render(doc)
	require.NoError(t, err)

	assert.Contains(t, out, "type Meters = int32\n")
	assert.Contains(t, out, "const MaxDistance int32 = 100\n")
}

func TestRenderGlobal(t *testing.T) {
	doc := document(t, `var counter : u32;`)
	out, err := gogen.Render(doc)
	require.NoError(t, err)

	assert.Contains(t, out, "var Counter uint32\n")
}

func TestRenderStructReportsNotImplemented(t *testing.T) {
	doc := document(t, `type Point = struct { x: i32, y: i32 };`)
	_, err := gogen.Render(doc)
	require.Error(t, err)
}

func TestRenderFunctionReportsNotImplemented(t *testing.T) {
	doc := document(t, `fn add(a: i32, b: i32) i32;`)
	_, err := gogen.Render(doc)
	require.Error(t, err)
}
