package analyzer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apigen/apigen/analyzer"
	"github.com/apigen/apigen/diag"
	"github.com/apigen/apigen/parser"
	"github.com/apigen/apigen/typepool"
)

func analyze(t *testing.T, src string) (*analyzer.Document, *diag.Sink, bool) {
	t.Helper()
	var sink diag.Sink
	decls, parseOK := parser.Parse("test.idl", []byte(src), "\n", &sink)
	require.True(t, parseOK, "unexpected parse failure: %v", sink.Diagnostics())
	doc, ok := analyzer.Analyze("test.idl", decls, &sink)
	return doc, &sink, ok
}

func TestEmptyEnumRejected(t *testing.T) {
	_, sink, ok := analyze(t, `type E = enum(u8) {};`)
	assert.False(t, ok)
	assert.Equal(t, 1, sink.Count(diag.EnumEmpty))
}

func TestDuplicateTopLevelSymbol(t *testing.T) {
	_, sink, ok := analyze(t, `type A = opaque {}; type A = opaque {};`)
	assert.False(t, ok)
	assert.Equal(t, 1, sink.Count(diag.DuplicateSymbol))
}

func TestEnumAutoWidth(t *testing.T) {
	doc, sink, ok := analyze(t, `type E = enum { a = -1, b = 1 };`)
	require.True(t, ok, "%v", sink.Diagnostics())
	require.Len(t, doc.Types, 1)
	require.NotNil(t, doc.Types[0].Enum)
	assert.Same(t, typepool.I8, doc.Types[0].Enum.Underlying)
	require.Len(t, doc.Types[0].Enum.Items, 2)
	assert.Equal(t, "a", doc.Types[0].Enum.Items[0].Name)
	assert.True(t, doc.Types[0].Enum.Items[0].Value.Signed)
}

func TestForwardDeclarationAccepted(t *testing.T) {
	doc, sink, ok := analyze(t, `
type A = struct { p: *B };
type B = struct { q: *A };
`)
	require.True(t, ok, "%v", sink.Diagnostics())
	require.Len(t, doc.Types, 2)
}

func TestHardDependencyCycleAcceptedAtAnalyzerLevel(t *testing.T) {
	doc, sink, ok := analyze(t, `
type A = struct { b: B };
type B = struct { a: A };
`)
	require.True(t, ok, "%v", sink.Diagnostics())
	require.Len(t, doc.Types, 2)
}

func TestConstexprOutOfRange(t *testing.T) {
	_, sink, ok := analyze(t, `constexpr max : u8 = 300;`)
	assert.False(t, ok)
	assert.Equal(t, 1, sink.Count(diag.ConstexprOutOfRange))
}

func TestDuplicateField(t *testing.T) {
	_, sink, ok := analyze(t, `type P = struct { x: i32, x: i32 };`)
	assert.False(t, ok)
	assert.Equal(t, 1, sink.Count(diag.DuplicateField))
}

func TestUndeclaredIdentifier(t *testing.T) {
	_, sink, ok := analyze(t, `type A = struct { x: DoesNotExist };`)
	assert.False(t, ok)
	assert.Greater(t, sink.Count(diag.UndeclaredIdentifier)+sink.Count(diag.UnresolvedSymbols), 0)
}

func TestAnonymousNestedStructGetsSynthesizedName(t *testing.T) {
	doc, sink, ok := analyze(t, `type Outer = struct { inner: struct { x: i32 } };`)
	require.True(t, ok, "%v", sink.Diagnostics())
	// Outer plus its anonymous nested struct.
	require.Len(t, doc.Types, 2)
	var found bool
	for _, ty := range doc.Types {
		if ty.Anonymous {
			found = true
			assert.Equal(t, "Outer_inner_struct", ty.Name)
		}
	}
	assert.True(t, found)
}

func TestBuiltinAliasSpellingResolves(t *testing.T) {
	doc, sink, ok := analyze(t, `type P = *const c_uchar;`)
	require.True(t, ok, "%v", sink.Diagnostics())
	require.Len(t, doc.Types, 1)
	assert.Same(t, typepool.Uchar, doc.Types[0].Alias.Pointer.Underlying)
}

func TestGlobalAndFunctionResolution(t *testing.T) {
	doc, sink, ok := analyze(t, `
var counter : i32;
fn add(a: i32, b: i32) i32;
`)
	require.True(t, ok, "%v", sink.Diagnostics())
	require.Len(t, doc.Globals, 1)
	assert.Equal(t, "counter", doc.Globals[0].Name)
	assert.False(t, doc.Globals[0].IsConst)
	require.Len(t, doc.Functions, 1)
	assert.Equal(t, "add", doc.Functions[0].Name)
	assert.Equal(t, typepool.KindFunction, doc.Functions[0].Type.Kind)
}

func TestConstexprStringValue(t *testing.T) {
	doc, sink, ok := analyze(t, `constexpr greeting : [*:0]const char = "hi";`)
	require.True(t, ok, "%v", sink.Diagnostics())
	require.Len(t, doc.Constants, 1)
	assert.Equal(t, "hi", doc.Constants[0].Value.Str)
}
