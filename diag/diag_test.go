package diag_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apigen/apigen/diag"
)

func TestSinkAccumulates(t *testing.T) {
	var s diag.Sink
	require.False(t, s.Failed())

	s.Errorf(diag.Position{File: "a.idl", Line: 1, Column: 1}, diag.EnumEmpty, "enum %q has no items", "E")
	s.Warnf(diag.Position{File: "a.idl", Line: 2, Column: 1}, diag.StructEmpty, "struct %q is empty", "S")

	assert.True(t, s.Failed())
	require.Len(t, s.Diagnostics(), 2)
	assert.Equal(t, diag.Error, s.Diagnostics()[0].Level())
	assert.Equal(t, diag.Warning, s.Diagnostics()[1].Level())
	assert.Equal(t, 1, s.Count(diag.EnumEmpty))
	assert.Equal(t, []diag.Code{diag.EnumEmpty, diag.StructEmpty}, s.Codes())
}

func TestDiagnosticString(t *testing.T) {
	d := diag.Diagnostic{
		Code:    diag.DuplicateSymbol,
		Pos:     diag.Position{File: "x.idl", Line: 3, Column: 5},
		Message: `symbol "A" already declared`,
	}
	assert.Equal(t, `x.idl:3:5: error(1007): symbol "A" already declared`, d.String())
}

func TestErrorfPanicsOnWrongLevel(t *testing.T) {
	var s diag.Sink
	assert.Panics(t, func() {
		s.Errorf(diag.Position{}, diag.StructEmpty, "oops")
	})
}
