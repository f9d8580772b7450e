package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apigen/apigen/diag"
)

func TestParseExpectedDirective(t *testing.T) {
	codes := parseExpectedDirective([]byte("// expected: 1007, 1010\ntype A = opaque{};"))
	assert.Equal(t, []diag.Code{1007, 1010}, codes)
}

func TestParseExpectedDirectiveAbsent(t *testing.T) {
	codes := parseExpectedDirective([]byte("type A = opaque{};"))
	assert.Nil(t, codes)
}

func TestRunTestModeAnalyzerPass(t *testing.T) {
	src := []byte("// expected: 1007\ntype A = opaque{}; type A = opaque{};")
	err := runTestMode("test.idl", src, testModeAnalyzer)
	assert.NoError(t, err)
}

func TestRunTestModeAnalyzerMismatch(t *testing.T) {
	src := []byte("// expected: 1012\ntype A = opaque{}; type A = opaque{};")
	err := runTestMode("test.idl", src, testModeAnalyzer)
	require.Error(t, err)
}

func TestRunFixtureFileConcurrent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cases.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
cases:
  - name: empty-enum
    mode: analyzer
    input: "type E = enum(u8){};"
    expected: [1012]
  - name: duplicate-symbol
    mode: analyzer
    input: "type A = opaque{}; type A = opaque{};"
    expected: [1007]
`), 0o644))

	err := runFixtureFile(path, testModeAnalyzer)
	assert.NoError(t, err)
}

func TestRunFixtureFileReportsCaseFailure(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cases.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
cases:
  - name: wrong-expectation
    mode: analyzer
    input: "type E = enum(u8){};"
    expected: [1007]
`), 0o644))

	err := runFixtureFile(path, testModeAnalyzer)
	require.Error(t, err)
}

func TestIsFixtureFile(t *testing.T) {
	assert.True(t, isFixtureFile("cases.yaml"))
	assert.True(t, isFixtureFile("cases.yml"))
	assert.False(t, isFixtureFile("input.idl"))
}
