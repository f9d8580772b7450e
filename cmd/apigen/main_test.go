package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCompilesFileToOutput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "api.idl")
	output := filepath.Join(dir, "api.h")
	require.NoError(t, os.WriteFile(input, []byte(`type Point = struct { x: i32, y: i32 };`), 0o644))

	code := run([]string{"--language", "c", "--output", output, input}, nil, nil)
	assert.Equal(t, 0, code)

	generated, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(generated), "typedef struct Point{")
}

func TestRunReportsAnalysisFailure(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "api.idl")
	require.NoError(t, os.WriteFile(input, []byte(`type A = opaque{}; type A = opaque{};`), 0o644))

	code := run([]string{"--output", filepath.Join(dir, "out.h"), input}, nil, nil)
	assert.Equal(t, 1, code)
}

func TestRunTestModeAnalyzerViaCLI(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "api.idl")
	require.NoError(t, os.WriteFile(input, []byte("// expected: 1007\ntype A = opaque{}; type A = opaque{};"), 0o644))

	code := run([]string{"--test-mode", "analyzer", input}, nil, nil)
	assert.Equal(t, 0, code)
}

func TestRunInvalidTestMode(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "api.idl")
	require.NoError(t, os.WriteFile(input, []byte(`type Point = struct { x: i32 };`), 0o644))

	code := run([]string{"--test-mode", "bogus", input}, nil, nil)
	assert.Equal(t, 1, code)
}
