package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/apigen/apigen/analyzer"
	"github.com/apigen/apigen/diag"
	"github.com/apigen/apigen/parser"
	"github.com/apigen/apigen/render/c"
	"github.com/apigen/apigen/render/cpp"
	"github.com/apigen/apigen/render/gogen"
	"github.com/apigen/apigen/render/rust"
	"github.com/apigen/apigen/render/zig"
)

// options collects the flags (and apigen.toml defaults) a single compile
// needs. It is the CLI's own type, deliberately distinct from
// internal/config.Config, since a flag default and a loaded project
// setting are resolved into one value before reaching here.
type options struct {
	input          string // "-" means stdin
	output         string // "" means stdout
	language       string
	implementation bool
}

// readSource reads opts.input, treating "-" as standard input, the way
// spec.md §6.3 requires.
func readSource(opts options, stdin io.Reader) (string, []byte, error) {
	if opts.input == "-" {
		src, err := io.ReadAll(stdin)
		if err != nil {
			return "", nil, fmt.Errorf("reading standard input: %w", err)
		}
		return "<stdin>", src, nil
	}
	src, err := os.ReadFile(opts.input)
	if err != nil {
		return "", nil, fmt.Errorf("reading %s: %w", opts.input, err)
	}
	return opts.input, src, nil
}

// compileResult is what one IDL source compiles into: either a Document
// (on success) or a failed Sink worth reporting (on failure), never both.
type compileResult struct {
	doc  *analyzer.Document
	sink diag.Sink
}

// compile parses and analyzes src, mirroring the two-phase pipeline
// spec.md §4.1/§4.3 describes. It never panics on malformed input —
// every failure is recorded in the returned Sink.
func compile(file string, src []byte) compileResult {
	var sink diag.Sink
	decls, ok := parser.Parse(file, src, "\n", &sink)
	if !ok {
		return compileResult{sink: sink}
	}
	doc, ok := analyzer.Analyze(file, decls, &sink)
	if !ok {
		return compileResult{sink: sink}
	}
	return compileResult{doc: doc, sink: sink}
}

// render dispatches to the backend named by language (spec.md §4.5), and
// additionally returns an implementation-stub body when impl is set and
// the backend supports one (C only, per SUPPLEMENTED FEATURES item 2);
// every other backend returns an error when impl is set.
func render(doc *analyzer.Document, language string, impl bool, headerName string) (body string, implBody string, err error) {
	switch strings.ToLower(language) {
	case "c":
		body = c.Render(doc)
		if impl {
			implBody = c.RenderImplementation(doc, headerName)
		}
	case "c++", "cpp":
		body = cpp.Render(doc)
		if impl {
			return "", "", fmt.Errorf("render: c++ backend has no implementation stub")
		}
	case "zig":
		body = zig.Render(doc)
		if impl {
			return "", "", fmt.Errorf("render: zig backend has no implementation stub")
		}
	case "rust":
		body, err = rust.Render(doc)
		if impl && err == nil {
			return "", "", fmt.Errorf("render: rust backend has no implementation stub")
		}
	case "go":
		body, err = gogen.Render(doc)
		if impl && err == nil {
			return "", "", fmt.Errorf("render: go backend has no implementation stub")
		}
	default:
		return "", "", fmt.Errorf("render: unknown language %q", language)
	}
	return body, implBody, err
}

func implementationPath(outputPath string) string {
	if outputPath == "" {
		return ""
	}
	ext := ".c"
	if strings.HasSuffix(outputPath, ".hpp") || strings.HasSuffix(outputPath, ".hh") {
		ext = ".cpp"
	}
	if idx := strings.LastIndex(outputPath, "."); idx >= 0 {
		return outputPath[:idx] + ext
	}
	return outputPath + ext
}
