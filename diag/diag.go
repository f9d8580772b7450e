// Package diag implements apigen's diagnostic sink.
//
// The sink is deliberately a thin, append-only collaborator (per the
// specification, it is not one of the four subsystems the design effort
// targets): it records coded diagnostics produced by the parser and the
// analyzer and renders them for a human reader. Its shape — a Handler that
// separates "report and keep going" from "report and abort" — is modeled on
// protocompile's reporter.Handler, and its Level/Code split is modeled on
// protocompile's report2.Level.
package diag

import (
	"fmt"
	"sort"
)

// Level is the severity of a diagnostic.
type Level int8

const (
	// Error indicates the input is rejected; compilation as a whole fails.
	Error Level = iota + 1
	// Warning indicates a dubious but accepted construct.
	Warning
	// Note provides supplementary context for another diagnostic.
	Note
)

func (l Level) String() string {
	switch l {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Note:
		return "note"
	default:
		return "unknown"
	}
}

// Code identifies a diagnostic's kind. Codes are partitioned into three
// ranges: errors 1000-5999, warnings 6000-11999, notes 12000-14999.
type Code int

const (
	ArraySizeNotUint      Code = 1000
	DuplicateField        Code = 1001
	DuplicateParameter    Code = 1002
	DuplicateEnumItem     Code = 1003
	DuplicateEnumValue    Code = 1004
	EnumOutOfRange        Code = 1005
	EnumValueIllegal      Code = 1006
	DuplicateSymbol       Code = 1007
	SyntaxError           Code = 1008
	UndeclaredIdentifier  Code = 1009
	UnresolvedSymbols     Code = 1010
	EnumTypeMustBeInt     Code = 1011
	EnumEmpty             Code = 1012
	ConstexprTypeMismatch Code = 1013
	ConstexprOutOfRange   Code = 1014
	ConstexprIllegalType  Code = 1015
	Internal              Code = 1016

	EnumIntUndefined   Code = 6000
	StructEmpty        Code = 6001
	ConstexprUnchecked Code = 6002
)

// Level reports a code's severity, derived from which numeric range it
// falls into (see the package doc and spec.md §6.2).
func (c Code) Level() Level {
	switch {
	case c >= 12000:
		return Note
	case c >= 6000:
		return Warning
	default:
		return Error
	}
}

// Position is a location in a single source file.
type Position struct {
	File   string
	Line   int // 1-based
	Column int // 1-based
}

func (p Position) String() string {
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// Diagnostic is a single coded, positioned message.
type Diagnostic struct {
	Code    Code
	Pos     Position
	Message string
}

// Level reports this diagnostic's severity.
func (d Diagnostic) Level() Level { return d.Code.Level() }

// String renders the diagnostic as "file:line:column: kind(code): message",
// the format prescribed by spec.md §6.2.
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s(%d): %s", d.Pos, d.Level(), d.Code, d.Message)
}

func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("code_%d", int(c))
}

var codeNames = map[Code]string{
	ArraySizeNotUint:      "array_size_not_uint",
	DuplicateField:        "duplicate_field",
	DuplicateParameter:    "duplicate_parameter",
	DuplicateEnumItem:     "duplicate_enum_item",
	DuplicateEnumValue:    "duplicate_enum_value",
	EnumOutOfRange:        "enum_out_of_range",
	EnumValueIllegal:      "enum_value_illegal",
	DuplicateSymbol:       "duplicate_symbol",
	SyntaxError:           "syntax_error",
	UndeclaredIdentifier:  "undeclared_identifier",
	UnresolvedSymbols:     "unresolved_symbols",
	EnumTypeMustBeInt:     "enum_type_must_be_int",
	EnumEmpty:             "enum_empty",
	ConstexprTypeMismatch: "constexpr_type_mismatch",
	ConstexprOutOfRange:   "constexpr_out_of_range",
	ConstexprIllegalType:  "constexpr_illegal_type",
	Internal:              "internal",
	EnumIntUndefined:      "enum_int_undefined",
	StructEmpty:           "struct_empty",
	ConstexprUnchecked:    "constexpr_unchecked",
}

// Sink accumulates diagnostics for a single invocation. The zero value is
// ready to use.
//
// Sink is not safe for concurrent use; apigen's pipeline is single-threaded
// by design (spec.md §5), and a Sink is scoped to one compile.
type Sink struct {
	diags []Diagnostic
	failed bool
}

// Errorf records an error-level diagnostic and marks the sink as failed.
func (s *Sink) Errorf(pos Position, code Code, format string, args ...any) {
	if code.Level() != Error {
		panic(fmt.Sprintf("diag: code %v is not an error code", code))
	}
	s.failed = true
	s.diags = append(s.diags, Diagnostic{Code: code, Pos: pos, Message: fmt.Sprintf(format, args...)})
}

// Warnf records a warning-level diagnostic. Warnings never fail the sink.
func (s *Sink) Warnf(pos Position, code Code, format string, args ...any) {
	if code.Level() != Warning {
		panic(fmt.Sprintf("diag: code %v is not a warning code", code))
	}
	s.diags = append(s.diags, Diagnostic{Code: code, Pos: pos, Message: fmt.Sprintf(format, args...)})
}

// Internalf records a system-error diagnostic (I/O failure, or any failure
// that does not fit a more specific catalog code) and marks the sink failed.
func (s *Sink) Internalf(pos Position, format string, args ...any) {
	s.Errorf(pos, Internal, format, args...)
}

// Failed reports whether any error-level diagnostic has been recorded.
func (s *Sink) Failed() bool { return s.failed }

// Diagnostics returns every diagnostic recorded so far, in report order.
func (s *Sink) Diagnostics() []Diagnostic {
	return s.diags
}

// Codes returns the set of distinct codes that fired, sorted ascending. This
// is the shape cmd/apigen's --test-mode comparison needs (spec.md §6.3).
func (s *Sink) Codes() []Code {
	seen := map[Code]bool{}
	var out []Code
	for _, d := range s.diags {
		if !seen[d.Code] {
			seen[d.Code] = true
			out = append(out, d.Code)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Count returns how many diagnostics of the given code have been recorded.
func (s *Sink) Count(code Code) int {
	n := 0
	for _, d := range s.diags {
		if d.Code == code {
			n++
		}
	}
	return n
}
