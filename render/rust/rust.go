// Package rust is the Rust backend. spec.md §4.5 calls it out by name as
// a stub with "a contract identical to the C backend's except for
// surface syntax"; original_source/src/gen/rust.c matches that exactly —
// apigen_render_rust is a ten-line function that unconditionally returns
// false, never inspecting the Document at all. This port keeps that
// shape: primitive-only declarations render; anything the original never
// attempted (pointers, arrays, structs, unions, enums, functions) reports
// an error instead of guessing at a Rust spelling, the same "not yet
// implemented" outcome the original signals through its boolean return.
package rust

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/apigen/apigen/analyzer"
	"github.com/apigen/apigen/ast"
	"github.com/apigen/apigen/render"
	"github.com/apigen/apigen/typepool"
)

var primitiveNames = map[typepool.Kind]string{
	typepool.KindVoid:    "()",
	typepool.KindBool:    "bool",
	typepool.KindUchar:   "u8",
	typepool.KindIchar:   "i8",
	typepool.KindChar:    "u8",
	typepool.KindU8:      "u8",
	typepool.KindU16:     "u16",
	typepool.KindU32:     "u32",
	typepool.KindU64:     "u64",
	typepool.KindUsize:   "usize",
	typepool.KindI8:      "i8",
	typepool.KindI16:     "i16",
	typepool.KindI32:     "i32",
	typepool.KindI64:     "i64",
	typepool.KindIsize:   "isize",
	typepool.KindF32:     "f32",
	typepool.KindF64:     "f64",
}

var reservedWords = []string{
	"as", "break", "const", "continue", "crate", "else", "enum", "extern",
	"false", "fn", "for", "if", "impl", "in", "let", "loop", "match", "mod",
	"move", "mut", "pub", "ref", "return", "self", "Self", "static", "struct",
	"super", "trait", "true", "type", "unsafe", "use", "where", "while",
}

func quoter() *render.Quoter {
	return render.NewQuoter(reservedWords, nil, func(name string) string {
		return "r#" + name
	})
}

func unalias(t *typepool.Type) *typepool.Type {
	for t.Kind == typepool.KindAlias {
		t = t.Alias
	}
	return t
}

func primitiveName(t *typepool.Type) (string, bool) {
	name, ok := primitiveNames[unalias(t).Kind]
	return name, ok
}

// Render renders doc's primitive-typed declarations as Rust `type`
// aliases, `extern` globals, and `const` constants, and reports an error
// naming the first declaration whose type this backend does not yet
// support.
func Render(doc *analyzer.Document) (string, error) {
	q := quoter()
	var sb strings.Builder
	sb.WriteString("// THIS IS AUTOGENERATED CODE!\n\n")

	for _, t := range doc.Types {
		name, ok := primitiveName(t)
		if !ok {
			return "", fmt.Errorf("render/rust: rendering type %q (%s) is not implemented", t.Name, t.Kind)
		}
		fmt.Fprintf(&sb, "pub type %s = %s;\n", q.Render(t.Name, render.Keep, true), name)
	}

	for _, g := range doc.Globals {
		name, ok := primitiveName(g.Type)
		if !ok {
			return "", fmt.Errorf("render/rust: rendering global %q is not implemented", g.Name)
		}
		mut := "mut "
		if g.IsConst {
			mut = ""
		}
		fmt.Fprintf(&sb, "extern \"C\" { pub static %s%s: %s; }\n", mut, q.Render(g.Name, render.Keep, true), name)
	}

	for _, c := range doc.Constants {
		name, ok := primitiveName(c.Type)
		if !ok {
			return "", fmt.Errorf("render/rust: rendering constant %q is not implemented", c.Name)
		}
		fmt.Fprintf(&sb, "pub const %s: %s = %s;\n", q.Render(c.Name, render.Upper, true), name, renderValue(c))
	}

	if len(doc.Functions) > 0 {
		return "", fmt.Errorf("render/rust: rendering function %q is not implemented", doc.Functions[0].Name)
	}

	return sb.String(), nil
}

func renderValue(c analyzer.Constant) string {
	switch c.Value.Kind {
	case ast.ValueNull:
		return "()"
	case ast.ValueSint:
		return strconv.FormatInt(c.Value.Sint, 10)
	case ast.ValueUint:
		return strconv.FormatUint(c.Value.Uint, 10)
	case ast.ValueStr:
		return strconv.Quote(c.Value.Str)
	default:
		return "()"
	}
}
