package render

import "strings"

// Case selects a text transliteration applied to an identifier before
// emission (spec.md §4.4: enum items are emitted upper-cased and
// prefixed, most other identifiers are emitted unchanged).
type Case int

const (
	Keep Case = iota
	Upper
	Lower
)

func applyCase(name string, c Case) string {
	switch c {
	case Upper:
		return strings.ToUpper(name)
	case Lower:
		return strings.ToLower(name)
	default:
		return name
	}
}

// Quoter renders identifiers for one target language: it knows that
// language's reserved-word list and reserved-namespace pattern, and how to
// still emit an otherwise-reserved spelling when the call site tolerates
// it (spec.md §4.4 "Identifier rendering").
//
// Grounded on render_identifier in original_source/src/gen/c_cpp.c: the
// reserved check runs against the identifier's original spelling, the
// Case transliteration is applied regardless, and a reserved identifier
// gets an escape applied to the transliterated text only when the call
// site does not require an exact spelling (a declaration site does, and
// a reserved name reaching one means an earlier phase failed to reject
// it — the program panics rather than emit broken output).
type Quoter struct {
	words     map[string]bool
	namespace func(string) bool
	escape    func(string) string
}

// NewQuoter builds a Quoter from an explicit reserved-word list, an
// optional reserved-namespace predicate (nil if the language has none),
// and the escape applied to a reserved identifier's transliterated text.
func NewQuoter(reservedWords []string, namespace func(string) bool, escape func(string) string) *Quoter {
	words := make(map[string]bool, len(reservedWords))
	for _, w := range reservedWords {
		words[w] = true
	}
	return &Quoter{words: words, namespace: namespace, escape: escape}
}

// Reserved reports whether name must not be emitted verbatim.
func (q *Quoter) Reserved(name string) bool {
	if q.words[name] {
		return true
	}
	return q.namespace != nil && q.namespace(name)
}

// Render transliterates name per c, then escapes it if reserved. exact
// must be true at a declaration site (a typedef name, a struct tag, a
// top-level symbol) where the spelling must match exactly; Render panics
// there instead of silently emitting an escaped, mismatched identifier.
func (q *Quoter) Render(name string, c Case, exact bool) string {
	out := applyCase(name, c)
	if !q.Reserved(name) {
		return out
	}
	if exact {
		panic("render: reserved identifier used where an exact match is required: " + name)
	}
	return q.escape(out)
}

// CReservedWords is the C keyword list plus the common stdbool.h/
// stdalign.h aliases, transcribed from render_identifier's
// reserved_identifiers table in original_source/src/gen/c_cpp.c. C++
// reuses it (the C++ keyword set is a superset for everything this
// renderer emits).
var CReservedWords = []string{
	"alignas", "alignof", "auto", "bool", "break", "case",
	"char", "const", "constexpr", "continue", "default", "do",
	"double", "else", "enum", "extern", "false", "float",
	"for", "goto", "if", "inline", "int", "long",
	"nullptr", "register", "restrict", "return", "short", "signed",
	"sizeof", "static", "static_assert", "struct", "switch", "thread_local",
	"true", "typedef", "typeof", "typeof_unqual", "union", "unsigned",
	"volatile", "while", "_Alignas", "_Alignof", "_Atomic", "_BitInt",
	"_Bool", "_Complex", "_Decimal128", "_Decimal32", "_Decimal64", "_Generic",
	"_Imaginary", "_Noreturn", "_Static_assert", "_Thread_local", "void",

	"alignas", "alignof", "bool", "complex",
	"imaginary", "noreturn", "static_assert", "thread_local",
}

// CReservedNamespace reports whether name falls in C's reserved
// identifier namespace: a leading underscore followed by another
// underscore or an uppercase letter.
func CReservedNamespace(name string) bool {
	if len(name) < 2 || name[0] != '_' {
		return false
	}
	return name[1] == '_' || (name[1] >= 'A' && name[1] <= 'Z')
}

// CEscape appends a trailing underscore, the convention render_identifier
// uses for a reserved word reached at a non-exact call site (a field or
// parameter name).
func CEscape(transliterated string) string { return transliterated + "_" }

// NewCQuoter returns the Quoter shared by the C and C++ backends.
func NewCQuoter() *Quoter {
	return NewQuoter(CReservedWords, CReservedNamespace, CEscape)
}
