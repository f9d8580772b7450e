package parser

import "github.com/apigen/apigen/ast"

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokInt
	tokString
	// punctuation, each a single rune except where noted
	tokEquals    // =
	tokSemi      // ;
	tokColon     // :
	tokComma     // ,
	tokLParen    // (
	tokRParen    // )
	tokLBrace    // {
	tokRBrace    // }
	tokLBracket  // [
	tokRBracket  // ]
	tokStar      // *
	tokQuestion  // ?
	tokMinus     // -
)

// intLiteral carries the unsigned magnitude of a scanned integer literal;
// the parser applies a leading '-' itself to build an ast.Value, since the
// lexer never produces signed tokens (spec.md §3.1: sint is always the
// result of negating a literal, uint is everything else).
type intLiteral struct {
	magnitude uint64
}

type token struct {
	kind tokenKind
	span ast.Span
	text string // identifier spelling, or raw literal spelling (for diagnostics)

	intVal intLiteral
	strVal string

	// doc holds any documentation comment immediately preceding this
	// token, already concatenated with "\n" between adjacent lines
	// (spec.md §4.1).
	doc string
}

var punctText = map[tokenKind]string{
	tokEquals:   "=",
	tokSemi:     ";",
	tokColon:    ":",
	tokComma:    ",",
	tokLParen:   "(",
	tokRParen:   ")",
	tokLBrace:   "{",
	tokRBrace:   "}",
	tokLBracket: "[",
	tokRBracket: "]",
	tokStar:     "*",
	tokQuestion: "?",
	tokMinus:    "-",
}

func (t token) String() string {
	switch t.kind {
	case tokEOF:
		return "<eof>"
	case tokString:
		return "<string literal>"
	case tokInt:
		return "<int literal>"
	case tokIdent:
		return t.text
	default:
		if s, ok := punctText[t.kind]; ok {
			return s
		}
		return "<unknown>"
	}
}
