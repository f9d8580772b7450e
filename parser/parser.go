// Package parser implements apigen's IDL parser: lexing plus a
// recursive-descent grammar over the token stream, producing an AST of
// top-level declarations (spec.md §4.1).
//
// The parser never aborts on the first syntax error: like protocompile's
// hand-written error recovery around its generated grammar, apigen skips
// to the next plausible declaration boundary (the next top-level keyword or
// the next `;`) and keeps going, so a single run can report more than one
// syntax error.
package parser

import (
	"github.com/apigen/apigen/ast"
	"github.com/apigen/apigen/diag"
)

// Parse parses a complete IDL source file into a slice of top-level
// declarations. lineFeed configures the separator used when concatenating
// adjacent multi-line string pieces (spec.md §4.1); if empty, "\n" is used.
//
// Parse always returns a non-nil slice (possibly empty); ok reports whether
// parsing succeeded without any syntax error being reported to sink.
func Parse(file string, src []byte, lineFeed string, sink *diag.Sink) (decls []*ast.Decl, ok bool) {
	p := &parser{lex: newLexer(file, src, lineFeed, sink), sink: sink, file: file}
	p.advance()
	decls = []*ast.Decl{}
	for p.tok.kind != tokEOF {
		if d := p.parseDecl(); d != nil {
			decls = append(decls, d)
		}
	}
	return decls, !sink.Failed()
}

type parser struct {
	lex  *lexer
	sink *diag.Sink
	file string

	tok  token
	prev token
}

func (p *parser) advance() {
	p.prev = p.tok
	p.tok = p.lex.next()
}

func (p *parser) pos(pos ast.Position) diag.Position {
	return diag.Position{File: p.file, Line: pos.Line, Column: pos.Column}
}

func (p *parser) errf(pos ast.Position, format string, args ...any) {
	p.sink.Errorf(p.pos(pos), diag.SyntaxError, format, args...)
}

// isKeyword reports whether the current token is the identifier word
// ("type", "const", ...). It neither consumes the token nor reports an
// error.
func (p *parser) isKeyword(word string) bool {
	return p.tok.kind == tokIdent && p.tok.text == word
}

func (p *parser) expect(kind tokenKind, desc string) (token, bool) {
	if p.tok.kind != kind {
		p.errf(p.tok.span.Start, "expected %s, found %q", desc, p.tok.String())
		return p.tok, false
	}
	t := p.tok
	p.advance()
	return t, true
}

func (p *parser) expectIdentText() (token, bool) {
	return p.expect(tokIdent, "identifier")
}

// recover skips tokens until it finds a top-level declaration keyword, a
// ';', or EOF, so the next call to parseDecl can make progress after a
// syntax error (spec.md §4.1: "the parser keeps going where feasible").
func (p *parser) recover() {
	for p.tok.kind != tokEOF {
		if p.tok.kind == tokSemi {
			p.advance()
			return
		}
		if p.tok.kind == tokIdent {
			switch p.tok.text {
			case "type", "const", "var", "constexpr", "fn":
				return
			}
		}
		p.advance()
	}
}

func (p *parser) parseDecl() *ast.Decl {
	doc := p.tok.doc
	start := p.tok.span.Start

	switch {
	case p.isKeyword("type"):
		return p.parseTypeDecl(start, doc)
	case p.isKeyword("const"):
		return p.parseVarDecl(start, doc, ast.DeclConst)
	case p.isKeyword("var"):
		return p.parseVarDecl(start, doc, ast.DeclVar)
	case p.isKeyword("constexpr"):
		return p.parseConstexprDecl(start, doc)
	case p.isKeyword("fn"):
		return p.parseFnDecl(start, doc)
	default:
		p.errf(start, "expected a top-level declaration, found %q", p.tok.String())
		p.recover()
		return nil
	}
}

func (p *parser) parseTypeDecl(start ast.Position, doc string) *ast.Decl {
	p.advance() // 'type'
	name, ok := p.expectIdentText()
	if !ok {
		p.recover()
		return nil
	}
	if _, ok := p.expect(tokEquals, "'='"); !ok {
		p.recover()
		return nil
	}
	ty := p.parseType()
	end := p.tok.span.Start
	if _, ok := p.expect(tokSemi, "';'"); !ok {
		p.recover()
	}
	return &ast.Decl{
		Span: ast.Span{Start: start, End: end},
		Kind: ast.DeclType,
		Name: name.text,
		Doc:  doc,
		Type: ty,
	}
}

func (p *parser) parseVarDecl(start ast.Position, doc string, kind ast.DeclKind) *ast.Decl {
	p.advance() // 'const'/'var'
	name, ok := p.expectIdentText()
	if !ok {
		p.recover()
		return nil
	}
	if _, ok := p.expect(tokColon, "':'"); !ok {
		p.recover()
		return nil
	}
	ty := p.parseType()
	end := p.tok.span.Start
	if _, ok := p.expect(tokSemi, "';'"); !ok {
		p.recover()
	}
	return &ast.Decl{
		Span: ast.Span{Start: start, End: end},
		Kind: kind,
		Name: name.text,
		Doc:  doc,
		Type: ty,
	}
}

func (p *parser) parseConstexprDecl(start ast.Position, doc string) *ast.Decl {
	p.advance() // 'constexpr'
	name, ok := p.expectIdentText()
	if !ok {
		p.recover()
		return nil
	}
	if _, ok := p.expect(tokColon, "':'"); !ok {
		p.recover()
		return nil
	}
	ty := p.parseType()
	if _, ok := p.expect(tokEquals, "'='"); !ok {
		p.recover()
		return nil
	}
	val := p.parseValue()
	end := p.tok.span.Start
	if _, ok := p.expect(tokSemi, "';'"); !ok {
		p.recover()
	}
	return &ast.Decl{
		Span:  ast.Span{Start: start, End: end},
		Kind:  ast.DeclConstexpr,
		Name:  name.text,
		Doc:   doc,
		Type:  ty,
		Value: &val,
	}
}

func (p *parser) parseFnDecl(start ast.Position, doc string) *ast.Decl {
	p.advance() // 'fn'
	name, ok := p.expectIdentText()
	if !ok {
		p.recover()
		return nil
	}
	params := p.parseParamList()
	ret := p.parseType()
	end := p.tok.span.Start
	if _, ok := p.expect(tokSemi, "';'"); !ok {
		p.recover()
	}
	fnType := &ast.Type{
		Span:   ast.Span{Start: start, End: end},
		Kind:   ast.TypeFunction,
		Return: ret,
		Params: params,
	}
	return &ast.Decl{
		Span: ast.Span{Start: start, End: end},
		Kind: ast.DeclFn,
		Name: name.text,
		Doc:  doc,
		Type: fnType,
	}
}

func (p *parser) parseParamList() []ast.Field {
	if _, ok := p.expect(tokLParen, "'('"); !ok {
		return nil
	}
	var params []ast.Field
	for p.tok.kind != tokRParen && p.tok.kind != tokEOF {
		doc := p.tok.doc
		start := p.tok.span.Start
		name, ok := p.expectIdentText()
		if !ok {
			p.recover()
			return params
		}
		if _, ok := p.expect(tokColon, "':'"); !ok {
			return params
		}
		ty := p.parseType()
		params = append(params, ast.Field{
			Span: ast.Span{Start: start, End: p.tok.span.Start},
			Doc:  doc,
			Name: name.text,
			Type: ty,
		})
		if p.tok.kind == tokComma {
			p.advance()
			continue
		}
		break
	}
	p.expect(tokRParen, "')'")
	return params
}

// parseType parses a <Type> expression (spec.md §4.1, §6.1).
func (p *parser) parseType() *ast.Type {
	start := p.tok.span.Start

	optional := false
	if p.tok.kind == tokQuestion {
		optional = true
		p.advance()
	}

	switch p.tok.kind {
	case tokStar:
		p.advance()
		isConst := p.consumeConst()
		underlying := p.parseType()
		return &ast.Type{
			Span:       ast.Span{Start: start, End: p.tok.span.Start},
			Kind:       ast.TypePtrToOne,
			IsConst:    isConst,
			IsOptional: optional,
			Underlying: underlying,
		}

	case tokLBracket:
		p.advance()
		if p.tok.kind == tokStar {
			p.advance()
			var sentinel *ast.Value
			kind := ast.TypePtrToMany
			if p.tok.kind == tokColon {
				p.advance()
				v := p.parseValue()
				sentinel = &v
				kind = ast.TypePtrToManySentinelled
			}
			p.expect(tokRBracket, "']'")
			isConst := p.consumeConst()
			underlying := p.parseType()
			return &ast.Type{
				Span:       ast.Span{Start: start, End: p.tok.span.Start},
				Kind:       kind,
				IsConst:    isConst,
				IsOptional: optional,
				Underlying: underlying,
				Sentinel:   sentinel,
			}
		}
		if optional {
			p.errf(start, "'?' is not valid before an array type")
		}
		size := p.parseValue()
		p.expect(tokRBracket, "']'")
		elem := p.parseType()
		return &ast.Type{
			Span: ast.Span{Start: start, End: p.tok.span.Start},
			Kind: ast.TypeArray,
			Size: &size,
			Elem: elem,
		}

	case tokIdent:
		if optional {
			p.errf(start, "'?' may only prefix a pointer type")
		}
		switch p.tok.text {
		case "enum":
			return p.parseEnumType(start)
		case "struct":
			return p.parseStructOrUnionType(start, ast.TypeStruct)
		case "union":
			return p.parseStructOrUnionType(start, ast.TypeUnion)
		case "opaque":
			p.advance()
			p.expect(tokLBrace, "'{'")
			p.expect(tokRBrace, "'}'")
			return &ast.Type{Span: ast.Span{Start: start, End: p.tok.span.Start}, Kind: ast.TypeOpaque}
		case "fn":
			return p.parseFnType(start)
		default:
			name := p.tok.text
			p.advance()
			return &ast.Type{Span: ast.Span{Start: start, End: p.tok.span.Start}, Kind: ast.TypeNamed, Name: name}
		}

	default:
		p.errf(start, "expected a type, found %q", p.tok.String())
		p.advance()
		return &ast.Type{Span: ast.Span{Start: start, End: start}, Kind: ast.TypeNamed, Name: "<error>"}
	}
}

func (p *parser) consumeConst() bool {
	if p.isKeyword("const") {
		p.advance()
		return true
	}
	return false
}

func (p *parser) parseFnType(start ast.Position) *ast.Type {
	p.advance() // 'fn'
	params := p.parseParamList()
	ret := p.parseType()
	return &ast.Type{
		Span:   ast.Span{Start: start, End: p.tok.span.Start},
		Kind:   ast.TypeFunction,
		Return: ret,
		Params: params,
	}
}

func (p *parser) parseEnumType(start ast.Position) *ast.Type {
	p.advance() // 'enum'
	var underlying *ast.Type
	if p.tok.kind == tokLParen {
		p.advance()
		underlying = p.parseType()
		p.expect(tokRParen, "')'")
	}
	p.expect(tokLBrace, "'{'")
	var items []ast.EnumItem
	for p.tok.kind != tokRBrace && p.tok.kind != tokEOF {
		itemStart := p.tok.span.Start
		doc := p.tok.doc
		name, ok := p.expectIdentText()
		if !ok {
			p.recover()
			break
		}
		var val *ast.Value
		if p.tok.kind == tokEquals {
			p.advance()
			v := p.parseValue()
			val = &v
		}
		items = append(items, ast.EnumItem{
			Span:  ast.Span{Start: itemStart, End: p.tok.span.Start},
			Doc:   doc,
			Name:  name.text,
			Value: val,
		})
		if p.tok.kind == tokComma {
			p.advance()
			continue
		}
		break
	}
	p.expect(tokRBrace, "'}'")
	return &ast.Type{
		Span:          ast.Span{Start: start, End: p.tok.span.Start},
		Kind:          ast.TypeEnum,
		UnderlyingInt: underlying,
		Items:         items,
	}
}

func (p *parser) parseStructOrUnionType(start ast.Position, kind ast.TypeKind) *ast.Type {
	p.advance() // 'struct'/'union'
	p.expect(tokLBrace, "'{'")
	var fields []ast.Field
	for p.tok.kind != tokRBrace && p.tok.kind != tokEOF {
		fieldStart := p.tok.span.Start
		doc := p.tok.doc
		name, ok := p.expectIdentText()
		if !ok {
			p.recover()
			break
		}
		if _, ok := p.expect(tokColon, "':'"); !ok {
			break
		}
		ty := p.parseType()
		fields = append(fields, ast.Field{
			Span: ast.Span{Start: fieldStart, End: p.tok.span.Start},
			Doc:  doc,
			Name: name.text,
			Type: ty,
		})
		if p.tok.kind == tokComma {
			p.advance()
			continue
		}
		break
	}
	p.expect(tokRBrace, "'}'")
	return &ast.Type{Span: ast.Span{Start: start, End: p.tok.span.Start}, Kind: kind, Fields: fields}
}

// parseValue parses a literal: null, an (optionally negated) integer, or a
// string (spec.md §3.1, §6.1). "null" is recognized contextually as an
// identifier, the same way keywords are.
func (p *parser) parseValue() ast.Value {
	start := p.tok.span.Start
	switch p.tok.kind {
	case tokMinus:
		p.advance()
		if p.tok.kind != tokInt {
			p.errf(start, "expected an integer literal after '-', found %q", p.tok.String())
			return ast.Null(ast.Span{Start: start, End: start})
		}
		mag := p.tok.intVal.magnitude
		span := ast.Span{Start: start, End: p.tok.span.End}
		p.advance()
		if mag == 0 {
			return ast.Uint(span, 0)
		}
		return ast.Sint(span, -int64(mag))
	case tokInt:
		span := p.tok.span
		mag := p.tok.intVal.magnitude
		p.advance()
		return ast.Uint(span, mag)
	case tokString:
		span := p.tok.span
		s := p.tok.strVal
		p.advance()
		return ast.Str(span, s)
	case tokIdent:
		if p.tok.text == "null" {
			span := p.tok.span
			p.advance()
			return ast.Null(span)
		}
		p.errf(start, "expected a value, found %q", p.tok.String())
		p.advance()
		return ast.Null(ast.Span{Start: start, End: start})
	default:
		p.errf(start, "expected a value, found %q", p.tok.String())
		p.advance()
		return ast.Null(ast.Span{Start: start, End: start})
	}
}
