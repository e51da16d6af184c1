// Package cparse is a recursive-descent parser over clex tokens,
// building the cast tree for a C89/C99 subset. Its error-aggregation
// shape (collect every error found while still attempting to parse the
// rest of the unit, then report them all together) follows the same
// idiom as a grammar parser that resyncs past a bad production instead
// of aborting on the first one.
package cparse

import (
	"fmt"

	"github.com/sayakbrahmachari/struix/cfront/cast"
	"github.com/sayakbrahmachari/struix/cfront/clex"
)

// ParseError is one parse failure, tagged with its source line.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string { return fmt.Sprintf("line %d: %s", e.Line, e.Msg) }

var typeKeywords = map[string]bool{
	"int": true, "char": true, "float": true, "double": true, "void": true,
	"short": true, "long": true, "unsigned": true, "signed": true,
}

// Parser consumes a token stream with one token of lookahead.
type Parser struct {
	lex  *clex.Lexer
	tok  clex.Token
	errs []error
}

// Parse tokenizes and parses src, returning the translation unit and
// every error encountered (nil if none).
func Parse(src string) (*cast.TranslationUnit, []error) {
	p := &Parser{lex: clex.New(src)}
	p.next()
	tu := p.parseTranslationUnit()
	return tu, p.errs
}

func (p *Parser) next() { p.tok = p.lex.Next() }

func (p *Parser) errorf(format string, args ...interface{}) {
	p.errs = append(p.errs, &ParseError{Line: p.tok.Line, Msg: fmt.Sprintf(format, args...)})
}

func (p *Parser) expectPunct(s string) bool {
	if p.tok.Kind == clex.Punct && p.tok.Text == s {
		p.next()
		return true
	}
	p.errorf("expected %q, found %s", s, p.tok)
	return false
}

func (p *Parser) atPunct(s string) bool { return p.tok.Kind == clex.Punct && p.tok.Text == s }
func (p *Parser) atKeyword(s string) bool {
	return p.tok.Kind == clex.Ident && p.tok.Text == s
}

// skipToSync discards tokens until a statement boundary, so one
// malformed construct doesn't cascade into spurious follow-on errors.
func (p *Parser) skipToSync() {
	for p.tok.Kind != clex.EOF {
		if p.atPunct(";") {
			p.next()
			return
		}
		if p.atPunct("}") {
			return
		}
		p.next()
	}
}

func (p *Parser) parseTranslationUnit() *cast.TranslationUnit {
	tu := &cast.TranslationUnit{}
	for p.tok.Kind != clex.EOF {
		decl := p.parseTopLevel()
		if decl != nil {
			tu.Decls = append(tu.Decls, decl)
		} else {
			p.skipToSync()
		}
	}
	return tu
}

func (p *Parser) isTypeStart() bool {
	return p.tok.Kind == clex.Ident && (typeKeywords[p.tok.Text] || p.tok.Text == "const")
}

func (p *Parser) parseType() string {
	typ := ""
	for p.isTypeStart() {
		if typ != "" {
			typ += " "
		}
		typ += p.tok.Text
		p.next()
	}
	for p.atPunct("*") {
		typ += "*"
		p.next()
	}
	return typ
}

func (p *Parser) parseTopLevel() cast.TopLevel {
	if !p.isTypeStart() {
		p.errorf("expected a type, found %s", p.tok)
		return nil
	}
	typ := p.parseType()
	if p.tok.Kind != clex.Ident {
		p.errorf("expected an identifier, found %s", p.tok)
		return nil
	}
	name := p.tok.Text
	p.next()

	if p.atPunct("(") {
		return p.parseFuncRest(typ, name)
	}
	return p.parseVarDeclRest(typ, name)
}

func (p *Parser) parseFuncRest(retType, name string) *cast.FuncDef {
	p.expectPunct("(")
	var params []cast.Param
	for !p.atPunct(")") && p.tok.Kind != clex.EOF {
		if len(params) > 0 {
			p.expectPunct(",")
		}
		if p.atKeyword("void") {
			p.next()
			break
		}
		if !p.isTypeStart() {
			p.errorf("expected a parameter type, found %s", p.tok)
			break
		}
		ptype := p.parseType()
		pname := ""
		if p.tok.Kind == clex.Ident {
			pname = p.tok.Text
			p.next()
		}
		params = append(params, cast.Param{Name: pname, Type: ptype})
	}
	p.expectPunct(")")
	body := p.parseCompound()
	return &cast.FuncDef{Name: name, Params: params, RetType: retType, Body: body}
}

func (p *Parser) parseVarDeclRest(typ, name string) *cast.VarDecl {
	d := &cast.VarDecl{Name: name, Type: typ}
	if p.atPunct("[") {
		p.next()
		d.IsArray = true
		if p.tok.Kind == clex.Int {
			fmt.Sscanf(p.tok.Text, "%d", &d.ArrayN)
			p.next()
		}
		p.expectPunct("]")
	}
	if p.atPunct("=") {
		p.next()
		d.Init = p.parseExpr()
	}
	p.expectPunct(";")
	return d
}

func (p *Parser) parseCompound() *cast.Compound {
	c := &cast.Compound{}
	if !p.expectPunct("{") {
		return c
	}
	for !p.atPunct("}") && p.tok.Kind != clex.EOF {
		s := p.parseStmt()
		if s != nil {
			c.Stmts = append(c.Stmts, s)
		} else {
			p.skipToSync()
		}
	}
	p.expectPunct("}")
	return c
}

func (p *Parser) parseStmt() cast.Stmt {
	switch {
	case p.atPunct("{"):
		return p.parseCompound()
	case p.isTypeStart():
		typ := p.parseType()
		if p.tok.Kind != clex.Ident {
			p.errorf("expected an identifier, found %s", p.tok)
			return nil
		}
		name := p.tok.Text
		p.next()
		return p.parseVarDeclRest(typ, name)
	case p.atKeyword("if"):
		return p.parseIf()
	case p.atKeyword("while"):
		return p.parseWhile()
	case p.atKeyword("do"):
		return p.parseDoWhile()
	case p.atKeyword("for"):
		return p.parseFor()
	case p.atKeyword("break"):
		p.next()
		p.expectPunct(";")
		return &cast.Break{}
	case p.atKeyword("continue"):
		p.next()
		p.expectPunct(";")
		return &cast.Continue{}
	case p.atKeyword("return"):
		p.next()
		var x cast.Expr
		if !p.atPunct(";") {
			x = p.parseExpr()
		}
		p.expectPunct(";")
		return &cast.Return{X: x}
	case p.atKeyword("switch"):
		return p.parseSwitch()
	case p.atPunct(";"):
		p.next()
		return &cast.Compound{}
	default:
		x := p.parseExpr()
		p.expectPunct(";")
		return &cast.ExprStmt{X: x}
	}
}

func (p *Parser) parseIf() *cast.If {
	p.next()
	p.expectPunct("(")
	cond := p.parseExpr()
	p.expectPunct(")")
	then := p.parseStmt()
	var els cast.Stmt
	if p.atKeyword("else") {
		p.next()
		els = p.parseStmt()
	}
	return &cast.If{Cond: cond, Then: then, Else: els}
}

func (p *Parser) parseWhile() *cast.While {
	p.next()
	p.expectPunct("(")
	cond := p.parseExpr()
	p.expectPunct(")")
	body := p.parseStmt()
	return &cast.While{Cond: cond, Body: body}
}

func (p *Parser) parseDoWhile() *cast.DoWhile {
	p.next()
	body := p.parseStmt()
	if !p.atKeyword("while") {
		p.errorf("expected 'while', found %s", p.tok)
	} else {
		p.next()
	}
	p.expectPunct("(")
	cond := p.parseExpr()
	p.expectPunct(")")
	p.expectPunct(";")
	return &cast.DoWhile{Body: body, Cond: cond}
}

func (p *Parser) parseFor() *cast.For {
	p.next()
	p.expectPunct("(")
	var init cast.Stmt
	if !p.atPunct(";") {
		if p.isTypeStart() {
			typ := p.parseType()
			name := p.tok.Text
			p.next()
			init = p.parseVarDeclRest(typ, name)
		} else {
			x := p.parseExpr()
			p.expectPunct(";")
			init = &cast.ExprStmt{X: x}
		}
	} else {
		p.next()
	}
	var cond cast.Expr
	if !p.atPunct(";") {
		cond = p.parseExpr()
	}
	p.expectPunct(";")
	var post cast.Expr
	if !p.atPunct(")") {
		post = p.parseExpr()
	}
	p.expectPunct(")")
	body := p.parseStmt()
	return &cast.For{Init: init, Cond: cond, Post: post, Body: body}
}

func (p *Parser) parseSwitch() *cast.Switch {
	p.next()
	p.expectPunct("(")
	tag := p.parseExpr()
	p.expectPunct(")")
	p.expectPunct("{")
	sw := &cast.Switch{Tag: tag}
	for !p.atPunct("}") && p.tok.Kind != clex.EOF {
		var c cast.Case
		if p.atKeyword("case") {
			p.next()
			c.Value = p.parseExpr()
			p.expectPunct(":")
		} else if p.atKeyword("default") {
			p.next()
			c.IsDefault = true
			p.expectPunct(":")
		} else {
			p.errorf("expected 'case' or 'default', found %s", p.tok)
			p.skipToSync()
			continue
		}
		for !p.atKeyword("case") && !p.atKeyword("default") && !p.atPunct("}") && p.tok.Kind != clex.EOF {
			s := p.parseStmt()
			if s != nil {
				c.Body = append(c.Body, s)
			}
		}
		sw.Cases = append(sw.Cases, c)
	}
	p.expectPunct("}")
	return sw
}

// --- expressions, precedence climbing, lowest to highest ---

func (p *Parser) parseExpr() cast.Expr { return p.parseAssign() }

func (p *Parser) parseAssign() cast.Expr {
	lhs := p.parseTernary()
	if p.tok.Kind == clex.Punct {
		switch p.tok.Text {
		case "=":
			p.next()
			return &cast.Assign{Target: lhs, Value: p.parseAssign()}
		case "+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "<<=", ">>=":
			op := p.tok.Text[:len(p.tok.Text)-1]
			p.next()
			rhs := p.parseAssign()
			return &cast.Assign{Target: lhs, Value: &cast.Binary{Op: op, Left: lhs, Right: rhs}}
		}
	}
	return lhs
}

func (p *Parser) parseTernary() cast.Expr {
	cond := p.parseLogicalOr()
	if p.atPunct("?") {
		p.next()
		then := p.parseExpr()
		p.expectPunct(":")
		els := p.parseAssign()
		return &cast.Ternary{Cond: cond, Then: then, Else: els}
	}
	return cond
}

func (p *Parser) parseLogicalOr() cast.Expr {
	x := p.parseLogicalAnd()
	for p.atPunct("||") {
		p.next()
		x = &cast.Binary{Op: "||", Left: x, Right: p.parseLogicalAnd()}
	}
	return x
}

func (p *Parser) parseLogicalAnd() cast.Expr {
	x := p.parseBitOr()
	for p.atPunct("&&") {
		p.next()
		x = &cast.Binary{Op: "&&", Left: x, Right: p.parseBitOr()}
	}
	return x
}

func (p *Parser) parseBitOr() cast.Expr {
	x := p.parseBitXor()
	for p.atPunct("|") {
		p.next()
		x = &cast.Binary{Op: "|", Left: x, Right: p.parseBitXor()}
	}
	return x
}

func (p *Parser) parseBitXor() cast.Expr {
	x := p.parseBitAnd()
	for p.atPunct("^") {
		p.next()
		x = &cast.Binary{Op: "^", Left: x, Right: p.parseBitAnd()}
	}
	return x
}

func (p *Parser) parseBitAnd() cast.Expr {
	x := p.parseEquality()
	for p.atPunct("&") {
		p.next()
		x = &cast.Binary{Op: "&", Left: x, Right: p.parseEquality()}
	}
	return x
}

func (p *Parser) parseEquality() cast.Expr {
	x := p.parseRelational()
	for p.atPunct("==") || p.atPunct("!=") {
		op := p.tok.Text
		p.next()
		x = &cast.Binary{Op: op, Left: x, Right: p.parseRelational()}
	}
	return x
}

func (p *Parser) parseRelational() cast.Expr {
	x := p.parseShift()
	for p.atPunct("<") || p.atPunct(">") || p.atPunct("<=") || p.atPunct(">=") {
		op := p.tok.Text
		p.next()
		x = &cast.Binary{Op: op, Left: x, Right: p.parseShift()}
	}
	return x
}

func (p *Parser) parseShift() cast.Expr {
	x := p.parseAdditive()
	for p.atPunct("<<") || p.atPunct(">>") {
		op := p.tok.Text
		p.next()
		x = &cast.Binary{Op: op, Left: x, Right: p.parseAdditive()}
	}
	return x
}

func (p *Parser) parseAdditive() cast.Expr {
	x := p.parseMultiplicative()
	for p.atPunct("+") || p.atPunct("-") {
		op := p.tok.Text
		p.next()
		x = &cast.Binary{Op: op, Left: x, Right: p.parseMultiplicative()}
	}
	return x
}

func (p *Parser) parseMultiplicative() cast.Expr {
	x := p.parseCast()
	for p.atPunct("*") || p.atPunct("/") || p.atPunct("%") {
		op := p.tok.Text
		p.next()
		x = &cast.Binary{Op: op, Left: x, Right: p.parseCast()}
	}
	return x
}

func (p *Parser) parseCast() cast.Expr {
	if p.atPunct("(") {
		// only consumed as a cast if the parenthesized content is a
		// bare type name; otherwise this is a parenthesized expression.
		save := p.lex.Save()
		savedTok := p.tok
		p.next()
		if p.isTypeStart() {
			typ := p.parseType()
			if p.atPunct(")") {
				p.next()
				return &cast.Cast{Type: typ, X: p.parseCast()}
			}
		}
		p.lex.Restore(save)
		p.tok = savedTok
	}
	return p.parseUnary()
}

func (p *Parser) parseUnary() cast.Expr {
	if p.tok.Kind == clex.Punct {
		switch p.tok.Text {
		case "-", "!", "~", "+":
			op := p.tok.Text
			p.next()
			if op == "+" {
				return p.parseUnary()
			}
			return &cast.Unary{Op: op, X: p.parseUnary()}
		case "++", "--":
			op := p.tok.Text
			p.next()
			return &cast.Unary{Op: op, X: p.parseUnary()}
		}
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() cast.Expr {
	x := p.parsePrimary()
	for {
		switch {
		case p.atPunct("["):
			p.next()
			idx := p.parseExpr()
			p.expectPunct("]")
			x = &cast.Index{Arr: x, Idx: idx}
		case p.atPunct("("):
			p.next()
			id, ok := x.(*cast.Ident)
			if !ok {
				p.errorf("only a plain function name may be called")
			}
			var args []cast.Expr
			for !p.atPunct(")") && p.tok.Kind != clex.EOF {
				if len(args) > 0 {
					p.expectPunct(",")
				}
				args = append(args, p.parseExpr())
			}
			p.expectPunct(")")
			name := ""
			if id != nil {
				name = id.Name
			}
			x = &cast.Call{Fn: name, Args: args}
		case p.atPunct("++") || p.atPunct("--"):
			op := p.tok.Text
			p.next()
			x = &cast.Postfix{Op: op, X: x}
		default:
			return x
		}
	}
}

func (p *Parser) parsePrimary() cast.Expr {
	switch p.tok.Kind {
	case clex.Ident:
		name := p.tok.Text
		p.next()
		return &cast.Ident{Name: name}
	case clex.Int:
		text := p.tok.Text
		p.next()
		return &cast.IntLit{Text: text}
	case clex.Float:
		text := p.tok.Text
		p.next()
		return &cast.FloatLit{Text: text}
	case clex.String:
		v := clex.DecodeEscapes(p.tok.Text)
		p.next()
		return &cast.StringLit{Value: v}
	case clex.Char:
		v := clex.DecodeEscapes(p.tok.Text)
		p.next()
		var r rune
		for _, c := range v {
			r = c
			break
		}
		return &cast.CharLit{Value: r}
	case clex.Punct:
		if p.tok.Text == "(" {
			p.next()
			x := p.parseExpr()
			p.expectPunct(")")
			return x
		}
	}
	p.errorf("expected an expression, found %s", p.tok)
	p.next()
	return &cast.IntLit{Text: "0"}
}
