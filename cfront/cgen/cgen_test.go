package cgen_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sayakbrahmachari/struix/cfront/cast"
	"github.com/sayakbrahmachari/struix/cfront/cgen"
)

func tokens(s string) []string { return strings.Fields(s) }

func TestGenSimpleFuncDef(t *testing.T) {
	tu := &cast.TranslationUnit{Decls: []cast.TopLevel{
		&cast.FuncDef{
			Name: "add",
			Params: []cast.Param{
				{Name: "a", Type: "int"},
				{Name: "b", Type: "int"},
			},
			Body: &cast.Compound{Stmts: []cast.Stmt{
				&cast.Return{X: &cast.Binary{Op: "+", Left: &cast.Ident{Name: "a"}, Right: &cast.Ident{Name: "b"}}},
			}},
		},
	}}
	src, warnings, errs := cgen.Generate(tu)
	require.Empty(t, errs)
	assert.Empty(t, warnings)

	got := tokens(src)
	want := tokens("DEF add VAR b b PARAM VAR a a PARAM a FETCH b FETCH + RETURN END")
	assert.Equal(t, want, got)
}

func TestGenVarDeclScalarInit(t *testing.T) {
	tu := &cast.TranslationUnit{Decls: []cast.TopLevel{
		&cast.VarDecl{Name: "x", Init: &cast.IntLit{Text: "5"}},
	}}
	src, _, errs := cgen.Generate(tu)
	require.Empty(t, errs)
	assert.Equal(t, tokens("VAR x 5 x SWAP STORE"), tokens(src))
}

func TestGenArrayDeclZeroFill(t *testing.T) {
	tu := &cast.TranslationUnit{Decls: []cast.TopLevel{
		&cast.VarDecl{Name: "buf", IsArray: true, ArrayN: 3},
	}}
	src, _, errs := cgen.Generate(tu)
	require.Empty(t, errs)
	assert.Equal(t, tokens("VAR buf [ 0 0 0 ] buf SWAP STORE"), tokens(src))
}

func TestGenAssignStmtNoResidual(t *testing.T) {
	tu := &cast.TranslationUnit{Decls: []cast.TopLevel{
		&cast.FuncDef{Name: "f", Body: &cast.Compound{Stmts: []cast.Stmt{
			&cast.VarDecl{Name: "x"},
			&cast.ExprStmt{X: &cast.Assign{Target: &cast.Ident{Name: "x"}, Value: &cast.IntLit{Text: "1"}}},
		}}},
	}}
	src, _, errs := cgen.Generate(tu)
	require.Empty(t, errs)
	assert.Equal(t, tokens("DEF f VAR x 1 x SWAP STORE END"), tokens(src))
}

func TestGenPostfixLeavesOldValue(t *testing.T) {
	tu := &cast.TranslationUnit{Decls: []cast.TopLevel{
		&cast.FuncDef{Name: "f", Body: &cast.Compound{Stmts: []cast.Stmt{
			&cast.VarDecl{Name: "x"},
			&cast.Return{X: &cast.Postfix{Op: "++", X: &cast.Ident{Name: "x"}}},
		}}},
	}}
	src, _, errs := cgen.Generate(tu)
	require.Empty(t, errs)
	assert.Equal(t, tokens("DEF f VAR x x FETCH DUP 1 + x SWAP STORE RETURN END"), tokens(src))
}

func TestGenIfElse(t *testing.T) {
	tu := &cast.TranslationUnit{Decls: []cast.TopLevel{
		&cast.FuncDef{Name: "f", Body: &cast.Compound{Stmts: []cast.Stmt{
			&cast.If{
				Cond: &cast.IntLit{Text: "1"},
				Then: &cast.Return{X: &cast.IntLit{Text: "2"}},
				Else: &cast.Return{X: &cast.IntLit{Text: "3"}},
			},
		}}},
	}}
	src, _, errs := cgen.Generate(tu)
	require.Empty(t, errs)
	assert.Equal(t, tokens("DEF f 1 [ 2 RETURN ] [ 3 RETURN ] IFELSE END"), tokens(src))
}

func TestGenWhileUsesUniqueFlagNames(t *testing.T) {
	tu := &cast.TranslationUnit{Decls: []cast.TopLevel{
		&cast.FuncDef{Name: "f", Body: &cast.Compound{Stmts: []cast.Stmt{
			&cast.While{Cond: &cast.IntLit{Text: "1"}, Body: &cast.Compound{}},
			&cast.While{Cond: &cast.IntLit{Text: "1"}, Body: &cast.Compound{}},
		}}},
	}}
	src, _, errs := cgen.Generate(tu)
	require.Empty(t, errs)
	assert.Contains(t, src, "__BREAK_1")
	assert.Contains(t, src, "__BREAK_3")
	assert.NotEqual(t, "__BREAK_1", "__BREAK_3")
}

func TestGenBreakOutsideLoopErrors(t *testing.T) {
	tu := &cast.TranslationUnit{Decls: []cast.TopLevel{
		&cast.FuncDef{Name: "f", Body: &cast.Compound{Stmts: []cast.Stmt{&cast.Break{}}}},
	}}
	_, _, errs := cgen.Generate(tu)
	require.NotEmpty(t, errs)
}

func TestGenUnsupportedBinaryOperatorErrors(t *testing.T) {
	tu := &cast.TranslationUnit{Decls: []cast.TopLevel{
		&cast.VarDecl{Name: "x", Init: &cast.Binary{Op: "@@", Left: &cast.IntLit{Text: "1"}, Right: &cast.IntLit{Text: "2"}}},
	}}
	_, _, errs := cgen.Generate(tu)
	require.NotEmpty(t, errs)
}

func TestGenLogicalOperatorsMapToWords(t *testing.T) {
	tu := &cast.TranslationUnit{Decls: []cast.TopLevel{
		&cast.VarDecl{Name: "x", Init: &cast.Binary{Op: "&&", Left: &cast.IntLit{Text: "1"}, Right: &cast.IntLit{Text: "0"}}},
	}}
	src, _, errs := cgen.Generate(tu)
	require.Empty(t, errs)
	assert.Equal(t, tokens("VAR x 1 0 AND x SWAP STORE"), tokens(src))
}

func TestGenStringLiteralQuoting(t *testing.T) {
	tu := &cast.TranslationUnit{Decls: []cast.TopLevel{
		&cast.VarDecl{Name: "x", Init: &cast.StringLit{Value: `has "quote"`}},
	}}
	src, _, errs := cgen.Generate(tu)
	require.Empty(t, errs)
	assert.Contains(t, src, `'has "quote"'`)
}
