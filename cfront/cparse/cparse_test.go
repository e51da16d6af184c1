package cparse_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sayakbrahmachari/struix/cfront/cast"
	"github.com/sayakbrahmachari/struix/cfront/cparse"
)

func parseOK(t *testing.T, src string) *cast.TranslationUnit {
	t.Helper()
	tu, errs := cparse.Parse(src)
	require.Empty(t, errs)
	return tu
}

func TestParseSimpleFuncDef(t *testing.T) {
	tu := parseOK(t, `int add(int a, int b) { return a + b; }`)
	require.Len(t, tu.Decls, 1)

	want := &cast.FuncDef{
		Name:    "add",
		RetType: "int",
		Params: []cast.Param{
			{Name: "a", Type: "int"},
			{Name: "b", Type: "int"},
		},
		Body: &cast.Compound{Stmts: []cast.Stmt{
			&cast.Return{X: &cast.Binary{
				Op:   "+",
				Left: &cast.Ident{Name: "a"},
				Right: &cast.Ident{Name: "b"},
			}},
		}},
	}
	if diff := cmp.Diff(want, tu.Decls[0]); diff != "" {
		t.Errorf("parsed func def mismatch (-want +got):\n%s", diff)
	}
}

func TestParseVarDeclWithInit(t *testing.T) {
	tu := parseOK(t, `int x = 5;`)
	require.Len(t, tu.Decls, 1)
	want := &cast.VarDecl{Name: "x", Type: "int", Init: &cast.IntLit{Text: "5"}}
	if diff := cmp.Diff(want, tu.Decls[0]); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestParseArrayDecl(t *testing.T) {
	tu := parseOK(t, `int buf[10];`)
	d := tu.Decls[0].(*cast.VarDecl)
	assert.True(t, d.IsArray)
	assert.Equal(t, 10, d.ArrayN)
}

func TestParseCompoundAssignDesugars(t *testing.T) {
	tu := parseOK(t, `int f() { int x; x += 3; }`)
	fd := tu.Decls[0].(*cast.FuncDef)
	stmt := fd.Body.Stmts[1].(*cast.ExprStmt)
	assign := stmt.X.(*cast.Assign)
	bin := assign.Value.(*cast.Binary)
	assert.Equal(t, "+", bin.Op)
	assert.Equal(t, &cast.Ident{Name: "x"}, assign.Target)
}

func TestParseCastVsParenDisambiguation(t *testing.T) {
	tu := parseOK(t, `int f() { int x; x = (int)1; x = (x + 1); }`)
	fd := tu.Decls[0].(*cast.FuncDef)

	castAssign := fd.Body.Stmts[1].(*cast.ExprStmt).X.(*cast.Assign)
	c, ok := castAssign.Value.(*cast.Cast)
	require.True(t, ok, "expected a Cast node")
	assert.Equal(t, "int", c.Type)

	parenAssign := fd.Body.Stmts[2].(*cast.ExprStmt).X.(*cast.Assign)
	_, ok = parenAssign.Value.(*cast.Binary)
	require.True(t, ok, "expected a parenthesized Binary expression, not a Cast")
}

func TestParseIfElse(t *testing.T) {
	tu := parseOK(t, `int f() { if (1) return 2; else return 3; }`)
	fd := tu.Decls[0].(*cast.FuncDef)
	ifs := fd.Body.Stmts[0].(*cast.If)
	assert.NotNil(t, ifs.Then)
	assert.NotNil(t, ifs.Else)
}

func TestParseForLoop(t *testing.T) {
	tu := parseOK(t, `int f() { int i; for (i = 0; i < 10; i = i + 1) { } }`)
	fd := tu.Decls[0].(*cast.FuncDef)
	fr := fd.Body.Stmts[1].(*cast.For)
	assert.NotNil(t, fr.Init)
	assert.NotNil(t, fr.Cond)
	assert.NotNil(t, fr.Post)
}

func TestParseSwitch(t *testing.T) {
	tu := parseOK(t, `int f() { switch (1) { case 1: break; default: break; } }`)
	fd := tu.Decls[0].(*cast.FuncDef)
	sw := fd.Body.Stmts[0].(*cast.Switch)
	require.Len(t, sw.Cases, 2)
	assert.False(t, sw.Cases[0].IsDefault)
	assert.True(t, sw.Cases[1].IsDefault)
}

func TestParseErrorRecoverySkipsToNextStatement(t *testing.T) {
	_, errs := cparse.Parse(`int f() { ) ; return 1; }`)
	assert.NotEmpty(t, errs)
}

func TestParseCallExpression(t *testing.T) {
	tu := parseOK(t, `int f() { return add(1, 2); }`)
	fd := tu.Decls[0].(*cast.FuncDef)
	ret := fd.Body.Stmts[0].(*cast.Return)
	call := ret.X.(*cast.Call)
	assert.Equal(t, "add", call.Fn)
	assert.Len(t, call.Args, 2)
}
