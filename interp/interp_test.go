package interp_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sayakbrahmachari/struix/interp"
)

func run(t *testing.T, src string) string {
	t.Helper()
	var out bytes.Buffer
	it := interp.New(interp.WithOutput(&out))
	err := it.Run(context.Background(), "<test>", src)
	require.NoError(t, err)
	return out.String()
}

func TestArithmeticAndPrint(t *testing.T) {
	assert.Equal(t, "7\n", run(t, "3 4 + PRINT"))
}

func TestVariableStoreFetch(t *testing.T) {
	assert.Equal(t, "5\n", run(t, "VAR x 5 x SWAP STORE x FETCH PRINT"))
}

func TestUserWordWithParam(t *testing.T) {
	assert.Equal(t, "36\n", run(t, "DEF sq VAR n n PARAM n FETCH n FETCH * END 6 sq PRINT"))
}

func TestConstRebindRefused(t *testing.T) {
	var out bytes.Buffer
	it := interp.New(interp.WithOutput(&out))
	err := it.Run(context.Background(), "<test>", "CONST FOO 1 CONST FOO 2")
	require.Error(t, err)
}

func TestListRoundTrip(t *testing.T) {
	assert.Equal(t, "3\n", run(t, "[ 1 2 3 ] LENGTH PRINT"))
	assert.Equal(t, "20\n", run(t, "[ 10 20 30 ] 1 ITEM PRINT"))
}

func TestWhileLoop(t *testing.T) {
	src := `VAR i 0 i SWAP STORE
		[ i FETCH 5 < ]
		[ i FETCH PRINT i FETCH 1 + i SWAP STORE ]
		WHILE`
	assert.Equal(t, "0\n1\n2\n3\n4\n", run(t, src))
}

func TestTimesLoop(t *testing.T) {
	assert.Equal(t, "hi\nhi\nhi\n", run(t, `[ "hi" PRINT ] 3 TIMES`))
}

func TestIfElse(t *testing.T) {
	assert.Equal(t, "yes\n", run(t, `TRUE [ "yes" PRINT ] [ "no" PRINT ] IFELSE`))
	assert.Equal(t, "no\n", run(t, `FALSE [ "yes" PRINT ] [ "no" PRINT ] IFELSE`))
}

func TestScopeIsolation(t *testing.T) {
	// a word's locals must not leak into the caller's dictionary.
	src := `DEF f VAR n 1 n SWAP STORE END f`
	var out bytes.Buffer
	it := interp.New(interp.WithOutput(&out))
	err := it.Run(context.Background(), "<test>", src+" n")
	require.Error(t, err, "n should not be visible outside f's body")
}

func TestReturnEarly(t *testing.T) {
	src := `DEF f TRUE [ 42 RETURN ] IFTRUE 99 END f PRINT`
	assert.Equal(t, "42\n", run(t, src))
}

func TestUnknownWordIsPositioned(t *testing.T) {
	var out bytes.Buffer
	it := interp.New(interp.WithOutput(&out))
	err := it.Run(context.Background(), "<test>", "1 2 BOGUS")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "<test>")
}

func TestStackUnderflow(t *testing.T) {
	var out bytes.Buffer
	it := interp.New(interp.WithOutput(&out))
	err := it.Run(context.Background(), "<test>", "+")
	require.Error(t, err)
}

func TestDeterministicReplay(t *testing.T) {
	src := "2 3 * PRINT"
	assert.Equal(t, run(t, src), run(t, src))
}

func TestRuneLiteralCompilesToCodepoint(t *testing.T) {
	assert.Equal(t, "65\n", run(t, "'A' PRINT"))
	assert.Equal(t, "10\n", run(t, `'\n' PRINT`))
	assert.Equal(t, "hi\n", run(t, `"hi" PRINT`))
}

func TestPStackTopToBottom(t *testing.T) {
	assert.Equal(t, " -> 3\n -> 2\n -> 1\n", run(t, "1 2 3 PSTACK"))
}

func TestBooleanLiteralsSurviveCompileMode(t *testing.T) {
	assert.Equal(t, "true\n", run(t, "[ TRUE ] 0 ITEM PRINT"))
	assert.Equal(t, "false\n", run(t, "[ FALSE ] 0 ITEM PRINT"))
}

func TestImportLoadsLibrary(t *testing.T) {
	var out bytes.Buffer
	it := interp.New(interp.WithOutput(&out), interp.WithLibDir("../lib"))
	err := it.Run(context.Background(), "<test>", `
		IMPORT math
		3 ABS PRINT
		-3 ABS PRINT
		2 7 MAX PRINT
		2 7 MIN PRINT
		6 SQUARE PRINT
	`)
	require.NoError(t, err)
	assert.Equal(t, "3\n3\n7\n2\n36\n", out.String())
}
