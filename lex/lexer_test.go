package lex_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sayakbrahmachari/struix/lex"
)

func TestPeekDoesNotAdvance(t *testing.T) {
	l := lex.New("<t>", "foo bar")
	assert.Equal(t, "foo", l.PeekWord())
	assert.Equal(t, "foo", l.PeekWord())
	assert.Equal(t, "foo", l.NextWord())
	assert.Equal(t, "bar", l.NextWord())
	assert.Equal(t, "", l.NextWord())
}

func TestLineColumnTracking(t *testing.T) {
	l := lex.New("<t>", "a\nbb ccc")
	require.Equal(t, 1, l.Line())
	require.Equal(t, 1, l.Col())

	assert.Equal(t, "a", l.NextWord())
	assert.Equal(t, 2, l.Line())

	assert.Equal(t, "bb", l.NextWord())
	assert.Equal(t, 2, l.Line())
	assert.Equal(t, 4, l.Col())

	assert.Equal(t, "ccc", l.NextWord())
}

func TestCharsTill(t *testing.T) {
	l := lex.New("<t>", `hello" world`)
	s, err := l.CharsTill('"')
	require.NoError(t, err)
	assert.Equal(t, "hello", s)
	assert.Equal(t, "world", l.NextWord())
}

func TestCharsTillUnterminated(t *testing.T) {
	l := lex.New("<t>", "hello")
	_, err := l.CharsTill('"')
	require.Error(t, err)
	assert.ErrorIs(t, err, lex.ErrUnterminated)
}

func TestCharsTillMultiline(t *testing.T) {
	l := lex.New("<t>", "line one\nline two\"\"\" rest")
	s, err := l.CharsTillMultiline(`"""`)
	require.NoError(t, err)
	assert.Equal(t, "line one\nline two", s)
	assert.Equal(t, "rest", l.NextWord())
}

func TestClearLineAndClear(t *testing.T) {
	l := lex.New("<t>", "junk to end of line\nreal")
	l.ClearLine()
	assert.Equal(t, "real", l.NextWord())

	l2 := lex.New("<t>", "a b c")
	l2.Clear()
	assert.True(t, l2.AtEOF())
	assert.Equal(t, "", l2.NextWord())
}

func TestAtEOF(t *testing.T) {
	l := lex.New("<t>", "   ")
	assert.True(t, l.AtEOF())

	l2 := lex.New("<t>", "x")
	assert.False(t, l2.AtEOF())
}
