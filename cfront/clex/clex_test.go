package clex_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sayakbrahmachari/struix/cfront/clex"
)

func tokenTexts(src string) []string {
	l := clex.New(src)
	var out []string
	for {
		tok := l.Next()
		if tok.Kind == clex.EOF {
			return out
		}
		out = append(out, tok.Text)
	}
}

func TestIdentsAndKeywords(t *testing.T) {
	assert.Equal(t, []string{"int", "x", "=", "1", ";"}, tokenTexts("int x = 1;"))
	assert.True(t, clex.Keywords["return"])
	assert.False(t, clex.Keywords["foo"])
}

func TestCommentsStripped(t *testing.T) {
	assert.Equal(t, []string{"int", "x", ";"}, tokenTexts("int /* decl */ x; // trailing\n"))
}

func TestMultiCharPunctuation(t *testing.T) {
	assert.Equal(t, []string{"a", "+=", "1", "<<=", "2", "==", "b"}, tokenTexts("a += 1 <<= 2 == b"))
}

func TestNumberLexing(t *testing.T) {
	l := clex.New("42 3.14 1e10 10UL")
	tok := l.Next()
	assert.Equal(t, clex.Int, tok.Kind)
	assert.Equal(t, "42", tok.Text)

	tok = l.Next()
	assert.Equal(t, clex.Float, tok.Kind)
	assert.Equal(t, "3.14", tok.Text)

	tok = l.Next()
	assert.Equal(t, clex.Float, tok.Kind)
	assert.Equal(t, "1e10", tok.Text)

	tok = l.Next()
	assert.Equal(t, clex.Int, tok.Kind)
	assert.Equal(t, "10", tok.Text)
}

func TestQuotedLiterals(t *testing.T) {
	l := clex.New(`"hi\n" 'a' '\n'`)
	tok := l.Next()
	assert.Equal(t, clex.String, tok.Kind)
	assert.Equal(t, `hi\n`, tok.Text)

	tok = l.Next()
	assert.Equal(t, clex.Char, tok.Kind)
	assert.Equal(t, "a", tok.Text)

	tok = l.Next()
	assert.Equal(t, clex.Char, tok.Kind)
	assert.Equal(t, `\n`, tok.Text)
}

func TestDecodeEscapes(t *testing.T) {
	assert.Equal(t, "\n", clex.DecodeEscapes(`\n`))
	assert.Equal(t, "\t", clex.DecodeEscapes(`\t`))
	assert.Equal(t, "\\", clex.DecodeEscapes(`\\`))
	assert.Equal(t, "a\nb", clex.DecodeEscapes(`a\nb`))
}

func TestSaveRestore(t *testing.T) {
	l := clex.New("a b c")
	first := l.Next()
	assert.Equal(t, "a", first.Text)

	mark := l.Save()
	second := l.Next()
	assert.Equal(t, "b", second.Text)

	l.Restore(mark)
	replay := l.Next()
	assert.Equal(t, "b", replay.Text)
}
