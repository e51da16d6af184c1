package dict_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sayakbrahmachari/struix/dict"
	"github.com/sayakbrahmachari/struix/value"
)

type fakeWord struct {
	name      string
	immediate bool
}

func (w fakeWord) Name() string      { return w.name }
func (w fakeWord) Immediate() bool   { return w.immediate }

func TestLookupCaseInsensitive(t *testing.T) {
	s := dict.New()
	s.AddWords(map[string]value.Word{"dup": fakeWord{name: "DUP"}})

	w, ok := s.Lookup("Dup")
	require.True(t, ok)
	assert.Equal(t, "DUP", w.Name())

	_, ok = s.Lookup("missing")
	assert.False(t, ok)
}

func TestNestedScopeShadowing(t *testing.T) {
	s := dict.New()
	s.Define("x", fakeWord{name: "outer"}, false)

	s.NewBlockScope()
	s.Define("x", fakeWord{name: "inner"}, false)

	w, _ := s.Lookup("x")
	assert.Equal(t, "inner", w.Name())

	_, err := s.PopScope()
	require.NoError(t, err)

	w, _ = s.Lookup("x")
	assert.Equal(t, "outer", w.Name())
}

func TestDefineGlobalOverwritesNearestMatch(t *testing.T) {
	s := dict.New()
	s.Define("x", fakeWord{name: "v1"}, false)
	s.NewBlockScope()

	// global=true should walk outward and find the existing "x" in the
	// parent scope rather than shadow it locally.
	s.Define("x", fakeWord{name: "v2"}, true)

	w, _ := s.Lookup("x")
	assert.Equal(t, "v2", w.Name())

	_, err := s.PopScope()
	require.NoError(t, err)
	w, _ = s.Lookup("x")
	assert.Equal(t, "v2", w.Name(), "global define should have updated the outer scope")
}

func TestScopeNestingDepth(t *testing.T) {
	s := dict.New()
	require.Equal(t, 1, s.Depth())

	for i := 0; i < 5; i++ {
		s.NewAOTScope()
	}
	assert.Equal(t, 6, s.Depth())

	for i := 0; i < 5; i++ {
		_, err := s.PopScope()
		require.NoError(t, err)
	}
	assert.Equal(t, 1, s.Depth())
}

func TestPopScopeUnderflow(t *testing.T) {
	s := dict.New()
	_, err := s.PopScope()
	assert.ErrorIs(t, err, dict.ErrScopeUnderflow)
}

func TestIsCompiling(t *testing.T) {
	s := dict.New()
	assert.False(t, s.IsCompiling())
	s.NewAOTScope()
	assert.True(t, s.IsCompiling())
	s.NewBlockScope()
	assert.False(t, s.IsCompiling())
}

func TestDataStackPerScope(t *testing.T) {
	s := dict.New()
	s.Push(value.NewInt(1))
	s.NewBlockScope()
	s.Push(value.NewInt(2))
	assert.Equal(t, 1, s.StackLen())

	popped, err := s.PopScope()
	require.NoError(t, err)
	require.Len(t, popped, 1)
	assert.Equal(t, int64(2), popped[0].Int())

	assert.Equal(t, 1, s.StackLen())
}

func TestPopEnclosing(t *testing.T) {
	s := dict.New()
	s.Push(value.NewInt(99))
	s.NewBlockScope()

	v, ok := s.PopEnclosing()
	require.True(t, ok)
	assert.Equal(t, int64(99), v.Int())

	_, ok = s.PopEnclosing()
	assert.False(t, ok, "only one scope below, already drained")
}
