package value_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sayakbrahmachari/struix/value"
)

func TestStackPushPop(t *testing.T) {
	var s value.Stack
	s.Push(value.NewInt(1))
	s.Push(value.NewInt(2))
	require.Equal(t, 2, s.Len())

	top, ok := s.Pop()
	require.True(t, ok)
	assert.Equal(t, int64(2), top.Int())

	top, ok = s.Pop()
	require.True(t, ok)
	assert.Equal(t, int64(1), top.Int())

	_, ok = s.Pop()
	assert.False(t, ok, "pop from empty stack should fail, not panic")
}

func TestListRoundTrip(t *testing.T) {
	items := []value.Value{value.NewInt(10), value.NewInt(20), value.NewInt(30)}
	l := value.NewList(items)
	require.Equal(t, value.List, l.Kind)
	require.Len(t, l.List(), 3)
	for i, want := range []int64{10, 20, 30} {
		assert.Equal(t, want, l.List()[i].Int())
	}
}

func TestTruthy(t *testing.T) {
	cases := []struct {
		name string
		v    value.Value
		want bool
	}{
		{"true bool", value.NewBool(true), true},
		{"false bool", value.NewBool(false), false},
		{"nonzero int", value.NewInt(1), true},
		{"zero int", value.NewInt(0), false},
		{"zero float", value.NewFloat(0), false},
		{"empty string", value.NewStr(""), false},
		{"nonempty string", value.NewStr("x"), true},
		{"empty list", value.NewList(nil), false},
		{"nonempty list", value.NewList([]value.Value{value.NewInt(1)}), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.v.Truthy())
		})
	}
}

func TestVarRefStoreFetch(t *testing.T) {
	cell := &value.Cell{Name: "x"}
	ref := value.NewVarRef(cell)
	require.Equal(t, value.VarRef, ref.Kind)

	cell.Val = value.NewInt(42)
	assert.Equal(t, int64(42), ref.VarRef().Val.Int())
}

func TestNumericPromotion(t *testing.T) {
	i := value.NewInt(3)
	f := value.NewFloat(1.5)
	assert.True(t, i.IsNumeric())
	assert.True(t, f.IsNumeric())
	assert.Equal(t, 3.0, i.AsFloat())
	assert.Equal(t, 1.5, f.AsFloat())
}

func TestPrintString(t *testing.T) {
	assert.Equal(t, "7", value.NewInt(7).String())
	assert.Equal(t, "true", value.NewBool(true).String())
	l := value.NewList([]value.Value{value.NewInt(1), value.NewInt(2)})
	assert.Equal(t, "[ 1 2 ]", l.String())
}
