// Package value implements the tagged-union Value type that flows across
// struix data stacks, plus the mutable Cell used by VAR.
package value

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind discriminates the variants of Value.
type Kind uint8

// The kinds of Value. ConstRef from the data model is not a distinct
// runtime Kind: per the Design Notes, a constant's bound word pushes its
// snapshotted value directly rather than any wrapper, so on the stack a
// constant's value always already carries one of the kinds below.
const (
	Int Kind = iota
	Float
	Bool
	Str
	List
	WordRef
	VarRef
)

func (k Kind) String() string {
	switch k {
	case Int:
		return "int"
	case Float:
		return "float"
	case Bool:
		return "bool"
	case Str:
		return "string"
	case List:
		return "list"
	case WordRef:
		return "word"
	case VarRef:
		return "var"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Word is the minimal surface a callable must provide to ride inside a
// Value. The invocation itself lives in package interp, which defines the
// concrete implementations; this narrow interface exists only to let
// Value carry a WordRef without importing interp (which imports value).
type Word interface {
	Name() string
	Immediate() bool
}

// Cell is a mutable, named storage location. VAR allocates a Cell and
// binds its name to a word that pushes a VarRef to it; STORE/FETCH act
// through that reference.
type Cell struct {
	Name string
	Val  Value
}

// Value is the tagged union of everything that may sit on a data stack.
type Value struct {
	Kind Kind

	i int64
	f float64
	b bool
	s string
	l []Value
	w Word
	v *Cell
}

// NewInt builds an integer Value.
func NewInt(i int64) Value { return Value{Kind: Int, i: i} }

// NewFloat builds a floating-point Value.
func NewFloat(f float64) Value { return Value{Kind: Float, f: f} }

// NewBool builds a boolean Value.
func NewBool(b bool) Value { return Value{Kind: Bool, b: b} }

// NewStr builds a string Value.
func NewStr(s string) Value { return Value{Kind: Str, s: s} }

// NewList builds a list Value from the given elements (copied).
func NewList(items []Value) Value {
	l := make([]Value, len(items))
	copy(l, items)
	return Value{Kind: List, l: l}
}

// NewWordRef builds a word-reference Value.
func NewWordRef(w Word) Value { return Value{Kind: WordRef, w: w} }

// NewVarRef builds a variable-reference Value pointing at cell.
func NewVarRef(cell *Cell) Value { return Value{Kind: VarRef, v: cell} }

// Int returns the integer payload; it is the caller's responsibility to
// check Kind first.
func (v Value) Int() int64 { return v.i }

// Float returns the float payload.
func (v Value) Float() float64 { return v.f }

// Bool returns the boolean payload.
func (v Value) Bool() bool { return v.b }

// Str returns the string payload.
func (v Value) Str() string { return v.s }

// List returns the list payload. The returned slice is shared; callers
// must not mutate it in place (build a new list with NewList instead).
func (v Value) List() []Value { return v.l }

// WordRef returns the word payload.
func (v Value) WordRef() Word { return v.w }

// VarRef returns the variable-cell payload.
func (v Value) VarRef() *Cell { return v.v }

// IsNumeric reports whether v is Int or Float.
func (v Value) IsNumeric() bool { return v.Kind == Int || v.Kind == Float }

// AsFloat promotes an Int or Float Value to float64, per the numeric
// promotion rules of the arithmetic operator table.
func (v Value) AsFloat() float64 {
	if v.Kind == Int {
		return float64(v.i)
	}
	return v.f
}

// Truthy reports whether v should be treated as true by IFTRUE/IFFALSE/
// WHILE/DOWHILE conditions.
func (v Value) Truthy() bool {
	switch v.Kind {
	case Bool:
		return v.b
	case Int:
		return v.i != 0
	case Float:
		return v.f != 0
	case Str:
		return v.s != ""
	case List:
		return len(v.l) > 0
	default:
		return true
	}
}

// String renders v the way PRINT and PSTACK do.
func (v Value) String() string {
	switch v.Kind {
	case Int:
		return strconv.FormatInt(v.i, 10)
	case Float:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case Bool:
		if v.b {
			return "true"
		}
		return "false"
	case Str:
		return v.s
	case List:
		parts := make([]string, len(v.l))
		for i, e := range v.l {
			parts[i] = e.String()
		}
		return "[ " + strings.Join(parts, " ") + " ]"
	case WordRef:
		if v.w != nil {
			return "<word " + v.w.Name() + ">"
		}
		return "<word>"
	case VarRef:
		if v.v != nil {
			return "<var " + v.v.Name + ">"
		}
		return "<var>"
	default:
		return "<?>"
	}
}

// Stack is a LIFO sequence of Values; it backs each open scope's data
// stack.
type Stack []Value

// Push appends a value to the top of the stack.
func (s *Stack) Push(v Value) { *s = append(*s, v) }

// Pop removes and returns the top value. ok is false if the stack is
// empty.
func (s *Stack) Pop() (v Value, ok bool) {
	n := len(*s)
	if n == 0 {
		return Value{}, false
	}
	v = (*s)[n-1]
	*s = (*s)[:n-1]
	return v, true
}

// Top returns the top value without removing it.
func (s Stack) Top() (v Value, ok bool) {
	if len(s) == 0 {
		return Value{}, false
	}
	return s[len(s)-1], true
}

// Len returns the number of values on the stack.
func (s Stack) Len() int { return len(s) }

// Snapshot returns a copy of the stack's contents, bottom to top.
func (s Stack) Snapshot() []Value {
	out := make([]Value, len(s))
	copy(out, s)
	return out
}
