package interp

import (
	"math"

	"github.com/sayakbrahmachari/struix/value"
)

// pop2 pops the top two values of the active stack, returning them in
// push order (a below b): every binary word's contract is ( a b -- r ),
// so b (pushed last) comes off first.
func pop2(it *Interp, word string) (a, b value.Value, err error) {
	b, ok := it.scopes.Pop()
	if !ok {
		return value.Value{}, value.Value{}, &ErrUnderflow{Word: word, Need: 2, Have: 0}
	}
	a, ok = it.scopes.Pop()
	if !ok {
		return value.Value{}, value.Value{}, &ErrUnderflow{Word: word, Need: 2, Have: 1}
	}
	return a, b, nil
}

func binWord(name string, fn func(it *Interp, a, b value.Value) (value.Value, error)) *BuiltinWord {
	return &BuiltinWord{WordName: name, Fn: func(it *Interp) error {
		a, b, err := pop2(it, name)
		if err != nil {
			return err
		}
		r, err := fn(it, a, b)
		if err != nil {
			return err
		}
		it.scopes.Push(r)
		return nil
	}}
}

func bothNumeric(word string, a, b value.Value) error {
	if !a.IsNumeric() || !b.IsNumeric() {
		return &ErrType{Word: word, Want: "numeric", Got: a.Kind.String() + "/" + b.Kind.String()}
	}
	return nil
}

func bothInt(word string, a, b value.Value) error {
	if a.Kind != value.Int || b.Kind != value.Int {
		return &ErrType{Word: word, Want: "int", Got: a.Kind.String() + "/" + b.Kind.String()}
	}
	return nil
}

// arithWords returns the arithmetic, bitwise, comparison, and logical
// binary operators, plus the unary NOT/BITNOT and the TRUE/FALSE
// literals, implemented as a static operator-dispatch table keyed by
// symbol rather than a text-based eval-by-name dispatch.
func arithWords() map[string]value.Word {
	words := map[string]value.Word{
		"+": binWord("+", func(it *Interp, a, b value.Value) (value.Value, error) {
			if err := bothNumeric("+", a, b); err != nil {
				return value.Value{}, err
			}
			if a.Kind == value.Int && b.Kind == value.Int {
				return value.NewInt(a.Int() + b.Int()), nil
			}
			return value.NewFloat(a.AsFloat() + b.AsFloat()), nil
		}),
		"-": binWord("-", func(it *Interp, a, b value.Value) (value.Value, error) {
			if err := bothNumeric("-", a, b); err != nil {
				return value.Value{}, err
			}
			if a.Kind == value.Int && b.Kind == value.Int {
				return value.NewInt(a.Int() - b.Int()), nil
			}
			return value.NewFloat(a.AsFloat() - b.AsFloat()), nil
		}),
		"*": binWord("*", func(it *Interp, a, b value.Value) (value.Value, error) {
			if err := bothNumeric("*", a, b); err != nil {
				return value.Value{}, err
			}
			if a.Kind == value.Int && b.Kind == value.Int {
				return value.NewInt(a.Int() * b.Int()), nil
			}
			return value.NewFloat(a.AsFloat() * b.AsFloat()), nil
		}),
		"**": binWord("**", func(it *Interp, a, b value.Value) (value.Value, error) {
			if err := bothNumeric("**", a, b); err != nil {
				return value.Value{}, err
			}
			if a.Kind == value.Int && b.Kind == value.Int && b.Int() >= 0 {
				r := int64(1)
				base := a.Int()
				for n := b.Int(); n > 0; n-- {
					r *= base
				}
				return value.NewInt(r), nil
			}
			return value.NewFloat(math.Pow(a.AsFloat(), b.AsFloat())), nil
		}),
		"/": binWord("/", func(it *Interp, a, b value.Value) (value.Value, error) {
			if err := bothNumeric("/", a, b); err != nil {
				return value.Value{}, err
			}
			return value.NewFloat(a.AsFloat() / b.AsFloat()), nil
		}),
		"//": binWord("//", func(it *Interp, a, b value.Value) (value.Value, error) {
			if err := bothNumeric("//", a, b); err != nil {
				return value.Value{}, err
			}
			if a.Kind == value.Int && b.Kind == value.Int {
				q := a.Int() / b.Int()
				if (a.Int()%b.Int() != 0) && ((a.Int() < 0) != (b.Int() < 0)) {
					q--
				}
				return value.NewInt(q), nil
			}
			return value.NewFloat(math.Floor(a.AsFloat() / b.AsFloat())), nil
		}),
		"%": binWord("%", func(it *Interp, a, b value.Value) (value.Value, error) {
			if err := bothNumeric("%", a, b); err != nil {
				return value.Value{}, err
			}
			if a.Kind == value.Int && b.Kind == value.Int {
				m := a.Int() % b.Int()
				if m != 0 && (m < 0) != (b.Int() < 0) {
					m += b.Int()
				}
				return value.NewInt(m), nil
			}
			return value.NewFloat(math.Mod(a.AsFloat(), b.AsFloat())), nil
		}),
		"<<": binWord("<<", func(it *Interp, a, b value.Value) (value.Value, error) {
			if err := bothInt("<<", a, b); err != nil {
				return value.Value{}, err
			}
			return value.NewInt(a.Int() << uint(b.Int())), nil
		}),
		">>": binWord(">>", func(it *Interp, a, b value.Value) (value.Value, error) {
			if err := bothInt(">>", a, b); err != nil {
				return value.Value{}, err
			}
			return value.NewInt(a.Int() >> uint(b.Int())), nil
		}),
		"&": binWord("&", func(it *Interp, a, b value.Value) (value.Value, error) {
			if err := bothInt("&", a, b); err != nil {
				return value.Value{}, err
			}
			return value.NewInt(a.Int() & b.Int()), nil
		}),
		"|": binWord("|", func(it *Interp, a, b value.Value) (value.Value, error) {
			if err := bothInt("|", a, b); err != nil {
				return value.Value{}, err
			}
			return value.NewInt(a.Int() | b.Int()), nil
		}),
		"^": binWord("^", func(it *Interp, a, b value.Value) (value.Value, error) {
			if err := bothInt("^", a, b); err != nil {
				return value.Value{}, err
			}
			return value.NewInt(a.Int() ^ b.Int()), nil
		}),
		"<":  binWord("<", cmpOp("<", func(c int) bool { return c < 0 })),
		">":  binWord(">", cmpOp(">", func(c int) bool { return c > 0 })),
		"<=": binWord("<=", cmpOp("<=", func(c int) bool { return c <= 0 })),
		">=": binWord(">=", cmpOp(">=", func(c int) bool { return c >= 0 })),
		"==": binWord("==", func(it *Interp, a, b value.Value) (value.Value, error) {
			return value.NewBool(valueEqual(a, b)), nil
		}),
		"!=": binWord("!=", func(it *Interp, a, b value.Value) (value.Value, error) {
			return value.NewBool(!valueEqual(a, b)), nil
		}),
		"AND": binWord("AND", func(it *Interp, a, b value.Value) (value.Value, error) {
			return value.NewBool(a.Truthy() && b.Truthy()), nil
		}),
		"OR": binWord("OR", func(it *Interp, a, b value.Value) (value.Value, error) {
			return value.NewBool(a.Truthy() || b.Truthy()), nil
		}),
		"IN": binWord("IN", func(it *Interp, a, b value.Value) (value.Value, error) {
			switch b.Kind {
			case value.List:
				for _, e := range b.List() {
					if valueEqual(a, e) {
						return value.NewBool(true), nil
					}
				}
				return value.NewBool(false), nil
			case value.Str:
				if a.Kind != value.Str {
					return value.Value{}, &ErrType{Word: "IN", Want: "string", Got: a.Kind.String()}
				}
				return value.NewBool(containsStr(b.Str(), a.Str())), nil
			default:
				return value.Value{}, &ErrType{Word: "IN", Want: "list or string", Got: b.Kind.String()}
			}
		}),
		"IS": binWord("IS", func(it *Interp, a, b value.Value) (value.Value, error) {
			return value.NewBool(valueIs(a, b)), nil
		}),
		"NOT": &BuiltinWord{WordName: "NOT", Fn: func(it *Interp) error {
			v, ok := it.scopes.Pop()
			if !ok {
				return &ErrUnderflow{Word: "NOT", Need: 1, Have: 0}
			}
			it.scopes.Push(value.NewBool(!v.Truthy()))
			return nil
		}},
		"BITNOT": &BuiltinWord{WordName: "BITNOT", Fn: func(it *Interp) error {
			v, ok := it.scopes.Pop()
			if !ok {
				return &ErrUnderflow{Word: "BITNOT", Need: 1, Have: 0}
			}
			if v.Kind != value.Int {
				return &ErrType{Word: "BITNOT", Want: "int", Got: v.Kind.String()}
			}
			it.scopes.Push(value.NewInt(^v.Int()))
			return nil
		}},
		"NEGATE": &BuiltinWord{WordName: "NEGATE", Fn: func(it *Interp) error {
			v, ok := it.scopes.Pop()
			if !ok {
				return &ErrUnderflow{Word: "NEGATE", Need: 1, Have: 0}
			}
			if !v.IsNumeric() {
				return &ErrType{Word: "NEGATE", Want: "numeric", Got: v.Kind.String()}
			}
			if v.Kind == value.Int {
				it.scopes.Push(value.NewInt(-v.Int()))
			} else {
				it.scopes.Push(value.NewFloat(-v.AsFloat()))
			}
			return nil
		}},
	}
	words["TRUE"] = &BuiltinWord{WordName: "TRUE", Imm: true, Fn: func(it *Interp) error {
		return it.Interpret(value.NewBool(true))
	}}
	words["FALSE"] = &BuiltinWord{WordName: "FALSE", Imm: true, Fn: func(it *Interp) error {
		return it.Interpret(value.NewBool(false))
	}}
	return words
}

func cmpOp(word string, test func(c int) bool) func(it *Interp, a, b value.Value) (value.Value, error) {
	return func(it *Interp, a, b value.Value) (value.Value, error) {
		switch {
		case a.IsNumeric() && b.IsNumeric():
			af, bf := a.AsFloat(), b.AsFloat()
			c := 0
			if af < bf {
				c = -1
			} else if af > bf {
				c = 1
			}
			return value.NewBool(test(c)), nil
		case a.Kind == value.Str && b.Kind == value.Str:
			c := 0
			if a.Str() < b.Str() {
				c = -1
			} else if a.Str() > b.Str() {
				c = 1
			}
			return value.NewBool(test(c)), nil
		default:
			return value.Value{}, &ErrType{Word: word, Want: "numeric or string", Got: a.Kind.String() + "/" + b.Kind.String()}
		}
	}
}

func containsStr(haystack, needle string) bool {
	if len(needle) == 0 {
		return true
	}
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if haystack[i:i+len(needle)] == needle {
			return true
		}
	}
	return false
}

// valueEqual is structural equality: numeric kinds compare by value
// across Int/Float, and lists compare elementwise.
func valueEqual(a, b value.Value) bool {
	if a.IsNumeric() && b.IsNumeric() {
		return a.AsFloat() == b.AsFloat()
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case value.Bool:
		return a.Bool() == b.Bool()
	case value.Str:
		return a.Str() == b.Str()
	case value.List:
		al, bl := a.List(), b.List()
		if len(al) != len(bl) {
			return false
		}
		for i := range al {
			if !valueEqual(al[i], bl[i]) {
				return false
			}
		}
		return true
	case value.VarRef:
		return a.VarRef() == b.VarRef()
	case value.WordRef:
		return a.WordRef() == b.WordRef()
	default:
		return false
	}
}

// valueIs is identity comparison: for references (VarRef/WordRef) it is
// pointer identity; otherwise it falls back to structural equality.
func valueIs(a, b value.Value) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case value.VarRef:
		return a.VarRef() == b.VarRef()
	case value.WordRef:
		return a.WordRef() == b.WordRef()
	default:
		return valueEqual(a, b)
	}
}
