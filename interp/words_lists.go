package interp

import "github.com/sayakbrahmachari/struix/value"

// listWords returns `[`, `]`, LENGTH, ITEM, and STORE_ITEM: list
// construction and access.
func listWords() map[string]value.Word {
	return map[string]value.Word{
		"[": &BuiltinWord{WordName: "[", Imm: true, Fn: func(it *Interp) error {
			it.scopes.NewAOTScope()
			return nil
		}},
		"]": &BuiltinWord{WordName: "]", Imm: true, Fn: func(it *Interp) error {
			items, err := it.scopes.PopScope()
			if err != nil {
				return err
			}
			return it.Interpret(value.NewList(items))
		}},
		"LENGTH": &BuiltinWord{WordName: "LENGTH", Fn: func(it *Interp) error {
			l, ok := it.scopes.Pop()
			if !ok {
				return &ErrUnderflow{Word: "LENGTH", Need: 1, Have: 0}
			}
			if l.Kind != value.List {
				return &ErrType{Word: "LENGTH", Want: "list", Got: l.Kind.String()}
			}
			it.scopes.Push(value.NewInt(int64(len(l.List()))))
			return nil
		}},
		"ITEM": &BuiltinWord{WordName: "ITEM", Fn: func(it *Interp) error {
			idx, ok := it.scopes.Pop()
			if !ok {
				return &ErrUnderflow{Word: "ITEM", Need: 2, Have: 0}
			}
			l, ok := it.scopes.Pop()
			if !ok {
				return &ErrUnderflow{Word: "ITEM", Need: 2, Have: 1}
			}
			if l.Kind != value.List {
				return &ErrType{Word: "ITEM", Want: "list", Got: l.Kind.String()}
			}
			if idx.Kind != value.Int {
				return &ErrType{Word: "ITEM", Want: "int", Got: idx.Kind.String()}
			}
			items := l.List()
			i := idx.Int()
			if i < 0 || i >= int64(len(items)) {
				return &ErrMalformed{Word: "ITEM", Detail: "index out of range"}
			}
			it.scopes.Push(items[i])
			return nil
		}},
		"STORE_ITEM": &BuiltinWord{WordName: "STORE_ITEM", Fn: func(it *Interp) error {
			idx, ok := it.scopes.Pop()
			if !ok {
				return &ErrUnderflow{Word: "STORE_ITEM", Need: 3, Have: 0}
			}
			l, ok := it.scopes.Pop()
			if !ok {
				return &ErrUnderflow{Word: "STORE_ITEM", Need: 3, Have: 1}
			}
			v, ok := it.scopes.Pop()
			if !ok {
				return &ErrUnderflow{Word: "STORE_ITEM", Need: 3, Have: 2}
			}
			if l.Kind != value.List {
				return &ErrType{Word: "STORE_ITEM", Want: "list", Got: l.Kind.String()}
			}
			if idx.Kind != value.Int {
				return &ErrType{Word: "STORE_ITEM", Want: "int", Got: idx.Kind.String()}
			}
			items := l.List()
			i := idx.Int()
			if i < 0 || i >= int64(len(items)) {
				return &ErrMalformed{Word: "STORE_ITEM", Detail: "index out of range"}
			}
			updated := make([]value.Value, len(items))
			copy(updated, items)
			updated[i] = v
			it.scopes.Push(value.NewList(updated))
			return nil
		}},
	}
}
