package interp

import "github.com/sayakbrahmachari/struix/value"

// stackWords returns the data-stack shuffling primitives: DUP, DROP,
// SWAP, OVER, ROT.
func stackWords() map[string]value.Word {
	return map[string]value.Word{
		"DUP": &BuiltinWord{WordName: "DUP", Fn: func(it *Interp) error {
			v, ok := it.scopes.Pop()
			if !ok {
				return &ErrUnderflow{Word: "DUP", Need: 1, Have: 0}
			}
			it.scopes.Push(v)
			it.scopes.Push(v)
			return nil
		}},
		"DROP": &BuiltinWord{WordName: "DROP", Fn: func(it *Interp) error {
			if _, ok := it.scopes.Pop(); !ok {
				return &ErrUnderflow{Word: "DROP", Need: 1, Have: 0}
			}
			return nil
		}},
		"SWAP": &BuiltinWord{WordName: "SWAP", Fn: func(it *Interp) error {
			b, ok := it.scopes.Pop()
			if !ok {
				return &ErrUnderflow{Word: "SWAP", Need: 2, Have: 0}
			}
			a, ok := it.scopes.Pop()
			if !ok {
				return &ErrUnderflow{Word: "SWAP", Need: 2, Have: 1}
			}
			it.scopes.Push(b)
			it.scopes.Push(a)
			return nil
		}},
		"OVER": &BuiltinWord{WordName: "OVER", Fn: func(it *Interp) error {
			b, ok := it.scopes.Pop()
			if !ok {
				return &ErrUnderflow{Word: "OVER", Need: 2, Have: 0}
			}
			a, ok := it.scopes.Pop()
			if !ok {
				return &ErrUnderflow{Word: "OVER", Need: 2, Have: 1}
			}
			it.scopes.Push(a)
			it.scopes.Push(b)
			it.scopes.Push(a)
			return nil
		}},
		"ROT": &BuiltinWord{WordName: "ROT", Fn: func(it *Interp) error {
			c, ok := it.scopes.Pop()
			if !ok {
				return &ErrUnderflow{Word: "ROT", Need: 3, Have: 0}
			}
			b, ok := it.scopes.Pop()
			if !ok {
				return &ErrUnderflow{Word: "ROT", Need: 3, Have: 1}
			}
			a, ok := it.scopes.Pop()
			if !ok {
				return &ErrUnderflow{Word: "ROT", Need: 3, Have: 2}
			}
			it.scopes.Push(b)
			it.scopes.Push(c)
			it.scopes.Push(a)
			return nil
		}},
	}
}
