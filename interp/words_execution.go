package interp

import "github.com/sayakbrahmachari/struix/value"

// executionWords returns EXIT and RAISE: process termination and
// user-raised errors.
func executionWords() map[string]value.Word {
	return map[string]value.Word{
		"EXIT": &BuiltinWord{WordName: "EXIT", Fn: func(it *Interp) error {
			return ErrExit
		}},
		"RAISE": &BuiltinWord{WordName: "RAISE", Fn: func(it *Interp) error {
			name, ok := it.scopes.Pop()
			if !ok {
				return &ErrUnderflow{Word: "RAISE", Need: 2, Have: 0}
			}
			msg, ok := it.scopes.Pop()
			if !ok {
				return &ErrUnderflow{Word: "RAISE", Need: 2, Have: 1}
			}
			return &ErrRaised{Name: name.String(), Msg: msg.String()}
		}},
	}
}
