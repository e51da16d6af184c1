package interp

import "github.com/sayakbrahmachari/struix/value"

// textWords returns `#`, the line-comment word.
func textWords() map[string]value.Word {
	return map[string]value.Word{
		"#": &BuiltinWord{WordName: "#", Imm: true, Fn: func(it *Interp) error {
			it.lexer.ClearLine()
			return nil
		}},
	}
}
