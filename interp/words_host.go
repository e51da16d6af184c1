package interp

import (
	"strconv"
	"strings"

	"github.com/sayakbrahmachari/struix/value"
)

// hostWords returns the host-bridge primitives: PYEXEC, PYEVAL, and
// PYIMPORT are always refused — this implementation carries no
// embedded scripting runtime to sandbox them against — while
// PYLITEVAL (a safe literal parse) is always available, and
// REQUESTUNSAFE interactively toggles the unsafe-operations gate.
func hostWords() map[string]value.Word {
	return map[string]value.Word{
		"PYEXEC":   &BuiltinWord{WordName: "PYEXEC", Fn: refusedHostWord("PYEXEC")},
		"PYEVAL":   &BuiltinWord{WordName: "PYEVAL", Fn: refusedHostWord("PYEVAL")},
		"PYIMPORT": &BuiltinWord{WordName: "PYIMPORT", Fn: refusedHostWord("PYIMPORT")},
		"PYLITEVAL": &BuiltinWord{WordName: "PYLITEVAL", Fn: wordPYLITEVAL},
		"REQUESTUNSAFE": &BuiltinWord{WordName: "REQUESTUNSAFE", Fn: wordREQUESTUNSAFE},
	}
}

func refusedHostWord(name string) func(it *Interp) error {
	return func(it *Interp) error {
		if !it.unsafe {
			return &ErrPermission{Word: name}
		}
		return &ErrMalformed{Word: name, Detail: "no scripting runtime is embedded in this build"}
	}
}

// wordPYLITEVAL parses a literal int, float, bool, or quoted string out
// of a popped string value, independent of the unsafe gate: it never
// executes code, only recognizes a fixed literal grammar.
func wordPYLITEVAL(it *Interp) error {
	v, ok := it.scopes.Pop()
	if !ok {
		return &ErrUnderflow{Word: "PYLITEVAL", Need: 1, Have: 0}
	}
	if v.Kind != value.Str {
		return &ErrType{Word: "PYLITEVAL", Want: "string", Got: v.Kind.String()}
	}
	text := strings.TrimSpace(v.Str())
	switch text {
	case "True", "true":
		it.scopes.Push(value.NewBool(true))
		return nil
	case "False", "false":
		it.scopes.Push(value.NewBool(false))
		return nil
	}
	if i, err := strconv.ParseInt(text, 10, 64); err == nil {
		it.scopes.Push(value.NewInt(i))
		return nil
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil {
		it.scopes.Push(value.NewFloat(f))
		return nil
	}
	if len(text) >= 2 {
		q := text[0]
		if (q == '\'' || q == '"') && text[len(text)-1] == q {
			it.scopes.Push(value.NewStr(text[1 : len(text)-1]))
			return nil
		}
	}
	return &ErrMalformed{Word: "PYLITEVAL", Detail: "not a recognized literal: " + text}
}

// wordREQUESTUNSAFE prompts (via the configured input stream) for
// permission to open the unsafe-operations gate; a blank or unreadable
// response leaves the gate closed.
func wordREQUESTUNSAFE(it *Interp) error {
	if it.unsafe {
		it.scopes.Push(value.NewBool(true))
		return nil
	}
	it.logf("INFO", "allow unsafe host operations? [y/N] ")
	line, _ := it.in.ReadString('\n')
	line = strings.TrimSpace(line)
	it.unsafe = line == "y" || line == "Y" || strings.EqualFold(line, "yes")
	it.scopes.Push(value.NewBool(it.unsafe))
	return nil
}
