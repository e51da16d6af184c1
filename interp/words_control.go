package interp

import (
	"math"

	"github.com/sayakbrahmachari/struix/value"
)

// controlWords returns RUN, TIMES, IFTRUE, IFFALSE, IFELSE, WHILE, and
// DOWHILE: the control-flow primitives, all driven by runCode over List
// or WordRef "code" values.
func controlWords() map[string]value.Word {
	return map[string]value.Word{
		"RUN": &BuiltinWord{WordName: "RUN", Fn: func(it *Interp) error {
			code, ok := it.scopes.Pop()
			if !ok {
				return &ErrUnderflow{Word: "RUN", Need: 1, Have: 0}
			}
			return it.runCode(code)
		}},
		"TIMES": &BuiltinWord{WordName: "TIMES", Fn: wordTIMES},
		"IFTRUE": &BuiltinWord{WordName: "IFTRUE", Fn: func(it *Interp) error {
			code, cond, err := popCodeAndCond(it, "IFTRUE")
			if err != nil {
				return err
			}
			if cond.Truthy() {
				return it.runCode(code)
			}
			return nil
		}},
		"IFFALSE": &BuiltinWord{WordName: "IFFALSE", Fn: func(it *Interp) error {
			code, cond, err := popCodeAndCond(it, "IFFALSE")
			if err != nil {
				return err
			}
			if !cond.Truthy() {
				return it.runCode(code)
			}
			return nil
		}},
		"IFELSE": &BuiltinWord{WordName: "IFELSE", Fn: wordIFELSE},
		"WHILE":  &BuiltinWord{WordName: "WHILE", Fn: wordWHILE},
		"DOWHILE": &BuiltinWord{WordName: "DOWHILE", Fn: wordDOWHILE},
	}
}

// popCodeAndCond pops ( cond code -- ) in push order: code is on top.
func popCodeAndCond(it *Interp, word string) (code, cond value.Value, err error) {
	code, ok := it.scopes.Pop()
	if !ok {
		return value.Value{}, value.Value{}, &ErrUnderflow{Word: word, Need: 2, Have: 0}
	}
	cond, ok = it.scopes.Pop()
	if !ok {
		return value.Value{}, value.Value{}, &ErrUnderflow{Word: word, Need: 2, Have: 1}
	}
	return code, cond, nil
}

func wordIFELSE(it *Interp) error {
	elseCode, ok := it.scopes.Pop()
	if !ok {
		return &ErrUnderflow{Word: "IFELSE", Need: 3, Have: 0}
	}
	thenCode, ok := it.scopes.Pop()
	if !ok {
		return &ErrUnderflow{Word: "IFELSE", Need: 3, Have: 1}
	}
	cond, ok := it.scopes.Pop()
	if !ok {
		return &ErrUnderflow{Word: "IFELSE", Need: 3, Have: 2}
	}
	if cond.Truthy() {
		return it.runCode(thenCode)
	}
	return it.runCode(elseCode)
}

// wordTIMES implements TIMES ( code n -- ): run code n times, or
// forever if n is the float +Inf.
func wordTIMES(it *Interp) error {
	nV, ok := it.scopes.Pop()
	if !ok {
		return &ErrUnderflow{Word: "TIMES", Need: 2, Have: 0}
	}
	codeV, ok := it.scopes.Pop()
	if !ok {
		return &ErrUnderflow{Word: "TIMES", Need: 2, Have: 1}
	}
	if !nV.IsNumeric() {
		return &ErrType{Word: "TIMES", Want: "numeric", Got: nV.Kind.String()}
	}
	if nV.Kind == value.Float && math.IsInf(nV.Float(), 1) {
		for {
			if err := it.runCode(codeV); err != nil {
				return err
			}
		}
	}
	n := int64(nV.AsFloat())
	for i := int64(0); i < n; i++ {
		if err := it.runCode(codeV); err != nil {
			return err
		}
	}
	return nil
}

// wordWHILE implements WHILE ( cond-code body-code -- ): an entry-test
// loop, re-running cond-code before each iteration.
func wordWHILE(it *Interp) error {
	bodyV, ok := it.scopes.Pop()
	if !ok {
		return &ErrUnderflow{Word: "WHILE", Need: 2, Have: 0}
	}
	condV, ok := it.scopes.Pop()
	if !ok {
		return &ErrUnderflow{Word: "WHILE", Need: 2, Have: 1}
	}
	for {
		if err := it.runCode(condV); err != nil {
			return err
		}
		res, ok := it.scopes.Pop()
		if !ok {
			return &ErrUnderflow{Word: "WHILE", Need: 1, Have: 0}
		}
		if !res.Truthy() {
			return nil
		}
		if err := it.runCode(bodyV); err != nil {
			return err
		}
	}
}

// wordDOWHILE implements DOWHILE ( cond-code body-code -- ): an
// exit-test loop, running body-code once before the first test.
func wordDOWHILE(it *Interp) error {
	bodyV, ok := it.scopes.Pop()
	if !ok {
		return &ErrUnderflow{Word: "DOWHILE", Need: 2, Have: 0}
	}
	condV, ok := it.scopes.Pop()
	if !ok {
		return &ErrUnderflow{Word: "DOWHILE", Need: 2, Have: 1}
	}
	for {
		if err := it.runCode(bodyV); err != nil {
			return err
		}
		if err := it.runCode(condV); err != nil {
			return err
		}
		res, ok := it.scopes.Pop()
		if !ok {
			return &ErrUnderflow{Word: "DOWHILE", Need: 1, Have: 0}
		}
		if !res.Truthy() {
			return nil
		}
	}
}
