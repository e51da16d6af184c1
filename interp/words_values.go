package interp

import (
	"github.com/sayakbrahmachari/struix/dict"
	"github.com/sayakbrahmachari/struix/value"
)

// valueWords returns VAR, CONST, STORE, FETCH, PARAM, and `=`: the
// variable/constant binding and reference-dereferencing primitives.
func valueWords() map[string]value.Word {
	return map[string]value.Word{
		"VAR": &BuiltinWord{WordName: "VAR", Imm: true, Fn: wordVAR},
		"CONST": &BuiltinWord{WordName: "CONST", Imm: true, Fn: wordCONST},
		"=": &BuiltinWord{WordName: "=", Imm: true, Fn: wordASSIGN},
		"STORE": &BuiltinWord{WordName: "STORE", Fn: wordSTORE},
		"FETCH": &BuiltinWord{WordName: "FETCH", Fn: wordFETCH},
		"PARAM": &BuiltinWord{WordName: "PARAM", Fn: wordPARAM},
	}
}

// wordVAR reads a name from the lexer, allocates a fresh Cell, and binds
// name (in the innermost scope) to a word that pushes a VarRef to it.
func wordVAR(it *Interp) error {
	name := it.lexer.NextWord()
	if name == "" {
		return &ErrMalformed{Word: "VAR", Detail: "expected a name"}
	}
	cell := &value.Cell{Name: dict.Canonical(name)}
	w := &BuiltinWord{WordName: dict.Canonical(name), Fn: func(it *Interp) error {
		return it.Interpret(value.NewVarRef(cell))
	}}
	it.scopes.Define(name, w, false)
	return nil
}

// wordCONST reads a name and evaluates the following expression
// immediately, then binds name to a word that pushes the captured
// value verbatim. Rebinding an already-defined name is refused.
func wordCONST(it *Interp) error {
	name := it.lexer.NextWord()
	if name == "" {
		return &ErrMalformed{Word: "CONST", Detail: "expected a name"}
	}
	if _, exists := it.scopes.Lookup(name); exists {
		return &ErrRebind{Name: name}
	}
	val, err := it.evalExpr()
	if err != nil {
		return err
	}
	w := &BuiltinWord{WordName: dict.Canonical(name), Fn: func(it *Interp) error {
		return it.Interpret(val)
	}}
	it.scopes.Define(name, w, false)
	return nil
}

// wordASSIGN implements `=`: the expression is evaluated now (at
// compile time), and a runtime action is scheduled (appended if
// compiling, run immediately otherwise) that looks up name, invokes its
// word to obtain a reference, and stores the captured value through it.
func wordASSIGN(it *Interp) error {
	name := it.lexer.NextWord()
	if name == "" {
		return &ErrMalformed{Word: "=", Detail: "expected a name"}
	}
	val, err := it.evalExpr()
	if err != nil {
		return err
	}
	action := &BuiltinWord{WordName: "=", Fn: func(it *Interp) error {
		w, ok := it.scopes.Lookup(name)
		if !ok {
			return &ErrUnknownWord{Name: name}
		}
		iw, ok := w.(Word)
		if !ok {
			return &ErrNotInvocable{Name: name}
		}
		if err := iw.Invoke(it); err != nil {
			return err
		}
		ref, ok := it.scopes.Pop()
		if !ok {
			return &ErrUnderflow{Word: "=", Need: 1, Have: 0}
		}
		if ref.Kind != value.VarRef {
			return &ErrType{Word: "=", Want: "var", Got: ref.Kind.String()}
		}
		ref.VarRef().Val = val
		return nil
	}}
	return it.Interpret(value.NewWordRef(action))
}

// wordSTORE implements STORE ( ref val -- ): val is pushed last, so
// STORE pops it first, then pops the reference beneath it and writes
// val into the referenced cell. Callers that push val before ref (the
// order of a computed value followed by the target's bareword) need a
// SWAP first, e.g. `5 x SWAP STORE`.
func wordSTORE(it *Interp) error {
	v, ok := it.scopes.Pop()
	if !ok {
		return &ErrUnderflow{Word: "STORE", Need: 2, Have: 0}
	}
	ref, ok := it.scopes.Pop()
	if !ok {
		return &ErrUnderflow{Word: "STORE", Need: 2, Have: 1}
	}
	if ref.Kind != value.VarRef {
		return &ErrType{Word: "STORE", Want: "var", Got: ref.Kind.String()}
	}
	ref.VarRef().Val = v
	return nil
}

// wordFETCH implements FETCH ( ref -- v ): pop a reference and push the
// value currently stored in its cell.
func wordFETCH(it *Interp) error {
	ref, ok := it.scopes.Pop()
	if !ok {
		return &ErrUnderflow{Word: "FETCH", Need: 1, Have: 0}
	}
	if ref.Kind != value.VarRef {
		return &ErrType{Word: "FETCH", Want: "var", Got: ref.Kind.String()}
	}
	it.scopes.Push(ref.VarRef().Val)
	return nil
}

// wordPARAM implements PARAM ( ref -- ): pop a reference from the
// current stack and store into it the topmost value of the nearest
// enclosing scope's stack, binding a DEF'd word's declared parameter to
// the value its caller left waiting.
func wordPARAM(it *Interp) error {
	ref, ok := it.scopes.Pop()
	if !ok {
		return &ErrUnderflow{Word: "PARAM", Need: 1, Have: 0}
	}
	if ref.Kind != value.VarRef {
		return &ErrType{Word: "PARAM", Want: "var", Got: ref.Kind.String()}
	}
	v, ok := it.scopes.PopEnclosing()
	if !ok {
		return &ErrUnderflow{Word: "PARAM", Need: 1, Have: 0}
	}
	ref.VarRef().Val = v
	return nil
}
