package interp

import (
	"github.com/sayakbrahmachari/struix/dict"
	"github.com/sayakbrahmachari/struix/value"
)

// functionWords returns DEF, END, NEXT, and RETURN: the word-definition
// and early-return primitives.
func functionWords() map[string]value.Word {
	return map[string]value.Word{
		"DEF":    &BuiltinWord{WordName: "DEF", Imm: true, Fn: wordDEF},
		"END":    &BuiltinWord{WordName: "END", Imm: true, Fn: wordEND},
		"NEXT":   &BuiltinWord{WordName: "NEXT", Imm: true, Fn: wordNEXT},
		"RETURN": &BuiltinWord{WordName: "RETURN", Fn: wordRETURN},
	}
}

// wordDEF opens an AOT scope to accumulate a new word's body. It reads
// a name from the lexer unless DEF is already nested inside another
// open DEF, in which case the definition is anonymous (an inline
// closure, pushed rather than bound by END).
func wordDEF(it *Interp) error {
	name := ""
	if it.defDepth == 0 {
		name = it.lexer.NextWord()
		if name == "" {
			return &ErrMalformed{Word: "DEF", Detail: "expected a name"}
		}
	}
	it.defDepth++
	it.defNames = append(it.defNames, name)
	it.scopes.NewAOTScope()
	return nil
}

// wordEND closes the AOT scope opened by the matching DEF, builds a
// CompiledWord from its accumulated body, and either binds it (named
// definitions) or pushes it as a value (anonymous/inline definitions).
func wordEND(it *Interp) error {
	body, err := it.scopes.PopScope()
	if err != nil {
		return err
	}
	if len(it.defNames) == 0 {
		return &ErrMalformed{Word: "END", Detail: "no matching DEF"}
	}
	n := len(it.defNames) - 1
	name := it.defNames[n]
	it.defNames = it.defNames[:n]
	it.defDepth--

	w := &CompiledWord{WordName: dict.Canonical(name), Body: append([]value.Value(nil), body...)}
	if name == "" {
		return it.Interpret(value.NewWordRef(w))
	}
	it.scopes.Define(name, w, false)
	return nil
}

// wordNEXT evaluates the following token immediately and schedules the
// captured value to be pushed (appended if compiling, pushed now
// otherwise) when control reaches this point, per the primitive table's
// "pushes the next token's evaluated value onto the stack at run time".
func wordNEXT(it *Interp) error {
	val, err := it.evalExpr()
	if err != nil {
		return err
	}
	return it.Interpret(val)
}

// wordRETURN aborts the remainder of the enclosing word's body. If a
// value is on top of the current stack it is stashed so the enclosing
// CompiledWord.Invoke can propagate it as the word's result even though
// any scopes opened between here and there (e.g. an IFTRUE/WHILE body)
// are discarded on the way out.
func wordRETURN(it *Interp) error {
	if v, ok := it.scopes.Pop(); ok {
		it.returnValue = &v
	} else {
		it.returnValue = nil
	}
	return errReturnSignal
}
