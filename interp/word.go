package interp

import (
	"errors"

	"github.com/sayakbrahmachari/struix/value"
)

// Word is what the dictionary actually stores and interp actually
// invokes: the narrow value.Word (Name/Immediate, used so Value can
// carry a WordRef without an import cycle) plus Invoke, a callable with
// an optional immediate flag that accepts a reference to the
// interpreter.
type Word interface {
	value.Word
	Invoke(it *Interp) error
}

// BuiltinWord wraps a native Go closure as a struix word.
type BuiltinWord struct {
	WordName  string
	Imm       bool
	Fn        func(it *Interp) error
}

func (w *BuiltinWord) Name() string      { return w.WordName }
func (w *BuiltinWord) Immediate() bool   { return w.Imm }
func (w *BuiltinWord) Invoke(it *Interp) error { return w.Fn(it) }

// errReturnSignal is an internal control-flow sentinel raised by RETURN;
// it is caught by CompiledWord.Invoke and never escapes to a caller.
var errReturnSignal = errors.New("internal: RETURN")

// CompiledWord is a user-defined word: it owns the ordered sequence of
// values captured during DEF..END compilation. Invoking it opens a new
// block scope, re-interprets its body under that scope, and propagates
// the topmost resulting value (if any) as its result.
type CompiledWord struct {
	WordName string
	Body     []value.Value
}

func (w *CompiledWord) Name() string    { return w.WordName }
func (w *CompiledWord) Immediate() bool { return false }

// Invoke opens a block scope, replays the body through Interpret, and —
// on normal completion or an early RETURN — propagates the scope's
// topmost value back to the caller's stack. The scope is always popped,
// even on error, so a failing word unwinds cleanly.
func (w *CompiledWord) Invoke(it *Interp) (err error) {
	it.scopes.NewBlockScope()
	defer func() {
		stack, perr := it.scopes.PopScope()
		if err == nil {
			if perr != nil {
				err = perr
			} else if len(stack) > 0 {
				it.scopes.Push(stack[len(stack)-1])
			}
		}
	}()

	for _, v := range w.Body {
		if ierr := it.Interpret(v); ierr != nil {
			if errors.Is(ierr, errReturnSignal) {
				if it.returnValue != nil {
					it.scopes.Push(*it.returnValue)
					it.returnValue = nil
				}
				break
			}
			err = ierr
			return
		}
	}
	return
}
