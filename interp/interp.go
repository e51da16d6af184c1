// Package interp implements the struix interpreter core: a lexer-driven
// compile/interpret loop over a scoped dictionary and data stack, plus
// every primitive word (grouped across the words_*.go files in this
// package, rather than a separate subpackage, to avoid an import cycle
// between the word implementations and *Interp itself).
package interp

import (
	"bufio"
	"context"
	"errors"

	"github.com/sayakbrahmachari/struix/dict"
	"github.com/sayakbrahmachari/struix/internal/flushio"
	"github.com/sayakbrahmachari/struix/internal/logio"
	"github.com/sayakbrahmachari/struix/internal/panicerr"
	"github.com/sayakbrahmachari/struix/internal/runeio"
	"github.com/sayakbrahmachari/struix/lex"
	"github.com/sayakbrahmachari/struix/value"
)

// Interp is the struix interpreter: a dictionary/scope stack, the lexer
// currently being consumed, a queue of suspended outer lexers (pushed by
// nested Run calls, e.g. from IMPORT), and host-bridge state.
type Interp struct {
	scopes *dict.Scopes

	ctx context.Context

	lexer      *lex.Lexer
	lexerQueue []*lex.Lexer

	pendingImmediate bool

	defDepth int
	defNames []string

	// returnValue stashes the value RETURN popped at the moment it fired,
	// since by the time errReturnSignal is caught by the enclosing
	// CompiledWord.Invoke, any scopes opened between RETURN and that
	// catch point (nested `[ .. ]` bodies run by IFTRUE/WHILE/etc.) have
	// already been discarded.
	returnValue *value.Value

	out    flushio.WriteFlusher
	in     *bufio.Reader
	log    *logio.Logger
	unsafe bool
	libDir string
}

// New constructs an Interp with its dictionary seeded with every
// primitive word, ready to Run source text.
func New(opts ...Option) *Interp {
	it := &Interp{
		scopes: dict.New(),
		libDir: "lib",
	}
	Options(defaultOptions, Options(opts...)).apply(it)
	it.installBuiltins()
	return it
}

func (it *Interp) installBuiltins() {
	it.scopes.AddWords(ioWords())
	it.scopes.AddWords(stackWords())
	it.scopes.AddWords(arithWords())
	it.scopes.AddWords(valueWords())
	it.scopes.AddWords(functionWords())
	it.scopes.AddWords(listWords())
	it.scopes.AddWords(controlWords())
	it.scopes.AddWords(textWords())
	it.scopes.AddWords(executionWords())
	it.scopes.AddWords(hostWords())
	it.scopes.AddWords(importWords())
}

// Scopes exposes the dictionary/scope stack for primitives implemented
// in this package's other files.
func (it *Interp) Scopes() *dict.Scopes { return it.scopes }

// Run lexes and interprets text (named, for error messages, by name),
// recovering any panic or runtime.Goexit raised by a word into a plain
// error, and honoring ctx cancellation between top-level words.
func (it *Interp) Run(ctx context.Context, name, text string) error {
	return panicerr.Recover(name, func() error {
		return it.runText(ctx, name, text)
	})
}

func (it *Interp) runText(ctx context.Context, name, text string) error {
	prevCtx := it.ctx
	it.ctx = ctx
	defer func() { it.ctx = prevCtx }()

	prev := it.lexer
	if prev != nil {
		it.lexerQueue = append(it.lexerQueue, prev)
	}
	it.lexer = lex.New(name, text)
	defer func() {
		it.lexer = prev
		if n := len(it.lexerQueue); n > 0 && prev != nil {
			it.lexerQueue = it.lexerQueue[:n-1]
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if it.lexer.AtEOF() {
			return nil
		}
		word := it.lexer.NextWord()
		if word == "" {
			return nil
		}

		val, err := it.Compile(word)
		if err != nil {
			return it.wrapPos(err)
		}
		if err := it.Interpret(val); err != nil {
			if errors.Is(err, errReturnSignal) {
				// a bare RETURN outside any word body is a no-op at the
				// top level: nothing remains to unwind into.
				it.returnValue = nil
				continue
			}
			return it.wrapPos(err)
		}
	}
}

func (it *Interp) wrapPos(err error) error {
	name, line, col := it.lexer.Name(), it.lexer.Line(), it.lexer.Col()
	var pe *lex.PositionError
	if errors.As(err, &pe) && pe.Name == name && pe.Line == line && pe.Col == col {
		return err
	}
	return &lex.PositionError{Name: name, Line: line, Col: col, Err: err}
}

// Compile resolves one lexed token to a Value: numbers and rune/control
// literals become scalars, a single-quoted single-character token
// (`'X'`, including `strconv`-style escapes like `'\n'`) becomes the
// Int codepoint of that character, quoted text otherwise becomes a
// string (continuing via the lexer's chars-till machinery when the
// token doesn't close within itself), and barewords are resolved
// against the dictionary. Compiling a bareword latches its immediate
// flag, consumed by the following Interpret call.
func (it *Interp) Compile(token string) (value.Value, error) {
	if v, ok := compileNumber(token); ok {
		it.pendingImmediate = false
		return v, nil
	}
	if r, ok := runeio.ControlWords[token]; ok {
		it.pendingImmediate = false
		return value.NewInt(int64(r)), nil
	}
	if r, err := runeio.UnquoteRune(token); err == nil {
		it.pendingImmediate = false
		return value.NewInt(int64(r)), nil
	}
	if v, err, ok := it.compileString(token); ok {
		it.pendingImmediate = false
		return v, err
	}
	w, ok := it.scopes.Lookup(token)
	if !ok {
		return value.Value{}, &ErrUnknownWord{Name: token}
	}
	it.pendingImmediate = w.Immediate()
	return value.NewWordRef(w), nil
}

func (it *Interp) compileString(token string) (value.Value, error, bool) {
	if len(token) >= 3 && (token[:3] == `"""` || token[:3] == `'''`) {
		marker := token[:3]
		body, err := it.lexer.CharsTillMultiline(marker)
		if err != nil {
			return value.Value{}, err, true
		}
		return value.NewStr(body), nil, true
	}
	if len(token) == 0 {
		return value.Value{}, nil, false
	}
	q := rune(token[0])
	if q != '\'' && q != '"' {
		return value.Value{}, nil, false
	}
	if len(token) >= 2 && rune(token[len(token)-1]) == q {
		return value.NewStr(token[1 : len(token)-1]), nil, true
	}
	rest, err := it.lexer.CharsTill(q)
	if err != nil {
		return value.Value{}, err, true
	}
	return value.NewStr(token[1:] + rest), nil, true
}

// Interpret dispatches a compiled Value per the interpreter's compile
// vs. run-mode rule: an immediate word, or any value while the top
// scope is not AOT, executes (invoking words, pushing anything else);
// otherwise the value is appended to the current AOT scope's data
// stack, deferring it into the body being accumulated.
func (it *Interp) Interpret(v value.Value) error {
	imm := it.pendingImmediate
	it.pendingImmediate = false

	if imm || !it.scopes.IsCompiling() {
		if v.Kind == value.WordRef {
			w, ok := v.WordRef().(Word)
			if !ok {
				return &ErrNotInvocable{Name: v.WordRef().Name()}
			}
			return w.Invoke(it)
		}
		it.scopes.Push(v)
		return nil
	}

	it.scopes.Push(v)
	return nil
}

// evalExpr reads and fully evaluates the next token, used by CONST, `=`,
// and NEXT to capture a value eagerly at compile time: it compiles the
// token, then — if that resolved to an invocable word —
// runs it and any further tokens it itself pulls from the lexer (e.g. a
// nested DEF) until the scope depth returns to where it started, taking
// the single resulting value off the top of the stack.
func (it *Interp) evalExpr() (value.Value, error) {
	token := it.lexer.NextWord()
	if token == "" {
		return value.Value{}, &ErrMalformed{Word: "evalExpr", Detail: "expected a value, found end of input"}
	}
	lvl := it.scopes.Depth()
	val, err := it.Compile(token)
	if err != nil {
		return value.Value{}, err
	}

	if val.Kind == value.WordRef {
		it.pendingImmediate = false
		w, ok := val.WordRef().(Word)
		if !ok {
			return value.Value{}, &ErrNotInvocable{Name: val.WordRef().Name()}
		}
		if err := w.Invoke(it); err != nil {
			return value.Value{}, err
		}
		for it.scopes.Depth() > lvl {
			next := it.lexer.NextWord()
			v, err := it.Compile(next)
			if err != nil {
				return value.Value{}, err
			}
			if err := it.Interpret(v); err != nil {
				return value.Value{}, err
			}
		}
		result, ok := it.scopes.Pop()
		if !ok {
			return value.Value{}, &ErrUnderflow{Word: "evalExpr", Need: 1, Have: 0}
		}
		return result, nil
	}

	return val, nil
}

// runCode executes a code value (a List or a WordRef) as produced by `[
// .. ]` or DEF, used by RUN/TIMES/IFTRUE/IFFALSE/IFELSE/WHILE/DOWHILE.
// A WordRef is invoked directly; a List is replayed inside a fresh block
// scope, whose resulting stack contents are spliced back onto the
// caller's stack, matching RUN's ( code -- ... ) contract.
func (it *Interp) runCode(code value.Value) (err error) {
	switch code.Kind {
	case value.WordRef:
		w, ok := code.WordRef().(Word)
		if !ok {
			return &ErrNotInvocable{Name: code.WordRef().Name()}
		}
		return w.Invoke(it)
	case value.List:
		it.scopes.NewBlockScope()
		defer func() {
			stack, perr := it.scopes.PopScope()
			if err == nil {
				if perr != nil {
					err = perr
				} else {
					for _, v := range stack {
						it.scopes.Push(v)
					}
				}
			}
		}()
		for _, item := range code.List() {
			if err = it.Interpret(item); err != nil {
				return
			}
		}
		return
	default:
		return &ErrType{Word: "RUN", Want: "word or list", Got: code.Kind.String()}
	}
}

func (it *Interp) logf(level, mess string, args ...interface{}) {
	if it.log != nil {
		it.log.Printf(level, mess, args...)
	}
}
