package interp

import (
	"errors"
	"fmt"
)

// ErrExit is returned by Run when the program executed the EXIT word. It
// is not a failure: callers typically treat it as a clean termination
// signal and report a zero exit status.
var ErrExit = errors.New("EXIT")

// ErrUnderflow reports a data-stack underflow: a word needed more values
// than the active scope's stack held.
type ErrUnderflow struct {
	Word string
	Need int
	Have int
}

func (e *ErrUnderflow) Error() string {
	return fmt.Sprintf("%s: stack underflow (need %d, have %d)", e.Word, e.Need, e.Have)
}

// ErrUnknownWord reports a bareword with no dictionary binding.
type ErrUnknownWord struct {
	Name string
}

func (e *ErrUnknownWord) Error() string { return fmt.Sprintf("unknown word %q", e.Name) }

// ErrRebind reports an attempt to CONST a name that is already bound in
// a scope visible from where the rebind was attempted.
type ErrRebind struct {
	Name string
}

func (e *ErrRebind) Error() string { return fmt.Sprintf("%q is already defined", e.Name) }

// ErrType reports a value of the wrong Kind reaching a word that
// requires a specific one.
type ErrType struct {
	Word string
	Want string
	Got  string
}

func (e *ErrType) Error() string {
	return fmt.Sprintf("%s: expected %s, got %s", e.Word, e.Want, e.Got)
}

// ErrMalformed reports a compile-time construct missing a required
// token, such as VAR/CONST/DEF/IMPORT with nothing following them.
type ErrMalformed struct {
	Word string
	Detail string
}

func (e *ErrMalformed) Error() string { return fmt.Sprintf("%s: %s", e.Word, e.Detail) }

// ErrPermission reports a host-bridge word refused because unsafe
// operations were not enabled for this Interp.
type ErrPermission struct {
	Word string
}

func (e *ErrPermission) Error() string {
	return fmt.Sprintf("%s: refused (unsafe operations are not enabled)", e.Word)
}

// ErrRaised is the error produced by the RAISE word: a user-named error
// carrying a message, distinct from the interpreter's own error types so
// callers can distinguish program-raised faults via errors.As.
type ErrRaised struct {
	Name string
	Msg  string
}

func (e *ErrRaised) Error() string { return fmt.Sprintf("%s: %s", e.Name, e.Msg) }

// ErrNotInvocable reports a WordRef value whose underlying Word does not
// implement Invoke — unreachable in practice since every Word this
// package constructs does, but guards against a foreign value.Word
// implementation reaching Interpret.
type ErrNotInvocable struct {
	Name string
}

func (e *ErrNotInvocable) Error() string { return fmt.Sprintf("%q is not invocable", e.Name) }
