// Package cfront lowers a C89/C99-subset translation unit to
// interpreter source text: clex tokenizes, cparse builds a cast tree,
// cgen emits stack-language tokens.
package cfront

import (
	"fmt"

	"github.com/sayakbrahmachari/struix/cfront/cgen"
	"github.com/sayakbrahmachari/struix/cfront/cparse"
)

// CompileError aggregates every error found while parsing or lowering
// a translation unit, so a caller sees all of them rather than just
// the first. It supports errors.Is/As through each wrapped cause via
// the Go 1.20 multi-error Unwrap() []error convention.
type CompileError struct {
	Errs []error
}

func (e *CompileError) Error() string {
	msgs := make([]string, len(e.Errs))
	for i, err := range e.Errs {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("%d compile error(s): %s", len(e.Errs), joinSemicolon(msgs))
}

func (e *CompileError) Unwrap() []error { return e.Errs }

func joinSemicolon(msgs []string) string {
	out := ""
	for i, m := range msgs {
		if i > 0 {
			out += "; "
		}
		out += m
	}
	return out
}

// Result carries the lowered source text alongside any non-fatal
// warnings recorded during lowering (unsupported nodes that were
// skipped rather than rejected outright).
type Result struct {
	Source   string
	Warnings []cgen.Warning
}

// Compile parses src as a C translation unit and lowers it to
// interpreter source text. It returns a *CompileError if parsing or
// lowering found any hard error; unsupported-node warnings alone do
// not fail the compile.
func Compile(src string) (*Result, error) {
	tu, perrs := cparse.Parse(src)

	text, warnings, gerrs := cgen.Generate(tu)

	var allErrs []error
	allErrs = append(allErrs, perrs...)
	allErrs = append(allErrs, gerrs...)
	if len(allErrs) > 0 {
		return nil, &CompileError{Errs: allErrs}
	}
	return &Result{Source: text, Warnings: warnings}, nil
}
