// Command struix runs struix source: a path argument batch-runs a
// file, no argument reads a script from stdin. Kept deliberately thin
// per the CLI's "external collaborator" framing: flag parsing, VM
// construction, and run/exit-code wiring only.
package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"os"

	"github.com/sayakbrahmachari/struix/interp"
	"github.com/sayakbrahmachari/struix/internal/logio"
	"github.com/sayakbrahmachari/struix/internal/panicerr"
)

func main() {
	var (
		unsafeOps bool
		libDir    string
	)
	flag.BoolVar(&unsafeOps, "unsafe", false, "open the unsafe-operations gate and skip the REQUESTUNSAFE prompt")
	flag.StringVar(&libDir, "lib-dir", "lib", "directory IMPORT resolves <name>.sxlib files against")
	flag.Parse()

	log := logio.Logger{}
	log.SetOutput(os.Stderr)
	defer os.Exit(log.ExitCode())

	name, text, err := readSource(flag.Args())
	if err != nil {
		log.Errorf("%v", err)
		return
	}

	it := interp.New(
		interp.WithOutput(os.Stdout),
		interp.WithInput(os.Stdin),
		interp.WithUnsafeOperations(unsafeOps),
		interp.WithLibDir(libDir),
		interp.WithLogger(&log),
	)

	ctx := context.Background()
	if err := it.Run(ctx, name, text); err != nil {
		if errors.Is(err, interp.ErrExit) {
			return
		}
		if panicerr.IsPanic(err) {
			log.Printf("PANIC", "%s", panicerr.PanicStack(err))
		}
		log.ErrorIf(err)
	}
}

// readSource loads the program text either from a path argument or,
// with none given, from stdin.
func readSource(args []string) (name, text string, err error) {
	if len(args) == 0 {
		b, rerr := io.ReadAll(os.Stdin)
		return "<stdin>", string(b), rerr
	}
	path := args[0]
	b, rerr := os.ReadFile(path)
	return path, string(b), rerr
}
