package interp

import (
	"context"
	"os"
	"path/filepath"

	"github.com/sayakbrahmachari/struix/value"
)

// importWords returns IMPORT, which loads and runs a library file named
// <name>.sxlib from the configured library directory.
func importWords() map[string]value.Word {
	return map[string]value.Word{
		"IMPORT": &BuiltinWord{WordName: "IMPORT", Imm: true, Fn: wordIMPORT},
	}
}

func wordIMPORT(it *Interp) error {
	name := it.lexer.NextWord()
	if name == "" {
		return &ErrMalformed{Word: "IMPORT", Detail: "expected a library name"}
	}
	path := filepath.Join(it.libDir, name+".sxlib")
	data, err := os.ReadFile(path)
	if err != nil {
		return &ErrMalformed{Word: "IMPORT", Detail: err.Error()}
	}
	it.logf("INFO", "importing %s", path)
	ctx := it.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	return it.runText(ctx, path, string(data))
}
