package interp

import (
	"fmt"
	"strings"

	"github.com/sayakbrahmachari/struix/internal/runeio"
	"github.com/sayakbrahmachari/struix/value"
)

// ioWords returns PRINT, PSTACK, and INPUT: the host-visible output and
// input primitives.
func ioWords() map[string]value.Word {
	return map[string]value.Word{
		"PRINT": &BuiltinWord{WordName: "PRINT", Fn: func(it *Interp) error {
			v, ok := it.scopes.Pop()
			if !ok {
				return &ErrUnderflow{Word: "PRINT", Need: 1, Have: 0}
			}
			return it.writeLine(v.String())
		}},
		"PSTACK": &BuiltinWord{WordName: "PSTACK", Fn: func(it *Interp) error {
			// Snapshot is bottom-to-top; PSTACK reports top-to-bottom,
			// one value per line.
			snap := it.scopes.Top().Stack.Snapshot()
			lines := make([]string, len(snap))
			for i, v := range snap {
				lines[len(snap)-1-i] = " -> " + v.String()
			}
			return it.writeLine(strings.Join(lines, "\n"))
		}},
		"INPUT": &BuiltinWord{WordName: "INPUT", Fn: func(it *Interp) error {
			line, err := it.in.ReadString('\n')
			if err != nil && line == "" {
				it.scopes.Push(value.NewStr(""))
				return nil
			}
			line = strings.TrimRight(line, "\r\n")
			if v, ok := compileNumber(line); ok {
				it.scopes.Push(v)
				return nil
			}
			it.scopes.Push(value.NewStr(line))
			return nil
		}},
	}
}

func (it *Interp) writeLine(s string) error {
	if it.out == nil {
		return nil
	}
	if _, err := runeio.WriteANSIString(it.out, s); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(it.out); err != nil {
		return err
	}
	return it.out.Flush()
}
