package interp

import (
	"bufio"
	"io"
	"io/ioutil"

	"github.com/sayakbrahmachari/struix/internal/flushio"
	"github.com/sayakbrahmachari/struix/internal/logio"
)

// Option configures an Interp at construction time.
type Option interface{ apply(it *Interp) }

var defaultOptions = Options(
	withOutput(ioutil.Discard),
	withInput(nil),
)

// Options flattens a list of Option values into one, so callers can build
// up reusable option bundles.
func Options(opts ...Option) Option {
	var res options
	for _, opt := range opts {
		switch impl := opt.(type) {
		case nil, noption:
		case options:
			res = append(res, impl...)
		default:
			res = append(res, opt)
		}
	}
	switch len(res) {
	case 0:
		return noption{}
	case 1:
		return res[0]
	default:
		return res
	}
}

type noption struct{}

func (noption) apply(it *Interp) {}

type options []Option

func (opts options) apply(it *Interp) {
	for _, opt := range opts {
		if opt != nil {
			opt.apply(it)
		}
	}
}

type outputOption struct{ io.Writer }
type inputOption struct{ io.Reader }
type teeOption struct{ io.Writer }
type unsafeOption bool
type libDirOption string
type loggerOption struct{ *logio.Logger }

// WithOutput sets the stream PRINT/PSTACK write to.
func WithOutput(w io.Writer) Option { return outputOption{w} }

// WithInput sets the stream INPUT and REQUESTUNSAFE read from.
func WithInput(r io.Reader) Option { return inputOption{r} }

// WithTee additionally mirrors all output to w, alongside whatever
// WithOutput configured.
func WithTee(w io.Writer) Option { return teeOption{w} }

// WithUnsafeOperations opens the unsafe-operations gate and skips the
// REQUESTUNSAFE prompt. PYEXEC/PYEVAL/PYIMPORT still fail with the gate
// open, since no scripting runtime is embedded.
func WithUnsafeOperations(enabled bool) Option { return unsafeOption(enabled) }

// WithLibDir sets the directory IMPORT resolves <name>.sxlib files
// against. The default is "lib".
func WithLibDir(dir string) Option { return libDirOption(dir) }

// WithLogger wires a leveled logger used for diagnostic notices (IMPORT,
// REQUESTUNSAFE, and similar); by default nothing is logged.
func WithLogger(log *logio.Logger) Option { return loggerOption{log} }

func withOutput(w io.Writer) Option { return outputOption{w} }
func withInput(r io.Reader) Option  { return inputOption{r} }

func (o outputOption) apply(it *Interp) {
	if it.out != nil {
		it.out.Flush()
	}
	it.out = flushio.NewWriteFlusher(o.Writer)
}

func (o teeOption) apply(it *Interp) {
	it.out = flushio.WriteFlushers(it.out, flushio.NewWriteFlusher(o.Writer))
}

func (i inputOption) apply(it *Interp) {
	if i.Reader == nil {
		it.in = bufio.NewReader(ioutilNopReader{})
		return
	}
	it.in = bufio.NewReader(i.Reader)
}

func (u unsafeOption) apply(it *Interp) { it.unsafe = bool(u) }

func (d libDirOption) apply(it *Interp) { it.libDir = string(d) }

func (l loggerOption) apply(it *Interp) { it.log = l.Logger }

// ioutilNopReader always reports EOF; it backs the zero-value input
// stream so INPUT and REQUESTUNSAFE never block when no reader was
// configured.
type ioutilNopReader struct{}

func (ioutilNopReader) Read([]byte) (int, error) { return 0, io.EOF }
