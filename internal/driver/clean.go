package driver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/dustin/go-humanize"

	"csclean/internal/diag"
	"csclean/internal/edit"
	"csclean/internal/lexer"
	"csclean/internal/observ"
	"csclean/internal/source"
	"csclean/internal/syntax"
	"csclean/internal/trace"
)

// DefaultMaxSize is the input limit of the filter: 64 MiB.
const DefaultMaxSize int64 = 64 << 20

// ErrInputTooLarge is returned by ReadInput when the input exceeds the limit.
var ErrInputTooLarge = errors.New("input too large")

// CleanOptions configures one run of the pipeline.
type CleanOptions struct {
	Edit           edit.Options
	MaxSize        int64 // 0 = DefaultMaxSize
	MaxDiagnostics int   // 0 = 256
	Timer          *observ.Timer
}

func (o CleanOptions) maxSize() int64 {
	if o.MaxSize <= 0 {
		return DefaultMaxSize
	}
	return o.MaxSize
}

// CleanResult holds everything the pipeline produced for one document.
type CleanResult struct {
	FileSet *source.FileSet
	File    *source.File
	Unit    *syntax.CompilationUnit // after edits
	Output  []byte
	Bag     *diag.Bag
}

// ReadInput reads r fully but never more than limit bytes.
func ReadInput(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: input exceeds maximum size of %s", ErrInputTooLarge, humanize.IBytes(uint64(limit))) //nolint:gosec // limit > 0
	}
	return data, nil
}

// Clean runs lex → build → edit → print over src. Malformed input only
// adds diagnostics; Clean itself cannot fail.
func Clean(ctx context.Context, name string, src []byte, opts CleanOptions) *CleanResult {
	fs := source.NewFileSet()
	return CleanFile(ctx, fs, fs.Get(fs.AddVirtual(name, src)), opts)
}

// CleanFile is Clean over a file already registered in fs.
func CleanFile(ctx context.Context, fs *source.FileSet, file *source.File, opts CleanOptions) *CleanResult {
	maxDiag := opts.MaxDiagnostics
	if maxDiag <= 0 {
		maxDiag = 256
	}
	bag := diag.NewBag(maxDiag)
	rep := &diag.BagReporter{Bag: bag}

	phase := func(name string) func(note string) {
		_, sp := trace.StartSpan(ctx, trace.ScopePass, name)
		stop := opts.Timer.Track(name)
		return func(note string) {
			sp.End(note)
			stop(note)
		}
	}

	done := phase("lex")
	toks := lexer.Tokenize(file, lexer.Options{Reporter: rep})
	done(strconv.Itoa(len(toks)) + " tokens")

	done = phase("build")
	cu := syntax.Build(toks, syntax.Options{Reporter: rep})
	cu.File = file.ID
	done(fmt.Sprintf("%d usings, %d members", len(cu.Usings), len(cu.Members)))

	if opts.Edit.Any() {
		done = phase("edit")
		before := len(cu.Usings)
		cu = edit.Apply(cu, opts.Edit)
		done(fmt.Sprintf("%d usings removed", before-len(cu.Usings)))
	}

	done = phase("print")
	out := cu.Bytes()
	done(humanize.Bytes(uint64(len(out))))

	return &CleanResult{
		FileSet: fs,
		File:    file,
		Unit:    cu,
		Output:  out,
		Bag:     bag,
	}
}

// CleanStream is the filter: read everything from r, clean, write to w.
func CleanStream(ctx context.Context, r io.Reader, w io.Writer, opts CleanOptions) (*CleanResult, error) {
	ctx, span := trace.StartSpan(ctx, trace.ScopeDriver, "filter")
	defer span.End("")

	_, rsp := trace.StartSpan(ctx, trace.ScopePass, "read")
	src, err := ReadInput(r, opts.maxSize())
	rsp.End(humanize.Bytes(uint64(len(src))))
	if err != nil {
		trace.Error(trace.FromContext(ctx), "read", err)
		return nil, err
	}

	res := Clean(ctx, "<stdin>", src, opts)
	if _, err := w.Write(res.Output); err != nil {
		trace.Error(trace.FromContext(ctx), "write", err)
		return res, fmt.Errorf("write output: %w", err)
	}
	return res, nil
}
