package driver

import (
	"context"
	"fmt"
	"io"
	"os"

	"csclean/internal/diag"
	"csclean/internal/lexer"
	"csclean/internal/source"
	"csclean/internal/token"
	"csclean/internal/trace"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// LoadInput reads path, or stdin for "" and "-", into a fresh FileSet.
func LoadInput(path string, stdin io.Reader, limit int64) (*source.FileSet, *source.File, error) {
	if limit <= 0 {
		limit = DefaultMaxSize
	}
	fs := source.NewFileSet()
	if path == "" || path == "-" {
		data, err := ReadInput(stdin, limit)
		if err != nil {
			return nil, nil, err
		}
		return fs, fs.Get(fs.AddVirtual("<stdin>", data)), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	data, err := ReadInput(f, limit)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return fs, fs.Get(fs.Add(path, data, 0)), nil
}

func Tokenize(ctx context.Context, fs *source.FileSet, file *source.File, maxDiagnostics int) *TokenizeResult {
	_, span := trace.StartSpan(ctx, trace.ScopePass, "lex")
	defer span.End("")

	// Создаём диагностический пакет
	bag := diag.NewBag(maxDiagnostics)
	opts := lexer.Options{Reporter: &diag.BagReporter{Bag: bag}}

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  lexer.New(file, opts).All(),
		Bag:     bag,
	}
}

// Tree parses file and applies the requested edits for the tree dump.
func Tree(ctx context.Context, fs *source.FileSet, file *source.File, opts CleanOptions) *CleanResult {
	return CleanFile(ctx, fs, file, opts)
}
