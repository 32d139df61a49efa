package syntax

import (
	"io"
	"iter"
	"strings"

	"csclean/internal/token"
)

// Tokens yields every token of the unit in document order, EOF last.
func (cu *CompilationUnit) Tokens() iter.Seq[token.Token] {
	return func(yield func(token.Token) bool) {
		for _, e := range cu.Externs {
			for _, t := range e.Tokens {
				if !yield(t) {
					return
				}
			}
		}
		for _, u := range cu.Usings {
			for _, t := range u.Tokens {
				if !yield(t) {
					return
				}
			}
		}
		for _, m := range cu.Members {
			for _, t := range m.Tokens {
				if !yield(t) {
					return
				}
			}
		}
		yield(cu.EOF)
	}
}

// WriteTo печатает дерево как есть: leading, текст, trailing каждого токена.
func (cu *CompilationUnit) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, cu.String())
	return int64(n), err
}

// String returns the full text of the unit.
func (cu *CompilationUnit) String() string {
	size := 0
	for t := range cu.Tokens() {
		size += t.FullWidth()
	}
	var sb strings.Builder
	sb.Grow(size)
	for t := range cu.Tokens() {
		t.WriteTo(&sb)
	}
	return sb.String()
}

// Bytes returns the full text of the unit.
func (cu *CompilationUnit) Bytes() []byte {
	return []byte(cu.String())
}

// Print writes the unit to w without any reformatting.
func Print(w io.Writer, cu *CompilationUnit) error {
	_, err := cu.WriteTo(w)
	return err
}

// FullText concatenates the full text of a bare token slice.
func FullText(toks []token.Token) string {
	var sb strings.Builder
	for _, t := range toks {
		t.WriteTo(&sb)
	}
	return sb.String()
}
