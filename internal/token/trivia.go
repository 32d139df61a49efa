package token

import "csclean/internal/source"

type TriviaKind uint8

const (
	TriviaSpace TriviaKind = iota
	TriviaNewline
	TriviaLineComment
	TriviaBlockComment
	TriviaDocLine
	TriviaDocBlock
	TriviaDocExterior
	TriviaDirective
)

// IsComment reports whether trivia of this kind is removed when stripping comments.
func (k TriviaKind) IsComment() bool {
	switch k {
	case TriviaLineComment, TriviaBlockComment, TriviaDocLine, TriviaDocBlock, TriviaDocExterior:
		return true
	default:
		return false
	}
}

// IsDoc reports whether the kind belongs to a documentation comment.
func (k TriviaKind) IsDoc() bool {
	return k == TriviaDocLine || k == TriviaDocBlock || k == TriviaDocExterior
}

// IsBlank reports whether trivia of this kind never shows visible text.
func (k TriviaKind) IsBlank() bool {
	return k == TriviaSpace || k == TriviaNewline
}

type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
	// Parts is the structured view of a documentation comment: exterior
	// markers (///, /**, *, */) as TriviaDocExterior, the rest as the
	// comment kind itself, plus the whitespace and newlines between them.
	// Concatenated Parts equal Text. Nil for every other kind.
	Parts []Trivia
}

// Stripped returns a zero-length trivia of the same kind anchored at the
// start of the original span.
func (tv Trivia) Stripped() Trivia {
	return Trivia{Kind: tv.Kind, Span: tv.Span.Collapse()}
}
