package token

import (
	"strings"

	"csclean/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind     Kind
	Span     source.Span
	Text     string
	Leading  []Trivia
	Trailing []Trivia
}

// IsLiteral reports whether the token is a numeric, character, or string literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case NumberLit, CharLit, StringLit, VerbatimStringLit, InterpolatedStringLit, RawStringLit:
		return true
	default:
		return false
	}
}

// IsPunctOrOp reports whether the token is a punctuation or operator.
func (t Token) IsPunctOrOp() bool {
	return t.Kind >= LBrace && t.Kind <= FatArrow
}

// IsKeyword reports whether the token is a reserved keyword.
func (t Token) IsKeyword() bool { return t.Kind == Keyword }

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// IsWord reports whether the token is an identifier or keyword spelled exactly w.
// Contextual keywords such as "global" or "alias" are checked this way.
func (t Token) IsWord(w string) bool {
	return (t.Kind == Ident || t.Kind == Keyword) && t.Text == w
}

// FullText returns leading trivia, token text and trailing trivia concatenated.
func (t Token) FullText() string {
	var sb strings.Builder
	t.WriteTo(&sb)
	return sb.String()
}

// WriteTo appends the full text of the token to sb.
func (t Token) WriteTo(sb *strings.Builder) {
	for _, tv := range t.Leading {
		sb.WriteString(tv.Text)
	}
	sb.WriteString(t.Text)
	for _, tv := range t.Trailing {
		sb.WriteString(tv.Text)
	}
}

// FullWidth returns the byte length of FullText without building it.
func (t Token) FullWidth() int {
	n := len(t.Text)
	for _, tv := range t.Leading {
		n += len(tv.Text)
	}
	for _, tv := range t.Trailing {
		n += len(tv.Text)
	}
	return n
}

// HasComments reports whether any leading or trailing trivia is a non-empty comment.
func (t Token) HasComments() bool {
	for _, tv := range t.Leading {
		if tv.Kind.IsComment() && tv.Text != "" {
			return true
		}
	}
	for _, tv := range t.Trailing {
		if tv.Kind.IsComment() && tv.Text != "" {
			return true
		}
	}
	return false
}
