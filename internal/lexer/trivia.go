package lexer

import (
	"csclean/internal/diag"
	"csclean/internal/token"
)

// collectTrivia собирает тривию перед токеном (trailing=false) или после него.
// Trailing-режим останавливается после первого перевода строки включительно;
// всё остальное достаётся leading-тривии следующего токена.
func (lx *Lexer) collectTrivia(trailing bool) []token.Trivia {
	var out []token.Trivia
	for !lx.cursor.EOF() {
		ctx := InLeading
		switch {
		case trailing:
			ctx = InTrailing
		case lx.lineStart:
			ctx = AtLineStart
		}
		cls, ok := ClassifyAt(lx.cursor.Rest(), 0, ctx)
		if !ok {
			break
		}

		start := lx.cursor.Mark()
		lx.cursor.Advance(cls.Len)
		sp := lx.cursor.SpanFrom(start)
		tv := token.Trivia{Kind: cls.Kind, Span: sp, Text: lx.text(sp)}
		if cls.Kind.IsDoc() {
			tv.Parts = SplitDoc(tv)
		}
		if cls.Unterminated {
			lx.warn(diag.LexUnterminatedBlockComment, sp, "unterminated block comment")
		}
		out = append(out, tv)

		switch cls.Kind {
		case token.TriviaNewline:
			lx.lineStart = true
			if trailing {
				return out
			}
		case token.TriviaSpace:
			// пробелы не меняют lineStart
		default:
			lx.lineStart = false
		}
	}
	return out
}
