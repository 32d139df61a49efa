package lexer

import (
	"csclean/internal/diag"
	"csclean/internal/token"
)

// stringPrefix inspects "$", "@" and "$$" prefixes before an opening quote.
// ok is false when no quote follows.
func (lx *Lexer) stringPrefix() (dollars int, verbatim, ok bool) {
	for _, b := range lx.cursor.Rest() {
		switch b {
		case '$':
			dollars++
		case '@':
			if verbatim {
				return 0, false, false
			}
			verbatim = true
		case '"':
			return dollars, verbatim, true
		default:
			return 0, false, false
		}
	}
	return 0, false, false
}

func (lx *Lexer) scanStringLit() token.Token {
	start := lx.cursor.Mark()
	kind, closed := lx.skipStringLike()
	sp := lx.cursor.SpanFrom(start)
	if !closed {
		lx.warn(diag.LexUnterminatedString, sp, "unterminated string literal")
	}
	return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
}

func (lx *Lexer) scanCharLit() token.Token {
	start := lx.cursor.Mark()
	closed := lx.skipQuoted('\'')
	sp := lx.cursor.SpanFrom(start)
	if !closed {
		lx.warn(diag.LexUnterminatedChar, sp, "unterminated character literal")
	}
	return token.Token{Kind: token.CharLit, Span: sp, Text: lx.text(sp)}
}

// skipStringLike consumes one string literal, prefix included, and reports
// its kind and whether the closing delimiter was found.
func (lx *Lexer) skipStringLike() (token.Kind, bool) {
	dollars, verbatim, _ := lx.stringPrefix()
	lx.cursor.Advance(dollars)
	if verbatim {
		lx.cursor.Bump()
	}
	if !verbatim && lx.quoteRun() >= 3 {
		return token.RawStringLit, lx.skipRaw()
	}
	switch {
	case dollars > 0:
		return token.InterpolatedStringLit, lx.skipInterpolated(verbatim)
	case verbatim:
		return token.VerbatimStringLit, lx.skipVerbatim()
	default:
		return token.StringLit, lx.skipQuoted('"')
	}
}

func (lx *Lexer) quoteRun() int {
	n := 0
	for _, b := range lx.cursor.Rest() {
		if b != '"' {
			break
		}
		n++
	}
	return n
}

// skipQuoted: обычная строка или char; перевод строки её обрывает.
func (lx *Lexer) skipQuoted(q byte) bool {
	lx.cursor.Bump()
	for !lx.cursor.EOF() {
		if lx.atNewline() {
			return false
		}
		switch lx.cursor.Bump() {
		case q:
			return true
		case '\\':
			if !lx.cursor.EOF() && !lx.atNewline() {
				lx.bumpRune()
			}
		}
	}
	return false
}

// skipVerbatim: @"..." где "" — экранированная кавычка, переводы строк разрешены.
func (lx *Lexer) skipVerbatim() bool {
	lx.cursor.Bump()
	for !lx.cursor.EOF() {
		if lx.cursor.Bump() == '"' {
			if !lx.cursor.Eat('"') {
				return true
			}
		}
	}
	return false
}

// skipRaw: """...""" с n>=3 кавычками; закрывает серия не короче открывающей.
// Дырки интерполяции внутри raw-строк не разбираются: текст всё равно
// переносится как есть.
func (lx *Lexer) skipRaw() bool {
	open := lx.quoteRun()
	lx.cursor.Advance(open)
	for !lx.cursor.EOF() {
		if lx.cursor.Peek() == '"' {
			run := lx.quoteRun()
			lx.cursor.Advance(run)
			if run >= open {
				return true
			}
			continue
		}
		lx.cursor.Bump()
	}
	return false
}

// skipInterpolated handles $"..." and $@"...". Holes are skipped with brace
// counting so that quotes and comment markers inside them never end the
// literal early.
func (lx *Lexer) skipInterpolated(verbatim bool) bool {
	lx.cursor.Bump()
	for !lx.cursor.EOF() {
		if !verbatim && lx.atNewline() {
			return false
		}
		b0 := lx.cursor.Peek()
		b1 := lx.cursor.PeekAt(1)
		switch {
		case b0 == '"' && verbatim && b1 == '"':
			lx.cursor.Advance(2)
		case b0 == '"':
			lx.cursor.Bump()
			return true
		case b0 == '\\' && !verbatim:
			lx.cursor.Bump()
			if !lx.cursor.EOF() && !lx.atNewline() {
				lx.bumpRune()
			}
		case b0 == '{' && b1 == '{', b0 == '}' && b1 == '}':
			lx.cursor.Advance(2)
		case b0 == '{':
			lx.cursor.Bump()
			if !lx.skipHole() {
				return false
			}
		default:
			lx.cursor.Bump()
		}
	}
	return false
}

// skipHole consumes an interpolation hole up to and including its closing '}'.
func (lx *Lexer) skipHole() bool {
	depth := 0
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch b {
		case '"':
			if _, ok := lx.skipStringLike(); !ok {
				return false
			}
			continue
		case '$', '@':
			if _, _, ok := lx.stringPrefix(); ok {
				if _, closed := lx.skipStringLike(); !closed {
					return false
				}
				continue
			}
		case '\'':
			lx.skipQuoted('\'')
			continue
		case '{':
			depth++
		case '}':
			if depth == 0 {
				lx.cursor.Bump()
				return true
			}
			depth--
		}
		lx.cursor.Bump()
	}
	return false
}
