package lexer

import (
	"unicode/utf8"

	"csclean/internal/token"
)

// scanIdentOrKeyword читает идентификатор; "@" делает его verbatim, и
// ключевые слова тогда не распознаются.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()
	verbatim := lx.cursor.Eat('@')
	for {
		rest := lx.cursor.Rest()
		if len(rest) == 0 {
			break
		}
		b := rest[0]
		if b < utf8.RuneSelf {
			if b == '_' || isDec(b) || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') {
				lx.cursor.Bump()
				continue
			}
			break
		}
		r, size := utf8.DecodeRune(rest)
		if !isIdentContinueRune(r) {
			break
		}
		lx.cursor.Advance(size)
	}
	sp := lx.cursor.SpanFrom(start)
	text := lx.text(sp)
	kind := token.Ident
	if !verbatim {
		kind, _ = token.LookupKeyword(text)
	}
	return token.Token{Kind: kind, Span: sp, Text: text}
}
