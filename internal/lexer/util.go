package lexer

import (
	"unicode"
	"unicode/utf8"
)

func isDec(b byte) bool { return b >= '0' && b <= '9' }

func isHex(b byte) bool {
	return isDec(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

func isBin(b byte) bool { return b == '0' || b == '1' }

func isIdentStartRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.Is(unicode.Nl, r)
}

func isIdentContinueRune(r rune) bool {
	return isIdentStartRune(r) || unicode.IsDigit(r) ||
		unicode.In(r, unicode.Mn, unicode.Mc, unicode.Pc, unicode.Cf)
}

// identStartsAt reports whether an identifier starts n bytes past the cursor.
func (lx *Lexer) identStartsAt(n int) bool {
	rest := lx.cursor.Rest()
	if n >= len(rest) {
		return false
	}
	b := rest[n]
	if b < utf8.RuneSelf {
		return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
	}
	r, _ := utf8.DecodeRune(rest[n:])
	return isIdentStartRune(r)
}

// bumpRune consumes one UTF-8 encoded rune (or one invalid byte).
func (lx *Lexer) bumpRune() {
	rest := lx.cursor.Rest()
	if len(rest) == 0 {
		return
	}
	_, size := utf8.DecodeRune(rest)
	lx.cursor.Advance(size)
}

// atNewline reports whether a line terminator starts at the cursor.
func (lx *Lexer) atNewline() bool {
	return newlineLen(lx.cursor.Rest()) > 0
}
