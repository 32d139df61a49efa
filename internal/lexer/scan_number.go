package lexer

import (
	"csclean/internal/diag"
	"csclean/internal/token"
)

// scanNumber: 0x.., 0b.., десятичные с '_', дробная часть, экспонента, суффиксы.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()

	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '0' && (b1 == 'x' || b1 == 'X' || b1 == 'b' || b1 == 'B') {
		lx.cursor.Advance(2)
		digit := isHex
		if b1 == 'b' || b1 == 'B' {
			digit = isBin
		}
		n := 0
		for c := lx.cursor.Peek(); digit(c) || c == '_'; c = lx.cursor.Peek() {
			lx.cursor.Bump()
			n++
		}
		if n == 0 {
			lx.warn(diag.LexBadNumber, lx.cursor.SpanFrom(start), "missing digits after radix prefix")
		}
		lx.scanNumberSuffix()
		return lx.numberToken(start)
	}

	lx.skipDecimals()
	if lx.cursor.Peek() == '.' && isDec(lx.cursor.PeekAt(1)) {
		lx.cursor.Bump()
		lx.skipDecimals()
	}
	if c := lx.cursor.Peek(); c == 'e' || c == 'E' {
		next := lx.cursor.PeekAt(1)
		switch {
		case isDec(next):
			lx.cursor.Bump()
			lx.skipDecimals()
		case (next == '+' || next == '-') && isDec(lx.cursor.PeekAt(2)):
			lx.cursor.Advance(2)
			lx.skipDecimals()
		}
	}
	lx.scanNumberSuffix()
	return lx.numberToken(start)
}

func (lx *Lexer) skipDecimals() {
	for c := lx.cursor.Peek(); isDec(c) || c == '_'; c = lx.cursor.Peek() {
		lx.cursor.Bump()
	}
}

// suffixes: u, l, ul, lu, f, d, m (any case)
func (lx *Lexer) scanNumberSuffix() {
	for i := 0; i < 2; i++ {
		switch lx.cursor.Peek() {
		case 'u', 'U', 'l', 'L', 'f', 'F', 'd', 'D', 'm', 'M':
			lx.cursor.Bump()
		default:
			return
		}
	}
}

func (lx *Lexer) numberToken(start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.NumberLit, Span: sp, Text: lx.text(sp)}
}
