package lexer

import (
	"csclean/internal/diag"
	"csclean/internal/token"
)

// операторы по убыванию длины: жадный выбор самого длинного совпадения
var ops4 = map[string]token.Kind{
	">>>=": token.UShrAssign,
}

var ops3 = map[string]token.Kind{
	"<<=": token.ShlAssign,
	">>=": token.ShrAssign,
	">>>": token.UShr,
	"??=": token.QuestionQuestionAssign,
}

var ops2 = map[string]token.Kind{
	"::": token.ColonColon,
	"?.": token.QuestionDot,
	"??": token.QuestionQuestion,
	"..": token.DotDot,
	"->": token.Arrow,
	"=>": token.FatArrow,
	"==": token.EqEq,
	"!=": token.BangEq,
	"<=": token.LtEq,
	">=": token.GtEq,
	"&&": token.AndAnd,
	"||": token.OrOr,
	"++": token.PlusPlus,
	"--": token.MinusMinus,
	"<<": token.Shl,
	">>": token.Shr,
	"+=": token.PlusAssign,
	"-=": token.MinusAssign,
	"*=": token.StarAssign,
	"/=": token.SlashAssign,
	"%=": token.PercentAssign,
	"&=": token.AmpAssign,
	"|=": token.PipeAssign,
	"^=": token.CaretAssign,
}

var ops1 = [256]token.Kind{
	'{': token.LBrace, '}': token.RBrace,
	'(': token.LParen, ')': token.RParen,
	'[': token.LBracket, ']': token.RBracket,
	';': token.Semicolon, ',': token.Comma, '.': token.Dot,
	':': token.Colon, '?': token.Question,
	'+': token.Plus, '-': token.Minus, '*': token.Star, '/': token.Slash,
	'%': token.Percent, '&': token.Amp, '|': token.Pipe, '^': token.Caret,
	'!': token.Bang, '~': token.Tilde, '=': token.Assign,
	'<': token.Lt, '>': token.Gt,
}

func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	rest := lx.cursor.Rest()

	emit := func(kind token.Kind, n int) token.Token {
		lx.cursor.Advance(n)
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
	}

	if len(rest) >= 4 {
		if k, ok := ops4[string(rest[:4])]; ok {
			return emit(k, 4)
		}
	}
	if len(rest) >= 3 {
		if k, ok := ops3[string(rest[:3])]; ok {
			return emit(k, 3)
		}
	}
	if len(rest) >= 2 {
		// "a?.5:b" — это тернарный оператор, а не ?.
		if k, ok := ops2[string(rest[:2])]; ok && (k != token.QuestionDot || len(rest) == 2 || !isDec(rest[2])) {
			return emit(k, 2)
		}
	}
	if k := ops1[rest[0]]; k != token.Invalid {
		return emit(k, 1)
	}

	lx.bumpRune()
	sp := lx.cursor.SpanFrom(start)
	lx.warn(diag.LexUnknownChar, sp, "unknown character")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}
