package lexer

import (
	"iter"

	"csclean/internal/diag"
	"csclean/internal/source"
	"csclean/internal/token"
)

// Lexer turns C# source bytes into tokens with attached trivia.
// Конкатенация FullText всех токенов (включая EOF) равна исходному файлу.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token
	// lineStart: с начала строки видели только пробелы.
	lineStart bool
	done      bool
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:      file,
		cursor:    NewCursor(file),
		opts:      opts,
		lineStart: true,
	}
}

// Next returns the next token. After EOF it keeps returning an EOF
// token without trivia.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		t := *lx.look
		lx.look = nil
		return t
	}
	if lx.done {
		return token.Token{Kind: token.EOF, Span: lx.emptySpan()}
	}

	leading := lx.collectTrivia(false)
	if lx.cursor.EOF() {
		lx.done = true
		return token.Token{Kind: token.EOF, Span: lx.emptySpan(), Leading: leading}
	}

	tok := lx.scanToken()
	lx.lineStart = false
	if tok.Span.Len() > maxTokenLength {
		lx.errLex(diag.LexTokenTooLong, tok.Span, "token exceeds maximum length")
	}
	tok.Leading = leading
	tok.Trailing = lx.collectTrivia(true)
	return tok
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	if lx.look == nil {
		t := lx.Next()
		lx.look = &t
	}
	return *lx.look
}

// All lexes the remaining input; the last token is always EOF.
func (lx *Lexer) All() []token.Token {
	var out []token.Token
	for {
		t := lx.Next()
		out = append(out, t)
		if t.Kind == token.EOF {
			return out
		}
	}
}

// Tokens returns a restartable sequence over the whole file. Each
// iteration lexes from the beginning with a fresh lexer.
func (lx *Lexer) Tokens() iter.Seq[token.Token] {
	return func(yield func(token.Token) bool) {
		fresh := New(lx.file, lx.opts)
		for {
			t := fresh.Next()
			if !yield(t) || t.Kind == token.EOF {
				return
			}
		}
	}
}

// Tokenize lexes the whole file in one call.
func Tokenize(file *source.File, opts Options) []token.Token {
	return New(file, opts).All()
}

func (lx *Lexer) emptySpan() source.Span {
	end := lx.cursor.End()
	return source.Span{File: lx.file.ID, Start: end, End: end}
}

func (lx *Lexer) text(sp source.Span) string {
	return string(lx.file.Content[sp.Start:sp.End])
}

func (lx *Lexer) scanToken() token.Token {
	ch := lx.cursor.Peek()
	switch {
	case ch == '"':
		return lx.scanStringLit()
	case ch == '\'':
		return lx.scanCharLit()
	case ch == '$' || ch == '@':
		if _, _, ok := lx.stringPrefix(); ok {
			return lx.scanStringLit()
		}
		if ch == '@' && lx.identStartsAt(1) {
			return lx.scanIdentOrKeyword()
		}
		return lx.scanOperatorOrPunct()
	case isDec(ch) || (ch == '.' && isDec(lx.cursor.PeekAt(1))):
		return lx.scanNumber()
	case lx.identStartsAt(0):
		return lx.scanIdentOrKeyword()
	default:
		return lx.scanOperatorOrPunct()
	}
}
