package lexer

import (
	"bytes"
	"unicode"
	"unicode/utf8"

	"csclean/internal/source"
	"csclean/internal/token"
)

// Context tells the classifier where the trivia run is being collected.
type Context uint8

const (
	// InLeading is leading trivia after something other than whitespace on the line.
	InLeading Context = iota
	// AtLineStart is leading trivia with only whitespace before it on the
	// line; preprocessor directives are recognised here and nowhere else.
	AtLineStart
	// InTrailing is trivia after a token on the same line. Doc comment
	// forms are read as ordinary comments here.
	InTrailing
)

// Class is the classifier verdict for one trivia piece.
type Class struct {
	Kind token.TriviaKind
	Len  int
	// Unterminated marks a block comment that ran to end of input.
	Unterminated bool
}

// ClassifyAt reports the trivia piece starting at src[off], if any.
// Порядок проверок важен: doc-формы раньше обычных комментариев.
func ClassifyAt(src []byte, off int, ctx Context) (Class, bool) {
	if off < 0 || off >= len(src) {
		return Class{}, false
	}
	rest := src[off:]
	switch rest[0] {
	case '/':
		if len(rest) < 2 {
			return Class{}, false
		}
		switch rest[1] {
		case '/':
			kind := token.TriviaLineComment
			if ctx != InTrailing && isDocLineStart(rest) {
				kind = token.TriviaDocLine
			}
			return Class{Kind: kind, Len: lineEnd(rest)}, true
		case '*':
			kind := token.TriviaBlockComment
			if ctx != InTrailing && isDocBlockStart(rest) {
				kind = token.TriviaDocBlock
			}
			end := bytes.Index(rest[2:], []byte("*/"))
			if end < 0 {
				return Class{Kind: kind, Len: len(rest), Unterminated: true}, true
			}
			return Class{Kind: kind, Len: end + 4}, true
		}
		return Class{}, false
	case '#':
		if ctx != AtLineStart {
			return Class{}, false
		}
		return Class{Kind: token.TriviaDirective, Len: directiveLen(rest)}, true
	}

	if n := newlineLen(rest); n > 0 {
		return Class{Kind: token.TriviaNewline, Len: n}, true
	}
	if n := spaceRunLen(rest); n > 0 {
		return Class{Kind: token.TriviaSpace, Len: n}, true
	}
	return Class{}, false
}

// "///" but not "////".
func isDocLineStart(b []byte) bool {
	return len(b) >= 3 && b[2] == '/' && (len(b) == 3 || b[3] != '/')
}

// "/**" but not "/**/".
func isDocBlockStart(b []byte) bool {
	return len(b) >= 3 && b[2] == '*' && (len(b) == 3 || b[3] != '/')
}

// directiveLen returns the directive length without a trailing "//" comment
// and without the whitespace before it; both become separate trivia.
// Message directives (#region, #error, ...) run to the end of the line.
func directiveLen(b []byte) int {
	end := lineEnd(b)
	if _, msg := messageDirectives[directiveName(b[:end])]; !msg {
		if i := bytes.Index(b[:end], []byte("//")); i > 0 {
			end = i
		}
	}
	for end > 1 && (b[end-1] == ' ' || b[end-1] == '\t' || b[end-1] == '\v' || b[end-1] == '\f') {
		end--
	}
	return end
}

// у этих директив после имени идёт произвольный текст, "//" в нём не комментарий
var messageDirectives = map[string]struct{}{
	"region": {}, "endregion": {}, "error": {}, "warning": {},
}

// directiveName returns the word after '#' and optional blanks.
func directiveName(line []byte) string {
	i := 1
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	j := i
	for j < len(line) && line[j] >= 'a' && line[j] <= 'z' {
		j++
	}
	return string(line[i:j])
}

// lineEnd returns the index of the first line terminator in b, or len(b).
func lineEnd(b []byte) int {
	for i := 0; i < len(b); i++ {
		switch b[i] {
		case '\n', '\r':
			return i
		case 0xC2, 0xE2:
			if newlineLen(b[i:]) > 0 {
				return i
			}
		}
	}
	return len(b)
}

// newlineLen returns the length of the line terminator at the start of b,
// or 0. "\r\n" is one terminator.
func newlineLen(b []byte) int {
	if len(b) == 0 {
		return 0
	}
	switch b[0] {
	case '\n':
		return 1
	case '\r':
		if len(b) > 1 && b[1] == '\n' {
			return 2
		}
		return 1
	case 0xC2:
		if len(b) > 1 && b[1] == 0x85 { // U+0085
			return 2
		}
	case 0xE2:
		if len(b) > 2 && b[1] == 0x80 && (b[2] == 0xA8 || b[2] == 0xA9) { // U+2028, U+2029
			return 3
		}
	}
	return 0
}

func isSpaceRune(r rune) bool {
	switch r {
	case ' ', '\t', '\v', '\f', 0x00A0, 0xFEFF:
		return true
	}
	return r >= utf8.RuneSelf && unicode.Is(unicode.Zs, r)
}

// spaceRunLen returns the length of the whitespace run at the start of b.
func spaceRunLen(b []byte) int {
	n := 0
	for n < len(b) {
		c := b[n]
		if c < utf8.RuneSelf {
			if c == ' ' || c == '\t' || c == '\v' || c == '\f' {
				n++
				continue
			}
			break
		}
		r, size := utf8.DecodeRune(b[n:])
		if !isSpaceRune(r) {
			break
		}
		n += size
	}
	return n
}

// SplitDoc returns the structured parts of a documentation comment:
// exterior markers, content, whitespace and newlines in source order.
// Non-doc trivia yields nil.
func SplitDoc(tv token.Trivia) []token.Trivia {
	text := tv.Text
	var parts []token.Trivia
	emit := func(kind token.TriviaKind, from, to int) {
		if from >= to {
			return
		}
		parts = append(parts, token.Trivia{
			Kind: kind,
			Span: subSpan(tv.Span, from, to),
			Text: text[from:to],
		})
	}

	switch tv.Kind {
	case token.TriviaDocLine:
		emit(token.TriviaDocExterior, 0, 3)
		emit(token.TriviaDocLine, 3, len(text))
		return parts
	case token.TriviaDocBlock:
	default:
		return nil
	}

	emit(token.TriviaDocExterior, 0, 3)
	bodyEnd := len(text)
	closed := len(text) >= 5 && text[len(text)-2:] == "*/"
	if closed {
		bodyEnd -= 2
	}
	body := []byte(text)
	i, lineStart := 3, false
	for i < bodyEnd {
		if nl := newlineLen(body[i:bodyEnd]); nl > 0 {
			emit(token.TriviaNewline, i, i+nl)
			i += nl
			lineStart = true
			continue
		}
		if lineStart {
			lineStart = false
			ws := spaceRunLen(body[i:bodyEnd])
			emit(token.TriviaSpace, i, i+ws)
			i += ws
			if i < bodyEnd && body[i] == '*' {
				emit(token.TriviaDocExterior, i, i+1)
				i++
			}
			continue
		}
		j := i + lineEnd(body[i:bodyEnd])
		emit(token.TriviaDocBlock, i, j)
		i = j
	}
	if closed {
		emit(token.TriviaDocExterior, bodyEnd, len(text))
	}
	return parts
}

func subSpan(sp source.Span, from, to int) source.Span {
	return source.Span{
		File:  sp.File,
		Start: sp.Start + uint32(from), //nolint:gosec // from <= len(text) which fits the span
		End:   sp.Start + uint32(to),   //nolint:gosec // same bound
	}
}
