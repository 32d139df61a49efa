package syntax

import (
	"csclean/internal/diag"
	"csclean/internal/lexer"
	"csclean/internal/source"
	"csclean/internal/token"
)

type Options struct {
	Reporter diag.Reporter // может быть nil
}

// Parse lexes file and builds its compilation unit.
func Parse(file *source.File, opts Options) *CompilationUnit {
	toks := lexer.Tokenize(file, lexer.Options{Reporter: opts.Reporter})
	cu := Build(toks, opts)
	cu.File = file.ID
	return cu
}

// Build groups a token stream into a CompilationUnit. It never fails:
// whatever the input, printing the result reproduces the tokens' full text.
// A missing trailing EOF token is synthesized.
func Build(toks []token.Token, opts Options) *CompilationUnit {
	if len(toks) == 0 || toks[len(toks)-1].Kind != token.EOF {
		var end source.Span
		if len(toks) > 0 {
			end = toks[len(toks)-1].Span
			end.Start = end.End
		}
		toks = append(toks[:len(toks):len(toks)], token.Token{Kind: token.EOF, Span: end})
	}

	b := builder{toks: toks, opts: opts}
	cu := &CompilationUnit{File: toks[len(toks)-1].Span.File}
	for b.atExtern() {
		cu.Externs = append(cu.Externs, b.parseExtern())
	}
	for b.atUsingDirective() {
		cu.Usings = append(cu.Usings, b.parseUsing())
	}
	b.parseMembers(cu)
	cu.EOF = b.toks[b.pos]
	return cu
}

// builder — курсор по готовому срезу токенов; последний токен всегда EOF.
type builder struct {
	toks []token.Token
	pos  int
	opts Options
}

func (b *builder) peek(n int) token.Token {
	if i := b.pos + n; i < len(b.toks) {
		return b.toks[i]
	}
	return b.toks[len(b.toks)-1]
}

func (b *builder) at(k token.Kind) bool { return b.peek(0).Kind == k }

func (b *builder) atExtern() bool {
	return b.peek(0).IsWord("extern") && b.peek(1).IsWord("alias")
}

// atUsingDirective: `using` или `global using`, но не using-оператор
// верхнеуровневого кода (`using (...)`, `using var x = ...;`).
func (b *builder) atUsingDirective() bool {
	n := 0
	if b.peek(0).IsWord("global") && b.peek(1).IsWord("using") {
		n = 1
	}
	if !b.peek(n).IsWord("using") {
		return false
	}
	next := b.peek(n + 1)
	return next.Kind != token.LParen && !next.IsWord("var")
}

func (b *builder) parseExtern() *ExternAlias {
	toks, ok := b.untilSemicolon()
	if !ok {
		diag.ReportWarning(b.opts.Reporter, diag.SynUnterminatedExtern, tokensSpan(toks), "extern alias directive is missing ';'")
	}
	return &ExternAlias{Tokens: toks, Terminated: ok}
}

func (b *builder) parseUsing() *UsingDirective {
	toks, ok := b.untilSemicolon()
	if !ok {
		diag.ReportWarning(b.opts.Reporter, diag.SynUnterminatedUsing, tokensSpan(toks), "using directive is missing ';'")
	}
	return &UsingDirective{Tokens: toks, Terminated: ok}
}

// untilSemicolon consumes through the next ';' at paren/bracket depth 0.
// A brace, a declaration keyword at depth 0 or EOF ends the directive
// early and unterminated.
func (b *builder) untilSemicolon() ([]token.Token, bool) {
	start := b.pos
	depth := 0
	// первый токен (using/extern/global) съедаем всегда
	b.pos++
	if b.toks[start].IsWord("global") && b.peek(0).IsWord("using") {
		b.pos++
	}
	for !b.at(token.EOF) {
		switch b.peek(0).Kind {
		case token.LParen, token.LBracket:
			depth++
		case token.RParen, token.RBracket:
			if depth > 0 {
				depth--
			}
		case token.LBrace, token.RBrace:
			if depth == 0 {
				return b.toks[start:b.pos:b.pos], false
			}
		case token.Semicolon:
			if depth == 0 {
				b.pos++
				return b.toks[start:b.pos:b.pos], true
			}
		case token.Keyword:
			if b.stopsDirective() && depth == 0 {
				return b.toks[start:b.pos:b.pos], false
			}
		}
		b.pos++
	}
	return b.toks[start:b.pos:b.pos], false
}

// ключевые слова, которые не бывают внутри пути using-директивы:
// без ';' директива заканчивается перед ними, а не съедает объявление.
// unsafe здесь нет: `using unsafe P = int*;`.
var directiveStops = map[string]struct{}{
	"namespace": {}, "class": {}, "struct": {}, "interface": {}, "enum": {},
	"delegate": {}, "public": {}, "private": {}, "protected": {}, "internal": {},
	"abstract": {}, "sealed": {}, "using": {}, "extern": {},
	"readonly": {},
}

// stopsDirective reports whether the current keyword ends an unterminated
// directive. `delegate*` is a function pointer type inside an alias.
func (b *builder) stopsDirective() bool {
	kw := b.peek(0)
	if _, stop := directiveStops[kw.Text]; !stop {
		return false
	}
	return kw.Text != "delegate" || b.peek(1).Kind != token.Star
}

func (b *builder) parseMembers(cu *CompilationUnit) {
	fileScoped := false
	for !b.at(token.EOF) {
		if b.atUsingDirective() && !fileScoped {
			diag.ReportWarning(b.opts.Reporter, diag.SynUsingAfterDeclaration, b.peek(0).Span,
				"using directive after a declaration is kept as is")
		}
		m := b.parseMember()
		if m.FileScoped() {
			fileScoped = true
		}
		cu.Members = append(cu.Members, m)
	}
}

// parseMember режет по балансу фигурных скобок верхнего уровня: член
// заканчивается на '}', вернувшей глубину в 0 (плюс сразу следующая ';'),
// или на ';' при нулевой глубине.
func (b *builder) parseMember() *Member {
	start := b.pos
	braces, parens := 0, 0
	for !b.at(token.EOF) {
		t := b.peek(0)
		b.pos++
		switch t.Kind {
		case token.LParen, token.LBracket:
			parens++
		case token.RParen, token.RBracket:
			if parens > 0 {
				parens--
			}
		case token.LBrace:
			braces++
		case token.RBrace:
			if braces == 0 {
				diag.ReportWarning(b.opts.Reporter, diag.SynUnbalancedBraces, t.Span, "unmatched '}'")
				return b.member(start)
			}
			braces--
			if braces == 0 && parens == 0 {
				if b.at(token.Semicolon) {
					b.pos++
				}
				return b.member(start)
			}
		case token.Semicolon:
			if braces == 0 && parens == 0 {
				return b.member(start)
			}
		}
	}
	if braces > 0 {
		diag.ReportWarning(b.opts.Reporter, diag.SynUnbalancedBraces, b.toks[start].Span, "missing '}' before end of file")
	}
	return b.member(start)
}

func (b *builder) member(start int) *Member {
	return &Member{Tokens: b.toks[start:b.pos:b.pos]}
}
