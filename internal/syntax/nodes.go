package syntax

import (
	"strings"

	"csclean/internal/source"
	"csclean/internal/token"
)

// CompilationUnit — корень дерева одного документа.
// Узлы неизменяемы: правки строят новый CompilationUnit и разделяют
// нетронутые узлы со старым.
type CompilationUnit struct {
	File    source.FileID
	Externs []*ExternAlias
	Usings  []*UsingDirective
	Members []*Member
	// EOF держит в Leading всю тривию после последнего настоящего токена.
	EOF token.Token
	// UsingsRemoved is set once a using directive has been deleted from
	// the unit; later passes keep the deletion site free of blank trivia.
	UsingsRemoved bool
}

// ExternAlias is `extern alias X;`.
type ExternAlias struct {
	Tokens     []token.Token
	Terminated bool
}

// Name returns the alias identifier, or "" for malformed input.
func (e *ExternAlias) Name() string {
	if len(e.Tokens) > 2 && e.Tokens[2].Kind == token.Ident {
		return e.Tokens[2].Text
	}
	return ""
}

// Span covers the directive tokens without trivia.
func (e *ExternAlias) Span() source.Span { return tokensSpan(e.Tokens) }

// UsingDirective is one file-level using directive from `using` (or
// `global using`) through its `;`, trivia included.
type UsingDirective struct {
	Tokens     []token.Token
	Terminated bool
}

// IsGlobal reports a `global using` directive.
func (u *UsingDirective) IsGlobal() bool {
	return len(u.Tokens) > 0 && u.Tokens[0].IsWord("global")
}

// IsStatic reports a `using static` directive.
func (u *UsingDirective) IsStatic() bool {
	i := u.keywordIndex() + 1
	return i < len(u.Tokens) && u.Tokens[i].IsWord("static")
}

// Alias returns X for `using X = ...;`, "" otherwise.
func (u *UsingDirective) Alias() string {
	start, eq := u.pathStart(), u.assignIndex()
	if eq < 0 || eq-start != 1 {
		return ""
	}
	return u.Tokens[start].Text
}

// Name returns the namespace or type path without trivia. For alias
// directives it is the right-hand side of '='.
func (u *UsingDirective) Name() string {
	start := u.pathStart()
	if eq := u.assignIndex(); eq >= 0 {
		start = eq + 1
	}
	var sb strings.Builder
	for _, t := range u.Tokens[min(start, len(u.Tokens)):] {
		if t.Kind == token.Semicolon {
			break
		}
		sb.WriteString(t.Text)
	}
	return sb.String()
}

// Span covers the directive tokens without trivia.
func (u *UsingDirective) Span() source.Span { return tokensSpan(u.Tokens) }

func (u *UsingDirective) keywordIndex() int {
	if u.IsGlobal() {
		return 1
	}
	return 0
}

// pathStart — индекс первого токена после `using` / `using static`
// и необязательного `unsafe`.
func (u *UsingDirective) pathStart() int {
	i := u.keywordIndex() + 1
	if u.IsStatic() {
		i++
	}
	if i < len(u.Tokens) && u.Tokens[i].IsWord("unsafe") {
		i++
	}
	return i
}

func (u *UsingDirective) assignIndex() int {
	for i := u.pathStart(); i < len(u.Tokens); i++ {
		switch u.Tokens[i].Kind {
		case token.Assign:
			return i
		case token.Semicolon:
			return -1
		}
	}
	return -1
}

// Member is an opaque run of tokens forming one top-level declaration
// or statement.
type Member struct {
	Tokens []token.Token
}

// Kind returns the declaration keyword of the member ("namespace", "class",
// "record", ...) or "other" when none is found before the body.
func (m *Member) Kind() string {
	i := m.declIndex()
	if i < 0 {
		return "other"
	}
	return m.Tokens[i].Text
}

// Name returns the declared name; namespaces keep their dotted path.
func (m *Member) Name() string {
	i := m.declIndex()
	if i < 0 {
		return ""
	}
	rest := m.Tokens[i+1:]
	switch m.Tokens[i].Text {
	case "namespace":
		var sb strings.Builder
		for _, t := range rest {
			if t.Kind != token.Ident && t.Kind != token.Dot {
				break
			}
			sb.WriteString(t.Text)
		}
		return sb.String()
	case "delegate":
		// delegate R Name<T>(...): имя стоит перед '(' или '<'
		for j := 0; j+1 < len(rest); j++ {
			if rest[j].Kind == token.Ident && (rest[j+1].Kind == token.LParen || rest[j+1].Kind == token.Lt) {
				return rest[j].Text
			}
		}
		return ""
	case "record":
		if len(rest) > 0 && (rest[0].IsWord("struct") || rest[0].IsWord("class")) {
			rest = rest[1:]
		}
	}
	if len(rest) > 0 && rest[0].Kind == token.Ident {
		return rest[0].Text
	}
	return ""
}

// FileScoped reports a `namespace N;` member.
func (m *Member) FileScoped() bool {
	return m.Kind() == "namespace" && len(m.Tokens) > 0 && m.Tokens[len(m.Tokens)-1].Kind == token.Semicolon
}

// Span covers the member tokens without trivia.
func (m *Member) Span() source.Span { return tokensSpan(m.Tokens) }

var declKeywords = map[string]struct{}{
	"namespace": {}, "class": {}, "struct": {}, "interface": {},
	"enum": {}, "delegate": {}, "record": {},
}

// declIndex ищет ключевое слово объявления до первой '{', '(' или ';'
// вне атрибутов.
func (m *Member) declIndex() int {
	brackets := 0
	for i, t := range m.Tokens {
		switch t.Kind {
		case token.LBracket:
			brackets++
		case token.RBracket:
			brackets--
		case token.LBrace, token.LParen, token.Semicolon, token.Assign:
			if brackets == 0 {
				return -1
			}
		}
		if brackets > 0 {
			continue
		}
		if _, ok := declKeywords[t.Text]; ok && (t.Kind == token.Keyword || t.IsWord("record")) {
			return i
		}
	}
	return -1
}

func tokensSpan(toks []token.Token) source.Span {
	if len(toks) == 0 {
		return source.Span{}
	}
	return toks[0].Span.Cover(toks[len(toks)-1].Span)
}
