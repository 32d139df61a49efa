package lexer

import (
	"strings"
	"testing"

	"csclean/internal/diag"
	"csclean/internal/source"
	"csclean/internal/token"

	"github.com/google/go-cmp/cmp"
)

// makeTestLexer создает лексер для тестов
func makeTestLexer(input string) (*Lexer, *diag.Bag) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.cs", []byte(input))
	file := fs.Get(fileID)

	bag := diag.NewBag(100)
	opts := Options{Reporter: &diag.BagReporter{Bag: bag}}

	return New(file, opts), bag
}

func fullText(toks []token.Token) string {
	var sb strings.Builder
	for _, t := range toks {
		t.WriteTo(&sb)
	}
	return sb.String()
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, 0, len(toks))
	for _, t := range toks {
		out = append(out, t.Kind)
	}
	return out
}

func triviaKinds(tv []token.Trivia) []token.TriviaKind {
	out := make([]token.TriviaKind, 0, len(tv))
	for _, t := range tv {
		out = append(out, t.Kind)
	}
	return out
}

func TestRoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"\n",
		"   ",
		"using System;\nclass A {}\n",
		"using System;\r\nnamespace N\r\n{\r\n    class A { }\r\n}\r\n",
		"a\rb\r\nc\n",
		"int x = 1; int y = 2;\u0085int z; ",
		"\ufeffusing System;\n",
		"/// <summary>Doc</summary>\n/** block\n * doc\n */\nclass A {}",
		"#region R // note\nclass A {}\n#endregion\n",
		"var s = $\"x {a + \"}\"} /* not a comment */\";\n",
		"var s = @\"line1\n// still string\n\"\"q\"\"\";\n",
		"var r = \"\"\"\n  raw \"\" /* x */\n  \"\"\";\n",
		"char c = '\\''; char d = '\"';\n",
		"x = a?.b ?? c; y >>>= 2; z = a?.5:1;",
		"/* unterminated",
		"\"unterminated\nnext",
		"€ ` \\ #",
		"int @class = 0x_FF_u + 0b1010 + 1_000.5e-3m + .5f;",
		"  \t\v\f \u3000x",
	}
	for _, in := range inputs {
		lx, _ := makeTestLexer(in)
		toks := lx.All()
		if got := fullText(toks); got != in {
			t.Errorf("round trip mismatch:\n in: %q\nout: %q", in, got)
		}
		if toks[len(toks)-1].Kind != token.EOF {
			t.Errorf("%q: last token must be EOF", in)
		}
	}
}

func TestBasicTokens(t *testing.T) {
	lx, bag := makeTestLexer("global using static System.Math; extern alias Foo;")
	got := kinds(lx.All())
	want := []token.Kind{
		token.Ident, token.Keyword, token.Keyword, token.Ident, token.Dot, token.Ident, token.Semicolon,
		token.Keyword, token.Ident, token.Ident, token.Semicolon, token.EOF,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("kinds mismatch (-want +got):\n%s", diff)
	}
	if bag.Len() != 0 {
		t.Errorf("unexpected diagnostics: %v", bag.Items())
	}
}

func TestTrailingTriviaStopsAtFirstNewline(t *testing.T) {
	lx, _ := makeTestLexer("a; // c1\n\n  // c2\nb")
	toks := lx.All()

	semi := toks[1]
	if diff := cmp.Diff(
		[]token.TriviaKind{token.TriviaSpace, token.TriviaLineComment, token.TriviaNewline},
		triviaKinds(semi.Trailing),
	); diff != "" {
		t.Errorf("trailing of ';' (-want +got):\n%s", diff)
	}

	b := toks[2]
	if diff := cmp.Diff(
		[]token.TriviaKind{token.TriviaNewline, token.TriviaSpace, token.TriviaLineComment, token.TriviaNewline},
		triviaKinds(b.Leading),
	); diff != "" {
		t.Errorf("leading of 'b' (-want +got):\n%s", diff)
	}
	if b.Trailing != nil {
		t.Errorf("expected no trailing trivia at end of input, got %v", b.Trailing)
	}
}

func TestEOFCarriesFinalTrivia(t *testing.T) {
	lx, _ := makeTestLexer("x;\n// tail\n")
	toks := lx.All()
	eof := toks[len(toks)-1]
	if eof.Kind != token.EOF || eof.Text != "" {
		t.Fatalf("expected empty EOF token, got %+v", eof)
	}
	if diff := cmp.Diff(
		[]token.TriviaKind{token.TriviaLineComment, token.TriviaNewline},
		triviaKinds(eof.Leading),
	); diff != "" {
		t.Errorf("EOF leading (-want +got):\n%s", diff)
	}
	// после EOF снова EOF без тривии
	again := lx.Next()
	if again.Kind != token.EOF || again.Leading != nil {
		t.Errorf("expected bare EOF after end, got %+v", again)
	}
}

func TestNewlineForms(t *testing.T) {
	lx, _ := makeTestLexer("a\r\nb\rc d\u0085e f\n")
	toks := lx.All()
	var nl []string
	for _, tok := range toks {
		for _, tv := range append(append([]token.Trivia{}, tok.Leading...), tok.Trailing...) {
			if tv.Kind == token.TriviaNewline {
				nl = append(nl, tv.Text)
			}
		}
	}
	want := []string{"\r\n", "\r", "\u0085", "\n"}
	if diff := cmp.Diff(want, nl); diff != "" {
		t.Errorf("newline trivia (-want +got):\n%s", diff)
	}
}

func TestDocCommentsOnlyInLeadingPosition(t *testing.T) {
	lx, _ := makeTestLexer("/// doc\nclass A {} /// not doc\n")
	toks := lx.All()
	class := toks[0]
	if class.Leading[0].Kind != token.TriviaDocLine {
		t.Fatalf("expected doc line, got %v", class.Leading[0].Kind)
	}
	parts := class.Leading[0].Parts
	if len(parts) != 2 || parts[0].Kind != token.TriviaDocExterior || parts[0].Text != "///" || parts[1].Text != " doc" {
		t.Errorf("unexpected doc parts: %+v", parts)
	}
	rbrace := toks[3]
	if rbrace.Kind != token.RBrace {
		t.Fatalf("expected '}', got %v", rbrace.Kind)
	}
	if got := rbrace.Trailing[1].Kind; got != token.TriviaLineComment {
		t.Errorf("trailing '///' must be a plain line comment, got %v", got)
	}
}

func TestQuadSlashIsPlainComment(t *testing.T) {
	lx, _ := makeTestLexer("//// banner\nx")
	toks := lx.All()
	if k := toks[0].Leading[0].Kind; k != token.TriviaLineComment {
		t.Errorf("expected line comment, got %v", k)
	}
}

func TestDirectives(t *testing.T) {
	lx, _ := makeTestLexer("#if DEBUG // dbg\nusing A;\n  #endif\nx = a # b;")
	toks := lx.All()

	using := toks[0]
	if diff := cmp.Diff(
		[]token.TriviaKind{token.TriviaDirective, token.TriviaSpace, token.TriviaLineComment, token.TriviaNewline},
		triviaKinds(using.Leading),
	); diff != "" {
		t.Errorf("leading of 'using' (-want +got):\n%s", diff)
	}
	if using.Leading[0].Text != "#if DEBUG" {
		t.Errorf("directive text = %q", using.Leading[0].Text)
	}

	x := toks[3]
	if diff := cmp.Diff(
		[]token.TriviaKind{token.TriviaSpace, token.TriviaDirective, token.TriviaNewline},
		triviaKinds(x.Leading),
	); diff != "" {
		t.Errorf("leading of 'x' (-want +got):\n%s", diff)
	}

	// '#' в середине строки — не директива
	var invalid int
	for _, tok := range toks {
		if tok.Kind == token.Invalid {
			invalid++
		}
	}
	if invalid != 1 {
		t.Errorf("expected one invalid token for mid-line '#', got %d", invalid)
	}
}

func TestCommentMarkersInsideStrings(t *testing.T) {
	tests := []struct {
		name string
		src  string
		kind token.Kind
	}{
		{"regular", `"// not a comment"`, token.StringLit},
		{"escaped quote", `"a\" /* b"`, token.StringLit},
		{"verbatim", "@\"/* x */\n\"\"//\"\"\"", token.VerbatimStringLit},
		{"interpolated", `$"{a /* keep */ } {"//"}"`, token.InterpolatedStringLit},
		{"interpolated verbatim", "$@\"{x}\n// y\"", token.InterpolatedStringLit},
		{"verbatim interpolated", "@$\"{x}\"", token.InterpolatedStringLit},
		{"nested", `$"{$"{"}"}"}"`, token.InterpolatedStringLit},
		{"escaped braces", `$"{{// }}"`, token.InterpolatedStringLit},
		{"raw", "\"\"\"\n// \"\" \"\n\"\"\"", token.RawStringLit},
		{"raw interpolated", "$$\"\"\"{{x}} /* */\"\"\"", token.RawStringLit},
		{"char", `'"'`, token.CharLit},
		{"char escape", `'\''`, token.CharLit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lx, bag := makeTestLexer(tt.src + ";")
			toks := lx.All()
			if len(toks) != 3 {
				t.Fatalf("expected literal, ';', EOF; got %v", kinds(toks))
			}
			if toks[0].Kind != tt.kind || toks[0].Text != tt.src {
				t.Errorf("got %v %q, want %v %q", toks[0].Kind, toks[0].Text, tt.kind, tt.src)
			}
			if toks[0].HasComments() || bag.Len() != 0 {
				t.Errorf("unexpected comments or diagnostics: %v", bag.Items())
			}
		})
	}
}

func TestUnterminatedBlockComment(t *testing.T) {
	lx, bag := makeTestLexer("x; /* open\nstill open")
	toks := lx.All()
	semi := toks[1]
	last := semi.Trailing[len(semi.Trailing)-1]
	if last.Kind != token.TriviaBlockComment || last.Text != "/* open\nstill open" {
		t.Errorf("expected comment to end of input, got %+v", last)
	}
	if toks[2].Kind != token.EOF {
		t.Errorf("expected EOF, got %v", toks[2].Kind)
	}
	items := bag.Items()
	if len(items) != 1 || items[0].Code != diag.LexUnterminatedBlockComment || items[0].Severity != diag.SevWarning {
		t.Errorf("expected one unterminated comment warning, got %v", items)
	}
}

func TestUnterminatedStringStopsAtNewline(t *testing.T) {
	lx, bag := makeTestLexer("s = \"abc\nx;")
	toks := lx.All()
	if toks[2].Kind != token.StringLit || toks[2].Text != `"abc` {
		t.Errorf("unexpected string token %+v", toks[2])
	}
	if toks[3].Text != "x" {
		t.Errorf("lexing must resume on next line, got %q", toks[3].Text)
	}
	if !bag.HasWarnings() || bag.Items()[0].Code != diag.LexUnterminatedString {
		t.Errorf("expected unterminated string warning, got %v", bag.Items())
	}
}

func TestNumbers(t *testing.T) {
	lx, bag := makeTestLexer("0xFF 0b_1010 1_000 3.14 .5 1e10 2.5E-3 10UL 1.5m 7f 1..2")
	var texts []string
	for _, tok := range lx.All() {
		if tok.Kind == token.NumberLit {
			texts = append(texts, tok.Text)
		}
	}
	want := []string{"0xFF", "0b_1010", "1_000", "3.14", ".5", "1e10", "2.5E-3", "10UL", "1.5m", "7f", "1", "2"}
	if diff := cmp.Diff(want, texts); diff != "" {
		t.Errorf("numbers (-want +got):\n%s", diff)
	}
	if bag.Len() != 0 {
		t.Errorf("unexpected diagnostics: %v", bag.Items())
	}
}

func TestOperatorsGreedy(t *testing.T) {
	lx, _ := makeTestLexer("a >>>= b >>= c ?? d ??= e?.f => g::h -> i ..")
	var got []token.Kind
	for _, tok := range lx.All() {
		if tok.IsPunctOrOp() {
			got = append(got, tok.Kind)
		}
	}
	want := []token.Kind{
		token.UShrAssign, token.ShrAssign, token.QuestionQuestion, token.QuestionQuestionAssign,
		token.QuestionDot, token.FatArrow, token.ColonColon, token.Arrow, token.DotDot,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("operators (-want +got):\n%s", diff)
	}
}

func TestVerbatimIdentifierIsNotKeyword(t *testing.T) {
	lx, _ := makeTestLexer("@class class")
	toks := lx.All()
	if toks[0].Kind != token.Ident || toks[0].Text != "@class" {
		t.Errorf("expected verbatim ident, got %v %q", toks[0].Kind, toks[0].Text)
	}
	if toks[1].Kind != token.Keyword {
		t.Errorf("expected keyword, got %v", toks[1].Kind)
	}
}

func TestUnknownCharacterKeepsRune(t *testing.T) {
	lx, bag := makeTestLexer("€")
	toks := lx.All()
	if toks[0].Kind != token.Invalid || toks[0].Text != "€" {
		t.Errorf("expected whole rune as invalid token, got %+v", toks[0])
	}
	if bag.Items()[0].Code != diag.LexUnknownChar {
		t.Errorf("expected unknown char diagnostic, got %v", bag.Items())
	}
}

func TestTokensIsRestartable(t *testing.T) {
	lx, _ := makeTestLexer("a b c")
	count := func() int {
		n := 0
		for range lx.Tokens() {
			n++
		}
		return n
	}
	if first, second := count(), count(); first != 4 || second != 4 {
		t.Errorf("expected 4 tokens on every pass, got %d and %d", first, second)
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	lx, _ := makeTestLexer("a b")
	if p := lx.Peek(); p.Text != "a" {
		t.Fatalf("peek = %q", p.Text)
	}
	if n := lx.Next(); n.Text != "a" {
		t.Fatalf("next after peek = %q", n.Text)
	}
	if n := lx.Next(); n.Text != "b" {
		t.Fatalf("second next = %q", n.Text)
	}
}

func TestSpansCoverText(t *testing.T) {
	src := "using A; // c\n/** d */\nclass B {}\n"
	lx, _ := makeTestLexer(src)
	for _, tok := range lx.All() {
		if got := src[tok.Span.Start:tok.Span.End]; got != tok.Text {
			t.Errorf("token span %v covers %q, text %q", tok.Span, got, tok.Text)
		}
		for _, tv := range append(append([]token.Trivia{}, tok.Leading...), tok.Trailing...) {
			if got := src[tv.Span.Start:tv.Span.End]; got != tv.Text {
				t.Errorf("trivia span %v covers %q, text %q", tv.Span, got, tv.Text)
			}
		}
	}
}
