package lexer

import (
	"testing"

	"csclean/internal/source"
)

func createFile(content string) *source.File {
	fs := source.NewFileSet()
	return fs.Get(fs.AddVirtual("test.cs", []byte(content)))
}

func TestCursorReadsBytesInOrder(t *testing.T) {
	c := NewCursor(createFile("a\nb"))
	for _, want := range []byte("a\nb") {
		if c.EOF() || c.Peek() != want {
			t.Fatalf("at %d: peek %q, want %q", c.Off, c.Peek(), want)
		}
		if got := c.Bump(); got != want {
			t.Fatalf("at %d: bump %q, want %q", c.Off, got, want)
		}
	}
	if !c.EOF() || c.Peek() != 0 || c.Bump() != 0 {
		t.Errorf("reads past the end must yield 0")
	}
}

func TestCursorPeek2(t *testing.T) {
	c := NewCursor(createFile("abc"))
	if b0, b1, ok := c.Peek2(); !ok || b0 != 'a' || b1 != 'b' {
		t.Errorf("start: got %q %q %v", b0, b1, ok)
	}
	c.Advance(2)
	if b0, b1, ok := c.Peek2(); ok || b0 != 0 || b1 != 0 {
		t.Errorf("one byte left: got %q %q %v", b0, b1, ok)
	}
}

func TestCursorSpanResolvesMultibyte(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.cs", []byte("α\nβ")))
	c := NewCursor(file)

	m := c.Mark()
	c.Advance(2) // α
	sp := c.SpanFrom(m)
	if sp.Start != 0 || sp.End != 2 {
		t.Fatalf("unexpected span %v", sp)
	}
	start, end := fs.Resolve(sp)
	if start != (source.LineCol{Line: 1, Col: 1}) || end != (source.LineCol{Line: 1, Col: 3}) {
		t.Errorf("resolve: %+v %+v", start, end)
	}

	m = c.Mark()
	c.Bump() // '\n'
	_, end = fs.Resolve(c.SpanFrom(m))
	if end != (source.LineCol{Line: 2, Col: 1}) {
		t.Errorf("newline span must end on the next line, got %+v", end)
	}
}

func TestCursorEatAndReset(t *testing.T) {
	c := NewCursor(createFile("ab"))
	start := c.Mark()
	if c.Eat('x') || c.Off != 0 {
		t.Fatalf("failed Eat must not move")
	}
	if !c.Eat('a') || !c.Eat('b') || c.Eat(0) {
		t.Fatalf("unexpected Eat results at %d", c.Off)
	}
	c.Reset(start)
	if c.Peek() != 'a' {
		t.Errorf("reset must return to the mark")
	}
}

func TestCursorAdvanceClamps(t *testing.T) {
	c := NewCursor(createFile("abcd"))
	c.Advance(2)
	if got := string(c.Rest()); got != "cd" {
		t.Errorf("rest = %q", got)
	}
	if c.PeekAt(1) != 'd' || c.PeekAt(2) != 0 {
		t.Errorf("PeekAt past the end must yield 0")
	}
	c.Advance(-1)
	c.Advance(10)
	if !c.EOF() || c.Off != 4 || c.End() != 4 {
		t.Errorf("expected cursor clamped at 4, got %d", c.Off)
	}
}
