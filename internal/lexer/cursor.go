package lexer

import (
	"fmt"

	"fortio.org/safecast"

	"csclean/internal/source"
)

// Cursor walks the bytes of one file. Reads past the end yield 0.
type Cursor struct {
	File *source.File
	Off  uint32
	src  []byte
}

func NewCursor(f *source.File) Cursor {
	if _, err := safecast.Conv[uint32](len(f.Content)); err != nil {
		panic(fmt.Errorf("file too large for a cursor: %w", err))
	}
	return Cursor{File: f, src: f.Content}
}

// End is the offset one past the last readable byte.
func (c *Cursor) End() uint32 {
	return uint32(len(c.src)) //nolint:gosec // checked in NewCursor
}

func (c *Cursor) EOF() bool {
	return int(c.Off) >= len(c.src)
}

func (c *Cursor) Peek() byte {
	return c.PeekAt(0)
}

// PeekAt returns the byte n positions ahead.
func (c *Cursor) PeekAt(n uint32) byte {
	if i := int(c.Off) + int(n); i < len(c.src) {
		return c.src[i]
	}
	return 0
}

// Peek2 returns the next two bytes; ok is false when fewer remain.
func (c *Cursor) Peek2() (b0, b1 byte, ok bool) {
	if int(c.Off)+1 >= len(c.src) {
		return 0, 0, false
	}
	return c.src[c.Off], c.src[c.Off+1], true
}

func (c *Cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.src[c.Off]
	c.Off++
	return b
}

// Advance moves n bytes forward, stopping at the end.
func (c *Cursor) Advance(n int) {
	if n <= 0 {
		return
	}
	rest := len(c.src) - int(c.Off)
	c.Off += uint32(min(n, rest)) //nolint:gosec // bounded by len(src)
}

// Eat consumes b if it is next.
func (c *Cursor) Eat(b byte) bool {
	if c.Peek() == b && !c.EOF() {
		c.Off++
		return true
	}
	return false
}

// Rest returns the unread bytes.
func (c *Cursor) Rest() []byte {
	return c.src[c.Off:]
}

// Mark — сохранённая позиция для SpanFrom и Reset.
type Mark uint32

func (c *Cursor) Mark() Mark { return Mark(c.Off) }

func (c *Cursor) Reset(m Mark) { c.Off = uint32(m) }

// SpanFrom covers everything read since m.
func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{File: c.File.ID, Start: uint32(m), End: c.Off}
}
