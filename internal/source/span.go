package source

import (
	"fmt"
)

type Span struct {
	File  FileID
	Start uint32 // в байтах включительно
	End   uint32 // в байтах не включительно
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}

// Contains reports whether off lies inside the half-open span.
func (s Span) Contains(off uint32) bool {
	return off >= s.Start && off < s.End
}

// Cover returns the smallest span containing both s and other.
// Spans from different files are not merged.
func (s Span) Cover(other Span) Span {
	if s.File != other.File {
		return s
	}
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}

// Collapse returns the zero-length span at s.Start.
func (s Span) Collapse() Span {
	return Span{File: s.File, Start: s.Start, End: s.Start}
}

// Slice returns the bytes of content covered by the span.
func (s Span) Slice(content []byte) []byte {
	if int(s.End) > len(content) || s.Start > s.End {
		return nil
	}
	return content[s.Start:s.End]
}
