package diagfmt

import (
	"encoding/json"
	"io"
	"unicode/utf8"

	"csclean/internal/diag"
	"csclean/internal/source"
)

// maxExcerpt bounds the source excerpt of a diagnostic, in bytes.
const maxExcerpt = 80

type LocationJSON struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty"`
}

type NoteJSON struct {
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
}

type DiagnosticJSON struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Title    string       `json:"title"`
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
	// Excerpt — начало проблемного фрагмента, например незакрытого литерала.
	Excerpt string     `json:"excerpt,omitempty"`
	Notes   []NoteJSON `json:"notes,omitempty"`
}

// DiagnosticsOutput is the document written by --diagnostics=json.
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
	Warnings    int              `json:"warnings"`
	Errors      int              `json:"errors"`
	Dropped     int              `json:"dropped,omitempty"`
}

type jsonBuilder struct {
	fs   *source.FileSet
	opts JSONOpts
}

func (b jsonBuilder) location(span source.Span) LocationJSON {
	loc := LocationJSON{
		File:      formatPath(b.fs.Get(span.File), b.opts.PathMode, b.opts.BaseDir),
		StartByte: span.Start,
		EndByte:   span.End,
	}
	if b.opts.IncludePositions {
		start, end := b.fs.Resolve(span)
		loc.StartLine, loc.StartCol = start.Line, start.Col
		loc.EndLine, loc.EndCol = end.Line, end.Col
	}
	return loc
}

// excerpt returns the first line of the span, cut to maxExcerpt on a rune
// boundary.
func (b jsonBuilder) excerpt(span source.Span) string {
	text := span.Slice(b.fs.Get(span.File).Content)
	if end := lineEndIn(text); end < len(text) {
		text = text[:end]
	}
	if len(text) > maxExcerpt {
		cut := maxExcerpt
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut]
	}
	return string(text)
}

func lineEndIn(b []byte) int {
	for i, c := range b {
		if c == '\n' || c == '\r' {
			return i
		}
	}
	return len(b)
}

// BuildDiagnosticsOutput converts the bag without encoding it. Items cut by
// opts.Max are added to Dropped.
func BuildDiagnosticsOutput(bag *diag.Bag, fs *source.FileSet, opts JSONOpts) DiagnosticsOutput {
	items := bag.Items()
	if opts.Max > 0 && opts.Max < len(items) {
		items = items[:opts.Max]
	}
	b := jsonBuilder{fs: fs, opts: opts}

	out := DiagnosticsOutput{
		Diagnostics: make([]DiagnosticJSON, 0, len(items)),
		Dropped:     bag.Dropped() + bag.Len() - len(items),
	}
	for _, d := range items {
		dj := DiagnosticJSON{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Title:    d.Code.Title(),
			Message:  d.Title(),
			Location: b.location(d.Primary),
			Excerpt:  b.excerpt(d.Primary),
		}
		if opts.IncludeNotes {
			for _, note := range d.Notes {
				dj.Notes = append(dj.Notes, NoteJSON{Message: note.Msg, Location: b.location(note.Span)})
			}
		}
		switch d.Severity {
		case diag.SevWarning:
			out.Warnings++
		case diag.SevError:
			out.Errors++
		}
		out.Diagnostics = append(out.Diagnostics, dj)
	}
	out.Count = len(out.Diagnostics)
	return out
}

// JSON writes the diagnostics of bag as one indented JSON document.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildDiagnosticsOutput(bag, fs, opts))
}
