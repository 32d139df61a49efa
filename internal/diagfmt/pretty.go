package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"csclean/internal/diag"
	"csclean/internal/source"
)

const tabWidth = 4

type palette struct {
	err, warn, info, code, gutter, caret, note *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		code:   color.New(color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgGreen, color.Bold),
		note:   color.New(color.FgCyan),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.code, p.gutter, p.caret, p.note} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем строку исходника с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	if bag == nil || fs == nil {
		return
	}
	pal := newPalette(opts.Color)
	for _, d := range bag.Items() {
		file := fs.Get(d.Primary.File)
		start, _ := fs.Resolve(d.Primary)
		fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
			formatPath(file, opts.PathMode, opts.BaseDir), start.Line, start.Col,
			pal.severity(d.Severity).Sprint(d.Severity.String()),
			pal.code.Sprint(d.Code.ID()),
			d.Title())
		writeSnippet(w, fs, file, d.Primary, pal)

		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			ns, _ := fs.Resolve(n.Span)
			fmt.Fprintf(w, "  %s %d:%d: %s\n", pal.note.Sprint("note:"), ns.Line, ns.Col, n.Msg)
		}
	}
	if dropped := bag.Dropped(); dropped > 0 {
		fmt.Fprintf(w, "... %d more diagnostics not shown\n", dropped)
	}
}

// writeSnippet prints the first line of span with a caret underline.
func writeSnippet(w io.Writer, fs *source.FileSet, file *source.File, span source.Span, pal palette) {
	if file == nil {
		return
	}
	start, end := fs.Resolve(span)
	line := file.GetLine(start.Line)
	if line == "" && span.Empty() {
		return
	}
	col := int(start.Col) - 1
	col = min(max(col, 0), len(line))
	stop := len(line)
	if end.Line == start.Line {
		stop = min(max(int(end.Col)-1, col), len(line))
	}

	pad := displayWidth(line[:col])
	width := max(displayWidth(line[col:stop]), 1)

	num := fmt.Sprintf("%d", start.Line)
	gutter := strings.Repeat(" ", len(num))
	fmt.Fprintf(w, " %s %s %s\n", pal.gutter.Sprint(num), pal.gutter.Sprint("|"), expandTabs(line))
	fmt.Fprintf(w, " %s %s %s%s\n", gutter, pal.gutter.Sprint("|"),
		strings.Repeat(" ", pad),
		pal.caret.Sprint("^"+strings.Repeat("~", width-1)))
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}

func displayWidth(s string) int {
	return runewidth.StringWidth(expandTabs(s))
}
