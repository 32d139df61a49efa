package diagfmt

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"csclean/internal/concat"
	"csclean/internal/source"
)

// SummaryOpts configures the concat summary.
type SummaryOpts struct {
	Color   bool
	BaseDir string // skipped paths are shown relative to it
	Output  string // "" = stdout
}

// FormatConcatSummary renders the written count and the skipped files.
func FormatConcatSummary(w io.Writer, res *concat.Result, opts SummaryOpts) {
	dest := opts.Output
	if dest == "" {
		dest = "stdout"
	}
	fmt.Fprintf(w, "%d %s written to %s (%s", res.Written, plural(res.Written, "file", "files"), dest, humanize.Bytes(uint64(len(res.Text))))
	if res.CacheHits > 0 {
		fmt.Fprintf(w, ", %d from cache", res.CacheHits)
	}
	fmt.Fprintln(w, ")")

	if len(res.Skipped) == 0 {
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	if opts.Color {
		t.Style().Color.Header = text.Colors{text.Bold, text.FgYellow}
	}
	t.AppendHeader(table.Row{"Skipped", "Reason"})
	for _, s := range res.Skipped {
		path := s.Path
		if opts.BaseDir != "" {
			if rel, err := source.RelativePath(s.Path, opts.BaseDir); err == nil {
				path = rel
			}
		}
		t.AppendRow(table.Row{path, s.Reason})
	}
	t.AppendFooter(table.Row{fmt.Sprintf("%d skipped", len(res.Skipped)), ""})
	t.Render()
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
