package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"csclean/internal/diag"
	"csclean/internal/diagfmt"
	"csclean/internal/source"
)

// printDiagnostics writes bag to stderr in the requested format.
func printDiagnostics(cmd *cobra.Command, bag *diag.Bag, fs *source.FileSet, format string) error {
	if bag == nil || (bag.Len() == 0 && bag.Dropped() == 0) {
		return nil
	}
	bag.Sort()
	bag.Dedup()
	w := cmd.ErrOrStderr()
	switch format {
	case "pretty":
		diagfmt.Pretty(w, bag, fs, diagfmt.PrettyOpts{Color: useColor(cmd, w), ShowNotes: true})
		return nil
	case "json":
		return diagfmt.JSON(w, bag, fs, diagfmt.JSONOpts{IncludePositions: true, IncludeNotes: true})
	default:
		return fmt.Errorf("unknown diagnostics format %q (expected pretty|json)", format)
	}
}
