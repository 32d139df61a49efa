package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"csclean/internal/diagfmt"
	"csclean/internal/driver"
)

func newTreeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tree [file|-]",
		Short: "Dump the compilation unit: externs, usings and top-level members",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runTree,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json|yaml)")
	cmd.Flags().String("max-size", "64MiB", "reject input larger than SIZE")
	cmd.Flags().Bool("remove-comments", false, "show the tree after removing comments")
	cmd.Flags().Bool("remove-usings", false, "show the tree after removing using directives")
	return cmd
}

func runTree(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	maxSize, err := maxSizeFlag(cmd)
	if err != nil {
		return err
	}
	editOpts, err := editFlags(cmd)
	if err != nil {
		return err
	}

	fs, file, err := driver.LoadInput(inputPath(args), cmd.InOrStdin(), maxSize)
	if err != nil {
		return err
	}
	res := driver.Tree(cmd.Context(), fs, file, driver.CleanOptions{
		Edit:           editOpts,
		MaxDiagnostics: maxDiagnostics(cmd),
	})

	if !quiet(cmd) {
		if err := printDiagnostics(cmd, res.Bag, res.FileSet, "pretty"); err != nil {
			return err
		}
	}
	return diagfmt.FormatTree(cmd.OutOrStdout(), res.Unit, res.FileSet, diagfmt.DumpFormat(format))
}
