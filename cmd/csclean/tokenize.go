package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"csclean/internal/diagfmt"
	"csclean/internal/driver"
)

func newTokenizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokenize [file|-]",
		Short: "Dump the tokens of a C# file with their trivia",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runTokenize,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json|yaml)")
	cmd.Flags().String("max-size", "64MiB", "reject input larger than SIZE")
	return cmd
}

func inputPath(args []string) string {
	if len(args) == 0 {
		return "-"
	}
	return args[0]
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	maxSize, err := maxSizeFlag(cmd)
	if err != nil {
		return err
	}

	fs, file, err := driver.LoadInput(inputPath(args), cmd.InOrStdin(), maxSize)
	if err != nil {
		return err
	}
	result := driver.Tokenize(cmd.Context(), fs, file, maxDiagnostics(cmd))

	// Выводим диагностику в stderr, если есть
	if !quiet(cmd) {
		if err := printDiagnostics(cmd, result.Bag, result.FileSet, "pretty"); err != nil {
			return err
		}
	}
	return diagfmt.FormatTokens(cmd.OutOrStdout(), result.Tokens, result.FileSet, diagfmt.DumpFormat(format))
}
