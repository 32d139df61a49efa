package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"csclean/internal/driver"
	"csclean/internal/edit"
	"csclean/internal/observ"
)

func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("remove-comments", false, "remove line, block and documentation comments")
	cmd.Flags().Bool("remove-usings", false, "remove top-level using directives")
	cmd.Flags().String("max-size", humanize.IBytes(uint64(driver.DefaultMaxSize)), "reject input larger than SIZE (e.g. 16MiB)")
	cmd.Flags().String("diagnostics", "", "report malformed input on stderr (pretty|json)")
	cmd.Flags().Lookup("diagnostics").NoOptDefVal = "pretty"
	cmd.Flags().Bool("timings", false, "print phase timings to stderr")
}

func editFlags(cmd *cobra.Command) (edit.Options, error) {
	removeComments, err := cmd.Flags().GetBool("remove-comments")
	if err != nil {
		return edit.Options{}, fmt.Errorf("failed to get remove-comments flag: %w", err)
	}
	removeUsings, err := cmd.Flags().GetBool("remove-usings")
	if err != nil {
		return edit.Options{}, fmt.Errorf("failed to get remove-usings flag: %w", err)
	}
	return edit.Options{RemoveUsings: removeUsings, StripComments: removeComments}, nil
}

func maxSizeFlag(cmd *cobra.Command) (int64, error) {
	raw, err := cmd.Flags().GetString("max-size")
	if err != nil {
		return 0, fmt.Errorf("failed to get max-size flag: %w", err)
	}
	n, err := humanize.ParseBytes(raw)
	if err != nil || n == 0 {
		return 0, fmt.Errorf("invalid --max-size %q", raw)
	}
	if n > 1<<40 {
		return 0, fmt.Errorf("--max-size %q is too large", raw)
	}
	return int64(n), nil //nolint:gosec // bounded above
}

// runFilter is the root command: stdin → clean → stdout.
func runFilter(cmd *cobra.Command, _ []string) error {
	editOpts, err := editFlags(cmd)
	if err != nil {
		return err
	}
	maxSize, err := maxSizeFlag(cmd)
	if err != nil {
		return err
	}
	diagFormat, err := cmd.Flags().GetString("diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get diagnostics flag: %w", err)
	}
	showTimings, err := cmd.Flags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}

	opts := driver.CleanOptions{
		Edit:           editOpts,
		MaxSize:        maxSize,
		MaxDiagnostics: maxDiagnostics(cmd),
	}
	if showTimings {
		opts.Timer = observ.NewTimer()
	}

	res, err := driver.CleanStream(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), opts)
	if err != nil {
		return err
	}

	if diagFormat != "" {
		if err := printDiagnostics(cmd, res.Bag, res.FileSet, diagFormat); err != nil {
			return err
		}
	}
	if opts.Timer != nil {
		fmt.Fprint(cmd.ErrOrStderr(), opts.Timer.Summary())
	}
	return nil
}
