package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"csclean/internal/version"
)

// runState holds what PersistentPreRunE sets up and main tears down.
type runState struct {
	traceCleanup func()
}

// newRootCmd builds the command tree. The root command itself is the
// stdin → stdout filter.
func newRootCmd(state *runState) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "csclean",
		Short: "Strip comments and using directives from C# source",
		Long: `csclean reads a C# document on stdin and writes it to stdout, optionally
without comments and/or top-level using directives. Everything else is
reproduced byte for byte.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		// неизвестные флаги молча игнорируются
		FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cleanup, err := setupTracing(cmd)
			if err != nil {
				return err
			}
			state.traceCleanup = cleanup
			return nil
		},
		RunE: runFilter,
	}
	rootCmd.Version = version.Version

	addFilterFlags(rootCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to collect")
	rootCmd.PersistentFlags().String("trace", "", "write a trace to PATH (- for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "", "trace level (off|error|phase|detail|debug); phase when --trace is set")
	rootCmd.PersistentFlags().String("trace-format", "auto", "trace format (auto|text|ndjson)")

	// Добавляем команды
	rootCmd.AddCommand(newTokenizeCmd())
	rootCmd.AddCommand(newTreeCmd())
	rootCmd.AddCommand(newConcatCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// execute runs the CLI and returns the process exit code.
func execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	state := &runState{}
	rootCmd := newRootCmd(state)
	rootCmd.SetArgs(args)
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.ExecuteContext(ctx)
	if state.traceCleanup != nil {
		state.traceCleanup()
	}
	if err != nil {
		fmt.Fprintf(stderr, "csclean: %v\n", err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(execute(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// isTerminal проверяет, является ли writer терминалом
func isTerminal(w any) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd())) //nolint:gosec // fd fits int
}

// useColor resolves --color for the given writer.
func useColor(cmd *cobra.Command, w io.Writer) bool {
	mode, _ := cmd.Root().PersistentFlags().GetString("color") //nolint:errcheck // flag is registered on root
	switch mode {
	case "on", "always":
		return true
	case "off", "never":
		return false
	default:
		return isTerminal(w) && os.Getenv("NO_COLOR") == ""
	}
}

func quiet(cmd *cobra.Command) bool {
	q, _ := cmd.Root().PersistentFlags().GetBool("quiet") //nolint:errcheck // flag is registered on root
	return q
}

func maxDiagnostics(cmd *cobra.Command) int {
	n, _ := cmd.Root().PersistentFlags().GetInt("max-diagnostics") //nolint:errcheck // flag is registered on root
	return n
}
