package main

import (
	"fmt"
	"os"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"csclean/internal/concat"
	"csclean/internal/diagfmt"
	"csclean/internal/driver"
	"csclean/internal/trace"
)

func newConcatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "concat [paths...]",
		Short: "Concatenate source files into one text, cleaning C# files on the way",
		Long: `concat gathers files from the given paths (default: the current directory),
filters them by extension, excluded directories, size and binary content, and
writes them one after another. Options can be stored as profiles in
csclean.toml, looked up from the working directory upwards.`,
		RunE: runConcat,
	}
	def := concat.DefaultOptions()
	f := cmd.Flags()
	f.Bool("recursive", def.Recursive, "walk directories recursively")
	f.String("ext", ".cs", "comma separated extensions to include (empty = all files)")
	f.String("exclude-dir", "bin,obj,.git,.vs", "comma separated directory names to skip")
	f.StringSlice("exclude", nil, "doublestar patterns (relative, slash separated) to skip")
	f.Bool("ignore-binaries", def.IgnoreBinaries, "skip files with NUL bytes or invalid UTF-8")
	f.Float64("max-mb", def.MaxMB, "skip files larger than this many MiB")
	f.Bool("headers", def.Headers, "write a header line before each file")
	f.Bool("normalize-eol", def.NormalizeEOL, "convert CRLF and CR to LF")
	f.Bool("remove-comments", false, "remove comments from .cs files")
	f.Bool("remove-usings", false, "remove top-level using directives from .cs files")
	f.StringP("output", "o", "", "write the result to FILE instead of stdout")
	f.Bool("clipboard", false, "also copy the result to the clipboard")
	f.Int("jobs", 0, "parallel workers (0 = GOMAXPROCS)")
	f.Bool("no-cache", false, "do not use the cleaned-file cache")
	f.Bool("clear-cache", false, "drop the cleaned-file cache before the run")
	f.String("progress", "auto", "show progress (auto|on|off)")
	f.String("profile", "", "profile from csclean.toml")
	f.String("config", "", "path to csclean.toml (default: search upwards)")
	return cmd
}

// concatRun is the fully resolved concat invocation.
type concatRun struct {
	opts      concat.Options
	output    string
	clipboard bool
	progress  uiMode
}

// resolveConcat merges defaults, the selected profile and explicit flags,
// in that order.
func resolveConcat(cmd *cobra.Command) (concatRun, error) {
	f := cmd.Flags()
	run := concatRun{opts: concat.DefaultOptions(), progress: uiModeAuto}

	cfg, err := loadConcatConfig(f)
	if err != nil {
		return run, err
	}
	profileName, _ := f.GetString("profile") //nolint:errcheck // registered in newConcatCmd
	profile, err := cfg.Profile(profileName)
	if err != nil {
		return run, err
	}
	profile.Apply(&run.opts)
	if profile.Output != nil {
		run.output = *profile.Output
	}
	if profile.Clipboard != nil {
		run.clipboard = *profile.Clipboard
	}
	progress := string(uiModeAuto)
	if profile.Progress != nil {
		progress = *profile.Progress
	}

	// явно заданные флаги важнее профиля
	var flagErr error
	f.Visit(func(fl *pflag.Flag) {
		if flagErr != nil {
			return
		}
		flagErr = applyConcatFlag(f, fl.Name, &run, &progress)
	})
	if flagErr != nil {
		return run, flagErr
	}

	run.opts.Exts = concat.NormalizeExts(run.opts.Exts)
	if run.progress, err = readUIMode(progress); err != nil {
		return run, err
	}
	return run, nil
}

func applyConcatFlag(f *pflag.FlagSet, name string, run *concatRun, progress *string) error {
	var err error
	o := &run.opts
	switch name {
	case "recursive":
		o.Recursive, err = f.GetBool(name)
	case "ext":
		var s string
		s, err = f.GetString(name)
		o.Exts = concat.ParseList(s)
	case "exclude-dir":
		var s string
		s, err = f.GetString(name)
		o.ExcludeDirs = concat.ParseList(s)
	case "exclude":
		o.Exclude, err = f.GetStringSlice(name)
	case "ignore-binaries":
		o.IgnoreBinaries, err = f.GetBool(name)
	case "max-mb":
		o.MaxMB, err = f.GetFloat64(name)
	case "headers":
		o.Headers, err = f.GetBool(name)
	case "normalize-eol":
		o.NormalizeEOL, err = f.GetBool(name)
	case "remove-comments":
		o.RemoveComments, err = f.GetBool(name)
	case "remove-usings":
		o.RemoveUsings, err = f.GetBool(name)
	case "jobs":
		o.Jobs, err = f.GetInt(name)
	case "no-cache":
		o.NoCache, err = f.GetBool(name)
	case "output":
		run.output, err = f.GetString(name)
	case "clipboard":
		run.clipboard, err = f.GetBool(name)
	case "progress":
		*progress, err = f.GetString(name)
	}
	if err != nil {
		return fmt.Errorf("failed to get %s flag: %w", name, err)
	}
	return nil
}

func loadConcatConfig(f *pflag.FlagSet) (*concat.Config, error) {
	path, _ := f.GetString("config") //nolint:errcheck // registered in newConcatCmd
	if path == "" {
		found, ok, err := concat.FindConfig(".")
		if err != nil || !ok {
			return nil, err
		}
		path = found
	}
	return concat.LoadConfig(path)
}

func runConcat(cmd *cobra.Command, args []string) error {
	run, err := resolveConcat(cmd)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{"."}
	}
	files, err := concat.Gather(args, run.opts)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	clearCache, _ := cmd.Flags().GetBool("clear-cache") //nolint:errcheck // registered in newConcatCmd
	useCache := !run.opts.NoCache && (run.opts.RemoveComments || run.opts.RemoveUsings)
	var cache *driver.CleanCache
	if useCache || clearCache {
		cache, err = driver.OpenCleanCache("csclean")
		if err != nil {
			if clearCache {
				return fmt.Errorf("clear cache: %w", err)
			}
			// кэш — оптимизация, без него тоже работаем
			trace.Error(trace.FromContext(ctx), "cache open", err)
			cache = nil
		}
		defer cache.Close()
		if clearCache {
			if err := cache.DropAll(); err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}
		}
		if !useCache {
			cache = nil
		}
	}

	stderr := cmd.ErrOrStderr()
	var res *concat.Result
	if !quiet(cmd) && shouldUseTUI(run.progress, stderr) {
		res, err = runConcatWithUI(ctx, stderr, files, run.opts, cache)
	} else {
		res, err = concat.Run(ctx, files, run.opts, concat.Env{Cache: cache})
	}
	if err != nil {
		return err
	}

	if err := writeConcatOutput(cmd, run.output, res.Text); err != nil {
		return err
	}
	if run.clipboard {
		if err := clipboard.WriteAll(string(res.Text)); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
	}
	if !quiet(cmd) {
		cwd, _ := os.Getwd() //nolint:errcheck // only used to shorten paths
		diagfmt.FormatConcatSummary(stderr, res, diagfmt.SummaryOpts{
			Color:   useColor(cmd, stderr),
			BaseDir: cwd,
			Output:  run.output,
		})
	}
	return nil
}

func writeConcatOutput(cmd *cobra.Command, path string, text []byte) error {
	if path == "" || path == "-" {
		if _, err := cmd.OutOrStdout().Write(text); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		return nil
	}
	if err := os.WriteFile(path, text, 0o644); err != nil { //nolint:gosec // output file is user-facing text
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
