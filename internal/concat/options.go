package concat

import (
	"strings"

	"csclean/internal/edit"
)

// Options controls gathering and concatenation.
type Options struct {
	Recursive      bool
	Exts           []string // normalized; empty = all files
	ExcludeDirs    []string // directory names, not paths
	Exclude        []string // doublestar patterns over slash paths
	IgnoreBinaries bool
	MaxMB          float64
	Headers        bool
	NormalizeEOL   bool
	RemoveComments bool
	RemoveUsings   bool
	Jobs           int  // 0 = GOMAXPROCS
	NoCache        bool // используется только CLI
}

// DefaultOptions mirrors the command-line defaults.
func DefaultOptions() Options {
	return Options{
		Recursive:      true,
		Exts:           []string{".cs"},
		ExcludeDirs:    []string{"bin", "obj", ".git", ".vs"},
		IgnoreBinaries: true,
		MaxMB:          5,
		Headers:        true,
	}
}

// EditOptions returns the edits applied to .cs files.
func (o Options) EditOptions() edit.Options {
	return edit.Options{RemoveUsings: o.RemoveUsings, StripComments: o.RemoveComments}
}

func (o Options) maxBytes() int64 {
	if o.MaxMB <= 0 {
		return 0
	}
	return int64(o.MaxMB * 1024 * 1024)
}

// ParseList splits a comma separated list, dropping empty items.
func ParseList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// NormalizeExts lower-cases extensions, adds the leading dot and dedupes.
func NormalizeExts(exts []string) []string {
	seen := make(map[string]struct{}, len(exts))
	out := make([]string, 0, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		if _, dup := seen[e]; dup {
			continue
		}
		seen[e] = struct{}{}
		out = append(out, e)
	}
	return out
}
