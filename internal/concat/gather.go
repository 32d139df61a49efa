package concat

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

var (
	// ErrNoFiles is returned when gathering finds nothing to concatenate.
	ErrNoFiles = errors.New("no matching files")
	// ErrBadPattern wraps an invalid --exclude pattern.
	ErrBadPattern = errors.New("invalid exclude pattern")
)

// UniquePaths makes paths absolute and clean, keeping the first occurrence.
func UniquePaths(paths []string) ([]string, error) {
	seen := make(map[string]struct{}, len(paths))
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p, err)
		}
		if _, dup := seen[abs]; dup {
			continue
		}
		seen[abs] = struct{}{}
		out = append(out, abs)
	}
	return out, nil
}

// Gather expands roots into the list of candidate files in a stable order.
// Files named directly only pass the extension filter; directories are
// walked with the excluded names and patterns applied relative to the root.
// Roots that do not exist are ignored.
func Gather(roots []string, opts Options) ([]string, error) {
	for _, pat := range opts.Exclude {
		if !doublestar.ValidatePattern(pat) {
			return nil, fmt.Errorf("%w: %q", ErrBadPattern, pat)
		}
	}
	roots, err := UniquePaths(roots)
	if err != nil {
		return nil, err
	}
	exts := NormalizeExts(opts.Exts)

	var files []string
	for _, root := range roots {
		info, err := os.Stat(root)
		if errors.Is(err, fs.ErrNotExist) {
			// несуществующие пути молча пропускаем
			continue
		}
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			if matchExt(root, exts) {
				files = append(files, root)
			}
			continue
		}
		found, err := walkRoot(root, exts, opts)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}

	files, err = UniquePaths(files)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, ErrNoFiles
	}
	return files, nil
}

func walkRoot(root string, exts []string, opts Options) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if !opts.Recursive || slices.Contains(opts.ExcludeDirs, d.Name()) || excluded(rel, opts.Exclude) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || excluded(rel, opts.Exclude) {
			return nil
		}
		if matchExt(path, exts) {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

func matchExt(path string, exts []string) bool {
	if len(exts) == 0 {
		return true
	}
	return slices.Contains(exts, strings.ToLower(filepath.Ext(path)))
}

// excluded reports whether rel matches any pattern. Patterns were validated
// in Gather, so Match cannot fail here.
func excluded(rel string, patterns []string) bool {
	for _, pat := range patterns {
		if ok, _ := doublestar.Match(pat, rel); ok {
			return true
		}
	}
	return false
}
