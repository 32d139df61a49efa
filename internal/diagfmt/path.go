package diagfmt

import (
	"fmt"
	"path/filepath"

	"csclean/internal/source"
)

// formatPath renders f.Path according to mode.
func formatPath(f *source.File, mode PathMode, baseDir string) string {
	if f == nil {
		return "<unknown>"
	}
	if f.Flags&source.FileVirtual != 0 {
		return f.Path
	}
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(f.Path); err == nil {
			return filepath.ToSlash(abs)
		}
	case PathModeBasename:
		return filepath.Base(f.Path)
	case PathModeRelative, PathModeAuto:
		if baseDir == "" {
			return f.Path
		}
		if rel, err := source.RelativePath(f.Path, baseDir); err == nil {
			return rel
		}
	}
	return f.Path
}

// formatSpan renders a span as "line:col-line:col".
func formatSpan(span source.Span, fs *source.FileSet) string {
	if fs == nil {
		return fmt.Sprintf("%d..%d", span.Start, span.End)
	}
	start, end := fs.Resolve(span)
	return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
}
