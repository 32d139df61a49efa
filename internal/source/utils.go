package source

import (
	"bytes"
	"path/filepath"
	"strings"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// HasBOM reports whether content starts with a UTF-8 byte order mark.
func HasBOM(content []byte) bool {
	return bytes.HasPrefix(content, utf8BOM)
}

// buildLineIndex records every "\n" and every "\r" not followed by "\n".
func buildLineIndex(content []byte) []uint32 {
	out := make([]uint32, 0, len(content)/32+1)
	for i, b := range content {
		switch {
		case b == '\n':
			out = append(out, uint32(i)) //nolint:gosec // content length fits uint32
		case b == '\r' && (i+1 == len(content) || content[i+1] != '\n'):
			out = append(out, uint32(i)) //nolint:gosec // same bound
		}
	}
	return out
}

func toLineCol(lineIdx []uint32, off uint32) LineCol {
	// число терминаторов строго до off — это номер строки (0-based)
	lo, hi := 0, len(lineIdx)
	for lo < hi {
		mid := (lo + hi) >> 1
		if lineIdx[mid] < off {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	var lineStart uint32
	if lo > 0 {
		lineStart = lineIdx[lo-1] + 1
	}
	return LineCol{Line: uint32(lo + 1), Col: off - lineStart + 1} //nolint:gosec // lo <= len(lineIdx)
}

func normalizePath(p string) string {
	return filepath.ToSlash(filepath.Clean(p))
}

// RelativePath returns path relative to baseDir when path lies inside it,
// otherwise the absolute path. The result always uses forward slashes.
func RelativePath(path, baseDir string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(absBase, absPath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return normalizePath(absPath), nil
	}
	return normalizePath(rel), nil
}
