package source

import (
	"bytes"
	"fmt"

	"fortio.org/safecast"
	"github.com/cespare/xxhash/v2"
)

// FileSet owns the documents of one run and resolves spans into positions.
type FileSet struct {
	files []File
}

func NewFileSet() *FileSet {
	return &FileSet{}
}

// Add stores content as a new file and returns its ID. Adding the same path
// twice yields two files.
func (fileSet *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	if HasBOM(content) {
		flags |= FileHasBOM
	}
	if bytes.Contains(content, []byte("\r\n")) {
		flags |= FileHasCRLF
	}

	n, err := safecast.Conv[uint32](len(fileSet.files))
	if err != nil {
		panic(fmt.Errorf("too many files: %w", err))
	}
	id := FileID(n)
	fileSet.files = append(fileSet.files, File{
		ID:      id,
		Path:    normalizePath(path),
		Content: content,
		LineIdx: buildLineIndex(content),
		Hash:    xxhash.Sum64(content),
		Flags:   flags,
	})
	return id
}

// AddVirtual adds stdin or in-memory content under a display name.
func (fileSet *FileSet) AddVirtual(name string, content []byte) FileID {
	return fileSet.Add(name, content, FileVirtual)
}

func (fileSet *FileSet) Get(id FileID) *File {
	return &fileSet.files[id]
}

func (fileSet *FileSet) Len() int {
	return len(fileSet.files)
}

// Resolve converts a span into line and column positions.
func (fileSet *FileSet) Resolve(span Span) (start, end LineCol) {
	f := &fileSet.files[span.File]
	return toLineCol(f.LineIdx, span.Start), toLineCol(f.LineIdx, span.End)
}

// GetLine returns line lineNum (1-based) without its terminator, or "" when
// there is no such line.
func (f *File) GetLine(lineNum uint32) string {
	if lineNum == 0 {
		return ""
	}
	lines, err := safecast.Conv[uint32](len(f.LineIdx))
	if err != nil {
		panic(fmt.Errorf("line index overflow: %w", err))
	}
	size, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("content too large: %w", err))
	}

	var start uint32
	if lineNum > 1 {
		if lineNum-2 >= lines {
			return ""
		}
		start = f.LineIdx[lineNum-2] + 1
	}
	end := size
	if lineNum-1 < lines {
		end = f.LineIdx[lineNum-1]
	}
	if start > end {
		return ""
	}
	// end указывает на '\n' или одиночный '\r'; '\r' перед '\n' срезаем
	return string(bytes.TrimSuffix(f.Content[start:end], []byte{'\r'}))
}
