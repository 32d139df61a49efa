package source

// FileID identifies a file inside its FileSet.
type FileID uint32

// FileFlags describe how a document was obtained and what it looks like.
type FileFlags uint8

const (
	// FileVirtual: read from stdin or built in memory, Path is a display name.
	FileVirtual FileFlags = 1 << iota
	// FileHasBOM: content starts with a UTF-8 byte order mark. The mark stays
	// in Content and is lexed as whitespace trivia.
	FileHasBOM
	// FileHasCRLF: content contains at least one "\r\n".
	FileHasCRLF
)

// File is one C# document. Content is never normalized; every byte of it
// must come back out of the printer unless an edit removed it.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	// LineIdx holds the offset of the last byte of every line terminator:
	// '\n', or a lone '\r'.
	LineIdx []uint32
	Hash    uint64 // xxhash of Content
	Flags   FileFlags
}

// LineCol is a 1-based position; Col counts bytes.
type LineCol struct {
	Line uint32
	Col  uint32
}
