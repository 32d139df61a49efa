package diag

import (
	"csclean/internal/source"
)

// Severity of a diagnostic. Malformed C# never stops cleaning, so the lexer
// and the builder only produce warnings; errors are kept for IO failures.
type Severity uint8

const (
	SevInfo Severity = iota
	SevWarning
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}

// Note points at a related location, e.g. where an unterminated literal began.
type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic describes one problem found in the input. Primary always
// refers to the file the diagnostic was reported for.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}

// Title is the message, or the code title when the message is empty.
func (d Diagnostic) Title() string {
	if d.Message != "" {
		return d.Message
	}
	return d.Code.Title()
}
