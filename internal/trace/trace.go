package trace

import (
	"fmt"
	"strings"
	"time"
)

// Tracer receives events. Implementations must be safe for concurrent use:
// concat emits from every worker.
type Tracer interface {
	Emit(ev *Event)
	Flush() error
	Close() error
	Level() Level
	Enabled() bool
}

// Level controls how much is written.
type Level uint8

const (
	LevelOff    Level = iota
	LevelError        // only Error events
	LevelPhase        // command and pass spans
	LevelDetail       // plus per-file events of concat
	LevelDebug        // plus per-node edits
)

var levelNames = [...]string{"off", "error", "phase", "detail", "debug"}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel reads a --trace-level value; "" means off.
func ParseLevel(s string) (Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return LevelOff, nil
	}
	for i, name := range levelNames {
		if s == name {
			return Level(i), nil
		}
	}
	return LevelOff, fmt.Errorf("invalid trace level: %q (expected: %s)", s, strings.Join(levelNames[:], "|"))
}

// ShouldEmit reports whether events of scope pass this level. Errors are
// not filtered here; see Error.
func (l Level) ShouldEmit(scope Scope) bool {
	switch l {
	case LevelPhase:
		return scope <= ScopePass
	case LevelDetail:
		return scope <= ScopeFile
	case LevelDebug:
		return true
	}
	return false
}

// Scope is the granularity of an event, coarse to fine.
type Scope uint8

const (
	// ScopeDriver is a whole command: filter, concat, tokenize.
	ScopeDriver Scope = iota + 1
	// ScopePass is one phase: read, lex, build, edit, print.
	ScopePass
	// ScopeFile is one file inside concat.
	ScopeFile
	// ScopeNode is a single removed directive or stripped comment.
	ScopeNode
)

func (s Scope) String() string {
	switch s {
	case ScopeDriver:
		return "driver"
	case ScopePass:
		return "pass"
	case ScopeFile:
		return "file"
	case ScopeNode:
		return "node"
	}
	return "unknown"
}

type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint
)

func (k Kind) String() string {
	switch k {
	case KindSpanBegin:
		return "begin"
	case KindSpanEnd:
		return "end"
	case KindPoint:
		return "point"
	}
	return "unknown"
}

// Event is one trace record.
type Event struct {
	Time     time.Time
	Seq      uint64 // assigned by the tracer
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64 // 0 for top-level spans
	Depth    int    // nesting below the outermost span, for text indentation
	Name     string // "lex", "concat", "done"
	Detail   string
	Dur      time.Duration // span length, set on end events
	Extra    map[string]string
}

const errorKey = "error"

func (ev *Event) isError() bool {
	_, ok := ev.Extra[errorKey]
	return ok && ev.Kind == KindPoint
}

type nopTracer struct{}

func (nopTracer) Emit(*Event)   {}
func (nopTracer) Flush() error  { return nil }
func (nopTracer) Close() error  { return nil }
func (nopTracer) Level() Level  { return LevelOff }
func (nopTracer) Enabled() bool { return false }

// Nop is the tracer used when tracing is off.
var Nop Tracer = nopTracer{}
