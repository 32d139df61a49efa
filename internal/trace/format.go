package trace

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Format is the encoding of written events.
type Format uint8

const (
	FormatAuto   Format = iota // .ndjson/.jsonl paths get NDJSON, the rest text
	FormatText                 // one indented line per event
	FormatNDJSON               // one JSON object per line
)

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return FormatAuto, nil
	case "text":
		return FormatText, nil
	case "ndjson", "json":
		return FormatNDJSON, nil
	}
	return FormatAuto, fmt.Errorf("invalid trace format: %q (expected: auto|text|ndjson)", s)
}

// text timestamps are relative to process start
var processStart = time.Now()

// FormatEvent encodes ev including the trailing newline.
func FormatEvent(ev *Event, format Format) []byte {
	if format == FormatNDJSON {
		return formatNDJSON(ev)
	}
	return formatText(ev)
}

type jsonEvent struct {
	Time     string            `json:"time"`
	Seq      uint64            `json:"seq"`
	Kind     string            `json:"kind"`
	Scope    string            `json:"scope"`
	SpanID   uint64            `json:"span_id,omitempty"`
	ParentID uint64            `json:"parent_id,omitempty"`
	Depth    int               `json:"depth,omitempty"`
	Name     string            `json:"name"`
	Detail   string            `json:"detail,omitempty"`
	DurUS    int64             `json:"dur_us,omitempty"`
	Extra    map[string]string `json:"extra,omitempty"`
}

func formatNDJSON(ev *Event) []byte {
	data, _ := json.Marshal(jsonEvent{ //nolint:errcheck // only strings and numbers
		Time:     ev.Time.Format(time.RFC3339Nano),
		Seq:      ev.Seq,
		Kind:     ev.Kind.String(),
		Scope:    ev.Scope.String(),
		SpanID:   ev.SpanID,
		ParentID: ev.ParentID,
		Depth:    ev.Depth,
		Name:     ev.Name,
		Detail:   ev.Detail,
		DurUS:    ev.Dur.Microseconds(),
		Extra:    ev.Extra,
	})
	return append(data, '\n')
}

var kindMarks = map[Kind]string{KindSpanBegin: "→ ", KindSpanEnd: "← ", KindPoint: "• "}

// formatText renders
//
//	[   1.234ms]   ← lex (12 tokens) {k=v} +0.051ms
func formatText(ev *Event) []byte {
	buf := make([]byte, 0, 96)
	buf = fmt.Appendf(buf, "[%9.3fms] ", ms(ev.Time.Sub(processStart)))
	for range ev.Depth {
		buf = append(buf, "  "...)
	}
	buf = append(buf, kindMarks[ev.Kind]...)
	buf = append(buf, ev.Name...)
	if ev.Detail != "" {
		buf = append(buf, " ("...)
		buf = append(buf, ev.Detail...)
		buf = append(buf, ')')
	}
	if len(ev.Extra) > 0 {
		buf = append(buf, " {"...)
		// ключи сортируем, чтобы вывод был стабильным
		for i, k := range slices.Sorted(maps.Keys(ev.Extra)) {
			if i > 0 {
				buf = append(buf, ", "...)
			}
			buf = append(buf, k...)
			buf = append(buf, '=')
			buf = append(buf, ev.Extra[k]...)
		}
		buf = append(buf, '}')
	}
	if ev.Kind == KindSpanEnd {
		buf = append(buf, " +"...)
		buf = strconv.AppendFloat(buf, ms(ev.Dur), 'f', 3, 64)
		buf = append(buf, "ms"...)
	}
	return append(buf, '\n')
}

func ms(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
