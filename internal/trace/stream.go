package trace

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Config describes where and how events are written.
type Config struct {
	Level      Level
	Format     Format    // FormatAuto picks by OutputPath extension
	Output     io.Writer // takes precedence over OutputPath
	OutputPath string    // "" or "-" = Stderr
	Stderr     io.Writer // os.Stderr when nil
}

// New builds a tracer from cfg. LevelOff yields Nop.
func New(cfg Config) (Tracer, error) {
	if cfg.Level == LevelOff {
		return Nop, nil
	}
	format := cfg.Format
	if format == FormatAuto {
		format = FormatText
		if strings.HasSuffix(cfg.OutputPath, ".ndjson") || strings.HasSuffix(cfg.OutputPath, ".jsonl") {
			format = FormatNDJSON
		}
	}

	switch {
	case cfg.Output != nil:
		return NewStreamTracer(cfg.Output, cfg.Level, format), nil
	case cfg.OutputPath == "" || cfg.OutputPath == "-":
		stderr := cfg.Stderr
		if stderr == nil {
			stderr = os.Stderr
		}
		// stderr не закрываем вместе с трейсером
		return NewStreamTracer(keepOpen{stderr}, cfg.Level, format), nil
	}

	f, err := os.Create(cfg.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace output: %w", err)
	}
	t := NewStreamTracer(f, cfg.Level, format)
	t.buf = bufio.NewWriterSize(f, 64<<10)
	return t, nil
}

type keepOpen struct{ io.Writer }

// StreamTracer writes each event as soon as it arrives. File outputs are
// buffered and flushed on Flush and Close.
type StreamTracer struct {
	mu     sync.Mutex
	w      io.Writer
	buf    *bufio.Writer // nil = unbuffered
	seq    uint64
	level  Level
	format Format
}

func NewStreamTracer(w io.Writer, level Level, format Format) *StreamTracer {
	return &StreamTracer{w: w, level: level, format: format}
}

func (t *StreamTracer) Emit(ev *Event) {
	if !t.level.ShouldEmit(ev.Scope) && !ev.isError() {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.seq++
	ev.Seq = t.seq
	data := FormatEvent(ev, t.format)
	// ошибки записи трейса не роняют запуск
	if t.buf != nil {
		_, _ = t.buf.Write(data)
		return
	}
	_, _ = t.w.Write(data)
}

func (t *StreamTracer) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.flushLocked()
}

func (t *StreamTracer) flushLocked() error {
	if t.buf != nil {
		return t.buf.Flush()
	}
	return nil
}

// Close flushes and closes the underlying writer when it is an io.Closer.
func (t *StreamTracer) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.flushLocked(); err != nil {
		return err
	}
	if c, ok := t.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (t *StreamTracer) Level() Level  { return t.level }
func (t *StreamTracer) Enabled() bool { return t.level > LevelOff }
