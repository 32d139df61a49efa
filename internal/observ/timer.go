// Package observ measures the phases of one cleaning run.
package observ

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Phase is one measured step: read, lex, build, edit or print.
type Phase struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Note  string
}

// Timer collects phases in the order they were started. Safe for use from
// several goroutines.
type Timer struct {
	mu     sync.Mutex
	phases []Phase
}

func NewTimer() *Timer { return &Timer{phases: make([]Phase, 0, 5)} }

// Begin starts a phase and returns its index for End.
func (t *Timer) Begin(name string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.phases = append(t.phases, Phase{Name: name, Start: time.Now()})
	return len(t.phases) - 1
}

// End closes the phase idx. Unknown indices are ignored.
func (t *Timer) End(idx int, note string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if idx < 0 || idx >= len(t.phases) {
		return
	}
	p := &t.phases[idx]
	p.Dur = time.Since(p.Start)
	p.Note = note
}

// Track starts a phase and returns the func that ends it.
func (t *Timer) Track(name string) func(note string) {
	if t == nil {
		return func(string) {}
	}
	idx := t.Begin(name)
	return func(note string) { t.End(idx, note) }
}

// PhaseReport — фаза в виде, пригодном для сериализации.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Share      float64 `json:"share"` // доля от total, 0..1
	Note       string  `json:"note,omitempty"`
}

type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

func (t *Timer) Report() Report {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.phases) == 0 {
		return Report{}
	}
	var total time.Duration
	for _, p := range t.phases {
		total += p.Dur
	}
	report := Report{TotalMS: millis(total), Phases: make([]PhaseReport, len(t.phases))}
	for i, p := range t.phases {
		share := 0.0
		if total > 0 {
			share = float64(p.Dur) / float64(total)
		}
		report.Phases[i] = PhaseReport{Name: p.Name, DurationMS: millis(p.Dur), Share: share, Note: p.Note}
	}
	return report
}

// Summary renders the report for stderr:
//
//	timings:
//	  lex        0.12 ms   40%  // 12 tokens
func (t *Timer) Summary() string {
	report := t.Report()
	var sb strings.Builder
	sb.WriteString("timings:\n")
	for _, p := range report.Phases {
		fmt.Fprintf(&sb, "  %-8s %8.2f ms %4.0f%%", p.Name, p.DurationMS, p.Share*100)
		if p.Note != "" {
			sb.WriteString("  // " + p.Note)
		}
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "  %-8s %8.2f ms\n", "total", report.TotalMS)
	return sb.String()
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
