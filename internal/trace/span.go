package trace

import (
	"context"
	"sync/atomic"
	"time"
)

var spanIDs atomic.Uint64

// Span is an open Begin/End pair. A span that was filtered out by the level
// is inert: End and WithExtra do nothing and ID is 0.
type Span struct {
	tracer  Tracer
	id      uint64
	parent  uint64
	depth   int
	scope   Scope
	name    string
	started time.Time
	extra   map[string]string
}

// Begin opens a span under parent (nil for a top-level span).
func Begin(t Tracer, scope Scope, name string, parent *Span) *Span {
	if t == nil || !t.Enabled() || !t.Level().ShouldEmit(scope) {
		return &Span{}
	}
	sp := &Span{
		tracer:  t,
		id:      spanIDs.Add(1),
		scope:   scope,
		name:    name,
		started: time.Now(),
	}
	if parent.ID() != 0 {
		sp.parent = parent.id
		sp.depth = parent.depth + 1
	}
	t.Emit(&Event{
		Time:     sp.started,
		Kind:     KindSpanBegin,
		Scope:    scope,
		SpanID:   sp.id,
		ParentID: sp.parent,
		Depth:    sp.depth,
		Name:     name,
	})
	return sp
}

// End closes the span and returns its duration.
func (s *Span) End(detail string) time.Duration {
	if s.ID() == 0 {
		return 0
	}
	now := time.Now()
	dur := now.Sub(s.started)
	s.tracer.Emit(&Event{
		Time:     now,
		Dur:      dur,
		Kind:     KindSpanEnd,
		Scope:    s.scope,
		SpanID:   s.id,
		ParentID: s.parent,
		Depth:    s.depth,
		Name:     s.name,
		Detail:   detail,
		Extra:    s.extra,
	})
	return dur
}

// WithExtra attaches a key to the end event.
func (s *Span) WithExtra(key, value string) *Span {
	if s.ID() == 0 {
		return s
	}
	if s.extra == nil {
		s.extra = make(map[string]string)
	}
	s.extra[key] = value
	return s
}

func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}

// Point emits an instant event under parent.
func Point(t Tracer, scope Scope, name, detail string, parent *Span) {
	if t == nil || !t.Enabled() || !t.Level().ShouldEmit(scope) {
		return
	}
	ev := &Event{Time: time.Now(), Kind: KindPoint, Scope: scope, Name: name, Detail: detail}
	if parent.ID() != 0 {
		ev.ParentID = parent.id
		ev.Depth = parent.depth + 1
	}
	t.Emit(ev)
}

// Error records a failure. It is written at every level except off.
func Error(t Tracer, name string, err error) {
	if t == nil || !t.Enabled() || err == nil {
		return
	}
	t.Emit(&Event{
		Time:  time.Now(),
		Kind:  KindPoint,
		Scope: ScopeDriver,
		Name:  name,
		Extra: map[string]string{errorKey: err.Error()},
	})
}

type (
	tracerKey struct{}
	spanKey   struct{}
)

// FromContext returns the tracer stored in ctx, or Nop.
func FromContext(ctx context.Context) Tracer {
	if ctx == nil {
		return Nop
	}
	if t, ok := ctx.Value(tracerKey{}).(Tracer); ok {
		return t
	}
	return Nop
}

func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, tracerKey{}, t)
}

// CurrentSpan returns the innermost emitted span of ctx, or nil.
func CurrentSpan(ctx context.Context) *Span {
	if ctx == nil {
		return nil
	}
	sp, _ := ctx.Value(spanKey{}).(*Span)
	return sp
}

// StartSpan opens a span under the current one and returns a context that
// carries it. Filtered spans leave ctx unchanged, so their children attach
// to the nearest emitted ancestor.
func StartSpan(ctx context.Context, scope Scope, name string) (context.Context, *Span) {
	sp := Begin(FromContext(ctx), scope, name, CurrentSpan(ctx))
	if sp.ID() == 0 {
		return ctx, sp
	}
	return context.WithValue(ctx, spanKey{}, sp), sp
}
