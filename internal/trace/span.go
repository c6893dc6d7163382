package trace

import (
	"bytes"
	"context"
	"runtime"
	"strconv"
	"sync/atomic"
	"time"
)

var (
	seq       atomic.Uint64
	spanIDs   atomic.Uint64
	openSpans atomic.Int64
)

// OpenSpans is the number of spans begun and not yet ended.
func OpenSpans() int {
	return int(openSpans.Load())
}

// goroutineID parses the id out of the "goroutine N [running]" header.
func goroutineID() uint64 {
	var buf [64]byte
	b := buf[:runtime.Stack(buf[:], false)]
	b = bytes.TrimPrefix(b, []byte("goroutine "))
	end := bytes.IndexByte(b, ' ')
	if end < 0 {
		return 0
	}
	id, err := strconv.ParseUint(string(b[:end]), 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// Span is an open operation. A nil *Span is valid and records nothing, so
// callers never check whether tracing is on.
type Span struct {
	tracer  Tracer
	id      uint64
	parent  uint64
	gid     uint64
	scope   Scope
	name    string
	doc     string
	block   *Block
	started time.Time
	fields  []Field
}

// Start opens a span under the span, document and block found in ctx and
// returns a context that parents later spans to it. When the tracer drops
// scope, ctx is returned unchanged with a nil span.
func Start(ctx context.Context, scope Scope, name string) (context.Context, *Span) {
	t := FromContext(ctx)
	if !enabled(t) || !t.Level().Allows(scope) {
		return ctx, nil
	}
	f := frameOf(ctx)
	s := &Span{
		tracer:  t,
		id:      spanIDs.Add(1),
		parent:  f.span,
		gid:     goroutineID(),
		scope:   scope,
		name:    name,
		doc:     f.doc,
		block:   f.block,
		started: time.Now(),
	}
	openSpans.Add(1)
	t.Emit(s.event(KindSpanBegin, s.started, ""))

	f.span = s.id
	return context.WithValue(ctx, frameKey{}, f), s
}

// Set records an integer field reported on the end event. Setting a key
// twice keeps the last value.
func (s *Span) Set(key string, value int) *Span {
	if s == nil {
		return nil
	}
	for i := range s.fields {
		if s.fields[i].Key == key {
			s.fields[i].Value = value
			return s
		}
	}
	s.fields = append(s.fields, Field{Key: key, Value: value})
	return s
}

// End emits the end event and returns the span duration.
func (s *Span) End(detail string) time.Duration {
	if s == nil || s.tracer == nil {
		return 0
	}
	now := time.Now()
	ev := s.event(KindSpanEnd, now, detail)
	ev.Fields = s.fields
	s.tracer.Emit(ev)
	s.tracer = nil
	openSpans.Add(-1)
	return now.Sub(s.started)
}

// ID returns the span id, 0 for a nil span.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}

func (s *Span) event(kind Kind, at time.Time, detail string) *Event {
	return &Event{
		Time:     at,
		Seq:      seq.Add(1),
		Kind:     kind,
		Scope:    s.scope,
		SpanID:   s.id,
		ParentID: s.parent,
		GID:      s.gid,
		Name:     s.name,
		Detail:   detail,
		Doc:      s.doc,
		Block:    s.block,
	}
}

// Point emits an instant event under the span found in ctx.
func Point(ctx context.Context, scope Scope, name, detail string) {
	t := FromContext(ctx)
	if !enabled(t) || !t.Level().Allows(scope) {
		return
	}
	f := frameOf(ctx)
	t.Emit(&Event{
		Time:     time.Now(),
		Seq:      seq.Add(1),
		Kind:     KindPoint,
		Scope:    scope,
		ParentID: f.span,
		GID:      goroutineID(),
		Name:     name,
		Detail:   detail,
		Doc:      f.doc,
		Block:    f.block,
	})
}
