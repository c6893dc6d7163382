package trace

import (
	"bufio"
	"io"
	"sync"
)

// StreamTracer formats every kept event and writes it to w.
type StreamTracer struct {
	mu     sync.Mutex
	w      *bufio.Writer
	closer io.Closer
	level  Level
	format Format
}

func NewStreamTracer(w io.Writer, level Level, format Format) *StreamTracer {
	return &StreamTracer{w: bufio.NewWriter(w), level: level, format: format}
}

// Emit writes ev unless its scope is filtered out. Heartbeats always pass.
// Write errors are dropped: tracing never fails a request.
func (t *StreamTracer) Emit(ev *Event) {
	if ev.Kind != KindHeartbeat && !t.level.Allows(ev.Scope) {
		return
	}
	data := FormatEvent(ev, t.format)

	t.mu.Lock()
	defer t.mu.Unlock()
	_, _ = t.w.Write(data)
	// heartbeat must reach the file right away, otherwise a hang looks silent
	if ev.Kind == KindHeartbeat {
		_ = t.w.Flush()
	}
}

// Close flushes buffered events and closes a file opened by New.
func (t *StreamTracer) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.w.Flush(); err != nil {
		return err
	}
	if t.closer != nil {
		err := t.closer.Close()
		t.closer = nil
		return err
	}
	return nil
}

func (t *StreamTracer) Level() Level {
	return t.level
}
