package trace

import "sync"

// syncRecorder is a goroutine-safe recorder for heartbeat tests.
type syncRecorder struct {
	mu     sync.Mutex
	events []*Event
}

func (r *syncRecorder) Emit(ev *Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}
func (r *syncRecorder) Close() error { return nil }
func (r *syncRecorder) Level() Level { return LevelDebug }

func (r *syncRecorder) beats() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, ev := range r.events {
		if ev.Kind == KindHeartbeat {
			n++
		}
	}
	return n
}

func (r *syncRecorder) firstBeat() *Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ev := range r.events {
		if ev.Kind == KindHeartbeat {
			return ev
		}
	}
	return nil
}
