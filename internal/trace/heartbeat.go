package trace

import (
	"sync"
	"time"
)

// Heartbeat reports the number of open spans at a fixed interval. During a
// directory run, beats with a constant non-zero count and no new end events
// point at a document that hangs the parser.
type Heartbeat struct {
	stop chan struct{}
	wg   sync.WaitGroup
	once sync.Once
}

// StartHeartbeat starts beating into t. It returns nil when t is disabled
// or interval is not positive; Stop is safe on nil.
func StartHeartbeat(t Tracer, interval time.Duration) *Heartbeat {
	if !enabled(t) || interval <= 0 {
		return nil
	}
	h := &Heartbeat{stop: make(chan struct{})}
	h.wg.Add(1)
	go h.run(t, interval)
	return h
}

func (h *Heartbeat) run(t Tracer, interval time.Duration) {
	defer h.wg.Done()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	beat := 0
	for {
		select {
		case <-ticker.C:
			beat++
			t.Emit(&Event{
				Time:  time.Now(),
				Seq:   seq.Add(1),
				Kind:  KindHeartbeat,
				Scope: ScopeDriver,
				Name:  "heartbeat",
				Fields: []Field{
					{Key: "beat", Value: beat},
					{Key: "open", Value: OpenSpans()},
				},
			})
		case <-h.stop:
			return
		}
	}
}

// Stop ends the heartbeat and waits for the goroutine to exit.
func (h *Heartbeat) Stop() {
	if h == nil {
		return
	}
	h.once.Do(func() { close(h.stop) })
	h.wg.Wait()
}
