package trace

import "time"

// Kind is the type of a trace event.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint
	KindHeartbeat
)

func (k Kind) String() string {
	switch k {
	case KindSpanBegin:
		return "begin"
	case KindSpanEnd:
		return "end"
	case KindPoint:
		return "point"
	case KindHeartbeat:
		return "heartbeat"
	default:
		return "unknown"
	}
}

// Scope is the granularity of an event; lower values are coarser.
type Scope uint8

const (
	// ScopeDriver covers CLI commands and host entry points.
	ScopeDriver Scope = iota + 1
	// ScopePass covers pipeline stages: locate, lex, parse, resolve, collect, synthesize.
	ScopePass
	// ScopeDiagram covers the work done for one diagram block.
	ScopeDiagram
	ScopeNode
)

func (s Scope) String() string {
	switch s {
	case ScopeDriver:
		return "driver"
	case ScopePass:
		return "pass"
	case ScopeDiagram:
		return "diagram"
	case ScopeNode:
		return "node"
	default:
		return "unknown"
	}
}

// Block identifies the diagram block an event belongs to.
type Block struct {
	Index int    `json:"index"`
	Title string `json:"title"`
}

// Field is a named integer measured by a span.
type Field struct {
	Key   string
	Value int
}

// Event is a single trace record.
type Event struct {
	Time     time.Time
	Seq      uint64
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64
	GID      uint64
	Name     string
	Detail   string
	// Doc is the URI of the document being processed, if any.
	Doc string
	// Block is nil outside a diagram block.
	Block *Block
	// Fields keep the order in which the span recorded them.
	Fields []Field
}

// Field returns the value recorded under key.
func (ev *Event) Field(key string) (int, bool) {
	for _, f := range ev.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return 0, false
}
