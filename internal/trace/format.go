package trace

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Format is the encoding of written events.
type Format uint8

const (
	FormatAuto   Format = iota // text, or NDJSON for *.ndjson and *.json paths
	FormatText                 // one human-readable line per event
	FormatNDJSON               // one JSON object per line
)

// ParseFormat accepts auto|text|ndjson (json is an alias of ndjson).
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return FormatAuto, nil
	case "text":
		return FormatText, nil
	case "ndjson", "json":
		return FormatNDJSON, nil
	default:
		return FormatAuto, fmt.Errorf("invalid trace format: %q (expected: auto|text|ndjson)", s)
	}
}

// FormatEvent encodes ev as a single newline-terminated line.
func FormatEvent(ev *Event, format Format) []byte {
	if format == FormatNDJSON {
		return formatNDJSON(ev)
	}
	return formatText(ev)
}

type jsonEvent struct {
	Time     string         `json:"time"`
	Seq      uint64         `json:"seq"`
	Kind     string         `json:"kind"`
	Scope    string         `json:"scope"`
	SpanID   uint64         `json:"span_id,omitempty"`
	ParentID uint64         `json:"parent_id,omitempty"`
	GID      uint64         `json:"gid,omitempty"`
	Name     string         `json:"name"`
	Detail   string         `json:"detail,omitempty"`
	Doc      string         `json:"doc,omitempty"`
	Block    *Block         `json:"block,omitempty"`
	Fields   map[string]int `json:"fields,omitempty"`
}

func formatNDJSON(ev *Event) []byte {
	j := jsonEvent{
		Time:     ev.Time.Format("2006-01-02T15:04:05.000000Z07:00"),
		Seq:      ev.Seq,
		Kind:     ev.Kind.String(),
		Scope:    ev.Scope.String(),
		SpanID:   ev.SpanID,
		ParentID: ev.ParentID,
		GID:      ev.GID,
		Name:     ev.Name,
		Detail:   ev.Detail,
		Doc:      ev.Doc,
		Block:    ev.Block,
	}
	if len(ev.Fields) > 0 {
		j.Fields = make(map[string]int, len(ev.Fields))
		for _, f := range ev.Fields {
			j.Fields[f.Key] = f.Value
		}
	}
	data, _ := json.Marshal(j)
	return append(data, '\n')
}

// formatText renders
//
//	[15:04:05.000 #12]   ← parse a.puml#0 "Overview" (detail) {tokens=40 errors=1}
func formatText(ev *Event) []byte {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s #%d] ", ev.Time.Format("15:04:05.000"), ev.Seq)
	if ev.ParentID > 0 {
		sb.WriteString("  ")
	}
	switch ev.Kind {
	case KindSpanBegin:
		sb.WriteString("→ ")
	case KindSpanEnd:
		sb.WriteString("← ")
	case KindPoint:
		sb.WriteString("• ")
	case KindHeartbeat:
		sb.WriteString("♡ ")
	}
	sb.WriteString(ev.Name)

	if ev.Doc != "" || ev.Block != nil {
		sb.WriteByte(' ')
		sb.WriteString(ev.Doc)
		if ev.Block != nil {
			fmt.Fprintf(&sb, "#%d %q", ev.Block.Index, ev.Block.Title)
		}
	}
	if ev.Detail != "" {
		sb.WriteString(" (")
		sb.WriteString(ev.Detail)
		sb.WriteString(")")
	}
	if len(ev.Fields) > 0 {
		sb.WriteString(" {")
		for i, f := range ev.Fields {
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(f.Key)
			sb.WriteByte('=')
			sb.WriteString(strconv.Itoa(f.Value))
		}
		sb.WriteString("}")
	}
	sb.WriteByte('\n')
	return []byte(sb.String())
}
