package diagnose

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"umlsense/internal/trace"
)

type tracedEvent struct {
	Kind   string         `json:"kind"`
	Name   string         `json:"name"`
	Doc    string         `json:"doc"`
	Block  *trace.Block   `json:"block"`
	Fields map[string]int `json:"fields"`
}

func TestDiagnoseTracesBlocks(t *testing.T) {
	var buf bytes.Buffer
	tr := trace.NewStreamTracer(&buf, trace.LevelDetail, trace.FormatNDJSON)
	ctx := trace.WithTracer(context.Background(), tr)

	doc := newDoc(
		"@startuml Overview",
		"class A {",
		"@enduml",
		"@startuml",
		"@enduml",
	)
	NewCollector(DefaultOptions()).Diagnose(ctx, doc)
	require.NoError(t, tr.Close())

	var ends []tracedEvent
	sc := bufio.NewScanner(&buf)
	for sc.Scan() {
		var ev tracedEvent
		require.NoError(t, json.Unmarshal(sc.Bytes(), &ev))
		assert.Equal(t, doc.URI, ev.Doc)
		if ev.Kind == "end" {
			ends = append(ends, ev)
		}
	}

	var diagrams, parses []tracedEvent
	for _, ev := range ends {
		switch ev.Name {
		case "diagram":
			diagrams = append(diagrams, ev)
		case "parse":
			parses = append(parses, ev)
		}
	}
	require.Len(t, diagrams, 2)
	assert.Equal(t, trace.Block{Index: 0, Title: "Overview"}, *diagrams[0].Block)
	assert.Equal(t, trace.Block{Index: 1, Title: "test-1"}, *diagrams[1].Block)
	assert.Equal(t, 1, diagrams[0].Fields["errors"])

	require.Len(t, parses, 2)
	assert.Equal(t, "Overview", parses[0].Block.Title)
	assert.Equal(t, 1, parses[0].Fields["errors"])

	last := ends[len(ends)-1]
	assert.Equal(t, "diagnose", last.Name)
	assert.Nil(t, last.Block)
	assert.Equal(t, 2, last.Fields["blocks"])
}
