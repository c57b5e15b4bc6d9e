package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aman-CERP/optindex/pkg/indexer"
)

func TestWriter_Status_PrintsIconAndMessage(t *testing.T) {
	// Given: a writer with a buffer
	buf := &bytes.Buffer{}
	w := New(buf)

	// When: printing a status message
	w.Status("🔍", "Loading catalogs...")

	// Then: output contains icon and message
	assert.Equal(t, "🔍 Loading catalogs...\n", buf.String())
}

func TestWriter_Status_NoIconIndents(t *testing.T) {
	buf := &bytes.Buffer{}
	New(buf).Status("", "detail")

	assert.Equal(t, "   detail\n", buf.String())
}

func TestWriter_Levels(t *testing.T) {
	tests := []struct {
		name  string
		print func(w *Writer)
		want  string
	}{
		{"success", func(w *Writer) { w.Successf("%d catalogs", 5) }, "✅ 5 catalogs\n"},
		{"warning", func(w *Writer) { w.Warningf("no %s", "config") }, "⚠️  no config\n"},
		{"error", func(w *Writer) { w.Errorf("bad %s", "letter") }, "❌ bad letter\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			tt.print(New(buf))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestWriter_Code(t *testing.T) {
	buf := &bytes.Buffer{}
	New(buf).Code("a\nb")

	assert.Equal(t, "\n  a\n  b\n\n", buf.String())
}

func TestWriter_Sections(t *testing.T) {
	// Given: a grouped result
	res := indexer.FilterAndGroup([]indexer.Option{
		{ID: "1", Label: "Zara"},
		{ID: "2", Label: "ASOS"},
		{ID: "3", Label: "Adidas", Description: "sportswear"},
	}, "a")
	buf := &bytes.Buffer{}

	// When
	New(buf).Sections(res)

	// Then: headings then indented members in order
	assert.Equal(t, "A\n  Adidas  (3)  sportswear\n  ASOS  (2)\nZ\n  Zara  (1)\n", buf.String())
}

func TestWriter_Sections_Empty(t *testing.T) {
	buf := &bytes.Buffer{}
	New(buf).Sections(indexer.Result{})

	assert.Contains(t, buf.String(), "no matching options")
}

func TestWriter_Rail(t *testing.T) {
	buf := &bytes.Buffer{}
	New(buf).Rail([]indexer.RailEntry{
		{Letter: "A", Enabled: true},
		{Letter: "B"},
		{Letter: "C", Position: 1, Enabled: true},
	})

	assert.Equal(t, "A · C\n", buf.String())
}

func TestWriter_JSON(t *testing.T) {
	buf := &bytes.Buffer{}
	res := indexer.FilterAndGroup([]indexer.Option{{ID: "1", Label: "Zara"}}, "")

	require.NoError(t, New(buf).JSON(res))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Contains(t, decoded, "sections")
	assert.Equal(t, map[string]any{"Z": float64(0)}, decoded["jump_index"])
}
