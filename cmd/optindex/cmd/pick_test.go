package cmd

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPickCmd_PlainPick(t *testing.T) {
	// Given: piped input that filters to Generic and picks it
	isolate(t)

	// When: picking from brands
	out, err := run(t, "gen\n1\n", "pick", "--plain")

	// Then: Generic is reported
	require.NoError(t, err)
	assert.Contains(t, out, "Brand (8 options)")
	assert.Contains(t, out, "Picked Generic (bandId82323e12e)")
}

func TestPickCmd_JumpThenPick_JSON(t *testing.T) {
	isolate(t)

	out, err := run(t, ":w\n1\n", "pick", "--format", "json")

	require.NoError(t, err)
	// The listing precedes the JSON document.
	start := strings.Index(out, "{")
	require.GreaterOrEqual(t, start, 0)
	var got pickOutput
	require.NoError(t, json.Unmarshal([]byte(out[start:]), &got))
	assert.Equal(t, "Woman style", got.Label)
	assert.False(t, got.Cancelled)
}

func TestPickCmd_EndOfInput_Cancels(t *testing.T) {
	isolate(t)

	out, err := run(t, "", "pick")

	require.NoError(t, err)
	assert.Contains(t, out, "Nothing picked")
}

func TestPickCmd_ColorsMultiSelect(t *testing.T) {
	// Given: the colour catalog, limited to two colours
	isolate(t)

	// When: toggling Red, Blue and Navy (numbers follow the sorted listing)
	out, err := run(t, "red\n1\nblue\n1\nnavy\n1\n:q\n", "pick", "--catalog", "colors")

	// Then: Red was evicted first in first out
	require.NoError(t, err)
	assert.Contains(t, out, "Colours: Blue, Navy")
}
