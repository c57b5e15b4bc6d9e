package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aman-CERP/optindex/pkg/indexer"
)

func brandCatalog() []indexer.Option {
	return []indexer.Option{
		{ID: "1", Label: "Bayt-mahmoud"},
		{ID: "2", Label: "ACME"},
		{ID: "3", Label: "Maryam ventures"},
		{ID: "4", Label: "Ash"},
		{ID: "5", Label: "Muslimah"},
		{ID: "6", Label: "Woman style"},
		{ID: "7", Label: "Continental"},
		{ID: "8", Label: "Generic"},
	}
}

func currentLabel(t *testing.T, l *list) string {
	t.Helper()
	opt, ok := l.current()
	require.True(t, ok)
	return opt.Label
}

func TestList_InitialCursorOnFirstOption(t *testing.T) {
	l := newList(brandCatalog())

	assert.Equal(t, "ACME", currentLabel(t, l))
	assert.True(t, l.rows[0].isHeading)
	assert.Equal(t, "A", l.rows[0].heading)
}

func TestList_MoveSkipsHeadings(t *testing.T) {
	l := newList(brandCatalog())

	l.move(2) // ACME -> Ash -> (B) Bayt-mahmoud
	assert.Equal(t, "Bayt-mahmoud", currentLabel(t, l))

	l.move(-1)
	assert.Equal(t, "Ash", currentLabel(t, l))
}

func TestList_MoveClampsAtEnds(t *testing.T) {
	l := newList(brandCatalog())

	l.move(-5)
	assert.Equal(t, "ACME", currentLabel(t, l))

	l.move(100)
	assert.Equal(t, "Woman style", currentLabel(t, l))
}

func TestList_SetQueryResetsCursor(t *testing.T) {
	l := newList(brandCatalog())
	l.move(3)

	l.setQuery("mu")

	assert.Equal(t, "Muslimah", currentLabel(t, l))
	assert.Len(t, l.res.Sections, 1)
}

func TestList_SetQueryNoMatch(t *testing.T) {
	l := newList(brandCatalog())

	l.setQuery("xyz")

	_, ok := l.current()
	assert.False(t, ok)
	assert.Empty(t, l.rows)
	l.move(1) // no panic on an empty list
}

func TestList_Jump(t *testing.T) {
	l := newList(brandCatalog())

	pos, ok := l.jump("m")

	require.True(t, ok)
	assert.Equal(t, l.res.JumpIndex["M"], pos)
	assert.Equal(t, "Maryam ventures", currentLabel(t, l))
}

func TestList_JumpMissingLeavesCursor(t *testing.T) {
	l := newList(brandCatalog())
	l.move(1)

	_, ok := l.jump("Z")

	assert.False(t, ok)
	assert.Equal(t, "Ash", currentLabel(t, l))
}

func TestNormalizeLetter(t *testing.T) {
	assert.Equal(t, "A", normalizeLetter("a"))
	assert.Equal(t, "Ñ", normalizeLetter(" ñ "))
	assert.Equal(t, "7", normalizeLetter("7"))
	assert.Equal(t, "ab", normalizeLetter("ab"))
	assert.Equal(t, "", normalizeLetter(""))
}
