package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Aman-CERP/optindex/internal/errors"
)

func writeProjectConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".optindex.yaml"), []byte(content), 0o644))
}

func TestGroupCmd_TextOutput(t *testing.T) {
	// Given: the built-in brand catalog
	isolate(t)

	// When: grouping with query "mu"
	out, err := run(t, "", "group", "mu")

	// Then: only Muslimah matches, under M
	require.NoError(t, err)
	assert.Equal(t, "M\n  Muslimah  (bandId52323e12e)\n", out)
}

func TestGroupCmd_NoMatch(t *testing.T) {
	isolate(t)

	out, err := run(t, "", "group", "xyz")

	require.NoError(t, err)
	assert.Contains(t, out, "no matching options")
}

func TestGroupCmd_JSONOutput(t *testing.T) {
	// Given: the built-in brand catalog
	isolate(t)

	// When: grouping every brand as JSON
	out, err := run(t, "", "group", "--format", "json")

	// Then: sections, jump index and rail agree
	require.NoError(t, err)
	var got groupOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "brands", got.Catalog)
	assert.Equal(t, 8, got.Total)

	headings := []string{}
	for _, s := range got.Sections {
		headings = append(headings, s.Heading)
	}
	assert.Equal(t, []string{"A", "B", "C", "G", "M", "W"}, headings)
	assert.Equal(t, 4, got.JumpIndex["M"])
	assert.Equal(t, "ACME", got.Sections[0].Members[0].Label)
	assert.Equal(t, "Ash", got.Sections[0].Members[1].Label)
	require.Len(t, got.Rail, 26)
	assert.True(t, got.Rail[22].Enabled, "W has a section")
	assert.False(t, got.Rail[25].Enabled, "Z has none")
}

func TestGroupCmd_FormatFromConfig(t *testing.T) {
	isolate(t)
	t.Setenv("OPTINDEX_FORMAT", "json")

	out, err := run(t, "", "group", "ash")

	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(out)))
}

func TestGroupCmd_Rail(t *testing.T) {
	isolate(t)

	out, err := run(t, "", "group", "--rail", "--catalog", "sizes", "xs")

	require.NoError(t, err)
	assert.Contains(t, out, "X\n  XS  (xs)  UK 6\n  XXS  (xxs)  UK 4\n")
	assert.Contains(t, out, "· · · · · · · · · · · · · · · · · · · · · · · X · ·")
}

func TestGroupCmd_ProjectCatalogFile(t *testing.T) {
	// Given: a project config naming an extra catalog file
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "shoes.yaml"), []byte(`name: shoes
title: Shoes
options:
  - id: s1
    label: Zara
  - id: s2
    label: ASOS
  - id: s3
    label: Adidas
`), 0o644))
	writeProjectConfig(t, dir, "catalogs:\n  default: shoes\n  files:\n    - shoes.yaml\n")

	// When: grouping with query "a" against the default catalog
	out, err := run(t, "", "group", "a")

	// Then: the file's catalog is used
	require.NoError(t, err)
	assert.Equal(t, "A\n  Adidas  (s3)\n  ASOS  (s2)\nZ\n  Zara  (s1)\n", out)
}

func TestGroupCmd_UnknownCatalog(t *testing.T) {
	isolate(t)

	_, err := run(t, "", "group", "--catalog", "shoes")

	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeCatalogNotFound, apperrors.GetCode(err))
}

func TestGroupCmd_InvalidFormat(t *testing.T) {
	isolate(t)

	_, err := run(t, "", "group", "--format", "xml")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}
