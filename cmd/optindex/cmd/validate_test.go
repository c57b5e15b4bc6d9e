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

const validDraft = `images:
  - uri: file:///tmp/a.jpg
    name: a.jpg
    type: image/jpeg
item_name: Linen shirt
item_description: Worn twice
category: Shirts
brand: acme
condition: Good
size: M
colors: [White]
price: 25
`

func writeDraft(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "draft.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestValidateCmd_ValidDraft(t *testing.T) {
	// Given: a complete draft naming known catalog values
	dir := isolate(t)
	path := writeDraft(t, dir, validDraft)

	// When: validating it
	out, err := run(t, "", "validate", path)

	// Then: it passes
	require.NoError(t, err)
	assert.Contains(t, out, "Draft is valid")
}

func TestValidateCmd_InvalidDraft(t *testing.T) {
	// Given: a draft with an unknown brand and no price
	dir := isolate(t)
	path := writeDraft(t, dir, `images:
  - uri: file:///tmp/a.jpg
    name: a.jpg
    type: image/jpeg
item_name: Linen shirt
item_description: Worn twice
category: Shirts
brand: Gucci
condition: Good
size: M
`)

	// When: validating it
	out, err := run(t, "", "validate", path)

	// Then: both problems are listed and the command fails
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeDraftInvalid, apperrors.GetCode(err))
	assert.Contains(t, out, "brand")
	assert.Contains(t, out, "price")
}

func TestValidateCmd_Offline_SkipsCatalogs(t *testing.T) {
	dir := isolate(t)
	path := writeDraft(t, dir, `images:
  - uri: file:///tmp/a.jpg
    name: a.jpg
    type: image/jpeg
item_name: Linen shirt
item_description: Worn twice
category: Anything
brand: Gucci
condition: Good
size: M
price: 10
`)

	out, err := run(t, "", "validate", "--offline", path)

	require.NoError(t, err)
	assert.Contains(t, out, "Draft is valid")
}

func TestValidateCmd_JSON(t *testing.T) {
	dir := isolate(t)
	path := writeDraft(t, dir, "item_name: x\n")

	out, err := run(t, "", "validate", "--format", "json", path)

	require.Error(t, err)
	var got validateOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.False(t, got.Valid)
	assert.NotEmpty(t, got.Errors)
}

func TestValidateCmd_MissingFile(t *testing.T) {
	dir := isolate(t)

	_, err := run(t, "", "validate", filepath.Join(dir, "nope.yaml"))

	require.Error(t, err)
}
