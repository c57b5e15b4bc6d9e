package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Aman-CERP/optindex/internal/errors"
)

func TestRootCmd_ShowsHelp(t *testing.T) {
	// Given: a root command

	// When: executing with --help
	out, err := run(t, "", "--help")

	// Then: it should show usage information
	require.NoError(t, err)
	assert.Contains(t, out, "optindex")
	assert.Contains(t, out, "Available Commands")
}

func TestRootCmd_HasSubcommands(t *testing.T) {
	cmd := NewRootCmd()

	names := map[string]bool{}
	for _, sc := range cmd.Commands() {
		names[sc.Name()] = true
	}

	for _, want := range []string{"group", "jump", "catalogs", "pick", "colors", "validate", "serve", "config", "version"} {
		assert.True(t, names[want], "missing %s command", want)
	}
}

func TestRootCmd_HasDebugFlag(t *testing.T) {
	cmd := NewRootCmd()

	flag := cmd.PersistentFlags().Lookup("debug")

	require.NotNil(t, flag)
	assert.Equal(t, "false", flag.DefValue)
}

func TestRootCmd_VersionFlag(t *testing.T) {
	out, err := run(t, "", "--version")

	require.NoError(t, err)
	assert.Contains(t, out, "optindex version")
}

func TestRootCmd_InvalidProjectConfig_ReturnsConfigError(t *testing.T) {
	// Given: a project config with an invalid page height
	dir := isolate(t)
	writeProjectConfig(t, dir, "picker:\n  page_height: 1\n")

	// When: running a command that loads config
	_, err := run(t, "", "catalogs")

	// Then: the config error surfaces and names the bad key
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
	assert.Contains(t, apperrors.FormatForCLI(err), "page_height")
}
