package cmd

import (
	"bytes"
	"strings"
	"testing"
)

// isolate runs the test in an empty working directory with an empty user
// config and no environment overrides.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	for _, k := range []string{
		"OPTINDEX_CATALOG", "OPTINDEX_CATALOG_FILES", "OPTINDEX_PAGE_HEIGHT",
		"OPTINDEX_MAX_COLORS", "OPTINDEX_FORMAT", "OPTINDEX_NO_COLOR",
		"OPTINDEX_LOG_LEVEL",
	} {
		t.Setenv(k, "")
	}
	t.Chdir(dir)
	return dir
}

// run executes the root command with args and stdin, returning stdout.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}
