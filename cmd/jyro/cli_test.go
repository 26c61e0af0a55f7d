package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// execCLI runs rootCmd in-process with args, capturing stdout/stderr.
// Simplified from the teacher's CLITestHarness (which shells out to a
// built binary): invoking Cobra directly in the test process avoids a
// go-build step per test run while exercising the same command tree.
func execCLI(t *testing.T, args ...string) (stdout string, err error) {
	t.Helper()

	r, w, pipeErr := os.Pipe()
	require.NoError(t, pipeErr)
	origStdout := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = origStdout }()

	rootCmd.SetArgs(args)
	err = rootCmd.Execute()

	w.Close()
	var buf bytes.Buffer
	buf.ReadFrom(r)
	return buf.String(), err
}

func TestRootHelpListsSubcommands(t *testing.T) {
	out, err := execCLI(t, "--help")
	require.NoError(t, err)
	require.Contains(t, out, "run")
	require.Contains(t, out, "lint")
	require.Contains(t, out, "artifact")
	require.Contains(t, out, "serve")
}

func TestLintReportsCleanScript(t *testing.T) {
	path := writeScript(t, `return data.name`)
	out, err := execCLI(t, "lint", path)
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestLintReportsSyntaxError(t *testing.T) {
	path := writeScript(t, `return data.`)
	_, err := execCLI(t, "lint", path)
	require.Error(t, err)
}

func TestRunPrintsJSONResult(t *testing.T) {
	path := writeScript(t, `return Upper(data.name)`)
	inputPath := writeInput(t, `{"name":"jyro"}`)

	out, err := execCLI(t, "run", path, "--input", inputPath)
	require.NoError(t, err)
	require.Contains(t, out, `"JYRO"`)
}

func writeScript(t *testing.T, source string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "script.jyro")
	require.NoError(t, os.WriteFile(path, []byte(source), 0o644))
	return path
}

func writeInput(t *testing.T, json string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "input.json")
	require.NoError(t, os.WriteFile(path, []byte(json), 0o644))
	return path
}
