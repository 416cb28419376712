package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunRendersToStdoutWithoutContext(t *testing.T) {
	dir := t.TempDir()
	tmpl := writeFile(t, dir, "greeting.liquid", "Hello, {{ nil | default: \"world\" }}!")

	var stdout, stderr bytes.Buffer
	err := run([]string{"--input", tmpl}, &stdout, &stderr)
	require.NoError(t, err)
	require.Equal(t, "Hello, world!", stdout.String())
}

func TestRunRendersWithJSONContext(t *testing.T) {
	dir := t.TempDir()
	tmpl := writeFile(t, dir, "greeting.liquid", "Hello, {{ name }}!")
	ctx := writeFile(t, dir, "ctx.json", `{"name": "Ada"}`)

	var stdout, stderr bytes.Buffer
	err := run([]string{"--input", tmpl, "--context", ctx}, &stdout, &stderr)
	require.NoError(t, err)
	require.Equal(t, "Hello, Ada!", stdout.String())
}

func TestRunRendersWithYAMLContextAndWritesOutputFile(t *testing.T) {
	dir := t.TempDir()
	tmpl := writeFile(t, dir, "greeting.liquid", "Hello, {{ name }}!")
	ctx := writeFile(t, dir, "ctx.yaml", "name: Grace\n")
	out := filepath.Join(dir, "out.txt")

	var stdout, stderr bytes.Buffer
	err := run([]string{"--input", tmpl, "--context", ctx, "--output", out}, &stdout, &stderr)
	require.NoError(t, err)
	require.Empty(t, stdout.String())

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Equal(t, "Hello, Grace!", string(got))
}

func TestRunRequiresInput(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run(nil, &stdout, &stderr)
	require.Error(t, err)
}

func TestRunReportsMissingTemplateFile(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run([]string{"--input", "/no/such/file.liquid"}, &stdout, &stderr)
	require.Error(t, err)
}
