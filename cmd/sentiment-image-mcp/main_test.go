package main

import (
	"bytes"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetArgs(args)
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&errOut)
	err = root.Execute()
	return out.String(), errOut.String(), err
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	in := filepath.Join(dir, "in.txt")
	out := filepath.Join(dir, "out.png")
	require.NoError(t, os.WriteFile(in, []byte("It was the best of times, it was the worst of times."), 0o644))

	_, stderr, err := execute(t, "", "render", "--in", in, "--out", out, "--scale", "5", "--grid")
	require.NoError(t, err)
	assert.Contains(t, stderr, "wrote image")

	img, err := imgio.Open(out)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 20, 15), img.Bounds())
}

func TestRenderCommand_Stdin(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	out := filepath.Join(dir, "out.bmp")

	_, _, err := execute(t, "good day", "render", "--in", "-", "--out", out, "--scale", "3")
	require.NoError(t, err)

	img, err := imgio.Open(out)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 6, 3), img.Bounds())
}

func TestRenderCommand_Errors(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	_, _, err := execute(t, "", "render", "--out", filepath.Join(dir, "x.png"))
	assert.ErrorContains(t, err, "required flag")

	_, _, err = execute(t, "", "render", "--in", filepath.Join(dir, "missing.txt"), "--out", filepath.Join(dir, "x.png"))
	assert.ErrorContains(t, err, "failed to read text file")

	_, _, err = execute(t, "...", "render", "--in", "-", "--out", filepath.Join(dir, "x.png"))
	assert.ErrorContains(t, err, "no tokens")

	_, _, err = execute(t, "good day", "render", "--in", "-", "--out", filepath.Join(dir, "x.tiff"))
	assert.ErrorContains(t, err, "unsupported output format")
}

func TestRenderCommand_InvalidConfig(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SENTIMENT_MCP_WORKERS", "-2")

	_, _, err := execute(t, "good", "render", "--in", "-", "--out", "x.png")
	assert.ErrorContains(t, err, "invalid config")
}

func TestVersionCommand(t *testing.T) {
	t.Setenv("SENTIMENT_MCP_WORKERS", "-2") // config is not needed

	stdout, _, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "sentiment-image-mcp dev")
	assert.Contains(t, stdout, "Git commit: unknown")
}
