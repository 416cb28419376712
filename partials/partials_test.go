package partials

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/codingersid/liquidgo/parser"
)

func TestInMemorySourceAddAndTryGet(t *testing.T) {
	lang := parser.NewLanguage()
	src := NewInMemorySource()
	require.NoError(t, src.Add("card", "hello {{ name }}", lang))

	p, ok := src.TryGet("card")
	require.True(t, ok)
	require.NotNil(t, p)

	_, ok = src.TryGet("missing")
	require.False(t, ok)
	require.Equal(t, []string{"card"}, src.Names())
}

func TestFileSourceResolvesDottedName(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "layouts"), 0o755))
	path := filepath.Join(dir, "layouts", "card.liquid")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0o644))

	lang := parser.NewLanguage()
	fs := NewFileSource(dir, ".liquid", lang)

	require.True(t, fs.Exists("layouts.card"))
	p, ok := fs.TryGet("layouts.card")
	require.True(t, ok)
	require.NotNil(t, p)
	require.Contains(t, fs.Names(), "layouts.card")

	_, ok = fs.TryGet("layouts.missing")
	require.False(t, ok)
}

func TestFileSourceReparsesOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "snippet.liquid")
	require.NoError(t, os.WriteFile(path, []byte("one"), 0o644))

	lang := parser.NewLanguage()
	fs := NewFileSource(dir, ".liquid", lang)

	first, err := fs.load("snippet")
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("two"), 0o644))
	second, err := fs.load("snippet")
	require.NoError(t, err)
	require.NotSame(t, first, second)
}
