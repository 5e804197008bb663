package gen

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderLib_MergesFragments(t *testing.T) {
	ucd := &Fragment{
		Imports: []Import{{Path: "strings"}, {Alias: "churi", Path: "example.com/churi"}},
		Code:    []byte("func ReadValue(s string) string { return strings.TrimSpace(s) }"),
	}
	ucs := &Fragment{
		Imports: []Import{{Alias: "churi", Path: "example.com/churi"}, {Path: "fmt"}},
		Code:    []byte("func WriteValue(v any) string { return fmt.Sprint(v) }"),
	}

	file, err := RenderLib(RenderOptions{PackageName: "uclib", Filename: "uclib.go"}, ucd, ucs)
	require.NoError(t, err)

	src := string(file.Content)
	assert.Equal(t, "uclib.go", file.Filename)
	assert.Contains(t, src, "// Code generated by uc-transformer. DO NOT EDIT.")
	assert.Contains(t, src, "package uclib")
	assert.Contains(t, src, "churi \"example.com/churi\"")
	assert.Contains(t, src, "func ReadValue(s string) string { return strings.TrimSpace(s) }")
	assert.Contains(t, src, "func WriteValue(v any) string { return fmt.Sprint(v) }")

	assert.Less(t, strings.Index(src, "example.com/churi"), strings.Index(src, "\"fmt\""))
	assert.Less(t, strings.Index(src, "\"fmt\""), strings.Index(src, "\"strings\""))
	assert.Equal(t, 1, strings.Count(src, "example.com/churi"))
	assert.Less(t, strings.Index(src, "func ReadValue"), strings.Index(src, "func WriteValue"))
}

func TestRenderLib_NoImports(t *testing.T) {
	file, err := RenderLib(RenderOptions{PackageName: "uclib"}, &Fragment{Code: []byte("var X = 1")})
	require.NoError(t, err)
	assert.NotContains(t, string(file.Content), "import")
	assert.Contains(t, string(file.Content), "var X = 1")
}

func TestRenderLib_ImportConflict(t *testing.T) {
	_, err := RenderLib(RenderOptions{PackageName: "uclib"},
		&Fragment{Imports: []Import{{Alias: "c", Path: "example.com/a"}}},
		&Fragment{Imports: []Import{{Alias: "c", Path: "example.com/b"}}},
	)
	require.ErrorIs(t, err, ErrImportConflict)

	_, err = RenderLib(RenderOptions{PackageName: "uclib"},
		&Fragment{Imports: []Import{{Alias: "a", Path: "example.com/a"}}},
		&Fragment{Imports: []Import{{Alias: "b", Path: "example.com/a"}}},
	)
	require.ErrorIs(t, err, ErrImportConflict)
}

func TestRenderLib_FormatFailureWritesSidecar(t *testing.T) {
	dir := t.TempDir()

	file, err := RenderLib(
		RenderOptions{PackageName: "uclib", Filename: filepath.Join("out", "uclib.go"), DebugDir: dir},
		&Fragment{Code: []byte("func {")},
	)
	require.Error(t, err)
	require.NotNil(t, file)
	assert.Contains(t, string(file.Content), "func {")

	sidecar, readErr := os.ReadFile(filepath.Join(dir, "uclib.unformatted.go"))
	require.NoError(t, readErr)
	assert.Equal(t, file.Content, sidecar)
}
