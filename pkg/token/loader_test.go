package token

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parsec/pkg/parsec"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestLoadYAMLConfig(t *testing.T) {
	path := writeFile(t, "lang.yaml", `
name: toy
commentLine: "#"
commentStart: "/*"
commentEnd: "*/"
nestedComments: true
identStart: letter_
identLetter: alphanum_
reservedNames:
  - if
  - then
caseSensitive: false
`)

	def, err := NewLoader([]string{path}).Load()
	require.NoError(t, err)
	assert.Equal(t, "#", def.CommentLine)
	assert.Equal(t, "/*", def.CommentStart)
	assert.False(t, def.CaseSensitive)
	assert.Equal(t, []string{"if", "then"}, def.ReservedNames)

	tp := NewTokenParser(def)
	_, perr := parsec.ParseString(tp.Reserved("if"), "IF ")
	assert.Nil(t, perr, "the loaded definition should be case insensitive")
}

func TestLoadJSONConfig(t *testing.T) {
	path := writeFile(t, "lang.json", `{
		"commentLine": "--",
		"identStart": "letter",
		"identLetter": "alphanum"
	}`)

	def, err := NewLoader([]string{path}).Load()
	require.NoError(t, err)
	assert.Equal(t, "--", def.CommentLine)
}

func TestLoadLaterFilesOverride(t *testing.T) {
	base := writeFile(t, "base.yaml", "commentLine: \"#\"\n")
	over := writeFile(t, "override.yaml", "commentLine: \"--\"\n")

	def, err := NewLoader([]string{base, over}).Load()
	require.NoError(t, err)
	assert.Equal(t, "--", def.CommentLine)
}

func TestLoadMissingFilesFallBackToDefault(t *testing.T) {
	def, err := NewLoader([]string{"/nonexistent/lang.yaml"}).Load()
	require.NoError(t, err)
	assert.True(t, def.CaseSensitive, "defaults apply when no file exists")
	assert.Empty(t, def.CommentLine)
}

func TestLoadRejectsUnknownClass(t *testing.T) {
	path := writeFile(t, "lang.yaml", "identStart: martian\n")

	_, err := NewLoader([]string{path}).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "identStart")
}

func TestLoadRejectsHalfConfiguredBlockComments(t *testing.T) {
	path := writeFile(t, "lang.yaml", "commentStart: \"/*\"\n")

	_, err := NewLoader([]string{path}).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "commentEnd")
}

func TestConfigResolveLiteralSet(t *testing.T) {
	cfg := &Config{OpStart: "oneof:+-*/", OpLetter: "oneof:+-*/"}

	def, err := cfg.Resolve()
	require.NoError(t, err)

	tp := NewTokenParser(def)
	op, perr := parsec.ParseString(tp.Operator(), "+-")
	require.Nil(t, perr)
	assert.Equal(t, "+-", op)
}
