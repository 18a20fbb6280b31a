package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJobArg(t *testing.T) {
	id := uuid.New()

	got, err := parseJobArg(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = parseJobArg("not-a-uuid")
	assert.EqualError(t, err, `invalid job ID "not-a-uuid"`)
}

func TestReadURLs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urls.txt")
	content := "# saved searches\nhttps://example.com/jobs/1\n\n  https://example.com/jobs/2  \n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	urls, err := readURLs(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://example.com/jobs/1", "https://example.com/jobs/2"}, urls)

	_, err = readURLs(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestCommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, name := range []string{"serve", "score", "rescore", "letter", "package", "notion", "profile", "token", "mcp", "import", "version"} {
		assert.True(t, names[name], name)
	}
}
