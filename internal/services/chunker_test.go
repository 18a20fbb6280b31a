package services

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestChunkText(t *testing.T) {
	chunker := NewTextChunker()

	tests := []struct {
		name   string
		text   string
		max    int
		chunks []string
	}{
		{"empty", "", 10, nil},
		{"fits", "short text", 20, []string{"short text"}},
		{"paragraph break preferred", "first para\n\nsecond para", 16, []string{"first para\n\n", "second para"}},
		{"whitespace fallback", "alpha beta gamma", 12, []string{"alpha beta ", "gamma"}},
		{"hard cut", "abcdefghij", 4, []string{"abcd", "efgh", "ij"}},
		{"runes not bytes", "ééééé", 2, []string{"éé", "éé", "é"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.chunks, chunker.ChunkText(tt.text, tt.max))
		})
	}
}

func TestChunkText_NotionLimit(t *testing.T) {
	text := strings.Repeat("Leads product strategy across AI platforms. ", 150)

	chunks := NewTextChunker().ChunkText(text, 0)

	assert.Greater(t, len(chunks), 1)
	for _, c := range chunks {
		assert.LessOrEqual(t, utf8.RuneCountInString(c), NotionTextLimit)
	}
	assert.Equal(t, text, strings.Join(chunks, ""))
}
