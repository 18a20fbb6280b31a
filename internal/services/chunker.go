package services

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// NotionTextLimit is the longest rich-text segment Notion accepts.
const NotionTextLimit = 2000

type TextChunker interface {
	ChunkText(text string, maxChunkSize int) []string
}

type textChunker struct{}

func NewTextChunker() TextChunker {
	return &textChunker{}
}

// ChunkText splits text into segments of at most maxChunkSize runes,
// preferring paragraph breaks, then whitespace. Joining the segments
// reproduces the input.
func (tc *textChunker) ChunkText(text string, maxChunkSize int) []string {
	if maxChunkSize <= 0 {
		maxChunkSize = NotionTextLimit
	}
	if text == "" {
		return nil
	}

	var chunks []string
	for utf8.RuneCountInString(text) > maxChunkSize {
		runes := []rune(text)
		window := string(runes[:maxChunkSize])

		cut := strings.LastIndex(window, "\n\n")
		if cut > 0 {
			cut += 2
		} else {
			cut = lastSpace(window)
		}
		if cut <= 0 {
			cut = len(window)
		}

		chunks = append(chunks, text[:cut])
		text = text[cut:]
	}
	if text != "" {
		chunks = append(chunks, text)
	}
	return chunks
}

// lastSpace returns the byte offset just after the last whitespace rune in s.
func lastSpace(s string) int {
	idx := strings.LastIndexFunc(s, unicode.IsSpace)
	if idx < 0 {
		return -1
	}
	_, size := utf8.DecodeRuneInString(s[idx:])
	return idx + size
}
