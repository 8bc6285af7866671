package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkTextShortInput(t *testing.T) {
	tc := NewTextChunker()

	chunks := tc.ChunkText("A short paragraph.", 1000, 150)
	require.Len(t, chunks, 1)
	assert.Equal(t, "A short paragraph.", chunks[0])
}

func TestChunkTextEmptyInput(t *testing.T) {
	tc := NewTextChunker()

	assert.Empty(t, tc.ChunkText("", 1000, 150))
	assert.Empty(t, tc.ChunkText("\n\n\n\n", 1000, 150))
}

func TestChunkTextSplitsParagraphs(t *testing.T) {
	tc := NewTextChunker()

	para := strings.Repeat("word ", 20)
	text := strings.TrimSpace(para) + "\n\n" + strings.TrimSpace(para) + "\n\n" + strings.TrimSpace(para)

	chunks := tc.ChunkText(text, 120, 0)
	assert.Greater(t, len(chunks), 1)
	for _, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk), 120)
		assert.NotEmpty(t, strings.TrimSpace(chunk))
	}
}

func TestChunkTextOverlapCarriesContext(t *testing.T) {
	tc := NewTextChunker()

	var paras []string
	for i := 0; i < 6; i++ {
		paras = append(paras, strings.TrimSpace(strings.Repeat("alpha ", 15)))
	}
	chunks := tc.ChunkText(strings.Join(paras, "\n\n"), 200, 40)
	require.Greater(t, len(chunks), 1)

	// Each follow-up chunk starts with the tail of its predecessor.
	for i := 1; i < len(chunks); i++ {
		tail := lastNChars(chunks[i-1], 40)
		assert.True(t, strings.HasPrefix(chunks[i], tail))
	}
}

func TestChunkTextLongParagraphFallsBackToSentences(t *testing.T) {
	tc := NewTextChunker()

	var sb strings.Builder
	for i := 0; i < 40; i++ {
		sb.WriteString("This sentence fills out a very long single paragraph. ")
	}

	chunks := tc.ChunkText(sb.String(), 300, 0)
	assert.Greater(t, len(chunks), 1)
	for _, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk), 300)
	}
}

func TestChunkTextDefensiveDefaults(t *testing.T) {
	tc := NewTextChunker()

	// Nonsense sizes fall back to workable values instead of looping.
	chunks := tc.ChunkText("Some text to chunk.", 0, -5)
	require.Len(t, chunks, 1)
	assert.Equal(t, "Some text to chunk.", chunks[0])
}

func TestSplitIntoSentences(t *testing.T) {
	sentences := splitIntoSentences("One. Two! Three? ")
	assert.Equal(t, []string{"One", "Two", "Three"}, sentences)
}

func TestLastNChars(t *testing.T) {
	assert.Equal(t, "cde", lastNChars("abcde", 3))
	assert.Equal(t, "abcde", lastNChars("abcde", 10))
	assert.Equal(t, "", lastNChars("abcde", 0))
	// Rune-safe on multibyte text.
	assert.Equal(t, "प्रदेश", lastNChars("उत्तर प्रदेश", 6))
}
