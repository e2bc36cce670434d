package ingest

import (
	"fmt"
	"strings"
	"testing"
)

func TestChunkTextShortInput(t *testing.T) {
	text := "A short document that fits in one window."
	chunks := ChunkText(text, 768, 64)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0] != text {
		t.Errorf("chunk mutated the text: %q", chunks[0])
	}
}

func TestChunkTextEmptyInput(t *testing.T) {
	if chunks := ChunkText("", 768, 64); len(chunks) != 0 {
		t.Errorf("expected no chunks for empty text, got %d", len(chunks))
	}
	if chunks := ChunkText("   \n\n  ", 768, 64); len(chunks) != 0 {
		t.Errorf("expected no chunks for whitespace text, got %d", len(chunks))
	}
}

func TestChunkTextCoversWholeText(t *testing.T) {
	// Long run of sentences, far larger than one window.
	sentence := "The quick brown fox jumps over the lazy dog. "
	text := strings.Repeat(sentence, 400)

	chunks := ChunkText(text, 100, 10)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}

	// Every chunk's content must come from the text, and together they must
	// cover it: each fragment of the original should appear in some chunk.
	joined := strings.Join(chunks, " ")
	for _, word := range []string{"quick", "brown", "lazy"} {
		if !strings.Contains(joined, word) {
			t.Errorf("chunks lost the word %q", word)
		}
	}
	for i, chunk := range chunks {
		if strings.TrimSpace(chunk) == "" {
			t.Errorf("chunk %d is blank", i)
		}
		if !strings.Contains(text, chunk) {
			t.Errorf("chunk %d is not a substring of the source", i)
		}
	}
}

func TestChunkTextPrefersSentenceBoundary(t *testing.T) {
	// Boundary in the back half of the first window: the chunk should end at
	// the period rather than mid-sentence.
	first := strings.Repeat("a", 250) + ". "
	second := "Bcd " + strings.Repeat("e", 400)
	chunks := ChunkText(first+second, 80, 8) // window of 320 chars

	if len(chunks) < 2 {
		t.Fatalf("expected at least 2 chunks, got %d", len(chunks))
	}
	if !strings.HasSuffix(chunks[0], ".") {
		t.Errorf("first chunk should end at the sentence boundary, got suffix %q", chunks[0][len(chunks[0])-10:])
	}
}

func TestChunkTextNoGapAfterShortenedWindow(t *testing.T) {
	// A paragraph break just past a window's midpoint shortens that window;
	// the next one must pick up where it ended, not at a fixed stride.
	text := strings.Repeat("a", 200) + "\n\n" + strings.Repeat("b", 150) + "MARKER" + strings.Repeat("c", 500)

	chunks := ChunkText(text, 100, 10)
	if !strings.Contains(strings.Join(chunks, ""), "MARKER") {
		t.Fatalf("text after the shortened window was dropped: %d chunks, first chunk len %d", len(chunks), len(chunks[0]))
	}
}

func TestChunkTextPositionalCoverage(t *testing.T) {
	// Distinct sentences so every chunk occurs exactly once in the source.
	var b strings.Builder
	for i := 0; i < 120; i++ {
		fmt.Fprintf(&b, "Sentence number %d carries its own unique payload. ", i)
		if i%7 == 6 {
			b.WriteString("\n\n")
		}
	}
	text := b.String()

	chunks := ChunkText(text, 100, 10)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}

	// Consecutive chunks may overlap but must never leave non-whitespace text
	// between one chunk's end and the next chunk's start.
	offset := 0
	prevEnd := 0
	for i, chunk := range chunks {
		idx := strings.Index(text[offset:], chunk)
		if idx < 0 {
			t.Fatalf("chunk %d not found in source at or after offset %d", i, offset)
		}
		start := offset + idx
		if i > 0 && start > prevEnd {
			if gap := text[prevEnd:start]; strings.TrimSpace(gap) != "" {
				t.Fatalf("chunks %d and %d leave a gap of %d chars: %q", i-1, i, len(gap), gap)
			}
		}
		prevEnd = start + len(chunk)
		offset = start + 1
	}
	if remainder := strings.TrimSpace(text[prevEnd:]); remainder != "" {
		t.Fatalf("final chunk stops short of the text end, %d chars left", len(remainder))
	}
}

func TestChunkTextDefaults(t *testing.T) {
	// Nonsense sizes fall back to defaults instead of panicking.
	chunks := ChunkText("some text", 0, -5)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk with default sizing, got %d", len(chunks))
	}
}
