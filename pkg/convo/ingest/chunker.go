package ingest

import "strings"

// charsPerToken is the same approximation the budget tracker uses.
const charsPerToken = 4

// ChunkText splits text into overlapping windows. Sizes are given in
// approximate tokens and converted to characters. When a natural boundary
// (paragraph break, or sentence punctuation followed by a capital) falls in
// the back half of a window, the window ends there instead of mid-sentence.
func ChunkText(text string, sizeTokens, overlapTokens int) []string {
	if sizeTokens <= 0 {
		sizeTokens = 768
	}
	if overlapTokens < 0 || overlapTokens >= sizeTokens {
		overlapTokens = 64
	}

	size := sizeTokens * charsPerToken
	overlap := overlapTokens * charsPerToken

	runes := []rune(text)
	var chunks []string
	for start := 0; start < len(runes); {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		} else {
			if boundary := findBoundary(runes, start, end); boundary > 0 {
				end = boundary
			}
		}

		chunk := strings.TrimSpace(string(runes[start:end]))
		if chunk != "" {
			chunks = append(chunks, chunk)
		}

		if end == len(runes) {
			break
		}
		// Advance from the actual window end so a shortened window never
		// opens a gap. Overlap is sacrificed when it would stall the walk.
		next := end - overlap
		if next <= start {
			next = end
		}
		start = next
	}
	return chunks
}

// findBoundary scans the back half of the window for the last natural break.
// Returns 0 when none exists.
func findBoundary(runes []rune, start, end int) int {
	half := start + (end-start)/2
	for i := end - 1; i > half; i-- {
		// Paragraph break.
		if runes[i] == '\n' && i > 0 && runes[i-1] == '\n' {
			return i + 1
		}
		// Sentence end followed by whitespace and a capital.
		if isSentenceEnd(runes[i]) && i+2 < end && isSpace(runes[i+1]) && isUpper(runes[i+2]) {
			return i + 1
		}
	}
	return 0
}

func isSentenceEnd(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\n' || r == '\t'
}

func isUpper(r rune) bool {
	return r >= 'A' && r <= 'Z'
}
