package service

import "strings"

const (
	DefaultMaxChunkSize = 1000
	DefaultChunkOverlap = 100
)

// ChunkText splits text into overlapping chunks bounded by sentence
// boundaries. Sentences accumulate until the next one would push the chunk
// past maxChunkSize; the chunk is then closed and the next one is seeded with
// trailing sentences of the closed chunk whose combined length stays within
// overlap. A single sentence longer than maxChunkSize becomes its own
// oversized chunk rather than being split mid-sentence.
func ChunkText(text string, maxChunkSize, overlap int) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	sentences := splitSentences(text)

	var chunks []string
	var current []string
	currentSize := 0

	for _, sentence := range sentences {
		sentenceSize := len(sentence)

		if currentSize+sentenceSize > maxChunkSize && len(current) > 0 {
			chunks = append(chunks, strings.Join(current, " "))

			// Walk backwards through the closed chunk collecting sentences
			// until the overlap budget runs out.
			overlapSize := 0
			var overlapSentences []string
			for i := len(current) - 1; i >= 0; i-- {
				s := current[i]
				if overlapSize+len(s) > overlap {
					break
				}
				overlapSentences = append([]string{s}, overlapSentences...)
				overlapSize += len(s)
			}

			current = overlapSentences
			currentSize = overlapSize
		}

		current = append(current, sentence)
		currentSize += sentenceSize
	}

	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, " "))
	}

	return chunks
}

// splitSentences cuts text at sentence-terminal punctuation followed by
// whitespace. This is a heuristic, not a tokenizer: abbreviations and decimal
// numbers mid-sentence will mis-split only when followed by whitespace after
// the dot. Text without terminal punctuation comes back as one sentence.
func splitSentences(text string) []string {
	var sentences []string
	start := 0
	i := 0
	for i < len(text) {
		c := text[i]
		if (c == '.' || c == '!' || c == '?') && i+1 < len(text) && isSpace(text[i+1]) {
			sentences = append(sentences, text[start:i+1])
			i++
			for i < len(text) && isSpace(text[i]) {
				i++
			}
			start = i
			continue
		}
		i++
	}
	if start < len(text) {
		sentences = append(sentences, text[start:])
	}
	return sentences
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}
