package llm

import (
	"strings"
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

var (
	encodingOnce sync.Once
	encoding     *tiktoken.Tiktoken
)

// tokenizer returns the cl100k_base encoding, or nil when it cannot be loaded
// (the BPE table is fetched on first use).
func tokenizer() *tiktoken.Tiktoken {
	encodingOnce.Do(func() {
		enc, err := tiktoken.GetEncoding("cl100k_base")
		if err == nil {
			encoding = enc
		}
	})
	return encoding
}

// CountTokens returns the cl100k_base token count of text, falling back to a
// character heuristic when the encoding is unavailable.
func CountTokens(text string) int {
	if enc := tokenizer(); enc != nil {
		return len(enc.Encode(text, nil, nil))
	}
	return estimateTokens(text)
}

// TruncateToTokens cuts text to at most maxTokens tokens. A non-positive
// limit returns text unchanged.
func TruncateToTokens(text string, maxTokens int) string {
	if maxTokens <= 0 {
		return text
	}
	if enc := tokenizer(); enc != nil {
		tokens := enc.Encode(text, nil, nil)
		if len(tokens) <= maxTokens {
			return text
		}
		return enc.Decode(tokens[:maxTokens])
	}

	runes := []rune(text)
	if limit := maxTokens * 4; limit < len(runes) {
		return string(runes[:limit])
	}
	return text
}

// estimateTokens approximates max(runes/4, words).
func estimateTokens(text string) int {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 0
	}
	estimate := len([]rune(trimmed)) / 4
	if words := len(strings.Fields(trimmed)); estimate < words {
		estimate = words
	}
	return max(estimate, 1)
}
