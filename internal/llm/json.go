package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// ErrInvalidJSON is returned when a response cannot be decoded even after
// repair.
var ErrInvalidJSON = errors.New("response is not valid JSON")

// ExtractJSON pulls the JSON payload out of model output that may wrap it in
// a markdown code fence or surround it with prose. It returns s trimmed when
// nothing better is found.
func ExtractJSON(s string) string {
	if body, ok := fencedBlock(s, "```json"); ok {
		return body
	}
	if body, ok := fencedBlock(s, "```"); ok {
		return body
	}
	if raw, ok := balancedJSON(s); ok {
		return raw
	}
	return strings.TrimSpace(s)
}

func fencedBlock(s, fence string) (string, bool) {
	idx := strings.Index(s, fence)
	if idx == -1 {
		return "", false
	}
	rest := strings.TrimLeft(s[idx+len(fence):], "\r\n")
	end := strings.Index(rest, "```")
	if end == -1 {
		return "", false
	}
	return strings.TrimRight(rest[:end], "\r\n\t "), true
}

// balancedJSON returns the first complete {...} or [...] value in s, skipping
// brackets inside string literals.
func balancedJSON(s string) (string, bool) {
	start := strings.IndexAny(s, "{[")
	if start == -1 {
		return "", false
	}

	depth := 0
	inString, escaped := false, false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{', '[':
			depth++
		case '}', ']':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	// Unterminated: hand the tail to the repairer.
	return s[start:], true
}

// DecodeJSON extracts JSON from content and unmarshals it into v. When strict
// decoding fails the payload is run through jsonrepair (trailing commas,
// single quotes, truncated output) and decoded again.
func DecodeJSON(content string, v any) error {
	payload := ExtractJSON(content)
	err := json.Unmarshal([]byte(payload), v)
	if err == nil {
		return nil
	}

	repaired, repairErr := jsonrepair.JSONRepair(payload)
	if repairErr != nil {
		return fmt.Errorf("%w: %v (content: %s)", ErrInvalidJSON, err, preview(content))
	}
	if err := json.Unmarshal([]byte(repaired), v); err != nil {
		return fmt.Errorf("%w: %v (content: %s)", ErrInvalidJSON, err, preview(content))
	}
	return nil
}

func preview(s string) string {
	const max = 200
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "..."
}
