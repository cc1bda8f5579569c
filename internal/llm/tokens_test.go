package llm

import (
	"strings"
	"testing"
)

func TestEstimateTokens(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{name: "empty", input: "", want: 0},
		{name: "whitespace", input: "   ", want: 0},
		{name: "short word", input: "hi", want: 1},
		{name: "many short words", input: "a b c d e f", want: 6},
		{name: "long text", input: strings.Repeat("x", 40), want: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := estimateTokens(tt.input); got != tt.want {
				t.Errorf("estimateTokens(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestTruncateToTokens(t *testing.T) {
	text := strings.Repeat("plan a focused morning with deep work blocks ", 50)

	if got := TruncateToTokens(text, 0); got != text {
		t.Error("non-positive limit should return text unchanged")
	}

	short := "gym on monday"
	if got := TruncateToTokens(short, 1000); got != short {
		t.Errorf("TruncateToTokens(short) = %q", got)
	}

	cut := TruncateToTokens(text, 20)
	if len(cut) >= len(text) {
		t.Fatalf("expected truncation, got %d of %d bytes", len(cut), len(text))
	}
	if !strings.HasPrefix(text, cut) {
		t.Errorf("truncated text should be a prefix of the input")
	}
	if n := CountTokens(cut); n > 20 {
		t.Errorf("CountTokens(cut) = %d, want <= 20", n)
	}
}
