package llm

import (
	"errors"
	"testing"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "raw json object",
			input:    `{"events": []}`,
			expected: `{"events": []}`,
		},
		{
			name:     "json with leading text",
			input:    `Here is your week: {"events": [{"title": "Gym"}]} enjoy!`,
			expected: `{"events": [{"title": "Gym"}]}`,
		},
		{
			name:     "json in code block",
			input:    "```json\n{\"events\": []}\n```",
			expected: `{"events": []}`,
		},
		{
			name:     "json in plain code block",
			input:    "```\n{\"events\": []}\n```",
			expected: `{"events": []}`,
		},
		{
			name:     "json array",
			input:    `[{"day": 1}, {"day": 2}]`,
			expected: `[{"day": 1}, {"day": 2}]`,
		},
		{
			name:     "brackets inside strings",
			input:    `{"title": "Review {draft} [v2]", "day": 0} trailing`,
			expected: `{"title": "Review {draft} [v2]", "day": 0}`,
		},
		{
			name:     "escaped quote inside string",
			input:    `{"title": "say \"hi}\""}`,
			expected: `{"title": "say \"hi}\""}`,
		},
		{
			name:     "unterminated keeps tail",
			input:    `ok {"events": [{"title": "Gym"}`,
			expected: `{"events": [{"title": "Gym"}`,
		},
		{
			name:     "no json",
			input:    "  sorry, I can't help  ",
			expected: "sorry, I can't help",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractJSON(tt.input); got != tt.expected {
				t.Errorf("ExtractJSON() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Events []struct {
			Title string `json:"title"`
			Day   int    `json:"day"`
		} `json:"events"`
	}

	tests := []struct {
		name      string
		input     string
		wantCount int
		wantTitle string
	}{
		{name: "strict", input: `{"events": [{"title": "Gym", "day": 1}]}`, wantCount: 1, wantTitle: "Gym"},
		{name: "fenced", input: "```json\n{\"events\": [{\"title\": \"Run\", \"day\": 2}]}\n```", wantCount: 1, wantTitle: "Run"},
		{name: "trailing comma repaired", input: `{"events": [{"title": "Gym", "day": 1},]}`, wantCount: 1, wantTitle: "Gym"},
		{name: "truncated repaired", input: `{"events": [{"title": "Gym", "day": 1}`, wantCount: 1, wantTitle: "Gym"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got payload
			if err := DecodeJSON(tt.input, &got); err != nil {
				t.Fatalf("DecodeJSON() error: %v", err)
			}
			if len(got.Events) != tt.wantCount {
				t.Fatalf("got %d events, want %d", len(got.Events), tt.wantCount)
			}
			if got.Events[0].Title != tt.wantTitle {
				t.Errorf("title = %q, want %q", got.Events[0].Title, tt.wantTitle)
			}
		})
	}
}

func TestDecodeJSONTypeMismatch(t *testing.T) {
	var got struct {
		Events []string `json:"events"`
	}
	err := DecodeJSON(`{"events": 42}`, &got)
	if !errors.Is(err, ErrInvalidJSON) {
		t.Fatalf("DecodeJSON() error = %v, want ErrInvalidJSON", err)
	}
}
