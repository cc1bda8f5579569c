package generate

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/javiermolinar/rocinante/internal/llm"
	"github.com/javiermolinar/rocinante/internal/schedule"
)

// fakeClient replays canned answers and records the conversations it saw.
type fakeClient struct {
	responses []string
	err       error
	calls     [][]llm.Message
}

func (f *fakeClient) Chat(_ context.Context, messages []llm.Message) (string, error) {
	f.calls = append(f.calls, append([]llm.Message(nil), messages...))
	if f.err != nil {
		return "", f.err
	}
	if len(f.responses) == 0 {
		return "", errors.New("no more responses")
	}
	resp := f.responses[0]
	f.responses = f.responses[1:]
	return resp, nil
}

func (f *fakeClient) ChatJSON(ctx context.Context, messages []llm.Message, result any) error {
	content, err := f.Chat(ctx, messages)
	if err != nil {
		return err
	}
	return llm.DecodeJSON(content, result)
}

func newRequest(prompt string) Request {
	return Request{Prompt: prompt, WeekStart: monday, Settings: schedule.DefaultSettings()}
}

func TestGenerator_Generate(t *testing.T) {
	client := &fakeClient{responses: []string{"Sure!\n```json\n" + `{
		"events": [
			{"day": 0, "startHour": 9, "startMinute": 0, "endHour": 11, "endMinute": 0, "title": "Deep work", "color": "purple"},
			{"day": 0, "startHour": 10, "startMinute": 0, "endHour": 10, "endMinute": 30, "title": "Swallowed"},
			{"day": 2, "startHour": 23, "startMinute": 0, "endHour": 24, "endMinute": 30, "title": "Night shift"}
		],
		"settings": {"timeIncrement": 15}
	}` + "\n```"}}

	g := NewGenerator(client)
	got, err := g.Generate(context.Background(), newRequest("plan my week"))
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	if got.Attempts != 1 {
		t.Errorf("Attempts = %d, want 1", got.Attempts)
	}
	if got.Dropped != 1 {
		t.Errorf("Dropped = %d, want 1", got.Dropped)
	}
	if len(got.Events) != 2 {
		t.Fatalf("got %d events, want 2", len(got.Events))
	}
	night := got.Events[1]
	if night.TimeRange != (schedule.TimeRange{StartHour: 23, EndHour: 24}) {
		t.Errorf("night shift = %v, want 23:00-24:00", night.TimeRange)
	}
	if !night.Date.Equal(monday.AddDate(0, 0, 2)) {
		t.Errorf("night shift date = %v", night.Date)
	}
	if got.Settings.TimeIncrement != 15 {
		t.Errorf("TimeIncrement = %d, want 15", got.Settings.TimeIncrement)
	}

	system := client.calls[0][0]
	if system.Role != llm.RoleSystem || !strings.Contains(system.Content, "Monday, 2025-01-06") {
		t.Errorf("system prompt missing week anchor: %q", system.Content)
	}
	if user := client.calls[0][1]; user.Role != llm.RoleUser || user.Content != "plan my week" {
		t.Errorf("user message = %+v", user)
	}
}

func TestGenerator_RetriesWithFeedback(t *testing.T) {
	client := &fakeClient{responses: []string{
		"I cannot produce JSON today",
		`{"schedule": []}`,
		`{"events": [{"day": 1, "startHour": 8, "endHour": 9, "title": "Run"}]}`,
	}}

	g := NewGenerator(client, WithMaxRetries(2))
	got, err := g.Generate(context.Background(), newRequest("run on tuesday"))
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if got.Attempts != 3 || len(got.Events) != 1 {
		t.Fatalf("Attempts = %d events = %d", got.Attempts, len(got.Events))
	}

	last := client.calls[2]
	if len(last) != 6 {
		t.Fatalf("third call has %d messages, want 6", len(last))
	}
	if last[2].Role != llm.RoleAssistant || last[2].Content != "I cannot produce JSON today" {
		t.Errorf("assistant echo = %+v", last[2])
	}
	if last[3].Role != llm.RoleUser || !strings.Contains(last[3].Content, "could not be used") {
		t.Errorf("feedback = %+v", last[3])
	}
}

func TestGenerator_MaxRetriesExceeded(t *testing.T) {
	client := &fakeClient{responses: []string{"nope", "still nope"}}

	g := NewGenerator(client, WithMaxRetries(1))
	_, err := g.Generate(context.Background(), newRequest("anything"))
	if !errors.Is(err, ErrMaxRetriesExceeded) {
		t.Fatalf("error = %v, want ErrMaxRetriesExceeded", err)
	}
	if len(client.calls) != 2 {
		t.Errorf("got %d calls, want 2", len(client.calls))
	}
}

func TestGenerator_TransportErrorNotRetried(t *testing.T) {
	boom := errors.New("connection refused")
	client := &fakeClient{err: boom}

	_, err := NewGenerator(client).Generate(context.Background(), newRequest("x"))
	if !errors.Is(err, boom) {
		t.Fatalf("error = %v, want wrapped transport error", err)
	}
	if len(client.calls) != 1 {
		t.Errorf("got %d calls, want 1", len(client.calls))
	}
}

func TestGenerator_EmptyPrompt(t *testing.T) {
	client := &fakeClient{}
	_, err := NewGenerator(client).Generate(context.Background(), newRequest("   "))
	if !errors.Is(err, ErrEmptyPrompt) {
		t.Fatalf("error = %v, want ErrEmptyPrompt", err)
	}
	if len(client.calls) != 0 {
		t.Error("no call expected for empty prompt")
	}
}

func TestGenerator_TruncatesLongPrompt(t *testing.T) {
	client := &fakeClient{responses: []string{`{"events": []}`}}
	long := strings.Repeat("schedule lots of things ", 500)

	g := NewGenerator(client, WithTokenBudget(50))
	if _, err := g.Generate(context.Background(), newRequest(long)); err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	sent := client.calls[0][1].Content
	if len(sent) >= len(strings.TrimSpace(long)) {
		t.Errorf("prompt not truncated: %d bytes", len(sent))
	}
}

func TestBuildSystemPromptListsExisting(t *testing.T) {
	req := newRequest("x")
	req.Existing = []schedule.Event{{Day: 4, TimeRange: schedule.TimeRange{StartHour: 13, EndHour: 14}, Title: "Lunch"}}

	prompt := buildSystemPrompt(req)
	for _, want := range []string{"day 4 13:00-14:00 Lunch", "08:00 to 18:00", "30 minutes", "blue, green"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("system prompt missing %q", want)
		}
	}
}
