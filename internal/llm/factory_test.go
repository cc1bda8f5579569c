package llm

import "testing"

func TestNewClient_Ollama(t *testing.T) {
	client, err := NewClient("ollama", "llama3", "")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	ollamaClient, ok := client.(*OllamaClient)
	if !ok {
		t.Fatalf("expected OllamaClient, got %T", client)
	}
	if ollamaClient.baseURL != defaultOllamaBaseURL {
		t.Errorf("baseURL = %q, want %q", ollamaClient.baseURL, defaultOllamaBaseURL)
	}
}

func TestNewClient_LMStudio(t *testing.T) {
	client, err := NewClient("LM-Studio", "llama3", "")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	lmStudioClient, ok := client.(*LMStudioClient)
	if !ok {
		t.Fatalf("expected LMStudioClient, got %T", client)
	}
	if lmStudioClient.baseURL != defaultLMStudioBaseURL {
		t.Errorf("baseURL = %q, want %q", lmStudioClient.baseURL, defaultLMStudioBaseURL)
	}
}

func TestNewClient_OpenAIDefaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	client, err := NewClient("openai", "", "")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	c, ok := client.(*LMStudioClient)
	if !ok {
		t.Fatalf("expected LMStudioClient, got %T", client)
	}
	if c.baseURL != defaultOpenAIBaseURL || c.model != DefaultModel {
		t.Errorf("got baseURL %q model %q", c.baseURL, c.model)
	}
}

func TestNewClient_UnsupportedProvider(t *testing.T) {
	_, err := NewClient("unknown", "model", "")
	if err == nil {
		t.Fatal("expected error for unsupported provider")
	}
}

func TestNewOllamaClient_EmptyModel(t *testing.T) {
	if _, err := NewOllamaClient("", ""); err == nil {
		t.Fatal("expected error for empty model")
	}
}

func TestNewLMStudioClient_EmptyModel(t *testing.T) {
	if _, err := NewLMStudioClient("  ", ""); err == nil {
		t.Fatal("expected error for empty model")
	}
}

func TestToLangChainMessages(t *testing.T) {
	msgs := toLangChainMessages([]Message{System("s"), User("u"), Assistant("a"), {Role: "tool", Content: "x"}})
	if len(msgs) != 4 {
		t.Fatalf("got %d messages", len(msgs))
	}
	want := []string{"system", "human", "ai", "human"}
	for i, w := range want {
		if string(msgs[i].Role) != w {
			t.Errorf("message %d role = %q, want %q", i, msgs[i].Role, w)
		}
	}
}
