package openai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"SonicChat/internal/llm"
	"SonicChat/internal/stream"
)

func TestStreamMapsContentAndToolCalls(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("missing authorization header")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"choices": [{
				"message": {
					"content": "Here is your balance.",
					"tool_calls": [{
						"function": {"name": "get_balance", "arguments": "{\"address\":\"AgN7\"}"}
					}]
				}
			}]
		}`))
	}))
	defer server.Close()

	client, err := NewClient(Config{APIKey: "test-key", BaseURL: server.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	chunks, err := client.Stream(context.Background(), llm.Request{Message: "balance please"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	if chunks[0].Kind != stream.KindTool || chunks[0].Tool != "get_balance" {
		t.Fatalf("unexpected tool chunk: %+v", chunks[0])
	}
	if chunks[1].Kind != stream.KindAgent || chunks[1].Content != "Here is your balance." {
		t.Fatalf("unexpected agent chunk: %+v", chunks[1])
	}
}

func TestStreamErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client, err := NewClient(Config{APIKey: "test-key", BaseURL: server.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := client.Stream(context.Background(), llm.Request{Message: "hi"}); err == nil {
		t.Fatalf("expected error for non-2xx response")
	}
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	if _, err := NewClient(Config{}); err == nil {
		t.Fatalf("expected error without api key")
	}
}
