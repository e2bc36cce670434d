package ollama

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"ai-salesagent-be/pkg/llm"
)

func TestChat(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatal(err)
		}
		if req.Stream {
			t.Error("sync chat must not request streaming")
		}

		json.NewEncoder(w).Encode(map[string]interface{}{
			"message": map[string]string{"role": "assistant", "content": "Hello there"},
			"done":    true,
		})
	}))
	defer server.Close()

	provider := NewProvider(server.URL, "llama3")
	got, err := provider.Chat(context.Background(), []llm.Message{{Role: "user", Content: "Hi"}})
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}
	if got != "Hello there" {
		t.Errorf("Chat() = %q, want %q", got, "Hello there")
	}
}

func TestChatStream(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/x-ndjson")
		for _, delta := range []string{"Hello", " there"} {
			fmt.Fprintf(w, "{\"message\":{\"content\":%q},\"done\":false}\n", delta)
		}
		fmt.Fprint(w, "{\"message\":{\"content\":\"\"},\"done\":true}\n")
	}))
	defer server.Close()

	provider := NewProvider(server.URL, "llama3")
	fragments, err := provider.ChatStream(context.Background(), []llm.Message{{Role: "user", Content: "Hi"}})
	if err != nil {
		t.Fatalf("ChatStream() error = %v", err)
	}

	var full string
	for fragment := range fragments {
		if fragment.Err != nil {
			t.Fatalf("unexpected fragment error: %v", fragment.Err)
		}
		full += fragment.Content
	}
	if full != "Hello there" {
		t.Errorf("accumulated stream = %q, want %q", full, "Hello there")
	}
}

func TestNoOverallClientTimeout(t *testing.T) {
	provider := NewProvider("", "llama3")
	if provider.httpClient.Timeout != 0 {
		t.Errorf("client timeout = %v, want 0", provider.httpClient.Timeout)
	}
}
