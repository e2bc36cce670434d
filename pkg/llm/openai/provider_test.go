package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"ai-salesagent-be/internal/pkg/apperrors"
	"ai-salesagent-be/pkg/llm"
)

func TestChat(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk-test" {
			t.Errorf("authorization header = %q", got)
		}

		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatal(err)
		}
		if req.Stream {
			t.Error("sync chat must not request streaming")
		}
		if req.Model != "gpt-4o-mini" {
			t.Errorf("model = %q", req.Model)
		}

		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": "Hello there"}},
			},
		})
	}))
	defer server.Close()

	provider := NewProvider("sk-test", server.URL, "gpt-4o-mini")
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
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatal(err)
		}
		if !req.Stream {
			t.Error("streaming chat must request streaming")
		}

		w.Header().Set("Content-Type", "text/event-stream")
		for _, delta := range []string{"Hello", " there"} {
			fmt.Fprintf(w, "data: {\"choices\":[{\"delta\":{\"content\":%q}}]}\n\n", delta)
		}
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	defer server.Close()

	provider := NewProvider("sk-test", server.URL, "gpt-4o-mini")
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

func TestChatStreamCancellation(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"partial\"}}]}\n\n")
		if f, ok := w.(http.Flusher); ok {
			f.Flush()
		}
		<-release
	}))
	defer server.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	provider := NewProvider("sk-test", server.URL, "gpt-4o-mini")
	fragments, err := provider.ChatStream(ctx, []llm.Message{{Role: "user", Content: "Hi"}})
	if err != nil {
		t.Fatalf("ChatStream() error = %v", err)
	}

	first := <-fragments
	if first.Content != "partial" {
		t.Fatalf("first fragment = %q", first.Content)
	}
	cancel()

	// The channel must close once the consumer walks away.
	for range fragments {
	}
}

func TestNoOverallClientTimeout(t *testing.T) {
	// A client-level timeout caps the whole body read and would cut off any
	// stream running longer than it; only the transport carries deadlines.
	provider := NewProvider("sk-test", "", "gpt-4o-mini")
	if provider.httpClient.Timeout != 0 {
		t.Errorf("client timeout = %v, want 0", provider.httpClient.Timeout)
	}
}

func TestChatUnconfigured(t *testing.T) {
	provider := NewProvider("", "", "gpt-4o-mini")
	_, err := provider.Chat(context.Background(), []llm.Message{{Role: "user", Content: "Hi"}})
	if !apperrors.Is(err, apperrors.CodeProviderUnconfigured) {
		t.Fatalf("expected PROVIDER_UNCONFIGURED, got %v", err)
	}
}

func TestChatUpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"error":{"message":"rate limited"}}`)
	}))
	defer server.Close()

	provider := NewProvider("sk-test", server.URL, "gpt-4o-mini")
	_, err := provider.Chat(context.Background(), []llm.Message{{Role: "user", Content: "Hi"}})
	if !apperrors.Is(err, apperrors.CodeProviderError) {
		t.Fatalf("expected PROVIDER_ERROR, got %v", err)
	}
}
