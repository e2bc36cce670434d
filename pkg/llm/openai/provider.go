package openai

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"ai-salesagent-be/internal/pkg/apperrors"
	"ai-salesagent-be/pkg/llm"
)

const defaultBaseURL = "https://api.openai.com/v1"

type Provider struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

func NewProvider(apiKey, baseURL, model string) *Provider {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Provider{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		// No overall client timeout: that would cap the body read and cut
		// long streams short. The caller's ctx bounds the stream; the
		// transport bounds connect and first-byte latency.
		httpClient: &http.Client{
			Transport: &http.Transport{
				DialContext:           (&net.Dialer{Timeout: 10 * time.Second}).DialContext,
				TLSHandshakeTimeout:   10 * time.Second,
				ResponseHeaderTimeout: 60 * time.Second,
			},
		},
	}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []llm.Message `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Stream      bool          `json:"stream,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type streamChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
		FinishReason *string `json:"finish_reason"`
	} `json:"choices"`
}

func (p *Provider) Chat(ctx context.Context, messages []llm.Message, opts ...llm.Option) (string, error) {
	resp, err := p.send(ctx, messages, false, opts)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", apperrors.ProviderError(0, "decoding openai response: "+err.Error())
	}
	if len(parsed.Choices) == 0 {
		return "", apperrors.ProviderError(0, "openai returned no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}

func (p *Provider) ChatStream(ctx context.Context, messages []llm.Message, opts ...llm.Option) (<-chan llm.Fragment, error) {
	resp, err := p.send(ctx, messages, true, opts)
	if err != nil {
		return nil, err
	}

	out := make(chan llm.Fragment)
	go func() {
		defer close(out)
		defer resp.Body.Close()

		scanner := bufio.NewScanner(resp.Body)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			line := scanner.Text()
			if !strings.HasPrefix(line, "data: ") {
				continue
			}
			payload := strings.TrimPrefix(line, "data: ")
			if payload == "[DONE]" {
				return
			}

			var chunk streamChunk
			if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
				continue
			}
			if len(chunk.Choices) == 0 {
				continue
			}
			content := chunk.Choices[0].Delta.Content
			if content == "" {
				continue
			}

			select {
			case out <- llm.Fragment{Content: content}:
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil && ctx.Err() == nil {
			select {
			case out <- llm.Fragment{Err: apperrors.ProviderError(0, "openai stream: "+err.Error())}:
			case <-ctx.Done():
			}
		}
	}()
	return out, nil
}

func (p *Provider) send(ctx context.Context, messages []llm.Message, stream bool, opts []llm.Option) (*http.Response, error) {
	if p.apiKey == "" {
		return nil, apperrors.ProviderUnconfigured("openai")
	}

	options := llm.ApplyOptions(llm.Options{Model: p.model, Temperature: 0.7}, opts)

	body, err := json.Marshal(chatRequest{
		Model:       options.Model,
		Messages:    messages,
		Temperature: options.Temperature,
		MaxTokens:   options.MaxTokens,
		Stream:      stream,
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.ProviderError(0, "calling openai: "+err.Error())
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		return nil, apperrors.ProviderError(resp.StatusCode, string(detail))
	}
	return resp, nil
}
