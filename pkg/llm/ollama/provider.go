package ollama

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

const defaultBaseURL = "http://localhost:11434"

type Provider struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

func NewProvider(baseURL, model string) *Provider {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Provider{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		// No overall client timeout: the caller's ctx bounds the stream.
		// First-byte latency is generous because a cold model load is slow.
		httpClient: &http.Client{
			Transport: &http.Transport{
				DialContext:           (&net.Dialer{Timeout: 10 * time.Second}).DialContext,
				ResponseHeaderTimeout: 300 * time.Second,
			},
		},
	}
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []llm.Message `json:"messages"`
	Stream   bool          `json:"stream"`
	Options  chatOptions   `json:"options,omitempty"`
}

type chatOptions struct {
	Temperature float64 `json:"temperature,omitempty"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

type chatResponse struct {
	Message struct {
		Content string `json:"content"`
	} `json:"message"`
	Done bool `json:"done"`
}

func (p *Provider) Chat(ctx context.Context, messages []llm.Message, opts ...llm.Option) (string, error) {
	resp, err := p.send(ctx, messages, false, opts)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", apperrors.ProviderError(0, "decoding ollama response: "+err.Error())
	}
	return parsed.Message.Content, nil
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
			var chunk chatResponse
			if err := json.Unmarshal(scanner.Bytes(), &chunk); err != nil {
				continue
			}
			if chunk.Message.Content != "" {
				select {
				case out <- llm.Fragment{Content: chunk.Message.Content}:
				case <-ctx.Done():
					return
				}
			}
			if chunk.Done {
				return
			}
		}
		if err := scanner.Err(); err != nil && ctx.Err() == nil {
			select {
			case out <- llm.Fragment{Err: apperrors.ProviderError(0, "ollama stream: "+err.Error())}:
			case <-ctx.Done():
			}
		}
	}()
	return out, nil
}

func (p *Provider) send(ctx context.Context, messages []llm.Message, stream bool, opts []llm.Option) (*http.Response, error) {
	options := llm.ApplyOptions(llm.Options{Model: p.model, Temperature: 0.7}, opts)

	body, err := json.Marshal(chatRequest{
		Model:    options.Model,
		Messages: messages,
		Stream:   stream,
		Options: chatOptions{
			Temperature: options.Temperature,
			NumPredict:  options.MaxTokens,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.ProviderError(0, "calling ollama: "+err.Error())
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		return nil, apperrors.ProviderError(resp.StatusCode, string(detail))
	}
	return resp, nil
}
