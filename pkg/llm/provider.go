package llm

import "context"

// Message is a single turn handed to a chat model.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Fragment is one piece of a streamed completion. Err is set on the final
// fragment when the stream dies mid-flight; consumers must check it.
type Fragment struct {
	Content string
	Err     error
}

type Options struct {
	Model       string
	Temperature float64
	MaxTokens   int
}

type Option func(*Options)

func WithModel(model string) Option {
	return func(o *Options) { o.Model = model }
}

func WithTemperature(t float64) Option {
	return func(o *Options) { o.Temperature = t }
}

func WithMaxTokens(n int) Option {
	return func(o *Options) { o.MaxTokens = n }
}

// Provider abstracts a chat completion backend. ChatStream returns a channel
// that is closed when the completion finishes; cancelling ctx tears the
// stream down and closes the channel early.
type Provider interface {
	Chat(ctx context.Context, messages []Message, opts ...Option) (string, error)
	ChatStream(ctx context.Context, messages []Message, opts ...Option) (<-chan Fragment, error)
}

func ApplyOptions(defaults Options, opts []Option) Options {
	for _, opt := range opts {
		opt(&defaults)
	}
	return defaults
}
