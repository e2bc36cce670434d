package embedding

import "context"

// Provider turns a batch of texts into vectors. Implementations must return
// exactly one vector per input text, in order.
type Provider interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}
