package translate

import "context"

// Provider turns a translation prompt into model output text.
type Provider interface {
	Name() string
	Translate(ctx context.Context, prompt string) (string, error)
}
