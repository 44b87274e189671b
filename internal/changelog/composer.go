package changelog

import (
	"context"

	"github.com/josephgoksu/Chronicler/internal/gitlog"
	"github.com/josephgoksu/Chronicler/internal/llm"
)

// Writer names reported by Composer.Strategy.
const (
	StrategyAI     = "ai"
	StrategySimple = "simple"
)

// Composer writes changelog markdown for a commit list. Implementations
// always return text.
type Composer interface {
	Compose(ctx context.Context, commits []gitlog.Commit) string
	Strategy() string
}

// Option configures the AI writer.
type Option func(*AIComposer)

// WithMaxTokens bounds the model output length.
func WithMaxTokens(n int) Option {
	return func(a *AIComposer) {
		if n > 0 {
			a.maxTokens = n
		}
	}
}

// WithTemperature sets the model sampling temperature. Zero is honored.
func WithTemperature(t float32) Option {
	return func(a *AIComposer) {
		a.temperature = t
	}
}

// NewComposer picks the writer once: the AI writer when completer is
// non-nil, the keyword writer otherwise.
func NewComposer(completer llm.Completer, opts ...Option) Composer {
	if completer == nil {
		return SimpleComposer{}
	}
	a := &AIComposer{
		completer:   completer,
		maxTokens:   llm.DefaultMaxTokens,
		temperature: llm.DefaultTemperature,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}
