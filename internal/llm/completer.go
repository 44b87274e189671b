package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// ErrCompletionFailed wraps every transport, auth, quota, timeout or
// empty-response failure of a completion call.
var ErrCompletionFailed = errors.New("completion failed")

// Request is a single system + user prompt completion.
type Request struct {
	System      string
	User        string
	MaxTokens   int
	// Temperature is sent as is, zero included. Nil leaves the model default.
	Temperature *float32
}

// Completer turns a prompt into text.
type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// ChatCompleter adapts an Eino chat model to Completer.
type ChatCompleter struct {
	model   model.BaseChatModel
	timeout time.Duration
}

// NewChatCompleter wraps m. A zero timeout means no deadline beyond ctx.
func NewChatCompleter(m model.BaseChatModel, timeout time.Duration) *ChatCompleter {
	return &ChatCompleter{model: m, timeout: timeout}
}

// NewCompleter builds a Completer for cfg.
// It returns nil, nil when cfg has no usable credential, which callers treat
// as "no language model available".
func NewCompleter(ctx context.Context, cfg Config) (Completer, error) {
	if !cfg.Configured() {
		return nil, nil
	}
	m, err := NewChatModel(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create chat model: %w", err)
	}
	return NewChatCompleter(m, cfg.Timeout), nil
}

// Complete sends req and returns the trimmed response text.
func (c *ChatCompleter) Complete(ctx context.Context, req Request) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var messages []*schema.Message
	if req.System != "" {
		messages = append(messages, schema.SystemMessage(req.System))
	}
	messages = append(messages, schema.UserMessage(req.User))

	var opts []model.Option
	if req.MaxTokens > 0 {
		opts = append(opts, model.WithMaxTokens(req.MaxTokens))
	}
	if req.Temperature != nil {
		opts = append(opts, model.WithTemperature(*req.Temperature))
	}

	type result struct {
		msg *schema.Message
		err error
	}
	done := make(chan result, 1)
	go func() {
		msg, err := c.model.Generate(ctx, messages, opts...)
		done <- result{msg: msg, err: err}
	}()

	var res result
	select {
	case res = <-done:
	case <-ctx.Done():
		return "", fmt.Errorf("%w: %v", ErrCompletionFailed, ctx.Err())
	}

	if res.err != nil {
		return "", fmt.Errorf("%w: %v", ErrCompletionFailed, res.err)
	}
	if res.msg == nil || strings.TrimSpace(res.msg.Content) == "" {
		return "", fmt.Errorf("%w: empty response", ErrCompletionFailed)
	}
	return strings.TrimSpace(res.msg.Content), nil
}
