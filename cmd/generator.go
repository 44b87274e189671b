package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/josephgoksu/Chronicler/internal/changelog"
	"github.com/josephgoksu/Chronicler/internal/config"
	"github.com/josephgoksu/Chronicler/internal/gitlog"
	"github.com/josephgoksu/Chronicler/internal/llm"
	"github.com/josephgoksu/Chronicler/internal/pipeline"
)

// newGenerator wires the configured language model (if any) into a pipeline.
func newGenerator(ctx context.Context) (*pipeline.Generator, error) {
	llmCfg, err := config.LoadLLMConfig()
	if err != nil {
		return nil, err
	}

	completer, err := llm.NewCompleter(ctx, llmCfg)
	if err != nil {
		return nil, fmt.Errorf("set up language model: %w", err)
	}
	if completer == nil {
		slog.Warn("no API key configured for language model; using keyword changelog writer",
			"provider", llmCfg.Provider)
	} else {
		slog.Info("using language model", "provider", llmCfg.Provider, "model", llmCfg.Model)
	}

	composer := changelog.NewComposer(completer,
		changelog.WithMaxTokens(llmCfg.MaxTokens),
		changelog.WithTemperature(llmCfg.Temperature),
	)
	return pipeline.NewGenerator(gitlog.NewSource(), composer), nil
}
