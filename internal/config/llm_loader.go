package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/josephgoksu/Chronicler/internal/llm"
)

// LoadLLMConfig loads LLM configuration from Viper and Environment variables.
// It handles precedence: Explicit Viper Config > Environment Variables > Defaults.
// A missing API key is not an error: the caller falls back to the keyword writer.
func LoadLLMConfig() (llm.Config, error) {
	// 1. Provider, inferred from llm.model when not given
	provider := viper.GetString("llm.provider")
	if provider == "" {
		if inferred, ok := llm.InferProvider(viper.GetString("llm.model")); ok {
			provider = inferred
		} else {
			provider = llm.DefaultProvider
		}
	}

	llmProvider, err := llm.ValidateProvider(provider)
	if err != nil {
		return llm.Config{}, fmt.Errorf("invalid provider: %w", err)
	}

	// 2. Model
	model := viper.GetString("llm.model")
	if model == "" {
		model = llm.DefaultModelForProvider(string(llmProvider))
	}

	// 3. API Key
	apiKey := ResolveAPIKey(llmProvider)

	// 4. Base URL (Ollama or Custom)
	baseURL := viper.GetString("llm.baseURL")
	if baseURL == "" && llmProvider == llm.ProviderOllama {
		baseURL = llm.DefaultOllamaURL
	}

	// 5. Generation limits
	maxTokens := viper.GetInt("llm.maxTokens")
	if maxTokens <= 0 {
		maxTokens = llm.DefaultMaxTokens
	}
	temperature := llm.DefaultTemperature
	if viper.IsSet("llm.temperature") {
		temperature = float32(viper.GetFloat64("llm.temperature"))
	}
	if temperature < 0 || temperature > 2 {
		return llm.Config{}, fmt.Errorf("llm.temperature must be between 0 and 2, got %v", temperature)
	}
	timeout := viper.GetDuration("llm.timeout")
	if timeout <= 0 {
		timeout = llm.DefaultTimeout
	}

	return llm.Config{
		Provider:    llmProvider,
		Model:       model,
		APIKey:      apiKey,
		BaseURL:     baseURL,
		MaxTokens:   maxTokens,
		Temperature: temperature,
		Timeout:     timeout,
	}, nil
}

// ResolveAPIKey returns the best API key for the given provider using
// per-provider config keys, then the generic key, then provider-specific env vars.
func ResolveAPIKey(provider llm.Provider) string {
	keyFromViper := func(path string) string {
		if viper.IsSet(path) {
			return strings.TrimSpace(viper.GetString(path))
		}
		return ""
	}

	// 1) Per-provider config key (llm.apiKeys.<provider>)
	if key := keyFromViper(fmt.Sprintf("llm.apiKeys.%s", provider)); key != "" {
		return key
	}

	// 2) Generic key (llm.apiKey / CHRONICLER_LLM_APIKEY)
	if key := keyFromViper("llm.apiKey"); key != "" {
		return key
	}

	// 3) Provider-specific env vars
	return providerEnvKey(provider)
}

func providerEnvKey(provider llm.Provider) string {
	switch provider {
	case llm.ProviderOpenAI:
		return strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	case llm.ProviderAnthropic:
		return strings.TrimSpace(os.Getenv("ANTHROPIC_API_KEY"))
	case llm.ProviderGemini:
		key := strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
		if key == "" {
			key = strings.TrimSpace(os.Getenv("GOOGLE_API_KEY"))
		}
		return key
	default:
		return ""
	}
}
