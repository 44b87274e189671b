package llm

import "strings"

// Model describes a chat model the changelog writer knows how to drive.
type Model struct {
	ID         string   // Canonical model ID (e.g., "gpt-4o")
	Provider   string   // Provider display name (e.g., "OpenAI")
	ProviderID string   // Internal provider ID (e.g., "openai")
	Aliases    []string // Alternative IDs including dated versions
	IsDefault  bool     // Whether this is the default model for its provider
}

// ModelRegistry lists the known chat models.
var ModelRegistry = []Model{
	{ID: "gpt-4o", Provider: "OpenAI", ProviderID: ProviderOpenAI, Aliases: []string{"gpt-4o-2024-11-20"}, IsDefault: true},
	{ID: "gpt-4o-mini", Provider: "OpenAI", ProviderID: ProviderOpenAI, Aliases: []string{"gpt-4o-mini-2024-07-18"}},
	{ID: "gpt-4.1-mini", Provider: "OpenAI", ProviderID: ProviderOpenAI, Aliases: []string{"gpt-4.1-mini-2025-04-14"}},
	{ID: "claude-sonnet-4-5", Provider: "Anthropic", ProviderID: ProviderAnthropic, IsDefault: true},
	{ID: "claude-haiku-4-5", Provider: "Anthropic", ProviderID: ProviderAnthropic},
	{ID: "gemini-2.5-flash", Provider: "Google", ProviderID: ProviderGemini, IsDefault: true},
	{ID: "gemini-2.5-pro", Provider: "Google", ProviderID: ProviderGemini},
	{ID: "llama3.2", Provider: "Ollama", ProviderID: ProviderOllama, IsDefault: true},
}

// modelIndex is built at init time for fast lookups
var modelIndex map[string]*Model

func init() {
	buildModelIndex()
}

func buildModelIndex() {
	modelIndex = make(map[string]*Model)
	for i := range ModelRegistry {
		m := &ModelRegistry[i]
		modelIndex[m.ID] = m
		for _, alias := range m.Aliases {
			modelIndex[alias] = m
		}
	}
}

// DefaultModelForProvider returns the default model ID for a provider.
func DefaultModelForProvider(providerID string) string {
	for i := range ModelRegistry {
		m := &ModelRegistry[i]
		if m.ProviderID == providerID && m.IsDefault {
			return m.ID
		}
	}
	return ""
}

// InferProvider determines the provider from a model name or alias,
// falling back to well-known name prefixes.
func InferProvider(modelID string) (string, bool) {
	if m, ok := modelIndex[modelID]; ok {
		return m.ProviderID, true
	}

	// Fallback to prefix-based inference for unknown models
	switch {
	case strings.HasPrefix(modelID, "gpt-"), strings.HasPrefix(modelID, "o1-"), strings.HasPrefix(modelID, "o3-"):
		return ProviderOpenAI, true
	case strings.HasPrefix(modelID, "claude-"):
		return ProviderAnthropic, true
	case strings.HasPrefix(modelID, "gemini-"):
		return ProviderGemini, true
	case strings.HasPrefix(modelID, "llama"), strings.HasPrefix(modelID, "mistral"), strings.HasPrefix(modelID, "phi"):
		return ProviderOllama, true
	}

	return "", false
}
