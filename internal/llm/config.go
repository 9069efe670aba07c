package llm

// ModelTier selects how much model capability a synthesis role gets.
// Call sites name the tier they need and the configuration decides which
// provider model backs it.
type ModelTier string

const (
	// TierLite backs mechanical transformations, such as compiling an
	// agreed plan into the entity grammar.
	TierLite ModelTier = "lite"
	// TierStandard backs structured JSON output, such as verification
	// reports judged against the dataset analysis.
	TierStandard ModelTier = "standard"
	// TierAdvanced backs open-ended reasoning: proposing a schema plan
	// from the analysis and revising it under verifier feedback.
	TierAdvanced ModelTier = "advanced"
)

// Provider identifies the backing LLM provider. Gemini is the only
// implemented provider; the tier indirection keeps call sites
// provider-agnostic.
type Provider string

// ProviderGemini is the Google Gemini provider.
const ProviderGemini Provider = "gemini"

// Config maps model tiers onto provider model names.
type Config struct {
	Provider Provider
	Models   map[ModelTier]string
}

// DefaultConfig returns the default tier mapping.
func DefaultConfig() *Config {
	return DefaultGeminiConfig()
}

// DefaultGeminiConfig returns the default Gemini tier mapping.
func DefaultGeminiConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
	}
}

// GetModel resolves a tier to a model name. An unmapped tier falls back
// to the standard tier, then the lite tier; the empty string means the
// configuration carries no usable model at all.
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	return c.Models[TierLite]
}

// WithModel returns a copy of the configuration with one tier remapped.
// The receiver is left unchanged.
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	models := make(map[ModelTier]string, len(c.Models)+1)
	for k, v := range c.Models {
		models[k] = v
	}
	models[tier] = model
	return &Config{Provider: c.Provider, Models: models}
}
