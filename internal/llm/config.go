// Package llm wraps the generative model used to read resumes.
package llm

// Provider represents an LLM provider
type Provider string

// ProviderGemini is the Google Gemini provider
const ProviderGemini Provider = "gemini"

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-pro"

// Config holds the model configuration for the resume parser
type Config struct {
	Provider    Provider
	Model       string
	Temperature float32
	// MaxOutputTokens caps the response size; 0 leaves the model default.
	MaxOutputTokens int32
}

// DefaultConfig returns the default Gemini configuration
func DefaultConfig() *Config {
	return &Config{
		Provider:    ProviderGemini,
		Model:       DefaultModel,
		Temperature: 0.1,
	}
}

// WithModel returns a copy of the config using model, or the current model
// when model is empty.
func (c *Config) WithModel(model string) *Config {
	out := *c
	if model != "" {
		out.Model = model
	}
	return &out
}
