package gateway

import "os"

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"

	DefaultModel = "gemini-3-flash-preview"
)

type Config struct {
	Provider string
	APIKey   string
	BaseURL  string
	Model    string
}

// EnvKeySource returns the configured key, falling back to API_KEY and then
// GEMINI_API_KEY at call time.
func EnvKeySource(configured string) func() string {
	return func() string {
		if configured != "" {
			return configured
		}
		if v := os.Getenv("API_KEY"); v != "" {
			return v
		}
		return os.Getenv("GEMINI_API_KEY")
	}
}
