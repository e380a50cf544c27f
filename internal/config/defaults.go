package config

import "github.com/forPelevin/hlselect/internal/ports/adapters/openrouter"

const (
	defaultModel          = openrouter.DefaultModel
	defaultBaseURL        = "https://openrouter.ai"
	defaultTimeoutSeconds = 90
	defaultMaxAttempts    = 5
	defaultPreviewChars   = 500
	defaultOutDir         = "out"
)

// Default returns the configuration used when no file or environment
// overrides are present.
func Default() Config {
	return Config{
		LLM: LLM{
			Model:          defaultModel,
			BaseURL:        defaultBaseURL,
			Title:          "hlselect",
			TimeoutSeconds: defaultTimeoutSeconds,
		},
		Selection: Selection{
			MaxAttempts:  defaultMaxAttempts,
			PreviewChars: defaultPreviewChars,
		},
		Logging: Logging{
			Level:  "info",
			Format: "console",
		},
		Paths: Paths{
			OutDir: defaultOutDir,
		},
	}
}
