package config

import (
	"strings"
)

type lookupFunc func(string) (string, bool)

// applyEnv lets the environment (and .env) override file values.
func (c *Config) applyEnv(lookup lookupFunc) {
	if v, ok := lookup("OPENROUTER_API_KEY"); ok {
		c.LLM.APIKey = v
	}
	if v, ok := nonEmpty(lookup, "OPENROUTER_MODEL"); ok {
		c.LLM.Model = v
	}
	if v, ok := nonEmpty(lookup, "OPENROUTER_BASE_URL"); ok {
		c.LLM.BaseURL = v
	}
	if v, ok := nonEmpty(lookup, "OPENROUTER_ALLOWED_HOSTS"); ok {
		c.LLM.AllowedHosts = strings.Split(v, ",")
	}
	if v, ok := nonEmpty(lookup, "HLSELECT_LOG_LEVEL"); ok {
		c.Logging.Level = v
	}
}

func nonEmpty(lookup lookupFunc, key string) (string, bool) {
	v, ok := lookup(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func (c *Config) normalize() {
	c.LLM.APIKey = strings.TrimSpace(c.LLM.APIKey)
	c.LLM.Model = strings.TrimSpace(c.LLM.Model)
	if c.LLM.Model == "" {
		c.LLM.Model = defaultModel
	}
	c.LLM.BaseURL = strings.TrimSpace(c.LLM.BaseURL)
	if c.LLM.BaseURL == "" {
		c.LLM.BaseURL = defaultBaseURL
	}
	hosts := c.LLM.AllowedHosts[:0]
	for _, h := range c.LLM.AllowedHosts {
		if h = strings.TrimSpace(h); h != "" {
			hosts = append(hosts, h)
		}
	}
	c.LLM.AllowedHosts = hosts
	if c.LLM.TimeoutSeconds <= 0 {
		c.LLM.TimeoutSeconds = defaultTimeoutSeconds
	}
	if c.Selection.PreviewChars <= 0 {
		c.Selection.PreviewChars = defaultPreviewChars
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}
	c.Paths.OutDir = strings.TrimSpace(c.Paths.OutDir)
	if c.Paths.OutDir == "" {
		c.Paths.OutDir = defaultOutDir
	}
}
