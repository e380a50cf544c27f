// Package config loads hlselect settings from a TOML file and the
// environment.
//
// Lookup order for the file is the --config flag, then
// ~/.config/hlselect/config.toml, then ./hlselect.toml. Environment variables
// (OPENROUTER_API_KEY, OPENROUTER_MODEL, OPENROUTER_BASE_URL,
// OPENROUTER_ALLOWED_HOSTS, HLSELECT_LOG_LEVEL) override file values; the CLI
// loads a .env file into the environment first.
//
// The selection mode is derived once from llm.api_key: an empty key or the
// value DISABLED selects manual entry.
package config
