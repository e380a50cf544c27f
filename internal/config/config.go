package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// LLM holds the text-understanding service settings.
type LLM struct {
	APIKey         string   `toml:"api_key"`
	Model          string   `toml:"model"`
	BaseURL        string   `toml:"base_url"`
	AllowedHosts   []string `toml:"allowed_hosts"`
	Referer        string   `toml:"referer"`
	Title          string   `toml:"title"`
	TimeoutSeconds int      `toml:"timeout_seconds"`
}

type Selection struct {
	// MaxAttempts caps automated requests while replies stay degenerate.
	// 0 disables the cap.
	MaxAttempts  int `toml:"max_attempts"`
	PreviewChars int `toml:"preview_chars"`
}

type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

type Paths struct {
	OutDir string `toml:"out_dir"`
}

type Config struct {
	LLM       LLM       `toml:"llm"`
	Selection Selection `toml:"selection"`
	Logging   Logging   `toml:"logging"`
	Paths     Paths     `toml:"paths"`
}

// Load reads the TOML file at path (or the default locations when path is
// empty), applies environment overrides and validates the result. A missing
// file is not an error. The resolved path and whether it existed are returned.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolved, exists, err := resolvePath(path)
	if err != nil {
		return nil, "", false, err
	}
	if exists {
		f, err := os.Open(resolved)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer f.Close()

		dec := toml.NewDecoder(f)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.applyEnv(os.LookupEnv)
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}
	return &cfg, resolved, exists, nil
}

func resolvePath(path string) (string, bool, error) {
	if path != "" {
		p, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		if _, err := os.Stat(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return "", false, fmt.Errorf("config file %s does not exist", p)
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return p, true, nil
	}

	userPath, err := expandPath("~/.config/hlselect/config.toml")
	if err != nil {
		return "", false, err
	}
	projectPath, err := filepath.Abs("hlselect.toml")
	if err != nil {
		return "", false, err
	}
	for _, p := range []string{userPath, projectPath} {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, true, nil
		}
	}
	return userPath, false, nil
}

func expandPath(p string) (string, error) {
	if strings.HasPrefix(p, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if p == "~" {
			p = home
		} else if len(p) > 1 && (p[1] == '/' || p[1] == '\\') {
			p = filepath.Join(home, p[2:])
		}
	}
	abs, err := filepath.Abs(filepath.Clean(p))
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", p, err)
	}
	return abs, nil
}
