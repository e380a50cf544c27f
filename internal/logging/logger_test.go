package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"":      zapcore.InfoLevel,
		"debug": zapcore.DebugLevel,
		"WARN":  zapcore.WarnLevel,
		"error": zapcore.ErrorLevel,
	}
	for in, want := range tests {
		got, err := parseLevel(in)
		if err != nil || got != want {
			t.Fatalf("parseLevel(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := parseLevel("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestNew_UnsupportedFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
}

func TestNew_JSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.jsonl")
	logger, err := New(Options{Level: "info", Format: "json", OutputPaths: []string{path}})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	logger.Debug("hidden")
	logger.Info("highlight proposed", zap.Int("start", 10))
	_ = logger.Sync()

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one entry above debug, got %d: %q", len(lines), b)
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("decode entry: %v", err)
	}
	if entry["msg"] != "highlight proposed" || entry["start"] != float64(10) {
		t.Fatalf("unexpected entry %v", entry)
	}
}
