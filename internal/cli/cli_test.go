package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	for _, k := range []string{"OPENROUTER_API_KEY", "OPENROUTER_MODEL", "OPENROUTER_BASE_URL", "OPENROUTER_ALLOWED_HOSTS", "HLSELECT_LOG_LEVEL"} {
		t.Setenv(k, "")
	}
	return dir
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := newRootCommand()
	var out bytes.Buffer
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRoot_ArgsValidation(t *testing.T) {
	isolate(t)
	cases := []struct {
		name string
		args []string
		want string
	}{
		{"no args", nil, "accepts 1 arg(s), received 0"},
		{"too many args", []string{"a", "b"}, "accepts 1 arg(s), received 2"},
		{"unknown flag", []string{"a", "--wat"}, "unknown flag: --wat"},
		{"attempts non int", []string{"a", "--max-attempts", "nope"}, `invalid argument "nope" for "--max-attempts"`},
		{"missing input", []string{filepath.Join(t.TempDir(), "none.json")}, "config: stat input"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := execute(t, "", tc.args...)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestRoot_ManualSelection(t *testing.T) {
	dir := isolate(t)
	in := filepath.Join(dir, "talk.txt")
	if err := os.WriteFile(in, []byte("0 - 30: opening\n30 - 90: the good part"), 0o644); err != nil {
		t.Fatalf("write transcript: %v", err)
	}
	outDir := filepath.Join(dir, "out")

	out, err := execute(t, "30\n90\ny\n", in, "--out", outDir, "--log-level", "error")
	if err != nil {
		t.Fatalf("execute: %v\n%s", err, out)
	}
	if !strings.Contains(out, "manual entry will be used") {
		t.Fatalf("manual mode notice missing at error log level:\n%s", out)
	}
	if !strings.Contains(out, "MANUAL HIGHLIGHT SELECTION MODE") || !strings.Contains(out, "60s") {
		t.Fatalf("unexpected output:\n%s", out)
	}
	matches, _ := filepath.Glob(filepath.Join(outDir, "talk-*", "selection.json"))
	if len(matches) != 1 {
		t.Fatalf("expected one selection manifest, got %v", matches)
	}
}

func TestRoot_BadConfigFile(t *testing.T) {
	dir := isolate(t)
	cfg := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(cfg, []byte("[logging]\nformat = \"xml\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	_, err := execute(t, "", "x.txt", "--config", cfg)
	if err == nil || !strings.Contains(err.Error(), "logging.format") {
		t.Fatalf("expected logging.format error, got %v", err)
	}
}
