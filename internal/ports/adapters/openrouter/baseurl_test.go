package openrouter

import "testing"

func TestValidateBaseURL(t *testing.T) {
	tests := []struct {
		name         string
		baseURL      string
		allowedHosts []string
		wantErr      bool
	}{
		{
			name:    "default host with https",
			baseURL: "https://openrouter.ai",
		},
		{
			name:    "empty falls back to default",
			baseURL: "",
		},
		{
			name:    "api root is accepted",
			baseURL: "https://openrouter.ai/api/v1/",
		},
		{
			name:    "reject non-absolute URL",
			baseURL: "openrouter.ai",
			wantErr: true,
		},
		{
			name:    "reject http for remote host",
			baseURL: "http://openrouter.ai",
			wantErr: true,
		},
		{
			name:         "allow http for configured loopback",
			baseURL:      "http://127.0.0.1:8080",
			allowedHosts: []string{"127.0.0.1:8080"},
		},
		{
			name:    "reject loopback not in allow-list",
			baseURL: "http://localhost:8080",
			wantErr: true,
		},
		{
			name:    "reject unknown host by default",
			baseURL: "https://evil.example",
			wantErr: true,
		},
		{
			name:         "allow configured host",
			baseURL:      "https://proxy.internal",
			allowedHosts: []string{"https://proxy.internal/"},
		},
		{
			name:    "reject userinfo",
			baseURL: "https://user:pw@openrouter.ai",
			wantErr: true,
		},
		{
			name:    "reject query",
			baseURL: "https://openrouter.ai?x=1",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBaseURL(tt.baseURL, tt.allowedHosts)
			if tt.wantErr && err == nil {
				t.Fatalf("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestNormalizeAllowedHosts_DefaultWhenEmpty(t *testing.T) {
	out := normalizeAllowedHosts([]string{" ", "https://", "http://"})
	if len(out) != len(defaultAllowedHosts) {
		t.Fatalf("expected default allowed hosts, got %v", out)
	}
}

func TestAPIBase(t *testing.T) {
	tests := map[string]string{
		"":                             "https://openrouter.ai/api/v1/",
		"https://openrouter.ai/":       "https://openrouter.ai/api/v1/",
		"https://openrouter.ai/api/v1": "https://openrouter.ai/api/v1/",
		"http://127.0.0.1:9000":        "http://127.0.0.1:9000/api/v1/",
	}
	for in, want := range tests {
		if got := apiBase(in); got != want {
			t.Fatalf("apiBase(%q) = %q, want %q", in, got, want)
		}
	}
}
