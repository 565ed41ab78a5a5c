package config

import (
	"os"
	"testing"
)

func TestGetEnvOrDefault(t *testing.T) {
	tests := []struct {
		name       string
		key        string
		envValue   string
		defaultVal string
		expected   string
	}{
		{"uses env value", "TEST_VAR_1", "hello", "default", "hello"},
		{"uses default when empty", "TEST_VAR_2", "", "default", "default"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.envValue != "" {
				os.Setenv(tc.key, tc.envValue)
				defer os.Unsetenv(tc.key)
			}

			result := getEnvOrDefault(tc.key, tc.defaultVal)
			if result != tc.expected {
				t.Errorf("Expected %q, got %q", tc.expected, result)
			}
		})
	}
}

func TestGetEnvAsIntOrDefault(t *testing.T) {
	tests := []struct {
		name       string
		key        string
		envValue   string
		defaultVal int
		expected   int
	}{
		{"parses integer", "TEST_INT_1", "42", 10, 42},
		{"uses default for empty", "TEST_INT_2", "", 10, 10},
		{"uses default for non-numeric", "TEST_INT_3", "abc", 10, 10},
		{"uses default for zero", "TEST_INT_4", "0", 10, 10},
		{"uses default for negative", "TEST_INT_5", "-3", 10, 10},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.envValue != "" {
				os.Setenv(tc.key, tc.envValue)
				defer os.Unsetenv(tc.key)
			}

			result := getEnvAsIntOrDefault(tc.key, tc.defaultVal)
			if result != tc.expected {
				t.Errorf("Expected %d, got %d", tc.expected, result)
			}
		})
	}
}

func TestGetEnvAsBoolOrDefault(t *testing.T) {
	tests := []struct {
		name       string
		key        string
		envValue   string
		defaultVal bool
		expected   bool
	}{
		{"parses true", "TEST_BOOL_1", "true", false, true},
		{"parses 1", "TEST_BOOL_2", "1", false, true},
		{"parses false", "TEST_BOOL_3", "false", true, false},
		{"uses default for empty", "TEST_BOOL_4", "", true, true},
		{"uses default for garbage", "TEST_BOOL_5", "yes please", false, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.envValue)

			result := getEnvAsBoolOrDefault(tc.key, tc.defaultVal)
			if result != tc.expected {
				t.Errorf("Expected %v, got %v", tc.expected, result)
			}
		})
	}
}

func TestFirstEnv_PrefersEarlierKeys(t *testing.T) {
	t.Setenv("TEST_FIRST_A", "")
	t.Setenv("TEST_FIRST_B", "second")
	t.Setenv("TEST_FIRST_C", "third")

	if got := firstEnv("TEST_FIRST_A", "TEST_FIRST_B", "TEST_FIRST_C"); got != "second" {
		t.Errorf("Expected 'second', got %q", got)
	}
	if got := firstEnv("TEST_FIRST_A"); got != "" {
		t.Errorf("Expected empty string, got %q", got)
	}
}

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "ENV", "NODE_ENV", "LLM_PROVIDER", "API_KEY", "GEMINI_API_KEY",
		"OPENAI_API_KEY", "REDIS_URL", "RATE_LIMIT_REQUESTS",
		"RATE_LIMIT_WINDOW_SECONDS", "TRUST_PROXY", "FRONTEND_URL", "CLIENT_URL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearConfigEnv(t)

	cfg := Load()

	if cfg.Port != "3000" {
		t.Errorf("Expected port 3000, got %q", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Errorf("Expected env 'development', got %q", cfg.Env)
	}
	if cfg.LLMProvider != "gemini" {
		t.Errorf("Expected provider 'gemini', got %q", cfg.LLMProvider)
	}
	if cfg.RateLimitRequests != 5 || cfg.RateLimitWindowSeconds != 60 {
		t.Errorf("Expected 5 req / 60s, got %d / %d", cfg.RateLimitRequests, cfg.RateLimitWindowSeconds)
	}
	if cfg.FrontendURL != "http://localhost:5173" {
		t.Errorf("Expected default frontend URL, got %q", cfg.FrontendURL)
	}
	if cfg.APIKey != "" {
		t.Errorf("Expected empty API key, got %q", cfg.APIKey)
	}
	if cfg.IsProduction() {
		t.Error("Expected development config not to be production")
	}
	if cfg.TrustProxy {
		t.Error("Expected forwarded headers to be untrusted by default")
	}
}

func TestLoad_FallbackKeys(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("GEMINI_API_KEY", "gemini-key")
	t.Setenv("CLIENT_URL", "https://chat.example.com")
	t.Setenv("NODE_ENV", "production")
	t.Setenv("LLM_PROVIDER", "OpenAI")

	cfg := Load()

	if cfg.APIKey != "gemini-key" {
		t.Errorf("Expected API key from GEMINI_API_KEY, got %q", cfg.APIKey)
	}
	if cfg.FrontendURL != "https://chat.example.com" {
		t.Errorf("Expected frontend URL from CLIENT_URL, got %q", cfg.FrontendURL)
	}
	if !cfg.IsProduction() {
		t.Error("Expected NODE_ENV=production to enable production mode")
	}
	if cfg.LLMProvider != "openai" {
		t.Errorf("Expected provider to be lower-cased, got %q", cfg.LLMProvider)
	}
}

func TestLoad_PrimaryKeysWin(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("API_KEY", "primary")
	t.Setenv("GEMINI_API_KEY", "secondary")
	t.Setenv("FRONTEND_URL", "https://a.example.com")
	t.Setenv("CLIENT_URL", "https://b.example.com")

	cfg := Load()

	if cfg.APIKey != "primary" {
		t.Errorf("Expected API_KEY to win, got %q", cfg.APIKey)
	}
	if cfg.FrontendURL != "https://a.example.com" {
		t.Errorf("Expected FRONTEND_URL to win, got %q", cfg.FrontendURL)
	}
}
