// ABOUTME: Application configuration loaded from JOURNEYS_* and provider environment variables.
// ABOUTME: Missing API keys degrade the relevant oracle to unavailable instead of failing startup.

package config

import (
	"fmt"
	"net"
	"os"
	"time"
)

var errNonLoopbackBind = fmt.Errorf(
	"JOURNEYS_BIND is a non-loopback address but JOURNEYS_ALLOW_REMOTE is not true; set JOURNEYS_ALLOW_REMOTE=true to expose the server",
)

// Config holds everything the server and oracles need, loaded from the
// environment with sensible defaults.
type Config struct {
	Bind        string // Socket address (JOURNEYS_BIND, default: 127.0.0.1:8000)
	AllowRemote bool   // Allow non-loopback binds (JOURNEYS_ALLOW_REMOTE, default: false)

	OpenAIAPIKey    string // OPENAI_API_KEY, optional
	OpenAIModel     string // JOURNEYS_OPENAI_MODEL, optional override
	AnthropicAPIKey string // ANTHROPIC_API_KEY, optional
	ClaudeModel     string // JOURNEYS_CLAUDE_MODEL, optional override
	OllamaBaseURL   string // OLLAMA_BASE_URL, default: http://localhost:11434
	OllamaModel     string // OLLAMA_MODEL, default: deepseek-r1:8b
	EnableLorem     bool   // JOURNEYS_ENABLE_LOREM, default: false
	LoremDelay      time.Duration

	// CompareTimeout bounds a whole comparison stream; GenerateTimeout
	// bounds one oracle call within it.
	CompareTimeout  time.Duration // JOURNEYS_COMPARE_TIMEOUT, default: 60s
	GenerateTimeout time.Duration // JOURNEYS_GENERATE_TIMEOUT, default: 3m
}

// FromEnv loads configuration from the environment.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Bind:            envOrDefault("JOURNEYS_BIND", "127.0.0.1:8000"),
		AllowRemote:     boolEnv("JOURNEYS_ALLOW_REMOTE"),
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:     os.Getenv("JOURNEYS_OPENAI_MODEL"),
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		ClaudeModel:     os.Getenv("JOURNEYS_CLAUDE_MODEL"),
		OllamaBaseURL:   envOrDefault("OLLAMA_BASE_URL", "http://localhost:11434"),
		OllamaModel:     envOrDefault("OLLAMA_MODEL", "deepseek-r1:8b"),
		EnableLorem:     boolEnv("JOURNEYS_ENABLE_LOREM"),
		LoremDelay:      durationEnv("JOURNEYS_LOREM_DELAY", 2*time.Second),
		CompareTimeout:  durationEnv("JOURNEYS_COMPARE_TIMEOUT", 60*time.Second),
		GenerateTimeout: durationEnv("JOURNEYS_GENERATE_TIMEOUT", 3*time.Minute),
	}

	// Refuse non-loopback binds unless explicitly opting into remote access.
	if !cfg.AllowRemote {
		if host, _, err := net.SplitHostPort(cfg.Bind); err == nil && host != "" {
			ip := net.ParseIP(host)
			switch {
			case ip != nil && ip.IsLoopback():
			case host == "localhost":
			default:
				return nil, fmt.Errorf("%w: JOURNEYS_BIND=%s", errNonLoopbackBind, cfg.Bind)
			}
		}
	}

	return cfg, nil
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func boolEnv(key string) bool {
	switch os.Getenv(key) {
	case "true", "1", "yes":
		return true
	}
	return false
}

func durationEnv(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return defaultVal
	}
	return d
}
