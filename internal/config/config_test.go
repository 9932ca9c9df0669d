package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gretutor/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("OPENAI_API_KEY", "")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":8000", cfg.Server.Port)
	assert.Equal(t, "openai", cfg.Completion.Provider)
	assert.Equal(t, "gpt-4", cfg.Completion.Model)
	assert.Equal(t, 500, cfg.Completion.MaxTokens)
	assert.Equal(t, 150, cfg.Completion.AskMaxTokens)
	assert.InDelta(t, 0.7, cfg.Completion.Temperature, 1e-9)
	assert.Equal(t, "You are a helpful GRE tutor assistant.", cfg.Completion.SystemMessage)
	assert.Equal(t, time.Duration(0), cfg.Completion.Timeout())
	assert.Equal(t, 100, cfg.Cache.Capacity)
	assert.Equal(t, "tesseract", cfg.OCR.TesseractCmd)
	assert.Equal(t, []string{
		"http://localhost:8000",
		"http://127.0.0.1:8000",
		"https://gre-ai-cbdb67695e84.herokuapp.com",
	}, cfg.CORS.AllowedOrigins)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("GRETUTOR_COMPLETION_PROVIDER", " Gemini ")
	t.Setenv("GRETUTOR_COMPLETION_MODEL", "gemini-2.5-flash")
	t.Setenv("GRETUTOR_CACHE_CAPACITY", "7")
	t.Setenv("GRETUTOR_CORS_ALLOWED_ORIGINS", "https://a.example.com, ,https://b.example.com")
	t.Setenv("GRETUTOR_COMPLETION_TIMEOUT_SECS", "30")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "gemini", cfg.Completion.Provider)
	assert.Equal(t, "gemini-2.5-flash", cfg.Completion.Model)
	assert.Equal(t, 7, cfg.Cache.Capacity)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 30*time.Second, cfg.Completion.Timeout())
}

func TestLoad_APIKeyFallsBackToOpenAIEnv(t *testing.T) {
	t.Setenv("GRETUTOR_COMPLETION_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "sk-fallback")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "sk-fallback", cfg.Completion.APIKey)
}

func TestLoad_ExplicitAPIKeyWins(t *testing.T) {
	t.Setenv("GRETUTOR_COMPLETION_API_KEY", "sk-explicit")
	t.Setenv("OPENAI_API_KEY", "sk-fallback")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "sk-explicit", cfg.Completion.APIKey)
}

func TestLoad_PlatformPort(t *testing.T) {
	t.Setenv("GRETUTOR_SERVER_PORT", "")
	t.Setenv("PORT", "5000")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, ":5000", cfg.Server.Port)
}
