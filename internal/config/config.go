package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig
	Log        LogConfig
	Completion CompletionConfig
	Cache      CacheConfig
	OCR        OCRConfig
	CORS       CORSConfig
	Static     StaticConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
	MaxUploadMB  int64         `mapstructure:"max_upload_mb"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// CompletionConfig holds settings for the remote LLM completion provider.
type CompletionConfig struct {
	Provider      string  `mapstructure:"provider"`
	APIKey        string  `mapstructure:"api_key"`
	Model         string  `mapstructure:"model"`
	BaseURL       string  `mapstructure:"base_url"`
	MaxTokens     int     `mapstructure:"max_tokens"`
	AskMaxTokens  int     `mapstructure:"ask_max_tokens"`
	Temperature   float64 `mapstructure:"temperature"`
	SystemMessage string  `mapstructure:"system_message"`
	TimeoutSecs   int     `mapstructure:"timeout_secs"`
}

// Timeout returns the HTTP client timeout, or zero when none is configured.
func (c *CompletionConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSecs) * time.Second
}

// CacheConfig holds response cache settings.
type CacheConfig struct {
	Capacity int `mapstructure:"capacity"`
}

// OCRConfig holds Tesseract settings.
type OCRConfig struct {
	TesseractCmd   string `mapstructure:"tesseract_cmd"`
	Language       string `mapstructure:"language"`
	TessdataPrefix string `mapstructure:"tessdata_prefix"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// StaticConfig holds the front-end asset directory.
type StaticConfig struct {
	Dir string `mapstructure:"dir"`
}

// Load reads configuration from environment variables with the GRETUTOR_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("GRETUTOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8000")
	v.SetDefault("server.read_timeout", "0s")
	v.SetDefault("server.write_timeout", "0s")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.max_upload_mb", 20)

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 50)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 14)

	// Completion defaults
	v.SetDefault("completion.provider", "openai")
	v.SetDefault("completion.api_key", "")
	v.SetDefault("completion.model", "gpt-4")
	v.SetDefault("completion.base_url", "")
	v.SetDefault("completion.max_tokens", 500)
	v.SetDefault("completion.ask_max_tokens", 150)
	v.SetDefault("completion.temperature", 0.7)
	v.SetDefault("completion.system_message", "You are a helpful GRE tutor assistant.")
	v.SetDefault("completion.timeout_secs", 0)

	// Cache defaults
	v.SetDefault("cache.capacity", 100)

	// OCR defaults
	v.SetDefault("ocr.tesseract_cmd", "tesseract")
	v.SetDefault("ocr.language", "")
	v.SetDefault("ocr.tessdata_prefix", "")

	// CORS defaults
	v.SetDefault("cors.allowed_origins", "http://localhost:8000,http://127.0.0.1:8000,https://gre-ai-cbdb67695e84.herokuapp.com")

	// Static front-end defaults
	v.SetDefault("static.dir", "../frontend")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":               "GRETUTOR_SERVER_PORT",
		"server.read_timeout":       "GRETUTOR_SERVER_READ_TIMEOUT",
		"server.write_timeout":      "GRETUTOR_SERVER_WRITE_TIMEOUT",
		"server.environment":        "GRETUTOR_SERVER_ENVIRONMENT",
		"server.max_upload_mb":      "GRETUTOR_SERVER_MAX_UPLOAD_MB",
		"log.level":                 "GRETUTOR_LOG_LEVEL",
		"log.format":                "GRETUTOR_LOG_FORMAT",
		"log.file":                  "GRETUTOR_LOG_FILE",
		"log.max_size_mb":           "GRETUTOR_LOG_MAX_SIZE_MB",
		"log.max_backups":           "GRETUTOR_LOG_MAX_BACKUPS",
		"log.max_age_days":          "GRETUTOR_LOG_MAX_AGE_DAYS",
		"completion.provider":       "GRETUTOR_COMPLETION_PROVIDER",
		"completion.api_key":        "GRETUTOR_COMPLETION_API_KEY",
		"completion.model":          "GRETUTOR_COMPLETION_MODEL",
		"completion.base_url":       "GRETUTOR_COMPLETION_BASE_URL",
		"completion.max_tokens":     "GRETUTOR_COMPLETION_MAX_TOKENS",
		"completion.ask_max_tokens": "GRETUTOR_COMPLETION_ASK_MAX_TOKENS",
		"completion.temperature":    "GRETUTOR_COMPLETION_TEMPERATURE",
		"completion.system_message": "GRETUTOR_COMPLETION_SYSTEM_MESSAGE",
		"completion.timeout_secs":   "GRETUTOR_COMPLETION_TIMEOUT_SECS",
		"cache.capacity":            "GRETUTOR_CACHE_CAPACITY",
		"ocr.tesseract_cmd":         "GRETUTOR_OCR_TESSERACT_CMD",
		"ocr.language":              "GRETUTOR_OCR_LANGUAGE",
		"ocr.tessdata_prefix":       "GRETUTOR_OCR_TESSDATA_PREFIX",
		"cors.allowed_origins":      "GRETUTOR_CORS_ALLOWED_ORIGINS",
		"static.dir":                "GRETUTOR_STATIC_DIR",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Heroku sets a PORT env var. Use it if GRETUTOR_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("GRETUTOR_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
		MaxUploadMB:  v.GetInt64("server.max_upload_mb"),
	}
	cfg.Log = LogConfig{
		Level:      v.GetString("log.level"),
		Format:     v.GetString("log.format"),
		File:       v.GetString("log.file"),
		MaxSizeMB:  v.GetInt("log.max_size_mb"),
		MaxBackups: v.GetInt("log.max_backups"),
		MaxAgeDays: v.GetInt("log.max_age_days"),
	}

	// The credential keeps its conventional name as a fallback.
	apiKey := v.GetString("completion.api_key")
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	cfg.Completion = CompletionConfig{
		Provider:      strings.ToLower(strings.TrimSpace(v.GetString("completion.provider"))),
		APIKey:        apiKey,
		Model:         v.GetString("completion.model"),
		BaseURL:       v.GetString("completion.base_url"),
		MaxTokens:     v.GetInt("completion.max_tokens"),
		AskMaxTokens:  v.GetInt("completion.ask_max_tokens"),
		Temperature:   v.GetFloat64("completion.temperature"),
		SystemMessage: v.GetString("completion.system_message"),
		TimeoutSecs:   v.GetInt("completion.timeout_secs"),
	}
	cfg.Cache = CacheConfig{
		Capacity: v.GetInt("cache.capacity"),
	}
	cfg.OCR = OCRConfig{
		TesseractCmd:   v.GetString("ocr.tesseract_cmd"),
		Language:       v.GetString("ocr.language"),
		TessdataPrefix: v.GetString("ocr.tessdata_prefix"),
	}

	// Parse CORS allowed origins from comma-separated string
	cfg.CORS = CORSConfig{
		AllowedOrigins: splitList(v.GetString("cors.allowed_origins")),
	}
	cfg.Static = StaticConfig{
		Dir: v.GetString("static.dir"),
	}

	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, o := range strings.Split(s, ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			out = append(out, o)
		}
	}
	return out
}
