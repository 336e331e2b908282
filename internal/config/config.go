package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
)

type Config struct {
	Port string

	// Gemini generation. The API key is an optional default; requests may
	// carry their own key, which takes precedence and is never stored.
	GeminiAPIKey string
	GeminiModel  string

	// LCSH authority lookup
	LCSHBaseURL string

	// Upload limits
	MaxUploadBytes int64

	// PDF
	PDFFallbackPdftotext bool
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8088"),

		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  envOr("GEMINI_MODEL", "gemini-2.0-flash"),

		LCSHBaseURL: envOr("LCSH_API_URL", "https://lcsh.098484.xyz"),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 20971520), // 20MB

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),
	}

	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 20971520
	}

	return cfg
}

func (c Config) Validate() error {
	if c.LCSHBaseURL == "" {
		return fmt.Errorf("LCSH_API_URL must not be empty")
	}
	if _, err := url.ParseRequestURI(c.LCSHBaseURL); err != nil {
		return fmt.Errorf("LCSH_API_URL is not a valid URL: %w", err)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
