// Package config provides configuration loading and validation for the application wizard.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Defaults mirrored by Load when the environment is silent.
const (
	DefaultPort           = 8080
	DefaultGeminiModel    = "gemini-2.5-pro"
	DefaultFrontendURL    = "http://localhost:5173"
	DefaultMaxUploadBytes = 5 * 1024 * 1024
	DefaultExcerptChars   = 20000
	DefaultSMTPPort       = 587

	DefaultRateLimit       = 1000
	DefaultRateLimitWindow = time.Minute
	DefaultRateLimitSweep  = 5 * time.Minute
)

// PDF engines understood by the submission service.
const (
	PDFEngineChrome = "chrome"
	PDFEngineHTML   = "html"
)

// Config holds every setting of the wizard backend.
type Config struct {
	Port        int    `json:"port,omitempty" validate:"min=1,max=65535"`
	FrontendURL string `json:"frontend_url,omitempty" validate:"omitempty,url"`
	// ExtraOrigins are accepted by CORS in addition to FrontendURL and the
	// local dev server origins.
	ExtraOrigins []string `json:"extra_origins,omitempty" validate:"dive,url"`

	GeminiAPIKey   string `json:"gemini_api_key,omitempty"`
	GeminiModel    string `json:"gemini_model,omitempty" validate:"required"`
	MaxUploadBytes int64  `json:"max_upload_bytes,omitempty" validate:"min=1"`
	ExcerptChars   int    `json:"excerpt_chars,omitempty" validate:"min=1000"`

	// Organization is printed at the top of every generated document.
	Organization string     `json:"organization,omitempty"`
	PDFEngine    string     `json:"pdf_engine,omitempty" validate:"oneof=chrome html"`
	Mail         MailConfig `json:"mail"`

	RateLimit RateLimitConfig `json:"rate_limit"`
}

// MailConfig configures delivery of submitted applications.
type MailConfig struct {
	To       string `json:"to,omitempty" validate:"omitempty,email"`
	From     string `json:"from,omitempty" validate:"omitempty,email"`
	Host     string `json:"host,omitempty" validate:"omitempty,hostname|ip"`
	Port     int    `json:"port,omitempty" validate:"min=0,max=65535"`
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
	UseTLS   bool   `json:"use_tls"`
}

// RateLimitConfig holds the default per-client limit. Endpoint limits are
// fixed by the server; windows are only settable from the environment.
type RateLimitConfig struct {
	Enabled         bool          `json:"enabled"`
	DefaultLimit    int           `json:"default_limit,omitempty" validate:"min=1"`
	DefaultWindow   time.Duration `json:"-"`
	CleanupInterval time.Duration `json:"-"`
	Whitelist       []string      `json:"whitelist,omitempty" validate:"dive,ip"`
	Blacklist       []string      `json:"blacklist,omitempty" validate:"dive,ip"`
}

// Load reads configuration from environment variables, falling back to
// defaults for anything unset. It does not validate.
func Load() *Config {
	return &Config{
		Port:           getEnvInt("PORT", DefaultPort),
		FrontendURL:    getEnvString("FRONTEND_URL", DefaultFrontendURL),
		ExtraOrigins:   splitList(getEnvString("CORS_EXTRA_ORIGINS", "")),
		GeminiAPIKey:   getEnvString("GEMINI_API_KEY", ""),
		GeminiModel:    getEnvString("GEMINI_MODEL", DefaultGeminiModel),
		MaxUploadBytes: int64(getEnvInt("MAX_UPLOAD_BYTES", DefaultMaxUploadBytes)),
		ExcerptChars:   getEnvInt("GEMINI_EXCERPT_CHARS", DefaultExcerptChars),
		Organization:   getEnvString("ORGANIZATION_NAME", ""),
		PDFEngine:      strings.ToLower(getEnvString("PDF_ENGINE", PDFEngineChrome)),
		Mail: MailConfig{
			To:       getEnvString("APPLICATION_MAIL_TO", ""),
			From:     getEnvString("APPLICATION_MAIL_FROM", ""),
			Host:     getEnvString("SMTP_HOST", ""),
			Port:     getEnvInt("SMTP_PORT", DefaultSMTPPort),
			Username: getEnvString("SMTP_USER", ""),
			Password: getEnvString("SMTP_PASS", ""),
			UseTLS:   getEnvBool("SMTP_USE_TLS", true),
		},
		RateLimit: RateLimitConfig{
			Enabled:         getEnvBool("RATE_LIMIT_ENABLED", true),
			DefaultLimit:    getEnvInt("RATE_LIMIT_DEFAULT_LIMIT", DefaultRateLimit),
			DefaultWindow:   getEnvDuration("RATE_LIMIT_DEFAULT_WINDOW", DefaultRateLimitWindow),
			CleanupInterval: getEnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", DefaultRateLimitSweep),
			Whitelist:       splitList(getEnvString("RATE_LIMIT_WHITELIST", "")),
			Blacklist:       splitList(getEnvString("RATE_LIMIT_BLACKLIST", "")),
		},
	}
}

// ApplyFile overlays values from a JSON config file onto c. Keys absent from
// the file keep their current value.
func (c *Config) ApplyFile(path string) error {
	if path == "" {
		return fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := json.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config JSON: %w", err)
	}
	return nil
}

// Validate checks that the configuration has valid values.
// Missing Gemini or SMTP credentials are not errors: the server degrades to
// the offline parser and reports mail as not ready.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	return nil
}

// AutofillReady reports whether the smart resume parser can be used.
func (c *Config) AutofillReady() bool {
	return c.GeminiAPIKey != ""
}

// Ready reports whether enough is configured to send mail.
func (m MailConfig) Ready() bool {
	return m.Host != "" && m.To != "" && m.From != ""
}

// AllowedOrigins returns the CORS allowlist: the frontend URL, the local dev
// server origins and any extra origins, without duplicates.
func (c *Config) AllowedOrigins() []string {
	candidates := append([]string{
		c.FrontendURL,
		"http://localhost:5173",
		"http://127.0.0.1:5173",
	}, c.ExtraOrigins...)

	seen := make(map[string]bool, len(candidates))
	out := make([]string, 0, len(candidates))
	for _, o := range candidates {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o == "" || seen[o] {
			continue
		}
		seen[o] = true
		out = append(out, o)
	}
	return out
}

func getEnvString(key string, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvBool accepts 1/true/yes (any case) as true, like the deployment
// scripts expect.
func getEnvBool(key string, defaultValue bool) bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if value == "" {
		return defaultValue
	}
	switch value {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func splitList(list string) []string {
	var out []string
	for _, item := range strings.Split(list, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
