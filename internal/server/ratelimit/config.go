package ratelimit

import (
	"time"

	"github.com/jonathan/application-wizard/internal/config"
)

// EndpointConfig is the limit applied to one route. Burst defaults to Limit.
type EndpointConfig struct {
	Path   string // prefix match
	Method string
	Limit  int
	Window time.Duration
	Burst  int
}

// FromSettings builds the limiter configuration from the loaded settings and
// the fixed per-route limits.
func FromSettings(s config.RateLimitConfig) *Config {
	if !s.Enabled {
		return &Config{Enabled: false}
	}
	return &Config{
		Enabled:         true,
		DefaultLimit:    s.DefaultLimit,
		DefaultWindow:   s.DefaultWindow,
		CleanupInterval: s.CleanupInterval,
		Whitelist:       ipSet(s.Whitelist),
		Blacklist:       ipSet(s.Blacklist),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the per-route limits. Model calls, PDF
// printing and SMTP delivery get the strictest ones; reads fall through to
// the default limit.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		{Path: "/api/parse-resume", Method: "POST", Limit: 30, Window: time.Hour, Burst: 5},
		{Path: "/api/submit-application", Method: "POST", Limit: 10, Window: time.Hour, Burst: 3},
		{Path: "/api/autofill", Method: "POST", Limit: 120, Window: time.Minute, Burst: 20},
	}
}

func ipSet(ips []string) map[string]bool {
	set := make(map[string]bool, len(ips))
	for _, ip := range ips {
		set[ip] = true
	}
	return set
}
