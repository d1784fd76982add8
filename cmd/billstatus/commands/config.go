package commands

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"govinfo-billstatus/internal/components/config"
	"govinfo-billstatus/internal/components/fanout"
	"govinfo-billstatus/internal/scrapers/govinfo"
)

type Config struct {
	BaseUrl           string  `json:"base_url"`
	TimeoutSeconds    int     `json:"timeout_seconds"`
	RequestsPerSecond float64 `json:"requests_per_second"`
	MaxConcurrency    int     `json:"max_concurrency"`
	// Policy is either "fail_fast" or "best_effort".
	Policy           string `json:"policy"`
	CloudflareBypass bool   `json:"cloudflare_bypass"`
	UserAgent        string `json:"user_agent"`
}

func defaultConfig() Config {
	return Config{
		BaseUrl:           govinfo.DefaultBaseUrl,
		TimeoutSeconds:    30,
		RequestsPerSecond: 10,
		MaxConcurrency:    16,
		Policy:            fanout.FailFast.String(),
		UserAgent:         "govinfo-billstatus",
	}
}

// loadConfig reads `path` when given, otherwise searches upwards for
// billstatus.json5. A missing file is not an error, defaults are used.
func loadConfig(path string) (Config, error) {
	var cfg Config
	var err error
	if path != "" {
		cfg, err = config.ReadConfig[Config](path)
	} else {
		cfg, err = config.ReadRecursively[Config]("billstatus.json5")
	}
	if err != nil && !(os.IsNotExist(err) && path == "") {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return cfg.withDefaults(), nil
}

func (c Config) withDefaults() Config {
	defaults := defaultConfig()
	if c.BaseUrl == "" {
		c.BaseUrl = defaults.BaseUrl
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = defaults.TimeoutSeconds
	}
	if c.RequestsPerSecond <= 0 {
		c.RequestsPerSecond = defaults.RequestsPerSecond
	}
	if c.MaxConcurrency <= 0 {
		c.MaxConcurrency = defaults.MaxConcurrency
	}
	if c.Policy == "" {
		c.Policy = defaults.Policy
	}
	if c.UserAgent == "" {
		c.UserAgent = defaults.UserAgent
	}
	return c
}

func (c Config) clientOptions() (govinfo.ClientOptions, error) {
	policy, err := fanout.ParsePolicy(c.Policy)
	if err != nil {
		return govinfo.ClientOptions{}, err
	}
	return govinfo.ClientOptions{
		BaseUrl:           c.BaseUrl,
		Timeout:           time.Duration(c.TimeoutSeconds) * time.Second,
		RequestsPerSecond: c.RequestsPerSecond,
		MaxConcurrency:    c.MaxConcurrency,
		Policy:            policy,
		CloudflareBypass:  c.CloudflareBypass,
		UserAgent:         c.UserAgent,
	}, nil
}

func compilePattern(pattern string, ignoreCase bool) (*regexp.Regexp, error) {
	if ignoreCase {
		pattern = "(?i)" + pattern
	}
	return regexp.Compile(pattern)
}
