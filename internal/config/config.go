package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
// Precedence order: config file values, then environment variables
// (RESUMELENS_AI_APIKEY, ...), then defaults. GEMINI_API_KEY is honored as a
// legacy fallback for the API key.
type Config struct {
	AI     AIConfig     `mapstructure:"ai"`
	App    AppConfig    `mapstructure:"app"`
	Report ReportConfig `mapstructure:"report"`
}

// AIConfig holds AI service configuration. Global values act as fallbacks
// for the per-task configurations.
type AIConfig struct {
	Provider    string          `mapstructure:"provider"`
	Model       string          `mapstructure:"model"`
	Timeout     time.Duration   `mapstructure:"timeout"`
	APIKey      string          `mapstructure:"apiKey"`
	MaxRetries  int             `mapstructure:"maxRetries"`
	Temperature float32         `mapstructure:"temperature"`
	RateLimit   RateLimitConfig `mapstructure:"rateLimit"`

	// Task-specific configurations
	Feedback  OperationAIConfig `mapstructure:"feedback"`
	Structure OperationAIConfig `mapstructure:"structure"`
	Ats       OperationAIConfig `mapstructure:"ats"`
}

// CircuitBreakerConfig represents circuit breaker configuration
type CircuitBreakerConfig struct {
	Enabled          bool          `mapstructure:"enabled"`
	MaxRequests      uint32        `mapstructure:"maxRequests"`      // Max requests allowed when half-open
	Interval         time.Duration `mapstructure:"interval"`         // Interval to clear counts
	Timeout          time.Duration `mapstructure:"timeout"`          // Timeout for half-open to open
	MinRequests      uint32        `mapstructure:"minRequests"`      // Minimum requests before tripping
	FailureThreshold float64       `mapstructure:"failureThreshold"` // Failure ratio threshold (0.0-1.0)
}

// RateLimitConfig throttles outbound AI requests across all tasks
type RateLimitConfig struct {
	Enabled        bool `mapstructure:"enabled"`
	RequestsPerMin int  `mapstructure:"requestsPerMin"`
	BurstCapacity  int  `mapstructure:"burstCapacity"`
}

// OperationAIConfig holds AI configuration for a specific analysis task.
// Pointer fields distinguish "unset" from explicit zero values.
type OperationAIConfig struct {
	Provider       string               `mapstructure:"provider"`
	Model          string               `mapstructure:"model"`
	Timeout        *time.Duration       `mapstructure:"timeout"`
	APIKey         string               `mapstructure:"apiKey"`
	MaxRetries     *int                 `mapstructure:"maxRetries"`
	Temperature    *float32             `mapstructure:"temperature"`
	CircuitBreaker CircuitBreakerConfig `mapstructure:"circuitBreaker"`
}

// AppConfig holds general application configuration
type AppConfig struct {
	LogLevel         string   `mapstructure:"logLevel"`
	DefaultFormat    string   `mapstructure:"defaultFormat"`
	SupportedFormats []string `mapstructure:"supportedFormats"`
	MaxFileSize      int64    `mapstructure:"maxFileSize"`
}

// ReportConfig holds PDF report rendering configuration
type ReportConfig struct {
	Title    string `mapstructure:"title"`
	PageSize string `mapstructure:"pageSize"` // "A4" or "Letter"
	Font     string `mapstructure:"font"`
}

// LoadConfig reads configuration from defaults, an optional config file and
// the environment.
func LoadConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix("RESUMELENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/resumelens/")
	v.AddConfigPath("$HOME/.resumelens")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.applyFallbacks()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// applyFallbacks applies environment variable fallbacks kept for
// compatibility with the upstream Gemini tooling convention.
func (c *Config) applyFallbacks() {
	if c.AI.APIKey == "" {
		c.AI.APIKey = os.Getenv("GEMINI_API_KEY")
	}
}

// Validate checks the configuration for values that would only fail later
// and deep inside an analysis run.
func (c *Config) Validate() error {
	switch c.App.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.App.LogLevel)
	}

	if c.App.DefaultFormat != "" && len(c.App.SupportedFormats) > 0 {
		found := false
		for _, f := range c.App.SupportedFormats {
			if f == c.App.DefaultFormat {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("default format %q is not among supported formats %v",
				c.App.DefaultFormat, c.App.SupportedFormats)
		}
	}

	if c.App.MaxFileSize <= 0 {
		return fmt.Errorf("maxFileSize must be positive, got %d", c.App.MaxFileSize)
	}

	if c.AI.Temperature < 0 || c.AI.Temperature > 2 {
		return fmt.Errorf("temperature must be within [0, 2], got %v", c.AI.Temperature)
	}

	if c.AI.RateLimit.Enabled && c.AI.RateLimit.RequestsPerMin <= 0 {
		return fmt.Errorf("rateLimit.requestsPerMin must be positive when rate limiting is enabled")
	}

	switch c.Report.PageSize {
	case "A4", "Letter":
	default:
		return fmt.Errorf("report.pageSize must be A4 or Letter, got %q", c.Report.PageSize)
	}

	for name, op := range map[string]OperationAIConfig{
		"feedback": c.AI.Feedback, "structure": c.AI.Structure, "ats": c.AI.Ats,
	} {
		cb := op.CircuitBreaker
		if cb.Enabled && (cb.FailureThreshold <= 0 || cb.FailureThreshold > 1) {
			return fmt.Errorf("ai.%s.circuitBreaker.failureThreshold must be within (0, 1], got %v",
				name, cb.FailureThreshold)
		}
	}

	return nil
}
