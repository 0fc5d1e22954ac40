package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server ServerConfig `mapstructure:"server" validate:"required"`
	Store  StoreConfig  `mapstructure:"store"  validate:"required"`
	LLM    LLMConfig    `mapstructure:"llm"    validate:"required"`
}

// ServerConfig contains all HTTP-server-related settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`

	// ShutdownTimeoutSeconds bounds graceful shutdown on SIGINT/SIGTERM.
	ShutdownTimeoutSeconds int `mapstructure:"shutdown_timeout_seconds" validate:"gte=1"`
}

// StoreConfig contains session-store settings.
type StoreConfig struct {
	// Path is the SQLite database file. Empty selects the in-memory store,
	// which keeps nothing across restarts.
	Path string `mapstructure:"path"`

	// MaxSessions caps how many completed sessions are retained; the oldest
	// is evicted silently on overflow.
	MaxSessions int `mapstructure:"max_sessions" validate:"required,gte=1"`
}

// LLMConfig contains all settings for the remote Gemini integration.
type LLMConfig struct {
	// GeminiAPIKey may be empty, in which case every pipeline stage runs on
	// its deterministic local fallback.
	GeminiAPIKey string `mapstructure:"gemini_api_key"`

	ModelName string `mapstructure:"model_name" validate:"required"`

	// TimeoutSeconds bounds a single remote call; a call that does not
	// resolve in time is treated as a failure and triggers fallback.
	TimeoutSeconds int `mapstructure:"timeout_seconds" validate:"required,gte=1"`

	MaxRetries        int `mapstructure:"max_retries"         validate:"gte=0,lte=10"`
	RetryDelaySeconds int `mapstructure:"retry_delay_seconds" validate:"gte=1"`
}
