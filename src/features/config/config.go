package config

// Config holds the application configuration.
type Config struct {
	Server    Server    `yaml:"server"`
	Logger    Logger    `yaml:"logger"`
	Resolver  Resolver  `yaml:"resolver"`
	Providers Providers `yaml:"providers"`
	Cache     Cache     `yaml:"cache"`
	RateLimit RateLimit `yaml:"rate_limit"`
	Metadata  Metadata  `yaml:"metadata"`
	AdminKey  string    `yaml:"admin_key"`
}

// Server holds the configuration for the Fiber server.
type Server struct {
	PrintRoutes bool   `yaml:"show_routes"`
	Port        uint32 `yaml:"port"`
}

// Logger holds the configuration for the app logging.
type Logger struct {
	Enabled bool   `yaml:"enabled"`
	Level   string `yaml:"level"`
	Format  string `yaml:"format"`
}

// Resolver holds orchestration settings.
type Resolver struct {
	// ProviderTimeoutSeconds is the fixed per-provider call ceiling; the
	// same value applies to every provider regardless of speed class.
	ProviderTimeoutSeconds int `yaml:"provider_timeout_seconds" validate:"gte=1"`
}

// Providers holds configuration for the individual lyrics providers.
type Providers struct {
	Sources map[string]Provider `yaml:"sources"`
}

// Provider holds configuration for one lyrics provider.
type Provider struct {
	Enabled bool    `yaml:"enabled"`
	Secret  *string `yaml:"secret,omitempty"`
}

// Cache holds configuration for the resolution cache.
type Cache struct {
	// Backend selects the KV store: "memory", "sqlite" or "redis".
	Backend              string `yaml:"backend" validate:"oneof=memory sqlite redis"`
	TTLSeconds           int    `yaml:"ttl_seconds" validate:"gte=1"`
	SweepIntervalSeconds int    `yaml:"sweep_interval_seconds"`
	Path                 string `yaml:"path,omitempty"`
	RedisURL             string `yaml:"redis_url,omitempty"`
}

// RateLimit holds the per-client request quota.
type RateLimit struct {
	Enabled       bool `yaml:"enabled"`
	MaxRequests   int  `yaml:"max_requests" validate:"gte=1"`
	WindowSeconds int  `yaml:"window_seconds" validate:"gte=1"`
}

// Metadata holds configuration for the metadata enrichment lookup.
type Metadata struct {
	Enabled        bool `yaml:"enabled"`
	TimeoutSeconds int  `yaml:"timeout_seconds" validate:"gte=1"`
}
