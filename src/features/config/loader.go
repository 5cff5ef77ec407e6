package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// setProviderSecret sets the secret for a provider from an environment variable
func setProviderSecret(cfg *Config, providerName, envVar string) {
	if key := os.Getenv(envVar); key != "" {
		if cfg.Providers.Sources == nil {
			cfg.Providers.Sources = make(map[string]Provider)
		}
		if provider, exists := cfg.Providers.Sources[providerName]; exists {
			provider.Secret = &key
			cfg.Providers.Sources[providerName] = provider
		} else {
			cfg.Providers.Sources[providerName] = Provider{Enabled: true, Secret: &key}
		}
	}
}

// Load reads a YAML file from the given path and returns a new Manager.
// If the file doesn't exist, creates a default configuration.
func Load(path string) (*Manager, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		slog.Info("Config file not found, creating default configuration", "path", path)
		defaultCfg := createDefaultConfig()

		if err := saveDefaultConfig(path, defaultCfg); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}

		applyEnvOverrides(defaultCfg)
		return NewManager(defaultCfg), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, err
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	applyEnvOverrides(&cfg)

	return NewManager(&cfg), nil
}

// applyEnvOverrides lets deployment environments override file values.
func applyEnvOverrides(cfg *Config) {
	setProviderSecret(cfg, "genius", "GENIUS_TOKEN")

	if key := os.Getenv("ADMIN_KEY"); key != "" {
		cfg.AdminKey = key
	}
	if url := os.Getenv("REDIS_URL"); url != "" {
		cfg.Cache.RedisURL = url
	}
	if ttl := os.Getenv("CACHE_TTL"); ttl != "" {
		if seconds, err := strconv.Atoi(ttl); err == nil && seconds > 0 {
			cfg.Cache.TTLSeconds = seconds
		}
	}
	if limit := os.Getenv("RATE_LIMIT_PER_MINUTE"); limit != "" {
		if n, err := strconv.Atoi(limit); err == nil && n > 0 {
			cfg.RateLimit.MaxRequests = n
			cfg.RateLimit.WindowSeconds = 60
		}
	}
}

// createDefaultConfig creates a new Config with sensible default values
func createDefaultConfig() *Config {
	return &Config{
		Server: Server{
			PrintRoutes: false,
			Port:        5005,
		},
		Logger: Logger{
			Enabled: true,
			Level:   "info",
			Format:  "text",
		},
		Resolver: Resolver{
			ProviderTimeoutSeconds: 10,
		},
		Providers: Providers{
			Sources: map[string]Provider{
				"genius":        {Enabled: true, Secret: nil}, // Token via GENIUS_TOKEN
				"lrclib":        {Enabled: true},
				"simpmusic":     {Enabled: true},
				"youtube_music": {Enabled: true},
				"lyrics.ovh":    {Enabled: true},
				"chartlyrics":   {Enabled: true},
			},
		},
		Cache: Cache{
			Backend:              "memory",
			TTLSeconds:           300,
			SweepIntervalSeconds: 60,
			Path:                 "./lyrica.db",
		},
		RateLimit: RateLimit{
			Enabled:       true,
			MaxRequests:   15,
			WindowSeconds: 60,
		},
		Metadata: Metadata{
			Enabled:        true,
			TimeoutSeconds: 5,
		},
	}
}

// saveDefaultConfig saves the default configuration to the specified file path
func saveDefaultConfig(path string, cfg *Config) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()
	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(2)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	slog.Info("Default configuration saved", "path", path)
	return nil
}
