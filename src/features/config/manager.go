package config

import (
	"encoding/json"
	"log/slog"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// Manager holds the application configuration and provides thread-safe access to it.
type Manager struct {
	mu     sync.RWMutex
	config *Config
}

// NewManager creates a new Manager.
func NewManager(config *Config) *Manager {
	return &Manager{config: config}
}

// Get returns the current configuration.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

// Update updates the configuration.
func (m *Manager) Update(config *Config) {
	m.mu.Lock()
	defer m.mu.Unlock()

	oldConfig := m.config
	m.config = config

	if oldConfig != nil {
		slog.Debug("Configuration updated",
			"cache_backend_changed", oldConfig.Cache.Backend != config.Cache.Backend,
			"cache_ttl_changed", oldConfig.Cache.TTLSeconds != config.Cache.TTLSeconds,
			"rate_limit_changed", oldConfig.RateLimit != config.RateLimit,
			"provider_timeout_changed", oldConfig.Resolver.ProviderTimeoutSeconds != config.Resolver.ProviderTimeoutSeconds,
		)
	}
}

// Save writes the current configuration to the specified file path.
func (m *Manager) Save(path string) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	file, err := os.Create(path)
	if err != nil {
		slog.Error("failed to create config file", "path", path, "error", err)
		return err
	}
	defer file.Close()

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(2)
	if err := encoder.Encode(m.config); err != nil {
		slog.Error("failed to encode config", "path", path, "error", err)
		return err
	}

	slog.Info("Configuration saved successfully", "path", path)
	return nil
}

// EnabledProviders returns the enabled flag per configured provider.
func (m *Manager) EnabledProviders() map[string]bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	enabled := make(map[string]bool, len(m.config.Providers.Sources))
	for name, provider := range m.config.Providers.Sources {
		enabled[name] = provider.Enabled
	}
	return enabled
}

// redactedCfg gets a redacted copy of the Config
func (m *Manager) redactedCfg() Config {
	var cfgCpy = *m.Get()
	cfgCpy.AdminKey = "<redacted>"
	sources := make(map[string]Provider, len(cfgCpy.Providers.Sources))
	redacted := "<redacted>"
	for name, provider := range cfgCpy.Providers.Sources {
		if provider.Secret != nil {
			provider.Secret = &redacted
		}
		sources[name] = provider
	}
	cfgCpy.Providers.Sources = sources
	return cfgCpy
}

// GetJSON returns the current configuration as a JSON string.
func (m *Manager) GetJSON() string {
	jsonBytes, err := json.Marshal(m.redactedCfg())
	if err != nil {
		slog.Error("failed to marshal config to JSON", "error", err)
		return err.Error()
	}
	return string(jsonBytes)
}

// GetYAML returns the current configuration as a YAML string.
func (m *Manager) GetYAML() string {
	yamlBytes, err := yaml.Marshal(m.redactedCfg())
	if err != nil {
		slog.Error("failed to marshal config to YAML", "error", err)
		return err.Error()
	}
	return string(yamlBytes)
}
