package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"lyrica/src/features/caching"
	"lyrica/src/features/config"
	"lyrica/src/features/enriching"
	"lyrica/src/features/hosting"
	"lyrica/src/features/limiting"
	"lyrica/src/features/logging"
	"lyrica/src/features/metrics"
	"lyrica/src/features/resolving"
	"lyrica/src/infra/metadata"
	"lyrica/src/infra/providers"
	"lyrica/src/infra/store"
	"lyrica/src/lyrics"
)

const configPath = "config.yaml"

func main() {
	// .env is optional, environment variables win either way
	_ = godotenv.Load()

	cfgManager, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg := cfgManager.Get()

	logger := logging.SetupLogger(cfgManager)
	slog.SetDefault(logger)

	watcher, err := config.NewWatcher(cfgManager, configPath)
	if err != nil {
		slog.Warn("Config watcher unavailable", "error", err)
	} else if err := watcher.Start(); err != nil {
		slog.Warn("Config watcher failed to start", "error", err)
	} else {
		defer watcher.Stop()
	}

	// Pick the KV backend shared by the cache and the rate limiter.
	kv, closeStore, err := newStore(cfg)
	if err != nil {
		log.Fatalf("failed to open %s store: %v", cfg.Cache.Backend, err)
	}
	defer closeStore()

	recorder := metrics.NewDefaultRecorder()
	cacheService := caching.NewService(kv, time.Duration(cfg.Cache.TTLSeconds)*time.Second)

	var limiter *limiting.Limiter
	if cfg.RateLimit.Enabled {
		limiter = limiting.NewLimiter(kv, cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowSeconds)*time.Second)
	}

	httpClient := providers.NewHTTPClient()
	fetchers := buildFetchers(cfgManager, httpClient)

	var lookup enriching.MetadataLookup
	if cfg.Metadata.Enabled {
		lookup = metadata.NewExtractor(httpClient)
	}
	metadataTimeout := time.Duration(cfg.Metadata.TimeoutSeconds) * time.Second
	pipeline := enriching.NewPipeline(lookup, metadataTimeout)

	planner := resolving.NewPlanner(func(id lyrics.ProviderID) bool {
		provider, ok := cfgManager.Get().Providers.Sources[string(id)]
		return !ok || provider.Enabled
	})
	engine := resolving.NewService(
		planner,
		resolving.NewOrchestrator(fetchers),
		cacheService,
		pipeline,
		recorder,
		func() time.Duration {
			return time.Duration(cfgManager.Get().Resolver.ProviderTimeoutSeconds) * time.Second
		},
	)

	handler := resolving.NewHandler(engine, lookup, metadataTimeout)
	server := hosting.NewServer(cfgManager, handler, cacheService, limiter, recorder)

	go func() {
		slog.Info("Server started. Press Ctrl+C to shut down.", "port", cfg.Server.Port)
		if err := server.Start(); err != nil {
			slog.Error("server stopped", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	slog.Info("Shutting down server...")

	if err := server.Shutdown(); err != nil {
		log.Fatalf("failed to shutdown server: %v", err)
	}
	slog.Info("Server gracefully shut down.")
}

// newStore opens the configured KV backend and returns it with its cleanup.
func newStore(cfg *config.Config) (store.Backend, func(), error) {
	sweep := time.Duration(cfg.Cache.SweepIntervalSeconds) * time.Second
	switch cfg.Cache.Backend {
	case "redis":
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		redis, err := store.NewRedisStore(ctx, cfg.Cache.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return redis, func() { redis.Close() }, nil
	case "sqlite":
		sqlite, err := store.NewSqliteStore(cfg.Cache.Path, sweep)
		if err != nil {
			return nil, nil, err
		}
		return sqlite, func() { sqlite.Close() }, nil
	default:
		memory := store.NewMemoryStore(sweep)
		return memory, memory.Close, nil
	}
}

// buildFetchers constructs every known provider adapter; planning decides
// per request which ones actually run.
func buildFetchers(cfgManager *config.Manager, client *http.Client) []lyrics.Fetcher {
	var geniusToken string
	if provider, ok := cfgManager.Get().Providers.Sources[string(lyrics.ProviderGenius)]; ok && provider.Secret != nil {
		geniusToken = *provider.Secret
	}
	return []lyrics.Fetcher{
		providers.NewGeniusFetcher(client, geniusToken, ""),
		providers.NewLRCLIBFetcher(client, ""),
		providers.NewSimpMusicFetcher(client, ""),
		providers.NewYouTubeMusicFetcher(client, ""),
		providers.NewLyricsOvhFetcher(client, ""),
		providers.NewChartLyricsFetcher(client, ""),
	}
}
