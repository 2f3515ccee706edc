package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/njia-ai/njia-bot/internal/ai"
	"github.com/njia-ai/njia-bot/internal/analytics"
	"github.com/njia-ai/njia-bot/internal/catalog"
	"github.com/njia-ai/njia-bot/internal/content"
	"github.com/njia-ai/njia-bot/internal/httpapi"
	"github.com/njia-ai/njia-bot/internal/platform/cache"
	"github.com/njia-ai/njia-bot/internal/platform/config"
	"github.com/njia-ai/njia-bot/internal/platform/database"
	"github.com/njia-ai/njia-bot/internal/progress"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	setupLogging(cfg.Log)

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	srv, cleanup, err := buildServer(ctx, cfg)
	if err != nil {
		slog.Error("failed to build server", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	httpSrv := &http.Server{
		Addr:         addr,
		Handler:      srv.Routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}

func setupLogging(cfg config.LogConfig) {
	level := slog.LevelInfo
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	} else {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	}
	slog.SetDefault(slog.New(handler))
}

// buildServer wires configuration into a ready API server. The returned
// cleanup closes whatever backends were opened.
func buildServer(ctx context.Context, cfg *config.Config) (*httpapi.Server, func(), error) {
	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return nil, nil, fmt.Errorf("loading catalog: %w", err)
	}

	router, model := buildRouter(cfg.AI)
	usage := ai.NewInMemoryUsage()

	gen := content.NewGenerator(router,
		content.WithModel(model),
		content.WithUsage(usage),
		content.WithTracks(cat.Tracks),
	)
	engine := progress.NewEngine(cat.Badges)

	var cleanups []func()
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	opts := []httpapi.Option{httpapi.WithUsage(usage)}

	var store progress.SessionStore
	switch {
	case cfg.Database.URL != "":
		db, err := database.New(ctx, cfg.Database.URL, cfg.Database.MaxConns, cfg.Database.MinConns)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("connecting to database: %w", err)
		}
		cleanups = append(cleanups, db.Close)

		pgStore, err := progress.NewPostgresStore(db.Pool)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		if err := pgStore.Migrate(ctx); err != nil {
			cleanup()
			return nil, nil, err
		}

		events := analytics.NewPostgresEventLogger(db.Pool)
		if err := events.Migrate(ctx); err != nil {
			cleanup()
			return nil, nil, err
		}

		store = pgStore
		opts = append(opts,
			httpapi.WithEvents(events),
			httpapi.WithReadinessCheck("database", func(r *http.Request) error {
				return db.HealthCheck(r.Context())
			}),
		)
		slog.Info("using postgres session store")

	case cfg.Cache.URL != "":
		c, err := cache.New(ctx, cfg.Cache.URL)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("connecting to cache: %w", err)
		}
		cleanups = append(cleanups, func() { c.Close() })

		rdStore, err := progress.NewRedisStore(c.Client)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		store = rdStore
		opts = append(opts, httpapi.WithReadinessCheck("cache", func(r *http.Request) error {
			return c.HealthCheck(r.Context())
		}))
		slog.Info("using redis session store")

	default:
		store = progress.NewMemoryStore()
		slog.Info("using in-memory session store")
	}

	return httpapi.New(gen, engine, store, opts...), cleanup, nil
}

// buildRouter registers the configured providers in preference order and
// returns the default model for the first one.
func buildRouter(cfg config.AIConfig) (*ai.Router, string) {
	router := ai.NewRouter()
	model := ""

	if cfg.Google.APIKey != "" {
		router.Register("google", ai.NewGoogleProvider(cfg.Google.APIKey))
		model = cfg.Google.Model
	}
	if cfg.Ollama.Enabled {
		router.Register("ollama", ai.NewOllamaProvider(cfg.Ollama.URL))
		if model == "" {
			model = cfg.Ollama.Model
		}
	}
	return router, model
}
