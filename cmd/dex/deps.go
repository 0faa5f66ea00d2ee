package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/ersonp/dex-core/internal/application/handlers"
	"github.com/ersonp/dex-core/internal/domain/ports"
	"github.com/ersonp/dex-core/internal/domain/services"
	"github.com/ersonp/dex-core/internal/infrastructure/cache/memory"
	"github.com/ersonp/dex-core/internal/infrastructure/catalog/pokeapi"
	"github.com/ersonp/dex-core/internal/infrastructure/config"
	"github.com/ersonp/dex-core/internal/infrastructure/storage/sqlite"
	"github.com/ersonp/dex-core/internal/infrastructure/vectordb/qdrant"
)

// Deps holds high-level dependencies for commands.
// Only handlers are exposed - services and repositories are internal.
type Deps struct {
	Config    *config.Config
	Logger    *zap.Logger
	Catalog   *handlers.CatalogHandler
	Compare   *handlers.CompareHandler
	Favorites *handlers.FavoritesHandler
	Session   *services.Session
}

// internalDeps holds all dependencies including low-level components.
// Used internally by helper functions.
type internalDeps struct {
	Deps
	store          *sqlite.Repository
	client         *pokeapi.Client
	catalogService *services.CatalogService
}

// withDeps builds dependencies, then calls the provided function.
// It handles cleanup automatically.
func withDeps(ctx context.Context, fn func(*Deps) error) error {
	return withInternalDeps(ctx, func(d *internalDeps) error {
		return fn(&d.Deps)
	})
}

// currentConfig returns the loaded config, or the defaults before setup has run.
func currentConfig() *config.Config {
	if globalConfig == nil {
		return config.Default()
	}
	return globalConfig
}

// withInternalDeps provides access to all dependencies including low-level components.
// Used by commands that need direct repository or service access.
func withInternalDeps(ctx context.Context, fn func(*internalDeps) error) error {
	cfg := currentConfig()
	logger := globalLogger

	store, err := openStore(ctx, cfg.Storage.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	client := pokeapi.NewClient(pokeapi.Options{
		BaseURL:           cfg.API.BaseURL,
		Timeout:           cfg.API.Timeout,
		RequestsPerSecond: cfg.API.RequestsPerSecond,
		Burst:             cfg.API.Burst,
		CacheTTL:          cfg.Cache.TTL,
	}, responseCache(cfg.Cache.Backend, store), logger)

	catalogService := services.NewCatalogService(client, logger, services.CatalogOptions{
		Limit:     cfg.Catalog.Limit,
		Offset:    cfg.Catalog.Offset,
		BatchSize: cfg.Catalog.BatchSize,
	})
	comparisonService := services.NewComparisonService(client, logger)

	favoritesService := services.NewFavoritesService(store.KeyValueStore(), logger)
	favoritesService.Load(ctx)

	session := services.NewSession(favoritesService)
	defer session.Close()

	catalogHandler := handlers.NewCatalogHandler(catalogService, session, cfg.Cache.TTL)

	deps := &internalDeps{
		Deps: Deps{
			Config:    cfg,
			Logger:    logger,
			Catalog:   catalogHandler,
			Compare:   handlers.NewCompareHandler(comparisonService),
			Favorites: handlers.NewFavoritesHandler(session, catalogHandler),
			Session:   session,
		},
		store:          store,
		client:         client,
		catalogService: catalogService,
	}

	return fn(deps)
}

// withSimilarHandler provides the SimilarHandler backed by Qdrant.
func withSimilarHandler(ctx context.Context, fn func(*handlers.SimilarHandler) error) error {
	return withInternalDeps(ctx, func(d *internalDeps) error {
		repo, err := qdrant.NewRepository(d.Config.Qdrant)
		if err != nil {
			return fmt.Errorf("creating qdrant repository: %w", err)
		}
		defer repo.Close()

		similarity := services.NewSimilarityService(d.client, repo, d.Logger)
		return fn(handlers.NewSimilarHandler(d.catalogService, similarity))
	})
}

// withStore provides direct access to the SQLite repository.
func withStore(ctx context.Context, fn func(*sqlite.Repository) error) error {
	store, err := openStore(ctx, currentConfig().Storage.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	return fn(store)
}

// openStore opens the SQLite database, creating its directory and schema as needed.
func openStore(ctx context.Context, path string) (*sqlite.Repository, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	store, err := sqlite.NewRepository(path)
	if err != nil {
		return nil, fmt.Errorf("creating sqlite repository: %w", err)
	}

	if err := store.EnsureSchema(ctx); err != nil {
		store.Close()
		return nil, fmt.Errorf("ensuring sqlite schema: %w", err)
	}

	return store, nil
}

// responseCache selects the configured cache backend. nil disables caching.
func responseCache(backend string, store *sqlite.Repository) ports.ResponseCache {
	switch backend {
	case config.CacheMemory:
		return memory.New()
	case config.CacheNone:
		return nil
	default:
		return store.ResponseCache()
	}
}
