package app

import (
	"fmt"

	"github.com/Adda-Baaj/pride-client/internal/config"
	"github.com/Adda-Baaj/pride-client/internal/logger"
	"github.com/Adda-Baaj/pride-client/internal/storage"
	"github.com/Adda-Baaj/pride-client/pkg/httpclient"
	"github.com/Adda-Baaj/pride-client/pkg/pride"
)

// App owns the PRIDE client and the resources behind it. Close releases the
// response cache.
type App struct {
	cfg    *config.Config
	client *pride.Client
	log    logger.Logger
	store  storage.Store
}

// New wires config into a cache store, an HTTP transport and a PRIDE client.
func New(cfg *config.Config, log logger.Logger) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = logger.NopLogger{}
	}

	storeOpts := storage.Options{
		TTL:             cfg.CacheTTL,
		CleanupInterval: cfg.CacheCleanupInterval,
	}
	store, err := storage.NewStore(cfg.StoreType(), cfg.StorePath(), storeOpts)
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}
	log.DebugObj("storage initialized", "storage_config", map[string]any{
		"type":                     cfg.StoreType(),
		"path":                     cfg.StorePath(),
		"ttl_seconds":              int(cfg.CacheTTL.Seconds()),
		"cleanup_interval_seconds": int(cfg.CacheCleanupInterval.Seconds()),
	})

	transport := httpclient.NewRestyClientWithOptions(httpclient.Options{
		Timeout:    cfg.HTTPTimeout,
		RetryCount: cfg.RetryCount,
		RetryWait:  cfg.RetryWait,
	})

	clientCfg := pride.Config{
		BaseURL: cfg.BaseURL,
		Verbose: cfg.Verbose,
		Logger:  log,
		HTTP:    transport,
	}
	if cfg.CacheEnabled {
		clientCfg.Cache = store
	}

	client, err := pride.NewClient(clientCfg)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("init pride client: %w", err)
	}

	return &App{cfg: cfg, client: client, log: log, store: store}, nil
}

// Client returns the configured PRIDE client.
func (a *App) Client() *pride.Client { return a.client }

// Close safely closes the storage backend, logging any errors encountered.
func (a *App) Close() error {
	if a == nil || a.store == nil {
		return nil
	}
	if err := a.store.Close(); err != nil {
		a.log.ErrorObj("storage close failed", "error", err.Error())
		return err
	}
	return nil
}
