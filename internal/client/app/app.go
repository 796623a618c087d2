// Package app wires the fortune client together: config, logging, durable
// storage, the remote client, the session manager, the cache with its
// metrics and the fortune service.
package app

import (
	"context"
	"errors"
	"os"

	"github.com/juju/clock"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrijs2005/fortunekeeper/internal/client/cache"
	"github.com/dmitrijs2005/fortunekeeper/internal/client/client"
	"github.com/dmitrijs2005/fortunekeeper/internal/client/config"
	"github.com/dmitrijs2005/fortunekeeper/internal/client/identity"
	"github.com/dmitrijs2005/fortunekeeper/internal/client/metrics"
	"github.com/dmitrijs2005/fortunekeeper/internal/client/models"
	"github.com/dmitrijs2005/fortunekeeper/internal/client/services"
	"github.com/dmitrijs2005/fortunekeeper/internal/client/storage"
	"github.com/dmitrijs2005/fortunekeeper/internal/logging"
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	storage  *storage.Storage
	registry *prometheus.Registry

	Cache   *cache.Store
	Session *services.SessionManager
	Fortune *services.FortuneService
}

type options struct {
	logger   logging.Logger
	registry *prometheus.Registry
	clock    clock.Clock
	client   client.Client
}

type Option func(*options)

func WithLogger(l logging.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithRegistry registers the cache metrics on reg instead of a private registry.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(o *options) { o.registry = reg }
}

func WithClock(c clock.Clock) Option {
	return func(o *options) { o.clock = c }
}

// WithClient replaces the HTTP client of the remote fortune service.
func WithClient(c client.Client) Option {
	return func(o *options) { o.client = c }
}

func NewApp(ctx context.Context, cfg *config.Config, provider identity.Provider, opts ...Option) (*App, error) {
	o := &options{clock: clock.WallClock}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = logging.NewJSONLogger(os.Stderr, cfg.LogLevel)
	}
	if o.registry == nil {
		o.registry = prometheus.NewRegistry()
	}
	if o.client == nil {
		o.client = client.NewHTTPClient(cfg, o.logger)
	}

	st, err := storage.Open(ctx, cfg.StorageDSN)
	if err != nil {
		o.logger.Error(ctx, "opening storage failed", "dsn", cfg.StorageDSN, "error", err)
		return nil, err
	}

	store := cache.NewStore(
		cache.WithRecorder(metrics.NewCollector(o.registry)),
		cache.WithLogger(o.logger.With("component", "cache")),
	)
	session := services.NewSessionManager(provider, o.client, st, cfg.AppID, o.logger)
	fortune := services.NewFortuneService(session, o.client, store,
		services.WithClock(o.clock),
		services.WithFortuneLogger(o.logger),
	)

	return &App{
		config:   cfg,
		logger:   o.logger,
		storage:  st,
		registry: o.registry,
		Cache:    store,
		Session:  session,
		Fortune:  fortune,
	}, nil
}

// Start restores the stored member and bootstraps the session. A redirect
// to the identity provider is reported as identity.ErrLoginRedirect.
func (a *App) Start(ctx context.Context) (models.SessionState, error) {
	a.Session.Restore(ctx)
	st, err := a.Session.Bootstrap(ctx)
	if errors.Is(err, identity.ErrLoginRedirect) {
		a.logger.Info(ctx, "waiting for identity provider login")
	}
	return st, err
}

// Registry exposes the cache metrics.
func (a *App) Registry() *prometheus.Registry {
	return a.registry
}

func (a *App) Close() error {
	return a.storage.Close()
}
