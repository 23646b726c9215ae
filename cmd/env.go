package main

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/investor-profile/internal/monitoring"
	"github.com/sells-group/investor-profile/internal/narrative"
	"github.com/sells-group/investor-profile/internal/pipeline"
	"github.com/sells-group/investor-profile/internal/resilience"
	"github.com/sells-group/investor-profile/internal/store"
)

// appEnv holds the store, pipeline and metrics shared by the commands.
type appEnv struct {
	Store    store.Store
	Postgres *store.PostgresStore // nil unless store.driver is postgres
	Pipeline *pipeline.Pipeline
	Metrics  *monitoring.Metrics
	Registry *prometheus.Registry
}

// Close releases resources held by the environment.
func (e *appEnv) Close() {
	if e.Store != nil {
		_ = e.Store.Close()
	}
}

// initEnv validates config for mode, opens and migrates the store, and
// builds the pipeline. Callers should defer env.Close().
func initEnv(ctx context.Context, mode string) (*appEnv, error) {
	if err := cfg.Validate(mode); err != nil {
		return nil, err
	}

	raw, pg, err := initStore(ctx)
	if err != nil {
		return nil, err
	}

	if err := raw.Migrate(ctx); err != nil {
		_ = raw.Close()
		return nil, eris.Wrap(err, "migrate store")
	}

	var st store.Store = raw
	if cfg.Cache.Enabled {
		cached, err := store.NewCachedStore(raw, cfg.Cache.Size)
		if err != nil {
			_ = raw.Close()
			return nil, err
		}
		st = cached
	}

	renderer, err := narrative.New()
	if err != nil {
		_ = raw.Close()
		return nil, err
	}

	reg := newRegistry()
	metrics := monitoring.MustNewMetrics(reg)

	zap.L().Debug("environment initialized",
		zap.String("driver", cfg.Store.Driver),
		zap.Bool("cache", cfg.Cache.Enabled),
	)

	return &appEnv{
		Store:    st,
		Postgres: pg,
		Pipeline: pipeline.New(st, renderer, pipeline.WithMetrics(metrics)),
		Metrics:  metrics,
		Registry: reg,
	}, nil
}

// newEngine builds a store-less pipeline for commands that only score.
func newEngine() (*pipeline.Pipeline, error) {
	renderer, err := narrative.New()
	if err != nil {
		return nil, err
	}
	return pipeline.New(nil, renderer), nil
}

// initStore opens the configured store. The second result is set when the
// driver is postgres.
func initStore(ctx context.Context) (store.Store, *store.PostgresStore, error) {
	switch cfg.Store.Driver {
	case "sqlite":
		st, err := store.NewSQLite(cfg.Store.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return st, nil, nil
	case "postgres":
		retry := resilience.FromRetryConfig(cfg.Store.Retry.MaxAttempts, cfg.Store.Retry.InitialBackoffMs, cfg.Store.Retry.MaxBackoffMs)
		pg, err := store.NewPostgres(ctx, cfg.Store.DatabaseURL, &store.PoolConfig{
			MaxConns: cfg.Store.MaxConns,
			MinConns: cfg.Store.MinConns,
		}, retry)
		if err != nil {
			return nil, nil, err
		}
		return pg, pg, nil
	default:
		return nil, nil, eris.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
}

func newRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}
