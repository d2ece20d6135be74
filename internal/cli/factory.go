// Package cli wires configuration into stores, learners and services for
// the ostia command.
package cli

import (
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/ostia"
	"github.com/aretw0/ostia/internal/config"
	"github.com/aretw0/ostia/pkg/adapters/file"
	"github.com/aretw0/ostia/pkg/adapters/memory"
	"github.com/aretw0/ostia/pkg/adapters/redis"
	"github.com/aretw0/ostia/pkg/adapters/sqlite"
	"github.com/aretw0/ostia/pkg/alphabet"
	"github.com/aretw0/ostia/pkg/domain"
	"github.com/aretw0/ostia/pkg/observability"
	"github.com/aretw0/ostia/pkg/persistence/middleware"
	"github.com/aretw0/ostia/pkg/ports"
	"github.com/aretw0/ostia/pkg/sample"
	"github.com/aretw0/ostia/pkg/service"
)

// Store is a model store that may hold a connection.
type Store interface {
	ports.ModelStore
	Close() error
}

type nopCloser struct {
	ports.ModelStore
}

func (nopCloser) Close() error { return nil }

type wrapped struct {
	ports.ModelStore
	closer Store
}

func (w wrapped) Close() error { return w.closer.Close() }

// OpenStore creates the model store selected by cfg, sealing models when an
// encryption key is configured.
func OpenStore(cfg config.StoreConfig) (Store, error) {
	store, err := openBackend(cfg)
	if err != nil || cfg.EncryptionKey == "" {
		return store, err
	}

	keys, err := middleware.ParseKeys(cfg.EncryptionKey, cfg.FallbackKeys...)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("store encryption: %w", err)
	}
	mw, err := middleware.NewEncryptionMiddleware(keys)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("store encryption: %w", err)
	}
	return wrapped{ModelStore: mw(store), closer: store}, nil
}

func openBackend(cfg config.StoreConfig) (Store, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return nopCloser{memory.NewStore()}, nil
	case config.BackendFile, "":
		return nopCloser{file.New(cfg.Path)}, nil
	case config.BackendRedis:
		var opts []redis.Option
		if cfg.Redis.Prefix != "" {
			opts = append(opts, redis.WithPrefix(cfg.Redis.Prefix))
		}
		if cfg.Redis.TTL > 0 {
			opts = append(opts, redis.WithTTL(cfg.Redis.TTL))
		}
		return redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, opts...), nil
	case config.BackendSQLite:
		store, err := sqlite.New(cfg.SQLite.Path)
		if err != nil {
			return nil, err
		}
		return store, nil
	}
	return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
}

// NewLearner creates a learner that logs through logger. Debug mode adds
// per-step logging hooks.
func NewLearner(logger *slog.Logger, debug bool, hooks ...domain.LifecycleHooks) *ostia.Learner {
	if debug {
		hooks = append(hooks, observability.LoggingHooks(logger))
	}
	var combined domain.LifecycleHooks
	for _, h := range hooks {
		combined = combined.Chain(h)
	}
	return ostia.NewLearner(ostia.WithLogger(logger), ostia.WithLifecycleHooks(combined))
}

// NewService builds the model service over store. When reg is not nil the
// service records Prometheus metrics into it.
func NewService(store ports.ModelStore, logger *slog.Logger, debug bool, reg prometheus.Registerer) *service.Service {
	opts := []service.Option{service.WithLogger(logger)}
	var hooks []domain.LifecycleHooks
	if reg != nil {
		metrics := observability.NewMetrics(reg)
		opts = append(opts, service.WithMetrics(metrics))
		hooks = append(hooks, metrics.Hooks())
	}
	opts = append(opts, service.WithLearner(NewLearner(logger, debug, hooks...)))
	return service.New(store, opts...)
}

// LoadSamples reads a sample file. Sets that do not name their alphabet mode
// take the configured default.
func LoadSamples(path string, cfg config.Config) (*sample.Set, error) {
	set, err := sample.Load(path)
	if err != nil {
		return nil, err
	}
	if set.Alphabet == "" && len(set.Pairs) > 0 {
		mode, err := alphabet.ParseMode(cfg.Alphabet.Mode)
		if err != nil {
			return nil, err
		}
		set.Alphabet = mode
	}
	return set, nil
}
