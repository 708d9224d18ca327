package cli

import (
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/MIBbrandon/Athena"
	"github.com/MIBbrandon/Athena/internal/adapters/file"
	"github.com/MIBbrandon/Athena/internal/config"
	"github.com/MIBbrandon/Athena/internal/logging"
	"github.com/MIBbrandon/Athena/pkg/adapters/memory"
	"github.com/MIBbrandon/Athena/pkg/adapters/redis"
	"github.com/MIBbrandon/Athena/pkg/adapters/solver"
	"github.com/MIBbrandon/Athena/pkg/domain"
	"github.com/MIBbrandon/Athena/pkg/observability"
	"github.com/MIBbrandon/Athena/pkg/persistence/middleware"
	"github.com/MIBbrandon/Athena/pkg/ports"
	"github.com/MIBbrandon/Athena/pkg/session"
)

// NewLogger builds the application logger from the configured level and format.
func NewLogger(cfg config.Config) (*slog.Logger, error) {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	return logging.NewWithWriter(os.Stderr, level, logging.Format(cfg.LogFormat)), nil
}

// Backend is a session store with the resources it holds.
type Backend struct {
	Store  ports.SessionStore
	Locker ports.DistributedLocker
	close  func() error
}

// Close releases connections held by the backend.
func (b *Backend) Close() error {
	if b.close == nil {
		return nil
	}
	return b.close()
}

// NewBackend opens the configured session store. The redis backend also
// provides a distributed locker when cfg.Redis.Lock is set. Sessions are
// sealed at rest when an encryption key is configured.
func NewBackend(cfg config.Config) (*Backend, error) {
	b, err := openBackend(cfg)
	if err != nil {
		return nil, err
	}
	if cfg.Store.EncryptionKey == "" {
		return b, nil
	}

	enc, err := encryptionConfig(cfg.Store)
	if err != nil {
		_ = b.Close()
		return nil, err
	}
	mw, err := middleware.NewEncryptionMiddleware(enc)
	if err != nil {
		_ = b.Close()
		return nil, err
	}
	b.Store = middleware.Chain(b.Store, mw)
	return b, nil
}

func encryptionConfig(cfg config.StoreConfig) (middleware.EncryptionConfig, error) {
	var enc middleware.EncryptionConfig
	key, err := base64.StdEncoding.DecodeString(cfg.EncryptionKey)
	if err != nil {
		return enc, fmt.Errorf("invalid encryption key: %w", err)
	}
	enc.ActiveKey = key
	for i, s := range cfg.FallbackKeys {
		k, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return enc, fmt.Errorf("invalid fallback key %d: %w", i, err)
		}
		enc.FallbackKeys = append(enc.FallbackKeys, k)
	}
	return enc, nil
}

func openBackend(cfg config.Config) (*Backend, error) {
	switch cfg.Store.Backend {
	case config.BackendMemory:
		return &Backend{Store: memory.NewStore()}, nil
	case config.BackendFile:
		return &Backend{Store: file.New(cfg.Store.Dir)}, nil
	case config.BackendRedis:
		opts := []redis.Option{redis.WithTTL(cfg.Redis.TTL)}
		if cfg.Redis.Prefix != "" {
			opts = append(opts, redis.WithPrefix(cfg.Redis.Prefix))
		}
		store := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, opts...)
		b := &Backend{Store: store, close: store.Close}
		if cfg.Redis.Lock {
			b.Locker = redis.NewLocker(store.Client(), store.Prefix())
		}
		return b, nil
	}
	return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
}

// NewSolver returns a fixed-solution solver when solutionPath is set, and
// the HTTP solver client otherwise.
func NewSolver(cfg config.Config, solutionPath string, logger *slog.Logger) (ports.Solver, error) {
	if solutionPath != "" {
		return solver.LoadStatic(solutionPath)
	}
	if cfg.Solver.URL == "" {
		return nil, errors.New("no solver url configured")
	}
	return solver.NewClient(cfg.Solver.URL,
		solver.WithTimeout(cfg.Solver.Timeout),
		solver.WithLogger(logger),
	), nil
}

// PlayerOptions are the command-specific parts of a Player.
type PlayerOptions struct {
	SolutionPath string
	Hooks        []domain.LifecycleHooks
}

// NewPlayer wires a Player from configuration. Callers must Close the backend.
func NewPlayer(cfg config.Config, logger *slog.Logger, opts PlayerOptions) (*athena.Player, *Backend, error) {
	backend, err := NewBackend(cfg)
	if err != nil {
		return nil, nil, err
	}
	slv, err := NewSolver(cfg, opts.SolutionPath, logger)
	if err != nil {
		_ = backend.Close()
		return nil, nil, err
	}

	hooks := append([]domain.LifecycleHooks{observability.LoggingHooks(logger)}, opts.Hooks...)
	playerOpts := []athena.Option{
		athena.WithStore(backend.Store),
		athena.WithSolver(slv),
		athena.WithLogger(logger),
		athena.WithLifecycleHooks(observability.ComposeHooks(hooks...)),
	}
	if cfg.Solver.Timeout > 0 {
		// Leave the finishing save time to take the session lock.
		playerOpts = append(playerOpts, athena.WithSolveTimeout(cfg.Solver.Timeout+session.DefaultLockTTL))
	}
	if backend.Locker != nil {
		playerOpts = append(playerOpts, athena.WithLocker(backend.Locker))
	}
	return athena.New(playerOpts...), backend, nil
}
