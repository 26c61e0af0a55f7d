// Content-addressed cache of encoded artifact bytes, adapted from the
// teacher's storage/badger package (services/trace/storage/badger,
// documented by its own test file — no implementation file shipped in
// the retrieved pack, so this is built to the same Config/DB/WithTxn
// contract rather than copied) into this module's one concern: skip
// re-encoding a source string the cache has already seen.
package artifact

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/go-playground/validator/v10"
)

var cacheConfigValidator = validator.New(validator.WithRequiredStructEnabled())

// CacheConfig configures the badger-backed store. The zero value is not
// directly usable (Path is required unless InMemory is set) and there is
// no ApplyDefaults method; start from DefaultCacheConfig.
type CacheConfig struct {
	InMemory   bool
	Path       string `validate:"required_unless=InMemory true"`
	SyncWrites bool
	GCInterval time.Duration
}

// Validate rejects a CacheConfig missing a Path when not InMemory,
// following the same Options/Validate convention runtime.Limits uses.
func (c CacheConfig) Validate() error {
	return cacheConfigValidator.Struct(c)
}

// DefaultCacheConfig returns a persistent, sync-writing configuration
// with periodic value-log GC, mirroring the teacher's DefaultConfig.
func DefaultCacheConfig(path string) CacheConfig {
	return CacheConfig{Path: path, SyncWrites: true, GCInterval: 5 * time.Minute}
}

// InMemoryCacheConfig returns a config with no persistence and GC
// disabled, for tests and short-lived host processes.
func InMemoryCacheConfig() CacheConfig {
	return CacheConfig{InMemory: true, GCInterval: 0}
}

// Cache wraps a badger.DB with the context-aware transaction helpers
// the rest of this module calls through, and an optional background GC
// runner.
type Cache struct {
	db     *badger.DB
	logger *slog.Logger
	gc     *gcRunner
}

// OpenCache opens (creating if necessary) a cache at cfg's location. A
// nil logger defaults to slog.Default().
func OpenCache(cfg CacheConfig, logger *slog.Logger) (*Cache, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("artifact: invalid cache config: %w", err)
	}
	opts := badger.DefaultOptions(cfg.Path)
	if cfg.InMemory {
		opts = opts.WithInMemory(true)
	}
	opts = opts.WithSyncWrites(cfg.SyncWrites).WithLogger(badgerLogAdapter{logger})

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("artifact: opening cache: %w", err)
	}
	c := &Cache{db: db, logger: logger.With(slog.String("component", "artifact_cache"))}
	if cfg.GCInterval > 0 {
		runner, err := newGCRunner(db, cfg.GCInterval, 0.5, c.logger)
		if err != nil {
			db.Close()
			return nil, err
		}
		runner.start()
		c.gc = runner
	}
	return c, nil
}

// Close stops the GC runner (if any) and closes the underlying store.
func (c *Cache) Close() error {
	if c.gc != nil {
		c.gc.stop()
	}
	return c.db.Close()
}

// Get returns the encoded artifact bytes stored under key, or
// (nil, false, nil) if absent.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var out []byte
	err := c.withTxn(ctx, false, func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			out = append([]byte(nil), val...)
			return nil
		})
	})
	if err != nil {
		return nil, false, err
	}
	return out, out != nil, nil
}

// Put stores data under key, overwriting any existing entry.
func (c *Cache) Put(ctx context.Context, key string, data []byte) error {
	return c.withTxn(ctx, true, func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

func (c *Cache) withTxn(ctx context.Context, write bool, fn func(txn *badger.Txn) error) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("artifact: context cancelled: %w", err)
	}
	if write {
		return c.db.Update(fn)
	}
	return c.db.View(fn)
}

// badgerLogAdapter routes badger's own internal logging through the
// component's slog.Logger instead of badger's default stderr writer,
// matching the ambient "one injected *slog.Logger per subsystem"
// convention.
type badgerLogAdapter struct {
	logger *slog.Logger
}

func (a badgerLogAdapter) Errorf(format string, args ...any)   { a.logger.Error(fmt.Sprintf(format, args...)) }
func (a badgerLogAdapter) Warningf(format string, args ...any) { a.logger.Warn(fmt.Sprintf(format, args...)) }
func (a badgerLogAdapter) Infof(format string, args ...any)    { a.logger.Info(fmt.Sprintf(format, args...)) }
func (a badgerLogAdapter) Debugf(format string, args ...any)   { a.logger.Debug(fmt.Sprintf(format, args...)) }

// gcRunner periodically reclaims value-log space, mirroring the
// teacher's NewGCRunner: an interval, a discard ratio badger's RunValueLogGC
// is called with, and a stop channel checked between cycles.
type gcRunner struct {
	db       *badger.DB
	interval time.Duration
	ratio    float64
	logger   *slog.Logger
	stopCh   chan struct{}
	doneCh   chan struct{}
}

func newGCRunner(db *badger.DB, interval time.Duration, ratio float64, logger *slog.Logger) (*gcRunner, error) {
	if db == nil {
		return nil, errors.New("artifact: db must not be nil")
	}
	if interval <= 0 {
		return nil, errors.New("artifact: interval must be positive")
	}
	if ratio <= 0 || ratio >= 1 {
		return nil, errors.New("artifact: ratio must be between 0 and 1")
	}
	return &gcRunner{
		db: db, interval: interval, ratio: ratio, logger: logger,
		stopCh: make(chan struct{}), doneCh: make(chan struct{}),
	}, nil
}

func (g *gcRunner) start() {
	go func() {
		defer close(g.doneCh)
		ticker := time.NewTicker(g.interval)
		defer ticker.Stop()
		for {
			select {
			case <-g.stopCh:
				return
			case <-ticker.C:
			again:
				if err := g.db.RunValueLogGC(g.ratio); err == nil {
					goto again
				} else if !errors.Is(err, badger.ErrNoRewrite) {
					g.logger.Warn("artifact cache GC failed", slog.Any("error", err))
				}
			}
		}
	}()
}

func (g *gcRunner) stop() {
	close(g.stopCh)
	<-g.doneCh
}

// tempDir and cleanupDir exist only for this package's own tests, which
// need a real on-disk path since badger's in-memory mode doesn't
// exercise Put/Get persistence across Cache instances.
func tempDir(prefix string) (string, error) {
	return os.MkdirTemp("", prefix)
}

func cleanupDir(path string) error {
	if path == "" {
		return nil
	}
	return os.RemoveAll(path)
}
