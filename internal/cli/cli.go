// Package cli implements the pagesmith command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pagesmith/internal/config"
	"github.com/matzehuels/pagesmith/pkg/cache"
	"github.com/matzehuels/pagesmith/pkg/components"
	"github.com/matzehuels/pagesmith/pkg/editor"
	"github.com/matzehuels/pagesmith/pkg/errors"
	"github.com/matzehuels/pagesmith/pkg/publish"
	"github.com/matzehuels/pagesmith/pkg/registry"
	"github.com/matzehuels/pagesmith/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "pagesmith"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string // --config
	siteID     string // --site

	cfg *config.Config
	reg *registry.Registry
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// =============================================================================
// Config & Backends
// =============================================================================

// config loads the configuration once per process.
func (c *CLI) config() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, err
	}
	c.cfg = cfg
	if c.Logger.GetLevel() == LogInfo {
		c.Logger.SetLevel(cfg.LogLevel())
	}
	return cfg, nil
}

func (c *CLI) registry() *registry.Registry {
	if c.reg == nil {
		c.reg = components.DefaultRegistry()
	}
	return c.reg
}

// openStore opens the configured website store. Callers close it.
func (c *CLI) openStore(ctx context.Context) (store.Store, error) {
	cfg, err := c.config()
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("opening store", "uri", cfg.Store.URI)
	st, err := store.Open(ctx, cfg.Store.URI)
	if err != nil {
		return nil, err
	}
	return st, nil
}

// newCache creates the configured render cache. A backend that cannot be
// reached degrades to no caching.
func (c *CLI) newCache(ctx context.Context, noCache bool) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}
	cfg, err := c.config()
	if err != nil {
		return cache.NewNullCache()
	}
	cc, err := cache.New(ctx, cfg.CacheConfig())
	if err != nil {
		c.Logger.Warn("cache unavailable, continuing without", "backend", cfg.Cache.Backend, "err", err)
		return cache.NewNullCache()
	}
	return cc
}

// newPublisher creates a publish runner for CLI use.
func (c *CLI) newPublisher(ctx context.Context, noCache bool) *publish.Runner {
	return publish.NewRunner(c.newCache(ctx, noCache), c.keyer(), c.registry(), c.Logger)
}

// keyer namespaces cache keys when the cache is a shared Redis instance.
func (c *CLI) keyer() cache.Keyer {
	keyer := cache.NewDefaultKeyer()
	if cfg, err := c.config(); err == nil && cfg.Cache.Backend == cache.BackendRedis {
		keyer = cache.NewScopedKeyer(keyer, appName+":")
	}
	return keyer
}

// newSession creates an editor session over st using configured limits.
func (c *CLI) newSession(st store.Store) (*editor.Session, error) {
	cfg, err := c.config()
	if err != nil {
		return nil, err
	}
	return editor.New(editor.Options{
		Registry:     c.registry(),
		Store:        st,
		Logger:       c.Logger,
		HistoryLimit: cfg.Editor.HistoryLimit,
		Retry: editor.RetryPolicy{
			Attempts: cfg.Editor.SaveAttempts,
			Delay:    cfg.Editor.RetryDelay,
		},
	}), nil
}

// =============================================================================
// Current Site
// =============================================================================

// workspace is an open store plus a session over the selected website.
type workspace struct {
	store   store.Store
	session *editor.Session
}

func (w *workspace) Close() error {
	return w.store.Close()
}

// openSite loads the website named by --site, or the current one.
func (c *CLI) openSite(ctx context.Context) (*workspace, error) {
	id := c.siteID
	if id == "" {
		cur, err := readCurrent()
		if err != nil {
			return nil, err
		}
		id = cur
	}
	if id == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no website selected; run %q or pass --site", appName+" new")
	}

	st, err := c.openStore(ctx)
	if err != nil {
		return nil, err
	}
	sess, err := c.newSession(st)
	if err != nil {
		st.Close()
		return nil, err
	}
	if err := sess.Load(ctx, id); err != nil {
		st.Close()
		return nil, err
	}
	return &workspace{store: st, session: sess}, nil
}

// edit opens the current site, applies fn and saves the result.
func (c *CLI) edit(ctx context.Context, fn func(sess *editor.Session) error) (*editor.Session, error) {
	ws, err := c.openSite(ctx)
	if err != nil {
		return nil, err
	}
	defer ws.Close()

	if err := fn(ws.session); err != nil {
		return nil, err
	}
	if !ws.session.Dirty() {
		return ws.session, nil
	}
	if _, err := ws.session.Save(ctx); err != nil {
		return nil, err
	}
	return ws.session, nil
}

// =============================================================================
// Parsing Helpers
// =============================================================================

// parseAssignments splits key=value arguments.
func parseAssignments(args []string) (map[string]string, error) {
	out := make(map[string]string, len(args))
	for _, arg := range args {
		k, v, ok := strings.Cut(arg, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "expected key=value, got %q", arg)
		}
		out[k] = v
	}
	return out, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
