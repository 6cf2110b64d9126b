package publish

import (
	"bytes"
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pagesmith/pkg/cache"
	"github.com/matzehuels/pagesmith/pkg/components"
	"github.com/matzehuels/pagesmith/pkg/editor"
	"github.com/matzehuels/pagesmith/pkg/errors"
	"github.com/matzehuels/pagesmith/pkg/model"
	"github.com/matzehuels/pagesmith/pkg/observability"
	"github.com/matzehuels/pagesmith/pkg/registry"
	"github.com/matzehuels/pagesmith/pkg/view"
)

// Runner publishes websites with caching.
//
// The Runner holds no per-site state; multiple goroutines can publish
// through the same Runner concurrently.
type Runner struct {
	Cache    cache.Cache
	Keyer    cache.Keyer
	Registry *registry.Registry
	Logger   *log.Logger
}

// NewRunner creates a runner.
// If c is nil, a NullCache is used (caching disabled).
// If keyer is nil, a DefaultKeyer is used.
// If reg is nil, the built-in component registry is used.
func NewRunner(c cache.Cache, keyer cache.Keyer, reg *registry.Registry, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if reg == nil {
		reg = components.DefaultRegistry()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:    c,
		Keyer:    keyer,
		Registry: reg,
		Logger:   logger,
	}
}

// Publish renders w into a page, serving it from the cache when the same
// content was published before with the same options.
func (r *Runner) Publish(ctx context.Context, w model.WebsiteRecord, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := r.logger(opts)

	hash, err := Hash(w)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "hash website %s", w.ID)
	}
	key := r.Keyer.PageKey(hash, opts.keyOpts())

	if !opts.Refresh {
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil {
			logger.Warn("page cache read failed", "key", key, "err", err)
		}
		if err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "page")
			r.remember(ctx, w.Slug, hash, opts, logger)
			logger.Debug("published page from cache", "id", w.ID, "hash", hash[:12])
			return &Result{HTML: data, Hash: hash, CacheHit: true}, nil
		}
		observability.Cache().OnCacheMiss(ctx, "page")
	}

	start := time.Now()
	page, err := r.Render(w, opts)
	if err != nil {
		return nil, err
	}
	res := &Result{
		HTML: page,
		Hash: hash,
		Stats: Stats{
			Components: len(w.Components),
			RenderTime: time.Since(start),
		},
	}

	if err := r.Cache.Set(ctx, key, page, cache.TTLPage); err != nil {
		logger.Warn("page cache write failed", "key", key, "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "page", len(page))
	}
	r.remember(ctx, w.Slug, hash, opts, logger)

	logger.Info("published website",
		"id", w.ID,
		"slug", w.Slug,
		"components", res.Stats.Components,
		"duration", res.Stats.RenderTime)
	return res, nil
}

// Latest returns the page last published for slug with opts, if it is
// still cached.
func (r *Runner) Latest(ctx context.Context, slug string, opts Options) (*Result, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	ref, hit, err := r.Cache.Get(ctx, r.Keyer.SiteKey(slug))
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, "site")
		return nil, false, err
	}
	hash := string(ref)
	data, hit, err := r.Cache.Get(ctx, r.Keyer.PageKey(hash, opts.keyOpts()))
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, "page")
		return nil, false, err
	}
	observability.Cache().OnCacheHit(ctx, "page")
	return &Result{HTML: data, Hash: hash, CacheHit: true}, true, nil
}

// Forget drops the published pointer for slug, so Latest misses until the
// site is published again.
func (r *Runner) Forget(ctx context.Context, slug string) error {
	if slug == "" {
		return nil
	}
	return r.Cache.Delete(ctx, r.Keyer.SiteKey(slug))
}

// Render renders w without consulting the cache.
func (r *Runner) Render(w model.WebsiteRecord, opts Options) ([]byte, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	s := editor.New(editor.Options{Registry: r.Registry, Logger: r.logger(opts)})
	s.LoadWebsite(w)
	body := s.Render(registry.ModePreview)

	var buf bytes.Buffer
	if opts.Fragment {
		if err := view.RenderHTML(&buf, body); err != nil {
			return nil, errors.Wrap(errors.ErrCodeRender, err, "render page %s", w.ID)
		}
		return buf.Bytes(), nil
	}

	doc := view.El("html",
		Head(w, opts),
		view.El("body", body),
	).Set("lang", opts.Lang)

	buf.WriteString("<!DOCTYPE html>\n")
	if err := view.RenderHTML(&buf, doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "render page %s", w.ID)
	}
	return buf.Bytes(), nil
}

// Close releases the cache.
func (r *Runner) Close() error {
	return r.Cache.Close()
}

// Hash is the content hash of a website. The modification time is not part
// of the content.
func Hash(w model.WebsiteRecord) (string, error) {
	w.UpdatedAt = time.Time{}
	return cache.HashJSON(w)
}

// remember points the slug at hash. Only full documents are tracked.
func (r *Runner) remember(ctx context.Context, slug, hash string, opts Options, logger *log.Logger) {
	if slug == "" || opts.Fragment {
		return
	}
	if err := r.Cache.Set(ctx, r.Keyer.SiteKey(slug), []byte(hash), cache.TTLSite); err != nil {
		logger.Warn("site pointer write failed", "slug", slug, "err", err)
	}
}

func (r *Runner) logger(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return r.Logger
}

func (o Options) keyOpts() cache.PageKeyOpts {
	return cache.PageKeyOpts{
		Mode:       string(registry.ModePreview),
		BaseURL:    o.BaseURL,
		Standalone: !o.Fragment,
		Lang:       o.Lang,
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
