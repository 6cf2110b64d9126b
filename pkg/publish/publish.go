// Package publish renders websites into standalone HTML pages.
//
// A published page is the preview rendering of the document wrapped in a
// full HTML document: doctype, SEO head tags, a base stylesheet and a
// Content-Security-Policy. Editing affordances never reach the output.
//
// # Caching
//
// Pages are cached by content: the key is derived from the hash of the
// website's JSON encoding plus the page options, so any edit produces a new
// key and unchanged sites are served from cache. Publishing also records
// the hash under the site's slug, which lets servers answer requests for a
// slug without loading the document from the store.
//
// # Usage
//
//	runner := publish.NewRunner(c, nil, nil, logger)
//	res, err := runner.Publish(ctx, website, publish.Options{BaseURL: "https://me.example"})
//	if err != nil {
//	    return err
//	}
//	os.WriteFile("index.html", res.HTML, 0o644)
package publish

import (
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pagesmith/pkg/errors"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultLang is the document language of published pages.
	DefaultLang = "en"

	// DefaultCSP is the Content-Security-Policy of published pages. Pages
	// carry no scripts; embeds live in sandboxed frames with their own policy.
	DefaultCSP = "default-src 'self'; img-src https: data:; style-src 'unsafe-inline'; " +
		"font-src https: data:; frame-src https: data:; script-src 'none'"
)

// =============================================================================
// Options
// =============================================================================

// Options configures one publish run.
type Options struct {
	// BaseURL is the public origin of the site, used for the canonical link.
	BaseURL string `json:"base_url,omitempty"`

	// Lang is the html lang attribute.
	Lang string `json:"lang,omitempty"`

	// Fragment renders only the page body without the surrounding document.
	Fragment bool `json:"fragment,omitempty"`

	// Refresh bypasses the cache read; the fresh page is still stored.
	Refresh bool `json:"refresh,omitempty"`

	// Logger overrides the runner's logger for this run.
	Logger *log.Logger `json:"-"`

	validated bool `json:"-"`
}

// ValidateAndSetDefaults checks the options and fills in defaults.
// Calling it more than once has no further effect.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.BaseURL = strings.TrimRight(strings.TrimSpace(o.BaseURL), "/")
	if o.BaseURL != "" && !strings.HasPrefix(o.BaseURL, "http://") && !strings.HasPrefix(o.BaseURL, "https://") {
		return errors.Validation("base_url", "base URL must use http or https")
	}
	if o.Lang == "" {
		o.Lang = DefaultLang
	}
	o.validated = true
	return nil
}

// =============================================================================
// Result
// =============================================================================

// Result is a published page.
type Result struct {
	// HTML is the rendered page.
	HTML []byte

	// Hash is the content hash of the website that was rendered.
	Hash string

	// CacheHit reports whether HTML came from the cache.
	CacheHit bool

	// Stats contains rendering statistics. Zero on cache hits.
	Stats Stats
}

// Stats contains publish statistics.
type Stats struct {
	Components int
	RenderTime time.Duration
}
