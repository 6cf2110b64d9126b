package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/pagesmith/pkg/errors"
	"github.com/matzehuels/pagesmith/pkg/model"
	"github.com/matzehuels/pagesmith/pkg/publish"
)

// handleSite serves a published page. The cached snapshot from the last
// publish wins; without one, a published website is rendered from the
// store.
func (s *Server) handleSite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug := chi.URLParam(r, "slug")
	opts := publish.Options{BaseURL: s.siteURL(slug)}

	res, ok, err := s.pub.Latest(ctx, slug, opts)
	if err != nil {
		s.logger.Warn("published page lookup failed", "slug", slug, "err", err)
	}
	if !ok {
		site, err := s.store.FindBySlug(ctx, slug)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		if site.Status != model.StatusPublished {
			s.writeError(w, r, errors.New(errors.ErrCodeNotFound, "site %q is not published", slug))
			return
		}
		if res, err = s.pub.Publish(ctx, site, opts); err != nil {
			s.writeError(w, r, err)
			return
		}
	}

	etag := `"` + res.Hash + `"`
	h := w.Header()
	h.Set("ETag", etag)
	h.Set("Cache-Control", "public, max-age=60")
	h.Set("Content-Security-Policy", publish.DefaultCSP)
	h.Set("X-Content-Type-Options", "nosniff")
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	h.Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(res.HTML)
}
