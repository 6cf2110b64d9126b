package editor

import (
	"context"
	"encoding/base64"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/matzehuels/pagesmith/pkg/cache"
	"github.com/matzehuels/pagesmith/pkg/document"
	"github.com/matzehuels/pagesmith/pkg/errors"
	"github.com/matzehuels/pagesmith/pkg/idgen"
	"github.com/matzehuels/pagesmith/pkg/model"
	"github.com/matzehuels/pagesmith/pkg/observability"
	"github.com/matzehuels/pagesmith/pkg/store"
	"github.com/matzehuels/pagesmith/pkg/templates"
)

// MaxImageBytes bounds images read by LoadImage.
const MaxImageBytes = 5 << 20

// =============================================================================
// Save / load
// =============================================================================

// Save persists a snapshot of the current state. The store call runs
// without the session lock and transient failures are retried. On failure
// the document and the dirty flag are left as they are.
func (s *Session) Save(ctx context.Context) (store.SaveResult, error) {
	s.mu.Lock()
	id := s.meta.ID
	version := s.version
	d := s.doc.Clone()
	req := store.SaveRequest{
		Title:         s.meta.Title,
		Slug:          s.meta.Slug,
		Domain:        s.meta.Domain,
		Status:        s.meta.Status,
		Components:    d.Components,
		DesignPalette: d.Palette,
		SEOSettings:   d.SEO,
	}
	s.mu.Unlock()

	start := time.Now()
	var res store.SaveResult
	err := s.withRetry(ctx, func() error {
		var err error
		res, err = s.store.SaveWebsite(ctx, id, req)
		return err
	})
	observability.Store().OnSave(ctx, id, time.Since(start), err)
	if err != nil {
		err = asPersistence(err, "save website %s", id)
		s.logger.Error("save failed", "id", id, "err", err)
		return store.SaveResult{}, err
	}

	s.mu.Lock()
	s.meta.ID = res.ID
	s.meta.Domain = res.Domain
	if s.meta.Slug == "" {
		if w, err := store.Prepare(res.ID, req, start); err == nil {
			s.meta.Slug = w.Slug
		}
	}
	if s.version == version {
		s.dirty = false
	}
	s.mu.Unlock()

	s.logger.Info("saved website", "id", res.ID, "components", len(req.Components), "duration", time.Since(start))
	return res, nil
}

// Load replaces the session state with the stored website id. History and
// selection are reset.
func (s *Session) Load(ctx context.Context, id string) error {
	start := time.Now()
	var w model.WebsiteRecord
	err := s.withRetry(ctx, func() error {
		var err error
		w, err = s.store.LoadWebsite(ctx, id)
		return err
	})
	observability.Store().OnLoad(ctx, id, time.Since(start), err)
	if err != nil {
		if !errors.Is(err, errors.ErrCodeNotFound) {
			err = asPersistence(err, "load website %s", id)
		}
		s.logger.Error("load failed", "id", id, "err", err)
		return err
	}
	s.LoadWebsite(w)
	s.logger.Info("loaded website", "id", w.ID, "components", len(w.Components))
	return nil
}

// LoadWebsite replaces the session state with w. Duplicate or empty
// component ids are repaired; unknown component types are kept and render
// as placeholders.
func (s *Session) LoadWebsite(w model.WebsiteRecord) {
	d := document.FromWebsite(w)
	d.Components = s.repairIDs(d.Components)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = d
	s.hist.Reset(d.Components)
	s.sel = Selection{}
	s.meta = Meta{ID: w.ID, Title: w.Title, Slug: w.Slug, Domain: w.Domain, Status: w.Status}
	if s.meta.Status == "" {
		s.meta.Status = model.StatusDraft
	}
	s.dirty = false
	s.version++
}

// LoadTemplate starts a new unsaved website from a template.
func (s *Session) LoadTemplate(t templates.Template) {
	s.LoadWebsite(model.WebsiteRecord{
		Title:         t.Name,
		Status:        model.StatusDraft,
		Components:    t.Components,
		DesignPalette: t.Palette,
		SEOSettings:   t.SEO,
	})
	s.mu.Lock()
	s.dirty = true
	s.mu.Unlock()
}

func (s *Session) repairIDs(rs []model.Record) []model.Record {
	seen := make(map[string]bool, len(rs))
	out := make([]model.Record, len(rs))
	for i, r := range rs {
		if r.ID == "" || seen[r.ID] {
			id := idgen.New()
			s.logger.Warn("reassigned component id", "index", i, "old", r.ID, "new", id)
			r = r.WithID(id)
		}
		seen[r.ID] = true
		out[i] = r
	}
	return out
}

// withRetry retries fn while it fails with a persistence error.
func (s *Session) withRetry(ctx context.Context, fn func() error) error {
	return cache.Retry(ctx, s.retry.Attempts, s.retry.Delay, func() error {
		err := fn()
		if err != nil && errors.Retryable(err) {
			s.logger.Debug("retrying store call", "err", err)
			return cache.Retryable(err)
		}
		return err
	})
}

// asPersistence gives uncoded errors (context cancellation, driver errors)
// the PERSISTENCE_FAILED code.
func asPersistence(err error, format string, args ...any) error {
	if errors.GetCode(err) != "" {
		return err
	}
	return errors.Wrap(errors.ErrCodePersistence, err, format, args...)
}

// =============================================================================
// Images
// =============================================================================

// LoadImage reads an image asynchronously, encodes it as a data URI and
// writes it into the component id. For a gallery and field "images" the
// image is appended; otherwise field is set to the URI. The returned
// channel receives the outcome and is then closed. Concurrent loads into
// the same field resolve last-write-wins.
func (s *Session) LoadImage(ctx context.Context, id, field string, r io.Reader, contentType string) <-chan error {
	done := make(chan error, 1)
	go func() {
		defer close(done)
		uri, err := dataURI(r, contentType)
		if err == nil {
			err = ctx.Err()
		}
		if err != nil {
			s.logger.Warn("image load failed", "id", id, "field", field, "err", err)
			done <- err
			return
		}
		done <- s.applyImage(id, field, uri)
	}()
	return done
}

func (s *Session) applyImage(id, field, uri string) error {
	return s.apply("image", id, func(d document.Document) (document.Document, error) {
		rec, ok := d.Find(id)
		if !ok {
			return d, errors.NotFound(id)
		}
		if g, ok := model.PayloadAs[*model.Gallery](rec); ok && field == "images" {
			next := rec.Clone()
			ng, _ := model.PayloadAs[*model.Gallery](next)
			ng.Images = append(ng.Images, model.Image{URL: uri, Alt: "Image " + strconv.Itoa(len(g.Images)+1)})
			return document.Replace(d, next)
		}
		return document.Update(d, id, map[string]any{field: uri})
	})
}

func dataURI(r io.Reader, contentType string) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxImageBytes+1))
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "read image")
	}
	if len(data) == 0 {
		return "", errors.Validation("image", "image is empty")
	}
	if len(data) > MaxImageBytes {
		return "", errors.Validation("image", "image exceeds %d bytes", MaxImageBytes)
	}
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = strings.TrimSpace(contentType[:i])
	}
	if !strings.HasPrefix(contentType, "image/") {
		return "", errors.Validation("image", "unsupported content type %q", contentType)
	}
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}
