package server

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/pagesmith/pkg/editor"
	"github.com/matzehuels/pagesmith/pkg/errors"
	"github.com/matzehuels/pagesmith/pkg/model"
	"github.com/matzehuels/pagesmith/pkg/publish"
)

// =============================================================================
// Components
// =============================================================================

func (s *Server) handleInsert(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	var req insertRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Type == "" {
		s.writeError(w, r, errors.Required("type", ""))
		return
	}
	at := -1
	if req.At != nil {
		at = *req.At
	}
	rec, err := sess.Insert(req.Type, at)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var fields map[string]any
	if err := decode(w, r, &fields); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.mutate(w, r, func(sess *editor.Session) error {
		return sess.Update(chi.URLParam(r, "cid"), fields)
	})
}

func (s *Server) handleReplace(w http.ResponseWriter, r *http.Request) {
	var rec model.Record
	if err := decode(w, r, &rec); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.mutate(w, r, func(sess *editor.Session) error {
		if cid := chi.URLParam(r, "cid"); rec.ID != cid {
			return errors.Validation("id", "record id %q does not match %q", rec.ID, cid)
		}
		return sess.Replace(rec)
	})
}

// handleRemove deletes a component. Removing an id that is already gone
// answers with the unchanged state.
func (s *Server) handleRemove(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, r, func(sess *editor.Session) error {
		cid := chi.URLParam(r, "cid")
		err := sess.Remove(cid)
		if errors.Is(err, errors.ErrCodeNotFound) {
			s.logger.Debug("component already removed", "id", cid)
			return nil
		}
		return err
	})
}

func (s *Server) handleDuplicate(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	rec, err := sess.Duplicate(chi.URLParam(r, "cid"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

// handleImage reads the raw request body as an image and waits for it to
// be applied.
func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	field := r.URL.Query().Get("field")
	if err := errors.Required("field", field); err != nil {
		s.writeError(w, r, err)
		return
	}
	body := http.MaxBytesReader(w, r.Body, editor.MaxImageBytes+1)
	done := sess.LoadImage(r.Context(), chi.URLParam(r, "cid"), field, body, r.Header.Get("Content-Type"))
	select {
	case err := <-done:
		if err != nil {
			s.writeError(w, r, err)
			return
		}
	case <-r.Context().Done():
		return
	}
	writeJSON(w, http.StatusOK, state(sess))
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.mutate(w, r, func(sess *editor.Session) error {
		return sess.Move(req.From, req.To)
	})
}

func (s *Server) handleOrder(w http.ResponseWriter, r *http.Request) {
	var req orderRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.mutate(w, r, func(sess *editor.Session) error {
		return sess.Reorder(req.IDs)
	})
}

func (s *Server) handleControl(w http.ResponseWriter, r *http.Request) {
	var req controlRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.mutate(w, r, func(sess *editor.Session) error {
		return sess.Dispatch(req.Control, req.Value)
	})
}

func (s *Server) handleSelection(w http.ResponseWriter, r *http.Request) {
	var req selectionRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.mutate(w, r, func(sess *editor.Session) error {
		if req.Hovered != nil {
			sess.Hover(*req.Hovered)
		}
		if req.Selected != nil {
			return sess.Select(*req.Selected)
		}
		return nil
	})
}

// =============================================================================
// Theme and metadata
// =============================================================================

func (s *Server) handlePalette(w http.ResponseWriter, r *http.Request) {
	var fields map[string]string
	if err := decode(w, r, &fields); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.mutate(w, r, func(sess *editor.Session) error {
		return sess.UpdatePalette(fields)
	})
}

func (s *Server) handlePreset(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, r, func(sess *editor.Session) error {
		return sess.ApplyPreset(chi.URLParam(r, "preset"))
	})
}

func (s *Server) handleSEO(w http.ResponseWriter, r *http.Request) {
	var seo model.SEOSettings
	if err := decode(w, r, &seo); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.mutate(w, r, func(sess *editor.Session) error {
		return sess.SetSEO(seo)
	})
}

// handleMeta updates title, slug and status. Taking a site offline or
// moving it to another slug drops the published page of the old slug.
func (s *Server) handleMeta(w http.ResponseWriter, r *http.Request) {
	var req metaRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.mutate(w, r, func(sess *editor.Session) error {
		before := sess.Meta()
		if req.Title != nil {
			if err := sess.SetTitle(*req.Title); err != nil {
				return err
			}
		}
		if req.Slug != nil {
			if err := sess.SetSlug(*req.Slug); err != nil {
				return err
			}
		}
		if req.Status != nil {
			if err := sess.SetStatus(*req.Status); err != nil {
				return err
			}
		}
		after := sess.Meta()
		if before.Status == model.StatusPublished &&
			(after.Status != model.StatusPublished || after.Slug != before.Slug) {
			if err := s.pub.Forget(r.Context(), before.Slug); err != nil {
				s.logger.Warn("forget published page failed", "slug", before.Slug, "err", err)
			}
		}
		return nil
	})
}

// =============================================================================
// History and persistence
// =============================================================================

func (s *Server) handleUndo(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, r, func(sess *editor.Session) error {
		sess.Undo()
		return nil
	})
}

func (s *Server) handleRedo(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, r, func(sess *editor.Session) error {
		sess.Redo()
		return nil
	})
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	if _, err := sess.Save(r.Context()); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, state(sess))
}

// handlePublish marks the site published, saves it and renders the page.
func (s *Server) handlePublish(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	ctx := r.Context()
	if err := sess.SetStatus(model.StatusPublished); err != nil {
		s.writeError(w, r, err)
		return
	}
	if _, err := sess.Save(ctx); err != nil {
		s.writeError(w, r, err)
		return
	}

	site := sess.Website()
	res, err := s.pub.Publish(ctx, site, publish.Options{BaseURL: s.siteURL(site.Slug)})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, publishResponse{
		Slug:     site.Slug,
		Path:     sitePath(site.Slug),
		URL:      s.siteURL(site.Slug),
		Hash:     res.Hash,
		CacheHit: res.CacheHit,
	})
}

func sitePath(slug string) string {
	return "/sites/" + slug
}

func (s *Server) siteURL(slug string) string {
	if s.cfg.PublicURL == "" {
		return ""
	}
	return strings.TrimRight(s.cfg.PublicURL, "/") + sitePath(slug)
}
