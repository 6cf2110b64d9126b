package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/pagesmith/pkg/editor"
	"github.com/matzehuels/pagesmith/pkg/errors"
	"github.com/matzehuels/pagesmith/pkg/model"
	"github.com/matzehuels/pagesmith/pkg/registry"
	"github.com/matzehuels/pagesmith/pkg/store"
)

// =============================================================================
// Request and response bodies
// =============================================================================

type componentInfo struct {
	Type        model.Type        `json:"type"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Category    registry.Category `json:"category"`
}

type createRequest struct {
	Title    string `json:"title"`
	Slug     string `json:"slug,omitempty"`
	Template string `json:"template,omitempty"`
}

type insertRequest struct {
	Type model.Type `json:"type"`
	// At is the insert position; nil or out of range appends.
	At *int `json:"at,omitempty"`
}

type moveRequest struct {
	From int `json:"from"`
	To   int `json:"to"`
}

type orderRequest struct {
	IDs []string `json:"ids"`
}

type controlRequest struct {
	Control string `json:"control"`
	Value   string `json:"value"`
}

type selectionRequest struct {
	Selected *string `json:"selectedId,omitempty"`
	Hovered  *string `json:"hoveredId,omitempty"`
}

type metaRequest struct {
	Title  *string       `json:"title,omitempty"`
	Slug   *string       `json:"slug,omitempty"`
	Status *model.Status `json:"status,omitempty"`
}

type stateResponse struct {
	Meta      editor.Meta      `json:"meta"`
	Dirty     bool             `json:"dirty"`
	Version   uint64           `json:"version"`
	CanUndo   bool             `json:"canUndo"`
	CanRedo   bool             `json:"canRedo"`
	Selection editor.Selection `json:"selection"`
	Order     []string         `json:"order"`
}

type publishResponse struct {
	Slug     string `json:"slug"`
	Path     string `json:"path"`
	URL      string `json:"url,omitempty"`
	Hash     string `json:"hash"`
	CacheHit bool   `json:"cacheHit"`
}

func state(sess *editor.Session) stateResponse {
	return stateResponse{
		Meta:      sess.Meta(),
		Dirty:     sess.Dirty(),
		Version:   sess.Version(),
		CanUndo:   sess.CanUndo(),
		CanRedo:   sess.CanRedo(),
		Selection: sess.Selection(),
		Order:     sess.Order(),
	}
}

// =============================================================================
// Catalogue
// =============================================================================

func (s *Server) handleComponents(w http.ResponseWriter, r *http.Request) {
	entries := s.reg.Search(r.URL.Query().Get("q"))
	out := make([]componentInfo, 0, len(entries))
	for _, e := range entries {
		out = append(out, componentInfo{
			Type:        e.Type,
			Name:        e.DisplayName,
			Description: e.Description,
			Category:    e.Category,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleTemplates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.templates.List())
}

// =============================================================================
// Websites
// =============================================================================

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	list, err := s.store.ListWebsites(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if list == nil {
		list = []store.Summary{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	sess := s.newSession()
	if req.Template != "" {
		t, err := s.templates.Load(req.Template)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		sess.LoadTemplate(t)
	}
	if req.Title != "" {
		if err := sess.SetTitle(req.Title); err != nil {
			s.writeError(w, r, err)
			return
		}
	}
	if req.Slug != "" {
		if err := sess.SetSlug(req.Slug); err != nil {
			s.writeError(w, r, err)
			return
		}
	}

	res, err := sess.Save(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.track(res.ID, sess)
	s.logger.Info("created website", "id", res.ID, "template", req.Template)
	writeJSON(w, http.StatusCreated, sess.Website())
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sess.Website())
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ctx := r.Context()
	if site, err := s.store.LoadWebsite(ctx, id); err == nil {
		if err := s.pub.Forget(ctx, site.Slug); err != nil {
			s.logger.Warn("forget published page failed", "slug", site.Slug, "err", err)
		}
	}
	if err := s.store.DeleteWebsite(ctx, id); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.drop(id)
	s.logger.Info("deleted website", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, state(sess))
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	mode, err := registry.ParseMode(r.URL.Query().Get("mode"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	out, err := sess.RenderHTML(mode)
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeRender, err, "render page"))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(out))
}

// lookup resolves the {id} session or writes the error.
func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*editor.Session, bool) {
	sess, err := s.session(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return nil, false
	}
	return sess, true
}

// mutate runs fn on the {id} session and answers with the session state.
func (s *Server) mutate(w http.ResponseWriter, r *http.Request, fn func(sess *editor.Session) error) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	if err := fn(sess); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, state(sess))
}
