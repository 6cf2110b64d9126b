package editor

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pagesmith/pkg/components"
	"github.com/matzehuels/pagesmith/pkg/document"
	"github.com/matzehuels/pagesmith/pkg/history"
	"github.com/matzehuels/pagesmith/pkg/model"
	"github.com/matzehuels/pagesmith/pkg/registry"
	"github.com/matzehuels/pagesmith/pkg/store"
)

// RetryPolicy controls how transient persistence failures are retried.
type RetryPolicy struct {
	Attempts int
	Delay    time.Duration
}

// DefaultRetry is three attempts starting one second apart.
var DefaultRetry = RetryPolicy{Attempts: 3, Delay: time.Second}

// Options configures a Session. Zero values select defaults.
type Options struct {
	Registry     *registry.Registry
	Store        store.Store
	Logger       *log.Logger
	HistoryLimit int
	Retry        RetryPolicy
}

// Meta is the website identity carried alongside the document.
type Meta struct {
	ID     string       `json:"id,omitempty"`
	Title  string       `json:"title"`
	Slug   string       `json:"slug,omitempty"`
	Domain string       `json:"domain,omitempty"`
	Status model.Status `json:"status,omitempty"`
}

// Selection is the interaction state. Ids refer to components in the
// current document; ids that disappear are cleared.
type Selection struct {
	Selected string `json:"selectedId,omitempty"`
	Hovered  string `json:"hoveredId,omitempty"`
	Editing  string `json:"editingId,omitempty"`
}

// Session is one editing session over one website.
type Session struct {
	reg    *registry.Registry
	store  store.Store
	logger *log.Logger
	retry  RetryPolicy

	mu      sync.Mutex
	doc     document.Document
	hist    *history.Stack
	sel     Selection
	meta    Meta
	dirty   bool
	version uint64
}

// New creates a session over an empty document.
func New(opts Options) *Session {
	if opts.Registry == nil {
		opts.Registry = components.DefaultRegistry()
	}
	if opts.Store == nil {
		opts.Store = store.NewMemoryStore()
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Retry.Attempts < 1 {
		opts.Retry = DefaultRetry
	}
	doc := document.New()
	return &Session{
		reg:    opts.Registry,
		store:  opts.Store,
		logger: opts.Logger,
		retry:  opts.Retry,
		doc:    doc,
		hist:   history.New(doc.Components, opts.HistoryLimit),
		meta:   Meta{Title: "Untitled", Status: model.StatusDraft},
	}
}

// Registry returns the component registry the session renders with.
func (s *Session) Registry() *registry.Registry {
	return s.reg
}

// Document returns a copy of the current document.
func (s *Session) Document() document.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Clone()
}

// Meta returns the website identity.
func (s *Session) Meta() Meta {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.meta
}

// Website returns the session state as a persisted website record.
func (s *Session) Website() model.WebsiteRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.doc.Clone()
	return model.WebsiteRecord{
		ID:            s.meta.ID,
		Title:         s.meta.Title,
		Slug:          s.meta.Slug,
		Domain:        s.meta.Domain,
		Status:        s.meta.Status,
		Components:    d.Components,
		DesignPalette: d.Palette,
		SEOSettings:   d.SEO,
		SchemaVersion: model.SchemaVersion,
	}
}

// Dirty reports whether there are unsaved changes.
func (s *Session) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// Version increases on every accepted change. Renderers and caches use it
// to detect staleness.
func (s *Session) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// =============================================================================
// Selection
// =============================================================================

// Selection returns the current selection.
func (s *Session) Selection() Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sel
}

// Select marks id as selected. An empty id clears the selection.
func (s *Session) Select(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id != "" && s.doc.Index(id) < 0 {
		return s.notFound("select", id)
	}
	s.sel.Selected = id
	if id == "" {
		s.sel.Editing = ""
	}
	return nil
}

// Hover records the hovered component. Unknown ids clear the hover.
func (s *Session) Hover(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc.Index(id) < 0 {
		id = ""
	}
	s.sel.Hovered = id
}

// StartEditing selects id and marks it as being edited inline.
func (s *Session) StartEditing(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc.Index(id) < 0 {
		return s.notFound("edit", id)
	}
	s.sel.Selected = id
	s.sel.Editing = id
	return nil
}

// StopEditing leaves inline editing; the selection is kept.
func (s *Session) StopEditing() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sel.Editing = ""
}

// pruneSelection clears ids that no longer exist. Callers hold mu.
func (s *Session) pruneSelection() {
	if s.sel.Selected != "" && s.doc.Index(s.sel.Selected) < 0 {
		s.sel.Selected = ""
	}
	if s.sel.Hovered != "" && s.doc.Index(s.sel.Hovered) < 0 {
		s.sel.Hovered = ""
	}
	if s.sel.Editing != "" && s.doc.Index(s.sel.Editing) < 0 {
		s.sel.Editing = ""
	}
}
