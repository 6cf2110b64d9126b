// Package registry maps component type tags to their catalogue metadata,
// default data and renderer.
//
// Lookups never fall back: asking for an unregistered type yields an
// UNKNOWN_COMPONENT_TYPE error so corrupted documents surface instead of
// silently rendering as something else.
package registry

import (
	"slices"
	"strings"
	"sync"

	"github.com/matzehuels/pagesmith/pkg/errors"
	"github.com/matzehuels/pagesmith/pkg/model"
	"github.com/matzehuels/pagesmith/pkg/style"
	"github.com/matzehuels/pagesmith/pkg/view"
)

// =============================================================================
// Render contract
// =============================================================================

// Mode selects between editing affordances and final output.
type Mode string

// Render modes.
const (
	ModeEdit    Mode = "edit"
	ModePreview Mode = "preview"
)

// ParseMode parses a mode name. The empty string is preview.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(s)) {
	case ModeEdit:
		return ModeEdit, nil
	case ModePreview, "":
		return ModePreview, nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "invalid render mode %q (expected edit or preview)", s)
}

// RenderContext is everything a renderer may look at. Record is owned by
// the caller and must not be mutated; OnUpdate receives complete next
// records.
type RenderContext struct {
	Record   model.Record
	Mode     Mode
	OnUpdate func(next model.Record)
	Style    style.Resolved
	Palette  model.DesignPalette
	// Notice receives informational errors such as UNSAFE_CONTENT that do
	// not stop rendering. May be nil.
	Notice func(err error)
}

// Editing reports whether edit controls should be rendered.
func (c RenderContext) Editing() bool {
	return c.Mode == ModeEdit
}

// Update calls OnUpdate when set.
func (c RenderContext) Update(next model.Record) {
	if c.OnUpdate != nil {
		c.OnUpdate(next)
	}
}

// Notify forwards err to Notice when both are set.
func (c RenderContext) Notify(err error) {
	if err != nil && c.Notice != nil {
		c.Notice(err)
	}
}

// Renderer turns a record into a view tree.
type Renderer func(ctx RenderContext) view.Node

// =============================================================================
// Catalogue
// =============================================================================

// Category groups component types for the insert menu. It has no meaning
// beyond presentation.
type Category string

// Categories in display order.
const (
	CategoryLayout   Category = "Layout"
	CategoryContent  Category = "Content"
	CategoryShowcase Category = "Showcase"
	CategoryBusiness Category = "Business"
	CategoryAdvanced Category = "Advanced"
)

var categoryOrder = []Category{
	CategoryLayout,
	CategoryContent,
	CategoryShowcase,
	CategoryBusiness,
	CategoryAdvanced,
}

// Entry describes one registered component type.
type Entry struct {
	Type        model.Type
	DisplayName string
	Description string
	Category    Category
	// Defaults returns a fresh, minimally valid payload.
	Defaults func() model.Payload
	Renderer Renderer
	// StyleDefaults are the type-level style defaults, typically theme
	// references.
	StyleDefaults model.StyleOverrides
}

// Registry holds registered component types. It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	entries map[model.Type]Entry
	order   []model.Type
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{entries: make(map[model.Type]Entry)}
}

// Register adds or replaces the entry for t. Only built-in type tags can be
// registered.
func (r *Registry) Register(t model.Type, e Entry) error {
	if !t.Known() {
		return errors.UnknownType(string(t))
	}
	if e.Renderer == nil {
		return errors.New(errors.ErrCodeInvalidInput, "renderer for %q is nil", t)
	}
	if e.Defaults == nil {
		return errors.New(errors.ErrCodeInvalidInput, "defaults for %q are nil", t)
	}
	if p := e.Defaults(); p == nil || p.ComponentType() != t {
		return errors.New(errors.ErrCodeInvalidInput, "defaults for %q produce the wrong payload type", t)
	}
	if e.Category == "" {
		e.Category = CategoryContent
	}
	if e.DisplayName == "" {
		e.DisplayName = string(t)
	}
	e.Type = t
	e.StyleDefaults = e.StyleDefaults.Clone()

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.entries[t]; !exists {
		r.order = append(r.order, t)
	}
	r.entries[t] = e
	return nil
}

// MustRegister is Register but panics on error.
func (r *Registry) MustRegister(t model.Type, e Entry) {
	if err := r.Register(t, e); err != nil {
		panic(err)
	}
}

// Lookup returns the entry for t.
func (r *Registry) Lookup(t model.Type) (Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[t]
	if !ok {
		return Entry{}, errors.UnknownType(string(t))
	}
	e.StyleDefaults = e.StyleDefaults.Clone()
	return e, nil
}

// Get returns the renderer for t.
func (r *Registry) Get(t model.Type) (Renderer, error) {
	e, err := r.Lookup(t)
	if err != nil {
		return nil, err
	}
	return e.Renderer, nil
}

// DefaultsFor returns a fresh record of type t carrying id.
func (r *Registry) DefaultsFor(t model.Type, id string) (model.Record, error) {
	e, err := r.Lookup(t)
	if err != nil {
		return model.Record{}, err
	}
	return model.NewRecord(id, e.Defaults()), nil
}

// StyleDefaults returns the type-level style defaults for t, or nil.
func (r *Registry) StyleDefaults(t model.Type) model.StyleOverrides {
	e, err := r.Lookup(t)
	if err != nil {
		return nil
	}
	return e.StyleDefaults
}

// Types returns registered tags in registration order.
func (r *Registry) Types() []model.Type {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.order)
}

// Entries returns all entries grouped by category, in registration order
// within a category.
func (r *Registry) Entries() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Entry, 0, len(r.order))
	for _, t := range r.order {
		out = append(out, r.entries[t])
	}
	slices.SortStableFunc(out, func(a, b Entry) int {
		return categoryIndex(a.Category) - categoryIndex(b.Category)
	})
	return out
}

// Search returns entries whose display name, description, category or type
// tag contains query, case-insensitively. An empty query returns all
// entries.
func (r *Registry) Search(query string) []Entry {
	q := strings.ToLower(strings.TrimSpace(query))
	all := r.Entries()
	if q == "" {
		return all
	}
	out := all[:0]
	for _, e := range all {
		if strings.Contains(strings.ToLower(e.DisplayName), q) ||
			strings.Contains(strings.ToLower(e.Description), q) ||
			strings.Contains(strings.ToLower(string(e.Category)), q) ||
			strings.Contains(string(e.Type), q) {
			out = append(out, e)
		}
	}
	return out
}

// Categories returns the fixed category list in display order.
func (r *Registry) Categories() []Category {
	return slices.Clone(categoryOrder)
}

// InCategory returns the entries of one category.
func (r *Registry) InCategory(c Category) []Entry {
	var out []Entry
	for _, e := range r.Entries() {
		if e.Category == c {
			out = append(out, e)
		}
	}
	return out
}

func categoryIndex(c Category) int {
	if i := slices.Index(categoryOrder, c); i >= 0 {
		return i
	}
	return len(categoryOrder)
}
