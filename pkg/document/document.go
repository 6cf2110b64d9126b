package document

import (
	"slices"

	"github.com/matzehuels/pagesmith/pkg/errors"
	"github.com/matzehuels/pagesmith/pkg/model"
)

// Document is the full editable page state.
type Document struct {
	Components []model.Record
	Palette    model.DesignPalette
	SEO        model.SEOSettings
}

// New returns an empty document with the default palette.
func New() Document {
	return Document{Palette: model.DefaultPalette()}
}

// FromWebsite builds a document from a persisted website.
func FromWebsite(w model.WebsiteRecord) Document {
	return Document{
		Components: slices.Clone(w.Components),
		Palette:    w.DesignPalette,
		SEO:        w.SEOSettings,
	}
}

// Len returns the number of components.
func (d Document) Len() int {
	return len(d.Components)
}

// Index returns the position of id, or -1.
func (d Document) Index(id string) int {
	return slices.IndexFunc(d.Components, func(r model.Record) bool { return r.ID == id })
}

// Find returns the component with the given id.
func (d Document) Find(id string) (model.Record, bool) {
	if i := d.Index(id); i >= 0 {
		return d.Components[i], true
	}
	return model.Record{}, false
}

// IDs returns component ids in order.
func (d Document) IDs() []string {
	ids := make([]string, len(d.Components))
	for i, r := range d.Components {
		ids[i] = r.ID
	}
	return ids
}

// Clone returns a deep copy of d.
func (d Document) Clone() Document {
	out := d
	out.Components = CloneComponents(d.Components)
	out.SEO.Keywords = slices.Clone(d.SEO.Keywords)
	return out
}

// CloneComponents deep-copies a component list.
func CloneComponents(rs []model.Record) []model.Record {
	if rs == nil {
		return nil
	}
	out := make([]model.Record, len(rs))
	for i, r := range rs {
		out[i] = r.Clone()
	}
	return out
}

// Same reports whether b is a returned unchanged: same component backing
// array, same palette and same SEO settings.
func Same(a, b Document) bool {
	if len(a.Components) != len(b.Components) {
		return false
	}
	if len(a.Components) > 0 && &a.Components[0] != &b.Components[0] {
		return false
	}
	return a.Palette == b.Palette && seoEqual(a.SEO, b.SEO)
}

func seoEqual(a, b model.SEOSettings) bool {
	return a.Title == b.Title &&
		a.Description == b.Description &&
		a.OGImage == b.OGImage &&
		a.Favicon == b.Favicon &&
		slices.Equal(a.Keywords, b.Keywords)
}

// Equal reports whether two documents serialize identically.
func Equal(a, b Document) bool {
	if len(a.Components) != len(b.Components) || a.Palette != b.Palette || !seoEqual(a.SEO, b.SEO) {
		return false
	}
	for i := range a.Components {
		if !a.Components[i].Equal(b.Components[i]) {
			return false
		}
	}
	return true
}

// Validate checks structural invariants: every component has a non-empty
// id, ids are unique and every type is a known tag.
func Validate(d Document) error {
	seen := make(map[string]bool, len(d.Components))
	for i, r := range d.Components {
		if r.ID == "" {
			return errors.New(errors.ErrCodeInvalidDocument, "component at index %d has no id", i)
		}
		if seen[r.ID] {
			return errors.New(errors.ErrCodeInvalidDocument, "duplicate component id %q", r.ID)
		}
		seen[r.ID] = true
		if !r.Type.Known() {
			return errors.UnknownType(string(r.Type))
		}
	}
	return nil
}
