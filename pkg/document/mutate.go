package document

import (
	"slices"

	"github.com/matzehuels/pagesmith/pkg/errors"
	"github.com/matzehuels/pagesmith/pkg/idgen"
	"github.com/matzehuels/pagesmith/pkg/model"
)

// Factory creates default records. *registry.Registry implements it.
type Factory interface {
	DefaultsFor(t model.Type, id string) (model.Record, error)
}

// with returns a copy of d carrying components.
func (d Document) with(components []model.Record) Document {
	d.Components = components
	return d
}

// freshID returns a generated id not already present in d.
func freshID(d Document) string {
	for {
		id := idgen.New()
		if d.Index(id) < 0 {
			return id
		}
	}
}

// Insert creates a component of type t from f's defaults and inserts it at
// index at. A negative index, or one past the end, appends.
func Insert(d Document, f Factory, t model.Type, at int) (Document, model.Record, error) {
	rec, err := f.DefaultsFor(t, freshID(d))
	if err != nil {
		return d, model.Record{}, err
	}
	return InsertRecord(d, rec, at)
}

// InsertRecord inserts an existing record at index at (clamped as in
// Insert). The record's id must not already be present.
func InsertRecord(d Document, rec model.Record, at int) (Document, model.Record, error) {
	if rec.ID == "" {
		return d, model.Record{}, errors.Validation("id", "component id is required")
	}
	if d.Index(rec.ID) >= 0 {
		return d, model.Record{}, errors.Validation("id", "component id %q already exists", rec.ID)
	}
	if at < 0 || at > len(d.Components) {
		at = len(d.Components)
	}
	return d.with(slices.Insert(slices.Clone(d.Components), at, rec)), rec, nil
}

// Duplicate deep-copies the component id under a fresh id and inserts the
// copy right after the original.
func Duplicate(d Document, id string) (Document, model.Record, error) {
	i := d.Index(id)
	if i < 0 {
		return d, model.Record{}, errors.NotFound(id)
	}
	cp := d.Components[i].WithID(freshID(d))
	return d.with(slices.Insert(slices.Clone(d.Components), i+1, cp)), cp, nil
}

// Remove deletes the component id. Removing a missing id returns d
// unchanged with NOT_FOUND, so removal is idempotent.
func Remove(d Document, id string) (Document, error) {
	i := d.Index(id)
	if i < 0 {
		return d, errors.NotFound(id)
	}
	return d.with(slices.Delete(slices.Clone(d.Components), i, i+1)), nil
}

// Update shallow-merges fields into the component id at the JSON field
// level. The id and type keys are ignored; a nil value removes a field.
func Update(d Document, id string, fields map[string]any) (Document, error) {
	i := d.Index(id)
	if i < 0 {
		return d, errors.NotFound(id)
	}
	next, err := d.Components[i].Merge(fields)
	if err != nil {
		return d, err
	}
	out := slices.Clone(d.Components)
	out[i] = next
	return d.with(out), nil
}

// Replace swaps in a complete record with the same id. It is the path used
// by renderer update callbacks; the last replace for an id wins.
func Replace(d Document, next model.Record) (Document, error) {
	i := d.Index(next.ID)
	if i < 0 {
		return d, errors.NotFound(next.ID)
	}
	if next.Type != d.Components[i].Type {
		return d, errors.Validation("type", "component %q cannot change type from %s to %s", next.ID, d.Components[i].Type, next.Type)
	}
	out := slices.Clone(d.Components)
	out[i] = next.Clone()
	return d.with(out), nil
}

// Move moves the component at index from to index to, shifting the
// components in between.
func Move(d Document, from, to int) (Document, error) {
	n := len(d.Components)
	if from < 0 || from >= n || to < 0 || to >= n {
		return d, errors.New(errors.ErrCodeInvalidInput, "move %d -> %d out of range (0..%d)", from, to, n-1)
	}
	if from == to {
		return d, nil
	}
	return d.with(ArrayMove(d.Components, from, to)), nil
}

// MoveUp swaps id with its predecessor. The first component stays put.
func MoveUp(d Document, id string) (Document, error) {
	i := d.Index(id)
	if i < 0 {
		return d, errors.NotFound(id)
	}
	if i == 0 {
		return d, nil
	}
	return Move(d, i, i-1)
}

// MoveDown swaps id with its successor. The last component stays put.
func MoveDown(d Document, id string) (Document, error) {
	i := d.Index(id)
	if i < 0 {
		return d, errors.NotFound(id)
	}
	if i == len(d.Components)-1 {
		return d, nil
	}
	return Move(d, i, i+1)
}

// Reorder arranges components in the order of ids, which must be a
// permutation of the current ids.
func Reorder(d Document, ids []string) (Document, error) {
	if len(ids) != len(d.Components) {
		return d, errors.Validation("order", "reorder needs %d ids, got %d", len(d.Components), len(ids))
	}
	pos := make(map[string]int, len(d.Components))
	for i, r := range d.Components {
		pos[r.ID] = i
	}
	out := make([]model.Record, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	unchanged := true
	for i, id := range ids {
		j, ok := pos[id]
		if !ok {
			return d, errors.Validation("order", "unknown component id %q", id)
		}
		if seen[id] {
			return d, errors.Validation("order", "component id %q listed twice", id)
		}
		seen[id] = true
		unchanged = unchanged && i == j
		out = append(out, d.Components[j])
	}
	if unchanged {
		return d, nil
	}
	return d.with(out), nil
}

// SetPalette replaces the page palette. Component data is not touched.
func SetPalette(d Document, p model.DesignPalette) Document {
	d.Palette = p
	return d
}

// SetSEO replaces the page SEO settings.
func SetSEO(d Document, s model.SEOSettings) Document {
	s.Keywords = slices.Clone(s.Keywords)
	d.SEO = s
	return d
}

// ArrayMove returns a new slice with the element at from moved to to.
func ArrayMove[E any](s []E, from, to int) []E {
	out := slices.Clone(s)
	if from < 0 || from >= len(s) || to < 0 || to >= len(s) || from == to {
		return out
	}
	v := out[from]
	out = slices.Delete(out, from, from+1)
	return slices.Insert(out, to, v)
}
