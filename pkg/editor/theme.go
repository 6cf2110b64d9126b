package editor

import (
	"slices"

	"github.com/matzehuels/pagesmith/pkg/document"
	"github.com/matzehuels/pagesmith/pkg/errors"
	"github.com/matzehuels/pagesmith/pkg/model"
	"github.com/matzehuels/pagesmith/pkg/style"
)

// Palette field names accepted by UpdatePalette.
const (
	PalettePrimary     = "primaryColor"
	PaletteBackground  = "backgroundColor"
	PaletteTitle       = "titleColor"
	PaletteDescription = "descriptionColor"
	PaletteFont        = "fontFamily"
	PaletteRadius      = "borderRadius"
)

// PaletteFields lists the palette field names in display order.
var PaletteFields = []string{
	PalettePrimary, PaletteBackground, PaletteTitle, PaletteDescription, PaletteFont, PaletteRadius,
}

// Theme changes are not recorded in the component history; they mark the
// session dirty like any other change.

// SetPalette replaces the whole palette after validating it.
func (s *Session) SetPalette(p model.DesignPalette) error {
	if err := ValidatePalette(p); err != nil {
		return err
	}
	s.setTheme(func(d document.Document) document.Document { return document.SetPalette(d, p) })
	return nil
}

// UpdatePalette sets individual palette fields. The font field accepts a
// catalogue font name or a raw font stack.
func (s *Session) UpdatePalette(fields map[string]string) error {
	s.mu.Lock()
	p := s.doc.Palette
	s.mu.Unlock()

	for k, v := range fields {
		switch k {
		case PalettePrimary:
			p.PrimaryColor = v
		case PaletteBackground:
			p.BackgroundColor = v
		case PaletteTitle:
			p.TitleColor = v
		case PaletteDescription:
			p.DescriptionColor = v
		case PaletteFont:
			if stack, ok := style.FontStack(v); ok {
				v = stack
			}
			p.FontFamily = v
		case PaletteRadius:
			p.BorderRadius = v
		default:
			return errors.Validation(k, "unknown palette field %q", k)
		}
	}
	return s.SetPalette(p)
}

// ApplyPreset replaces the palette with a named preset.
func (s *Session) ApplyPreset(name string) error {
	p, ok := style.Preset(name)
	if !ok {
		return errors.New(errors.ErrCodeInvalidInput, "unknown palette preset %q", name)
	}
	return s.SetPalette(p)
}

// SetFont sets the palette font from the font catalogue.
func (s *Session) SetFont(name string) error {
	stack, ok := style.FontStack(name)
	if !ok {
		return errors.New(errors.ErrCodeInvalidInput, "unknown font %q", name)
	}
	return s.UpdatePalette(map[string]string{PaletteFont: stack})
}

// SetRadius sets the palette corner radius.
func (s *Session) SetRadius(radius string) error {
	return s.UpdatePalette(map[string]string{PaletteRadius: radius})
}

// SetSEO replaces the page search metadata.
func (s *Session) SetSEO(seo model.SEOSettings) error {
	if seo.OGImage != "" {
		if err := errors.ValidateURL(seo.OGImage); err != nil {
			return errors.Validation("ogImage", "%s", errors.UserMessage(err))
		}
	}
	seo.Keywords = slices.Clone(seo.Keywords)
	s.setTheme(func(d document.Document) document.Document { return document.SetSEO(d, seo) })
	return nil
}

func (s *Session) setTheme(fn func(d document.Document) document.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := fn(s.doc)
	if document.Same(s.doc, next) {
		return
	}
	s.commit(next, false)
}

// SetTitle renames the website.
func (s *Session) SetTitle(title string) error {
	if err := errors.Required("title", title); err != nil {
		return err
	}
	s.setMeta(func(m *Meta) { m.Title = title })
	return nil
}

// SetSlug changes the published slug.
func (s *Session) SetSlug(slug string) error {
	if err := errors.ValidateSlug(slug); err != nil {
		return err
	}
	s.setMeta(func(m *Meta) { m.Slug = slug })
	return nil
}

// SetStatus changes the publication state.
func (s *Session) SetStatus(status model.Status) error {
	if status != model.StatusDraft && status != model.StatusPublished {
		return errors.New(errors.ErrCodeInvalidInput, "invalid status %q", status)
	}
	s.setMeta(func(m *Meta) { m.Status = status })
	return nil
}

func (s *Session) setMeta(fn func(m *Meta)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	before := s.meta
	fn(&s.meta)
	if s.meta != before {
		s.dirty = true
		s.version++
	}
}

// ValidatePalette checks every palette color and the radius.
func ValidatePalette(p model.DesignPalette) error {
	colors := map[string]string{
		PalettePrimary:     p.PrimaryColor,
		PaletteBackground:  p.BackgroundColor,
		PaletteTitle:       p.TitleColor,
		PaletteDescription: p.DescriptionColor,
	}
	for _, field := range PaletteFields[:4] {
		if err := errors.ValidateColor(colors[field]); err != nil {
			return errors.Validation(field, "%s", errors.UserMessage(err))
		}
	}
	if p.FontFamily == "" || !style.Safe(p.FontFamily) {
		return errors.Validation(PaletteFont, "invalid font family %q", p.FontFamily)
	}
	if err := errors.ValidateLength(p.BorderRadius); err != nil {
		return errors.Validation(PaletteRadius, "%s", errors.UserMessage(err))
	}
	return nil
}
