// Package templates is the static catalog of starter websites.
//
// Templates are YAML files embedded in the binary. Loading a template
// returns deep copies with freshly minted component ids, so two documents
// created from the same template never share an id.
package templates

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/pagesmith/pkg/errors"
	"github.com/matzehuels/pagesmith/pkg/idgen"
	"github.com/matzehuels/pagesmith/pkg/model"
)

//go:embed catalog/*.yaml
var builtin embed.FS

// Info describes a template in listings.
type Info struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Components  int    `json:"components"`
}

// Template is a loaded template: a ready-to-edit document.
type Template struct {
	Info
	Palette    model.DesignPalette
	SEO        model.SEOSettings
	Components []model.Record
}

// file is the YAML layout of a template.
type file struct {
	ID          string              `yaml:"id"`
	Name        string              `yaml:"name"`
	Description string              `yaml:"description"`
	Palette     model.DesignPalette `yaml:"palette"`
	SEO         model.SEOSettings   `yaml:"seo"`
	Components  []map[string]any    `yaml:"components"`
}

// Catalog holds parsed templates. It is safe for concurrent use.
type Catalog struct {
	templates map[string]Template
	order     []string
}

// Parse reads every *.yaml file in fsys.
func Parse(fsys fs.FS) (*Catalog, error) {
	names, err := fs.Glob(fsys, "*.yaml")
	if err != nil {
		return nil, err
	}
	c := &Catalog{templates: make(map[string]Template, len(names))}
	for _, name := range names {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, err
		}
		t, err := parse(data)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidTemplate, err, "template %s", path.Base(name))
		}
		if _, dup := c.templates[t.ID]; dup {
			return nil, errors.New(errors.ErrCodeInvalidTemplate, "duplicate template id %q", t.ID)
		}
		c.templates[t.ID] = t
		c.order = append(c.order, t.ID)
	}
	sort.Strings(c.order)
	return c, nil
}

func parse(data []byte) (Template, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Template{}, err
	}
	if f.ID == "" {
		return Template{}, fmt.Errorf("missing id")
	}
	t := Template{
		Info:    Info{ID: f.ID, Name: f.Name, Description: f.Description, Components: len(f.Components)},
		Palette: f.Palette,
		SEO:     f.SEO,
	}
	for i, raw := range f.Components {
		if raw == nil {
			return Template{}, fmt.Errorf("component %d is empty", i)
		}
		// Template components carry no ids; Load mints real ones.
		raw["id"] = fmt.Sprintf("%s-%d", f.ID, i)
		data, err := json.Marshal(raw)
		if err != nil {
			return Template{}, fmt.Errorf("component %d: %w", i, err)
		}
		var rec model.Record
		if err := json.Unmarshal(data, &rec); err != nil {
			return Template{}, fmt.Errorf("component %d: %w", i, err)
		}
		if !rec.Type.Known() {
			return Template{}, fmt.Errorf("component %d: %w", i, errors.UnknownType(string(rec.Type)))
		}
		t.Components = append(t.Components, rec)
	}
	return t, nil
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default returns the catalog of embedded templates.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		sub, err := fs.Sub(builtin, "catalog")
		if err != nil {
			defaultErr = err
			return
		}
		defaultCatalog, defaultErr = Parse(sub)
	})
	return defaultCatalog, defaultErr
}

// List returns template summaries sorted by id.
func (c *Catalog) List() []Info {
	out := make([]Info, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.templates[id].Info)
	}
	return out
}

// Load returns a deep copy of template id with fresh component ids.
func (c *Catalog) Load(id string) (Template, error) {
	t, ok := c.templates[id]
	if !ok {
		return Template{}, errors.New(errors.ErrCodeNotFound, "template %q not found", id)
	}
	out := t
	out.SEO.Keywords = append([]string(nil), t.SEO.Keywords...)
	out.Components = make([]model.Record, len(t.Components))
	for i, rec := range t.Components {
		out.Components[i] = rec.WithID(idgen.New())
	}
	return out, nil
}
