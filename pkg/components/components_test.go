package components

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/matzehuels/pagesmith/pkg/errors"
	"github.com/matzehuels/pagesmith/pkg/model"
	"github.com/matzehuels/pagesmith/pkg/registry"
	"github.com/matzehuels/pagesmith/pkg/style"
	"github.com/matzehuels/pagesmith/pkg/view"
)

// renderCtx builds a context for rec and records updates into *got.
func renderCtx(t *testing.T, reg *registry.Registry, rec model.Record, mode registry.Mode, got *[]model.Record) registry.RenderContext {
	t.Helper()
	p := model.DefaultPalette()
	return registry.RenderContext{
		Record:   rec,
		Mode:     mode,
		Palette:  p,
		Style:    style.Resolve(rec, p, reg.StyleDefaults(rec.Type)),
		OnUpdate: func(next model.Record) { *got = append(*got, next) },
	}
}

func render(t *testing.T, reg *registry.Registry, rec model.Record, mode registry.Mode, got *[]model.Record) view.Node {
	t.Helper()
	r, err := reg.Get(rec.Type)
	if err != nil {
		t.Fatalf("Get(%s): %v", rec.Type, err)
	}
	return r(renderCtx(t, reg, rec, mode, got))
}

func TestDefaultRegistryCoversAllTypes(t *testing.T) {
	reg := DefaultRegistry()
	if got := len(reg.Types()); got != len(model.AllTypes) {
		t.Fatalf("registered %d types, want %d", got, len(model.AllTypes))
	}

	for _, typ := range model.AllTypes {
		t.Run(string(typ), func(t *testing.T) {
			rec, err := reg.DefaultsFor(typ, "c-"+string(typ))
			if err != nil {
				t.Fatalf("DefaultsFor: %v", err)
			}
			var updates []model.Record

			preview := render(t, reg, rec, registry.ModePreview, &updates)
			if n := len(view.Controls(preview)); n != 0 {
				t.Errorf("preview has %d controls", n)
			}
			html, err := view.RenderString(preview)
			if err != nil {
				t.Fatalf("RenderString: %v", err)
			}
			if !strings.Contains(html, `data-component-id="c-`+string(typ)+`"`) {
				t.Errorf("preview lacks component id: %s", html)
			}

			edit := render(t, reg, rec, registry.ModeEdit, &updates)
			if len(view.Controls(edit)) == 0 {
				t.Error("edit mode has no controls")
			}
			if len(updates) != 0 {
				t.Errorf("rendering called OnUpdate %d times", len(updates))
			}
		})
	}
}

func TestEmptyDataRendersPlaceholder(t *testing.T) {
	reg := DefaultRegistry()
	empties := []model.Payload{
		&model.Gallery{},
		&model.Experience{},
		&model.Projects{},
		&model.Reviews{},
		&model.Pricing{},
		&model.Services{},
		&model.Skills{},
		&model.Text{},
		&model.Header{},
		&model.Profile{},
		&model.Contact{},
		&model.Navigation{},
		&model.Footer{},
		&model.Embed{},
	}
	for _, p := range empties {
		t.Run(string(p.ComponentType()), func(t *testing.T) {
			var updates []model.Record
			n := render(t, reg, model.NewRecord("x", p), registry.ModePreview, &updates)
			html, err := view.RenderString(n)
			if err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(html, "ps-placeholder") {
				t.Errorf("no placeholder in %s", html)
			}
		})
	}
}

func TestControlsProduceCompleteRecords(t *testing.T) {
	reg := DefaultRegistry()
	rec := model.NewRecord("h1", &model.Header{Title: "Old", Subtitle: "Keep me"})
	rec.Extra = map[string]json.RawMessage{"future": json.RawMessage(`"x"`)}

	var updates []model.Record
	tree := render(t, reg, rec, registry.ModeEdit, &updates)
	if err := view.Dispatch(tree, "h1.title", "New"); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if len(updates) != 1 {
		t.Fatalf("updates = %d", len(updates))
	}
	next := updates[0]
	h, _ := model.PayloadAs[*model.Header](next)
	if h.Title != "New" || h.Subtitle != "Keep me" || next.ID != "h1" {
		t.Errorf("next = %+v", h)
	}
	if string(next.Extra["future"]) != `"x"` {
		t.Errorf("extra fields lost: %v", next.Extra)
	}
	if old, _ := model.PayloadAs[*model.Header](rec); old.Title != "Old" {
		t.Error("renderer mutated its input record")
	}

	c, ok := view.Find(tree, "h1.title")
	if !ok || c.Value != "Old" {
		t.Errorf("control value = %q, want current data", c.Value)
	}
}

func TestListEditing(t *testing.T) {
	reg := DefaultRegistry()
	rec := model.NewRecord("g", &model.Gallery{
		Images: []model.Image{{URL: "https://example.com/a.png"}, {URL: "https://example.com/b.png"}},
		Mode:   model.GalleryGrid,
	})
	orig, _ := model.PayloadAs[*model.Gallery](rec)

	t.Run("Add", func(t *testing.T) {
		var updates []model.Record
		tree := render(t, reg, rec, registry.ModeEdit, &updates)
		if err := view.Dispatch(tree, "g.images.add", "https://example.com/c.png"); err != nil {
			t.Fatalf("Dispatch: %v", err)
		}
		g, _ := model.PayloadAs[*model.Gallery](updates[0])
		if len(g.Images) != 3 || g.Images[2].URL != "https://example.com/c.png" {
			t.Errorf("images = %+v", g.Images)
		}
		if len(orig.Images) != 2 {
			t.Error("add mutated the original slice")
		}
	})

	t.Run("AddRequiresValue", func(t *testing.T) {
		var updates []model.Record
		tree := render(t, reg, rec, registry.ModeEdit, &updates)
		err := view.Dispatch(tree, "g.images.add", "  ")
		if !errors.Is(err, errors.ErrCodeValidation) {
			t.Errorf("error = %v, want validation failure", err)
		}
		if err := view.Dispatch(tree, "g.images.add", "javascript:alert(1)"); !errors.Is(err, errors.ErrCodeValidation) {
			t.Errorf("unsafe url error = %v", err)
		}
		if len(updates) != 0 {
			t.Errorf("OnUpdate called %d times on invalid add", len(updates))
		}
	})

	t.Run("Remove", func(t *testing.T) {
		var updates []model.Record
		tree := render(t, reg, rec, registry.ModeEdit, &updates)
		if err := view.Dispatch(tree, "g.images.0.remove", ""); err != nil {
			t.Fatalf("Dispatch: %v", err)
		}
		g, _ := model.PayloadAs[*model.Gallery](updates[0])
		if len(g.Images) != 1 || g.Images[0].URL != "https://example.com/b.png" {
			t.Errorf("images = %+v", g.Images)
		}
		if orig.Images[0].URL != "https://example.com/a.png" {
			t.Error("remove mutated the original slice")
		}
	})

	t.Run("EditInPlace", func(t *testing.T) {
		var updates []model.Record
		tree := render(t, reg, rec, registry.ModeEdit, &updates)
		if err := view.Dispatch(tree, "g.images.1.caption", "Sunset"); err != nil {
			t.Fatalf("Dispatch: %v", err)
		}
		g, _ := model.PayloadAs[*model.Gallery](updates[0])
		if g.Images[1].Caption != "Sunset" || orig.Images[1].Caption != "" {
			t.Errorf("caption edit: new %+v, orig %+v", g.Images[1], orig.Images[1])
		}
	})

	t.Run("NumberValidation", func(t *testing.T) {
		var updates []model.Record
		tree := render(t, reg, rec, registry.ModeEdit, &updates)
		for _, v := range []string{"0", "12", "three"} {
			if err := view.Dispatch(tree, "g.columns", v); !errors.Is(err, errors.ErrCodeValidation) {
				t.Errorf("columns=%s error = %v", v, err)
			}
		}
		if err := view.Dispatch(tree, "g.mode", "slideshow"); !errors.Is(err, errors.ErrCodeValidation) {
			t.Errorf("mode error = %v", err)
		}
		if len(updates) != 0 {
			t.Errorf("invalid edits produced %d updates", len(updates))
		}
	})
}

func TestStyleControls(t *testing.T) {
	reg := DefaultRegistry()
	rec := model.NewRecord("t", &model.Text{Content: "hi"})

	var updates []model.Record
	tree := render(t, reg, rec, registry.ModeEdit, &updates)
	if err := view.Dispatch(tree, "t.styles.primaryColor", "#00ff00"); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if updates[0].Styles[model.PropPrimaryColor] != "#00ff00" {
		t.Errorf("Styles = %v", updates[0].Styles)
	}
	if rec.Styles != nil {
		t.Error("style control mutated input record")
	}
	if err := view.Dispatch(tree, "t.styles.primaryColor", "red;}"); !errors.Is(err, errors.ErrCodeValidation) {
		t.Errorf("invalid color error = %v", err)
	}

	withOverride := updates[0]
	updates = nil
	tree = render(t, reg, withOverride, registry.ModeEdit, &updates)
	if err := view.Dispatch(tree, "t.styles.primaryColor", ""); err != nil {
		t.Fatal(err)
	}
	if updates[0].Styles != nil {
		t.Errorf("clearing the only override should leave no styles, got %v", updates[0].Styles)
	}
}

func TestGalleryModes(t *testing.T) {
	reg := DefaultRegistry()
	images := []model.Image{{URL: "https://example.com/a.png"}, {URL: "https://example.com/b.png"}, {URL: "https://example.com/c.png"}}

	tests := []struct {
		mode string
		want []string
	}{
		{model.GalleryGrid, []string{"ps-gallery-grid", "repeat(3, 1fr)"}},
		{model.GalleryCarousel, []string{"ps-carousel", `data-item-count="3"`, `data-index="1" hidden=""`}},
		{model.GalleryMarquee, []string{"@keyframes ps-marquee-g", `aria-hidden="true"`}},
	}
	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			rec := model.NewRecord("g", &model.Gallery{Images: images, Mode: tt.mode, Columns: 3})
			var updates []model.Record
			html, err := view.RenderString(render(t, reg, rec, registry.ModePreview, &updates))
			if err != nil {
				t.Fatal(err)
			}
			for _, w := range tt.want {
				if !strings.Contains(html, w) {
					t.Errorf("missing %q in %s", w, html)
				}
			}
		})
	}

	rec := model.NewRecord("g", &model.Gallery{Images: images, Mode: model.GalleryMarquee})
	var updates []model.Record
	html, _ := view.RenderString(render(t, reg, rec, registry.ModePreview, &updates))
	if n := strings.Count(html, "<img"); n != 6 {
		t.Errorf("marquee rendered %d images, want two copies of 3", n)
	}
}

func TestEmbedIsSandboxed(t *testing.T) {
	reg := DefaultRegistry()
	rec := model.NewRecord("e", &model.Embed{HTML: `<p onclick="x()">Hi</p><script>steal()</script>`, Height: "120px"})

	var notices []error
	ctx := renderCtx(t, reg, rec, registry.ModePreview, new([]model.Record))
	ctx.Notice = func(err error) { notices = append(notices, err) }
	r, _ := reg.Get(model.TypeEmbed)
	tree := r(ctx)

	var sandbox *view.Sandbox
	view.Walk(tree, func(n view.Node) bool {
		if s, ok := n.(*view.Sandbox); ok {
			sandbox = s
		}
		return true
	})
	if sandbox == nil {
		t.Fatal("embed did not render a sandbox")
	}
	if strings.Contains(sandbox.Document, "script") || strings.Contains(sandbox.Document, "onclick") {
		t.Errorf("unsafe content survived: %s", sandbox.Document)
	}
	if !strings.Contains(sandbox.Document, "Hi") {
		t.Errorf("content lost: %s", sandbox.Document)
	}
	if len(notices) != 1 || !errors.Is(notices[0], errors.ErrCodeUnsafeContent) {
		t.Errorf("notices = %v", notices)
	}

	html, _ := view.RenderString(tree)
	if strings.Contains(html, "<script") || !strings.Contains(html, `sandbox=""`) {
		t.Errorf("page markup = %s", html)
	}
}

func TestEmbedHeightChecked(t *testing.T) {
	reg := DefaultRegistry()
	rec := model.NewRecord("e", &model.Embed{HTML: `<p>Hi</p>`, Height: `10px" onload="x()`})
	var updates []model.Record
	html, _ := view.RenderString(render(t, reg, rec, registry.ModePreview, &updates))
	if !strings.Contains(html, "height: 300px;") || strings.Contains(html, "onload") {
		t.Errorf("embed markup = %s", html)
	}
}

func TestSafeLinks(t *testing.T) {
	reg := DefaultRegistry()
	rec := model.NewRecord("n", &model.Navigation{
		Brand:     "X",
		MenuItems: []model.MenuItem{{Label: "Bad", Href: "javascript:alert(1)"}, {Label: "Good", Href: "#about"}},
	})
	var updates []model.Record
	html, _ := view.RenderString(render(t, reg, rec, registry.ModePreview, &updates))
	if strings.Contains(html, "javascript:") {
		t.Errorf("unsafe href rendered: %s", html)
	}
	if !strings.Contains(html, `href="#about"`) {
		t.Errorf("safe href missing: %s", html)
	}
}
