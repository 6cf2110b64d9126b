package style

import (
	"strings"
	"testing"

	"github.com/matzehuels/pagesmith/pkg/model"
)

func gallery(styles model.StyleOverrides) model.Record {
	r := model.NewRecord("g1", &model.Gallery{Mode: model.GalleryGrid, Columns: 3})
	r.Styles = styles
	return r
}

func TestResolvePrecedence(t *testing.T) {
	palette := model.DefaultPalette()
	palette.PrimaryColor = "#ff0000"

	tests := []struct {
		name         string
		styles       model.StyleOverrides
		typeDefaults model.StyleOverrides
		palette      model.DesignPalette
		want         string
	}{
		{"OverrideWins", model.StyleOverrides{model.PropPrimaryColor: "#00ff00"}, model.StyleOverrides{model.PropPrimaryColor: "#0000ff"}, palette, "#00ff00"},
		{"TypeDefault", nil, model.StyleOverrides{model.PropPrimaryColor: "#0000ff"}, palette, "#0000ff"},
		{"PaletteDerived", nil, nil, palette, "#ff0000"},
		{"ThemeReferenceOverride", model.StyleOverrides{model.PropPrimaryColor: ThemeTitle}, nil, palette, palette.TitleColor},
		{"Fallback", nil, nil, model.DesignPalette{}, "#2563eb"},
		{"UnknownThemeFallsThrough", model.StyleOverrides{model.PropPrimaryColor: "theme:nope"}, nil, palette, "#ff0000"},
		{"UnsafeFallsThrough", model.StyleOverrides{model.PropPrimaryColor: "red; background: url(x)"}, nil, palette, "#ff0000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(gallery(tt.styles), tt.palette, tt.typeDefaults)
			if got.PrimaryColor != tt.want {
				t.Errorf("PrimaryColor = %q, want %q", got.PrimaryColor, tt.want)
			}
		})
	}
}

func TestOverrideSurvivesPaletteChange(t *testing.T) {
	r := gallery(nil)
	p := model.DefaultPalette()
	p.PrimaryColor = "#ff0000"

	if got := Resolve(r, p, nil).PrimaryColor; got != "#ff0000" {
		t.Fatalf("before override: %q", got)
	}

	r.Styles = model.StyleOverrides{model.PropPrimaryColor: "#00ff00"}
	for _, c := range []string{"#ff0000", "#123456", "#abcdef"} {
		p.PrimaryColor = c
		if got := Resolve(r, p, nil).PrimaryColor; got != "#00ff00" {
			t.Errorf("palette %s: PrimaryColor = %q, want override", c, got)
		}
	}
}

func TestResolveCorners(t *testing.T) {
	p := model.DefaultPalette()

	t.Run("AggregateOnly", func(t *testing.T) {
		got := Resolve(gallery(model.StyleOverrides{model.PropBorderRadius: "6px"}), p, nil)
		if got.Corners != nil {
			t.Errorf("Corners = %+v, want nil", got.Corners)
		}
		if got.Radius() != "6px" {
			t.Errorf("Radius() = %q", got.Radius())
		}
	})

	t.Run("OneCornerSet", func(t *testing.T) {
		got := Resolve(gallery(model.StyleOverrides{
			model.PropBorderRadius:  "6px",
			model.PropRadiusTopLeft: "12px",
		}), p, nil)
		want := Corners{TopLeft: "12px", TopRight: "0", BottomRight: "0", BottomLeft: "0"}
		if got.Corners == nil || *got.Corners != want {
			t.Fatalf("Corners = %+v, want %+v", got.Corners, want)
		}
		if got.Radius() != "12px 0 0 0" {
			t.Errorf("Radius() = %q", got.Radius())
		}
		if !strings.Contains(got.CSS(), "border-radius: 12px 0 0 0;") {
			t.Errorf("CSS() = %q", got.CSS())
		}
	})

	t.Run("OverrideRadiusBeatsDefaultCorners", func(t *testing.T) {
		defaults := model.StyleOverrides{model.PropRadiusTopLeft: "20px"}
		got := Resolve(gallery(model.StyleOverrides{model.PropBorderRadius: "6px"}), p, defaults)
		if got.Corners != nil {
			t.Errorf("Corners = %+v, want nil", got.Corners)
		}
		if got.Radius() != "6px" {
			t.Errorf("Radius() = %q, want 6px", got.Radius())
		}

		got = Resolve(gallery(nil), p, defaults)
		if got.Corners == nil || got.Corners.TopLeft != "20px" {
			t.Errorf("without override Corners = %+v", got.Corners)
		}
	})

	t.Run("CornerThemeReference", func(t *testing.T) {
		got := Resolve(gallery(model.StyleOverrides{model.PropRadiusBottomRight: ThemeRadius}), p, nil)
		if got.Corners == nil || got.Corners.BottomRight != p.BorderRadius {
			t.Errorf("Corners = %+v", got.Corners)
		}
	})
}

func TestCSS(t *testing.T) {
	p := model.DefaultPalette()
	got := Resolve(gallery(model.StyleOverrides{
		model.PropPadding:     "1rem",
		model.PropBorderWidth: "1px",
		model.PropBorderColor: "#dddddd",
	}), p, model.StyleOverrides{model.PropTextAlign: "center"}).CSS()

	for _, want := range []string{
		"background-color: #ffffff;",
		"font-family: Inter, sans-serif;",
		"border-radius: 8px;",
		"border: 1px solid #dddddd;",
		"padding: 1rem;",
		"text-align: center;",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("CSS() = %q, missing %q", got, want)
		}
	}
	if strings.Contains(got, "margin") {
		t.Errorf("CSS() = %q, zero margin should be omitted", got)
	}
}

func TestPresets(t *testing.T) {
	names := PresetNames()
	if len(names) != 6 {
		t.Fatalf("PresetNames() = %v", names)
	}
	for _, name := range names {
		p, ok := Preset(name)
		if !ok {
			t.Errorf("Preset(%q) missing", name)
			continue
		}
		if p.PrimaryColor == "" || p.BackgroundColor == "" || p.FontFamily == "" {
			t.Errorf("Preset(%q) incomplete: %+v", name, p)
		}
	}
	if _, ok := Preset("neon"); ok {
		t.Error("Preset(neon) should not exist")
	}
}

func TestFontStack(t *testing.T) {
	if s, ok := FontStack("jetbrains mono"); !ok || !strings.Contains(s, "monospace") {
		t.Errorf("FontStack = %q, %v", s, ok)
	}
	if _, ok := FontStack("Comic Sans"); ok {
		t.Error("unexpected font")
	}
	fs := Fonts()
	fs[0].Name = "changed"
	if Fonts()[0].Name == "changed" {
		t.Error("Fonts() exposes internal slice")
	}
}
