package style

import (
	"strings"

	"github.com/matzehuels/pagesmith/pkg/model"
)

// ThemePrefix marks a value as a palette reference.
const ThemePrefix = "theme:"

// Theme reference keys.
const (
	ThemePrimary     = "theme:primary"
	ThemeBackground  = "theme:background"
	ThemeTitle       = "theme:title"
	ThemeDescription = "theme:description"
	ThemeFont        = "theme:font"
	ThemeRadius      = "theme:radius"
)

// Resolved is the final style of one component instance. All values are
// literal CSS values; no theme references remain.
type Resolved struct {
	PrimaryColor     string
	BackgroundColor  string
	TitleColor       string
	DescriptionColor string
	FontFamily       string
	BorderRadius     string
	BorderColor      string
	BorderWidth      string
	Padding          string
	Margin           string
	TextAlign        string

	// Corners is set when the per-corner radius path applies.
	Corners *Corners
}

// Corners holds independently resolved corner radii.
type Corners struct {
	TopLeft     string
	TopRight    string
	BottomRight string
	BottomLeft  string
}

// resolvedProps lists the scalar properties in CSS output order.
var resolvedProps = []string{
	model.PropPrimaryColor,
	model.PropBackgroundColor,
	model.PropTitleColor,
	model.PropDescriptionColor,
	model.PropFontFamily,
	model.PropBorderRadius,
	model.PropBorderColor,
	model.PropBorderWidth,
	model.PropPadding,
	model.PropMargin,
	model.PropTextAlign,
}

var cornerProps = []string{
	model.PropRadiusTopLeft,
	model.PropRadiusTopRight,
	model.PropRadiusBottomRight,
	model.PropRadiusBottomLeft,
}

// paletteDerived maps properties to the palette field they inherit.
var paletteDerived = map[string]string{
	model.PropPrimaryColor:     ThemePrimary,
	model.PropBackgroundColor:  ThemeBackground,
	model.PropTitleColor:       ThemeTitle,
	model.PropDescriptionColor: ThemeDescription,
	model.PropFontFamily:       ThemeFont,
	model.PropBorderRadius:     ThemeRadius,
}

// fallback values used when nothing else resolves.
var fallback = map[string]string{
	model.PropPrimaryColor:     "#2563eb",
	model.PropBackgroundColor:  "transparent",
	model.PropTitleColor:       "#111827",
	model.PropDescriptionColor: "#4b5563",
	model.PropFontFamily:       "system-ui, sans-serif",
	model.PropBorderRadius:     "0",
	model.PropBorderColor:      "transparent",
	model.PropBorderWidth:      "0",
	model.PropPadding:          "0",
	model.PropMargin:           "0",
	model.PropTextAlign:        "left",
}

// Fallback returns the hardcoded fallback for prop.
func Fallback(prop string) string {
	return fallback[prop]
}

// Resolve computes the final style of r under palette p. typeDefaults are
// the component type's defaults and may be nil.
func Resolve(r model.Record, p model.DesignPalette, typeDefaults model.StyleOverrides) Resolved {
	values := make(map[string]string, len(resolvedProps))
	for _, prop := range resolvedProps {
		values[prop] = resolveProp(prop, r.Styles, typeDefaults, p)
	}

	out := Resolved{
		PrimaryColor:     values[model.PropPrimaryColor],
		BackgroundColor:  values[model.PropBackgroundColor],
		TitleColor:       values[model.PropTitleColor],
		DescriptionColor: values[model.PropDescriptionColor],
		FontFamily:       values[model.PropFontFamily],
		BorderRadius:     values[model.PropBorderRadius],
		BorderColor:      values[model.PropBorderColor],
		BorderWidth:      values[model.PropBorderWidth],
		Padding:          values[model.PropPadding],
		Margin:           values[model.PropMargin],
		TextAlign:        values[model.PropTextAlign],
	}

	// Type default corners only apply while the instance leaves its
	// aggregate radius alone.
	layers := []model.StyleOverrides{r.Styles}
	if _, ok := deref(r.Styles[model.PropBorderRadius], p); !ok {
		layers = append(layers, typeDefaults)
	}
	if hasCorner(r.Styles) || (len(layers) > 1 && hasCorner(typeDefaults)) {
		c := make([]string, len(cornerProps))
		for i, prop := range cornerProps {
			c[i] = "0"
			for _, layer := range layers {
				if v, ok := deref(layer[prop], p); ok {
					c[i] = v
					break
				}
			}
		}
		out.Corners = &Corners{TopLeft: c[0], TopRight: c[1], BottomRight: c[2], BottomLeft: c[3]}
	}
	return out
}

func resolveProp(prop string, override, typeDefaults model.StyleOverrides, p model.DesignPalette) string {
	if v, ok := deref(override[prop], p); ok {
		return v
	}
	if v, ok := deref(typeDefaults[prop], p); ok {
		return v
	}
	if v, ok := deref(paletteDerived[prop], p); ok {
		return v
	}
	return fallback[prop]
}

func hasCorner(s model.StyleOverrides) bool {
	for _, prop := range cornerProps {
		if s[prop] != "" {
			return true
		}
	}
	return false
}

// deref turns a candidate value into a literal. Empty values, unknown or
// unset theme references and values that could escape a declaration are
// reported as unusable so the next layer applies.
func deref(v string, p model.DesignPalette) (string, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", false
	}
	if strings.HasPrefix(v, ThemePrefix) {
		lit := Theme(v, p)
		if lit == "" || !Safe(lit) {
			return "", false
		}
		return lit, true
	}
	if !Safe(v) {
		return "", false
	}
	return v, true
}

// Theme returns the palette value a theme reference points to, or "" when
// ref is not a known reference.
func Theme(ref string, p model.DesignPalette) string {
	switch ref {
	case ThemePrimary:
		return p.PrimaryColor
	case ThemeBackground:
		return p.BackgroundColor
	case ThemeTitle:
		return p.TitleColor
	case ThemeDescription:
		return p.DescriptionColor
	case ThemeFont:
		return p.FontFamily
	case ThemeRadius:
		return p.BorderRadius
	}
	return ""
}

// Safe reports whether v can be placed inside an inline style declaration
// without terminating it or loading external resources.
func Safe(v string) bool {
	if strings.ContainsAny(v, ";{}<>\\") {
		return false
	}
	lower := strings.ToLower(v)
	return !strings.Contains(lower, "url(") && !strings.Contains(lower, "expression(")
}

// Radius returns the effective border-radius value, expanding corners when
// the per-corner path applies.
func (r Resolved) Radius() string {
	if r.Corners == nil {
		return r.BorderRadius
	}
	c := r.Corners
	return c.TopLeft + " " + c.TopRight + " " + c.BottomRight + " " + c.BottomLeft
}

// CSS renders the container declarations as an inline style string.
// Defaults that produce no visual effect are omitted.
func (r Resolved) CSS() string {
	var b strings.Builder
	decl := func(name, value string) {
		if value == "" {
			return
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(name)
		b.WriteString(": ")
		b.WriteString(value)
		b.WriteByte(';')
	}

	if r.BackgroundColor != "transparent" {
		decl("background-color", r.BackgroundColor)
	}
	decl("color", r.DescriptionColor)
	decl("font-family", r.FontFamily)
	if radius := r.Radius(); radius != "0" {
		decl("border-radius", radius)
	}
	if r.BorderWidth != "0" && r.BorderWidth != "" {
		decl("border", r.BorderWidth+" solid "+r.BorderColor)
	}
	if r.Padding != "0" {
		decl("padding", r.Padding)
	}
	if r.Margin != "0" {
		decl("margin", r.Margin)
	}
	if r.TextAlign != "left" {
		decl("text-align", r.TextAlign)
	}
	return b.String()
}

// Color returns an inline declaration for a text color.
func Color(value string) string {
	if value == "" {
		return ""
	}
	return "color: " + value + ";"
}

// Accent returns the declarations for a filled accent element such as a
// button or an active indicator.
func (r Resolved) Accent() string {
	return "background-color: " + r.PrimaryColor + "; color: #ffffff; border-radius: " + r.Radius() + ";"
}
