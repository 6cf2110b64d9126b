package model

import (
	"encoding/json"
	"time"
)

// Type is a component type tag.
type Type string

// Component type tags. The set is closed; see NewPayload.
const (
	TypeHeader     Type = "header"
	TypeText       Type = "text"
	TypeProfile    Type = "profile"
	TypeGallery    Type = "gallery"
	TypeExperience Type = "experience"
	TypeProjects   Type = "projects"
	TypeServices   Type = "services"
	TypeReviews    Type = "reviews"
	TypePricing    Type = "pricing"
	TypeNavigation Type = "navigation"
	TypeSkills     Type = "skills"
	TypeContact    Type = "contact"
	TypeSpacer     Type = "spacer"
	TypeDivider    Type = "divider"
	TypeEmbed      Type = "embed"
	TypeFooter     Type = "footer"
)

// AllTypes lists every component type in catalogue order.
var AllTypes = []Type{
	TypeNavigation,
	TypeHeader,
	TypeText,
	TypeProfile,
	TypeGallery,
	TypeExperience,
	TypeProjects,
	TypeSkills,
	TypeServices,
	TypeReviews,
	TypePricing,
	TypeContact,
	TypeSpacer,
	TypeDivider,
	TypeEmbed,
	TypeFooter,
}

// Known reports whether t is one of the built-in tags.
func (t Type) Known() bool {
	_, err := NewPayload(t)
	return err == nil
}

// Payload is the type-specific part of a record.
type Payload interface {
	ComponentType() Type
}

// Record is one entry in a page's ordered component list.
type Record struct {
	ID      string
	Type    Type
	Payload Payload
	Styles  StyleOverrides
	// Extra holds JSON fields the payload does not declare.
	Extra map[string]json.RawMessage
}

// StyleOverrides are per-instance presentational overrides keyed by style
// property (see the Prop constants). Values may be literal CSS values or
// theme references such as "theme:primary". Unknown keys are preserved.
type StyleOverrides map[string]string

// Style property keys understood by the style resolver.
const (
	PropPrimaryColor      = "primaryColor"
	PropBackgroundColor   = "backgroundColor"
	PropTitleColor        = "titleColor"
	PropDescriptionColor  = "descriptionColor"
	PropFontFamily        = "fontFamily"
	PropBorderRadius      = "borderRadius"
	PropBorderColor       = "borderColor"
	PropBorderWidth       = "borderWidth"
	PropPadding           = "padding"
	PropMargin            = "margin"
	PropTextAlign         = "textAlign"
	PropRadiusTopLeft     = "borderTopLeftRadius"
	PropRadiusTopRight    = "borderTopRightRadius"
	PropRadiusBottomRight = "borderBottomRightRadius"
	PropRadiusBottomLeft  = "borderBottomLeftRadius"
)

// Clone returns an independent copy of the overrides.
func (s StyleOverrides) Clone() StyleOverrides {
	if len(s) == 0 {
		return nil
	}
	out := make(StyleOverrides, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// DesignPalette is the page-wide theme. Components derive their default
// presentation from it unless an instance override says otherwise.
type DesignPalette struct {
	PrimaryColor     string `json:"primaryColor" bson:"primaryColor" toml:"primary_color" yaml:"primaryColor"`
	BackgroundColor  string `json:"backgroundColor" bson:"backgroundColor" toml:"background_color" yaml:"backgroundColor"`
	TitleColor       string `json:"titleColor" bson:"titleColor" toml:"title_color" yaml:"titleColor"`
	DescriptionColor string `json:"descriptionColor" bson:"descriptionColor" toml:"description_color" yaml:"descriptionColor"`
	FontFamily       string `json:"fontFamily" bson:"fontFamily" toml:"font_family" yaml:"fontFamily"`
	BorderRadius     string `json:"borderRadius" bson:"borderRadius" toml:"border_radius" yaml:"borderRadius"`
}

// DefaultPalette is the palette new documents start with.
func DefaultPalette() DesignPalette {
	return DesignPalette{
		PrimaryColor:     "#2563eb",
		BackgroundColor:  "#ffffff",
		TitleColor:       "#111827",
		DescriptionColor: "#4b5563",
		FontFamily:       "Inter, sans-serif",
		BorderRadius:     "8px",
	}
}

// SEOSettings is page-level search metadata.
type SEOSettings struct {
	Title       string   `json:"title,omitempty" bson:"title,omitempty" yaml:"title,omitempty"`
	Description string   `json:"description,omitempty" bson:"description,omitempty" yaml:"description,omitempty"`
	Keywords    []string `json:"keywords,omitempty" bson:"keywords,omitempty" yaml:"keywords,omitempty"`
	OGImage     string   `json:"ogImage,omitempty" bson:"ogImage,omitempty" yaml:"ogImage,omitempty"`
	Favicon     string   `json:"favicon,omitempty" bson:"favicon,omitempty" yaml:"favicon,omitempty"`
}

// Status is a website's publication state.
type Status string

// Website statuses.
const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
)

// WebsiteRecord is what the persistence service hands to the editor.
type WebsiteRecord struct {
	ID            string        `json:"id"`
	Title         string        `json:"title"`
	Slug          string        `json:"slug"`
	Domain        string        `json:"domain,omitempty"`
	Status        Status        `json:"status"`
	Components    []Record      `json:"components"`
	DesignPalette DesignPalette `json:"designPalette"`
	SEOSettings   SEOSettings   `json:"seoSettings"`
	SchemaVersion int           `json:"schemaVersion"`
	UpdatedAt     time.Time     `json:"updatedAt,omitempty"`
}
