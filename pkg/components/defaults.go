package components

import (
	"github.com/matzehuels/pagesmith/pkg/model"
	"github.com/matzehuels/pagesmith/pkg/registry"
	"github.com/matzehuels/pagesmith/pkg/style"
)

// DefaultRegistry returns a registry with every built-in component type.
func DefaultRegistry() *registry.Registry {
	reg := registry.New()
	RegisterDefaults(reg)
	return reg
}

// RegisterDefaults adds the built-in component types to reg, in catalogue
// order.
func RegisterDefaults(reg *registry.Registry) {
	if reg == nil {
		return
	}
	for _, t := range model.AllTypes {
		reg.MustRegister(t, Entry(t))
	}
}

// Entry returns the built-in catalogue entry for t. It panics for tags
// outside the closed set.
func Entry(t model.Type) registry.Entry {
	switch t {
	case model.TypeNavigation:
		return registry.Entry{
			DisplayName: "Navigation",
			Description: "Menu bar with brand, links and a call to action",
			Category:    registry.CategoryLayout,
			Renderer:    renderNavigation,
			Defaults: func() model.Payload {
				return &model.Navigation{
					Brand: "My Site",
					MenuItems: []model.MenuItem{
						{Label: "About", Href: "#about"},
						{Label: "Work", Href: "#work"},
						{Label: "Contact", Href: "#contact"},
					},
				}
			},
			StyleDefaults: model.StyleOverrides{
				model.PropBackgroundColor: style.ThemeBackground,
				model.PropPadding:         "1rem",
			},
		}
	case model.TypeHeader:
		return registry.Entry{
			DisplayName: "Header",
			Description: "Hero section with title, subtitle and button",
			Category:    registry.CategoryLayout,
			Renderer:    renderHeader,
			Defaults: func() model.Payload {
				return &model.Header{Title: "Welcome", Subtitle: "A short line about what you do", Alignment: "center"}
			},
			StyleDefaults: model.StyleOverrides{
				model.PropPadding:   "4rem",
				model.PropTextAlign: "center",
			},
		}
	case model.TypeText:
		return registry.Entry{
			DisplayName: "Text",
			Description: "A paragraph of free text",
			Category:    registry.CategoryContent,
			Renderer:    renderText,
			Defaults: func() model.Payload {
				return &model.Text{Content: "Tell your story here."}
			},
			StyleDefaults: model.StyleOverrides{model.PropPadding: "2rem"},
		}
	case model.TypeProfile:
		return registry.Entry{
			DisplayName: "Profile",
			Description: "Photo, name, headline and bio",
			Category:    registry.CategoryContent,
			Renderer:    renderProfile,
			Defaults: func() model.Payload {
				return &model.Profile{Name: "Your Name", Headline: "What you do"}
			},
			StyleDefaults: model.StyleOverrides{model.PropPadding: "2rem", model.PropTextAlign: "center"},
		}
	case model.TypeGallery:
		return registry.Entry{
			DisplayName: "Gallery",
			Description: "Images as a grid, carousel or marquee",
			Category:    registry.CategoryShowcase,
			Renderer:    renderGallery,
			Defaults: func() model.Payload {
				return &model.Gallery{Images: []model.Image{}, Mode: model.GalleryGrid, Columns: 3, Spacing: "1rem", Interval: 5000}
			},
			StyleDefaults: model.StyleOverrides{
				model.PropPadding:      "2rem",
				model.PropBorderRadius: style.ThemeRadius,
			},
		}
	case model.TypeExperience:
		return registry.Entry{
			DisplayName: "Experience",
			Description: "Work history timeline",
			Category:    registry.CategoryContent,
			Renderer:    renderExperience,
			Defaults: func() model.Payload {
				return &model.Experience{Experiences: []model.ExperienceItem{}, Variant: "timeline"}
			},
			StyleDefaults: model.StyleOverrides{model.PropPadding: "2rem"},
		}
	case model.TypeProjects:
		return registry.Entry{
			DisplayName: "Projects",
			Description: "Portfolio of projects as cards or a carousel",
			Category:    registry.CategoryShowcase,
			Renderer:    renderProjects,
			Defaults: func() model.Payload {
				return &model.Projects{Heading: "Projects", Projects: []model.Project{}, Layout: model.GalleryGrid}
			},
			StyleDefaults: model.StyleOverrides{
				model.PropPadding:     "2rem",
				model.PropBorderColor: "#e5e7eb",
			},
		}
	case model.TypeSkills:
		return registry.Entry{
			DisplayName: "Skills",
			Description: "Skills with proficiency bars",
			Category:    registry.CategoryContent,
			Renderer:    renderSkills,
			Defaults: func() model.Payload {
				return &model.Skills{Heading: "Skills", Skills: []model.Skill{}}
			},
			StyleDefaults: model.StyleOverrides{model.PropPadding: "2rem"},
		}
	case model.TypeServices:
		return registry.Entry{
			DisplayName: "Services",
			Description: "Services you offer with prices",
			Category:    registry.CategoryBusiness,
			Renderer:    renderServices,
			Defaults: func() model.Payload {
				return &model.Services{Heading: "Services", Services: []model.Service{}}
			},
			StyleDefaults: model.StyleOverrides{
				model.PropPadding:     "2rem",
				model.PropBorderColor: "#e5e7eb",
			},
		}
	case model.TypeReviews:
		return registry.Entry{
			DisplayName: "Reviews",
			Description: "Testimonials as a grid, carousel or marquee",
			Category:    registry.CategoryShowcase,
			Renderer:    renderReviews,
			Defaults: func() model.Payload {
				return &model.Reviews{Heading: "What people say", Reviews: []model.Review{}, Mode: model.GalleryGrid, Interval: 5000}
			},
			StyleDefaults: model.StyleOverrides{model.PropPadding: "2rem"},
		}
	case model.TypePricing:
		return registry.Entry{
			DisplayName: "Pricing",
			Description: "Pricing plans and features",
			Category:    registry.CategoryBusiness,
			Renderer:    renderPricing,
			Defaults: func() model.Payload {
				return &model.Pricing{Heading: "Pricing", Plans: []model.Plan{}}
			},
			StyleDefaults: model.StyleOverrides{
				model.PropPadding:     "2rem",
				model.PropBorderColor: "#e5e7eb",
			},
		}
	case model.TypeContact:
		return registry.Entry{
			DisplayName: "Contact",
			Description: "Email, phone and address",
			Category:    registry.CategoryBusiness,
			Renderer:    renderContact,
			Defaults: func() model.Payload {
				return &model.Contact{Heading: "Get in touch"}
			},
			StyleDefaults: model.StyleOverrides{model.PropPadding: "2rem"},
		}
	case model.TypeSpacer:
		return registry.Entry{
			DisplayName: "Spacer",
			Description: "Vertical whitespace",
			Category:    registry.CategoryLayout,
			Renderer:    renderSpacer,
			Defaults: func() model.Payload {
				return &model.Spacer{Height: "2rem"}
			},
		}
	case model.TypeDivider:
		return registry.Entry{
			DisplayName: "Divider",
			Description: "Horizontal line between sections",
			Category:    registry.CategoryLayout,
			Renderer:    renderDivider,
			Defaults: func() model.Payload {
				return &model.Divider{Thickness: "1px", LineStyle: "solid", Width: "100%"}
			},
			StyleDefaults: model.StyleOverrides{model.PropPadding: "1rem"},
		}
	case model.TypeEmbed:
		return registry.Entry{
			DisplayName: "Embed",
			Description: "Custom HTML in an isolated frame",
			Category:    registry.CategoryAdvanced,
			Renderer:    renderEmbed,
			Defaults: func() model.Payload {
				return &model.Embed{Height: "300px"}
			},
		}
	case model.TypeFooter:
		return registry.Entry{
			DisplayName: "Footer",
			Description: "Page footer with links",
			Category:    registry.CategoryLayout,
			Renderer:    renderFooter,
			Defaults: func() model.Payload {
				return &model.Footer{Text: "© Your Name"}
			},
			StyleDefaults: model.StyleOverrides{
				model.PropPadding:   "2rem",
				model.PropTextAlign: "center",
			},
		}
	}
	panic("components: no built-in entry for " + string(t))
}
