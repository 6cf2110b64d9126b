package components

import (
	"slices"
	"strconv"
	"strings"

	"github.com/matzehuels/pagesmith/pkg/carousel"
	"github.com/matzehuels/pagesmith/pkg/errors"
	"github.com/matzehuels/pagesmith/pkg/model"
	"github.com/matzehuels/pagesmith/pkg/registry"
	"github.com/matzehuels/pagesmith/pkg/view"
)

var displayModes = []string{model.GalleryGrid, model.GalleryCarousel, model.GalleryMarquee}

// slides renders a carousel. Every item is emitted; items outside the first
// window are hidden until a client advances the carousel.
func slides(ctx registry.RenderContext, items []view.Node, perPage int, autoplay bool, intervalMS int) view.Node {
	visible := carousel.Window(0, len(items), perPage)
	track := view.Div().Class("ps-carousel-track").Style("display: flex; gap: 1rem; overflow: hidden;")
	for i, item := range items {
		slide := view.Div(item).Class("ps-slide").Set("data-index", strconv.Itoa(i))
		if !slices.Contains(visible, i) {
			slide.Set("hidden", "")
		}
		track.Append(slide)
	}
	if intervalMS <= 0 {
		intervalMS = int(carousel.DefaultInterval.Milliseconds())
	}
	nav := view.Div(
		view.El("button", view.Text("‹")).Set("type", "button").Set("data-carousel", "prev").Set("aria-label", "Previous"),
		view.El("button", view.Text("›")).Set("type", "button").Set("data-carousel", "next").Set("aria-label", "Next"),
	).Class("ps-carousel-nav").Style("display: flex; justify-content: center; gap: 0.5rem; color: " + ctx.Style.PrimaryColor + ";")

	return view.Div(track, nav).
		Class("ps-carousel").
		Set("data-item-count", strconv.Itoa(len(items))).
		Set("data-per-page", strconv.Itoa(perPage)).
		Set("data-autoplay", strconv.FormatBool(autoplay)).
		Set("data-interval", strconv.Itoa(intervalMS))
}

// marquee renders items twice in a track animated across one copy.
func marquee(ctx registry.RenderContext, items []view.Node, itemWidth float64) view.Node {
	t := carousel.Marquee(ctx.Record.ID, len(items), itemWidth, 16, carousel.DefaultSpeed)
	track := view.Div().Class("ps-marquee-track").Style(t.Style() + " gap: 16px;")
	for pos, i := range t.Items {
		cell := view.Div(items[i]).Class("ps-marquee-item").Style("flex: 0 0 " + strconv.FormatFloat(itemWidth, 'f', -1, 64) + "px;")
		if pos >= len(items) {
			cell.Set("aria-hidden", "true")
		}
		track.Append(cell)
	}
	return view.Div(
		view.El("style", view.Text(t.Keyframes())),
		track,
	).Class("ps-marquee").Style("overflow: hidden;")
}

// =============================================================================
// Gallery
// =============================================================================

func renderGallery(ctx registry.RenderContext) view.Node {
	g, _ := model.PayloadAs[*model.Gallery](ctx.Record)

	var content view.Node
	if len(g.Images) == 0 {
		content = placeholder("No images yet")
	} else {
		var figures []view.Node
		for _, img := range g.Images {
			fig := view.El("figure", image(img.URL, img.Alt)).Style(
				"margin: 0; border-radius: " + ctx.Style.Radius() + "; overflow: hidden; border-bottom: 3px solid " + ctx.Style.PrimaryColor + ";")
			if img.Caption != "" {
				fig.Append(view.El("figcaption", view.Text(img.Caption)).Style("color: " + ctx.Style.DescriptionColor + ";"))
			}
			figures = append(figures, fig)
		}
		switch variantOr(g.Mode, displayModes) {
		case model.GalleryCarousel:
			content = slides(ctx, figures, 1, g.Autoplay, g.Interval)
		case model.GalleryMarquee:
			content = marquee(ctx, figures, 240)
		default:
			cols := g.Columns
			if cols < 1 {
				cols = 3
			}
			spacing := g.Spacing
			if spacing == "" || errors.ValidateLength(spacing) != nil {
				spacing = "1rem"
			}
			content = view.Div(figures...).Class("ps-gallery-grid").Style(
				"display: grid; grid-template-columns: repeat(" + strconv.Itoa(cols) + ", 1fr); gap: " + spacing + ";")
		}
	}

	if !ctx.Editing() {
		return frame(ctx, content)
	}
	controls := []view.Node{
		choice(ctx, "mode", "Display", variantOr(g.Mode, displayModes), displayModes, func(p *model.Gallery, v string) { p.Mode = v }),
		numberInput(ctx, "columns", "Columns", g.Columns, 1, 6, func(p *model.Gallery, v int) { p.Columns = v }),
		lengthInput(ctx, "spacing", "Spacing", g.Spacing, func(p *model.Gallery, v string) { p.Spacing = v }),
		toggle(ctx, "autoplay", "Autoplay", g.Autoplay, func(p *model.Gallery, v bool) { p.Autoplay = v }),
		numberInput(ctx, "interval", "Interval (ms)", g.Interval, 1000, 60000, func(p *model.Gallery, v int) { p.Interval = v }),
	}
	for i, img := range g.Images {
		controls = append(controls,
			urlInput(ctx, itemField("images", i, "url"), "Image URL", img.URL, func(p *model.Gallery, v string) { p.Images[i].URL = v }),
			textInput(ctx, itemField("images", i, "alt"), "Alt text", img.Alt, func(p *model.Gallery, v string) { p.Images[i].Alt = v }),
			textInput(ctx, itemField("images", i, "caption"), "Caption", img.Caption, func(p *model.Gallery, v string) { p.Images[i].Caption = v }),
			removeItem(ctx, "images", i,
				func(p *model.Gallery) int { return len(p.Images) },
				func(p *model.Gallery, i int) { p.Images = slices.Delete(p.Images, i, i+1) }),
		)
	}
	add := addItem(ctx, "images", "Add image", "Image URL", func(p *model.Gallery, v string) {
		p.Images = append(p.Images, model.Image{URL: v})
	})
	apply := add.Apply
	add.Apply = func(v string) error {
		if v = strings.TrimSpace(v); v != "" {
			if err := errors.ValidateURL(v); err != nil {
				return errors.Validation("images", "%s", errors.UserMessage(err))
			}
		}
		return apply(v)
	}
	controls = append(controls, add)
	return frame(ctx, content, controls...)
}

// =============================================================================
// Projects
// =============================================================================

var projectLayouts = []string{model.GalleryGrid, model.GalleryCarousel}

func renderProjects(ctx registry.RenderContext) view.Node {
	pr, _ := model.PayloadAs[*model.Projects](ctx.Record)

	var content view.Node
	if len(pr.Projects) == 0 {
		content = placeholder("Add a project")
	} else {
		var cards []view.Node
		for _, p := range pr.Projects {
			card := view.El("article",
				image(p.ImageURL, p.Title),
				heading(ctx, "h3", p.Title),
				para(ctx, p.Description),
			).Class("ps-card").Style("border: 1px solid " + ctx.Style.BorderColor + "; border-radius: " + ctx.Style.Radius() + "; padding: 1rem;")
			if len(p.Tags) > 0 {
				tags := view.El("ul").Class("ps-tags").Style("display: flex; gap: 0.5rem; list-style: none; padding: 0;")
				for _, tag := range p.Tags {
					tags.Append(view.El("li", view.Text(tag)).Style("color: " + ctx.Style.PrimaryColor + ";"))
				}
				card.Append(tags)
			}
			if p.URL != "" {
				card.Append(anchor("View project", p.URL).Style("color: " + ctx.Style.PrimaryColor + ";"))
			}
			cards = append(cards, card)
		}
		var body view.Node
		if variantOr(pr.Layout, projectLayouts) == model.GalleryCarousel {
			body = slides(ctx, cards, 3, pr.Autoplay, pr.Interval)
		} else {
			body = view.Div(cards...).Class("ps-project-grid").Style("display: grid; grid-template-columns: repeat(auto-fill, minmax(260px, 1fr)); gap: 1rem;")
		}
		content = view.Fragment(heading(ctx, "h2", pr.Heading), body)
	}

	if !ctx.Editing() {
		return frame(ctx, content)
	}
	controls := []view.Node{
		textInput(ctx, "heading", "Heading", pr.Heading, func(p *model.Projects, v string) { p.Heading = v }),
		choice(ctx, "layout", "Layout", variantOr(pr.Layout, projectLayouts), projectLayouts, func(p *model.Projects, v string) { p.Layout = v }),
		toggle(ctx, "autoplay", "Autoplay", pr.Autoplay, func(p *model.Projects, v bool) { p.Autoplay = v }),
	}
	for i, p := range pr.Projects {
		controls = append(controls,
			textInput(ctx, itemField("projects", i, "title"), "Title", p.Title, func(x *model.Projects, v string) { x.Projects[i].Title = v }),
			textArea(ctx, itemField("projects", i, "description"), "Description", p.Description, func(x *model.Projects, v string) { x.Projects[i].Description = v }),
			urlInput(ctx, itemField("projects", i, "url"), "Link", p.URL, func(x *model.Projects, v string) { x.Projects[i].URL = v }),
			urlInput(ctx, itemField("projects", i, "imageUrl"), "Image", p.ImageURL, func(x *model.Projects, v string) { x.Projects[i].ImageURL = v }),
			textInput(ctx, itemField("projects", i, "tags"), "Tags (comma separated)", strings.Join(p.Tags, ", "), func(x *model.Projects, v string) { x.Projects[i].Tags = splitList(v, ",") }),
			removeItem(ctx, "projects", i,
				func(x *model.Projects) int { return len(x.Projects) },
				func(x *model.Projects, i int) { x.Projects = slices.Delete(x.Projects, i, i+1) }),
		)
	}
	controls = append(controls, addItem(ctx, "projects", "Add project", "Project title", func(x *model.Projects, v string) {
		x.Projects = append(x.Projects, model.Project{Title: v})
	}))
	return frame(ctx, content, controls...)
}

// =============================================================================
// Reviews
// =============================================================================

func renderReviews(ctx registry.RenderContext) view.Node {
	r, _ := model.PayloadAs[*model.Reviews](ctx.Record)

	var content view.Node
	if len(r.Reviews) == 0 {
		content = placeholder("Add a testimonial")
	} else {
		var quotes []view.Node
		for _, rv := range r.Reviews {
			q := view.El("blockquote",
				view.El("p", view.Text("“"+rv.Quote+"”")).Style("color: "+ctx.Style.DescriptionColor+";"),
			).Class("ps-review").Style("margin: 0; padding: 1rem; border-radius: " + ctx.Style.Radius() + ";")
			if rv.Rating > 0 {
				stars := strings.Repeat("★", min(rv.Rating, 5)) + strings.Repeat("☆", 5-min(rv.Rating, 5))
				q.Append(view.El("div", view.Text(stars)).Set("aria-label", strconv.Itoa(rv.Rating)+" out of 5").Style("color: "+ctx.Style.PrimaryColor+";"))
			}
			cite := rv.Author
			if rv.Role != "" {
				cite += ", " + rv.Role
			}
			q.Append(view.El("footer", view.El("cite", view.Text(cite))).Style("color: " + ctx.Style.TitleColor + ";"))
			quotes = append(quotes, q)
		}
		var body view.Node
		switch variantOr(r.Mode, displayModes) {
		case model.GalleryCarousel:
			body = slides(ctx, quotes, 1, r.Autoplay, r.Interval)
		case model.GalleryMarquee:
			body = marquee(ctx, quotes, 320)
		default:
			body = view.Div(quotes...).Class("ps-review-grid").Style("display: grid; grid-template-columns: repeat(auto-fill, minmax(280px, 1fr)); gap: 1rem;")
		}
		content = view.Fragment(heading(ctx, "h2", r.Heading), body)
	}

	if !ctx.Editing() {
		return frame(ctx, content)
	}
	controls := []view.Node{
		textInput(ctx, "heading", "Heading", r.Heading, func(p *model.Reviews, v string) { p.Heading = v }),
		choice(ctx, "mode", "Display", variantOr(r.Mode, displayModes), displayModes, func(p *model.Reviews, v string) { p.Mode = v }),
		toggle(ctx, "autoplay", "Autoplay", r.Autoplay, func(p *model.Reviews, v bool) { p.Autoplay = v }),
		numberInput(ctx, "interval", "Interval (ms)", r.Interval, 1000, 60000, func(p *model.Reviews, v int) { p.Interval = v }),
	}
	for i, rv := range r.Reviews {
		controls = append(controls,
			textInput(ctx, itemField("reviews", i, "author"), "Author", rv.Author, func(p *model.Reviews, v string) { p.Reviews[i].Author = v }),
			textInput(ctx, itemField("reviews", i, "role"), "Role", rv.Role, func(p *model.Reviews, v string) { p.Reviews[i].Role = v }),
			textArea(ctx, itemField("reviews", i, "quote"), "Quote", rv.Quote, func(p *model.Reviews, v string) { p.Reviews[i].Quote = v }),
			numberInput(ctx, itemField("reviews", i, "rating"), "Rating", rv.Rating, 0, 5, func(p *model.Reviews, v int) { p.Reviews[i].Rating = v }),
			removeItem(ctx, "reviews", i,
				func(p *model.Reviews) int { return len(p.Reviews) },
				func(p *model.Reviews, i int) { p.Reviews = slices.Delete(p.Reviews, i, i+1) }),
		)
	}
	controls = append(controls, addItem(ctx, "reviews", "Add testimonial", "Author", func(p *model.Reviews, v string) {
		p.Reviews = append(p.Reviews, model.Review{Author: v, Rating: 5})
	}))
	return frame(ctx, content, controls...)
}
