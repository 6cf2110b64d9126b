package components

import (
	"slices"

	"github.com/matzehuels/pagesmith/pkg/model"
	"github.com/matzehuels/pagesmith/pkg/registry"
	"github.com/matzehuels/pagesmith/pkg/view"
)

func renderNavigation(ctx registry.RenderContext) view.Node {
	n, _ := model.PayloadAs[*model.Navigation](ctx.Record)

	var content view.Node
	if n.Brand == "" && len(n.MenuItems) == 0 {
		content = placeholder("Add a brand name and menu items")
	} else {
		menu := view.El("ul").Class("ps-menu").Style("display: flex; gap: 1.5rem; list-style: none; margin: 0; padding: 0;")
		for _, item := range n.MenuItems {
			menu.Append(view.El("li", anchor(item.Label, item.Href).Style("color: "+ctx.Style.TitleColor+"; text-decoration: none;")))
		}
		css := "display: flex; align-items: center; justify-content: space-between; gap: 1rem;"
		if n.Sticky {
			css += " position: sticky; top: 0;"
		}
		content = view.El("nav",
			view.El("strong", view.Text(n.Brand)).Class("ps-brand").Style("color: "+ctx.Style.TitleColor+";"),
			menu,
			button(ctx, n.Button),
		).Style(css)
	}

	if !ctx.Editing() {
		return frame(ctx, content)
	}
	controls := []view.Node{
		textInput(ctx, "brand", "Brand", n.Brand, func(p *model.Navigation, v string) { p.Brand = v }),
		toggle(ctx, "sticky", "Sticky", n.Sticky, func(p *model.Navigation, v bool) { p.Sticky = v }),
	}
	for i, item := range n.MenuItems {
		controls = append(controls,
			textInput(ctx, itemField("menuItems", i, "label"), "Menu label", item.Label, func(p *model.Navigation, v string) { p.MenuItems[i].Label = v }),
			urlInput(ctx, itemField("menuItems", i, "href"), "Menu link", item.Href, func(p *model.Navigation, v string) { p.MenuItems[i].Href = v }),
			removeItem(ctx, "menuItems", i,
				func(p *model.Navigation) int { return len(p.MenuItems) },
				func(p *model.Navigation, i int) { p.MenuItems = slices.Delete(p.MenuItems, i, i+1) }),
		)
	}
	controls = append(controls, addItem(ctx, "menuItems", "Add menu item", "Menu label", func(p *model.Navigation, v string) {
		p.MenuItems = append(p.MenuItems, model.MenuItem{Label: v, Href: "#"})
	}))
	controls = append(controls, buttonControls(ctx, n.Button, func(p *model.Navigation) **model.Button { return &p.Button })...)
	return frame(ctx, content, controls...)
}

func renderHeader(ctx registry.RenderContext) view.Node {
	h, _ := model.PayloadAs[*model.Header](ctx.Record)

	var content view.Node
	if h.Title == "" && h.Subtitle == "" {
		content = placeholder("Add a title")
	} else {
		content = view.El("header",
			image(h.BackgroundImage, ""),
			heading(ctx, "h1", h.Title),
			para(ctx, h.Subtitle),
			button(ctx, h.Button),
		).Class("ps-hero").Style(alignStyle(h.Alignment))
	}

	if !ctx.Editing() {
		return frame(ctx, content)
	}
	controls := []view.Node{
		textInput(ctx, "title", "Title", h.Title, func(p *model.Header, v string) { p.Title = v }),
		textArea(ctx, "subtitle", "Subtitle", h.Subtitle, func(p *model.Header, v string) { p.Subtitle = v }),
		choice(ctx, "alignment", "Alignment", h.Alignment, alignments, func(p *model.Header, v string) { p.Alignment = v }),
		urlInput(ctx, "backgroundImage", "Background image", h.BackgroundImage, func(p *model.Header, v string) { p.BackgroundImage = v }),
	}
	controls = append(controls, buttonControls(ctx, h.Button, func(p *model.Header) **model.Button { return &p.Button })...)
	return frame(ctx, content, controls...)
}

func renderSpacer(ctx registry.RenderContext) view.Node {
	s, _ := model.PayloadAs[*model.Spacer](ctx.Record)
	height := s.Height
	if height == "" {
		height = "2rem"
	}
	content := view.Div().Class("ps-spacer").Set("aria-hidden", "true").Style("height: " + height + ";")
	if !ctx.Editing() {
		return frame(ctx, content)
	}
	return frame(ctx, content,
		lengthInput(ctx, "height", "Height", s.Height, func(p *model.Spacer, v string) { p.Height = v }),
	)
}

var lineStyles = []string{"solid", "dashed", "dotted", "double"}

func renderDivider(ctx registry.RenderContext) view.Node {
	d, _ := model.PayloadAs[*model.Divider](ctx.Record)
	thickness, line, width := d.Thickness, d.LineStyle, d.Width
	if thickness == "" {
		thickness = "1px"
	}
	if !slices.Contains(lineStyles, line) {
		line = "solid"
	}
	if width == "" {
		width = "100%"
	}
	content := view.El("hr").Style(
		"border: 0; border-top: " + thickness + " " + line + " " + ctx.Style.DescriptionColor + "; width: " + width + "; margin: 0 auto;")

	if !ctx.Editing() {
		return frame(ctx, content)
	}
	return frame(ctx, content,
		lengthInput(ctx, "thickness", "Thickness", d.Thickness, func(p *model.Divider, v string) { p.Thickness = v }),
		choice(ctx, "lineStyle", "Line style", line, lineStyles, func(p *model.Divider, v string) { p.LineStyle = v }),
		lengthInput(ctx, "width", "Width", d.Width, func(p *model.Divider, v string) { p.Width = v }),
	)
}

func renderFooter(ctx registry.RenderContext) view.Node {
	f, _ := model.PayloadAs[*model.Footer](ctx.Record)

	var content view.Node
	if f.Text == "" && len(f.Links) == 0 {
		content = placeholder("Add footer text")
	} else {
		content = view.El("footer", para(ctx, f.Text), links(f.Links))
	}

	if !ctx.Editing() {
		return frame(ctx, content)
	}
	controls := []view.Node{
		textInput(ctx, "text", "Text", f.Text, func(p *model.Footer, v string) { p.Text = v }),
	}
	controls = append(controls, linkControls(ctx, "links", f.Links, func(p *model.Footer) *[]model.Link { return &p.Links })...)
	return frame(ctx, content, controls...)
}
