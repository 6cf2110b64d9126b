package components

import (
	"slices"
	"strings"

	"github.com/matzehuels/pagesmith/pkg/model"
	"github.com/matzehuels/pagesmith/pkg/registry"
	"github.com/matzehuels/pagesmith/pkg/view"
)

func renderServices(ctx registry.RenderContext) view.Node {
	s, _ := model.PayloadAs[*model.Services](ctx.Record)

	var content view.Node
	if len(s.Services) == 0 {
		content = placeholder("Add a service")
	} else {
		grid := view.Div().Class("ps-services").Style("display: grid; grid-template-columns: repeat(auto-fill, minmax(220px, 1fr)); gap: 1rem;")
		for _, svc := range s.Services {
			card := view.El("article").Class("ps-card").Style("padding: 1rem; border-radius: " + ctx.Style.Radius() + "; border: 1px solid " + ctx.Style.BorderColor + ";")
			if svc.Icon != "" {
				card.Append(view.El("span", view.Text(svc.Icon)).Class("ps-icon").Style("color: " + ctx.Style.PrimaryColor + "; font-size: 1.5rem;"))
			}
			card.Append(heading(ctx, "h3", svc.Title), para(ctx, svc.Description))
			if svc.Price != "" {
				card.Append(view.El("strong", view.Text(svc.Price)).Style("color: " + ctx.Style.PrimaryColor + ";"))
			}
			grid.Append(card)
		}
		content = view.Fragment(heading(ctx, "h2", s.Heading), grid)
	}

	if !ctx.Editing() {
		return frame(ctx, content)
	}
	controls := []view.Node{
		textInput(ctx, "heading", "Heading", s.Heading, func(p *model.Services, v string) { p.Heading = v }),
	}
	for i, svc := range s.Services {
		controls = append(controls,
			textInput(ctx, itemField("services", i, "title"), "Title", svc.Title, func(p *model.Services, v string) { p.Services[i].Title = v }),
			textArea(ctx, itemField("services", i, "description"), "Description", svc.Description, func(p *model.Services, v string) { p.Services[i].Description = v }),
			textInput(ctx, itemField("services", i, "icon"), "Icon", svc.Icon, func(p *model.Services, v string) { p.Services[i].Icon = v }),
			textInput(ctx, itemField("services", i, "price"), "Price", svc.Price, func(p *model.Services, v string) { p.Services[i].Price = v }),
			removeItem(ctx, "services", i,
				func(p *model.Services) int { return len(p.Services) },
				func(p *model.Services, i int) { p.Services = slices.Delete(p.Services, i, i+1) }),
		)
	}
	controls = append(controls, addItem(ctx, "services", "Add service", "Service title", func(p *model.Services, v string) {
		p.Services = append(p.Services, model.Service{Title: v})
	}))
	return frame(ctx, content, controls...)
}

func renderPricing(ctx registry.RenderContext) view.Node {
	pr, _ := model.PayloadAs[*model.Pricing](ctx.Record)

	var content view.Node
	if len(pr.Plans) == 0 {
		content = placeholder("Add a pricing plan")
	} else {
		grid := view.Div().Class("ps-pricing").Style("display: grid; grid-template-columns: repeat(auto-fit, minmax(220px, 1fr)); gap: 1rem;")
		for _, plan := range pr.Plans {
			border := "1px solid " + ctx.Style.BorderColor
			if plan.Highlighted {
				border = "2px solid " + ctx.Style.PrimaryColor
			}
			price := view.El("p", view.El("strong", view.Text(plan.Price)).Style("font-size: 2rem; color: "+ctx.Style.TitleColor+";"))
			if plan.Period != "" {
				price.Append(view.Text(" / " + plan.Period))
			}
			features := view.El("ul").Style("padding-left: 1.25rem;")
			for _, f := range plan.Features {
				features.Append(view.El("li", view.Text(f)).Style("color: " + ctx.Style.DescriptionColor + ";"))
			}
			card := view.El("article", heading(ctx, "h3", plan.Name), price, features, button(ctx, plan.Button)).
				Class("ps-plan").
				Style("padding: 1.5rem; border: " + border + "; border-radius: " + ctx.Style.Radius() + ";")
			if plan.Highlighted {
				card.Set("data-highlighted", "true")
			}
			grid.Append(card)
		}
		content = view.Fragment(heading(ctx, "h2", pr.Heading), grid)
	}

	if !ctx.Editing() {
		return frame(ctx, content)
	}
	controls := []view.Node{
		textInput(ctx, "heading", "Heading", pr.Heading, func(p *model.Pricing, v string) { p.Heading = v }),
	}
	for i, plan := range pr.Plans {
		controls = append(controls,
			textInput(ctx, itemField("plans", i, "name"), "Plan", plan.Name, func(p *model.Pricing, v string) { p.Plans[i].Name = v }),
			textInput(ctx, itemField("plans", i, "price"), "Price", plan.Price, func(p *model.Pricing, v string) { p.Plans[i].Price = v }),
			textInput(ctx, itemField("plans", i, "period"), "Period", plan.Period, func(p *model.Pricing, v string) { p.Plans[i].Period = v }),
			textArea(ctx, itemField("plans", i, "features"), "Features (one per line)", strings.Join(plan.Features, "\n"), func(p *model.Pricing, v string) { p.Plans[i].Features = splitList(v, "\n") }),
			toggle(ctx, itemField("plans", i, "highlighted"), "Highlight", plan.Highlighted, func(p *model.Pricing, v bool) { p.Plans[i].Highlighted = v }),
			removeItem(ctx, "plans", i,
				func(p *model.Pricing) int { return len(p.Plans) },
				func(p *model.Pricing, i int) { p.Plans = slices.Delete(p.Plans, i, i+1) }),
		)
	}
	controls = append(controls, addItem(ctx, "plans", "Add plan", "Plan name", func(p *model.Pricing, v string) {
		p.Plans = append(p.Plans, model.Plan{Name: v, Price: "$0"})
	}))
	return frame(ctx, content, controls...)
}

func renderContact(ctx registry.RenderContext) view.Node {
	c, _ := model.PayloadAs[*model.Contact](ctx.Record)

	var content view.Node
	if c.Email == "" && c.Phone == "" && c.Address == "" {
		content = placeholder("Add an email, phone number or address")
	} else {
		details := view.El("ul").Class("ps-contact").Style("list-style: none; padding: 0;")
		if c.Email != "" {
			details.Append(view.El("li", anchor(c.Email, "mailto:"+c.Email).Style("color: "+ctx.Style.PrimaryColor+";")))
		}
		if c.Phone != "" {
			details.Append(view.El("li", anchor(c.Phone, "tel:"+strings.ReplaceAll(c.Phone, " ", "")).Style("color: "+ctx.Style.PrimaryColor+";")))
		}
		if c.Address != "" {
			details.Append(view.El("li", view.El("address", view.Text(c.Address)).Style("color: "+ctx.Style.DescriptionColor+";")))
		}
		var cta view.Node
		if c.ButtonLabel != "" && c.Email != "" {
			cta = button(ctx, &model.Button{Label: c.ButtonLabel, Href: "mailto:" + c.Email})
		}
		content = view.Fragment(heading(ctx, "h2", c.Heading), para(ctx, c.Description), details, cta)
	}

	if !ctx.Editing() {
		return frame(ctx, content)
	}
	return frame(ctx, content,
		textInput(ctx, "heading", "Heading", c.Heading, func(p *model.Contact, v string) { p.Heading = v }),
		textArea(ctx, "description", "Description", c.Description, func(p *model.Contact, v string) { p.Description = v }),
		textInput(ctx, "email", "Email", c.Email, func(p *model.Contact, v string) { p.Email = v }),
		textInput(ctx, "phone", "Phone", c.Phone, func(p *model.Contact, v string) { p.Phone = v }),
		textArea(ctx, "address", "Address", c.Address, func(p *model.Contact, v string) { p.Address = v }),
		textInput(ctx, "buttonLabel", "Button label", c.ButtonLabel, func(p *model.Contact, v string) { p.ButtonLabel = v }),
	)
}
