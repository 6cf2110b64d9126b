package components

import (
	"slices"
	"strconv"

	"github.com/matzehuels/pagesmith/pkg/model"
	"github.com/matzehuels/pagesmith/pkg/registry"
	"github.com/matzehuels/pagesmith/pkg/view"
)

func renderText(ctx registry.RenderContext) view.Node {
	t, _ := model.PayloadAs[*model.Text](ctx.Record)

	var content view.Node
	if t.Content == "" {
		content = placeholder("Start writing")
	} else {
		content = view.El("p", view.Text(t.Content)).Style(alignStyle(t.Alignment))
	}

	if !ctx.Editing() {
		return frame(ctx, content)
	}
	return frame(ctx, content,
		textArea(ctx, "content", "Content", t.Content, func(p *model.Text, v string) { p.Content = v }),
		choice(ctx, "alignment", "Alignment", t.Alignment, alignments, func(p *model.Text, v string) { p.Alignment = v }),
	)
}

func renderProfile(ctx registry.RenderContext) view.Node {
	pr, _ := model.PayloadAs[*model.Profile](ctx.Record)

	var content view.Node
	if pr.Name == "" {
		content = placeholder("Add your name")
	} else {
		var avatar view.Node
		if img := image(pr.AvatarURL, pr.Name); img != nil {
			avatar = img.(*view.Element).Class("ps-avatar").Style("width: 96px; height: 96px; border-radius: 50%; object-fit: cover;")
		}
		var contact view.Node
		if pr.Email != "" {
			contact = anchor(pr.Email, "mailto:"+pr.Email).Style("color: " + ctx.Style.PrimaryColor + ";")
		}
		content = view.Div(
			avatar,
			heading(ctx, "h2", pr.Name),
			view.El("p", view.Text(pr.Headline)).Class("ps-headline").Style("color: "+ctx.Style.PrimaryColor+";"),
			para(ctx, pr.Bio),
			para(ctx, pr.Location),
			contact,
			links(pr.Links),
		).Class("ps-profile")
	}

	if !ctx.Editing() {
		return frame(ctx, content)
	}
	controls := []view.Node{
		textInput(ctx, "name", "Name", pr.Name, func(p *model.Profile, v string) { p.Name = v }),
		textInput(ctx, "headline", "Headline", pr.Headline, func(p *model.Profile, v string) { p.Headline = v }),
		textArea(ctx, "bio", "Bio", pr.Bio, func(p *model.Profile, v string) { p.Bio = v }),
		urlInput(ctx, "avatarUrl", "Avatar", pr.AvatarURL, func(p *model.Profile, v string) { p.AvatarURL = v }),
		textInput(ctx, "location", "Location", pr.Location, func(p *model.Profile, v string) { p.Location = v }),
		textInput(ctx, "email", "Email", pr.Email, func(p *model.Profile, v string) { p.Email = v }),
	}
	controls = append(controls, linkControls(ctx, "links", pr.Links, func(p *model.Profile) *[]model.Link { return &p.Links })...)
	return frame(ctx, content, controls...)
}

var experienceVariants = []string{"timeline", "cards"}

func renderExperience(ctx registry.RenderContext) view.Node {
	e, _ := model.PayloadAs[*model.Experience](ctx.Record)

	var content view.Node
	if len(e.Experiences) == 0 {
		content = placeholder("Add your first position")
	} else {
		list := view.El("ol").Class("ps-experience ps-" + variantOr(e.Variant, experienceVariants)).Style("list-style: none; padding: 0;")
		for _, item := range e.Experiences {
			dates := item.Start
			if item.End != "" {
				dates += " - " + item.End
			}
			list.Append(view.El("li",
				heading(ctx, "h3", item.Role),
				view.El("p", view.Text(item.Company)).Style("color: "+ctx.Style.PrimaryColor+"; font-weight: 600;"),
				para(ctx, dates),
				para(ctx, item.Location),
				para(ctx, item.Description),
			).Style("border-left: 3px solid " + ctx.Style.PrimaryColor + "; padding-left: 1rem; margin-bottom: 1.5rem;"))
		}
		content = list
	}

	if !ctx.Editing() {
		return frame(ctx, content)
	}
	controls := []view.Node{
		choice(ctx, "variant", "Layout", variantOr(e.Variant, experienceVariants), experienceVariants, func(p *model.Experience, v string) { p.Variant = v }),
	}
	for i, item := range e.Experiences {
		set := func(f func(it *model.ExperienceItem, v string)) func(p *model.Experience, v string) {
			return func(p *model.Experience, v string) { f(&p.Experiences[i], v) }
		}
		controls = append(controls,
			textInput(ctx, itemField("experiences", i, "role"), "Role", item.Role, set(func(it *model.ExperienceItem, v string) { it.Role = v })),
			textInput(ctx, itemField("experiences", i, "company"), "Company", item.Company, set(func(it *model.ExperienceItem, v string) { it.Company = v })),
			textInput(ctx, itemField("experiences", i, "location"), "Location", item.Location, set(func(it *model.ExperienceItem, v string) { it.Location = v })),
			textInput(ctx, itemField("experiences", i, "start"), "Start", item.Start, set(func(it *model.ExperienceItem, v string) { it.Start = v })),
			textInput(ctx, itemField("experiences", i, "end"), "End", item.End, set(func(it *model.ExperienceItem, v string) { it.End = v })),
			textArea(ctx, itemField("experiences", i, "description"), "Description", item.Description, set(func(it *model.ExperienceItem, v string) { it.Description = v })),
			removeItem(ctx, "experiences", i,
				func(p *model.Experience) int { return len(p.Experiences) },
				func(p *model.Experience, i int) { p.Experiences = slices.Delete(p.Experiences, i, i+1) }),
		)
	}
	controls = append(controls, addItem(ctx, "experiences", "Add position", "Role", func(p *model.Experience, v string) {
		p.Experiences = append(p.Experiences, model.ExperienceItem{Role: v})
	}))
	return frame(ctx, content, controls...)
}

func renderSkills(ctx registry.RenderContext) view.Node {
	s, _ := model.PayloadAs[*model.Skills](ctx.Record)

	var content view.Node
	if len(s.Skills) == 0 {
		content = placeholder("Add a skill")
	} else {
		list := view.El("ul").Class("ps-skills").Style("list-style: none; padding: 0;")
		for _, sk := range s.Skills {
			level := min(max(sk.Level, 0), 100)
			list.Append(view.El("li",
				view.El("span", view.Text(sk.Name)).Style("color: "+ctx.Style.TitleColor+";"),
				view.Div(
					view.Div().Style("width: "+strconv.Itoa(level)+"%; height: 100%; background-color: "+ctx.Style.PrimaryColor+";"),
				).Class("ps-skill-bar").
					Set("role", "meter").
					Set("aria-valuenow", strconv.Itoa(level)).
					Set("aria-valuemin", "0").
					Set("aria-valuemax", "100").
					Style("height: 0.5rem; background-color: #e5e7eb; border-radius: 999px; overflow: hidden;"),
			))
		}
		content = view.Fragment(heading(ctx, "h2", s.Heading), list)
	}

	if !ctx.Editing() {
		return frame(ctx, content)
	}
	controls := []view.Node{
		textInput(ctx, "heading", "Heading", s.Heading, func(p *model.Skills, v string) { p.Heading = v }),
	}
	for i, sk := range s.Skills {
		controls = append(controls,
			textInput(ctx, itemField("skills", i, "name"), "Skill", sk.Name, func(p *model.Skills, v string) { p.Skills[i].Name = v }),
			numberInput(ctx, itemField("skills", i, "level"), "Level", sk.Level, 0, 100, func(p *model.Skills, v int) { p.Skills[i].Level = v }),
			removeItem(ctx, "skills", i,
				func(p *model.Skills) int { return len(p.Skills) },
				func(p *model.Skills, i int) { p.Skills = slices.Delete(p.Skills, i, i+1) }),
		)
	}
	controls = append(controls, addItem(ctx, "skills", "Add skill", "Skill name", func(p *model.Skills, v string) {
		p.Skills = append(p.Skills, model.Skill{Name: v, Level: 50})
	}))
	return frame(ctx, content, controls...)
}

func variantOr(v string, allowed []string) string {
	if slices.Contains(allowed, v) {
		return v
	}
	return allowed[0]
}
