package components

import (
	"github.com/matzehuels/pagesmith/pkg/model"
	"github.com/matzehuels/pagesmith/pkg/registry"
	"github.com/matzehuels/pagesmith/pkg/sanitize"
	"github.com/matzehuels/pagesmith/pkg/view"
)

// renderEmbed is the only renderer that displays user markup. The markup is
// sanitized and then isolated in a sandbox frame; it is never inlined into
// the page.
func renderEmbed(ctx registry.RenderContext) view.Node {
	e, _ := model.PayloadAs[*model.Embed](ctx.Record)

	var content view.Node
	res := sanitize.Embed(e.HTML)
	ctx.Notify(res.Err())
	if res.HTML == "" {
		content = placeholder("Paste embed code")
	} else {
		title := e.Title
		if title == "" {
			title = "Embedded content"
		}
		content = sanitize.Frame(title, view.FrameHeight(e.Height), res.HTML)
	}

	if !ctx.Editing() {
		return frame(ctx, content)
	}
	return frame(ctx, content,
		textArea(ctx, "html", "Embed code", e.HTML, func(p *model.Embed, v string) { p.HTML = v }),
		lengthInput(ctx, "height", "Height", e.Height, func(p *model.Embed, v string) { p.Height = v }),
		textInput(ctx, "title", "Title", e.Title, func(p *model.Embed, v string) { p.Title = v }),
	)
}
