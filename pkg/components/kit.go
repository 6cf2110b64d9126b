package components

import (
	"slices"
	"strconv"
	"strings"

	"github.com/matzehuels/pagesmith/pkg/errors"
	"github.com/matzehuels/pagesmith/pkg/model"
	"github.com/matzehuels/pagesmith/pkg/registry"
	"github.com/matzehuels/pagesmith/pkg/style"
	"github.com/matzehuels/pagesmith/pkg/view"
)

// =============================================================================
// Edits
// =============================================================================

// edit applies mutate to a deep copy of the rendered record and hands the
// copy to OnUpdate. The rendered record is never touched, so list edits
// always produce new slices.
func edit[T model.Payload](ctx registry.RenderContext, mutate func(p T) error) error {
	next := ctx.Record.Clone()
	p, ok := model.PayloadAs[T](next)
	if !ok {
		return errors.New(errors.ErrCodeInternal, "component %s has payload %T", next.ID, next.Payload)
	}
	if err := mutate(p); err != nil {
		return err
	}
	ctx.Update(next)
	return nil
}

func controlID(ctx registry.RenderContext, parts ...string) string {
	return ctx.Record.ID + "." + strings.Join(parts, ".")
}

func itemField(list string, i int, field string) string {
	return list + "." + strconv.Itoa(i) + "." + field
}

// =============================================================================
// Controls
// =============================================================================

func textInput[T model.Payload](ctx registry.RenderContext, field, label, value string, set func(p T, v string)) *view.Control {
	return input(ctx, view.KindText, field, label, value, set)
}

func textArea[T model.Payload](ctx registry.RenderContext, field, label, value string, set func(p T, v string)) *view.Control {
	return input(ctx, view.KindTextarea, field, label, value, set)
}

func input[T model.Payload](ctx registry.RenderContext, kind, field, label, value string, set func(p T, v string)) *view.Control {
	return &view.Control{
		ID:    controlID(ctx, field),
		Kind:  kind,
		Label: label,
		Value: value,
		Apply: func(v string) error {
			return edit(ctx, func(p T) error {
				set(p, v)
				return nil
			})
		},
	}
}

// urlInput accepts an empty value (clearing the field) or a safe URL.
func urlInput[T model.Payload](ctx registry.RenderContext, field, label, value string, set func(p T, v string)) *view.Control {
	c := textInput(ctx, field, label, value, set)
	apply := c.Apply
	c.Apply = func(v string) error {
		v = strings.TrimSpace(v)
		if v != "" {
			if err := errors.ValidateURL(v); err != nil {
				return errors.Validation(field, "%s", errors.UserMessage(err))
			}
		}
		return apply(v)
	}
	return c
}

// lengthInput accepts an empty value or a CSS length.
func lengthInput[T model.Payload](ctx registry.RenderContext, field, label, value string, set func(p T, v string)) *view.Control {
	c := textInput(ctx, field, label, value, set)
	apply := c.Apply
	c.Apply = func(v string) error {
		v = strings.TrimSpace(v)
		if v != "" {
			if err := errors.ValidateLength(v); err != nil {
				return errors.Validation(field, "%s", errors.UserMessage(err))
			}
		}
		return apply(v)
	}
	return c
}

func numberInput[T model.Payload](ctx registry.RenderContext, field, label string, value, lo, hi int, set func(p T, v int)) *view.Control {
	return &view.Control{
		ID:    controlID(ctx, field),
		Kind:  view.KindNumber,
		Label: label,
		Value: strconv.Itoa(value),
		Apply: func(v string) error {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				return errors.Validation(field, "%s must be a whole number", label)
			}
			if n < lo || n > hi {
				return errors.Validation(field, "%s must be between %d and %d", label, lo, hi)
			}
			return edit(ctx, func(p T) error {
				set(p, n)
				return nil
			})
		},
	}
}

func toggle[T model.Payload](ctx registry.RenderContext, field, label string, value bool, set func(p T, v bool)) *view.Control {
	return &view.Control{
		ID:    controlID(ctx, field),
		Kind:  view.KindToggle,
		Label: label,
		Value: strconv.FormatBool(value),
		Apply: func(v string) error {
			b, err := strconv.ParseBool(strings.TrimSpace(v))
			if err != nil {
				b = v == "on"
			}
			return edit(ctx, func(p T) error {
				set(p, b)
				return nil
			})
		},
	}
}

func choice[T model.Payload](ctx registry.RenderContext, field, label, value string, options []string, set func(p T, v string)) *view.Control {
	return &view.Control{
		ID:      controlID(ctx, field),
		Kind:    view.KindSelect,
		Label:   label,
		Value:   value,
		Options: options,
		Apply: func(v string) error {
			if !slices.Contains(options, v) {
				return errors.Validation(field, "%s must be one of %s", label, strings.Join(options, ", "))
			}
			return edit(ctx, func(p T) error {
				set(p, v)
				return nil
			})
		},
	}
}

// addItem is an "add" action. The dispatched value carries the new entry's
// required field; an empty value blocks the action without an update.
func addItem[T model.Payload](ctx registry.RenderContext, list, label, required string, add func(p T, v string)) *view.Control {
	return &view.Control{
		ID:    controlID(ctx, list, "add"),
		Kind:  view.KindButton,
		Label: label,
		Apply: func(v string) error {
			v = strings.TrimSpace(v)
			if v == "" {
				return errors.Validation(list, "%s is required", required)
			}
			return edit(ctx, func(p T) error {
				add(p, v)
				return nil
			})
		},
	}
}

// removeItem deletes entry i of a list field.
func removeItem[T model.Payload](ctx registry.RenderContext, list string, i int, count func(p T) int, remove func(p T, i int)) *view.Control {
	return &view.Control{
		ID:    controlID(ctx, list, strconv.Itoa(i), "remove"),
		Kind:  view.KindButton,
		Label: "Remove",
		Apply: func(string) error {
			return edit(ctx, func(p T) error {
				if i < 0 || i >= count(p) {
					return errors.New(errors.ErrCodeNotFound, "%s entry %d not found", list, i)
				}
				remove(p, i)
				return nil
			})
		},
	}
}

// styleControls edits the instance overrides shared by every component.
// An empty value removes the override so the inherited value applies again.
func styleControls(ctx registry.RenderContext) []view.Node {
	colorProps := []struct{ prop, label string }{
		{model.PropPrimaryColor, "Accent color"},
		{model.PropBackgroundColor, "Background"},
		{model.PropTitleColor, "Title color"},
		{model.PropDescriptionColor, "Text color"},
	}
	var out []view.Node
	for _, c := range colorProps {
		out = append(out, styleControl(ctx, c.prop, c.label, view.KindColor, errors.ValidateColor))
	}
	out = append(out,
		styleControl(ctx, model.PropPadding, "Padding", view.KindText, errors.ValidateLength),
		styleControl(ctx, model.PropBorderRadius, "Corner radius", view.KindText, errors.ValidateLength),
	)
	return out
}

func styleControl(ctx registry.RenderContext, prop, label, kind string, validate func(string) error) *view.Control {
	return &view.Control{
		ID:    controlID(ctx, "styles", prop),
		Kind:  kind,
		Label: label,
		Value: ctx.Record.Styles[prop],
		Apply: func(v string) error {
			v = strings.TrimSpace(v)
			if v != "" {
				if err := validate(v); err != nil {
					return errors.Validation(prop, "%s", errors.UserMessage(err))
				}
			}
			next := ctx.Record.Clone()
			if v == "" {
				delete(next.Styles, prop)
				if len(next.Styles) == 0 {
					next.Styles = nil
				}
			} else {
				if next.Styles == nil {
					next.Styles = model.StyleOverrides{}
				}
				next.Styles[prop] = v
			}
			ctx.Update(next)
			return nil
		},
	}
}

// =============================================================================
// Markup
// =============================================================================

// frame wraps a component's content. In edit mode the controls are appended
// in a panel after the content, followed by the shared style controls.
func frame(ctx registry.RenderContext, content view.Node, controls ...view.Node) *view.Element {
	root := view.El("section", content).
		Class("ps-component ps-"+string(ctx.Record.Type)).
		Set("data-component-id", ctx.Record.ID).
		Set("data-mode", string(ctx.Mode)).
		Style(ctx.Style.CSS())
	if ctx.Editing() {
		panel := view.Div(controls...).Class("ps-controls")
		panel.Append(view.Div(styleControls(ctx)...).Class("ps-style-controls"))
		root.Append(panel)
	}
	return root
}

// placeholder is the neutral stand-in for empty data.
func placeholder(msg string) *view.Element {
	return view.Div(view.Text(msg)).
		Class("ps-placeholder").
		Style("padding: 2rem; text-align: center; opacity: 0.6; border: 1px dashed currentColor;")
}

func heading(ctx registry.RenderContext, tag, s string) view.Node {
	if s == "" {
		return nil
	}
	return view.El(tag, view.Text(s)).Style(style.Color(ctx.Style.TitleColor))
}

func para(ctx registry.RenderContext, s string) view.Node {
	if s == "" {
		return nil
	}
	return view.El("p", view.Text(s)).Style(style.Color(ctx.Style.DescriptionColor))
}

// href returns u when it is a safe link target and "#" otherwise.
func href(u string) string {
	if errors.ValidateURL(u) != nil {
		return "#"
	}
	return u
}

func anchor(label, u string) *view.Element {
	return view.El("a", view.Text(label)).Set("href", href(u))
}

func button(ctx registry.RenderContext, b *model.Button) view.Node {
	if b == nil || b.Label == "" {
		return nil
	}
	return anchor(b.Label, b.Href).Class("ps-button").Style(ctx.Style.Accent() + " padding: 0.5rem 1rem; text-decoration: none;")
}

// image renders an img for safe sources only.
func image(src, alt string) view.Node {
	if src == "" || errors.ValidateURL(src) != nil {
		return nil
	}
	return view.El("img").Set("src", src).Set("alt", alt).Set("loading", "lazy")
}

func links(items []model.Link) view.Node {
	if len(items) == 0 {
		return nil
	}
	ul := view.El("ul").Class("ps-links")
	for _, l := range items {
		ul.Append(view.El("li", anchor(l.Label, l.URL)))
	}
	return ul
}

// linkControls edits a []model.Link field reached through get.
func linkControls[T model.Payload](ctx registry.RenderContext, list string, items []model.Link, get func(p T) *[]model.Link) []view.Node {
	var out []view.Node
	for i, l := range items {
		out = append(out,
			textInput(ctx, itemField(list, i, "label"), "Link label", l.Label, func(p T, v string) { (*get(p))[i].Label = v }),
			urlInput(ctx, itemField(list, i, "url"), "Link URL", l.URL, func(p T, v string) { (*get(p))[i].URL = v }),
			removeItem(ctx, list, i,
				func(p T) int { return len(*get(p)) },
				func(p T, i int) { *get(p) = slices.Delete(*get(p), i, i+1) }),
		)
	}
	out = append(out, addItem(ctx, list, "Add link", "Link label", func(p T, v string) {
		*get(p) = append(*get(p), model.Link{Label: v, URL: "#"})
	}))
	return out
}

func buttonControls[T model.Payload](ctx registry.RenderContext, b *model.Button, get func(p T) **model.Button) []view.Node {
	cur := model.Button{}
	if b != nil {
		cur = *b
	}
	ensure := func(p T) *model.Button {
		bp := get(p)
		if *bp == nil {
			*bp = &model.Button{}
		}
		return *bp
	}
	return []view.Node{
		textInput(ctx, "button.label", "Button label", cur.Label, func(p T, v string) {
			if v == "" {
				*get(p) = nil
				return
			}
			ensure(p).Label = v
		}),
		urlInput(ctx, "button.href", "Button link", cur.Href, func(p T, v string) { ensure(p).Href = v }),
	}
}

func splitList(s, sep string) []string {
	var out []string
	for _, part := range strings.Split(s, sep) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

var alignments = []string{"left", "center", "right"}

func alignStyle(a string) string {
	if !slices.Contains(alignments, a) || a == "left" {
		return ""
	}
	return "text-align: " + a + ";"
}
