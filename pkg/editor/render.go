package editor

import (
	"fmt"
	"strings"
	"time"

	"github.com/matzehuels/pagesmith/pkg/errors"
	"github.com/matzehuels/pagesmith/pkg/model"
	"github.com/matzehuels/pagesmith/pkg/observability"
	"github.com/matzehuels/pagesmith/pkg/registry"
	"github.com/matzehuels/pagesmith/pkg/style"
	"github.com/matzehuels/pagesmith/pkg/view"
)

// Render renders the whole page in mode. Components that fail are replaced
// by error placeholders; the rest of the page is unaffected.
func (s *Session) Render(mode registry.Mode) view.Node {
	s.mu.Lock()
	d := s.doc
	sel := s.sel
	s.mu.Unlock()

	start := time.Now()
	page := view.El("main").
		Class("ps-page").
		Set("data-mode", string(mode)).
		Style(PageCSS(d.Palette))

	failed := 0
	for _, rec := range d.Components {
		n, err := s.renderRecord(rec, d.Palette, mode)
		if err != nil {
			failed++
		}
		if el, ok := n.(*view.Element); ok && mode == registry.ModeEdit {
			if rec.ID == sel.Selected {
				el.Set("data-selected", "true")
			}
			if rec.ID == sel.Hovered {
				el.Set("data-hovered", "true")
			}
			if rec.ID == sel.Editing {
				el.Set("data-editing", "true")
			}
		}
		page.Append(n)
	}
	if len(d.Components) == 0 && mode == registry.ModeEdit {
		page.Append(view.Div(view.Text("This page is empty. Add a component to get started.")).
			Class("ps-empty"))
	}

	observability.Render().OnRenderComplete(string(mode), len(d.Components), failed, time.Since(start))
	return page
}

// RenderHTML renders the page to an HTML fragment.
func (s *Session) RenderHTML(mode registry.Mode) (string, error) {
	return view.RenderString(s.Render(mode))
}

// RenderComponent renders one component.
func (s *Session) RenderComponent(id string, mode registry.Mode) (view.Node, error) {
	s.mu.Lock()
	rec, ok := s.doc.Find(id)
	palette := s.doc.Palette
	s.mu.Unlock()
	if !ok {
		return nil, errors.NotFound(id)
	}
	n, _ := s.renderRecord(rec, palette, mode)
	return n, nil
}

// Dispatch applies an edit control value. Control ids start with the
// component id ("<componentID>.<field>..."); the component is rendered in
// edit mode and the matching control's action is run.
func (s *Session) Dispatch(controlID, value string) error {
	id, _, ok := strings.Cut(controlID, ".")
	if !ok {
		return errors.New(errors.ErrCodeInvalidInput, "invalid control id %q", controlID)
	}
	n, err := s.RenderComponent(id, registry.ModeEdit)
	if err != nil {
		return s.notFound("dispatch", id)
	}
	if err := view.Dispatch(n, controlID, value); err != nil {
		if !errors.Is(err, errors.ErrCodeNotFound) {
			s.logger.Debug("control rejected value", "control", controlID, "err", err)
		}
		return err
	}
	return nil
}

// renderRecord renders one record in isolation. The renderer sees a deep
// copy, so nothing it does can reach the document except through OnUpdate.
func (s *Session) renderRecord(rec model.Record, palette model.DesignPalette, mode registry.Mode) (n view.Node, err error) {
	entry, err := s.reg.Lookup(rec.Type)
	if err != nil {
		s.reportRenderError(rec, err)
		return errorPlaceholder(rec, mode, err), err
	}

	defer func() {
		if r := recover(); r != nil {
			err = errors.New(errors.ErrCodeRender, "render %s %s: %v", rec.Type, rec.ID, r)
			s.reportRenderError(rec, err)
			n = errorPlaceholder(rec, mode, err)
		}
	}()

	ctx := registry.RenderContext{
		Record:  rec.Clone(),
		Mode:    mode,
		Style:   style.Resolve(rec, palette, entry.StyleDefaults),
		Palette: palette,
		Notice: func(err error) {
			s.logger.Debug("render notice", "id", rec.ID, "type", rec.Type, "reason", errors.UserMessage(err))
		},
	}
	if mode == registry.ModeEdit {
		ctx.OnUpdate = func(next model.Record) {
			_ = s.Replace(next)
		}
	}
	n = entry.Renderer(ctx)
	if n == nil {
		n = view.Fragment()
	}
	return n, nil
}

func (s *Session) reportRenderError(rec model.Record, err error) {
	observability.Render().OnComponentError(string(rec.Type), rec.ID, err)
	s.logger.Warn("component render failed", "id", rec.ID, "type", rec.Type, "err", err)
}

// errorPlaceholder stands in for a component that could not be rendered.
// Preview shows a neutral block; edit mode also names the problem.
func errorPlaceholder(rec model.Record, mode registry.Mode, err error) *view.Element {
	el := view.El("section").
		Class("ps-component ps-error").
		Set("data-component-id", rec.ID).
		Set("data-mode", string(mode)).
		Set("role", "alert")
	if mode == registry.ModeEdit {
		msg := fmt.Sprintf("Cannot display %q component: %s", rec.Type, errors.UserMessage(err))
		el.Append(view.Div(view.Text(msg)).Class("ps-placeholder"))
	} else {
		el.Append(view.Div().Class("ps-placeholder"))
	}
	return el
}

// PageCSS is the inline style of the page root: background and font from
// the palette.
func PageCSS(p model.DesignPalette) string {
	var b strings.Builder
	if p.BackgroundColor != "" && style.Safe(p.BackgroundColor) {
		fmt.Fprintf(&b, "background-color: %s; ", p.BackgroundColor)
	}
	if p.FontFamily != "" && style.Safe(p.FontFamily) {
		fmt.Fprintf(&b, "font-family: %s; ", p.FontFamily)
	}
	if p.DescriptionColor != "" && style.Safe(p.DescriptionColor) {
		fmt.Fprintf(&b, "color: %s; ", p.DescriptionColor)
	}
	b.WriteString("min-height: 100%;")
	return b.String()
}
