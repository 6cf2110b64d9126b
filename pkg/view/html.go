package view

import (
	"bytes"
	"io"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// RenderHTML serializes a tree as HTML. Controls become form inputs tagged
// with data-control so a client can post values back to Dispatch.
func RenderHTML(w io.Writer, n Node) error {
	for _, hn := range toHTML(n) {
		if err := html.Render(w, hn); err != nil {
			return err
		}
	}
	return nil
}

// RenderString is RenderHTML into a string.
func RenderString(n Node) (string, error) {
	var buf bytes.Buffer
	if err := RenderHTML(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ToHTMLNodes converts a tree into x/net/html nodes for embedding into a
// larger parsed document.
func ToHTMLNodes(n Node) []*html.Node {
	return toHTML(n)
}

func toHTML(n Node) []*html.Node {
	switch v := n.(type) {
	case nil:
		return nil
	case Text:
		return []*html.Node{{Type: html.TextNode, Data: string(v)}}
	case *Element:
		if v == nil {
			return nil
		}
		if v.Tag == "" {
			var out []*html.Node
			for _, c := range v.Children {
				out = append(out, toHTML(c)...)
			}
			return out
		}
		el := element(v.Tag, v.Attrs...)
		for _, c := range v.Children {
			for _, hn := range toHTML(c) {
				el.AppendChild(hn)
			}
		}
		return []*html.Node{el}
	case *Control:
		return []*html.Node{control(v)}
	case *Sandbox:
		height := FrameHeight(v.Height)
		return []*html.Node{element("iframe",
			Attr{"sandbox", ""},
			Attr{"srcdoc", v.Document},
			Attr{"title", v.Title},
			Attr{"referrerpolicy", "no-referrer"},
			Attr{"loading", "lazy"},
			Attr{"style", "width: 100%; height: " + height + "; border: 0;"},
		)}
	}
	return nil
}

func element(tag string, attrs ...Attr) *html.Node {
	hn := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
	for _, a := range attrs {
		hn.Attr = append(hn.Attr, html.Attribute{Key: a.Key, Val: a.Val})
	}
	return hn
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func control(c *Control) *html.Node {
	if c.Kind == KindButton {
		btn := element("button",
			Attr{"type", "button"},
			Attr{"data-control", c.ID},
			Attr{"name", c.ID},
			Attr{"value", c.Value},
		)
		btn.AppendChild(text(c.Label))
		return btn
	}

	label := element("label", Attr{"class", "ps-control"}, Attr{"data-control", c.ID})
	caption := element("span")
	caption.AppendChild(text(c.Label))
	label.AppendChild(caption)

	var input *html.Node
	switch c.Kind {
	case KindTextarea:
		input = element("textarea", Attr{"name", c.ID})
		input.AppendChild(text(c.Value))
	case KindSelect:
		input = element("select", Attr{"name", c.ID})
		for _, opt := range c.Options {
			o := element("option", Attr{"value", opt})
			if opt == c.Value {
				o.Attr = append(o.Attr, html.Attribute{Key: "selected"})
			}
			o.AppendChild(text(opt))
			input.AppendChild(o)
		}
	case KindToggle:
		input = element("input", Attr{"type", "checkbox"}, Attr{"name", c.ID})
		if c.Value == "true" {
			input.Attr = append(input.Attr, html.Attribute{Key: "checked"})
		}
	case KindColor, KindNumber:
		input = element("input", Attr{"type", c.Kind}, Attr{"name", c.ID}, Attr{"value", c.Value})
	default:
		input = element("input", Attr{"type", "text"}, Attr{"name", c.ID}, Attr{"value", c.Value})
	}
	label.AppendChild(input)
	return label
}
