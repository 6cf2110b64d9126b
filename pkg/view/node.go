package view

import (
	"strings"

	"github.com/matzehuels/pagesmith/pkg/errors"
)

// Node is a render tree node.
type Node interface {
	isNode()
}

// Attr is an element attribute.
type Attr struct {
	Key string
	Val string
}

// Element is an HTML element.
type Element struct {
	Tag      string
	Attrs    []Attr
	Children []Node
}

// Text is escaped character data.
type Text string

// Control kinds.
const (
	KindText     = "text"
	KindTextarea = "textarea"
	KindColor    = "color"
	KindSelect   = "select"
	KindNumber   = "number"
	KindToggle   = "toggle"
	KindButton   = "button"
)

// Control is an edit-mode input. Value reflects the current record data;
// Apply receives the new value and is expected to call the renderer's
// update callback with a complete next record.
type Control struct {
	ID      string
	Kind    string
	Label   string
	Value   string
	Options []string
	Apply   func(value string) error
}

// Sandbox is an isolated frame. Document is a complete HTML document that
// is rendered through srcdoc with no sandbox allowances.
type Sandbox struct {
	Title    string
	Height   string
	Document string
}

// DefaultFrameHeight is used when a sandbox has no valid height.
const DefaultFrameHeight = "300px"

// FrameHeight returns h when it is a plain CSS length and
// DefaultFrameHeight otherwise.
func FrameHeight(h string) string {
	h = strings.TrimSpace(h)
	if strings.HasPrefix(h, "theme:") || errors.ValidateLength(h) != nil {
		return DefaultFrameHeight
	}
	return h
}

func (*Element) isNode() {}
func (Text) isNode()     {}
func (*Control) isNode() {}
func (*Sandbox) isNode() {}

// El creates an element.
func El(tag string, children ...Node) *Element {
	return &Element{Tag: tag, Children: compact(children)}
}

// Div is shorthand for El("div", ...).
func Div(children ...Node) *Element { return El("div", children...) }

// Fragment groups nodes without introducing markup semantics.
func Fragment(children ...Node) *Element { return El("", children...) }

// Set sets an attribute and returns e.
func (e *Element) Set(key, val string) *Element {
	for i := range e.Attrs {
		if e.Attrs[i].Key == key {
			e.Attrs[i].Val = val
			return e
		}
	}
	e.Attrs = append(e.Attrs, Attr{Key: key, Val: val})
	return e
}

// Class sets the class attribute.
func (e *Element) Class(c string) *Element { return e.Set("class", c) }

// Style sets the style attribute. Empty styles are ignored.
func (e *Element) Style(css string) *Element {
	if css == "" {
		return e
	}
	return e.Set("style", css)
}

// Get returns an attribute value.
func (e *Element) Get(key string) string {
	for _, a := range e.Attrs {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// Append adds children and returns e.
func (e *Element) Append(children ...Node) *Element {
	e.Children = append(e.Children, compact(children)...)
	return e
}

func compact(nodes []Node) []Node {
	out := nodes[:0:0]
	for _, n := range nodes {
		if n == nil {
			continue
		}
		if e, ok := n.(*Element); ok && e == nil {
			continue
		}
		out = append(out, n)
	}
	return out
}

// Walk visits n and its descendants depth-first. Returning false from fn
// stops the walk.
func Walk(n Node, fn func(Node) bool) bool {
	if n == nil {
		return true
	}
	if !fn(n) {
		return false
	}
	if e, ok := n.(*Element); ok {
		for _, c := range e.Children {
			if !Walk(c, fn) {
				return false
			}
		}
	}
	return true
}

// Controls returns every control in tree order.
func Controls(n Node) []*Control {
	var out []*Control
	Walk(n, func(n Node) bool {
		if c, ok := n.(*Control); ok {
			out = append(out, c)
		}
		return true
	})
	return out
}

// Find returns the control with the given id.
func Find(n Node, id string) (*Control, bool) {
	var found *Control
	Walk(n, func(n Node) bool {
		if c, ok := n.(*Control); ok && c.ID == id {
			found = c
			return false
		}
		return true
	})
	return found, found != nil
}

// Dispatch routes a UI event carrying value to the control with the given
// id. It returns NOT_FOUND when no such control exists in the tree.
func Dispatch(n Node, id, value string) error {
	c, ok := Find(n, id)
	if !ok {
		return errors.New(errors.ErrCodeNotFound, "control %q not found", id)
	}
	if c.Apply == nil {
		return errors.New(errors.ErrCodeUnsupported, "control %q is read-only", id)
	}
	return c.Apply(value)
}

// PlainText flattens the visible text of a tree, one block per line.
// Controls render as "[label: value]"; sandboxes as their title.
func PlainText(n Node) string {
	var b strings.Builder
	plain(&b, n)
	lines := strings.Split(b.String(), "\n")
	out := lines[:0]
	for _, l := range lines {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return strings.Join(out, "\n")
}

var blockTags = map[string]bool{
	"div": true, "section": true, "header": true, "footer": true, "nav": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "p": true, "li": true,
	"figure": true, "article": true, "blockquote": true, "hr": true,
}

func plain(b *strings.Builder, n Node) {
	switch v := n.(type) {
	case Text:
		b.WriteString(string(v))
	case *Control:
		b.WriteString("[" + v.Label + ": " + v.Value + "]\n")
	case *Sandbox:
		b.WriteString("[embed: " + v.Title + "]\n")
	case *Element:
		if v.Tag == "img" {
			b.WriteString("[image " + v.Get("alt") + "]\n")
		}
		for _, c := range v.Children {
			plain(b, c)
			if _, ok := c.(Text); ok {
				b.WriteByte(' ')
			}
		}
		if blockTags[v.Tag] {
			b.WriteByte('\n')
		}
	}
}
