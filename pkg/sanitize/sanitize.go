// Package sanitize cleans user supplied embed markup and wraps it in an
// isolated frame.
//
// Sanitization is defense in depth. The primary control is the sandbox: the
// cleaned markup is served through an iframe srcdoc with no sandbox
// allowances and a restrictive Content-Security-Policy, so it can reach
// neither the host document nor its storage.
//
// Removal is silent and best effort: [Embed] always returns usable markup
// and reports what it removed in [Result] for logging.
package sanitize

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/matzehuels/pagesmith/pkg/errors"
	"github.com/matzehuels/pagesmith/pkg/view"
)

// CSP is the Content-Security-Policy applied inside embed frames.
const CSP = "default-src 'none'; img-src https: data:; media-src https:; " +
	"style-src 'unsafe-inline'; font-src https: data:; frame-src https:"

// Result is the outcome of sanitizing one embed.
type Result struct {
	// HTML is the cleaned markup.
	HTML string
	// Removed lists what was stripped, e.g. "script", "onclick", "javascript: URL".
	Removed []string
}

// Unsafe reports whether anything was stripped.
func (r Result) Unsafe() bool {
	return len(r.Removed) > 0
}

// Err returns an UNSAFE_CONTENT error describing the removal, or nil.
// It is informational: the cleaned markup is still rendered.
func (r Result) Err() error {
	if !r.Unsafe() {
		return nil
	}
	return errors.New(errors.ErrCodeUnsafeContent, "removed %s from embed", strings.Join(r.Removed, ", "))
}

var (
	policyOnce sync.Once
	policy     *bluemonday.Policy
)

// Policy returns the shared embed policy: user generated content plus
// https iframes and a small set of inline styles.
func Policy() *bluemonday.Policy {
	policyOnce.Do(func() {
		p := bluemonday.UGCPolicy()
		p.AllowURLSchemes("https", "http", "mailto", "tel")
		p.RequireParseableURLs(true)
		p.AllowElements("iframe", "video", "audio", "source", "figure", "figcaption", "section")
		p.AllowAttrs("src", "width", "height", "title", "allowfullscreen").OnElements("iframe")
		p.AllowAttrs("src", "type", "controls", "width", "height", "poster").OnElements("video", "audio", "source")
		p.AllowStyles("color", "background-color", "text-align", "font-weight", "font-style",
			"margin", "padding", "width", "height", "border-radius").Globally()
		p.AllowAttrs("class").Globally()
		policy = p
	})
	return policy
}

// Embed sanitizes markup. Script and style elements, inline event handler
// attributes and javascript: URLs never survive.
func Embed(markup string) Result {
	removed := inspect(markup)
	clean := Policy().Sanitize(markup)
	return Result{HTML: strings.TrimSpace(clean), Removed: removed}
}

// inspect reports the dangerous constructs found in markup.
func inspect(markup string) []string {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(markup), body)
	if err != nil {
		return nil
	}

	seen := map[string]bool{}
	var out []string
	add := func(what string) {
		if !seen[what] {
			seen[what] = true
			out = append(out, what)
		}
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Script, atom.Style, atom.Object, atom.Embed, atom.Base, atom.Meta, atom.Link:
				add(n.Data)
			}
			for _, a := range n.Attr {
				key := strings.ToLower(a.Key)
				if strings.HasPrefix(key, "on") {
					add(key)
				}
				if isURLAttr(key) && isScriptURL(a.Val) {
					add("javascript: URL")
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range nodes {
		walk(n)
	}
	return out
}

func isURLAttr(key string) bool {
	switch key {
	case "href", "src", "action", "formaction", "xlink:href", "poster":
		return true
	}
	return false
}

func isScriptURL(v string) bool {
	v = strings.ToLower(strings.Map(func(r rune) rune {
		if r <= ' ' {
			return -1
		}
		return r
	}, v))
	return strings.HasPrefix(v, "javascript:") || strings.HasPrefix(v, "vbscript:")
}

// Frame wraps already cleaned markup into an isolated sandbox node.
func Frame(title, height, cleaned string) *view.Sandbox {
	return &view.Sandbox{
		Title:    title,
		Height:   height,
		Document: Document(cleaned),
	}
}

// Document builds the standalone document served inside the frame.
func Document(body string) string {
	var b strings.Builder
	b.WriteString(`<!DOCTYPE html><html><head><meta charset="utf-8">`)
	b.WriteString(`<meta http-equiv="Content-Security-Policy" content="`)
	b.WriteString(html.EscapeString(CSP))
	b.WriteString(`"><style>body{margin:0;font-family:system-ui,sans-serif}</style></head><body>`)
	b.WriteString(body)
	b.WriteString(`</body></html>`)
	return b.String()
}
