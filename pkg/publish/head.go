package publish

import (
	"strings"

	"github.com/matzehuels/pagesmith/pkg/errors"
	"github.com/matzehuels/pagesmith/pkg/model"
	"github.com/matzehuels/pagesmith/pkg/view"
)

// BaseCSS is the stylesheet shared by every published page. Component
// colors and spacing are inline; this only covers layout primitives.
const BaseCSS = `*,*::before,*::after{box-sizing:border-box}
body{margin:0}
img{max-width:100%;height:auto}
.ps-page{display:flex;flex-direction:column}
.ps-gallery-grid,.ps-project-grid,.ps-review-grid{display:grid;gap:1rem}
.ps-carousel{position:relative;overflow:hidden}
.ps-carousel-track{display:flex;transition:transform .4s ease}
.ps-slide{flex:0 0 100%}
.ps-marquee{overflow:hidden}
.ps-marquee-track{display:flex;width:max-content}
.ps-menu,.ps-links,.ps-tags{display:flex;flex-wrap:wrap;gap:1rem;list-style:none;padding:0}
.ps-error .ps-placeholder{min-height:2rem}
`

// Head builds the document head of a published page: charset, viewport,
// policy, title and the SEO tags that are set.
func Head(w model.WebsiteRecord, opts Options) *view.Element {
	seo := w.SEOSettings
	title := firstNonEmpty(seo.Title, w.Title, "Untitled")

	h := view.El("head",
		view.El("meta").Set("charset", "utf-8"),
		meta("viewport", "width=device-width, initial-scale=1"),
		view.El("meta").Set("http-equiv", "Content-Security-Policy").Set("content", DefaultCSP),
		view.El("title", view.Text(title)),
		property("og:title", title),
	)
	if d := strings.TrimSpace(seo.Description); d != "" {
		h.Append(meta("description", d), property("og:description", d))
	}
	if kw := keywords(seo.Keywords); kw != "" {
		h.Append(meta("keywords", kw))
	}
	if safeURL(seo.OGImage) {
		h.Append(property("og:image", seo.OGImage))
	}
	if opts.BaseURL != "" {
		h.Append(
			view.El("link").Set("rel", "canonical").Set("href", opts.BaseURL+"/"),
			property("og:url", opts.BaseURL+"/"),
		)
	}
	if safeURL(seo.Favicon) {
		h.Append(view.El("link").Set("rel", "icon").Set("href", seo.Favicon))
	}
	h.Append(view.El("style", view.Text(BaseCSS)))
	return h
}

func meta(name, content string) *view.Element {
	return view.El("meta").Set("name", name).Set("content", content)
}

func property(name, content string) *view.Element {
	return view.El("meta").Set("property", name).Set("content", content)
}

func keywords(kws []string) string {
	out := make([]string, 0, len(kws))
	for _, k := range kws {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	return strings.Join(out, ", ")
}

func safeURL(u string) bool {
	return u != "" && errors.ValidateURL(u) == nil
}
