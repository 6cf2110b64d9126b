package cache

// PageKeyOpts are the render inputs that change a published page besides
// the document itself.
type PageKeyOpts struct {
	Mode       string `json:"mode"`
	BaseURL    string `json:"base_url,omitempty"`
	Standalone bool   `json:"standalone,omitempty"`
	Lang       string `json:"lang,omitempty"`
}

// Keyer builds cache keys.
type Keyer interface {
	// PageKey is the key of a rendered page for a document hash.
	PageKey(documentHash string, opts PageKeyOpts) string

	// SiteKey is the key holding the latest document hash published for a slug.
	SiteKey(slug string) string
}

// DefaultKeyer is the standard key layout:
//
//	page:<sha256(hash, opts)>
//	site:<slug>
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

func (DefaultKeyer) PageKey(documentHash string, opts PageKeyOpts) string {
	return hashKey("page", documentHash, opts)
}

func (DefaultKeyer) SiteKey(slug string) string {
	return "site:" + slug
}
