package cache

// ScopedKeyer prefixes every key of an inner Keyer, so pagesmith entries
// can share a Redis database with other applications.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "pagesmith:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer returns a keyer prepending prefix. A nil inner keyer means
// the default layout.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// PageKey generates a prefixed key for a rendered page.
func (k *ScopedKeyer) PageKey(documentHash string, opts PageKeyOpts) string {
	return k.prefix + k.inner.PageKey(documentHash, opts)
}

// SiteKey generates a prefixed key for a slug's published hash.
func (k *ScopedKeyer) SiteKey(slug string) string {
	return k.prefix + k.inner.SiteKey(slug)
}
