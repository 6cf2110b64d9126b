package store

import (
	"context"
	"encoding/json"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/matzehuels/pagesmith/pkg/errors"
	"github.com/matzehuels/pagesmith/pkg/idgen"
	"github.com/matzehuels/pagesmith/pkg/model"
)

// DefaultDomainSuffix is appended to the slug when a website has no custom domain.
const DefaultDomainSuffix = ".pagesmith.site"

// Store is the interface for website persistence backends.
type Store interface {
	// LoadWebsite returns the website with the given id, migrated to the
	// current schema version.
	LoadWebsite(ctx context.Context, id string) (model.WebsiteRecord, error)

	// SaveWebsite creates (empty id) or replaces a website.
	SaveWebsite(ctx context.Context, id string, req SaveRequest) (SaveResult, error)

	// ListWebsites returns summaries, most recently updated first.
	ListWebsites(ctx context.Context) ([]Summary, error)

	// FindBySlug returns the website published under slug.
	FindBySlug(ctx context.Context, slug string) (model.WebsiteRecord, error)

	// DeleteWebsite removes a website. Deleting a missing id is not an error.
	DeleteWebsite(ctx context.Context, id string) error

	Close() error
}

// SaveRequest is the payload of a save: the editable parts of a website.
type SaveRequest struct {
	Title         string              `json:"title"`
	Slug          string              `json:"slug,omitempty"`
	Domain        string              `json:"domain,omitempty"`
	Status        model.Status        `json:"status,omitempty"`
	Components    []model.Record      `json:"components"`
	DesignPalette model.DesignPalette `json:"designPalette"`
	SEOSettings   model.SEOSettings   `json:"seoSettings"`
}

// SaveResult reports where a saved website lives.
type SaveResult struct {
	ID     string `json:"id"`
	Domain string `json:"domain"`
}

// Summary is a list entry.
type Summary struct {
	ID         string       `json:"id"`
	Title      string       `json:"title"`
	Slug       string       `json:"slug"`
	Status     model.Status `json:"status"`
	Components int          `json:"components"`
	UpdatedAt  time.Time    `json:"updatedAt"`
}

// Summarize builds the list entry for w.
func Summarize(w model.WebsiteRecord) Summary {
	return Summary{
		ID:         w.ID,
		Title:      w.Title,
		Slug:       w.Slug,
		Status:     w.Status,
		Components: len(w.Components),
		UpdatedAt:  w.UpdatedAt,
	}
}

// =============================================================================
// Request preparation
// =============================================================================

// Prepare validates req and turns it into the record a backend persists.
// An empty id mints a new one; an empty slug is derived from the title; an
// empty domain is derived from the slug.
func Prepare(id string, req SaveRequest, now time.Time) (model.WebsiteRecord, error) {
	if id == "" {
		id = idgen.New()
	}
	slug := req.Slug
	if slug == "" {
		slug = Slugify(req.Title)
	}
	if slug == "" {
		slug = Slugify("site-" + id)
	}
	if err := errors.ValidateSlug(slug); err != nil {
		return model.WebsiteRecord{}, err
	}
	domain := req.Domain
	if domain == "" {
		domain = slug + DefaultDomainSuffix
	}
	status := req.Status
	if status == "" {
		status = model.StatusDraft
	}
	components := req.Components
	if components == nil {
		components = []model.Record{}
	}
	return model.WebsiteRecord{
		ID:            id,
		Title:         req.Title,
		Slug:          slug,
		Domain:        domain,
		Status:        status,
		Components:    components,
		DesignPalette: req.DesignPalette,
		SEOSettings:   req.SEOSettings,
		SchemaVersion: model.SchemaVersion,
		UpdatedAt:     now.UTC(),
	}, nil
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases s and joins its alphanumeric runs with hyphens. The
// result is at most 64 bytes long.
func Slugify(s string) string {
	slug := strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(s), "-"), "-")
	if len(slug) > 64 {
		slug = strings.TrimRight(slug[:64], "-")
	}
	return slug
}

// =============================================================================
// Envelope codec
// =============================================================================

// Encode serializes w with the current schema version.
func Encode(w model.WebsiteRecord) ([]byte, error) {
	w.SchemaVersion = model.SchemaVersion
	return json.Marshal(w)
}

// Decode migrates data to the current schema version and parses it.
func Decode(data []byte) (model.WebsiteRecord, error) {
	migrated, err := model.Migrate(data)
	if err != nil {
		return model.WebsiteRecord{}, err
	}
	var w model.WebsiteRecord
	if err := json.Unmarshal(migrated, &w); err != nil {
		return model.WebsiteRecord{}, errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode website")
	}
	if w.Components == nil {
		w.Components = []model.Record{}
	}
	return w, nil
}

// =============================================================================
// Errors
// =============================================================================

// NotFound is the error returned for a missing website.
func NotFound(id string) error {
	return errors.New(errors.ErrCodeNotFound, "website %q not found", id)
}

// SlugTaken is returned when another website already uses slug.
func SlugTaken(slug string) error {
	return errors.Validation("slug", "slug %q is already in use", slug)
}

// persistence wraps an I/O failure. Coded errors pass through unchanged so
// not-found and validation failures keep their meaning.
func persistence(err error, op, id string) error {
	if err == nil {
		return nil
	}
	if errors.GetCode(err) != "" {
		return err
	}
	return errors.Wrap(errors.ErrCodePersistence, err, "%s website %s", op, id)
}

func sortSummaries(out []Summary) {
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].UpdatedAt.After(out[j].UpdatedAt)
		}
		return out[i].ID < out[j].ID
	})
}

// =============================================================================
// URI dispatch
// =============================================================================

// Open returns the backend named by uri. See the package documentation for
// the accepted forms.
func Open(ctx context.Context, uri string) (Store, error) {
	var (
		s   Store
		err error
	)
	switch {
	case uri == "" || uri == "memory:" || uri == "memory":
		return NewMemoryStore(), nil
	case strings.HasPrefix(uri, "file:"):
		s, err = NewFileStore(strings.TrimPrefix(uri, "file:"))
	case strings.HasPrefix(uri, "sqlite:"):
		s, err = OpenSQLite(strings.TrimPrefix(uri, "sqlite:"))
	case strings.HasPrefix(uri, "mongodb://"), strings.HasPrefix(uri, "mongodb+srv://"):
		s, err = NewMongoStore(ctx, MongoConfig{URI: uri})
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "unsupported store URI %q", uri)
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}
