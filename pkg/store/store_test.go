package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/pagesmith/pkg/errors"
	"github.com/matzehuels/pagesmith/pkg/model"
)

const legacyWebsite = `{
	"title": "Old",
	"slug": "old",
	"status": "draft",
	"components": [
		{"id": "g1", "type": "gallery", "mode": "grid", "columns": 2, "spacing": "1rem",
		 "images": ["https://example.com/a.png", {"url": "https://example.com/b.png"}],
		 "styles": {"borderRadius": 8}}
	],
	"designPalette": {"primaryColor": "#000000"}
}`

func backends(t *testing.T) map[string]Store {
	t.Helper()
	dir := t.TempDir()
	file, err := NewFileStore(filepath.Join(dir, "files"))
	require.NoError(t, err)
	sqlite, err := OpenSQLite(filepath.Join(dir, "db", "sites.db"))
	require.NoError(t, err)
	out := map[string]Store{
		"memory": NewMemoryStore(),
		"file":   file,
		"sqlite": sqlite,
	}
	if uri := os.Getenv("PAGESMITH_TEST_MONGO_URI"); uri != "" {
		mongo, err := NewMongoStore(context.Background(), MongoConfig{
			URI:        uri,
			Collection: "websites_" + time.Now().Format("150405.000000"),
		})
		require.NoError(t, err)
		out["mongo"] = mongo
	}
	t.Cleanup(func() {
		for _, s := range out {
			_ = s.Close()
		}
	})
	return out
}

func sampleRequest(t *testing.T) SaveRequest {
	t.Helper()
	var text model.Record
	require.NoError(t, json.Unmarshal([]byte(
		`{"id":"t1","type":"text","content":"hello","futureField":{"a":1}}`), &text))
	return SaveRequest{
		Title: "My Site",
		Components: []model.Record{
			model.NewRecord("h1", &model.Header{Title: "Welcome"}),
			text,
		},
		DesignPalette: model.DefaultPalette(),
		SEOSettings:   model.SEOSettings{Title: "My Site", Keywords: []string{"a", "b"}},
	}
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			req := sampleRequest(t)
			res, err := s.SaveWebsite(ctx, "", req)
			require.NoError(t, err)
			require.NotEmpty(t, res.ID)
			assert.Equal(t, "my-site.pagesmith.site", res.Domain)

			w, err := s.LoadWebsite(ctx, res.ID)
			require.NoError(t, err)
			assert.Equal(t, res.ID, w.ID)
			assert.Equal(t, "my-site", w.Slug)
			assert.Equal(t, model.StatusDraft, w.Status)
			assert.Equal(t, model.SchemaVersion, w.SchemaVersion)
			assert.Equal(t, req.DesignPalette, w.DesignPalette)
			assert.Equal(t, req.SEOSettings, w.SEOSettings)
			require.Len(t, w.Components, 2)
			for i := range req.Components {
				assert.True(t, req.Components[i].Equal(w.Components[i]), "component %d", i)
			}
			assert.JSONEq(t, `{"a":1}`, string(w.Components[1].Extra["futureField"]))

			bySlug, err := s.FindBySlug(ctx, "my-site")
			require.NoError(t, err)
			assert.Equal(t, res.ID, bySlug.ID)
		})
	}
}

func TestStoreUpdateKeepsID(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			req := sampleRequest(t)
			first, err := s.SaveWebsite(ctx, "", req)
			require.NoError(t, err)

			req.Title = "Renamed"
			req.Slug = "renamed"
			req.Components = req.Components[:1]
			second, err := s.SaveWebsite(ctx, first.ID, req)
			require.NoError(t, err)
			assert.Equal(t, first.ID, second.ID)
			assert.Equal(t, "renamed.pagesmith.site", second.Domain)

			w, err := s.LoadWebsite(ctx, first.ID)
			require.NoError(t, err)
			assert.Equal(t, "Renamed", w.Title)
			assert.Len(t, w.Components, 1)

			_, err = s.FindBySlug(ctx, "my-site")
			assert.True(t, errors.Is(err, errors.ErrCodeNotFound))

			list, err := s.ListWebsites(ctx)
			require.NoError(t, err)
			require.Len(t, list, 1)
			assert.Equal(t, 1, list[0].Components)
		})
	}
}

func TestStoreSlugTaken(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.SaveWebsite(ctx, "", SaveRequest{Title: "Taken"})
			require.NoError(t, err)
			_, err = s.SaveWebsite(ctx, "", SaveRequest{Title: "Other", Slug: "taken"})
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrCodeValidation))
			assert.False(t, errors.Retryable(err))
		})
	}
}

func TestStoreMissingAndDelete(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.LoadWebsite(ctx, "missing")
			assert.True(t, errors.Is(err, errors.ErrCodeNotFound))

			res, err := s.SaveWebsite(ctx, "", SaveRequest{Title: "Gone"})
			require.NoError(t, err)
			require.NoError(t, s.DeleteWebsite(ctx, res.ID))
			require.NoError(t, s.DeleteWebsite(ctx, res.ID))

			_, err = s.LoadWebsite(ctx, res.ID)
			assert.True(t, errors.Is(err, errors.ErrCodeNotFound))
			_, err = s.FindBySlug(ctx, "gone")
			assert.True(t, errors.Is(err, errors.ErrCodeNotFound))
		})
	}
}

func TestListOrder(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { clock = clock.Add(time.Minute); return clock }

	a, err := s.SaveWebsite(ctx, "", SaveRequest{Title: "A"})
	require.NoError(t, err)
	b, err := s.SaveWebsite(ctx, "", SaveRequest{Title: "B"})
	require.NoError(t, err)

	list, err := s.ListWebsites(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, b.ID, list[0].ID)
	assert.Equal(t, a.ID, list[1].ID)
}

func TestLegacyDocumentsMigrate(t *testing.T) {
	ctx := context.Background()

	check := func(t *testing.T, w model.WebsiteRecord) {
		t.Helper()
		assert.Equal(t, model.SchemaVersion, w.SchemaVersion)
		require.Len(t, w.Components, 1)
		g, ok := model.PayloadAs[*model.Gallery](w.Components[0])
		require.True(t, ok)
		require.Len(t, g.Images, 2)
		assert.Equal(t, "https://example.com/a.png", g.Images[0].URL)
		assert.Equal(t, "8px", w.Components[0].Styles["borderRadius"])
	}

	t.Run("memory", func(t *testing.T) {
		s := NewMemoryStore()
		s.Put("legacy", []byte(legacyWebsite))
		w, err := s.LoadWebsite(ctx, "legacy")
		require.NoError(t, err)
		assert.Equal(t, "legacy", w.ID)
		check(t, w)
	})

	t.Run("file", func(t *testing.T) {
		s, err := NewFileStore(t.TempDir())
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(s.Path(), "legacy.json"), []byte(legacyWebsite), 0644))
		w, err := s.LoadWebsite(ctx, "legacy")
		require.NoError(t, err)
		check(t, w)

		bySlug, err := s.FindBySlug(ctx, "old")
		require.NoError(t, err)
		assert.Equal(t, "legacy", bySlug.ID)
	})
}

func TestCorruptDocument(t *testing.T) {
	s := NewMemoryStore()
	s.Put("bad", []byte("{not json"))
	_, err := s.LoadWebsite(context.Background(), "bad")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidDocument))
}

func TestCancelledContextIsPersistenceFailure(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewMemoryStore().SaveWebsite(ctx, "", SaveRequest{Title: "x"})
	require.Error(t, err)
	assert.True(t, errors.Retryable(err))
}

func TestPrepare(t *testing.T) {
	now := time.Date(2026, 3, 4, 5, 6, 7, 0, time.FixedZone("x", 3600))

	tests := []struct {
		name       string
		id         string
		req        SaveRequest
		wantSlug   string
		wantDomain string
		wantErr    bool
	}{
		{"slug from title", "w1", SaveRequest{Title: "Jane's  Portfolio!"}, "jane-s-portfolio", "jane-s-portfolio.pagesmith.site", false},
		{"explicit slug and domain", "w1", SaveRequest{Slug: "jane", Domain: "jane.dev"}, "jane", "jane.dev", false},
		{"slug from id", "W-1", SaveRequest{}, "site-w-1", "site-w-1.pagesmith.site", false},
		{"invalid slug", "w1", SaveRequest{Slug: "Not Valid"}, "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := Prepare(tt.id, tt.req, now)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSlug, w.Slug)
			assert.Equal(t, tt.wantDomain, w.Domain)
			assert.Equal(t, model.StatusDraft, w.Status)
			assert.Equal(t, time.UTC, w.UpdatedAt.Location())
			assert.NotNil(t, w.Components)
		})
	}
}

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Hello World":  "hello-world",
		"  --Trim--  ": "trim",
		"Café 2026":    "caf-2026",
		"":             "",
	}
	for in, want := range tests {
		if got := Slugify(in); got != want {
			t.Errorf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
	if long := Slugify("a " + strings.Repeat("b", 80)); len(long) > 64 {
		t.Errorf("Slugify produced %d bytes", len(long))
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	tests := []struct {
		uri  string
		want any
	}{
		{"memory:", &MemoryStore{}},
		{"", &MemoryStore{}},
		{"file:" + filepath.Join(dir, "sites"), &FileStore{}},
		{"sqlite:" + filepath.Join(dir, "sites.db"), &SQLiteStore{}},
	}
	for _, tt := range tests {
		s, err := Open(ctx, tt.uri)
		require.NoError(t, err, tt.uri)
		assert.IsType(t, tt.want, s)
		require.NoError(t, s.Close())
	}

	_, err := Open(ctx, "ftp://nope")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
}
