package publish

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pagesmith/pkg/cache"
	"github.com/matzehuels/pagesmith/pkg/errors"
	"github.com/matzehuels/pagesmith/pkg/model"
)

func website() model.WebsiteRecord {
	return model.WebsiteRecord{
		ID:     "site-1",
		Title:  "Ada's Portfolio",
		Slug:   "ada",
		Status: model.StatusPublished,
		Components: []model.Record{
			model.NewRecord("h1", &model.Header{Title: "Welcome"}),
			model.NewRecord("t1", &model.Text{Content: "Hello there"}),
		},
		DesignPalette: model.DefaultPalette(),
		SEOSettings: model.SEOSettings{
			Title:       "Ada Lovelace",
			Description: "Analyst",
			Keywords:    []string{"math", " ", "engines"},
			OGImage:     "https://img.example/og.png",
			Favicon:     "javascript:alert(1)",
		},
		SchemaVersion: model.SchemaVersion,
	}
}

func newRunner(t *testing.T) *Runner {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	return NewRunner(c, nil, nil, log.New(io.Discard))
}

func TestPublishPage(t *testing.T) {
	r := newRunner(t)
	res, err := r.Publish(context.Background(), website(), Options{BaseURL: "https://ada.example/"})
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	page := string(res.HTML)

	for _, want := range []string{
		"<!DOCTYPE html>",
		`<html lang="en">`,
		"<title>Ada Lovelace</title>",
		`<meta name="description" content="Analyst"/>`,
		`<meta name="keywords" content="math, engines"/>`,
		`<meta property="og:image" content="https://img.example/og.png"/>`,
		`<link rel="canonical" href="https://ada.example/"/>`,
		"Content-Security-Policy",
		"Welcome",
		"Hello there",
		`data-mode="preview"`,
	} {
		if !strings.Contains(page, want) {
			t.Errorf("page missing %q", want)
		}
	}
	for _, bad := range []string{`data-mode="edit"`, "data-control", "javascript:"} {
		if strings.Contains(page, bad) {
			t.Errorf("page contains %q", bad)
		}
	}
	if res.CacheHit {
		t.Error("first publish should miss the cache")
	}
	if res.Stats.Components != 2 {
		t.Errorf("Components = %d, want 2", res.Stats.Components)
	}
}

func TestPublishEscapesTitle(t *testing.T) {
	w := website()
	w.SEOSettings.Title = "</title><script>x()</script>"
	page, err := NewRunner(nil, nil, nil, log.New(io.Discard)).Render(w, Options{})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Contains(string(page), "<script>") {
		t.Errorf("title not escaped: %s", page)
	}
}

func TestPublishCaching(t *testing.T) {
	ctx := context.Background()
	r := newRunner(t)
	w := website()

	first, err := r.Publish(ctx, w, Options{})
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}

	w.UpdatedAt = time.Now()
	second, err := r.Publish(ctx, w, Options{})
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if !second.CacheHit {
		t.Error("unchanged content should hit the cache")
	}
	if string(second.HTML) != string(first.HTML) || second.Hash != first.Hash {
		t.Error("cached page differs from the rendered one")
	}

	refreshed, err := r.Publish(ctx, w, Options{Refresh: true})
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if refreshed.CacheHit {
		t.Error("Refresh should bypass the cache")
	}

	w.Components[1] = model.NewRecord("t1", &model.Text{Content: "Changed"})
	third, err := r.Publish(ctx, w, Options{})
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if third.CacheHit || third.Hash == first.Hash {
		t.Error("edited content should produce a new page")
	}
	if !strings.Contains(string(third.HTML), "Changed") {
		t.Error("new page missing edited text")
	}
}

func TestLatestAndForget(t *testing.T) {
	ctx := context.Background()
	r := newRunner(t)

	if _, ok, err := r.Latest(ctx, "ada", Options{}); err != nil || ok {
		t.Fatalf("Latest before publish = %v, %v", ok, err)
	}

	res, err := r.Publish(ctx, website(), Options{})
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	latest, ok, err := r.Latest(ctx, "ada", Options{})
	if err != nil || !ok {
		t.Fatalf("Latest = %v, %v", ok, err)
	}
	if latest.Hash != res.Hash || string(latest.HTML) != string(res.HTML) {
		t.Error("Latest returned a different page")
	}

	if _, ok, _ := r.Latest(ctx, "ada", Options{BaseURL: "https://other.example"}); ok {
		t.Error("Latest should miss for options that were never published")
	}

	if err := r.Forget(ctx, "ada"); err != nil {
		t.Fatalf("Forget: %v", err)
	}
	if _, ok, _ := r.Latest(ctx, "ada", Options{}); ok {
		t.Error("Latest should miss after Forget")
	}
}

func TestFragment(t *testing.T) {
	ctx := context.Background()
	r := newRunner(t)
	res, err := r.Publish(ctx, website(), Options{Fragment: true})
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	page := string(res.HTML)
	if strings.Contains(page, "<!DOCTYPE") || strings.Contains(page, "<head>") {
		t.Errorf("fragment contains document wrapper: %s", page)
	}
	if !strings.HasPrefix(page, "<main") {
		t.Errorf("fragment should start with the page root: %s", page)
	}
	if _, ok, _ := r.Latest(ctx, "ada", Options{Fragment: true}); ok {
		t.Error("fragments should not be recorded as the site's latest page")
	}
}

func TestPublishIsolatesBrokenComponents(t *testing.T) {
	w := website()
	w.Components = append(w.Components, model.Record{ID: "x1", Type: model.Type("hologram")})
	res, err := NewRunner(nil, nil, nil, log.New(io.Discard)).Publish(context.Background(), w, Options{})
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	page := string(res.HTML)
	if !strings.Contains(page, "ps-error") || !strings.Contains(page, "Welcome") {
		t.Errorf("expected placeholder next to rendered components: %s", page)
	}
	if strings.Contains(page, "hologram") {
		t.Error("published placeholder should not name the component type")
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
		wantURL string
	}{
		{"empty", Options{}, false, ""},
		{"trailing slash", Options{BaseURL: "https://a.example/"}, false, "https://a.example"},
		{"ftp", Options{BaseURL: "ftp://a.example"}, true, ""},
		{"relative", Options{BaseURL: "/site"}, true, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, errors.ErrCodeValidation) {
					t.Errorf("err code = %s, want VALIDATION_FAILED", errors.GetCode(err))
				}
				return
			}
			if tt.opts.BaseURL != tt.wantURL {
				t.Errorf("BaseURL = %q, want %q", tt.opts.BaseURL, tt.wantURL)
			}
			if tt.opts.Lang != DefaultLang {
				t.Errorf("Lang = %q, want %q", tt.opts.Lang, DefaultLang)
			}
		})
	}
}

func TestHashIgnoresUpdatedAt(t *testing.T) {
	a := website()
	b := website()
	b.UpdatedAt = time.Now()
	ha, err := Hash(a)
	if err != nil {
		t.Fatal(err)
	}
	hb, _ := Hash(b)
	if ha != hb {
		t.Error("UpdatedAt changed the content hash")
	}
}
