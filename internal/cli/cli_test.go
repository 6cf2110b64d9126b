package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/pagesmith/pkg/errors"
	"github.com/matzehuels/pagesmith/pkg/model"
	"github.com/matzehuels/pagesmith/pkg/store"
	"github.com/matzehuels/pagesmith/pkg/style"
)

// isolate points every XDG directory and the store at a temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	t.Setenv("PAGESMITH_STORE", "file:"+filepath.Join(dir, "sites"))
	for _, env := range []string{"PAGESMITH_CACHE", "PAGESMITH_REDIS_URL", "PAGESMITH_ADDR",
		"PAGESMITH_PUBLIC_URL", "PAGESMITH_LOG_LEVEL"} {
		t.Setenv(env, "")
	}
	return dir
}

func execute(t *testing.T, args ...string) error {
	t.Helper()
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.ExecuteContext(t.Context())
}

// website loads the current website straight from the store.
func website(t *testing.T, dir string) model.WebsiteRecord {
	t.Helper()
	id, err := readCurrent()
	require.NoError(t, err)
	require.NotEmpty(t, id, "no current website")

	st, err := store.Open(context.Background(), "file:"+filepath.Join(dir, "sites"))
	require.NoError(t, err)
	defer st.Close()
	w, err := st.LoadWebsite(context.Background(), id)
	require.NoError(t, err)
	return w
}

func TestEditingWorkflow(t *testing.T) {
	dir := isolate(t)

	require.NoError(t, execute(t, "new", "Jane Doe", "--template", "minimal"))
	w := website(t, dir)
	assert.Equal(t, "Jane Doe", w.Title)
	assert.Equal(t, "jane-doe", w.Slug)
	require.Len(t, w.Components, 2)

	require.NoError(t, execute(t, "add", "gallery", "--at", "0"))
	w = website(t, dir)
	require.Len(t, w.Components, 3)
	gallery := w.Components[0]
	assert.Equal(t, model.TypeGallery, gallery.Type)

	require.NoError(t, execute(t, "set", gallery.ID, "columns=4", "mode=carousel",
		"--style", "primaryColor=#e11d48"))
	w = website(t, dir)
	g, ok := model.PayloadAs[*model.Gallery](w.Components[0])
	require.True(t, ok)
	assert.Equal(t, 4, g.Columns)
	assert.Equal(t, model.GalleryCarousel, g.Mode)
	assert.Equal(t, "#e11d48", w.Components[0].Styles[model.PropPrimaryColor])

	require.NoError(t, execute(t, "set", gallery.ID, "--style", "primaryColor="))
	w = website(t, dir)
	assert.NotContains(t, w.Components[0].Styles, model.PropPrimaryColor)

	require.NoError(t, execute(t, "move", gallery.ID, "--down"))
	w = website(t, dir)
	assert.Equal(t, gallery.ID, w.Components[1].ID)

	require.NoError(t, execute(t, "move", gallery.ID, "2"))
	w = website(t, dir)
	assert.Equal(t, gallery.ID, w.Components[2].ID)

	require.NoError(t, execute(t, "duplicate", gallery.ID))
	w = website(t, dir)
	require.Len(t, w.Components, 4)
	assert.Equal(t, model.TypeGallery, w.Components[3].Type)
	assert.NotEqual(t, gallery.ID, w.Components[3].ID)

	dup := w.Components[3].ID
	require.NoError(t, execute(t, "remove", dup))
	w = website(t, dir)
	require.Len(t, w.Components, 3)
	require.NoError(t, execute(t, "remove", dup), "removing twice is a no-op")
	w = website(t, dir)
	require.Len(t, w.Components, 3)

	preset := style.PresetNames()[0]
	require.NoError(t, execute(t, "theme", "--preset", preset))
	want, _ := style.Preset(preset)
	w = website(t, dir)
	assert.Equal(t, want, w.DesignPalette)

	require.NoError(t, execute(t, "theme", "primaryColor=#0f766e", "--font", "Georgia"))
	w = website(t, dir)
	assert.Equal(t, "#0f766e", w.DesignPalette.PrimaryColor)
	assert.Contains(t, w.DesignPalette.FontFamily, "Georgia")

	require.NoError(t, execute(t, "meta", "--slug", "jane", "--description", "Designer in Berlin", "--keywords", "design,portfolio"))
	w = website(t, dir)
	assert.Equal(t, "jane", w.Slug)
	assert.Equal(t, "Designer in Berlin", w.SEOSettings.Description)
	assert.Equal(t, []string{"design", "portfolio"}, w.SEOSettings.Keywords)
}

func TestPublishAndRender(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, execute(t, "new", "Acme Studio", "--template", "minimal"))

	out := filepath.Join(dir, "public")
	require.NoError(t, execute(t, "publish", "-o", out, "--base-url", "https://acme.example.com"))

	page, err := os.ReadFile(filepath.Join(out, "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(page), "<!DOCTYPE html>")
	assert.Contains(t, string(page), "Acme Studio")
	assert.Contains(t, string(page), "https://acme.example.com")
	assert.Equal(t, model.StatusPublished, website(t, dir).Status)

	// A second publish of unchanged content is served from the cache.
	require.NoError(t, execute(t, "publish", "-o", out))

	preview := filepath.Join(dir, "preview.html")
	require.NoError(t, execute(t, "render", "-o", preview))
	data, err := os.ReadFile(preview)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Hello")

	edit := filepath.Join(dir, "edit.html")
	require.NoError(t, execute(t, "render", "--mode", "edit", "-o", edit))
	data, err = os.ReadFile(edit)
	require.NoError(t, err)
	assert.NotEqual(t, "", string(data))
	assert.NotContains(t, string(data), "<!DOCTYPE html>")
}

func TestUseListDelete(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, execute(t, "new", "First"))
	first := website(t, dir).ID
	require.NoError(t, execute(t, "new", "Second"))
	second := website(t, dir).ID
	require.NotEqual(t, first, second)

	require.NoError(t, execute(t, "list"))
	require.NoError(t, execute(t, "use", first))
	cur, err := readCurrent()
	require.NoError(t, err)
	assert.Equal(t, first, cur)

	require.NoError(t, execute(t, "show", "--site", second))

	require.NoError(t, execute(t, "delete", first))
	cur, err = readCurrent()
	require.NoError(t, err)
	assert.Empty(t, cur)

	err = execute(t, "use", first)
	assert.True(t, errors.Is(err, errors.ErrCodeNotFound), "got %v", err)
}

func TestCommandErrors(t *testing.T) {
	isolate(t)

	err := execute(t, "add", "header")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput), "no current site: %v", err)

	require.NoError(t, execute(t, "new", "Errors"))

	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"unknown type", []string{"add", "hologram"}, errors.ErrCodeUnknownComponentType},
		{"bad assignment", []string{"set", "nope", "title"}, errors.ErrCodeInvalidInput},
		{"nothing to set", []string{"set", "nope"}, errors.ErrCodeInvalidInput},
		{"bad palette color", []string{"theme", "primaryColor=url(evil)"}, errors.ErrCodeValidation},
		{"unknown preset", []string{"theme", "--preset", "neon-zebra"}, errors.ErrCodeInvalidInput},
		{"bad status", []string{"meta", "--status", "archived"}, errors.ErrCodeInvalidInput},
		{"move without target", []string{"move", "nope"}, errors.ErrCodeInvalidInput},
		{"move missing component", []string{"move", "nope", "1"}, errors.ErrCodeNotFound},
		{"bad mode", []string{"render", "--mode", "print"}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.GetCode(err), "%v", err)
		})
	}
}

func TestImageFromFile(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, execute(t, "new", "Images", "--template", "minimal"))
	header := website(t, dir).Components[0]

	path := filepath.Join(dir, "hero.png")
	require.NoError(t, os.WriteFile(path, []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), 0o644))
	require.NoError(t, execute(t, "image", header.ID, "backgroundImage", path))

	h, ok := model.PayloadAs[*model.Header](website(t, dir).Components[0])
	require.True(t, ok)
	assert.Contains(t, h.BackgroundImage, "data:image/png;base64,")
}

func TestSetTextWithColon(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, execute(t, "new", "Colons", "--template", "minimal"))
	header := website(t, dir).Components[0]
	require.Equal(t, model.TypeHeader, header.Type)

	require.NoError(t, execute(t, "set", header.ID, "title=Role: Engineer"))
	h, ok := model.PayloadAs[*model.Header](website(t, dir).Components[0])
	require.True(t, ok)
	assert.Equal(t, "Role: Engineer", h.Title)
}

func TestParseFields(t *testing.T) {
	got, err := parseFields([]string{
		"columns=3",
		"autoplay=true",
		"title=Hello: world",
		"color=#e11d48",
		"tags=[a, b]",
		"role=Role: Engineer",
		"note=a: b: c",
		"empty=",
	})
	require.NoError(t, err)
	assert.Equal(t, 3, got["columns"])
	assert.Equal(t, true, got["autoplay"])
	assert.Equal(t, "Hello: world", got["title"])
	assert.Equal(t, "#e11d48", got["color"])
	assert.Equal(t, []any{"a", "b"}, got["tags"])
	assert.Equal(t, "Role: Engineer", got["role"])
	assert.Equal(t, "a: b: c", got["note"])
	assert.Equal(t, "", got["empty"])

	_, err = parseFields([]string{"=value"})
	assert.Error(t, err)
}
