package editor

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/pagesmith/pkg/components"
	"github.com/matzehuels/pagesmith/pkg/errors"
	"github.com/matzehuels/pagesmith/pkg/model"
	"github.com/matzehuels/pagesmith/pkg/registry"
	"github.com/matzehuels/pagesmith/pkg/store"
	"github.com/matzehuels/pagesmith/pkg/templates"
	"github.com/matzehuels/pagesmith/pkg/view"
)

func newSession(t *testing.T, opts Options) *Session {
	t.Helper()
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Retry.Attempts == 0 {
		opts.Retry = RetryPolicy{Attempts: 3, Delay: time.Millisecond}
	}
	return New(opts)
}

func ids(s *Session) []string { return s.Order() }

func TestInsertOrderAndSelection(t *testing.T) {
	s := newSession(t, Options{})

	h, err := s.Append(model.TypeHeader)
	require.NoError(t, err)
	txt, err := s.Insert(model.TypeText, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{txt.ID, h.ID}, ids(s))
	assert.True(t, s.Dirty())

	require.NoError(t, s.StartEditing(h.ID))
	s.Hover(h.ID)
	assert.Equal(t, Selection{Selected: h.ID, Hovered: h.ID, Editing: h.ID}, s.Selection())

	require.NoError(t, s.Remove(h.ID))
	assert.Equal(t, Selection{}, s.Selection(), "selection of a removed component is cleared")

	err = s.Select("missing")
	assert.True(t, errors.Is(err, errors.ErrCodeNotFound))
	require.NoError(t, s.Select(""))
}

func TestNoOpsDoNotTouchHistory(t *testing.T) {
	s := newSession(t, Options{})
	a, _ := s.Append(model.TypeText)
	_, _ = s.Append(model.TypeSpacer)
	require.True(t, s.Undo())
	require.True(t, s.Redo())
	version := s.Version()

	require.NoError(t, s.MoveUp(a.ID))
	assert.Equal(t, version, s.Version(), "moving the first component up is a no-op")
	assert.False(t, s.CanRedo())

	err := s.Remove("missing")
	assert.True(t, errors.Is(err, errors.ErrCodeNotFound))
	assert.Equal(t, version, s.Version())

	err = s.Move(0, 7)
	require.Error(t, err)
	assert.Equal(t, version, s.Version())

	require.NoError(t, s.Reorder(s.Order()))
	assert.Equal(t, version, s.Version(), "identity reorder is a no-op")
}

func TestUndoDiscardsRedoBranch(t *testing.T) {
	s := newSession(t, Options{})
	for i := 0; i < 5; i++ {
		_, err := s.Append(model.TypeText)
		require.NoError(t, err)
	}
	require.True(t, s.Undo())
	require.True(t, s.Undo())
	assert.Len(t, ids(s), 3)

	_, err := s.Append(model.TypeDivider)
	require.NoError(t, err)
	assert.False(t, s.CanRedo())
	assert.False(t, s.Redo())
	assert.Len(t, ids(s), 4)
}

func TestUndoRestoresExactDocument(t *testing.T) {
	s := newSession(t, Options{})
	h, _ := s.Append(model.TypeHeader)
	before := s.Document()

	require.NoError(t, s.Update(h.ID, map[string]any{"title": "Changed"}))
	require.True(t, s.Undo())

	after := s.Document()
	require.Len(t, after.Components, 1)
	assert.True(t, before.Components[0].Equal(after.Components[0]))
}

func TestHistoryIsBounded(t *testing.T) {
	s := newSession(t, Options{HistoryLimit: 50})
	for i := 0; i < 60; i++ {
		_, err := s.Append(model.TypeSpacer)
		require.NoError(t, err)
	}
	undos := 0
	for s.Undo() {
		undos++
	}
	assert.Equal(t, 49, undos)
	assert.Len(t, ids(s), 11)
}

func TestPaletteAndOverrideScenario(t *testing.T) {
	s := newSession(t, Options{})
	g, err := s.Append(model.TypeGallery)
	require.NoError(t, err)
	require.NoError(t, s.Dispatch(g.ID+".images.add", "https://example.com/a.png"))

	require.NoError(t, s.UpdatePalette(map[string]string{PalettePrimary: "#ff0000"}))
	html, err := s.RenderHTML(registry.ModePreview)
	require.NoError(t, err)
	assert.Contains(t, html, "#ff0000")

	require.NoError(t, s.Update(g.ID, map[string]any{"styles": map[string]string{"primaryColor": "#00ff00"}}))
	require.NoError(t, s.UpdatePalette(map[string]string{PalettePrimary: "#0000ff"}))

	html, err = s.RenderHTML(registry.ModePreview)
	require.NoError(t, err)
	assert.Contains(t, html, "#00ff00")
	assert.NotContains(t, html, "solid #0000ff")
}

func TestDispatch(t *testing.T) {
	s := newSession(t, Options{})
	h, _ := s.Append(model.TypeHeader)

	require.NoError(t, s.Dispatch(h.ID+".title", "Hello there"))
	rec, ok := s.Document().Find(h.ID)
	require.True(t, ok)
	hdr, _ := model.PayloadAs[*model.Header](rec)
	assert.Equal(t, "Hello there", hdr.Title)
	assert.True(t, s.CanUndo())

	g, _ := s.Append(model.TypeGallery)
	version := s.Version()
	err := s.Dispatch(g.ID+".images.add", "  ")
	assert.True(t, errors.Is(err, errors.ErrCodeValidation))
	assert.Equal(t, version, s.Version(), "rejected input leaves the document alone")

	err = s.Dispatch("missing.title", "x")
	assert.True(t, errors.Is(err, errors.ErrCodeNotFound))
	err = s.Dispatch(h.ID+".nope", "x")
	assert.True(t, errors.Is(err, errors.ErrCodeNotFound))
	err = s.Dispatch("nodot", "x")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
}

func TestRenderIsolatesFailures(t *testing.T) {
	reg := components.DefaultRegistry()
	e, err := reg.Lookup(model.TypeText)
	require.NoError(t, err)
	e.Renderer = func(registry.RenderContext) view.Node { panic("boom") }
	require.NoError(t, reg.Register(model.TypeText, e))

	s := newSession(t, Options{Registry: reg})
	var unknown model.Record
	require.NoError(t, json.Unmarshal([]byte(`{"id":"u1","type":"hologram","beams":3}`), &unknown))
	s.LoadWebsite(model.WebsiteRecord{
		ID:    "w1",
		Title: "Mixed",
		Components: []model.Record{
			model.NewRecord("h1", &model.Header{Title: "Still here"}),
			unknown,
			model.NewRecord("t1", &model.Text{Content: "explodes"}),
			model.NewRecord("f1", &model.Footer{Text: "Footer"}),
		},
		DesignPalette: model.DefaultPalette(),
	})

	for _, mode := range []registry.Mode{registry.ModeEdit, registry.ModePreview} {
		html, err := s.RenderHTML(mode)
		require.NoError(t, err)
		assert.Contains(t, html, "Still here")
		assert.Contains(t, html, "Footer")
		assert.Equal(t, 2, strings.Count(html, "ps-error"), mode)
		if mode == registry.ModeEdit {
			assert.Contains(t, html, "hologram")
		}
	}
}

func TestRenderMarksSelection(t *testing.T) {
	s := newSession(t, Options{})
	h, _ := s.Append(model.TypeHeader)
	require.NoError(t, s.Select(h.ID))

	html, err := s.RenderHTML(registry.ModeEdit)
	require.NoError(t, err)
	assert.Contains(t, html, `data-selected="true"`)

	html, err = s.RenderHTML(registry.ModePreview)
	require.NoError(t, err)
	assert.NotContains(t, html, "data-selected")
	assert.NotContains(t, html, "ps-controls")
}

func TestEmptyPage(t *testing.T) {
	s := newSession(t, Options{})
	html, err := s.RenderHTML(registry.ModeEdit)
	require.NoError(t, err)
	assert.Contains(t, html, "ps-empty")
}

func TestSaveAndLoad(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	s := newSession(t, Options{Store: st})
	require.NoError(t, s.SetTitle("Jane Doe"))
	h, _ := s.Append(model.TypeHeader)
	require.NoError(t, s.ApplyPreset("dark"))

	res, err := s.Save(ctx)
	require.NoError(t, err)
	assert.False(t, s.Dirty())
	assert.Equal(t, res.ID, s.Meta().ID)
	assert.Equal(t, "jane-doe", s.Meta().Slug)
	assert.Equal(t, "jane-doe.pagesmith.site", res.Domain)

	// A second save updates the same website.
	require.NoError(t, s.Update(h.ID, map[string]any{"title": "v2"}))
	res2, err := s.Save(ctx)
	require.NoError(t, err)
	assert.Equal(t, res.ID, res2.ID)

	other := newSession(t, Options{Store: st})
	require.NoError(t, other.Load(ctx, res.ID))
	assert.False(t, other.Dirty())
	assert.False(t, other.CanUndo())
	assert.Equal(t, s.Document().Palette, other.Document().Palette)
	rec, ok := other.Document().Find(h.ID)
	require.True(t, ok)
	hdr, _ := model.PayloadAs[*model.Header](rec)
	assert.Equal(t, "v2", hdr.Title)

	err = other.Load(ctx, "missing")
	assert.True(t, errors.Is(err, errors.ErrCodeNotFound))
	assert.Equal(t, res.ID, other.Meta().ID, "failed load keeps state")
}

type flakyStore struct {
	store.Store
	mu       sync.Mutex
	failures int
	calls    int
	entered  chan struct{}
	block    chan struct{}
}

func (f *flakyStore) SaveWebsite(ctx context.Context, id string, req store.SaveRequest) (store.SaveResult, error) {
	f.mu.Lock()
	f.calls++
	fail := f.calls <= f.failures
	f.mu.Unlock()
	if f.block != nil {
		f.entered <- struct{}{}
		<-f.block
	}
	if fail {
		return store.SaveResult{}, errors.Wrap(errors.ErrCodePersistence, io.ErrUnexpectedEOF, "save")
	}
	return f.Store.SaveWebsite(ctx, id, req)
}

func TestSaveRetriesTransientFailures(t *testing.T) {
	fs := &flakyStore{Store: store.NewMemoryStore(), failures: 2}
	s := newSession(t, Options{Store: fs})
	_, _ = s.Append(model.TypeText)

	_, err := s.Save(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, fs.calls)
	assert.False(t, s.Dirty())
}

func TestSaveFailureKeepsLocalState(t *testing.T) {
	fs := &flakyStore{Store: store.NewMemoryStore(), failures: 100}
	s := newSession(t, Options{Store: fs})
	_, _ = s.Append(model.TypeText)
	before := s.Document()

	_, err := s.Save(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Retryable(err))
	assert.True(t, s.Dirty())
	assert.Equal(t, before.IDs(), s.Document().IDs())
	assert.Empty(t, s.Meta().ID)
}

func TestEditDuringSaveStaysDirty(t *testing.T) {
	fs := &flakyStore{
		Store:   store.NewMemoryStore(),
		entered: make(chan struct{}),
		block:   make(chan struct{}),
	}
	s := newSession(t, Options{Store: fs})
	_, _ = s.Append(model.TypeText)

	done := make(chan error, 1)
	go func() {
		_, err := s.Save(context.Background())
		done <- err
	}()

	// The snapshot is taken; the session is not locked during I/O.
	<-fs.entered
	_, err := s.Append(model.TypeSpacer)
	require.NoError(t, err)
	close(fs.block)
	require.NoError(t, <-done)
	assert.True(t, s.Dirty(), "edit made after the snapshot is still unsaved")
}

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestLoadImage(t *testing.T) {
	ctx := context.Background()
	s := newSession(t, Options{})
	g, _ := s.Append(model.TypeGallery)
	h, _ := s.Append(model.TypeHeader)

	require.NoError(t, <-s.LoadImage(ctx, g.ID, "images", bytes.NewReader(pngHeader), ""))
	require.NoError(t, <-s.LoadImage(ctx, h.ID, "backgroundImage", bytes.NewReader(pngHeader), "image/png"))

	d := s.Document()
	rec, _ := d.Find(g.ID)
	gal, _ := model.PayloadAs[*model.Gallery](rec)
	require.Len(t, gal.Images, 1)
	assert.True(t, strings.HasPrefix(gal.Images[0].URL, "data:image/png;base64,"))

	rec, _ = d.Find(h.ID)
	hdr, _ := model.PayloadAs[*model.Header](rec)
	assert.True(t, strings.HasPrefix(hdr.BackgroundImage, "data:image/png;base64,"))

	err := <-s.LoadImage(ctx, h.ID, "backgroundImage", strings.NewReader("plain text"), "")
	assert.True(t, errors.Is(err, errors.ErrCodeValidation))

	err = <-s.LoadImage(ctx, "missing", "images", bytes.NewReader(pngHeader), "")
	assert.True(t, errors.Is(err, errors.ErrCodeNotFound))
}

func TestConcurrentImageLoadsLastWriteWins(t *testing.T) {
	ctx := context.Background()
	s := newSession(t, Options{})
	g, _ := s.Append(model.TypeGallery)

	var chans []<-chan error
	for i := 0; i < 5; i++ {
		chans = append(chans, s.LoadImage(ctx, g.ID, "images", bytes.NewReader(pngHeader), "image/png"))
	}
	for _, ch := range chans {
		require.NoError(t, <-ch)
	}
	rec, _ := s.Document().Find(g.ID)
	gal, _ := model.PayloadAs[*model.Gallery](rec)
	assert.Len(t, gal.Images, 5, "appends are applied one at a time against the latest document")
}

func TestLoadTemplate(t *testing.T) {
	cat, err := templates.Default()
	require.NoError(t, err)
	tpl, err := cat.Load("resume")
	require.NoError(t, err)

	s := newSession(t, Options{})
	_, _ = s.Append(model.TypeText)
	s.LoadTemplate(tpl)

	assert.Equal(t, "Resume", s.Meta().Title)
	assert.Empty(t, s.Meta().ID)
	assert.True(t, s.Dirty())
	assert.False(t, s.CanUndo())
	assert.Len(t, s.Order(), len(tpl.Components))
	assert.Equal(t, tpl.Palette, s.Document().Palette)
}

func TestLoadRepairsDuplicateIDs(t *testing.T) {
	s := newSession(t, Options{})
	s.LoadWebsite(model.WebsiteRecord{
		Components: []model.Record{
			model.NewRecord("dup", &model.Text{Content: "a"}),
			model.NewRecord("dup", &model.Text{Content: "b"}),
			model.NewRecord("", &model.Text{Content: "c"}),
		},
	})
	order := s.Order()
	require.Len(t, order, 3)
	assert.Equal(t, "dup", order[0])
	assert.NotEqual(t, "dup", order[1])
	assert.NotEmpty(t, order[2])
}

func TestThemeActions(t *testing.T) {
	s := newSession(t, Options{})

	require.NoError(t, s.ApplyPreset("ocean"))
	assert.True(t, s.Dirty())
	assert.False(t, s.CanUndo(), "theme changes are not component history")

	err := s.ApplyPreset("neon")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))

	err = s.UpdatePalette(map[string]string{PalettePrimary: "red; background: url(x)"})
	assert.True(t, errors.Is(err, errors.ErrCodeValidation))

	err = s.UpdatePalette(map[string]string{"shadow": "big"})
	assert.True(t, errors.Is(err, errors.ErrCodeValidation))

	require.NoError(t, s.SetFont("georgia"))
	assert.Contains(t, s.Document().Palette.FontFamily, "Georgia")

	require.NoError(t, s.SetRadius("16px"))
	assert.Equal(t, "16px", s.Document().Palette.BorderRadius)
	assert.Error(t, s.SetRadius("huge"))

	require.NoError(t, s.SetSEO(model.SEOSettings{Title: "T", Keywords: []string{"k"}}))
	assert.Equal(t, "T", s.Document().SEO.Title)

	assert.Error(t, s.SetSlug("Bad Slug"))
	require.NoError(t, s.SetSlug("good-slug"))
	require.NoError(t, s.SetStatus(model.StatusPublished))
	assert.Equal(t, model.StatusPublished, s.Meta().Status)
}
