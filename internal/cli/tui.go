package cli

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/pagesmith/pkg/carousel"
	"github.com/matzehuels/pagesmith/pkg/dnd"
	"github.com/matzehuels/pagesmith/pkg/editor"
	"github.com/matzehuels/pagesmith/pkg/model"
	"github.com/matzehuels/pagesmith/pkg/registry"
	"github.com/matzehuels/pagesmith/pkg/store"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorText)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorMuted)
	listDragStyle     = lipgloss.NewStyle().Bold(true).Foreground(colorWarn)
	listTargetStyle   = lipgloss.NewStyle().Foreground(colorOK)
)

// Layout of the editor screen in terminal rows.
const (
	headerRows     = 3
	footerRows     = 2
	tickInterval   = 250 * time.Millisecond
	scrollInterval = 120 * time.Millisecond
)

// =============================================================================
// Messages
// =============================================================================

type (
	tickMsg   time.Time
	scrollMsg int
	savedMsg  struct {
		res store.SaveResult
		err error
	}
)

// =============================================================================
// EditorModel - Interactive page editor
// =============================================================================

// EditorModel is the bubbletea model for the terminal page editor. Rows
// are components; they can be reordered with the keyboard (space to lift,
// arrows to move, space to drop) or dragged with the mouse, and the list
// scrolls on its own while a drag hovers near an edge.
type EditorModel struct {
	ctx      context.Context
	sess     *editor.Session
	drag     *dnd.Controller
	keys     *dnd.KeyboardSensor
	scroller *dnd.AutoScroller
	scrolls  chan int

	carousels map[string]*carousel.Controller
	autoplay  time.Duration

	picker     []registry.Entry
	picking    bool
	pickCursor int

	width, height int
	offset        int
	pointer       int // last mouse row during a drag
	status        string
	err           error
	confirmQuit   bool
	saving        bool
}

// NewEditorModel creates an editor over sess. autoplay is the fallback
// carousel interval for components that do not set one.
func NewEditorModel(ctx context.Context, sess *editor.Session, autoplay time.Duration) *EditorModel {
	m := &EditorModel{
		ctx:       ctx,
		sess:      sess,
		scrolls:   make(chan int, 16),
		carousels: make(map[string]*carousel.Controller),
		autoplay:  autoplay,
		picker:    sess.Registry().Entries(),
		height:    24,
		width:     80,
	}
	m.scroller = dnd.NewAutoScroller(dnd.AutoScrollOptions{
		Threshold: 2,
		Step:      1,
		Interval:  scrollInterval,
		Scroll: func(dy int) {
			select {
			case m.scrolls <- dy:
			default:
			}
		},
	})
	m.drag = dnd.NewController(sess.Order, sess.Reorder, dnd.WithAutoScroll(m.scroller))
	m.keys = dnd.NewKeyboardSensor(m.drag)
	if ids := sess.Order(); len(ids) > 0 {
		m.focus(ids[0])
	}
	m.syncCarousels()
	return m
}

func (m *EditorModel) Init() tea.Cmd {
	return tea.Batch(m.waitScroll(), tick())
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *EditorModel) waitScroll() tea.Cmd {
	ch := m.scrolls
	return func() tea.Msg {
		dy, ok := <-ch
		if !ok {
			return nil
		}
		return scrollMsg(dy)
	}
}

// Close stops background scrolling.
func (m *EditorModel) Close() {
	m.scroller.Close()
}

func (m *EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.clampOffset()
	case tea.KeyMsg:
		if m.picking {
			return m, m.updatePicker(msg)
		}
		return m, m.updateKeys(msg)
	case tea.MouseMsg:
		m.updateMouse(msg)
	case scrollMsg:
		m.offset += int(msg)
		m.clampOffset()
		if m.drag.Dragging() {
			m.hover(m.rowAt(m.pointer))
		}
		return m, m.waitScroll()
	case tickMsg:
		now := time.Time(msg)
		for _, c := range m.carousels {
			c.Tick(now)
		}
		return m, tick()
	case savedMsg:
		m.saving = false
		if msg.err != nil {
			m.setErr(msg.err)
		} else {
			m.setStatus("Saved " + msg.res.ID)
		}
	}
	return m, nil
}

func (m *EditorModel) updateKeys(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	if key != "q" {
		m.confirmQuit = false
	}
	focused := m.keys.Focused()

	switch key {
	case "ctrl+c":
		return tea.Quit
	case "q":
		if m.drag.Dragging() {
			m.drag.Cancel()
			return nil
		}
		if m.sess.Dirty() && !m.confirmQuit {
			m.confirmQuit = true
			m.setStatus("Unsaved changes. Press q again to quit, s to save.")
			return nil
		}
		return tea.Quit
	case "up", "k":
		m.handleSensor(dnd.KeyUp)
	case "down", "j":
		m.handleSensor(dnd.KeyDown)
	case " ", "enter":
		m.handleSensor(dnd.KeySpace)
	case "esc":
		m.handleSensor(dnd.KeyEscape)
	case "K":
		if focused != "" {
			m.apply("Moved up", m.sess.MoveUp(focused))
			m.scrollTo(focused)
		}
	case "J":
		if focused != "" {
			m.apply("Moved down", m.sess.MoveDown(focused))
			m.scrollTo(focused)
		}
	case "x", "delete":
		if focused != "" {
			next := neighbor(m.sess.Order(), focused)
			if m.apply("Removed "+focused, m.sess.Remove(focused)) {
				m.focus(next)
			}
		}
	case "d":
		if focused == "" {
			return nil
		}
		if rec, err := m.sess.Duplicate(focused); m.apply("Duplicated "+focused, err) {
			m.focus(rec.ID)
		}
	case "a":
		m.picking = true
	case "u":
		if m.sess.Undo() {
			m.afterHistory("Undone")
		} else {
			m.setStatus("Nothing to undo")
		}
	case "r", "ctrl+r":
		if m.sess.Redo() {
			m.afterHistory("Redone")
		} else {
			m.setStatus("Nothing to redo")
		}
	case "left", "h":
		if c := m.carousels[focused]; c != nil {
			c.Prev()
		}
	case "right", "l":
		if c := m.carousels[focused]; c != nil {
			c.Next()
		}
	case "p":
		if c := m.carousels[focused]; c != nil {
			if c.State().IsPlaying {
				c.Pause()
				m.setStatus("Autoplay paused")
			} else {
				c.Play()
				m.setStatus("Autoplay on")
			}
		}
	case "s":
		if m.saving {
			return nil
		}
		m.saving = true
		m.setStatus("Saving...")
		return m.save()
	}
	return nil
}

func (m *EditorModel) updatePicker(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "q":
		m.picking = false
	case "up", "k":
		m.pickCursor = max(m.pickCursor-1, 0)
	case "down", "j":
		m.pickCursor = min(m.pickCursor+1, len(m.picker)-1)
	case "enter":
		m.picking = false
		if len(m.picker) == 0 {
			return nil
		}
		at := slices.Index(m.sess.Order(), m.keys.Focused()) + 1
		if at == 0 {
			at = -1
		}
		e := m.picker[m.pickCursor]
		if rec, err := m.sess.Insert(e.Type, at); m.apply("Added "+e.DisplayName, err) {
			m.focus(rec.ID)
		}
	}
	return nil
}

func (m *EditorModel) updateMouse(msg tea.MouseMsg) {
	id := m.rowAt(msg.Y)
	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonWheelUp:
		m.offset--
		m.clampOffset()
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonWheelDown:
		m.offset++
		m.clampOffset()
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if id == "" {
			return
		}
		m.focus(id)
		if err := m.drag.Start(id); err != nil {
			m.setErr(err)
		}
		m.pointer = msg.Y
	case msg.Action == tea.MouseActionMotion:
		m.sess.Hover(id)
		if !m.drag.Dragging() {
			return
		}
		m.pointer = msg.Y
		m.hover(id)
		m.drag.Pointer(msg.Y-headerRows, m.viewport())
	case msg.Action == tea.MouseActionRelease:
		if !m.drag.Dragging() {
			return
		}
		active, target := m.drag.Active(), id
		if target == active {
			target = m.drag.Target()
		}
		moved, err := m.drag.End(target)
		if m.apply("Moved "+active, err) && moved {
			m.focus(active)
		}
	}
}

// hover moves the drop target to the row under the pointer. Rows are drawn
// in projected order, so the dragged row itself keeps the current target.
func (m *EditorModel) hover(id string) {
	if id != "" && id != m.drag.Active() {
		m.drag.Over(id)
	}
}

func (m *EditorModel) handleSensor(k dnd.Key) {
	wasDragging := m.drag.Dragging()
	moved, err := m.keys.Handle(k)
	if err != nil {
		m.setErr(err)
		return
	}
	switch {
	case moved:
		m.afterChange("Moved " + m.keys.Focused())
	case !wasDragging && m.drag.Dragging():
		m.setStatus("Lifted " + m.drag.Active() + ". Arrows move, space drops, esc cancels.")
	case wasDragging && !m.drag.Dragging():
		m.setStatus("")
	}
	if m.drag.Dragging() {
		m.scrollTo(m.drag.Target())
	} else {
		m.focus(m.keys.Focused())
	}
}

// =============================================================================
// State helpers
// =============================================================================

func (m *EditorModel) save() tea.Cmd {
	ctx, sess := m.ctx, m.sess
	return func() tea.Msg {
		res, err := sess.Save(ctx)
		return savedMsg{res: res, err: err}
	}
}

// apply reports whether err is nil and updates the status line.
func (m *EditorModel) apply(status string, err error) bool {
	if err != nil {
		m.setErr(err)
		return false
	}
	m.afterChange(status)
	return true
}

func (m *EditorModel) afterChange(status string) {
	m.syncCarousels()
	m.setStatus(status)
}

func (m *EditorModel) afterHistory(status string) {
	if !slices.Contains(m.sess.Order(), m.keys.Focused()) {
		ids := m.sess.Order()
		if len(ids) > 0 {
			m.focus(ids[0])
		} else {
			m.focus("")
		}
	}
	m.afterChange(status)
}

func (m *EditorModel) focus(id string) {
	m.keys.Focus(id)
	if err := m.sess.Select(id); err != nil {
		m.sess.Select("")
	}
	m.scrollTo(id)
}

func (m *EditorModel) setStatus(s string) {
	m.status, m.err = s, nil
}

func (m *EditorModel) setErr(err error) {
	m.status, m.err = "", err
}

// syncCarousels keeps one carousel controller per slideshow component.
func (m *EditorModel) syncCarousels() {
	seen := map[string]bool{}
	for _, rec := range m.sess.Document().Components {
		count, autoplay, interval, ok := slideshow(rec)
		if !ok {
			continue
		}
		seen[rec.ID] = true
		if c, exists := m.carousels[rec.ID]; exists {
			c.SetItemCount(count)
			continue
		}
		if interval <= 0 {
			interval = m.autoplay
		}
		m.carousels[rec.ID] = carousel.New(carousel.Options{
			ItemCount: count,
			Autoplay:  autoplay,
			Interval:  interval,
		})
	}
	for id, c := range m.carousels {
		if !seen[id] {
			c.Close()
			delete(m.carousels, id)
		}
	}
}

// slideshow reports whether rec shows its items as a carousel.
func slideshow(rec model.Record) (count int, autoplay bool, interval time.Duration, ok bool) {
	ms := func(n int) time.Duration { return time.Duration(n) * time.Millisecond }
	switch p := rec.Payload.(type) {
	case *model.Gallery:
		return len(p.Images), p.Autoplay, ms(p.Interval), p.Mode == model.GalleryCarousel
	case *model.Reviews:
		return len(p.Reviews), p.Autoplay, ms(p.Interval), p.Mode == model.GalleryCarousel
	case *model.Projects:
		return len(p.Projects), p.Autoplay, ms(p.Interval), p.Layout == model.GalleryCarousel
	}
	return 0, false, 0, false
}

// =============================================================================
// Geometry
// =============================================================================

func (m *EditorModel) viewport() int {
	return max(m.height-headerRows-footerRows, 1)
}

func (m *EditorModel) rows() []string {
	if m.drag.Dragging() {
		return m.drag.Projected()
	}
	return m.sess.Order()
}

// rowAt returns the id of the component drawn at screen row y.
func (m *EditorModel) rowAt(y int) string {
	i := y - headerRows + m.offset
	rows := m.rows()
	if y < headerRows || y >= headerRows+m.viewport() || i < 0 || i >= len(rows) {
		return ""
	}
	return rows[i]
}

func (m *EditorModel) scrollTo(id string) {
	i := slices.Index(m.rows(), id)
	if i < 0 {
		return
	}
	if i < m.offset {
		m.offset = i
	}
	if i >= m.offset+m.viewport() {
		m.offset = i - m.viewport() + 1
	}
	m.clampOffset()
}

func (m *EditorModel) clampOffset() {
	m.offset = min(m.offset, max(len(m.sess.Order())-m.viewport(), 0))
	m.offset = max(m.offset, 0)
}

func neighbor(ids []string, id string) string {
	i := slices.Index(ids, id)
	switch {
	case i < 0:
		return ""
	case i+1 < len(ids):
		return ids[i+1]
	case i > 0:
		return ids[i-1]
	}
	return ""
}

// =============================================================================
// View
// =============================================================================

func (m *EditorModel) View() string {
	if m.picking {
		return m.viewPicker()
	}

	var b strings.Builder
	meta := m.sess.Meta()
	title := StyleTitle.Render(meta.Title)
	if m.sess.Dirty() {
		title += StyleWarning.Render(" •")
	}
	b.WriteString(title + listDimStyle.Render("  "+string(meta.Status)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ focus  space lift/drop  J/K move  a add  d dup  x del  u/r undo/redo  ←/→ p slides  s save  q quit"))
	b.WriteString("\n\n")

	rows := m.rows()
	focused, active, target := m.keys.Focused(), m.drag.Active(), m.drag.Target()
	doc := m.sess.Document()
	end := min(m.offset+m.viewport(), len(rows))
	if len(rows) == 0 {
		b.WriteString(listDimStyle.Render("  Empty page. Press a to add a component."))
		b.WriteString("\n")
	}
	for i := m.offset; i < end; i++ {
		id := rows[i]
		rec, _ := doc.Find(id)
		b.WriteString(m.viewRow(i, rec, id == focused, id == active, id == target && id != active))
		b.WriteString("\n")
	}
	for i := end - m.offset; i < m.viewport(); i++ {
		b.WriteString("\n")
	}

	switch {
	case m.err != nil:
		b.WriteString(markError.String() + " " + m.err.Error())
	case m.status != "":
		b.WriteString(markInfo.String() + " " + m.status)
	}
	if len(rows) > m.viewport() {
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d-%d/%d]", m.offset+1, end, len(rows))))
	}
	return b.String()
}

func (m *EditorModel) viewRow(i int, rec model.Record, focused, active, target bool) string {
	cursor := "  "
	if focused {
		cursor = "▸ "
	}
	if active {
		cursor = "≡ "
	}
	text := truncate(label(rec), max(m.width-32, 10))
	if c := m.carousels[rec.ID]; c != nil {
		st := c.State()
		play := "⏸"
		if st.IsPlaying {
			play = "▶"
		}
		text += listDimStyle.Render(fmt.Sprintf("  %s %d/%d", play, st.CurrentIndex+1, st.ItemCount))
	}
	line := fmt.Sprintf("%s%2d  %-11s %s", cursor, i, rec.Type, text)

	switch {
	case active:
		return listDragStyle.Render(line)
	case target:
		return listTargetStyle.Render(line)
	case focused:
		return listSelectedStyle.Render(line)
	}
	return listNormalStyle.Render(line)
}

func (m *EditorModel) viewPicker() string {
	var b strings.Builder
	b.WriteString(StyleTitle.Render("Add Component"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ insert after focus  esc cancel"))
	b.WriteString("\n\n")

	var category registry.Category
	for i, e := range m.picker {
		if e.Category != category {
			category = e.Category
			b.WriteString(listDimStyle.Render(string(category)))
			b.WriteString("\n")
		}
		line := fmt.Sprintf("  %-14s %s", e.DisplayName, listDimStyle.Render(e.Description))
		if i == m.pickCursor {
			b.WriteString(listSelectedStyle.Render("▸" + line[1:]))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}
