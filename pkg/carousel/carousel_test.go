package carousel

import (
	"context"
	"strings"
	"testing"
	"time"
)

type fakeClock struct{ t time.Time }

func (f *fakeClock) Now() time.Time { return f.t }

func newClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func TestNextPrevWrap(t *testing.T) {
	c := New(Options{ItemCount: 3})
	steps := []struct {
		op   func() int
		want int
	}{
		{c.Next, 1},
		{c.Next, 2},
		{c.Next, 0},
		{c.Prev, 2},
		{c.Prev, 1},
	}
	for i, s := range steps {
		if got := s.op(); got != s.want {
			t.Fatalf("step %d: index = %d, want %d", i, got, s.want)
		}
	}

	empty := New(Options{})
	if empty.Next() != 0 || empty.Prev() != 0 {
		t.Error("empty carousel should stay at 0")
	}
}

func TestGoToAndSetItemCount(t *testing.T) {
	c := New(Options{ItemCount: 5})
	if got := c.GoTo(9); got != 4 {
		t.Errorf("GoTo(9) = %d, want 4", got)
	}
	if got := c.GoTo(-1); got != 0 {
		t.Errorf("GoTo(-1) = %d, want 0", got)
	}
	c.GoTo(4)
	c.SetItemCount(2)
	if s := c.State(); s.CurrentIndex != 1 || s.ItemCount != 2 {
		t.Errorf("after shrink: %+v", s)
	}
	c.SetItemCount(0)
	if s := c.State(); s.CurrentIndex != 0 {
		t.Errorf("after empty: %+v", s)
	}
}

func TestAutoplay(t *testing.T) {
	clk := newClock()
	c := New(Options{ItemCount: 3, Autoplay: true, Interval: time.Second, Now: clk.Now})

	if !c.State().IsPlaying {
		t.Fatal("expected playing")
	}
	if c.Tick(clk.t.Add(500 * time.Millisecond)) {
		t.Error("advanced before interval elapsed")
	}
	if !c.Tick(clk.t.Add(time.Second)) || c.State().CurrentIndex != 1 {
		t.Errorf("expected advance to 1, state %+v", c.State())
	}

	c.Interact()
	if c.State().IsPlaying {
		t.Error("interaction should pause")
	}
	if c.Tick(clk.t.Add(10 * time.Second)) {
		t.Error("advanced during interaction")
	}

	clk.t = clk.t.Add(10 * time.Second)
	c.EndInteraction()
	if !c.State().IsPlaying {
		t.Error("should resume after interaction")
	}
	if c.Tick(clk.t.Add(999 * time.Millisecond)) {
		t.Error("resumed advance should wait one full interval")
	}
	if !c.Tick(clk.t.Add(time.Second)) || c.State().CurrentIndex != 2 {
		t.Errorf("expected advance to 2, state %+v", c.State())
	}

	c.Pause()
	if c.Tick(clk.t.Add(time.Hour)) {
		t.Error("advanced while paused")
	}
}

func TestSingleItemNeverAdvances(t *testing.T) {
	c := New(Options{ItemCount: 1, Autoplay: true, Interval: time.Millisecond})
	if c.Tick(time.Now().Add(time.Hour)) {
		t.Error("single item carousel advanced")
	}
}

func TestRunStopsOnClose(t *testing.T) {
	c := New(Options{ItemCount: 2, Autoplay: true, Interval: 4 * time.Millisecond})
	changed := make(chan State, 16)
	done := make(chan error, 1)
	go func() {
		done <- c.Run(context.Background(), func(s State) {
			select {
			case changed <- s:
			default:
			}
		})
	}()

	select {
	case <-changed:
	case <-time.After(2 * time.Second):
		t.Fatal("autoplay never advanced")
	}

	c.Close()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() = %v, want nil", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Close")
	}
	if c.State().IsPlaying {
		t.Error("closed carousel reports playing")
	}
	c.Close()
}

func TestRunStopsOnContext(t *testing.T) {
	c := New(Options{ItemCount: 2, Interval: time.Hour})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := c.Run(ctx, nil); err != context.Canceled {
		t.Errorf("Run() = %v, want context.Canceled", err)
	}
}

func TestPages(t *testing.T) {
	c := New(Options{ItemCount: 7, PerPage: 3})
	if c.Pages() != 3 {
		t.Errorf("Pages() = %d", c.Pages())
	}
	c.GoTo(6)
	if c.Page() != 2 {
		t.Errorf("Page() = %d", c.Page())
	}
	if got := c.Visible(); len(got) != 3 || got[0] != 6 || got[1] != 0 || got[2] != 1 {
		t.Errorf("Visible() = %v", got)
	}
	if Window(0, 2, 5) == nil || len(Window(0, 2, 5)) != 2 {
		t.Error("Window should cap at count")
	}
}

func TestMarquee(t *testing.T) {
	tr := Marquee("Client Logos!", 4, 100, 20, 60)
	if tr.Name != "ps-marquee-client-logos" {
		t.Errorf("Name = %q", tr.Name)
	}
	if len(tr.Items) != 8 || tr.Items[4] != 0 || tr.Items[7] != 3 {
		t.Errorf("Items = %v", tr.Items)
	}
	if tr.Distance != 480 || tr.Width != 960 {
		t.Errorf("Distance = %v, Width = %v", tr.Distance, tr.Width)
	}
	if tr.Duration != 8*time.Second {
		t.Errorf("Duration = %v", tr.Duration)
	}
	if !strings.Contains(tr.Keyframes(), "translateX(-480px)") {
		t.Errorf("Keyframes() = %q", tr.Keyframes())
	}
	if !strings.Contains(tr.Style(), "animation: ps-marquee-client-logos 8.00s linear infinite;") {
		t.Errorf("Style() = %q", tr.Style())
	}

	if empty := Marquee("x", 0, 100, 0, 0); len(empty.Items) != 0 || empty.Style() != "display: flex;" {
		t.Errorf("empty track = %+v", empty)
	}
}
