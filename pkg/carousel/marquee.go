package carousel

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// DefaultSpeed is the marquee speed in pixels per second.
const DefaultSpeed = 40.0

// Track describes a seamless marquee. The item list is rendered twice in a
// row; the animation translates the track by exactly one copy, which is half
// of the rendered width, so the second copy lands where the first started.
type Track struct {
	Name string
	// Items lists item indexes in render order: 0..n-1 followed by 0..n-1.
	Items []int
	// Distance is the width of one copy in pixels.
	Distance float64
	// Width is the width of the doubled track in pixels.
	Width    float64
	Duration time.Duration
}

var nonIdent = regexp.MustCompile(`[^a-z0-9-]+`)

// Marquee computes the track for n items of itemWidth pixels separated by
// gap pixels, moving at speed pixels per second. name is folded into a CSS
// identifier.
func Marquee(name string, n int, itemWidth, gap, speed float64) Track {
	if speed <= 0 {
		speed = DefaultSpeed
	}
	ident := "ps-marquee-" + strings.Trim(nonIdent.ReplaceAllString(strings.ToLower(name), "-"), "-")

	t := Track{Name: ident}
	if n <= 0 {
		return t
	}
	t.Items = make([]int, 0, 2*n)
	for copyIdx := 0; copyIdx < 2; copyIdx++ {
		for i := 0; i < n; i++ {
			t.Items = append(t.Items, i)
		}
	}
	t.Distance = float64(n) * (itemWidth + gap)
	t.Width = 2 * t.Distance
	t.Duration = time.Duration(t.Distance / speed * float64(time.Second))
	return t
}

// Keyframes returns the CSS animation definition.
func (t Track) Keyframes() string {
	return fmt.Sprintf("@keyframes %s { from { transform: translateX(0); } to { transform: translateX(-%gpx); } }",
		t.Name, t.Distance)
}

// Style returns the inline declarations for the track element.
func (t Track) Style() string {
	if t.Distance == 0 {
		return "display: flex;"
	}
	return fmt.Sprintf("display: flex; width: %gpx; animation: %s %.2fs linear infinite;",
		t.Width, t.Name, t.Duration.Seconds())
}
