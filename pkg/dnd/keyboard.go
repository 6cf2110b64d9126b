package dnd

import "slices"

// Key is a keyboard gesture.
type Key string

// Keys understood by KeyboardSensor.
const (
	KeySpace  Key = "space"
	KeyEnter  Key = "enter"
	KeyUp     Key = "up"
	KeyDown   Key = "down"
	KeyEscape Key = "esc"
)

// KeyboardSensor translates key presses into drags on a Controller.
// Without a drag, up and down move the focus.
type KeyboardSensor struct {
	c     *Controller
	focus string
}

// NewKeyboardSensor creates a sensor driving c.
func NewKeyboardSensor(c *Controller) *KeyboardSensor {
	return &KeyboardSensor{c: c}
}

// Focus sets the focused id.
func (k *KeyboardSensor) Focus(id string) {
	k.focus = id
}

// Focused returns the focused id.
func (k *KeyboardSensor) Focused() string {
	return k.focus
}

// Handle processes one key. It reports whether a reorder was applied.
func (k *KeyboardSensor) Handle(key Key) (bool, error) {
	switch key {
	case KeySpace, KeyEnter:
		if !k.c.Dragging() {
			if k.focus == "" {
				return false, nil
			}
			return false, k.c.Start(k.focus)
		}
		active := k.c.Active()
		moved, err := k.c.End(k.c.Target())
		k.focus = active
		return moved, err
	case KeyUp, KeyDown:
		delta := 1
		if key == KeyUp {
			delta = -1
		}
		ids := k.c.order()
		if k.c.Dragging() {
			k.c.Over(step(ids, k.c.Target(), delta))
		} else {
			k.focus = step(ids, k.focus, delta)
		}
	case KeyEscape:
		if k.c.Dragging() {
			k.c.Cancel()
		}
	}
	return false, nil
}

// step returns the id delta positions from cur, clamped to the ends.
func step(ids []string, cur string, delta int) string {
	if len(ids) == 0 {
		return ""
	}
	i := slices.Index(ids, cur)
	if i < 0 {
		return ids[0]
	}
	return ids[min(max(i+delta, 0), len(ids)-1)]
}
