// Package dnd maps drag gestures onto component reorders.
//
// A [Controller] tracks one drag at a time: Start records the dragged id,
// Over tracks the hovered target and End computes the new id order with an
// array move and hands it to the reorder callback. Ending a drag on the
// original position or outside any target does nothing.
//
// [KeyboardSensor] drives the same controller from keys: space or enter
// picks up and drops, up and down move the drop target, escape cancels.
//
// [AutoScroller] scrolls the viewport while the pointer sits near its top or
// bottom edge during a drag. Its ticker goroutine is stopped when the
// pointer leaves the edge zone, when the drag ends and on Close.
package dnd
