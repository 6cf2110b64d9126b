// Package view defines the render tree produced by component renderers.
//
// A tree is built from four node kinds:
//
//   - [Element]: an HTML element with attributes and children
//   - [Text]: escaped character data
//   - [Control]: an edit-mode input bound to an Apply callback
//   - [Sandbox]: an isolated frame for untrusted markup
//
// Trees are plain data. The same tree can be serialized to HTML with
// [RenderHTML], flattened to text for terminals with [PlainText], or driven
// by UI events through [Dispatch], which routes a value to the control with
// the given id.
//
// Control ids are namespaced by component id ("<componentID>.<field>") so
// that a whole page tree can be dispatched against without collisions.
package view
