// Package style resolves the final presentation of a component instance.
//
// Every component record may carry instance overrides; every component type
// may declare type defaults; the page palette supplies the theme. For each
// property the resolver picks the first usable value in this order:
//
//	instance override ?? type default ?? palette-derived ?? fallback
//
// # Theme References
//
// Values of the form "theme:<key>" are indirect references into the
// [model.DesignPalette] and are dereferenced at resolve time, so changing the
// palette re-themes every component that did not set a literal override:
//
//	theme:primary      palette primaryColor
//	theme:background   palette backgroundColor
//	theme:title        palette titleColor
//	theme:description  palette descriptionColor
//	theme:font         palette fontFamily
//	theme:radius       palette borderRadius
//
// Palette-derived values are themselves references (primaryColor derives from
// theme:primary, and so on), which keeps resolution a pure function of its
// inputs.
//
// # Border Radius
//
// When any of the four corner properties is set, the corners are resolved
// independently with unset corners defaulting to "0", and the aggregate
// borderRadius is ignored.
//
// # Presets and Fonts
//
// [Preset] returns named palettes for theme-change actions and [Fonts] lists
// the font stacks offered by font pickers.
package style
