// Package components provides the built-in component types: their catalogue
// entries, default data, type style defaults and dual-mode renderers.
//
// Every renderer follows the same contract. In preview mode it returns the
// final output and falls back to a neutral placeholder when its data is
// empty. In edit mode it additionally returns [view.Control] nodes whose
// values mirror the current record; applying a control builds a complete
// next record from a deep copy and passes it to the context's update
// callback. List fields (images, experiences, projects, services, reviews,
// plans, links) expose add, remove and edit-in-place controls; add actions
// reject an empty required value with VALIDATION_FAILED and do not update.
//
// Use [DefaultRegistry] for a registry with every built-in type, or
// [RegisterDefaults] to add them to an existing one.
package components
