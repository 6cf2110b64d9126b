// Package pkg provides the core libraries of the Pagesmith website builder.
//
// # Overview
//
// A Pagesmith page is an ordered list of typed components (header, gallery,
// pricing table, ...) styled by a shared design palette. Users add, edit,
// reorder and remove components; every change is a pure transformation of
// the document, recorded in a bounded undo history and rendered either with
// inline edit controls or exactly as visitors will see it.
//
// The typical data flow:
//
//	templates / store
//	         ↓
//	    [editor] session (owns the document, history and selection)
//	         ↓
//	    [document] mutations  →  [history] snapshots
//	         ↓
//	    [registry] + [components] renderers  →  [view] tree
//	         ↓
//	    [publish] standalone HTML  →  [cache]
//
// # Quick Start
//
//	sess := editor.New(editor.Options{Store: store.NewMemoryStore()})
//	hdr, _ := sess.Append(model.TypeHeader)
//	_ = sess.Update(hdr.ID, map[string]any{"title": "Jane Doe"})
//	_ = sess.ApplyPreset("ocean")
//	html, _ := sess.RenderHTML(registry.ModePreview)
//	res, _ := sess.Save(ctx)
//
// # Main Packages
//
// ## Document
//
// [model] - Component records, payloads, palette and SEO settings, and the
// stored JSON format with its schema migrations.
//
// [document] - The page state and the pure mutation engine (insert, move,
// update, duplicate, remove, reorder).
//
// [history] - Bounded undo/redo over component snapshots.
//
// [editor] - The editing session. It is the only owner of a document and
// applies mutations, history, selection, theme changes and persistence.
//
// ## Rendering
//
// [registry] - Maps component type tags to catalogue metadata, defaults and
// renderers; lookups of unknown types fail loudly.
//
// [components] - The built-in component types.
//
// [style] - Resolves instance overrides against the palette and offers the
// preset, font and radius catalogues.
//
// [view] - The render tree shared by edit and preview modes.
//
// [sanitize] - Cleans user supplied embed markup.
//
// [publish] - Renders whole websites into standalone HTML documents and
// caches the result by content hash.
//
// ## Interaction
//
// [dnd] - Pointer and keyboard drag gestures mapped onto reorders, with edge
// autoscroll.
//
// [carousel] - The slide state machine behind carousel and marquee modes.
//
// ## Infrastructure
//
// [store] - The persistence boundary: memory, file, SQLite and MongoDB
// backends.
//
// [cache] - File and Redis caches plus retry helpers.
//
// [httputil] - Remote image fetching.
//
// [server] - HTTP access to editor sessions and published sites.
//
// [errors] - Structured error codes shared by every package.
package pkg
