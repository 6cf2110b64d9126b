// Package editor implements the editing session: the single owner of a
// document, its undo history, the selection and the dirty flag.
//
// A [Session] serializes all state changes behind a mutex, so HTTP
// handlers, timers and async image loads may call it concurrently. Every
// mutation goes through the pure functions in package document; the
// session only decides whether the result is new (push history, mark
// dirty) or the unchanged input (a no-op).
//
// Rendering never holds the lock while component renderers run. Each
// component is rendered from a deep copy of its record, and a failure in
// one renderer (unknown type or panic) becomes an error placeholder for
// that component only.
//
// Saving snapshots the document under the lock, then performs I/O without
// it. Edits may continue during a save; a failed save keeps local state
// and the dirty flag, and a successful save clears the flag only if no
// edit happened since the snapshot.
package editor
