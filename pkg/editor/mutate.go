package editor

import (
	"github.com/matzehuels/pagesmith/pkg/document"
	"github.com/matzehuels/pagesmith/pkg/errors"
	"github.com/matzehuels/pagesmith/pkg/model"
	"github.com/matzehuels/pagesmith/pkg/observability"
)

// apply runs a pure document mutation. A result identical to the input is
// a no-op: no history entry and the dirty flag is untouched. Rejected
// mutations leave the document as it was and are logged.
func (s *Session) apply(op, id string, fn func(d document.Document) (document.Document, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := fn(s.doc)
	observability.Editor().OnMutation(op, id, err)
	if err != nil {
		if errors.Is(err, errors.ErrCodeNotFound) {
			s.logger.Debug("ignored mutation", "op", op, "id", id, "reason", errors.UserMessage(err))
		} else {
			s.logger.Warn("rejected mutation", "op", op, "id", id, "err", err)
		}
		return err
	}
	if document.Same(s.doc, next) {
		return nil
	}
	s.commit(next, true)
	return nil
}

// commit installs next as the current document. Callers hold mu.
func (s *Session) commit(next document.Document, record bool) {
	s.doc = next
	if record {
		s.hist.Push(next.Components)
	}
	s.dirty = true
	s.version++
	s.pruneSelection()
}

func (s *Session) notFound(op, id string) error {
	err := errors.NotFound(id)
	observability.Editor().OnMutation(op, id, err)
	s.logger.Debug("ignored action", "op", op, "id", id)
	return err
}

// Insert adds a default component of type t at index at (clamped) and
// returns it.
func (s *Session) Insert(t model.Type, at int) (model.Record, error) {
	var rec model.Record
	err := s.apply("insert", string(t), func(d document.Document) (document.Document, error) {
		next, r, err := document.Insert(d, s.reg, t, at)
		rec = r
		return next, err
	})
	return rec, err
}

// Append adds a default component of type t at the end.
func (s *Session) Append(t model.Type) (model.Record, error) {
	return s.Insert(t, -1)
}

// InsertRecord adds a copy of rec at index at. The id must not already be
// in the document.
func (s *Session) InsertRecord(rec model.Record, at int) (model.Record, error) {
	var out model.Record
	err := s.apply("insert", rec.ID, func(d document.Document) (document.Document, error) {
		next, r, err := document.InsertRecord(d, rec.Clone(), at)
		out = r
		return next, err
	})
	return out, err
}

// Duplicate inserts a copy of id directly after it.
func (s *Session) Duplicate(id string) (model.Record, error) {
	var rec model.Record
	err := s.apply("duplicate", id, func(d document.Document) (document.Document, error) {
		next, r, err := document.Duplicate(d, id)
		rec = r
		return next, err
	})
	return rec, err
}

// Remove deletes id. Selection pointing at id is cleared.
func (s *Session) Remove(id string) error {
	return s.apply("remove", id, func(d document.Document) (document.Document, error) {
		return document.Remove(d, id)
	})
}

// Update merges fields into the record id.
func (s *Session) Update(id string, fields map[string]any) error {
	return s.apply("update", id, func(d document.Document) (document.Document, error) {
		return document.Update(d, id, fields)
	})
}

// Replace swaps in next for the record with the same id. Edit controls
// call this through OnUpdate.
func (s *Session) Replace(next model.Record) error {
	return s.apply("replace", next.ID, func(d document.Document) (document.Document, error) {
		return document.Replace(d, next)
	})
}

// Move moves the component at index from to index to.
func (s *Session) Move(from, to int) error {
	return s.apply("move", "", func(d document.Document) (document.Document, error) {
		return document.Move(d, from, to)
	})
}

// MoveUp moves id one position earlier; at the top it is a no-op.
func (s *Session) MoveUp(id string) error {
	return s.apply("move_up", id, func(d document.Document) (document.Document, error) {
		return document.MoveUp(d, id)
	})
}

// MoveDown moves id one position later; at the bottom it is a no-op.
func (s *Session) MoveDown(id string) error {
	return s.apply("move_down", id, func(d document.Document) (document.Document, error) {
		return document.MoveDown(d, id)
	})
}

// Reorder applies a full ordering of the current ids.
func (s *Session) Reorder(ids []string) error {
	return s.apply("reorder", "", func(d document.Document) (document.Document, error) {
		return document.Reorder(d, ids)
	})
}

// Order returns the current component ids. It satisfies dnd.OrderFunc.
func (s *Session) Order() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.IDs()
}

// =============================================================================
// History
// =============================================================================

// Undo restores the previous snapshot. It reports false at the oldest entry.
func (s *Session) Undo() bool {
	return s.step("undo", s.hist.Undo)
}

// Redo restores the next snapshot. It reports false at the newest entry.
func (s *Session) Redo() bool {
	return s.step("redo", s.hist.Redo)
}

func (s *Session) step(op string, move func() ([]model.Record, bool)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, ok := move()
	if !ok {
		return false
	}
	next := s.doc
	next.Components = snap
	s.commit(next, false)
	observability.Editor().OnHistory(op, s.hist.Cursor(), s.hist.Len())
	return true
}

// CanUndo reports whether Undo would change the document.
func (s *Session) CanUndo() bool { return s.hist.CanUndo() }

// CanRedo reports whether Redo would change the document.
func (s *Session) CanRedo() bool { return s.hist.CanRedo() }
