// Package history implements the bounded undo/redo stack over component
// list snapshots.
//
// The stack holds immutable snapshots and a cursor. The cursor always points
// at the snapshot equal to the currently rendered components. Undo and Redo
// only move the cursor. Push discards every snapshot after the cursor,
// appends, then drops the oldest snapshots beyond the limit.
package history

import (
	"sync"

	"github.com/matzehuels/pagesmith/pkg/model"
)

// DefaultLimit is the number of snapshots retained.
const DefaultLimit = 50

// Stack is a bounded undo/redo history. It is safe for concurrent use.
type Stack struct {
	mu      sync.Mutex
	entries [][]model.Record
	cursor  int
	limit   int
}

// New creates a stack holding initial as its only entry. A limit below 1
// selects DefaultLimit.
func New(initial []model.Record, limit int) *Stack {
	if limit < 1 {
		limit = DefaultLimit
	}
	return &Stack{
		entries: [][]model.Record{snapshot(initial)},
		limit:   limit,
	}
}

// snapshot copies the slice header array. Records themselves are immutable
// values shared with the document.
func snapshot(rs []model.Record) []model.Record {
	out := make([]model.Record, len(rs))
	copy(out, rs)
	return out
}

// Push records components as the newest entry.
func (s *Stack) Push(components []model.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries[:s.cursor+1], snapshot(components))
	if over := len(s.entries) - s.limit; over > 0 {
		trimmed := make([][]model.Record, s.limit)
		copy(trimmed, s.entries[over:])
		s.entries = trimmed
	}
	s.cursor = len(s.entries) - 1
}

// Undo moves back one entry and returns it. At the oldest entry it returns
// false and leaves the cursor in place.
func (s *Stack) Undo() ([]model.Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cursor == 0 {
		return nil, false
	}
	s.cursor--
	return snapshot(s.entries[s.cursor]), true
}

// Redo moves forward one entry and returns it. At the newest entry it
// returns false.
func (s *Stack) Redo() ([]model.Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cursor >= len(s.entries)-1 {
		return nil, false
	}
	s.cursor++
	return snapshot(s.entries[s.cursor]), true
}

// Reset discards all entries and starts over from components. Undo cannot
// cross a reset.
func (s *Stack) Reset(components []model.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = [][]model.Record{snapshot(components)}
	s.cursor = 0
}

// Current returns the entry at the cursor.
func (s *Stack) Current() []model.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot(s.entries[s.cursor])
}

// Len returns the number of retained entries.
func (s *Stack) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Cursor returns the index of the current entry.
func (s *Stack) Cursor() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor
}

// Limit returns the maximum number of entries.
func (s *Stack) Limit() int {
	return s.limit
}

// CanUndo reports whether Undo would move the cursor.
func (s *Stack) CanUndo() bool {
	return s.Cursor() > 0
}

// CanRedo reports whether Redo would move the cursor.
func (s *Stack) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor < len(s.entries)-1
}
