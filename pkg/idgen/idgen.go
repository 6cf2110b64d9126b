// Package idgen mints identifiers for component records and websites.
//
// Component ids must be unique within a document, never reused after delete
// and stable across reorders. They are generated from a time+random source
// (RFC 9562 UUID v7), so ids minted later sort after ids minted earlier and
// collisions require a clash of 74 random bits within one millisecond.
package idgen

import (
	"strconv"
	"sync"

	"github.com/google/uuid"
)

// Generator produces unique string identifiers.
type Generator func() string

// UUIDv7 returns a Generator that produces time-ordered UUID v7 strings.
func UUIDv7() Generator {
	return func() string {
		return uuid.Must(uuid.NewV7()).String()
	}
}

// Sequence returns a deterministic Generator ("prefix-1", "prefix-2", ...).
// It is meant for tests and golden files; it is safe for concurrent use.
func Sequence(prefix string) Generator {
	var (
		mu sync.Mutex
		n  int
	)
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return prefix + "-" + strconv.Itoa(n)
	}
}

var (
	defaultMu  sync.RWMutex
	defaultGen = UUIDv7()
)

// New produces an id using the default generator.
func New() string {
	defaultMu.RLock()
	gen := defaultGen
	defaultMu.RUnlock()
	return gen()
}

// SetDefault replaces the default generator and returns a function that
// restores the previous one.
func SetDefault(gen Generator) (restore func()) {
	defaultMu.Lock()
	prev := defaultGen
	defaultGen = gen
	defaultMu.Unlock()
	return func() {
		defaultMu.Lock()
		defaultGen = prev
		defaultMu.Unlock()
	}
}

// Valid reports whether s parses as a UUID.
func Valid(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
