// Package document holds the editable page state and the mutation engine.
//
// A [Document] is an ordered component list plus the page palette and SEO
// metadata. Documents are values: every operation in this package takes a
// document and returns a new one, leaving its input untouched. Records that
// an operation does not touch are shared between input and output, which is
// safe because records are never mutated in place.
//
// Operations that fail return the input document unchanged together with a
// coded error. Missing ids produce NOT_FOUND, which callers treat as a
// logged no-op; malformed arguments produce VALIDATION_FAILED or
// INVALID_INPUT. Operations never panic on bad input.
//
// Operations that leave the document as it was (moving the first component
// up, removing a missing id) return their input; [Same] detects this so
// callers can skip recording history.
package document
