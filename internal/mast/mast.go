// Package mast implements a minimal acyclic subsequential transducer: an
// ordered, minimal, deterministic finite-state transducer from byte strings
// to unsigned integers, built on-line from a lexicographically sorted
// stream of (key, value) pairs.
package mast

import "errors"

// Arc is a labeled, output-bearing edge between two states.
type Arc struct {
	Label  byte
	Dest   uint64
	Output uint32
}

// State is a single node of the transducer: an id, a finality flag, and its
// outgoing arcs. Arc labels within a state are unique (determinism).
type State struct {
	ID    uint64
	Final bool
	Arcs  []Arc
}

// Errors returned by Builder.Add. Builder.Build never returns an error;
// these are purely insertion-order contract violations.
var (
	ErrEmptyKey     = errors.New("mast: empty key")
	ErrDuplicateKey = errors.New("mast: duplicate key")
	ErrUnsortedKey  = errors.New("mast: keys must be added in strictly ascending lexicographic order")
)
