package mast

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// register is the hash-consing table used to minimize frozen states.
// Unlike a bounded LRU cache, it never evicts: minimality is a
// build-completion invariant, and an evicted-but-still-referenced state
// would silently reintroduce a duplicate into the transducer.
type register struct {
	buckets map[uint64][]*State
	states  map[uint64]*State // every committed state, keyed by its own id
}

func newRegister() *register {
	return &register{
		buckets: make(map[uint64][]*State),
		states:  make(map[uint64]*State),
	}
}

// signature encodes a candidate state's (final, arcs) tuple into a stable
// byte sequence for hashing. Arc equality compares label, dest and output,
// so all three are folded into the digest.
func signature(final bool, arcs []Arc) []byte {
	buf := make([]byte, 1+len(arcs)*13)
	if final {
		buf[0] = 1
	}
	off := 1
	for _, a := range arcs {
		buf[off] = a.Label
		binary.LittleEndian.PutUint64(buf[off+1:], a.Dest)
		binary.LittleEndian.PutUint32(buf[off+9:], a.Output)
		off += 13
	}
	return buf
}

func sameArcs(a, b []Arc) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Label != b[i].Label || a[i].Dest != b[i].Dest || a[i].Output != b[i].Output {
			return false
		}
	}
	return true
}

// find looks up an existing committed state with the same (final, arcs)
// tuple, returning it and true on a hit.
func (r *register) find(final bool, arcs []Arc) (*State, bool) {
	h := xxhash.Sum64(signature(final, arcs))
	for _, candidate := range r.buckets[h] {
		if candidate.Final == final && sameArcs(candidate.Arcs, arcs) {
			return candidate, true
		}
	}
	return nil, false
}

// commit freezes a new, previously-unseen state into the register under
// the given id, copying its arcs sorted by label.
func (r *register) commit(id uint64, final bool, arcs []Arc) *State {
	owned := make([]Arc, len(arcs))
	copy(owned, arcs)
	sortArcsByLabel(owned)

	s := &State{ID: id, Final: final, Arcs: owned}
	h := xxhash.Sum64(signature(final, owned))
	r.buckets[h] = append(r.buckets[h], s)
	r.states[id] = s
	return s
}

func sortArcsByLabel(arcs []Arc) {
	// Arcs arrive already in non-decreasing label order; insertion sort
	// is O(n) on that input and stays correct if it ever isn't.
	for i := 1; i < len(arcs); i++ {
		for j := i; j > 0 && arcs[j-1].Label > arcs[j].Label; j-- {
			arcs[j-1], arcs[j] = arcs[j], arcs[j-1]
		}
	}
}
