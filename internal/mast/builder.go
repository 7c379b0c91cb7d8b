package mast

import "bytes"

// frontierState is a mutable, not-yet-frozen state living on the frontier.
// Its id is assigned when the state is first created and never changes,
// even if the state is later merged away (in which case the id itself is
// recycled for a future state, not this value).
type frontierState struct {
	id    uint64
	final bool
	arcs  []Arc
}

// Builder performs the on-line construction of a minimal acyclic
// subsequential transducer from a strictly ascending stream of (key,
// value) pairs: frontier freezing with hash-consing, followed by output
// push-back.
type Builder struct {
	frontier []*frontierState // frontier[i]: state after consuming i bytes of prevKey
	prevKey  []byte
	hasPrev  bool

	nextID  uint64
	freeIDs []uint64

	reg *register
}

// New creates an empty builder with a single root state (id 0).
func New() *Builder {
	root := &frontierState{id: 0}
	return &Builder{
		frontier: []*frontierState{root},
		nextID:   1,
		reg:      newRegister(),
	}
}

// Add inserts a (key, value) pair. Keys must arrive in strictly ascending
// lexicographic order.
func (b *Builder) Add(key []byte, value uint32) error {
	if len(key) == 0 {
		return ErrEmptyKey
	}
	if b.hasPrev {
		switch bytes.Compare(key, b.prevKey) {
		case 0:
			return ErrDuplicateKey
		case -1:
			return ErrUnsortedKey
		}
	}

	lcp := commonPrefixLen(b.prevKey, key)

	// 1. Freeze the suffix of the previous key beyond the shared prefix.
	b.freezeSuffix(lcp)

	// 2. Extend the frontier with fresh states for the new suffix.
	for i := lcp; i < len(key); i++ {
		id := b.allocID()
		from := b.frontier[i]
		setArcDest(from, key[i], id)
		b.frontier = append(b.frontier, &frontierState{id: id})
	}

	// 3. Mark the state reached by the whole key as final.
	b.frontier[len(key)].final = true

	// 4. Output push-back: strip the common output prefix onto the
	// shared arcs, propagating the stripped remainder deeper so keys
	// already inserted along this path still sum to their original
	// value.
	v := value
	for i := 1; i <= lcp; i++ {
		from := b.frontier[i-1]
		arc := findArc(from, key[i-1])
		common := minU32(arc.Output, v)
		suffix := arc.Output - common
		arc.Output = common
		if suffix != 0 {
			addOutputToAllArcs(b.frontier[i], suffix)
		}
		v -= common
	}
	setArcOutput(b.frontier[lcp], key[lcp], v)

	b.prevKey = append(b.prevKey[:0], key...)
	b.hasPrev = true
	return nil
}

// Build finalizes construction: the remaining frontier (the suffix unique
// to the last inserted key, all the way down to the root) is frozen, the
// root is committed unconditionally, and the full minimized state set is
// returned sorted by ascending id with ids packed into [0, len(states)) —
// required by the compiled view's jump table (jumpTable[id] indexes
// directly by id, sized to exactly the state count), since freeID can
// otherwise leave permanent gaps in the id space for states retired
// during this final freeze, with no later Add to recycle them.
func (b *Builder) Build() []State {
	b.freezeSuffix(0)

	root := b.frontier[0]
	b.reg.commit(root.id, root.final, root.arcs)

	states := make([]State, 0, len(b.reg.states))
	for _, s := range b.reg.states {
		states = append(states, *s)
	}
	sortStatesByID(states)
	return renumber(states)
}

// renumber compacts ids, in the given (ascending-by-old-id) order, into
// [0, len(states)), rewriting every arc's Dest to follow.
func renumber(states []State) []State {
	newID := make(map[uint64]uint64, len(states))
	for i, s := range states {
		newID[s.ID] = uint64(i)
	}
	out := make([]State, len(states))
	for i, s := range states {
		arcs := make([]Arc, len(s.Arcs))
		for j, a := range s.Arcs {
			arcs[j] = Arc{Label: a.Label, Dest: newID[a.Dest], Output: a.Output}
		}
		out[i] = State{ID: uint64(i), Final: s.Final, Arcs: arcs}
	}
	return out
}

// freezeSuffix commits every frontier state at depth > keepDepth, deepest
// first, hash-consing each one against the register and rewriting its
// parent's arc to point at whichever id survives (the state's own, if it
// was genuinely new, or an existing equivalent state's). The frontier
// slice is left holding exactly the states at depth 0..keepDepth.
func (b *Builder) freezeSuffix(keepDepth int) {
	for i := len(b.frontier) - 1; i > keepDepth; i-- {
		st := b.frontier[i]
		parent := b.frontier[i-1]
		var label byte
		if i-1 < len(b.prevKey) {
			label = b.prevKey[i-1]
		}

		if existing, ok := b.reg.find(st.final, st.arcs); ok {
			b.freeID(st.id)
			rewriteDest(parent, label, existing.ID)
		} else {
			b.reg.commit(st.id, st.final, st.arcs)
			rewriteDest(parent, label, st.id)
		}
	}
	b.frontier = b.frontier[:keepDepth+1]
}

func (b *Builder) allocID() uint64 {
	if n := len(b.freeIDs); n > 0 {
		id := b.freeIDs[n-1]
		b.freeIDs = b.freeIDs[:n-1]
		return id
	}
	id := b.nextID
	b.nextID++
	return id
}

func (b *Builder) freeID(id uint64) {
	b.freeIDs = append(b.freeIDs, id)
}

func commonPrefixLen(a, b []byte) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return i
}

func findArc(fs *frontierState, label byte) *Arc {
	for i := range fs.arcs {
		if fs.arcs[i].Label == label {
			return &fs.arcs[i]
		}
	}
	return nil
}

func setArcDest(fs *frontierState, label byte, dest uint64) {
	if a := findArc(fs, label); a != nil {
		a.Dest = dest
		return
	}
	fs.arcs = append(fs.arcs, Arc{Label: label, Dest: dest})
}

func setArcOutput(fs *frontierState, label byte, output uint32) {
	if a := findArc(fs, label); a != nil {
		a.Output = output
	}
}

func rewriteDest(fs *frontierState, label byte, dest uint64) {
	if a := findArc(fs, label); a != nil {
		a.Dest = dest
	}
}

func addOutputToAllArcs(fs *frontierState, suffix uint32) {
	for i := range fs.arcs {
		fs.arcs[i].Output += suffix
	}
}

func minU32(a, b uint32) uint32 {
	if a < b {
		return a
	}
	return b
}

func sortStatesByID(states []State) {
	for i := 1; i < len(states); i++ {
		for j := i; j > 0 && states[j-1].ID > states[j].ID; j-- {
			states[j-1], states[j] = states[j], states[j-1]
		}
	}
}
