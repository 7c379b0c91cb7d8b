package mast

import "encoding/binary"

// CompiledFST is a read-only, traversable byte image of a built transducer:
// each state is a fixed-layout record (id, final flag, arcs) and jumpTable
// maps a state id directly to its byte offset, so a lookup walks the image
// directly without ever materializing a State or Arc value.
type CompiledFST struct {
	data      []byte
	jumpTable []uint64
}

const stateHeaderSize = 9 // id (u64) + final (u8)
const arcRecordSize = 13  // label (1 byte) + dest (uint64) + output (uint32)

// Compile serializes a minimized state set, as produced by Builder.Build,
// into a CompiledFST. jumpTable[id] is the byte offset of the state with
// that identifier, so the table is sized and indexed by id directly —
// states must be passed with ids packed into [0, len(states)), which
// Builder.Build guarantees.
func Compile(states []State) *CompiledFST {
	jump := make([]uint64, len(states))
	var buf []byte
	for _, s := range states {
		jump[s.ID] = uint64(len(buf))
		buf = appendState(buf, s)
	}
	return &CompiledFST{data: buf, jumpTable: jump}
}

func appendState(buf []byte, s State) []byte {
	header := make([]byte, stateHeaderSize)
	binary.LittleEndian.PutUint64(header[:8], s.ID)
	if s.Final {
		header[8] = 1
	}
	buf = append(buf, header...)

	for _, a := range s.Arcs {
		rec := make([]byte, arcRecordSize)
		rec[0] = a.Label
		binary.LittleEndian.PutUint64(rec[1:9], a.Dest)
		binary.LittleEndian.PutUint32(rec[9:13], a.Output)
		buf = append(buf, rec...)
	}
	return buf
}

// NewCompiledFST wraps an already-serialized transducer image (as
// produced by Bytes/JumpTable, typically read back out of a larger
// container) without re-walking or re-validating it.
func NewCompiledFST(data []byte, jumpTable []uint64) *CompiledFST {
	return &CompiledFST{data: data, jumpTable: jumpTable}
}

// recordLen returns the byte length of the state record at jump table
// index id: the gap to the next entry, or to the end of data for the
// last one. No arc count is ever stored on disk.
func (c *CompiledFST) recordLen(id uint64) uint64 {
	if i := int(id); i+1 < len(c.jumpTable) {
		return c.jumpTable[i+1] - c.jumpTable[i]
	}
	return uint64(len(c.data)) - c.jumpTable[id]
}

// readState decodes the state record with the given id, returning whether
// it is final, the byte offset of its first arc record, and its arc
// count (inferred from the record's length, not stored).
func (c *CompiledFST) readState(id uint64) (final bool, arcsOff uint64, arcCount int) {
	offset := c.jumpTable[id]
	final = c.data[offset+8] != 0
	arcsOff = offset + stateHeaderSize
	arcCount = int((c.recordLen(id) - stateHeaderSize) / arcRecordSize)
	return
}

func (c *CompiledFST) arcAt(arcsOff uint64, i int) (label byte, dest uint64, output uint32) {
	rec := c.data[arcsOff+uint64(i)*arcRecordSize:]
	return rec[0], binary.LittleEndian.Uint64(rec[1:9]), binary.LittleEndian.Uint32(rec[9:13])
}

// Get walks the transducer along key, summing arc outputs as it goes. It
// reports false if no path labeled by key exists or the reached state is not
// final.
func (c *CompiledFST) Get(key []byte) (uint32, bool) {
	id := uint64(0)
	var total uint32

	for _, b := range key {
		_, arcsOff, arcCount := c.readState(id)
		lo, hi := 0, arcCount
		found := false
		for lo < hi {
			mid := (lo + hi) / 2
			label, dest, output := c.arcAt(arcsOff, mid)
			switch {
			case label == b:
				total += output
				id = dest
				found = true
				lo = hi // break out
			case label < b:
				lo = mid + 1
			default:
				hi = mid
			}
		}
		if !found {
			return 0, false
		}
	}

	final, _, _ := c.readState(id)
	if !final {
		return 0, false
	}
	return total, true
}

// Bytes returns the raw compiled image, for embedding into a larger
// container section.
func (c *CompiledFST) Bytes() []byte { return c.data }

// JumpTable returns the per-id byte offsets into Bytes().
func (c *CompiledFST) JumpTable() []uint64 { return c.jumpTable }
