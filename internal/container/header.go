// Package container implements the columnar, mmap-friendly byte layout a
// docindex.Shard is compiled to: a small fixed header followed by four
// jump-tabled sections (names, paths, entries, fst) laid out back to
// back. All multi-byte integers are little-endian; this is a deliberate
// departure from "native endian" so compiled shards are portable across
// build and query hosts regardless of architecture — see DESIGN.md.
package container

import (
	"encoding/binary"
	"fmt"
)

// header is the packed, fixed-width record that follows the leading
// u64 header_len. Every field is a section's byte offset or jump-table
// length, relative to the start of body.
type header struct {
	namesPos, namesLen     uint64
	pathsPos, pathsLen     uint64
	entriesPos, entriesLen uint64
	fstPos, fstLen         uint64
}

const headerFieldCount = 8
const headerSize = headerFieldCount * 8

func (h header) marshal() []byte {
	buf := make([]byte, headerSize)
	fields := []uint64{
		h.namesPos, h.namesLen,
		h.pathsPos, h.pathsLen,
		h.entriesPos, h.entriesLen,
		h.fstPos, h.fstLen,
	}
	for i, f := range fields {
		binary.LittleEndian.PutUint64(buf[i*8:], f)
	}
	return buf
}

func unmarshalHeader(buf []byte) (header, error) {
	if len(buf) != headerSize {
		return header{}, fmt.Errorf("container: header is %d bytes, want %d", len(buf), headerSize)
	}
	fields := make([]uint64, headerFieldCount)
	for i := range fields {
		fields[i] = binary.LittleEndian.Uint64(buf[i*8:])
	}
	return header{
		namesPos: fields[0], namesLen: fields[1],
		pathsPos: fields[2], pathsLen: fields[3],
		entriesPos: fields[4], entriesLen: fields[5],
		fstPos: fields[6], fstLen: fields[7],
	}, nil
}
