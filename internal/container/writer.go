package container

import (
	"encoding/binary"

	"github.com/jamra/bookdex/internal/docindex"
	"github.com/jamra/bookdex/internal/mast"
)

// bookEntryRecordSize is the on-disk width of one posting: a u32 book id
// followed by u64 title and content frequencies, per spec.md §3.
const bookEntryRecordSize = 20

// Compile serializes shard into a single columnar byte buffer: a u64
// header_len, the packed header, then the names/paths/entries/fst
// sections back to back, each preceded by its own jump table.
func Compile(shard *docindex.Shard) ([]byte, error) {
	namesJump, namesPayload := compileNames(shard.Names)
	pathsJump, pathsPayload := compilePaths(shard.Books)
	entriesJump, entriesPayload := compileEntries(shard.Entries)

	fst := mast.Compile(shard.States)
	fstJump := fst.JumpTable()
	fstPayload := fst.Bytes()

	names := section{jump: namesJump, payload: namesPayload}
	paths := section{jump: pathsJump, payload: pathsPayload}
	entries := section{jump: entriesJump, payload: entriesPayload}
	fstSec := section{jump: fstJump, payload: fstPayload}

	var body []byte
	var h header

	h.namesPos, h.namesLen = uint64(len(body)), uint64(len(names.jump))
	body = append(body, names.bytes()...)

	h.pathsPos, h.pathsLen = uint64(len(body)), uint64(len(paths.jump))
	body = append(body, paths.bytes()...)

	h.entriesPos, h.entriesLen = uint64(len(body)), uint64(len(entries.jump))
	body = append(body, entries.bytes()...)

	h.fstPos, h.fstLen = uint64(len(body)), uint64(len(fstSec.jump))
	body = append(body, fstSec.bytes()...)

	headerBytes := h.marshal()

	out := make([]byte, 0, 8+len(headerBytes)+len(body))
	lenBuf := make([]byte, 8)
	binary.LittleEndian.PutUint64(lenBuf, uint64(len(headerBytes)))
	out = append(out, lenBuf...)
	out = append(out, headerBytes...)
	out = append(out, body...)
	return out, nil
}

// section is a jump table plus the payload it indexes into, both built
// in a single pass so offsets never need a second fixup walk.
type section struct {
	jump    []uint64
	payload []byte
}

func (s section) bytes() []byte {
	buf := make([]byte, len(s.jump)*8, len(s.jump)*8+len(s.payload))
	for i, off := range s.jump {
		binary.LittleEndian.PutUint64(buf[i*8:], off)
	}
	return append(buf, s.payload...)
}

func compileNames(names []string) ([]uint64, []byte) {
	jump := make([]uint64, len(names))
	var payload []byte
	for i, n := range names {
		jump[i] = uint64(len(payload))
		payload = append(payload, n...)
		payload = append(payload, 0)
	}
	return jump, payload
}

func compilePaths(books []docindex.BookEntry) ([]uint64, []byte) {
	jump := make([]uint64, len(books))
	var payload []byte
	for i, b := range books {
		jump[i] = uint64(len(payload))
		rec := make([]byte, len(b.Path.Segments)*4)
		for j, seg := range b.Path.Segments {
			binary.LittleEndian.PutUint32(rec[j*4:], seg)
		}
		payload = append(payload, rec...)
	}
	return jump, payload
}

func compileEntries(groups [][]docindex.Entry) ([]uint64, []byte) {
	jump := make([]uint64, len(groups))
	var payload []byte
	for i, group := range groups {
		jump[i] = uint64(len(payload))
		rec := make([]byte, len(group)*bookEntryRecordSize)
		for j, e := range group {
			off := j * bookEntryRecordSize
			binary.LittleEndian.PutUint32(rec[off:], e.BookID)
			binary.LittleEndian.PutUint64(rec[off+4:], e.TitleFreq)
			binary.LittleEndian.PutUint64(rec[off+12:], e.ContentFreq)
		}
		payload = append(payload, rec...)
	}
	return jump, payload
}
