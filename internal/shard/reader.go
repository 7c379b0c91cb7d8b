package shard

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/exp/mmap"

	"github.com/jamra/bookdex/internal/container"
)

// slice records one shard's location within the mapped file.
type slice struct {
	offset int64
	length int64
}

// Reader opens an index file built by Writer, memory-mapping it once and
// scanning its shard headers up front so Len is O(1) and View needs no
// further scanning afterward. View copies the selected shard's bytes.
type Reader struct {
	mm     *mmap.ReaderAt
	slices []slice
}

// Open maps path read-only and indexes its shard boundaries.
func Open(path string) (*Reader, error) {
	mm, err := mmap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("shard: open %s: %w", path, err)
	}

	r := &Reader{mm: mm}
	var off int64
	total := int64(mm.Len())
	for off < total {
		var lenBuf [8]byte
		if _, err := mm.ReadAt(lenBuf[:], off); err != nil {
			mm.Close()
			return nil, fmt.Errorf("shard: reading length prefix at %d: %w", off, err)
		}
		length := int64(binary.LittleEndian.Uint64(lenBuf[:]))
		off += 8
		if off+length > total {
			mm.Close()
			return nil, fmt.Errorf("shard: truncated shard at offset %d (declared length %d, file has %d remaining)", off, length, total-off)
		}
		r.slices = append(r.slices, slice{offset: off, length: length})
		off += length
	}
	return r, nil
}

// Len returns the number of shards in the file.
func (r *Reader) Len() int { return len(r.slices) }

// View constructs a container.View over shard i. Construction copies the
// shard's bytes out of the mapped region via ReadAt (golang.org/x/exp/mmap's
// ReaderAt does not expose its backing slice directly) and is otherwise
// free of further I/O.
func (r *Reader) View(i int) (*container.View, error) {
	if i < 0 || i >= len(r.slices) {
		return nil, fmt.Errorf("shard: index %d out of range (have %d shards)", i, len(r.slices))
	}
	s := r.slices[i]
	buf := make([]byte, s.length)
	if _, err := r.mm.ReadAt(buf, s.offset); err != nil {
		return nil, fmt.Errorf("shard: reading shard %d: %w", i, err)
	}
	return container.NewView(buf)
}

// Close unmaps the underlying file.
func (r *Reader) Close() error {
	return r.mm.Close()
}
