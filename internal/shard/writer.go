// Package shard implements the on-disk framing of an index file: a flat
// concatenation of length-prefixed compiled shards, written by multiple
// build workers and read back with a single mmap.
package shard

import (
	"encoding/binary"
	"os"
	"sync"
)

// Writer appends compiled shards to a single output file. It is the only
// shared mutable resource in the build-time concurrency model: every
// worker flush goes through the same *Writer, serialized by mu.
type Writer struct {
	mu   sync.Mutex
	file *os.File
}

// Create truncates (or creates) path and returns a Writer over it.
func Create(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return &Writer{file: f}, nil
}

// Append writes one framed shard: an 8-byte little-endian length followed
// by the shard's compiled bytes. Safe for concurrent use.
func (w *Writer) Append(compiled []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	var lenBuf [8]byte
	binary.LittleEndian.PutUint64(lenBuf[:], uint64(len(compiled)))
	if _, err := w.file.Write(lenBuf[:]); err != nil {
		return err
	}
	_, err := w.file.Write(compiled)
	return err
}

// Close flushes and closes the underlying file.
func (w *Writer) Close() error {
	return w.file.Close()
}
