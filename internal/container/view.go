package container

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/jamra/bookdex/internal/mast"
)

// Channel selects which posting frequency a search matches against.
type Channel int

const (
	ChannelTitle Channel = iota
	ChannelContent
)

// sectionView is a read-only slice of a jump-tabled section: jump holds
// the byte offsets (relative to payload) of each indexed item, and
// payload is the backing bytes for all of them.
type sectionView struct {
	jump    []byte // raw little-endian u64s, n entries
	n       int
	payload []byte
}

func (s sectionView) offset(i int) uint64 {
	return binary.LittleEndian.Uint64(s.jump[i*8:])
}

// slice returns the payload bytes belonging to item i: from its own
// offset up to the next item's offset, or to the end of payload for the
// last item.
func (s sectionView) slice(i int) []byte {
	start := s.offset(i)
	var end uint64
	if i+1 < s.n {
		end = s.offset(i + 1)
	} else {
		end = uint64(len(s.payload))
	}
	return s.payload[start:end]
}

// View is a zero-copy window over a compiled shard's bytes: constructing
// one just parses the fixed header and slices the four sections, without
// materializing names, paths, entries, or transducer states.
type View struct {
	buf     []byte
	names   sectionView
	paths   sectionView
	entries sectionView
	fst     *mast.CompiledFST
}

// NewView parses buf (a single compiled shard, as produced by Compile)
// into a View. buf is retained, not copied; the caller must keep it alive
// (and, if mmapped, mapped) for the View's lifetime.
func NewView(buf []byte) (*View, error) {
	if len(buf) < 8 {
		return nil, fmt.Errorf("container: buffer too short for header_len (%d bytes)", len(buf))
	}
	headerLen := binary.LittleEndian.Uint64(buf[:8])
	if uint64(len(buf)) < 8+headerLen {
		return nil, fmt.Errorf("container: buffer too short for header (%d bytes, need %d)", len(buf), 8+headerLen)
	}
	h, err := unmarshalHeader(buf[8 : 8+headerLen])
	if err != nil {
		return nil, err
	}
	body := buf[8+headerLen:]

	names, err := sliceSection(body, h.namesPos, h.namesLen, h.pathsPos)
	if err != nil {
		return nil, fmt.Errorf("container: names section: %w", err)
	}
	paths, err := sliceSection(body, h.pathsPos, h.pathsLen, h.entriesPos)
	if err != nil {
		return nil, fmt.Errorf("container: paths section: %w", err)
	}
	entries, err := sliceSection(body, h.entriesPos, h.entriesLen, h.fstPos)
	if err != nil {
		return nil, fmt.Errorf("container: entries section: %w", err)
	}
	fstSection, err := sliceSection(body, h.fstPos, h.fstLen, uint64(len(body)))
	if err != nil {
		return nil, fmt.Errorf("container: fst section: %w", err)
	}

	fstJump := make([]uint64, h.fstLen)
	for i := range fstJump {
		fstJump[i] = binary.LittleEndian.Uint64(fstSection.jump[i*8:])
	}

	return &View{
		buf:     buf,
		names:   names,
		paths:   paths,
		entries: entries,
		fst:     mast.NewCompiledFST(fstSection.payload, fstJump),
	}, nil
}

// sliceSection carves the jump table + payload for one section out of
// body, given its own starting position and the next section's starting
// position (or body's total length, for the last section).
func sliceSection(body []byte, pos, n, nextPos uint64) (sectionView, error) {
	jumpEnd := pos + n*8
	if jumpEnd > uint64(len(body)) || nextPos > uint64(len(body)) || nextPos < jumpEnd {
		return sectionView{}, fmt.Errorf("section bounds out of range (pos=%d n=%d next=%d body=%d)", pos, n, nextPos, len(body))
	}
	return sectionView{
		jump:    body[pos:jumpEnd],
		n:       int(n),
		payload: body[jumpEnd:nextPos],
	}, nil
}

// path reconstructs a book's "/"-joined path from its name-table segment
// indices.
func (v *View) path(bookID uint32) string {
	segs := v.paths.slice(int(bookID))
	n := len(segs) / 4
	parts := make([]string, n)
	for i := 0; i < n; i++ {
		nameIdx := binary.LittleEndian.Uint32(segs[i*4:])
		parts[i] = cString(v.names.slice(int(nameIdx)))
	}
	return strings.Join(parts, "/")
}

func cString(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}

// search resolves token against the transducer, then walks the selected
// channel's frequency field across the token's posting group, returning
// paths in ascending book-id (insertion) order. A miss yields a nil slice
// and no error.
func (v *View) search(token string, ch Channel) ([]string, error) {
	idx, ok := v.fst.Get([]byte(token))
	if !ok {
		return nil, nil
	}
	if int(idx) >= v.entries.n {
		return nil, fmt.Errorf("container: transducer output %d out of range for entries section (n=%d)", idx, v.entries.n)
	}

	rec := v.entries.slice(int(idx))
	count := len(rec) / bookEntryRecordSize
	var paths []string
	for i := 0; i < count; i++ {
		off := i * bookEntryRecordSize
		bookID := binary.LittleEndian.Uint32(rec[off:])
		titleFreq := binary.LittleEndian.Uint64(rec[off+4:])
		contentFreq := binary.LittleEndian.Uint64(rec[off+12:])

		freq := contentFreq
		if ch == ChannelTitle {
			freq = titleFreq
		}
		if freq != 0 {
			paths = append(paths, v.path(bookID))
		}
	}
	return paths, nil
}

// SearchTitle looks up token in the title channel.
func (v *View) SearchTitle(token string) ([]string, error) {
	return v.search(token, ChannelTitle)
}

// SearchContent looks up token in the content channel.
func (v *View) SearchContent(token string) ([]string, error) {
	return v.search(token, ChannelContent)
}
