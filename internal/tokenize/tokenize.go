// Package tokenize turns a book file on disk into the (title, content)
// token streams the index builder consumes: the title is everything up
// to the first newline, the content is everything after it, and both are
// reduced to lowercase alphanumeric runs.
package tokenize

import (
	"bytes"
	"os"
	"unicode/utf8"
)

// Options controls how a file is scanned.
type Options struct {
	// Checked scans input as UTF-8 codepoints, dropping (and counting)
	// malformed ones. When false, input is scanned as raw bytes.
	Checked bool
	// MinLength drops tokens shorter than this many bytes. Zero disables
	// the filter.
	MinLength int
}

// File reads path and splits it into title and content token streams.
// malformed counts codepoints rejected by checked-mode scanning; it is
// always zero in unchecked mode.
func File(path string, opts Options) (title, content []string, malformed int, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, 0, err
	}

	titleBytes, contentBytes := splitTitle(data)

	titleTokens, tm := scan(titleBytes, opts)
	contentTokens, cm := scan(contentBytes, opts)

	return titleTokens, contentTokens, tm + cm, nil
}

// splitTitle divides data at the first newline: everything before it is
// the title, everything after is the content. A file with no newline is
// entirely title.
func splitTitle(data []byte) (title, content []byte) {
	i := bytes.IndexByte(data, '\n')
	if i < 0 {
		return data, nil
	}
	return data[:i], data[i+1:]
}

// scan reduces data to lowercase-alphanumeric tokens, honoring the
// checked/unchecked and minimum-length options.
func scan(data []byte, opts Options) ([]string, int) {
	var tokens []string
	var cur []byte
	var malformed int

	flush := func() {
		if len(cur) > 0 && len(cur) >= opts.MinLength {
			tokens = append(tokens, string(cur))
		}
		cur = nil
	}

	if !opts.Checked {
		for _, b := range data {
			if lb, ok := keep(b); ok {
				cur = append(cur, lb)
			} else {
				flush()
			}
		}
		flush()
		return tokens, 0
	}

	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size <= 1 {
			malformed++
			data = data[1:]
			flush()
			continue
		}
		if r < utf8.RuneSelf {
			if lb, ok := keep(byte(r)); ok {
				cur = append(cur, lb)
			} else {
				flush()
			}
		} else {
			flush()
		}
		data = data[size:]
	}
	flush()
	return tokens, malformed
}

// keep reports whether b is a single-byte ASCII alphanumeric, returning
// it lowercased.
func keep(b byte) (byte, bool) {
	switch {
	case b >= 'a' && b <= 'z':
		return b, true
	case b >= 'A' && b <= 'Z':
		return b + ('a' - 'A'), true
	case b >= '0' && b <= '9':
		return b, true
	default:
		return 0, false
	}
}
