// Package library turns a directory of book files into the ordered file
// list the build CLI partitions across workers.
package library

import (
	"io/fs"
	"path/filepath"
	"sort"
)

// Walk recursively collects every regular file under root, in sorted
// order. The sort is what makes "contiguous ranges" a reproducible way to
// partition work across worker threads: two runs over the same directory
// tree always produce the same ranges.
func Walk(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
