// Command bookdex-build walks a library of book files and compiles them
// into a bookdex index file.
package main

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v2"
	"k8s.io/klog/v2"

	"github.com/jamra/bookdex/internal/container"
	"github.com/jamra/bookdex/internal/docindex"
	"github.com/jamra/bookdex/internal/library"
	"github.com/jamra/bookdex/internal/shard"
	"github.com/jamra/bookdex/internal/tokenize"
)

func main() {
	app := &cli.App{
		Name:      "bookdex-build",
		Usage:     "build a bookdex index from a library of book files",
		ArgsUsage: "<index-path> <library-path>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "no-check",
				Aliases: []string{"n"},
				Usage:   "use the unchecked (raw byte) tokenizer instead of UTF-8 scanning",
			},
			&cli.IntFlag{
				Name:    "filter",
				Aliases: []string{"f"},
				Usage:   "minimum token length; shorter tokens are dropped",
			},
			&cli.IntFlag{
				Name:    "jobs",
				Aliases: []string{"j"},
				Value:   1,
				Usage:   "worker thread count",
			},
			&cli.IntFlag{
				Name:    "chunk",
				Aliases: []string{"c"},
				Value:   5000,
				Usage:   "shard flush threshold, in books",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		klog.Error(err)
		os.Exit(255)
	}
}

func run(c *cli.Context) error {
	indexPath := c.Args().Get(0)
	libraryPath := c.Args().Get(1)
	if indexPath == "" || libraryPath == "" {
		return cli.Exit("usage: bookdex-build <index-path> <library-path>", 255)
	}

	files, err := library.Walk(libraryPath)
	if err != nil {
		return cli.Exit(fmt.Sprintf("walking library: %v", err), 255)
	}
	if len(files) == 0 {
		klog.Warning("no files found under library path")
	}

	opts := tokenize.Options{Checked: !c.Bool("no-check"), MinLength: c.Int("filter")}
	jobs := c.Int("jobs")
	if jobs < 1 {
		jobs = 1
	}
	chunk := c.Int("chunk")
	if chunk < 1 {
		chunk = 5000
	}

	w, err := shard.Create(indexPath)
	if err != nil {
		return cli.Exit(fmt.Sprintf("creating index file: %v", err), 255)
	}
	defer w.Close()

	var booksIndexed, shardsFlushed, malformedTotal int64
	bar := progressbar.Default(int64(len(files)), "indexing")

	var wg sync.WaitGroup
	errCh := make(chan error, jobs)
	for _, r := range partition(len(files), jobs) {
		wg.Add(1)
		go func(batch []string) {
			defer wg.Done()
			if err := indexRange(batch, w, opts, chunk, bar, &booksIndexed, &shardsFlushed, &malformedTotal); err != nil {
				errCh <- err
			}
		}(files[r.start:r.end])
	}
	wg.Wait()
	close(errCh)
	for err := range errCh {
		if err != nil {
			return cli.Exit(fmt.Sprintf("build failed: %v", err), 255)
		}
	}

	klog.Infof("indexed %s books into %d shard(s), %d malformed codepoint(s) dropped",
		humanize.Comma(booksIndexed), shardsFlushed, malformedTotal)
	return nil
}

type byteRange struct{ start, end int }

// partition splits [0, n) into at most jobs contiguous ranges. Sorted
// input from library.Walk makes these ranges reproducible across runs.
func partition(n, jobs int) []byteRange {
	if jobs < 1 {
		jobs = 1
	}
	if jobs > n {
		jobs = n
	}
	if jobs == 0 {
		return nil
	}
	size := (n + jobs - 1) / jobs
	var ranges []byteRange
	for start := 0; start < n; start += size {
		end := start + size
		if end > n {
			end = n
		}
		ranges = append(ranges, byteRange{start, end})
	}
	return ranges
}

// indexRange owns one docindex.Builder exclusively, feeding it every book
// in batch and flushing a compiled shard to w every time it accumulates
// chunk books (plus once more at the end for any remainder).
func indexRange(batch []string, w *shard.Writer, opts tokenize.Options, chunk int, bar *progressbar.ProgressBar, booksIndexed, shardsFlushed, malformedTotal *int64) error {
	b := docindex.New()
	inShard := 0

	flush := func() error {
		if inShard == 0 {
			return nil
		}
		sh, err := b.Build()
		if err != nil {
			return err
		}
		buf, err := container.Compile(sh)
		if err != nil {
			return err
		}
		if err := w.Append(buf); err != nil {
			return err
		}
		atomic.AddInt64(shardsFlushed, 1)
		b = docindex.New()
		inShard = 0
		return nil
	}

	for _, path := range batch {
		title, content, malformed, err := tokenize.File(path, opts)
		if err != nil {
			klog.Warningf("skipping %s: %v", path, err)
			continue
		}
		atomic.AddInt64(malformedTotal, int64(malformed))

		b.AddBook(path, title, content)
		inShard++
		atomic.AddInt64(booksIndexed, 1)
		bar.Add(1)

		if inShard >= chunk {
			if err := flush(); err != nil {
				return fmt.Errorf("flushing shard: %w", err)
			}
		}
	}
	return flush()
}
