// Command bookdex-search looks tokens up against a compiled bookdex
// index, printing one line of matching paths per token.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"
	"k8s.io/klog/v2"

	"github.com/jamra/bookdex/pkg/bookdex"
)

func main() {
	app := &cli.App{
		Name:      "bookdex-search",
		Usage:     "search a compiled bookdex index",
		ArgsUsage: "<index-path> <token> [token...]",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "title", Aliases: []string{"t"}, Usage: "search titles"},
			&cli.BoolFlag{Name: "content", Aliases: []string{"c"}, Usage: "search contents (default)"},
			&cli.IntFlag{Name: "jobs", Aliases: []string{"j"}, Value: 1, Usage: "worker goroutine count"},
		},
		Before: validateFlags,
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		klog.Error(err)
		os.Exit(255)
	}
}

func validateFlags(c *cli.Context) error {
	if c.Bool("title") && c.Bool("content") {
		return cli.Exit("--title and --content are mutually exclusive", 255)
	}
	return nil
}

func run(c *cli.Context) error {
	indexPath := c.Args().Get(0)
	tokens := c.Args().Tail()
	if indexPath == "" || len(tokens) == 0 {
		return cli.Exit("usage: bookdex-search <index-path> <token> [token...]", 255)
	}

	ch := bookdex.ChannelContent
	if c.Bool("title") {
		ch = bookdex.ChannelTitle
	}

	for i, tok := range tokens {
		tokens[i] = strings.ToLower(tok)
	}

	idx, err := bookdex.Open(indexPath)
	if err != nil {
		return cli.Exit(fmt.Sprintf("opening index: %v", err), 255)
	}
	defer idx.Close()
	idx.Jobs = c.Int("jobs")

	var results map[string][]string
	if idx.Jobs > 1 {
		results, err = idx.SearchParallel(context.Background(), tokens, ch)
	} else {
		results, err = idx.Search(tokens, ch)
	}
	if err != nil {
		return cli.Exit(fmt.Sprintf("search failed: %v", err), 255)
	}

	for _, tok := range tokens {
		fmt.Printf("%s: %s\n", tok, strings.Join(results[tok], " "))
	}
	return nil
}
