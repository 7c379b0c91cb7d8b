// Command bookdex-tokenize is a debugging aid: it runs the tokenizer over
// a single file and prints the title and content token streams it would
// feed to the index builder.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"
	"k8s.io/klog/v2"

	"github.com/jamra/bookdex/internal/tokenize"
)

func main() {
	app := &cli.App{
		Name:      "bookdex-tokenize",
		Usage:     "print the token streams bookdex-build would extract from a file",
		ArgsUsage: "<path>",
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
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		klog.Error(err)
		os.Exit(255)
	}
}

func run(c *cli.Context) error {
	path := c.Args().Get(0)
	if path == "" {
		return cli.Exit("usage: bookdex-tokenize <path>", 255)
	}

	opts := tokenize.Options{Checked: !c.Bool("no-check"), MinLength: c.Int("filter")}
	title, content, malformed, err := tokenize.File(path, opts)
	if err != nil {
		return cli.Exit(fmt.Sprintf("tokenizing %s: %v", path, err), 255)
	}

	fmt.Printf("title:   %s\n", strings.Join(title, " "))
	fmt.Printf("content: %s\n", strings.Join(content, " "))
	fmt.Printf("malformed codepoints: %d\n", malformed)
	return nil
}
