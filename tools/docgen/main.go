// Package main renders the auction-monitor command reference as markdown,
// man pages, or reStructuredText.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/donaldgifford/auction-monitor/cmd/auction-monitor/cmd"
)

func main() {
	output := flag.String("output", "docs/cli", "output directory")
	format := flag.String("format", "markdown", "output format (markdown, man, rest)")
	flag.Parse()

	if err := os.MkdirAll(*output, 0o750); err != nil {
		log.Fatalf("creating output directory: %v", err)
	}

	root := cmd.Root()
	root.DisableAutoGenTag = true

	if err := generate(root, *format, *output); err != nil {
		log.Fatalf("generating %s docs: %v", *format, err)
	}

	fmt.Printf("auction-monitor %s docs generated in %s/\n", *format, *output)
}

func generate(root *cobra.Command, format, dir string) error {
	switch format {
	case "markdown":
		return doc.GenMarkdownTree(root, dir)
	case "man":
		return doc.GenManTree(root, &doc.GenManHeader{
			Title:   "AUCTION-MONITOR",
			Section: "1",
			Source:  "auction-monitor " + cmd.Version,
		}, dir)
	case "rest":
		return doc.GenReSTTree(root, dir)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
