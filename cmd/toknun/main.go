package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information - set at build time via -ldflags.
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "toknun",
		Short: "An Icelandic tokenization pipeline",
		Long: `toknun splits Icelandic text into a typed, annotated stream of
tokens: words, numbers, dates, amounts, person names, and recognized
entities, in one streaming left-to-right pass.`,
	}

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(initCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
