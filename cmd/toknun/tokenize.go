package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/hagstofa/toknun/config"
	"github.com/hagstofa/toknun/entitycache"
	"github.com/hagstofa/toknun/entitydb"
	"github.com/hagstofa/toknun/lexicon"
	"github.com/hagstofa/toknun/pipeline"
)

var (
	tokenizeConfigPath    string
	tokenizeAutoUppercase bool
	tokenizeJSON          bool
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [file]",
	Short: "Tokenize Icelandic text from a file or stdin",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().StringVarP(&tokenizeConfigPath, "config", "c", "", "path to toknun.yaml (default: ./toknun.yaml)")
	tokenizeCmd.Flags().BoolVar(&tokenizeAutoUppercase, "auto-uppercase", false, "treat the input as all-uppercase text needing case restoration")
	tokenizeCmd.Flags().BoolVar(&tokenizeJSON, "json", false, "emit one JSON object per line instead of a colorized listing")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	var input []byte
	var err error
	if len(args) == 1 {
		input, err = os.ReadFile(args[0])
	} else {
		input, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		return fmt.Errorf("toknun: read input: %w", err)
	}

	cfg, err := config.Load(tokenizeConfigPath)
	if err != nil {
		return err
	}
	dict, err := cfg.LoadDictionaries()
	if err != nil {
		return err
	}

	lex := lexicon.NewMemoryLexicon(nil)
	var db entitydb.Lookup
	var cache entitycache.Cache
	if cfg.Database.DSN != "" {
		db, err = openEntityDB(cmd.Context(), cfg.Database)
		if err != nil {
			return err
		}
		defer db.Close()
		cache = entitycache.NewMemoryCache()
	}

	prod, release := pipeline.TokenizeWithLexicon(cmd.Context(), string(input), tokenizeAutoUppercase, dict, lex, db, cache)
	defer release()

	enc := json.NewEncoder(os.Stdout)
	kindColor := color.New(color.FgCyan)

	for {
		tok, ok, err := prod.Next()
		if err != nil {
			return fmt.Errorf("toknun: %w", err)
		}
		if !ok {
			return nil
		}
		if tokenizeJSON {
			if err := enc.Encode(map[string]string{"kind": tok.Kind.String(), "text": tok.Txt}); err != nil {
				return err
			}
			continue
		}
		kindColor.Printf("%-12s", tok.Kind.String())
		fmt.Printf(" %s\n", tok.Txt)
	}
}

func openEntityDB(ctx context.Context, cfg config.DatabaseConfig) (entitydb.Lookup, error) {
	if cfg.Driver == "pq" {
		return entitydb.OpenPQStore(ctx, cfg.DSN)
	}
	return entitydb.OpenPgxStore(ctx, cfg.DSN)
}
