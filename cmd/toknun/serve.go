package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/hagstofa/toknun/config"
	"github.com/hagstofa/toknun/entitycache"
	"github.com/hagstofa/toknun/entitydb"
	"github.com/hagstofa/toknun/lexicon"
	"github.com/hagstofa/toknun/logging"
	"github.com/hagstofa/toknun/server"
)

var (
	serveConfigPath string
	serveDev        bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the tokenizer as an HTTP/WebSocket service",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&serveConfigPath, "config", "c", "", "path to toknun.yaml (default: ./toknun.yaml)")
	serveCmd.Flags().BoolVar(&serveDev, "dev", false, "use the development (console) log encoder instead of JSON")
}

func runServe(cmd *cobra.Command, args []string) error {
	logger := logging.New(serveDev)
	defer logger.Sync()

	cfg, err := config.Load(serveConfigPath)
	if err != nil {
		return err
	}
	dict, err := cfg.LoadDictionaries()
	if err != nil {
		return err
	}

	lex := lexicon.NewMemoryLexicon(nil)
	defer lex.Close()

	var db entitydb.Lookup
	var cache entitycache.Cache
	if cfg.Database.DSN != "" {
		db, err = openEntityDB(cmd.Context(), cfg.Database)
		if err != nil {
			return err
		}
		defer db.Close()
	}
	if cfg.Cache.Addr != "" {
		cache = entitycache.NewRedisCache(newRedisClient(cfg.Cache), "toknun:ecache:", parseTTL(cfg.Cache.TTL))
	}

	handler := server.Routes(server.Deps{
		Dict:      dict,
		Lex:       lex,
		DB:        db,
		Cache:     cache,
		JWTSecret: cfg.Server.JWTSecret,
		Logger:    logger,
	})

	srv := server.New(cfg.Server, handler, logger)

	onChange := func(updated *config.Config) {
		logger.Info("config changed; the running server keeps its current settings until restarted")
	}
	_ = config.Watch(serveConfigPath, onChange)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-sigCh:
		logger.Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}

func parseTTL(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return time.Hour
	}
	return d
}
