package cli

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"

	"curl-mapper/internal/companion"
	"curl-mapper/internal/config"
	"curl-mapper/internal/diagnostic"
	"curl-mapper/internal/server"
)

type serveOptions struct {
	listen    string
	docsDir   string
	watch     bool
	accessLog bool
}

func newServeCmd(root *rootOptions) *cobra.Command {
	var opts serveOptions

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.load()
			if err != nil {
				return err
			}

			applyServeFlags(cmd, cfg, opts)

			return runServe(cmd, cfg, opts.accessLog)
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&opts.listen, "listen", "", "http listen address (overrides server.listen)")
	fs.StringVar(&opts.docsDir, "docs-dir", "", "companion document directory (overrides companion.dir)")
	fs.BoolVar(&opts.watch, "watch", false, "reload companion documents when the directory changes")
	fs.BoolVar(&opts.accessLog, "access-log", true, "log one line per request")

	return cmd
}

func applyServeFlags(cmd *cobra.Command, cfg *config.Config, opts serveOptions) {
	if l := strings.TrimSpace(opts.listen); l != "" {
		cfg.Server.Listen = l
	}

	if d := strings.TrimSpace(opts.docsDir); d != "" {
		cfg.Companion.Dir = d
	}

	if cmd.Flags().Changed("watch") {
		cfg.Companion.Watch = opts.watch
	}
}

func runServe(cmd *cobra.Command, cfg *config.Config, accessLog bool) error {
	cache, err := companion.NewCache(cfg.Companion.CacheSize)
	if err != nil {
		return err
	}

	documents := func() *companion.Set { return nil }

	switch {
	case cfg.Companion.Dir == "":
		log.Printf("no companion directory configured; serving without documents")

	case cfg.Companion.Watch:
		w, err := companion.NewWatcher(cfg.Companion.Dir, companion.WatcherOptions{
			Debounce: cfg.Debounce(),
			Cache:    cache,
			OnReload: func(set *companion.Set, _ *diagnostic.Diagnostics) {
				log.Printf("companion documents loaded: dir=%q count=%d", cfg.Companion.Dir, set.Len())
			},
		})
		if err != nil {
			return fmt.Errorf("failed to watch companion directory: %w", err)
		}

		defer func() {
			if err := w.Close(); err != nil {
				log.Printf("failed to stop companion watcher: %v", err)
			}
		}()

		documents = w.Snapshot

	default:
		set, diags, err := companion.LoadDir(cfg.Companion.Dir, cache)
		if err != nil {
			return err
		}

		logDiagnostics(diags)
		log.Printf("companion documents loaded: dir=%q count=%d", cfg.Companion.Dir, set.Len())

		documents = func() *companion.Set { return set }
	}

	srv := server.New(server.Options{
		Config:    cfg,
		Documents: documents,
		Cache:     cache,
		AccessLog: accessLog,
	})

	return srv.Run(cmd.Context())
}
