package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/clipstash/internal/api"
	"go.klb.dev/clipstash/internal/clip"
	"go.klb.dev/clipstash/internal/ipc"
	"go.klb.dev/clipstash/internal/monitor"
	"go.klb.dev/clipstash/internal/notify"
	"go.klb.dev/clipstash/internal/sourceapp"
	"go.klb.dev/clipstash/internal/store"
)

func newServeCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the clipboard capture daemon",
		Long: `Starts the clipstash daemon: polls the system clipboard, persists every
new text, link and image to the local database, and serves queries from the
CLI sub-commands (local socket) and UI surfaces (local HTTP).

Config file search order:
  /etc/clipstash/clipstash.toml
  $HOME/.config/clipstash/clipstash.toml
  path supplied via --config

Precedence (lowest → highest): defaults → config file → CLIPSTASH_* env vars → flags`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(_ *cobra.Command, _ []string) error { return runServe(v) },
	}

	f := cmd.Flags()
	f.String("db", "", "database path (default: <user config dir>/clipstash/clipstash.db)")
	f.Int("interval", 1000, "clipboard poll interval in milliseconds")
	f.String("http-addr", "127.0.0.1:8745", "local HTTP query API listen address")
	f.Bool("no-http", false, "disable the HTTP query API")
	addLoggingFlags(cmd)
	addConfigFlag(cmd)

	return cmd
}

func runServe(v *viper.Viper) error {
	setupLogging(v)

	dbPath := v.GetString("db")
	if dbPath == "" {
		dbPath = defaultDBPath()
	}
	interval := time.Duration(v.GetInt("interval")) * time.Millisecond

	slog.Info("clipstash daemon starting",
		"version", Version,
		"db", dbPath,
		"interval", interval,
	)

	db, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer db.Close()

	d := &daemon{
		startedAt: time.Now().UTC(),
		clips:     store.NewClipRepository(db),
		folders:   store.NewFolderRepository(db),
		tags:      store.NewTagRepository(db),
		snippets:  store.NewSnippetRepository(db),
		stack:     store.NewStackRepository(db),
		hub:       notify.New(),
		backend:   clip.New(),
	}
	defer d.backend.Close()

	d.mon = monitor.New(d.backend, sourceapp.New(), d.clips, d.hub, interval)
	d.mon.Start()
	defer d.mon.Stop()

	// IPC socket for the CLI sub-commands
	ipcLn, err := ipc.Listen()
	if err != nil {
		slog.Warn("IPC socket unavailable", "err", err)
	} else {
		slog.Info("IPC socket listening", "path", ipc.SocketPath())
		defer ipcLn.Close()
		go d.serveIPC(ipcLn)
	}

	// Local HTTP query API for UI surfaces
	if !v.GetBool("no-http") {
		handler := api.NewHandler(d.clips, d.folders, d.tags, d.snippets, d.stack)
		srv := &http.Server{
			Addr:    v.GetString("http-addr"),
			Handler: api.NewServer(handler),
		}
		go func() {
			slog.Info("http query API listening", "addr", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				slog.Error("http server failed", "err", err)
			}
		}()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(ctx)
		}()
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	s := <-sig
	slog.Info("shutting down", "signal", s.String())
	return nil
}
