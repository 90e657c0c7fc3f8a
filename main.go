package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"things_future/config"
	"things_future/handlers"
	"things_future/logger"
	"things_future/scenario"
	"things_future/session"
	"things_future/words"
)

const title = "Things from the Future"

var configFile string

var rootCmd = &cobra.Command{
	Use:          "things-future",
	Short:        "Serve the Things from the Future card generator",
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVarP(&configFile, "config", "c", "", "Config file (default: ./things-future.toml if present)")
	f.String("addr", "", "Listen address")
	f.String("words", "", "Word list JSON, a local path or http(s) URL")
	f.String("static", "", "Directory served under /static/")
	f.String("share-url", "", "URL encoded in the share QR code")
	f.Bool("log-json", false, "Log as JSON")
	f.Bool("debug", false, "Enable debug logging")
	f.Bool("watch", false, "Reload a local word file when it changes")
	f.Bool("reconcile", false, "Redraw words that disappear when a session's words are replaced")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the web server (default)",
		RunE:  runServe,
	})
	rootCmd.AddCommand(checkCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configFile, cmd.Flags())
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.LogJSON, cfg.Debug)
	if err != nil {
		return errors.Wrap(err, "build logger")
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	manager := session.NewManager(session.Options{
		Delays:    cfg.Delays,
		Reconcile: cfg.Reconcile,
	}, cfg.SessionTTL, log)

	// A failed load keeps the server up so the page can offer a retry.
	_ = manager.Load(ctx, cfg.Words)

	if cfg.Watch {
		w, err := startWatcher(cfg.Words, manager, log)
		if err != nil {
			return err
		}
		if w != nil {
			defer w.Stop()
		}
	}

	writer := &scenario.Writer{}
	if cfg.ScenarioEnabled() {
		g, err := scenario.NewGemini(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			return errors.Wrap(err, "create gemini client")
		}
		defer g.Close()
		writer.Model = g
		log.Infow("Scenario writer enabled", "model", cfg.Gemini.Model)
	}

	h := &handlers.Handler{
		Manager:     manager,
		Writer:      writer,
		Logger:      log,
		Title:       title,
		ShareURL:    cfg.ShareURL,
		WordsSource: cfg.Words,
	}

	mux := http.NewServeMux()
	fs := http.FileServer(http.Dir(cfg.Static))
	mux.Handle("GET /static/", http.StripPrefix("/static/", fs))
	h.Register(mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infow("Listening", "addr", "http://"+cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return errors.Wrap(err, "serve")
		}
		return nil
	case <-ctx.Done():
	}

	log.Infow("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutdown")
	}
	return nil
}

// startWatcher reloads the default catalog when a local word file changes.
// Remote sources are not watched.
func startWatcher(src string, manager *session.Manager, log *zap.SugaredLogger) (*words.Watcher, error) {
	if words.IsRemote(src) {
		log.Warnw("Ignoring --watch for a remote word source", "source", src)
		return nil, nil
	}
	w, err := words.NewWatcher(src, manager.SetCatalog, log)
	if err != nil {
		return nil, err
	}
	w.Start()
	log.Infow("Watching word file", "path", src)
	return w, nil
}

var checkCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Load a word file and print what was accepted",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, rep, err := words.Load(cmd.Context(), args[0])
		if err != nil {
			for _, hint := range errors.GetAllHints(err) {
				fmt.Fprintln(cmd.ErrOrStderr(), "hint:", hint)
			}
			return err
		}
		out, err := json.MarshalIndent(rep, "", "  ")
		if err != nil {
			return errors.Wrap(err, "encode report")
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}
