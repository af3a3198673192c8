package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/brk3/habitcal/internal/calendar"
	"github.com/brk3/habitcal/internal/habits"
	"github.com/brk3/habitcal/internal/logger"
	"github.com/brk3/habitcal/internal/server"
	"github.com/brk3/habitcal/internal/storage/bolt"
	"github.com/brk3/habitcal/internal/textgen"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the HTTP server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return startServer(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}

func startServer(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := bolt.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	tracker := habits.NewTracker(habits.NewAdapter(store), habits.WithPolicy(cfg.StreakPolicy()))
	res, err := tracker.Load(ctx)
	if err != nil {
		return err
	}
	logger.Info("Habits loaded", "source", res.Source, "count", len(res.Habits), "db_path", cfg.DBPath)

	calOpts := []calendar.Option{calendar.WithDelays(cfg.Leave.ListDelay, cfg.Leave.MutateDelay)}
	if cfg.Leave.Seed {
		calOpts = append(calOpts, calendar.WithSeed())
	}
	cal := calendar.New(calOpts...)

	inspirer, err := newInspirer(ctx)
	if err != nil {
		return err
	}

	srv, err := server.New(cfg, tracker, cal, inspirer)
	if err != nil {
		return err
	}
	httpServer := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.TextGen.Timeout + 10*time.Second,
		IdleTimeout:       120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting server", "addr", cfg.ListenAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func newInspirer(ctx context.Context) (*textgen.Inspirer, error) {
	if cfg.TextGen.APIKey == "" {
		logger.Warn("No text generation API key set, inspiration endpoints will return fallbacks")
		return textgen.New(nil, cfg.TextGen.Language, cfg.TextGen.Timeout)
	}
	gen, err := textgen.NewGeminiGenerator(ctx, textgen.GeminiConfig{
		APIKey:  cfg.TextGen.APIKey,
		Model:   cfg.TextGen.Model,
		BaseURL: cfg.TextGen.BaseURL,
	})
	if err != nil {
		return nil, err
	}
	logger.Info("Text generation enabled", "generator", gen.Name())
	return textgen.New(gen, cfg.TextGen.Language, cfg.TextGen.Timeout)
}
