package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/zhouzirui/fpo-database/backend/internal/config"
	"github.com/zhouzirui/fpo-database/backend/internal/handler"
	"github.com/zhouzirui/fpo-database/backend/internal/metrics"
	"github.com/zhouzirui/fpo-database/backend/internal/model/record"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, flags)
		},
	}
	cmd.Flags().StringVar(&flags.addr, "addr", "", "Listen address, e.g. :8080 (overrides PORT)")
	return cmd
}

func runServe(cmd *cobra.Command, flags *rootFlags) error {
	cfg, err := loadConfig(flags)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// 启动时一次性加载数据，失败即退出
	records, err := record.Load(cfg.Data.Path)
	if err != nil {
		return fmt.Errorf("failed to load records: %w", err)
	}
	for _, id := range record.DuplicateIDs(records) {
		log.Printf("warning: data_id %d appears more than once, lookups return the first match", id)
	}

	store := record.NewMemoryStore(records, cfg.Data.Path)
	log.Printf("loaded %d records from %s (snapshot %s)", store.Len(), cfg.Data.Path, store.Snapshot().ID)

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
		m.SetRecordsLoaded(store.Len())
	} else {
		log.Println("metrics disabled by configuration")
	}

	router := handler.NewRouter(store, handler.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Metrics:        m,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) error {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("FPO database API listening on %s", serverCfg.Addr)
	if err := runServer(ctx, srv); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	log.Println("server stopped")
	return nil
}

// runServer serves until ctx is cancelled or the listener fails, then shuts
// the server down gracefully.
func runServer(ctx context.Context, srv *http.Server) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
