package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/meschsystems/jyro/artifact"
	"github.com/meschsystems/jyro/httpapi"
	"github.com/meschsystems/jyro/pipeline"
)

var (
	serveAddr         string
	serveCachePath    string
	serveCacheMemory  bool
	serveExecuteRPS   float64
	serveExecuteBurst int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the jyro compile/execute HTTP and websocket API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "address to listen on")
	serveCmd.Flags().StringVar(&serveCachePath, "cache-path", "jyro-cache", "on-disk path for the artifact cache")
	serveCmd.Flags().BoolVar(&serveCacheMemory, "cache-in-memory", false, "use an in-memory artifact cache instead of a persistent one")
	serveCmd.Flags().Float64Var(&serveExecuteRPS, "execute-rps", 20, "per-client token-bucket refill rate for /v1/execute (0 disables rate limiting)")
	serveCmd.Flags().IntVar(&serveExecuteBurst, "execute-burst", 40, "per-client token-bucket burst for /v1/execute")
}

// runServe opens the artifact cache, builds the pipeline.Driver and
// httpapi.Server around it, and runs the HTTP server alongside the
// cache's background GC, shutting both down together on SIGINT/SIGTERM
// or the first one to fail. Grounded on the teacher's own pattern of
// an errgroup.WithContext tying a group of goroutines' lifetimes
// together (services/trace/analysis/enhanced_analyzer.go), adapted
// here from "run enrichers to completion" to "run services until
// shutdown."
func runServe(cmd *cobra.Command, args []string) error {
	cacheCfg := artifact.DefaultCacheConfig(serveCachePath)
	if serveCacheMemory {
		cacheCfg = artifact.InMemoryCacheConfig()
	}
	cache, err := artifact.OpenCache(cacheCfg, logger)
	if err != nil {
		return fmt.Errorf("jyro: opening artifact cache: %w", err)
	}
	defer cache.Close()

	driver, err := pipeline.New(pipeline.Options{
		Logger: logger,
		Stats:  pipeline.NewPrometheusStats(),
	})
	if err != nil {
		return fmt.Errorf("jyro: %w", err)
	}

	srv := httpapi.NewServer(driver, logger, serveExecuteRPS, serveExecuteBurst).WithCache(cache)
	httpServer := &http.Server{
		Addr:    serveAddr,
		Handler: srv.NewRouter(),
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("serving jyro API", "addr", serveAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("jyro: http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("jyro: http server shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}
