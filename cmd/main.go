package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/sidelinehq/matchday/internal/adapters/http/api"
	"github.com/sidelinehq/matchday/internal/adapters/http/site"
	"github.com/sidelinehq/matchday/internal/adapters/http/swagger"
	"github.com/sidelinehq/matchday/internal/adapters/refresh"
	"github.com/sidelinehq/matchday/internal/adapters/source"
	service "github.com/sidelinehq/matchday/internal/app"
	"github.com/sidelinehq/matchday/internal/config"
	"github.com/sidelinehq/matchday/pkg/logger"
	"github.com/sidelinehq/matchday/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout           = 10 * time.Second
	writeTimeout          = 10 * time.Second
	idleTimeout           = 60 * time.Second
	readHeaderTimeout     = 5 * time.Second
	shutdownTimeout       = 30 * time.Second
	systemMetricsInterval = 10 * time.Second
)

func main() {
	// The hash-password subcommand prints an admin credentials line and
	// exits; everything else runs the server.
	if len(os.Args) > 1 && os.Args[1] == "hash-password" {
		hashPasswordCommand(os.Args[2:])
		return
	}

	// Disable default Go metrics collection to avoid duplicate metrics;
	// the custom system metrics updater covers what the dashboard needs.
	prometheus.Unregister(collectors.NewGoCollector())
	prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	loggerInstance := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	guard, err := api.LoadGuard(cfg.AdminCredsFile)
	if err != nil {
		os.Stderr.WriteString("failed to load admin credentials: " + err.Error() + "\n")
		return
	}
	if guard == nil {
		loggerInstance.Warn(ctx, "no admin credentials configured; reload endpoint is unprotected")
	}

	// Create and start the schedule service with configuration options
	svc := service.New(
		service.WithLogger(loggerInstance),
		service.WithSource(cfg.ScheduleSource),
		service.WithSourceFormat(source.Format(cfg.SourceFormat)),
		service.WithCacheBust(cfg.CacheBust),
		service.WithDefaultDivision(cfg.DefaultDivision),
	)
	if err := svc.Start(ctx); err != nil {
		os.Stderr.WriteString("failed to start service: " + err.Error() + "\n")
		return
	}
	defer svc.Stop()

	// Background refresh of the schedule source
	worker := refresh.NewWorker(svc,
		refresh.WithInterval(time.Duration(cfg.RefreshIntervalSec)*time.Second),
		refresh.WithLogger(loggerInstance),
	)
	go worker.Run(ctx)
	defer func() {
		_ = worker.Shutdown(context.Background())
	}()

	// Start system metrics updater
	go startSystemMetricsUpdater(ctx)

	// HTTP mux and routes.
	mux := http.NewServeMux()

	// Embedded schedule site at / (API routes below take precedence)
	site.Register(ctx, mux)

	// API docs under /api-docs
	swagger.Register(ctx, mux)

	// Register business API routes with the service dependency.
	apiServer := api.NewServer(svc, svc, guard)
	apiServer.Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		loggerInstance.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
			return
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	loggerInstance.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		loggerInstance.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	loggerInstance.Info(ctx, "server stopped")
}

// hashPasswordCommand prints a "username:hash" credentials line suitable for
// the admin_creds_file setting.
func hashPasswordCommand(args []string) {
	if len(args) != 2 {
		os.Stderr.WriteString("usage: matchday hash-password <username> <password>\n")
		os.Exit(2)
	}
	hash, err := api.HashPassword(args[1])
	if err != nil {
		os.Stderr.WriteString("failed to hash password: " + err.Error() + "\n")
		os.Exit(1)
	}
	fmt.Printf("%s:%s\n", args[0], hash)
}

// startSystemMetricsUpdater starts a background goroutine that updates system metrics.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

// updateSystemMetrics updates system-level metrics.
func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())
}
