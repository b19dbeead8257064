package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"claims/internal/audit"
	auditmetrics "claims/internal/audit/metrics"
	claimhandler "claims/internal/claims/handler"
	claimservice "claims/internal/claims/service"
	coverhandler "claims/internal/covers/handler"
	coverservice "claims/internal/covers/service"
	"claims/internal/platform/config"
	"claims/internal/platform/httpserver"
	"claims/internal/platform/logger"
	platformmetrics "claims/internal/platform/metrics"
	"claims/internal/platform/middleware"
	"claims/internal/pricing"
	httptransport "claims/internal/transport/http"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Format)

	if err := run(cfg, log); err != nil {
		log.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := platformmetrics.New(reg)

	infra, err := openInfra(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer infra.Close()

	queue := audit.NewQueue()
	auditMetrics := auditmetrics.New(reg, queue.Len)
	auditer := audit.NewAuditer(queue, audit.WithAuditerMetrics(auditMetrics))
	processor := audit.NewProcessor(queue, infra.auditStore,
		audit.WithLogger(log),
		audit.WithMetrics(auditMetrics),
		audit.WithPersistTimeout(cfg.Audit.PersistTimeout),
	)

	covers, err := coverservice.New(infra.coverStore, auditer,
		coverservice.WithLogger(log),
		coverservice.WithMetrics(appMetrics),
		coverservice.WithCalculator(pricing.NewCalculator(cfg.Premium.BaseDayRate)),
	)
	if err != nil {
		return err
	}
	claims, err := claimservice.New(infra.claimStore, covers, auditer,
		claimservice.WithLogger(log),
		claimservice.WithMetrics(appMetrics),
	)
	if err != nil {
		return err
	}

	var limiter middleware.Limiter
	var localLimiter *middleware.LocalLimiter
	switch {
	case cfg.RateLimit.RequestsPerSecond <= 0:
	case infra.redis != nil:
		limiter = middleware.NewRedisLimiter(infra.redis, cfg.RateLimit.Burst, cfg.RateLimit.Window)
	default:
		localLimiter = middleware.NewLocalLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
		limiter = localLimiter
	}

	router := httptransport.NewRouter(httptransport.Deps{
		Logger:   log,
		Metrics:  appMetrics,
		Gatherer: reg,
		Limiter:  limiter,
		Checks:   infra.healthChecks(),
		Routes: []httptransport.Registrar{
			coverhandler.New(covers, log),
			claimhandler.New(claims, log),
		},
	})
	srv := httpserver.New(cfg.Server.Addr, router, log)

	// The processor outlives the signal context so it can drain after the
	// HTTP server stops accepting writes.
	processorCtx, cancelProcessor := context.WithCancel(context.Background())
	defer cancelProcessor()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting claims service", "addr", cfg.Server.Addr, "audit_sink", cfg.Audit.Sink)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	drained := make(chan struct{})
	g.Go(func() error {
		defer close(drained)
		return processor.Run(processorCtx)
	})
	if localLimiter != nil {
		g.Go(func() error {
			localLimiter.RunJanitor(gctx, time.Minute)
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		shutdownErr := srv.Shutdown(shutdownCtx)

		queue.Close()
		select {
		case <-drained:
		case <-time.After(cfg.Audit.DrainTimeout):
			log.Warn("audit drain deadline reached", "pending", queue.Len())
			cancelProcessor()
			<-drained
		}
		return shutdownErr
	})

	err = g.Wait()
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	return err
}
