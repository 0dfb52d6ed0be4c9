package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/BrandonDHaskell/farecard/internal/config"
	"github.com/BrandonDHaskell/farecard/internal/db"
	"github.com/BrandonDHaskell/farecard/internal/farecard/service"
	"github.com/BrandonDHaskell/farecard/internal/farecard/store"
	"github.com/BrandonDHaskell/farecard/internal/farecard/store/memory"
	"github.com/BrandonDHaskell/farecard/internal/farecard/store/postgres"
	sqlitestore "github.com/BrandonDHaskell/farecard/internal/farecard/store/sqlite"
	"github.com/BrandonDHaskell/farecard/internal/farecard/types"
	"github.com/BrandonDHaskell/farecard/internal/health"
	"github.com/BrandonDHaskell/farecard/internal/httpapi"
	"github.com/BrandonDHaskell/farecard/internal/logging"
	"github.com/BrandonDHaskell/farecard/internal/metrics"
)

func main() {
	cfg := config.FromEnv()
	logger := logging.Init(cfg.LogJSON, logging.ParseLevel(cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tables, closeTables, err := openCodeTables(ctx, cfg, logger)
	if err != nil {
		logger.Error("open code tables", slog.Any("err", err))
		os.Exit(1)
	}
	defer closeTables()

	// Metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewCollector(reg, "farecard")

	// Services
	locale := types.ParseDisplayLocale(cfg.Locale)
	catalog := service.NewCatalog(service.EnglishText)
	resolver := service.NewStationResolver(tables, service.ResolverOptions{
		Locale:      locale,
		Diagnostics: service.MultiDiagnostics{service.LogDiagnostics{Logger: logger}, m},
		Timeout:     cfg.LookupTimeout,
	})
	decoder := service.NewHistoryDecoder(catalog, resolver, m)

	// gRPC health + code table probe
	sinks := []service.StatusSink{m}
	var healthSrv *health.Server
	if cfg.GRPCAddr != "" {
		lis, err := net.Listen("tcp", cfg.GRPCAddr)
		if err != nil {
			logger.Error("grpc listen", slog.String("addr", cfg.GRPCAddr), slog.Any("err", err))
			os.Exit(1)
		}
		healthSrv = health.NewServer()
		sinks = append(sinks, healthSrv)
		go func() {
			logger.Info("grpc health listening", slog.String("addr", cfg.GRPCAddr))
			if err := healthSrv.Serve(lis); err != nil {
				logger.Error("grpc server error", slog.Any("err", err))
			}
		}()
	}

	probe := service.NewCodeTableProbe(tables, service.ProbeConfig{Interval: cfg.ProbeInterval}, logger, sinks...)
	probe.Start(ctx)

	// HTTP
	srv := httpapi.NewServer(httpapi.Dependencies{
		Logger:   logger,
		Addr:     cfg.HTTPAddr,
		Decoder:  decoder,
		Catalog:  catalog,
		Resolver: resolver,
		Metrics:  promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	})

	go func() {
		logger.Info("listening",
			slog.String("addr", cfg.HTTPAddr),
			slog.String("backend", cfg.Backend),
			slog.String("locale", locale.String()),
		)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("err", err))
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	probe.Stop()
	if healthSrv != nil {
		healthSrv.Stop()
	}
}

// openCodeTables returns the configured provider and a func releasing it.
func openCodeTables(ctx context.Context, cfg config.Config, logger *slog.Logger) (store.CodeTableProvider, func(), error) {
	switch cfg.Backend {
	case "memory":
		logger.Warn("using empty in-memory code tables")
		return memory.NewCodeTableStore(nil, nil), func() {}, nil

	case "postgres":
		pg, err := postgres.Open(ctx, postgres.Config{URL: cfg.PostgresURL})
		if err != nil {
			return nil, nil, err
		}
		if cfg.Env == "dev" {
			if err := pg.CreateSchema(ctx); err != nil {
				pg.Close()
				return nil, nil, err
			}
		}
		return pg, pg.Close, nil

	default:
		conn, err := db.Open(ctx, db.Config{Path: cfg.DBPath, Env: cfg.Env})
		if err != nil {
			return nil, nil, err
		}
		if cfg.Env == "dev" {
			if err := db.SeedDev(ctx, conn); err != nil {
				_ = conn.Close()
				return nil, nil, err
			}
		}
		writer := db.NewWorker(conn)
		return sqlitestore.NewCodeTableStore(conn, writer), func() {
			writer.Close()
			_ = conn.Close()
		}, nil
	}
}
