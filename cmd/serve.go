package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"google.golang.org/grpc"

	calendarv1 "github.com/Leganyst/calendar-scheduler/internal/api/calendar/v1"
	"github.com/Leganyst/calendar-scheduler/internal/config"
	"github.com/Leganyst/calendar-scheduler/internal/db"
	"github.com/Leganyst/calendar-scheduler/internal/httpapi"
	"github.com/Leganyst/calendar-scheduler/internal/logging"
	"github.com/Leganyst/calendar-scheduler/internal/metrics"
	"github.com/Leganyst/calendar-scheduler/internal/model"
	"github.com/Leganyst/calendar-scheduler/internal/repository"
	"github.com/Leganyst/calendar-scheduler/internal/service"
)

const shutdownTimeout = 10 * time.Second

var serveFlags struct {
	httpAddr string
	grpcAddr string
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the booking submission server (HTTP + gRPC)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveFlags.httpAddr, "http-addr", "", "HTTP listen address (overrides HTTP_ADDR)")
	serveCmd.Flags().StringVar(&serveFlags.grpcAddr, "grpc-addr", "", "gRPC listen address (overrides GRPC_ADDR)")
}

func runServe(ctx context.Context) error {
	// 1. Конфиг из env / .env / config.yaml.
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if serveFlags.httpAddr != "" {
		cfg.HTTPAddr = serveFlags.httpAddr
	}
	if serveFlags.grpcAddr != "" {
		cfg.GRPCAddr = serveFlags.grpcAddr
	}

	logger, err := logging.New(cfg.LogLevel, cfg.IsProduction())
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	// 2. Подключаемся к БД через GORM.
	gormDB, err := db.NewGormDB(cfg.DB)
	if err != nil {
		return fmt.Errorf("init db: %w", err)
	}

	// 3. Миграции.
	if err := model.AutoMigrate(gormDB); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return fmt.Errorf("sql DB: %w", err)
	}
	defer sqlDB.Close()

	// 4. Репозиторий, метрики, сервис.
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	bookingMetrics := metrics.NewBookingMetrics(registry)

	calendarRepo := repository.NewGormCalendarRepository(gormDB)
	bookingSvc := service.NewBookingService(calendarRepo, bookingMetrics, logger)

	// 5. HTTP.
	router := httpapi.New(httpapi.Config{
		Logger:             logger,
		Bookings:           bookingSvc,
		MetricsHandler:     promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})
	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	// 6. gRPC.
	grpcServer := grpc.NewServer()
	calendarv1.RegisterBookingServiceServer(grpcServer, bookingSvc)

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.GRPCAddr, err)
	}

	// 7. Запуск в горутинах, первая ошибка останавливает оба сервера.
	errCh := make(chan error, 2)
	go func() {
		logger.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http serve: %w", err)
		}
	}()
	go func() {
		logger.Info("grpc server listening", zap.String("addr", cfg.GRPCAddr))
		if err := grpcServer.Serve(lis); err != nil {
			errCh <- fmt.Errorf("grpc serve: %w", err)
		}
	}()

	// 8. Грейсфул-шатдаун по сигналу.
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var serveErr error
	select {
	case <-ctx.Done():
	case serveErr = <-errCh:
		logger.Error("server failed", zap.Error(serveErr))
	}

	logger.Info("shutting down servers")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http shutdown", zap.Error(err))
	}
	grpcServer.GracefulStop()

	return serveErr
}
