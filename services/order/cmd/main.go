package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sakashimaa/accessory-shop/pkg/client"
	"github.com/sakashimaa/accessory-shop/pkg/config"
	"github.com/sakashimaa/accessory-shop/pkg/db"
	"github.com/sakashimaa/accessory-shop/pkg/httpserver"
	"github.com/sakashimaa/accessory-shop/pkg/kafka"
	"github.com/sakashimaa/accessory-shop/pkg/metrics"
	"github.com/sakashimaa/accessory-shop/pkg/mylogger"
	outboxRepository "github.com/sakashimaa/accessory-shop/pkg/outbox/repository"
	"github.com/sakashimaa/accessory-shop/pkg/outbox/worker"
	"github.com/sakashimaa/accessory-shop/pkg/utils"
	"github.com/sakashimaa/accessory-shop/services/order/internal/repository"
	"github.com/sakashimaa/accessory-shop/services/order/internal/service"
	"github.com/sakashimaa/accessory-shop/services/order/internal/transport/http"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf(".env not found: %v\n", err)
	}

	cfg := config.MustLoad()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tp, err := utils.InitTracer(ctx, "order-service")
	if err != nil {
		log.Fatalf("failed to init tracer: %v", err)
	}

	logger, err := config.NewLogger(config.LoggerConfig{
		Level:   cfg.LogLevel,
		Env:     cfg.Env,
		Service: "order-service",
	})
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	pool, err := db.NewPostgresDB(ctx, cfg.Postgres.URL, logger)
	if err != nil {
		log.Fatalf("failed to create pool: %v", err)
	}

	kafkaProducer, err := kafka.NewProducer(cfg.Kafka.Brokers)
	if err != nil {
		log.Fatalf("error creating kafka producer: %v", err)
	}

	m := metrics.New("order")
	downstream := client.OptionsFromConfig(cfg.Downstream, m)

	orderRepo := repository.NewOrderRepository(pool, logger)
	outboxRepo := outboxRepository.NewOutboxRepository(logger)
	orderService := service.NewOrderService(
		pool,
		logger,
		orderRepo,
		outboxRepo,
		client.NewCustomerClient(cfg.Services.CustomerURL, downstream, logger),
		client.NewCatalogClient(cfg.Services.CatalogURL, downstream, logger),
	)

	outboxProcessor := worker.NewOutboxProcessor(pool, outboxRepo, kafkaProducer, logger)
	go outboxProcessor.Start(ctx)

	app := httpserver.New("order-service", cfg.Limiter, m, logger)
	http.RegisterRoutes(app, http.NewOrderHandler(orderService, logger))

	go func() {
		mylogger.Info(ctx, logger, "HTTP server listening", zap.String("port", cfg.HTTP.Port))
		if err := app.Listen(cfg.HTTP.Port); err != nil {
			log.Fatalf("Error listening on HTTP port %v: %v\n", cfg.HTTP.Port, err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	mylogger.Info(shutdownCtx, logger, "Shutting down order server")

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		mylogger.Warn(shutdownCtx, logger, "Failed to shut down HTTP app", zap.Error(err))
	}

	if err := kafkaProducer.Close(); err != nil {
		mylogger.Warn(shutdownCtx, logger, "Failed to close kafka producer", zap.Error(err))
	}

	if err := tp.Shutdown(shutdownCtx); err != nil {
		mylogger.Warn(shutdownCtx, logger, "Failed to shut down telemetry", zap.Error(err))
	}

	pool.Close()
}
