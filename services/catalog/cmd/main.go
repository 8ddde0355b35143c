package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sakashimaa/accessory-shop/pkg/config"
	"github.com/sakashimaa/accessory-shop/pkg/db"
	"github.com/sakashimaa/accessory-shop/pkg/httpserver"
	"github.com/sakashimaa/accessory-shop/pkg/metrics"
	"github.com/sakashimaa/accessory-shop/pkg/mylogger"
	"github.com/sakashimaa/accessory-shop/pkg/utils"
	"github.com/sakashimaa/accessory-shop/services/catalog/internal/repository"
	"github.com/sakashimaa/accessory-shop/services/catalog/internal/service"
	"github.com/sakashimaa/accessory-shop/services/catalog/internal/transport/http"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf(".env not found: %v\n", err)
	}

	cfg := config.MustLoad()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tp, err := utils.InitTracer(ctx, "catalog-service")
	if err != nil {
		log.Fatalf("failed to init tracer: %v", err)
	}

	logger, err := config.NewLogger(config.LoggerConfig{
		Level:   cfg.LogLevel,
		Env:     cfg.Env,
		Service: "catalog-service",
	})
	if err != nil {
		log.Fatalf("Error creating logger: %v", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	pool, err := db.NewPostgresDB(ctx, cfg.Postgres.URL, logger)
	if err != nil {
		log.Fatalf("Error creating new postgres DB: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.Redis.Addr,
	})

	productRepository := repository.NewProductRepository(pool, logger)
	categoryRepository := repository.NewCategoryRepository(pool, logger)

	productService := service.NewCachedProductService(
		service.NewProductService(productRepository, categoryRepository, logger),
		rdb,
		logger,
	)
	categoryService := service.NewCategoryService(categoryRepository)

	app := httpserver.New("catalog-service", cfg.Limiter, metrics.New("catalog"), logger)
	http.RegisterRoutes(app, http.NewCatalogHandler(productService, categoryService, logger))

	go func() {
		mylogger.Info(ctx, logger, "HTTP server listening", zap.String("port", cfg.HTTP.Port))
		if err := app.Listen(cfg.HTTP.Port); err != nil {
			log.Fatalf("Error listening on HTTP port %v: %v\n", cfg.HTTP.Port, err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	mylogger.Info(shutdownCtx, logger, "Shutting down catalog server")

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		mylogger.Warn(shutdownCtx, logger, "Failed to shut down HTTP app", zap.Error(err))
	}

	if err := tp.Shutdown(shutdownCtx); err != nil {
		mylogger.Warn(shutdownCtx, logger, "Failed to shut down telemetry", zap.Error(err))
	}

	if err := rdb.Close(); err != nil {
		mylogger.Warn(shutdownCtx, logger, "Failed to close redis", zap.Error(err))
	}

	pool.Close()
}
