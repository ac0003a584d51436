package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/onzacore/distri-api/config"
	"github.com/onzacore/distri-api/internal/api"
	"github.com/onzacore/distri-api/internal/auth"
	"github.com/onzacore/distri-api/internal/broker"
	"github.com/onzacore/distri-api/internal/order"
	"github.com/onzacore/distri-api/internal/redisclient"
	"github.com/onzacore/distri-api/internal/service"
	"github.com/onzacore/distri-api/internal/store"
	"github.com/onzacore/distri-api/internal/util"
	"github.com/onzacore/distri-api/internal/worker"

	"github.com/gin-gonic/gin"
)

func main() {

	cfg := config.Load()

	if err := util.InitLogger(cfg.Server.Env); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer util.SyncLogger()

	logger := util.GetLogger()
	logger.Info("Starting distri API")

	tp, err := util.InitTracer("distri-api", cfg.Observ.JaegerEndpoint)
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("Error shutting down tracer: %v", err)
		}
	}()

	db, err := store.NewStore(cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("Database connected")

	cache, err := redisclient.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Catalog.CacheTTL)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer cache.Close()
	log.Println("Redis connected")

	producer := broker.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.TopicOrder)
	defer producer.Close()
	log.Println("Kafka producer initialized")

	eventPublisher := broker.NewEventPublisher(producer)
	sequencer := order.NewSequencer(cfg.Catalog.DeferredCategories)
	tokens := auth.NewManager(cfg.Auth.JWTSecret, cfg.Auth.TokenExpiry)

	catalogService := service.NewCatalogService(db, cache)
	orderService := service.NewOrderService(db, catalogService, eventPublisher, sequencer)
	diagnosticsService := service.NewDiagnosticsService(db, catalogService, eventPublisher)
	adminService := service.NewAdminService(db, tokens)

	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	activityConsumer := broker.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.TopicOrder, cfg.Kafka.ConsumerGroup)
	activityWorker := worker.NewActivityWorker(activityConsumer, db)
	go func() {
		if err := activityWorker.Start(workerCtx); err != nil {
			log.Printf("Activity worker error: %v", err)
		}
	}()

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	handler := api.NewHandler(
		orderService,
		catalogService,
		diagnosticsService,
		adminService,
		tokens,
		sequencer,
		cfg.Catalog.CompanyName,
	)
	handler.SetupRoutes(router)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting HTTP server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	workerCancel()
	activityWorker.Stop()

	log.Println("Server exited")
}
