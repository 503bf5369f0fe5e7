package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/byron-a/ExciteTrade-backend/config"
	"github.com/byron-a/ExciteTrade-backend/internal/broker"
	"github.com/byron-a/ExciteTrade-backend/internal/cache"
	"github.com/byron-a/ExciteTrade-backend/internal/database"
	"github.com/byron-a/ExciteTrade-backend/internal/httpx"
	"github.com/byron-a/ExciteTrade-backend/internal/logger"
	"github.com/byron-a/ExciteTrade-backend/internal/notification"

	clusterH "github.com/byron-a/ExciteTrade-backend/internal/cluster/handler"
	clusterRepoPkg "github.com/byron-a/ExciteTrade-backend/internal/cluster/repository"
	clusterUCPkg "github.com/byron-a/ExciteTrade-backend/internal/cluster/usecase"

	commodityH "github.com/byron-a/ExciteTrade-backend/internal/commodity/handler"
	commodityRepoPkg "github.com/byron-a/ExciteTrade-backend/internal/commodity/repository"
	commodityUCPkg "github.com/byron-a/ExciteTrade-backend/internal/commodity/usecase"

	notificationH "github.com/byron-a/ExciteTrade-backend/internal/notification/handler"
	notificationRepoPkg "github.com/byron-a/ExciteTrade-backend/internal/notification/repository"

	orderH "github.com/byron-a/ExciteTrade-backend/internal/order/handler"
	orderRepoPkg "github.com/byron-a/ExciteTrade-backend/internal/order/repository"
	orderUCPkg "github.com/byron-a/ExciteTrade-backend/internal/order/usecase"

	requestH "github.com/byron-a/ExciteTrade-backend/internal/request/handler"
	requestListenerPkg "github.com/byron-a/ExciteTrade-backend/internal/request/listener"
	requestRepoPkg "github.com/byron-a/ExciteTrade-backend/internal/request/repository"
	requestUCPkg "github.com/byron-a/ExciteTrade-backend/internal/request/usecase"

	userRepoPkg "github.com/byron-a/ExciteTrade-backend/internal/user/repository"

	warehouseH "github.com/byron-a/ExciteTrade-backend/internal/warehouse/handler"
	warehouseRepoPkg "github.com/byron-a/ExciteTrade-backend/internal/warehouse/repository"
	warehouseUCPkg "github.com/byron-a/ExciteTrade-backend/internal/warehouse/usecase"
)

func main() {
	_ = godotenv.Load()
	cfg := config.LoadEnv()

	appLogger := logger.New(cfg.Logger, cfg.Server.AppEnv)
	defer appLogger.Sync()

	if err := database.Migrate(&cfg.Postgres); err != nil {
		appLogger.Fatal("could not run migrations", zap.Error(err))
	}

	db, err := database.NewPostgres(&cfg.Postgres)
	if err != nil {
		appLogger.Fatal("could not connect to database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("connected to postgres", zap.String("db_name", cfg.Postgres.DBName))

	redisClient, err := cache.NewRedisClient(&cfg.Redis)
	if err != nil {
		appLogger.Fatal("could not connect to redis", zap.Error(err))
	}
	defer redisClient.Close()
	appLogger.Info("connected to redis", zap.String("addr", cfg.Redis.Addr))

	notificationProducer := broker.NewProducer(&broker.ProducerConfig{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.NotificationsTopic,
	})
	defer notificationProducer.Close()

	qualityConsumer := broker.NewConsumer(&broker.ConsumerConfig{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.QualityTopic,
		GroupID: cfg.Kafka.QualityGroupID,
	})
	defer qualityConsumer.Close()
	appLogger.Info("connected to kafka", zap.Strings("brokers", cfg.Kafka.Brokers))

	// Repositories
	userRepo := userRepoPkg.NewPGRepository(db)
	clusterRepo := clusterRepoPkg.NewPGRepository(db)
	warehouseRepo := warehouseRepoPkg.NewPGRepository(db)
	orderRepo := orderRepoPkg.NewPGRepository(db)
	requestRepo := requestRepoPkg.NewPGRepository(db)
	commodityRepo := commodityRepoPkg.NewPGRepository(db)
	notificationRepo := notificationRepoPkg.NewPGRepository(db)

	// UseCases
	notifier := notification.NewService(notificationRepo, notificationProducer, appLogger)
	clusterUC := clusterUCPkg.NewClusterUseCase(clusterRepo, userRepo, redisClient, appLogger)
	warehouseUC := warehouseUCPkg.NewWarehouseUseCase(warehouseRepo, clusterRepo, appLogger)
	requestUC := requestUCPkg.NewRequestUseCase(requestRepo, orderRepo, userRepo, clusterRepo, notifier, appLogger)
	orderUC := orderUCPkg.NewOrderUseCase(orderRepo, clusterRepo, warehouseRepo, requestUC, notifier, redisClient, appLogger)
	commodityUC := commodityUCPkg.NewCommodityUseCase(commodityRepo, userRepo, clusterRepo, requestRepo, warehouseRepo, appLogger)

	// Quality-check listener
	qualityListener := requestListenerPkg.NewQualityCheckListener(
		qualityConsumer, commodityRepo, requestRepo, clusterRepo, warehouseUC, appLogger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go qualityListener.Start(ctx)

	// HTTP server
	if cfg.Server.AppEnv != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), httpx.RequestLogger(appLogger))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	api.Use(httpx.Identity())

	clusterH.NewClusterHandler(clusterUC, appLogger).Register(api)
	warehouseH.NewWarehouseHandler(warehouseUC, appLogger).Register(api)
	orderH.NewOrderHandler(orderUC, appLogger).Register(api)
	requestH.NewRequestHandler(requestUC, appLogger).Register(api)
	commodityH.NewCommodityHandler(commodityUC, appLogger).Register(api)
	notificationH.NewNotificationHandler(notificationRepo).Register(api)

	port := cfg.Server.HTTPPort
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	srv := &http.Server{
		Addr:    port,
		Handler: router,
	}

	go func() {
		appLogger.Info("starting http server", zap.String("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("forced shutdown", zap.Error(err))
	}
	appLogger.Info("server stopped")
}
