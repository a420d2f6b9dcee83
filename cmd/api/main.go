package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/altarajoyas/catalog-service/config"
	"github.com/altarajoyas/catalog-service/internal/media"
	"github.com/altarajoyas/catalog-service/internal/server"
	"github.com/altarajoyas/catalog-service/pkg/broker"
	"github.com/altarajoyas/catalog-service/pkg/cache"
	"github.com/altarajoyas/catalog-service/pkg/i18n"
	"github.com/altarajoyas/catalog-service/pkg/logger"
	pkgmedia "github.com/altarajoyas/catalog-service/pkg/media"
	"github.com/altarajoyas/catalog-service/pkg/postgres"
	"github.com/altarajoyas/catalog-service/pkg/search"

	catalogH "github.com/altarajoyas/catalog-service/internal/catalog/handler"
	catalogRepoPkg "github.com/altarajoyas/catalog-service/internal/catalog/repository"
	catalogUCPkg "github.com/altarajoyas/catalog-service/internal/catalog/usecase"

	invH "github.com/altarajoyas/catalog-service/internal/inventory/handler"
	invListenerPkg "github.com/altarajoyas/catalog-service/internal/inventory/listener"
	invRepoPkg "github.com/altarajoyas/catalog-service/internal/inventory/repository"
	invUCPkg "github.com/altarajoyas/catalog-service/internal/inventory/usecase"

	mediaH "github.com/altarajoyas/catalog-service/internal/media/handler"
	mediaRepoPkg "github.com/altarajoyas/catalog-service/internal/media/repository"
	mediaUCPkg "github.com/altarajoyas/catalog-service/internal/media/usecase"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load() // Load .env file if it exists
	cfg := config.LoadEnv()

	// 1.5 Initialize i18n (embedded en/es bundles)
	i18n.Init()

	// 2. Initialize Logger
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          "json",
		Level:             "info",
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}
	if cfg.Server.AppEnv == "dev" || cfg.Server.AppEnv == "development" {
		logConfig.IsDevelopment = true
		logConfig.Encoding = "console"
		logConfig.Level = "debug"
	}

	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	// 3. Connect to Database
	db, err := postgres.NewPostgres(&postgres.Config{
		URL:             cfg.Postgres.URL,
		Host:            cfg.Postgres.Host,
		Port:            cfg.Postgres.Port,
		User:            cfg.Postgres.User,
		Password:        cfg.Postgres.Password,
		DBName:          cfg.Postgres.DBName,
		SSLMode:         cfg.Postgres.SSLMode,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
	})
	if err != nil {
		appLogger.Fatal("could not connect to database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("connected to PostgreSQL", zap.String("db_name", cfg.Postgres.DBName))

	// 4. Initialize Redis (optional: caching and upload locks degrade
	// gracefully when it is down)
	var redisClient *cache.RedisClient
	if rc, err := cache.NewRedisClient(&cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}); err != nil {
		appLogger.Warn("could not connect to Redis (caching and upload locks disabled)", zap.Error(err))
	} else {
		redisClient = rc
		defer redisClient.Close()
		appLogger.Info("connected to Redis", zap.String("addr", cfg.Redis.Addr))
	}

	// 5. Initialize Elasticsearch (optional: search falls back to the DB)
	var esClient *search.Client
	if len(cfg.Elastic.Addresses) > 0 {
		es, err := search.NewClient(&search.Config{
			Addresses: cfg.Elastic.Addresses,
			Username:  cfg.Elastic.Username,
			Password:  cfg.Elastic.Password,
		})
		if err != nil {
			appLogger.Warn("could not connect to Elasticsearch (search falls back to DB)", zap.Error(err))
		} else {
			esClient = es
			appLogger.Info("connected to Elasticsearch", zap.Strings("addresses", cfg.Elastic.Addresses))
		}
	}

	// 6. Initialize Cloudinary
	cloudinaryClient, err := pkgmedia.NewCloudinaryClient(&pkgmedia.Config{
		CloudName: cfg.Cloudinary.CloudName,
		APIKey:    cfg.Cloudinary.APIKey,
		APISecret: cfg.Cloudinary.APISecret,
		URL:       cfg.Cloudinary.URL,
	})
	if err != nil {
		appLogger.Fatal("could not configure Cloudinary", zap.Error(err))
	}

	// 7. Repositories
	catalogRepo := catalogRepoPkg.NewPGRepository(db)
	invRepo := invRepoPkg.NewPGRepository(db)
	mediaRepo := mediaRepoPkg.NewPGRepository(db)

	// 8. UseCases
	catalogUC := catalogUCPkg.NewCatalogUseCase(catalogRepo, redisClient, esClient, appLogger)
	invUC := invUCPkg.NewInventoryUseCase(invRepo, redisClient, esClient, appLogger)

	var locker media.Locker
	if redisClient != nil {
		locker = redisClient
	}
	mediaUC := mediaUCPkg.NewMediaUseCase(mediaRepo, cloudinaryClient, locker, redisClient, mediaUCPkg.Config{
		Folder:       cfg.Cloudinary.Folder,
		MaxFileBytes: cfg.Upload.MaxFileBytes,
	}, appLogger)

	// 9. Kafka movement listener (optional)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaConsumer := broker.NewConsumer(&broker.Config{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
			GroupID: cfg.Kafka.GroupID,
		})
		defer kafkaConsumer.Close()
		appLogger.Info("connected to Kafka consumer",
			zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))

		invListener := invListenerPkg.NewInventoryListener(kafkaConsumer, invUC, appLogger)
		go invListener.Start(ctx)
	}

	// 10. Handlers & Router
	router := server.NewRouter(server.RouterConfig{
		CatalogHandler:   catalogH.NewCatalogHandler(catalogUC, appLogger),
		InventoryHandler: invH.NewInventoryHandler(invUC, appLogger),
		MediaHandler:     mediaH.NewMediaHandler(mediaUC, appLogger),
		AllowOrigins:     []string{cfg.Server.PublicURL, "http://localhost:3000"},
		MaxUploadBytes:   cfg.Upload.MaxFileBytes,
		DB:               db,
		Logger:           appLogger,
	})

	// 11. Start HTTP Server
	port := cfg.Server.HTTPPort
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	srv := &http.Server{
		Addr:    port,
		Handler: router,
	}

	go func() {
		appLogger.Info("starting HTTP server", zap.String("port", port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	// Graceful Shutdown
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
