package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
	config "github.com/sainaman-tech/storefront-backend/internal/cfg"
	v1Http "github.com/sainaman-tech/storefront-backend/internal/delivery/v1/http"
	"github.com/sainaman-tech/storefront-backend/internal/infrastructure/kafka"
	minioInfra "github.com/sainaman-tech/storefront-backend/internal/infrastructure/minio"
	s3Repo "github.com/sainaman-tech/storefront-backend/internal/repository/minio"
	"github.com/sainaman-tech/storefront-backend/internal/repository/pgdb"
	pgdbConv "github.com/sainaman-tech/storefront-backend/internal/repository/pgdb/converter"
	"github.com/sainaman-tech/storefront-backend/internal/repository/redis"
	redisConv "github.com/sainaman-tech/storefront-backend/internal/repository/redis/converter"
	"github.com/sainaman-tech/storefront-backend/internal/usecase"
	"github.com/sainaman-tech/storefront-backend/pkg/clients"
	"github.com/sainaman-tech/storefront-backend/pkg/closer"
	"github.com/sainaman-tech/storefront-backend/pkg/e"
	"github.com/sainaman-tech/storefront-backend/pkg/logger"
	"github.com/sainaman-tech/storefront-backend/pkg/postgres"
)

// Run собирает зависимости витрины и держит приложение до сигнала остановки.
func Run(cfg *config.Config, logger logger.Logger) error {
	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	gracefulCloser := closer.NewCloser(2 * time.Second)

	db, err := initPGDB(logger, cfg)
	if err != nil {
		logger.Errorf(err, "failed to initialize database")
		return err
	}
	gracefulCloser.Add(func(ctx context.Context) error {
		db.Close()
		logger.Infof("database pool closed")
		return nil
	})

	minioClient, err := clients.NewMinIOClient(cfg.Minio)
	if err != nil {
		logger.Errorf(err, "failed to initialize minio client")
		return err
	}

	minioCtx, minioCancel := context.WithTimeout(appCtx, 10*time.Second)
	if err := clients.EnsureBucket(minioCtx, minioClient, cfg.Minio.BucketName); err != nil {
		minioCancel()
		logger.Errorf(err, "failed to initialize MinIO bucket")
		return err
	}
	minioCancel()

	imageRepo := s3Repo.NewImageRepo(minioClient, cfg.Minio)
	imagesInfra := minioInfra.NewMinioInfrastructure(imageRepo, cfg.Minio, logger, appCtx)
	gracefulCloser.Add(func(ctx context.Context) error {
		return imagesInfra.WaitForCleanup(ctx)
	})

	redisClient := clients.NewRedisClient(cfg.Redis)
	redisCtx, redisCancel := context.WithTimeout(appCtx, 5*time.Second)
	defer redisCancel()
	if err := redisClient.Ping(redisCtx); err != nil {
		logger.Errorf(err, "failed to connect to redis")
		return err
	}
	gracefulCloser.Add(func(ctx context.Context) error {
		return redisClient.Client.Close()
	})

	cartRepo := redis.NewCartRepo(redisClient, redisConv.CartConverter{}, cfg.Redis, logger)
	sessionRepo := redis.NewSessionRepo(redisClient, cfg.Auth)
	cacheRepo := redis.NewCacheRepo(redisClient, redisConv.ProductConverter{}, cfg.Redis, logger)

	productRepo := pgdb.NewProductRepo(db.Pool, pgdbConv.ProductConverter{})
	categoryRepo := pgdb.NewCategoryRepo(db.Pool, pgdbConv.CategoryConverter{})
	orderRepo := pgdb.NewOrderRepo(db.Pool, pgdbConv.OrderConverter{})
	userRepo := pgdb.NewUserRepo(db.Pool, pgdbConv.UserConverter{})
	outboxRepo := pgdb.NewOutboxEventRepo(db.Pool, pgdbConv.OutboxEventConverter{})

	producer, err := kafka.NewProducer(logger, cfg.Kafka)
	if err != nil {
		logger.Errorf(err, "failed to initialize kafka producer")
		return err
	}
	if err := producer.EnsureTopic(10 * time.Second); err != nil {
		logger.Errorf(err, "failed to ensure kafka topic")
		return err
	}
	gracefulCloser.Add(func(ctx context.Context) error {
		return producer.Close()
	})

	outboxWorker := kafka.NewOutboxWorker(outboxRepo, logger, producer, db.Dsn)
	outboxWorker.Start(appCtx)
	gracefulCloser.Add(func(ctx context.Context) error {
		outboxWorker.Stop()
		logger.Infof("outbox worker stopped")
		return nil
	})

	catalogUC := usecase.NewCatalogUC(productRepo, categoryRepo, cacheRepo, cfg.Catalog, logger)
	cartUC := usecase.NewCartUC(cartRepo, productRepo, logger)
	orderUC := usecase.NewOrderUC(orderRepo, cartRepo, outboxRepo, db.Pool, logger)
	authUC := usecase.NewAuthUC(userRepo, sessionRepo, cartRepo, cfg.Auth, logger)
	adminUC := usecase.NewAdminUC(productRepo, categoryRepo, cacheRepo, imageRepo, cfg.Minio, logger)

	r := chi.NewRouter()
	router := v1Http.NewRouter(r, logger)
	router.Init(catalogUC, cartUC, orderUC, authUC, adminUC, imagesInfra)

	httpSrv := v1Http.NewServer(r, cfg.Http)
	gracefulCloser.Add(func(ctx context.Context) error {
		return httpSrv.Stop(ctx)
	})

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("HTTP server started on port %s", cfg.Http.Port)
		if err := httpSrv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// === Ожидание сигнала или ошибки ===
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	var appErr error
	select {
	case appErr = <-errCh:
		logger.Errorf(appErr, "HTTP server fatal error")
	case <-shutdown:
		logger.Infof("Received shutdown signal, stopping gracefully...")
	}

	// === Graceful shutdown: ресурсы закрываются в обратном порядке ===
	appCancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := gracefulCloser.Close(shutdownCtx); err != nil {
		logger.Warnf("shutdown finished with errors: %v", err)
	} else {
		logger.Infof("Application shutdown complete")
	}

	return appErr
}

func initPGDB(logger logger.Logger, cfg *config.Config) (*postgres.PgDatabase, error) {
	db, err := postgres.Connect(cfg.Db)
	if err != nil {
		logger.Errorf(err, "failed to connect to database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.RunMigrations(logger); err != nil {
		logger.Errorf(err, "failed to run migrations")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.Ping(); err != nil {
		logger.Errorf(err, "failed to ping database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return db, nil
}
