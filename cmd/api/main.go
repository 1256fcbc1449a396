package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/litholens/prospector/internal/application"
	"github.com/litholens/prospector/internal/application/analyze"
	"github.com/litholens/prospector/internal/application/collection"
	"github.com/litholens/prospector/internal/config"
	domai "github.com/litholens/prospector/internal/domain/ai"
	"github.com/litholens/prospector/internal/domain/rocks"
	"github.com/litholens/prospector/internal/infra/ai/gemini"
	"github.com/litholens/prospector/internal/infra/ai/openai"
	mysqlp "github.com/litholens/prospector/internal/infra/db/mysql"
	postgresp "github.com/litholens/prospector/internal/infra/db/postgres"
	sqlitep "github.com/litholens/prospector/internal/infra/db/sqlite"
	"github.com/litholens/prospector/internal/infra/httpserver"
	"github.com/litholens/prospector/internal/infra/imaging"
	filestore "github.com/litholens/prospector/internal/infra/store/file"
	minioStore "github.com/litholens/prospector/internal/infra/storage"
	"github.com/litholens/prospector/internal/infra/wiki"
	"github.com/litholens/prospector/internal/middleware"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	// path config.yaml
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	// load config
	cfg, err := config.Load(path)
	if err != nil {
		logger.Fatal("config load error", zap.Error(err))
	}

	ctx := context.Background()

	// init repo per driver
	repo, checkers, closeFn, err := buildRepository(ctx, cfg)
	if err != nil {
		logger.Fatal("store init error", zap.Error(err))
	}
	defer closeFn()

	// init collection
	collectionSvc, err := collection.NewService(ctx, repo, application.SystemClock{}, logger)
	if err != nil {
		logger.Fatal("collection load error", zap.Error(err))
	}

	// init minio image archive (optional)
	if cfg.Minio.Enabled {
		archive, err := minioStore.New(ctx,
			cfg.Minio.Endpoint,
			cfg.Minio.Region,
			cfg.Minio.BucketName,
			cfg.Minio.AccessKey,
			cfg.Minio.SecretKey,
			cfg.Minio.UseSSL,
		)
		if err != nil {
			logger.Fatal("minio init error", zap.Error(err))
		}
		collectionSvc.Archive = archive
	}

	// init AI backend
	identifier, err := buildIdentifier(ctx, cfg)
	if err != nil {
		logger.Fatal("ai init error", zap.Error(err))
	}

	analyzeSvc := analyze.NewService(imaging.New(), identifier)
	wikiClient := wiki.New(cfg.Wiki.Endpoint)

	mux := httpserver.NewRouter(analyzeSvc, collectionSvc, wikiClient, httpserver.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		HealthCheckers: checkers,
		Logger:         logger,
	})

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// run server
	go func() {
		logger.Info("server listening", zap.String("addr", addr), zap.String("store", cfg.Store.Driver), zap.String("ai", cfg.AI.Provider))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	logger.Info("shutting down server...")

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		logger.Warn("shutdown error", zap.Error(err))
	}
}

// buildRepository picks the collection backend from config. The file driver
// needs no external service and is the default.
func buildRepository(ctx context.Context, cfg *config.Config) (rocks.Repository, map[string]middleware.HealthChecker, func(), error) {
	checkers := make(map[string]middleware.HealthChecker)

	switch strings.ToLower(cfg.Store.Driver) {
	case "", "file":
		store, err := filestore.New(cfg.Store.Dir)
		if err != nil {
			return nil, nil, nil, err
		}
		checkers["store"] = middleware.PingFunc(store.Ping)
		return store, checkers, func() {}, nil

	case "sqlite":
		db, err := sqlitep.Connect(ctx, cfg.Store.Path)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := sqlitep.Migrate(ctx, db); err != nil {
			db.Close()
			return nil, nil, nil, err
		}
		return repoWithDB(db, sqlitep.NewRockRepository(db), checkers)

	case "mysql":
		db, err := mysqlp.Connect(ctx, cfg.MySQLDSN())
		if err != nil {
			return nil, nil, nil, err
		}
		if err := mysqlp.Migrate(ctx, db); err != nil {
			db.Close()
			return nil, nil, nil, err
		}
		return repoWithDB(db, mysqlp.NewRockRepository(db), checkers)

	case "postgres":
		db, err := postgresp.Connect(ctx, cfg.PostgresDSN())
		if err != nil {
			return nil, nil, nil, err
		}
		if err := postgresp.Migrate(ctx, db); err != nil {
			db.Close()
			return nil, nil, nil, err
		}
		return repoWithDB(db, postgresp.NewRockRepository(db), checkers)

	default:
		return nil, nil, nil, fmt.Errorf("unknown store driver: %s", cfg.Store.Driver)
	}
}

func repoWithDB(db *sql.DB, repo rocks.Repository, checkers map[string]middleware.HealthChecker) (rocks.Repository, map[string]middleware.HealthChecker, func(), error) {
	checkers["database"] = &middleware.DatabaseHealthChecker{DB: db}
	return repo, checkers, func() { db.Close() }, nil
}

func buildIdentifier(ctx context.Context, cfg *config.Config) (domai.Identifier, error) {
	switch strings.ToLower(cfg.AI.Provider) {
	case "", "gemini":
		return gemini.NewClient(ctx, cfg.AI.APIKey, cfg.AI.Model)
	case "openai":
		return openai.NewClient(cfg.AI.APIKey, cfg.AI.Model), nil
	default:
		return nil, fmt.Errorf("unknown ai provider: %s", cfg.AI.Provider)
	}
}
