package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/floorplan-backend/config"
	httpapi "github.com/GoSim-25-26J-441/floorplan-backend/internal/api/http"
	"github.com/GoSim-25-26J-441/floorplan-backend/internal/api/http/middleware"
	"github.com/GoSim-25-26J-441/floorplan-backend/internal/auth"
	"github.com/GoSim-25-26J-441/floorplan-backend/internal/bootstrap"
	"github.com/GoSim-25-26J-441/floorplan-backend/internal/floorplan/domain"
	"github.com/GoSim-25-26J-441/floorplan-backend/internal/floorplan/engine"
	"github.com/GoSim-25-26J-441/floorplan-backend/internal/floorplan/estimator"
	fphttp "github.com/GoSim-25-26J-441/floorplan-backend/internal/floorplan/http"
	"github.com/GoSim-25-26J-441/floorplan-backend/internal/floorplan/repository"
	"github.com/GoSim-25-26J-441/floorplan-backend/internal/floorplan/service"
	"github.com/GoSim-25-26J-441/floorplan-backend/internal/jobs"
	"github.com/GoSim-25-26J-441/floorplan-backend/internal/logging"
	"github.com/GoSim-25-26J-441/floorplan-backend/internal/storage/postgres"
	"github.com/GoSim-25-26J-441/floorplan-backend/internal/users"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.App.LogLevel, cfg.App.Environment)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	bootstrap.SetGinMode(cfg.App.Environment)

	sqlDB, err := postgres.NewConnection(ctx, &cfg.Database)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := bootstrap.RunMigrations(sqlDB, cfg.Database.MigrationsPath, logger); err != nil {
		return err
	}

	pool, err := bootstrap.OpenDB(ctx, bootstrap.DBOptions{DSN: postgres.DSN(&cfg.Database), MaxConns: 10})
	if err != nil {
		return err
	}
	defer pool.Close()

	var cache service.ResultCache
	redisPinger := httpapi.Pinger(nil)
	if rdb, err := bootstrap.OpenRedis(ctx, cfg.Redis); err != nil {
		logger.Warn("redis unavailable, generation cache disabled", zap.Error(err))
	} else {
		defer rdb.Close()
		gc := repository.NewGenerationCache(rdb, cfg.Redis.CacheTTL)
		cache = gc
		redisPinger = gc
	}

	orientation, err := domain.ParseOrientation(cfg.Floorplan.Orientation)
	if err != nil {
		return err
	}
	fpCfg := domain.DefaultConfig()
	fpCfg.Orientation = orientation

	layouts := repository.NewLayoutRepository(sqlDB)
	svc := service.NewLayoutService(engine.New(fpCfg), estimator.New(fpCfg), layouts, cache, logger)

	userRepo := users.NewRepo(pool)
	var authMW gin.HandlerFunc
	switch cfg.Auth.Mode {
	case config.AuthModeFirebase:
		client, err := auth.InitializeFirebase(ctx, &cfg.Firebase)
		if err != nil {
			return err
		}
		authMW = auth.FirebaseAuth(client, userRepo)
	default:
		logger.Warn("header auth enabled; do not use outside development")
		authMW = auth.HeaderAuth(userRepo)
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)

	scheduler := jobs.NewScheduler(layouts, limiter, jobs.Options{
		PurgeSchedule: cfg.Jobs.PurgeSchedule,
		Retention:     cfg.Jobs.Retention,
	}, logger.Named("jobs"))
	if err := scheduler.Start(); err != nil {
		return err
	}

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: cfg.App.ServiceName,
		Version:     cfg.App.Version,
		Logger:      logger,
		CORSOrigins: cfg.CORS.Origins,
		Health: map[string]httpapi.Pinger{
			"postgres": layouts,
			"redis":    redisPinger,
		},
		Layouts: fphttp.New(svc),
		Auth:    authMW,
		Limiter: limiter,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", srv.Addr), zap.String("env", cfg.App.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	scheduler.Stop(shutdownCtx)
	return srv.Shutdown(shutdownCtx)
}
