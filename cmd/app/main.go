package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"courierdispatch/cmd"
	httpadapter "courierdispatch/internal/adapters/in/http"
	"courierdispatch/internal/adapters/out/postgres"
	"courierdispatch/internal/jobs"
	"courierdispatch/internal/pkg/logger"

	"github.com/cenkalti/backoff/v4"
	"github.com/labstack/gommon/log"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	config, err := cmd.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	zapLogger, err := logger.New(config.LogLevel)
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = run(ctx, config, zapLogger); err != nil {
		zapLogger.Fatal("service stopped", zap.Error(err))
	}
}

func run(ctx context.Context, config cmd.Config, zapLogger *zap.Logger) error {
	db, err := connectDB(ctx, config, zapLogger)
	if err != nil {
		return err
	}
	if err = db.WithContext(ctx).AutoMigrate(postgres.Models()...); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}

	app := cmd.NewCompositionRoot(config, db, zapLogger)

	jobManager := jobs.NewJobManager(app.CreateGetOrderBacklogQueryHandler(), config.BacklogJobSchedule, zapLogger)
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	e, err := httpadapter.NewEcho(ctx, app.CreateServer(), zapLogger)
	if err != nil {
		return err
	}
	e.Logger.SetLevel(echoLogLevel(config.LogLevel))

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		zapLogger.Info("http server starting", zap.String("port", config.HTTPPort))
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", config.HTTPPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		zapLogger.Info("http server shutting down")
		return e.Shutdown(shutdownCtx)
	})

	return group.Wait()
}

// connectDB retries until the database accepts connections or the configured
// timeout elapses.
func connectDB(ctx context.Context, config cmd.Config, zapLogger *zap.Logger) (*gorm.DB, error) {
	policy := backoff.NewExponentialBackOff(
		backoff.WithInitialInterval(500*time.Millisecond),
		backoff.WithMaxInterval(5*time.Second),
		backoff.WithMaxElapsedTime(config.DBConnectTimeout),
	)

	var db *gorm.DB
	operation := func() error {
		conn, err := gorm.Open(gorm_postgres.Open(config.DSN()), &gorm.Config{})
		if err != nil {
			return err
		}
		sqlDB, err := conn.DB()
		if err != nil {
			return backoff.Permanent(err)
		}
		if err = sqlDB.PingContext(ctx); err != nil {
			_ = sqlDB.Close()
			return err
		}
		db = conn
		return nil
	}
	notify := func(err error, wait time.Duration) {
		zapLogger.Warn("database is not ready", zap.Error(err), zap.Duration("retry_in", wait))
	}

	if err := backoff.RetryNotify(operation, backoff.WithContext(policy, ctx), notify); err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	return db, nil
}

func echoLogLevel(level string) log.Lvl {
	switch level {
	case "debug":
		return log.DEBUG
	case "warn":
		return log.WARN
	case "error":
		return log.ERROR
	default:
		return log.INFO
	}
}
