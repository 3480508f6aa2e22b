package app

import (
	"context"

	"go-hris-workflow/internal/bootstrap"
	"go-hris-workflow/internal/config"
	"go-hris-workflow/internal/shared/connection"

	"github.com/gin-gonic/gin"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// App owns the infrastructure opened by BuildApp.
type App struct {
	modules *modules
	closers []func() error
	logger  *zap.Logger
}

func BuildApp(router *gin.Engine, cfg *config.Config, logger *zap.Logger) (*App, error) {
	a := &App{logger: logger.Named("app")}

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database.Postgres(), cfg.Database.MaxRetries, logger)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, sqlDB.Close)

	rdb, err := connection.ConnectRedisWithRetry(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Database.MaxRetries, logger)
	if err != nil {
		a.close()
		return nil, err
	}
	a.closers = append(a.closers, rdb.Close)

	if err := connection.ConnectKafkaWithRetry(cfg.Kafka.Brokers, cfg.Kafka.Topic, cfg.Kafka.Partitions, cfg.Database.MaxRetries, logger); err != nil {
		a.close()
		return nil, err
	}
	writer := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.Kafka.Brokers...),
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
	}
	a.closers = append(a.closers, writer.Close)

	m, err := registerModules(router, cfg, gormDB, rdb, writer, logger)
	if err != nil {
		a.close()
		return nil, err
	}
	a.modules = m
	return a, nil
}

// ShutdownHook waits for pending side effects, then releases connections.
// Notifications still in flight need the Kafka writer, so the writer is
// closed last.
func (a *App) ShutdownHook(auditLogger bootstrap.AuditLogger) bootstrap.ShutdownHook {
	return func(ctx context.Context) {
		done := make(chan struct{})
		go func() {
			a.modules.dispatcher.Wait()
			close(done)
		}()

		select {
		case <-done:
			auditLogger.Log(ctx, bootstrap.AuditLog{
				Action:  "DISPATCHER_DRAINED",
				Message: "pending side effects finished",
			})
		case <-ctx.Done():
			a.logger.Warn("side effects still running at shutdown", zap.Error(ctx.Err()))
		}
		a.close()
	}
}

func (a *App) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Warn("close failed", zap.Error(err))
		}
	}
	a.closers = nil
}
