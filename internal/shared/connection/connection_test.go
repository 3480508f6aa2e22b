package connection_test

import (
	"testing"

	"go-hris-workflow/internal/shared/connection"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestPostgresConfigDSN(t *testing.T) {
	cfg := connection.PostgresConfig{
		Host: "db", User: "hris", Password: "secret", Name: "workflow", Port: "5432", SSLMode: "disable",
	}
	assert.Equal(t, "host=db user=hris password=secret dbname=workflow port=5432 sslmode=disable", cfg.DSN())
}

func TestConnectKafkaWithoutBrokers(t *testing.T) {
	err := connection.ConnectKafkaWithRetry(nil, "topic", 1, 3, zap.NewNop())
	assert.EqualError(t, err, "no kafka brokers configured")
}
