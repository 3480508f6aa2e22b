package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"go-hris-workflow/internal/config"
	"go-hris-workflow/internal/events"
	"go-hris-workflow/internal/workflow"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_USER", "hris")
	t.Setenv("DB_NAME", "workflow")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("KAFKA_BROKER", "kafka-1:9092, kafka-2:9092")
}

func TestLoad_FromEnvironment(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DB_LOCK_TIMEOUT", "750ms")
	t.Setenv("FALLBACK_HR_DEPARTMENT_ID", "dept-hr")
	t.Setenv("SIDE_EFFECT_TIMEOUT", "5s")

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, "workflow", cfg.Database.Name)
	assert.Equal(t, 750*time.Millisecond, cfg.Database.LockTimeout)
	assert.Equal(t, 5*time.Second, cfg.Database.TransactionTimeout)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, events.RequestNotificationTopic, cfg.Kafka.Topic)
	assert.Equal(t, 5*time.Second, cfg.SideEffect.Timeout)
	assert.Equal(t, 60*time.Second, cfg.Redis.OrgTTL)
	assert.Equal(t, map[workflow.Department]string{workflow.DepartmentHR: "dept-hr"}, cfg.Workflow.FallbackDepartmentIDs())
	assert.Equal(t, "host=localhost user=hris password= dbname=workflow port=5432 sslmode=disable", cfg.Database.Postgres().DSN())
}

func TestLoad_FileWithEnvOverride(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "8088")

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: "9000"
  write_timeout: 15s
document:
  dir: /var/lib/hris/documents
rate_limit:
  transition_burst: 9
workflow:
  fallback_administration_department_id: dept-adm
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "8088", cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, "/var/lib/hris/documents", cfg.Document.Dir)
	assert.Equal(t, 9, cfg.RateLimit.TransitionBurst)
	assert.Equal(t, "dept-adm", cfg.Workflow.FallbackDepartmentIDs()[workflow.DepartmentAdministration])
}

func TestLoad_Validation(t *testing.T) {
	t.Run("missing secret", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("JWT_SECRET", "")

		_, err := config.Load("")
		assert.ErrorContains(t, err, "auth.jwt_secret is required")
	})

	t.Run("transaction shorter than lock wait", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("DB_LOCK_TIMEOUT", "3s")
		t.Setenv("DB_TRANSACTION_TIMEOUT", "2s")

		_, err := config.Load("")
		assert.ErrorContains(t, err, "database.transaction_timeout must exceed database.lock_timeout")
	})

	t.Run("missing file", func(t *testing.T) {
		setRequiredEnv(t)
		_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.ErrorContains(t, err, "failed to read config file")
	})
}
