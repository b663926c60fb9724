package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setCredentials(t *testing.T) {
	t.Helper()
	t.Setenv("NID_AUT", "aut-token")
	t.Setenv("NID_SES", "ses-token")
}

func TestLoad_Defaults(t *testing.T) {
	setCredentials(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "aut-token", cfg.NIDAut)
	assert.Equal(t, "ses-token", cfg.NIDSes)
	assert.Equal(t, ":3000", cfg.HTTPAddr)
	assert.Equal(t, DriverSQLite, cfg.StorageDriver)
	assert.Equal(t, "./data.sqlite", cfg.SQLitePath)
	assert.Equal(t, 15*time.Second, cfg.UpstreamTimeout)
	assert.Equal(t, 10, cfg.FetchPageSize)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Empty(t, cfg.FetchSchedule)
}

func TestLoad_MissingCredential(t *testing.T) {
	t.Setenv("NID_AUT", "aut-token")
	t.Setenv("NID_SES", "")

	_, err := Load()
	require.ErrorIs(t, err, ErrInvalid)
	assert.Contains(t, err.Error(), "NID_SES")
}

func TestLoad_PostgresNeedsDSN(t *testing.T) {
	setCredentials(t)
	t.Setenv("STORAGE_DRIVER", DriverPostgres)
	t.Setenv("POSTGRES_DSN", "")

	_, err := Load()
	require.ErrorIs(t, err, ErrInvalid)
}

func TestLoad_UnknownDriver(t *testing.T) {
	setCredentials(t)
	t.Setenv("STORAGE_DRIVER", "mysql")

	_, err := Load()
	require.ErrorIs(t, err, ErrInvalid)
}

func TestLoad_KafkaBrokers(t *testing.T) {
	setCredentials(t)
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
}

func TestLoadStorage_NoCredentialsNeeded(t *testing.T) {
	t.Setenv("NID_AUT", "")
	t.Setenv("NID_SES", "")

	s, err := LoadStorage()
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, s.StorageDriver)
	assert.Equal(t, "./data.sqlite", s.Target())
}

func TestLoadStorage_PostgresTarget(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", DriverPostgres)
	t.Setenv("POSTGRES_DSN", "postgres://localhost/reservations")

	s, err := LoadStorage()
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost/reservations", s.Target())

	t.Setenv("POSTGRES_DSN", "")
	_, err = LoadStorage()
	require.ErrorIs(t, err, ErrInvalid)
}

func TestLoad_SharesStorageDefaults(t *testing.T) {
	setCredentials(t)

	cfg, err := Load()
	require.NoError(t, err)
	s, err := LoadStorage()
	require.NoError(t, err)
	assert.Equal(t, s, cfg.Storage)
}
