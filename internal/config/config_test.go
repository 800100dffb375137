package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fastygo/cardfolio/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("VERIFICATION_CODE", "")
	t.Setenv("SIMULATED_LATENCY", "")
	t.Setenv("RESERVED_URLS", "")
	t.Setenv("DATABASE_URL", "")

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, config.DriverBolt, cfg.Storage.Driver)
	require.Equal(t, "cardfolio.currentUser", cfg.Storage.Key)
	require.Equal(t, "123456", cfg.Session.VerificationCode)
	require.Zero(t, cfg.Session.SimulatedLatency)
	require.Empty(t, cfg.Session.ReservedURLs)
	require.Equal(t, 10*time.Second, cfg.Monitor.Interval)
	require.Contains(t, cfg.Database.URL, "postgres://")
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "Redis")
	t.Setenv("VERIFICATION_CODE", "4242")
	t.Setenv("SIMULATED_LATENCY", "300ms")
	t.Setenv("RESERVED_URLS", "admin, , billing ")
	t.Setenv("SERVER_HOST", "0.0.0.0")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SHUTDOWN_TIMEOUT_SECONDS", "3")

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, config.DriverRedis, cfg.Storage.Driver)
	require.Equal(t, "4242", cfg.Session.VerificationCode)
	require.Equal(t, 300*time.Millisecond, cfg.Session.SimulatedLatency)
	require.Equal(t, []string{"admin", "billing"}, cfg.Session.ReservedURLs)
	require.Equal(t, 3*time.Second, cfg.Context.ShutdownTimeout)
	require.Equal(t, "0.0.0.0:9090", cfg.Address())
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "sqlite")
	_, err := config.Load()
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := config.Config{
		Storage: config.StorageConfig{Driver: config.DriverMemory},
		Session: config.SessionConfig{VerificationCode: "123456"},
	}
	require.NoError(t, base.Validate())

	blank := base
	blank.Session.VerificationCode = "  "
	require.Error(t, blank.Validate())

	negative := base
	negative.Session.SimulatedLatency = -time.Second
	require.Error(t, negative.Validate())
}
