package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"HTTP_ADDR", "DB_MAX_CONNS", "DB_MIN_CONNS", "SESSION_TTL_HOURS", "CHECKOUT_REQUIRE_POSTAL_CODE"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	require.Equal(t, ":8080", cfg.HTTPAddr)
	require.Equal(t, 10, cfg.DBMaxConns)
	require.Equal(t, 2, cfg.DBMinConns)
	require.Equal(t, 12, cfg.SessionTTLHours)
	require.True(t, cfg.RequirePostalCode)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DB_MAX_CONNS", "25")
	t.Setenv("DB_MIN_CONNS", "5")
	t.Setenv("CHECKOUT_REQUIRE_POSTAL_CODE", "false")

	cfg := Load()
	require.Equal(t, 25, cfg.DBMaxConns)
	require.Equal(t, 5, cfg.DBMinConns)
	require.False(t, cfg.RequirePostalCode)
}

func TestLoadBadValuesFallBack(t *testing.T) {
	t.Setenv("DB_MAX_CONNS", "lots")
	t.Setenv("CHECKOUT_REQUIRE_POSTAL_CODE", "maybe")

	cfg := Load()
	require.Equal(t, 10, cfg.DBMaxConns)
	require.True(t, cfg.RequirePostalCode)
}
