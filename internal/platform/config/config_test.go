package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 2*time.Hour, cfg.BookingCutoff)
	assert.Equal(t, 8*time.Hour, cfg.CancelCutoff)
	assert.Equal(t, 5*time.Second, cfg.OperationTimeout)
	assert.Equal(t, 24*time.Hour, cfg.NotifyDedupTTL)
	assert.Empty(t, cfg.RabbitURL)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("BOOKING_CUTOFF", "90m")
	t.Setenv("CANCEL_CUTOFF", "12h")
	t.Setenv("DB_NAME", "studio_test")

	cfg, err := Load()
	require.NoError(t, err)

	policy := cfg.Policy()
	assert.Equal(t, 90*time.Minute, policy.BookingCutoff)
	assert.Equal(t, 12*time.Hour, policy.CancelCutoff)
	assert.Equal(t, "studio_test", cfg.Database().DBName)
}

func TestLoad_RejectsBadTimeout(t *testing.T) {
	t.Setenv("OPERATION_TIMEOUT", "0s")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_RejectsLockShorterThanTimeout(t *testing.T) {
	tests := []struct {
		name    string
		lockTTL string
		timeout string
		wantErr bool
	}{
		{"equal", "5s", "5s", true},
		{"shorter", "3s", "5s", true},
		{"longer", "6s", "5s", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("LESSON_LOCK_TTL", tt.lockTTL)
			t.Setenv("OPERATION_TIMEOUT", tt.timeout)

			_, err := Load()
			if tt.wantErr {
				assert.ErrorContains(t, err, "LESSON_LOCK_TTL")
				return
			}
			assert.NoError(t, err)
		})
	}
}
