package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":5000", cfg.HTTPAddr)
	assert.True(t, cfg.RunMigrations)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowOrigins)
	assert.Equal(t, "default", cfg.DefaultSession)
	assert.Equal(t, CartStoreMemory, cfg.CartStore)
	assert.Equal(t, EventsDriverNone, cfg.EventsDriver)
	assert.Equal(t, 12*time.Hour, cfg.CartTTL)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
}

func TestLoadOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("POS_HTTP_ADDR", ":9000")
	t.Setenv("POS_RUN_MIGRATIONS", "false")
	t.Setenv("POS_CORS_ALLOW_ORIGINS", " http://a.test , http://b.test ,")
	t.Setenv("POS_CART_STORE", "Redis")
	t.Setenv("POS_EVENTS_DRIVER", "KAFKA")
	t.Setenv("POS_KAFKA_BROKERS", "k1:9092, k2:9092")
	t.Setenv("POS_REQUEST_TIMEOUT", "750ms")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.HTTPAddr)
	assert.False(t, cfg.RunMigrations)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSAllowOrigins)
	assert.Equal(t, CartStoreRedis, cfg.CartStore)
	assert.Equal(t, EventsDriverKafka, cfg.EventsDriver)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 750*time.Millisecond, cfg.RequestTimeout)
}

func TestLoadRejectsUnknownDrivers(t *testing.T) {
	t.Chdir(t.TempDir())

	t.Run("cart store", func(t *testing.T) {
		t.Setenv("POS_CART_STORE", "mongo")
		_, err := Load()
		require.ErrorContains(t, err, "unknown cart store")
	})

	t.Run("events driver", func(t *testing.T) {
		t.Setenv("POS_EVENTS_DRIVER", "nats")
		_, err := Load()
		require.ErrorContains(t, err, "unknown events driver")
	})
}

func TestValidate(t *testing.T) {
	valid := Config{
		CartStore:       CartStoreMemory,
		EventsDriver:    EventsDriverNone,
		RequestTimeout:  time.Second,
		ShutdownTimeout: time.Second,
		DefaultSession:  "default",
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(c *Config)
		want   string
	}{
		{"zero request timeout", func(c *Config) { c.RequestTimeout = 0 }, "request timeout"},
		{"negative shutdown timeout", func(c *Config) { c.ShutdownTimeout = -time.Second }, "shutdown timeout"},
		{"blank default session", func(c *Config) { c.DefaultSession = "  " }, "default session"},
		{"kafka without brokers", func(c *Config) { c.EventsDriver = EventsDriverKafka }, "broker"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			require.ErrorContains(t, cfg.Validate(), tt.want)
		})
	}
}
