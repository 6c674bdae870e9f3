package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_USER", "testuser")
	t.Setenv("DB_PASSWORD", "testpass")
	t.Setenv("DB_NAME", "testdb")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("APP_PORT", "8080")
	t.Setenv("APP_ENV", "test")
	t.Setenv("SITE_URL", "https://shop.example.com/")
	t.Setenv("JWT_SECRET", "jwt-secret")
}

func TestLoadConfig(t *testing.T) {
	t.Run("Success loading from env", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("BEPAID_SHOP_ID", "123")
		t.Setenv("BEPAID_SECRET_KEY", "bepaid_secret")
		t.Setenv("BEPAID_TEST", "1")
		t.Setenv("BEPAID_DEBUG", "0")

		cfg, err := LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, "localhost", cfg.DBHost)
		assert.Equal(t, "8080", cfg.AppPort)
		assert.Equal(t, "https://shop.example.com/", cfg.SiteURL)
		assert.Equal(t, "123", cfg.ShopID)
		assert.Equal(t, "bepaid_secret", cfg.SecretKey)
		assert.True(t, cfg.TestMode)
		assert.False(t, cfg.DebugMode)
		assert.Equal(t, "Order payment", cfg.Description)
	})

	t.Run("Missing required variable", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("SITE_URL", "")

		cfg, err := LoadConfig()
		assert.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "SITE_URL")
	})

	t.Run("Shop credentials are optional at startup", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("BEPAID_SHOP_ID", "")
		t.Setenv("BEPAID_SECRET_KEY", "")

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Empty(t, cfg.ShopID)
		assert.Empty(t, cfg.SecretKey)
	})

	t.Run("Description override", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("BEPAID_DESCRIPTION", "Оплата заказа")

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, "Оплата заказа", cfg.Description)
	})
}
