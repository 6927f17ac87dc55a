package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"annonsplats/internal/config"
)

func TestLoad(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://localhost/annonsplats?sslmode=disable")
		t.Setenv("JWT_SECRET", "secret")

		cfg, err := config.Load()

		require.NoError(t, err)
		assert.Equal(t, "8080", cfg.Port)
		assert.Equal(t, 5, cfg.CatalogPreviewSize)
		assert.Equal(t, 15*time.Minute, cfg.JWTAccessExpiry)
		assert.Equal(t, cfg.MinIOEndpoint, cfg.MinIOPublicEndpoint)
		assert.True(t, cfg.IsDevelopment())
	})

	t.Run("EnvironmentOverrides", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://db/annonsplats")
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("ENVIRONMENT", "production")
		t.Setenv("CATALOG_PREVIEW_SIZE", "8")
		t.Setenv("SEARCH_CACHE_TTL", "45s")
		t.Setenv("MINIO_PUBLIC_ENDPOINT", "cdn.example.com")

		cfg, err := config.Load()

		require.NoError(t, err)
		assert.False(t, cfg.IsDevelopment())
		assert.Equal(t, 8, cfg.CatalogPreviewSize)
		assert.Equal(t, 45*time.Second, cfg.SearchCacheTTL)
		assert.Equal(t, "cdn.example.com", cfg.MinIOPublicEndpoint)
	})

	t.Run("MissingSecret", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://db/annonsplats")
		t.Setenv("JWT_SECRET", "")

		_, err := config.Load()

		assert.ErrorContains(t, err, "JWT_SECRET")
	})
}
