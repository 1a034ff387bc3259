package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom_Defaults(t *testing.T) {
	t.Setenv("YATUBE_AUTH_JWT_SECRET", "s3cret")
	cfg, err := LoadFrom(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.Posts.PageSize)
	assert.Equal(t, 20*time.Second, cfg.Cache.IndexTTL)
	assert.Equal(t, "memory", cfg.Cache.Driver)
	assert.Equal(t, 300, cfg.Cache.MaxEntries)
	assert.Equal(t, "release", cfg.Server.Mode)
	assert.Equal(t, "s3cret", cfg.Auth.JWTSecret)
	assert.Equal(t, "/auth/login/", cfg.Auth.LoginURL)
	assert.True(t, cfg.Follow.AllowSelf)
}

func TestLoadFrom_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := "posts:\n  page_size: 5\ncache:\n  index_ttl: 3s\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))
	t.Setenv("YATUBE_CACHE_DRIVER", "redis")
	t.Setenv("YATUBE_AUTH_JWT_SECRET", "s3cret")

	cfg, err := LoadFrom(dir)
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Posts.PageSize)
	assert.Equal(t, 3*time.Second, cfg.Cache.IndexTTL)
	assert.Equal(t, "redis", cfg.Cache.Driver)
}

func TestLoadFrom_ReleaseNeedsSecret(t *testing.T) {
	t.Setenv("YATUBE_AUTH_JWT_SECRET", "")
	_, err := LoadFrom(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jwt_secret")

	t.Setenv("YATUBE_SERVER_MODE", "debug")
	cfg, err := LoadFrom(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, cfg.Auth.JWTSecret)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Database: DatabaseConfig{Driver: "sqlite"},
			Cache:    CacheConfig{Driver: "memory", IndexTTL: time.Second, MaxEntries: 10},
			Posts:    PostsConfig{PageSize: 10},
		}
	}

	require.NoError(t, base().Validate())

	c := base()
	c.Posts.PageSize = 0
	assert.Error(t, c.Validate())

	c = base()
	c.Cache.IndexTTL = 0
	assert.Error(t, c.Validate())

	c = base()
	c.Database.Driver = "mysql"
	assert.Error(t, c.Validate())

	c = base()
	c.Cache.Driver = "memcached"
	assert.Error(t, c.Validate())

	c = base()
	c.Cache.MaxEntries = 0
	assert.Error(t, c.Validate())

	for _, secret := range []string{"", "change-me"} {
		c = base()
		c.Server.Mode = "release"
		c.Auth.JWTSecret = secret
		assert.Error(t, c.Validate(), "secret %q", secret)
	}
	c = base()
	c.Server.Mode = "release"
	c.Auth.JWTSecret = "a-real-secret"
	assert.NoError(t, c.Validate())
}
