package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config 应用配置
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Posts    PostsConfig    `mapstructure:"posts"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Follow   FollowConfig   `mapstructure:"follow"`
	Media    MediaConfig    `mapstructure:"media"`
	Log      LogConfig      `mapstructure:"log"`
	Sentry   SentryConfig   `mapstructure:"sentry"`
	Tracing  TracingConfig  `mapstructure:"tracing"`
}

type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	Mode            string        `mapstructure:"mode"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Driver       string `mapstructure:"driver"` // sqlite, postgres
	DSN          string `mapstructure:"dsn"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
	LogLevel     string `mapstructure:"log_level"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// CacheConfig 首页整页缓存
type CacheConfig struct {
	Driver   string        `mapstructure:"driver"` // memory, redis
	IndexTTL time.Duration `mapstructure:"index_ttl"`
	// MaxEntries 内存缓存的条目上限，满载时先清过期再淘汰
	MaxEntries int `mapstructure:"max_entries"`
}

type PostsConfig struct {
	PageSize int `mapstructure:"page_size"`
}

type AuthConfig struct {
	JWTSecret  string        `mapstructure:"jwt_secret"`
	TokenTTL   time.Duration `mapstructure:"token_ttl"`
	CookieName string        `mapstructure:"cookie_name"`
	LoginURL   string        `mapstructure:"login_url"`

	// SecureCookie 仅通过 HTTPS 发送会话 cookie
	SecureCookie bool `mapstructure:"secure_cookie"`
}

type FollowConfig struct {
	// AllowSelf 是否允许关注自己（默认允许，仅记录告警）
	AllowSelf bool `mapstructure:"allow_self"`
}

type MediaConfig struct {
	Root      string `mapstructure:"root"`
	URLPrefix string `mapstructure:"url_prefix"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json, console
}

type SentryConfig struct {
	DSN         string `mapstructure:"dsn"`
	Environment string `mapstructure:"environment"`
}

type TracingConfig struct {
	Endpoint    string `mapstructure:"endpoint"`
	ServiceName string `mapstructure:"service_name"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "file:yatube.db?_foreign_keys=1")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.log_level", "warn")

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("cache.driver", "memory")
	v.SetDefault("cache.index_ttl", 20*time.Second)
	v.SetDefault("cache.max_entries", 300)

	v.SetDefault("posts.page_size", 10)

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_ttl", 24*time.Hour)
	v.SetDefault("auth.cookie_name", "token")
	v.SetDefault("auth.login_url", "/auth/login/")
	v.SetDefault("auth.secure_cookie", false)

	v.SetDefault("follow.allow_self", true)

	v.SetDefault("media.root", "media")
	v.SetDefault("media.url_prefix", "/media")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("sentry.dsn", "")
	v.SetDefault("sentry.environment", "development")

	v.SetDefault("tracing.endpoint", "")
	v.SetDefault("tracing.service_name", "yatube")
}

// Load 读取 config/config.yaml（可选）与 YATUBE_ 前缀的环境变量
func Load() (*Config, error) {
	return LoadFrom("config")
}

// LoadFrom 从指定目录加载配置，目录中没有 config.yaml 时只使用默认值与环境变量
func LoadFrom(dir string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	v.SetEnvPrefix("YATUBE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate 校验配置取值
func (c *Config) Validate() error {
	if c.Posts.PageSize <= 0 {
		return fmt.Errorf("posts.page_size must be positive, got %d", c.Posts.PageSize)
	}
	if c.Cache.IndexTTL <= 0 {
		return fmt.Errorf("cache.index_ttl must be positive, got %s", c.Cache.IndexTTL)
	}
	if c.Cache.MaxEntries <= 0 {
		return fmt.Errorf("cache.max_entries must be positive, got %d", c.Cache.MaxEntries)
	}
	if c.Server.Mode == "release" && weakSecret(c.Auth.JWTSecret) {
		return errors.New("auth.jwt_secret must be set in release mode")
	}
	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unknown database.driver %q", c.Database.Driver)
	}
	switch c.Cache.Driver {
	case "memory", "redis":
	default:
		return fmt.Errorf("unknown cache.driver %q", c.Cache.Driver)
	}
	return nil
}

func weakSecret(s string) bool {
	return s == "" || s == "change-me"
}
