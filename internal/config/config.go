package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. ZITHEKE_SERVER_PORT.
const EnvPrefix = "ZITHEKE"

// FileEnv names the environment variable holding an optional config file path.
const FileEnv = "ZITHEKE_CONFIG"

type ServerConf struct {
	Port            string        `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"` // gin mode: debug | release | test
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxUploadMB     int64         `mapstructure:"max_upload_mb"`
}

type LogConf struct {
	Development bool   `mapstructure:"development"`
	Level       string `mapstructure:"level"`
}

type DatabaseConf struct {
	Driver   string `mapstructure:"driver"`
	DSN      string `mapstructure:"dsn"`
	LogLevel string `mapstructure:"log_level"`
}

type StorageConf struct {
	Provider  string `mapstructure:"provider"` // local | s3
	Bucket    string `mapstructure:"bucket"`
	Region    string `mapstructure:"region"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Endpoint  string `mapstructure:"endpoint"`
	CDNDomain string `mapstructure:"cdn_domain"`
	BasePath  string `mapstructure:"base_path"`
}

type MarketplaceConf struct {
	BaseURL         string        `mapstructure:"base_url"`
	Timeout         time.Duration `mapstructure:"timeout"`
	UserAgent       string        `mapstructure:"user_agent"`
	BreakerFailures uint32        `mapstructure:"breaker_failures"`
	BreakerCooldown time.Duration `mapstructure:"breaker_cooldown"`
}

type WizardConf struct {
	MaxImages        int           `mapstructure:"max_images"`
	MaxImageMB       int64         `mapstructure:"max_image_mb"`
	MaxVideoMB       int64         `mapstructure:"max_video_mb"`
	MaxVideoDuration time.Duration `mapstructure:"max_video_duration"`
	SuccessPath      string        `mapstructure:"success_path"`
	IdleTTL          time.Duration `mapstructure:"idle_ttl"`
	CleanupSpec      string        `mapstructure:"cleanup_spec"`
	PostCooldown     time.Duration `mapstructure:"post_cooldown"`
}

type ReportsConf struct {
	ReloadSpec string        `mapstructure:"reload_spec"`
	Cooldown   time.Duration `mapstructure:"cooldown"`
}

type JWTConf struct {
	Secret    string        `mapstructure:"secret"`
	Issuer    string        `mapstructure:"issuer"`
	AccessTTL time.Duration `mapstructure:"access_ttl"`
}

type Config struct {
	Server      ServerConf      `mapstructure:"server"`
	Log         LogConf         `mapstructure:"log"`
	Database    DatabaseConf    `mapstructure:"database"`
	Storage     StorageConf     `mapstructure:"storage"`
	Marketplace MarketplaceConf `mapstructure:"marketplace"`
	Wizard      WizardConf      `mapstructure:"wizard"`
	Reports     ReportsConf     `mapstructure:"reports"`
	JWT         JWTConf         `mapstructure:"jwt"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.shutdown_timeout", 30*time.Second)
	v.SetDefault("server.max_upload_mb", 64)

	v.SetDefault("log.development", false)
	v.SetDefault("log.level", "info")

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "zitheke.db")
	v.SetDefault("database.log_level", "warn")

	v.SetDefault("storage.provider", "local")
	v.SetDefault("storage.bucket", "")
	v.SetDefault("storage.region", "")
	v.SetDefault("storage.access_key", "")
	v.SetDefault("storage.secret_key", "")
	v.SetDefault("storage.endpoint", "")
	v.SetDefault("storage.cdn_domain", "")
	v.SetDefault("storage.base_path", "previews")

	v.SetDefault("marketplace.base_url", "http://localhost:5000/api")
	v.SetDefault("marketplace.timeout", 60*time.Second)
	v.SetDefault("marketplace.user_agent", "zitheke-wizard/1.0")
	v.SetDefault("marketplace.breaker_failures", 5)
	v.SetDefault("marketplace.breaker_cooldown", 30*time.Second)

	v.SetDefault("wizard.max_images", 5)
	v.SetDefault("wizard.max_image_mb", 10)
	v.SetDefault("wizard.max_video_mb", 30)
	v.SetDefault("wizard.max_video_duration", 30*time.Second)
	v.SetDefault("wizard.success_path", "/my-ads")
	v.SetDefault("wizard.idle_ttl", 2*time.Hour)
	v.SetDefault("wizard.cleanup_spec", "0 */5 * * * *")
	v.SetDefault("wizard.post_cooldown", time.Duration(0))

	v.SetDefault("reports.reload_spec", "30 */10 * * * *")
	v.SetDefault("reports.cooldown", time.Duration(0))

	v.SetDefault("jwt.secret", "zitheke-secret-key-change-in-production")
	v.SetDefault("jwt.issuer", "zitheke")
	v.SetDefault("jwt.access_ttl", 2*time.Hour)
}

// Load reads defaults, then the optional file at path, then ZITHEKE_* env
// overrides. An empty path falls back to $ZITHEKE_CONFIG; no file at all is fine.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		path = os.Getenv(FileEnv)
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("server.port is required")
	}
	if c.Marketplace.BaseURL == "" {
		return errors.New("marketplace.base_url is required")
	}
	if c.Storage.Provider == "s3" && c.Storage.Bucket == "" {
		return errors.New("storage.bucket is required for the s3 provider")
	}
	if c.Wizard.MaxImages <= 0 {
		return fmt.Errorf("wizard.max_images must be positive, got %d", c.Wizard.MaxImages)
	}
	return nil
}

// MB converts a megabyte setting to bytes.
func MB(n int64) int64 {
	return n << 20
}
