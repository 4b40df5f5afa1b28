// Package config loads the service configuration from config.yaml, .env, and
// environment variable overrides.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Database DatabaseConfig `mapstructure:"database"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Claude   ClaudeConfig   `mapstructure:"claude"`
}

type ServerConfig struct {
	Port int        `mapstructure:"port"`
	Mode string     `mapstructure:"mode"`
	CORS CORSConfig `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigins  []string `mapstructure:"allowed_origins"`
	AllowAllOrigins bool     `mapstructure:"allow_all_origins"`
}

// AuthConfig holds the shared password gate and the opaque session token
// written into the t4p_session cookie after a successful login.
type AuthConfig struct {
	Password     string `mapstructure:"password"`
	SessionToken string `mapstructure:"session_token"`
}

type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"` // postgres or sqlite
	Path            string        `mapstructure:"path"`   // sqlite file path
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"ssl_mode"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
}

// DSN returns the driver-specific connection string.
// Parameters: none.
// Returns:
//   - string: DSN for the configured driver.
func (c *DatabaseConfig) DSN() string {
	if c.Driver == "postgres" {
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
	}
	return c.Path
}

// StorageConfig holds the S3-compatible object storage settings. Photos live
// under the photos/ prefix, reference documents under pdfs/, voice notes
// under audio/.
type StorageConfig struct {
	Type      string `mapstructure:"type"` // r2, s3, or s3compatible; auto-detected if empty
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	UseSSL    bool   `mapstructure:"use_ssl"`
	Bucket    string `mapstructure:"bucket"`
	Region    string `mapstructure:"region"`
}

// ClaudeConfig holds the Anthropic model settings plus the pricing constants
// used to turn cumulative token counts into the displayed cost estimate.
// Pricing is an operational display concern, never persisted.
type ClaudeConfig struct {
	APIKey           string        `mapstructure:"api_key"`
	Model            string        `mapstructure:"model"`
	Timeout          time.Duration `mapstructure:"timeout"`
	PriceInPerMTok   float64       `mapstructure:"price_in_per_mtok"`
	PriceOutPerMTok  float64       `mapstructure:"price_out_per_mtok"`
	FXRate           float64       `mapstructure:"fx_rate"`
}

// Load reads configuration from the given file (or ./configs/config.yaml,
// ./config.yaml), layered under .env and environment variable overrides.
// Parameters:
//   - configPath: explicit config file path; empty uses the search path.
// Returns:
//   - *Config: populated configuration.
//   - error: non-nil if reading or unmarshaling fails.
func Load(configPath string) (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.cors.allow_all_origins", false)
	v.SetDefault("server.cors.allowed_origins", []string{})
	v.SetDefault("auth.password", "changeme")
	v.SetDefault("auth.session_token", "default_session_token")
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "./data/title4pix.db")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.max_open_conns", 20)
	v.SetDefault("database.conn_max_lifetime", time.Hour)
	v.SetDefault("database.auto_migrate", true)
	v.SetDefault("storage.endpoint", "localhost:9000")
	v.SetDefault("storage.use_ssl", false)
	v.SetDefault("storage.bucket", "title4pix")
	v.SetDefault("claude.model", "claude-sonnet-4-5")
	v.SetDefault("claude.timeout", 2*time.Minute)
	v.SetDefault("claude.price_in_per_mtok", 3.0)
	v.SetDefault("claude.price_out_per_mtok", 15.0)
	v.SetDefault("claude.fx_rate", 1.0)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Bind environment variables explicitly for sensitive data
	v.BindEnv("auth.password", "APP_PASSWORD")
	v.BindEnv("auth.session_token", "SESSION_TOKEN")
	v.BindEnv("database.password", "DATABASE_PASSWORD")
	v.BindEnv("storage.endpoint", "STORAGE_ENDPOINT")
	v.BindEnv("storage.access_key", "STORAGE_ACCESS_KEY")
	v.BindEnv("storage.secret_key", "STORAGE_SECRET_KEY")
	v.BindEnv("storage.bucket", "STORAGE_BUCKET")
	v.BindEnv("claude.api_key", "ANTHROPIC_API_KEY")
	v.BindEnv("claude.model", "CLAUDE_MODEL")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}
