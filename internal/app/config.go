package app

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config carries everything the process needs at startup. Values come from
// the environment (APP_ prefix) with an optional .env file for local runs.
type Config struct {
	Environment string `mapstructure:"env"`
	Version     string `mapstructure:"version"`
	Port        string `mapstructure:"port"`

	DBDriver string `mapstructure:"db_driver"`
	DBDSN    string `mapstructure:"db_dsn"`

	JWTSecretKey string `mapstructure:"jwt_secret_key"`

	InventoryBaseURL      string `mapstructure:"inventory_base_url"`
	InventoryServiceToken string `mapstructure:"inventory_service_token"`

	ImageDir  string `mapstructure:"image_dir"`
	RedisAddr string `mapstructure:"redis_addr"`

	CORSOrigins  []string `mapstructure:"cors_origins"`
	ExpiringDays int      `mapstructure:"expiring_days"`
}

func LoadConfig() (Config, error) {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("env", "development")
	v.SetDefault("version", "dev")
	v.SetDefault("port", "8080")
	v.SetDefault("db_driver", "postgres")
	v.SetDefault("db_dsn", "host=localhost user=postgres password=postgres dbname=pantrypal port=5432 sslmode=disable")
	v.SetDefault("jwt_secret_key", "defaultsecret")
	v.SetDefault("inventory_base_url", "http://localhost:8081")
	v.SetDefault("inventory_service_token", "")
	v.SetDefault("image_dir", "./data/images")
	v.SetDefault("redis_addr", "")
	v.SetDefault("cors_origins", []string{})
	v.SetDefault("expiring_days", 7)

	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.DBDriver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported db driver %q", c.DBDriver)
	}
	if c.DBDSN == "" {
		return fmt.Errorf("db dsn is required")
	}
	if c.Environment == "production" && c.JWTSecretKey == "defaultsecret" {
		return fmt.Errorf("jwt secret key must be set in production")
	}
	return nil
}
