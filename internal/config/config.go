package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type AppConfig struct {
	// DataFile is the CSV holding the sensor readings.
	DataFile string `mapstructure:"data_file" validate:"required"`

	Port string `mapstructure:"port" validate:"required,numeric"`

	ReadTimeout     time.Duration `mapstructure:"http_read_timeout" validate:"gte=0"`
	WriteTimeout    time.Duration `mapstructure:"http_write_timeout" validate:"gte=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`

	LogLevel  string `mapstructure:"log_level" validate:"oneof=trace debug info warn error"`
	LogFormat string `mapstructure:"log_format" validate:"oneof=json console"`

	// ReportInterval controls how often cache statistics are logged (0 = never).
	ReportInterval time.Duration `mapstructure:"stats_report_interval" validate:"gte=0"`

	CORSAllowOrigins string `mapstructure:"cors_allow_origins" validate:"required"`
}

var validate = validator.New()

// Load reads configuration from environment with sensible defaults.
// A YAML, JSON or TOML file named by CONFIG_FILE is read first when set;
// environment variables override it.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	cfg := &AppConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data_file", "sensors.csv")
	v.SetDefault("port", "8080")
	v.SetDefault("http_read_timeout", "10s")
	v.SetDefault("http_write_timeout", "10s")
	v.SetDefault("shutdown_timeout", "10s")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
	v.SetDefault("stats_report_interval", "0s")
	v.SetDefault("cors_allow_origins", "*")
}
