package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/viper"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"

	NumberingModeSequence = "sequence"
	NumberingModeScan     = "scan"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
	Invoice   InvoiceConfig
	MQTT      MQTTConfig
	Report    ReportConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	Environment  string
	MaxBodyBytes int64
}

type DatabaseConfig struct {
	Driver   string
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type JWTConfig struct {
	Secret string
}

type RateLimitConfig struct {
	GeneralRPS   float64 // Requests per second for general endpoints
	GeneralBurst int     // Burst size for general endpoints
}

type CORSConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

type InvoiceConfig struct {
	NumberingMode string // sequence or scan
	DueDays       int
}

type MQTTConfig struct {
	Broker      string
	ClientID    string
	Username    string
	Password    string
	TopicPrefix string
	QoS         int
}

type ReportConfig struct {
	CompanyName string
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AddConfigPath(".")
	if homeDir, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(homeDir)
	}
	viper.AutomaticEnv()
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		log.Printf("Warning: config file not found: %v. Falling back to environment variables only.", err)
	}

	config := &Config{
		Server: ServerConfig{
			Port:         viper.GetString("SERVER_PORT"),
			Host:         viper.GetString("SERVER_HOST"),
			Environment:  viper.GetString("ENVIRONMENT"),
			MaxBodyBytes: viper.GetInt64("SERVER_MAX_BODY_BYTES"),
		},
		Database: DatabaseConfig{
			Driver:   strings.ToLower(viper.GetString("STORE_DRIVER")),
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			DBName:   viper.GetString("DB_NAME"),
			SSLMode:  viper.GetString("DB_SSLMODE"),
		},
		JWT: JWTConfig{
			Secret: viper.GetString("JWT_SECRET"),
		},
		RateLimit: RateLimitConfig{
			GeneralRPS:   viper.GetFloat64("RATE_LIMIT_GENERAL_RPS"),
			GeneralBurst: viper.GetInt("RATE_LIMIT_GENERAL_BURST"),
		},
		CORS: CORSConfig{
			AllowedOrigins:   viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods:   viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders:   viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
			ExposedHeaders:   viper.GetStringSlice("CORS_EXPOSED_HEADERS"),
			AllowCredentials: viper.GetBool("CORS_ALLOW_CREDENTIALS"),
			MaxAge:           viper.GetInt("CORS_MAX_AGE"),
		},
		Invoice: InvoiceConfig{
			NumberingMode: strings.ToLower(viper.GetString("INVOICE_NUMBERING_MODE")),
			DueDays:       viper.GetInt("INVOICE_DUE_DAYS"),
		},
		MQTT: MQTTConfig{
			Broker:      viper.GetString("MQTT_BROKER"),
			ClientID:    viper.GetString("MQTT_CLIENT_ID"),
			Username:    viper.GetString("MQTT_USERNAME"),
			Password:    viper.GetString("MQTT_PASSWORD"),
			TopicPrefix: viper.GetString("MQTT_TOPIC_PREFIX"),
			QoS:         viper.GetInt("MQTT_QOS"),
		},
		Report: ReportConfig{
			CompanyName: viper.GetString("REPORT_COMPANY_NAME"),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func setDefaults() {
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("SERVER_MAX_BODY_BYTES", 1<<20)
	viper.SetDefault("STORE_DRIVER", StoreDriverPostgres)
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("RATE_LIMIT_GENERAL_RPS", 20)
	viper.SetDefault("RATE_LIMIT_GENERAL_BURST", 40)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", []string{"*"})
	viper.SetDefault("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"})
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"})
	viper.SetDefault("CORS_EXPOSED_HEADERS", []string{"X-Request-ID", "Content-Disposition"})
	viper.SetDefault("CORS_MAX_AGE", 43200)
	viper.SetDefault("INVOICE_NUMBERING_MODE", NumberingModeSequence)
	viper.SetDefault("INVOICE_DUE_DAYS", 30)
	viper.SetDefault("MQTT_CLIENT_ID", "freight-backoffice")
	viper.SetDefault("MQTT_TOPIC_PREFIX", "freight")
	viper.SetDefault("MQTT_QOS", 1)
	viper.SetDefault("REPORT_COMPANY_NAME", "Freight Back Office")
}

// Validate checks values that have a closed set of options.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case StoreDriverPostgres, StoreDriverMemory:
	default:
		return fmt.Errorf("unsupported STORE_DRIVER %q", c.Database.Driver)
	}

	switch c.Invoice.NumberingMode {
	case NumberingModeSequence, NumberingModeScan:
	default:
		return fmt.Errorf("unsupported INVOICE_NUMBERING_MODE %q", c.Invoice.NumberingMode)
	}

	if c.Server.MaxBodyBytes < 0 {
		return fmt.Errorf("SERVER_MAX_BODY_BYTES must not be negative")
	}

	if c.MQTT.QoS < 0 || c.MQTT.QoS > 2 {
		return fmt.Errorf("MQTT_QOS must be 0, 1 or 2")
	}

	return nil
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}
