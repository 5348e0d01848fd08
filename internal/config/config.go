// Package config provides configuration loading for the bolgen service.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete bolgen configuration
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Output   OutputConfig   `yaml:"output"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	History  HistoryConfig  `yaml:"history"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServerConfig configures the HTTP API surface
type ServerConfig struct {
	// Addr is the listen address for serve mode
	Addr string `yaml:"addr"`
	// ReadTimeout bounds request header+body reads
	ReadTimeout time.Duration `yaml:"readTimeout"`
	// WriteTimeout bounds response writes; generous because a
	// generation run renders synchronously inside the request
	WriteTimeout time.Duration `yaml:"writeTimeout"`
}

// DatabaseConfig selects and configures the order store
type DatabaseConfig struct {
	// Driver is "postgres" for the live order tables or "csv" for the
	// flat-file store
	Driver string `yaml:"driver"`
	// DSN is the postgres connection string
	DSN string `yaml:"dsn"`
	// CSVPath is the flat-file path for the csv driver
	CSVPath string `yaml:"csvPath"`
}

// OutputConfig configures artifact placement and the form layout
type OutputConfig struct {
	// BaseDir is the root of the dated artifact tree
	BaseDir string `yaml:"baseDir"`
	// LayoutPath optionally overrides the built-in form layout; empty
	// uses the default placement
	LayoutPath string `yaml:"layoutPath"`
}

// KafkaConfig configures the shipment event publisher
type KafkaConfig struct {
	// Brokers is the broker address list; empty disables publishing
	Brokers []string `yaml:"brokers"`
	// Topic receives the generation run events
	Topic string `yaml:"topic"`
	// BatchTimeout is the writer flush interval
	BatchTimeout time.Duration `yaml:"batchTimeout"`
}

// HistoryConfig configures the local run-history store
type HistoryConfig struct {
	// Path is the sqlite database file; empty disables history
	Path string `yaml:"path"`
}

// LoggingConfig configures the structured logger
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 60 * time.Second,
		},
		Database: DatabaseConfig{
			Driver:  "csv",
			CSVPath: "orders.csv",
		},
		Output: OutputConfig{
			BaseDir: "output",
		},
		Kafka: KafkaConfig{
			Topic:        "shipping.bol",
			BatchTimeout: 10 * time.Millisecond,
		},
		History: HistoryConfig{
			Path: "bolgen_history.db",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "postgres":
		if c.Database.DSN == "" {
			return fmt.Errorf("database.dsn is required for the postgres driver")
		}
	case "csv":
		if c.Database.CSVPath == "" {
			return fmt.Errorf("database.csvPath is required for the csv driver")
		}
	default:
		return fmt.Errorf("database.driver must be postgres or csv, got %q", c.Database.Driver)
	}

	if c.Output.BaseDir == "" {
		return fmt.Errorf("output.baseDir is required")
	}
	if len(c.Kafka.Brokers) > 0 && c.Kafka.Topic == "" {
		return fmt.Errorf("kafka.topic is required when brokers are configured")
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn or error, got %q", c.Logging.Level)
	}

	return nil
}

// Load reads configuration from an optional YAML file and applies
// BOLGEN_* environment overrides on top. An empty path loads defaults
// plus environment only.
func Load(path string) (*Config, error) {
	config := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	config.applyEnv()

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// applyEnv overlays environment variables on the loaded file. Variables
// win over file values so deployments can keep one file and vary the
// endpoints.
func (c *Config) applyEnv() {
	setString(&c.Server.Addr, "BOLGEN_SERVER_ADDR")
	setDuration(&c.Server.ReadTimeout, "BOLGEN_SERVER_READ_TIMEOUT")
	setDuration(&c.Server.WriteTimeout, "BOLGEN_SERVER_WRITE_TIMEOUT")

	setString(&c.Database.Driver, "BOLGEN_DB_DRIVER")
	setString(&c.Database.DSN, "BOLGEN_DB_DSN")
	setString(&c.Database.CSVPath, "BOLGEN_DB_CSV_PATH")

	setString(&c.Output.BaseDir, "BOLGEN_OUTPUT_DIR")
	setString(&c.Output.LayoutPath, "BOLGEN_LAYOUT_PATH")

	if value := os.Getenv("BOLGEN_KAFKA_BROKERS"); value != "" {
		brokers := strings.Split(value, ",")
		for i := range brokers {
			brokers[i] = strings.TrimSpace(brokers[i])
		}
		c.Kafka.Brokers = brokers
	}
	setString(&c.Kafka.Topic, "BOLGEN_KAFKA_TOPIC")
	setDuration(&c.Kafka.BatchTimeout, "BOLGEN_KAFKA_BATCH_TIMEOUT")

	setString(&c.History.Path, "BOLGEN_HISTORY_PATH")
	setString(&c.Logging.Level, "BOLGEN_LOG_LEVEL")
}

func setString(target *string, key string) {
	if value := os.Getenv(key); value != "" {
		*target = value
	}
}

func setDuration(target *time.Duration, key string) {
	value := os.Getenv(key)
	if value == "" {
		return
	}
	if parsed, err := time.ParseDuration(value); err == nil {
		*target = parsed
		return
	}
	if seconds, err := strconv.Atoi(value); err == nil {
		*target = time.Duration(seconds) * time.Second
	}
}
