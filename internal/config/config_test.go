package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bolgen.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "csv", cfg.Database.Driver)
	assert.Equal(t, "output", cfg.Output.BaseDir)
	assert.Empty(t, cfg.Kafka.Brokers)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromFile(t *testing.T) {
	t.Run("file values override defaults", func(t *testing.T) {
		path := writeConfigFile(t, `
server:
  addr: ":9090"
  writeTimeout: 2m
database:
  driver: postgres
  dsn: "host=db user=ops dbname=orders sslmode=disable"
output:
  baseDir: /srv/bol
kafka:
  brokers: ["kafka-1:9092", "kafka-2:9092"]
logging:
  level: debug
`)

		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, ":9090", cfg.Server.Addr)
		assert.Equal(t, 2*time.Minute, cfg.Server.WriteTimeout)
		assert.Equal(t, "postgres", cfg.Database.Driver)
		assert.Equal(t, "/srv/bol", cfg.Output.BaseDir)
		assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
		assert.Equal(t, "shipping.bol", cfg.Kafka.Topic, "unset fields keep defaults")
		assert.Equal(t, "debug", cfg.Logging.Level)
	})

	t.Run("missing file fails", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})

	t.Run("empty path loads defaults", func(t *testing.T) {
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, "csv", cfg.Database.Driver)
	})
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("BOLGEN_SERVER_ADDR", ":7700")
	t.Setenv("BOLGEN_DB_DRIVER", "postgres")
	t.Setenv("BOLGEN_DB_DSN", "host=live dbname=orders")
	t.Setenv("BOLGEN_KAFKA_BROKERS", "broker-a:9092, broker-b:9092")
	t.Setenv("BOLGEN_LOG_LEVEL", "warn")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":7700", cfg.Server.Addr)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, []string{"broker-a:9092", "broker-b:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestEnvironmentWinsOverFile(t *testing.T) {
	path := writeConfigFile(t, `
output:
  baseDir: /from/file
`)
	t.Setenv("BOLGEN_OUTPUT_DIR", "/from/env")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/from/env", cfg.Output.BaseDir)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "postgres without dsn",
			mutate:  func(c *Config) { c.Database.Driver = "postgres"; c.Database.DSN = "" },
			wantErr: "database.dsn",
		},
		{
			name:    "csv without path",
			mutate:  func(c *Config) { c.Database.CSVPath = "" },
			wantErr: "database.csvPath",
		},
		{
			name:    "unknown driver",
			mutate:  func(c *Config) { c.Database.Driver = "oracle" },
			wantErr: "database.driver",
		},
		{
			name:    "blank output dir",
			mutate:  func(c *Config) { c.Output.BaseDir = "" },
			wantErr: "output.baseDir",
		},
		{
			name:    "brokers without topic",
			mutate:  func(c *Config) { c.Kafka.Brokers = []string{"k:9092"}; c.Kafka.Topic = "" },
			wantErr: "kafka.topic",
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: "logging.level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
