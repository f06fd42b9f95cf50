package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cityflow/datagen/models"
)

// clearEnv unsets every variable LoadConfig reads for the duration of a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"DATAGEN_OUTPUT_DIR", "DATAGEN_DAYS", "DATAGEN_SEED", "LOG_LEVEL", "LOG_FORMAT",
		"DB_DSN", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSLMODE",
		"REDIS_URL", "MQTT_URL", "KAFKA_BROKERS", "INFLUX_URL", "INFLUX_TOKEN", "INFLUX_ORG",
		"INFLUX_BUCKET", "PUSHGATEWAY_URL", "SERVER_PORT", "CORS_ALLOWED_ORIGINS",
		"DB_ENABLED", "REDIS_ENABLED", "MQTT_ENABLED", "KAFKA_ENABLED", "INFLUX_ENABLED",
	} {
		if v, ok := os.LookupEnv(key); ok {
			os.Unsetenv(key)
			t.Cleanup(func() { os.Setenv(key, v) })
		}
	}
}

func TestGetDSN(t *testing.T) {
	db := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "cityflow",
		Password: "secret",
		Name:     "cityflow",
		SSLMode:  "disable",
	}
	dsn := db.GetDSN()

	expected := "host=localhost port=5432 user=cityflow password=secret dbname=cityflow sslmode=disable"
	if dsn != expected {
		t.Errorf("GetDSN() = %q, want %q", dsn, expected)
	}
}

func TestGetDSNPrefersURL(t *testing.T) {
	db := DatabaseConfig{
		DSN:  "postgres://cityflow@db:5432/cityflow?sslmode=disable",
		Host: "ignored",
	}
	if got := db.GetDSN(); got != db.DSN {
		t.Errorf("GetDSN() = %q, want %q", got, db.DSN)
	}
}

func TestGetEnv(t *testing.T) {
	os.Unsetenv("TEST_CONFIG_VAR")
	if got := getEnv("TEST_CONFIG_VAR", "default"); got != "default" {
		t.Errorf("getEnv() = %q, want %q", got, "default")
	}

	t.Setenv("TEST_CONFIG_VAR", "custom")
	if got := getEnv("TEST_CONFIG_VAR", "default"); got != "custom" {
		t.Errorf("getEnv() = %q, want %q", got, "custom")
	}
}

func TestGetIntEnv(t *testing.T) {
	t.Run("fallback when unset", func(t *testing.T) {
		os.Unsetenv("TEST_INT_VAR")
		got, err := getIntEnv("TEST_INT_VAR", 8080)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != 8080 {
			t.Errorf("getIntEnv() = %d, want %d", got, 8080)
		}
	})

	t.Run("parses valid int", func(t *testing.T) {
		t.Setenv("TEST_INT_VAR", "9090")
		got, err := getIntEnv("TEST_INT_VAR", 8080)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != 9090 {
			t.Errorf("getIntEnv() = %d, want %d", got, 9090)
		}
	})

	t.Run("rejects invalid int", func(t *testing.T) {
		t.Setenv("TEST_INT_VAR", "not_a_number")
		if _, err := getIntEnv("TEST_INT_VAR", 8080); err == nil {
			t.Error("expected error for non-numeric value")
		}
	})
}

func TestGetBoolEnv(t *testing.T) {
	t.Setenv("TEST_BOOL_VAR", "true")
	if got, err := getBoolEnv("TEST_BOOL_VAR", false); err != nil || !got {
		t.Errorf("getBoolEnv() = %v, %v; want true, nil", got, err)
	}
	t.Setenv("TEST_BOOL_VAR", "maybe")
	if _, err := getBoolEnv("TEST_BOOL_VAR", false); err == nil {
		t.Error("expected error for non-boolean value")
	}
}

func TestSplitList(t *testing.T) {
	got := splitList(" kafka-1:9092, ,kafka-2:9092 ")
	if len(got) != 2 || got[0] != "kafka-1:9092" || got[1] != "kafka-2:9092" {
		t.Errorf("splitList() = %q", got)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.OutputDir != DefaultOutputDir {
		t.Errorf("OutputDir = %q, want %q", cfg.OutputDir, DefaultOutputDir)
	}
	if cfg.Days != 7 {
		t.Errorf("Days = %d, want 7", cfg.Days)
	}
	if cfg.Seed != 0 {
		t.Errorf("Seed = %d, want 0", cfg.Seed)
	}
	if cfg.Bounds != models.CityBounds {
		t.Errorf("Bounds = %+v, want %+v", cfg.Bounds, models.CityBounds)
	}
	if cfg.Database.Enabled || cfg.Redis.Enabled || cfg.MQTT.Enabled || cfg.Kafka.Enabled || cfg.InfluxDB.Enabled {
		t.Error("exports should be disabled by default")
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
}

func TestLoadConfigFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "datagen.toml")
	content := `
output-dir = "/tmp/iot"
days = 2
seed = 1234

[log]
level = "debug"
format = "json"

[kafka]
enabled = true
brokers = ["kafka:9092"]

[bounds]
lat-min = 48.80
lat-max = 48.90
lon-min = 2.25
lon-max = 2.42
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.OutputDir != "/tmp/iot" || cfg.Days != 2 || cfg.Seed != 1234 {
		t.Errorf("got dir=%q days=%d seed=%d", cfg.OutputDir, cfg.Days, cfg.Seed)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("Log = %+v", cfg.Log)
	}
	if !cfg.Kafka.Enabled || len(cfg.Kafka.Brokers) != 1 || cfg.Kafka.TopicPrefix != "cityflow" {
		t.Errorf("Kafka = %+v", cfg.Kafka)
	}
	if cfg.Bounds.LatMin != 48.80 || cfg.Bounds.LonMax != 2.42 {
		t.Errorf("Bounds = %+v", cfg.Bounds)
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATAGEN_OUTPUT_DIR", "out")
	t.Setenv("DATAGEN_DAYS", "3")
	t.Setenv("DATAGEN_SEED", "99")
	t.Setenv("DB_DSN", "postgres://localhost/cityflow")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("INFLUX_URL", "http://localhost:8086")
	t.Setenv("MQTT_URL", "tcp://localhost:1883")
	t.Setenv("MQTT_ENABLED", "false")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.OutputDir != "out" || cfg.Days != 3 || cfg.Seed != 99 {
		t.Errorf("got dir=%q days=%d seed=%d", cfg.OutputDir, cfg.Days, cfg.Seed)
	}
	if !cfg.Database.Enabled || cfg.Database.GetDSN() != "postgres://localhost/cityflow" {
		t.Errorf("Database = %+v", cfg.Database)
	}
	if !cfg.Redis.Enabled || !cfg.InfluxDB.Enabled {
		t.Error("endpoint env vars should enable their exports")
	}
	if len(cfg.Kafka.Brokers) != 2 {
		t.Errorf("Kafka.Brokers = %q", cfg.Kafka.Brokers)
	}
	if cfg.MQTT.Enabled {
		t.Error("MQTT_ENABLED=false should win over MQTT_URL")
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"bad days", map[string]string{"DATAGEN_DAYS": "week"}, "DATAGEN_DAYS"},
		{"zero days", map[string]string{"DATAGEN_DAYS": "0"}, "days must be positive"},
		{"negative seed", map[string]string{"DATAGEN_SEED": "-1"}, "seed"},
		{"bad port", map[string]string{"SERVER_PORT": "70000"}, "server port"},
		{"bad toggle", map[string]string{"KAFKA_ENABLED": "yes please"}, "KAFKA_ENABLED"},
		{"empty dir", map[string]string{"DATAGEN_OUTPUT_DIR": "  "}, "output-dir"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig("")
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("LoadConfig() error = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	clearEnv(t)
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestValidateBounds(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Bounds.LatMin, cfg.Bounds.LatMax = 41, 40
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for inverted bounds")
	}
	cfg = NewDefaultConfig()
	cfg.Bounds.LatMax = 91
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for out-of-range latitude")
	}
}
