package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"cityflow/datagen/logging"
	"cityflow/datagen/models"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

const (
	DefaultOutputDir = "data/raw"
	DefaultDays      = 7
)

type Config struct {
	OutputDir string             `toml:"output-dir"`
	Days      int                `toml:"days"`
	Seed      int64              `toml:"seed"`
	Bounds    models.BoundingBox `toml:"bounds"`
	Log       logging.Config     `toml:"log"`
	Database  DatabaseConfig     `toml:"database"`
	Redis     RedisConfig        `toml:"redis"`
	MQTT      MQTTConfig         `toml:"mqtt"`
	Kafka     KafkaConfig        `toml:"kafka"`
	InfluxDB  InfluxDBConfig     `toml:"influxdb"`
	Metrics   MetricsConfig      `toml:"metrics"`
	Server    ServerConfig       `toml:"server"`
}

type ServerConfig struct {
	Port           int    `toml:"port"`
	AllowedOrigins string `toml:"allowed-origins"`
}

type DatabaseConfig struct {
	Enabled bool `toml:"enabled"`
	// DSN takes precedence over the individual fields when set.
	DSN      string `toml:"dsn"`
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	Name     string `toml:"name"`
	SSLMode  string `toml:"sslmode"`
}

func (d DatabaseConfig) GetDSN() string {
	if d.DSN != "" {
		return d.DSN
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
}

type RedisConfig struct {
	Enabled bool   `toml:"enabled"`
	URL     string `toml:"url"`
	Channel string `toml:"channel"`
}

type MQTTConfig struct {
	Enabled     bool   `toml:"enabled"`
	URL         string `toml:"url"`
	TopicPrefix string `toml:"topic-prefix"`
	ClientID    string `toml:"client-id"`
	QoS         int    `toml:"qos"`
}

type KafkaConfig struct {
	Enabled     bool     `toml:"enabled"`
	Brokers     []string `toml:"brokers"`
	TopicPrefix string   `toml:"topic-prefix"`
	BatchSize   int      `toml:"batch-size"`
}

type InfluxDBConfig struct {
	Enabled bool   `toml:"enabled"`
	URL     string `toml:"url"`
	Token   string `toml:"token"`
	Org     string `toml:"org"`
	Bucket  string `toml:"bucket"`
}

type MetricsConfig struct {
	PushgatewayURL string `toml:"pushgateway-url"`
	Job            string `toml:"job"`
}

// NewDefaultConfig returns a configuration that writes the five datasets to
// data/raw with every export disabled.
func NewDefaultConfig() *Config {
	return &Config{
		OutputDir: DefaultOutputDir,
		Days:      DefaultDays,
		Bounds:    models.CityBounds,
		Log:       logging.NewDefaultConfig(),
		Database: DatabaseConfig{
			Host:    "localhost",
			Port:    5432,
			User:    "cityflow",
			Name:    "cityflow",
			SSLMode: "disable",
		},
		Redis: RedisConfig{Channel: "cityflow:datasets"},
		MQTT: MQTTConfig{
			TopicPrefix: "cityflow/traffic",
			ClientID:    "cityflow-datagen",
		},
		Kafka: KafkaConfig{
			TopicPrefix: "cityflow",
			BatchSize:   1000,
		},
		InfluxDB: InfluxDBConfig{
			Org:    "cityflow",
			Bucket: "iot",
		},
		Metrics: MetricsConfig{Job: "cityflow_datagen"},
		Server: ServerConfig{
			Port:           8080,
			AllowedOrigins: "*",
		},
	}
}

// LoadConfig layers defaults, the TOML file at path (if any) and the
// environment, then validates the result.
func LoadConfig(path string) (*Config, error) {
	cfg := NewDefaultConfig()
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, errors.Wrapf(err, "parse config %s", path)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	var err error

	c.OutputDir = getEnv("DATAGEN_OUTPUT_DIR", c.OutputDir)
	if c.Days, err = getIntEnv("DATAGEN_DAYS", c.Days); err != nil {
		return fmt.Errorf("invalid DATAGEN_DAYS: %w", err)
	}
	if v := os.Getenv("DATAGEN_SEED"); v != "" {
		if c.Seed, err = strconv.ParseInt(v, 10, 64); err != nil {
			return fmt.Errorf("invalid DATAGEN_SEED: %w", err)
		}
	}
	c.Log.Level = getEnv("LOG_LEVEL", c.Log.Level)
	c.Log.Format = getEnv("LOG_FORMAT", c.Log.Format)

	// Setting an endpoint in the environment turns its export on.
	if v := os.Getenv("DB_DSN"); v != "" {
		c.Database.DSN, c.Database.Enabled = v, true
	}
	c.Database.Host = getEnv("DB_HOST", c.Database.Host)
	if c.Database.Port, err = getIntEnv("DB_PORT", c.Database.Port); err != nil {
		return fmt.Errorf("invalid DB_PORT: %w", err)
	}
	c.Database.User = getEnv("DB_USER", c.Database.User)
	c.Database.Password = getEnv("DB_PASSWORD", c.Database.Password)
	c.Database.Name = getEnv("DB_NAME", c.Database.Name)
	c.Database.SSLMode = getEnv("DB_SSLMODE", c.Database.SSLMode)

	if v := os.Getenv("REDIS_URL"); v != "" {
		c.Redis.URL, c.Redis.Enabled = v, true
	}
	if v := os.Getenv("MQTT_URL"); v != "" {
		c.MQTT.URL, c.MQTT.Enabled = v, true
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers, c.Kafka.Enabled = splitList(v), true
	}
	if v := os.Getenv("INFLUX_URL"); v != "" {
		c.InfluxDB.URL, c.InfluxDB.Enabled = v, true
	}
	c.InfluxDB.Token = getEnv("INFLUX_TOKEN", c.InfluxDB.Token)
	c.InfluxDB.Org = getEnv("INFLUX_ORG", c.InfluxDB.Org)
	c.InfluxDB.Bucket = getEnv("INFLUX_BUCKET", c.InfluxDB.Bucket)
	c.Metrics.PushgatewayURL = getEnv("PUSHGATEWAY_URL", c.Metrics.PushgatewayURL)

	if c.Server.Port, err = getIntEnv("SERVER_PORT", c.Server.Port); err != nil {
		return fmt.Errorf("invalid SERVER_PORT: %w", err)
	}
	c.Server.AllowedOrigins = getEnv("CORS_ALLOWED_ORIGINS", c.Server.AllowedOrigins)

	toggles := []struct {
		key string
		dst *bool
	}{
		{"DB_ENABLED", &c.Database.Enabled},
		{"REDIS_ENABLED", &c.Redis.Enabled},
		{"MQTT_ENABLED", &c.MQTT.Enabled},
		{"KAFKA_ENABLED", &c.Kafka.Enabled},
		{"INFLUX_ENABLED", &c.InfluxDB.Enabled},
	}
	for _, tg := range toggles {
		if *tg.dst, err = getBoolEnv(tg.key, *tg.dst); err != nil {
			return fmt.Errorf("invalid %s: %w", tg.key, err)
		}
	}
	return nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.OutputDir) == "" {
		return errors.New("output-dir must not be empty")
	}
	if c.Days <= 0 {
		return errors.Errorf("days must be positive, got %d", c.Days)
	}
	if c.Seed < 0 {
		return errors.Errorf("seed must not be negative, got %d", c.Seed)
	}
	b := c.Bounds
	if b.LatMin >= b.LatMax || b.LonMin >= b.LonMax {
		return errors.Errorf("invalid bounds %+v", b)
	}
	if b.LatMin < -90 || b.LatMax > 90 || b.LonMin < -180 || b.LonMax > 180 {
		return errors.Errorf("bounds %+v outside valid coordinates", b)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return errors.Errorf("server port %d out of range", c.Server.Port)
	}
	if c.MQTT.QoS < 0 || c.MQTT.QoS > 2 {
		return errors.Errorf("mqtt qos must be 0, 1 or 2, got %d", c.MQTT.QoS)
	}
	if c.Kafka.BatchSize < 0 {
		return errors.Errorf("kafka batch-size must not be negative, got %d", c.Kafka.BatchSize)
	}
	return nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getIntEnv(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}
	return parsed, nil
}

func getBoolEnv(key string, fallback bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback, err
	}
	return parsed, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
