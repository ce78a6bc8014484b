package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Domenick1991/skyfly/internal/domain"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const AdminPasswordEnv = "SKYFLY_ADMIN_PASSWORD"

type Config struct {
	App      AppConfig       `yaml:"app"`
	Logging  LoggingConfig   `yaml:"logging"`
	Store    StoreConfig     `yaml:"store"`
	Receipts ReceiptsConfig  `yaml:"receipts"`
	Booking  BookingConfig   `yaml:"booking"`
	Admin    AdminConfig     `yaml:"admin"`
	HTTP     HTTPConfig      `yaml:"http"`
	Kafka    KafkaConfig     `yaml:"kafka"`
	Metrics  MetricsConfig   `yaml:"metrics"`
	Flights  []domain.Flight `yaml:"flights"`
}

type AppConfig struct {
	Name        string `yaml:"name"`
	Environment string `yaml:"environment"`
	Version     string `yaml:"version"`
}

type LoggingConfig struct {
	Level    string `yaml:"level"`
	Format   string `yaml:"format"`
	Output   string `yaml:"output"`
	FilePath string `yaml:"file_path"`
}

const (
	StoreDriverFile     = "file"
	StoreDriverRedis    = "redis"
	StoreDriverPostgres = "postgres"
	StoreDriverSQLite   = "sqlite"
)

type StoreConfig struct {
	Driver   string         `yaml:"driver"`
	Path     string         `yaml:"path"`
	Redis    RedisConfig    `yaml:"redis"`
	Database DatabaseConfig `yaml:"database"`
	SQLite   SQLiteConfig   `yaml:"sqlite"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Key      string `yaml:"key"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type SQLiteConfig struct {
	Path string `yaml:"path"`
}

type ReceiptsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir"`
}

const (
	IDSchemeRandom = "random"
	IDSchemeUUID   = "uuid"
)

type BookingConfig struct {
	IDScheme string `yaml:"id_scheme"`
	// Seed fixes the random source for IDs and seats. Zero means time-seeded.
	Seed uint64 `yaml:"seed"`
}

type AdminConfig struct {
	Password string `yaml:"password"`
}

type HTTPConfig struct {
	Address   string          `yaml:"address"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

type RateLimitConfig struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

// MetricsConfig enables a standalone /metrics listener. Empty Address
// disables it.
type MetricsConfig struct {
	Address string `yaml:"address"`
}

type KafkaConfig struct {
	Brokers            []string `yaml:"brokers"`
	BookingTopic       string   `yaml:"booking_topic"`
	NotificationsTopic string   `yaml:"notifications_topic"`
	GroupID            string   `yaml:"group_id"`
}

func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0
}

// Default returns the configuration used when no config file exists. It does
// not read .env itself; LoadOrDefault has done so before falling back.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	cfg.applyEnv()
	return cfg
}

func LoadConfig(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	expanded := []byte(os.ExpandEnv(string(data)))

	var cfg Config
	if err := yaml.Unmarshal(expanded, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyDefaults()
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.App.Name == "" {
		c.App.Name = "skyfly"
	}
	if c.App.Environment == "" {
		c.App.Environment = "local"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "warn"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "stderr"
	}
	if c.Store.Driver == "" {
		c.Store.Driver = StoreDriverFile
	}
	if c.Store.Path == "" {
		c.Store.Path = "bookings.txt"
	}
	if c.Store.Redis.Key == "" {
		c.Store.Redis.Key = "skyfly:bookings"
	}
	if c.Store.SQLite.Path == "" {
		c.Store.SQLite.Path = "bookings.db"
	}
	if c.Receipts.Dir == "" {
		c.Receipts.Dir = filepath.Join("~", "Documents", "Flight_Receipts")
	}
	if c.Booking.IDScheme == "" {
		c.Booking.IDScheme = IDSchemeRandom
	}
	if c.HTTP.Address == "" {
		c.HTTP.Address = ":8080"
	}
	if c.HTTP.RateLimit.RPS <= 0 {
		c.HTTP.RateLimit.RPS = 20
	}
	if c.HTTP.RateLimit.Burst <= 0 {
		c.HTTP.RateLimit.Burst = 40
	}
	if c.Kafka.BookingTopic == "" {
		c.Kafka.BookingTopic = "skyfly.bookings"
	}
	if c.Kafka.GroupID == "" {
		c.Kafka.GroupID = "skyfly-worker"
	}
}

func (c *Config) applyEnv() {
	if pw, ok := os.LookupEnv(AdminPasswordEnv); ok {
		c.Admin.Password = pw
	}
}

func (c *Config) Validate() error {
	switch c.Store.Driver {
	case StoreDriverFile:
		if strings.TrimSpace(c.Store.Path) == "" {
			return errors.New("store.path is required for the file driver")
		}
	case StoreDriverRedis:
		if c.Store.Redis.Addr == "" {
			return errors.New("store.redis.addr is required for the redis driver")
		}
	case StoreDriverPostgres:
		if c.Store.Database.Host == "" || c.Store.Database.Name == "" {
			return errors.New("store.database host and name are required for the postgres driver")
		}
	case StoreDriverSQLite:
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}

	switch c.Booking.IDScheme {
	case IDSchemeRandom, IDSchemeUUID:
	default:
		return fmt.Errorf("unknown booking.id_scheme %q", c.Booking.IDScheme)
	}

	return nil
}

// ReceiptsDir resolves a leading "~" against the user's home directory.
func (c *Config) ReceiptsDir() (string, error) {
	dir := c.Receipts.Dir
	if dir != "~" && !strings.HasPrefix(dir, "~"+string(filepath.Separator)) {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(dir, "~")), nil
}

const DefaultPath = "config.yaml"

// ResolvePath picks the explicit flag value, then CONFIG_PATH, then DefaultPath.
func ResolvePath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv("CONFIG_PATH"); env != "" {
		return env
	}
	return DefaultPath
}

// LoadOrDefault behaves like LoadConfig but falls back to Default when path
// is DefaultPath and no such file exists. An explicitly named file must exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil && path == DefaultPath && errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}
