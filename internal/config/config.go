package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/coiffurelab/salon-booking-service/internal/domain"
)

// Config is the full service configuration loaded from config.toml.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Redis    RedisConfig    `toml:"redis"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Booking  BookingConfig  `toml:"booking"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN builds the lib/pq connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	Addr            string `toml:"addr"`
	Password        string `toml:"password"`
	DB              int    `toml:"db"`
	SlotCacheTTLSec int    `toml:"slot_cache_ttl_seconds"`
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

// BookingConfig carries the three booking tunables.
type BookingConfig struct {
	SlotIntervalMinutes int `toml:"slot_interval_minutes"`
	MinAdvanceHours     int `toml:"min_advance_hours"`
	CancellationHours   int `toml:"cancellation_hours"`
}

// Load reads and validates the configuration file, applying booking defaults
// for omitted tunables.
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	if cfg.Booking.SlotIntervalMinutes == 0 {
		cfg.Booking.SlotIntervalMinutes = domain.DefaultSlotIntervalMinutes
	}
	if cfg.Booking.MinAdvanceHours == 0 {
		cfg.Booking.MinAdvanceHours = domain.DefaultMinAdvanceHours
	}
	if cfg.Booking.CancellationHours == 0 {
		cfg.Booking.CancellationHours = domain.DefaultCancellationHours
	}

	if cfg.Booking.SlotIntervalMinutes < domain.MinSlotIntervalMinutes ||
		cfg.Booking.SlotIntervalMinutes > domain.MaxSlotIntervalMinutes {
		return nil, fmt.Errorf("config: slot_interval_minutes %d out of range",
			cfg.Booking.SlotIntervalMinutes)
	}

	return &cfg, nil
}
