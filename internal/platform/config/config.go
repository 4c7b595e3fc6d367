package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config de la app. Se arma en tres capas: defaults, archivo YAML
// opcional y variables de entorno (gana la última).
type Config struct {
	Port string `yaml:"port"`

	// FeedFile es la planilla con el registro; se crea con header si no existe.
	FeedFile string `yaml:"feed_file"`

	// VolumeUnit: "ml" u "oz". Va en el header y en los resúmenes.
	VolumeUnit string `yaml:"volume_unit"`

	// Timezone IANA para fechar eventos. Vacío = zona local del proceso.
	Timezone string `yaml:"timezone"`

	Log LogConfig `yaml:"log"`
	DB  DBConfig  `yaml:"db"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	App    string `yaml:"app"`
}

// DBConfig: si DSN viene, el registro vive en una tabla SQL en vez de la planilla.
type DBConfig struct {
	Driver string `yaml:"driver"` // pgx | sqlite
	DSN    string `yaml:"dsn"`
}

func Default() Config {
	return Config{
		Port:       "8080",
		FeedFile:   "feeds.xlsx",
		VolumeUnit: "ml",
		Log: LogConfig{
			Level:  "info",
			Format: "text",
			App:    "baby-feed-tracker",
		},
		DB: DBConfig{
			Driver: "pgx",
		},
	}
}

// Load lee path (si no es vacío) y aplica overrides de entorno.
// Un path inexistente es error: si lo pidieron explícitamente, debe estar.
func Load(path string) (Config, error) {
	cfg := Default()

	if strings.TrimSpace(path) != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	applyEnv(&cfg, os.Getenv)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config, getenv func(string) string) {
	set := func(dst *string, key string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}

	set(&cfg.Port, "PORT")
	set(&cfg.FeedFile, "FEED_FILE")
	set(&cfg.VolumeUnit, "VOLUME_UNIT")
	set(&cfg.Timezone, "FEED_TZ")
	set(&cfg.Log.Level, "LOG_LEVEL")
	set(&cfg.Log.Format, "LOG_FORMAT")
	set(&cfg.Log.App, "APP_NAME")
	set(&cfg.DB.Driver, "DB_DRIVER")
	set(&cfg.DB.DSN, "DB_DSN")
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.FeedFile) == "" && strings.TrimSpace(c.DB.DSN) == "" {
		return errors.New("config: feed_file or db.dsn is required")
	}
	switch strings.ToLower(c.VolumeUnit) {
	case "ml", "oz":
	default:
		return fmt.Errorf("config: volume_unit must be ml or oz, got %q", c.VolumeUnit)
	}
	if c.DB.DSN != "" {
		switch c.DB.Driver {
		case "pgx", "sqlite":
		default:
			return fmt.Errorf("config: db.driver must be pgx or sqlite, got %q", c.DB.Driver)
		}
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

func (c Config) Location() (*time.Location, error) {
	if strings.TrimSpace(c.Timezone) == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("config: timezone: %w", err)
	}
	return loc, nil
}

func (c Config) Addr() string {
	return ":" + strings.TrimPrefix(c.Port, ":")
}
