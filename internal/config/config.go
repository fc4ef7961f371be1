package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// AppConfig is the application configuration, loaded from config.toml
// beside the executable. Components receive it (or its parts) at
// construction time; nothing reads it through package globals.
type AppConfig struct {
	Data     DataConfig     `toml:"data"`
	Business BusinessConfig `toml:"business"`
}

// DataConfig locates the data directory and database file.
type DataConfig struct {
	DataDir string `toml:"data_dir"`
	DBFile  string `toml:"db_file"`
}

// BusinessConfig carries the reporting business rules.
type BusinessConfig struct {
	// ClosingWeekday is the customary weekly rest day, as an English
	// weekday name. Zero-revenue days on this weekday classify as
	// effectively closed.
	ClosingWeekday string `toml:"closing_weekday"`
	// VarianceAlertThreshold is the default |cash variance| above which
	// a day is flagged, in euro.
	VarianceAlertThreshold float64 `toml:"variance_alert_threshold"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Data: DataConfig{
			DataDir: "data",
			DBFile:  "trgb.db",
		},
		Business: BusinessConfig{
			ClosingWeekday:         "Wednesday",
			VarianceAlertThreshold: 50,
		},
	}
}

// ClosingWeekday parses the configured closing weekday.
func (c *AppConfig) ClosingWeekday() (time.Weekday, error) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if d.String() == c.Business.ClosingWeekday {
			return d, nil
		}
	}
	return 0, fmt.Errorf("invalid closing_weekday %q", c.Business.ClosingWeekday)
}

// DBPath returns the full database path under the data directory.
func (c *AppConfig) DBPath() string {
	return filepath.Join(c.Data.DataDir, c.Data.DBFile)
}

// Load reads config.toml from the executable's directory, falling back
// to defaults when the file does not exist.
func Load() (*AppConfig, error) {
	cfg := DefaultConfig()

	exeDir, err := exeDir()
	if err != nil {
		exeDir = "."
	}

	data, err := os.ReadFile(filepath.Join(exeDir, "config.toml"))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config.toml: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration back to config.toml.
func Save(cfg *AppConfig) error {
	exeDir, err := exeDir()
	if err != nil {
		exeDir = "."
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(exeDir, "config.toml"), data, 0644)
}

func exeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}
