package store

import (
	"database/sql"
	"fmt"
	"strconv"
)

// Settings are small persisted overrides (customary closing weekday,
// variance alert threshold) the operator can change without touching
// the config file.

// GetSetting returns the value for key, or ok=false when unset.
func (s *Store) GetSetting(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read setting %s: %w", key, err)
	}
	return value, true, nil
}

// GetSettingFloat returns a numeric setting, or ok=false when unset.
func (s *Store) GetSettingFloat(key string) (float64, bool, error) {
	value, ok, err := s.GetSetting(key)
	if err != nil || !ok {
		return 0, ok, err
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, false, fmt.Errorf("setting %s is not numeric: %w", key, err)
	}
	return f, true, nil
}

// SetSetting inserts or replaces a setting.
func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO settings (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = ?, updated_at = CURRENT_TIMESTAMP
	`, key, value, value)
	if err != nil {
		return fmt.Errorf("failed to write setting %s: %w", key, err)
	}
	return nil
}

// SetSettingFloat stores a numeric setting.
func (s *Store) SetSettingFloat(key string, value float64) error {
	return s.SetSetting(key, strconv.FormatFloat(value, 'f', -1, 64))
}

// AllSettings returns every stored setting.
func (s *Store) AllSettings() (map[string]string, error) {
	rows, err := s.db.Query("SELECT key, value FROM settings")
	if err != nil {
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan setting: %w", err)
		}
		out[key] = value
	}
	return out, rows.Err()
}
