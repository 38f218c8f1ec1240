// Package config resolves the paths and service name the installer operates on.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"

	"github.com/klipper-extras/envsense/internal/fsutil"
	"github.com/klipper-extras/envsense/internal/messages"
)

// Settings is the on-disk settings file (~/.config/envsense/envsense.toml).
// Every field is optional; unset fields fall back to built-in defaults.
type Settings struct {
	KlipperHome string `toml:"klipper_home,omitempty"`
	PrinterData string `toml:"printer_data,omitempty"`
	Service     string `toml:"service,omitempty"`
	SourceDir   string `toml:"source_dir,omitempty"`
}

// Environment variable overrides, applied between flags and the settings file.
const (
	EnvKlipperHome = "ENVSENSE_KLIPPER"
	EnvPrinterData = "ENVSENSE_PRINTER_DATA"
	EnvService     = "ENVSENSE_SERVICE"
	EnvSourceDir   = "ENVSENSE_SOURCE"
)

// DefaultService is the systemd unit restarted after installation.
const DefaultService = "klipper"

// SettingsPath returns the default location of the settings file.
func SettingsPath() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf(messages.ConfigHomeDirFailedFmt, err)
	}
	return filepath.Join(home, ".config", "envsense", "envsense.toml"), nil
}

// LoadSettings reads the settings file at path. A missing file is not an
// error; it yields zero-value settings.
func LoadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Settings{}, nil
		}
		return nil, fmt.Errorf(messages.ConfigReadSettingsFmt, path, err)
	}
	var settings Settings
	if err := toml.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf(messages.ConfigParseSettingsFmt, path, err)
	}
	return &settings, nil
}

// SaveSettings writes settings to path atomically, creating parent
// directories as needed.
func SaveSettings(path string, settings *Settings) error {
	data, err := toml.Marshal(settings)
	if err != nil {
		return fmt.Errorf(messages.ConfigEncodeSettingsFmt, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf(messages.ConfigCreateSettingsDirFmt, path, err)
	}
	if err := fsutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf(messages.ConfigWriteSettingsFmt, path, err)
	}
	return nil
}
