package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"

	"github.com/klipper-extras/envsense/internal/messages"
)

// Seams for tests.
var (
	lookupEnv      = os.LookupEnv
	executablePath = os.Executable
	getwd          = os.Getwd
)

// Overrides carries CLI flag values. Empty fields defer to the environment,
// the settings file, and finally the built-in defaults.
type Overrides struct {
	KlipperHome string
	PrinterData string
	Service     string
	SourceDir   string
}

// Paths is the fully resolved filesystem contract the installer stages work
// against. It is computed once at startup and threaded through every stage.
type Paths struct {
	KlipperHome  string
	ExtrasDir    string
	PrinterData  string
	FragmentPath string
	SourceDir    string
	Service      string
}

// Resolve applies the precedence flags > environment > settings file >
// defaults and derives the paths the installer consumes.
func Resolve(overrides Overrides, settings *Settings) (*Paths, error) {
	if settings == nil {
		settings = &Settings{}
	}

	klipperHome, err := resolvePath(overrides.KlipperHome, EnvKlipperHome, settings.KlipperHome, "~/klipper")
	if err != nil {
		return nil, err
	}
	printerData, err := resolvePath(overrides.PrinterData, EnvPrinterData, settings.PrinterData, "~/printer_data")
	if err != nil {
		return nil, err
	}
	service := firstNonEmpty(overrides.Service, envValue(EnvService), settings.Service, DefaultService)

	sourceDir, err := resolveSourceDir(overrides.SourceDir, settings.SourceDir)
	if err != nil {
		return nil, err
	}

	return &Paths{
		KlipperHome:  klipperHome,
		ExtrasDir:    filepath.Join(klipperHome, "klippy", "extras"),
		PrinterData:  printerData,
		FragmentPath: filepath.Join(printerData, "config", "temperature_sensors.cfg"),
		SourceDir:    sourceDir,
		Service:      service,
	}, nil
}

// resolveSourceDir locates the directory holding the plugin files. Without
// an explicit override it prefers the directory of the running binary (the
// repo checkout the installer was built in), then the working directory.
func resolveSourceDir(flagValue string, fileValue string) (string, error) {
	if explicit := firstNonEmpty(flagValue, envValue(EnvSourceDir), fileValue); explicit != "" {
		expanded, err := expand(explicit)
		if err != nil {
			return "", err
		}
		info, err := os.Stat(expanded)
		if err != nil {
			return "", fmt.Errorf(messages.ConfigSourceDirMissingFmt, expanded)
		}
		if !info.IsDir() {
			return "", fmt.Errorf(messages.ConfigSourceNotDirFmt, expanded)
		}
		return expanded, nil
	}

	if exe, err := executablePath(); err == nil {
		dir := filepath.Dir(exe)
		if hasPluginFiles(dir) {
			return dir, nil
		}
	}
	cwd, err := getwd()
	if err != nil {
		return "", fmt.Errorf(messages.ConfigSourceDirFailedFmt, err)
	}
	return cwd, nil
}

// hasPluginFiles reports whether dir contains at least one of the plugin
// sources, marking it as a repo checkout.
func hasPluginFiles(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, "aht21.py"))
	return err == nil
}

func resolvePath(flagValue string, envKey string, fileValue string, fallback string) (string, error) {
	return expand(firstNonEmpty(flagValue, envValue(envKey), fileValue, fallback))
}

func expand(path string) (string, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf(messages.ConfigExpandPathFmt, path, err)
	}
	return expanded, nil
}

func envValue(key string) string {
	value, ok := lookupEnv(key)
	if !ok {
		return ""
	}
	return value
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
