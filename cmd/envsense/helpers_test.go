package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/klipper-extras/envsense/internal/config"
	"github.com/klipper-extras/envsense/internal/installer"
	"github.com/klipper-extras/envsense/internal/service"
)

// fakeServiceManager satisfies service.Manager for command tests.
type fakeServiceManager struct {
	exists   bool
	restarts int
}

func (m *fakeServiceManager) Exists(context.Context, string) (bool, error) {
	return m.exists, nil
}

func (m *fakeServiceManager) Restart(context.Context, string) error {
	m.restarts++
	return nil
}

// useFakeService swaps the systemd manager for the duration of a test.
func useFakeService(t *testing.T, exists bool) *fakeServiceManager {
	t.Helper()
	mgr := &fakeServiceManager{exists: exists}
	orig := newServiceManager
	newServiceManager = func() service.Manager { return mgr }
	t.Cleanup(func() { newServiceManager = orig })
	return mgr
}

// useTempSettings points settings loading at a scratch file.
func useTempSettings(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "envsense.toml")
	orig := settingsPathFunc
	settingsPathFunc = func() (string, error) { return path, nil }
	t.Cleanup(func() { settingsPathFunc = orig })
	return path
}

// hostEnv builds a Klipper-shaped tree and points the ENVSENSE_*
// environment at it.
func hostEnv(t *testing.T) *config.Paths {
	t.Helper()
	root := t.TempDir()
	klipper := filepath.Join(root, "klipper")
	printerData := filepath.Join(root, "printer_data")
	source := filepath.Join(root, "repo")
	for _, dir := range []string{
		filepath.Join(klipper, "klippy", "extras"),
		filepath.Join(printerData, "config"),
		source,
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatal(err)
		}
	}
	for _, plugin := range installer.LinkSet() {
		if err := os.WriteFile(filepath.Join(source, plugin.File), []byte(""), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	t.Setenv(config.EnvKlipperHome, klipper)
	t.Setenv(config.EnvPrinterData, printerData)
	t.Setenv(config.EnvSourceDir, source)

	return &config.Paths{
		KlipperHome:  klipper,
		ExtrasDir:    filepath.Join(klipper, "klippy", "extras"),
		PrinterData:  printerData,
		FragmentPath: filepath.Join(printerData, "config", "temperature_sensors.cfg"),
		SourceDir:    source,
		Service:      config.DefaultService,
	}
}

// skipIfRoot skips tests that drive the real installer, which refuses to
// run as root.
func skipIfRoot(t *testing.T) {
	t.Helper()
	if os.Geteuid() == 0 {
		t.Skip("installer refuses to run as root")
	}
}

// runCommand executes the CLI with args and returns stdout, stderr, and the error.
func runCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err := execute(append([]string{"envsense"}, args...), &out, &errOut)
	return out.String(), errOut.String(), err
}
