package installer

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/klipper-extras/envsense/internal/config"
)

// testSystem is RealSystem with an injectable uid, so privilege-check tests
// do not depend on who runs the test suite.
type testSystem struct {
	RealSystem
	uid int
}

func (s testSystem) Geteuid() int { return s.uid }

// fakeManager records service lookups and restarts.
type fakeManager struct {
	exists     bool
	lookupErr  error
	restarts   int
	restartErr error
}

func (m *fakeManager) Exists(_ context.Context, _ string) (bool, error) {
	return m.exists, m.lookupErr
}

func (m *fakeManager) Restart(_ context.Context, _ string) error {
	m.restarts++
	return m.restartErr
}

// host is a scratch Klipper-shaped tree for installer tests.
type host struct {
	paths *config.Paths
}

func newHost(t *testing.T) *host {
	t.Helper()
	root := t.TempDir()
	klipper := filepath.Join(root, "klipper")
	printerData := filepath.Join(root, "printer_data")
	source := filepath.Join(root, "repo")

	require.NoError(t, os.MkdirAll(filepath.Join(klipper, "klippy", "extras"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(printerData, "config"), 0o755))
	require.NoError(t, os.MkdirAll(source, 0o755))
	for _, plugin := range LinkSet() {
		require.NoError(t, os.WriteFile(filepath.Join(source, plugin.File), []byte("# "+plugin.File+"\n"), 0o644))
	}

	return &host{paths: &config.Paths{
		KlipperHome:  klipper,
		ExtrasDir:    filepath.Join(klipper, "klippy", "extras"),
		PrinterData:  printerData,
		FragmentPath: filepath.Join(printerData, "config", "temperature_sensors.cfg"),
		SourceDir:    source,
		Service:      "klipper",
	}}
}

func (h *host) writeFragment(t *testing.T, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(h.paths.FragmentPath, []byte(content), 0o644))
}

func (h *host) readFragment(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(h.paths.FragmentPath)
	require.NoError(t, err)
	return string(data)
}

// snapshot captures the link state and file contents under the host tree so
// tests can assert that aborted runs mutate nothing.
func (h *host) snapshot(t *testing.T) map[string]string {
	t.Helper()
	state := map[string]string{}
	for _, root := range []string{h.paths.KlipperHome, h.paths.PrinterData} {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			switch {
			case d.IsDir():
				state[path] = "dir"
			case d.Type()&fs.ModeSymlink != 0:
				dest, err := os.Readlink(path)
				if err != nil {
					return err
				}
				state[path] = "link:" + dest
			default:
				data, err := os.ReadFile(path)
				if err != nil {
					return err
				}
				state[path] = "file:" + string(data)
			}
			return nil
		})
		require.NoError(t, err)
	}
	return state
}
