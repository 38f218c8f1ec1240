package installer

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runUninstall(t *testing.T, h *host, mutate func(*Options)) (*fakeManager, *bytes.Buffer, error) {
	t.Helper()
	mgr := &fakeManager{exists: true}
	var out bytes.Buffer
	opts := Options{
		Paths:   h.paths,
		Service: mgr,
		System:  testSystem{uid: 1000},
		Out:     &out,
		ErrOut:  &out,
	}
	if mutate != nil {
		mutate(&opts)
	}
	err := Uninstall(context.Background(), opts)
	return mgr, &out, err
}

func TestUninstall_ReversesInstall(t *testing.T) {
	h := newHost(t)
	original := "[sgp30 chamber]\ni2c_bus: i2c.1\n"
	h.writeFragment(t, original)

	_, _, _, err := runInstall(t, h, nil)
	require.NoError(t, err)

	mgr, _, err := runUninstall(t, h, nil)
	require.NoError(t, err)

	for _, plugin := range LinkSet() {
		_, err := os.Lstat(filepath.Join(h.paths.ExtrasDir, plugin.File))
		assert.True(t, os.IsNotExist(err), "link for %s should be gone", plugin.File)
	}
	assert.Equal(t, original, h.readFragment(t), "fragment must return to its pre-install bytes")
	assert.Equal(t, 1, mgr.restarts)
}

func TestUninstall_LeavesForeignLinks(t *testing.T) {
	h := newHost(t)
	h.writeFragment(t, "")
	foreign := filepath.Join(t.TempDir(), "aht21.py")
	require.NoError(t, os.WriteFile(foreign, []byte(""), 0o644))
	linkPath := filepath.Join(h.paths.ExtrasDir, "aht21.py")
	require.NoError(t, os.Symlink(foreign, linkPath))

	_, out, err := runUninstall(t, h, nil)
	require.NoError(t, err)

	dest, err := os.Readlink(linkPath)
	require.NoError(t, err)
	assert.Equal(t, foreign, dest, "links owned by other tools must survive")
	assert.Contains(t, out.String(), "not an envsense link")
}

func TestUninstall_LeavesForeignFiles(t *testing.T) {
	h := newHost(t)
	h.writeFragment(t, "")
	linkPath := filepath.Join(h.paths.ExtrasDir, "sgp30.py")
	require.NoError(t, os.WriteFile(linkPath, []byte("local copy"), 0o644))

	_, _, err := runUninstall(t, h, nil)
	require.NoError(t, err)

	data, err := os.ReadFile(linkPath)
	require.NoError(t, err)
	assert.Equal(t, "local copy", string(data))
}

func TestUninstall_NoManagedSectionIsNoop(t *testing.T) {
	h := newHost(t)
	original := "[aht21]\n"
	h.writeFragment(t, original)

	_, out, err := runUninstall(t, h, nil)
	require.NoError(t, err)

	assert.Equal(t, original, h.readFragment(t), "hand-written sections are not ours to remove")
	assert.Contains(t, out.String(), "No managed section")
}

func TestUninstall_MissingFragment(t *testing.T) {
	h := newHost(t)
	_, out, err := runUninstall(t, h, nil)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "No managed section")
}

func TestUninstall_AsRootAborts(t *testing.T) {
	h := newHost(t)
	mgr, _, err := runUninstall(t, h, func(opts *Options) {
		opts.System = testSystem{uid: 0}
	})
	var privErr *PrivilegeError
	require.ErrorAs(t, err, &privErr)
	assert.Zero(t, mgr.restarts)
}

func TestUninstall_DryRunMutatesNothing(t *testing.T) {
	h := newHost(t)
	h.writeFragment(t, "")
	_, _, _, err := runInstall(t, h, nil)
	require.NoError(t, err)
	before := h.snapshot(t)

	mgr, _, err := runUninstall(t, h, func(opts *Options) { opts.DryRun = true })
	require.NoError(t, err)
	assert.Equal(t, before, h.snapshot(t))
	assert.Zero(t, mgr.restarts)
}
