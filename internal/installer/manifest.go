package installer

import (
	"strings"

	"github.com/klipper-extras/envsense/internal/templates"
)

// Plugin describes one Klipper extra deployed by the installer.
type Plugin struct {
	// File is the filename linked into klippy/extras.
	File string
	// Section is the config section name that activates the plugin.
	Section string
	// Prefix is true when the plugin is declared with prefix-style
	// sections ([sgp30 chamber]) rather than a bare section ([aht21]).
	Prefix bool
}

// LinkSet is the fixed set of plugins made visible to Klipper. Order is the
// order links are reconciled and reported.
func LinkSet() []Plugin {
	return []Plugin{
		{File: "aht21.py", Section: "aht21"},
		{File: "ens160.py", Section: "ens160", Prefix: true},
		{File: "sgp30.py", Section: "sgp30", Prefix: true},
	}
}

// MarkerSection is the section whose presence marks the config fragment as
// already augmented. Only aht21 registers a sensor factory, so it is the one
// plugin that needs a bare section appended for Klipper to load it.
const MarkerSection = "aht21"

// Managed-block guards around the appended config section. Uninstall removes
// exactly the lines between them.
const (
	ManagedBlockBegin = "# >>> envsense managed >>>"
	ManagedBlockEnd   = "# <<< envsense managed <<<"
)

// managedBlock returns the guarded config section appended to the fragment.
func managedBlock() (string, error) {
	inner, err := templates.Read("aht21.cfg")
	if err != nil {
		return "", err
	}
	return ManagedBlockBegin + "\n" + strings.TrimRight(string(inner), "\n") + "\n" + ManagedBlockEnd, nil
}
