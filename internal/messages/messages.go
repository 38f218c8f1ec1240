// Package messages centralizes user-facing strings and error formats.
package messages

// Command metadata.
const (
	RootUse   = "envsense"
	RootShort = "Install Klipper environment-sensor plugins"
	RootLong  = "envsense links the aht21, ens160, and sgp30 Klipper extras into an\n" +
		"existing Klipper checkout, registers the AHT21 sensor factory in the\n" +
		"printer's temperature_sensors.cfg fragment, and restarts the Klipper\n" +
		"service so the new sensor types become available."

	InstallUse     = "install"
	InstallShort   = "Link the sensor plugins into Klipper and restart it"
	UninstallUse   = "uninstall"
	UninstallShort = "Remove the sensor plugin links and the managed config section"
	DoctorUse      = "doctor"
	DoctorShort    = "Check the health of an envsense installation"
	SetupUse       = "setup"
	SetupShort     = "Write the envsense settings file"
	MoonrakerUse   = "moonraker"
	MoonrakerShort = "Print the Moonraker update_manager section for this repo"

	VersionTemplate  = "{{.Version}}\n"
	VersionCommitFmt = "commit %s"
	VersionBuildFmt  = "built %s"
	VersionFullFmt   = "%s (%s)"
)

// Flag usage strings.
const (
	FlagKlipperUsage     = "path to the Klipper installation (default ~/klipper)"
	FlagPrinterDataUsage = "path to the printer_data directory (default ~/printer_data)"
	FlagServiceUsage     = "name of the Klipper systemd service"
	FlagSourceUsage      = "directory containing the plugin files to link"
	FlagDryRunUsage      = "report planned changes without touching anything"
	FlagForceUsage       = "replace regular files that block a plugin link without asking"
	FlagDefaultsUsage    = "write built-in defaults without prompting"
)

// Config resolution messages.
const (
	ConfigHomeDirFailedFmt     = "resolve home directory: %w"
	ConfigExpandPathFmt        = "expand path %s: %w"
	ConfigReadSettingsFmt      = "read settings %s: %w"
	ConfigParseSettingsFmt     = "parse settings %s: %w"
	ConfigEncodeSettingsFmt    = "encode settings: %w"
	ConfigWriteSettingsFmt     = "write settings %s: %w"
	ConfigCreateSettingsDirFmt = "create settings directory for %s: %w"
	ConfigSourceDirFailedFmt   = "resolve source directory: %w"
	ConfigSourceDirMissingFmt  = "source directory %s does not exist"
	ConfigSourceNotDirFmt      = "source path %s is not a directory"
	ConfigSettingsWrittenFmt   = "Wrote settings to %s\n"
)

// Installer messages.
const (
	InstallerPathsRequired   = "installer paths are required"
	InstallerSystemRequired  = "installer system is required"
	InstallerServiceRequired = "installer service manager is required"

	InstallerRunningAsRootFmt     = "refusing to run as root (uid %d); run as the user that owns the Klipper service"
	InstallerServiceMissingFmt    = "Klipper service %q is not registered with systemd; is Klipper installed?"
	InstallerServiceLookupFmt     = "look up service %q: %w"
	InstallerExtrasDirMissingFmt  = "Klipper extras directory %s does not exist; is %s a Klipper checkout?"
	InstallerExtrasDirStatFmt     = "check extras directory %s: %w"
	InstallerSourceFileMissingFmt = "plugin source %s is missing"
	InstallerSourceFileStatFmt    = "check plugin source %s: %w"

	InstallerLinkInspectFmt = "inspect %s: %w"
	InstallerLinkReadFmt    = "read link %s: %w"
	InstallerLinkRemoveFmt  = "remove %s: %w"
	InstallerLinkCreateFmt  = "link %s -> %s: %w"
	InstallerLinkBlockedFmt = "%s exists and is not a symlink; re-run with --force to replace it"
	InstallerLinkConfirmFmt = "%s exists and is not a symlink. Replace it?"
	InstallerLinkKeptFmt    = "Keeping %s\n"
	InstallerLinkOKFmt      = "Linked %s -> %s\n"
	InstallerLinkCurrentFmt = "Link %s already current\n"
	InstallerLinkPlanFmt    = "Would link %s -> %s\n"

	InstallerFragmentReadFmt    = "read config fragment %s: %w"
	InstallerFragmentWriteFmt   = "write config fragment %s: %w"
	InstallerFragmentCurrentFmt = "Sensor config already set in %s\n"
	InstallerFragmentLooseFmt   = "warning: found %q in %s outside a [%s] section; leaving the file untouched\n"
	InstallerFragmentUpdatedFmt = "Registered AHT21 sensor factory in %s\n"
	InstallerFragmentCreatedFmt = "Created config fragment %s\n"
	InstallerFragmentPreviewFmt = "Would update %s:\n%s"

	InstallerRestartingFmt    = "Restarting %s...\n"
	InstallerRestartFailedFmt = "restart service %q: %w"
	InstallerRestartSkipped   = "Dry run: skipping service restart\n"
	InstallerDone             = "Done. Klipper will pick up the sensors on restart.\n"

	UninstallerLinkRemovedFmt  = "Removed %s\n"
	UninstallerLinkForeignFmt  = "Skipping %s: not an envsense link\n"
	UninstallerLinkAbsentFmt   = "Link %s already absent\n"
	UninstallerFragmentFmt     = "Removed managed section from %s\n"
	UninstallerFragmentNoneFmt = "No managed section in %s\n"
)

// Service manager messages.
const (
	ServiceUnitRequired    = "unit name is required"
	ServiceLookupFailedFmt = "systemctl list-unit-files %s: %w"
	ServiceRestartFmt      = "systemctl restart %s: %w"
)

// Fragment scanner messages.
const (
	CfgfileReadFailedFmt = "scan config content: %w"
)

// Atomic write messages.
const (
	FsutilCreateTempFileFmt = "create temp file for %s: %w"
	FsutilSetPermissionsFmt = "set permissions for %s: %w"
	FsutilWriteTempFileFmt  = "write temp file for %s: %w"
	FsutilSyncTempFileFmt   = "sync temp file for %s: %w"
	FsutilCloseTempFileFmt  = "close temp file for %s: %w"
	FsutilRenameTempFileFmt = "rename temp file for %s: %w"
)

// Doctor messages.
const (
	DoctorHealthCheckFmt = "envsense health check for %s\n\n"

	DoctorCheckNameStructure = "structure"
	DoctorCheckNameLinks     = "links"
	DoctorCheckNameFragment  = "config"
	DoctorCheckNameService   = "service"

	DoctorStatusOKLabel   = "[ OK ]"
	DoctorStatusWarnLabel = "[WARN]"
	DoctorStatusFailLabel = "[FAIL]"
	DoctorResultLineFmt   = "%s %s: %s\n"
	DoctorRecommendFmt    = "       > %s\n"

	DoctorDirExistsFmt            = "%s exists"
	DoctorMissingDirFmt           = "%s is missing"
	DoctorMissingDirRecommend     = "Check the --klipper and --printer-data paths, or run envsense setup."
	DoctorPathNotDirFmt           = "%s exists but is not a directory"
	DoctorPathNotDirRecommend     = "Move or remove the blocking file and retry."
	DoctorLinkOKFmt               = "%s -> %s"
	DoctorLinkMissingFmt          = "%s is not installed"
	DoctorLinkMissingRecommend    = "Run envsense install."
	DoctorLinkNotSymlinkFmt       = "%s exists but is not a symlink"
	DoctorLinkNotSymlinkRecommend = "Remove the file and run envsense install, or use install --force."
	DoctorLinkWrongTargetFmt      = "%s points at %s, expected %s"
	DoctorLinkTargetGoneFmt       = "%s points at %s, which no longer exists"
	DoctorLinkTargetGoneRecommend = "Restore the plugin checkout or re-run envsense install from it."
	DoctorFragmentOKFmt           = "[%s] section present in %s"
	DoctorFragmentLooseFmt        = "%q appears in %s but no [%s] section was found"
	DoctorFragmentLooseRecommend  = "The marker may be in a comment; run envsense install to add the managed section."
	DoctorFragmentMissingFmt      = "no [%s] section in %s"
	DoctorFragmentFileMissingFmt  = "config fragment %s does not exist"
	DoctorFragmentRecommend       = "Run envsense install."
	DoctorServiceOKFmt            = "service %s is registered"
	DoctorServiceMissingFmt       = "service %s is not registered with systemd"
	DoctorServiceRecommend        = "Install Klipper first (e.g. via KIAUH), or pass --service."
	DoctorServiceLookupFailedFmt  = "service lookup failed: %v"

	DoctorFailureSummary = "Doctor found problems."
	DoctorFailureError   = "doctor checks failed"
	DoctorSuccessSummary = "Everything looks good."
)

// Setup messages.
const (
	SetupKlipperTitle     = "Klipper checkout"
	SetupKlipperDesc      = "Directory containing klippy/extras"
	SetupPrinterDataTitle = "printer_data directory"
	SetupPrinterDataDesc  = "Directory containing config/temperature_sensors.cfg"
	SetupServiceTitle     = "Klipper service name"
	SetupServiceDesc      = "systemd unit restarted after installation"
	SetupConfirmTitle     = "Write settings file?"
	SetupFormFailedFmt    = "setup form: %w"
	SetupAborted          = "Setup aborted; nothing written.\n"
)
