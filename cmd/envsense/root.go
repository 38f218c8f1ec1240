package main

import (
	"github.com/spf13/cobra"

	"github.com/klipper-extras/envsense/internal/config"
	"github.com/klipper-extras/envsense/internal/messages"
	"github.com/klipper-extras/envsense/internal/service"
)

// Seams for tests.
var (
	settingsPathFunc  = config.SettingsPath
	newServiceManager = func() service.Manager { return service.NewSystemd() }
)

// rootFlags holds the path overrides shared by every command.
type rootFlags struct {
	klipper     string
	printerData string
	service     string
	source      string
}

// resolvePaths loads the settings file and applies the override precedence.
func (f *rootFlags) resolvePaths() (*config.Paths, error) {
	settingsPath, err := settingsPathFunc()
	if err != nil {
		return nil, err
	}
	settings, err := config.LoadSettings(settingsPath)
	if err != nil {
		return nil, err
	}
	return config.Resolve(config.Overrides{
		KlipperHome: f.klipper,
		PrinterData: f.printerData,
		Service:     f.service,
		SourceDir:   f.source,
	}, settings)
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	installOpts := &installFlags{}

	cmd := &cobra.Command{
		Use:           messages.RootUse,
		Short:         messages.RootShort,
		Long:          messages.RootLong,
		SilenceUsage:  true,
		SilenceErrors: true,
		// Bare invocation installs; this is the one-command surface the
		// Moonraker update channel re-runs.
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInstall(cmd, flags, installOpts)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&flags.klipper, "klipper", "k", "", messages.FlagKlipperUsage)
	pf.StringVar(&flags.printerData, "printer-data", "", messages.FlagPrinterDataUsage)
	pf.StringVar(&flags.service, "service", "", messages.FlagServiceUsage)
	pf.StringVar(&flags.source, "source", "", messages.FlagSourceUsage)

	cmd.Flags().BoolVar(&installOpts.dryRun, "dry-run", false, messages.FlagDryRunUsage)
	cmd.Flags().BoolVar(&installOpts.force, "force", false, messages.FlagForceUsage)

	cmd.AddCommand(newInstallCmd(flags))
	cmd.AddCommand(newUninstallCmd(flags))
	cmd.AddCommand(newDoctorCmd(flags))
	cmd.AddCommand(newSetupCmd())
	cmd.AddCommand(newMoonrakerCmd())

	return cmd
}
