package main

import (
	"github.com/spf13/cobra"

	"github.com/klipper-extras/envsense/internal/installer"
	"github.com/klipper-extras/envsense/internal/messages"
)

var uninstallRun = installer.Uninstall

func newUninstallCmd(flags *rootFlags) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   messages.UninstallUse,
		Short: messages.UninstallShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := flags.resolvePaths()
			if err != nil {
				return err
			}
			return uninstallRun(cmd.Context(), installer.Options{
				Paths:   paths,
				Service: newServiceManager(),
				System:  installer.RealSystem{},
				DryRun:  dryRun,
				Out:     cmd.OutOrStdout(),
				ErrOut:  cmd.ErrOrStderr(),
			})
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, messages.FlagDryRunUsage)
	return cmd
}
