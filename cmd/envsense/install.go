package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/klipper-extras/envsense/internal/installer"
	"github.com/klipper-extras/envsense/internal/messages"
)

var installRun = installer.Run

type installFlags struct {
	dryRun bool
	force  bool
}

func newInstallCmd(flags *rootFlags) *cobra.Command {
	opts := &installFlags{}
	cmd := &cobra.Command{
		Use:   messages.InstallUse,
		Short: messages.InstallShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInstall(cmd, flags, opts)
		},
	}
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, messages.FlagDryRunUsage)
	cmd.Flags().BoolVar(&opts.force, "force", false, messages.FlagForceUsage)
	return cmd
}

func runInstall(cmd *cobra.Command, flags *rootFlags, opts *installFlags) error {
	paths, err := flags.resolvePaths()
	if err != nil {
		return err
	}
	confirm := func(path string) (bool, error) {
		return promptYesNo(cmd.InOrStdin(), cmd.OutOrStdout(),
			fmt.Sprintf(messages.InstallerLinkConfirmFmt, path), false)
	}
	return installRun(cmd.Context(), installer.Options{
		Paths:   paths,
		Service: newServiceManager(),
		System:  installer.RealSystem{},
		DryRun:  opts.dryRun,
		Force:   opts.force,
		Confirm: confirm,
		Out:     cmd.OutOrStdout(),
		ErrOut:  cmd.ErrOrStderr(),
	})
}
