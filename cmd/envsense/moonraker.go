package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/klipper-extras/envsense/internal/messages"
	"github.com/klipper-extras/envsense/internal/templates"
)

func newMoonrakerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   messages.MoonrakerUse,
		Short: messages.MoonrakerShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			stanza, err := templates.Read("moonraker.cfg")
			if err != nil {
				return err
			}
			_, _ = fmt.Fprint(cmd.OutOrStdout(), string(stanza))
			return nil
		},
	}
}
