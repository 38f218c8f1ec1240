package main

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/klipper-extras/envsense/internal/config"
	"github.com/klipper-extras/envsense/internal/messages"
)

// Seams for tests.
var (
	runForm      = func(form *huh.Form) error { return form.Run() }
	saveSettings = config.SaveSettings
)

func newSetupCmd() *cobra.Command {
	var useDefaults bool
	cmd := &cobra.Command{
		Use:   messages.SetupUse,
		Short: messages.SetupShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			settingsPath, err := settingsPathFunc()
			if err != nil {
				return err
			}
			settings, err := config.LoadSettings(settingsPath)
			if err != nil {
				return err
			}
			applySetupDefaults(settings)

			if !useDefaults {
				confirmed, err := runSetupForm(settings)
				if err != nil {
					return err
				}
				if !confirmed {
					_, _ = fmt.Fprint(cmd.OutOrStdout(), messages.SetupAborted)
					return nil
				}
			}

			if err := saveSettings(settingsPath, settings); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), messages.ConfigSettingsWrittenFmt, settingsPath)
			return nil
		},
	}
	cmd.Flags().BoolVar(&useDefaults, "defaults", false, messages.FlagDefaultsUsage)
	return cmd
}

// applySetupDefaults fills unset fields so the form starts from the same
// defaults the resolver would use.
func applySetupDefaults(settings *config.Settings) {
	if settings.KlipperHome == "" {
		settings.KlipperHome = "~/klipper"
	}
	if settings.PrinterData == "" {
		settings.PrinterData = "~/printer_data"
	}
	if settings.Service == "" {
		settings.Service = config.DefaultService
	}
}

// runSetupForm edits settings in place and reports whether the user
// confirmed writing them.
func runSetupForm(settings *config.Settings) (bool, error) {
	confirmed := true
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(messages.SetupKlipperTitle).
				Description(messages.SetupKlipperDesc).
				Value(&settings.KlipperHome),
			huh.NewInput().
				Title(messages.SetupPrinterDataTitle).
				Description(messages.SetupPrinterDataDesc).
				Value(&settings.PrinterData),
			huh.NewInput().
				Title(messages.SetupServiceTitle).
				Description(messages.SetupServiceDesc).
				Value(&settings.Service),
			huh.NewConfirm().
				Title(messages.SetupConfirmTitle).
				Value(&confirmed),
		),
	)
	if err := runForm(form); err != nil {
		return false, fmt.Errorf(messages.SetupFormFailedFmt, err)
	}
	return confirmed, nil
}
