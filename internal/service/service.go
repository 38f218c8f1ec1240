// Package service controls the host's systemd unit.
package service

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/klipper-extras/envsense/internal/messages"
)

// Manager looks up and restarts the host service. The installer only ever
// needs these two operations; restarts are a boundary to an external
// process, not an in-process call.
type Manager interface {
	Exists(ctx context.Context, unit string) (bool, error)
	Restart(ctx context.Context, unit string) error
}

// runner executes a command and returns its combined output. Split out so
// tests can intercept systemctl invocations.
type runner func(ctx context.Context, name string, args ...string) ([]byte, error)

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// Systemd implements Manager with systemctl. Lookups run unprivileged;
// restarting the Klipper unit goes through sudo, matching how Klipper
// images grant service control to the printer user.
type Systemd struct {
	run runner
}

// NewSystemd returns a Manager backed by the local systemctl binary.
func NewSystemd() *Systemd {
	return &Systemd{run: execRunner}
}

// Exists reports whether unit is registered with systemd.
func (s *Systemd) Exists(ctx context.Context, unit string) (bool, error) {
	if strings.TrimSpace(unit) == "" {
		return false, errors.New(messages.ServiceUnitRequired)
	}
	out, err := s.run(ctx, "systemctl", "list-unit-files", "--no-legend", unitFile(unit))
	if err != nil {
		// systemctl exits non-zero when the pattern matches nothing.
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return false, nil
		}
		return false, fmt.Errorf(messages.ServiceLookupFailedFmt, unit, err)
	}
	return strings.TrimSpace(string(out)) != "", nil
}

// Restart restarts unit via sudo systemctl.
func (s *Systemd) Restart(ctx context.Context, unit string) error {
	if strings.TrimSpace(unit) == "" {
		return errors.New(messages.ServiceUnitRequired)
	}
	if out, err := s.run(ctx, "sudo", "systemctl", "restart", unitFile(unit)); err != nil {
		detail := strings.TrimSpace(string(out))
		if detail != "" {
			err = fmt.Errorf("%w: %s", err, detail)
		}
		return fmt.Errorf(messages.ServiceRestartFmt, unit, err)
	}
	return nil
}

// unitFile normalizes a unit name to its .service file name.
func unitFile(unit string) string {
	if strings.HasSuffix(unit, ".service") {
		return unit
	}
	return unit + ".service"
}
