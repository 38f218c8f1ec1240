// Package installer deploys the sensor plugins into a Klipper installation:
// it symlinks the plugin files into klippy/extras, registers the AHT21
// sensor factory in the printer's sensor-config fragment, and restarts the
// Klipper service. Stages run in order and fail fast; completed stages are
// never rolled back.
package installer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/aymanbagabas/go-udiff"

	"github.com/klipper-extras/envsense/internal/cfgfile"
	"github.com/klipper-extras/envsense/internal/config"
	"github.com/klipper-extras/envsense/internal/messages"
	"github.com/klipper-extras/envsense/internal/service"
)

// ConfirmFunc asks whether to replace a regular file blocking a link path.
type ConfirmFunc func(path string) (bool, error)

// Options controls installer behavior.
type Options struct {
	Paths   *config.Paths
	Service service.Manager
	System  System
	DryRun  bool
	Force   bool
	Confirm ConfirmFunc
	Out     io.Writer
	ErrOut  io.Writer
}

type installer struct {
	ctx     context.Context
	paths   *config.Paths
	svc     service.Manager
	sys     System
	dryRun  bool
	force   bool
	confirm ConfirmFunc
	out     io.Writer
	errOut  io.Writer
}

// Run executes the install stages against the resolved paths.
func Run(ctx context.Context, opts Options) error {
	inst, err := newInstaller(ctx, opts)
	if err != nil {
		return err
	}
	steps := []func() error{
		inst.preflight,
		inst.installLinks,
		inst.augmentFragment,
		inst.restartService,
	}
	if err := runSteps(steps); err != nil {
		return err
	}
	if !inst.dryRun {
		_, _ = fmt.Fprint(inst.out, messages.InstallerDone)
	}
	return nil
}

func newInstaller(ctx context.Context, opts Options) (*installer, error) {
	if opts.Paths == nil {
		return nil, errors.New(messages.InstallerPathsRequired)
	}
	if opts.System == nil {
		return nil, errors.New(messages.InstallerSystemRequired)
	}
	if opts.Service == nil {
		return nil, errors.New(messages.InstallerServiceRequired)
	}
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	errOut := opts.ErrOut
	if errOut == nil {
		errOut = os.Stderr
	}
	return &installer{
		ctx:     ctx,
		paths:   opts.Paths,
		svc:     opts.Service,
		sys:     opts.System,
		dryRun:  opts.DryRun,
		force:   opts.Force,
		confirm: opts.Confirm,
		out:     out,
		errOut:  errOut,
	}, nil
}

func runSteps(steps []func() error) error {
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

// preflight verifies identity, the host service, and the filesystem layout
// before anything is mutated.
func (inst *installer) preflight() error {
	if uid := inst.sys.Geteuid(); uid == 0 {
		return &PrivilegeError{UID: uid}
	}

	exists, err := inst.svc.Exists(inst.ctx, inst.paths.Service)
	if err != nil {
		return fmt.Errorf(messages.InstallerServiceLookupFmt, inst.paths.Service, err)
	}
	if !exists {
		return &HostNotFoundError{Unit: inst.paths.Service}
	}

	info, err := inst.sys.Stat(inst.paths.ExtrasDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf(messages.InstallerExtrasDirMissingFmt, inst.paths.ExtrasDir, inst.paths.KlipperHome)
		}
		return fmt.Errorf(messages.InstallerExtrasDirStatFmt, inst.paths.ExtrasDir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf(messages.InstallerExtrasDirMissingFmt, inst.paths.ExtrasDir, inst.paths.KlipperHome)
	}

	for _, plugin := range LinkSet() {
		src := filepath.Join(inst.paths.SourceDir, plugin.File)
		if _, err := inst.sys.Stat(src); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf(messages.InstallerSourceFileMissingFmt, src)
			}
			return fmt.Errorf(messages.InstallerSourceFileStatFmt, src, err)
		}
	}
	return nil
}

// installLinks reconciles each manifest entry to a symlink in the extras
// directory. Re-running produces the same link state regardless of prior
// runs.
func (inst *installer) installLinks() error {
	for _, plugin := range LinkSet() {
		target := filepath.Join(inst.paths.SourceDir, plugin.File)
		linkPath := filepath.Join(inst.paths.ExtrasDir, plugin.File)
		if err := inst.reconcileLink(linkPath, target); err != nil {
			return err
		}
	}
	return nil
}

func (inst *installer) reconcileLink(linkPath string, target string) error {
	info, err := inst.sys.Lstat(linkPath)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return inst.createLink(linkPath, target)
	case err != nil:
		return fmt.Errorf(messages.InstallerLinkInspectFmt, linkPath, err)
	}

	if info.Mode()&os.ModeSymlink != 0 {
		existing, err := inst.sys.Readlink(linkPath)
		if err != nil {
			return fmt.Errorf(messages.InstallerLinkReadFmt, linkPath, err)
		}
		if existing == target {
			_, _ = fmt.Fprintf(inst.out, messages.InstallerLinkCurrentFmt, linkPath)
			return nil
		}
		return inst.replaceLink(linkPath, target)
	}

	// A regular file or directory is squatting on the link path. Only
	// replace it with explicit consent.
	if !inst.force {
		if inst.confirm == nil {
			return fmt.Errorf(messages.InstallerLinkBlockedFmt, linkPath)
		}
		replace, err := inst.confirm(linkPath)
		if err != nil {
			return err
		}
		if !replace {
			_, _ = fmt.Fprintf(inst.out, messages.InstallerLinkKeptFmt, linkPath)
			return nil
		}
	}
	return inst.replaceLink(linkPath, target)
}

func (inst *installer) createLink(linkPath string, target string) error {
	if inst.dryRun {
		_, _ = fmt.Fprintf(inst.out, messages.InstallerLinkPlanFmt, linkPath, target)
		return nil
	}
	if err := inst.sys.Symlink(target, linkPath); err != nil {
		return fmt.Errorf(messages.InstallerLinkCreateFmt, linkPath, target, err)
	}
	_, _ = fmt.Fprintf(inst.out, messages.InstallerLinkOKFmt, linkPath, target)
	return nil
}

func (inst *installer) replaceLink(linkPath string, target string) error {
	if inst.dryRun {
		_, _ = fmt.Fprintf(inst.out, messages.InstallerLinkPlanFmt, linkPath, target)
		return nil
	}
	if err := inst.sys.Remove(linkPath); err != nil {
		return fmt.Errorf(messages.InstallerLinkRemoveFmt, linkPath, err)
	}
	return inst.createLink(linkPath, target)
}

// augmentFragment appends the managed [aht21] section to the sensor-config
// fragment unless it is already configured. Detection prefers an exact
// section match; a bare marker hit anywhere in the file also suppresses the
// append but is reported as loose.
func (inst *installer) augmentFragment() error {
	path := inst.paths.FragmentPath
	existed := true
	data, err := inst.sys.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf(messages.InstallerFragmentReadFmt, path, err)
		}
		existed = false
	}
	content := string(data)

	if cfgfile.HasSection(content, MarkerSection) {
		_, _ = fmt.Fprintf(inst.out, messages.InstallerFragmentCurrentFmt, path)
		return nil
	}
	if cfgfile.ContainsMarker(content, MarkerSection) {
		_, _ = fmt.Fprintf(inst.errOut, messages.InstallerFragmentLooseFmt, MarkerSection, path, MarkerSection)
		return nil
	}

	block, err := managedBlock()
	if err != nil {
		return err
	}
	updated := cfgfile.AppendBlock(content, block)

	if inst.dryRun {
		diff := udiff.Unified(path, path, content, updated)
		_, _ = fmt.Fprintf(inst.out, messages.InstallerFragmentPreviewFmt, path, diff)
		return nil
	}

	if err := inst.sys.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf(messages.InstallerFragmentWriteFmt, path, err)
	}
	if err := inst.sys.WriteFileAtomic(path, []byte(updated), 0o644); err != nil {
		return fmt.Errorf(messages.InstallerFragmentWriteFmt, path, err)
	}
	if !existed {
		_, _ = fmt.Fprintf(inst.out, messages.InstallerFragmentCreatedFmt, path)
	}
	_, _ = fmt.Fprintf(inst.out, messages.InstallerFragmentUpdatedFmt, path)
	return nil
}

// restartService asks systemd to restart the host so it picks up the linked
// plugins and the appended config.
func (inst *installer) restartService() error {
	if inst.dryRun {
		_, _ = fmt.Fprint(inst.out, messages.InstallerRestartSkipped)
		return nil
	}
	_, _ = fmt.Fprintf(inst.out, messages.InstallerRestartingFmt, inst.paths.Service)
	if err := inst.svc.Restart(inst.ctx, inst.paths.Service); err != nil {
		return fmt.Errorf(messages.InstallerRestartFailedFmt, inst.paths.Service, err)
	}
	return nil
}
