package installer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/klipper-extras/envsense/internal/cfgfile"
	"github.com/klipper-extras/envsense/internal/messages"
)

// Uninstall reverses an installation: it removes the symlinks this tool
// owns, strips the managed config section, and restarts the service.
// Links not pointing into the source directory are left alone.
func Uninstall(ctx context.Context, opts Options) error {
	inst, err := newInstaller(ctx, opts)
	if err != nil {
		return err
	}
	steps := []func() error{
		inst.preflightIdentity,
		inst.removeLinks,
		inst.stripFragment,
		inst.restartService,
	}
	return runSteps(steps)
}

// preflightIdentity is the uninstall preflight: same privilege and service
// checks as install, without requiring the source plugin files to still
// exist (the checkout may already be gone).
func (inst *installer) preflightIdentity() error {
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
	return nil
}

func (inst *installer) removeLinks() error {
	for _, plugin := range LinkSet() {
		linkPath := filepath.Join(inst.paths.ExtrasDir, plugin.File)
		info, err := inst.sys.Lstat(linkPath)
		if errors.Is(err, os.ErrNotExist) {
			_, _ = fmt.Fprintf(inst.out, messages.UninstallerLinkAbsentFmt, linkPath)
			continue
		}
		if err != nil {
			return fmt.Errorf(messages.InstallerLinkInspectFmt, linkPath, err)
		}
		if info.Mode()&os.ModeSymlink == 0 {
			_, _ = fmt.Fprintf(inst.out, messages.UninstallerLinkForeignFmt, linkPath)
			continue
		}
		target, err := inst.sys.Readlink(linkPath)
		if err != nil {
			return fmt.Errorf(messages.InstallerLinkReadFmt, linkPath, err)
		}
		if !inst.ownsTarget(target) {
			_, _ = fmt.Fprintf(inst.out, messages.UninstallerLinkForeignFmt, linkPath)
			continue
		}
		if inst.dryRun {
			_, _ = fmt.Fprintf(inst.out, messages.UninstallerLinkRemovedFmt, linkPath)
			continue
		}
		if err := inst.sys.Remove(linkPath); err != nil {
			return fmt.Errorf(messages.InstallerLinkRemoveFmt, linkPath, err)
		}
		_, _ = fmt.Fprintf(inst.out, messages.UninstallerLinkRemovedFmt, linkPath)
	}
	return nil
}

// ownsTarget reports whether a link target lives in the source directory.
func (inst *installer) ownsTarget(target string) bool {
	rel, err := filepath.Rel(inst.paths.SourceDir, target)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func (inst *installer) stripFragment() error {
	path := inst.paths.FragmentPath
	data, err := inst.sys.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			_, _ = fmt.Fprintf(inst.out, messages.UninstallerFragmentNoneFmt, path)
			return nil
		}
		return fmt.Errorf(messages.InstallerFragmentReadFmt, path, err)
	}

	stripped, found := cfgfile.RemoveBlock(string(data), ManagedBlockBegin, ManagedBlockEnd)
	if !found {
		_, _ = fmt.Fprintf(inst.out, messages.UninstallerFragmentNoneFmt, path)
		return nil
	}
	if inst.dryRun {
		_, _ = fmt.Fprintf(inst.out, messages.UninstallerFragmentFmt, path)
		return nil
	}
	if err := inst.sys.WriteFileAtomic(path, []byte(stripped), 0o644); err != nil {
		return fmt.Errorf(messages.InstallerFragmentWriteFmt, path, err)
	}
	_, _ = fmt.Fprintf(inst.out, messages.UninstallerFragmentFmt, path)
	return nil
}
