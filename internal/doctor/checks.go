package doctor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/klipper-extras/envsense/internal/cfgfile"
	"github.com/klipper-extras/envsense/internal/config"
	"github.com/klipper-extras/envsense/internal/installer"
	"github.com/klipper-extras/envsense/internal/messages"
	"github.com/klipper-extras/envsense/internal/service"
)

// CheckStructure verifies the host directory layout the installer consumes.
func CheckStructure(paths *config.Paths) []Result {
	var results []Result
	dirs := []string{
		paths.KlipperHome,
		paths.ExtrasDir,
		filepath.Dir(paths.FragmentPath),
	}

	for _, dir := range dirs {
		info, err := os.Stat(dir)
		if err != nil {
			results = append(results, Result{
				Status:         StatusFail,
				CheckName:      messages.DoctorCheckNameStructure,
				Message:        fmt.Sprintf(messages.DoctorMissingDirFmt, dir),
				Recommendation: messages.DoctorMissingDirRecommend,
			})
			continue
		}
		if !info.IsDir() {
			results = append(results, Result{
				Status:         StatusFail,
				CheckName:      messages.DoctorCheckNameStructure,
				Message:        fmt.Sprintf(messages.DoctorPathNotDirFmt, dir),
				Recommendation: messages.DoctorPathNotDirRecommend,
			})
			continue
		}
		results = append(results, Result{
			Status:    StatusOK,
			CheckName: messages.DoctorCheckNameStructure,
			Message:   fmt.Sprintf(messages.DoctorDirExistsFmt, dir),
		})
	}
	return results
}

// CheckLinks verifies each plugin link exists, is a symlink, and points at a
// live file in the source directory.
func CheckLinks(paths *config.Paths) []Result {
	var results []Result
	for _, plugin := range installer.LinkSet() {
		linkPath := filepath.Join(paths.ExtrasDir, plugin.File)
		expected := filepath.Join(paths.SourceDir, plugin.File)
		results = append(results, checkLink(linkPath, expected))
	}
	return results
}

func checkLink(linkPath string, expected string) Result {
	info, err := os.Lstat(linkPath)
	if err != nil {
		return Result{
			Status:         StatusFail,
			CheckName:      messages.DoctorCheckNameLinks,
			Message:        fmt.Sprintf(messages.DoctorLinkMissingFmt, linkPath),
			Recommendation: messages.DoctorLinkMissingRecommend,
		}
	}
	if info.Mode()&os.ModeSymlink == 0 {
		return Result{
			Status:         StatusFail,
			CheckName:      messages.DoctorCheckNameLinks,
			Message:        fmt.Sprintf(messages.DoctorLinkNotSymlinkFmt, linkPath),
			Recommendation: messages.DoctorLinkNotSymlinkRecommend,
		}
	}
	dest, err := os.Readlink(linkPath)
	if err != nil {
		return Result{
			Status:         StatusFail,
			CheckName:      messages.DoctorCheckNameLinks,
			Message:        fmt.Sprintf(messages.DoctorLinkMissingFmt, linkPath),
			Recommendation: messages.DoctorLinkMissingRecommend,
		}
	}
	if dest != expected {
		return Result{
			Status:         StatusWarn,
			CheckName:      messages.DoctorCheckNameLinks,
			Message:        fmt.Sprintf(messages.DoctorLinkWrongTargetFmt, linkPath, dest, expected),
			Recommendation: messages.DoctorLinkMissingRecommend,
		}
	}
	if _, err := os.Stat(dest); err != nil {
		return Result{
			Status:         StatusFail,
			CheckName:      messages.DoctorCheckNameLinks,
			Message:        fmt.Sprintf(messages.DoctorLinkTargetGoneFmt, linkPath, dest),
			Recommendation: messages.DoctorLinkTargetGoneRecommend,
		}
	}
	return Result{
		Status:    StatusOK,
		CheckName: messages.DoctorCheckNameLinks,
		Message:   fmt.Sprintf(messages.DoctorLinkOKFmt, linkPath, dest),
	}
}

// CheckFragment verifies the sensor-config fragment registers the AHT21
// factory. A marker hit without a real section is reported as WARN because
// the installer's loose legacy detection would treat it as configured.
func CheckFragment(paths *config.Paths) []Result {
	path := paths.FragmentPath
	data, err := os.ReadFile(path)
	if err != nil {
		return []Result{{
			Status:         StatusWarn,
			CheckName:      messages.DoctorCheckNameFragment,
			Message:        fmt.Sprintf(messages.DoctorFragmentFileMissingFmt, path),
			Recommendation: messages.DoctorFragmentRecommend,
		}}
	}
	content := string(data)

	if cfgfile.HasSection(content, installer.MarkerSection) {
		return []Result{{
			Status:    StatusOK,
			CheckName: messages.DoctorCheckNameFragment,
			Message:   fmt.Sprintf(messages.DoctorFragmentOKFmt, installer.MarkerSection, path),
		}}
	}
	if cfgfile.ContainsMarker(content, installer.MarkerSection) {
		return []Result{{
			Status:         StatusWarn,
			CheckName:      messages.DoctorCheckNameFragment,
			Message:        fmt.Sprintf(messages.DoctorFragmentLooseFmt, installer.MarkerSection, path, installer.MarkerSection),
			Recommendation: messages.DoctorFragmentLooseRecommend,
		}}
	}
	return []Result{{
		Status:         StatusFail,
		CheckName:      messages.DoctorCheckNameFragment,
		Message:        fmt.Sprintf(messages.DoctorFragmentMissingFmt, installer.MarkerSection, path),
		Recommendation: messages.DoctorFragmentRecommend,
	}}
}

// CheckService verifies the host service is registered with systemd.
func CheckService(ctx context.Context, mgr service.Manager, unit string) []Result {
	exists, err := mgr.Exists(ctx, unit)
	if err != nil {
		return []Result{{
			Status:         StatusFail,
			CheckName:      messages.DoctorCheckNameService,
			Message:        fmt.Sprintf(messages.DoctorServiceLookupFailedFmt, err),
			Recommendation: messages.DoctorServiceRecommend,
		}}
	}
	if !exists {
		return []Result{{
			Status:         StatusFail,
			CheckName:      messages.DoctorCheckNameService,
			Message:        fmt.Sprintf(messages.DoctorServiceMissingFmt, unit),
			Recommendation: messages.DoctorServiceRecommend,
		}}
	}
	return []Result{{
		Status:    StatusOK,
		CheckName: messages.DoctorCheckNameService,
		Message:   fmt.Sprintf(messages.DoctorServiceOKFmt, unit),
	}}
}
