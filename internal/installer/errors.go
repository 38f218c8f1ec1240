package installer

import (
	"fmt"

	"github.com/klipper-extras/envsense/internal/messages"
)

// PrivilegeError reports an invocation under a disallowed identity. The
// installer must run as the user that owns the Klipper service, never root:
// root-owned links and config edits would be unreadable to the service and
// unremovable to the user.
type PrivilegeError struct {
	UID int
}

func (e *PrivilegeError) Error() string {
	return fmt.Sprintf(messages.InstallerRunningAsRootFmt, e.UID)
}

// HostNotFoundError reports that the host's managed service is not
// registered, which the installer treats as "Klipper is not installed".
type HostNotFoundError struct {
	Unit string
}

func (e *HostNotFoundError) Error() string {
	return fmt.Sprintf(messages.InstallerServiceMissingFmt, e.Unit)
}
