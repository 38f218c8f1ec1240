// Package doctor runs read-only health checks against an installation.
package doctor

// Status classifies a check outcome.
type Status string

const (
	// StatusOK means the check passed.
	StatusOK Status = "ok"
	// StatusWarn means the check found something suspect but not fatal.
	StatusWarn Status = "warn"
	// StatusFail means the check found a problem that breaks the installation.
	StatusFail Status = "fail"
)

// Result is a single check outcome.
type Result struct {
	Status         Status
	CheckName      string
	Message        string
	Recommendation string
}
