package policy

import (
	"sort"
	"time"

	"github.com/git-pkgs/spec0/internal/core"
)

// ReleaseSupport is one supported minor line in a report: the version
// that opened the line, when it was released, and when it leaves support.
type ReleaseSupport struct {
	Version     string    `json:"version"`
	ReleaseDate time.Time `json:"release-date"`
	DropDate    time.Time `json:"drop-date"`
}

// Report is the support table for one package, newest line first.
type Report struct {
	Package  string           `json:"package"`
	Releases []ReleaseSupport `json:"releases"`
}

// NewReport builds the support table for a supported set. Drop dates are
// computed for every line, including the newest one kept past its window.
func NewReport(p DropPolicy, pkg string, supported map[Line]core.Release) *Report {
	lines := make([]Line, 0, len(supported))
	for line := range supported {
		lines = append(lines, line)
	}
	sort.Slice(lines, func(i, j int) bool { return lines[j].Less(lines[i]) })

	report := &Report{Package: pkg, Releases: make([]ReleaseSupport, 0, len(lines))}
	for _, line := range lines {
		release := supported[line]
		report.Releases = append(report.Releases, ReleaseSupport{
			Version:     release.Version.String(),
			ReleaseDate: release.Date,
			DropDate:    p.DropDate(pkg, release),
		})
	}
	return report
}
