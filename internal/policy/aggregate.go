package policy

import (
	"github.com/datawire/ocibuild/pkg/python/pep440"

	"github.com/git-pkgs/spec0/internal/core"
)

// Line identifies a minor version line: every release sharing an epoch,
// major, and minor component. Support is tracked per line.
type Line struct {
	Epoch int
	Major int
	Minor int
}

// LineOf returns the minor line a version belongs to.
func LineOf(v *pep440.Version) Line {
	return Line{Epoch: v.Epoch, Major: v.Major(), Minor: v.Minor()}
}

// Less orders lines by epoch, then major, then minor.
func (l Line) Less(other Line) bool {
	if l.Epoch != other.Epoch {
		return l.Epoch < other.Epoch
	}
	if l.Major != other.Major {
		return l.Major < other.Major
	}
	return l.Minor < other.Minor
}

// String renders the line as a PEP 440 prefix, e.g. "1.26" or "2!3.0".
func (l Line) String() string {
	v := pep440.PublicVersion{Epoch: l.Epoch, Release: []int{l.Major, l.Minor}}
	return v.String()
}

// OldestPerLine reduces a release history to the earliest final release of
// each minor line. Pre-releases never seed or move a line. Input order is
// irrelevant; an empty or all-prerelease history yields an empty map.
func OldestPerLine(releases []core.Release) map[Line]core.Release {
	oldest := make(map[Line]core.Release)
	for _, r := range releases {
		if r.Version.IsPreRelease() {
			continue
		}
		line := LineOf(r.Version)
		if cur, ok := oldest[line]; !ok || r.Date.Before(cur.Date) {
			oldest[line] = r
		}
	}
	return oldest
}
