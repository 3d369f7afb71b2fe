package policy

import (
	"errors"
	"fmt"
	"time"

	"github.com/facebookgo/clock"

	"github.com/git-pkgs/spec0/internal/core"
)

const (
	// DefaultMonths is the standard support window.
	DefaultMonths = 24
	// PythonMonths is the longer window the standard gives CPython itself.
	PythonMonths = 36
)

// ErrNoReleases is returned when a package has no final releases to
// evaluate, so no "newest supported line" can be established.
var ErrNoReleases = errors.New("no releases")

// Window configures how long a minor line stays supported.
type Window struct {
	// Months is the support window applied to every package.
	// Zero means DefaultMonths.
	Months int

	// PythonOverride extends the window to PythonMonths for the package
	// named "python".
	PythonOverride bool

	// Clock supplies "now" for support decisions. Nil means wall clock.
	Clock clock.Clock
}

// DefaultWindow is the standard policy configuration: 24 months, with the
// python override enabled.
func DefaultWindow() Window {
	return Window{Months: DefaultMonths, PythonOverride: true}
}

// MonthsFor returns the window in months that applies to a package.
func (w Window) MonthsFor(pkg string) int {
	if w.PythonOverride && pkg == "python" {
		return PythonMonths
	}
	if w.Months == 0 {
		return DefaultMonths
	}
	return w.Months
}

// Now returns the current UTC time from the configured clock.
func (w Window) Now() time.Time {
	if w.Clock == nil {
		return time.Now().UTC()
	}
	return w.Clock.Now().UTC()
}

// DropPolicy computes the timestamp after which a minor line rooted at a
// release is no longer supported.
type DropPolicy interface {
	DropDate(pkg string, r core.Release) time.Time

	// Now is the policy's notion of the current time, so callers and
	// tests share one clock.
	Now() time.Time
}

// StrictDate drops a minor line exactly window-months after its first
// final release.
type StrictDate struct {
	Window
}

func (p StrictDate) DropDate(pkg string, r core.Release) time.Time {
	return ShiftMonths(r.Date, p.MonthsFor(pkg))
}

// QuarterAligned drops a minor line at the start of the calendar quarter
// following the strict drop date, so published support tables land on
// predictable boundaries.
type QuarterAligned struct {
	Window
}

func (p QuarterAligned) DropDate(pkg string, r core.Release) time.Time {
	return QuarterOf(ShiftMonths(r.Date, p.MonthsFor(pkg))).Next().Start()
}

// Supported returns the minor lines of a package that are still inside
// their support window at now, keyed by line, each mapped to the line's
// oldest final release. The newest line is always kept, whatever its age.
func Supported(p DropPolicy, pkg string, releases []core.Release, now time.Time) (map[Line]core.Release, error) {
	oldest := OldestPerLine(releases)
	if len(oldest) == 0 {
		return nil, fmt.Errorf("%s: %w", pkg, ErrNoReleases)
	}

	newest := newestLine(oldest)
	supported := make(map[Line]core.Release, len(oldest))
	for line, release := range oldest {
		if line == newest || now.Before(p.DropDate(pkg, release)) {
			supported[line] = release
		}
	}
	return supported, nil
}

func newestLine(lines map[Line]core.Release) Line {
	var newest Line
	first := true
	for line := range lines {
		if first || newest.Less(line) {
			newest = line
			first = false
		}
	}
	return newest
}
