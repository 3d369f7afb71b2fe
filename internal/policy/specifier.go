package policy

import (
	"errors"
	"sort"

	"github.com/datawire/ocibuild/pkg/python/pep440"
	"github.com/git-pkgs/vers"

	"github.com/git-pkgs/spec0/internal/core"
)

// ErrEmptySupported is returned when a specifier is requested for an
// empty supported set.
var ErrEmptySupported = errors.New("empty supported set")

// Specifier renders a supported set as a version specifier string. The
// lower bound is the oldest supported line; with withUpper the specifier
// also excludes the next major of the newest supported line, e.g.
// ">=1.24,<2" or ">=1.24" without the upper bound.
func Specifier(supported map[Line]core.Release, withUpper bool) (string, error) {
	if len(supported) == 0 {
		return "", ErrEmptySupported
	}

	lines := make([]Line, 0, len(supported))
	for line := range supported {
		lines = append(lines, line)
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].Less(lines[j]) })

	min, max := lines[0], lines[len(lines)-1]
	spec := ">=" + pep440.PublicVersion{
		Epoch:   min.Epoch,
		Release: []int{min.Major, min.Minor},
	}.String()
	if withUpper {
		spec += ",<" + pep440.PublicVersion{
			Epoch:   max.Epoch,
			Release: []int{max.Major + 1},
		}.String()
	}
	return spec, nil
}

// SpecifierRange returns the supported set as a parsed range that can be
// matched against concrete versions.
func SpecifierRange(supported map[Line]core.Release, withUpper bool) (*vers.Range, error) {
	spec, err := Specifier(supported, withUpper)
	if err != nil {
		return nil, err
	}
	return vers.ParseNative(spec, "pypi")
}
