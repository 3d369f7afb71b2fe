// Package core provides shared types and the release-source registry.
package core

import (
	"sort"
	"time"

	"github.com/datawire/ocibuild/pkg/python/pep440"
)

// Release is a single published release of a package: a parsed PEP 440
// version and the UTC timestamp of its earliest published artifact.
type Release struct {
	Version *pep440.Version
	Date    time.Time
}

// NewRelease parses a version string into a Release. The date is
// normalized to UTC.
func NewRelease(version string, date time.Time) (Release, error) {
	v, err := pep440.ParseVersion(version)
	if err != nil {
		return Release{}, err
	}
	return Release{Version: v, Date: date.UTC()}, nil
}

// SortReleasesDesc orders releases newest-first by date, breaking date ties
// by version so the order is deterministic. Sources return this order.
func SortReleasesDesc(releases []Release) {
	sort.Slice(releases, func(i, j int) bool {
		if !releases[i].Date.Equal(releases[j].Date) {
			return releases[i].Date.After(releases[j].Date)
		}
		return releases[i].Version.Cmp(*releases[j].Version) > 0
	})
}
