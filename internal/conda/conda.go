// Package conda provides a release source backed by conda channel
// repodata.
package conda

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/git-pkgs/spec0/internal/core"
)

const (
	DefaultURL     = "https://conda.anaconda.org"
	DefaultChannel = "conda-forge"
	ecosystem      = "conda"
)

// DefaultPlatforms are the repodata subdirectories consulted when none
// are configured. noarch rides along because pure-Python packages only
// publish there.
var DefaultPlatforms = []string{"linux-64", "noarch"}

func init() {
	core.Register(ecosystem, DefaultURL, func(baseURL string, client *core.Client) core.Source {
		return New(baseURL, client)
	})
}

// Source reads release histories from a conda channel's repodata files.
type Source struct {
	baseURL   string
	channel   string
	platforms []string
	client    *core.Client
}

func New(baseURL string, client *core.Client) *Source {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	if client == nil {
		client = core.DefaultClient()
	}
	return &Source{
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		channel:   DefaultChannel,
		platforms: append([]string(nil), DefaultPlatforms...),
		client:    client,
	}
}

// WithChannel returns a copy of the Source that reads from the given
// channel when the package name does not carry one.
func (s *Source) WithChannel(channel string) *Source {
	return &Source{
		baseURL:   s.baseURL,
		channel:   channel,
		platforms: s.platforms,
		client:    s.client,
	}
}

// WithPlatforms returns a copy of the Source that consults the given
// platform subdirectories.
func (s *Source) WithPlatforms(platforms ...string) *Source {
	return &Source{
		baseURL:   s.baseURL,
		channel:   s.channel,
		platforms: platforms,
		client:    s.client,
	}
}

func (s *Source) Ecosystem() string {
	return ecosystem
}

type repodataResponse struct {
	Packages      map[string]repodataEntry `json:"packages"`
	PackagesConda map[string]repodataEntry `json:"packages.conda"`
}

type repodataEntry struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	Timestamp int64  `json:"timestamp"` // milliseconds
}

// parsePackageName parses a package name that may include a channel prefix.
// Format: "channel/name" or just "name" (uses the configured channel).
func parsePackageName(name string) (channel, pkgName string) {
	parts := strings.SplitN(name, "/", 2)
	if len(parts) == 2 {
		return parts[0], parts[1]
	}
	return "", name
}

// Releases returns every version of a package dated by its earliest build
// across the configured platforms, newest first. Builds without a
// timestamp and versions that do not parse are skipped. A platform whose
// repodata is missing is treated as empty; when no platform yields any
// build of the package the result is a NotFoundError.
func (s *Source) Releases(ctx context.Context, name string) ([]core.Release, error) {
	channel, pkgName := parsePackageName(name)
	if channel == "" {
		channel = s.channel
	}

	byPlatform := make([]map[string]time.Time, len(s.platforms))

	g, gctx := errgroup.WithContext(ctx)
	for i, platform := range s.platforms {
		g.Go(func() error {
			url := fmt.Sprintf("%s/%s/%s/repodata.json", s.baseURL, channel, platform)

			var resp repodataResponse
			if err := s.client.GetJSON(gctx, url, &resp); err != nil {
				if httpErr, ok := err.(*core.HTTPError); ok && httpErr.IsNotFound() {
					core.Logger().Debug().
						Str("ecosystem", ecosystem).
						Str("channel", channel).
						Str("platform", platform).
						Msg("no repodata for platform")
					return nil
				}
				return err
			}

			byPlatform[i] = oldestPerVersion(pkgName, &resp)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	oldest := make(map[string]time.Time)
	for _, versions := range byPlatform {
		for version, uploaded := range versions {
			if cur, ok := oldest[version]; !ok || uploaded.Before(cur) {
				oldest[version] = uploaded
			}
		}
	}
	if len(oldest) == 0 {
		return nil, &core.NotFoundError{Ecosystem: ecosystem, Name: name}
	}

	releases := make([]core.Release, 0, len(oldest))
	for version, uploaded := range oldest {
		release, err := core.NewRelease(version, uploaded)
		if err != nil {
			core.Logger().Warn().
				Str("ecosystem", ecosystem).
				Str("package", name).
				Str("version", version).
				Err(err).
				Msg("skipping unparseable version")
			continue
		}
		releases = append(releases, release)
	}

	core.SortReleasesDesc(releases)
	return releases, nil
}

// oldestPerVersion scans one platform's repodata for builds of a package
// and keeps the earliest timestamp per version.
func oldestPerVersion(pkgName string, resp *repodataResponse) map[string]time.Time {
	oldest := make(map[string]time.Time)
	scan := func(entries map[string]repodataEntry) {
		for _, entry := range entries {
			if entry.Name != pkgName || entry.Timestamp == 0 {
				continue
			}
			uploaded := time.UnixMilli(entry.Timestamp).UTC()
			if cur, ok := oldest[entry.Version]; !ok || uploaded.Before(cur) {
				oldest[entry.Version] = uploaded
			}
		}
	}
	scan(resp.Packages)
	scan(resp.PackagesConda)
	return oldest
}
