// Package github provides a release source backed by the GitHub releases
// API.
package github

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/git-pkgs/spec0/internal/core"
)

const (
	DefaultURL = "https://api.github.com"
	ecosystem  = "github"
)

func init() {
	core.Register(ecosystem, DefaultURL, func(baseURL string, client *core.Client) core.Source {
		return New(baseURL, client)
	})
}

// Source reads release histories from a GitHub repository's releases.
// Package names take the form "owner/repo".
type Source struct {
	baseURL string
	client  *core.Client
}

func New(baseURL string, client *core.Client) *Source {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	if client == nil {
		client = core.DefaultClient()
	}
	return &Source{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  client,
	}
}

func (s *Source) Ecosystem() string {
	return ecosystem
}

type releaseEntry struct {
	TagName     string `json:"tag_name"`
	PublishedAt string `json:"published_at"`
	Draft       bool   `json:"draft"`
	Prerelease  bool   `json:"prerelease"`
}

// Releases returns a repository's published releases dated by publish
// time, newest first. Drafts and releases flagged as prereleases are
// skipped, as are undated entries and tags that do not parse as versions.
// A leading v on the tag is ignored.
func (s *Source) Releases(ctx context.Context, name string) ([]core.Release, error) {
	owner, repo, ok := strings.Cut(name, "/")
	if !ok || owner == "" || repo == "" {
		return nil, fmt.Errorf("github package name must be owner/repo, got %q", name)
	}

	url := fmt.Sprintf("%s/repos/%s/%s/releases?per_page=100", s.baseURL, owner, repo)

	var entries []releaseEntry
	if err := s.client.GetJSON(ctx, url, &entries); err != nil {
		if httpErr, ok := err.(*core.HTTPError); ok && httpErr.IsNotFound() {
			return nil, &core.NotFoundError{Ecosystem: ecosystem, Name: name}
		}
		return nil, err
	}

	releases := make([]core.Release, 0, len(entries))
	for _, entry := range entries {
		if entry.Draft || entry.Prerelease || entry.PublishedAt == "" {
			continue
		}

		published, err := time.Parse(time.RFC3339, entry.PublishedAt)
		if err != nil {
			continue
		}

		release, err := core.NewRelease(stripTagPrefix(entry.TagName), published)
		if err != nil {
			core.Logger().Warn().
				Str("ecosystem", ecosystem).
				Str("package", name).
				Str("tag", entry.TagName).
				Err(err).
				Msg("skipping unparseable tag")
			continue
		}
		releases = append(releases, release)
	}

	core.SortReleasesDesc(releases)
	return releases, nil
}

func stripTagPrefix(tag string) string {
	if len(tag) > 0 && (tag[0] == 'v' || tag[0] == 'V') {
		return tag[1:]
	}
	return tag
}
