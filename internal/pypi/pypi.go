// Package pypi provides a release source backed by the pypi.org JSON API.
package pypi

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/git-pkgs/spec0/internal/core"
)

const (
	DefaultURL = "https://pypi.org"
	ecosystem  = "pypi"
)

func init() {
	core.Register(ecosystem, DefaultURL, func(baseURL string, client *core.Client) core.Source {
		return New(baseURL, client)
	})
}

// Source reads release histories from the PyPI JSON API.
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

type packageResponse struct {
	Releases map[string][]releaseFile `json:"releases"`
}

type releaseFile struct {
	UploadTime string `json:"upload_time_iso_8601"`
}

// Releases returns every version of a package dated by its earliest file
// upload, newest first. Versions without a dated file and versions that do
// not parse are skipped; a project page with no releases yields an empty
// slice.
func (s *Source) Releases(ctx context.Context, name string) ([]core.Release, error) {
	url := fmt.Sprintf("%s/pypi/%s/json", s.baseURL, name)

	var resp packageResponse
	if err := s.client.GetJSON(ctx, url, &resp); err != nil {
		if httpErr, ok := err.(*core.HTTPError); ok && httpErr.IsNotFound() {
			return nil, &core.NotFoundError{Ecosystem: ecosystem, Name: name}
		}
		return nil, err
	}

	releases := make([]core.Release, 0, len(resp.Releases))
	for version, files := range resp.Releases {
		uploaded := earliestUpload(files)
		if uploaded.IsZero() {
			continue
		}

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

// earliestUpload returns the oldest upload time among a version's files,
// or the zero time when no file carries one.
func earliestUpload(files []releaseFile) time.Time {
	var earliest time.Time
	for _, f := range files {
		if f.UploadTime == "" {
			continue
		}
		t, err := time.Parse(time.RFC3339Nano, f.UploadTime)
		if err != nil {
			continue
		}
		if earliest.IsZero() || t.Before(earliest) {
			earliest = t
		}
	}
	return earliest
}
