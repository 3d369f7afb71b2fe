// Package spec0 computes which minor version lines of a package are still
// supported under a time-based deprecation policy, following the SPEC0
// community standard: a minor line stays supported for a fixed number of
// months after its first final release, and the newest line never drops.
//
// Release histories come from pluggable sources (PyPI, conda channels,
// GitHub releases) with a unified interface.
//
// Basic usage:
//
//	import (
//		"context"
//		"github.com/git-pkgs/spec0"
//		_ "github.com/git-pkgs/spec0/internal/pypi"
//	)
//
//	src, err := spec0.New("pypi", "", nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	policy := spec0.StrictDate{Window: spec0.DefaultWindow()}
//	report, err := spec0.Evaluate(context.Background(), src, policy, "numpy")
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, r := range report.Releases {
//		fmt.Println(r.Version, r.DropDate)
//	}
//
// To automatically import all supported ecosystems, use the all subpackage:
//
//	import (
//		"github.com/git-pkgs/spec0"
//		_ "github.com/git-pkgs/spec0/all"
//	)
package spec0

import (
	"context"
	"sync"
	"time"

	"github.com/git-pkgs/purl"
	"github.com/git-pkgs/vers"
	"github.com/rs/zerolog"

	"github.com/git-pkgs/spec0/client"
	"github.com/git-pkgs/spec0/internal/core"
	"github.com/git-pkgs/spec0/internal/policy"
)

const defaultConcurrency = 15

// Re-export types from internal/core
type (
	// Source is the interface implemented by all release source clients.
	Source = core.Source

	// Release is one published version of a package and its release date.
	Release = core.Release
)

// Re-export types from internal/policy
type (
	// Line identifies a minor version line by epoch, major, and minor.
	Line = policy.Line

	// Window configures the support window length and the python override.
	Window = policy.Window

	// DropPolicy computes when a minor line leaves support.
	DropPolicy = policy.DropPolicy

	// StrictDate drops a line exactly window-months after its first final
	// release.
	StrictDate = policy.StrictDate

	// QuarterAligned drops a line at the start of the calendar quarter
	// following the strict drop date.
	QuarterAligned = policy.QuarterAligned

	// Report is the support table for one package.
	Report = policy.Report

	// ReleaseSupport is one supported line in a report.
	ReleaseSupport = policy.ReleaseSupport
)

// Re-export types from client
type (
	// Client is an HTTP client with retry logic for registry APIs.
	Client = client.Client

	// Option configures a Client.
	Option = client.Option
)

// Re-export constants
const (
	// DefaultMonths is the standard support window.
	DefaultMonths = policy.DefaultMonths

	// PythonMonths is the window applied to the package named "python"
	// when the override is enabled.
	PythonMonths = policy.PythonMonths
)

// Re-export errors
var (
	ErrNotFound       = client.ErrNotFound
	ErrNoReleases     = policy.ErrNoReleases
	ErrEmptySupported = policy.ErrEmptySupported
)

// Error types
type (
	HTTPError      = client.HTTPError
	NotFoundError  = client.NotFoundError
	RateLimitError = client.RateLimitError
)

// New creates a release source for the given ecosystem.
// If baseURL is empty, the default registry URL is used.
// If client is nil, DefaultClient() is used.
//
// Supported ecosystems: "conda", "github", "pypi"
func New(ecosystem string, baseURL string, c *Client) (Source, error) {
	return core.New(ecosystem, baseURL, c)
}

// DefaultClient returns a client with sensible defaults:
// - 30s timeout
// - 5 retries with exponential backoff
// - Retry on 429 and 5xx responses
func DefaultClient() *Client {
	return client.DefaultClient()
}

// NewClient creates a new client with the given options.
func NewClient(opts ...Option) *Client {
	return client.NewClient(opts...)
}

// WithTimeout sets the HTTP client timeout.
var WithTimeout = client.WithTimeout

// WithMaxRetries sets the maximum number of retries.
var WithMaxRetries = client.WithMaxRetries

// SupportedEcosystems returns all registered ecosystem types.
// Note: ecosystems must be imported to be registered.
func SupportedEcosystems() []string {
	return core.SupportedEcosystems()
}

// DefaultURL returns the default registry URL for an ecosystem.
func DefaultURL(ecosystem string) string {
	return core.DefaultURL(ecosystem)
}

// Fallback combines sources so each query tries them in order until one
// yields releases. Sources that keep failing are skipped for a while by a
// circuit breaker; a missing package is a miss, not a failure.
func Fallback(sources ...Source) Source {
	return core.Fallback(sources...)
}

// DefaultSource returns the standard fallback chain over every registered
// ecosystem: pypi, then github, then conda.
func DefaultSource(c *Client) Source {
	return core.DefaultSource(c)
}

// PURL represents a parsed Package URL.
type PURL = purl.PURL

// ParsePURL parses a Package URL string into its components.
func ParsePURL(purlStr string) (*PURL, error) {
	return purl.Parse(purlStr)
}

// NewFromPURL creates a release source from a PURL and returns the package
// name to query it with, e.g. pkg:pypi/numpy, pkg:conda/bioconda/samtools,
// or pkg:github/scientific-python/lazy-loader. A version component is
// ignored; support windows always consider the full release history.
func NewFromPURL(purlStr string, c *Client) (Source, string, error) {
	return core.NewFromPURL(purlStr, c)
}

// NewRelease parses a version string and pairs it with a release date,
// normalized to UTC. Use it when implementing a custom Source.
func NewRelease(version string, date time.Time) (Release, error) {
	return core.NewRelease(version, date)
}

// DefaultWindow is the standard policy configuration: 24 months, with the
// python override enabled.
func DefaultWindow() Window {
	return policy.DefaultWindow()
}

// OldestPerLine reduces a release history to the earliest final release of
// each minor line. Pre-releases never open a line.
func OldestPerLine(releases []Release) map[Line]Release {
	return policy.OldestPerLine(releases)
}

// Supported returns the minor lines still inside their support window at
// now. The newest line is always included.
func Supported(p DropPolicy, pkg string, releases []Release, now time.Time) (map[Line]Release, error) {
	return policy.Supported(p, pkg, releases, now)
}

// Specifier renders a supported set as a version specifier such as
// ">=1.24,<3". Without withUpper the upper bound is omitted.
func Specifier(supported map[Line]Release, withUpper bool) (string, error) {
	return policy.Specifier(supported, withUpper)
}

// SpecifierRange returns the supported set as a parsed range that can be
// matched against concrete versions.
func SpecifierRange(supported map[Line]Release, withUpper bool) (*vers.Range, error) {
	return policy.SpecifierRange(supported, withUpper)
}

// NewReport builds the support table for a supported set.
func NewReport(p DropPolicy, pkg string, supported map[Line]Release) *Report {
	return policy.NewReport(p, pkg, supported)
}

// SetLogger routes diagnostic output, such as skipped unparseable
// versions, to the given logger. The default discards everything.
func SetLogger(l zerolog.Logger) {
	core.SetLogger(l)
}

// Evaluate fetches a package's release history and returns its support
// table under the given policy.
func Evaluate(ctx context.Context, src Source, p DropPolicy, pkg string) (*Report, error) {
	releases, err := src.Releases(ctx, pkg)
	if err != nil {
		return nil, err
	}
	supported, err := policy.Supported(p, pkg, releases, p.Now())
	if err != nil {
		return nil, err
	}
	return policy.NewReport(p, pkg, supported), nil
}

// Result pairs a package with its report, or with the error that
// prevented one.
type Result struct {
	Package string
	Report  *Report
	Err     error
}

// EvaluateAll evaluates multiple packages in parallel and returns one
// Result per package, in input order. A concurrency of 0 or less selects
// a default limit.
func EvaluateAll(ctx context.Context, src Source, p DropPolicy, pkgs []string, concurrency int) []Result {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}

	results := make([]Result, len(pkgs))
	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup

	for i, pkg := range pkgs {
		wg.Add(1)
		go func(i int, pkg string) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				results[i] = Result{Package: pkg, Err: ctx.Err()}
				return
			}

			report, err := Evaluate(ctx, src, p, pkg)
			results[i] = Result{Package: pkg, Report: report, Err: err}
		}(i, pkg)
	}

	wg.Wait()
	return results
}
