package spec0_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/facebookgo/clock"

	"github.com/git-pkgs/spec0"
	_ "github.com/git-pkgs/spec0/all"
)

// clockAt returns a mock clock frozen at the given instant.
func clockAt(t time.Time) clock.Clock {
	mock := clock.NewMock()
	mock.Add(t.Sub(time.Unix(0, 0)))
	return mock
}

func TestSupportedEcosystems(t *testing.T) {
	ecosystems := spec0.SupportedEcosystems()

	expected := []string{"conda", "github", "pypi"}
	sort.Strings(ecosystems)

	if len(ecosystems) != len(expected) {
		t.Fatalf("expected %d ecosystems, got %d: %v", len(expected), len(ecosystems), ecosystems)
	}

	for i, eco := range expected {
		if ecosystems[i] != eco {
			t.Errorf("expected ecosystem %q at position %d, got %q", eco, i, ecosystems[i])
		}
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		ecosystem string
		wantErr   bool
	}{
		{"pypi", false},
		{"conda", false},
		{"github", false},
		{"unknown", true},
	}

	for _, tt := range tests {
		t.Run(tt.ecosystem, func(t *testing.T) {
			_, err := spec0.New(tt.ecosystem, "", nil)
			if (err != nil) != tt.wantErr {
				t.Errorf("New(%q) error = %v, wantErr %v", tt.ecosystem, err, tt.wantErr)
			}
		})
	}
}

func TestDefaultURL(t *testing.T) {
	tests := []struct {
		ecosystem string
		want      string
	}{
		{"pypi", "https://pypi.org"},
		{"conda", "https://conda.anaconda.org"},
		{"github", "https://api.github.com"},
	}

	for _, tt := range tests {
		t.Run(tt.ecosystem, func(t *testing.T) {
			got := spec0.DefaultURL(tt.ecosystem)
			if got != tt.want {
				t.Errorf("DefaultURL(%q) = %q, want %q", tt.ecosystem, got, tt.want)
			}
		})
	}
}

func TestNewFromPURL(t *testing.T) {
	src, name, err := spec0.NewFromPURL("pkg:pypi/numpy", nil)
	if err != nil {
		t.Fatalf("NewFromPURL failed: %v", err)
	}
	if src.Ecosystem() != "pypi" {
		t.Errorf("expected ecosystem 'pypi', got %q", src.Ecosystem())
	}
	if name != "numpy" {
		t.Errorf("expected name 'numpy', got %q", name)
	}
}

func TestIntegration(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/pypi/numpy/json" {
			w.WriteHeader(404)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"releases": {
				"1.0.0": [{"upload_time_iso_8601": "2020-01-01T00:00:00.000000Z"}],
				"1.1.0": [{"upload_time_iso_8601": "2020-06-01T00:00:00.000000Z"}],
				"1.2.0": [{"upload_time_iso_8601": "2024-01-01T00:00:00.000000Z"}]
			}
		}`))
	}))
	defer server.Close()

	src, err := spec0.New("pypi", server.URL, spec0.DefaultClient())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	policy := spec0.StrictDate{Window: spec0.Window{
		Months: 24,
		Clock:  clockAt(time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)),
	}}

	report, err := spec0.Evaluate(context.Background(), src, policy, "numpy")
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}

	// Lines 1.0 and 1.1 left their 24-month windows long ago; only the
	// newest line survives.
	if len(report.Releases) != 1 {
		t.Fatalf("expected 1 supported release, got %d", len(report.Releases))
	}
	got := report.Releases[0]
	if got.Version != "1.2.0" {
		t.Errorf("expected version '1.2.0', got %q", got.Version)
	}
	wantDrop := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	if !got.DropDate.Equal(wantDrop) {
		t.Errorf("expected drop date %s, got %s", wantDrop, got.DropDate)
	}
}

func TestSupportedAndSpecifier(t *testing.T) {
	dates := map[string]time.Time{
		"1.24.0": time.Date(2023, time.January, 15, 0, 0, 0, 0, time.UTC),
		"1.25.0": time.Date(2023, time.June, 17, 0, 0, 0, 0, time.UTC),
		"1.26.0": time.Date(2023, time.September, 16, 0, 0, 0, 0, time.UTC),
	}

	releases := make([]spec0.Release, 0, len(dates))
	for version, date := range dates {
		r, err := spec0.NewRelease(version, date)
		if err != nil {
			t.Fatalf("NewRelease(%q) failed: %v", version, err)
		}
		releases = append(releases, r)
	}

	policy := spec0.StrictDate{Window: spec0.DefaultWindow()}
	now := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

	supported, err := spec0.Supported(policy, "numpy", releases, now)
	if err != nil {
		t.Fatalf("Supported failed: %v", err)
	}
	if len(supported) != 3 {
		t.Fatalf("expected 3 supported lines, got %d", len(supported))
	}

	spec, err := spec0.Specifier(supported, true)
	if err != nil {
		t.Fatalf("Specifier failed: %v", err)
	}
	if spec != ">=1.24,<2" {
		t.Errorf("expected specifier '>=1.24,<2', got %q", spec)
	}

	r, err := spec0.SpecifierRange(supported, true)
	if err != nil {
		t.Fatalf("SpecifierRange failed: %v", err)
	}
	if !r.Contains("1.25.2") {
		t.Error("range should contain 1.25.2")
	}
	if r.Contains("2.0.0") {
		t.Error("range should exclude 2.0.0")
	}
}

func TestEvaluateNoReleases(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"releases": {}}`))
	}))
	defer server.Close()

	src, err := spec0.New("pypi", server.URL, spec0.DefaultClient())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	policy := spec0.StrictDate{Window: spec0.DefaultWindow()}
	_, err = spec0.Evaluate(context.Background(), src, policy, "placeholder")
	if !errors.Is(err, spec0.ErrNoReleases) {
		t.Fatalf("expected ErrNoReleases, got %v", err)
	}
}

func TestEvaluateAll(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/pypi/numpy/json":
			_, _ = w.Write([]byte(`{
				"releases": {
					"1.2.0": [{"upload_time_iso_8601": "2024-01-01T00:00:00.000000Z"}]
				}
			}`))
		default:
			w.WriteHeader(404)
		}
	}))
	defer server.Close()

	src, err := spec0.New("pypi", server.URL, spec0.DefaultClient())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	policy := spec0.StrictDate{Window: spec0.Window{
		Months: 24,
		Clock:  clockAt(time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)),
	}}

	pkgs := []string{"numpy", "missing"}
	results := spec0.EvaluateAll(context.Background(), src, policy, pkgs, 4)

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	for i, pkg := range pkgs {
		if results[i].Package != pkg {
			t.Errorf("position %d: expected package %q, got %q", i, pkg, results[i].Package)
		}
	}

	if results[0].Err != nil {
		t.Errorf("numpy should succeed, got error: %v", results[0].Err)
	}
	if results[0].Report == nil || len(results[0].Report.Releases) != 1 {
		t.Errorf("unexpected numpy report: %+v", results[0].Report)
	}

	if results[1].Err == nil {
		t.Error("missing package should carry an error")
	}
	if !errors.Is(results[1].Err, spec0.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", results[1].Err)
	}
}

func TestEvaluateAllDefaultConcurrency(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"releases": {
				"1.0.0": [{"upload_time_iso_8601": "2024-01-01T00:00:00.000000Z"}]
			}
		}`))
	}))
	defer server.Close()

	src, err := spec0.New("pypi", server.URL, spec0.DefaultClient())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	policy := spec0.StrictDate{Window: spec0.Window{
		Months: 24,
		Clock:  clockAt(time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)),
	}}

	pkgs := make([]string, 40)
	for i := range pkgs {
		pkgs[i] = "numpy"
	}

	results := spec0.EvaluateAll(context.Background(), src, policy, pkgs, 0)
	if len(results) != len(pkgs) {
		t.Fatalf("expected %d results, got %d", len(pkgs), len(results))
	}
	for i, res := range results {
		if res.Err != nil {
			t.Fatalf("position %d: unexpected error: %v", i, res.Err)
		}
	}
}
