package core

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cenk/backoff"
	circuit "github.com/rubyist/circuitbreaker"
)

// fallbackOrder is the upstream preference order for DefaultSource.
var fallbackOrder = []string{"pypi", "github", "conda"}

// fallback tries sources in order and yields the first non-empty history.
type fallback struct {
	sources  []Source
	breakers map[string]*circuit.Breaker
	mu       sync.RWMutex
}

// Fallback composes sources into one that tries each in order and returns
// the release history of the first that yields releases. A per-source
// circuit breaker skips sources that keep failing; a package miss
// (ErrNotFound) is a healthy upstream answer, not a fault.
func Fallback(sources ...Source) Source {
	return &fallback{
		sources:  sources,
		breakers: make(map[string]*circuit.Breaker),
	}
}

// DefaultSource returns the standard fallback chain over the registered
// sources, in upstream preference order: pypi, github, conda.
// Ecosystems that have not been registered are skipped.
func DefaultSource(client *Client) Source {
	var sources []Source
	for _, eco := range fallbackOrder {
		if src, err := New(eco, "", client); err == nil {
			sources = append(sources, src)
		}
	}
	return Fallback(sources...)
}

func (f *fallback) Ecosystem() string {
	return "fallback"
}

func (f *fallback) Releases(ctx context.Context, name string) ([]Release, error) {
	if len(f.sources) == 0 {
		return nil, fmt.Errorf("no release sources configured for %s", name)
	}

	var errs []error
	for _, src := range f.sources {
		breaker := f.getBreaker(src.Ecosystem())
		if !breaker.Ready() {
			errs = append(errs, fmt.Errorf("%s: circuit breaker open", src.Ecosystem()))
			continue
		}

		var releases []Release
		var srcErr error
		callErr := breaker.Call(func() error {
			releases, srcErr = src.Releases(ctx, name)
			if srcErr != nil && errors.Is(srcErr, ErrNotFound) {
				return nil // a miss is a healthy response
			}
			return srcErr
		}, 0)

		switch {
		case callErr == nil && srcErr == nil && len(releases) > 0:
			return releases, nil
		case srcErr != nil:
			errs = append(errs, fmt.Errorf("%s: %w", src.Ecosystem(), srcErr))
		case callErr != nil:
			errs = append(errs, fmt.Errorf("%s: %w", src.Ecosystem(), callErr))
		default:
			errs = append(errs, fmt.Errorf("%s: no releases", src.Ecosystem()))
		}
	}

	return nil, fmt.Errorf("no release source succeeded for %s: %w", name, errors.Join(errs...))
}

// getBreaker returns or creates the circuit breaker for a source.
func (f *fallback) getBreaker(ecosystem string) *circuit.Breaker {
	f.mu.RLock()
	breaker, exists := f.breakers[ecosystem]
	f.mu.RUnlock()

	if exists {
		return breaker
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	// Double-check after acquiring write lock
	if breaker, exists := f.breakers[ecosystem]; exists {
		return breaker
	}

	// Trips after 5 consecutive failures, retries with exponential backoff
	expBackoff := backoff.NewExponentialBackOff()
	expBackoff.InitialInterval = 30 * time.Second
	expBackoff.MaxInterval = 5 * time.Minute
	expBackoff.Multiplier = 2.0
	expBackoff.Reset()

	breaker = circuit.NewBreakerWithOptions(&circuit.Options{
		BackOff:    expBackoff,
		ShouldTrip: circuit.ThresholdTripFunc(5),
	})

	f.breakers[ecosystem] = breaker
	return breaker
}
