// Package loader instantiates exactly one algorithm from an external
// artifact, inside an isolation boundary that a misbehaving artifact cannot
// use to hang or corrupt the host.
package loader

import (
	"fmt"
	"log/slog"
	"time"

	"saturn/pkg/algorithm"
)

// Loader constructs algorithm instances from artifacts.
type Loader struct {
	resolver Resolver
	logger   *slog.Logger
}

// New creates a Loader that enumerates candidates through resolver.
func New(resolver Resolver, logger *slog.Logger) *Loader {
	return &Loader{
		resolver: resolver,
		logger:   logger,
	}
}

// Instantiate resolves the artifact's candidate types, filters them by the
// selector, and constructs the single match on a worker goroutine with a
// join-or-timeout wait. Exactly one fully constructed instance is returned on
// success; on any failure no instance is observable by the caller.
//
// The timeout must be positive. Interactive deployments set it generously
// (on the order of an hour) so a run being stepped through a debugger is not
// aborted; it is always supplied by the call site, never hardcoded here.
func (l *Loader) Instantiate(ref Reference, sel Selector, timeout time.Duration) (algorithm.Algorithm, error) {
	if timeout <= 0 {
		return nil, fmt.Errorf("instantiation timeout must be positive, got %v", timeout)
	}

	start := time.Now()
	instance, err := runWithTimeout(func() (algorithm.Algorithm, error) {
		return l.construct(ref, sel)
	}, timeout)
	if err != nil {
		l.logger.Error("algorithm instantiation failed",
			"artifact", string(ref),
			"type", sel.Expected,
			"elapsed", time.Since(start),
			"error", err)
		return nil, err
	}

	l.logger.Info("algorithm instantiated",
		"artifact", string(ref),
		"type", sel.Expected,
		"elapsed", time.Since(start))
	return instance, nil
}

// construct runs on the worker goroutine, inside the isolation boundary.
func (l *Loader) construct(ref Reference, sel Selector) (algorithm.Algorithm, error) {
	candidates, err := l.resolver.Resolve(ref)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConstructionFault, err)
	}

	var matches []Candidate
	for _, c := range candidates {
		if sel.Matches(c.Name) {
			matches = append(matches, c)
		}
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: artifact %q exposes %d candidate type(s), none named %q",
			ErrNoMatchingType, ref, len(candidates), sel.Expected)
	case 1:
		// Construct below.
	default:
		names := make([]string, len(matches))
		for i, m := range matches {
			names[i] = m.Name
		}
		return nil, fmt.Errorf("%w: artifact %q exposes %v; specify the algorithm type name",
			ErrAmbiguousType, ref, names)
	}

	instance := matches[0].New()
	if instance == nil {
		return nil, fmt.Errorf("%w: constructor for %q returned nil", ErrConstructionFault, matches[0].Name)
	}
	return instance, nil
}

// runWithTimeout executes fn on its own goroutine and waits for it to finish
// or for the timeout to elapse, whichever comes first. A panic inside fn is
// contained and reported as a construction fault. On timeout the goroutine is
// abandoned; its eventual result goes to a buffered channel nobody reads, so
// the caller never holds a reference to a late or partially built value.
func runWithTimeout[T any](fn func() (T, error), timeout time.Duration) (T, error) {
	type outcome struct {
		value T
		err   error
	}

	done := make(chan outcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				var zero T
				done <- outcome{zero, fmt.Errorf("%w: panic: %v", ErrConstructionFault, r)}
			}
		}()
		v, err := fn()
		done <- outcome{v, err}
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case o := <-done:
		return o.value, o.err
	case <-timer.C:
		var zero T
		return zero, fmt.Errorf("%w: construction exceeded %v", ErrInstantiationTimeout, timeout)
	}
}
