// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package device

import (
	"errors"
	"fmt"
	"sync"
)

// Common registry errors.
var (
	// ErrBackendNotAvailable is returned when no usable backend is registered.
	ErrBackendNotAvailable = errors.New("device: no backend available")

	// ErrUnknownBackend is returned when Options names an unregistered backend.
	ErrUnknownBackend = errors.New("device: unknown backend")
)

// Factory constructs an executor from options.
type Factory func(opts Options) (Device, error)

// registry holds registered executor backends.
var (
	registryMu sync.RWMutex
	backends   = make(map[string]Factory)
	// Priority order for automatic selection (first constructible wins).
	// Hardware backends come before the null fallback.
	backendPriority = []string{BackendWGPU, BackendNull}
)

// Backend name constants for the backends this module knows about.
// The wgpu backend lives in the device/wgpu subpackage and registers
// itself on import.
const (
	BackendWGPU = "wgpu"
	BackendNull = "null"
)

// Register registers an executor backend under the given name.
// This is typically called from init functions in backend packages.
// Registering a name twice replaces the earlier factory.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	backends[name] = factory
}

// Unregister removes a backend from the registry. Useful for testing.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(backends, name)
}

// Available returns the names of all registered backends.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	return names
}

// IsRegistered reports whether a backend with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := backends[name]
	return ok
}

// New constructs an executor from opts.
//
// If opts.Backend names a backend, that backend is used and its
// construction error, if any, is returned verbatim. Otherwise backends
// are tried in priority order and the first one that constructs wins;
// ErrBackendNotAvailable is returned when none does.
func New(opts Options) (Device, error) {
	if opts.Backend != "" {
		registryMu.RLock()
		factory, ok := backends[opts.Backend]
		registryMu.RUnlock()
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
		}
		return factory(opts)
	}

	registryMu.RLock()
	ordered := make([]Factory, 0, len(backendPriority))
	for _, name := range backendPriority {
		if factory, ok := backends[name]; ok {
			ordered = append(ordered, factory)
		}
	}
	registryMu.RUnlock()

	var firstErr error
	for _, factory := range ordered {
		dev, err := factory(opts)
		if err == nil {
			return dev, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}

	if firstErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrBackendNotAvailable, firstErr)
	}
	return nil, ErrBackendNotAvailable
}
