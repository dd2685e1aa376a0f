// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package device

import (
	"github.com/gogpu/gpucontext"
)

// DeviceHandle provides GPU device access from a host application.
//
// When the host already owns a GPU device (a windowing framework, or an
// embedding renderer), it passes its provider through Options so the
// executor adopts the shared device instead of opening its own. It is an
// alias for gpucontext.DeviceProvider, keeping this package compatible
// with the gpucontext ecosystem under a local name.
type DeviceHandle = gpucontext.DeviceProvider

// Options configures executor construction. The zero value selects the
// best available registered backend with a standalone device.
//
// Options is forwarded unchanged to the backend factory; individual
// backends document which fields they honor.
type Options struct {
	// Backend names the executor backend to use ("wgpu", "null", ...).
	// Empty selects the highest-priority registered backend.
	Backend string

	// Label is an optional debug label attached to created GPU objects.
	Label string

	// Provider, when non-nil, supplies a shared GPU device from the host
	// application. Backends that cannot adopt a shared device ignore it.
	Provider DeviceHandle

	// Width and Height size the render target, in pixels, for backends
	// that own their target. Zero selects a backend default.
	Width, Height int
}
