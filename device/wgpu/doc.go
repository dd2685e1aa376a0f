// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package wgpu implements the devlink device executor on gogpu/wgpu's
// hardware abstraction layer.
//
// Importing the package registers the "wgpu" backend with the device
// registry:
//
//	import _ "github.com/gogpu/devlink/device/wgpu"
//
// The executor opens its own HAL instance, adapter, and device, or
// adopts a shared device when device.Options carries a provider that
// exposes HAL types (a gogpu application context does). Shader source is
// WGSL, compiled to SPIR-V through gogpu/naga at CreateShader time.
//
// Like every devlink executor, a Device here is thread-affine: all
// methods must be called from the goroutine that constructed it.
package wgpu
