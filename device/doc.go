// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package device defines the capability contract for graphics device
// executors driven by a devlink server.
//
// A Device owns a thread-affine graphics context and performs every
// operation synchronously on the goroutine that calls it. Resource
// creation mints opaque handles (Buffer, Shader, Program, ...) that the
// caller passes back into later binding operations; the handles carry no
// meaning outside the Device that minted them.
//
// Concrete executors register themselves with Register, typically from an
// init function, and are selected through Options at construction time:
//
//	import _ "github.com/gogpu/devlink/device/wgpu" // register WebGPU executor
//
//	dev, err := device.New(device.Options{})
//
// The package also provides NullDevice, a handle-minting no-op executor
// used for headless operation and tests.
package device
