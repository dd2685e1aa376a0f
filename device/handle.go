// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package device

// Handles are opaque resource identifiers minted by a Device. They are
// plain values: copying one, or sending it across a channel, is safe and
// carries no ownership. Only the Device that minted a handle can interpret
// it, and handles from different Devices must never be mixed.

// Buffer identifies a data buffer created by CreateBuffer.
type Buffer uint32

// ArrayBuffer identifies a vertex-array object created by CreateArrayBuffer.
type ArrayBuffer uint32

// Shader identifies a compiled shader created by CreateShader.
type Shader uint32

// Program identifies a linked shader program created by CreateProgram.
type Program uint32

// FrameBuffer identifies a render target.
type FrameBuffer uint32

// DefaultFrameBuffer is the framebuffer of the presentation surface.
// It exists without an explicit creation call.
const DefaultFrameBuffer FrameBuffer = 0

// InvalidHandle is the sentinel value for a handle that does not refer to
// a live resource. Executors return it when resource creation fails.
const InvalidHandle = ^uint32(0)

// IsValid reports whether the handle refers to a live buffer.
func (h Buffer) IsValid() bool { return uint32(h) != InvalidHandle }

// IsValid reports whether the handle refers to a live vertex-array object.
func (h ArrayBuffer) IsValid() bool { return uint32(h) != InvalidHandle }

// IsValid reports whether the handle refers to a live shader.
func (h Shader) IsValid() bool { return uint32(h) != InvalidHandle }

// IsValid reports whether the handle refers to a live program.
func (h Program) IsValid() bool { return uint32(h) != InvalidHandle }

// IsValid reports whether the handle refers to a live framebuffer.
func (h FrameBuffer) IsValid() bool { return uint32(h) != InvalidHandle }
