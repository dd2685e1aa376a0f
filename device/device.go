// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package device

// Color is a 4-component RGBA color with float channels in [0, 1].
type Color [4]float32

// VertexCount counts vertices in draw and attribute operations.
type VertexCount uint16

// ShaderKind selects the pipeline stage a shader compiles for.
type ShaderKind byte

const (
	// ShaderVertex marks vertex-stage shader source.
	ShaderVertex ShaderKind = 'v'
	// ShaderFragment marks fragment-stage shader source.
	ShaderFragment ShaderKind = 'f'
)

// String returns the stage name for logging.
func (k ShaderKind) String() string {
	switch k {
	case ShaderVertex:
		return "vertex"
	case ShaderFragment:
		return "fragment"
	}
	return "unknown"
}

// Device is the capability contract for a graphics device executor.
//
// Every operation is synchronous and side-effects only the graphics
// context the Device owns. A Device is thread-affine: all calls must come
// from the goroutine (and OS thread) that constructed it. Nothing in this
// package enforces that; it is part of the contract, and the devlink
// server preserves it by owning its Device exclusively.
//
// Creation operations return InvalidHandle-valued handles on failure
// rather than errors; executors log the cause. Binding a handle the
// Device did not mint is undefined.
type Device interface {
	// Clear fills the bound framebuffer with the given color.
	Clear(color Color)

	// BindProgram makes prog the active shader program.
	BindProgram(prog Program)

	// BindArrayBuffer makes abuf the active vertex-array object.
	BindArrayBuffer(abuf ArrayBuffer)

	// BindAttribute configures vertex attribute slot to read count
	// vertices at the given byte offset and stride. The attribute reads
	// from the most recently created or bound data buffer.
	BindAttribute(slot uint8, count VertexCount, offset, stride uint32)

	// BindFrameBuffer makes fbo the render target for subsequent
	// Clear and Draw calls.
	BindFrameBuffer(fbo FrameBuffer)

	// Draw renders count vertices starting at start using the active
	// program and attribute bindings.
	Draw(start, count VertexCount)

	// CreateBuffer uploads data into a new device buffer.
	CreateBuffer(data []float32) Buffer

	// CreateArrayBuffer creates a new vertex-array object.
	CreateArrayBuffer() ArrayBuffer

	// CreateShader compiles source for the given stage.
	CreateShader(kind ShaderKind, source []byte) Shader

	// CreateProgram links the given shaders into a program.
	CreateProgram(shaders []Shader) Program
}

// Closer is an optional interface for executors that hold releasable
// resources. devlink does not call it; the application closes the
// executor after the session ends, on the same thread that drove it.
type Closer interface {
	Close()
}
