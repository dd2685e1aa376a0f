// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package device

// NullDevice is an executor that performs no device work. Creation
// operations mint sequential handles; everything else is a no-op.
//
// It backs the "null" backend, the lowest-priority registry entry, so a
// session can run headless (tests, CI, servers without a GPU) with the
// full command protocol intact.
type NullDevice struct {
	nextBuffer      uint32
	nextArrayBuffer uint32
	nextShader      uint32
	nextProgram     uint32
}

// NewNullDevice creates a no-op executor.
func NewNullDevice() *NullDevice {
	return &NullDevice{}
}

func init() {
	Register(BackendNull, func(Options) (Device, error) {
		return NewNullDevice(), nil
	})
}

// Clear does nothing.
func (d *NullDevice) Clear(Color) {}

// BindProgram does nothing.
func (d *NullDevice) BindProgram(Program) {}

// BindArrayBuffer does nothing.
func (d *NullDevice) BindArrayBuffer(ArrayBuffer) {}

// BindAttribute does nothing.
func (d *NullDevice) BindAttribute(uint8, VertexCount, uint32, uint32) {}

// BindFrameBuffer does nothing.
func (d *NullDevice) BindFrameBuffer(FrameBuffer) {}

// Draw does nothing.
func (d *NullDevice) Draw(VertexCount, VertexCount) {}

// CreateBuffer mints the next buffer handle. The data is discarded.
func (d *NullDevice) CreateBuffer([]float32) Buffer {
	d.nextBuffer++
	return Buffer(d.nextBuffer)
}

// CreateArrayBuffer mints the next vertex-array handle.
func (d *NullDevice) CreateArrayBuffer() ArrayBuffer {
	d.nextArrayBuffer++
	return ArrayBuffer(d.nextArrayBuffer)
}

// CreateShader mints the next shader handle. The source is discarded.
func (d *NullDevice) CreateShader(ShaderKind, []byte) Shader {
	d.nextShader++
	return Shader(d.nextShader)
}

// CreateProgram mints the next program handle.
func (d *NullDevice) CreateProgram([]Shader) Program {
	d.nextProgram++
	return Program(d.nextProgram)
}

var _ Device = (*NullDevice)(nil)
