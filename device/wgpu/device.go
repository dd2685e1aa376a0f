// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"fmt"
	"math"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/devlink"
	"github.com/gogpu/devlink/device"
)

// Default render target size when Options does not give one.
const (
	defaultTargetWidth  = 800
	defaultTargetHeight = 600
)

// submitTimeout bounds the per-draw fence wait. Correctness over
// throughput: a draw that has not landed within this window is a device
// fault, not congestion.
const submitTimeout = 5 * time.Second

func init() {
	device.Register(device.BackendWGPU, func(opts device.Options) (device.Device, error) {
		return New(opts)
	})
}

// shaderEntry pairs a compiled module with the stage it was compiled for.
type shaderEntry struct {
	module hal.ShaderModule
	kind   device.ShaderKind
}

// programEntry holds a linked vertex/fragment module pair. The concrete
// render pipeline depends on the vertex layout at draw time, so pipelines
// are built lazily and cached per layout signature.
type programEntry struct {
	vertex    hal.ShaderModule
	fragment  hal.ShaderModule
	layout    hal.PipelineLayout
	pipelines map[string]hal.RenderPipeline
}

// attribBinding records one configured vertex attribute slot.
type attribBinding struct {
	buffer device.Buffer
	count  device.VertexCount
	offset uint32
	stride uint32
}

// vertexArray is the executor's vertex-array object: the set of
// attribute bindings selected together by BindArrayBuffer.
type vertexArray struct {
	attrs map[uint8]attribBinding
}

// Device is a devlink executor backed by gogpu/wgpu's HAL.
//
// It renders into an offscreen color target it owns. All methods must be
// called from the goroutine that constructed the Device.
type Device struct {
	label string

	instance hal.Instance // nil when the device is adopted from a provider
	dev      hal.Device
	queue    hal.Queue
	adopted  bool

	target     hal.Texture
	targetView hal.TextureView
	width      uint32
	height     uint32

	// Resource tables. A handle is an index+1 into its table, so the
	// zero handle stays distinguishable and InvalidHandle never collides.
	buffers  []hal.Buffer
	shaders  []shaderEntry
	programs []*programEntry
	arrays   []*vertexArray

	// Binding state mutated by the cast operations.
	curProgram device.Program
	curArray   device.ArrayBuffer
	lastBuffer device.Buffer
	defaultVAO vertexArray
}

// New constructs a wgpu executor from opts. When opts.Provider exposes
// HAL types the executor adopts that shared device; otherwise it opens a
// standalone Vulkan device.
func New(opts device.Options) (*Device, error) {
	d := &Device{
		label:      opts.Label,
		width:      uint32(opts.Width),
		height:     uint32(opts.Height),
		defaultVAO: vertexArray{attrs: make(map[uint8]attribBinding)},
	}
	if d.label == "" {
		d.label = "devlink"
	}
	if d.width == 0 || d.height == 0 {
		d.width, d.height = defaultTargetWidth, defaultTargetHeight
	}

	if opts.Provider != nil {
		if err := d.adoptDevice(opts.Provider); err != nil {
			return nil, err
		}
	} else if err := d.openDevice(); err != nil {
		// The instance may already exist when adapter enumeration or
		// device open fails; release it before reporting.
		d.Close()
		return nil, err
	}

	if err := d.createTarget(); err != nil {
		d.Close()
		return nil, err
	}

	devlink.Logger().Info("wgpu executor ready",
		"adopted", d.adopted, "width", d.width, "height", d.height)
	return d, nil
}

// adoptDevice takes the HAL device and queue from a host provider. The
// provider must expose HalDevice() any and HalQueue() any returning
// hal.Device and hal.Queue, as gogpu application contexts do.
func (d *Device) adoptDevice(provider any) error {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return fmt.Errorf("wgpu: provider does not expose HAL types")
	}
	dev, ok := hp.HalDevice().(hal.Device)
	if !ok || dev == nil {
		return fmt.Errorf("wgpu: provider HalDevice is not hal.Device")
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return fmt.Errorf("wgpu: provider HalQueue is not hal.Queue")
	}
	d.dev = dev
	d.queue = queue
	d.adopted = true
	return nil
}

// openDevice opens a standalone Vulkan instance, adapter, and device.
func (d *Device) openDevice() error {
	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return fmt.Errorf("wgpu: vulkan backend not available")
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return fmt.Errorf("wgpu: create instance: %w", err)
	}
	d.instance = instance

	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		return fmt.Errorf("wgpu: no GPU adapters found")
	}

	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}

	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		return fmt.Errorf("wgpu: open device: %w", err)
	}
	d.dev = openDev.Device
	d.queue = openDev.Queue

	devlink.Logger().Info("wgpu adapter selected", "adapter", selected.Info.Name)
	return nil
}

// createTarget creates the offscreen color target.
func (d *Device) createTarget() error {
	tex, err := d.dev.CreateTexture(&hal.TextureDescriptor{
		Label:         d.label + "_color",
		Size:          hal.Extent3D{Width: d.width, Height: d.height, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatBGRA8Unorm,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return fmt.Errorf("wgpu: create color target: %w", err)
	}
	d.target = tex

	view, err := d.dev.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label: d.label + "_color_view",
	})
	if err != nil {
		return fmt.Errorf("wgpu: create color target view: %w", err)
	}
	d.targetView = view
	return nil
}

// Close releases every resource the executor owns, including an
// instance left over from a failed open. Adopted devices are left to
// their provider. Close must run on the executor's goroutine, after the
// session has ended.
func (d *Device) Close() {
	if d.dev != nil {
		for _, p := range d.programs {
			for _, pipe := range p.pipelines {
				d.dev.DestroyRenderPipeline(pipe)
			}
			if p.layout != nil {
				d.dev.DestroyPipelineLayout(p.layout)
			}
		}
		for _, s := range d.shaders {
			if s.module != nil {
				d.dev.DestroyShaderModule(s.module)
			}
		}
		for _, b := range d.buffers {
			if b != nil {
				d.dev.DestroyBuffer(b)
			}
		}
		if d.targetView != nil {
			d.dev.DestroyTextureView(d.targetView)
		}
		if d.target != nil {
			d.dev.DestroyTexture(d.target)
		}
		if !d.adopted {
			d.dev.Destroy()
		}
		d.dev = nil
		d.queue = nil
	}
	if !d.adopted && d.instance != nil {
		d.instance.Destroy()
		d.instance = nil
	}
}

// --------------------------------------------------------------------------
// Creation operations
// --------------------------------------------------------------------------

// CreateBuffer uploads data into a new vertex-usage buffer. The new
// buffer becomes the one subsequent BindAttribute calls read from.
func (d *Device) CreateBuffer(data []float32) device.Buffer {
	size := uint64(len(data)) * 4
	if size == 0 {
		devlink.Logger().Warn("wgpu: empty buffer requested")
		return device.Buffer(device.InvalidHandle)
	}

	buf, err := d.dev.CreateBuffer(&hal.BufferDescriptor{
		Label: fmt.Sprintf("%s_buffer_%d", d.label, len(d.buffers)),
		Size:  size,
		Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		devlink.Logger().Warn("wgpu: create buffer failed", "error", err)
		return device.Buffer(device.InvalidHandle)
	}
	d.queue.WriteBuffer(buf, 0, floatBytes(data))

	d.buffers = append(d.buffers, buf)
	handle := device.Buffer(len(d.buffers))
	d.lastBuffer = handle
	return handle
}

// CreateArrayBuffer mints a new vertex-array object.
func (d *Device) CreateArrayBuffer() device.ArrayBuffer {
	d.arrays = append(d.arrays, &vertexArray{attrs: make(map[uint8]attribBinding)})
	return device.ArrayBuffer(len(d.arrays))
}

// CreateShader compiles WGSL source for the given stage. The module must
// export an entry point named "main".
func (d *Device) CreateShader(kind device.ShaderKind, source []byte) device.Shader {
	label := fmt.Sprintf("%s_%s_%d", d.label, kind, len(d.shaders))
	module, err := createShaderModule(d.dev, label, string(source))
	if err != nil {
		devlink.Logger().Warn("wgpu: shader compile failed", "kind", kind, "error", err)
		return device.Shader(device.InvalidHandle)
	}
	d.shaders = append(d.shaders, shaderEntry{module: module, kind: kind})
	return device.Shader(len(d.shaders))
}

// CreateProgram links one vertex and one fragment shader. The render
// pipeline itself is built at first draw, once the vertex layout is
// known, and cached per layout.
func (d *Device) CreateProgram(shaders []device.Shader) device.Program {
	prog := &programEntry{pipelines: make(map[string]hal.RenderPipeline)}
	for _, h := range shaders {
		entry, ok := d.shaderAt(h)
		if !ok {
			devlink.Logger().Warn("wgpu: program links unknown shader", "shader", h)
			return device.Program(device.InvalidHandle)
		}
		switch entry.kind {
		case device.ShaderVertex:
			prog.vertex = entry.module
		case device.ShaderFragment:
			prog.fragment = entry.module
		}
	}
	if prog.vertex == nil || prog.fragment == nil {
		devlink.Logger().Warn("wgpu: program needs one vertex and one fragment shader")
		return device.Program(device.InvalidHandle)
	}

	layout, err := d.dev.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            fmt.Sprintf("%s_program_%d", d.label, len(d.programs)),
		BindGroupLayouts: nil,
	})
	if err != nil {
		devlink.Logger().Warn("wgpu: create pipeline layout failed", "error", err)
		return device.Program(device.InvalidHandle)
	}
	prog.layout = layout

	d.programs = append(d.programs, prog)
	return device.Program(len(d.programs))
}

// --------------------------------------------------------------------------
// Cast operations
// --------------------------------------------------------------------------

// Clear fills the render target with color. Encoded as its own pass so a
// clear lands even when no draw follows in the frame.
func (d *Device) Clear(color device.Color) {
	err := d.encode("clear", func(encoder hal.CommandEncoder) error {
		rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
			Label: d.label + "_clear",
			ColorAttachments: []hal.RenderPassColorAttachment{{
				View:    d.targetView,
				LoadOp:  gputypes.LoadOpClear,
				StoreOp: gputypes.StoreOpStore,
				ClearValue: gputypes.Color{
					R: float64(color[0]),
					G: float64(color[1]),
					B: float64(color[2]),
					A: float64(color[3]),
				},
			}},
		})
		rp.End()
		return nil
	})
	if err != nil {
		devlink.Logger().Warn("wgpu: clear failed", "error", err)
	}
}

// BindProgram selects the active program.
func (d *Device) BindProgram(prog device.Program) {
	d.curProgram = prog
}

// BindArrayBuffer selects the active vertex-array object.
func (d *Device) BindArrayBuffer(abuf device.ArrayBuffer) {
	d.curArray = abuf
}

// BindAttribute configures attribute slot against the most recently
// created buffer, recording it into the active vertex-array object.
func (d *Device) BindAttribute(slot uint8, count device.VertexCount, offset, stride uint32) {
	if !d.lastBuffer.IsValid() || d.lastBuffer == 0 {
		devlink.Logger().Warn("wgpu: attribute bound before any buffer exists", "slot", slot)
		return
	}
	d.activeVAO().attrs[slot] = attribBinding{
		buffer: d.lastBuffer,
		count:  count,
		offset: offset,
		stride: stride,
	}
}

// BindFrameBuffer selects the render target. Only the default
// framebuffer exists; nothing in the protocol mints others.
func (d *Device) BindFrameBuffer(fbo device.FrameBuffer) {
	if fbo != device.DefaultFrameBuffer {
		devlink.Logger().Warn("wgpu: unknown framebuffer ignored", "framebuffer", fbo)
	}
}

// Draw renders count vertices starting at start with the active program
// and attribute bindings, in a single submitted render pass.
func (d *Device) Draw(start, count device.VertexCount) {
	prog, ok := d.programAt(d.curProgram)
	if !ok {
		devlink.Logger().Warn("wgpu: draw without a bound program")
		return
	}
	vao := d.activeVAO()
	if len(vao.attrs) == 0 {
		devlink.Logger().Warn("wgpu: draw without vertex attributes")
		return
	}

	pipeline, slots, err := d.pipelineFor(prog, vao)
	if err != nil {
		devlink.Logger().Warn("wgpu: pipeline build failed", "error", err)
		return
	}

	err = d.encode("draw", func(encoder hal.CommandEncoder) error {
		rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
			Label: d.label + "_draw",
			ColorAttachments: []hal.RenderPassColorAttachment{{
				View:    d.targetView,
				LoadOp:  gputypes.LoadOpLoad,
				StoreOp: gputypes.StoreOpStore,
			}},
		})
		rp.SetPipeline(pipeline)
		for i, binding := range slots {
			buf, ok := d.bufferAt(binding.buffer)
			if !ok {
				rp.End()
				return fmt.Errorf("attribute references unknown buffer %v", binding.buffer)
			}
			rp.SetVertexBuffer(uint32(i), buf, uint64(binding.offset))
		}
		rp.Draw(uint32(count), 1, uint32(start), 0)
		rp.End()
		return nil
	})
	if err != nil {
		devlink.Logger().Warn("wgpu: draw failed", "error", err)
	}
}

// --------------------------------------------------------------------------
// Internals
// --------------------------------------------------------------------------

func (d *Device) activeVAO() *vertexArray {
	if d.curArray == 0 || !d.curArray.IsValid() {
		return &d.defaultVAO
	}
	if idx := int(d.curArray) - 1; idx < len(d.arrays) {
		return d.arrays[idx]
	}
	return &d.defaultVAO
}

func (d *Device) bufferAt(h device.Buffer) (hal.Buffer, bool) {
	idx := int(h) - 1
	if h == 0 || !h.IsValid() || idx >= len(d.buffers) {
		return nil, false
	}
	return d.buffers[idx], true
}

func (d *Device) shaderAt(h device.Shader) (shaderEntry, bool) {
	idx := int(h) - 1
	if h == 0 || !h.IsValid() || idx >= len(d.shaders) {
		return shaderEntry{}, false
	}
	return d.shaders[idx], true
}

func (d *Device) programAt(h device.Program) (*programEntry, bool) {
	idx := int(h) - 1
	if h == 0 || !h.IsValid() || idx >= len(d.programs) {
		return nil, false
	}
	return d.programs[idx], true
}

// encode runs fn against a fresh command encoder, submits the result,
// and waits for the fence.
func (d *Device) encode(what string, fn func(hal.CommandEncoder) error) error {
	encoder, err := d.dev.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: d.label + "_" + what,
	})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding(what); err != nil {
		return fmt.Errorf("begin encoding: %w", err)
	}

	if err := fn(encoder); err != nil {
		encoder.DiscardEncoding()
		return err
	}

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("end encoding: %w", err)
	}
	defer d.dev.FreeCommandBuffer(cmdBuf)

	fence, err := d.dev.CreateFence()
	if err != nil {
		return fmt.Errorf("create fence: %w", err)
	}
	defer d.dev.DestroyFence(fence)

	if err := d.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	ok, err := d.dev.Wait(fence, 1, submitTimeout)
	if err != nil {
		return fmt.Errorf("wait for GPU: %w", err)
	}
	if !ok {
		return fmt.Errorf("wait for GPU: timed out after %v", submitTimeout)
	}
	return nil
}

// floatBytes reinterprets float32 data as little-endian bytes for upload.
func floatBytes(data []float32) []byte {
	out := make([]byte, len(data)*4)
	for i, f := range data {
		bits := math.Float32bits(f)
		out[i*4] = byte(bits)
		out[i*4+1] = byte(bits >> 8)
		out[i*4+2] = byte(bits >> 16)
		out[i*4+3] = byte(bits >> 24)
	}
	return out
}

var _ device.Device = (*Device)(nil)
var _ device.Closer = (*Device)(nil)
