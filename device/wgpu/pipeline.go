// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// pipelineFor returns the render pipeline for prog under the vertex
// layout recorded in vao, building and caching it on first use. The
// returned slot order matches the pipeline's vertex buffer indices.
func (d *Device) pipelineFor(prog *programEntry, vao *vertexArray) (hal.RenderPipeline, []attribBinding, error) {
	slots := make([]uint8, 0, len(vao.attrs))
	for slot := range vao.attrs {
		slots = append(slots, slot)
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i] < slots[j] })

	bindings := make([]attribBinding, len(slots))
	for i, slot := range slots {
		bindings[i] = vao.attrs[slot]
	}

	key := layoutKey(slots, bindings)
	if pipeline, ok := prog.pipelines[key]; ok {
		return pipeline, bindings, nil
	}

	buffers := make([]gputypes.VertexBufferLayout, len(slots))
	for i, slot := range slots {
		b := bindings[i]
		buffers[i] = gputypes.VertexBufferLayout{
			ArrayStride: uint64(effectiveStride(b.stride)),
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{{
				Format:         formatForStride(b.stride),
				Offset:         0,
				ShaderLocation: uint32(slot),
			}},
		}
	}

	pipeline, err := d.dev.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  d.label + "_pipeline",
		Layout: prog.layout,
		Vertex: hal.VertexState{
			Module:     prog.vertex,
			EntryPoint: "main",
			Buffers:    buffers,
		},
		Fragment: &hal.FragmentState{
			Module:     prog.fragment,
			EntryPoint: "main",
			Targets: []gputypes.ColorTargetState{{
				Format:    gputypes.TextureFormatBGRA8Unorm,
				WriteMask: gputypes.ColorWriteMaskAll,
			}},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return nil, nil, fmt.Errorf("create render pipeline: %w", err)
	}

	prog.pipelines[key] = pipeline
	return pipeline, bindings, nil
}

// layoutKey builds the cache key for a vertex layout: slot, offset, and
// stride fully determine the pipeline's vertex state.
func layoutKey(slots []uint8, bindings []attribBinding) string {
	var sb strings.Builder
	for i, slot := range slots {
		fmt.Fprintf(&sb, "%d:%d:%d;", slot, bindings[i].offset, bindings[i].stride)
	}
	return sb.String()
}

// formatForStride infers the attribute format from its byte stride. The
// protocol carries no component count, so the stride is the only signal:
// tightly packed float attributes have stride = 4 * components.
func formatForStride(stride uint32) gputypes.VertexFormat {
	switch stride {
	case 4:
		return gputypes.VertexFormatFloat32
	case 12:
		return gputypes.VertexFormatFloat32x3
	case 16:
		return gputypes.VertexFormatFloat32x4
	default:
		return gputypes.VertexFormatFloat32x2
	}
}

// effectiveStride maps the protocol's "zero means tightly packed" onto
// an explicit byte stride.
func effectiveStride(stride uint32) uint32 {
	if stride == 0 {
		return 8 // matches the FormatFloat32x2 default
	}
	return stride
}
