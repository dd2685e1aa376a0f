package devlink

import "github.com/gogpu/devlink/device"

// Client is the producer-side façade over the command vocabulary.
//
// Cast methods (Clear, BindProgram, Draw, EndFrame, ...) enqueue their
// command and return; the only guarantee on return is that the command is
// queued in order behind everything sent before it. Call methods
// (NewBuffer, NewShader, ...) enqueue and then block until the matching
// reply arrives, so the handle they return is live when they return.
//
// A Client belongs to one goroutine at a time. It never touches the
// executor and holds no device state, so it may be handed between
// goroutines, but concurrent use would interleave call/reply pairs and is
// not supported.
type Client struct {
	commands chan<- Command
	replies  <-chan Reply
}

// call sends cmd and blocks until its reply arrives. A reply of the
// wrong variant, or a disconnect while waiting, panics: both mean the
// pairing invariant is broken and the session cannot continue.
func (c *Client) call(cmd Command, want ReplyType) Reply {
	c.commands <- cmd
	reply, ok := <-c.replies
	if !ok {
		panic(ErrSessionEnded)
	}
	if reply.Type() != want {
		panic(&ProtocolError{Want: want, Got: reply.Type()})
	}
	return reply
}

// Clear queues a clear of the bound framebuffer to color.
func (c *Client) Clear(color Color) {
	c.commands <- ClearCommand{Color: color}
}

// BindProgram queues selection of the active shader program.
func (c *Client) BindProgram(prog device.Program) {
	c.commands <- BindProgramCommand{Program: prog}
}

// BindArrayBuffer queues selection of the active vertex-array object.
func (c *Client) BindArrayBuffer(abuf device.ArrayBuffer) {
	c.commands <- BindArrayBufferCommand{ArrayBuffer: abuf}
}

// BindAttribute queues configuration of vertex attribute slot to read
// count vertices from buf at the given byte offset and stride.
func (c *Client) BindAttribute(slot uint8, buf device.Buffer, count VertexCount, offset, stride uint32) {
	c.commands <- BindAttributeCommand{
		Slot:   slot,
		Buffer: buf,
		Count:  count,
		Offset: offset,
		Stride: stride,
	}
}

// BindFrameBuffer queues selection of the render target.
func (c *Client) BindFrameBuffer(fbo device.FrameBuffer) {
	c.commands <- BindFrameBufferCommand{FrameBuffer: fbo}
}

// Draw queues a draw of count vertices starting at start.
func (c *Client) Draw(start, count VertexCount) {
	c.commands <- DrawCommand{Start: start, Count: count}
}

// EndFrame queues the frame boundary. The server's next drain pass stops
// here and presents the frame.
func (c *Client) EndFrame() {
	c.commands <- EndFrameCommand{}
}

// NewBuffer creates a device buffer holding data and blocks until the
// handle is available.
func (c *Client) NewBuffer(data []float32) device.Buffer {
	reply := c.call(NewBufferCommand{Data: data}, ReplyNewBuffer)
	return reply.(NewBufferReply).Buffer
}

// NewArrayBuffer creates a vertex-array object and blocks until the
// handle is available.
func (c *Client) NewArrayBuffer() device.ArrayBuffer {
	reply := c.call(NewArrayBufferCommand{}, ReplyNewArrayBuffer)
	return reply.(NewArrayBufferReply).ArrayBuffer
}

// NewShader compiles source for the given stage and blocks until the
// handle is available.
func (c *Client) NewShader(kind device.ShaderKind, source []byte) device.Shader {
	reply := c.call(NewShaderCommand{Kind: kind, Source: source}, ReplyNewShader)
	return reply.(NewShaderReply).Shader
}

// NewProgram links shaders into a program and blocks until the handle is
// available.
func (c *Client) NewProgram(shaders []device.Shader) device.Program {
	reply := c.call(NewProgramCommand{Shaders: shaders}, ReplyNewProgram)
	return reply.(NewProgramReply).Program
}

// Close ends the session. The server's next Update reports the
// disconnect by returning false after it finishes draining. Close must
// not be called twice, and no Client method may be called after it.
func (c *Client) Close() {
	close(c.commands)
}
