package devlink

import "github.com/gogpu/devlink/device"

// Server is the consumer-side half of a session. It owns the executor
// exclusively: nothing else may touch the executor while the Server
// lives, and the Server itself is thread-affine because the executor is.
//
// Thread safety: a Server must be driven from the single goroutine (and,
// for executors backed by a native graphics context, the single OS
// thread) it was created for. That is a structural contract, established
// at construction and not checked at runtime. Do not move a Server
// across goroutines and do not call Update concurrently.
type Server struct {
	commands <-chan Command
	replies  chan<- Reply

	dev       device.Device
	presenter Presenter
}

// Device returns the executor the server drives. Intended for teardown
// after the session ends; calling into it while Update may still run
// breaks the single-owner contract.
func (s *Server) Device() device.Device {
	return s.dev
}

// Update drains the commands queued since the last call and dispatches
// each to the executor, in send order.
//
// A drain pass ends at the first of: the frame boundary (EndFrame), with
// later commands left for the next pass; an empty queue; or transport
// disconnect. Presentation runs only when a frame boundary was reached,
// so an idle tick never swaps an unfinished frame. Call commands send
// their reply before draining continues, which keeps replies in dispatch
// order.
//
// Update never blocks waiting for new commands. It returns true while
// the session continues and false once the client has disconnected;
// after a false return the session is over and Update must not be called
// again.
func (s *Server) Update() bool {
	endFrame := false
drain:
	for {
		select {
		case cmd, ok := <-s.commands:
			if !ok {
				logger().Debug("session disconnected")
				return false
			}
			switch c := cmd.(type) {
			case ClearCommand:
				s.dev.Clear(c.Color)
			case BindProgramCommand:
				s.dev.BindProgram(c.Program)
			case BindArrayBufferCommand:
				s.dev.BindArrayBuffer(c.ArrayBuffer)
			case BindAttributeCommand:
				s.dev.BindAttribute(c.Slot, c.Count, c.Offset, c.Stride)
			case BindFrameBufferCommand:
				s.dev.BindFrameBuffer(c.FrameBuffer)
			case DrawCommand:
				s.dev.Draw(c.Start, c.Count)
			case EndFrameCommand:
				endFrame = true
				break drain
			case NewBufferCommand:
				s.replies <- NewBufferReply{Buffer: s.dev.CreateBuffer(c.Data)}
			case NewArrayBufferCommand:
				s.replies <- NewArrayBufferReply{ArrayBuffer: s.dev.CreateArrayBuffer()}
			case NewShaderCommand:
				s.replies <- NewShaderReply{Shader: s.dev.CreateShader(c.Kind, c.Source)}
			case NewProgramCommand:
				s.replies <- NewProgramReply{Program: s.dev.CreateProgram(c.Shaders)}
			default:
				// The command set is closed; a Command from outside
				// this package cannot be dispatched.
				panic("devlink: unknown command type " + cmd.Type().String())
			}
		default:
			break drain
		}
	}
	if endFrame {
		s.presenter.SwapBuffers()
	}
	return true
}
