package devlink

import "github.com/gogpu/devlink/device"

// CommandType identifies the type of a command. Call commands come first
// in the enumeration, casts after them; IsCall relies on that split.
type CommandType uint8

const (
	// Call commands (each produces exactly one reply)
	CmdNewBuffer      CommandType = iota // create a data buffer
	CmdNewArrayBuffer                    // create a vertex-array object
	CmdNewShader                         // compile a shader
	CmdNewProgram                        // link a program

	// Cast commands (one-way, no reply)
	CmdClear           // clear the bound framebuffer
	CmdBindProgram     // select the active program
	CmdBindArrayBuffer // select the active vertex-array object
	CmdBindAttribute   // configure a vertex attribute slot
	CmdBindFrameBuffer // select the render target
	CmdDraw            // draw a vertex range
	CmdEndFrame        // frame boundary marker
)

// commandTypeNames maps CommandType values to their string representation.
var commandTypeNames = [...]string{
	CmdNewBuffer:       "NewBuffer",
	CmdNewArrayBuffer:  "NewArrayBuffer",
	CmdNewShader:       "NewShader",
	CmdNewProgram:      "NewProgram",
	CmdClear:           "Clear",
	CmdBindProgram:     "BindProgram",
	CmdBindArrayBuffer: "BindArrayBuffer",
	CmdBindAttribute:   "BindAttribute",
	CmdBindFrameBuffer: "BindFrameBuffer",
	CmdDraw:            "Draw",
	CmdEndFrame:        "EndFrame",
}

// String returns the string representation of a CommandType.
func (c CommandType) String() string {
	if int(c) < len(commandTypeNames) {
		return commandTypeNames[c]
	}
	return "Unknown"
}

// IsCall reports whether commands of this type produce a reply.
func (c CommandType) IsCall() bool {
	return c <= CmdNewProgram
}

// Command is the interface implemented by all command types. Commands
// travel from the client to the server over the session transport; the
// set of implementations in this package is closed, and the server
// treats any other Command as a protocol violation.
type Command interface {
	// Type returns the CommandType for this command.
	Type() CommandType
}

// --------------------------------------------------------------------------
// Call Commands
// --------------------------------------------------------------------------

// NewBufferCommand requests creation of a data buffer holding data.
// Answered by a NewBufferReply.
type NewBufferCommand struct {
	// Data is the buffer content, uploaded verbatim.
	Data []float32
}

// Type implements Command.
func (NewBufferCommand) Type() CommandType { return CmdNewBuffer }

// NewArrayBufferCommand requests creation of a vertex-array object.
// Answered by a NewArrayBufferReply.
type NewArrayBufferCommand struct{}

// Type implements Command.
func (NewArrayBufferCommand) Type() CommandType { return CmdNewArrayBuffer }

// NewShaderCommand requests compilation of shader source.
// Answered by a NewShaderReply.
type NewShaderCommand struct {
	// Kind is the pipeline stage to compile for.
	Kind device.ShaderKind
	// Source is the shader source bytes.
	Source []byte
}

// Type implements Command.
func (NewShaderCommand) Type() CommandType { return CmdNewShader }

// NewProgramCommand requests linking of shaders into a program.
// Answered by a NewProgramReply.
type NewProgramCommand struct {
	// Shaders are the handles to link, previously minted by NewShader.
	Shaders []device.Shader
}

// Type implements Command.
func (NewProgramCommand) Type() CommandType { return CmdNewProgram }

// --------------------------------------------------------------------------
// Cast Commands
// --------------------------------------------------------------------------

// ClearCommand clears the bound framebuffer to a color.
type ClearCommand struct {
	// Color is the clear color.
	Color Color
}

// Type implements Command.
func (ClearCommand) Type() CommandType { return CmdClear }

// BindProgramCommand selects the active shader program.
type BindProgramCommand struct {
	// Program was previously minted by a NewProgram call.
	Program device.Program
}

// Type implements Command.
func (BindProgramCommand) Type() CommandType { return CmdBindProgram }

// BindArrayBufferCommand selects the active vertex-array object.
type BindArrayBufferCommand struct {
	// ArrayBuffer was previously minted by a NewArrayBuffer call.
	ArrayBuffer device.ArrayBuffer
}

// Type implements Command.
func (BindArrayBufferCommand) Type() CommandType { return CmdBindArrayBuffer }

// BindAttributeCommand configures a vertex attribute slot.
type BindAttributeCommand struct {
	// Slot is the attribute index.
	Slot uint8
	// Buffer supplies the attribute data.
	Buffer device.Buffer
	// Count is the number of vertices the attribute covers.
	Count VertexCount
	// Offset is the byte offset of the first element.
	Offset uint32
	// Stride is the byte stride between elements.
	Stride uint32
}

// Type implements Command.
func (BindAttributeCommand) Type() CommandType { return CmdBindAttribute }

// BindFrameBufferCommand selects the render target.
type BindFrameBufferCommand struct {
	// FrameBuffer is the target framebuffer.
	FrameBuffer device.FrameBuffer
}

// Type implements Command.
func (BindFrameBufferCommand) Type() CommandType { return CmdBindFrameBuffer }

// DrawCommand draws a contiguous vertex range.
type DrawCommand struct {
	// Start is the first vertex.
	Start VertexCount
	// Count is the number of vertices.
	Count VertexCount
}

// Type implements Command.
func (DrawCommand) Type() CommandType { return CmdDraw }

// EndFrameCommand marks the frame boundary. The server stops its drain
// pass here and presents the completed frame; commands queued after it
// wait for the next pass.
type EndFrameCommand struct{}

// Type implements Command.
func (EndFrameCommand) Type() CommandType { return CmdEndFrame }
