package devlink

import "github.com/gogpu/devlink/device"

// ReplyType identifies the type of a reply. There is exactly one reply
// type per call command type.
type ReplyType uint8

const (
	ReplyNewBuffer      ReplyType = iota // answers CmdNewBuffer
	ReplyNewArrayBuffer                  // answers CmdNewArrayBuffer
	ReplyNewShader                       // answers CmdNewShader
	ReplyNewProgram                      // answers CmdNewProgram
)

// replyTypeNames maps ReplyType values to their string representation.
var replyTypeNames = [...]string{
	ReplyNewBuffer:      "NewBuffer",
	ReplyNewArrayBuffer: "NewArrayBuffer",
	ReplyNewShader:      "NewShader",
	ReplyNewProgram:     "NewProgram",
}

// String returns the string representation of a ReplyType.
func (r ReplyType) String() string {
	if int(r) < len(replyTypeNames) {
		return replyTypeNames[r]
	}
	return "Unknown"
}

// Reply is the interface implemented by all reply types. Replies travel
// from the server back to the client, one per call command, in the order
// the calls were dispatched.
type Reply interface {
	// Type returns the ReplyType for this reply.
	Type() ReplyType
}

// NewBufferReply carries the handle minted for a NewBufferCommand.
type NewBufferReply struct {
	Buffer device.Buffer
}

// Type implements Reply.
func (NewBufferReply) Type() ReplyType { return ReplyNewBuffer }

// NewArrayBufferReply carries the handle minted for a NewArrayBufferCommand.
type NewArrayBufferReply struct {
	ArrayBuffer device.ArrayBuffer
}

// Type implements Reply.
func (NewArrayBufferReply) Type() ReplyType { return ReplyNewArrayBuffer }

// NewShaderReply carries the handle minted for a NewShaderCommand.
type NewShaderReply struct {
	Shader device.Shader
}

// Type implements Reply.
func (NewShaderReply) Type() ReplyType { return ReplyNewShader }

// NewProgramReply carries the handle minted for a NewProgramCommand.
type NewProgramReply struct {
	Program device.Program
}

// Type implements Reply.
func (NewProgramReply) Type() ReplyType { return ReplyNewProgram }
