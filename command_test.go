package devlink

import (
	"testing"

	"github.com/gogpu/devlink/device"
)

func TestCommandTypeString(t *testing.T) {
	tests := []struct {
		cmd  Command
		want string
	}{
		{NewBufferCommand{}, "NewBuffer"},
		{NewArrayBufferCommand{}, "NewArrayBuffer"},
		{NewShaderCommand{}, "NewShader"},
		{NewProgramCommand{}, "NewProgram"},
		{ClearCommand{}, "Clear"},
		{BindProgramCommand{}, "BindProgram"},
		{BindArrayBufferCommand{}, "BindArrayBuffer"},
		{BindAttributeCommand{}, "BindAttribute"},
		{BindFrameBufferCommand{}, "BindFrameBuffer"},
		{DrawCommand{}, "Draw"},
		{EndFrameCommand{}, "EndFrame"},
	}
	for _, tt := range tests {
		if got := tt.cmd.Type().String(); got != tt.want {
			t.Errorf("%T.Type().String() = %q, want %q", tt.cmd, got, tt.want)
		}
	}
	if got := CommandType(200).String(); got != "Unknown" {
		t.Errorf("CommandType(200).String() = %q, want Unknown", got)
	}
}

func TestCommandTypeIsCall(t *testing.T) {
	calls := []Command{
		NewBufferCommand{},
		NewArrayBufferCommand{},
		NewShaderCommand{Kind: device.ShaderVertex},
		NewProgramCommand{},
	}
	for _, cmd := range calls {
		if !cmd.Type().IsCall() {
			t.Errorf("%s.IsCall() = false, want true", cmd.Type())
		}
	}

	casts := []Command{
		ClearCommand{},
		BindProgramCommand{},
		BindArrayBufferCommand{},
		BindAttributeCommand{},
		BindFrameBufferCommand{},
		DrawCommand{},
		EndFrameCommand{},
	}
	for _, cmd := range casts {
		if cmd.Type().IsCall() {
			t.Errorf("%s.IsCall() = true, want false", cmd.Type())
		}
	}
}

func TestReplyTypeString(t *testing.T) {
	tests := []struct {
		reply Reply
		want  string
	}{
		{NewBufferReply{}, "NewBuffer"},
		{NewArrayBufferReply{}, "NewArrayBuffer"},
		{NewShaderReply{}, "NewShader"},
		{NewProgramReply{}, "NewProgram"},
	}
	for _, tt := range tests {
		if got := tt.reply.Type().String(); got != tt.want {
			t.Errorf("%T.Type().String() = %q, want %q", tt.reply, got, tt.want)
		}
	}
	if got := ReplyType(200).String(); got != "Unknown" {
		t.Errorf("ReplyType(200).String() = %q, want Unknown", got)
	}
}

func TestProtocolErrorMessage(t *testing.T) {
	err := &ProtocolError{Want: ReplyNewBuffer, Got: ReplyNewShader}
	want := "devlink: protocol violation: got NewShader reply, want NewBuffer"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
