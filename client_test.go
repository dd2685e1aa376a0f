package devlink

import (
	"errors"
	"testing"

	"github.com/gogpu/devlink/device"
)

// newTestClient wires a client directly to raw transport channels so
// tests can inspect queued commands and feed replies.
func newTestClient() (*Client, chan Command, chan Reply) {
	commands, replies := newTransport(0)
	client := &Client{
		commands: commands,
		replies:  replies,
	}
	return client, commands, replies
}

func TestCastsQueueWithoutBlocking(t *testing.T) {
	client, commands, _ := newTestClient()

	client.Clear(Color{0.1, 0.2, 0.3, 1})
	client.BindProgram(5)
	client.BindArrayBuffer(6)
	client.BindAttribute(1, 7, 3, 0, 8)
	client.BindFrameBuffer(device.DefaultFrameBuffer)
	client.Draw(0, 3)
	client.EndFrame()

	wantTypes := []CommandType{
		CmdClear, CmdBindProgram, CmdBindArrayBuffer,
		CmdBindAttribute, CmdBindFrameBuffer, CmdDraw, CmdEndFrame,
	}
	for i, want := range wantTypes {
		cmd := <-commands
		if cmd.Type() != want {
			t.Errorf("command %d type = %s, want %s", i, cmd.Type(), want)
		}
	}
	select {
	case cmd := <-commands:
		t.Errorf("unexpected extra command %s", cmd.Type())
	default:
	}
}

func TestBindAttributeCarriesAllFields(t *testing.T) {
	client, commands, _ := newTestClient()

	client.BindAttribute(3, 9, 100, 16, 32)

	cmd := (<-commands).(BindAttributeCommand)
	if cmd.Slot != 3 || cmd.Buffer != 9 || cmd.Count != 100 || cmd.Offset != 16 || cmd.Stride != 32 {
		t.Errorf("BindAttributeCommand = %+v", cmd)
	}
}

func TestCallBlocksUntilReply(t *testing.T) {
	client, commands, replies := newTestClient()

	got := make(chan device.Shader, 1)
	go func() {
		got <- client.NewShader(device.ShaderVertex, []byte("src"))
	}()

	cmd := (<-commands).(NewShaderCommand)
	if cmd.Kind != device.ShaderVertex || string(cmd.Source) != "src" {
		t.Errorf("NewShaderCommand = %+v", cmd)
	}

	select {
	case h := <-got:
		t.Fatalf("NewShader returned %d before any reply", h)
	default:
	}

	replies <- NewShaderReply{Shader: 42}
	if h := <-got; h != 42 {
		t.Errorf("NewShader = %d, want 42", h)
	}
}

func TestMismatchedReplyPanics(t *testing.T) {
	client, commands, replies := newTestClient()

	panicked := make(chan any, 1)
	go func() {
		defer func() { panicked <- recover() }()
		client.NewBuffer([]float32{1, 2, 3})
	}()

	<-commands
	replies <- NewProgramReply{Program: 1}

	v := <-panicked
	if v == nil {
		t.Fatal("call with mismatched reply did not panic")
	}
	perr, ok := v.(*ProtocolError)
	if !ok {
		t.Fatalf("panic value = %v (%T), want *ProtocolError", v, v)
	}
	if perr.Want != ReplyNewBuffer || perr.Got != ReplyNewProgram {
		t.Errorf("ProtocolError = %+v", perr)
	}
}

func TestCallPanicsWhenSessionEndsMidCall(t *testing.T) {
	client, commands, replies := newTestClient()

	panicked := make(chan any, 1)
	go func() {
		defer func() { panicked <- recover() }()
		client.NewArrayBuffer()
	}()

	<-commands
	close(replies)

	v := <-panicked
	if !errors.Is(v.(error), ErrSessionEnded) {
		t.Errorf("panic value = %v, want ErrSessionEnded", v)
	}
}

func TestCloseDisconnectsTransport(t *testing.T) {
	client, commands, _ := newTestClient()

	client.Draw(0, 3)
	client.Close()

	if _, ok := <-commands; !ok {
		t.Fatal("queued command lost on close")
	}
	if _, ok := <-commands; ok {
		t.Fatal("command channel still open after Close")
	}
}
