package devlink

import (
	"fmt"
	"testing"

	"github.com/gogpu/devlink/device"
)

// scriptDevice is a scripted executor that records every dispatched
// operation in order and mints sequential handles per resource type.
type scriptDevice struct {
	ops []string

	nextBuffer      uint32
	nextArrayBuffer uint32
	nextShader      uint32
	nextProgram     uint32
}

func (d *scriptDevice) record(format string, args ...any) {
	d.ops = append(d.ops, fmt.Sprintf(format, args...))
}

func (d *scriptDevice) Clear(c device.Color) { d.record("clear %v", c) }
func (d *scriptDevice) BindProgram(p device.Program) {
	d.record("bind_program %d", p)
}
func (d *scriptDevice) BindArrayBuffer(a device.ArrayBuffer) {
	d.record("bind_array_buffer %d", a)
}
func (d *scriptDevice) BindAttribute(slot uint8, count device.VertexCount, offset, stride uint32) {
	d.record("bind_attribute %d %d %d %d", slot, count, offset, stride)
}
func (d *scriptDevice) BindFrameBuffer(f device.FrameBuffer) {
	d.record("bind_frame_buffer %d", f)
}
func (d *scriptDevice) Draw(start, count device.VertexCount) {
	d.record("draw %d %d", start, count)
}
func (d *scriptDevice) CreateBuffer(data []float32) device.Buffer {
	d.nextBuffer++
	d.record("create_buffer %d", len(data))
	return device.Buffer(d.nextBuffer)
}
func (d *scriptDevice) CreateArrayBuffer() device.ArrayBuffer {
	d.nextArrayBuffer++
	d.record("create_array_buffer")
	return device.ArrayBuffer(d.nextArrayBuffer)
}
func (d *scriptDevice) CreateShader(kind device.ShaderKind, source []byte) device.Shader {
	d.nextShader++
	d.record("create_shader %s %d", kind, len(source))
	return device.Shader(d.nextShader)
}
func (d *scriptDevice) CreateProgram(shaders []device.Shader) device.Program {
	d.nextProgram++
	d.record("create_program %d", len(shaders))
	return device.Program(d.nextProgram)
}

// countPresenter counts SwapBuffers calls.
type countPresenter struct {
	swaps int
}

func (p *countPresenter) SwapBuffers() { p.swaps++ }

// newTestServer wires a server directly to raw transport channels so
// tests can queue commands and inspect replies without a client.
func newTestServer(dev device.Device, p Presenter) (*Server, chan Command, chan Reply) {
	commands, replies := newTransport(0)
	server := &Server{
		commands:  commands,
		replies:   replies,
		dev:       dev,
		presenter: p,
	}
	return server, commands, replies
}

func TestUpdateDrainsCastsInOrder(t *testing.T) {
	dev := &scriptDevice{}
	pres := &countPresenter{}
	server, commands, _ := newTestServer(dev, pres)

	commands <- ClearCommand{Color: Color{0, 0, 0, 1}}
	commands <- DrawCommand{Start: 0, Count: 3}
	commands <- EndFrameCommand{}

	if !server.Update() {
		t.Fatal("Update returned false, want true")
	}

	want := []string{"clear [0 0 0 1]", "draw 0 3"}
	if len(dev.ops) != len(want) {
		t.Fatalf("dispatched ops = %v, want %v", dev.ops, want)
	}
	for i := range want {
		if dev.ops[i] != want[i] {
			t.Errorf("op %d = %q, want %q", i, dev.ops[i], want[i])
		}
	}
	if pres.swaps != 1 {
		t.Errorf("swaps = %d, want 1", pres.swaps)
	}
}

func TestUpdateEmptyQueue(t *testing.T) {
	dev := &scriptDevice{}
	pres := &countPresenter{}
	server, _, _ := newTestServer(dev, pres)

	if !server.Update() {
		t.Fatal("Update returned false, want true")
	}
	if len(dev.ops) != 0 {
		t.Errorf("dispatched ops = %v, want none", dev.ops)
	}
	if pres.swaps != 0 {
		t.Errorf("swaps = %d, want 0 (no frame boundary reached)", pres.swaps)
	}
}

func TestUpdateStopsAtFrameBoundary(t *testing.T) {
	dev := &scriptDevice{}
	pres := &countPresenter{}
	server, commands, _ := newTestServer(dev, pres)

	commands <- DrawCommand{Start: 0, Count: 3}
	commands <- EndFrameCommand{}
	commands <- ClearCommand{Color: Color{1, 0, 0, 1}}

	if !server.Update() {
		t.Fatal("first Update returned false, want true")
	}
	if len(dev.ops) != 1 || dev.ops[0] != "draw 0 3" {
		t.Fatalf("first pass ops = %v, want only the draw", dev.ops)
	}
	if pres.swaps != 1 {
		t.Errorf("swaps after first pass = %d, want 1", pres.swaps)
	}

	// The clear queued behind the boundary belongs to the next pass.
	if !server.Update() {
		t.Fatal("second Update returned false, want true")
	}
	if len(dev.ops) != 2 || dev.ops[1] != "clear [1 0 0 1]" {
		t.Fatalf("second pass ops = %v, want the clear appended", dev.ops)
	}
	if pres.swaps != 1 {
		t.Errorf("swaps after second pass = %d, want 1 (no boundary drained)", pres.swaps)
	}
}

func TestUpdateDispatchesCallsAndRepliesInOrder(t *testing.T) {
	dev := &scriptDevice{}
	server, commands, replies := newTestServer(dev, &countPresenter{})

	commands <- NewShaderCommand{Kind: device.ShaderVertex, Source: []byte("vs")}
	commands <- NewShaderCommand{Kind: device.ShaderFragment, Source: []byte("fs")}

	// Consume replies concurrently: the reply channel is shallow on
	// purpose, sized for a blocked caller, not a batch.
	got := make(chan []Reply, 1)
	go func() {
		var rs []Reply
		for i := 0; i < 3; i++ {
			rs = append(rs, <-replies)
		}
		got <- rs
	}()

	commands <- NewProgramCommand{Shaders: []device.Shader{1, 2}}

	if !server.Update() {
		t.Fatal("Update returned false, want true")
	}

	rs := <-got
	wantTypes := []ReplyType{ReplyNewShader, ReplyNewShader, ReplyNewProgram}
	for i, want := range wantTypes {
		if rs[i].Type() != want {
			t.Errorf("reply %d type = %s, want %s", i, rs[i].Type(), want)
		}
	}

	// Handles come back in dispatch order.
	if h := rs[0].(NewShaderReply).Shader; h != 1 {
		t.Errorf("first shader handle = %d, want 1", h)
	}
	if h := rs[1].(NewShaderReply).Shader; h != 2 {
		t.Errorf("second shader handle = %d, want 2", h)
	}
	if h := rs[2].(NewProgramReply).Program; h != 1 {
		t.Errorf("program handle = %d, want 1", h)
	}

	wantOps := []string{"create_shader vertex 2", "create_shader fragment 2", "create_program 2"}
	for i, want := range wantOps {
		if dev.ops[i] != want {
			t.Errorf("op %d = %q, want %q", i, dev.ops[i], want)
		}
	}
}

func TestUpdateAfterDisconnect(t *testing.T) {
	dev := &scriptDevice{}
	pres := &countPresenter{}
	server, commands, _ := newTestServer(dev, pres)

	commands <- DrawCommand{Start: 0, Count: 3}
	close(commands)

	// Queued work is still drained before the disconnect is observed.
	if server.Update() {
		t.Fatal("Update returned true after disconnect, want false")
	}
	if len(dev.ops) != 1 {
		t.Errorf("dispatched ops = %v, want the queued draw", dev.ops)
	}
	if pres.swaps != 0 {
		t.Errorf("swaps = %d, want 0", pres.swaps)
	}

	// No further dispatch happens once the session is over.
	if server.Update() {
		t.Error("Update returned true on second call after disconnect")
	}
	if len(dev.ops) != 1 {
		t.Errorf("ops grew after disconnect: %v", dev.ops)
	}
}

func TestServerDropsBufferHandleAtAttributeDispatch(t *testing.T) {
	dev := &scriptDevice{}
	server, commands, _ := newTestServer(dev, &countPresenter{})

	commands <- BindAttributeCommand{Slot: 2, Buffer: 7, Count: 3, Offset: 4, Stride: 8}

	if !server.Update() {
		t.Fatal("Update returned false, want true")
	}
	// The executor contract takes no buffer argument; the attribute
	// reads from the executor's current buffer.
	if dev.ops[0] != "bind_attribute 2 3 4 8" {
		t.Errorf("op = %q, want %q", dev.ops[0], "bind_attribute 2 3 4 8")
	}
}
