// Package devlink bridges a producer goroutine issuing graphics commands
// and a consumer goroutine that exclusively owns a thread-affine graphics
// device.
//
// # Overview
//
// Graphics device contexts may only be touched from the thread that
// created them, while application logic usually runs elsewhere. devlink
// splits a rendering session into two halves joined by an ordered,
// in-process transport:
//
//   - Client runs on the producer side. Resource creation (NewBuffer,
//     NewShader, NewProgram, ...) is a call: it blocks until the device
//     hands back a handle. Everything else (Clear, Bind*, Draw,
//     EndFrame) is a cast: it queues and returns immediately.
//   - Server runs on the consumer side and owns the device executor.
//     Once per tick the consumer calls Update, which drains queued
//     commands in order, stops at the frame boundary, and presents the
//     completed frame.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/devlink"
//	    "github.com/gogpu/devlink/device"
//	    _ "github.com/gogpu/devlink/device/wgpu"
//	)
//
//	client, server, err := devlink.Init(window, device.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Producer goroutine:
//	go func() {
//	    buf := client.NewBuffer([]float32{0, 0, 1, 0, 0, 1})
//	    client.BindAttribute(0, buf, 3, 0, 8)
//	    client.Clear(devlink.Color{0, 0, 0, 1})
//	    client.Draw(0, 3)
//	    client.EndFrame()
//	}()
//
//	// Consumer (main) thread:
//	for server.Update() {
//	    window.PollEvents()
//	}
//
// # Ordering
//
// Commands execute in send order. Every call produces exactly one reply
// of the matching variant, delivered before any later call's reply. A
// mismatched reply is a bug in the bridge itself and panics with a
// *ProtocolError rather than returning a recoverable error.
//
// # Shutdown
//
// The producer ends the session with Client.Close. The server finishes
// draining whatever was queued, then Update returns false exactly once;
// the consumer must stop calling it.
package devlink
