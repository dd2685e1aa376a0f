package devlink

import "github.com/gogpu/devlink/device"

// Option configures a session during Init.
//
// Options cover the link itself; executor configuration travels in the
// device.Options value Init takes directly.
//
// Example:
//
//	// Default executor selection, deeper command queue:
//	client, server, err := devlink.Init(win, device.Options{},
//	    devlink.WithQueueCapacity(1024))
//
//	// Injected executor (tests, custom backends):
//	client, server, err := devlink.Init(win, device.Options{},
//	    devlink.WithDevice(dev))
type Option func(*options)

// options holds optional configuration for Init.
type options struct {
	queueCapacity int
	dev           device.Device
}

// WithQueueCapacity sets the command queue capacity. Casts block only
// once this many commands are queued and undrained. Values below one
// select DefaultQueueCapacity.
func WithQueueCapacity(n int) Option {
	return func(o *options) {
		o.queueCapacity = n
	}
}

// WithDevice injects an already constructed executor instead of building
// one from the registry. The caller keeps responsibility for the
// executor's thread affinity: the server must be driven from the
// goroutine the executor was created on.
func WithDevice(dev device.Device) Option {
	return func(o *options) {
		o.dev = dev
	}
}
