package devlink

import "github.com/gogpu/devlink/device"

// Color is a 4-component RGBA clear color. Alias of the device package
// definition so the vocabulary and the executor contract share one type.
type Color = device.Color

// VertexCount counts vertices in draw and attribute commands.
type VertexCount = device.VertexCount

// Presenter is the presentation collaborator. The server calls
// SwapBuffers once per completed frame, after draining a frame boundary,
// from the consumer goroutine. Window systems implement it on their
// swap-chain or GL context.
type Presenter interface {
	SwapBuffers()
}

// Init creates a bound (Client, Server) pair for one rendering session.
//
// The executor is constructed from opts through the device backend
// registry, unless WithDevice injects one. The returned Server must be
// driven from the goroutine that owns the executor's graphics context;
// the Client may be handed to the producer goroutine. The two halves
// share the session transport and live until the Client closes it.
//
// Failure to construct the executor is reported as a *InitError and is
// fatal to startup.
func Init(presenter Presenter, opts device.Options, o ...Option) (*Client, *Server, error) {
	var cfg options
	for _, opt := range o {
		opt(&cfg)
	}

	dev := cfg.dev
	if dev == nil {
		var err error
		dev, err = device.New(opts)
		if err != nil {
			return nil, nil, &InitError{Backend: opts.Backend, Err: err}
		}
	}

	commands, replies := newTransport(cfg.queueCapacity)

	client := &Client{
		commands: commands,
		replies:  replies,
	}
	server := &Server{
		commands:  commands,
		replies:   replies,
		dev:       dev,
		presenter: presenter,
	}

	logger().Info("session initialized",
		"backend", opts.Backend,
		"queue_capacity", cap(commands))

	return client, server, nil
}
