package devlink

// The transport is a pair of Go channels, one per direction, shared by
// the bound Client and Server. Channel FIFO ordering is the ordering
// guarantee of the protocol: commands arrive in send order, and replies
// arrive in the order the server dispatched their calls. Closing the
// command channel is the disconnect signal.

// DefaultQueueCapacity is the command channel capacity used when
// WithQueueCapacity is not given. Casts block only when the consumer has
// fallen this many commands behind.
const DefaultQueueCapacity = 256

// newTransport creates the channel pair for one session.
//
// The reply channel is shallow on purpose: a call blocks its issuer until
// the reply arrives, so at most a handful of replies are ever in flight.
// Buffering one lets the server finish its dispatch without waiting for
// the client to wake.
func newTransport(queueCapacity int) (chan Command, chan Reply) {
	if queueCapacity <= 0 {
		queueCapacity = DefaultQueueCapacity
	}
	return make(chan Command, queueCapacity), make(chan Reply, 1)
}
