package signaling

// Conn is one bidirectional message channel to a peer.
//
// Send is fire-and-forget: it queues the message and returns false if the
// connection is already closed. The close notification is the Hub's
// Unregister call made by whoever owns the transport.
type Conn interface {
	ID() string
	Send(msg *Message) bool
	IsOpen() bool
	Close()
}
