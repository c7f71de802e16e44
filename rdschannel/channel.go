// Package rdschannel declares the abstract byte sink/source the exchange
// engine sends and receives frames over, as specified in spec.md §4.G.
// Concrete transports (UART, TCP, websocket) are external collaborators
// that satisfy this interface; see transport/wschannel and
// transport/httpchannel for two real implementations, and rdsloopback for
// the in-memory test double.
package rdschannel

// Channel is the abstract byte-channel the exchange engine is driven over.
// Receive must be non-blocking: an empty return means "no bytes right now,"
// not an error. Send is synchronous and blocks only as far as the
// underlying transport blocks.
type Channel interface {
	// Send writes raw, already-serialized frame bytes to the channel.
	Send(data []byte) error

	// Receive returns any bytes currently available, or nil if none are
	// waiting. It never blocks.
	Receive() []byte
}
