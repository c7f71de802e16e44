// Package rdsframe implements the Header, Message, and wire Frame codec:
// preamble + header + payload + end-sentinel serialize/parse, as specified
// in spec.md §3, §4.E, §4.F, and §6.
package rdsframe

// Kind identifies the role of a Message in the exchange.
type Kind uint8

const (
	Request Kind = 0
	Response Kind = 1
	Error    Kind = 2
)

// String returns a human-readable name, used in logs and the debug dump.
func (k Kind) String() string {
	switch k {
	case Request:
		return "Request"
	case Response:
		return "Response"
	case Error:
		return "Error"
	default:
		return "Unknown"
	}
}

// Header is the fixed 4-byte message metadata: kind, schema id, and a
// 16-bit sequence number used to correlate a Response with its Request.
type Header struct {
	Kind     Kind
	SchemaID uint8
	Sequence uint16
}

// HeaderSize is the serialized size of a Header in bytes.
const HeaderSize = 4

// Encode writes the header's 4 bytes in wire order: kind, schema_id,
// seq_hi, seq_lo (sequence is big-endian per spec.md §6, independent of
// the little-endian payload convention).
func (h Header) Encode() []byte {
	return []byte{
		byte(h.Kind),
		h.SchemaID,
		byte(h.Sequence >> 8),
		byte(h.Sequence),
	}
}

// decodeHeader parses a 4-byte header. Callers are responsible for slicing
// exactly HeaderSize bytes; this never fails on a correctly sized slice.
func decodeHeader(b []byte) Header {
	return Header{
		Kind:     Kind(b[0]),
		SchemaID: b[1],
		Sequence: uint16(b[2])<<8 | uint16(b[3]),
	}
}
