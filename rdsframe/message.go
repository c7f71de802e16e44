package rdsframe

import (
	"fmt"
	"log/slog"

	"github.com/rds-dev/rdscom/rdsbuffer"
	"github.com/rds-dev/rdscom/rdsschema"
)

// Message is a Header plus a Buffer: the unit the wire carries.
// The constructors in this package derive Header.SchemaID from
// Buffer.Prototype().Identifier(). Parse takes Header.SchemaID from the
// frame bytes and does not check it against the prototype it was given.
type Message struct {
	Header Header
	Buffer *rdsbuffer.Buffer
}

// NewMessage builds a Message of the given kind and explicit sequence
// number. Constructing a Response this way (rather than via NewResponse)
// is legal but logged, mirroring the source's serveMessageConstructorWarnings:
// a hand-built Response doesn't make clear what request it answers.
func NewMessage(kind Kind, buf *rdsbuffer.Buffer, sequence uint16) Message {
	id := buf.Prototype().Identifier()
	if id == rdsschema.ReservedID {
		slog.Warn("rdsframe: message built against the reserved invalid prototype id", "id", id)
	}
	if kind == Response {
		slog.Warn("rdsframe: response message built directly; prefer NewResponse so the sequence is copied from the request")
	}
	return Message{
		Header: Header{Kind: kind, SchemaID: id, Sequence: sequence},
		Buffer: buf,
	}
}

// NewResponse builds a Response to request, copying its sequence number so
// the engine's pending-ack table can correlate the two (spec.md §3:
// "Header.sequence == originating_request.Header.sequence").
func NewResponse(request Message, buf *rdsbuffer.Buffer) Message {
	return Message{
		Header: Header{Kind: Response, SchemaID: buf.Prototype().Identifier(), Sequence: request.Header.Sequence},
		Buffer: buf,
	}
}

// NewError builds an Error reply to request, copying its sequence number
// the same way NewResponse does.
func NewError(request Message, buf *rdsbuffer.Buffer) Message {
	return Message{
		Header: Header{Kind: Error, SchemaID: buf.Prototype().Identifier(), Sequence: request.Header.Sequence},
		Buffer: buf,
	}
}

// String renders a one-line summary of the message.
func (m Message) String() string {
	return fmt.Sprintf("Message{kind=%s schema=%d seq=%d size=%d}", m.Header.Kind, m.Header.SchemaID, m.Header.Sequence, m.Buffer.Size())
}
