package rdsframe

import (
	"fmt"
	"io"

	"github.com/rds-dev/rdscom/rdserrors"
	"github.com/rds-dev/rdscom/rdsbuffer"
	"github.com/rds-dev/rdscom/rdsresult"
	"github.com/rds-dev/rdscom/rdsschema"
)

var (
	preamble = [3]byte{'R', 'D', 'S'}
	sentinel = [3]byte{'E', 'N', 'D'}
)

// PeekSchemaID returns byte 4 of a raw frame (where schema_id lives, after
// the 3-byte preamble and the kind byte) without fully parsing it, or the
// reserved invalid id if the slice is too short to contain one. Used by the
// exchange engine to pick a prototype before it knows the frame is
// otherwise well-formed.
func PeekSchemaID(b []byte) uint8 {
	if len(b) <= 4 {
		return rdsschema.ReservedID
	}
	return b[4]
}

// Serialize writes preamble, header, payload, and sentinel in that exact
// order. Total length is always 10 + msg.Buffer.Size().
func Serialize(msg Message) []byte {
	payload := msg.Buffer.Bytes()
	out := make([]byte, 0, 10+len(payload))
	out = append(out, preamble[:]...)
	out = append(out, msg.Header.Encode()...)
	out = append(out, payload...)
	out = append(out, sentinel[:]...)
	return out
}

// Parse decodes a raw frame against proto, in the failure-mode order
// specified in spec.md §4.F:
//  1. proto reserved -> InvalidPrototype
//  2. too short      -> FrameTooShort
//  3. bad preamble   -> BadPreamble
//  4. bad sentinel   -> BadSentinel
//  5. header short   -> HeaderTooShort
//  6. length mismatch with 10+proto.Size() -> LengthMismatch
//  7. buffer construction errors propagate
func Parse(proto *rdsschema.Prototype, data []byte) rdsresult.Result[Message] {
	if proto.Identifier() == rdsschema.ReservedID {
		return rdsresult.Err[Message](rdserrors.New(rdserrors.CodeInvalidPrototype, "invalid prototype: %d", proto.Identifier()))
	}
	if len(data) <= 3 {
		return rdsresult.Err[Message](rdserrors.New(rdserrors.CodeFrameTooShort, "frame too short: %d bytes", len(data)))
	}
	if data[0] != preamble[0] || data[1] != preamble[1] || data[2] != preamble[2] {
		return rdsresult.Err[Message](rdserrors.New(rdserrors.CodeBadPreamble, "bad preamble"))
	}
	if data[len(data)-3] != sentinel[0] || data[len(data)-2] != sentinel[1] || data[len(data)-1] != sentinel[2] {
		return rdsresult.Err[Message](rdserrors.New(rdserrors.CodeBadSentinel, "bad sentinel"))
	}
	if len(data) < 3+HeaderSize {
		return rdsresult.Err[Message](rdserrors.New(rdserrors.CodeHeaderTooShort, "header too short"))
	}

	expected := 10 + proto.Size()
	if len(data) != expected {
		return rdsresult.Err[Message](rdserrors.New(rdserrors.CodeLengthMismatch, "length mismatch, expected %d, got %d", expected, len(data)))
	}

	header := decodeHeader(data[3 : 3+HeaderSize])
	payload := data[3+HeaderSize : len(data)-3]

	bufRes := rdsbuffer.FromPrototypeAndBytes(proto, payload)
	if bufRes.IsError() {
		return rdsresult.Err[Message](bufRes.Error())
	}

	return rdsresult.Ok(Message{Header: header, Buffer: bufRes.Value()})
}

// DebugDump writes a human-readable, section-by-section view of the
// serialized message (preamble / header / payload / sentinel), matching
// the source library's Message::printClean.
func DebugDump(w io.Writer, msg Message) {
	raw := Serialize(msg)
	fmt.Fprintf(w, "Message:\n")
	fmt.Fprintf(w, "  Preamble: %s\n", raw[0:3])
	fmt.Fprintf(w, "  Header:   % x\n", raw[3:3+HeaderSize])
	fmt.Fprintf(w, "  Payload:  % x\n", raw[3+HeaderSize:len(raw)-3])
	fmt.Fprintf(w, "  Sentinel: %s\n", raw[len(raw)-3:])
}
