package rdsframe

import (
	"bytes"
	"testing"

	"github.com/rds-dev/rdscom/rdsbuffer"
	"github.com/rds-dev/rdscom/rdsfield"
	"github.com/rds-dev/rdscom/rdsschema"
)

func personProto() *rdsschema.Prototype {
	return rdsschema.New(1).AddField("x", rdsfield.U16)
}

// TestS1OneFieldRoundTrip is spec.md §8 scenario S1.
func TestS1OneFieldRoundTrip(t *testing.T) {
	proto := personProto()
	buf := rdsbuffer.New(proto)
	rdsbuffer.Set[uint16](buf, "x", 0x1234)

	msg := NewMessage(Request, buf, 0x0007)
	raw := Serialize(msg)

	want := []byte{
		0x52, 0x44, 0x53, // RDS
		0x00,       // kind=Request
		0x01,       // schema id
		0x00, 0x07, // sequence
		0x34, 0x12, // payload, little-endian 0x1234
		0x45, 0x4E, 0x44, // END
	}
	if !bytes.Equal(raw, want) {
		t.Fatalf("serialized = % X, want % X", raw, want)
	}

	result := Parse(proto, raw)
	if result.IsError() {
		t.Fatalf("Parse: %v", result.Error())
	}
	parsed := result.Value()
	if parsed.Header.Kind != Request || parsed.Header.SchemaID != 1 || parsed.Header.Sequence != 7 {
		t.Fatalf("header = %+v, want kind=Request schema=1 seq=7", parsed.Header)
	}
	if got := rdsbuffer.Get[uint16](parsed.Buffer, "x").Value(); got != 0x1234 {
		t.Fatalf("x = %#x, want 0x1234", got)
	}
}

// TestS2BadPreamble is spec.md §8 scenario S2.
func TestS2BadPreamble(t *testing.T) {
	proto := personProto()
	buf := rdsbuffer.New(proto)
	raw := Serialize(NewMessage(Request, buf, 1))
	raw[0] = 0x00

	result := Parse(proto, raw)
	if !result.IsError() || result.Error().Code != "E_FRAME_BAD_PREAMBLE" {
		t.Fatalf("expected BadPreamble, got %v", result.Error())
	}
}

// TestS3BadSentinel is spec.md §8 scenario S3.
func TestS3BadSentinel(t *testing.T) {
	proto := personProto()
	buf := rdsbuffer.New(proto)
	raw := Serialize(NewMessage(Request, buf, 1))
	raw[len(raw)-1] = 0x00

	result := Parse(proto, raw)
	if !result.IsError() || result.Error().Code != "E_FRAME_BAD_SENTINEL" {
		t.Fatalf("expected BadSentinel, got %v", result.Error())
	}
}

func TestLengthLaw(t *testing.T) {
	proto := rdsschema.New(2).
		AddField("a", rdsfield.U8).
		AddField("b", rdsfield.U64)
	buf := rdsbuffer.New(proto)
	msg := NewMessage(Request, buf, 42)

	raw := Serialize(msg)
	if len(raw) != 10+proto.Size() {
		t.Fatalf("len = %d, want %d", len(raw), 10+proto.Size())
	}
}

func TestParseInvalidPrototype(t *testing.T) {
	proto := rdsschema.New(rdsschema.ReservedID)
	result := Parse(proto, []byte{0x52, 0x44, 0x53})
	if !result.IsError() || result.Error().Code != "E_INVALID_PROTOTYPE" {
		t.Fatalf("expected InvalidPrototype, got %v", result.Error())
	}
}

func TestParseTooShort(t *testing.T) {
	proto := personProto()
	result := Parse(proto, []byte{0x52, 0x44})
	if !result.IsError() || result.Error().Code != "E_FRAME_TOO_SHORT" {
		t.Fatalf("expected FrameTooShort, got %v", result.Error())
	}
}

func TestParseLengthMismatch(t *testing.T) {
	proto := personProto()
	buf := rdsbuffer.New(proto)
	raw := Serialize(NewMessage(Request, buf, 1))
	// Drop a payload byte but keep a valid-looking sentinel/preamble shell.
	truncated := append(append([]byte{}, raw[:len(raw)-4]...), raw[len(raw)-3:]...)

	result := Parse(proto, truncated)
	if !result.IsError() || result.Error().Code != "E_FRAME_LENGTH_MISMATCH" {
		t.Fatalf("expected LengthMismatch, got %v", result.Error())
	}
}

func TestPeekSchemaID(t *testing.T) {
	proto := personProto()
	buf := rdsbuffer.New(proto)
	raw := Serialize(NewMessage(Request, buf, 1))

	if got := PeekSchemaID(raw); got != 1 {
		t.Fatalf("PeekSchemaID = %d, want 1", got)
	}
	if got := PeekSchemaID([]byte{1, 2}); got != rdsschema.ReservedID {
		t.Fatalf("PeekSchemaID(short) = %d, want reserved id", got)
	}
}

func TestNewResponseCopiesSequence(t *testing.T) {
	proto := personProto()
	buf := rdsbuffer.New(proto)
	req := NewMessage(Request, buf, 99)

	respBuf := rdsbuffer.New(proto)
	resp := NewResponse(req, respBuf)

	if resp.Header.Sequence != req.Header.Sequence {
		t.Fatalf("response sequence = %d, want %d", resp.Header.Sequence, req.Header.Sequence)
	}
	if resp.Header.Kind != Response {
		t.Fatalf("response kind = %v, want Response", resp.Header.Kind)
	}
}
