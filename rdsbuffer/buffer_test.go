package rdsbuffer

import (
	"testing"

	"github.com/rds-dev/rdscom/rdsfield"
	"github.com/rds-dev/rdscom/rdsschema"
)

func TestGetSetRoundTrip(t *testing.T) {
	proto := rdsschema.New(1).
		AddField("a", rdsfield.U8).
		AddField("b", rdsfield.U16).
		AddField("c", rdsfield.U32).
		AddField("d", rdsfield.U64).
		AddField("neg", rdsfield.I32).
		AddField("flag", rdsfield.Bool).
		AddField("ratio", rdsfield.F32)

	buf := New(proto)

	if r := Set[uint8](buf, "a", 0xAB); r.IsError() {
		t.Fatalf("set a: %v", r.Error())
	}
	if r := Set[uint16](buf, "b", 0x1234); r.IsError() {
		t.Fatalf("set b: %v", r.Error())
	}
	if r := Set[uint32](buf, "c", 0xDEADBEEF); r.IsError() {
		t.Fatalf("set c: %v", r.Error())
	}
	if r := Set[uint64](buf, "d", 0x0102030405060708); r.IsError() {
		t.Fatalf("set d: %v", r.Error())
	}
	if r := Set[int32](buf, "neg", -12345); r.IsError() {
		t.Fatalf("set neg: %v", r.Error())
	}
	if r := Set[bool](buf, "flag", true); r.IsError() {
		t.Fatalf("set flag: %v", r.Error())
	}
	if r := Set[float32](buf, "ratio", 3.5); r.IsError() {
		t.Fatalf("set ratio: %v", r.Error())
	}

	if got := Get[uint8](buf, "a").Value(); got != 0xAB {
		t.Errorf("a = %#x, want 0xAB", got)
	}
	if got := Get[uint16](buf, "b").Value(); got != 0x1234 {
		t.Errorf("b = %#x, want 0x1234", got)
	}
	if got := Get[uint32](buf, "c").Value(); got != 0xDEADBEEF {
		t.Errorf("c = %#x, want 0xDEADBEEF", got)
	}
	if got := Get[uint64](buf, "d").Value(); got != 0x0102030405060708 {
		t.Errorf("d = %#x, want 0x0102030405060708", got)
	}
	if got := Get[int32](buf, "neg").Value(); got != -12345 {
		t.Errorf("neg = %d, want -12345", got)
	}
	if got := Get[bool](buf, "flag").Value(); got != true {
		t.Errorf("flag = %v, want true", got)
	}
	if got := Get[float32](buf, "ratio").Value(); got != 3.5 {
		t.Errorf("ratio = %v, want 3.5", got)
	}
}

func TestWidthMismatchFails(t *testing.T) {
	proto := rdsschema.New(1).AddField("x", rdsfield.U16)
	buf := New(proto)

	if r := Set[uint32](buf, "x", 1); !r.IsError() {
		t.Fatal("expected width mismatch error setting u32 into a u16 field")
	}
	if r := Get[uint32](buf, "x"); !r.IsError() {
		t.Fatal("expected width mismatch error getting a u16 field as u32")
	}
}

func TestFieldNotFound(t *testing.T) {
	proto := rdsschema.New(1).AddField("x", rdsfield.U16)
	buf := New(proto)

	if r := Get[uint16](buf, "missing"); !r.IsError() {
		t.Fatal("expected field-not-found error")
	}
}

func TestFromPrototypeAndBytesSizeMismatch(t *testing.T) {
	proto := rdsschema.New(1).AddField("x", rdsfield.U16)
	r := FromPrototypeAndBytes(proto, []byte{1, 2, 3})
	if !r.IsError() {
		t.Fatal("expected buffer size mismatch error")
	}
}

func TestFromPrototypeAndBytesReservedID(t *testing.T) {
	proto := rdsschema.New(rdsschema.ReservedID).AddField("x", rdsfield.U8)
	r := FromPrototypeAndBytes(proto, []byte{0})
	if !r.IsError() {
		t.Fatal("expected invalid-prototype error for reserved id")
	}
}

func TestBufferSizeInvariant(t *testing.T) {
	proto := rdsschema.New(1).AddField("a", rdsfield.U8).AddField("b", rdsfield.U32)
	buf := New(proto)
	if buf.Size() != proto.Size() {
		t.Fatalf("buf.Size() = %d, want %d", buf.Size(), proto.Size())
	}
}
