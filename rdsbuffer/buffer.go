// Package rdsbuffer implements Buffer: a byte array shaped by one Prototype,
// with typed, size-checked field access, as specified in spec.md §3/§4.D.
package rdsbuffer

import (
	"encoding/binary"
	"math"

	"github.com/rds-dev/rdscom/rdserrors"
	"github.com/rds-dev/rdscom/rdsfield"
	"github.com/rds-dev/rdscom/rdsresult"
	"github.com/rds-dev/rdscom/rdsschema"
)

// Buffer is a concrete byte-backed instance of a Prototype. len(Bytes) is
// always equal to Prototype.Size().
type Buffer struct {
	proto *rdsschema.Prototype
	bytes []byte
}

// New creates a zeroed Buffer shaped by proto.
func New(proto *rdsschema.Prototype) *Buffer {
	return &Buffer{
		proto: proto,
		bytes: make([]byte, proto.Size()),
	}
}

// FromPrototypeAndBytes wraps an existing byte slice as a Buffer, failing
// if the prototype is the reserved invalid id or the length doesn't match.
func FromPrototypeAndBytes(proto *rdsschema.Prototype, data []byte) rdsresult.Result[*Buffer] {
	if proto.Identifier() == rdsschema.ReservedID {
		return rdsresult.Err[*Buffer](rdserrors.New(rdserrors.CodeInvalidPrototype, "invalid prototype: %d", proto.Identifier()))
	}
	if len(data) != proto.Size() {
		return rdsresult.Err[*Buffer](rdserrors.New(rdserrors.CodeBufferSize, "buffer size mismatch, expected %d, got %d", proto.Size(), len(data)))
	}
	b := make([]byte, len(data))
	copy(b, data)
	return rdsresult.Ok(&Buffer{proto: proto, bytes: b})
}

// Prototype returns the buffer's shaping prototype.
func (b *Buffer) Prototype() *rdsschema.Prototype { return b.proto }

// Bytes returns a copy of the raw backing bytes.
func (b *Buffer) Bytes() []byte {
	out := make([]byte, len(b.bytes))
	copy(out, b.bytes)
	return out
}

// Size returns the buffer's byte length.
func (b *Buffer) Size() int { return len(b.bytes) }

// Scalar is the set of Go types usable with Get/Set, matching the fixed
// widths FieldKind enumerates.
type Scalar interface {
	uint8 | int8 | bool | uint16 | int16 | uint32 | int32 | uint64 | int64 | float32 | float64
}

func sizeOf[T Scalar]() int {
	var v T
	switch any(v).(type) {
	case uint8, int8, bool:
		return 1
	case uint16, int16:
		return 2
	case uint32, int32, float32:
		return 4
	case uint64, int64, float64:
		return 8
	default:
		return 0
	}
}

// Get reads the named field as T. It fails if the field doesn't exist or
// if sizeof(T) doesn't match the field's declared width.
func Get[T Scalar](b *Buffer, name string) rdsresult.Result[T] {
	info := b.proto.FindField(name)
	if info.IsError() {
		return rdsresult.Err[T](info.Error())
	}
	f := info.Value()
	width := rdsfield.Width(f.Kind)
	if sizeOf[T]() != width {
		return rdsresult.Err[T](rdserrors.New(rdserrors.CodeFieldWidth, "field width mismatch: %s", name))
	}

	raw := b.bytes[f.Offset : f.Offset+width]
	return rdsresult.Ok(decodeScalar[T](raw))
}

// Set writes value into the named field. It fails the same way as Get.
func Set[T Scalar](b *Buffer, name string, value T) rdsresult.Result[T] {
	info := b.proto.FindField(name)
	if info.IsError() {
		return rdsresult.Err[T](info.Error())
	}
	f := info.Value()
	width := rdsfield.Width(f.Kind)
	if sizeOf[T]() != width {
		return rdsresult.Err[T](rdserrors.New(rdserrors.CodeFieldWidth, "field width mismatch: %s", name))
	}

	encodeScalar(b.bytes[f.Offset:f.Offset+width], value)
	return rdsresult.Ok(value)
}

// decodeScalar and encodeScalar are the memcpy-equivalent accessors called
// out in spec.md §4.D. Payload scalars are little-endian on the wire (the
// source uses host-native order; see SPEC_FULL.md §4 for the divergence).
func decodeScalar[T Scalar](raw []byte) T {
	var out T
	switch p := any(&out).(type) {
	case *uint8:
		*p = raw[0]
	case *int8:
		*p = int8(raw[0])
	case *bool:
		*p = raw[0] != 0
	case *uint16:
		*p = binary.LittleEndian.Uint16(raw)
	case *int16:
		*p = int16(binary.LittleEndian.Uint16(raw))
	case *uint32:
		*p = binary.LittleEndian.Uint32(raw)
	case *int32:
		*p = int32(binary.LittleEndian.Uint32(raw))
	case *float32:
		*p = math.Float32frombits(binary.LittleEndian.Uint32(raw))
	case *uint64:
		*p = binary.LittleEndian.Uint64(raw)
	case *int64:
		*p = int64(binary.LittleEndian.Uint64(raw))
	case *float64:
		*p = math.Float64frombits(binary.LittleEndian.Uint64(raw))
	}
	return out
}

func encodeScalar[T Scalar](dst []byte, value T) {
	switch v := any(value).(type) {
	case uint8:
		dst[0] = v
	case int8:
		dst[0] = byte(v)
	case bool:
		if v {
			dst[0] = 1
		} else {
			dst[0] = 0
		}
	case uint16:
		binary.LittleEndian.PutUint16(dst, v)
	case int16:
		binary.LittleEndian.PutUint16(dst, uint16(v))
	case uint32:
		binary.LittleEndian.PutUint32(dst, v)
	case int32:
		binary.LittleEndian.PutUint32(dst, uint32(v))
	case float32:
		binary.LittleEndian.PutUint32(dst, math.Float32bits(v))
	case uint64:
		binary.LittleEndian.PutUint64(dst, v)
	case int64:
		binary.LittleEndian.PutUint64(dst, uint64(v))
	case float64:
		binary.LittleEndian.PutUint64(dst, math.Float64bits(v))
	}
}
