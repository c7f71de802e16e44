// Package rdsschema implements the Prototype: a named record schema of
// ordered, typed fields identified by an 8-bit tag, as specified in
// spec.md §3/§4.C.
package rdsschema

import (
	"sort"

	"github.com/rds-dev/rdscom/rdserrors"
	"github.com/rds-dev/rdscom/rdsfield"
	"github.com/rds-dev/rdscom/rdsresult"
)

// ReservedID is the prototype identifier that marks "invalid/unset". It
// must never be assigned to a real prototype.
const ReservedID uint8 = 0x50

type field struct {
	name   string
	offset int
	kind   rdsfield.Kind
}

// Prototype is a record schema: an identifier plus an ordered set of named,
// typed fields. Field insertion order determines byte offsets (prefix sum
// of prior field widths); re-adding a field by name replaces it and moves
// it to the tail, per spec.md §3 invariant (iv).
type Prototype struct {
	id     uint8
	fields []field
	index  map[string]int
	size   int
}

// New creates an empty prototype with the given identifier.
func New(id uint8) *Prototype {
	return &Prototype{
		id:    id,
		index: make(map[string]int),
	}
}

// AddField appends (or replaces) a field and returns the prototype for
// chaining, matching the source's fluent addField builder.
func (p *Prototype) AddField(name string, kind rdsfield.Kind) *Prototype {
	if i, ok := p.index[name]; ok {
		p.fields = append(p.fields[:i], p.fields[i+1:]...)
		delete(p.index, name)
		for n, idx := range p.index {
			if idx > i {
				p.index[n] = idx - 1
			}
		}
	}
	p.fields = append(p.fields, field{name: name, kind: kind})
	p.index[name] = len(p.fields) - 1
	p.recompute()
	return p
}

func (p *Prototype) recompute() {
	offset := 0
	for i := range p.fields {
		p.fields[i].offset = offset
		offset += rdsfield.Width(p.fields[i].kind)
	}
	p.size = offset
}

// FieldInfo is the (offset, kind) pair returned by FindField.
type FieldInfo struct {
	Offset int
	Kind   rdsfield.Kind
}

// FindField looks up a field by name.
func (p *Prototype) FindField(name string) rdsresult.Result[FieldInfo] {
	i, ok := p.index[name]
	if !ok {
		return rdsresult.Err[FieldInfo](rdserrors.New(rdserrors.CodeFieldNotFound, "field not found: %s", name))
	}
	f := p.fields[i]
	return rdsresult.Ok(FieldInfo{Offset: f.offset, Kind: f.kind})
}

// Size returns the total byte size of a Buffer shaped by this prototype.
func (p *Prototype) Size() int { return p.size }

// FieldCount returns the number of fields.
func (p *Prototype) FieldCount() int { return len(p.fields) }

// Identifier returns the 8-bit schema identifier.
func (p *Prototype) Identifier() uint8 { return p.id }

// FieldNames returns field names in internal (insertion) order.
func (p *Prototype) FieldNames() []string {
	names := make([]string, len(p.fields))
	for i, f := range p.fields {
		names[i] = f.name
	}
	return names
}

// SerializeSchema encodes the schema-exchange wire format:
// [id:u8][n:u8] followed by n * [name_len:u8][name_bytes][kind:u8], with
// fields emitted in ascending lexicographic name order. This ordering is a
// wire-compatibility requirement (see spec.md §4.C): a parser reassigns
// offsets in the order fields are read, so both sides must agree on order.
func (p *Prototype) SerializeSchema() []byte {
	names := append([]string(nil), p.FieldNames()...)
	sort.Strings(names)

	out := make([]byte, 0, 2+len(names)*3)
	out = append(out, p.id, uint8(len(names)))
	for _, name := range names {
		f := p.fields[p.index[name]]
		out = append(out, uint8(len(name)))
		out = append(out, name...)
		out = append(out, byte(f.kind))
	}
	return out
}

// ParseSchema decodes a schema produced by SerializeSchema into a new
// Prototype, reassigning offsets in the stream's (lexicographic) order.
func ParseSchema(data []byte) rdsresult.Result[*Prototype] {
	if len(data) < 2 {
		return rdsresult.Err[*Prototype](rdserrors.New(rdserrors.CodeSchemaTooShort, "schema too short: %d bytes", len(data)))
	}

	id := data[0]
	n := int(data[1])
	offset := 2

	proto := New(id)
	for i := 0; i < n; i++ {
		if offset+1 > len(data) {
			return rdsresult.Err[*Prototype](rdserrors.New(rdserrors.CodeSchemaTooShort, "schema too short reading field %d name length", i))
		}
		nameLen := int(data[offset])
		offset++

		if offset+nameLen+1 > len(data) {
			return rdsresult.Err[*Prototype](rdserrors.New(rdserrors.CodeSchemaTooShort, "schema too short reading field %d", i))
		}
		name := string(data[offset : offset+nameLen])
		offset += nameLen

		kind := rdsfield.Kind(data[offset])
		offset++

		proto.AddField(name, kind)
	}

	return rdsresult.Ok(proto)
}
