package rdsschema

import (
	"testing"

	"github.com/rds-dev/rdscom/rdsfield"
)

func TestFieldOffsetLaw(t *testing.T) {
	p := New(1).
		AddField("a", rdsfield.U8).
		AddField("b", rdsfield.U16).
		AddField("c", rdsfield.U32)

	check := func(name string, offset int, kind rdsfield.Kind) {
		t.Helper()
		r := p.FindField(name)
		if r.IsError() {
			t.Fatalf("FindField(%s): %v", name, r.Error())
		}
		if r.Value().Offset != offset || r.Value().Kind != kind {
			t.Errorf("FindField(%s) = %+v, want offset=%d kind=%v", name, r.Value(), offset, kind)
		}
	}
	check("a", 0, rdsfield.U8)
	check("b", 1, rdsfield.U16)
	check("c", 3, rdsfield.U32)

	if p.Size() != 7 {
		t.Errorf("Size() = %d, want 7", p.Size())
	}
	if p.FieldCount() != 3 {
		t.Errorf("FieldCount() = %d, want 3", p.FieldCount())
	}
}

func TestAddFieldReplaceMovesToTail(t *testing.T) {
	p := New(1).
		AddField("a", rdsfield.U8).
		AddField("b", rdsfield.U32).
		AddField("c", rdsfield.U8)
	// a@0(1) b@1(4) c@5(1), size=6

	p.AddField("a", rdsfield.U16)
	// b moves to offset 0, c to offset 4, a appended at offset 5 with width 2

	bField := p.FindField("b").Value()
	cField := p.FindField("c").Value()
	aField := p.FindField("a").Value()

	if bField.Offset != 0 {
		t.Errorf("b offset = %d, want 0", bField.Offset)
	}
	if cField.Offset != 4 {
		t.Errorf("c offset = %d, want 4", cField.Offset)
	}
	if aField.Offset != 5 || aField.Kind != rdsfield.U16 {
		t.Errorf("a = %+v, want offset=5 kind=U16", aField)
	}
	if p.Size() != 7 {
		t.Errorf("Size() = %d, want 7", p.Size())
	}
}

func TestFindFieldNotFound(t *testing.T) {
	p := New(1)
	r := p.FindField("missing")
	if !r.IsError() {
		t.Fatal("expected error for missing field")
	}
}

func TestSchemaRoundTripSortedOrder(t *testing.T) {
	p := New(9).
		AddField("zebra", rdsfield.U8).
		AddField("apple", rdsfield.U32).
		AddField("mango", rdsfield.U16)

	wire := p.SerializeSchema()
	result := ParseSchema(wire)
	if result.IsError() {
		t.Fatalf("ParseSchema: %v", result.Error())
	}
	parsed := result.Value()

	if parsed.Identifier() != 9 {
		t.Fatalf("identifier = %d, want 9", parsed.Identifier())
	}

	// Ascending lexicographic order: apple, mango, zebra.
	apple := parsed.FindField("apple").Value()
	mango := parsed.FindField("mango").Value()
	zebra := parsed.FindField("zebra").Value()

	if apple.Offset != 0 {
		t.Errorf("apple offset = %d, want 0", apple.Offset)
	}
	if mango.Offset != 4 {
		t.Errorf("mango offset = %d, want 4", mango.Offset)
	}
	if zebra.Offset != 6 {
		t.Errorf("zebra offset = %d, want 6", zebra.Offset)
	}
	if parsed.Size() != 7 {
		t.Errorf("size = %d, want 7", parsed.Size())
	}
}

func TestSchemaTooShort(t *testing.T) {
	r := ParseSchema([]byte{1})
	if !r.IsError() {
		t.Fatal("expected SchemaTooShort error")
	}
}

// New itself accepts the reserved id; rejection happens at Buffer
// construction (rdsbuffer) and engine registration (rdsengine).
func TestReservedIDKeptByNew(t *testing.T) {
	p := New(ReservedID)
	if p.Identifier() != ReservedID {
		t.Fatalf("identifier = %d, want %d", p.Identifier(), ReservedID)
	}
}
