// Package bitfield implements a declarative schema for packed binary
// records whose fields may occupy arbitrary bit widths, not only byte
// multiples. A Schema is built once from a list of Fields; it picks an
// encoding strategy (byte-aligned or bit-packed) at construction time and
// uses it for every Record built from that Schema thereafter.
package bitfield

import "fmt"

// Kind is the type tag of a Field.
type Kind uint8

const (
	// KindUint is an unsigned integer, zero-extended to the field width.
	KindUint Kind = iota

	// KindInt is a two's-complement signed integer in the field width.
	KindInt

	// KindBool is non-zero iff any bit in the field is set.
	KindBool

	// KindBytes is a raw byte string, right-padded with NUL on encode
	// and truncated to the field width if too long.
	KindBytes

	// KindFloat is an IEEE-754 float; the field width must be 32 or 64.
	KindFloat

	// KindRecord is a nested Schema; the field width is derived from
	// the nested Schema's total size.
	KindRecord
)

// Field describes one slice of a packed record: a name (ignored if
// Reserved is set), a width in bits, and a type tag. Reserved fields are
// written as zero bits on encode and are never surfaced in a Record's
// value set on decode.
type Field struct {
	Name     string
	Reserved bool
	Bits     int
	Kind     Kind
	Nested   *Schema
}

// Uint declares an unsigned-integer field of the given bit width.
func Uint(name string, bits int) Field { return Field{Name: name, Bits: bits, Kind: KindUint} }

// Int declares a signed-integer field of the given bit width.
func Int(name string, bits int) Field { return Field{Name: name, Bits: bits, Kind: KindInt} }

// Bool declares a boolean field of the given bit width.
func Bool(name string, bits int) Field { return Field{Name: name, Bits: bits, Kind: KindBool} }

// Bytes declares a raw-byte field of the given bit width (must be a
// multiple of 8).
func Bytes(name string, bits int) Field { return Field{Name: name, Bits: bits, Kind: KindBytes} }

// Float declares an IEEE-754 float field; bits must be 32 or 64.
func Float(name string, bits int) Field { return Field{Name: name, Bits: bits, Kind: KindFloat} }

// Nested declares a field whose value is itself a Record of the given
// Schema; its bit width is the nested Schema's total size.
func Nested(name string, schema *Schema) Field {
	return Field{Name: name, Kind: KindRecord, Nested: schema, Bits: schema.TotalBits()}
}

// Reserved declares a gap of the given bit width that carries no value.
func Reserved(bits int) Field { return Field{Reserved: true, Bits: bits} }

func (f Field) numBytes() int { return (f.Bits-1)/8 + 1 }

func (f Field) String() string {
	if f.Reserved {
		return fmt.Sprintf("reserved(%d)", f.Bits)
	}
	return fmt.Sprintf("%s(%d)", f.Name, f.Bits)
}
