package bitfield

import "fmt"

// Schema is an ordered list of Fields plus the derived properties used
// by the codec: the non-reserved field names in declaration order, and
// the total size in bits (always a multiple of 8).
//
// A Schema is either byte-aligned (every field's width is a multiple of
// 8) or bit-packed (at least one is not). The encoding algorithm is
// chosen once, at construction, and is identical from the caller's
// point of view either way.
type Schema struct {
	fields    []Field
	names     []string
	nameSet   map[string]int
	totalBits int
	packed    bool
}

// New builds a Schema from an ordered list of Fields. It returns an
// error if any field has a non-positive width, if a float field's width
// is not 32 or 64 bits, or if the total width is not a multiple of 8.
func New(fields ...Field) (*Schema, error) {
	s := &Schema{fields: append([]Field(nil), fields...)}

	nameSet := make(map[string]int, len(fields))
	var names []string

	for i, f := range s.fields {
		if f.Kind == KindRecord && f.Nested != nil {
			f.Bits = f.Nested.TotalBits()
			s.fields[i] = f
		}

		if f.Bits <= 0 {
			return nil, fmt.Errorf("%w: field %d (%q)", ErrSchemaWidth, i, f.Name)
		}

		if !f.Reserved && f.Kind == KindFloat && f.Bits != 32 && f.Bits != 64 {
			return nil, fmt.Errorf("%w: field %q has width %d", ErrSchemaFloatWidth, f.Name, f.Bits)
		}

		s.totalBits += f.Bits

		if f.Bits%8 != 0 {
			s.packed = true
		}

		if !f.Reserved {
			if _, dup := nameSet[f.Name]; dup {
				return nil, fmt.Errorf("bitfield: duplicate field name %q", f.Name)
			}
			nameSet[f.Name] = len(names)
			names = append(names, f.Name)
		}
	}

	if s.totalBits%8 != 0 {
		return nil, fmt.Errorf("%w: %d bits", ErrSchemaAlignment, s.totalBits)
	}

	s.names = names
	s.nameSet = nameSet

	return s, nil
}

// MustNew is New but panics on error. It is meant for package-level
// schema declarations, where a malformed schema is a programming
// mistake caught at init time rather than a runtime condition.
func MustNew(fields ...Field) *Schema {
	s, err := New(fields...)
	if err != nil {
		panic(err)
	}
	return s
}

// TotalBits returns the schema's total width in bits.
func (s *Schema) TotalBits() int { return s.totalBits }

// TotalBytes returns the schema's total width in bytes.
func (s *Schema) TotalBytes() int { return s.totalBits / 8 }

// Names returns the non-reserved field names in declaration order. The
// returned slice must not be mutated.
func (s *Schema) Names() []string { return s.names }

// Fields returns the schema's fields, including reserved ones, in
// declaration order. The returned slice must not be mutated.
func (s *Schema) Fields() []Field { return s.fields }

// Packed reports whether this schema uses the bit-packed encoding path.
func (s *Schema) Packed() bool { return s.packed }
