package bitfield

import (
	"fmt"
	"math"
	"math/big"
)

// encodeAligned implements the byte-aligned path: every field's width
// is a multiple of 8, so fields are encoded independently and
// concatenated in declaration order.
func (r *Record) encodeAligned() ([]byte, error) {
	out := make([]byte, 0, r.schema.TotalBytes())

	for _, f := range r.schema.fields {
		b, err := r.fieldBytesAligned(f)
		if err != nil {
			return nil, err
		}
		out = append(out, b...)
	}

	return out, nil
}

func (r *Record) fieldBytesAligned(f Field) ([]byte, error) {
	n := f.numBytes()

	if f.Reserved {
		return make([]byte, n), nil
	}

	value := r.values[f.Name]
	return valueToBytes(f, value, n)
}

// decodeAligned reverses encodeAligned: slice the input in declaration
// order, one Bits/8-byte chunk per field.
func (s *Schema) decodeAligned(data []byte) (*Record, error) {
	values := make(map[string]interface{}, len(s.names))

	off := 0
	for _, f := range s.fields {
		n := f.numBytes()
		chunk := data[off : off+n]
		off += n

		if f.Reserved {
			continue
		}

		v, err := bytesToValue(f, chunk)
		if err != nil {
			return nil, err
		}
		values[f.Name] = v
	}

	return &Record{schema: s, values: values}, nil
}

// encodePacked implements the bit-packed path. Consecutive fields are
// grouped until their cumulative width reaches the next byte boundary;
// within a group the first field occupies the most significant bits.
func (r *Record) encodePacked() ([]byte, error) {
	out := make([]byte, 0, r.schema.TotalBytes())

	packedBits := 0
	group := new(big.Int)

	for _, f := range r.schema.fields {
		var value interface{}
		if !f.Reserved {
			value = r.values[f.Name]
		}

		bits, err := valueToBigInt(f, value)
		if err != nil {
			return nil, err
		}

		group.Lsh(group, uint(f.Bits))
		group.Or(group, bits)
		packedBits += f.Bits

		if packedBits%8 == 0 {
			out = append(out, leBytes(group, packedBits/8)...)
			group = new(big.Int)
			packedBits = 0
		}
	}

	return out, nil
}

// decodePacked reverses encodePacked: read each group of bytes as a
// little-endian integer, then peel fields off from the last declared
// to the first, each occupying its low Bits bits.
func (s *Schema) decodePacked(data []byte) (*Record, error) {
	values := make(map[string]interface{}, len(s.names))

	off := 0
	packedBits := 0
	var group []Field

	for _, f := range s.fields {
		group = append(group, f)
		packedBits += f.Bits

		if packedBits%8 == 0 {
			n := packedBits / 8
			chunk := data[off : off+n]
			off += n

			value := new(big.Int).SetBytes(reverseBytes(chunk))

			for i := len(group) - 1; i >= 0; i-- {
				gf := group[i]
				mask := new(big.Int).Lsh(big.NewInt(1), uint(gf.Bits))
				mask.Sub(mask, big.NewInt(1))

				fieldBits := new(big.Int).And(value, mask)

				if !gf.Reserved {
					v, err := bigIntToValue(gf, fieldBits)
					if err != nil {
						return nil, err
					}
					values[gf.Name] = v
				}

				value.Rsh(value, uint(gf.Bits))
			}

			group = nil
			packedBits = 0
		}
	}

	return &Record{schema: s, values: values}, nil
}

// leBytes renders v as an n-byte little-endian slice, zero-padded on
// the high end.
func leBytes(v *big.Int, n int) []byte {
	be := v.Bytes()
	out := make([]byte, n)
	for i := 0; i < len(be) && i < n; i++ {
		out[i] = be[len(be)-1-i]
	}
	return out
}

func reverseBytes(b []byte) []byte {
	out := make([]byte, len(b))
	for i, c := range b {
		out[len(b)-1-i] = c
	}
	return out
}

// valueToBytes renders a single field's value into exactly n bytes for
// the byte-aligned path.
func valueToBytes(f Field, value interface{}, n int) ([]byte, error) {
	switch f.Kind {
	case KindUint:
		u, err := asUint64(value)
		if err != nil {
			return nil, err
		}
		return leBytes(new(big.Int).SetUint64(u), n), nil

	case KindInt:
		i, err := asInt64(value)
		if err != nil {
			return nil, err
		}
		return leBytes(signedToBig(i, n*8), n), nil

	case KindBool:
		b, ok := value.(bool)
		if !ok {
			return nil, fmt.Errorf("bitfield: field %q: expected bool, got %T", f.Name, value)
		}
		out := make([]byte, n)
		if b {
			out[0] = 1
		}
		return out, nil

	case KindBytes:
		raw, _ := value.([]byte)
		out := make([]byte, n)
		copy(out, raw) // short values are right-padded with NUL; long values truncated.
		return out, nil

	case KindFloat:
		return floatToBytes(f, value, n)

	case KindRecord:
		rec, ok := value.(*Record)
		if !ok || rec == nil {
			return nil, fmt.Errorf("bitfield: field %q: expected *Record, got %T", f.Name, value)
		}
		return rec.Encode()

	default:
		return nil, fmt.Errorf("bitfield: field %q: unknown kind", f.Name)
	}
}

// bytesToValue reverses valueToBytes for the byte-aligned decode path.
func bytesToValue(f Field, chunk []byte) (interface{}, error) {
	switch f.Kind {
	case KindUint:
		return new(big.Int).SetBytes(reverseBytes(chunk)).Uint64(), nil

	case KindInt:
		return bigToSigned(new(big.Int).SetBytes(reverseBytes(chunk)), len(chunk)*8), nil

	case KindBool:
		for _, b := range chunk {
			if b != 0 {
				return true, nil
			}
		}
		return false, nil

	case KindBytes:
		out := make([]byte, len(chunk))
		copy(out, chunk)
		return out, nil

	case KindFloat:
		return bytesToFloat(f, chunk)

	case KindRecord:
		return f.Nested.Decode(chunk)

	default:
		return nil, fmt.Errorf("bitfield: field %q: unknown kind", f.Name)
	}
}

// valueToBigInt renders a field's value as its f.Bits-wide bit
// pattern for the bit-packed encode path.
func valueToBigInt(f Field, value interface{}) (*big.Int, error) {
	if f.Reserved {
		return big.NewInt(0), nil
	}

	n := f.numBytes()
	b, err := valueToBytes(f, value, n)
	if err != nil {
		return nil, err
	}

	v := new(big.Int).SetBytes(reverseBytes(b))
	mask := new(big.Int).Lsh(big.NewInt(1), uint(f.Bits))
	mask.Sub(mask, big.NewInt(1))
	return v.And(v, mask), nil
}

// bigIntToValue reverses valueToBigInt for the bit-packed decode path.
func bigIntToValue(f Field, v *big.Int) (interface{}, error) {
	switch f.Kind {
	case KindUint:
		return v.Uint64(), nil

	case KindInt:
		return bigToSigned(v, f.Bits), nil

	case KindBool:
		return v.Sign() != 0, nil

	case KindBytes:
		return leBytes(v, f.numBytes()), nil

	case KindFloat:
		return bytesToFloat(f, leBytes(v, f.numBytes()))

	case KindRecord:
		return f.Nested.Decode(leBytes(v, f.numBytes()))

	default:
		return nil, fmt.Errorf("bitfield: field %q: unknown kind", f.Name)
	}
}

func floatToBytes(f Field, value interface{}, n int) ([]byte, error) {
	fv, err := asFloat64(value)
	if err != nil {
		return nil, err
	}

	switch f.Bits {
	case 32:
		bits := math.Float32bits(float32(fv))
		return leBytes(new(big.Int).SetUint64(uint64(bits)), n), nil
	case 64:
		bits := math.Float64bits(fv)
		return leBytes(new(big.Int).SetUint64(bits), n), nil
	default:
		return nil, fmt.Errorf("%w: field %q has width %d", ErrSchemaFloatWidth, f.Name, f.Bits)
	}
}

func bytesToFloat(f Field, chunk []byte) (interface{}, error) {
	u := new(big.Int).SetBytes(reverseBytes(chunk)).Uint64()

	switch f.Bits {
	case 32:
		return float64(math.Float32frombits(uint32(u))), nil
	case 64:
		return math.Float64frombits(u), nil
	default:
		return nil, fmt.Errorf("%w: field %q has width %d", ErrSchemaFloatWidth, f.Name, f.Bits)
	}
}

func signedToBig(i int64, bits int) *big.Int {
	v := big.NewInt(i)
	if i < 0 {
		mod := new(big.Int).Lsh(big.NewInt(1), uint(bits))
		v.Add(v, mod)
	}
	return v
}

func bigToSigned(v *big.Int, bits int) int64 {
	signBit := new(big.Int).Lsh(big.NewInt(1), uint(bits-1))
	if v.Cmp(signBit) >= 0 {
		mod := new(big.Int).Lsh(big.NewInt(1), uint(bits))
		v = new(big.Int).Sub(v, mod)
	}
	return v.Int64()
}

func asUint64(value interface{}) (uint64, error) {
	switch v := value.(type) {
	case uint64:
		return v, nil
	case uint32:
		return uint64(v), nil
	case uint16:
		return uint64(v), nil
	case uint8:
		return uint64(v), nil
	case int:
		return uint64(v), nil
	default:
		return 0, fmt.Errorf("bitfield: expected an unsigned integer, got %T", value)
	}
}

func asInt64(value interface{}) (int64, error) {
	switch v := value.(type) {
	case int64:
		return v, nil
	case int32:
		return int64(v), nil
	case int16:
		return int64(v), nil
	case int8:
		return int64(v), nil
	case int:
		return int64(v), nil
	default:
		return 0, fmt.Errorf("bitfield: expected a signed integer, got %T", value)
	}
}

func asFloat64(value interface{}) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	default:
		return 0, fmt.Errorf("bitfield: expected a float, got %T", value)
	}
}
