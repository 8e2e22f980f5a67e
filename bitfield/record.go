package bitfield

import "fmt"

// Record is an immutable-by-convention mapping from a Schema's
// non-reserved field names to their decoded Go values. Records are
// created per message and discarded after serialization or
// consumption; the Schema they were built from is never mutated.
type Record struct {
	schema *Schema
	values map[string]interface{}
}

// Schema returns the Record's schema.
func (r *Record) Schema() *Schema { return r.schema }

// New constructs a Record positionally: args must supply exactly one
// value per non-reserved field, in schema declaration order.
func (s *Schema) New(args ...interface{}) (*Record, error) {
	if len(args) != len(s.names) {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrArity, len(args), len(s.names))
	}

	values := make(map[string]interface{}, len(args))
	for i, name := range s.names {
		values[name] = args[i]
	}

	return &Record{schema: s, values: values}, nil
}

// NewNamed constructs a Record by name: kv's key set must equal the
// schema's non-reserved name set exactly.
func (s *Schema) NewNamed(kv map[string]interface{}) (*Record, error) {
	if len(kv) != len(s.names) {
		return nil, fmt.Errorf("%w: got %d keys, want %d", ErrUnknownField, len(kv), len(s.names))
	}

	values := make(map[string]interface{}, len(kv))
	for k, v := range kv {
		if _, ok := s.nameSet[k]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownField, k)
		}
		values[k] = v
	}

	for _, name := range s.names {
		if _, ok := values[name]; !ok {
			return nil, fmt.Errorf("%w: missing %q", ErrUnknownField, name)
		}
	}

	return &Record{schema: s, values: values}, nil
}

// Get returns the value stored for name.
func (r *Record) Get(name string) (interface{}, error) {
	if _, ok := r.schema.nameSet[name]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return r.values[name], nil
}

// MustGet is Get but panics on error; useful for field accesses the
// caller knows are valid because they come from the schema itself.
func (r *Record) MustGet(name string) interface{} {
	v, err := r.Get(name)
	if err != nil {
		panic(err)
	}
	return v
}

// Set replaces the value stored for name. Setting an unknown name
// fails: this is a programmer error, not a runtime condition.
func (r *Record) Set(name string, value interface{}) error {
	if _, ok := r.schema.nameSet[name]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	r.values[name] = value
	return nil
}

// Encode serializes the Record into exactly Schema.TotalBytes() bytes.
func (r *Record) Encode() ([]byte, error) {
	if r.schema.packed {
		return r.encodePacked()
	}
	return r.encodeAligned()
}

// Decode parses data into a Record. data must contain at least
// Schema.TotalBytes() bytes; trailing bytes are ignored.
func (s *Schema) Decode(data []byte) (*Record, error) {
	if len(data) < s.TotalBytes() {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrShortInput, len(data), s.TotalBytes())
	}
	if s.packed {
		return s.decodePacked(data)
	}
	return s.decodeAligned(data)
}
