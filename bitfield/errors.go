package bitfield

import "errors"

// ErrShortInput is returned when Decode is given fewer bytes than a
// Schema's TotalBytes.
var ErrShortInput = errors.New("bitfield: short input")

// ErrUnknownField is returned by Get, Set, and the Schema constructors
// when a field name is not part of the schema, or when named
// construction is missing a required name.
var ErrUnknownField = errors.New("bitfield: unknown field name")

// ErrArity is returned by positional construction when the argument
// count does not match the schema's non-reserved field count.
var ErrArity = errors.New("bitfield: wrong number of positional arguments")

// ErrSchemaFloatWidth is returned when a Schema declares a float field
// whose width is not 32 or 64 bits.
var ErrSchemaFloatWidth = errors.New("bitfield: float field width must be 32 or 64 bits")

// ErrSchemaAlignment is returned when a Schema's total width is not a
// multiple of 8 bits.
var ErrSchemaAlignment = errors.New("bitfield: schema total width is not byte-aligned")

// ErrSchemaWidth is returned when a Schema declares a field with a
// non-positive bit width.
var ErrSchemaWidth = errors.New("bitfield: field width must be greater than 0")
