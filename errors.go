package zwire

import "errors"

var (
	// ErrMissingField is returned when a required dictionary field is
	// absent from the input and its ZType is not an Optional.
	ErrMissingField = errors.New("zwire: missing field")
	// ErrTypeMismatch is returned when a value's shape does not match
	// its ZType, e.g. a string where a number is expected.
	ErrTypeMismatch = errors.New("zwire: type mismatch")
	// ErrOutOfRange is returned when a numeric value does not fit the
	// declared width.
	ErrOutOfRange = errors.New("zwire: value out of range")
	// ErrTooManyElements is returned when a list or map exceeds its
	// width class maximum.
	ErrTooManyElements = errors.New("zwire: too many elements")
	// ErrStringTooLong is returned when a string or blob exceeds its
	// length prefix maximum and truncation is off.
	ErrStringTooLong = errors.New("zwire: string too long")
	// ErrTruncated is returned when a strict decode runs out of bytes.
	ErrTruncated = errors.New("zwire: truncated buffer")
	// ErrMalformedVarint is returned when a varint's continuation bit
	// is still set past the maximum group count.
	ErrMalformedVarint = errors.New("zwire: malformed varint")
	// ErrBadSchema is returned by schema constructors for empty
	// dictionaries, nil constituents, invalid widths and map key types
	// that do not decode to comparable values.
	ErrBadSchema = errors.New("zwire: bad schema definition")
)
