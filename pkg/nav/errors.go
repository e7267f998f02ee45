package nav

import "errors"

// Nav file errors.
var (
	ErrInvalidMagic       = errors.New("invalid nav magic: not a nav file or corrupted")
	ErrUnsupportedVersion = errors.New("unsupported nav version")
	ErrUnexpectedEOF      = errors.New("unexpected end of nav data")
	ErrCorruptCount       = errors.New("corrupt count prefix")
	ErrDanglingReference  = errors.New("reference to unknown area")
	ErrDuplicateArea      = errors.New("duplicate area id")
	ErrAreaNotFound       = errors.New("area not found")
	ErrDegenerateArea     = errors.New("area has fewer than 3 corners")
)
