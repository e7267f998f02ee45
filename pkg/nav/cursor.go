package nav

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Cursor is a bounds-checked sequential reader over an immutable byte buffer.
// All multi-byte values are little-endian. Every read either consumes exactly
// its width or fails with ErrUnexpectedEOF; the offset never advances past a
// failed read and the underlying buffer is never copied or mutated.
type Cursor struct {
	data []byte
	off  int
}

// NewCursor wraps data without copying it.
func NewCursor(data []byte) *Cursor {
	return &Cursor{data: data}
}

// Offset returns the current read position.
func (c *Cursor) Offset() int {
	return c.off
}

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int {
	return len(c.data) - c.off
}

func (c *Cursor) need(n int) error {
	if c.Remaining() < n {
		return fmt.Errorf("%w: need %d bytes at offset %d, have %d",
			ErrUnexpectedEOF, n, c.off, c.Remaining())
	}
	return nil
}

// Uint8 reads one byte.
func (c *Cursor) Uint8() (uint8, error) {
	if err := c.need(1); err != nil {
		return 0, err
	}
	v := c.data[c.off]
	c.off++
	return v, nil
}

// Int8 reads one signed byte.
func (c *Cursor) Int8() (int8, error) {
	v, err := c.Uint8()
	return int8(v), err
}

// Uint16 reads a little-endian 16-bit unsigned integer.
func (c *Cursor) Uint16() (uint16, error) {
	if err := c.need(2); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint16(c.data[c.off:])
	c.off += 2
	return v, nil
}

// Int16 reads a little-endian 16-bit signed integer.
func (c *Cursor) Int16() (int16, error) {
	v, err := c.Uint16()
	return int16(v), err
}

// Uint32 reads a little-endian 32-bit unsigned integer.
func (c *Cursor) Uint32() (uint32, error) {
	if err := c.need(4); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint32(c.data[c.off:])
	c.off += 4
	return v, nil
}

// Int32 reads a little-endian 32-bit signed integer.
func (c *Cursor) Int32() (int32, error) {
	v, err := c.Uint32()
	return int32(v), err
}

// Uint64 reads a little-endian 64-bit unsigned integer.
func (c *Cursor) Uint64() (uint64, error) {
	if err := c.need(8); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint64(c.data[c.off:])
	c.off += 8
	return v, nil
}

// Int64 reads a little-endian 64-bit signed integer.
func (c *Cursor) Int64() (int64, error) {
	v, err := c.Uint64()
	return int64(v), err
}

// Float32 reads a little-endian IEEE 754 single-precision float.
func (c *Cursor) Float32() (float32, error) {
	v, err := c.Uint32()
	return math.Float32frombits(v), err
}

// Float64 reads a little-endian IEEE 754 double-precision float.
func (c *Cursor) Float64() (float64, error) {
	v, err := c.Uint64()
	return math.Float64frombits(v), err
}

// String reads a string prefixed by a uint16 byte count. There is no
// terminator; the count is the exact byte length.
func (c *Cursor) String() (string, error) {
	n, err := c.Uint16()
	if err != nil {
		return "", err
	}
	b, err := c.Bytes(int(n))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Bytes reads n raw bytes. The returned slice aliases the underlying buffer;
// callers that keep it must copy.
func (c *Cursor) Bytes(n int) ([]byte, error) {
	if err := c.need(n); err != nil {
		return nil, err
	}
	b := c.data[c.off : c.off+n]
	c.off += n
	return b, nil
}

// Skip advances past n bytes without decoding them.
func (c *Cursor) Skip(n int) error {
	if err := c.need(n); err != nil {
		return err
	}
	c.off += n
	return nil
}
