package fnt

import (
	"encoding/binary"
	"errors"
)

// Reading bytes from a container's binary representation. Unlike OpenType,
// the BFFNT family is multi-endian: the byte order is selected by the BOM
// in the container header and threaded through every read.

var errBufferBounds = errors.New("internal inconsistency: buffer bounds error")

// binarySegm is a segment of byte data, usually a view into the full
// container buffer. All reads are bounds-checked.
type binarySegm []byte

// view returns n bytes at the given offset.
// The byte segment returned is a sub-slice of b.
func (b binarySegm) view(offset, n int) (binarySegm, error) {
	if offset < 0 || n <= 0 || offset+n > len(b) {
		return nil, errBufferBounds
	}
	return b[offset : offset+n], nil
}

// u8 returns the byte in b at offset i.
func (b binarySegm) u8(i int) (uint8, error) {
	if i < 0 || i >= len(b) {
		return 0, errBufferBounds
	}
	return b[i], nil
}

// u16 returns the uint16 in b at offset i, in the given byte order.
func (b binarySegm) u16(order binary.ByteOrder, i int) (uint16, error) {
	buf, err := b.view(i, 2)
	if err != nil {
		return 0, err
	}
	return order.Uint16(buf), nil
}

// u32 returns the uint32 in b at offset i, in the given byte order.
func (b binarySegm) u32(order binary.ByteOrder, i int) (uint32, error) {
	buf, err := b.view(i, 4)
	if err != nil {
		return 0, err
	}
	return order.Uint32(buf), nil
}

// fields is a sequential cursor over a byte segment, used for decoding
// section payloads field by field. The first read error sticks; subsequent
// reads return zero values, and the error is checked once at the end.
type fields struct {
	data  binarySegm
	order binary.ByteOrder
	pos   int
	err   error
}

func newFields(data binarySegm, order binary.ByteOrder, pos int) *fields {
	return &fields{data: data, order: order, pos: pos}
}

func (f *fields) u8() uint8 {
	if f.err != nil {
		return 0
	}
	var v uint8
	if v, f.err = f.data.u8(f.pos); f.err != nil {
		return 0
	}
	f.pos++
	return v
}

func (f *fields) i8() int8 {
	return int8(f.u8())
}

func (f *fields) u16() uint16 {
	if f.err != nil {
		return 0
	}
	var v uint16
	if v, f.err = f.data.u16(f.order, f.pos); f.err != nil {
		return 0
	}
	f.pos += 2
	return v
}

func (f *fields) i16() int16 {
	return int16(f.u16())
}

func (f *fields) u32() uint32 {
	if f.err != nil {
		return 0
	}
	var v uint32
	if v, f.err = f.data.u32(f.order, f.pos); f.err != nil {
		return 0
	}
	f.pos += 4
	return v
}

func (f *fields) skip(n int) {
	if f.err != nil {
		return
	}
	if f.pos+n > len(f.data) {
		f.err = errBufferBounds
		return
	}
	f.pos += n
}
