package gx2

import "encoding/binary"

// BC4 block decoding. One block is 8 bytes: two reference channel values
// followed by 48 bits of 3-bit palette indices, one per pixel of the 4x4
// block. The palette has 8 entries; their derivation depends on whether
// the first reference exceeds the second.

// bc4BlockSize is the byte size of one compressed 4x4 block.
const bc4BlockSize = 8

// decodeBC4Block expands one block into 16 channel samples in row-major
// pixel order.
func decodeBC4Block(block []byte) [16]uint8 {
	a0 := int(block[0])
	a1 := int(block[1])
	var idxBytes [8]byte
	copy(idxBytes[:], block[2:8])
	bits := binary.LittleEndian.Uint64(idxBytes[:])

	var palette [8]uint8
	palette[0] = uint8(a0)
	palette[1] = uint8(a1)
	if a0 > a1 {
		for i := 1; i < 7; i++ {
			palette[1+i] = uint8(((6-i)*a0 + i*a1 + 3) / 7)
		}
	} else {
		for i := 1; i < 5; i++ {
			palette[1+i] = uint8(((4-i)*a0 + i*a1 + 2) / 5)
		}
		palette[6] = 0
		palette[7] = 255
	}

	var samples [16]uint8
	for i := 0; i < 16; i++ {
		samples[i] = palette[(bits>>(3*i))&0x7]
	}
	return samples
}
