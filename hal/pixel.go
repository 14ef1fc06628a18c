package hal

import "encoding/binary"

// RGB565 packs a color into rrrrrggggggbbbbb, keeping the high bits.
func RGB565(r, g, b uint8) uint16 {
	return uint16(r&0xF8)<<8 | uint16(g&0xFC)<<3 | uint16(b)>>3
}

// RGB888From565 expands p by replicating each channel's high bits into the
// low bits, so full intensity maps back to 255.
func RGB888From565(p uint16) (r, g, b uint8) {
	r5 := uint8(p >> 11 & 0x1F)
	g6 := uint8(p >> 5 & 0x3F)
	b5 := uint8(p & 0x1F)
	return r5<<3 | r5>>2, g6<<2 | g6>>4, b5<<3 | b5>>2
}

// PutPixel565 stores p little-endian at (x, y) of an RGB565 buffer with the
// given stride. Out-of-range writes are ignored.
func PutPixel565(buf []byte, stride, width, height, x, y int, p uint16) {
	if x < 0 || y < 0 || x >= width || y >= height {
		return
	}
	off := y*stride + x*2
	if off+1 >= len(buf) {
		return
	}
	binary.LittleEndian.PutUint16(buf[off:], p)
}

// Pixel565 reads the pixel at (x, y); out-of-range reads return 0.
func Pixel565(buf []byte, stride, width, height, x, y int) uint16 {
	if x < 0 || y < 0 || x >= width || y >= height {
		return 0
	}
	off := y*stride + x*2
	if off+1 >= len(buf) {
		return 0
	}
	return binary.LittleEndian.Uint16(buf[off:])
}
