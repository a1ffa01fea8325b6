package rts

import (
	"encoding/binary"
	"encoding/hex"
	"strings"
)

const (
	// FrameLen is the number of bytes in an RTS frame.
	FrameLen = 7
	// Key is the constant first byte. Receivers accept any value here.
	Key = 0xa7
)

// Frame is one RTS command frame. Byte layout before obfuscation:
//
//	0    key
//	1    button<<4 | checksum
//	2-3  rolling code, big endian, low 16 bits
//	4-6  remote address, big endian
type Frame [FrameLen]byte

func (f Frame) String() string {
	return strings.ToUpper(hex.EncodeToString(f[:]))
}

// Bit returns bit i of the frame counting from the most significant bit of
// byte 0.
func (f Frame) Bit(i int) bool {
	return (f[i/8]>>(7-uint(i%8)))&1 == 1
}

// Checksum folds every nibble of f together with XOR.
// A checksummed frame folds to zero.
func Checksum(f Frame) byte {
	var c byte
	for _, b := range f {
		c ^= b ^ (b >> 4)
	}
	return c & 0x0f
}

func obfuscate(f Frame) Frame {
	for i := 1; i < FrameLen; i++ {
		f[i] ^= f[i-1]
	}
	return f
}

// Deobfuscate undoes the prefix XOR chain applied by Encode.
func Deobfuscate(f Frame) Frame {
	for i := FrameLen - 1; i > 0; i-- {
		f[i] ^= f[i-1]
	}
	return f
}

// Raw builds the frame for the given command without checksum or
// obfuscation. Only the low 16 bits of code are sent; receivers keep a
// 16-bit counter.
func Raw(address uint32, button Button, code uint32) Frame {
	var f Frame
	f[0] = Key
	f[1] = byte(button) << 4
	binary.BigEndian.PutUint16(f[2:4], uint16(code))
	f[4] = byte(address >> 16)
	f[5] = byte(address >> 8)
	f[6] = byte(address)
	return f
}

// Checksummed returns Raw with the checksum nibble filled in.
func Checksummed(address uint32, button Button, code uint32) Frame {
	f := Raw(address, button, code)
	f[1] |= Checksum(f)
	return f
}

// Encode returns the frame to put on air for one button press and the
// rolling code to use for the next one. next wraps to 0 after 2^32-1, which
// the receiver never notices since it only sees the low 16 bits.
func Encode(address uint32, button Button, code uint32) (frame Frame, next uint32) {
	return obfuscate(Checksummed(address, button, code)), code + 1
}
