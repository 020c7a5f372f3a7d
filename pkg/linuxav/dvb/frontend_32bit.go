//go:build linux && (arm || 386)

package dvb

import "unsafe"

// Compile-time struct size assertions for 32-bit architectures.
// struct dtv_property is packed, so only the trailing pointer of the
// buffer union member shrinks.
var (
	_ [72]byte = [unsafe.Sizeof(dtvProperty{})]byte{}
	_ [8]byte  = [unsafe.Sizeof(dtvProperties{})]byte{}
	_ [36]byte = [unsafe.Sizeof(dvbFrontendParameters{})]byte{}
	_ [20]byte = [unsafe.Sizeof(dmxPESFilterParams{})]byte{}
)

// IOCTL constants for 32-bit architectures.
const (
	feSetProperty = 0x40086f52
	feGetProperty = 0x80086f53
)

const dtvPropertyUnionSize = 52
