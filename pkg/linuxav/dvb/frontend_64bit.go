//go:build linux && (amd64 || arm64)

package dvb

import "unsafe"

// Compile-time struct size assertions.
// These will cause build failures if struct sizes don't match kernel expectations.
var (
	_ [76]byte = [unsafe.Sizeof(dtvProperty{})]byte{}
	_ [16]byte = [unsafe.Sizeof(dtvProperties{})]byte{}
	_ [36]byte = [unsafe.Sizeof(dvbFrontendParameters{})]byte{}
	_ [20]byte = [unsafe.Sizeof(dmxPESFilterParams{})]byte{}
)

// IOCTL constants for 64-bit architectures.
const (
	feSetProperty = 0x40106f52 // _IOW('o', 82, struct dtv_properties)
	feGetProperty = 0x80106f53 // _IOR('o', 83, struct dtv_properties)
)

// dtvPropertyUnionSize covers the buffer member, which ends in a pointer.
const dtvPropertyUnionSize = 56
