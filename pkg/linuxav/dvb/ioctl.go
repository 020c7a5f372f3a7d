//go:build linux

package dvb

import (
	"io/fs"
	"unsafe"

	"golang.org/x/sys/unix"
)

// IOCTL constants whose encoded size does not depend on pointer width.
const (
	feReadStatus    = 0x80046f45 // _IOR('o', 69, fe_status_t)
	feGetFrontend   = 0x80246f4d // _IOR('o', 77, struct dvb_frontend_parameters)
	dmxSetPESFilter = 0x40146f2c // _IOW('o', 44, struct dmx_pes_filter_params)
)

// maxProperties is DTV_IOCTL_MAX_MSGS.
const maxProperties = 64

func ioctl(fd int, req uint, arg unsafe.Pointer) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), uintptr(req), uintptr(arg))
	if errno != 0 {
		return errno
	}
	return nil
}

func open(path string) (int, error) {
	fd, err := unix.Open(path, unix.O_RDWR|unix.O_CLOEXEC, 0)
	if err != nil {
		return -1, &fs.PathError{Op: "open", Path: path, Err: err}
	}
	return fd, nil
}

func closeFd(fd int) error {
	return unix.Close(fd)
}
