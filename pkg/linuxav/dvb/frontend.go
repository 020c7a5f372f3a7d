//go:build linux

package dvb

import (
	"fmt"
	"runtime"
	"unsafe"

	"golang.org/x/sys/unix"
)

// Frontend is an open DVB frontend (tuner) device.
type Frontend struct {
	fd   int
	path string
}

// OpenFrontend opens the frontend device at path for read-write.
func OpenFrontend(path string) (*Frontend, error) {
	fd, err := open(path)
	if err != nil {
		return nil, err
	}
	return &Frontend{fd: fd, path: path}, nil
}

// Path returns the device path the frontend was opened with.
func (f *Frontend) Path() string {
	return f.path
}

// SetProperties submits props to the driver in a single FE_SET_PROPERTY call.
// The kernel applies them in slice order.
func (f *Frontend) SetProperties(props []Property) error {
	if len(props) == 0 || len(props) > maxProperties {
		return fmt.Errorf("property batch of %d entries: %w", len(props), unix.EINVAL)
	}

	raw := encodeProperties(props)
	seq := dtvProperties{num: uint32(len(raw)), props: &raw[0]}
	err := ioctl(f.fd, feSetProperty, unsafe.Pointer(&seq))
	runtime.KeepAlive(raw)
	return err
}

// GetProperties reads the current value of each command with FE_GET_PROPERTY.
func (f *Frontend) GetProperties(cmds ...PropertyCmd) ([]Property, error) {
	if len(cmds) == 0 || len(cmds) > maxProperties {
		return nil, fmt.Errorf("property query of %d entries: %w", len(cmds), unix.EINVAL)
	}

	raw := make([]dtvProperty, len(cmds))
	for i, cmd := range cmds {
		raw[i].cmd = uint32(cmd)
	}
	seq := dtvProperties{num: uint32(len(raw)), props: &raw[0]}
	err := ioctl(f.fd, feGetProperty, unsafe.Pointer(&seq))
	runtime.KeepAlive(raw)
	if err != nil {
		return nil, err
	}

	props := make([]Property, len(raw))
	for i := range raw {
		props[i] = Property{Cmd: PropertyCmd(raw[i].cmd), Data: raw[i].data()}
	}
	return props, nil
}

// GetFrontend issues FE_GET_FRONTEND and returns the tuned parameters.
func (f *Frontend) GetFrontend() (FrontendParameters, error) {
	params := dvbFrontendParameters{}
	if err := ioctl(f.fd, feGetFrontend, unsafe.Pointer(&params)); err != nil {
		return FrontendParameters{}, err
	}
	return FrontendParameters{
		Frequency: params.frequency,
		Inversion: Inversion(params.inversion),
	}, nil
}

// ReadStatus issues FE_READ_STATUS.
func (f *Frontend) ReadStatus() (Status, error) {
	var status uint32
	if err := ioctl(f.fd, feReadStatus, unsafe.Pointer(&status)); err != nil {
		return 0, err
	}
	return Status(status), nil
}

// Close releases the device handle.
func (f *Frontend) Close() error {
	return closeFd(f.fd)
}
