//go:build linux

package dvb

import "unsafe"

// Demux is an open DVB demultiplexer device.
type Demux struct {
	fd   int
	path string
}

// OpenDemux opens the demux device at path for read-write.
func OpenDemux(path string) (*Demux, error) {
	fd, err := open(path)
	if err != nil {
		return nil, err
	}
	return &Demux{fd: fd, path: path}, nil
}

// Path returns the device path the demux was opened with.
func (d *Demux) Path() string {
	return d.path
}

// SetPESFilter installs a PES filter with DMX_SET_PES_FILTER.
// Each call replaces the filter held by this file handle.
func (d *Demux) SetPESFilter(p PESFilterParams) error {
	raw := encodePESFilter(p)
	return ioctl(d.fd, dmxSetPESFilter, unsafe.Pointer(&raw))
}

// Close releases the device handle.
func (d *Demux) Close() error {
	return closeFd(d.fd)
}
