//go:build linux

package tuner

import "github.com/smazurov/dvbtune/pkg/linuxav/dvb"

// DeviceBackend opens real DVB character devices.
type DeviceBackend struct{}

// NewDeviceBackend returns the backend for the current platform.
func NewDeviceBackend() Backend {
	return DeviceBackend{}
}

// OpenFrontend opens the frontend device at path.
func (DeviceBackend) OpenFrontend(path string) (Frontend, error) {
	fe, err := dvb.OpenFrontend(path)
	if err != nil {
		return nil, err
	}
	return fe, nil
}

// OpenDemux opens the demux device at path.
func (DeviceBackend) OpenDemux(path string) (Demux, error) {
	dmx, err := dvb.OpenDemux(path)
	if err != nil {
		return nil, err
	}
	return dmx, nil
}
