//go:build !linux

package tuner

import (
	"errors"
	"fmt"
)

type stubBackend struct{}

// NewDeviceBackend returns the backend for the current platform.
func NewDeviceBackend() Backend {
	return stubBackend{}
}

// OpenFrontend returns an error on unsupported platforms.
func (stubBackend) OpenFrontend(path string) (Frontend, error) {
	return nil, fmt.Errorf("dvb frontend %s not supported on this platform: %w", path, errors.ErrUnsupported)
}

// OpenDemux returns an error on unsupported platforms.
func (stubBackend) OpenDemux(path string) (Demux, error) {
	return nil, fmt.Errorf("dvb demux %s not supported on this platform: %w", path, errors.ErrUnsupported)
}
