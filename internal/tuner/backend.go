package tuner

import "github.com/smazurov/dvbtune/pkg/linuxav/dvb"

// Frontend is the subset of a frontend device the configurator uses.
type Frontend interface {
	SetProperties(props []dvb.Property) error
	GetFrontend() (dvb.FrontendParameters, error)
	Close() error
}

// Demux is the subset of a demux device the configurator uses.
type Demux interface {
	SetPESFilter(params dvb.PESFilterParams) error
	Close() error
}

// Backend opens devices by filesystem path.
type Backend interface {
	OpenFrontend(path string) (Frontend, error)
	OpenDemux(path string) (Demux, error)
}
